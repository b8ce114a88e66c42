package hdl

// Observer receives every signal access on every part instance while
// installed. The simulator installs itself for the duration of a run.
type Observer interface {
	OnRead(obj *Instance, name string, v Value)
	OnWrite(obj *Instance, name string, v Value)
}

// The current-observer slot. The whole model is single-threaded by
// design, so this is a single slot rather than a thread-local.
var currentObserver Observer

// CurrentObserver returns the installed observer, or nil.
func CurrentObserver() Observer { return currentObserver }

// WithObserver installs o for the duration of fn, restoring the
// previous observer on all exit paths.
func WithObserver(o Observer, fn func() error) error {
	old := currentObserver
	currentObserver = o
	defer func() { currentObserver = old }()
	return fn()
}
