package hdl

import (
	"github.com/irdc/gohdl/pkg/logic"
	"github.com/irdc/gohdl/pkg/vtime"
)

// Query is the simulator-side view a wait predicate is evaluated
// against: per-task change detection and elapsed-time checks.
type Query interface {
	// Changed reports whether the signal was written since the task's
	// last run. A non-nil want additionally requires the current value
	// to equal it.
	Changed(obj *Instance, attr string, want Value) bool
	// Elapsed reports whether the task's last run time plus d has been
	// reached.
	Elapsed(d vtime.Timestamp) bool
}

// Wait is an immutable readiness predicate a suspended task resumes
// on.
type Wait interface {
	Ready(q Query) bool
	// Until returns the earliest absolute time at which the wait could
	// possibly become ready, given the task's last run time. Only
	// delay waits yield a finite time.
	Until(last vtime.Timestamp) (vtime.Timestamp, bool)
}

type waitNowait struct{}

// NoWait is the always-ready wait.
func NoWait() Wait { return waitNowait{} }

func (waitNowait) Ready(Query) bool { return true }

func (waitNowait) Until(vtime.Timestamp) (vtime.Timestamp, bool) { return 0, false }

type waitAny struct{ inner []Wait }

// WaitAny is ready when any child is ready. A single child collapses
// to itself; no children yields a wait that is never ready.
func WaitAny(ws ...Wait) Wait {
	if len(ws) == 1 {
		return ws[0]
	}
	return waitAny{inner: ws}
}

func (w waitAny) Ready(q Query) bool {
	for _, inner := range w.inner {
		if inner.Ready(q) {
			return true
		}
	}
	return false
}

func (w waitAny) Until(last vtime.Timestamp) (vtime.Timestamp, bool) {
	return minUntil(w.inner, last)
}

type waitAll struct{ inner []Wait }

// WaitAll is ready when every child is ready.
func WaitAll(ws ...Wait) Wait {
	if len(ws) == 1 {
		return ws[0]
	}
	return waitAll{inner: ws}
}

func (w waitAll) Ready(q Query) bool {
	for _, inner := range w.inner {
		if !inner.Ready(q) {
			return false
		}
	}
	return true
}

func (w waitAll) Until(last vtime.Timestamp) (vtime.Timestamp, bool) {
	return minUntil(w.inner, last)
}

func minUntil(ws []Wait, last vtime.Timestamp) (vtime.Timestamp, bool) {
	var min vtime.Timestamp
	found := false
	for _, w := range ws {
		if t, ok := w.Until(last); ok && (!found || t < min) {
			min, found = t, true
		}
	}
	return min, found
}

type waitChange struct {
	obj   *Instance
	attrs []string
	want  Value
}

// WaitChange is ready when any of the named signals has been written
// since the task's last run.
func WaitChange(obj *Instance, attrs ...string) Wait {
	return waitChange{obj: obj, attrs: attrs}
}

// WaitRising is ready when such a write set the signal to One.
func WaitRising(obj *Instance, attrs ...string) Wait {
	return waitChange{obj: obj, attrs: attrs, want: logic.One}
}

// WaitFalling is ready when such a write set the signal to Zero.
func WaitFalling(obj *Instance, attrs ...string) Wait {
	return waitChange{obj: obj, attrs: attrs, want: logic.Zero}
}

func (w waitChange) Ready(q Query) bool {
	for _, attr := range w.attrs {
		if q.Changed(w.obj, attr, w.want) {
			return true
		}
	}
	return false
}

func (w waitChange) Until(vtime.Timestamp) (vtime.Timestamp, bool) { return 0, false }

type waitDelay struct{ d vtime.Timestamp }

// WaitDelay is ready once the given interval has elapsed since the
// task's last run.
func WaitDelay(d vtime.Timestamp) Wait { return waitDelay{d: d} }

// ParseDelay builds a delay wait from a timestamp literal; test
// benches use it inline.
func ParseDelay(literal string) (Wait, error) {
	d, err := vtime.Parse(literal)
	if err != nil {
		return nil, err
	}
	return WaitDelay(d), nil
}

func (w waitDelay) Ready(q Query) bool { return q.Elapsed(w.d) }

func (w waitDelay) Until(last vtime.Timestamp) (vtime.Timestamp, bool) {
	return last.Add(w.d), true
}
