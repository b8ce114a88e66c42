package sim

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/irdc/gohdl/pkg/hdl"
	"github.com/irdc/gohdl/pkg/vtime"
)

// errStopped unwinds a task goroutine during simulator teardown.
var errStopped = errors.New("task stopped")

type obsKey struct {
	obj  *hdl.Instance
	attr string
}

type yield struct {
	wait hdl.Wait // nil: body finished (or failed)
	err  error
}

// task drives one block as a cooperative coroutine. The body runs on
// its own goroutine in strict lockstep with the scheduler: exactly one
// of the two is runnable at any moment, so execution is effectively
// single-threaded and fully deterministic.
type task struct {
	sim  *Sim
	obj  *hdl.Instance
	blk  *hdl.Block
	name string

	// cond is the composed user condition of a when-block; the task
	// re-arms on it after every body pass.
	cond hdl.Wait

	wait    hdl.Wait // nil once terminated
	lastSeq Sequence
	started bool
	done    bool

	resume chan bool
	yields chan yield
	exited chan struct{}

	// observed/wrote capture this pass's reads and writes for
	// always-blocks. A signal the block wrote itself does not re-arm
	// it.
	observed map[obsKey]struct{}
	wrote    map[obsKey]struct{}
}

func newTask(s *Sim, obj *hdl.Instance, index int, blk *hdl.Block) *task {
	t := &task{
		sim:     s,
		obj:     obj,
		blk:     blk,
		name:    fmt.Sprintf("%s/%s#%d", obj.Type().Name(), blk.Kind(), index),
		lastSeq: seqBeforeStart,
		resume:  make(chan bool),
		yields:  make(chan yield),
		exited:  make(chan struct{}),
	}
	switch blk.Kind() {
	case hdl.BlockWhen:
		t.cond = blk.CondWait(obj)
		t.wait = t.cond
	default:
		t.wait = hdl.NoWait()
	}
	if blk.Kind() == hdl.BlockAlways {
		t.observed = make(map[obsKey]struct{})
		t.wrote = make(map[obsKey]struct{})
	}
	return t
}

// ready reports whether the task can take a step at the current
// sequence.
func (t *task) ready() bool {
	return t.wait != nil && t.wait.Ready(t)
}

// until returns the earliest time the task could possibly become
// ready.
func (t *task) until() (vtime.Timestamp, bool) {
	if t.wait == nil {
		return 0, false
	}
	return t.wait.Until(t.lastTime())
}

func (t *task) lastTime() vtime.Timestamp {
	if t.lastSeq.Time < 0 {
		return 0
	}
	return t.lastSeq.Time
}

// Changed implements hdl.Query.
func (t *task) Changed(obj *hdl.Instance, attr string, want hdl.Value) bool {
	return t.sim.isChanged(t.lastSeq, obj, attr, want)
}

// Elapsed implements hdl.Query.
func (t *task) Elapsed(d vtime.Timestamp) bool {
	return t.sim.now.Time >= t.lastTime().Add(d)
}

// Wait implements hdl.Ctx: it suspends the body until w is ready.
func (t *task) Wait(w hdl.Wait) {
	t.suspend(w)
}

// Now implements hdl.Ctx.
func (t *task) Now() vtime.Timestamp {
	return t.sim.now.Time
}

// step resumes the body for one leg, records the sequence of the
// resumption and captures the next wait.
func (t *task) step(now Sequence) error {
	if t.done {
		return nil
	}
	if !t.started {
		t.started = true
		go t.main()
	} else {
		t.resume <- true
	}
	y := <-t.yields
	t.lastSeq = now
	t.wait = y.wait
	if y.wait == nil {
		t.done = true
	}
	if y.err != nil {
		return errors.Wrapf(y.err, "task %s", t.name)
	}
	return nil
}

// stop unwinds a suspended body goroutine during teardown and waits
// for it to exit.
func (t *task) stop() {
	if !t.started || t.done {
		return
	}
	t.resume <- false
	<-t.exited
	t.done = true
	t.wait = nil
}

// suspend hands the next wait to the scheduler and blocks until the
// task is resumed.
func (t *task) suspend(w hdl.Wait) {
	t.yields <- yield{wait: w}
	if !<-t.resume {
		panic(errStopped)
	}
}

// main is the body goroutine. It terminates by sending a nil wait, or
// silently when unwound by stop.
func (t *task) main() {
	defer close(t.exited)
	var err error
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, errStopped) {
				return
			}
			t.yields <- yield{err: errors.Errorf("panic: %v", r)}
			return
		}
		t.yields <- yield{err: err}
	}()

	switch t.blk.Kind() {
	case hdl.BlockOnce:
		err = t.blk.Run(t, t.obj)
	case hdl.BlockAlways:
		for {
			t.resetObserved()
			if err = t.blk.Run(t, t.obj); err != nil {
				return
			}
			t.suspend(t.observedWait())
		}
	case hdl.BlockWhen:
		for {
			if err = t.blk.Run(t, t.obj); err != nil {
				return
			}
			t.suspend(t.cond)
		}
	}
}

func (t *task) resetObserved() {
	clear(t.observed)
	clear(t.wrote)
}

// observedWait re-arms an always-block on every signal it read but did
// not itself write during the pass.
func (t *task) observedWait() hdl.Wait {
	var ws []hdl.Wait
	for key := range t.observed {
		if _, self := t.wrote[key]; self {
			continue
		}
		ws = append(ws, hdl.WaitChange(key.obj, key.attr))
	}
	return hdl.WaitAny(ws...)
}

func (t *task) onRead(obj *hdl.Instance, attr string) {
	if t.observed != nil {
		t.observed[obsKey{obj, attr}] = struct{}{}
	}
}

func (t *task) onWrite(obj *hdl.Instance, attr string) {
	if t.wrote != nil {
		t.wrote[obsKey{obj, attr}] = struct{}{}
	}
}
