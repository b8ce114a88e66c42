package sim

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/irdc/gohdl/pkg/hdl"
	"github.com/irdc/gohdl/pkg/logic"
	"github.com/irdc/gohdl/pkg/vtime"
)

// Sim owns the clock, the task set and the change log, and drives the
// part tree to quiescence. It is strictly single-threaded: tasks are
// resumed one at a time and never observe one another mid-step.
type Sim struct {
	root    *hdl.Instance
	now     Sequence
	writes  map[obsKey]Sequence
	tasks   []*task
	current *task
	log     logrus.FieldLogger
}

// New builds a simulator for the given root part: one task per block,
// enumerated over the part tree in declaration order.
func New(root *hdl.Instance) *Sim {
	l := logrus.New()
	l.SetOutput(io.Discard)

	s := &Sim{
		root:   root,
		writes: make(map[obsKey]Sequence),
		log:    l,
	}
	for _, part := range root.AllParts() {
		for i, blk := range part.Type().Blocks() {
			s.tasks = append(s.tasks, newTask(s, part, i, blk))
		}
	}
	return s
}

// SetLogger installs a logger for scheduler tracing (Debug level).
func (s *Sim) SetLogger(l logrus.FieldLogger) {
	s.log = l
}

// Now returns the current clock sequence.
func (s *Sim) Now() Sequence {
	return s.now
}

// Run installs the simulator as the current observer and drives the
// scheduler until quiescence: no task ready and no delay outstanding.
// A task error aborts the run and is returned; all remaining tasks are
// torn down before Run returns.
func (s *Sim) Run() error {
	return hdl.WithObserver(s, func() error {
		defer s.teardown()
		for {
			var ready []*task
			for _, t := range s.tasks {
				if t.ready() {
					ready = append(ready, t)
				}
			}

			if len(ready) > 0 {
				for _, t := range ready {
					s.log.WithField("task", t.name).WithField("now", s.now).Debug("resume")
					s.current = t
					err := t.step(s.now)
					s.current = nil
					if err != nil {
						return err
					}
					s.now.Tick++
				}
				continue
			}

			next, ok := s.nextDeadline()
			if !ok {
				s.log.WithField("now", s.now).Debug("quiescent")
				return nil
			}
			s.now = Sequence{Time: next, Tick: 0}
			s.log.WithField("now", s.now).Debug("advance")
		}
	})
}

func (s *Sim) nextDeadline() (next vtime.Timestamp, ok bool) {
	for _, t := range s.tasks {
		if until, has := t.until(); has && (!ok || until < next) {
			next, ok = until, true
		}
	}
	return next, ok
}

func (s *Sim) teardown() {
	for _, t := range s.tasks {
		t.stop()
	}
}

// OnRead implements hdl.Observer: reads are attributed to the current
// task so always-blocks learn their sensitivity set.
func (s *Sim) OnRead(obj *hdl.Instance, name string, v hdl.Value) {
	if s.current != nil {
		s.current.onRead(obj, name)
	}
}

// OnWrite implements hdl.Observer: the change log records the sequence
// of the latest write per (instance, signal).
func (s *Sim) OnWrite(obj *hdl.Instance, name string, v hdl.Value) {
	if s.current != nil {
		s.current.onWrite(obj, name)
	}
	s.writes[obsKey{obj, name}] = s.now
	s.log.WithField("signal", obj.Type().Name()+"."+name).
		WithField("now", s.now).Debug("write")
}

// isChanged reports whether the signal was written after since, and,
// if want is non-nil, whether its current value equals want. A scalar
// want also matches a one-bit vector signal.
func (s *Sim) isChanged(since Sequence, obj *hdl.Instance, attr string, want hdl.Value) bool {
	at, ok := s.writes[obsKey{obj, attr}]
	if !ok || !since.Less(at) {
		return false
	}
	if want == nil {
		return true
	}
	cur, err := obj.Peek(attr)
	if err != nil {
		return false
	}
	wl, ok := want.(logic.Logic)
	if !ok {
		return false
	}
	switch cur := cur.(type) {
	case logic.Logic:
		return cur == wl
	case logic.Vec:
		if cur.Len() == 1 {
			b, err := cur.At(0)
			return err == nil && b == wl
		}
	}
	return false
}
