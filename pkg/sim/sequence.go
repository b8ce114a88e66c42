// Package sim implements the event-driven simulator: a monotone
// (time, tick) clock, one cooperative task per block, and a scheduler
// that drives the part tree to quiescence.
package sim

import (
	"fmt"

	"github.com/irdc/gohdl/pkg/vtime"
)

// Sequence is the simulator's monotone clock: virtual time plus a
// micro-tick that advances once per task step within a round. The tick
// lets change detection distinguish "since the start of this round"
// from "since earlier in this round"; it never reorders tasks.
type Sequence struct {
	Time vtime.Timestamp
	Tick int
}

// Less orders sequences lexicographically.
func (s Sequence) Less(o Sequence) bool {
	if s.Time != o.Time {
		return s.Time < o.Time
	}
	return s.Tick < o.Tick
}

func (s Sequence) String() string {
	return fmt.Sprintf("%s+%d", s.Time, s.Tick)
}

// seqBeforeStart sorts before every sequence a running simulation can
// produce; it is the initial last-run marker of every task.
var seqBeforeStart = Sequence{Time: -1, Tick: 0}
