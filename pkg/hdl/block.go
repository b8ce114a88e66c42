package hdl

import (
	"github.com/pkg/errors"

	"github.com/irdc/gohdl/pkg/vtime"
)

// ErrBadCondition is returned when a when-condition names something
// that is not an identifier or not a declared signal, or carries an
// unparsable delay.
var ErrBadCondition = errors.New("bad block condition")

// BlockKind discriminates the three block variants.
type BlockKind uint8

const (
	// BlockOnce runs a single pass at simulation start.
	BlockOnce BlockKind = iota
	// BlockAlways runs its body, then re-runs whenever any signal it
	// read during the previous pass changes.
	BlockAlways
	// BlockWhen runs whenever its declared condition fires.
	BlockWhen
)

func (k BlockKind) String() string {
	switch k {
	case BlockOnce:
		return "once"
	case BlockAlways:
		return "always"
	}
	return "when"
}

// BlockFn is a block body. It may suspend on ctx.Wait; a returned
// error aborts the simulation run.
type BlockFn func(ctx Ctx, self *Instance) error

// Ctx is the simulator-provided context handed to block bodies. Wait
// is the only suspension point.
type Ctx interface {
	// Wait suspends the task until w becomes ready.
	Wait(w Wait)
	// Now returns the current virtual time.
	Now() vtime.Timestamp
}

// Cond declares the trigger of a when-block. The attribute lists name
// signals of the owning part; Delay is a timestamp literal. Multiple
// conditions compose as logical OR.
type Cond struct {
	Change  []string
	Rising  []string
	Falling []string
	Delay   string
}

// Block is one reactive block of a part type.
type Block struct {
	kind     BlockKind
	fn       BlockFn
	cond     Cond
	delay    vtime.Timestamp
	hasDelay bool
}

// Kind returns the block variant.
func (b *Block) Kind() BlockKind { return b.kind }

// Run invokes the block body.
func (b *Block) Run(ctx Ctx, self *Instance) error { return b.fn(ctx, self) }

// CondWait composes the when-condition into a wait over the given
// instance. An empty condition yields a wait that is never ready.
func (b *Block) CondWait(self *Instance) Wait {
	var ws []Wait
	if len(b.cond.Change) > 0 {
		ws = append(ws, WaitChange(self, b.cond.Change...))
	}
	if len(b.cond.Rising) > 0 {
		ws = append(ws, WaitRising(self, b.cond.Rising...))
	}
	if len(b.cond.Falling) > 0 {
		ws = append(ws, WaitFalling(self, b.cond.Falling...))
	}
	if b.hasDelay {
		ws = append(ws, WaitDelay(b.delay))
	}
	return WaitAny(ws...)
}

func (b *Block) condNames() []string {
	var out []string
	out = append(out, b.cond.Change...)
	out = append(out, b.cond.Rising...)
	out = append(out, b.cond.Falling...)
	return out
}

type blockItem struct {
	blk *Block
	err error
}

func (it blockItem) apply(t *Type) error {
	if it.err != nil {
		return it.err
	}
	t.blocks = append(t.blocks, it.blk)
	return nil
}

// Once declares a block executed once at simulation start.
func Once(fn BlockFn) Item {
	return blockItem{blk: &Block{kind: BlockOnce, fn: fn}}
}

// Always declares a block that re-runs whenever a signal it read
// during its previous pass changes.
func Always(fn BlockFn) Item {
	return blockItem{blk: &Block{kind: BlockAlways, fn: fn}}
}

// When declares a block triggered by the given condition.
func When(cond Cond, fn BlockFn) Item {
	b := &Block{kind: BlockWhen, fn: fn, cond: cond}
	for _, attrs := range [][]string{cond.Change, cond.Rising, cond.Falling} {
		for _, attr := range attrs {
			if !isIdentifier(attr) {
				return blockItem{err: errors.Wrapf(ErrBadCondition, "%q: not an identifier", attr)}
			}
		}
	}
	if cond.Delay != "" {
		d, err := vtime.Parse(cond.Delay)
		if err != nil {
			return blockItem{err: errors.Wrapf(ErrBadCondition, "delay %q", cond.Delay)}
		}
		b.delay, b.hasDelay = d, true
	}
	return blockItem{blk: b}
}
