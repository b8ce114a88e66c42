// Package hdl implements the declarative part model: part types
// described by signals and reactive blocks, instances with observed
// signal access, and the wait primitives block bodies suspend on.
package hdl

import (
	"github.com/pkg/errors"

	"github.com/irdc/gohdl/pkg/logic"
)

// ErrNoSuchSignal is returned when a signal name is not declared on
// the part type.
var ErrNoSuchSignal = errors.New("no such signal")

// Value is anything storable in a signal: a logic.Logic, a logic.Vec,
// or an *Instance (sub-part).
type Value = any

// SignalType describes a signal's declared type: how to build its
// default value and how to coerce assignments.
type SignalType interface {
	Default() Value
	Coerce(v any) (Value, error)
}

type logicType struct{}

// LogicType is the scalar signal type. Its default is Unknown.
func LogicType() SignalType { return logicType{} }

func (logicType) Default() Value { return logic.Unknown }

func (logicType) Coerce(v any) (Value, error) { return logic.New(v) }

type vecType struct {
	span   logic.Span
	flavor logic.Flavor
}

// VecType is the plain vector signal type spanning [hi:lo]. Its
// default is Unknown-filled. Invalid bounds panic; signal types are
// built at declaration time.
func VecType(hi, lo int) SignalType { return newVecType(hi, lo, logic.Plain) }

// UnsignedType is the unsigned vector signal type spanning [hi:lo].
func UnsignedType(hi, lo int) SignalType { return newVecType(hi, lo, logic.Unsigned) }

// SignedType is the signed vector signal type spanning [hi:lo].
func SignedType(hi, lo int) SignalType { return newVecType(hi, lo, logic.Signed) }

func newVecType(hi, lo int, f logic.Flavor) SignalType {
	span, err := logic.NewSpan(hi, lo)
	if err != nil {
		panic(err)
	}
	return vecType{span: span, flavor: f}
}

func (t vecType) Default() Value {
	v, err := logic.Make(t.span, t.flavor, nil)
	if err != nil {
		panic(err)
	}
	return v
}

func (t vecType) Coerce(v any) (Value, error) {
	return logic.Make(t.span, t.flavor, v)
}

// Signal is one declared signal of a part type.
type Signal struct {
	Name string
	Type SignalType

	def    Value
	hasDef bool
}

// Default returns the signal's initial value: the explicit default if
// one was declared, the type's default construction otherwise.
func (s Signal) Default() Value {
	if s.hasDef {
		return s.def
	}
	return s.Type.Default()
}

// Type is the canonical descriptor of a part type: its signals and
// blocks in declaration order. Types are built once by NewType and are
// immutable afterwards.
type Type struct {
	name    string
	signals []Signal
	index   map[string]int
	blocks  []*Block
}

// Item is one declaration inside a NewType call: a signal or a block.
type Item interface {
	apply(t *Type) error
}

type signalItem struct {
	name   string
	typ    SignalType
	def    any
	hasDef bool
}

func (it signalItem) apply(t *Type) error {
	if !isIdentifier(it.name) {
		return errors.Wrapf(logic.ErrBadValue, "signal %q: not an identifier", it.name)
	}
	if _, dup := t.index[it.name]; dup {
		return errors.Wrapf(logic.ErrBadValue, "signal %q declared twice", it.name)
	}
	sig := Signal{Name: it.name, Type: it.typ}
	if it.hasDef {
		if _, sub := it.typ.(*Type); sub {
			return errors.Wrapf(logic.ErrBadValue, "signal %q: sub-parts take no explicit default", it.name)
		}
		def, err := it.typ.Coerce(it.def)
		if err != nil {
			return errors.Wrapf(err, "signal %q default", it.name)
		}
		sig.def, sig.hasDef = def, true
	}
	t.index[it.name] = len(t.signals)
	t.signals = append(t.signals, sig)
	return nil
}

// SignalOf declares a signal with its type's default value.
func SignalOf(name string, st SignalType) Item {
	return signalItem{name: name, typ: st}
}

// SignalDefault declares a signal with an explicit initial value.
func SignalDefault(name string, st SignalType, def any) Item {
	return signalItem{name: name, typ: st, def: def, hasDef: true}
}

// Sub declares a child part signal; every instance gets a fresh child
// instance of the given type.
func Sub(name string, child *Type) Item {
	return SignalOf(name, child)
}

// NewType builds the descriptor for a new part type and registers it
// under the given name.
func NewType(name string, items ...Item) (*Type, error) {
	if name == "" {
		return nil, errors.Wrap(logic.ErrBadValue, "part type needs a name")
	}
	t := &Type{name: name, index: make(map[string]int)}
	for _, it := range items {
		if err := it.apply(t); err != nil {
			return nil, errors.Wrapf(err, "part %s", name)
		}
	}
	for _, b := range t.blocks {
		for _, attr := range b.condNames() {
			if _, ok := t.index[attr]; !ok {
				return nil, errors.Wrapf(ErrBadCondition, "part %s: %q is not a signal", name, attr)
			}
		}
	}
	if err := register(t); err != nil {
		return nil, err
	}
	return t, nil
}

// MustType is NewType for init-time registration; it panics on error.
func MustType(name string, items ...Item) *Type {
	t, err := NewType(name, items...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the registered type name.
func (t *Type) Name() string { return t.name }

// Signals returns the signal declarations in order.
func (t *Type) Signals() []Signal {
	out := make([]Signal, len(t.signals))
	copy(out, t.signals)
	return out
}

// Blocks returns the block descriptors in declaration order.
func (t *Type) Blocks() []*Block {
	out := make([]*Block, len(t.blocks))
	copy(out, t.blocks)
	return out
}

// Default implements SignalType so a Type can be used as the type of a
// sub-part signal.
func (t *Type) Default() Value { return t.New() }

// Coerce implements SignalType: only instances of exactly this type
// are accepted.
func (t *Type) Coerce(v any) (Value, error) {
	inst, ok := v.(*Instance)
	if !ok || inst.typ != t {
		return nil, errors.Wrapf(logic.ErrBadValue, "%v: not a %s instance", v, t.name)
	}
	return inst, nil
}

// New creates an instance with every signal set to its default value.
// Sub-part signals construct their own fresh instances recursively.
func (t *Type) New() *Instance {
	inst := &Instance{typ: t, values: make([]Value, len(t.signals))}
	for i, s := range t.signals {
		inst.values[i] = s.Default()
	}
	return inst
}

// Instance is a concrete part: one value per declared signal.
type Instance struct {
	typ    *Type
	values []Value
}

// Type returns the instance's part type.
func (p *Instance) Type() *Type { return p.typ }

func (p *Instance) String() string { return p.typ.name }

// Get reads a signal, notifying the current observer.
func (p *Instance) Get(name string) (Value, error) {
	i, ok := p.typ.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchSignal, "%s.%s", p.typ.name, name)
	}
	v := p.values[i]
	if obs := currentObserver; obs != nil {
		obs.OnRead(p, name, v)
	}
	return v, nil
}

// Peek reads a signal without notifying the observer. The simulator
// uses it for readiness checks.
func (p *Instance) Peek(name string) (Value, error) {
	i, ok := p.typ.index[name]
	if !ok {
		return nil, errors.Wrapf(ErrNoSuchSignal, "%s.%s", p.typ.name, name)
	}
	return p.values[i], nil
}

// Set coerces v to the signal's declared type and stores it. When the
// coerced value differs from the current one the observer is notified
// first; writes of an unchanged value are dropped entirely.
func (p *Instance) Set(name string, v any) error {
	i, ok := p.typ.index[name]
	if !ok {
		return errors.Wrapf(ErrNoSuchSignal, "%s.%s", p.typ.name, name)
	}
	cv, err := p.typ.signals[i].Type.Coerce(v)
	if err != nil {
		return errors.Wrapf(err, "%s.%s", p.typ.name, name)
	}
	if equalValue(p.values[i], cv) {
		return nil
	}
	if obs := currentObserver; obs != nil {
		obs.OnWrite(p, name, cv)
	}
	p.values[i] = cv
	return nil
}

// MustSet is Set for test benches; it panics on error.
func (p *Instance) MustSet(name string, v any) {
	if err := p.Set(name, v); err != nil {
		panic(err)
	}
}

// Logic reads a scalar signal, panicking on misuse.
func (p *Instance) Logic(name string) logic.Logic {
	v, err := p.Get(name)
	if err != nil {
		panic(err)
	}
	l, ok := v.(logic.Logic)
	if !ok {
		panic(errors.Errorf("%s.%s is not a scalar signal", p.typ.name, name))
	}
	return l
}

// Vec reads a vector signal, panicking on misuse.
func (p *Instance) Vec(name string) logic.Vec {
	v, err := p.Get(name)
	if err != nil {
		panic(err)
	}
	vec, ok := v.(logic.Vec)
	if !ok {
		panic(errors.Errorf("%s.%s is not a vector signal", p.typ.name, name))
	}
	return vec
}

// Part reads a sub-part signal, panicking on misuse.
func (p *Instance) Part(name string) *Instance {
	v, err := p.Get(name)
	if err != nil {
		panic(err)
	}
	inst, ok := v.(*Instance)
	if !ok {
		panic(errors.Errorf("%s.%s is not a sub-part", p.typ.name, name))
	}
	return inst
}

// AllParts returns the instance followed by every descendant part,
// walking sub-part signals transitively. The observer is not consulted
// during the walk.
func (p *Instance) AllParts() []*Instance {
	out := []*Instance{p}
	for _, v := range p.values {
		if child, ok := v.(*Instance); ok {
			out = append(out, child.AllParts()...)
		}
	}
	return out
}

func equalValue(a, b Value) bool {
	switch a := a.(type) {
	case logic.Logic:
		bl, ok := b.(logic.Logic)
		return ok && a == bl
	case logic.Vec:
		bv, ok := b.(logic.Vec)
		if !ok {
			return false
		}
		eq, err := a.Eq(bv)
		return err == nil && eq
	case *Instance:
		return a == b
	}
	return false
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case i > 0 && c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
