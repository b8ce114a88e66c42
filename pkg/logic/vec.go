package logic

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Flavor selects the numeric interpretation of a vector. Plain vectors
// carry bitwise algebra only; Unsigned and Signed add integer value,
// ordering and arithmetic. Mixing Unsigned with Signed is an error;
// Plain promotes to the other operand's flavor.
type Flavor uint8

const (
	Plain Flavor = iota
	Unsigned
	Signed
)

func (f Flavor) String() string {
	switch f {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	}
	return "logvec"
}

// Vec is a fixed-width vector of logic values, indexed high-to-low by
// its span. The zero Vec is not meaningful; construct through NewVec,
// MakeVec, MakeUnsigned, MakeSigned or Make.
type Vec struct {
	flavor Flavor
	span   Span
	bits   []Logic // most significant first, len == span.Len()
}

// EmptyVec returns the zero-length vector of the given flavor.
func EmptyVec(f Flavor) Vec {
	return Vec{flavor: f, span: EmptySpan}
}

// bitsOf normalizes a value into a bit sequence without a target span:
// a Logic becomes one bit, a nonnegative integer its binary digits, a
// negative integer its two's complement in bitlen+1 digits, a string
// one bit per character (underscores dropped), a vector its bits.
func bitsOf(v any) ([]Logic, error) {
	switch v := v.(type) {
	case Vec:
		out := make([]Logic, len(v.bits))
		copy(out, v.bits)
		return out, nil
	case Logic:
		return []Logic{v}, nil
	case []Logic:
		out := make([]Logic, len(v))
		copy(out, v)
		return out, nil
	case string:
		out := make([]Logic, 0, len(v))
		for _, c := range v {
			if c == '_' {
				continue
			}
			b, err := fromChar(c)
			if err != nil {
				return nil, err
			}
			out = append(out, b)
		}
		return out, nil
	case int:
		return intBits(big.NewInt(int64(v))), nil
	case int64:
		return intBits(big.NewInt(v)), nil
	case uint:
		return intBits(new(big.Int).SetUint64(uint64(v))), nil
	case uint64:
		return intBits(new(big.Int).SetUint64(v)), nil
	case *big.Int:
		return intBits(v), nil
	default:
		return nil, errors.Wrapf(ErrBadValue, "%v: cannot convert to a vector", v)
	}
}

func intBits(v *big.Int) []Logic {
	if v.Sign() < 0 {
		m := new(big.Int).Lsh(big.NewInt(1), uint(v.BitLen()+1))
		v = new(big.Int).Add(m, v)
	}
	n := v.BitLen()
	if n == 0 {
		return []Logic{Zero}
	}
	out := make([]Logic, n)
	for i := 0; i < n; i++ {
		if v.Bit(n-1-i) == 1 {
			out[i] = One
		} else {
			out[i] = Zero
		}
	}
	return out
}

// convert normalizes v into exactly span.Len() bits: shorter sequences
// are left-padded (with Zero, or with the leading bit when flavor is
// Signed and v is not an integer), longer ones fail with
// ErrLengthMismatch. Integer digits carry no sign bit, so integers are
// always padded with Zero and keep their value. A nil v fills with
// Unknown; negative integers are taken modulo 2^len first.
func convert(span Span, flavor Flavor, v any) ([]Logic, error) {
	n := span.Len()
	if v == nil {
		out := make([]Logic, n)
		for i := range out {
			out[i] = Unknown
		}
		return out, nil
	}

	intSource := false
	switch v.(type) {
	case int, int64, uint, uint64, *big.Int:
		intSource = true
	}

	if i, ok := asInt(v); ok && i.Sign() < 0 {
		m := new(big.Int).Lsh(big.NewInt(1), uint(n))
		i = new(big.Int).Add(m, i)
		if i.Sign() < 0 {
			return nil, errors.Wrapf(ErrLengthMismatch, "%v: too long for %d bits", v, n)
		}
		v = i
	}

	bits, err := bitsOf(v)
	if err != nil {
		return nil, err
	}
	switch {
	case len(bits) < n:
		fill := Zero
		if len(bits) > 0 && flavor == Signed && !intSource {
			fill = bits[0]
		}
		padded := make([]Logic, n)
		for i := 0; i < n-len(bits); i++ {
			padded[i] = fill
		}
		copy(padded[n-len(bits):], bits)
		if len(bits) == 0 {
			for i := range padded {
				padded[i] = Zero
			}
		}
		bits = padded
	case len(bits) > n:
		return nil, errors.Wrapf(ErrLengthMismatch, "%v: too long for %d bits", v, n)
	}
	return bits, nil
}

func asInt(v any) (*big.Int, bool) {
	switch v := v.(type) {
	case int:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	case *big.Int:
		return v, true
	}
	return nil, false
}

// NewVec constructs a plain vector whose span is inferred from the
// value as [len-1:0]. A Vec argument is returned unchanged, flavor and
// span included.
func NewVec(v any) (Vec, error) {
	if vv, ok := v.(Vec); ok {
		return vv, nil
	}
	bits, err := bitsOf(v)
	if err != nil {
		return Vec{}, err
	}
	if len(bits) == 0 {
		return EmptyVec(Plain), nil
	}
	return Vec{flavor: Plain, span: Span{len(bits) - 1, 0}, bits: bits}, nil
}

// Make constructs a vector of the given span and flavor from v,
// applying the padding and length rules. A Vec argument of equal
// length adopts the target span and flavor without conversion.
func Make(span Span, flavor Flavor, v any) (Vec, error) {
	if vv, ok := v.(Vec); ok {
		if vv.span == span && vv.flavor == flavor {
			return vv, nil
		}
		if vv.Len() == span.Len() {
			return Vec{flavor: flavor, span: span, bits: vv.bits}, nil
		}
	}
	bits, err := convert(span, flavor, v)
	if err != nil {
		return Vec{}, err
	}
	return Vec{flavor: flavor, span: span, bits: bits}, nil
}

// MakeVec constructs a plain vector spanning [hi:lo].
func MakeVec(hi, lo int, v any) (Vec, error) {
	span, err := NewSpan(hi, lo)
	if err != nil {
		return Vec{}, err
	}
	return Make(span, Plain, v)
}

// MakeUnsigned constructs an unsigned vector spanning [hi:lo].
func MakeUnsigned(hi, lo int, v any) (Vec, error) {
	span, err := NewSpan(hi, lo)
	if err != nil {
		return Vec{}, err
	}
	return Make(span, Unsigned, v)
}

// MakeSigned constructs a signed vector spanning [hi:lo]; short bit
// sequences are sign-extended, integers keep their value.
func MakeSigned(hi, lo int, v any) (Vec, error) {
	span, err := NewSpan(hi, lo)
	if err != nil {
		return Vec{}, err
	}
	return Make(span, Signed, v)
}

// AsPlain reinterprets v as a plain vector.
func (v Vec) AsPlain() Vec { return Vec{flavor: Plain, span: v.span, bits: v.bits} }

// AsUnsigned reinterprets v as an unsigned vector.
func (v Vec) AsUnsigned() Vec { return Vec{flavor: Unsigned, span: v.span, bits: v.bits} }

// AsSigned reinterprets v as a signed (two's complement) vector.
func (v Vec) AsSigned() Vec { return Vec{flavor: Signed, span: v.span, bits: v.bits} }

// Span returns the vector's index span.
func (v Vec) Span() Span { return v.span }

// Flavor returns the vector's flavor.
func (v Vec) Flavor() Flavor { return v.flavor }

// Len returns the number of bits.
func (v Vec) Len() int { return len(v.bits) }

// Bits returns a copy of the bits, most significant first.
func (v Vec) Bits() []Logic {
	out := make([]Logic, len(v.bits))
	copy(out, v.bits)
	return out
}

// At returns the bit at external index i. Negative indices count from
// the most significant end (-1 is the MSB).
func (v Vec) At(i int) (Logic, error) {
	off, err := v.span.Map(i)
	if err != nil {
		return Unknown, err
	}
	return v.bits[off], nil
}

// Slice returns the sub-vector covering the inclusive external range
// [hi:lo]. The result keeps the flavor and is spanned by the requested
// range itself.
func (v Vec) Slice(hi, lo int) (Vec, error) {
	from, to, err := v.span.MapRange(hi, lo)
	if err != nil {
		return Vec{}, err
	}
	sub, err := v.span.Sub(hi, lo)
	if err != nil {
		return Vec{}, err
	}
	bits := make([]Logic, to-from)
	copy(bits, v.bits[from:to])
	return Vec{flavor: v.flavor, span: sub, bits: bits}, nil
}

func (v Vec) String() string {
	var sb strings.Builder
	for _, b := range v.bits {
		sb.WriteByte(b.Char())
	}
	return sb.String()
}

// sameTypes unifies the flavors of two vectors: plain adopts the other
// side's flavor, unsigned and signed never mix.
func sameTypes(a, b Vec) (Vec, Vec, error) {
	switch {
	case a.flavor == b.flavor:
	case a.flavor == Plain:
		a = Vec{flavor: b.flavor, span: a.span, bits: a.bits}
	case b.flavor == Plain:
		b = Vec{flavor: a.flavor, span: b.span, bits: b.bits}
	default:
		return Vec{}, Vec{}, errors.Wrapf(ErrTypeMismatch, "%s vs %s", a.flavor, b.flavor)
	}
	return a, b, nil
}

// enlarge widens v to n bits, extending with Zero or, for signed
// vectors, the sign bit. The span keeps its low index.
func enlarge(v Vec, n int) Vec {
	if v.Len() >= n {
		return v
	}
	fill := Zero
	if v.flavor == Signed && v.Len() > 0 {
		fill = v.bits[0]
	}
	bits := make([]Logic, n)
	for i := 0; i < n-v.Len(); i++ {
		bits[i] = fill
	}
	copy(bits[n-v.Len():], v.bits)
	end := 0
	if !v.span.IsEmpty() {
		end = v.span.end
	}
	return Vec{flavor: v.flavor, span: Span{end + n - 1, end}, bits: bits}
}

func sameLength(a, b Vec) (Vec, Vec, error) {
	a, b, err := sameTypes(a, b)
	if err != nil {
		return Vec{}, Vec{}, err
	}
	if a.Len() < b.Len() {
		a = enlarge(a, b.Len())
	} else if b.Len() < a.Len() {
		b = enlarge(b, a.Len())
	}
	return a, b, nil
}

func apply(op func(Logic, Logic) Logic, a, b Vec) (Vec, error) {
	a, b, err := sameLength(a, b)
	if err != nil {
		return Vec{}, err
	}
	bits := make([]Logic, a.Len())
	for i := range bits {
		bits[i] = op(a.bits[i], b.bits[i])
	}
	return Vec{flavor: a.flavor, span: a.span, bits: bits}, nil
}

// Not returns the bitwise complement, preserving span and flavor.
func (v Vec) Not() Vec {
	bits := make([]Logic, len(v.bits))
	for i, b := range v.bits {
		bits[i] = b.Not()
	}
	return Vec{flavor: v.flavor, span: v.span, bits: bits}
}

// And returns the bitwise AND after length alignment.
func (v Vec) And(o Vec) (Vec, error) { return apply(Logic.And, v, o) }

// Or returns the bitwise OR after length alignment.
func (v Vec) Or(o Vec) (Vec, error) { return apply(Logic.Or, v, o) }

// Xor returns the bitwise XOR after length alignment.
func (v Vec) Xor(o Vec) (Vec, error) { return apply(Logic.Xor, v, o) }

func repeatBits(b Logic, n int) []Logic {
	out := make([]Logic, n)
	for i := range out {
		out[i] = b
	}
	return out
}

func (v Vec) withBits(bits []Logic) Vec {
	return Vec{flavor: v.flavor, span: v.span, bits: bits}
}

// ShiftLeft drops n most significant bits and appends n Zeros.
func (v Vec) ShiftLeft(n int) (Vec, error) {
	return v.shiftLeftFill(n, Zero)
}

func (v Vec) shiftLeftFill(n int, fill Logic) (Vec, error) {
	if n < 0 {
		return Vec{}, errors.Wrapf(ErrBadValue, "%d: negative shift count", n)
	}
	if n == 0 || v.Len() == 0 {
		return v, nil
	}
	if n >= v.Len() {
		return v.withBits(repeatBits(fill, v.Len())), nil
	}
	bits := make([]Logic, 0, v.Len())
	bits = append(bits, v.bits[n:]...)
	bits = append(bits, repeatBits(fill, n)...)
	return v.withBits(bits), nil
}

// ShiftRight prepends n fill bits and drops n least significant bits.
// The fill is Zero, or the sign bit for signed vectors.
func (v Vec) ShiftRight(n int) (Vec, error) {
	fill := Zero
	if v.flavor == Signed && v.Len() > 0 {
		fill = v.bits[0]
	}
	return v.shiftRightFill(n, fill)
}

func (v Vec) shiftRightFill(n int, fill Logic) (Vec, error) {
	if n < 0 {
		return Vec{}, errors.Wrapf(ErrBadValue, "%d: negative shift count", n)
	}
	if n == 0 || v.Len() == 0 {
		return v, nil
	}
	if n >= v.Len() {
		return v.withBits(repeatBits(fill, v.Len())), nil
	}
	bits := make([]Logic, 0, v.Len())
	bits = append(bits, repeatBits(fill, n)...)
	bits = append(bits, v.bits[:v.Len()-n]...)
	return v.withBits(bits), nil
}

// RotateLeft rotates by n mod len without fill.
func (v Vec) RotateLeft(n int) (Vec, error) {
	if n < 0 {
		return Vec{}, errors.Wrapf(ErrBadValue, "%d: negative rotate count", n)
	}
	if v.Len() == 0 {
		return v, nil
	}
	n %= v.Len()
	if n == 0 {
		return v, nil
	}
	bits := make([]Logic, 0, v.Len())
	bits = append(bits, v.bits[n:]...)
	bits = append(bits, v.bits[:n]...)
	return v.withBits(bits), nil
}

// RotateRight rotates by n mod len without fill.
func (v Vec) RotateRight(n int) (Vec, error) {
	if n < 0 {
		return Vec{}, errors.Wrapf(ErrBadValue, "%d: negative rotate count", n)
	}
	if v.Len() == 0 {
		return v, nil
	}
	n %= v.Len()
	return v.RotateLeft(v.Len() - n)
}

// Concat concatenates v and o (v most significant) after flavor
// unification. The result spans [lenV+lenO-1:0].
func (v Vec) Concat(o Vec) (Vec, error) {
	a, b, err := sameTypes(v, o)
	if err != nil {
		return Vec{}, err
	}
	n := a.Len() + b.Len()
	if n == 0 {
		return EmptyVec(a.flavor), nil
	}
	bits := make([]Logic, 0, n)
	bits = append(bits, a.bits...)
	bits = append(bits, b.bits...)
	return Vec{flavor: a.flavor, span: Span{n - 1, 0}, bits: bits}, nil
}

// Repeat concatenates n copies of v.
func (v Vec) Repeat(n int) (Vec, error) {
	if n < 0 {
		return Vec{}, errors.Wrapf(ErrBadValue, "%d: negative repeat count", n)
	}
	if n == 0 || v.Len() == 0 {
		return EmptyVec(v.flavor), nil
	}
	bits := make([]Logic, 0, v.Len()*n)
	for i := 0; i < n; i++ {
		bits = append(bits, v.bits...)
	}
	return Vec{flavor: v.flavor, span: Span{len(bits) - 1, 0}, bits: bits}, nil
}

// numericPair unifies flavors and rejects plain-only operand pairs,
// which carry no numeric interpretation.
func numericPair(a, b Vec) (Vec, Vec, error) {
	a, b, err := sameTypes(a, b)
	if err != nil {
		return Vec{}, Vec{}, err
	}
	if a.flavor == Plain {
		return Vec{}, Vec{}, errors.Wrap(ErrTypeMismatch, "plain vectors have no arithmetic")
	}
	return a, b, nil
}

func addBits(l, r []Logic, carry Logic) []Logic {
	out := make([]Logic, len(l))
	for i := len(l) - 1; i >= 0; i-- {
		a, b := l[i], r[i]
		out[i] = a.Xor(b).Xor(carry)
		carry = carry.And(a).Or(carry.And(b)).Or(a.And(b))
	}
	return out
}

func notBits(b []Logic) []Logic {
	out := make([]Logic, len(b))
	for i, x := range b {
		out[i] = x.Not()
	}
	return out
}

func negBits(b []Logic) []Logic {
	one := make([]Logic, len(b))
	for i := range one {
		one[i] = Zero
	}
	return addBits(notBits(b), one, One)
}

func cmpBits(l, r []Logic) int {
	for i := range l {
		if l[i] != r[i] {
			if l[i].Rank() < r[i].Rank() {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Add returns v + o with ripple carry after length alignment; Z and X
// operand bits poison the affected output bits.
func (v Vec) Add(o Vec) (Vec, error) {
	a, b, err := numericPair(v, o)
	if err != nil {
		return Vec{}, err
	}
	a, b, err = sameLength(a, b)
	if err != nil {
		return Vec{}, err
	}
	return a.withBits(addBits(a.bits, b.bits, Zero)), nil
}

// Sub returns v - o (two's complement).
func (v Vec) Sub(o Vec) (Vec, error) {
	a, b, err := numericPair(v, o)
	if err != nil {
		return Vec{}, err
	}
	a, b, err = sameLength(a, b)
	if err != nil {
		return Vec{}, err
	}
	return a.withBits(addBits(a.bits, notBits(b.bits), One)), nil
}

// Mul returns v * o. The result is as wide as both operands together.
// Any Z or X bit in the multiplier (v) yields an all-Unknown result.
func (v Vec) Mul(o Vec) (Vec, error) {
	a, b, err := numericPair(v, o)
	if err != nil {
		return Vec{}, err
	}
	if a.flavor == Signed {
		return signedMul(a, b), nil
	}
	return unsignedMul(a, b), nil
}

func unsignedMul(a, b Vec) Vec {
	n := a.Len() + b.Len()
	if n == 0 {
		return EmptyVec(a.flavor)
	}
	span := Span{n - 1, 0}
	acc := repeatBits(Zero, n)
	addend := make([]Logic, n)
	for i := 0; i < n-b.Len(); i++ {
		addend[i] = Zero
	}
	copy(addend[n-b.Len():], b.bits)
	for i := a.Len() - 1; i >= 0; i-- {
		switch a.bits[i] {
		case One:
			acc = addBits(acc, addend, Zero)
		case Zero:
		default:
			return Vec{flavor: a.flavor, span: span, bits: repeatBits(Unknown, n)}
		}
		addend = append(addend[1:], Zero)
	}
	return Vec{flavor: a.flavor, span: span, bits: acc}
}

func signedMul(a, b Vec) Vec {
	neg := signBit(a).Xor(signBit(b))
	prod := unsignedMul(absVec(a), absVec(b))
	if neg.IsOne() {
		prod = prod.withBits(negBits(prod.bits))
	}
	return prod
}

func signBit(v Vec) Logic {
	if v.Len() == 0 {
		return Zero
	}
	return v.bits[0]
}

func absVec(v Vec) Vec {
	if signBit(v).IsOne() {
		return v.withBits(negBits(v.bits))
	}
	return v
}

// Neg returns the two's-complement negation of a signed vector.
func (v Vec) Neg() (Vec, error) {
	if v.flavor != Signed {
		return Vec{}, errors.Wrap(ErrTypeMismatch, "negation requires a signed vector")
	}
	return v.withBits(negBits(v.bits)), nil
}

// Abs returns the absolute value of a signed vector.
func (v Vec) Abs() (Vec, error) {
	if v.flavor != Signed {
		return Vec{}, errors.Wrap(ErrTypeMismatch, "absolute value requires a signed vector")
	}
	return absVec(v), nil
}

// Div returns the quotient of v / o. See Mod for the width and sign
// rules shared by both.
func (v Vec) Div(o Vec) (Vec, error) {
	q, _, err := v.divmod(o)
	return q, err
}

// Mod returns the remainder of v / o. The divisor and dividend are
// length-aligned first and the results keep the aligned width. For
// signed operands the quotient is negative iff the signs differ and
// the remainder takes the dividend's sign.
func (v Vec) Mod(o Vec) (Vec, error) {
	_, r, err := v.divmod(o)
	return r, err
}

func (v Vec) divmod(o Vec) (Vec, Vec, error) {
	a, b, err := numericPair(v, o)
	if err != nil {
		return Vec{}, Vec{}, err
	}
	zero := true
	for _, bit := range b.bits {
		if bit != Zero {
			zero = false
			break
		}
	}
	if zero {
		return Vec{}, Vec{}, errors.Wrapf(ErrDivisionByZero, "%s / %s", a, b)
	}
	a, b, err = sameLength(a, b)
	if err != nil {
		return Vec{}, Vec{}, err
	}
	if a.flavor == Signed {
		q, r := signedDivmod(a, b)
		return q, r, nil
	}
	q, r := unsignedDivmod(a, b)
	return q, r, nil
}

// unsignedDivmod performs restoring long division over equal-length
// operands using a double-width working register.
func unsignedDivmod(a, b Vec) (Vec, Vec) {
	n := a.Len()
	rem := append(repeatBits(Zero, n), a.bits...)
	den := append(append([]Logic{}, b.bits...), repeatBits(Zero, n)...)
	quot := repeatBits(Zero, n)
	for i := n - 1; i >= 0; i-- {
		den = append([]Logic{Zero}, den[:len(den)-1]...)
		if cmpBits(rem, den) >= 0 {
			rem = addBits(rem, notBits(den), One)
			quot[n-1-i] = One
		}
	}
	return a.withBits(quot), a.withBits(rem[n:])
}

func signedDivmod(a, b Vec) (Vec, Vec) {
	q, r := unsignedDivmod(absVec(a), absVec(b))
	if signBit(a).Xor(signBit(b)).IsOne() {
		q = q.withBits(negBits(q.bits))
	}
	if signBit(a).IsOne() {
		r = r.withBits(negBits(r.bits))
	}
	return q, r
}

// Cmp compares v with o, returning -1, 0 or 1. Unsigned vectors
// compare MSB-first lexicographically by scalar rank; signed vectors
// order by sign first, reversing the bitwise order when both are
// negative. Plain operand pairs have no ordering.
func (v Vec) Cmp(o Vec) (int, error) {
	a, b, err := numericPair(v, o)
	if err != nil {
		return 0, err
	}
	a, b, err = sameLength(a, b)
	if err != nil {
		return 0, err
	}
	if a.flavor == Signed {
		na, nb := signBit(a).IsOne(), signBit(b).IsOne()
		switch {
		case na && !nb:
			return -1, nil
		case !na && nb:
			return 1, nil
		case na && nb:
			return -cmpBits(a.bits, b.bits), nil
		}
	}
	return cmpBits(a.bits, b.bits), nil
}

// Eq reports whether v equals o. A Vec operand is compared after
// flavor unification and length alignment, whatever its span; any
// other operand is first coerced to v's span and flavor. Strings
// containing the '-' wildcard are rejected; use Matches for pattern
// comparison.
func (v Vec) Eq(o any) (bool, error) {
	if s, ok := o.(string); ok && strings.ContainsRune(s, '-') {
		return false, errors.Wrap(ErrBadValue, "wildcard patterns are matched with Matches")
	}
	if ov, ok := o.(Vec); ok {
		a, b, err := sameTypes(v, ov)
		if err != nil {
			return false, err
		}
		a, b, err = sameLength(a, b)
		if err != nil {
			return false, err
		}
		return cmpBits(a.bits, b.bits) == 0, nil
	}
	ov, err := Make(v.span, v.flavor, o)
	if err != nil {
		return false, err
	}
	return cmpBits(v.bits, ov.bits) == 0, nil
}

// Matches reports whether v matches the pattern: one character per
// bit, '-' matching any value, underscores stripped. A pattern of the
// wrong width matches nothing.
func (v Vec) Matches(pattern string) (bool, error) {
	stripped := strings.ReplaceAll(pattern, "_", "")
	if len(stripped) != v.Len() {
		return false, nil
	}
	for i := 0; i < len(stripped); i++ {
		if !v.bits[i].Match(stripped[i]) {
			return false, nil
		}
	}
	return true, nil
}

// bigUint returns the unsigned integer reading of the bits; any Z or X
// bit fails with ErrUnknownBits.
func (v Vec) bigUint() (*big.Int, error) {
	out := new(big.Int)
	for i, b := range v.bits {
		switch b {
		case One:
			out.SetBit(out, v.Len()-1-i, 1)
		case Zero:
		default:
			return nil, errors.Wrapf(ErrUnknownBits, "%s", v)
		}
	}
	return out, nil
}

func (v Vec) bigInt() (*big.Int, error) {
	u, err := v.bigUint()
	if err != nil {
		return nil, err
	}
	if v.flavor == Signed && signBit(v).IsOne() {
		m := new(big.Int).Lsh(big.NewInt(1), uint(v.Len()))
		u.Sub(u, m)
	}
	return u, nil
}

// Uint returns the unsigned integer value of v.
func (v Vec) Uint() (uint64, error) {
	u, err := v.bigUint()
	if err != nil {
		return 0, err
	}
	if !u.IsUint64() {
		return 0, errors.Wrapf(ErrBadValue, "%s: does not fit in 64 bits", v)
	}
	return u.Uint64(), nil
}

// Int returns the integer value of v: two's complement for signed
// vectors, unsigned otherwise.
func (v Vec) Int() (int64, error) {
	i, err := v.bigInt()
	if err != nil {
		return 0, err
	}
	if !i.IsInt64() {
		return 0, errors.Wrapf(ErrBadValue, "%s: does not fit in 64 bits", v)
	}
	return i.Int64(), nil
}

// Text renders v in the given base: 'b' binary, 'o' octal, 'x'/'X'
// hex, 'd'/'n' decimal. Octal and hex group bits from the least
// significant end; a group containing Z or X renders as 'x' (or 'X'
// for the 'X' verb). Decimal fails with ErrUnknownBits. The empty
// vector renders as "" in binary and "0" in other bases.
func (v Vec) Text(verb byte) (string, error) {
	switch verb {
	case 'b':
		return v.String(), nil
	case 'd', 'n':
		if v.Len() == 0 {
			return "0", nil
		}
		i, err := v.bigInt()
		if err != nil {
			return "", err
		}
		return i.String(), nil
	case 'o':
		return v.grouped(3, 'x'), nil
	case 'x':
		return v.grouped(4, 'x'), nil
	case 'X':
		return v.grouped(4, 'X'), nil
	}
	return "", errors.Wrapf(ErrBadValue, "%q: bad format verb", verb)
}

const hexDigits = "0123456789abcdef"

func (v Vec) grouped(k int, unknown byte) string {
	if v.Len() == 0 {
		return "0"
	}
	bits := v.bits
	if pad := (k - len(bits)%k) % k; pad > 0 {
		bits = append(repeatBits(Zero, pad), bits...)
	}
	var sb strings.Builder
	for g := 0; g < len(bits); g += k {
		val, ok := 0, true
		for _, b := range bits[g : g+k] {
			switch b {
			case One:
				val = val<<1 | 1
			case Zero:
				val <<= 1
			default:
				ok = false
			}
		}
		if !ok {
			sb.WriteByte(unknown)
		} else if unknown == 'X' {
			sb.WriteByte(strings.ToUpper(hexDigits)[val])
		} else {
			sb.WriteByte(hexDigits[val])
		}
	}
	return sb.String()
}

// Format implements fmt.Formatter for the %b, %o, %d, %x, %X, %s and
// %v verbs.
func (v Vec) Format(f fmt.State, verb rune) {
	switch verb {
	case 's', 'v':
		io.WriteString(f, v.String())
	case 'b', 'o', 'd', 'n', 'x', 'X':
		s, err := v.Text(byte(verb))
		if err != nil {
			fmt.Fprintf(f, "%%!%c(logic.Vec=%s)", verb, v.String())
			return
		}
		io.WriteString(f, s)
	default:
		fmt.Fprintf(f, "%%!%c(logic.Vec=%s)", verb, v.String())
	}
}
