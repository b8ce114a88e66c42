package logic

import (
	"fmt"

	"github.com/pkg/errors"
)

// Span is an inclusive high-to-low index range [start:end] with
// start >= end >= 0. It maps the external index domain [end..start]
// onto the internal offset domain [0..len-1] (offset 0 is the most
// significant position) and back.
//
// EmptySpan is the distinguished zero-length value. The zero Span is
// the one-bit range [0:0].
type Span struct {
	start, end int
}

// EmptySpan is the span of a zero-length vector.
var EmptySpan = Span{-1, 0}

// NewSpan builds the span [start:end]. Reverse or negative bounds are
// rejected.
func NewSpan(start, end int) (Span, error) {
	if start < end || end < 0 {
		return Span{}, errors.Wrapf(ErrBadValue, "bad span %d:%d", start, end)
	}
	return Span{start, end}, nil
}

// Start returns the high (most significant) external index.
func (s Span) Start() int { return s.start }

// End returns the low (least significant) external index.
func (s Span) End() int { return s.end }

// Len returns the number of positions covered.
func (s Span) Len() int { return s.start - s.end + 1 }

// IsEmpty reports whether the span covers no positions.
func (s Span) IsEmpty() bool { return s.Len() == 0 }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.start, s.end)
}

// resolve turns a negative external index into its absolute form:
// -1 denotes the most significant position (start), -2 the one below
// it, and so on.
func (s Span) resolve(i int) int {
	if i < 0 {
		return s.start - (-i - 1)
	}
	return i
}

func (s Span) contains(i int) bool {
	return i >= s.end && i <= s.start
}

// Map translates the external index i into an internal offset.
func (s Span) Map(i int) (int, error) {
	i = s.resolve(i)
	if !s.contains(i) {
		return 0, errors.Wrapf(ErrOutOfBounds, "index %d not in %s", i, s)
	}
	return s.start - i, nil
}

// MapRange translates the inclusive external range [hi:lo] into the
// internal half-open offset range [from:to). The range must follow the
// span's high-to-low ordering.
func (s Span) MapRange(hi, lo int) (from, to int, err error) {
	from, err = s.Map(hi)
	if err != nil {
		return 0, 0, err
	}
	last, err := s.Map(lo)
	if err != nil {
		return 0, 0, err
	}
	if last < from {
		return 0, 0, errors.Wrapf(ErrOutOfBounds, "range %d:%d reversed in %s", hi, lo, s)
	}
	return from, last + 1, nil
}

// RMap translates the internal offset back into an external index.
// Negative offsets count from the least significant end.
func (s Span) RMap(off int) (int, error) {
	if off < 0 {
		off = s.Len() + off
	}
	i := s.start - off
	if !s.contains(i) {
		return 0, errors.Wrapf(ErrOutOfBounds, "offset %d not in %s", off, s)
	}
	return i, nil
}

// RMapRange translates the internal half-open offset range [from:to)
// back into an inclusive external range.
func (s Span) RMapRange(from, to int) (hi, lo int, err error) {
	hi, err = s.RMap(from)
	if err != nil {
		return 0, 0, err
	}
	lo, err = s.RMap(to - 1)
	if err != nil {
		return 0, 0, err
	}
	return hi, lo, nil
}

// Sub returns the sub-span covering the inclusive external range
// [hi:lo], which becomes the span of a slice result.
func (s Span) Sub(hi, lo int) (Span, error) {
	hi, lo = s.resolve(hi), s.resolve(lo)
	if !s.contains(hi) || !s.contains(lo) || hi < lo {
		return Span{}, errors.Wrapf(ErrOutOfBounds, "range %d:%d not in %s", hi, lo, s)
	}
	return Span{hi, lo}, nil
}
