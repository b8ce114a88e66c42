// Package vtime provides the simulator's virtual-time quantity: a
// picosecond-resolution timestamp with a small literal grammar.
package vtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadValue is returned when a timestamp cannot be constructed from
// the given source.
var ErrBadValue = errors.New("bad timestamp")

// Timestamp is a nonnegative count of picoseconds of virtual time.
type Timestamp int64

// Unit multipliers, coarsest first. Formatting scans this table and
// picks the first unit that divides the value evenly.
var units = []struct {
	name string
	ps   int64
}{
	{"d", 24 * 3600 * 1_000_000_000_000},
	{"h", 3600 * 1_000_000_000_000},
	{"m", 60 * 1_000_000_000_000},
	{"s", 1_000_000_000_000},
	{"ms", 1_000_000_000},
	{"us", 1_000_000},
	{"ns", 1_000},
	{"ps", 1},
}

var literal = regexp.MustCompile(`^([0-9_]+) ?(ps|ns|us|μs|ms|s|m|h|d)$`)

// New constructs a Timestamp from a Timestamp (identity), a
// nonnegative integer of picoseconds, or a literal string.
func New(v any) (Timestamp, error) {
	switch v := v.(type) {
	case Timestamp:
		return v, nil
	case int:
		return fromInt(int64(v))
	case int64:
		return fromInt(v)
	case uint64:
		return Timestamp(v), nil
	case string:
		return Parse(v)
	default:
		return 0, errors.Wrapf(ErrBadValue, "%v", v)
	}
}

func fromInt(v int64) (Timestamp, error) {
	if v < 0 {
		return 0, errors.Wrapf(ErrBadValue, "%d: negative", v)
	}
	return Timestamp(v), nil
}

// Parse parses a literal of the form <digits><unit> with unit one of
// ps, ns, us/μs, ms, s, m, h or d. Underscores may separate digits and
// a single space may precede the unit.
func Parse(s string) (Timestamp, error) {
	m := literal.FindStringSubmatch(s)
	if m == nil {
		return 0, errors.Wrapf(ErrBadValue, "%q", s)
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(m[1], "_", ""), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrBadValue, "%q", s)
	}
	unit := m[2]
	if unit == "μs" {
		unit = "us"
	}
	for _, u := range units {
		if u.name == unit {
			return Timestamp(n * u.ps), nil
		}
	}
	return 0, errors.Wrapf(ErrBadValue, "%q", s)
}

// Add returns t + o.
func (t Timestamp) Add(o Timestamp) Timestamp {
	return t + o
}

// Picoseconds returns the raw picosecond count.
func (t Timestamp) Picoseconds() int64 {
	return int64(t)
}

// String renders the timestamp in the coarsest unit that divides it
// evenly, e.g. "200 ns" or "1 us". Zero renders as "0 ps".
func (t Timestamp) String() string {
	if t == 0 {
		return "0 ps"
	}
	for _, u := range units {
		if int64(t)%u.ps == 0 {
			return fmt.Sprintf("%d %s", int64(t)/u.ps, u.name)
		}
	}
	return fmt.Sprintf("%d ps", int64(t))
}
