package logic

import (
	"testing"

	"github.com/pkg/errors"
)

var all = []Logic{Zero, One, HiZ, Unknown}

func TestNew(t *testing.T) {
	tests := []struct {
		in   any
		want Logic
	}{
		{Zero, Zero},
		{false, Zero},
		{true, One},
		{0, Zero},
		{1, One},
		{'0', Zero},
		{'1', One},
		{'z', HiZ},
		{'Z', HiZ},
		{'x', Unknown},
		{'X', Unknown},
		{"0", Zero},
		{"Z", HiZ},
	}
	for _, tc := range tests {
		got, err := New(tc.in)
		if err != nil {
			t.Errorf("New(%v): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("New(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewInvalid(t *testing.T) {
	for _, in := range []any{2, -1, 'a', "-", "ZZ", "", 1.5} {
		if _, err := New(in); !errors.Is(err, ErrBadValue) {
			t.Errorf("New(%v): expected ErrBadValue, got %v", in, err)
		}
	}
}

// TestTruthTables checks every cell of the AND, OR and XOR tables.
func TestTruthTables(t *testing.T) {
	and := map[[2]Logic]Logic{
		{Zero, Zero}: Zero, {Zero, One}: Zero, {Zero, HiZ}: Zero, {Zero, Unknown}: Zero,
		{One, Zero}: Zero, {One, One}: One, {One, HiZ}: Unknown, {One, Unknown}: Unknown,
		{HiZ, Zero}: Zero, {HiZ, One}: Unknown, {HiZ, HiZ}: Unknown, {HiZ, Unknown}: Unknown,
		{Unknown, Zero}: Zero, {Unknown, One}: Unknown, {Unknown, HiZ}: Unknown, {Unknown, Unknown}: Unknown,
	}
	or := map[[2]Logic]Logic{
		{Zero, Zero}: Zero, {Zero, One}: One, {Zero, HiZ}: Unknown, {Zero, Unknown}: Unknown,
		{One, Zero}: One, {One, One}: One, {One, HiZ}: One, {One, Unknown}: One,
		{HiZ, Zero}: Unknown, {HiZ, One}: One, {HiZ, HiZ}: Unknown, {HiZ, Unknown}: Unknown,
		{Unknown, Zero}: Unknown, {Unknown, One}: One, {Unknown, HiZ}: Unknown, {Unknown, Unknown}: Unknown,
	}
	xor := map[[2]Logic]Logic{
		{Zero, Zero}: Zero, {Zero, One}: One, {Zero, HiZ}: Unknown, {Zero, Unknown}: Unknown,
		{One, Zero}: One, {One, One}: Zero, {One, HiZ}: Unknown, {One, Unknown}: Unknown,
		{HiZ, Zero}: Unknown, {HiZ, One}: Unknown, {HiZ, HiZ}: Unknown, {HiZ, Unknown}: Unknown,
		{Unknown, Zero}: Unknown, {Unknown, One}: Unknown, {Unknown, HiZ}: Unknown, {Unknown, Unknown}: Unknown,
	}

	for _, a := range all {
		for _, b := range all {
			if got := a.And(b); got != and[[2]Logic{a, b}] {
				t.Errorf("%v & %v = %v, want %v", a, b, got, and[[2]Logic{a, b}])
			}
			if got := a.Or(b); got != or[[2]Logic{a, b}] {
				t.Errorf("%v | %v = %v, want %v", a, b, got, or[[2]Logic{a, b}])
			}
			if got := a.Xor(b); got != xor[[2]Logic{a, b}] {
				t.Errorf("%v ^ %v = %v, want %v", a, b, got, xor[[2]Logic{a, b}])
			}
		}
	}
}

func TestNot(t *testing.T) {
	tests := map[Logic]Logic{Zero: One, One: Zero, HiZ: Unknown, Unknown: Unknown}
	for in, want := range tests {
		if got := in.Not(); got != want {
			t.Errorf("~%v = %v, want %v", in, got, want)
		}
	}
}

// TestInvolution: ~~x == x exactly for the binary values; everything
// else collapses to Unknown.
func TestInvolution(t *testing.T) {
	for _, x := range all {
		got := x.Not().Not()
		if x == Zero || x == One {
			if got != x {
				t.Errorf("~~%v = %v, want %v", x, got, x)
			}
		} else if got != Unknown {
			t.Errorf("~~%v = %v, want X", x, got)
		}
	}
}

func TestCommutativity(t *testing.T) {
	for _, a := range all {
		for _, b := range all {
			if a.And(b) != b.And(a) {
				t.Errorf("AND not commutative for %v, %v", a, b)
			}
			if a.Or(b) != b.Or(a) {
				t.Errorf("OR not commutative for %v, %v", a, b)
			}
			if a.Xor(b) != b.Xor(a) {
				t.Errorf("XOR not commutative for %v, %v", a, b)
			}
		}
	}
}

func TestAssociativity(t *testing.T) {
	for _, a := range all {
		for _, b := range all {
			for _, c := range all {
				if a.And(b).And(c) != a.And(b.And(c)) {
					t.Errorf("AND not associative for %v, %v, %v", a, b, c)
				}
				if a.Or(b).Or(c) != a.Or(b.Or(c)) {
					t.Errorf("OR not associative for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

// TestScenarioScalarAlgebra covers Z & 1 == X, 0 | X == X, ~Z == X.
func TestScenarioScalarAlgebra(t *testing.T) {
	if got := HiZ.And(One); got != Unknown {
		t.Errorf("Z & 1 = %v, want X", got)
	}
	if got := Zero.Or(Unknown); got != Unknown {
		t.Errorf("0 | X = %v, want X", got)
	}
	if got := HiZ.Not(); got != Unknown {
		t.Errorf("~Z = %v, want X", got)
	}
}

func TestIsOne(t *testing.T) {
	for _, x := range all {
		if x.IsOne() != (x == One) {
			t.Errorf("IsOne(%v) wrong", x)
		}
	}
}

func TestInt(t *testing.T) {
	if n, err := Zero.Int(); err != nil || n != 0 {
		t.Errorf("int(0) = %d, %v", n, err)
	}
	if n, err := One.Int(); err != nil || n != 1 {
		t.Errorf("int(1) = %d, %v", n, err)
	}
	for _, l := range []Logic{HiZ, Unknown} {
		if _, err := l.Int(); !errors.Is(err, ErrUnknownBits) {
			t.Errorf("int(%v): expected ErrUnknownBits, got %v", l, err)
		}
	}
}

func TestRank(t *testing.T) {
	// 0 < 1 < X < Z
	if !(Zero.Rank() < One.Rank() && One.Rank() < Unknown.Rank() && Unknown.Rank() < HiZ.Rank()) {
		t.Error("rank order violated")
	}
}

func TestMatch(t *testing.T) {
	for _, x := range all {
		if !x.Match('-') {
			t.Errorf("%v should match '-'", x)
		}
		if !x.Match(x.Char()) {
			t.Errorf("%v should match its own character", x)
		}
	}
	if Zero.Match('1') || Zero.Match('?') {
		t.Error("Zero matched a foreign character")
	}
}

func TestCat(t *testing.T) {
	v := Zero.Cat(One)
	if v.Len() != 2 || v.Flavor() != Plain || v.String() != "01" {
		t.Errorf("0 cat 1 = %s (%d bits, %s)", v, v.Len(), v.Flavor())
	}
	if v.Span() != (Span{1, 0}) {
		t.Errorf("cat span = %s, want 1:0", v.Span())
	}
}
