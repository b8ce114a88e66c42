package logic

import (
	"testing"

	"github.com/pkg/errors"
)

func TestNewSpan(t *testing.T) {
	s, err := NewSpan(7, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Start() != 7 || s.End() != 0 || s.Len() != 8 {
		t.Errorf("span 7:0 = start %d end %d len %d", s.Start(), s.End(), s.Len())
	}

	for _, bad := range [][2]int{{0, 1}, {3, 5}, {0, -1}, {-2, -5}} {
		if _, err := NewSpan(bad[0], bad[1]); !errors.Is(err, ErrBadValue) {
			t.Errorf("NewSpan(%d, %d): expected ErrBadValue, got %v", bad[0], bad[1], err)
		}
	}
}

func TestEmptySpan(t *testing.T) {
	if !EmptySpan.IsEmpty() || EmptySpan.Len() != 0 {
		t.Error("EmptySpan is not empty")
	}
	if _, err := EmptySpan.Map(0); !errors.Is(err, ErrOutOfBounds) {
		t.Error("EmptySpan.Map(0) should be out of bounds")
	}
}

func TestMap(t *testing.T) {
	s := Span{7, 0}
	tests := []struct {
		in, want int
	}{
		{7, 0},
		{0, 7},
		{4, 3},
		{-1, 0}, // -1 is the MSB
		{-8, 7},
	}
	for _, tc := range tests {
		got, err := s.Map(tc.in)
		if err != nil {
			t.Errorf("Map(%d): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Map(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}

	for _, bad := range []int{8, -9, 100} {
		if _, err := s.Map(bad); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Map(%d): expected ErrOutOfBounds, got %v", bad, err)
		}
	}
}

func TestMapOffsetSpan(t *testing.T) {
	s := Span{5, 2}
	if got, _ := s.Map(5); got != 0 {
		t.Errorf("Map(5) = %d, want 0", got)
	}
	if got, _ := s.Map(2); got != 3 {
		t.Errorf("Map(2) = %d, want 3", got)
	}
	if _, err := s.Map(1); !errors.Is(err, ErrOutOfBounds) {
		t.Error("Map(1) should be out of bounds for 5:2")
	}
	if _, err := s.Map(6); !errors.Is(err, ErrOutOfBounds) {
		t.Error("Map(6) should be out of bounds for 5:2")
	}
}

func TestMapRange(t *testing.T) {
	s := Span{7, 0}
	from, to, err := s.MapRange(5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if from != 2 || to != 6 {
		t.Errorf("MapRange(5, 2) = [%d:%d), want [2:6)", from, to)
	}

	from, to, err = s.MapRange(-1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if from != 0 || to != 8 {
		t.Errorf("MapRange(-1, 0) = [%d:%d), want [0:8)", from, to)
	}

	if _, _, err := s.MapRange(2, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Error("reversed range should fail")
	}
}

// TestRoundTrip: rmap(map(i)) == i on the external domain and
// map(rmap(j)) == j on the internal domain.
func TestRoundTrip(t *testing.T) {
	spans := []Span{{7, 0}, {5, 2}, {0, 0}, {12, 12}}
	for _, s := range spans {
		for i := s.End(); i <= s.Start(); i++ {
			off, err := s.Map(i)
			if err != nil {
				t.Fatalf("%s.Map(%d): %v", s, i, err)
			}
			back, err := s.RMap(off)
			if err != nil {
				t.Fatalf("%s.RMap(%d): %v", s, off, err)
			}
			if back != i {
				t.Errorf("%s: rmap(map(%d)) = %d", s, i, back)
			}
		}
		for j := 0; j < s.Len(); j++ {
			ext, err := s.RMap(j)
			if err != nil {
				t.Fatalf("%s.RMap(%d): %v", s, j, err)
			}
			back, err := s.Map(ext)
			if err != nil {
				t.Fatalf("%s.Map(%d): %v", s, ext, err)
			}
			if back != j {
				t.Errorf("%s: map(rmap(%d)) = %d", s, j, back)
			}
		}
	}
}

func TestSub(t *testing.T) {
	s := Span{7, 0}
	sub, err := s.Sub(5, 2)
	if err != nil {
		t.Fatal(err)
	}
	if sub != (Span{5, 2}) {
		t.Errorf("Sub(5, 2) = %s", sub)
	}

	sub, err = s.Sub(-1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sub != s {
		t.Errorf("Sub(-1, 0) = %s, want %s", sub, s)
	}

	if _, err := s.Sub(2, 5); !errors.Is(err, ErrOutOfBounds) {
		t.Error("reversed Sub should fail")
	}
	if _, err := s.Sub(9, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Error("out-of-range Sub should fail")
	}
}

func TestSpanString(t *testing.T) {
	if got := (Span{7, 0}).String(); got != "7:0" {
		t.Errorf("String() = %q", got)
	}
}
