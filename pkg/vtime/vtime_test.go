package vtime

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0ps", 0},
		{"123ps", 123},
		{"123 ps", 123},
		{"200ns", 200_000},
		{"1_000_000 ps", 1_000_000},
		{"1us", 1_000_000},
		{"1μs", 1_000_000},
		{"15ms", 15_000_000_000},
		{"2s", 2_000_000_000_000},
		{"1m", 60_000_000_000_000},
		{"3h", 3 * 3600_000_000_000_000},
		{"1d", 24 * 3600_000_000_000_000},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tc.in, err)
			}
			if got.Picoseconds() != tc.want {
				t.Errorf("Parse(%q) = %d, want %d", tc.in, got.Picoseconds(), tc.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"",
		"123",
		"()",
		"ps",
		"-5ps",
		"1 minute",
		"1  ps",
		"1.5ns",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); !errors.Is(err, ErrBadValue) {
				t.Errorf("Parse(%q): expected ErrBadValue, got %v", in, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if got, err := New(Timestamp(42)); err != nil || got != 42 {
		t.Errorf("New(Timestamp): got %v, %v", got, err)
	}
	if got, err := New(1500); err != nil || got != 1500 {
		t.Errorf("New(int): got %v, %v", got, err)
	}
	if got, err := New("200ns"); err != nil || got != 200_000 {
		t.Errorf("New(string): got %v, %v", got, err)
	}
	if _, err := New(-1); !errors.Is(err, ErrBadValue) {
		t.Errorf("New(-1): expected ErrBadValue, got %v", err)
	}
	if _, err := New(true); !errors.Is(err, ErrBadValue) {
		t.Errorf("New(bool): expected ErrBadValue, got %v", err)
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		ps   int64
		want string
	}{
		{0, "0 ps"},
		{123, "123 ps"},
		{1500, "1500 ps"},
		{200_000, "200 ns"},
		{1_000_000, "1 us"},
		{90_000_000_000_000, "90 s"},
		{60_000_000_000_000, "1 m"},
		{3600_000_000_000_000, "1 h"},
		{48 * 3600_000_000_000_000, "2 d"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := Timestamp(tc.ps).String(); got != tc.want {
				t.Errorf("Timestamp(%d) = %q, want %q", tc.ps, got, tc.want)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	a, _ := Parse("200ns")
	b, _ := Parse("1us")
	if got := a.Add(b); got.Picoseconds() != 1_200_000 {
		t.Errorf("200ns + 1us = %d ps, want 1200000", got.Picoseconds())
	}
}
