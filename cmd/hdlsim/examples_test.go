package main

import (
	"testing"

	"github.com/irdc/gohdl/pkg/hdl"
	"github.com/irdc/gohdl/pkg/logic"
	"github.com/irdc/gohdl/pkg/sim"
)

func TestExamplesRegistered(t *testing.T) {
	for _, name := range []string{"flipflop", "flipflop_bench", "counter8", "counter8_bench"} {
		if _, err := hdl.Lookup(name); err != nil {
			t.Errorf("Lookup(%q): %v", name, err)
		}
	}
}

func TestFlipflopBenchRuns(t *testing.T) {
	root := FlipflopBench.New()
	if err := sim.New(root).Run(); err != nil {
		t.Fatal(err)
	}

	ff := root.Part("ff")
	if got := ff.Logic("clk"); got != logic.Zero {
		t.Errorf("final clk = %v, want 0", got)
	}
	// the program ends with en=0, d=1 on a falling edge: o stays 0
	if got := ff.Logic("o"); got != logic.Zero {
		t.Errorf("final o = %v, want 0", got)
	}
	if got := ff.Logic("no"); got != logic.One {
		t.Errorf("final no = %v, want 1", got)
	}
}

func TestCounterBenchRuns(t *testing.T) {
	root := Counter8Bench.New()
	if err := sim.New(root).Run(); err != nil {
		t.Fatal(err)
	}

	got, err := root.Part("ctr").Vec("value").Uint()
	if err != nil {
		t.Fatal(err)
	}
	if got != 16 {
		t.Errorf("counter = %d after 16 rising edges", got)
	}
}
