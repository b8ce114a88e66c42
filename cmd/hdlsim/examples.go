package main

import (
	"github.com/irdc/gohdl/pkg/hdl"
	"github.com/irdc/gohdl/pkg/logic"
	"github.com/irdc/gohdl/pkg/vtime"
)

// Built-in example parts. They double as living documentation: run
// them with `hdlsim run flipflop_bench -v` to watch the scheduler.

func delay(literal string) hdl.Wait {
	d, err := vtime.Parse(literal)
	if err != nil {
		panic(err)
	}
	return hdl.WaitDelay(d)
}

func mustUnsigned(hi, lo int, v any) logic.Vec {
	vec, err := logic.MakeUnsigned(hi, lo, v)
	if err != nil {
		panic(err)
	}
	return vec
}

// Flipflop is a gated D flip-flop with an async reset and an inverted
// output.
var Flipflop = hdl.MustType("flipflop",
	hdl.SignalOf("clk", hdl.LogicType()),
	hdl.SignalOf("rst", hdl.LogicType()),
	hdl.SignalOf("en", hdl.LogicType()),
	hdl.SignalOf("d", hdl.LogicType()),
	hdl.SignalOf("o", hdl.LogicType()),
	hdl.SignalOf("no", hdl.LogicType()),

	hdl.When(hdl.Cond{Rising: []string{"rst", "clk"}}, func(ctx hdl.Ctx, self *hdl.Instance) error {
		if self.Logic("rst").IsOne() {
			return self.Set("o", 0)
		}
		if self.Logic("clk").IsOne() && self.Logic("en").IsOne() {
			return self.Set("o", self.Logic("d"))
		}
		return nil
	}),

	hdl.Always(func(ctx hdl.Ctx, self *hdl.Instance) error {
		return self.Set("no", self.Logic("o").Not())
	}),
)

// FlipflopBench toggles the flip-flop's clock through a fixed input
// program with 200 ns between edges.
var FlipflopBench = hdl.MustType("flipflop_bench",
	hdl.Sub("ff", Flipflop),

	hdl.Once(func(ctx hdl.Ctx, self *hdl.Instance) error {
		type pair struct {
			attr  string
			value any
		}
		program := [][]pair{
			{{"en", 0}, {"d", 0}, {"rst", 1}},
			{{"rst", 0}},
			{{"en", 1}, {"d", 1}},
			{{"en", 0}, {"d", 0}},
			{{"en", 1}, {"d", 0}},
			{{"en", 0}, {"d", 1}},
		}

		ff := self.Part("ff")
		if err := ff.Set("clk", 0); err != nil {
			return err
		}
		ctx.Wait(delay("200ns"))
		for _, step := range program {
			for _, p := range step {
				if err := ff.Set(p.attr, p.value); err != nil {
					return err
				}
			}
			if err := ff.Set("clk", ff.Logic("clk").Not()); err != nil {
				return err
			}
			ctx.Wait(delay("200ns"))
		}
		return nil
	}),
)

var counterOne = mustUnsigned(7, 0, 1)

// Counter8 increments an 8-bit unsigned value on every clock rise.
var Counter8 = hdl.MustType("counter8",
	hdl.SignalOf("clk", hdl.LogicType()),
	hdl.SignalDefault("value", hdl.UnsignedType(7, 0), 0),

	hdl.When(hdl.Cond{Rising: []string{"clk"}}, func(ctx hdl.Ctx, self *hdl.Instance) error {
		next, err := self.Vec("value").Add(counterOne)
		if err != nil {
			return err
		}
		return self.Set("value", next)
	}),
)

// Counter8Bench clocks the counter 16 times at 100 ns per edge.
var Counter8Bench = hdl.MustType("counter8_bench",
	hdl.Sub("ctr", Counter8),

	hdl.Once(func(ctx hdl.Ctx, self *hdl.Instance) error {
		ctr := self.Part("ctr")
		if err := ctr.Set("clk", 0); err != nil {
			return err
		}
		for i := 0; i < 32; i++ {
			ctx.Wait(delay("100ns"))
			if err := ctr.Set("clk", ctr.Logic("clk").Not()); err != nil {
				return err
			}
		}
		return nil
	}),
)
