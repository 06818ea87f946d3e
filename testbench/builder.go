package testbench

import (
	"github.com/sarchlab/downcounter/counter"
	"github.com/sarchlab/downcounter/sim"
)

// Builder can build benches.
type Builder struct {
	engine sim.Engine
	dut    *counter.Comp
}

// MakeBuilder creates a new Builder.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the engine the bench runs on.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithDUT sets the counter to drive. The bench runs on the counter's clock.
func (b Builder) WithDUT(dut *counter.Comp) Builder {
	b.dut = dut
	return b
}

// Build creates a bench and attaches it to the counter.
func (b Builder) Build(name string) *Bench {
	if b.engine == nil {
		panic("testbench: engine is not set")
	}

	if b.dut == nil {
		panic("testbench: counter is not set")
	}

	bench := &Bench{dut: b.dut}
	bench.TickingComponent = sim.NewTickingComponent(
		name, b.engine, b.dut.Spec().Freq, bench)

	bench.observer = &edgeObserver{bench: bench}
	b.dut.AcceptHook(bench.observer)

	return bench
}

// Run clocks a freshly built counter with the stimuli and returns one sample
// per stimulus.
func Run(stimuli []Stimulus) ([]Sample, error) {
	engine := sim.NewSerialEngine()
	dut := counter.MakeBuilder().WithEngine(engine).Build("Counter")
	bench := MakeBuilder().WithEngine(engine).WithDUT(dut).Build("Bench")

	bench.Feed(stimuli...)
	bench.Start()

	if err := engine.Run(); err != nil {
		return nil, err
	}

	return bench.Samples(), nil
}
