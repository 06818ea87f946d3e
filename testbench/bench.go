// Package testbench drives a counter with a sequence of (reset, enable)
// stimuli, one per clock cycle, and samples the counter's output after every
// edge.
package testbench

import (
	"github.com/sarchlab/downcounter/counter"
	"github.com/sarchlab/downcounter/sim"
)

// HookPosSample fires every time the bench records a Sample.
var HookPosSample = &sim.HookPos{Name: "BenchSample"}

// Stimulus is the level of the counter's input lines during one cycle.
type Stimulus struct {
	Reset  bool
	Enable bool
}

// Sample is the counter output observed after the edge of one cycle.
type Sample struct {
	Cycle      uint64
	Reset      bool
	Enable     bool
	Value      uint8
	Transition string
}

// Bench is a ticking component that applies one stimulus per cycle to a
// counter. In the cycle it applies a stimulus, it also requests the counter's
// edge, and it records the value the counter holds after that edge.
type Bench struct {
	*sim.TickingComponent

	dut      *counter.Comp
	stimuli  []Stimulus
	next     int
	samples  []Sample
	started  bool
	observer *edgeObserver
}

// Feed appends stimuli to the end of the bench's queue.
func (b *Bench) Feed(stimuli ...Stimulus) {
	b.stimuli = append(b.stimuli, stimuli...)
}

// Start wakes the bench up. Call it before running the engine, and again
// after feeding more stimuli to a bench that has drained its queue. The bench
// goes to sleep in the cycle of its last stimulus, so a restarted bench
// continues at the following cycle.
func (b *Bench) Start() {
	if b.started {
		b.TickLater()
		return
	}

	b.started = true
	b.TickNow()
}

// Pending returns the number of stimuli not applied yet.
func (b *Bench) Pending() int {
	return len(b.stimuli) - b.next
}

// Samples returns the samples recorded so far.
func (b *Bench) Samples() []Sample {
	samples := make([]Sample, len(b.samples))
	copy(samples, b.samples)

	return samples
}

// Tick applies the next stimulus and clocks the counter.
func (b *Bench) Tick() bool {
	if b.next >= len(b.stimuli) {
		return false
	}

	s := b.stimuli[b.next]
	b.next++

	b.dut.SetReset(s.Reset)
	b.dut.SetEnable(s.Enable)
	b.dut.TickNow()

	return b.next < len(b.stimuli)
}

func (b *Bench) record(edge counter.ClockEdge) {
	sample := Sample{
		Cycle:      edge.Cycle,
		Reset:      edge.Inputs.Reset,
		Enable:     edge.Inputs.Enable,
		Value:      edge.After.Value,
		Transition: edge.Transition.String(),
	}
	b.samples = append(b.samples, sample)

	b.InvokeHook(sim.HookCtx{
		Domain: b,
		Pos:    HookPosSample,
		Item:   sample,
	})
}

type edgeObserver struct {
	bench *Bench
}

func (o *edgeObserver) Func(ctx sim.HookCtx) {
	if ctx.Pos != counter.HookPosClockEdge {
		return
	}

	o.bench.record(ctx.Item.(counter.ClockEdge))
}

// Values extracts the counter values from samples.
func Values(samples []Sample) []uint8 {
	values := make([]uint8, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}

	return values
}
