package counter

import (
	"github.com/sarchlab/downcounter/sim"
)

// Builder can build counters.
type Builder struct {
	engine sim.Engine
	spec   Spec
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{spec: defaults()}
}

// WithEngine sets the engine that the counter schedules its edges on.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the counter's clock.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.spec.Freq = freq
	return b
}

// WithSpec replaces the whole configuration.
func (b Builder) WithSpec(spec Spec) Builder {
	b.spec = spec
	return b
}

// Build creates a counter. The register starts at ResetValue.
func (b Builder) Build(name string) *Comp {
	if b.engine == nil {
		panic("counter: engine is not set")
	}

	if err := b.spec.validate(); err != nil {
		panic(err)
	}

	c := &Comp{
		spec:  b.spec,
		state: State{Value: ResetValue},
	}
	c.TickingComponent = sim.NewSecondaryTickingComponent(
		name, b.engine, b.spec.Freq, c)

	return c
}
