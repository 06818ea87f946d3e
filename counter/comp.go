package counter

import (
	"sync"

	"github.com/sarchlab/downcounter/sim"
)

var (
	// HookPosClockEdge fires after every clock edge with a ClockEdge item.
	HookPosClockEdge = &sim.HookPos{Name: "CounterClockEdge"}

	// HookPosAsyncReset fires when the reset line is asserted, with an
	// AsyncReset item.
	HookPosAsyncReset = &sim.HookPos{Name: "CounterAsyncReset"}
)

// ClockEdge describes one evaluated clock edge.
type ClockEdge struct {
	Cycle      uint64
	Inputs     Inputs
	Before     State
	After      State
	Transition Transition
}

// Wrapped returns true if the edge decremented the register from 0 to 255.
func (e ClockEdge) Wrapped() bool {
	return e.Transition == TransitionDecrement && e.Before.Value == 0
}

// AsyncReset describes a reset assertion that took effect between clock
// edges.
type AsyncReset struct {
	Cycle  uint64
	Before State
}

// Comp is a ticking 8-bit down-counter.
//
// The counter does not keep its own clock running. A driver sets the input
// lines and calls TickNow (or TickLater) for every edge it wants evaluated.
// Ticks are secondary events, so an edge at time t sees the lines that
// primary events set at time t.
type Comp struct {
	*sim.TickingComponent

	lock   sync.RWMutex
	spec   Spec
	state  State
	inputs Inputs
}

// Spec returns the configuration the counter was built with.
func (c *Comp) Spec() Spec {
	return c.spec
}

// Value returns the register content. It follows the register continuously,
// including between clock edges.
func (c *Comp) Value() uint8 {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.state.Value
}

// State returns a snapshot of the register.
func (c *Comp) State() State {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.state
}

// SetState overwrites the register. While reset is asserted the register
// stays at ResetValue.
func (c *Comp) SetState(s State) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.inputs.Reset {
		s = State{Value: ResetValue}
	}

	c.state = s
}

// Inputs returns the current levels of the control lines.
func (c *Comp) Inputs() Inputs {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.inputs
}

// SetEnable drives the enable line. The level is sampled at the next edge.
func (c *Comp) SetEnable(enable bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.inputs.Enable = enable
}

// SetReset drives the reset line. Asserting reset forces the register to
// ResetValue immediately, without waiting for a clock edge.
func (c *Comp) SetReset(asserted bool) {
	c.lock.Lock()
	rising := asserted && !c.inputs.Reset
	before := c.state
	c.inputs.Reset = asserted
	if asserted {
		c.state = State{Value: ResetValue}
	}
	c.lock.Unlock()

	if !rising {
		return
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosAsyncReset,
		Item: AsyncReset{
			Cycle:  c.CurrentCycle(),
			Before: before,
		},
	})
}

// Tick evaluates one clock edge. It always returns false because the driver
// decides when the next edge happens.
func (c *Comp) Tick() bool {
	c.lock.Lock()
	edge := ClockEdge{
		Cycle:  c.CurrentCycle(),
		Inputs: c.inputs,
		Before: c.state,
	}
	edge.After, edge.Transition = Step(c.state, c.inputs)
	c.state = edge.After
	c.lock.Unlock()

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosClockEdge,
		Item:   edge,
	})

	return false
}
