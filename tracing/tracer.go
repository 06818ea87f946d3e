// Package tracing collects statistics and logs from counter clock edges.
package tracing

import (
	"github.com/sarchlab/downcounter/counter"
	"github.com/sarchlab/downcounter/sim"
)

// NamedHookable represent something both have a name and can be hooked
type NamedHookable interface {
	sim.Named
	sim.Hookable
}

// Tracer observes what happens to a counter.
type Tracer interface {
	// Edge is called after every evaluated clock edge.
	Edge(edge counter.ClockEdge)

	// AsyncReset is called when the reset line rises between edges.
	AsyncReset(reset counter.AsyncReset)
}

// CollectTrace lets the tracer observe a domain that fires counter hooks.
func CollectTrace(domain NamedHookable, tracer Tracer) {
	if domain == nil {
		panic("domain must not be nil")
	}

	if domain.Name() == "" {
		panic("domain must have a name")
	}

	domain.AcceptHook(&traceHook{t: tracer})
}

// A traceHook dispatches counter hooks to a tracer.
type traceHook struct {
	t Tracer
}

// Func calls the tracer interfaces when the hook is triggered
func (h *traceHook) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case counter.HookPosClockEdge:
		h.t.Edge(ctx.Item.(counter.ClockEdge))
	case counter.HookPosAsyncReset:
		h.t.AsyncReset(ctx.Item.(counter.AsyncReset))
	}
}
