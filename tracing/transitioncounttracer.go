package tracing

import (
	"sync"

	"github.com/sarchlab/downcounter/counter"
)

// TransitionCountTracer counts clock edges by the kind of transition they
// caused.
type TransitionCountTracer struct {
	lock        sync.Mutex
	counts      map[counter.Transition]uint64
	wraps       uint64
	asyncResets uint64
}

// NewTransitionCountTracer creates a new TransitionCountTracer
func NewTransitionCountTracer() *TransitionCountTracer {
	return &TransitionCountTracer{
		counts: make(map[counter.Transition]uint64),
	}
}

// Edge counts one clock edge.
func (t *TransitionCountTracer) Edge(edge counter.ClockEdge) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.counts[edge.Transition]++

	if edge.Wrapped() {
		t.wraps++
	}
}

// AsyncReset counts one reset assertion.
func (t *TransitionCountTracer) AsyncReset(_ counter.AsyncReset) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.asyncResets++
}

// Count returns the number of edges that caused the given transition.
func (t *TransitionCountTracer) Count(kind counter.Transition) uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.counts[kind]
}

// Wraps returns the number of decrements from 0 to 255.
func (t *TransitionCountTracer) Wraps() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.wraps
}

// AsyncResets returns the number of reset assertions seen between edges.
func (t *TransitionCountTracer) AsyncResets() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.asyncResets
}

// Total returns the number of edges observed.
func (t *TransitionCountTracer) Total() uint64 {
	t.lock.Lock()
	defer t.lock.Unlock()

	var total uint64
	for _, n := range t.counts {
		total += n
	}

	return total
}
