package counter

import (
	"fmt"
	"math"

	"github.com/sarchlab/downcounter/sim"
)

// Spec is the immutable configuration of a counter.
type Spec struct {
	// Freq is the frequency of the counter's clock.
	Freq sim.Freq
}

func defaults() Spec {
	return Spec{Freq: 1 * sim.GHz}
}

func (s Spec) validate() error {
	f := float64(s.Freq)
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return fmt.Errorf("counter: frequency must be positive and finite, got %g", s.Freq)
	}

	return nil
}
