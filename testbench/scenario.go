package testbench

import (
	"errors"
	"fmt"
)

// Checkpoint is the value expected right after a given stimulus is applied.
// Tick is the zero-based index of the stimulus.
type Checkpoint struct {
	Tick int
	Want uint8
}

// Scenario returns the reference sequence: a reset, five enabled cycles, one
// held cycle and 251 enabled cycles.
func Scenario() []Stimulus {
	stimuli := []Stimulus{Reset}
	stimuli = append(stimuli, Repeat(Enable, 5)...)
	stimuli = append(stimuli, Hold)
	stimuli = append(stimuli, Repeat(Enable, 251)...)

	return stimuli
}

// ScenarioCheckpoints returns the values that the reference sequence must
// produce: 255 after reset, 250 after five decrements, 250 after the hold and
// 255 after wrapping through zero.
func ScenarioCheckpoints() []Checkpoint {
	return []Checkpoint{
		{Tick: 0, Want: 255},
		{Tick: 5, Want: 250},
		{Tick: 6, Want: 250},
		{Tick: 257, Want: 255},
	}
}

// Verify checks samples against checkpoints and reports every mismatch.
func Verify(samples []Sample, checkpoints []Checkpoint) error {
	var errs []error

	for _, cp := range checkpoints {
		if cp.Tick < 0 || cp.Tick >= len(samples) {
			errs = append(errs, fmt.Errorf(
				"tick %d: no sample, only %d recorded", cp.Tick, len(samples)))
			continue
		}

		if got := samples[cp.Tick].Value; got != cp.Want {
			errs = append(errs, fmt.Errorf(
				"tick %d: got %d, want %d", cp.Tick, got, cp.Want))
		}
	}

	return errors.Join(errs...)
}
