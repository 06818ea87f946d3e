package datarecording

import (
	"github.com/sarchlab/downcounter/sim"
	"github.com/sarchlab/downcounter/testbench"
)

// SampleTable is the table that SampleHook writes into.
const SampleTable = "counter_trace"

// SampleHook records every bench sample into the SampleTable table.
type SampleHook struct {
	recorder DataRecorder
}

// NewSampleHook creates the SampleTable table in the recorder and returns a
// hook that fills it. Attach the hook to a testbench.Bench.
func NewSampleHook(recorder DataRecorder) *SampleHook {
	recorder.CreateTable(SampleTable, testbench.Sample{})

	return &SampleHook{recorder: recorder}
}

// Func inserts the sample carried by the hook context.
func (h *SampleHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != testbench.HookPosSample {
		return
	}

	h.recorder.InsertData(SampleTable, ctx.Item.(testbench.Sample))
}
