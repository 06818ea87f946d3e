package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/downcounter/testbench"
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario",
		Short: "Run the reference reset, count, hold and wrap sequence.",
		Long: "Scenario resets the counter, enables it for 5 cycles, holds " +
			"it for 1 cycle and enables it for 251 more cycles, checking " +
			"that it reads 255, 250, 250 and 255 at those points.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			samples, err := testbench.Run(testbench.Scenario())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, cp := range testbench.ScenarioCheckpoints() {
				if cp.Tick < len(samples) {
					fmt.Fprintf(out, "tick %d: %d (want %d)\n",
						cp.Tick, samples[cp.Tick].Value, cp.Want)
				}
			}

			if err := testbench.Verify(
				samples, testbench.ScenarioCheckpoints()); err != nil {
				return err
			}

			fmt.Fprintln(out, "ok")

			return nil
		},
	}
}
