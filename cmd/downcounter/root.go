package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "downcounter",
		Short: "Simulates an 8-bit down-counter with reset and enable lines.",
		Long: "downcounter clocks an 8-bit down-counter with a sequence of " +
			"reset and enable stimuli and prints the value after every " +
			"clock edge.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if GetFlag(cmd, "verbose") {
				log.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false,
		"increase logging verbosity")

	rootCmd.AddCommand(newRunCmd(), newScenarioCmd())

	return rootCmd
}

// GetFlag gets an expected boolean flag, or panics if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		panic(err)
	}

	return r
}
