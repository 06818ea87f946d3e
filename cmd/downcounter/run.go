package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/downcounter/counter"
	"github.com/sarchlab/downcounter/datarecording"
	"github.com/sarchlab/downcounter/monitoring"
	"github.com/sarchlab/downcounter/sim"
	"github.com/sarchlab/downcounter/simulation"
	"github.com/sarchlab/downcounter/testbench"
	"github.com/sarchlab/downcounter/tracing"
)

var errNoStimuli = errors.New("one of --script or --file is required")

// topName is the parent of the component names in a run.
const topName = "DownCounter"

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a stimulus script against the counter.",
		Long: "Run applies one stimulus per clock cycle and prints " +
			"`cycle reset enable value` after every edge. Tokens are " +
			"R (reset), RE (reset with enable), E (enable) and H (hold), " +
			"optionally repeated with *N.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := runConfig(cmd)
			if err != nil {
				return err
			}

			stimuli, err := readStimuli(cmd)
			if err != nil {
				return err
			}

			return runStimuli(cmd.OutOrStdout(), cfg,
				GetFlag(cmd, "verbose"), stimuli)
		},
	}

	runCmd.Flags().StringP("script", "s", "", "stimulus script, e.g. \"R E*5 H\"")
	runCmd.Flags().StringP("file", "f", "", "file containing a stimulus script")
	runCmd.Flags().String("trace-db", "",
		"record samples into this SQLite file (without extension)")
	runCmd.Flags().Bool("monitor", false, "serve the monitoring web page")
	runCmd.Flags().Int("monitor-port", 0, "port of the monitoring server")
	runCmd.Flags().Bool("open-browser", false,
		"open the monitoring page in a browser (with --monitor)")
	runCmd.Flags().Float64("freq-mhz", 0, "counter clock frequency in MHz")
	runCmd.MarkFlagsMutuallyExclusive("script", "file")

	return runCmd
}

// runConfig loads the environment configuration and lets explicit flags
// override it.
func runConfig(cmd *cobra.Command) (simulation.Config, error) {
	cfg, err := simulation.LoadConfig()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()

	if flags.Changed("trace-db") {
		cfg.TraceDB, _ = flags.GetString("trace-db")
	}

	if flags.Changed("monitor") {
		cfg.Monitor, _ = flags.GetBool("monitor")
	}

	if flags.Changed("monitor-port") {
		cfg.MonitorPort, _ = flags.GetInt("monitor-port")
	}

	if flags.Changed("open-browser") {
		cfg.OpenBrowser, _ = flags.GetBool("open-browser")
	}

	if flags.Changed("freq-mhz") {
		cfg.FreqMHz, _ = flags.GetFloat64("freq-mhz")
		if err := simulation.ValidateFreqMHz(cfg.FreqMHz); err != nil {
			return cfg, fmt.Errorf("--freq-mhz: %w", err)
		}
	}

	return cfg, nil
}

func readStimuli(cmd *cobra.Command) ([]testbench.Stimulus, error) {
	script, _ := cmd.Flags().GetString("script")
	file, _ := cmd.Flags().GetString("file")

	switch {
	case script != "":
		return testbench.ParseScript(script)
	case file != "":
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		return testbench.ParseScript(string(content))
	default:
		return nil, errNoStimuli
	}
}

func runStimuli(
	out io.Writer,
	cfg simulation.Config,
	verbose bool,
	stimuli []testbench.Stimulus,
) error {
	if cfg.ParallelIDs {
		sim.UseParallelIDGenerator()
	}

	builder := simulation.MakeBuilder().WithConfig(cfg)
	if verbose {
		builder = builder.WithEventLogger(log.StandardLogger())
	}

	s, err := builder.Build()
	if err != nil {
		return err
	}

	dut := counter.MakeBuilder().
		WithEngine(s.Engine()).
		WithFreq(sim.Freq(cfg.FreqMHz) * sim.MHz).
		Build(sim.BuildName(topName, "Counter"))
	bench := testbench.MakeBuilder().
		WithEngine(s.Engine()).
		WithDUT(dut).
		Build(sim.BuildName(topName, "Bench"))

	s.RegisterComponent(dut)
	s.RegisterComponent(bench)

	counts := tracing.NewTransitionCountTracer()
	tracing.CollectTrace(dut, counts)

	if verbose {
		tracing.CollectTrace(dut, tracing.NewValueLogger(dut.Name(), nil))
	}

	if s.DataRecorder() != nil {
		bench.AcceptHook(datarecording.NewSampleHook(s.DataRecorder()))
	}

	if s.Monitor() != nil {
		bar := s.Monitor().CreateProgressBar("Stimuli", uint64(len(stimuli)))
		bench.AcceptHook(&progressHook{bar: bar})
		defer s.Monitor().CompleteProgressBar(bar)
	}

	bench.Feed(stimuli...)
	bench.Start()

	if err := s.Engine().Run(); err != nil {
		return errors.Join(err, s.Terminate())
	}

	s.Engine().Finished()

	for _, sample := range bench.Samples() {
		fmt.Fprintf(out, "%d %d %d %d\n",
			sample.Cycle, bit(sample.Reset), bit(sample.Enable), sample.Value)
	}

	printStats(out, counts)

	return s.Terminate()
}

func printStats(out io.Writer, counts *tracing.TransitionCountTracer) {
	fmt.Fprintf(out,
		"# edges: %d, reset: %d, decrement: %d, hold: %d, wraps: %d\n",
		counts.Total(),
		counts.Count(counter.TransitionReset),
		counts.Count(counter.TransitionDecrement),
		counts.Count(counter.TransitionHold),
		counts.Wraps())
}

func bit(b bool) int {
	if b {
		return 1
	}

	return 0
}

type progressHook struct {
	bar *monitoring.ProgressBar
}

func (h *progressHook) Func(ctx sim.HookCtx) {
	if ctx.Pos == testbench.HookPosSample {
		h.bar.IncrementFinished(1)
	}
}
