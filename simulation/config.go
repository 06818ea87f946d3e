package simulation

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvFreqMHz     = "DOWNCOUNTER_FREQ_MHZ"
	EnvTraceDB     = "DOWNCOUNTER_TRACE_DB"
	EnvMonitor     = "DOWNCOUNTER_MONITOR"
	EnvMonitorPort = "DOWNCOUNTER_MONITOR_PORT"
	EnvParallelIDs = "DOWNCOUNTER_PARALLEL_IDS"
)

// Config holds the run-time settings that can come from the environment.
type Config struct {
	// FreqMHz is the counter clock in MHz.
	FreqMHz float64

	// TraceDB is the recorder file name without extension. Empty disables
	// recording.
	TraceDB string

	Monitor     bool
	MonitorPort int

	// OpenBrowser opens the monitoring page once the server starts. It has
	// no environment variable.
	OpenBrowser bool

	// ParallelIDs switches to non-deterministic xid identifiers.
	ParallelIDs bool
}

// ValidateFreqMHz returns an error unless f is a positive, finite frequency.
func ValidateFreqMHz(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return fmt.Errorf("frequency must be positive and finite, got %g MHz", f)
	}

	return nil
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		FreqMHz: 1000,
	}
}

// LoadConfig reads the configuration from the environment after loading the
// given .env files. Without files, ./.env is loaded if it exists. Variables
// already set in the environment take precedence over the files.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("loading %s: %w",
			strings.Join(envFiles, ", "), err)
	}

	return ConfigFromEnv(os.LookupEnv)
}

// ConfigFromEnv builds a Config from a lookup function such as os.LookupEnv.
func ConfigFromEnv(
	lookup func(key string) (string, bool),
) (Config, error) {
	c := DefaultConfig()

	if v, ok := lookup(EnvFreqMHz); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			err = ValidateFreqMHz(f)
		}

		if err != nil {
			return Config{}, fmt.Errorf(
				"%s: invalid frequency %q: %w", EnvFreqMHz, v, err)
		}

		c.FreqMHz = f
	}

	if v, ok := lookup(EnvTraceDB); ok {
		c.TraceDB = v
	}

	if v, ok := lookup(EnvMonitor); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMonitor, err)
		}

		c.Monitor = b
	}

	if v, ok := lookup(EnvMonitorPort); ok {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 || p > 65535 {
			return Config{}, fmt.Errorf(
				"%s: invalid port %q", EnvMonitorPort, v)
		}

		c.MonitorPort = p
	}

	if v, ok := lookup(EnvParallelIDs); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvParallelIDs, err)
		}

		c.ParallelIDs = b
	}

	return c, nil
}
