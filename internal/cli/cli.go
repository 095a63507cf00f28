package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/burstpi/internal/app"
	"github.com/vk/burstpi/internal/config"
	"github.com/vk/burstpi/internal/coordinator"
	"github.com/vk/burstpi/internal/ctxlog"
)

// Exit codes returned through ExitError.
const (
	// ExitConfig reports an invalid run configuration or an aborted run.
	ExitConfig = 1
	// ExitUsage reports malformed command-line usage.
	ExitUsage = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// defaults is the lowest configuration layer.
func defaults() config.Run {
	samples, workers, quiet, remainder := int64(10), 1, false, coordinator.RemainderDrop.String()
	return config.Run{
		Samples:   &samples,
		Workers:   &workers,
		Quiet:     &quiet,
		Remainder: &remainder,
	}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// The loader reads the run file named by -config, if any.
func Parse(ctx context.Context, args []string, output io.Writer, loader config.Loader) (*app.Config, bool, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("burstpi", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
burstpi - Parallel Monte Carlo estimation of Pi.

Usage:
  burstpi [options]

Output:
  verbose  Pi: <estimate>, error: <error>, seconds: <elapsed>, samples: <samples>
  -q       <estimate> <error> <elapsed> <samples>

Options:
`)
		flagSet.PrintDefaults()
	}

	samplesFlag := flagSet.Int64("n", 10, "Number of samples.")
	workersFlag := flagSet.Int("t", 1, "Number of worker threads.")
	quietFlag := flagSet.Bool("q", false, "Print a compact, machine-parsable result line.")
	seedFlag := flagSet.Uint64("seed", 0, "Base seed for a reproducible run. Derived from pid and time when unset.")
	remainderFlag := flagSet.String("remainder", "drop", "What to do with samples left by floor division: 'drop' or 'assign'.")
	configFlag := flagSet.String("config", "", "Path to an HCL run file. Explicit flags override its values.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}
	logger.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// Layer: defaults < run file < explicitly set flags.
	run := defaults()
	if *configFlag != "" {
		fileRun, err := loader.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: ExitConfig, Message: err.Error()}
		}
		run = run.Merge(fileRun)
		logger.Debug("Run file applied.", "path", *configFlag)
	}

	explicit := config.Run{}
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "n":
			explicit.Samples = samplesFlag
		case "t":
			explicit.Workers = workersFlag
		case "q":
			explicit.Quiet = quietFlag
		case "seed":
			explicit.Seed = seedFlag
		case "remainder":
			explicit.Remainder = remainderFlag
		}
	})
	run = run.Merge(&explicit)

	remainder, err := coordinator.ParseRemainderPolicy(*run.Remainder)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	runLogger := logger.With("samples", *run.Samples, "workers", *run.Workers)
	runLogger.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		Samples:   *run.Samples,
		Workers:   *run.Workers,
		Quiet:     *run.Quiet,
		Seed:      run.Seed,
		Seeds:     run.Seeds,
		Remainder: remainder,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		code := ExitUsage
		if errors.Is(err, coordinator.ErrConfiguration) {
			code = ExitConfig
		}
		return nil, false, &ExitError{Code: code, Message: err.Error()}
	}

	runLogger.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
