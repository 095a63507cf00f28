package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/burstpi/internal/app"
	"github.com/vk/burstpi/internal/cli"
	"github.com/vk/burstpi/internal/ctxlog"
	"github.com/vk/burstpi/internal/hcl"
)

// main is the entrypoint for the burstpi application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, errW io.Writer, args []string) error {
	ctx := ctxlog.WithLogger(context.Background(), slog.Default())

	// Instantiate the concrete HCL loader for -config run files.
	appConfig, shouldExit, err := cli.Parse(ctx, args, outW, hcl.NewLoader())
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	burstpiApp := app.NewApp(outW, errW, appConfig)
	if err := burstpiApp.Run(context.Background()); err != nil {
		return &cli.ExitError{Code: cli.ExitConfig, Message: err.Error()}
	}
	return nil
}
