package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/burstpi/internal/coordinator"
	"github.com/vk/burstpi/internal/ctxlog"
	"github.com/vk/burstpi/internal/report"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. Results are written to
// outW; logs go to logW through the App's own isolated logger.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
	}
}

// Run performs one estimation and writes its result line. Any error means no
// result was written.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctxlog.WithLogger(ctx, a.logger), "seeding", a.config.seeding())
	a.logger.Debug("App.Run method started.",
		"samples", a.config.Samples,
		"workers", a.config.Workers,
		"remainder", a.config.Remainder,
	)

	coord, err := coordinator.New(a.config.Budget(),
		coordinator.WithStreams(a.config.Streams()),
		coordinator.WithRemainder(a.config.Remainder),
	)
	if err != nil {
		return err
	}

	res, err := coord.Run(ctx)
	if err != nil {
		return fmt.Errorf("estimation aborted: %w", err)
	}

	style := report.Verbose
	if a.config.Quiet {
		style = report.Compact
	}
	if err := report.New(a.outW, style).Write(res); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
