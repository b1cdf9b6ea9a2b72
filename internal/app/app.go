// Package app provides the top-level application lifecycle for the scanner.
// It wires together the platform fetchers, matcher, refiner, evaluator, and
// alert channels, then runs the scan loop.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linesweep/linesweep/internal/config"
)

// App is the root application object.
type App struct {
	cfg    *config.Config
	once   bool
	logger *slog.Logger
}

// New creates a new App from the given configuration and logger. When once
// is set the app runs a single scan cycle and exits instead of looping.
func New(cfg *config.Config, once bool, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		once:   once,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run wires all dependencies and blocks until the context is cancelled (or,
// in once mode, until the single cycle completes).
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting application",
		slog.Bool("once", a.once),
		slog.String("log_level", a.cfg.LogLevel),
	)

	orch, err := Wire(a.cfg)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}

	if a.once {
		report, err := orch.RunCycle(ctx)
		if err != nil {
			return fmt.Errorf("app: scan cycle: %w", err)
		}
		a.logger.InfoContext(ctx, "single cycle finished",
			slog.Int("matched", report.Matched),
			slog.Int("profitable", report.Profitable),
		)
		return nil
	}

	return orch.Run(ctx)
}
