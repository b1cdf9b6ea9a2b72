package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/linesweep/linesweep/internal/arb"
	"github.com/linesweep/linesweep/internal/config"
	"github.com/linesweep/linesweep/internal/domain"
	"github.com/linesweep/linesweep/internal/match"
	"github.com/linesweep/linesweep/internal/notify"
	"github.com/linesweep/linesweep/internal/platform/kalshi"
	"github.com/linesweep/linesweep/internal/platform/polymarket"
	"github.com/linesweep/linesweep/internal/refine"
	"github.com/linesweep/linesweep/internal/scan"
)

// Wire constructs the full scan pipeline from the given configuration.
func Wire(cfg *config.Config) (*scan.Orchestrator, error) {
	logger := slog.Default()

	// --- Kalshi ---
	kalshiClient := kalshi.NewClient(cfg.Kalshi.BaseURL, cfg.Kalshi.ApiKey)
	pemBytes, err := os.ReadFile(cfg.Kalshi.RsaPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("wire: read kalshi private key: %w", err)
	}
	if err := kalshiClient.SetRSAPrivateKey(pemBytes); err != nil {
		return nil, fmt.Errorf("wire: kalshi private key: %w", err)
	}
	kalshiFetcher := kalshi.NewFetcher(kalshiClient, cfg.Kalshi.Series, cfg.Kalshi.FetchWorkers, logger)

	// --- Polymarket ---
	gamma := polymarket.NewGammaClient(cfg.Polymarket.GammaHost)
	clob := polymarket.NewClobClient(cfg.Polymarket.ClobHost)
	polyFetcher := polymarket.NewFetcher(
		gamma,
		cfg.Polymarket.TagSlugs,
		cfg.Polymarket.SeriesIDs,
		cfg.Polymarket.FetchWorkers,
		logger,
	)

	// --- Core stages ---
	matcher := match.NewMatcher(cfg.Matcher.FuzzyThreshold, cfg.Matcher.DateToleranceDays, logger)
	refiner := refine.NewRefiner(clob, cfg.Scanner.RefinePoolSize, logger)
	evaluator := arb.NewEvaluator(cfg.Scanner.ProfitThreshold)

	// --- Alert channels ---
	var senders []notify.Sender
	if cfg.Notify.Console {
		senders = append(senders, notify.NewConsoleSender())
	}
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	notifier := notify.NewNotifier(senders, logger)

	return scan.NewOrchestrator(
		[]domain.EventFetcher{kalshiFetcher, polyFetcher},
		matcher,
		refiner,
		evaluator,
		notifier,
		cfg.Matcher.DisplayThreshold,
		cfg.Scanner.Backoff.Duration,
		cfg.Scanner.AlertPause.Duration,
		logger,
	), nil
}
