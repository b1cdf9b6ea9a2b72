// Package scan runs the cross-platform scan cycle: fetch events from every
// platform, match them, refine prices, evaluate arbitrage, and alert.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/linesweep/linesweep/internal/arb"
	"github.com/linesweep/linesweep/internal/domain"
	"github.com/linesweep/linesweep/internal/match"
	"github.com/linesweep/linesweep/internal/notify"
	"github.com/linesweep/linesweep/internal/refine"
)

// state labels the stage a cycle is in; it only feeds logs.
type state string

const (
	stateFetching   state = "FETCHING"
	stateMatching   state = "MATCHING"
	stateRefining   state = "REFINING"
	stateEvaluating state = "EVALUATING"
	stateAlerting   state = "ALERTING"
	stateIdle       state = "IDLE"
	stateBackoff    state = "BACKOFF"
)

// maxAlertLines caps how many opportunities an alert body spells out.
const maxAlertLines = 3

// Orchestrator drives the scan loop. A cycle is all-or-nothing through the
// fetch stage: if any platform fails, the cycle is abandoned without partial
// evaluation and the loop backs off before retrying.
type Orchestrator struct {
	fetchers  []domain.EventFetcher
	matcher   *match.Matcher
	refiner   *refine.Refiner
	evaluator *arb.Evaluator
	notifier  *notify.Notifier

	displayThreshold float64
	backoff          time.Duration
	alertPause       time.Duration

	logger *slog.Logger
}

// NewOrchestrator wires the scan stages together. displayThreshold is the
// confidence floor a pair must clear to be reported or alerted on; pairs
// below it are still matched (claiming their events) but stay silent.
func NewOrchestrator(
	fetchers []domain.EventFetcher,
	matcher *match.Matcher,
	refiner *refine.Refiner,
	evaluator *arb.Evaluator,
	notifier *notify.Notifier,
	displayThreshold float64,
	backoff time.Duration,
	alertPause time.Duration,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		fetchers:         fetchers,
		matcher:          matcher,
		refiner:          refiner,
		evaluator:        evaluator,
		notifier:         notifier,
		displayThreshold: displayThreshold,
		backoff:          backoff,
		alertPause:       alertPause,
		logger:           logger.With(slog.String("component", "orchestrator")),
	}
}

// Run loops scan cycles until ctx is cancelled. A failed cycle backs off
// before the next attempt; a cycle that alerted pauses so an operator can
// act before prices move again.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info("scan loop starting",
		slog.Int("fetchers", len(o.fetchers)),
		slog.Duration("backoff", o.backoff),
	)

	for {
		report, err := o.RunCycle(ctx)
		if ctx.Err() != nil {
			o.logger.Info("scan loop stopped")
			return ctx.Err()
		}
		if err != nil {
			o.logger.Error("cycle failed",
				slog.String("state", string(stateBackoff)),
				slog.String("error", err.Error()),
			)
			if !o.pause(ctx, o.backoff) {
				return ctx.Err()
			}
			continue
		}
		if report.Profitable > 0 {
			if !o.pause(ctx, o.alertPause) {
				return ctx.Err()
			}
		}
	}
}

// RunCycle executes exactly one scan cycle and returns its report. The
// report is partial when err is non-nil.
func (o *Orchestrator) RunCycle(ctx context.Context) (domain.CycleReport, error) {
	report := domain.CycleReport{
		CycleID:   uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	log := o.logger.With(slog.String("cycle_id", report.CycleID))

	// FETCHING: all platforms in parallel, all-or-nothing.
	log.Debug("cycle stage", slog.String("state", string(stateFetching)))
	byPlatform, err := o.fetchAll(ctx)
	if err != nil {
		return report, err
	}
	kalshi := byPlatform[domain.PlatformKalshi]
	poly := byPlatform[domain.PlatformPolymarket]
	report.KalshiFetched = len(kalshi)
	report.PolymarketFetched = len(poly)

	if ctx.Err() != nil {
		return report, ctx.Err()
	}

	// MATCHING.
	log.Debug("cycle stage", slog.String("state", string(stateMatching)))
	pairs := o.matcher.Match(kalshi, poly)
	report.Matched = len(pairs)

	if ctx.Err() != nil {
		return report, ctx.Err()
	}

	// REFINING: best-effort, failures keep indicative prices.
	log.Debug("cycle stage", slog.String("state", string(stateRefining)))
	cov := o.refiner.Refine(ctx, pairs)
	report.RefineAttempted = cov.Attempted
	report.RefineSucceeded = cov.Refined

	if ctx.Err() != nil {
		return report, ctx.Err()
	}

	// EVALUATING.
	log.Debug("cycle stage", slog.String("state", string(stateEvaluating)))
	var hits []domain.ArbitrageVerdict
	for i := range pairs {
		if pairs[i].Confidence >= o.displayThreshold {
			report.HighConfidence++
		}
		verdict := o.evaluator.Evaluate(&pairs[i])
		if verdict.Profitable && pairs[i].Confidence >= o.displayThreshold {
			hits = append(hits, verdict)
			a, b := pairs[i].EventA, pairs[i].EventB
			log.Info("profitable opportunity",
				slog.String("league", a.League),
				slog.String("kalshi_teams", a.Team1+" vs "+a.Team2),
				slog.String("polymarket_teams", b.Team1+" vs "+b.Team2),
				slog.String("kalshi_date", a.Date.Format("2006-01-02")),
				slog.String("polymarket_date", b.Date.Format("2006-01-02")),
				slog.String("kalshi_asks", fmt.Sprintf("%.2f/%.2f", a.AskTeam1, a.AskTeam2)),
				slog.String("polymarket_asks", fmt.Sprintf("%.2f/%.2f", b.AskTeam1, b.AskTeam2)),
				slog.String("orientation", string(pairs[i].Orientation)),
				slog.Float64("combined_cost", verdict.CombinedCost),
				slog.Int("profit_cents", verdict.ProfitCents()),
				slog.String("kalshi_url", a.URL),
				slog.String("polymarket_url", b.URL),
			)
		}
	}
	report.Profitable = len(hits)

	// ALERTING, or straight to IDLE when nothing hit.
	if len(hits) > 0 {
		log.Debug("cycle stage", slog.String("state", string(stateAlerting)))
		title, body := formatAlert(hits)
		if err := o.notifier.Alert(ctx, title, body); err != nil {
			log.Warn("alert delivery incomplete", slog.String("error", err.Error()))
		}
	}

	report.Duration = time.Since(report.StartedAt)
	log.Info("cycle complete",
		slog.String("state", string(stateIdle)),
		slog.Duration("duration", report.Duration),
		slog.Int("kalshi_events", report.KalshiFetched),
		slog.Int("polymarket_events", report.PolymarketFetched),
		slog.Int("matched", report.Matched),
		slog.Int("high_confidence", report.HighConfidence),
		slog.Int("profitable", report.Profitable),
		slog.Float64("refine_coverage", report.RefineCoverage()),
	)
	return report, nil
}

// fetchAll runs every fetcher concurrently and collects results by platform.
// Any fetcher error abandons the whole fetch.
func (o *Orchestrator) fetchAll(ctx context.Context) (map[domain.Platform][]domain.GameEvent, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	byPlatform := make(map[domain.Platform][]domain.GameEvent, len(o.fetchers))

	for _, f := range o.fetchers {
		f := f
		g.Go(func() error {
			events, err := f.FetchEvents(ctx)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, f.Platform(), err)
			}
			mu.Lock()
			byPlatform[f.Platform()] = events
			mu.Unlock()
			o.logger.Debug("platform fetched",
				slog.String("platform", string(f.Platform())),
				slog.Int("events", len(events)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return byPlatform, nil
}

// pause sleeps for d unless ctx ends first. It reports whether the full
// pause elapsed.
func (o *Orchestrator) pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// formatAlert renders the alert title and body for a set of profitable
// verdicts, cheapest opportunities first. Each opportunity carries the
// league, teams, dates, both platform price pairs, and both market URLs so
// an operator can act on the alert without another lookup.
func formatAlert(hits []domain.ArbitrageVerdict) (string, string) {
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].CombinedCost < hits[j].CombinedCost
	})

	title := fmt.Sprintf("Arbitrage: %d opportunity(ies) found", len(hits))

	var b strings.Builder
	for i, v := range hits {
		if i == maxAlertLines {
			fmt.Fprintf(&b, "and %d more\n", len(hits)-maxAlertLines)
			break
		}
		a, eb := v.Pair.EventA, v.Pair.EventB
		fmt.Fprintf(&b, "%s - $%.2f cost (+%dc profit)\n",
			a.Title, v.CombinedCost, v.ProfitCents())
		fmt.Fprintf(&b, "%s | %s vs %s | %s / %s | kalshi %.2f/%.2f | polymarket %.2f/%.2f\n",
			a.League, a.Team1, a.Team2,
			a.Date.Format("2006-01-02"), eb.Date.Format("2006-01-02"),
			a.AskTeam1, a.AskTeam2, eb.AskTeam1, eb.AskTeam2)
		fmt.Fprintf(&b, "%s\n%s\n", a.URL, eb.URL)
	}
	return title, strings.TrimRight(b.String(), "\n")
}
