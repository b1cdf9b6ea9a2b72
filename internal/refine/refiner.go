// Package refine replaces indicative event prices with true tradable asks
// read from the order book.
package refine

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/linesweep/linesweep/internal/domain"
)

// Coverage reports refinement completeness for one cycle: refined lookups
// over attempted lookups. Failed lookups leave the indicative price in place
// and never fail the scan.
type Coverage struct {
	Attempted int
	Refined   int
}

// Refiner overwrites ask prices on matched events with best asks fetched
// through an order-book lookup capability. Lookups for distinct tokens are
// independent and run concurrently over a bounded pool.
type Refiner struct {
	lookup   domain.BestAskLookup
	poolSize int
	logger   *slog.Logger
}

// NewRefiner creates a Refiner with the given worker pool size.
func NewRefiner(lookup domain.BestAskLookup, poolSize int, logger *slog.Logger) *Refiner {
	if poolSize < 1 {
		poolSize = 1
	}
	return &Refiner{
		lookup:   lookup,
		poolSize: poolSize,
		logger:   logger.With(slog.String("component", "refiner")),
	}
}

// Refine fetches best asks for every token ref carried by the paired events
// and overwrites the corresponding ask fields in place. It waits for all
// outstanding lookups before returning. Each ask field is written at most
// once per cycle, after which the events are read-only for the cycle.
func (r *Refiner) Refine(ctx context.Context, pairs []domain.MatchedPair) Coverage {
	var attempted, refined atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(r.poolSize)

	for i := range pairs {
		for _, ev := range [2]*domain.GameEvent{pairs[i].EventA, pairs[i].EventB} {
			if !ev.Refinable() {
				continue
			}
			ev := ev
			for side := range ev.PriceTokenRefs {
				side := side
				attempted.Add(1)
				g.Go(func() error {
					token := ev.PriceTokenRefs[side]
					price, err := r.lookup.FetchBestAsk(ctx, token)
					if err != nil {
						// Localized failure: the event keeps its
						// indicative price.
						r.logger.Debug("ask lookup failed",
							slog.String("token", token),
							slog.String("error", err.Error()),
						)
						return nil
					}
					if side == 0 {
						ev.AskTeam1 = price
					} else {
						ev.AskTeam2 = price
					}
					refined.Add(1)
					return nil
				})
			}
		}
	}

	_ = g.Wait() // tasks never return errors; failures are counted above

	cov := Coverage{
		Attempted: int(attempted.Load()),
		Refined:   int(refined.Load()),
	}
	r.logger.Debug("refinement complete",
		slog.Int("attempted", cov.Attempted),
		slog.Int("refined", cov.Refined),
	)
	return cov
}
