// Package arb computes the guaranteed combined cost of a matched pair and
// classifies profitability.
package arb

import (
	"github.com/google/uuid"

	"github.com/linesweep/linesweep/internal/domain"
)

// Evaluator decides whether buying the two opposite outcomes of a matched
// pair costs less than the $1.00 guaranteed payout. The profit threshold
// sits below the theoretical breakeven to absorb fees, slippage, and price
// staleness between observation and execution.
type Evaluator struct {
	profitThreshold float64
}

// NewEvaluator creates an Evaluator with the given strict profit threshold.
func NewEvaluator(profitThreshold float64) *Evaluator {
	return &Evaluator{profitThreshold: profitThreshold}
}

// Evaluate computes both valid opposite-outcome leg pairings under the
// pair's resolved orientation and takes the cheaper one as the combined
// cost: the bettor always chooses the cheaper guaranteed-profit pairing.
func (e *Evaluator) Evaluate(pair *domain.MatchedPair) domain.ArbitrageVerdict {
	// Leg 1: A's Team1 wins + B's logically opposite outcome.
	// Leg 2: A's Team2 wins + B's logically opposite outcome.
	leg1 := legPrice(pair.EventA.AskTeam1) + legPrice(pair.BTeam2Ask())
	leg2 := legPrice(pair.EventA.AskTeam2) + legPrice(pair.BTeam1Ask())

	cost := leg1
	if leg2 < cost {
		cost = leg2
	}

	return domain.ArbitrageVerdict{
		ID:           uuid.NewString(),
		Pair:         pair,
		CombinedCost: cost,
		Profitable:   cost < e.profitThreshold,
	}
}

// legPrice treats a missing or degenerate ask as $1.00, which makes the
// containing leg unbuyable rather than spuriously profitable.
func legPrice(ask float64) float64 {
	if ask <= 0 || ask > 1 {
		return 1.0
	}
	return ask
}
