package arb

import (
	"math"
	"testing"

	"github.com/linesweep/linesweep/internal/domain"
)

func pair(orientation domain.Orientation, a1, a2, b1, b2 float64) *domain.MatchedPair {
	return &domain.MatchedPair{
		EventA: &domain.GameEvent{
			Platform: domain.PlatformKalshi,
			Team1:    "lakers", Team2: "celtics",
			AskTeam1: a1, AskTeam2: a2,
		},
		EventB: &domain.GameEvent{
			Platform: domain.PlatformPolymarket,
			Team1:    "lakers", Team2: "celtics",
			AskTeam1: b1, AskTeam2: b2,
		},
		Orientation: orientation,
		Confidence:  1.0,
	}
}

func TestEvaluateProfitableDirect(t *testing.T) {
	e := NewEvaluator(0.99)
	// Cheaper leg: buy lakers on A (0.71) + celtics on B (0.27) = 0.98.
	v := e.Evaluate(pair(domain.OrientationDirect, 0.71, 0.32, 0.74, 0.27))

	if math.Abs(v.CombinedCost-0.98) > 1e-9 {
		t.Errorf("CombinedCost = %v, want 0.98", v.CombinedCost)
	}
	if !v.Profitable {
		t.Errorf("Profitable = false, want true")
	}
	if v.ID == "" {
		t.Errorf("verdict ID is empty")
	}
}

func TestEvaluateNotProfitable(t *testing.T) {
	e := NewEvaluator(0.99)
	v := e.Evaluate(pair(domain.OrientationDirect, 0.55, 0.55, 0.55, 0.55))

	if math.Abs(v.CombinedCost-1.10) > 1e-9 {
		t.Errorf("CombinedCost = %v, want 1.10", v.CombinedCost)
	}
	if v.Profitable {
		t.Errorf("Profitable = true, want false")
	}
}

// The profitability comparison is strict: cost equal to the threshold is not
// an opportunity.
func TestEvaluateThresholdIsStrict(t *testing.T) {
	e := NewEvaluator(1.0)
	v := e.Evaluate(pair(domain.OrientationDirect, 0.5, 0.75, 0.75, 0.5))

	if v.CombinedCost != 1.0 {
		t.Fatalf("CombinedCost = %v, want exactly 1.0", v.CombinedCost)
	}
	if v.Profitable {
		t.Errorf("cost equal to threshold must not be profitable")
	}
}

// Under a crossed orientation the opposite outcome of A's Team1 is B's
// Team1 side, not B's Team2 side.
func TestEvaluateCrossedOrientation(t *testing.T) {
	e := NewEvaluator(0.99)
	v := e.Evaluate(pair(domain.OrientationCrossed, 0.60, 0.55, 0.30, 0.80))

	// leg1 = 0.60 + 0.30, leg2 = 0.55 + 0.80; a direct reading would give
	// the cheaper (wrong) 0.85.
	if math.Abs(v.CombinedCost-0.90) > 1e-9 {
		t.Errorf("CombinedCost = %v, want 0.90", v.CombinedCost)
	}
	if !v.Profitable {
		t.Errorf("Profitable = false, want true")
	}
}

// A missing ask makes its legs unbuyable instead of free.
func TestEvaluateDegenerateAsk(t *testing.T) {
	e := NewEvaluator(0.99)
	v := e.Evaluate(pair(domain.OrientationDirect, 0, 0.32, 0.74, 0))

	// Both legs contain a degenerate ask priced at 1.00.
	if v.Profitable {
		t.Errorf("degenerate asks must not be profitable, cost = %v", v.CombinedCost)
	}
	if v.CombinedCost < 1.0 {
		t.Errorf("CombinedCost = %v, want >= 1.0", v.CombinedCost)
	}
}

func TestProfitCents(t *testing.T) {
	e := NewEvaluator(0.99)
	v := e.Evaluate(pair(domain.OrientationDirect, 0.50, 0.60, 0.70, 0.40))
	// Cost 0.90, payout 1.00.
	if got := v.ProfitCents(); got != 9 && got != 10 {
		t.Errorf("ProfitCents() = %d, want ~10", got)
	}
}
