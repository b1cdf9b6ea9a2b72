package refine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/linesweep/linesweep/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLookup serves asks from a fixed table; unknown tokens fail.
type fakeLookup struct {
	prices map[string]float64
}

func (f *fakeLookup) FetchBestAsk(_ context.Context, tokenRef string) (float64, error) {
	p, ok := f.prices[tokenRef]
	if !ok {
		return 0, errors.New("token not found")
	}
	return p, nil
}

func testPair(refs [2]string) domain.MatchedPair {
	return domain.MatchedPair{
		EventA: &domain.GameEvent{
			Platform: domain.PlatformKalshi,
			Team1:    "lakers", Team2: "celtics",
			AskTeam1: 0.50, AskTeam2: 0.52,
		},
		EventB: &domain.GameEvent{
			Platform: domain.PlatformPolymarket,
			Team1:    "lakers", Team2: "celtics",
			AskTeam1: 0.48, AskTeam2: 0.54,
			PriceTokenRefs: refs,
		},
		Orientation: domain.OrientationDirect,
		Confidence:  1.0,
	}
}

func TestRefineOverwritesAsks(t *testing.T) {
	lookup := &fakeLookup{prices: map[string]float64{
		"tok1": 0.61,
		"tok2": 0.41,
	}}
	r := NewRefiner(lookup, 4, testLogger())

	pairs := []domain.MatchedPair{testPair([2]string{"tok1", "tok2"})}
	cov := r.Refine(context.Background(), pairs)

	if cov.Attempted != 2 || cov.Refined != 2 {
		t.Fatalf("coverage = %d/%d, want 2/2", cov.Refined, cov.Attempted)
	}
	if pairs[0].EventB.AskTeam1 != 0.61 {
		t.Errorf("AskTeam1 = %v, want 0.61", pairs[0].EventB.AskTeam1)
	}
	if pairs[0].EventB.AskTeam2 != 0.41 {
		t.Errorf("AskTeam2 = %v, want 0.41", pairs[0].EventB.AskTeam2)
	}
	// The kalshi side has no token refs and must be untouched.
	if pairs[0].EventA.AskTeam1 != 0.50 || pairs[0].EventA.AskTeam2 != 0.52 {
		t.Errorf("non-refinable event was modified: %v/%v",
			pairs[0].EventA.AskTeam1, pairs[0].EventA.AskTeam2)
	}
}

// A failed lookup leaves the indicative price in place and only dents the
// coverage ratio.
func TestRefinePartialFailure(t *testing.T) {
	lookup := &fakeLookup{prices: map[string]float64{
		"tok1": 0.63,
		// tok2 missing
	}}
	r := NewRefiner(lookup, 4, testLogger())

	pairs := []domain.MatchedPair{testPair([2]string{"tok1", "tok2"})}
	cov := r.Refine(context.Background(), pairs)

	if cov.Attempted != 2 || cov.Refined != 1 {
		t.Fatalf("coverage = %d/%d, want 1/2", cov.Refined, cov.Attempted)
	}
	if pairs[0].EventB.AskTeam1 != 0.63 {
		t.Errorf("AskTeam1 = %v, want 0.63", pairs[0].EventB.AskTeam1)
	}
	if pairs[0].EventB.AskTeam2 != 0.54 {
		t.Errorf("AskTeam2 = %v, want indicative 0.54", pairs[0].EventB.AskTeam2)
	}
}

func TestRefineSkipsEventsWithoutRefs(t *testing.T) {
	lookup := &fakeLookup{prices: map[string]float64{}}
	r := NewRefiner(lookup, 4, testLogger())

	pairs := []domain.MatchedPair{testPair([2]string{"", ""})}
	cov := r.Refine(context.Background(), pairs)

	if cov.Attempted != 0 || cov.Refined != 0 {
		t.Fatalf("coverage = %d/%d, want 0/0", cov.Refined, cov.Attempted)
	}
}

func TestRefineManyPairsBoundedPool(t *testing.T) {
	prices := map[string]float64{}
	var pairs []domain.MatchedPair
	for i := 0; i < 30; i++ {
		t1 := string(rune('a'+i%26)) + "1"
		t2 := string(rune('a'+i%26)) + "2"
		prices[t1] = 0.45
		prices[t2] = 0.50
		pairs = append(pairs, testPair([2]string{t1, t2}))
	}
	r := NewRefiner(&fakeLookup{prices: prices}, 3, testLogger())

	cov := r.Refine(context.Background(), pairs)
	if cov.Attempted != 60 || cov.Refined != 60 {
		t.Fatalf("coverage = %d/%d, want 60/60", cov.Refined, cov.Attempted)
	}
	for i := range pairs {
		if pairs[i].EventB.AskTeam1 != 0.45 || pairs[i].EventB.AskTeam2 != 0.50 {
			t.Fatalf("pair %d not refined: %v/%v", i,
				pairs[i].EventB.AskTeam1, pairs[i].EventB.AskTeam2)
		}
	}
}
