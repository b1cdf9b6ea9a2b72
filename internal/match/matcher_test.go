package match

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/linesweep/linesweep/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func day(d int) time.Time {
	return time.Date(2026, time.February, d, 0, 0, 0, 0, time.UTC)
}

func kalshiEvent(league string, date time.Time, t1, t2 string, volume float64) domain.GameEvent {
	return domain.GameEvent{
		Platform: domain.PlatformKalshi,
		League:   league,
		Date:     date,
		Team1:    t1,
		Team2:    t2,
		AskTeam1: 0.5,
		AskTeam2: 0.5,
		Volume:   volume,
	}
}

func polyEvent(league string, date time.Time, t1, t2 string, volume float64) domain.GameEvent {
	ev := kalshiEvent(league, date, t1, t2, volume)
	ev.Platform = domain.PlatformPolymarket
	return ev
}

func TestMatchEmptyInputs(t *testing.T) {
	m := NewMatcher(0.5, 1, testLogger())
	if got := m.Match(nil, nil); got != nil {
		t.Fatalf("Match(nil, nil) = %v, want nil", got)
	}
	k := []domain.GameEvent{kalshiEvent("NBA", day(1), "lakers", "celtics", 100)}
	if got := m.Match(k, nil); got != nil {
		t.Fatalf("Match(k, nil) = %v, want nil", got)
	}
}

func TestMatchDirectOrientation(t *testing.T) {
	m := NewMatcher(0.5, 1, testLogger())
	k := []domain.GameEvent{kalshiEvent("NBA", day(1), "lakers", "celtics", 100)}
	p := []domain.GameEvent{polyEvent("NBA", day(1), "lakers", "celtics", 200)}

	pairs := m.Match(k, p)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Orientation != domain.OrientationDirect {
		t.Errorf("orientation = %v, want direct", pairs[0].Orientation)
	}
	if pairs[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", pairs[0].Confidence)
	}
}

func TestMatchCrossedOrientation(t *testing.T) {
	m := NewMatcher(0.5, 1, testLogger())
	k := []domain.GameEvent{kalshiEvent("NBA", day(1), "lakers", "celtics", 100)}
	p := []domain.GameEvent{polyEvent("NBA", day(1), "celtics", "lakers", 200)}

	pairs := m.Match(k, p)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].Orientation != domain.OrientationCrossed {
		t.Errorf("orientation = %v, want crossed", pairs[0].Orientation)
	}
	if pairs[0].Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", pairs[0].Confidence)
	}
}

func TestMatchLeagueIsolation(t *testing.T) {
	m := NewMatcher(0.5, 1, testLogger())
	k := []domain.GameEvent{kalshiEvent("NBA", day(1), "rangers", "kings", 100)}
	p := []domain.GameEvent{polyEvent("NHL", day(1), "rangers", "kings", 200)}

	if pairs := m.Match(k, p); len(pairs) != 0 {
		t.Fatalf("cross-league match produced %d pairs, want 0", len(pairs))
	}
}

func TestMatchDateTolerance(t *testing.T) {
	m := NewMatcher(0.5, 1, testLogger())
	k := []domain.GameEvent{kalshiEvent("NBA", day(2), "lakers", "celtics", 100)}

	oneOff := []domain.GameEvent{polyEvent("NBA", day(3), "lakers", "celtics", 200)}
	if pairs := m.Match(k, oneOff); len(pairs) != 1 {
		t.Errorf("one day apart: got %d pairs, want 1", len(pairs))
	}

	twoOff := []domain.GameEvent{polyEvent("NBA", day(4), "lakers", "celtics", 200)}
	if pairs := m.Match(k, twoOff); len(pairs) != 0 {
		t.Errorf("two days apart: got %d pairs, want 0", len(pairs))
	}
}

// One platform event can back at most one pair; ties on confidence fall to
// higher combined volume.
func TestMatchUniquenessAndVolumeTieBreak(t *testing.T) {
	m := NewMatcher(0.5, 1, testLogger())
	k := []domain.GameEvent{kalshiEvent("NBA", day(1), "lakers", "celtics", 100)}
	p := []domain.GameEvent{
		polyEvent("NBA", day(1), "lakers", "celtics", 50),
		polyEvent("NBA", day(1), "lakers", "celtics", 500),
	}

	pairs := m.Match(k, p)
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
	if pairs[0].EventB.Volume != 500 {
		t.Errorf("tie-break chose volume %v, want 500", pairs[0].EventB.Volume)
	}
}

// A strong mismatch on one team vetoes the pairing even when the other team
// matches exactly.
func TestMatchMinOfPairVeto(t *testing.T) {
	m := NewMatcher(0.5, 1, testLogger())
	k := []domain.GameEvent{kalshiEvent("NBA", day(1), "lakers", "celtics", 100)}
	p := []domain.GameEvent{polyEvent("NBA", day(1), "lakers", "nuggets", 200)}

	if pairs := m.Match(k, p); len(pairs) != 0 {
		t.Fatalf("mismatched second team produced %d pairs, want 0", len(pairs))
	}
}

func TestMatchBelowThresholdDiscarded(t *testing.T) {
	m := NewMatcher(0.5, 1, testLogger())
	k := []domain.GameEvent{kalshiEvent("NBA", day(1), "bulls", "suns", 100)}
	p := []domain.GameEvent{polyEvent("NBA", day(1), "pistons", "magic", 200)}

	if pairs := m.Match(k, p); len(pairs) != 0 {
		t.Fatalf("dissimilar teams produced %d pairs, want 0", len(pairs))
	}
}
