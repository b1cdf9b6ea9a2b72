package match

import (
	"log/slog"
	"sort"

	"github.com/linesweep/linesweep/internal/domain"
)

// Matcher pairs equivalent games across the two platforms. Events are
// bucketed by league (cross-league pairs are never compared), candidates are
// limited to dates within the configured tolerance, and each event ends up
// in at most one pair per cycle.
type Matcher struct {
	fuzzyThreshold    float64
	dateToleranceDays int
	logger            *slog.Logger
}

// NewMatcher creates a Matcher. fuzzyThreshold is the construction cutoff
// (candidates below it are discarded outright); callers apply their own
// display/decision thresholds downstream.
func NewMatcher(fuzzyThreshold float64, dateToleranceDays int, logger *slog.Logger) *Matcher {
	return &Matcher{
		fuzzyThreshold:    fuzzyThreshold,
		dateToleranceDays: dateToleranceDays,
		logger:            logger.With(slog.String("component", "matcher")),
	}
}

// candidate is a scored (kalshi, polymarket) pairing before uniqueness is
// enforced.
type candidate struct {
	a, b        int // indices into the input slices
	orientation domain.Orientation
	confidence  float64
	volume      float64
	order       int // discovery order, the final deterministic tie-break
}

// Match returns the best cross-platform pairs for the given event lists.
// Empty input on either side yields an empty result, not an error.
func (m *Matcher) Match(kalshi, poly []domain.GameEvent) []domain.MatchedPair {
	if len(kalshi) == 0 || len(poly) == 0 {
		return nil
	}

	type bucket struct {
		a []int // indices into kalshi
		b []int // indices into poly
	}
	buckets := make(map[string]*bucket)
	for i := range kalshi {
		bk := buckets[kalshi[i].League]
		if bk == nil {
			bk = &bucket{}
			buckets[kalshi[i].League] = bk
		}
		bk.a = append(bk.a, i)
	}
	for i := range poly {
		bk := buckets[poly[i].League]
		if bk == nil {
			bk = &bucket{}
			buckets[poly[i].League] = bk
		}
		bk.b = append(bk.b, i)
	}

	var candidates []candidate
	for league, bk := range buckets {
		if len(bk.a) == 0 || len(bk.b) == 0 {
			continue // no cross-platform representation, silently skipped
		}
		m.logger.Debug("scoring league bucket",
			slog.String("league", league),
			slog.Int("kalshi", len(bk.a)),
			slog.Int("polymarket", len(bk.b)),
		)
		for _, ai := range bk.a {
			for _, bi := range bk.b {
				a, b := &kalshi[ai], &poly[bi]
				if daysApart(a, b) > m.dateToleranceDays {
					continue
				}
				c := m.scorePair(a, b)
				if c.confidence < m.fuzzyThreshold {
					continue
				}
				c.a, c.b = ai, bi
				c.order = len(candidates)
				candidates = append(candidates, c)
			}
		}
	}

	// Highest confidence claims its events first; ties fall to higher
	// combined volume, then discovery order. Every comparison below is
	// strict so the result is deterministic for identical inputs.
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		if ci.confidence != cj.confidence {
			return ci.confidence > cj.confidence
		}
		if ci.volume != cj.volume {
			return ci.volume > cj.volume
		}
		return ci.order < cj.order
	})

	usedA := make(map[int]bool, len(kalshi))
	usedB := make(map[int]bool, len(poly))
	var pairs []domain.MatchedPair
	for _, c := range candidates {
		if usedA[c.a] || usedB[c.b] {
			continue
		}
		usedA[c.a] = true
		usedB[c.b] = true
		pairs = append(pairs, domain.MatchedPair{
			EventA:      &kalshi[c.a],
			EventB:      &poly[c.b],
			Orientation: c.orientation,
			Confidence:  c.confidence,
		})
	}

	m.logger.Debug("matching complete",
		slog.Int("candidates", len(candidates)),
		slog.Int("pairs", len(pairs)),
	)
	return pairs
}

// scorePair computes the two orientation scores for a candidate pair. Each
// orientation takes the min of its two team-pair scores: a strong mismatch
// on either team vetoes the orientation.
func (m *Matcher) scorePair(a, b *domain.GameEvent) candidate {
	direct := minScore(Score(a.Team1, b.Team1), Score(a.Team2, b.Team2))
	crossed := minScore(Score(a.Team1, b.Team2), Score(a.Team2, b.Team1))

	c := candidate{
		orientation: domain.OrientationDirect,
		confidence:  direct,
		volume:      a.Volume + b.Volume,
	}
	if crossed > direct {
		c.orientation = domain.OrientationCrossed
		c.confidence = crossed
	}
	return c
}

func minScore(x, y float64) float64 {
	if x < y {
		return x
	}
	return y
}

// daysApart returns the absolute whole-day distance between two event dates.
// Dates are UTC midnights, so the division is exact.
func daysApart(a, b *domain.GameEvent) int {
	d := int(a.Date.Sub(b.Date).Hours() / 24)
	if d < 0 {
		return -d
	}
	return d
}
