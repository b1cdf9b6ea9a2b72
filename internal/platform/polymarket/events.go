package polymarket

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linesweep/linesweep/internal/domain"
	"github.com/linesweep/linesweep/internal/teams"
)

// easternOffset approximates the US Eastern date for a UTC endDate. Game
// endDates cluster around midnight UTC, which is still the previous evening
// on the US east coast where the games are played.
const easternOffset = -5 * time.Hour

// Fetcher discovers open sports moneyline games on Polymarket. It queries
// every configured tag_slug source and every series_id fallback source,
// deduplicating by event slug. It implements domain.EventFetcher.
type Fetcher struct {
	gamma     *GammaClient
	tagSlugs  map[string]string // league name -> tag_slug
	seriesIDs map[string]string // league name -> series_id
	workers   int
	now       func() time.Time
	logger    *slog.Logger
}

// NewFetcher creates a Fetcher over the given tag and series sources with
// up to workers parallel source requests.
func NewFetcher(gamma *GammaClient, tagSlugs, seriesIDs map[string]string, workers int, logger *slog.Logger) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{
		gamma:     gamma,
		tagSlugs:  tagSlugs,
		seriesIDs: seriesIDs,
		workers:   workers,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "polymarket_fetcher")),
	}
}

// Platform identifies this fetcher's platform.
func (f *Fetcher) Platform() domain.Platform { return domain.PlatformPolymarket }

// source is one Gamma query: either a tag_slug or a series_id.
type source struct {
	league   string
	tagSlug  string
	seriesID string
}

// FetchEvents fetches all open moneyline games across every source. Sources
// run in parallel; a failure in any source fails the fetch as a unit.
// Events already seen under another source (tag and series lists overlap)
// are dropped by slug.
func (f *Fetcher) FetchEvents(ctx context.Context) ([]domain.GameEvent, error) {
	var sources []source
	for _, league := range sortedKeys(f.tagSlugs) {
		sources = append(sources, source{league: league, tagSlug: f.tagSlugs[league]})
	}
	for _, league := range sortedKeys(f.seriesIDs) {
		sources = append(sources, source{league: league, seriesID: f.seriesIDs[league]})
	}

	today := f.now().UTC().Add(easternOffset).Truncate(24 * time.Hour)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	var mu sync.Mutex
	seenSlugs := make(map[string]bool)
	var all []domain.GameEvent

	for _, src := range sources {
		src := src
		g.Go(func() error {
			games, err := f.fetchSource(ctx, src, today)
			if err != nil {
				return err
			}
			mu.Lock()
			added := 0
			for i := range games {
				slug := slugFromURL(games[i].URL)
				if seenSlugs[slug] {
					continue
				}
				seenSlugs[slug] = true
				all = append(all, games[i])
				added++
			}
			mu.Unlock()
			if added > 0 {
				f.logger.Debug("source fetched",
					slog.String("league", src.league),
					slog.Int("new_games", added),
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// fetchSource pages through one tag_slug or series_id source.
func (f *Fetcher) fetchSource(ctx context.Context, src source, today time.Time) ([]domain.GameEvent, error) {
	var games []domain.GameEvent
	offset := 0
	for {
		events, err := f.gamma.GetEventsPage(ctx, src.tagSlug, src.seriesID, offset)
		if err != nil {
			return nil, err
		}
		for i := range events {
			if game, ok := parseEvent(&events[i], src.league, today); ok {
				games = append(games, game)
			}
		}
		if len(events) < pageSize {
			break
		}
		offset += pageSize
	}
	return games, nil
}

// parseEvent converts a Gamma event into a GameEvent if it carries a valid
// moneyline market. Indicative mid-prices are used initially; true asks are
// fetched later through the CLOB using the stored token refs.
func parseEvent(ev *APIEvent, leagueHint string, today time.Time) (domain.GameEvent, bool) {
	gameDate, ok := gameDateEastern(ev.EndDate)
	if !ok || gameDate.Before(today) {
		return domain.GameEvent{}, false
	}

	league := leagueFromSlug(ev.Slug, leagueHint)

	for i := range ev.Markets {
		m := &ev.Markets[i]
		if len(m.Outcomes) != 2 {
			continue
		}

		question := m.Question
		if question == "" {
			question = ev.Title
		}
		if !isMoneyline(question, m.Outcomes) {
			continue
		}

		if len(m.OutcomePrices) != 2 {
			continue
		}
		p1, ok1 := parsePrice(m.OutcomePrices[0])
		p2, ok2 := parsePrice(m.OutcomePrices[1])
		if !ok1 || !ok2 {
			continue
		}

		t1 := teams.Normalize(m.Outcomes[0])
		t2 := teams.Normalize(m.Outcomes[1])
		if t1 == "" || t2 == "" || t1 == t2 {
			continue
		}

		game := domain.GameEvent{
			Platform: domain.PlatformPolymarket,
			League:   league,
			Date:     gameDate,
			Team1Raw: m.Outcomes[0],
			Team2Raw: m.Outcomes[1],
			Team1:    t1,
			Team2:    t2,
			AskTeam1: p1,
			AskTeam2: p2,
			Volume:   float64(m.Volume),
			Title:    ev.Title,
			URL:      "https://polymarket.com/event/" + ev.Slug,
		}
		if len(m.ClobTokenIDs) == 2 {
			game.PriceTokenRefs = [2]string{m.ClobTokenIDs[0], m.ClobTokenIDs[1]}
		}
		return game, true
	}

	return domain.GameEvent{}, false
}

func parsePrice(s string) (float64, bool) {
	p, err := strconv.ParseFloat(s, 64)
	if err != nil || p <= 0 || p >= 1 {
		return 0, false
	}
	return p, true
}

// leagueFromSlug detects the league from an event slug like
// "nba-phi-nyk-2025-10-02", falling back to the source's league hint.
func leagueFromSlug(slug, hint string) string {
	prefixes := []struct {
		prefix string
		league string
	}{
		{"nba-", "NBA"}, {"nhl-", "NHL"}, {"nfl-", "NFL"}, {"mlb-", "MLB"},
		{"ufc-", "UFC"}, {"wnba-", "WNBA"}, {"ncaab-", "NCAAMB"},
		{"ncaaf-", "NCAAF"}, {"ncaaw-", "NCAAWB"},
	}
	lower := strings.ToLower(slug)
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.league
		}
	}
	return teams.NormalizeLeague(hint)
}

// gameDateEastern converts a UTC endDate string to the approximate US
// Eastern game date as a UTC midnight.
func gameDateEastern(endDate string) (time.Time, bool) {
	if endDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, endDate)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC().Add(easternOffset).Truncate(24 * time.Hour), true
}

func slugFromURL(u string) string {
	if i := strings.LastIndexByte(u, '/'); i >= 0 {
		return u[i+1:]
	}
	return u
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
