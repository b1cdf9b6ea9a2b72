package kalshi

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linesweep/linesweep/internal/domain"
	"github.com/linesweep/linesweep/internal/match"
	"github.com/linesweep/linesweep/internal/teams"
)

// Fetcher walks the configured sports series and converts their open events
// into GameEvents. It implements domain.EventFetcher.
type Fetcher struct {
	client  *Client
	series  []string
	workers int
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher that scans the given series tickers with up
// to workers parallel series requests.
func NewFetcher(client *Client, series []string, workers int, logger *slog.Logger) *Fetcher {
	if workers < 1 {
		workers = 1
	}
	return &Fetcher{
		client:  client,
		series:  series,
		workers: workers,
		logger:  logger.With(slog.String("component", "kalshi_fetcher")),
	}
}

// Platform identifies this fetcher's platform.
func (f *Fetcher) Platform() domain.Platform { return domain.PlatformKalshi }

// FetchEvents fetches all open moneyline games across every configured
// series. Series are fetched in parallel; a failure in any series fails the
// whole fetch as a unit.
func (f *Fetcher) FetchEvents(ctx context.Context) ([]domain.GameEvent, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	var mu sync.Mutex
	var all []domain.GameEvent

	for _, series := range f.series {
		series := series
		g.Go(func() error {
			games, err := f.fetchSeries(ctx, series)
			if err != nil {
				return err
			}
			if len(games) > 0 {
				f.logger.Debug("series fetched",
					slog.String("series", series),
					slog.Int("games", len(games)),
				)
				mu.Lock()
				all = append(all, games...)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// fetchSeries pages through one series and parses its events.
func (f *Fetcher) fetchSeries(ctx context.Context, series string) ([]domain.GameEvent, error) {
	league := teams.NormalizeLeague(series)

	var games []domain.GameEvent
	cursor := ""
	for {
		events, next, err := f.client.GetEventsPage(ctx, series, cursor)
		if err != nil {
			return nil, err
		}
		for i := range events {
			if game, ok := parseEvent(&events[i], league); ok {
				games = append(games, game)
			}
		}
		if next == "" || len(events) == 0 {
			break
		}
		cursor = next
	}
	return games, nil
}

// parseEvent converts one API event into a GameEvent. Events without a
// parseable date, two distinct teams, or a resolved ask price for both
// teams are skipped.
func parseEvent(ev *APIEvent, league string) (domain.GameEvent, bool) {
	date, ok := dateFromTicker(ev.EventTicker)
	if !ok {
		return domain.GameEvent{}, false
	}
	t1Raw, t2Raw, ok := splitTitle(ev.Title)
	if !ok {
		return domain.GameEvent{}, false
	}
	t1 := teams.Normalize(t1Raw)
	t2 := teams.Normalize(t2Raw)
	if t1 == "" || t2 == "" || t1 == t2 {
		return domain.GameEvent{}, false
	}

	var volume float64
	var ask1, ask2 float64
	for i := range ev.Markets {
		m := &ev.Markets[i]
		volume += m.Volume
		side, price, ok := resolveSide(m, t1, t2)
		if !ok {
			continue
		}
		if side == 0 {
			ask1 = price
		} else {
			ask2 = price
		}
	}
	if ask1 == 0 || ask2 == 0 {
		return domain.GameEvent{}, false
	}

	return domain.GameEvent{
		Platform: domain.PlatformKalshi,
		League:   league,
		Date:     date,
		Team1Raw: t1Raw,
		Team2Raw: t2Raw,
		Team1:    t1,
		Team2:    t2,
		AskTeam1: ask1,
		AskTeam2: ask2,
		Volume:   volume,
		Title:    ev.Title,
		URL:      "https://kalshi.com/markets/" + ev.EventTicker,
	}, true
}

// resolveSide matches a market to team 1 (side 0) or team 2 (side 1). It
// tries, in order: exact match on the normalized ticker-suffix code,
// similarity with a substring boost (a clear winner must beat the other
// side by a margin), and finally title containment for markets whose title
// names only one team.
func resolveSide(m *APIMarket, t1, t2 string) (side int, price float64, ok bool) {
	price, ok = marketPrice(m)
	if !ok {
		return 0, 0, false
	}

	code := ""
	if i := strings.LastIndexByte(m.Ticker, '-'); i >= 0 {
		code = strings.ToLower(m.Ticker[i+1:])
	}
	codeNorm := ""
	if code != "" {
		codeNorm = teams.Normalize(code)
	}

	if codeNorm != "" {
		if codeNorm == t1 {
			return 0, price, true
		}
		if codeNorm == t2 {
			return 1, price, true
		}

		s1 := match.Score(codeNorm, t1)
		s2 := match.Score(codeNorm, t2)
		// Two-letter codes ("GB", "KC") are below the scorer's substring
		// minimum, so apply the containment boost separately.
		if len(codeNorm) >= 2 {
			if strings.Contains(t1, codeNorm) && s1 < 0.9 {
				s1 = 0.9
			}
			if strings.Contains(t2, codeNorm) && s2 < 0.9 {
				s2 = 0.9
			}
		}
		const threshold, margin = 0.4, 0.1
		if s1 > threshold && s1 > s2+margin {
			return 0, price, true
		}
		if s2 > threshold && s2 > s1+margin {
			return 1, price, true
		}
	}

	title := strings.ToLower(m.Title)
	if !strings.Contains(title, " vs ") && !strings.Contains(title, " at ") {
		if strings.Contains(title, t1) {
			return 0, price, true
		}
		if strings.Contains(title, t2) {
			return 1, price, true
		}
	}

	return 0, 0, false
}

// marketPrice extracts the yes-ask as a dollar price in (0,1). The dollar
// string field is preferred; integer cents are the fallback.
func marketPrice(m *APIMarket) (float64, bool) {
	if m.YesAskDollars != "" {
		if p, err := strconv.ParseFloat(m.YesAskDollars, 64); err == nil && p > 0 && p < 1 {
			return p, true
		}
	}
	if m.YesAsk > 0 {
		p := float64(m.YesAsk) / 100.0
		if p < 1 {
			return p, true
		}
	}
	return 0, false
}

var tickerDatePattern = regexp.MustCompile(`^\d{2}[A-Z]{3}\d{2}`)

var tickerMonths = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// dateFromTicker extracts the game date from an event ticker like
// "KXNBAGAME-26FEB01ATLBOS" (2026-02-01). The result is a UTC midnight.
func dateFromTicker(ticker string) (time.Time, bool) {
	parts := strings.SplitN(ticker, "-", 3)
	if len(parts) < 2 || len(parts[1]) < 7 {
		return time.Time{}, false
	}
	dp := parts[1][:7]
	if !tickerDatePattern.MatchString(dp) {
		return time.Time{}, false
	}

	year, err := strconv.Atoi(dp[:2])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := tickerMonths[dp[2:5]]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dp[5:7])
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(2000+year, month, day, 0, 0, 0, 0, time.UTC), true
}

// splitTitle extracts the two team names from "Team A at Team B" or
// "Team A vs Team B" titles.
func splitTitle(title string) (t1, t2 string, ok bool) {
	for _, sep := range []string{" at ", " vs. ", " vs "} {
		if strings.Contains(title, sep) {
			parts := strings.SplitN(title, sep, 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
			}
		}
	}
	return "", "", false
}
