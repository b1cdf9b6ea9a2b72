package polymarket

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIsMoneylineAcceptsGameMarkets(t *testing.T) {
	cases := []struct {
		question string
		outcomes []string
	}{
		{"Lakers vs. Celtics", []string{"Lakers", "Celtics"}},
		{"Knicks at Bulls", []string{"Knicks", "Bulls"}},
		{"Who wins the game?", []string{"Rangers", "Islanders"}},
	}
	for _, c := range cases {
		if !isMoneyline(c.question, c.outcomes) {
			t.Errorf("isMoneyline(%q, %v) = false, want true", c.question, c.outcomes)
		}
	}
}

func TestIsMoneylineRejectsDerivatives(t *testing.T) {
	cases := []struct {
		question string
		outcomes []string
	}{
		{"Lakers vs Celtics O/U 220.5", []string{"Over", "Under"}},
		{"Spread: Lakers -5.5", []string{"Lakers", "Celtics"}},
		{"Team total: Celtics points", []string{"Over", "Under"}},
		{"Will LeBron score 30+ points over the season?", []string{"Yes", "No"}},
		{"NBA Champion 2026", []string{"Lakers", "Celtics"}},
		{"Lakers vs Celtics", []string{"Lakers"}},
		{"Lakers moneyline", []string{"Lakers", "Lakers"}},
	}
	for _, c := range cases {
		if isMoneyline(c.question, c.outcomes) {
			t.Errorf("isMoneyline(%q, %v) = true, want false", c.question, c.outcomes)
		}
	}
}

// Gamma ships outcome arrays as JSON-encoded strings; both encodings must
// decode.
func TestStringListDecoding(t *testing.T) {
	var direct stringList
	if err := json.Unmarshal([]byte(`["Lakers","Celtics"]`), &direct); err != nil {
		t.Fatalf("direct array: %v", err)
	}
	if len(direct) != 2 || direct[0] != "Lakers" {
		t.Errorf("direct = %v", direct)
	}

	var nested stringList
	if err := json.Unmarshal([]byte(`"[\"Lakers\",\"Celtics\"]"`), &nested); err != nil {
		t.Fatalf("nested string: %v", err)
	}
	if len(nested) != 2 || nested[1] != "Celtics" {
		t.Errorf("nested = %v", nested)
	}

	var empty stringList
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatalf("empty string: %v", err)
	}
	if empty != nil {
		t.Errorf("empty = %v, want nil", empty)
	}
}

func TestFlexFloatDecoding(t *testing.T) {
	var num flexFloat
	if err := json.Unmarshal([]byte(`12345.6`), &num); err != nil {
		t.Fatalf("number: %v", err)
	}
	if float64(num) != 12345.6 {
		t.Errorf("number = %v", num)
	}

	var str flexFloat
	if err := json.Unmarshal([]byte(`"789.5"`), &str); err != nil {
		t.Fatalf("string: %v", err)
	}
	if float64(str) != 789.5 {
		t.Errorf("string = %v", str)
	}
}

func TestGameDateEastern(t *testing.T) {
	// 2026-02-02T01:00:00Z is still the evening of Feb 1 on the US east
	// coast.
	got, ok := gameDateEastern("2026-02-02T01:00:00Z")
	if !ok {
		t.Fatal("gameDateEastern rejected a valid date")
	}
	want := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("gameDateEastern = %v, want %v", got, want)
	}

	if _, ok := gameDateEastern(""); ok {
		t.Error("gameDateEastern accepted an empty date")
	}
	if _, ok := gameDateEastern("tomorrow"); ok {
		t.Error("gameDateEastern accepted garbage")
	}
}

func TestLeagueFromSlug(t *testing.T) {
	cases := []struct {
		slug string
		hint string
		want string
	}{
		{"nba-lal-bos-2026-02-01", "", "NBA"},
		{"nhl-nyr-bos-2026-02-01", "", "NHL"},
		{"ncaab-duke-unc-2026-02-01", "", "NCAAMB"},
		{"some-other-event", "cbb", "NCAAMB"},
		{"some-other-event", "NBA", "NBA"},
	}
	for _, c := range cases {
		if got := leagueFromSlug(c.slug, c.hint); got != c.want {
			t.Errorf("leagueFromSlug(%q, %q) = %q, want %q", c.slug, c.hint, got, c.want)
		}
	}
}

func TestParseEventBuildsGame(t *testing.T) {
	today := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	ev := &APIEvent{
		Title:   "Lakers vs. Celtics",
		Slug:    "nba-lal-bos-2026-02-01",
		EndDate: "2026-02-02T01:00:00Z",
		Markets: []APIMarket{{
			Question:      "Lakers vs. Celtics",
			Outcomes:      stringList{"Lakers", "Celtics"},
			OutcomePrices: stringList{"0.47", "0.55"},
			ClobTokenIDs:  stringList{"tokA", "tokB"},
			Volume:        5000,
		}},
	}

	game, ok := parseEvent(ev, "NBA", today)
	if !ok {
		t.Fatal("parseEvent rejected a valid event")
	}
	if game.Team1 != "lakers" || game.Team2 != "celtics" {
		t.Errorf("teams = %q/%q", game.Team1, game.Team2)
	}
	if game.AskTeam1 != 0.47 || game.AskTeam2 != 0.55 {
		t.Errorf("asks = %v/%v", game.AskTeam1, game.AskTeam2)
	}
	if !game.Refinable() {
		t.Error("event with token refs must be refinable")
	}
	if game.League != "NBA" {
		t.Errorf("league = %q, want NBA", game.League)
	}
}

func TestParseEventSkipsPastGames(t *testing.T) {
	today := time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC)
	ev := &APIEvent{
		Title:   "Lakers vs. Celtics",
		Slug:    "nba-lal-bos-2026-02-01",
		EndDate: "2026-02-02T01:00:00Z",
		Markets: []APIMarket{{
			Question:      "Lakers vs. Celtics",
			Outcomes:      stringList{"Lakers", "Celtics"},
			OutcomePrices: stringList{"0.47", "0.55"},
		}},
	}
	if _, ok := parseEvent(ev, "NBA", today); ok {
		t.Error("parseEvent accepted a game in the past")
	}
}

func TestParseEventSkipsNonMoneyline(t *testing.T) {
	today := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	ev := &APIEvent{
		Title:   "Lakers vs. Celtics O/U 220.5",
		Slug:    "nba-lal-bos-ou-2026-02-01",
		EndDate: "2026-02-02T01:00:00Z",
		Markets: []APIMarket{{
			Question:      "Lakers vs. Celtics O/U 220.5",
			Outcomes:      stringList{"Over", "Under"},
			OutcomePrices: stringList{"0.50", "0.50"},
		}},
	}
	if _, ok := parseEvent(ev, "NBA", today); ok {
		t.Error("parseEvent accepted an over/under market")
	}
}

func TestParseEventRejectsDegeneratePrices(t *testing.T) {
	today := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	ev := &APIEvent{
		Title:   "Lakers vs. Celtics",
		Slug:    "nba-lal-bos-2026-02-01",
		EndDate: "2026-02-02T01:00:00Z",
		Markets: []APIMarket{{
			Question:      "Lakers vs. Celtics",
			Outcomes:      stringList{"Lakers", "Celtics"},
			OutcomePrices: stringList{"0", "1"},
		}},
	}
	if _, ok := parseEvent(ev, "NBA", today); ok {
		t.Error("parseEvent accepted degenerate prices")
	}
}
