package polymarket

import "strings"

// excludePatterns are question fragments that mark NON-moneyline markets:
// spreads, totals, player props, and season-long futures.
var excludePatterns = []string{
	"o/u ", "over/under", "spread:", "spread ",
	"total:", "team total", "1h ", "1h:", "first half",
	"anytime touchdown", "rushing yards", "receiving yards", "passing yards",
	"passing touchdowns", "points over", "points under",
	"rebounds over", "assists over", "steals over", "blocks over",
	"mvp", "champion", "championship", "playoffs",
	"super bowl", "finals", "world series", "stanley cup",
	"regular season", "division winner", "conference winner",
}

// genericOutcomes are outcome labels that are never team names.
var genericOutcomes = map[string]bool{
	"yes":   true,
	"no":    true,
	"over":  true,
	"under": true,
	"draw":  true,
}

// isMoneyline reports whether a market is a straight team-A-versus-team-B
// win/loss market. Non-moneyline filtering is this fetcher's responsibility;
// the matching core assumes it only ever sees moneylines.
func isMoneyline(question string, outcomes []string) bool {
	q := strings.ToLower(question)

	for _, pattern := range excludePatterns {
		if strings.Contains(q, pattern) {
			return false
		}
	}

	if len(outcomes) != 2 {
		return false
	}
	o1 := strings.ToLower(outcomes[0])
	o2 := strings.ToLower(outcomes[1])
	if genericOutcomes[o1] || genericOutcomes[o2] {
		return false
	}

	// "Team A vs Team B" style questions are moneylines outright.
	for _, ind := range []string{" vs ", " vs. ", " at "} {
		if strings.Contains(q, ind) {
			return true
		}
	}

	// Otherwise accept two distinct team-like outcome names.
	return outcomes[0] != outcomes[1]
}
