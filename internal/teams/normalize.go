// Package teams resolves raw team strings from either platform to canonical
// identities. The alias table is process-wide, read-only state: populated at
// compile time and never mutated during a scan.
package teams

import (
	"regexp"
	"strings"
)

// rankingPattern matches poll-ranking markers like "(1)" or "#25" that some
// platforms prepend to college team names.
var rankingPattern = regexp.MustCompile(`\(\d+\)|#\d+`)

// Normalize resolves a raw team string to its canonical form. It lowercases,
// strips ranking markers, collapses whitespace, and then consults the alias
// table. Unknown strings pass through cleaned. Normalize is idempotent:
// alias values are fixed points of the cleaning rules and never alias keys
// themselves.
func Normalize(raw string) string {
	n := strings.ToLower(strings.TrimSpace(raw))
	n = rankingPattern.ReplaceAllString(n, "")
	n = strings.Join(strings.Fields(n), " ")
	if canonical, ok := aliases[n]; ok {
		return canonical
	}
	return n
}

// NormalizeLeague maps a platform-specific league code (Kalshi series ticker
// or Polymarket tag) to the standard league name. Unknown codes pass through
// uppercased.
func NormalizeLeague(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if std, ok := leagues[code]; ok {
		return std
	}
	return code
}
