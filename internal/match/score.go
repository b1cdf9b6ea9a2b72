// Package match contains the heuristic entity-resolution engine: a string
// similarity scorer for team names and a cross-platform event matcher.
package match

import "strings"

// substringFloor is the minimum score granted when one name is a contiguous
// substring of the other (handles "ohio st." vs "ohio state buckeyes").
const substringFloor = 0.90

// minSubstringLen guards the substring bonus against tiny fragments
// accidentally contained in longer names.
const minSubstringLen = 3

// Score returns a similarity in [0,1] between two normalized team names.
// The base is a longest-common-subsequence ratio, 2*lcs/(len(a)+len(b)),
// lifted to at least substringFloor when either name contains the other.
// Score is symmetric and needs no alias-table entry to tolerate mascot
// suffixes or abbreviation-versus-full-name mismatches.
func Score(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	score := 2.0 * float64(lcsLen(ra, rb)) / float64(len(ra)+len(rb))

	if len(ra) >= minSubstringLen && strings.Contains(b, a) && score < substringFloor {
		score = substringFloor
	}
	if len(rb) >= minSubstringLen && strings.Contains(a, b) && score < substringFloor {
		score = substringFloor
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// lcsLen computes the longest-common-subsequence length with a rolling
// single-row table.
func lcsLen(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
