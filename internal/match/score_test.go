package match

import "testing"

func TestScoreEqualStrings(t *testing.T) {
	if got := Score("lakers", "lakers"); got != 1.0 {
		t.Fatalf("Score(equal) = %v, want 1.0", got)
	}
}

func TestScoreEmpty(t *testing.T) {
	if got := Score("", "lakers"); got != 0.0 {
		t.Errorf("Score(empty, x) = %v, want 0", got)
	}
	if got := Score("lakers", ""); got != 0.0 {
		t.Errorf("Score(x, empty) = %v, want 0", got)
	}
}

func TestScoreSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"celtics", "celtic"},
		{"ohio state", "ohio state buckeyes"},
		{"rangers", "red wings"},
		{"north carolina", "north carolina state"},
	}
	for _, p := range pairs {
		ab := Score(p[0], p[1])
		ba := Score(p[1], p[0])
		if ab != ba {
			t.Errorf("Score(%q,%q)=%v but Score(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"a", "zzzzzz"},
		{"jazz", "jazz"},
		{"kraken", "golden knights"},
		{"st. john's", "st johns red storm"},
	}
	for _, p := range pairs {
		s := Score(p[0], p[1])
		if s < 0 || s > 1 {
			t.Errorf("Score(%q,%q) = %v outside [0,1]", p[0], p[1], s)
		}
	}
}

// A name contained in the other is lifted to at least the substring floor.
func TestScoreSubstringBonus(t *testing.T) {
	if got := Score("ohio state", "ohio state buckeyes"); got < 0.90 {
		t.Errorf("Score(substring) = %v, want >= 0.90", got)
	}
	if got := Score("heat", "miami heat"); got < 0.90 {
		t.Errorf("Score(substring) = %v, want >= 0.90", got)
	}
}

// Substrings shorter than the minimum get no bonus.
func TestScoreShortSubstringNoBonus(t *testing.T) {
	got := Score("no", "northern colorado")
	// LCS ratio is 2*2/(2+17); the containment must not lift it.
	if got >= 0.90 {
		t.Errorf("Score(short substring) = %v, want < 0.90", got)
	}
}

func TestScoreDissimilarNamesLow(t *testing.T) {
	if got := Score("celtics", "nuggets"); got >= 0.67 {
		t.Errorf("Score(dissimilar) = %v, want < 0.67", got)
	}
}
