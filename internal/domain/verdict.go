package domain

// ArbitrageVerdict is the evaluator's decision for one matched pair. It is
// derived, ephemeral state: discarded at the end of the cycle.
type ArbitrageVerdict struct {
	ID           string
	Pair         *MatchedPair
	CombinedCost float64
	Profitable   bool
}

// ProfitCents returns the guaranteed profit of the cheaper leg pairing in
// whole cents. Zero or negative when the pair is not profitable.
func (v *ArbitrageVerdict) ProfitCents() int {
	return int((1.0 - v.CombinedCost) * 100)
}
