package domain

import "time"

// CycleReport summarizes one completed scan cycle for console or
// structured-log rendering by the presentation layer.
type CycleReport struct {
	CycleID   string
	StartedAt time.Time
	Duration  time.Duration

	KalshiFetched     int
	PolymarketFetched int
	Matched           int
	HighConfidence    int // pairs at or above the display threshold
	Profitable        int

	RefineAttempted int
	RefineSucceeded int
}

// RefineCoverage returns refined/attempted in [0,1], or 1 when nothing was
// attempted.
func (r *CycleReport) RefineCoverage() float64 {
	if r.RefineAttempted == 0 {
		return 1.0
	}
	return float64(r.RefineSucceeded) / float64(r.RefineAttempted)
}
