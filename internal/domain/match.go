package domain

// Orientation describes how the teams of two matched events line up.
type Orientation string

const (
	// OrientationDirect means Team1 of event A corresponds to Team1 of event B.
	OrientationDirect Orientation = "direct"
	// OrientationCrossed means Team1 of event A corresponds to Team2 of event B.
	OrientationCrossed Orientation = "crossed"
)

// MatchedPair links one Kalshi event with one Polymarket event that the
// matcher believes describe the same game. Pairs are created once per scan
// cycle and are immutable apart from price refinement of the underlying
// events.
type MatchedPair struct {
	EventA      *GameEvent // always PlatformKalshi
	EventB      *GameEvent // always PlatformPolymarket
	Orientation Orientation
	Confidence  float64 // in [0,1]
}

// CombinedVolume is the liquidity tie-break key used by the matcher.
func (p *MatchedPair) CombinedVolume() float64 {
	return p.EventA.Volume + p.EventB.Volume
}

// BTeam1Ask returns event B's ask for the outcome corresponding to event A's
// Team1, honouring the pair's orientation.
func (p *MatchedPair) BTeam1Ask() float64 {
	if p.Orientation == OrientationCrossed {
		return p.EventB.AskTeam2
	}
	return p.EventB.AskTeam1
}

// BTeam2Ask returns event B's ask for the outcome corresponding to event A's
// Team2, honouring the pair's orientation.
func (p *MatchedPair) BTeam2Ask() float64 {
	if p.Orientation == OrientationCrossed {
		return p.EventB.AskTeam1
	}
	return p.EventB.AskTeam2
}
