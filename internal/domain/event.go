// Package domain defines the core data model for the scanner: platform
// listings, matched cross-platform pairs, arbitrage verdicts, and cycle
// reports. All entities are owned by a single scan cycle and are never
// persisted or shared across cycles.
package domain

import "time"

// Platform identifies which prediction market a listing came from.
type Platform string

const (
	PlatformKalshi     Platform = "kalshi"
	PlatformPolymarket Platform = "polymarket"
)

// GameEvent is one platform's listing of a sporting event as a moneyline
// market: two teams, two "this team wins" ask prices.
//
// Ask prices start as indicative (mid-market) values from the discovery API
// and may later be overwritten once per cycle with true order-book asks by
// the refiner. Dates carry no time-of-day meaning; fetchers truncate them to
// UTC midnight.
type GameEvent struct {
	Platform Platform
	League   string // normalized league code, e.g. "NBA", "UFC"
	Date     time.Time

	Team1Raw string
	Team2Raw string
	Team1    string // normalized, never empty
	Team2    string // normalized, never empty, != Team1

	AskTeam1 float64 // in [0,1]
	AskTeam2 float64 // in [0,1]

	Volume float64
	Title  string
	URL    string

	// PriceTokenRefs are opaque order-book token identifiers for Team1 and
	// Team2, usable with a BestAskLookup. Both empty on platforms without
	// order-book refinement.
	PriceTokenRefs [2]string
}

// Refinable reports whether this event carries order-book token refs.
func (e *GameEvent) Refinable() bool {
	return e.PriceTokenRefs[0] != "" && e.PriceTokenRefs[1] != ""
}
