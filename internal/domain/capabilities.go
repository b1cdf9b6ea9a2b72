package domain

import "context"

// EventFetcher returns every open sports moneyline listing for one platform.
// Implementations own their pagination and parallelism; from the caller's
// perspective a fetch returns a complete list or fails as a unit. A nil
// slice with a nil error is a valid empty result.
type EventFetcher interface {
	Platform() Platform
	FetchEvents(ctx context.Context) ([]GameEvent, error)
}

// BestAskLookup fetches the current best tradable ask price for a single
// order-book token. Returned prices are in (0,1); anything else is an error.
type BestAskLookup interface {
	FetchBestAsk(ctx context.Context, tokenRef string) (float64, error)
}
