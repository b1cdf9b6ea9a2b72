package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrRateLimited  = errors.New("rate limited")
	// ErrFetchFailed marks a platform fetch that failed as a unit. It is
	// distinct from an empty result: zero events is a valid cycle, a fetch
	// failure aborts the cycle into backoff.
	ErrFetchFailed = errors.New("platform fetch failed")
)
