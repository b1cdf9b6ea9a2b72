package kalshi

// --------------------------------------------------------------------------
// Kalshi API DTOs
// --------------------------------------------------------------------------

// APIEvent represents an event as returned by the Kalshi REST API with
// nested markets. The event ticker encodes the game date
// (e.g. "KXNBAGAME-26FEB01ATLBOS") and the title names both teams
// ("Atlanta at Boston").
type APIEvent struct {
	EventTicker string      `json:"event_ticker"`
	Title       string      `json:"title"`
	Markets     []APIMarket `json:"markets"`
}

// APIMarket is one side of a game: a single "will this team win" market.
// The ticker suffix carries the team code ("...-ATL"). yes_ask_dollars is a
// stringly-typed decimal; yes_ask is the same price in integer cents.
type APIMarket struct {
	Ticker        string  `json:"ticker"`
	Title         string  `json:"title"`
	YesAsk        int64   `json:"yes_ask"`
	YesAskDollars string  `json:"yes_ask_dollars"`
	Volume        float64 `json:"volume"`
}

// APIError represents a Kalshi API error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
