package polymarket

import (
	"encoding/json"
	"strconv"
)

// --------------------------------------------------------------------------
// Polymarket Gamma API DTOs
// --------------------------------------------------------------------------

// APIEvent represents an event as returned by the Gamma API. An event
// groups one or more related markets.
type APIEvent struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	EndDate string      `json:"endDate"`
	Markets []APIMarket `json:"markets"`
}

// APIMarket represents a market as returned by the Gamma API. Several
// fields are JSON-encoded arrays shipped inside strings (e.g. outcomes as
// "[\"Lakers\",\"Celtics\"]"), and volume arrives as either a number or a
// string, so tolerant wrapper types absorb both shapes.
type APIMarket struct {
	Question      string     `json:"question"`
	Outcomes      stringList `json:"outcomes"`
	OutcomePrices stringList `json:"outcomePrices"`
	ClobTokenIDs  stringList `json:"clobTokenIds"`
	Volume        flexFloat  `json:"volume"`
}

// stringList decodes either a JSON array of strings or a JSON-encoded array
// shipped inside a string.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*s = direct
		return nil
	}
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	if encoded == "" {
		*s = nil
		return nil
	}
	var nested []string
	if err := json.Unmarshal([]byte(encoded), &nested); err != nil {
		return err
	}
	*s = nested
	return nil
}

// flexFloat decodes a float that the API may send as a number or a string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*f = 0
		return nil
	}
	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(num)
	return nil
}
