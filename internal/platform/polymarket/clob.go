package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ClobClient is the REST client for the Polymarket CLOB (Central Limit
// Order Book) API. Price reads are unauthenticated. It implements
// domain.BestAskLookup.
type ClobClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClobClient creates a new CLOB REST client.
//
// baseURL is the CLOB API root, e.g. "https://clob.polymarket.com".
func NewClobClient(baseURL string) *ClobClient {
	return &ClobClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// FetchBestAsk returns the best ask (the cheapest resting sell) for a CLOB
// token. Prices outside (0,1) are treated as failures so callers keep their
// indicative price.
func (c *ClobClient) FetchBestAsk(ctx context.Context, tokenRef string) (float64, error) {
	params := url.Values{}
	params.Set("token_id", tokenRef)
	params.Set("side", "sell")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/price?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("polymarket/clob: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("polymarket/clob: http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("polymarket/clob: read response: %w", err)
	}
	if err := checkHTTPStatus(resp.StatusCode, body); err != nil {
		return 0, fmt.Errorf("polymarket/clob: %w", err)
	}

	var priceResp struct {
		Price string `json:"price"`
	}
	if err := json.Unmarshal(body, &priceResp); err != nil {
		return 0, fmt.Errorf("polymarket/clob: decode price: %w", err)
	}

	price, err := strconv.ParseFloat(priceResp.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("polymarket/clob: parse price %q: %w", priceResp.Price, err)
	}
	if price <= 0 || price >= 1 {
		return 0, fmt.Errorf("polymarket/clob: price %v out of range", price)
	}

	return price, nil
}
