// Package config defines the top-level configuration for the scanner and
// provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by LINESWEEP_* environment
// variables.
type Config struct {
	Kalshi     KalshiConfig     `toml:"kalshi"`
	Polymarket PolymarketConfig `toml:"polymarket"`
	Matcher    MatcherConfig    `toml:"matcher"`
	Scanner    ScannerConfig    `toml:"scanner"`
	Notify     NotifyConfig     `toml:"notify"`
	LogLevel   string           `toml:"log_level"`
}

// KalshiConfig holds Kalshi exchange API credentials and the series to scan.
type KalshiConfig struct {
	ApiKey            string   `toml:"api_key"`
	RsaPrivateKeyPath string   `toml:"rsa_private_key_path"`
	BaseURL           string   `toml:"base_url"`
	Series            []string `toml:"series"`
	FetchWorkers      int      `toml:"fetch_workers"`
}

// PolymarketConfig holds Polymarket API endpoints and the discovery sources
// to scan. TagSlugs and SeriesIDs both map a league name to a Gamma query
// parameter; series IDs act as a fallback for leagues whose tag pages are
// sparse.
type PolymarketConfig struct {
	GammaHost    string            `toml:"gamma_host"`
	ClobHost     string            `toml:"clob_host"`
	TagSlugs     map[string]string `toml:"tag_slugs"`
	SeriesIDs    map[string]string `toml:"series_ids"`
	FetchWorkers int               `toml:"fetch_workers"`
}

// MatcherConfig holds cross-platform matching thresholds.
type MatcherConfig struct {
	FuzzyThreshold    float64 `toml:"fuzzy_threshold"`
	DisplayThreshold  float64 `toml:"display_threshold"`
	DateToleranceDays int     `toml:"date_tolerance_days"`
}

// ScannerConfig holds scan-loop and evaluation parameters.
type ScannerConfig struct {
	ProfitThreshold float64  `toml:"profit_threshold"`
	RefinePoolSize  int      `toml:"refine_pool_size"`
	Backoff         duration `toml:"backoff"`
	AlertPause      duration `toml:"alert_pause"`
}

// NotifyConfig holds alert channel settings. Console output is on by
// default; Telegram and Discord activate when their credentials are set.
type NotifyConfig struct {
	Console           bool   `toml:"console"`
	TelegramToken     string `toml:"telegram_token"`
	TelegramChatID    string `toml:"telegram_chat_id"`
	DiscordWebhookURL string `toml:"discord_webhook_url"`
}

// duration is a wrapper around time.Duration that supports TOML string
// decoding (e.g. "5s", "10s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so the TOML decoder can
// parse duration strings like "5s" or "1m".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with reasonable default values.
// These match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Kalshi: KalshiConfig{
			BaseURL: "https://api.elections.kalshi.com/trade-api/v2",
			Series: []string{
				"KXNBAGAME", "KXNHLGAME", "KXNFLGAME", "KXMLBGAME",
				"KXNCAAFGAME", "KXNCAAMBGAME", "KXUFCFIGHT",
			},
			FetchWorkers: 5,
		},
		Polymarket: PolymarketConfig{
			GammaHost: "https://gamma-api.polymarket.com",
			ClobHost:  "https://clob.polymarket.com",
			TagSlugs: map[string]string{
				"NBA": "nba", "NHL": "nhl", "NFL": "nfl", "MLB": "mlb",
				"NCAAF": "ncaaf", "NCAAMB": "ncaab", "UFC": "ufc",
			},
			SeriesIDs:    map[string]string{},
			FetchWorkers: 5,
		},
		Matcher: MatcherConfig{
			FuzzyThreshold:    0.50,
			DisplayThreshold:  0.67,
			DateToleranceDays: 1,
		},
		Scanner: ScannerConfig{
			ProfitThreshold: 0.99,
			RefinePoolSize:  10,
			Backoff:         duration{5 * time.Second},
			AlertPause:      duration{10 * time.Second},
		},
		Notify: NotifyConfig{
			Console: true,
		},
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Kalshi
	if c.Kalshi.ApiKey == "" {
		errs = append(errs, "kalshi: api_key must not be empty")
	}
	if c.Kalshi.RsaPrivateKeyPath == "" {
		errs = append(errs, "kalshi: rsa_private_key_path must not be empty")
	}
	if c.Kalshi.BaseURL == "" {
		errs = append(errs, "kalshi: base_url must not be empty")
	}
	if len(c.Kalshi.Series) == 0 {
		errs = append(errs, "kalshi: at least one series is required")
	}
	if c.Kalshi.FetchWorkers < 1 {
		errs = append(errs, "kalshi: fetch_workers must be >= 1")
	}

	// Polymarket
	if c.Polymarket.GammaHost == "" {
		errs = append(errs, "polymarket: gamma_host must not be empty")
	}
	if c.Polymarket.ClobHost == "" {
		errs = append(errs, "polymarket: clob_host must not be empty")
	}
	if len(c.Polymarket.TagSlugs) == 0 && len(c.Polymarket.SeriesIDs) == 0 {
		errs = append(errs, "polymarket: at least one tag_slug or series_id source is required")
	}
	if c.Polymarket.FetchWorkers < 1 {
		errs = append(errs, "polymarket: fetch_workers must be >= 1")
	}

	// Matcher
	if c.Matcher.FuzzyThreshold <= 0 || c.Matcher.FuzzyThreshold > 1 {
		errs = append(errs, fmt.Sprintf("matcher: fuzzy_threshold must be in (0,1], got %v", c.Matcher.FuzzyThreshold))
	}
	if c.Matcher.DisplayThreshold <= 0 || c.Matcher.DisplayThreshold > 1 {
		errs = append(errs, fmt.Sprintf("matcher: display_threshold must be in (0,1], got %v", c.Matcher.DisplayThreshold))
	}
	if c.Matcher.DisplayThreshold < c.Matcher.FuzzyThreshold {
		errs = append(errs, "matcher: display_threshold must not be below fuzzy_threshold")
	}
	if c.Matcher.DateToleranceDays < 0 {
		errs = append(errs, "matcher: date_tolerance_days must be >= 0")
	}

	// Scanner
	if c.Scanner.ProfitThreshold <= 0 || c.Scanner.ProfitThreshold > 1 {
		errs = append(errs, fmt.Sprintf("scanner: profit_threshold must be in (0,1], got %v", c.Scanner.ProfitThreshold))
	}
	if c.Scanner.RefinePoolSize < 1 {
		errs = append(errs, "scanner: refine_pool_size must be >= 1")
	}
	if c.Scanner.Backoff.Duration <= 0 {
		errs = append(errs, "scanner: backoff must be positive")
	}
	if c.Scanner.AlertPause.Duration < 0 {
		errs = append(errs, "scanner: alert_pause must not be negative")
	}

	// Notify — Telegram fields must be set together.
	tt := c.Notify.TelegramToken != ""
	tc := c.Notify.TelegramChatID != ""
	if tt != tc {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
