package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies LINESWEEP_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known LINESWEEP_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e.
// not empty). This lets operators inject secrets at deploy time without
// touching the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Kalshi ──
	setStr(&cfg.Kalshi.ApiKey, "LINESWEEP_KALSHI_API_KEY")
	setStr(&cfg.Kalshi.RsaPrivateKeyPath, "LINESWEEP_KALSHI_RSA_PRIVATE_KEY_PATH")
	setStr(&cfg.Kalshi.BaseURL, "LINESWEEP_KALSHI_BASE_URL")
	setStringSlice(&cfg.Kalshi.Series, "LINESWEEP_KALSHI_SERIES")
	setInt(&cfg.Kalshi.FetchWorkers, "LINESWEEP_KALSHI_FETCH_WORKERS")

	// ── Polymarket ──
	setStr(&cfg.Polymarket.GammaHost, "LINESWEEP_POLYMARKET_GAMMA_HOST")
	setStr(&cfg.Polymarket.ClobHost, "LINESWEEP_POLYMARKET_CLOB_HOST")
	setInt(&cfg.Polymarket.FetchWorkers, "LINESWEEP_POLYMARKET_FETCH_WORKERS")

	// ── Matcher ──
	setFloat64(&cfg.Matcher.FuzzyThreshold, "LINESWEEP_MATCHER_FUZZY_THRESHOLD")
	setFloat64(&cfg.Matcher.DisplayThreshold, "LINESWEEP_MATCHER_DISPLAY_THRESHOLD")
	setInt(&cfg.Matcher.DateToleranceDays, "LINESWEEP_MATCHER_DATE_TOLERANCE_DAYS")

	// ── Scanner ──
	setFloat64(&cfg.Scanner.ProfitThreshold, "LINESWEEP_SCANNER_PROFIT_THRESHOLD")
	setInt(&cfg.Scanner.RefinePoolSize, "LINESWEEP_SCANNER_REFINE_POOL_SIZE")
	setDuration(&cfg.Scanner.Backoff, "LINESWEEP_SCANNER_BACKOFF")
	setDuration(&cfg.Scanner.AlertPause, "LINESWEEP_SCANNER_ALERT_PAUSE")

	// ── Notify ──
	setBool(&cfg.Notify.Console, "LINESWEEP_NOTIFY_CONSOLE")
	setStr(&cfg.Notify.TelegramToken, "LINESWEEP_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "LINESWEEP_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "LINESWEEP_NOTIFY_DISCORD_WEBHOOK_URL")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "LINESWEEP_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
