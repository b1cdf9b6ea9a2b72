package config

// RedactedConfig returns a copy of cfg with sensitive fields replaced by the
// redaction placeholder "***". Use this when logging or printing the active
// configuration so secrets are never accidentally exposed.
func RedactedConfig(cfg *Config) Config {
	out := *cfg // shallow copy of the top-level struct

	redact(&out.Kalshi.ApiKey)
	redact(&out.Notify.TelegramToken)
	redact(&out.Notify.TelegramChatID)
	redact(&out.Notify.DiscordWebhookURL)

	// Copy slices and maps so callers cannot mutate the original through the
	// redacted copy.
	if cfg.Kalshi.Series != nil {
		out.Kalshi.Series = make([]string, len(cfg.Kalshi.Series))
		copy(out.Kalshi.Series, cfg.Kalshi.Series)
	}
	if cfg.Polymarket.TagSlugs != nil {
		out.Polymarket.TagSlugs = make(map[string]string, len(cfg.Polymarket.TagSlugs))
		for k, v := range cfg.Polymarket.TagSlugs {
			out.Polymarket.TagSlugs[k] = v
		}
	}
	if cfg.Polymarket.SeriesIDs != nil {
		out.Polymarket.SeriesIDs = make(map[string]string, len(cfg.Polymarket.SeriesIDs))
		for k, v := range cfg.Polymarket.SeriesIDs {
			out.Polymarket.SeriesIDs[k] = v
		}
	}

	return out
}

const redacted = "***"

// redact replaces a non-empty string with the redacted placeholder.
func redact(s *string) {
	if *s != "" {
		*s = redacted
	}
}
