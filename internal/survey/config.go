package survey

import (
	"time"

	"tutor-onboarding/internal/common/config"
)

// Config holds the wizard and draft store settings.
type Config struct {
	SubmitTimeout  time.Duration
	DraftTTL       time.Duration
	DraftKeyPrefix string
}

// LoadConfig derives the survey settings from the application config.
// A nil app config yields the built-in defaults.
func LoadConfig(app *config.Config) *Config {
	cfg := &Config{
		SubmitTimeout:  30 * time.Second,
		DraftTTL:       7 * 24 * time.Hour,
		DraftKeyPrefix: "survey:draft:",
	}
	if app == nil {
		return cfg
	}
	if app.APIs.Matching.Timeout > 0 {
		cfg.SubmitTimeout = config.GetDuration(app.APIs.Matching.Timeout)
	}
	if app.Survey.DraftTTL > 0 {
		cfg.DraftTTL = config.GetDuration(app.Survey.DraftTTL)
	}
	if app.Survey.DraftKeyPrefix != "" {
		cfg.DraftKeyPrefix = app.Survey.DraftKeyPrefix
	}
	return cfg
}
