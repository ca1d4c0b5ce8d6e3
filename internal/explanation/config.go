package explanation

import (
	"time"

	"tutor-onboarding/internal/common/config"
)

// Config holds the explanation locale and AI fetch timeout.
type Config struct {
	Locale       string
	FetchTimeout time.Duration
}

// LoadConfig reads the explanation section. A nil app config yields defaults.
func LoadConfig(app *config.Config) *Config {
	cfg := &Config{
		Locale:       LocaleVI,
		FetchTimeout: 60 * time.Second,
	}
	if app == nil {
		return cfg
	}
	if app.Explanation.Locale != "" {
		cfg.Locale = app.Explanation.Locale
	}
	if app.Explanation.FetchTimeout > 0 {
		cfg.FetchTimeout = config.GetDuration(app.Explanation.FetchTimeout)
	}
	return cfg
}
