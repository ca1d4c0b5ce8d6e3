package recommendation

import (
	"time"

	"tutor-onboarding/internal/common/config"
	"tutor-onboarding/internal/explanation"
)

// Config holds ranking defaults and explanation settings.
type Config struct {
	DefaultLimit    int
	DefaultMinScore float64
	Locale          string
	FetchTimeout    time.Duration
}

// LoadConfig derives the ranking settings. A nil app config yields defaults.
func LoadConfig(app *config.Config) *Config {
	exp := explanation.LoadConfig(app)
	cfg := &Config{
		DefaultLimit: 10,
		Locale:       exp.Locale,
		FetchTimeout: exp.FetchTimeout,
	}
	if app == nil {
		return cfg
	}
	if app.Recommendation.DefaultLimit > 0 {
		cfg.DefaultLimit = app.Recommendation.DefaultLimit
	}
	cfg.DefaultMinScore = app.Recommendation.DefaultMinScore
	return cfg
}
