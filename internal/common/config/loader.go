package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges configs/config.<APP_ENVIRONMENT>.yaml
// and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found walking up from the working directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if secrets are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.APIs.Matching.APIToken == "" {
		if val := os.Getenv("MATCHING_API_TOKEN"); val != "" {
			cfg.APIs.Matching.APIToken = val
		}
	}
	if cfg.APIs.Matching.BaseURL == "" {
		if val := os.Getenv("MATCHING_BASE_URL"); val != "" {
			cfg.APIs.Matching.BaseURL = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "tutor-onboarding"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.APIs.Matching.Timeout == 0 {
		cfg.APIs.Matching.Timeout = 30000
	}
	if cfg.APIs.Matching.MaxRetries == 0 {
		cfg.APIs.Matching.MaxRetries = 2
	}

	if cfg.Submission.Transport == "" {
		cfg.Submission.Transport = TransportHTTP
	}
	if cfg.Submission.ProcessID == "" {
		cfg.Submission.ProcessID = "tutor-matching"
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Survey.DraftTTL == 0 {
		cfg.Survey.DraftTTL = int((7 * 24 * time.Hour).Milliseconds())
	}
	if cfg.Survey.DraftKeyPrefix == "" {
		cfg.Survey.DraftKeyPrefix = "survey:draft:"
	}

	if cfg.Recommendation.DefaultLimit == 0 {
		cfg.Recommendation.DefaultLimit = 10
	}

	if cfg.Explanation.Locale == "" {
		cfg.Explanation.Locale = "vi"
	}
	if cfg.Explanation.FetchTimeout == 0 {
		cfg.Explanation.FetchTimeout = 60000
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9090"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.APIs.Matching.BaseURL == "" {
		return fmt.Errorf("apis.matching.base_url is required")
	}

	switch cfg.Submission.Transport {
	case TransportHTTP:
	case TransportCamunda:
		if cfg.Camunda.BrokerAddress == "" {
			return fmt.Errorf("camunda.broker_address is required for camunda submission")
		}
	default:
		return fmt.Errorf("submission.transport must be %q or %q", TransportHTTP, TransportCamunda)
	}

	if cfg.Recommendation.DefaultMinScore < 0 || cfg.Recommendation.DefaultMinScore > 1 {
		return fmt.Errorf("recommendation.default_min_score must be within [0,1]")
	}
	if cfg.Recommendation.DefaultLimit < 0 {
		return fmt.Errorf("recommendation.default_limit must not be negative")
	}

	switch cfg.Explanation.Locale {
	case "vi", "en":
	default:
		return fmt.Errorf("explanation.locale must be vi or en")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
