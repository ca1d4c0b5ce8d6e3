package config

// Config is the main application configuration struct.
type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	APIs           APIsConfig           `mapstructure:"apis"`
	Submission     SubmissionConfig     `mapstructure:"submission"`
	Camunda        CamundaConfig        `mapstructure:"camunda"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Survey         SurveyConfig         `mapstructure:"survey"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Explanation    ExplanationConfig    `mapstructure:"explanation"`
	Metrics        MetricsConfig        `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// APIsConfig holds settings for the backend matching service.
type APIsConfig struct {
	Matching struct {
		BaseURL    string `mapstructure:"base_url"`
		APIToken   string `mapstructure:"api_token"`
		Timeout    int    `mapstructure:"timeout"` // milliseconds
		MaxRetries int    `mapstructure:"max_retries"`
	} `mapstructure:"matching"`
}

const (
	TransportHTTP    = "http"
	TransportCamunda = "camunda"
)

// SubmissionConfig selects how a finished survey leaves the client.
type SubmissionConfig struct {
	Transport string `mapstructure:"transport"`
	ProcessID string `mapstructure:"process_id"`
}

// CamundaConfig locates the Zeebe broker used by the camunda transport.
type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the survey draft store connection.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SurveyConfig controls draft persistence of unfinished surveys.
type SurveyConfig struct {
	DraftTTL       int    `mapstructure:"draft_ttl"` // milliseconds
	DraftKeyPrefix string `mapstructure:"draft_key_prefix"`
}

// RecommendationConfig holds the default ranking parameters.
type RecommendationConfig struct {
	DefaultLimit    int     `mapstructure:"default_limit"`
	DefaultMinScore float64 `mapstructure:"default_min_score"` // 0..1
}

// ExplanationConfig holds settings for synthesized and on-demand explanations.
type ExplanationConfig struct {
	Locale       string `mapstructure:"locale"`
	FetchTimeout int    `mapstructure:"fetch_timeout"` // milliseconds
}

// MetricsConfig controls the /health and /metrics listener.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}
