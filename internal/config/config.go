package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultBaseURL        = "https://api.openai.com/v1"
	DefaultModel          = "gpt-4o-mini"
	DefaultMaxTokens      = 1000
	DefaultLogLevel       = "info"
	DefaultLogFile        = "calendar-agent.log"
	DefaultCommandTimeout = 30 * time.Second
)

// Config holds all settings read once at startup. Values are read-only
// after Load returns.
type Config struct {
	// OpenAIAPIKey authenticates calls to the language model. Required.
	OpenAIAPIKey string

	// GoogleCredentials is the path to the Google OAuth client secrets
	// JSON file. Required.
	GoogleCredentials string

	// OpenAIBaseURL is the chat-completions endpoint base URL. It can be
	// pointed at any OpenAI-compatible server.
	OpenAIBaseURL string

	// Model is the model name sent with every completion request.
	Model string

	// MaxTokens caps the completion length per request.
	MaxTokens int

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFile is the append-only log sink path.
	LogFile string

	// CommandTimeout bounds a single resolve-and-dispatch cycle.
	CommandTimeout time.Duration

	// MetricsEnabled turns on the stdout metrics exporter.
	MetricsEnabled bool
}

// Load reads configuration from a .env file (if present) and the process
// environment. Missing required values are reported as errors so startup
// can abort before the session loop begins.
func Load() (*Config, error) {
	// A missing .env file is not an error; the environment may already
	// be populated.
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GoogleCredentials: os.Getenv("GOOGLE_API_CREDENTIALS"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", DefaultBaseURL),
		Model:             getEnv("MODEL_NAME", DefaultModel),
		LogLevel:          getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFile:           getEnv("LOG_FILE", DefaultLogFile),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if cfg.GoogleCredentials == "" {
		return nil, fmt.Errorf("GOOGLE_API_CREDENTIALS is not set")
	}

	maxTokens, err := getEnvInt("MAX_TOKENS", DefaultMaxTokens)
	if err != nil {
		return nil, err
	}
	cfg.MaxTokens = maxTokens

	timeout, err := getEnvDuration("COMMAND_TIMEOUT", DefaultCommandTimeout)
	if err != nil {
		return nil, err
	}
	cfg.CommandTimeout = timeout

	metricsEnabled, err := getEnvBool("METRICS_ENABLED", false)
	if err != nil {
		return nil, err
	}
	cfg.MetricsEnabled = metricsEnabled

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}

// getEnvDuration accepts Go duration syntax ("30s", "1m") and, for
// compatibility with older deployments, a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration or seconds, got %q", key, v)
	}
	return d, nil
}
