package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database     DatabaseConfig
	Services     ServicesConfig
	Redis        RedisConfig
	Conversation ConversationConfig
	Server       ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// ServicesConfig holds external service API keys and configuration
type ServicesConfig struct {
	OpenAIAPIKey     string
	GoogleAIAPIKey   string
	ElevenLabsAPIKey string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	CalComAPIKey     string
	CalComBaseURL    string
	ResendAPIKey     string
	BookingEmailFrom string
	AudioURLSecret   string
	PublicBaseURL    string
}

// RedisConfig holds the optional shared-cache backend configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// ConversationConfig holds the tunable constants of the conversation core.
// The defaults below are the single consistent set used everywhere; every
// value is overridable through its environment variable.
type ConversationConfig struct {
	LLMTimeout          time.Duration // per LLM provider attempt
	LLMHistoryWindow    int           // recent turns replayed per request
	FunctionTimeout     time.Duration // default per function invocation
	FunctionRetries     int           // attempts for transient failures
	FunctionBackoff     time.Duration // linear backoff unit between attempts
	AvailabilityTTL     time.Duration // external availability cache window
	SpeechCacheTTL      time.Duration // synthesized audio cache window
	SpeechCacheMaxItems int
	SessionTTL          time.Duration // inactivity ceiling before reaping
	ReaperInterval      time.Duration
	CleanupGrace        time.Duration // delay before removing a completed call
	ConfidenceFloor     float64       // below this, skip the LLM and re-prompt
	AudioURLTTL         time.Duration // signed pull URL validity
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// LLM providers: at least one key must be present, checked at bootstrap
	// when the gateway is assembled. Both are optional here.
	cfg.Services.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Services.GoogleAIAPIKey = os.Getenv("GOOGLE_AI_API_KEY")

	if cfg.Services.ElevenLabsAPIKey, err = requireEnv("ELEVENLABS_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.Services.TwilioAccountSID, err = requireEnv("TWILIO_ACCOUNT_SID"); err != nil {
		return nil, err
	}
	if cfg.Services.TwilioAuthToken, err = requireEnv("TWILIO_AUTH_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.Services.TwilioFromNumber, err = requireEnv("TWILIO_FROM_NUMBER"); err != nil {
		return nil, err
	}
	if cfg.Services.AudioURLSecret, err = requireEnv("AUDIO_URL_SECRET"); err != nil {
		return nil, err
	}
	if cfg.Services.PublicBaseURL, err = requireEnv("PUBLIC_BASE_URL"); err != nil {
		return nil, err
	}

	// External calendar and booking email are optional integrations; the
	// calendar chain falls back to the internal slot store without them.
	cfg.Services.CalComAPIKey = os.Getenv("CALCOM_API_KEY")
	cfg.Services.CalComBaseURL = getEnvWithDefault("CALCOM_BASE_URL", "https://api.cal.com/v1")
	cfg.Services.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.Services.BookingEmailFrom = getEnvWithDefault("BOOKING_EMAIL_FROM", "bookings@localhost")

	// Redis configuration (optional shared availability cache)
	cfg.Redis.Enabled = getEnvWithDefault("REDIS_ENABLED", "false") == "true"
	if cfg.Redis.Enabled {
		if cfg.Redis.Host, err = requireEnv("REDIS_HOST"); err != nil {
			return nil, err
		}
		if cfg.Redis.Port, err = intEnv("REDIS_PORT", "6379"); err != nil {
			return nil, err
		}
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
		if cfg.Redis.DB, err = intEnv("REDIS_DB", "0"); err != nil {
			return nil, err
		}
	}

	if cfg.Conversation, err = loadConversationConfig(); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

func loadConversationConfig() (ConversationConfig, error) {
	cc := ConversationConfig{}

	var err error
	if cc.LLMTimeout, err = durationEnv("LLM_TIMEOUT", "15s"); err != nil {
		return cc, err
	}
	if cc.LLMHistoryWindow, err = intEnv("LLM_HISTORY_WINDOW", "10"); err != nil {
		return cc, err
	}
	if cc.FunctionTimeout, err = durationEnv("FUNCTION_TIMEOUT", "10s"); err != nil {
		return cc, err
	}
	if cc.FunctionRetries, err = intEnv("FUNCTION_RETRIES", "3"); err != nil {
		return cc, err
	}
	if cc.FunctionBackoff, err = durationEnv("FUNCTION_BACKOFF", "500ms"); err != nil {
		return cc, err
	}
	if cc.AvailabilityTTL, err = durationEnv("AVAILABILITY_CACHE_TTL", "15m"); err != nil {
		return cc, err
	}
	if cc.SpeechCacheTTL, err = durationEnv("SPEECH_CACHE_TTL", "1h"); err != nil {
		return cc, err
	}
	if cc.SpeechCacheMaxItems, err = intEnv("SPEECH_CACHE_MAX_ITEMS", "256"); err != nil {
		return cc, err
	}
	if cc.SessionTTL, err = durationEnv("SESSION_TTL", "24h"); err != nil {
		return cc, err
	}
	if cc.ReaperInterval, err = durationEnv("SESSION_REAPER_INTERVAL", "10m"); err != nil {
		return cc, err
	}
	if cc.CleanupGrace, err = durationEnv("SESSION_CLEANUP_GRACE", "30s"); err != nil {
		return cc, err
	}
	if cc.AudioURLTTL, err = durationEnv("AUDIO_URL_TTL", "5m"); err != nil {
		return cc, err
	}

	floor := getEnvWithDefault("SPEECH_CONFIDENCE_FLOOR", "0.4")
	confidence, err := strconv.ParseFloat(floor, 64)
	if err != nil {
		return cc, fmt.Errorf("failed to parse SPEECH_CONFIDENCE_FLOOR: %w", err)
	}
	cc.ConfidenceFloor = confidence

	return cc, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func intEnv(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key, defaultValue string) (time.Duration, error) {
	v, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}
