package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	LogLevel string

	DBDriver    string
	DBPath      string
	DatabaseURL string

	Passcode string

	Users      string
	UserGrades string

	NotificationEmail string
	SESFromEmail      string
	AWSRegion         string
	NotifyWorkerCount int
	NotifyQueueSize   int

	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIModel     string
	AnthropicAPIKey string
	AnthropicModel  string
	GeminiAPIKey    string
	GeminiModel     string

	TTSModel string
	TTSVoice string
	TTSSpeed float64

	RedisAddr     string
	StatsCacheTTL time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		DBDriver:    strings.ToLower(envOr("DB_DRIVER", "sqlite")),
		DBPath:      envOr("DB_PATH", "file:galamath.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		Passcode: envOr("PASSCODE", "1234"),

		Users:      os.Getenv("USERS"),
		UserGrades: os.Getenv("USER_GRADES"),

		NotificationEmail: os.Getenv("NOTIFICATION_EMAIL"),
		SESFromEmail:      os.Getenv("SES_FROM_EMAIL"),
		AWSRegion:         envOr("AWS_REGION", "us-east-1"),
		NotifyWorkerCount: envIntOr("NOTIFY_WORKER_COUNT", 1),
		NotifyQueueSize:   envIntOr("NOTIFY_QUEUE_SIZE", 64),

		LLMProvider:     strings.ToLower(envOr("LLM_PROVIDER", "openai")),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     envOr("OPENAI_MODEL", "gpt-4o-mini"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  envOr("ANTHROPIC_MODEL", "claude-haiku"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     envOr("GEMINI_MODEL", "gemini-flash"),

		TTSModel: envOr("TTS_MODEL", "tts-1"),
		TTSVoice: envOr("TTS_VOICE", "nova"),
		TTSSpeed: envFloatOr("TTS_SPEED", 0.95),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		StatsCacheTTL: time.Duration(envIntOr("STATS_CACHE_TTL_SECONDS", 60)) * time.Second,

		RateLimitRPS:   envFloatOr("RATE_LIMIT_RPS", 2),
		RateLimitBurst: envIntOr("RATE_LIMIT_BURST", 10),
	}
}

// Validate reports the first configuration value that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty when DB_DRIVER=sqlite")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL cannot be empty when DB_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}
	if c.Passcode == "" {
		return fmt.Errorf("PASSCODE cannot be empty")
	}
	switch c.LLMProvider {
	case "openai", "anthropic", "gemini", "mock":
	default:
		return fmt.Errorf("LLM_PROVIDER must be one of openai, anthropic, gemini, mock, got %q", c.LLMProvider)
	}
	if c.NotifyWorkerCount <= 0 {
		return fmt.Errorf("NOTIFY_WORKER_COUNT must be positive, got %d", c.NotifyWorkerCount)
	}
	if c.NotifyQueueSize <= 0 {
		return fmt.Errorf("NOTIFY_QUEUE_SIZE must be positive, got %d", c.NotifyQueueSize)
	}
	if c.TTSSpeed < 0.25 || c.TTSSpeed > 4.0 {
		return fmt.Errorf("TTS_SPEED must be between 0.25 and 4.0, got %v", c.TTSSpeed)
	}
	if c.StatsCacheTTL < 0 {
		return fmt.Errorf("STATS_CACHE_TTL_SECONDS cannot be negative")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}

// NotificationsEnabled reports whether result emails should be sent.
func (c Config) NotificationsEnabled() bool {
	return c.NotificationEmail != "" && c.SESFromEmail != ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
