package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAdviceSystemPrompt is passed verbatim to the advice gateway.
const DefaultAdviceSystemPrompt = "You are a helpful and empathetic medical assistant for 'MediConnect'. " +
	"You can answer general health questions, explain medical terms, and provide wellness tips. " +
	"However, you MUST explicitly state that you are an AI and cannot provide a definitive medical diagnosis " +
	"or replace a professional doctor's consultation. Keep answers concise (under 150 words) unless asked for detail."

type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Advice  AdviceConfig
}

type AppConfig struct {
	Port             string
	Env              string
	LogLevel         string
	SimulatedLatency time.Duration
	AllowedOrigins   []string
}

// StorageConfig selects the BlobStore backing persisted documents.
type StorageConfig struct {
	Driver    string // memory, file, redis, postgres
	Dir       string
	KeyPrefix string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AdviceConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	SystemPrompt   string
	Timeout        time.Duration
	RateLimitRPM   int
	RateLimitBurst int
}

const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// .env is optional; the environment alone is enough
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SIMULATED_LATENCY", "0s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("STORAGE_DRIVER", StorageDriverMemory)
	v.SetDefault("STORAGE_DIR", "./data")
	v.SetDefault("STORAGE_KEY_PREFIX", "mediconnect")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("ADVICE_SYSTEM_PROMPT", DefaultAdviceSystemPrompt)
	v.SetDefault("ADVICE_TIMEOUT", "15s")
	v.SetDefault("ADVICE_RATE_LIMIT_RPM", 60)
	v.SetDefault("ADVICE_RATE_LIMIT_BURST", 5)
}

func fromViper(v *viper.Viper) *Config {
	latency, err := time.ParseDuration(v.GetString("SIMULATED_LATENCY"))
	if err != nil || latency < 0 {
		latency = 0
	}

	adviceTimeout, err := time.ParseDuration(v.GetString("ADVICE_TIMEOUT"))
	if err != nil || adviceTimeout <= 0 {
		adviceTimeout = 15 * time.Second
	}

	return &Config{
		App: AppConfig{
			Port:             v.GetString("APP_PORT"),
			Env:              v.GetString("APP_ENV"),
			LogLevel:         v.GetString("LOG_LEVEL"),
			SimulatedLatency: latency,
			AllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Storage: StorageConfig{
			Driver:    v.GetString("STORAGE_DRIVER"),
			Dir:       v.GetString("STORAGE_DIR"),
			KeyPrefix: v.GetString("STORAGE_KEY_PREFIX"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Advice: AdviceConfig{
			APIKey:         v.GetString("GEMINI_API_KEY"),
			Model:          v.GetString("GEMINI_MODEL"),
			BaseURL:        v.GetString("GEMINI_BASE_URL"),
			SystemPrompt:   v.GetString("ADVICE_SYSTEM_PROMPT"),
			Timeout:        adviceTimeout,
			RateLimitRPM:   v.GetInt("ADVICE_RATE_LIMIT_RPM"),
			RateLimitBurst: v.GetInt("ADVICE_RATE_LIMIT_BURST"),
		},
	}
}

// splitList parses a comma-separated setting, dropping blanks.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
