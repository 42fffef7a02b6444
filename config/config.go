package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Chatbot specifics
	Intents     IntentsConfig
	History     HistoryConfig
	Session     SessionConfig
	Redis       RedisConfig
	RateLimit   RateLimitConfig
	GoogleBooks GoogleBooksConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// IntentsConfig points at the intent catalog document (.json, .yaml or .yml).
type IntentsConfig struct {
	Path  string
	Watch bool
}

// HistoryConfig holds the directory used for conversation logs.
type HistoryConfig struct {
	Dir string
}

// SessionConfig selects the session store backend.
type SessionConfig struct {
	Store        string // "memory" or "redis"
	TTL          time.Duration
	MaxEntries   int
	CookieName   string
	CookieSecure bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type RateLimitConfig struct {
	PerMin int
	Burst  int
}

// GoogleBooksConfig enables cover lookups for books without an Image.
type GoogleBooksConfig struct {
	Enabled         bool
	APIKey          string
	CredentialsPath string
	CacheSize       int
	Timeout         time.Duration
}

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Chatbot
	cfg.Intents.Path = viper.GetString("intents.path")
	cfg.Intents.Watch = viper.GetBool("intents.watch")
	cfg.History.Dir = viper.GetString("history.dir")

	cfg.Session.Store = strings.ToLower(viper.GetString("session.store"))
	cfg.Session.TTL = viper.GetDuration("session.ttl")
	cfg.Session.MaxEntries = viper.GetInt("session.max_entries")
	cfg.Session.CookieName = viper.GetString("session.cookie_name")
	cfg.Session.CookieSecure = viper.GetBool("session.cookie_secure")

	cfg.Redis.Addr = viper.GetString("redis.addr")
	cfg.Redis.Password = viper.GetString("redis.password")
	cfg.Redis.DB = viper.GetInt("redis.db")
	cfg.Redis.Prefix = viper.GetString("redis.prefix")
	if redisAddr := viper.GetString("redis_addr"); redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}

	cfg.RateLimit.PerMin = viper.GetInt("rate_limit.per_min")
	cfg.RateLimit.Burst = viper.GetInt("rate_limit.burst")

	cfg.GoogleBooks.Enabled = viper.GetBool("google_books.enabled")
	cfg.GoogleBooks.APIKey = viper.GetString("google_books.api_key")
	cfg.GoogleBooks.CredentialsPath = viper.GetString("google_books.credentials_path")
	cfg.GoogleBooks.CacheSize = viper.GetInt("google_books.cache_size")
	cfg.GoogleBooks.Timeout = viper.GetDuration("google_books.timeout")
	if booksKey := viper.GetString("google_books_api_key"); booksKey != "" {
		cfg.GoogleBooks.APIKey = booksKey
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("intents.path", "config/intents.json")
	viper.SetDefault("intents.watch", false)
	viper.SetDefault("history.dir", "chat_history")

	viper.SetDefault("session.store", SessionStoreMemory)
	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("session.max_entries", 10000)
	viper.SetDefault("session.cookie_name", "bookbot_session")
	viper.SetDefault("session.cookie_secure", false)

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "bookbot:")

	viper.SetDefault("rate_limit.per_min", 120)
	viper.SetDefault("rate_limit.burst", 20)

	viper.SetDefault("google_books.enabled", false)
	viper.SetDefault("google_books.cache_size", 512)
	viper.SetDefault("google_books.timeout", "3s")
}

func validate(cfg *Config) error {
	if cfg.Intents.Path == "" {
		return fmt.Errorf("intents.path is required")
	}
	if cfg.History.Dir == "" {
		return fmt.Errorf("history.dir is required")
	}
	switch cfg.Session.Store {
	case SessionStoreMemory:
	case SessionStoreRedis:
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when session.store is redis")
		}
	default:
		return fmt.Errorf("unknown session.store %q", cfg.Session.Store)
	}
	if cfg.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	if cfg.GoogleBooks.Enabled && cfg.GoogleBooks.APIKey == "" && cfg.GoogleBooks.CredentialsPath == "" {
		return fmt.Errorf("google_books.enabled requires api_key or credentials_path")
	}
	return nil
}
