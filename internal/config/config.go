package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from RATEDASH_* environment variables, optionally seeded
// from a .env file. Command-line flags take precedence over it.
type Config struct {
	Server   string        `envconfig:"SERVER" default:"http://localhost:8000"`
	Addr     string        `envconfig:"ADDR" default:":8000"`
	DB       string        `envconfig:"DB" default:"ratedash.db"`
	LogFile  string        `envconfig:"LOG_FILE" default:"ratedash.log"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"info"`
	Cache    CacheConfig   `envconfig:"CACHE"`
	Debounce time.Duration `envconfig:"DEBOUNCE" default:"300ms"`
}

type CacheConfig struct {
	TTL      time.Duration `envconfig:"TTL" default:"5m"`
	RedisURL string        `envconfig:"REDIS_URL"`
}

const envPrefix = "RATEDASH"

// Load reads the optional env files, then the environment.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load(envFiles...)

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewLogger builds a text slog logger writing to w at the named level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// OpenLogFile opens path for appending and returns a logger on it. An empty
// path discards all output.
func OpenLogFile(path, level string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return NewLogger(io.Discard, level), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, level), f, nil
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
