package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/formrelay/internal/api"
	"github.com/dmitrymomot/formrelay/internal/notification"
	"github.com/dmitrymomot/formrelay/pkg/clientip"
	"github.com/dmitrymomot/formrelay/pkg/config"
	"github.com/dmitrymomot/formrelay/pkg/email"
	"github.com/dmitrymomot/formrelay/pkg/environment"
	"github.com/dmitrymomot/formrelay/pkg/httpserver"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/redis"
)

// Rate-limit store names accepted by RATE_LIMIT_STORE.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

var (
	ErrUnknownStore     = errors.New("unknown rate limit store")
	ErrInvalidRateLimit = errors.New("rate limit max and window must be positive")
)

// RateLimitConfig configures the per-client submission limiter.
type RateLimitConfig struct {
	Max    int           `env:"RATE_LIMIT_MAX" envDefault:"5"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	Store  string        `env:"RATE_LIMIT_STORE" envDefault:"memory"`
}

// Config is the full service configuration.
type Config struct {
	AppEnv    string `env:"APP_ENV"`
	NodeEnv   string `env:"NODE_ENV"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"` // json, text or pretty; empty picks by environment

	HTTP         httpserver.Config
	Mail         email.Config
	Notification notification.Config
	API          api.Config
	ClientIP     clientip.Config
	RateLimit    RateLimitConfig
	Redis        redis.Config
}

// LoadConfig reads Config from the environment and .env.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Environment resolves the mode from APP_ENV, then NODE_ENV.
func (c Config) Environment() environment.Environment {
	if strings.TrimSpace(c.AppEnv) != "" {
		return environment.Parse(c.AppEnv)
	}
	return environment.Parse(c.NodeEnv)
}

// LogOutputFormat returns the configured log format. Development defaults
// to text, everything else to JSON.
func (c Config) LogOutputFormat() logger.Format {
	if strings.TrimSpace(c.LogFormat) == "" && c.Environment().IsDevelopment() {
		return logger.FormatText
	}
	return logger.ParseFormat(c.LogFormat)
}

func (c Config) Validate() error {
	if c.RateLimit.Max <= 0 || c.RateLimit.Window <= 0 {
		return ErrInvalidRateLimit
	}
	switch c.storeName() {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.RateLimit.Store)
	}
	return c.Notification.Validate()
}

func (c Config) storeName() string {
	name := strings.ToLower(strings.TrimSpace(c.RateLimit.Store))
	if name == "" {
		return StoreMemory
	}
	return name
}

// TransportName is the normalized MAIL_TRANSPORT value.
func (c Config) TransportName() string {
	name := strings.ToLower(strings.TrimSpace(c.Mail.Transport))
	if name == "" {
		return email.TransportSMTP
	}
	return name
}
