package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/config"
)

type relayConfig struct {
	Host    string        `env:"CFG_TEST_SMTP_HOST" envDefault:"localhost"`
	Port    int           `env:"CFG_TEST_SMTP_PORT" envDefault:"587"`
	Secure  bool          `env:"CFG_TEST_SMTP_SECURE"`
	Timeout time.Duration `env:"CFG_TEST_SMTP_TIMEOUT" envDefault:"30s"`
}

type cachedConfig struct {
	Value string `env:"CFG_TEST_CACHED" envDefault:"first"`
}

type requiredConfig struct {
	Token string `env:"CFG_TEST_REQUIRED_TOKEN,required"`
}

type checkedConfig struct {
	Port int `env:"CFG_TEST_CHECKED_PORT" envDefault:"0"`
}

func (c *checkedConfig) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg relayConfig
		require.NoError(t, config.Parse(&cfg))
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, 587, cfg.Port)
		assert.False(t, cfg.Secure)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("CFG_TEST_SMTP_HOST", "smtp.example.com")
		t.Setenv("CFG_TEST_SMTP_PORT", "465")
		t.Setenv("CFG_TEST_SMTP_SECURE", "true")
		t.Setenv("CFG_TEST_SMTP_TIMEOUT", "5s")

		var cfg relayConfig
		require.NoError(t, config.Parse(&cfg))
		assert.Equal(t, "smtp.example.com", cfg.Host)
		assert.Equal(t, 465, cfg.Port)
		assert.True(t, cfg.Secure)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("CFG_TEST_SMTP_PORT", "not-a-number")

		var cfg relayConfig
		err := config.Parse(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("missing required", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Parse(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("validate hook", func(t *testing.T) {
		var cfg checkedConfig
		err := config.Parse(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)

		t.Setenv("CFG_TEST_CHECKED_PORT", "25")
		require.NoError(t, config.Parse(&cfg))
		assert.Equal(t, 25, cfg.Port)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *relayConfig
		assert.ErrorIs(t, config.Parse(cfg), config.ErrNilPointer)
	})
}

func TestLoad_CachesPerType(t *testing.T) {
	t.Setenv("CFG_TEST_CACHED", "first")

	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Value)

	t.Setenv("CFG_TEST_CACHED", "second")

	var second cachedConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first", second.Value, "cached value should be returned")

	var fresh cachedConfig
	require.NoError(t, config.Parse(&fresh))
	assert.Equal(t, "second", fresh.Value, "Parse bypasses the cache")
}

func TestMustLoad_Panics(t *testing.T) {
	type mustConfig struct {
		Secret string `env:"CFG_TEST_MUST_SECRET,required"`
	}

	assert.Panics(t, func() {
		var cfg mustConfig
		config.MustLoad(&cfg)
	})
}
