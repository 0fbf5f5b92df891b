package app_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal/api"
	"github.com/dmitrymomot/formrelay/internal/app"
	"github.com/dmitrymomot/formrelay/internal/notification"
	"github.com/dmitrymomot/formrelay/pkg/config"
	"github.com/dmitrymomot/formrelay/pkg/email"
	"github.com/dmitrymomot/formrelay/pkg/environment"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/redis"
)

func baseConfig(t *testing.T) app.Config {
	t.Helper()
	return app.Config{
		AppEnv: "development",
		Mail: email.Config{
			Transport:   email.TransportDev,
			DevDir:      t.TempDir(),
			SendTimeout: time.Second,
		},
		Notification: notification.Config{
			From:     "studio@lotusyoga.example",
			FromName: "Lotus Yoga Studio",
			To:       []string{"owner@lotusyoga.example"},
		},
		API:       api.Config{CORSOrigins: []string{"*"}},
		RateLimit: app.RateLimitConfig{Max: 2, Window: 15 * time.Minute, Store: app.StoreMemory},
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("EMAIL_FROM", "studio@lotusyoga.example")
	t.Setenv("EMAIL_TO", "owner@lotusyoga.example, second@lotusyoga.example")
	t.Setenv("NODE_ENV", "development")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("TRUSTED_PROXY_HEADERS", "X-Forwarded-For,X-Real-IP")

	cfg, err := app.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, environment.Development, cfg.Environment())
	assert.Equal(t, 10, cfg.RateLimit.Max)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, app.StoreMemory, cfg.RateLimit.Store)
	assert.Equal(t, "Lotus Yoga Studio", cfg.Notification.FromName)
	assert.Len(t, cfg.Notification.To, 2)
	assert.Equal(t, email.TransportSMTP, cfg.Mail.Transport)
	assert.Equal(t, 30*time.Second, cfg.Mail.SendTimeout)
	assert.Equal(t, []string{"*"}, cfg.API.CORSOrigins)
	assert.Equal(t, []string{"X-Forwarded-For", "X-Real-IP"}, cfg.ClientIP.TrustedHeaders)
}

func TestLoadConfigRejectsMissingRecipients(t *testing.T) {
	t.Setenv("EMAIL_FROM", "studio@lotusyoga.example")
	t.Setenv("EMAIL_TO", "")

	_, err := app.LoadConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.ErrorIs(t, err, notification.ErrInvalidConfig)
}

func TestConfigEnvironment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		appEnv  string
		nodeEnv string
		want    environment.Environment
	}{
		{"unset", "", "", environment.Production},
		{"node env", "", "development", environment.Development},
		{"app env wins", "production", "development", environment.Production},
		{"alias", "dev", "", environment.Development},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := app.Config{AppEnv: tt.appEnv, NodeEnv: tt.nodeEnv}
			assert.Equal(t, tt.want, cfg.Environment())
		})
	}
}

func TestConfigLogFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, logger.FormatText, app.Config{AppEnv: "development"}.LogOutputFormat())
	assert.Equal(t, logger.FormatJSON, app.Config{AppEnv: "production"}.LogOutputFormat())
	assert.Equal(t, logger.FormatPretty, app.Config{AppEnv: "production", LogFormat: "pretty"}.LogOutputFormat())
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t)
	require.NoError(t, cfg.Validate())

	cfg.RateLimit.Store = "memcached"
	assert.ErrorIs(t, cfg.Validate(), app.ErrUnknownStore)

	cfg = baseConfig(t)
	cfg.RateLimit.Max = 0
	assert.ErrorIs(t, cfg.Validate(), app.ErrInvalidRateLimit)
}

func TestNewServesSubmissions(t *testing.T) {
	t.Parallel()

	cfg := baseConfig(t)
	a, err := app.New(context.Background(), cfg, app.WithLogger(logger.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	sent := 0
	post := func() int {
		sent++
		req := httptest.NewRequest(http.MethodPost, "/api/mail/contact",
			strings.NewReader(`{"name":"Jane","email":"jane@x.com","message":"Hi","interest":"lotus"}`))
		req.Header.Set("Content-Type", "application/json")
		// untrusted by default, must not split the rate-limit key
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", sent))
		rec := httptest.NewRecorder()
		a.Handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	files, err := filepath.Glob(filepath.Join(cfg.Mail.DevDir, "*_contact_*"))
	require.NoError(t, err)
	assert.Len(t, files, 6)
}

func TestNewWithSender(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	sender := email.NewMemorySender()
	cfg := baseConfig(t)
	cfg.LogFormat = "json"

	a, err := app.New(context.Background(), cfg,
		app.WithSender(sender, "memory"),
		app.WithLogger(app.NewLogger(cfg, &logs)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NoError(t, a.Relay.Verify(context.Background()))
	assert.Contains(t, logs.String(), `"transport":"memory"`)
	assert.Contains(t, logs.String(), `"service":"formrelay"`)

	entries, err := os.ReadDir(cfg.Mail.DevDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown transport", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig(t)
		cfg.Mail.Transport = "carrier-pigeon"
		_, err := app.New(context.Background(), cfg, app.WithLogger(logger.Discard()))
		assert.ErrorIs(t, err, email.ErrUnknownTransport)
	})

	t.Run("redis without url", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig(t)
		cfg.RateLimit.Store = app.StoreRedis
		_, err := app.New(context.Background(), cfg, app.WithLogger(logger.Discard()))
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("invalid notification config", func(t *testing.T) {
		t.Parallel()
		cfg := baseConfig(t)
		cfg.Notification.To = nil
		_, err := app.New(context.Background(), cfg, app.WithLogger(logger.Discard()))
		assert.ErrorIs(t, err, notification.ErrInvalidConfig)
	})
}
