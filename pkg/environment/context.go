package environment

import (
	"context"
	"strings"
)

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
	Test        Environment = "test"
)

// Parse maps a raw mode string (as found in APP_ENV or NODE_ENV) to an
// Environment. Short aliases are accepted; unknown and empty values resolve
// to Production.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev", "local":
		return Development
	case "staging", "stage":
		return Staging
	case "test", "testing":
		return Test
	default:
		return Production
	}
}

func (e Environment) String() string { return string(e) }

func (e Environment) IsDevelopment() bool { return e == Development }

func (e Environment) IsProduction() bool { return e == Production }

type contextKey struct{}

// WithContext adds environment to context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context.
// Returns Production when the context carries none.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return Production
	}
	env, ok := ctx.Value(contextKey{}).(Environment)
	if !ok || env == "" {
		return Production
	}
	return env
}

// IsDevelopment reports whether the context belongs to a development deployment.
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx).IsDevelopment()
}

// IsProduction reports whether the context belongs to a production deployment.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx).IsProduction()
}
