// Package config loads typed configuration structs from environment variables.
//
// Struct fields are described with caarlos0/env tags. A local .env file is read
// once (via godotenv) before the first parse, so development setups work without
// exporting variables by hand. Real environment variables always win over the
// file.
//
//	type SMTP struct {
//		Host string `env:"SMTP_HOST,required"`
//		Port int    `env:"SMTP_PORT" envDefault:"587"`
//	}
//
//	var cfg SMTP
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Load caches the result per type, so every package asking for the same struct
// sees the same values. Parse skips the cache and is what tests and one-shot
// CLI commands should use.
//
// A config type may implement
//
//	Validate() error
//
// in which case it is called after parsing; a failure is reported as
// ErrInvalidConfig.
package config
