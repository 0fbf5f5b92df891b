package notification

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidConfig = errors.New("invalid notification config")

// Config holds the addressing for studio notifications.
type Config struct {
	From     string   `env:"EMAIL_FROM"`
	FromName string   `env:"EMAIL_FROM_NAME" envDefault:"Lotus Yoga Studio"`
	To       []string `env:"EMAIL_TO" envSeparator:","`
}

// Validate checks that sender and recipients are set.
func (c Config) Validate() error {
	if strings.TrimSpace(c.From) == "" {
		return fmt.Errorf("%w: EMAIL_FROM is required", ErrInvalidConfig)
	}
	if len(c.recipients()) == 0 {
		return fmt.Errorf("%w: EMAIL_TO is required", ErrInvalidConfig)
	}
	return nil
}

func (c Config) recipients() []string {
	to := make([]string, 0, len(c.To))
	for _, addr := range c.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	return to
}
