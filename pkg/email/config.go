package email

import (
	"fmt"
	"strings"
	"time"
)

// Transport names accepted by MAIL_TRANSPORT.
const (
	TransportSMTP     = "smtp"
	TransportPostmark = "postmark"
	TransportDev      = "dev"
)

// Config selects and configures the transport.
type Config struct {
	Transport   string        `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	SendTimeout time.Duration `env:"SMTP_SEND_TIMEOUT" envDefault:"30s"`
	DevDir      string        `env:"DEV_MAIL_DIR" envDefault:"./tmp/mail"`
	SMTP        SMTPConfig
	Postmark    PostmarkConfig
}

// NewSender builds the transport named by cfg.Transport.
func NewSender(cfg Config) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case TransportSMTP, "":
		s, err := NewSMTPSender(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		return s, nil
	case TransportPostmark:
		p, err := NewPostmarkSender(cfg.Postmark)
		if err != nil {
			return nil, err
		}
		return p, nil
	case TransportDev:
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}
