package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPConfig describes the relay connection.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Secure   bool   `env:"SMTP_SECURE"` // implicit TLS, usually port 465
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	// TLSSkipVerify accepts self-signed relay certificates.
	TLSSkipVerify bool          `env:"SMTP_TLS_SKIP_VERIFY"`
	HeloName      string        `env:"SMTP_HELO_NAME" envDefault:"localhost"`
	DialTimeout   time.Duration `env:"SMTP_DIAL_TIMEOUT" envDefault:"10s"`
}

// SMTPSender delivers mail through an SMTP relay. Each call opens a fresh
// connection; the relay sees at most one session per submission.
type SMTPSender struct {
	cfg SMTPConfig
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("%w: SMTP_HOST is required", ErrInvalidConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: SMTP_PORT %d is out of range", ErrInvalidConfig, cfg.Port)
	}
	if cfg.HeloName == "" {
		cfg.HeloName = "localhost"
	}
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	id := newMessageID(msg.From)
	raw, err := compose(msg, id)
	if err != nil {
		return "", err
	}

	c, release, err := s.open(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	if err := c.SendMail(msg.From, msg.To, bytes.NewReader(raw)); err != nil {
		return "", s.ctxErr(ctx, err)
	}
	_ = c.Quit()
	return id, nil
}

// Verify connects, negotiates TLS and authenticates, then quits.
func (s *SMTPSender) Verify(ctx context.Context) error {
	c, release, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := c.Noop(); err != nil {
		return s.ctxErr(ctx, err)
	}
	_ = c.Quit()
	return nil
}

// open dials the relay and completes EHLO, STARTTLS and AUTH. The returned
// release func closes the connection and detaches it from ctx.
func (s *SMTPSender) open(ctx context.Context) (*smtp.Client, func(), error) {
	conn, err := s.dial(ctx)
	if err != nil {
		return nil, nil, s.ctxErr(ctx, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c := smtp.NewClient(conn)
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	release := func() {
		stop()
		_ = c.Close()
	}

	if err := s.handshake(c); err != nil {
		release()
		return nil, nil, s.ctxErr(ctx, err)
	}
	return c, release, nil
}

func (s *SMTPSender) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	d := &net.Dialer{Timeout: s.cfg.DialTimeout}
	if s.cfg.Secure {
		td := &tls.Dialer{NetDialer: d, Config: s.tlsConfig()}
		return td.DialContext(ctx, "tcp", addr)
	}
	return d.DialContext(ctx, "tcp", addr)
}

func (s *SMTPSender) handshake(c *smtp.Client) error {
	if err := c.Hello(s.cfg.HeloName); err != nil {
		return err
	}
	if !s.cfg.Secure {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(s.tlsConfig()); err != nil {
				return err
			}
		}
	}
	if s.cfg.Username == "" {
		return nil
	}
	if ok, _ := c.Extension("AUTH"); !ok {
		return ErrAuthUnsupported
	}
	return c.Auth(sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password))
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: s.cfg.TLSSkipVerify, //nolint:gosec // opt-in for relays with self-signed certs
		MinVersion:         tls.VersionTLS12,
	}
}

// ctxErr prefers the context error once the deadline has passed, since
// the transport only sees a closed connection.
func (s *SMTPSender) ctxErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &DeliveryError{Kind: kindOf(ctxErr), Err: err}
	}
	return err
}
