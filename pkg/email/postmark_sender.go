package email

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/emersion/go-message/mail"
	"github.com/mrz1836/postmark"
)

// PostmarkConfig holds API credentials. Only the server token is required.
type PostmarkConfig struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
}

// postmarkInvalidToken is Postmark's "Bad or missing API token" error code.
const postmarkInvalidToken = 10

// PostmarkSender delivers through the Postmark transactional API.
type PostmarkSender struct {
	client *postmark.Client
}

// PostmarkOption configures a PostmarkSender.
type PostmarkOption func(*postmark.Client)

// WithPostmarkBaseURL points the client at another API host. Used in tests.
func WithPostmarkBaseURL(url string) PostmarkOption {
	return func(c *postmark.Client) { c.BaseURL = url }
}

// WithPostmarkHTTPClient overrides the underlying HTTP client.
func WithPostmarkHTTPClient(hc *http.Client) PostmarkOption {
	return func(c *postmark.Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

func NewPostmarkSender(cfg PostmarkConfig, opts ...PostmarkOption) (*PostmarkSender, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("%w: POSTMARK_SERVER_TOKEN is required", ErrInvalidConfig)
	}
	client := postmark.NewClient(cfg.ServerToken, cfg.AccountToken)
	for _, opt := range opts {
		opt(client)
	}
	return &PostmarkSender{client: client}, nil
}

func (p *PostmarkSender) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	from := (&mail.Address{Name: msg.FromName, Address: msg.From}).String()
	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:     from,
		To:       strings.Join(msg.To, ","),
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		Tag:      msg.Tag,
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
	})
	if resp.ErrorCode != 0 {
		return "", postmarkError(resp.ErrorCode, resp.Message)
	}
	if err != nil {
		return "", err
	}
	return resp.MessageID, nil
}

// Verify checks the server token by fetching the current server record.
func (p *PostmarkSender) Verify(ctx context.Context) error {
	_, err := p.client.GetCurrentServer(ctx)
	return err
}

func postmarkError(code int64, message string) error {
	kind := Unknown
	if code == postmarkInvalidToken {
		kind = AuthFailure
	}
	return &DeliveryError{
		Kind: kind,
		Err:  fmt.Errorf("%w: code %d: %s", ErrPostmarkRejection, code, message),
	}
}
