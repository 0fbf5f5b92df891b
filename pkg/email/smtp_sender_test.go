package email_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/pkg/email"
)

type delivery struct {
	from string
	to   []string
	data []byte
}

// relay is an in-process SMTP server. When user is set, AUTH PLAIN is
// advertised and required before MAIL FROM.
type relay struct {
	user, pass string

	mu        sync.Mutex
	delivered []delivery
}

func (r *relay) NewSession(*smtp.Conn) (smtp.Session, error) {
	s := &session{relay: r}
	if r.user == "" {
		return s, nil
	}
	return &authSession{session: s}, nil
}

func (r *relay) messages() []delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]delivery(nil), r.delivered...)
}

type session struct {
	relay  *relay
	authed bool
	from   string
	to     []string
}

func (s *session) Mail(from string, _ *smtp.MailOptions) error {
	if s.relay.user != "" && !s.authed {
		return smtp.ErrAuthRequired
	}
	s.from = from
	return nil
}

func (s *session) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

func (s *session) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.relay.mu.Lock()
	s.relay.delivered = append(s.relay.delivered, delivery{from: s.from, to: s.to, data: data})
	s.relay.mu.Unlock()
	return nil
}

func (s *session) Reset() {
	s.from = ""
	s.to = nil
}

func (s *session) Logout() error { return nil }

type authSession struct {
	*session
}

func (s *authSession) AuthMechanisms() []string { return []string{sasl.Plain} }

func (s *authSession) Auth(string) (sasl.Server, error) {
	return sasl.NewPlainServer(func(_, username, password string) error {
		if username != s.relay.user || password != s.relay.pass {
			return &smtp.SMTPError{
				Code:         535,
				EnhancedCode: smtp.EnhancedCode{5, 7, 8},
				Message:      "Authentication credentials invalid",
			}
		}
		s.authed = true
		return nil
	}), nil
}

func startRelay(t *testing.T, r *relay) email.SMTPConfig {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := smtp.NewServer(r)
	srv.Domain = "localhost"
	srv.AllowInsecureAuth = true
	srv.ReadTimeout = 5 * time.Second
	srv.WriteTimeout = 5 * time.Second
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = srv.Close() })

	return email.SMTPConfig{
		Host:     "127.0.0.1",
		Port:     ln.Addr().(*net.TCPAddr).Port,
		Username: r.user,
		Password: r.pass,
	}
}

func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestSMTPSenderSend(t *testing.T) {
	t.Parallel()

	r := &relay{user: "relay-user", pass: "s3cret"}
	sender, err := email.NewSMTPSender(startRelay(t, r))
	require.NoError(t, err)

	msg := validMessage()
	msg.Subject = "🧘‍♀️ New Waitlist Member: Jane (All of it!)"
	msg.HTML = "<p>Namaste Jane — welcome</p>"
	msg.Text = "Namaste Jane\nwelcome"
	msg.Date = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	id, err := sender.Send(context.Background(), msg)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "<") && strings.HasSuffix(id, "@lotusyoga.example>"), id)

	got := r.messages()
	require.Len(t, got, 1)
	assert.Equal(t, "studio@lotusyoga.example", got[0].from)
	assert.Equal(t, []string{"owner@lotusyoga.example"}, got[0].to)

	mr, err := mail.CreateReader(bytes.NewReader(got[0].data))
	require.NoError(t, err)

	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, msg.Subject, subject)

	gotID, err := mr.Header.MessageID()
	require.NoError(t, err)
	assert.Equal(t, strings.Trim(id, "<>"), gotID)

	replyTo, err := mr.Header.AddressList("Reply-To")
	require.NoError(t, err)
	require.Len(t, replyTo, 1)
	assert.Equal(t, "jane@x.com", replyTo[0].Address)

	from, err := mr.Header.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "Lotus Yoga Studio", from[0].Name)

	bodies := map[string]string{}
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		h, ok := p.Header.(*mail.InlineHeader)
		require.True(t, ok)
		ct, _, err := h.ContentType()
		require.NoError(t, err)
		body, err := io.ReadAll(p.Body)
		require.NoError(t, err)
		bodies[ct] = string(body)
	}
	assert.Equal(t, msg.HTML, bodies["text/html"])
	assert.Equal(t, "Namaste Jane\r\nwelcome", strings.TrimRight(bodies["text/plain"], "\r\n"))
}

func TestSMTPSenderFailures(t *testing.T) {
	t.Parallel()

	t.Run("bad credentials", func(t *testing.T) {
		t.Parallel()
		cfg := startRelay(t, &relay{user: "relay-user", pass: "s3cret"})
		cfg.Password = "wrong"
		sender, err := email.NewSMTPSender(cfg)
		require.NoError(t, err)

		d := email.NewDispatcher(sender)
		_, err = d.Send(context.Background(), validMessage())
		var de *email.DeliveryError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, email.AuthFailure, de.Kind)

		err = d.Verify(context.Background())
		require.ErrorAs(t, err, &de)
		assert.Equal(t, email.AuthFailure, de.Kind)
	})

	t.Run("auth not offered", func(t *testing.T) {
		t.Parallel()
		cfg := startRelay(t, &relay{})
		cfg.Username, cfg.Password = "relay-user", "s3cret"
		sender, err := email.NewSMTPSender(cfg)
		require.NoError(t, err)

		_, err = email.NewDispatcher(sender).Send(context.Background(), validMessage())
		var de *email.DeliveryError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, email.AuthFailure, de.Kind)
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()
		sender, err := email.NewSMTPSender(email.SMTPConfig{Host: "127.0.0.1", Port: closedPort(t)})
		require.NoError(t, err)

		_, err = email.NewDispatcher(sender).Send(context.Background(), validMessage())
		var de *email.DeliveryError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, email.ConnectionFailure, de.Kind)
	})

	t.Run("stalled relay", func(t *testing.T) {
		t.Parallel()
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		t.Cleanup(func() { _ = ln.Close() })
		go func() {
			// accept and never send a greeting
			var conns []net.Conn
			defer func() {
				for _, c := range conns {
					_ = c.Close()
				}
			}()
			for {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				conns = append(conns, conn)
			}
		}()

		sender, err := email.NewSMTPSender(email.SMTPConfig{Host: "127.0.0.1", Port: ln.Addr().(*net.TCPAddr).Port})
		require.NoError(t, err)

		start := time.Now()
		_, err = email.NewDispatcher(sender, email.WithSendTimeout(150*time.Millisecond)).
			Send(context.Background(), validMessage())
		var de *email.DeliveryError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, email.Timeout, de.Kind)
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}

func TestSMTPSenderVerify(t *testing.T) {
	t.Parallel()

	r := &relay{user: "relay-user", pass: "s3cret"}
	sender, err := email.NewSMTPSender(startRelay(t, r))
	require.NoError(t, err)

	assert.NoError(t, sender.Verify(context.Background()))
	assert.Empty(t, r.messages())
}

func TestNewSMTPSenderConfig(t *testing.T) {
	t.Parallel()

	_, err := email.NewSMTPSender(email.SMTPConfig{Port: 587})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
	_, err = email.NewSMTPSender(email.SMTPConfig{Host: "smtp.example.com", Port: 0})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}
