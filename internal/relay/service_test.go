package relay_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal/notification"
	"github.com/dmitrymomot/formrelay/internal/relay"
	"github.com/dmitrymomot/formrelay/internal/submission"
	"github.com/dmitrymomot/formrelay/pkg/email"
	"github.com/dmitrymomot/formrelay/pkg/ratelimit"
	"github.com/dmitrymomot/formrelay/pkg/validator"
)

// clock is a manually advanced time source shared by the limiter and the
// service.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	svc    *relay.Service
	sender *email.MemorySender
	clock  *clock
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	clk := &clock{now: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}
	store := ratelimit.NewMemoryStore(ratelimit.WithCleanupInterval(0))
	t.Cleanup(func() { _ = store.Close() })
	limiter, err := ratelimit.NewSlidingWindow(store, 5, 15*time.Minute, ratelimit.WithClock(clk.Now))
	require.NoError(t, err)

	renderer, err := notification.NewRenderer(notification.Config{
		From:     "studio@lotusyoga.example",
		FromName: "Lotus Yoga Studio",
		To:       []string{"owner@lotusyoga.example"},
	})
	require.NoError(t, err)

	sender := email.NewMemorySender()
	svc := relay.New(limiter, renderer, email.NewDispatcher(sender), relay.WithClock(clk.Now))
	return fixture{svc: svc, sender: sender, clock: clk}
}

var jane = submission.Input{Name: "Jane", Email: "jane@x.com", Message: "Hi", Interest: "lotus"}

func TestSubmit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	res, err := f.svc.Submit(context.Background(), submission.Contact, "203.0.113.7", jane)
	require.NoError(t, err)

	assert.NotEmpty(t, res.MessageID)
	assert.Equal(t, "Jane", res.Submission.Name)
	assert.Equal(t, "jane@x.com", res.Submission.Email)
	assert.True(t, res.RateLimit.Allowed)
	assert.Equal(t, 4, res.RateLimit.Remaining)

	sent := f.sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "New Contact Form Submission from Jane", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Lotus — Clothing / Lookbook")
	assert.Equal(t, f.clock.Now(), sent[0].Date)
}

func TestSubmitInvalidInputSkipsLimiterAndMailer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for range 10 {
		_, err := f.svc.Submit(context.Background(), submission.Contact, "203.0.113.7",
			submission.Input{Name: "Jane", Email: "jane@x.com"})
		assert.True(t, validator.IsValidationError(err))
	}
	assert.Zero(t, f.sender.Calls())

	// quota is untouched
	_, err := f.svc.Submit(context.Background(), submission.Contact, "203.0.113.7", jane)
	require.NoError(t, err)
}

func TestSubmitRateLimit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for i := range 5 {
		_, err := f.svc.Submit(ctx, submission.Contact, "203.0.113.7", jane)
		require.NoError(t, err, "submission %d", i+1)
		f.clock.Advance(time.Minute)
	}

	res, err := f.svc.Submit(ctx, submission.Waitlist, "203.0.113.7", jane)
	require.ErrorIs(t, err, ratelimit.ErrRateLimitExceeded)
	assert.False(t, res.RateLimit.Allowed)
	assert.Equal(t, 5, f.sender.Calls())

	// other clients are unaffected
	_, err = f.svc.Submit(ctx, submission.Contact, "198.51.100.1", jane)
	require.NoError(t, err)

	// first submission was at +0m, so the window frees a slot at +15m
	f.clock.Advance(10 * time.Minute)
	_, err = f.svc.Submit(ctx, submission.Contact, "203.0.113.7", jane)
	require.NoError(t, err)
}

func TestSubmitConcurrentRequestsRespectLimit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.Submit(context.Background(), submission.Contact, "203.0.113.7", jane); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, accepted)
	assert.Len(t, f.sender.Sent(), 5)
}

func TestSubmitDeliveryFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.sender.SetSendError(&smtp.SMTPError{Code: 535, Message: "5.7.8 Authentication credentials invalid"})

	_, err := f.svc.Submit(context.Background(), submission.Collaboration, "203.0.113.7",
		submission.Input{Name: "Jane", Email: "jane@x.com", Message: "Hi", Company: "Acme"})

	var de *email.DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, email.AuthFailure, de.Kind)
}

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (ratelimit.Result, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ratelimit.Result), args.Error(1)
}

func (m *mockLimiter) Status(ctx context.Context, key string) (ratelimit.Result, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ratelimit.Result), args.Error(1)
}

func (m *mockLimiter) Reset(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(s submission.Submission, at time.Time) (email.Message, error) {
	args := m.Called(s, at)
	return args.Get(0).(email.Message), args.Error(1)
}

func TestSubmitFailsOpenWhenLimiterUnavailable(t *testing.T) {
	t.Parallel()

	limiter := &mockLimiter{}
	limiter.On("Allow", mock.Anything, "203.0.113.7").
		Return(ratelimit.Result{}, errors.Join(ratelimit.ErrStoreFailure, errors.New("redis: connection refused")))

	renderer, err := notification.NewRenderer(notification.Config{From: "studio@x.com", To: []string{"owner@x.com"}})
	require.NoError(t, err)
	sender := email.NewMemorySender()

	res, err := relay.New(limiter, renderer, email.NewDispatcher(sender)).
		Submit(context.Background(), submission.Contact, "203.0.113.7", jane)
	require.NoError(t, err)
	assert.NotEmpty(t, res.MessageID)
	assert.Len(t, sender.Sent(), 1)
	limiter.AssertExpectations(t)
}

func TestSubmitRenderFailure(t *testing.T) {
	t.Parallel()

	limiter := &mockLimiter{}
	limiter.On("Allow", mock.Anything, "203.0.113.7").Return(ratelimit.Result{Allowed: true, Limit: 5, Remaining: 4}, nil)
	renderer := &mockRenderer{}
	renderer.On("Render", mock.Anything, mock.Anything).Return(email.Message{}, errors.New("template broke"))
	sender := email.NewMemorySender()

	_, err := relay.New(limiter, renderer, email.NewDispatcher(sender)).
		Submit(context.Background(), submission.Contact, "203.0.113.7", jane)
	assert.ErrorIs(t, err, relay.ErrRender)
	assert.Zero(t, sender.Calls())
	renderer.AssertExpectations(t)
}

func TestVerify(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	require.NoError(t, f.svc.Verify(context.Background()))

	f.sender.SetVerifyError(&smtp.SMTPError{Code: 535, Message: "bad credentials"})
	err := f.svc.Verify(context.Background())
	var de *email.DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, email.AuthFailure, de.Kind)
}
