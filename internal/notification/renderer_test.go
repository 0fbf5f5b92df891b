package notification_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formrelay/internal/notification"
	"github.com/dmitrymomot/formrelay/internal/submission"
)

var submittedAt = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func newRenderer(t *testing.T) *notification.Renderer {
	t.Helper()
	r, err := notification.NewRenderer(notification.Config{
		From:     "studio@lotusyoga.example",
		FromName: "Lotus Yoga Studio",
		To:       []string{"owner@lotusyoga.example", " "},
	})
	require.NoError(t, err)
	return r
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Thursday, 15 October 2026 at 02:30 pm IST", notification.FormatTime(submittedAt))
	assert.Equal(t, "Friday, 16 October 2026 at 05:29 am IST",
		notification.FormatTime(time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "15/10/2026, 14:30:00", notification.FormatClock(submittedAt))
}

func TestRenderContact(t *testing.T) {
	t.Parallel()

	msg, err := newRenderer(t).Render(submission.Submission{
		Kind:     submission.Contact,
		Name:     "Jane",
		Email:    "jane@x.com",
		Message:  "Hi",
		Interest: "yoga-online",
	}, submittedAt)
	require.NoError(t, err)

	assert.Equal(t, "New Contact Form Submission from Jane", msg.Subject)
	assert.Equal(t, "studio@lotusyoga.example", msg.From)
	assert.Equal(t, "Lotus Yoga Studio", msg.FromName)
	assert.Equal(t, []string{"owner@lotusyoga.example"}, msg.To)
	assert.Equal(t, "jane@x.com", msg.ReplyTo)
	assert.Equal(t, "contact", msg.Tag)
	assert.Equal(t, submittedAt, msg.Date)
	require.NoError(t, msg.Validate())

	for _, want := range []string{
		"📞 New Contact &amp; Booking Request!",
		"Jane",
		"jane@x.com",
		"Yoga — 1:1 Online",
		"Goals &amp; Request:",
		"Thursday, 15 October 2026 at 02:30 pm IST",
		"This is a Yoga — 1:1 Online inquiry. Schedule a 1:1 online yoga session.",
		"Reply within 24 hours",
		"#3b82f6 0%, #8b5cf6 50%, #22c55e 100%",
	} {
		assert.Contains(t, msg.HTML, want)
	}
	assert.NotContains(t, msg.HTML, "Company:")

	assert.Equal(t, strings.Join([]string{
		"New Contact Form Submission",
		"",
		"Name: Jane",
		"Email: jane@x.com",
		"Interest: Yoga — 1:1 Online",
		"Message: Hi",
		"",
		"Submitted at: Thursday, 15 October 2026 at 02:30 pm IST",
		"",
	}, "\n"), msg.Text)
}

func TestRenderContactUnknownInterest(t *testing.T) {
	t.Parallel()

	msg, err := newRenderer(t).Render(submission.Submission{
		Kind: submission.Contact, Name: "Jane", Email: "jane@x.com", Message: "Hi", Interest: "xyz",
	}, submittedAt)
	require.NoError(t, err)

	assert.Contains(t, msg.HTML, `<span class="interest-badge">xyz</span>`)
	assert.Contains(t, msg.HTML, "This is a xyz inquiry. Follow up based on their specific needs.")
	assert.Contains(t, msg.Text, "Interest: xyz\n")
}

func TestRenderCollaboration(t *testing.T) {
	t.Parallel()

	s := submission.Submission{
		Kind:    submission.Collaboration,
		Name:    "Jane",
		Email:   "jane@x.com",
		Message: "Pop-up studio?",
		Company: "Acme",
	}
	msg, err := newRenderer(t).Render(s, submittedAt)
	require.NoError(t, err)

	assert.Equal(t, "New Collaboration Request from Jane (Acme)", msg.Subject)
	assert.Contains(t, msg.HTML, "🤝 New Collaboration Request!")
	assert.Contains(t, msg.HTML, "Company:")
	assert.Contains(t, msg.HTML, "Review this collaboration request")
	assert.Contains(t, msg.HTML, "Building meaningful partnerships")
	assert.NotContains(t, msg.HTML, "Collaboration Type:")
	assert.Contains(t, msg.Text, "Company: Acme\nInterest: Not specified\n")

	s.Company = ""
	msg, err = newRenderer(t).Render(s, submittedAt)
	require.NoError(t, err)
	assert.Equal(t, "New Collaboration Request from Jane", msg.Subject)
	assert.Contains(t, msg.Text, "Company: Not specified\n")
}

func TestRenderWaitlist(t *testing.T) {
	t.Parallel()

	msg, err := newRenderer(t).Render(submission.Submission{
		Kind:     submission.Waitlist,
		Name:     "Jane",
		Email:    "jane@x.com",
		Interest: "studio",
	}, submittedAt)
	require.NoError(t, err)

	assert.Equal(t, "🧘‍♀️ New Waitlist Member: Jane (Studio — Music & Podcasts)", msg.Subject)
	assert.Contains(t, msg.HTML, "Joined At:")
	assert.Contains(t, msg.HTML, "This person is interested in <strong>Studio — Music &amp; Podcasts</strong>")
	assert.Contains(t, msg.HTML, "Early drops • Priority booking • Giveaways")
	assert.NotContains(t, msg.HTML, "message-box\">")
	assert.Contains(t, msg.Text, "Action Required: This person should receive priority notifications for Studio — Music & Podcasts.\n")
	assert.Equal(t, "waitlist", msg.Tag)
}

func TestRenderEscapesUserInput(t *testing.T) {
	t.Parallel()

	msg, err := newRenderer(t).Render(submission.Submission{
		Kind:    submission.Contact,
		Name:    `<script>alert("x")</script>`,
		Email:   "jane@x.com",
		Message: "<b>bold</b>",
	}, submittedAt)
	require.NoError(t, err)

	assert.NotContains(t, msg.HTML, "<script>")
	assert.NotContains(t, msg.HTML, "<b>bold</b>")
	assert.Contains(t, msg.HTML, "&lt;script&gt;")
	assert.Contains(t, msg.Text, "<b>bold</b>")
}

func TestRenderHTMLSectionOrder(t *testing.T) {
	t.Parallel()

	msg, err := newRenderer(t).Render(submission.Submission{
		Kind:     submission.Waitlist,
		Name:     "Jane",
		Email:    "jane@x.com",
		Interest: "yoga",
	}, submittedAt)
	require.NoError(t, err)

	html := msg.HTML
	require.True(t, strings.HasPrefix(html, "<!DOCTYPE html>\n<html><head>"))
	require.True(t, strings.HasSuffix(html, "</div></body></html>\n"))
	assert.Equal(t, 1, strings.Count(html, "<html>"))
	assert.Equal(t, strings.Count(html, "<div"), strings.Count(html, "</div>"))

	order := []string{`<div class="header">`, `<div class="content">`, `<div class="field">`, `<div class="priority-note">`, `<div class="footer">`}
	last := -1
	for _, marker := range order {
		i := strings.Index(html, marker)
		require.GreaterOrEqual(t, i, 0, marker)
		assert.Greater(t, i, last, marker)
		last = i
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	r := newRenderer(t)
	s := submission.Submission{Kind: submission.Waitlist, Name: "Jane", Email: "jane@x.com", Interest: "all"}

	first, err := r.Render(s, submittedAt)
	require.NoError(t, err)
	second, err := r.Render(s, submittedAt)
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Subject, second.Subject)
}

func TestRenderUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := newRenderer(t).Render(submission.Submission{Kind: "newsletter"}, submittedAt)
	assert.ErrorIs(t, err, submission.ErrUnknownKind)
}

func TestNewRendererValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := notification.NewRenderer(notification.Config{To: []string{"owner@x.com"}})
	assert.ErrorIs(t, err, notification.ErrInvalidConfig)

	_, err = notification.NewRenderer(notification.Config{From: "studio@x.com", To: []string{" "}})
	assert.ErrorIs(t, err, notification.ErrInvalidConfig)
}
