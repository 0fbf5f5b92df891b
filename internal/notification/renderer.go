package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/formrelay/internal/submission"
	"github.com/dmitrymomot/formrelay/pkg/email"
)

// Renderer turns submissions into studio notification emails.
type Renderer struct {
	from     string
	fromName string
	to       []string
}

func NewRenderer(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		from:     strings.TrimSpace(cfg.From),
		fromName: cfg.FromName,
		to:       cfg.recipients(),
	}, nil
}

// Render builds the notification for s as submitted at.
func (r *Renderer) Render(s submission.Submission, at time.Time) (email.Message, error) {
	th, ok := themes[s.Kind]
	if !ok {
		return email.Message{}, fmt.Errorf("%w: %q", submission.ErrUnknownKind, s.Kind)
	}

	var html strings.Builder
	if err := emailPage(buildDocument(th, s, at)).Render(context.Background(), &html); err != nil {
		return email.Message{}, fmt.Errorf("render %s html: %w", s.Kind, err)
	}

	return email.Message{
		From:     r.from,
		FromName: r.fromName,
		To:       append([]string(nil), r.to...),
		ReplyTo:  s.Email,
		Subject:  Subject(s),
		HTML:     html.String(),
		Text:     textBody(s, at),
		Tag:      s.Kind.String(),
		Date:     at,
	}, nil
}

// Subject returns the subject line for s.
func Subject(s submission.Submission) string {
	switch s.Kind {
	case submission.Collaboration:
		if s.Company != "" {
			return fmt.Sprintf("New Collaboration Request from %s (%s)", s.Name, s.Company)
		}
		return "New Collaboration Request from " + s.Name
	case submission.Waitlist:
		return fmt.Sprintf("🧘‍♀️ New Waitlist Member: %s (%s)", s.Name, s.InterestDisplay())
	default:
		return "New Contact Form Submission from " + s.Name
	}
}

func buildDocument(th theme, s submission.Submission, at time.Time) document {
	interest := s.InterestDisplay()
	doc := document{theme: th}

	doc.fields = append(doc.fields,
		field{emoji: "👤", label: "Full Name:", value: s.Name},
		field{emoji: "📧", label: "Email Address:", value: s.Email},
	)
	if s.Company != "" {
		doc.fields = append(doc.fields, field{emoji: "🏢", label: "Company:", value: s.Company})
	}
	if interest != "" {
		doc.fields = append(doc.fields, field{emoji: th.interestEmoji, label: th.interestLabel, value: interest, style: badgeValue})
	}
	if s.Message != "" {
		doc.fields = append(doc.fields, field{emoji: "💬", label: th.messageLabel, value: s.Message, style: messageValue})
	}
	doc.fields = append(doc.fields, field{emoji: "⏰", label: th.timeLabel, value: FormatTime(at)})

	switch s.Kind {
	case submission.Contact:
		step, ok := contactNextSteps[s.Interest]
		if !ok {
			step = defaultNextStep
		}
		doc.notes = append(doc.notes,
			note{class: "priority-note", lead: "📋 Next Steps:", body: []segment{
				{text: fmt.Sprintf(" This is a %s inquiry. %s", orDefault(interest, "general"), step)},
			}},
			note{class: "contact-info", lead: "📞 Reply within 24 hours", body: []segment{
				{text: " as promised on the website. Use the contact details above to respond directly."},
			}},
		)
	case submission.Collaboration:
		doc.notes = append(doc.notes, note{class: "priority-note", lead: "🤝 Collaboration Opportunity:", body: []segment{
			{text: fmt.Sprintf(" Review this %s request and consider the potential partnership benefits.", orDefault(interest, "collaboration"))},
		}})
	case submission.Waitlist:
		doc.notes = append(doc.notes, note{class: "priority-note", lead: "🎯 Action Required:", body: []segment{
			{text: " This person is interested in "},
			{text: interest, bold: true},
			{text: " and should receive priority notifications for related drops and bookings."},
		}})
	}
	return doc
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
