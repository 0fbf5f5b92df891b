package notification

import (
	"strings"
	"time"

	"github.com/dmitrymomot/formrelay/internal/submission"
)

const notSpecified = "Not specified"

// textBody is the plain-text alternative of the HTML email.
func textBody(s submission.Submission, at time.Time) string {
	var b strings.Builder
	line := func(parts ...string) {
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteByte('\n')
	}

	switch s.Kind {
	case submission.Waitlist:
		line("New Waitlist Subscription - Lotus Yoga Studio")
		line()
		line("Name: ", s.Name)
		line("Email: ", s.Email)
		line("Primary Interest: ", s.InterestDisplay())
		line()
		line("Joined at: ", FormatTime(at))
		line()
		line("Action Required: This person should receive priority notifications for ", s.InterestDisplay(), ".")
		return b.String()
	case submission.Collaboration:
		line("New Collaboration Request")
		line()
		line("Name: ", s.Name)
		line("Email: ", s.Email)
		line("Company: ", orDefault(s.Company, notSpecified))
	default:
		line("New Contact Form Submission")
		line()
		line("Name: ", s.Name)
		line("Email: ", s.Email)
	}

	line("Interest: ", orDefault(s.InterestDisplay(), notSpecified))
	line("Message: ", s.Message)
	line()
	line("Submitted at: ", FormatTime(at))
	return b.String()
}
