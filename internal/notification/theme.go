package notification

import "github.com/dmitrymomot/formrelay/internal/submission"

// theme is the per-kind presentation of a notification.
type theme struct {
	title    string
	heading  string
	subtitle string

	headerGradient string
	badgeGradient  string
	accent         string
	noteBackground string
	noteBorder     string
	noteStrong     string

	interestEmoji string
	interestLabel string
	messageLabel  string
	timeLabel     string

	footerSource  string
	footerTagline string
}

var themes = map[submission.Kind]theme{
	submission.Contact: {
		title:          "New Contact & Booking Request - Lotus Yoga Studio",
		heading:        "📞 New Contact & Booking Request!",
		subtitle:       "Someone wants to connect about yoga sessions or bookings",
		headerGradient: "linear-gradient(135deg, #3b82f6 0%, #8b5cf6 50%, #22c55e 100%)",
		badgeGradient:  "linear-gradient(135deg, #3b82f6, #8b5cf6)",
		accent:         "#3b82f6",
		noteBackground: "#dbeafe",
		noteBorder:     "#3b82f6",
		noteStrong:     "#1e40af",
		interestEmoji:  "🎯",
		interestLabel:  "Interest Area:",
		messageLabel:   "Goals & Request:",
		timeLabel:      "Submitted At:",
		footerSource:   "Contact & Bookings",
		footerTagline:  "Trusted • Familiar • Community‑first",
	},
	submission.Collaboration: {
		title:          "New Collaboration Request - Lotus Yoga Studio",
		heading:        "🤝 New Collaboration Request!",
		subtitle:       "A potential collaboration partner has reached out",
		headerGradient: "linear-gradient(135deg, #8b5cf6 0%, #22c55e 100%)",
		badgeGradient:  "linear-gradient(135deg, #8b5cf6, #22c55e)",
		accent:         "#8b5cf6",
		noteBackground: "#fef3c7",
		noteBorder:     "#f59e0b",
		noteStrong:     "#92400e",
		interestEmoji:  "💡",
		interestLabel:  "Collaboration Type:",
		messageLabel:   "Collaboration Details:",
		timeLabel:      "Submitted At:",
		footerSource:   "collaboration",
		footerTagline:  "Building meaningful partnerships",
	},
	submission.Waitlist: {
		title:          "New Waitlist Submission - Lotus Yoga Studio",
		heading:        "🧘‍♀️ New Waitlist Member!",
		subtitle:       "Someone just joined the Lotus Yoga Studio waitlist",
		headerGradient: "linear-gradient(135deg, #8b5cf6 0%, #22c55e 100%)",
		badgeGradient:  "linear-gradient(135deg, #8b5cf6, #22c55e)",
		accent:         "#8b5cf6",
		noteBackground: "#fef3c7",
		noteBorder:     "#f59e0b",
		noteStrong:     "#92400e",
		interestEmoji:  "💫",
		interestLabel:  "Primary Interest:",
		timeLabel:      "Joined At:",
		footerSource:   "waitlist",
		footerTagline:  "Early drops • Priority booking • Giveaways",
	},
}

// contactNextSteps is the follow-up hint shown on contact emails.
var contactNextSteps = map[string]string{
	"yoga-online":   "Schedule a 1:1 online yoga session.",
	"yoga-inperson": "Coordinate an in-person session in Brisbane.",
	"lotus":         "Share the latest clothing drops and lookbook.",
	"studio":        "Discuss collaboration opportunities.",
}

const defaultNextStep = "Follow up based on their specific needs."
