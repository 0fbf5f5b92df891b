package submission

var contactInterests = map[string]string{
	"yoga-online":   "Yoga — 1:1 Online",
	"yoga-inperson": "Yoga — In‑person (Brisbane)",
	"lotus":         "Lotus — Clothing / Lookbook",
	"studio":        "Studio — Collaboration",
	"other":         "Other",
}

var waitlistInterests = map[string]string{
	"lotus":  "Lotus — Clothing Drops",
	"yoga":   "Yoga — 1:1 with Lavanya",
	"studio": "Studio — Music & Podcasts",
	"all":    "All of it!",
}

// InterestDisplay maps an interest code to its label for kind. Unknown
// codes, and every collaboration interest, are returned unchanged.
func InterestDisplay(kind Kind, code string) string {
	var table map[string]string
	switch kind {
	case Contact:
		table = contactInterests
	case Waitlist:
		table = waitlistInterests
	}
	if label, ok := table[code]; ok {
		return label
	}
	return code
}
