package email

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Message is a fully rendered email ready for a transport.
type Message struct {
	From     string
	FromName string
	To       []string
	ReplyTo  string
	Subject  string
	HTML     string
	Text     string
	// Tag labels the message for provider analytics and dev file names.
	Tag  string
	Date time.Time
}

var addressPattern = regexp.MustCompile(`^[^\s@<>",]+@[^\s@<>",]+\.[^\s@<>",]+$`)

// Validate checks the fields every transport relies on.
func (m Message) Validate() error {
	var errs []error
	if !addressPattern.MatchString(m.From) {
		errs = append(errs, fmt.Errorf("from address %q is invalid", m.From))
	}
	if len(m.To) == 0 {
		errs = append(errs, errors.New("at least one recipient is required"))
	}
	for _, to := range m.To {
		if !addressPattern.MatchString(to) {
			errs = append(errs, fmt.Errorf("recipient %q is invalid", to))
		}
	}
	if m.ReplyTo != "" && !addressPattern.MatchString(m.ReplyTo) {
		errs = append(errs, fmt.Errorf("reply-to %q is invalid", m.ReplyTo))
	}
	if strings.TrimSpace(m.Subject) == "" {
		errs = append(errs, errors.New("subject is required"))
	}
	if strings.ContainsAny(m.Subject+m.FromName, "\r\n") {
		errs = append(errs, errors.New("header values must be single line"))
	}
	if m.HTML == "" && m.Text == "" {
		errs = append(errs, errors.New("html or text body is required"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidMessage}, errs...)...)
	}
	return nil
}

// domainOf returns the part after @, used for Message-ID generation.
func domainOf(addr string) string {
	if i := strings.LastIndexByte(addr, '@'); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}
