package validator

import (
	"regexp"
	"strings"
)

// emailPattern is intentionally loose: something@something.something with
// no whitespace. Deliverability is the relay's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail validates the syntactic shape of an email address.
// Empty values pass; combine with RequiredString when the field is mandatory.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool { return value == "" || emailPattern.MatchString(value) },
		Error: ValidationError{Field: field, Message: "must be a valid email address", Cause: ErrInvalidFormat},
	}
}

// NoControlChars rejects ASCII control characters such as CR and LF.
func NoControlChars(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return !strings.ContainsFunc(value, func(r rune) bool { return r < 0x20 || r == 0x7f })
		},
		Error: ValidationError{Field: field, Message: "must not contain control characters", Cause: ErrInvalidFormat},
	}
}
