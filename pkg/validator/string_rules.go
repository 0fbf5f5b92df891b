package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "field is required", Cause: ErrFieldRequired},
	}
}

// RequiredAll fails when any of values is blank. Use it when a form reports
// missing fields as a group rather than one by one.
func RequiredAll(field string, values ...string) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range values {
				if strings.TrimSpace(v) == "" {
					return false
				}
			}
			return true
		},
		Error: ValidationError{Field: field, Message: "fields are required", Cause: ErrFieldRequired},
	}
}

// MaxRunes limits the length of value in characters, not bytes.
func MaxRunes(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Cause:   ErrInvalidLength,
		},
	}
}

// MinRunes requires at least min characters.
func MinRunes(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Cause:   ErrInvalidLength,
		},
	}
}
