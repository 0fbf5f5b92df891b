package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// TrimToLower trims and lowercases, the canonical form for email addresses.
func TrimToLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NFC converts s to Unicode normalization form C so visually identical
// input (e.g. a decomposed "é") compares and counts the same.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// NormalizeNewlines converts CRLF and lone CR to LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// RemoveControlChars drops control characters except newline and tab.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, s)
}

// SingleLine collapses every run of whitespace or control characters into a
// single space and trims the result. Values passing through it cannot break
// a mail header onto a new line.
func SingleLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MultiLine normalizes newlines, strips other control characters and trims
// the result. Used for free-text bodies.
func MultiLine(s string) string {
	return strings.TrimSpace(RemoveControlChars(NormalizeNewlines(s)))
}
