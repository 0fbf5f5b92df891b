// Package sanitizer normalizes untrusted text before it is validated and
// embedded in outgoing mail.
//
// Functions are plain func(string) string transforms, so they chain with
// Apply or Compose:
//
//	clean := sanitizer.Compose(sanitizer.NFC, sanitizer.SingleLine)
//	name := clean(in.Name)
//
// SingleLine does more than trim: every inner run of whitespace or control
// characters is folded to one space, so "Jane   Doe" becomes "Jane Doe".
// Single-line fields (name, company, interest) reach mail headers, where a
// raw newline could start a new header. MultiLine keeps inner whitespace and
// newlines and only trims the ends.
package sanitizer
