// Package notification renders submissions into the HTML and plain-text
// emails sent to the studio.
//
// Rendering is pure: the same submission and timestamp always produce the
// same message. Per-kind colours and wording live in theme values; the
// HTML is built from templ components so every user value is escaped.
package notification
