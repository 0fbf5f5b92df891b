// Package submission defines the three form kinds accepted by the relay and
// turns raw form input into a normalized, validated Submission.
//
// Normalization happens before validation: single-line fields are NFC
// normalized and collapsed onto one line, the email is trimmed and
// lowercased, and the message keeps its line breaks. Validation reports
// the first failure with the user-facing wording the website shows.
package submission
