// Package relay runs the submission pipeline: normalize and validate the
// form, charge the client's rate limit, render the notification and hand it
// to the mail dispatcher.
//
// Stages short-circuit in that order, so invalid input never consumes
// quota and a rejected client never reaches the mail transport. Errors are
// returned as produced by each stage: validator.ValidationErrors,
// *ratelimit.ExceededError or *email.DeliveryError.
package relay
