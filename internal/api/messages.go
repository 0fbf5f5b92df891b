package api

import "github.com/dmitrymomot/formrelay/internal/submission"

const (
	msgBanner          = "Lotus Yoga Studio Backend API"
	msgRateLimited     = "Too many email requests. Please try again later."
	msgInternal        = "Something went wrong!"
	msgInvalidBody     = "Invalid request body."
	msgServiceRunning  = "Mail service is running"
	msgTransportOK     = "SMTP configuration is valid and ready to send emails."
	msgTransportFailed = "SMTP configuration test failed."
)

var successMessages = map[submission.Kind]string{
	submission.Contact:       "Your message has been sent successfully! We will get back to you soon.",
	submission.Collaboration: "Your collaboration request has been sent successfully! We will review it and get back to you soon.",
	submission.Waitlist:      "Successfully joined the waitlist! We will notify you when spots become available.",
}

var failureMessages = map[submission.Kind]string{
	submission.Contact:       "Failed to send email. Please try again later.",
	submission.Collaboration: "Failed to send email. Please try again later.",
	submission.Waitlist:      "Failed to join waitlist. Please try again later.",
}
