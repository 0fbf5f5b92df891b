// Package api exposes the relay over HTTP.
//
// Routes:
//
//	GET  /                          service banner
//	GET  /healthz                   liveness and readiness probe
//	POST /api/mail/contact          contact form
//	POST /api/mail/collaboration    collaboration form
//	POST /api/mail/send-mail        legacy form, kind inferred from company
//	GET  /api/mail/test             mail transport check
//	GET  /api/mail/health           service status and endpoint directory
//	POST /api/waitlist              waitlist form
//	POST /api/contact               contact form
//
// Every JSON response uses the handler.Envelope shape. Error detail is only
// included in development.
package api
