// Package requestid tags every HTTP request with a correlation id.
//
// Middleware reuses a well-formed X-Request-ID supplied by the caller
// (typically the website's edge proxy) and otherwise generates a UUIDv4.
// The id is echoed in the response header, stored in the request context
// and added to log records through LoggerExtractor, so a failed form
// submission can be traced from the browser to the relay log line.
package requestid
