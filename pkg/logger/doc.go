// Package logger builds the service's *slog.Logger.
//
// New takes functional options for level, output format and static
// attributes, and wraps the chosen handler so attributes stored in a
// context.Context (request id, client ip, environment) are added to every
// record logged with a *Context method.
//
// Three formats are available:
//
//   - FormatJSON for production log shipping
//   - FormatText for plain key=value output
//   - FormatPretty for colourful local output, backed by charmbracelet/log
//
// Attribute helpers in attr.go keep key names consistent across packages:
//
//	log.InfoContext(ctx, "notification sent",
//		logger.Kind("contact"),
//		logger.MessageID(id),
//	)
package logger
