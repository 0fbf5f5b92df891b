// Package handler provides typed HTTP handlers that bind a request into a
// value, run a function and render a Response.
//
// Handlers return a Response instead of writing to the ResponseWriter.
// Binding and render failures, and responses built with Error, are passed to
// one ErrorHandler which maps them to the JSON envelope used by every
// endpoint:
//
//	{"success": false, "message": "...", "error": "..."}
//
// The "error" field carries the underlying error text and is only written
// when the error handler runs in debug mode.
//
// Basic usage:
//
//	type ContactRequest struct {
//		Name  string `json:"name" form:"name"`
//		Email string `json:"email" form:"email"`
//	}
//
//	h := handler.HandlerFunc[handler.Context, ContactRequest](
//		func(ctx handler.Context, req ContactRequest) handler.Response {
//			id, err := svc.Submit(ctx, req)
//			if err != nil {
//				return handler.Error(err)
//			}
//			return handler.Success("Sent", map[string]string{"messageId": id})
//		},
//	)
//
//	r.Post("/contact", handler.Wrap(h,
//		handler.WithBinders[handler.Context, ContactRequest](binder.Body()),
//		handler.WithErrorHandler[handler.Context, ContactRequest](errHandler),
//	))
package handler
