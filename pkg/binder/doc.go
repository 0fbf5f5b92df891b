// Package binder decodes HTTP request bodies into structs.
//
// JSON reads application/json bodies, Form reads urlencoded and multipart
// forms using `form:"name"` tags, and Body picks one of them from the
// Content-Type header so a handler accepts both the website's fetch calls
// and plain HTML form posts:
//
//	type ContactInput struct {
//		Name  string `json:"name" form:"name"`
//		Email string `json:"email" form:"email"`
//	}
//
//	var in ContactInput
//	if err := binder.Body()(r, &in); err != nil {
//		// errors.Is(err, binder.ErrUnsupportedMediaType), ...
//	}
//
// An empty body binds nothing and is not an error; required-field checks
// belong to validation.
package binder
