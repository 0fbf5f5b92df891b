package binder

import (
	"mime"
	"net/http"
	"strings"
)

// Func binds a request into v.
type Func func(r *http.Request, v any) error

// DefaultMaxBodySize bounds JSON and urlencoded bodies.
const DefaultMaxBodySize = 64 << 10

// Body dispatches to JSON or Form based on the request Content-Type.
// Requests without a body or Content-Type bind nothing.
func Body() Func {
	jsonBinder := JSON()
	formBinder := Form()

	return func(r *http.Request, v any) error {
		switch mediaType(r) {
		case "application/json":
			return jsonBinder(r, v)
		case "application/x-www-form-urlencoded", "multipart/form-data":
			return formBinder(r, v)
		case "":
			if r.ContentLength == 0 || r.Body == nil || r.Body == http.NoBody {
				return nil
			}
			return ErrUnsupportedMediaType
		default:
			return ErrUnsupportedMediaType
		}
	}
}

func mediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	}
	return mt
}
