package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON decodes an application/json body. Unknown fields are ignored since
// public forms are often posted with extra client-side keys.
func JSON() Func {
	return func(r *http.Request, v any) error {
		if mt := mediaType(r); mt != "application/json" {
			return fmt.Errorf("%w: got %q, expected application/json", ErrUnsupportedMediaType, mt)
		}
		if r.Body == nil {
			return nil
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, DefaultMaxBodySize+1))
		if err != nil {
			return errors.Join(ErrFailedToParseJSON, err)
		}
		if len(body) > DefaultMaxBodySize {
			return ErrBodyTooLarge
		}
		if len(body) == 0 {
			return nil
		}

		if err := json.Unmarshal(body, v); err != nil {
			var invalid *json.InvalidUnmarshalError
			if errors.As(err, &invalid) {
				return errors.Join(ErrInvalidTarget, err)
			}
			return errors.Join(ErrFailedToParseJSON, err)
		}
		return nil
	}
}
