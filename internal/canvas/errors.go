package canvas

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned before any network call when the API token or
// host is missing. It is wrapped with the name of the missing setting.
var ErrConfiguration = errors.New("canvas API not configured")

// APIError is a non-success HTTP response from Canvas. Body holds the raw
// response text so callers can show Canvas's own explanation.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("canvas API error %d (%s %s): %s", e.StatusCode, e.Method, e.Path, e.Body)
}

// DecodeError is a response body that could not be decoded as the expected
// JSON shape.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status of an *APIError anywhere in err's chain,
// or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
