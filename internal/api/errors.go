package api

import (
	"errors"
	"net/http"

	"github.com/samcharles93/chatfmt/internal/chatformat"
)

var ErrInvalidRequest = errors.New("invalid_request")

type invalidRequestError struct {
	msg   string
	cause error
}

func (e invalidRequestError) Error() string {
	return e.msg
}

func (e invalidRequestError) Unwrap() []error {
	return []error{ErrInvalidRequest, e.cause}
}

func wrapInvalidRequest(err error) error {
	return invalidRequestError{msg: err.Error(), cause: err}
}

// classify maps an error to an HTTP status, error type and code.
func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, chatformat.ErrUnsupportedInput):
		return http.StatusBadRequest, "invalid_request_error", "unsupported_input"
	case errors.Is(err, chatformat.ErrUnknownFormat):
		return http.StatusBadRequest, "invalid_request_error", "unknown_format"
	case errors.Is(err, chatformat.ErrUnknownRole):
		return http.StatusBadRequest, "invalid_request_error", "unknown_role"
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "invalid_request_error", ""
	default:
		return http.StatusInternalServerError, "server_error", ""
	}
}
