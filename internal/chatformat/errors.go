package chatformat

import "errors"

var (
	ErrUnsupportedInput = errors.New("unsupported input")
	ErrUnknownRole      = errors.New("unknown role")
	ErrUnknownFormat    = errors.New("unknown format")
)

type unsupportedInputError struct {
	format string
	msg    string
}

func (e unsupportedInputError) Error() string {
	return e.format + ": " + e.msg
}

func (e unsupportedInputError) Unwrap() error {
	return ErrUnsupportedInput
}

func newUnsupported(format, msg string) error {
	return unsupportedInputError{format: format, msg: msg}
}
