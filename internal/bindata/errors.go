package bindata

import "errors"

// Error classes. Every error returned by this package wraps exactly one of
// these, so callers can branch on the class with errors.Is.
var (
	ErrFormat   = errors.New("malformed input")
	ErrEncoding = errors.New("encoding error")
	ErrIndex    = errors.New("index out of range")
	ErrValue    = errors.New("invalid value")
	ErrType     = errors.New("invalid operand")
)

// Specific failures.
var (
	ErrEmptyKey       = wrapClass(ErrType, "xor key has zero length")
	ErrLengthMismatch = wrapClass(ErrValue, "operands differ in length")
)

type classError struct {
	class error
	msg   string
}

func wrapClass(class error, msg string) error {
	return &classError{class: class, msg: msg}
}

func (e *classError) Error() string { return e.msg }

func (e *classError) Unwrap() error { return e.class }
