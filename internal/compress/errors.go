package compress

import (
	"errors"
	"path/filepath"
)

// Failure kinds. Every error returned by Compress is an *Error whose Kind
// is one of these, so callers can branch with errors.Is.
var (
	ErrEngineUnavailable    = errors.New("encoder unavailable")
	ErrMediaInfoUnavailable = errors.New("media information unavailable")
	ErrDurationUnavailable  = errors.New("duration unavailable")
	ErrInvalidTarget        = errors.New("invalid target size")
	ErrEncodeFailed         = errors.New("encode failed")
)

// Error is a failed compression attempt.
type Error struct {
	Kind  error  // One of the Err* kinds above.
	Input string // Input path of the attempt.
	// Detail is the encoder's captured stderr for ErrEncodeFailed, verbatim.
	Detail string
	Err    error // Underlying cause, may be nil.
}

func (e *Error) Error() string {
	msg := e.Kind.Error() + ": " + filepath.Base(e.Input)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
