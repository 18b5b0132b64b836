package validation

import "errors"

// ErrValidation is the sentinel matched by every validation failure.
var ErrValidation = errors.New("validation failed")

// Error carries a human-readable reason for a rejected submission.
type Error struct {
	Reason string
}

// NewError builds a validation error with the given reason.
func NewError(reason string) *Error { return &Error{Reason: reason} }

func (e *Error) Error() string { return e.Reason }

// Is makes errors.Is(err, ErrValidation) hold for every *Error.
func (e *Error) Is(target error) bool { return target == ErrValidation }

// Reason extracts the reason of a validation error anywhere in err's chain.
func Reason(err error) (string, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return "", false
}
