package store

import (
	"errors"
	"fmt"
)

// Sentinel kinds for record store errors.
var (
	ErrTransport = errors.New("record store transport failure")
	ErrDecode    = errors.New("record store response decode failed")
)

// TransportError is a failed call to the record store. Message carries the
// store's response body or, when empty, a fallback describing the call.
type TransportError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Is makes every TransportError match ErrTransport.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// Message returns the user-facing text of a transport failure.
func Message(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
