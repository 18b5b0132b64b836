package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrPersonNotFound = errors.New("person has no awards")
	ErrUnknownKind    = errors.New("unknown award program")
)
