package seeding

import "errors"

var (
	// ErrUnhealthy is returned when the service health check fails.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrUnexpectedStatus is returned for responses outside the expected set.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrVerification is returned when the service state breaks an invariant.
	ErrVerification = errors.New("verification failed")
)
