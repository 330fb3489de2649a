package metrics

import "errors"

// Sentinel kinds for metrics registration.
var (
	ErrAlreadyRegistered = errors.New("metric already registered")
)
