package credential

import "errors"

// Sentinel kinds for credential pipeline errors.
var (
	ErrNotRegistered = errors.New("no registration for event")
	ErrProfileExists = errors.New("profile already collected")
)
