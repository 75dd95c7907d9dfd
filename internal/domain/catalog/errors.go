package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound = errors.New("event not found")
)
