package ledger

import "errors"

// Sentinel kinds for ledger errors.
var (
	ErrAlreadyRegistered = errors.New("already registered")
)
