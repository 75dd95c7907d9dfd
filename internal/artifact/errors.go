package artifact

import "errors"

// Sentinel kinds for artifact pipeline errors.
var (
	ErrUnknownKind = errors.New("unknown artifact kind")
	ErrQueueFull   = errors.New("artifact queue full")
)
