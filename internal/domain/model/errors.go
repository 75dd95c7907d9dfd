package model

import "errors"

// Sentinel kinds for validation errors caught at the form boundary.
var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrInvalidEvent   = errors.New("invalid event")
)
