package team

import "errors"

// Sentinel kinds for team registry errors.
var (
	ErrEmptyName = errors.New("team name must not be empty")
)
