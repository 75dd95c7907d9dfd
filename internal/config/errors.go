package config

import "errors"

// Sentinel kinds for configuration errors.
var (
	ErrEmptyAddr        = errors.New("addr must not be empty")
	ErrEmptyArtifactDir = errors.New("artifact_dir must not be empty")
)
