// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer optional YAML file and environment on top via Load.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// PaymentProcessingDelayMS is the scripted Idle->Processing->Confirmed delay.
	PaymentProcessingDelayMS int `koanf:"payment_processing_delay_ms"`

	// PaymentConfirmDelayMS is the delay between Confirmed and the success callback.
	PaymentConfirmDelayMS int `koanf:"payment_confirm_delay_ms"`

	// NotificationCap bounds the activity feed.
	NotificationCap int `koanf:"notification_cap"`

	// ArtifactDir is where generated documents are written.
	ArtifactDir string `koanf:"artifact_dir"`

	// ArtifactQueueSize bounds the render job queue.
	ArtifactQueueSize int `koanf:"artifact_queue_size"`

	// RenderWorkerCount sets the number of render workers.
	RenderWorkerCount int `koanf:"render_worker_count"`

	// RasterScale is the pixel scale applied to card templates.
	RasterScale int `koanf:"raster_scale"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                 "info",
		Addr:                     ":8080",
		PaymentProcessingDelayMS: 1500,
		PaymentConfirmDelayMS:    2000,
		NotificationCap:          5,
		ArtifactDir:              "./artifacts",
		ArtifactQueueSize:        256,
		RenderWorkerCount:        2,
		RasterScale:              2,
	}
}
