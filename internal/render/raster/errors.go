package raster

import "errors"

// Sentinel kinds for rasterizer errors.
var (
	ErrTemplateNotFound = errors.New("card template not found")
)
