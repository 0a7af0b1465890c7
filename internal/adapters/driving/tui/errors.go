package tui

import "errors"

// ErrMissingViewer is returned when the viewer is not provided.
var ErrMissingViewer = errors.New("tui: viewer is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
