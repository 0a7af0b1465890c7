// Package tui provides the interactive two-pane terminal viewer.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/extractview/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Viewer renders the extraction and coordinates highlights.
	Viewer driving.Viewer
}

// NewPorts creates a new Ports aggregate.
func NewPorts(viewer driving.Viewer) *Ports {
	return &Ports{Viewer: viewer}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Viewer == nil {
		return ErrMissingViewer
	}
	return nil
}
