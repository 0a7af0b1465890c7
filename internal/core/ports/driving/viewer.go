package driving

import (
	"context"

	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
)

// Viewer drives the two linked views of an extraction.
type Viewer interface {
	// Attach sets the display surfaces. Rendering before Attach fails
	// with domain.ErrMissingSurface.
	Attach(document driven.DocumentSurface, outline driven.OutlineSurface)

	// Load reads the extraction from the configured source.
	Load(ctx context.Context) error

	// SetExtraction replaces the extraction directly.
	SetExtraction(e *domain.Extraction)

	// Extraction returns the current extraction, or nil before Load.
	Extraction() *domain.Extraction

	// RenderDocument renders the document view onto its surface.
	RenderDocument() (*domain.DocumentView, error)

	// RenderOutline renders the outline view onto its surface.
	RenderOutline() (*domain.OutlineView, error)

	// RenderAll renders the outline then the document.
	RenderAll() error

	// ToggleCategory flips a category and re-renders the outline only.
	ToggleCategory(category string) (*domain.OutlineView, error)

	// Activate highlights every element tagged with id in both views.
	Activate(id string) int

	// Deactivate clears every highlight.
	Deactivate()

	// ActiveIDs returns the ids currently highlighted.
	ActiveIDs() []string

	// Accordion returns the outline expand/collapse state.
	Accordion() *domain.AccordionState

	// Accepted returns the annotations that passed validation.
	Accepted() []domain.Annotation

	// Rejected returns annotations skipped by the last document render.
	Rejected() []domain.Rejection
}
