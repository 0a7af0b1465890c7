package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
	"github.com/custodia-labs/extractview/internal/core/ports/driving"
	"github.com/custodia-labs/extractview/internal/logger"
)

// Ensure Viewer implements the interface.
var _ driving.Viewer = (*Viewer)(nil)

// ErrNoExtraction is returned when rendering before anything was loaded.
var ErrNoExtraction = errors.New("no extraction loaded")

// Viewer links the document and outline views of one extraction.
type Viewer struct {
	source      driven.ExtractionSource
	coordinator *HighlightCoordinator
	accordion   *domain.AccordionState

	document *DocumentRenderer
	outline  *OutlineRenderer

	extraction *domain.Extraction
	accepted   []domain.Annotation
	rejected   []domain.Rejection
}

// NewViewer creates a viewer reading from source. Surfaces must be
// attached before rendering.
func NewViewer(source driven.ExtractionSource, settings domain.Settings) *Viewer {
	coordinator := NewHighlightCoordinator()
	accordion := domain.NewAccordionState(settings.OutlineExpanded)
	for _, category := range settings.Collapsed {
		accordion.Configure(category, false)
	}

	return &Viewer{
		source:      source,
		coordinator: coordinator,
		accordion:   accordion,
		document:    NewDocumentRenderer(nil, coordinator),
		outline:     NewOutlineRenderer(nil, coordinator),
	}
}

// Attach sets the display surfaces.
func (v *Viewer) Attach(document driven.DocumentSurface, outline driven.OutlineSurface) {
	v.document = NewDocumentRenderer(document, v.coordinator)
	v.outline = NewOutlineRenderer(outline, v.coordinator)
}

// Load reads the extraction from the source.
func (v *Viewer) Load(ctx context.Context) error {
	if v.source == nil {
		return fmt.Errorf("loading extraction: %w", domain.ErrInvalidInput)
	}

	logger.Section("Load")
	e, err := v.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading extraction from %s: %w", v.source.Name(), err)
	}
	logger.Info("loaded %d annotations from %s", len(e.Annotations), v.source.Name())

	v.SetExtraction(e)
	return nil
}

// SetExtraction replaces the extraction. Accordion state is kept for
// categories that are still present.
func (v *Viewer) SetExtraction(e *domain.Extraction) {
	v.extraction = e
	v.accepted, v.rejected = nil, nil
	if e == nil {
		return
	}

	v.accepted, v.rejected = e.Validate()
	for _, r := range v.rejected {
		logger.Warn("skipping annotation: %v", r)
	}

	categories := make([]string, 0)
	for _, g := range domain.GroupByCategory(v.accepted) {
		categories = append(categories, g.Category)
	}
	v.accordion.Retain(categories)
}

// Extraction returns the current extraction.
func (v *Viewer) Extraction() *domain.Extraction {
	return v.extraction
}

// RenderDocument renders the document view.
func (v *Viewer) RenderDocument() (*domain.DocumentView, error) {
	if v.extraction == nil {
		return nil, ErrNoExtraction
	}
	view, err := v.document.Render(v.extraction.Document, v.accepted)
	if err != nil {
		return nil, err
	}
	view.Title = v.extraction.Title
	view.Rejected = append(append([]domain.Rejection(nil), v.rejected...), view.Rejected...)
	return view, nil
}

// RenderOutline renders the outline view.
func (v *Viewer) RenderOutline() (*domain.OutlineView, error) {
	if v.extraction == nil {
		return nil, ErrNoExtraction
	}
	return v.outline.Render(v.accepted, v.accordion)
}

// RenderAll renders the outline then the document, matching start-up order.
func (v *Viewer) RenderAll() error {
	if _, err := v.RenderOutline(); err != nil {
		return err
	}
	_, err := v.RenderDocument()
	return err
}

// ToggleCategory flips category and re-renders the outline only.
func (v *Viewer) ToggleCategory(category string) (*domain.OutlineView, error) {
	if !v.accordion.Known(category) {
		return nil, fmt.Errorf("toggling %q: %w", category, domain.ErrUnknownCategory)
	}
	expanded := v.accordion.Toggle(category)
	logger.Debug("category %q expanded=%t", category, expanded)
	return v.RenderOutline()
}

// Activate highlights every element tagged with id.
func (v *Viewer) Activate(id string) int {
	return v.coordinator.Activate(id)
}

// Deactivate clears every highlight.
func (v *Viewer) Deactivate() {
	v.coordinator.Deactivate()
}

// ActiveIDs returns the ids currently highlighted.
func (v *Viewer) ActiveIDs() []string {
	return v.coordinator.Active()
}

// Accordion returns the outline state.
func (v *Viewer) Accordion() *domain.AccordionState {
	return v.accordion
}

// Accepted returns the annotations that passed validation, in input order.
func (v *Viewer) Accepted() []domain.Annotation {
	return v.accepted
}

// Rejected returns annotations skipped during validation.
func (v *Viewer) Rejected() []domain.Rejection {
	return v.rejected
}

// Coordinator exposes the highlight coordinator.
func (v *Viewer) Coordinator() *HighlightCoordinator {
	return v.coordinator
}
