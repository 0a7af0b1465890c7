package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
	"github.com/custodia-labs/extractview/internal/logger"
)

// DocumentRenderer turns a document and its annotations into a sequence
// of plain and highlighted fragments covering the whole document.
type DocumentRenderer struct {
	surface     driven.DocumentSurface
	coordinator *HighlightCoordinator
}

// NewDocumentRenderer creates a renderer writing to surface and
// registering its elements with coordinator.
func NewDocumentRenderer(surface driven.DocumentSurface, coordinator *HighlightCoordinator) *DocumentRenderer {
	return &DocumentRenderer{
		surface:     surface,
		coordinator: coordinator,
	}
}

// Render builds the document view and replaces the surface content.
//
// Annotations whose span is empty or outside the document are skipped and
// reported in DocumentView.Rejected. Overlapping spans are not resolved:
// the output is best-effort and may repeat or drop text, but never panics.
func (r *DocumentRenderer) Render(text string, annotations []domain.Annotation) (*domain.DocumentView, error) {
	if r.surface == nil {
		return nil, fmt.Errorf("rendering document: %w", domain.ErrMissingSurface)
	}

	view := BuildDocumentView(text, annotations)

	if r.coordinator != nil {
		r.coordinator.Register(domain.RegionDocument, view.Elements())
	}
	if err := r.surface.ReplaceDocument(view); err != nil {
		return nil, fmt.Errorf("replacing document surface: %w", err)
	}
	return view, nil
}

// BuildDocumentView computes the fragments without touching any surface.
func BuildDocumentView(text string, annotations []domain.Annotation) *domain.DocumentView {
	runes := []rune(text)
	view := &domain.DocumentView{}

	placed := make([]domain.Annotation, 0, len(annotations))
	for i := range annotations {
		a := annotations[i]
		if err := a.Validate(len(runes)); err != nil {
			logger.Warn("skipping annotation %q: %v", a.ID, err)
			view.Rejected = append(view.Rejected, domain.Rejection{ID: a.ID, Err: err})
			continue
		}
		placed = append(placed, a)
	}

	// Stable: annotations sharing a start keep their input order.
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Start < placed[j].Start
	})

	cursor := 0
	for i := range placed {
		a := placed[i]
		if a.Start > cursor {
			view.Fragments = append(view.Fragments, domain.Fragment{
				Kind: domain.FragmentText,
				Text: domain.Slice(runes, cursor, a.Start),
			})
		} else if a.Start < cursor {
			logger.Debug("annotation %q overlaps previous span at %d", a.ID, a.Start)
		}

		if actual := domain.Slice(runes, a.Start, a.End); actual != a.Text {
			logger.Debug("annotation %q text %q differs from document %q", a.ID, a.Text, actual)
		}

		view.Fragments = append(view.Fragments, domain.Fragment{
			Kind: domain.FragmentHighlight,
			Text: a.Text,
			Element: &domain.Element{
				Region: domain.RegionDocument,
				ID:     a.ID,
				Method: a.Method,
			},
		})
		cursor = a.End
	}

	if cursor < len(runes) {
		view.Fragments = append(view.Fragments, domain.Fragment{
			Kind: domain.FragmentText,
			Text: domain.Slice(runes, cursor, len(runes)),
		})
	}

	logger.Debug("document rendered: %d fragments, %d highlights, %d skipped",
		len(view.Fragments), len(placed), len(view.Rejected))
	return view
}
