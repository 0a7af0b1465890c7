package services

import (
	"fmt"

	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
	"github.com/custodia-labs/extractview/internal/logger"
)

// OutlineRenderer groups annotations by category into collapsible sections.
// It is called again in full after every expand/collapse toggle.
type OutlineRenderer struct {
	surface     driven.OutlineSurface
	coordinator *HighlightCoordinator
}

// NewOutlineRenderer creates a renderer writing to surface and
// registering its elements with coordinator.
func NewOutlineRenderer(surface driven.OutlineSurface, coordinator *HighlightCoordinator) *OutlineRenderer {
	return &OutlineRenderer{
		surface:     surface,
		coordinator: coordinator,
	}
}

// Render builds the outline for the current accordion state and replaces
// the surface content. Categories not yet in state are added with the
// state's default.
func (r *OutlineRenderer) Render(annotations []domain.Annotation, state *domain.AccordionState) (*domain.OutlineView, error) {
	if r.surface == nil {
		return nil, fmt.Errorf("rendering outline: %w", domain.ErrMissingSurface)
	}
	if state == nil {
		return nil, fmt.Errorf("rendering outline: %w", domain.ErrNilState)
	}

	view := BuildOutlineView(annotations, state)

	if r.coordinator != nil {
		r.coordinator.Register(domain.RegionOutline, view.Elements())
	}
	if err := r.surface.ReplaceOutline(view); err != nil {
		return nil, fmt.Errorf("replacing outline surface: %w", err)
	}
	return view, nil
}

// BuildOutlineView computes the outline without touching any surface.
func BuildOutlineView(annotations []domain.Annotation, state *domain.AccordionState) *domain.OutlineView {
	groups := domain.GroupByCategory(annotations)
	view := &domain.OutlineView{Sections: make([]domain.OutlineSection, 0, len(groups))}

	for _, g := range groups {
		state.Ensure(g.Category)

		section := domain.OutlineSection{
			Category:  g.Category,
			Label:     domain.HumanizeCategory(g.Category),
			Expanded:  state.Expanded(g.Category),
			Indicator: state.Indicator(g.Category),
			Items:     make([]domain.OutlineItem, 0, len(g.Annotations)),
		}
		for i := range g.Annotations {
			a := g.Annotations[i]
			section.Items = append(section.Items, domain.OutlineItem{
				Label:      a.Label,
				Value:      a.DisplayValue(),
				Confidence: domain.FormatConfidence(a.Confidence),
				Element: &domain.Element{
					Region: domain.RegionOutline,
					ID:     a.ID,
					Method: a.Method,
				},
			})
		}
		view.Sections = append(view.Sections, section)
	}

	logger.Debug("outline rendered: %d categories", len(view.Sections))
	return view
}
