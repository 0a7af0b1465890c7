package services

import (
	"github.com/custodia-labs/extractview/internal/core/domain"
)

// recordingSurface implements both display surfaces for testing.
type recordingSurface struct {
	document     *domain.DocumentView
	outline      *domain.OutlineView
	documentRuns int
	outlineRuns  int
	err          error
}

func (s *recordingSurface) ReplaceDocument(view *domain.DocumentView) error {
	if s.err != nil {
		return s.err
	}
	s.documentRuns++
	s.document = view
	return nil
}

func (s *recordingSurface) ReplaceOutline(view *domain.OutlineView) error {
	if s.err != nil {
		return s.err
	}
	s.outlineRuns++
	s.outline = view
	return nil
}

// highlights returns the highlighted fragments of a view.
func highlights(view *domain.DocumentView) []domain.Fragment {
	var out []domain.Fragment
	for _, f := range view.Fragments {
		if f.Kind == domain.FragmentHighlight {
			out = append(out, f)
		}
	}
	return out
}
