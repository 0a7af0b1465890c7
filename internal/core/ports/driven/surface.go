package driven

import "github.com/custodia-labs/extractview/internal/core/domain"

// DocumentSurface is the display region that receives the rendered document.
// Every call fully replaces the previous content.
type DocumentSurface interface {
	ReplaceDocument(view *domain.DocumentView) error
}

// OutlineSurface is the display region that receives the rendered outline.
// Every call fully replaces the previous content.
type OutlineSurface interface {
	ReplaceOutline(view *domain.OutlineView) error
}
