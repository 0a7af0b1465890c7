package driven

import (
	"context"

	"github.com/custodia-labs/extractview/internal/core/domain"
)

// ExtractionSource supplies the document and its annotations.
// Implementations: compiled-in sample, JSON/TOML/YAML file.
type ExtractionSource interface {
	// Load returns the extraction. Offsets are resolved; validation of
	// spans against the document is left to the renderers.
	Load(ctx context.Context) (*domain.Extraction, error)

	// Name describes the source for logs and titles.
	Name() string
}
