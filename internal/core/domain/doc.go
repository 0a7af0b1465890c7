// Package domain defines the core entities for extractview.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Annotation: An extracted span of the document with metadata
//   - Extraction: A document together with its annotations
//   - Element: A highlightable element in one of the rendered views
//   - DocumentView / OutlineView: The rendered output of each view
//   - AccordionState: Expand/collapse state of outline categories
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
