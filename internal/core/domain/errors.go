package domain

import "errors"

// Domain errors represent rendering and input failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Annotation Errors.

	// ErrMissingID indicates an annotation has no identifier.
	ErrMissingID = errors.New("annotation id is required")

	// ErrDuplicateID indicates an annotation id was already used by an earlier annotation.
	ErrDuplicateID = errors.New("duplicate annotation id")

	// ErrInvalidSpan indicates an annotation's offsets fall outside the document
	// or describe an empty range.
	ErrInvalidSpan = errors.New("invalid annotation span")

	// ErrTextNotFound indicates an annotation without offsets whose text
	// does not occur in the document.
	ErrTextNotFound = errors.New("annotation text not found in document")

	// Rendering Errors.

	// ErrMissingSurface indicates a renderer has no display surface to write to.
	ErrMissingSurface = errors.New("display surface not attached")

	// ErrNilState indicates the outline was rendered without accordion state.
	ErrNilState = errors.New("accordion state is required")

	// ErrUnknownCategory indicates a toggle for a category that is not in the outline.
	ErrUnknownCategory = errors.New("unknown category")
)
