package domain

import (
	"fmt"
	"strings"
)

// Extraction is the sole input of the viewer: one document and the
// annotations extracted from it.
type Extraction struct {
	// Title is shown above the document view.
	Title string `json:"title,omitempty"`

	// Document is the full document text.
	Document string `json:"document"`

	// Annotations are the extracted spans in authoring order.
	Annotations []Annotation `json:"annotations"`
}

// Rejection records an annotation that was skipped and why.
type Rejection struct {
	ID  string
	Err error
}

// Error implements error.
func (r Rejection) Error() string {
	if r.ID == "" {
		return r.Err.Error()
	}
	return fmt.Sprintf("annotation %q: %v", r.ID, r.Err)
}

// Unwrap returns the underlying error.
func (r Rejection) Unwrap() error {
	return r.Err
}

// Validate splits the annotations into those that can be rendered, in
// input order, and those that must be skipped.
func (e *Extraction) Validate() ([]Annotation, []Rejection) {
	docLen := RuneLen(e.Document)
	seen := make(map[string]bool, len(e.Annotations))
	accepted := make([]Annotation, 0, len(e.Annotations))
	var rejected []Rejection

	for i := range e.Annotations {
		a := e.Annotations[i]
		if err := a.Validate(docLen); err != nil {
			rejected = append(rejected, Rejection{ID: a.ID, Err: err})
			continue
		}
		if seen[a.ID] {
			rejected = append(rejected, Rejection{ID: a.ID, Err: ErrDuplicateID})
			continue
		}
		seen[a.ID] = true
		accepted = append(accepted, a)
	}
	return accepted, rejected
}

// Slice returns the document runes in [start, end). Out-of-range bounds
// are clamped so callers never panic on malformed offsets.
func Slice(runes []rune, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// Anchor locates the first occurrence of text in the document and
// returns its rune offsets.
func Anchor(document, text string) (start, end int, err error) {
	if text == "" {
		return 0, 0, ErrTextNotFound
	}
	idx := strings.Index(document, text)
	if idx < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrTextNotFound, text)
	}
	start = RuneLen(document[:idx])
	return start, start + RuneLen(text), nil
}
