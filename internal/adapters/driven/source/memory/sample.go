// Package memory provides an in-memory extraction source.
// The sample is the insurance e-mail used to demonstrate linked highlighting.
package memory

import (
	"context"

	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ExtractionSource = (*Source)(nil)

// SampleDocument is the e-mail shown when no input file is given.
const SampleDocument = `
Hello Underwriting Team,

Could you please update quote #1234567 to include cyber liability coverage and increase the building limit to $1,000,000?

This is for our client: Acme Corp.

Let me know if you have any questions.

Best,
Agent Smith
`

// Source serves a fixed extraction.
type Source struct {
	name       string
	extraction domain.Extraction
}

// NewSource wraps an extraction. The extraction is copied on every Load.
func NewSource(name string, e domain.Extraction) *Source {
	return &Source{name: name, extraction: e}
}

// NewSampleSource returns the built-in e-mail sample.
func NewSampleSource() *Source {
	return NewSource("sample", Sample())
}

// Load returns a copy of the extraction.
func (s *Source) Load(ctx context.Context) (*domain.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e := s.extraction
	e.Annotations = append([]domain.Annotation(nil), s.extraction.Annotations...)
	return &e, nil
}

// Name returns the source name.
func (s *Source) Name() string {
	return s.name
}

// Sample returns the e-mail extraction with its five annotations.
func Sample() domain.Extraction {
	anchored := func(a domain.Annotation) domain.Annotation {
		start, end, err := domain.Anchor(SampleDocument, a.Text)
		if err != nil {
			panic(err) // sample text is fixed
		}
		a.Start, a.End = start, end
		return a
	}

	return domain.Extraction{
		Title:    "Underwriting request",
		Document: SampleDocument,
		Annotations: []domain.Annotation{
			anchored(domain.Annotation{
				ID:             "qnum",
				Label:          "Quote Number",
				Text:           "quote #1234567",
				ExtractedValue: `{"quote_numb": "1234567"}`,
				Method:         "keyword",
				Confidence:     0.97,
				Category:       "identifiers",
			}),
			anchored(domain.Annotation{
				ID:             "covg",
				Label:          "Coverage Add",
				Text:           "include cyber liability coverage",
				ExtractedValue: `{"coverage": "cyber liability"}`,
				Method:         "llm",
				Confidence:     0.92,
				Category:       "new_coverage",
			}),
			anchored(domain.Annotation{
				ID:             "bldg",
				Label:          "Building Limit",
				Text:           "increase the building limit to $1,000,000",
				ExtractedValue: `{"building_limit": 1000000}`,
				Method:         "llm",
				Confidence:     0.91,
				Category:       "update_coverage",
			}),
			anchored(domain.Annotation{
				ID:             "client",
				Label:          "Client Name",
				Text:           "Acme Corp.",
				ExtractedValue: `{"insured_name": "Acme Corp."}`,
				Method:         "llm",
				Confidence:     0.89,
				Category:       "identifiers",
			}),
			anchored(domain.Annotation{
				ID:             "agent",
				Label:          "Agent Name",
				Text:           "Agent Smith",
				ExtractedValue: `{"agent_name": "Agent Smith"}`,
				Method:         "keyword",
				Confidence:     0.99,
				Category:       "identifiers",
			}),
		},
	}
}
