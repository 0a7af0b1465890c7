package domain

import (
	"fmt"
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// UncategorizedCategory groups annotations that carry no category.
const UncategorizedCategory = "uncategorized"

// Annotation is a single extracted span of interest within the document.
// Start and End are half-open rune offsets into the document text.
type Annotation struct {
	// ID is the unique identifier linking the document and outline views.
	ID string `json:"id"`

	// Label is the human-readable short name.
	Label string `json:"label"`

	// Text is the literal substring of the document this annotation refers to.
	Text string `json:"text"`

	// ExtractedValue is shown in the outline in place of Text when present.
	ExtractedValue string `json:"extracted_value,omitempty"`

	// Start is the first rune of the span.
	Start int `json:"start"`

	// End is one past the last rune of the span.
	End int `json:"end"`

	// Method is the extraction method tag (e.g. "keyword", "llm").
	// It is display data only.
	Method string `json:"method"`

	// Confidence is the extraction confidence in [0, 1].
	Confidence float64 `json:"confidence"`

	// Category is the outline grouping key.
	Category string `json:"category"`
}

// Validate checks the annotation against a document of docLen runes.
func (a Annotation) Validate(docLen int) error {
	if a.ID == "" {
		return ErrMissingID
	}
	if a.Start < 0 || a.End > docLen || a.Start >= a.End {
		return fmt.Errorf("%w: %s [%d, %d) in document of length %d",
			ErrInvalidSpan, a.ID, a.Start, a.End, docLen)
	}
	return nil
}

// DisplayValue returns the extracted value, falling back to the raw text.
func (a Annotation) DisplayValue() string {
	if a.ExtractedValue != "" {
		return a.ExtractedValue
	}
	return a.Text
}

// CategoryKey returns the grouping key, falling back to UncategorizedCategory.
func (a Annotation) CategoryKey() string {
	if a.Category == "" {
		return UncategorizedCategory
	}
	return a.Category
}

// ConfidencePercent returns the confidence as a rounded integer percentage.
// Float noise below 1e-6 is removed before rounding half away from zero,
// so 0.965 becomes 97 rather than 96. Out-of-range values are clamped.
func ConfidencePercent(c float64) int {
	if math.IsNaN(c) {
		return 0
	}
	c = math.Max(0, math.Min(1, c))
	pct := math.Round(c*100*1e6) / 1e6
	return int(math.Round(pct))
}

// FormatConfidence renders a confidence value as "97%".
func FormatConfidence(c float64) string {
	return strconv.Itoa(ConfidencePercent(c)) + "%"
}

// HumanizeCategory turns a category key into a display label:
// underscores become spaces and the first character is upper-cased.
func HumanizeCategory(name string) string {
	out := []rune(name)
	for i, r := range out {
		if r == '_' {
			out[i] = ' '
		}
	}
	if len(out) > 0 {
		out[0] = unicode.ToUpper(out[0])
	}
	return string(out)
}

// RuneLen returns the document length in the unit used by annotation offsets.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
