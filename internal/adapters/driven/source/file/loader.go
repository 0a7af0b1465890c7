// Package file loads extractions from JSON, TOML or YAML files and
// watches them for changes.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
	"github.com/custodia-labs/extractview/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.ExtractionSource = (*Source)(nil)

// ErrUnsupportedFormat is returned for file extensions other than
// .json, .toml, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported extraction format")

// Format is an input file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat maps a file extension to a format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// rawExtraction mirrors the file layout. Offsets are pointers so a
// missing offset can be told apart from zero.
type rawExtraction struct {
	Title       string          `json:"title" toml:"title" yaml:"title"`
	Document    string          `json:"document" toml:"document" yaml:"document"`
	Annotations []rawAnnotation `json:"annotations" toml:"annotations" yaml:"annotations"`
}

type rawAnnotation struct {
	ID             string  `json:"id" toml:"id" yaml:"id"`
	Label          string  `json:"label" toml:"label" yaml:"label"`
	Text           string  `json:"text" toml:"text" yaml:"text"`
	ExtractedValue string  `json:"extracted_value" toml:"extracted_value" yaml:"extracted_value"`
	Start          *int    `json:"start" toml:"start" yaml:"start"`
	End            *int    `json:"end" toml:"end" yaml:"end"`
	Method         string  `json:"method" toml:"method" yaml:"method"`
	Confidence     float64 `json:"confidence" toml:"confidence" yaml:"confidence"`
	Category       string  `json:"category" toml:"category" yaml:"category"`
}

// Source reads an extraction from a file on every Load.
type Source struct {
	path string
}

// NewSource creates a source for path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Name returns the file path.
func (s *Source) Name() string {
	return s.path
}

// Path returns the file path.
func (s *Source) Path() string {
	return s.path
}

// Load reads and decodes the file.
func (s *Source) Load(ctx context.Context) (*domain.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := DetectFormat(s.path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	return Decode(data, format)
}

// Decode parses data in the given format. Annotations without offsets
// are anchored to the first occurrence of their text; annotations
// without an id get a generated one.
func Decode(data []byte, format Format) (*domain.Extraction, error) {
	var raw rawExtraction
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	e := &domain.Extraction{
		Title:       raw.Title,
		Document:    raw.Document,
		Annotations: make([]domain.Annotation, 0, len(raw.Annotations)),
	}
	for i, ra := range raw.Annotations {
		a := domain.Annotation{
			ID:             ra.ID,
			Label:          ra.Label,
			Text:           ra.Text,
			ExtractedValue: ra.ExtractedValue,
			Method:         ra.Method,
			Confidence:     ra.Confidence,
			Category:       ra.Category,
		}
		if a.ID == "" {
			a.ID = uuid.New().String()
			logger.Debug("annotation %d has no id, using %s", i, a.ID)
		}

		switch {
		case ra.Start != nil && ra.End != nil:
			a.Start, a.End = *ra.Start, *ra.End
		case ra.Start == nil && ra.End == nil:
			start, end, err := domain.Anchor(e.Document, a.Text)
			if err != nil {
				return nil, fmt.Errorf("anchoring annotation %q: %w", a.ID, err)
			}
			a.Start, a.End = start, end
		default:
			return nil, fmt.Errorf("annotation %q: start and end must both be set: %w",
				a.ID, domain.ErrInvalidSpan)
		}

		e.Annotations = append(e.Annotations, a)
	}
	return e, nil
}
