// Package html renders the document and outline views as HTML.
//
// Markup is produced on demand from the last views handed to the surface,
// so highlights activated after rendering show up in the output.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
	"github.com/custodia-labs/extractview/internal/markup"
)

// Ensure Page implements both surfaces.
var (
	_ driven.DocumentSurface = (*Page)(nil)
	_ driven.OutlineSurface  = (*Page)(nil)
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// pageData holds the data passed to the page template.
type pageData struct {
	Title    string
	Document template.HTML
	Outline  template.HTML
	Rejected []string
}

// Page is an HTML display surface for both views.
type Page struct {
	mu       sync.Mutex
	title    string
	document *domain.DocumentView
	outline  *domain.OutlineView
}

// NewPage creates an empty page. title is used when the document view
// carries none.
func NewPage(title string) *Page {
	return &Page{title: title}
}

// ReplaceDocument implements driven.DocumentSurface.
func (p *Page) ReplaceDocument(view *domain.DocumentView) error {
	if view == nil {
		return fmt.Errorf("document view: %w", domain.ErrInvalidInput)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.document = view
	return nil
}

// ReplaceOutline implements driven.OutlineSurface.
func (p *Page) ReplaceOutline(view *domain.OutlineView) error {
	if view == nil {
		return fmt.Errorf("outline view: %w", domain.ErrInvalidInput)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outline = view
	return nil
}

// DocumentHTML returns the markup of the document region.
func (p *Page) DocumentHTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return documentMarkup(p.document)
}

// OutlineHTML returns the markup of the outline region.
func (p *Page) OutlineHTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return outlineMarkup(p.outline)
}

// WriteTo writes a standalone HTML page. It implements io.WriterTo.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	p.mu.Lock()
	data := pageData{
		Title:    p.title,
		Document: template.HTML(documentMarkup(p.document)), //nolint:gosec // escaped by markup.Escape
		Outline:  template.HTML(outlineMarkup(p.outline)),   //nolint:gosec // escaped by markup.Escape
	}
	if p.document != nil {
		if p.document.Title != "" {
			data.Title = p.document.Title
		}
		for _, r := range p.document.Rejected {
			data.Rejected = append(data.Rejected, r.Error())
		}
	}
	p.mu.Unlock()

	cw := &countingWriter{w: w}
	if err := pageTemplate.Execute(cw, data); err != nil {
		return cw.n, fmt.Errorf("executing page template: %w", err)
	}
	return cw.n, nil
}

func documentMarkup(view *domain.DocumentView) string {
	if view == nil {
		return ""
	}
	var b strings.Builder
	for i := range view.Fragments {
		f := view.Fragments[i]
		if f.Kind != domain.FragmentHighlight || f.Element == nil {
			b.WriteString(markup.Escape(f.Text))
			continue
		}
		fmt.Fprintf(&b, `<span class="%s" data-id="%s" data-method="%s" tabindex="0">%s</span>`,
			className("extracted", f.Element.Active),
			markup.Escape(f.Element.ID),
			markup.Escape(f.Element.Method),
			markup.Escape(f.Text))
	}
	return b.String()
}

func outlineMarkup(view *domain.OutlineView) string {
	if view == nil {
		return ""
	}
	var b strings.Builder
	for i := range view.Sections {
		s := view.Sections[i]
		fmt.Fprintf(&b, `<li class="category" data-category="%s">`, markup.Escape(s.Category))
		fmt.Fprintf(&b, `<div class="accordion-header" tabindex="0" role="button" aria-expanded="%t">`, s.Expanded)
		fmt.Fprintf(&b, `<span class="indicator">%s</span>%s</div>`, s.Indicator, markup.Escape(s.Label))
		if s.Expanded {
			b.WriteString(`<ul>`)
		} else {
			b.WriteString(`<ul style="display:none">`)
		}
		for j := range s.Items {
			item := s.Items[j]
			fmt.Fprintf(&b, `<li class="%s" data-id="%s" data-method="%s" tabindex="0">`,
				className("outline-item", item.Element.Active),
				markup.Escape(item.Element.ID),
				markup.Escape(item.Element.Method))
			fmt.Fprintf(&b, `<strong>%s:</strong> %s <br><span class="confidence">%s</span></li>`,
				markup.Escape(item.Label),
				markup.Escape(item.Value),
				markup.Escape(item.Confidence))
		}
		b.WriteString(`</ul></li>`)
	}
	return b.String()
}

func className(base string, active bool) string {
	if active {
		return base + " active"
	}
	return base
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
