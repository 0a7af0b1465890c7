package html

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/extractview/internal/adapters/driven/source/memory"
	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/services"
)

func renderedSample(t *testing.T) (*Page, *services.Viewer) {
	t.Helper()
	page := NewPage(domain.DefaultRenderTitle)
	viewer := services.NewViewer(memory.NewSampleSource(), domain.DefaultSettings())
	viewer.Attach(page, page)
	require.NoError(t, viewer.Load(context.Background()))
	require.NoError(t, viewer.RenderAll())
	return page, viewer
}

func TestPage_DocumentHTML(t *testing.T) {
	page, _ := renderedSample(t)

	doc := page.DocumentHTML()

	assert.Equal(t, 5, strings.Count(doc, `<span class="extracted"`))
	assert.Contains(t, doc,
		`<span class="extracted" data-id="qnum" data-method="keyword" tabindex="0">quote #1234567</span>`)
	assert.Less(t, strings.Index(doc, `data-id="qnum"`), strings.Index(doc, `data-id="covg"`))
	assert.Less(t, strings.Index(doc, `data-id="client"`), strings.Index(doc, `data-id="agent"`))
}

func TestPage_OutlineHTML(t *testing.T) {
	page, _ := renderedSample(t)

	outline := page.OutlineHTML()

	assert.Equal(t, 3, strings.Count(outline, `<li class="category"`))
	assert.Equal(t, 5, strings.Count(outline, `<li class="outline-item"`))
	assert.Contains(t, outline, `role="button" aria-expanded="true"`)
	assert.Contains(t, outline, `<span class="indicator">▼</span>Identifiers</div>`)
	assert.Contains(t, outline, `<span class="indicator">▼</span>New coverage</div>`)
	assert.Contains(t, outline, `<strong>Quote Number:</strong> {&quot;quote_numb&quot;: &quot;1234567&quot;}`)
	assert.Contains(t, outline, `<span class="confidence">97%</span>`)
	assert.NotContains(t, outline, "display:none")
}

func TestPage_ActiveClasses(t *testing.T) {
	page, viewer := renderedSample(t)

	viewer.Activate("client")

	assert.Contains(t, page.DocumentHTML(), `<span class="extracted active" data-id="client"`)
	assert.Contains(t, page.OutlineHTML(), `<li class="outline-item active" data-id="client"`)
	assert.Equal(t, 1, strings.Count(page.DocumentHTML(), "active"))
	assert.Equal(t, 1, strings.Count(page.OutlineHTML(), "active"))

	viewer.Deactivate()

	assert.NotContains(t, page.DocumentHTML(), "active")
}

func TestPage_CollapsedSection(t *testing.T) {
	page, viewer := renderedSample(t)

	_, err := viewer.ToggleCategory("update_coverage")
	require.NoError(t, err)

	outline := page.OutlineHTML()
	assert.Contains(t, outline, `aria-expanded="false"><span class="indicator">►</span>Update coverage</div><ul style="display:none">`)
	assert.Contains(t, outline, `data-id="bldg"`, "collapsed items stay in the markup")
}

func TestPage_EscapesEverything(t *testing.T) {
	e := domain.Extraction{
		Document: `a <script>alert("x")</script> & 'b'`,
		Annotations: []domain.Annotation{{
			ID:             `x"><script>`,
			Label:          "<b>L</b>",
			Text:           `<script>alert("x")</script>`,
			ExtractedValue: `<img src=x onerror=alert(1)>`,
			Start:          2,
			End:            29,
			Method:         `m'`,
			Confidence:     0.5,
			Category:       "<cat>",
		}},
	}
	page := NewPage("t")
	viewer := services.NewViewer(nil, domain.DefaultSettings())
	viewer.Attach(page, page)
	viewer.SetExtraction(&e)
	require.NoError(t, viewer.RenderAll())

	var buf bytes.Buffer
	_, err := page.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()

	body := page.DocumentHTML() + page.OutlineHTML()
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<img")
	assert.NotContains(t, body, "<b>")
	assert.Contains(t, body, `data-id="x&quot;&gt;&lt;script&gt;"`)
	assert.Contains(t, body, `data-method="m&#39;"`)
	assert.Contains(t, body, `&amp; &#39;b&#39;`)
	assert.Contains(t, body, `&lt;cat&gt;`)
	// Exactly one script element: the page's own.
	assert.Equal(t, 1, strings.Count(out, "<script>"))
}

func TestPage_WriteTo(t *testing.T) {
	page, _ := renderedSample(t)

	var buf bytes.Buffer
	n, err := page.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Underwriting request</title>")
	assert.Contains(t, out, `<div id="email-content">`)
	assert.Contains(t, out, `<ul id="extracted-list"><li class="category"`)
	assert.NotContains(t, out, `class="rejected"`)
}

func TestPage_WriteTo_Rejected(t *testing.T) {
	e := memory.Sample()
	e.Title = ""
	e.Annotations = append(e.Annotations, domain.Annotation{ID: "bad", Start: 3, End: 1})
	page := NewPage("Fallback")
	viewer := services.NewViewer(nil, domain.DefaultSettings())
	viewer.Attach(page, page)
	viewer.SetExtraction(&e)
	require.NoError(t, viewer.RenderAll())

	var buf bytes.Buffer
	_, err := page.WriteTo(&buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<title>Fallback</title>")
	assert.Contains(t, buf.String(), `<ul class="rejected">`)
	assert.Contains(t, buf.String(), "annotation &#34;bad&#34;")
}

func TestPage_EmptyPage(t *testing.T) {
	page := NewPage("Empty")

	assert.Empty(t, page.DocumentHTML())
	assert.Empty(t, page.OutlineHTML())

	var buf bytes.Buffer
	_, err := page.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "<title>Empty</title>")
}

func TestPage_RejectsNilViews(t *testing.T) {
	page := NewPage("t")

	assert.True(t, errors.Is(page.ReplaceDocument(nil), domain.ErrInvalidInput))
	assert.True(t, errors.Is(page.ReplaceOutline(nil), domain.ErrInvalidInput))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestPage_WriteTo_WriterError(t *testing.T) {
	page := NewPage("t")

	_, err := page.WriteTo(failingWriter{})

	assert.ErrorContains(t, err, "pipe closed")
}
