// Package document provides the document pane: the document text with
// its extracted spans highlighted.
package document

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
)

// Ensure View implements the surface.
var _ driven.DocumentSurface = (*View)(nil)

const (
	minWrapWidth = 10
	wheelLines   = 3
)

var whitespace = strings.NewReplacer("\t", "    ", "\r", "")

// segment is a run of text on one wrapped line.
type segment struct {
	text string
	elem int // index into View.elements, -1 for plain text
}

// hitBox is the screen extent of a span on one wrapped line.
type hitBox struct {
	elem       int
	line       int
	start, end int // cell columns, half-open
}

// View is the document pane.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	viewport viewport.Model

	doc      *domain.DocumentView
	elements []*domain.Element
	lines    [][]segment
	boxes    []hitBox

	cursor  int // focused element, -1 when none
	hovered string
	focused bool
}

// NewView creates a new document pane.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		viewport: viewport.New(0, 0),
		cursor:   -1,
	}
}

// ReplaceDocument implements driven.DocumentSurface.
func (v *View) ReplaceDocument(view *domain.DocumentView) error {
	if view == nil {
		return fmt.Errorf("document view: %w", domain.ErrInvalidInput)
	}
	focused := v.CursorID()
	v.doc = view
	v.elements = view.Elements()
	v.cursor = v.findElement(focused)
	v.hovered = ""
	v.wrap()
	return nil
}

// findElement returns the index of the first element tagged id, or -1.
func (v *View) findElement(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range v.elements {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the document pane. Mouse coordinates are
// relative to the pane's content area.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	case tea.MouseMsg:
		return v.handleMouseMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.NextHighlight):
		return v, v.moveCursor(1)
	case key.Matches(msg, v.keymap.PrevHighlight):
		return v, v.moveCursor(-1)
	case key.Matches(msg, v.keymap.Clear):
		if v.cursor < 0 {
			return v, nil
		}
		v.cursor = -1
		return v, messages.ClearHighlight(messages.PaneDocument)
	case key.Matches(msg, v.keymap.Up):
		v.viewport.SetYOffset(v.viewport.YOffset - 1)
	case key.Matches(msg, v.keymap.Down):
		v.viewport.SetYOffset(v.viewport.YOffset + 1)
	case key.Matches(msg, v.keymap.PageUp):
		v.viewport.SetYOffset(v.viewport.YOffset - v.viewport.Height)
	case key.Matches(msg, v.keymap.PageDown):
		v.viewport.SetYOffset(v.viewport.YOffset + v.viewport.Height)
	}
	return v, nil
}

func (v *View) handleMouseMsg(msg tea.MouseMsg) (*View, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.viewport.SetYOffset(v.viewport.YOffset - wheelLines)
		return v, nil
	case msg.Button == tea.MouseButtonWheelDown:
		v.viewport.SetYOffset(v.viewport.YOffset + wheelLines)
		return v, nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		elem := v.elementAt(msg.X, msg.Y)
		if elem < 0 {
			return v, nil
		}
		v.cursor = elem
		v.hovered = v.elements[elem].ID
		return v, messages.RequestHighlight(v.hovered, messages.PaneDocument)
	case msg.Action == tea.MouseActionMotion:
		id := ""
		if elem := v.elementAt(msg.X, msg.Y); elem >= 0 {
			id = v.elements[elem].ID
		}
		if id == v.hovered {
			return v, nil
		}
		v.hovered = id
		if id == "" {
			return v, messages.ClearHighlight(messages.PaneDocument)
		}
		return v, messages.RequestHighlight(id, messages.PaneDocument)
	}
	return v, nil
}

// moveCursor focuses the next or previous span, stopping at either end.
func (v *View) moveCursor(delta int) tea.Cmd {
	if len(v.elements) == 0 {
		return nil
	}
	switch {
	case v.cursor < 0 && delta > 0:
		v.cursor = 0
	case v.cursor < 0:
		v.cursor = len(v.elements) - 1
	default:
		v.cursor = max(0, min(len(v.elements)-1, v.cursor+delta))
	}
	v.ensureVisible()
	return messages.RequestHighlight(v.elements[v.cursor].ID, messages.PaneDocument)
}

// ensureVisible scrolls so the first line of the focused span is shown.
func (v *View) ensureVisible() {
	for _, b := range v.boxes {
		if b.elem != v.cursor {
			continue
		}
		switch {
		case b.line < v.viewport.YOffset:
			v.viewport.SetYOffset(b.line)
		case b.line >= v.viewport.YOffset+v.viewport.Height:
			v.viewport.SetYOffset(b.line - v.viewport.Height + 1)
		}
		return
	}
}

// elementAt returns the span under content cell (x, y), or -1.
func (v *View) elementAt(x, y int) int {
	if y < 0 || y >= v.viewport.Height || x < 0 {
		return -1
	}
	line := v.viewport.YOffset + y
	for _, b := range v.boxes {
		if b.line == line && x >= b.start && x < b.end {
			return b.elem
		}
	}
	return -1
}

// wrap lays the fragments out on lines of the pane width and rebuilds
// the hit boxes. Control sequences in the document are stripped.
func (v *View) wrap() {
	v.lines = nil
	v.boxes = nil
	if v.doc == nil {
		v.viewport.SetContent("")
		return
	}

	width := max(v.viewport.Width, minWrapWidth)
	var line []segment
	var cur strings.Builder
	col := 0
	elem := -1

	flush := func() {
		if cur.Len() > 0 {
			line = append(line, segment{text: cur.String(), elem: elem})
			cur.Reset()
		}
	}
	newline := func() {
		flush()
		v.lines = append(v.lines, line)
		line = nil
		col = 0
	}

	next := 0
	for i := range v.doc.Fragments {
		f := v.doc.Fragments[i]
		elem = -1
		if f.Kind == domain.FragmentHighlight && f.Element != nil {
			elem = next
			next++
		}
		for _, r := range whitespace.Replace(ansi.Strip(f.Text)) {
			if r == '\n' {
				newline()
				continue
			}
			w := runewidth.RuneWidth(r)
			if col+w > width {
				newline()
			}
			cur.WriteRune(r)
			col += w
		}
		flush()
	}
	flush()
	v.lines = append(v.lines, line)

	for n, segs := range v.lines {
		col := 0
		for _, s := range segs {
			w := runewidth.StringWidth(s.text)
			if s.elem >= 0 {
				v.boxes = append(v.boxes, hitBox{elem: s.elem, line: n, start: col, end: col + w})
			}
			col += w
		}
	}

	v.viewport.SetContent(v.render())
}

func (v *View) render() string {
	var b strings.Builder
	for i, segs := range v.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, s := range segs {
			b.WriteString(v.styleFor(s.elem).Render(s.text))
		}
	}
	return b.String()
}

func (v *View) styleFor(elem int) lipgloss.Style {
	if elem < 0 {
		return v.styles.Normal
	}
	style := v.styles.Extracted
	if v.elements[elem].Active {
		style = v.styles.Active
	}
	if v.focused && elem == v.cursor {
		style = style.Inherit(v.styles.Cursor)
	}
	return style
}

// View renders the document pane. Active flags are read at render time.
func (v *View) View() string {
	if v.doc == nil {
		return v.styles.Muted.Render("(no document)")
	}
	v.viewport.SetContent(v.render())
	return v.viewport.View()
}

// Focus gives the pane keyboard focus and re-requests the focused span.
func (v *View) Focus() tea.Cmd {
	v.focused = true
	if v.cursor < 0 {
		return nil
	}
	return messages.RequestHighlight(v.elements[v.cursor].ID, messages.PaneDocument)
}

// Blur removes keyboard focus.
func (v *View) Blur() tea.Cmd {
	v.focused = false
	if v.cursor < 0 {
		return nil
	}
	return messages.ClearHighlight(messages.PaneDocument)
}

// Leave is called when the pointer moves out of the pane.
func (v *View) Leave() tea.Cmd {
	if v.hovered == "" {
		return nil
	}
	v.hovered = ""
	return messages.ClearHighlight(messages.PaneDocument)
}

// SetDimensions sets the content area size and re-wraps the document.
func (v *View) SetDimensions(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height
	v.wrap()
}

// Title returns the document title.
func (v *View) Title() string {
	if v.doc == nil || v.doc.Title == "" {
		return "Document"
	}
	return v.doc.Title
}

// Focused reports whether the pane has keyboard focus.
func (v *View) Focused() bool {
	return v.focused
}

// CursorID returns the id of the focused span, or "".
func (v *View) CursorID() string {
	if v.cursor < 0 {
		return ""
	}
	return v.elements[v.cursor].ID
}

// Hovered returns the id under the pointer, or "".
func (v *View) Hovered() string {
	return v.hovered
}

// YOffset returns the scroll position.
func (v *View) YOffset() int {
	return v.viewport.YOffset
}

// Lines returns the wrapped plain text lines.
func (v *View) Lines() []string {
	out := make([]string, len(v.lines))
	for i, segs := range v.lines {
		var b strings.Builder
		for _, s := range segs {
			b.WriteString(s.text)
		}
		out[i] = b.String()
	}
	return out
}

// SpanAt returns the id of the span under content cell (x, y), or "".
func (v *View) SpanAt(x, y int) string {
	if elem := v.elementAt(x, y); elem >= 0 {
		return v.elements[elem].ID
	}
	return ""
}
