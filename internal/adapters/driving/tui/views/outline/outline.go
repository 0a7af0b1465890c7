// Package outline provides the outline pane: annotations grouped by
// category under collapsible headers.
package outline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
)

// Ensure View implements the surface.
var _ driven.OutlineSurface = (*View)(nil)

const wheelLines = 3

type rowKind int

const (
	rowHeader rowKind = iota
	rowItem
)

// row is one screen line of the outline.
type row struct {
	kind    rowKind
	section int
	item    int
}

// View is the outline pane.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	outline *domain.OutlineView
	rows    []row

	cursor       int // row index, -1 when none
	scrollOffset int
	hovered      string
	focused      bool
	width        int
	height       int
}

// NewView creates a new outline pane.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, cursor: -1}
}

// ReplaceOutline implements driven.OutlineSurface. The cursor stays on
// the same header or item when it is still visible.
func (v *View) ReplaceOutline(view *domain.OutlineView) error {
	if view == nil {
		return fmt.Errorf("outline view: %w", domain.ErrInvalidInput)
	}

	category, id := v.CursorCategory(), v.CursorID()
	v.outline = view
	v.rows = v.rows[:0]
	for i := range view.Sections {
		v.rows = append(v.rows, row{kind: rowHeader, section: i})
		if !view.Sections[i].Expanded {
			continue
		}
		for j := range view.Sections[i].Items {
			v.rows = append(v.rows, row{kind: rowItem, section: i, item: j})
		}
	}

	v.cursor = v.findRow(category, id)
	v.hovered = ""
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
	return nil
}

// findRow locates the row for an item id, falling back to the header of
// category. Returns -1 when neither is present.
func (v *View) findRow(category, id string) int {
	if category == "" {
		return -1
	}
	header := -1
	for i, r := range v.rows {
		s := v.outline.Sections[r.section]
		if s.Category != category {
			continue
		}
		if r.kind == rowHeader {
			header = i
			if id == "" {
				return i
			}
			continue
		}
		if s.Items[r.item].Element.ID == id {
			return i
		}
	}
	return header
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the outline pane. Mouse coordinates are
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
	case key.Matches(msg, v.keymap.Up):
		return v, v.moveCursor(-1)
	case key.Matches(msg, v.keymap.Down):
		return v, v.moveCursor(1)
	case key.Matches(msg, v.keymap.PageUp):
		return v, v.moveCursor(-v.visibleLines())
	case key.Matches(msg, v.keymap.PageDown):
		return v, v.moveCursor(v.visibleLines())
	case key.Matches(msg, v.keymap.Toggle):
		if r, ok := v.cursorRow(); ok && r.kind == rowHeader {
			return v, messages.ToggleCategory(v.outline.Sections[r.section].Category)
		}
	case key.Matches(msg, v.keymap.Clear):
		if v.cursor < 0 {
			return v, nil
		}
		v.cursor = -1
		return v, messages.ClearHighlight(messages.PaneOutline)
	}
	return v, nil
}

func (v *View) handleMouseMsg(msg tea.MouseMsg) (*View, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		v.scrollOffset = max(0, v.scrollOffset-wheelLines)
		return v, nil
	case msg.Button == tea.MouseButtonWheelDown:
		v.scrollOffset = min(v.maxScrollOffset(), v.scrollOffset+wheelLines)
		return v, nil
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		i := v.rowAt(msg.Y)
		if i < 0 {
			return v, nil
		}
		v.cursor = i
		r := v.rows[i]
		if r.kind == rowHeader {
			return v, messages.ToggleCategory(v.outline.Sections[r.section].Category)
		}
		v.hovered = v.itemID(r)
		return v, messages.RequestHighlight(v.hovered, messages.PaneOutline)
	case msg.Action == tea.MouseActionMotion:
		id := ""
		if i := v.rowAt(msg.Y); i >= 0 && v.rows[i].kind == rowItem {
			id = v.itemID(v.rows[i])
		}
		if id == v.hovered {
			return v, nil
		}
		v.hovered = id
		if id == "" {
			return v, messages.ClearHighlight(messages.PaneOutline)
		}
		return v, messages.RequestHighlight(id, messages.PaneOutline)
	}
	return v, nil
}

// moveCursor moves by delta rows and reports the new row: an item
// requests its highlight, a header clears it.
func (v *View) moveCursor(delta int) tea.Cmd {
	if len(v.rows) == 0 {
		return nil
	}
	if v.cursor < 0 {
		v.cursor = 0
	} else {
		v.cursor = max(0, min(len(v.rows)-1, v.cursor+delta))
	}
	v.ensureVisible()

	r := v.rows[v.cursor]
	if r.kind == rowHeader {
		return messages.ClearHighlight(messages.PaneOutline)
	}
	return messages.RequestHighlight(v.itemID(r), messages.PaneOutline)
}

func (v *View) ensureVisible() {
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+v.visibleLines() {
		v.scrollOffset = v.cursor - v.visibleLines() + 1
	}
}

func (v *View) rowAt(y int) int {
	if y < 0 || y >= v.visibleLines() {
		return -1
	}
	i := v.scrollOffset + y
	if i >= len(v.rows) {
		return -1
	}
	return i
}

func (v *View) itemID(r row) string {
	return v.outline.Sections[r.section].Items[r.item].Element.ID
}

func (v *View) cursorRow() (row, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) {
		return row{}, false
	}
	return v.rows[v.cursor], true
}

// visibleLines returns the number of rows that can be displayed.
func (v *View) visibleLines() int {
	return max(v.height, 1)
}

// maxScrollOffset returns the maximum scroll offset.
func (v *View) maxScrollOffset() int {
	return max(len(v.rows)-v.visibleLines(), 0)
}

// View renders the outline pane. Active flags are read at render time.
func (v *View) View() string {
	if v.outline == nil || len(v.outline.Sections) == 0 {
		return v.styles.Muted.Render("(no annotations)")
	}

	var b strings.Builder
	end := min(len(v.rows), v.scrollOffset+v.visibleLines())
	for i := v.scrollOffset; i < end; i++ {
		if i > v.scrollOffset {
			b.WriteByte('\n')
		}
		b.WriteString(v.renderRow(i))
	}
	return b.String()
}

func (v *View) renderRow(i int) string {
	r := v.rows[i]
	s := v.outline.Sections[r.section]
	marker := "  "
	if v.focused && i == v.cursor {
		marker = v.styles.Title.Render("›") + " "
	}
	width := max(v.width-2, 1)

	if r.kind == rowHeader {
		text := fmt.Sprintf("%s %s (%d)", s.Indicator, clean(s.Label), len(s.Items))
		return marker + v.styles.Header.Render(runewidth.Truncate(text, width, "…"))
	}

	item := s.Items[r.item]
	style := v.styles.Normal
	if item.Element.Active {
		style = v.styles.Active
	}
	if v.focused && i == v.cursor {
		style = style.Inherit(v.styles.Cursor)
	}

	confidence := " " + item.Confidence
	main := runewidth.Truncate(
		fmt.Sprintf("  %s: %s", clean(item.Label), clean(item.Value)),
		max(width-runewidth.StringWidth(confidence), 1), "…")
	return marker + style.Render(main) + v.styles.Confidence.Render(confidence)
}

// clean strips control sequences and folds newlines so a value stays on
// one row.
func clean(s string) string {
	return strings.Join(strings.Fields(ansi.Strip(s)), " ")
}

// Focus gives the pane keyboard focus and re-requests the item under
// the cursor.
func (v *View) Focus() tea.Cmd {
	v.focused = true
	if r, ok := v.cursorRow(); ok && r.kind == rowItem {
		return messages.RequestHighlight(v.itemID(r), messages.PaneOutline)
	}
	return nil
}

// Blur removes keyboard focus.
func (v *View) Blur() tea.Cmd {
	v.focused = false
	if r, ok := v.cursorRow(); ok && r.kind == rowItem {
		return messages.ClearHighlight(messages.PaneOutline)
	}
	return nil
}

// Leave is called when the pointer moves out of the pane.
func (v *View) Leave() tea.Cmd {
	if v.hovered == "" {
		return nil
	}
	v.hovered = ""
	return messages.ClearHighlight(messages.PaneOutline)
}

// SetDimensions sets the content area size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

// Focused reports whether the pane has keyboard focus.
func (v *View) Focused() bool {
	return v.focused
}

// Rows returns the number of visible rows, headers included.
func (v *View) Rows() int {
	return len(v.rows)
}

// Cursor returns the cursor row, or -1.
func (v *View) Cursor() int {
	return v.cursor
}

// CursorID returns the item id under the cursor, or "" on a header.
func (v *View) CursorID() string {
	if r, ok := v.cursorRow(); ok && r.kind == rowItem {
		return v.itemID(r)
	}
	return ""
}

// CursorCategory returns the category of the cursor row, or "".
func (v *View) CursorCategory() string {
	if r, ok := v.cursorRow(); ok {
		return v.outline.Sections[r.section].Category
	}
	return ""
}

// Hovered returns the item id under the pointer, or "".
func (v *View) Hovered() string {
	return v.hovered
}

// ScrollOffset returns the first displayed row.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
