// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import tea "github.com/charmbracelet/bubbletea"

// Pane identifies one of the two linked panes.
type Pane int

const (
	// PaneDocument shows the document with its highlighted spans.
	PaneDocument Pane = iota
	// PaneOutline shows the annotations grouped by category.
	PaneOutline
)

// String returns the string representation of the pane.
func (p Pane) String() string {
	switch p {
	case PaneDocument:
		return "document"
	case PaneOutline:
		return "outline"
	default:
		return "unknown"
	}
}

// Other returns the pane that is not p.
func (p Pane) Other() Pane {
	if p == PaneDocument {
		return PaneOutline
	}
	return PaneDocument
}

// HighlightRequested is sent when a highlight or outline item gains
// focus or is hovered.
type HighlightRequested struct {
	ID     string
	Source Pane
}

// HighlightCleared is sent when focus or hover leaves an element.
type HighlightCleared struct {
	Source Pane
}

// CategoryToggled is sent when an outline header is activated.
type CategoryToggled struct {
	Category string
}

// ReloadRequested asks the app to reload the extraction from its source.
type ReloadRequested struct{}

// ErrorOccurred is sent when an error occurs.
type ErrorOccurred struct {
	Err error
}

// Quit signals that the application should exit.
type Quit struct{}

// RequestHighlight returns a command emitting HighlightRequested.
func RequestHighlight(id string, source Pane) tea.Cmd {
	return func() tea.Msg {
		return HighlightRequested{ID: id, Source: source}
	}
}

// ClearHighlight returns a command emitting HighlightCleared.
func ClearHighlight(source Pane) tea.Cmd {
	return func() tea.Msg {
		return HighlightCleared{Source: source}
	}
}

// ToggleCategory returns a command emitting CategoryToggled.
func ToggleCategory(category string) tea.Cmd {
	return func() tea.Msg {
		return CategoryToggled{Category: category}
	}
}
