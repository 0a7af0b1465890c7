// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// It implements help.KeyMap.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full help.
	Help key.Binding

	// SwitchPane moves keyboard focus to the other pane.
	SwitchPane key.Binding

	// NextHighlight focuses the next span in the document.
	NextHighlight key.Binding

	// PrevHighlight focuses the previous span in the document.
	PrevHighlight key.Binding

	// Up moves up in the outline.
	Up key.Binding

	// Down moves down in the outline.
	Down key.Binding

	// Toggle expands or collapses the category under the cursor.
	Toggle key.Binding

	// Clear drops focus and clears the highlight.
	Clear key.Binding

	// PageUp scrolls a page up.
	PageUp key.Binding

	// PageDown scrolls a page down.
	PageDown key.Binding

	// Reload reads the input again.
	Reload key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		NextHighlight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next span"),
		),
		PrevHighlight: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev span"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "expand/collapse"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Help, k.Quit}
}

// DocumentHelp returns keybindings for the document pane.
func (k *KeyMap) DocumentHelp() []key.Binding {
	return []key.Binding{k.PrevHighlight, k.NextHighlight, k.SwitchPane, k.Help, k.Quit}
}

// OutlineHelp returns keybindings for the outline pane.
func (k *KeyMap) OutlineHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.SwitchPane, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevHighlight, k.NextHighlight, k.PageUp, k.PageDown},
		{k.Up, k.Down, k.Toggle, k.Clear},
		{k.SwitchPane, k.Reload, k.Help, k.Quit},
	}
}
