// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady State = "ready"
	StateError State = "error"
)

// Bar displays the focused pane, the highlighted annotation and
// keybinding hints. With full help toggled on it grows upwards.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	help     help.Model
	state    State
	message  string
	pane     messages.Pane
	active   []string
	rejected int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.Styles.ShortKey = s.Help
	h.Styles.ShortDesc = s.Muted
	h.Styles.FullKey = s.Help
	h.Styles.FullDesc = s.Muted

	return &Bar{
		styles: s,
		keymap: km,
		help:   h,
		state:  StateReady,
		pane:   messages.PaneDocument,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	s.help.Width = max(s.width-lipgloss.Width(left)-4, 1)
	right := s.help.ShortHelpView(s.paneBindings())

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	bar := s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
	if !s.help.ShowAll {
		return bar
	}
	s.help.Width = s.width
	return s.help.FullHelpView(s.keymap.FullHelp()) + "\n" + bar
}

// renderLeft renders the left side of the status bar.
func (s *Bar) renderLeft() string {
	if s.state == StateError {
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	}

	parts := []string{s.styles.Normal.Render(s.pane.String())}
	if len(s.active) > 0 {
		parts = append(parts, s.styles.Normal.Render("active: "+strings.Join(s.active, ", ")))
	}
	if s.rejected > 0 {
		parts = append(parts, s.styles.Warning.Render(fmt.Sprintf("%d skipped", s.rejected)))
	}
	if s.message != "" {
		parts = append(parts, s.styles.Muted.Render(s.message))
	}
	return strings.Join(parts, s.styles.Muted.Render(" │ "))
}

func (s *Bar) paneBindings() []key.Binding {
	if s.pane == messages.PaneOutline {
		return s.keymap.OutlineHelp()
	}
	return s.keymap.DocumentHelp()
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetError switches to the error state with err's message.
func (s *Bar) SetError(err error) {
	s.state = StateError
	s.message = err.Error()
}

// SetMessage sets a custom message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetPane sets the focused pane.
func (s *Bar) SetPane(pane messages.Pane) {
	s.pane = pane
}

// Pane returns the focused pane.
func (s *Bar) Pane() messages.Pane {
	return s.pane
}

// SetActive sets the highlighted annotation ids.
func (s *Bar) SetActive(ids []string) {
	s.active = ids
}

// Active returns the highlighted annotation ids.
func (s *Bar) Active() []string {
	return s.active
}

// SetRejected sets the number of skipped annotations.
func (s *Bar) SetRejected(n int) {
	s.rejected = n
}

// Rejected returns the number of skipped annotations.
func (s *Bar) Rejected() int {
	return s.rejected
}

// ToggleHelp switches between short and full help.
func (s *Bar) ToggleHelp() {
	s.help.ShowAll = !s.help.ShowAll
}

// ShowingHelp reports whether full help is shown.
func (s *Bar) ShowingHelp() bool {
	return s.help.ShowAll
}

// Height returns the number of lines View renders.
func (s *Bar) Height() int {
	return lipgloss.Height(s.View())
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.active = nil
}
