package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/views/document"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/views/outline"
	"github.com/custodia-labs/extractview/internal/logger"
)

// Pane chrome: rounded border plus one cell of horizontal padding, and a
// title line under the top border.
const (
	paneOffsetX = 2
	paneOffsetY = 2
	paneFrameW  = 4
	paneFrameH  = 3
)

// Options configures the app.
type Options struct {
	// Title is the terminal window title.
	Title string

	// Mouse enables hover and click handling.
	Mouse bool
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	opts   Options

	document *document.View
	outline  *outline.View
	status   *status.Bar

	// focus is the pane receiving keys.
	focus messages.Pane

	// activeSource is the pane whose event set the current highlight.
	// A clear from the other pane is ignored.
	activeSource messages.Pane

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width    int
	height   int
	docWidth int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates the app, attaches its panes to the viewer and renders
// the current extraction into them.
func NewApp(ports *Ports, opts Options) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	a := &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		keymap:   km,
		opts:     opts,
		document: document.NewView(s, km),
		outline:  outline.NewView(s, km),
		status:   status.NewBar(s, km),
		focus:    messages.PaneDocument,
	}
	a.document.Focus()

	ports.Viewer.Attach(a.document, a.outline)
	if ports.Viewer.Extraction() != nil {
		if err := ports.Viewer.RenderAll(); err != nil {
			return nil, fmt.Errorf("creating app: %w", err)
		}
	}
	a.status.SetRejected(len(ports.Viewer.Rejected()))

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	title := a.opts.Title
	if title == "" {
		title = "extractview"
	}
	return tea.SetWindowTitle(title)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.layout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.MouseMsg:
		return a.handleMouseMsg(msg)

	case messages.HighlightRequested:
		n := a.ports.Viewer.Activate(msg.ID)
		a.activeSource = msg.Source
		logger.Debug("highlight %q from %s: %d elements", msg.ID, msg.Source, n)
		a.status.SetActive(a.ports.Viewer.ActiveIDs())
		return a, nil

	case messages.HighlightCleared:
		if msg.Source != a.activeSource {
			return a, nil
		}
		a.ports.Viewer.Deactivate()
		a.status.SetActive(nil)
		return a, nil

	case messages.CategoryToggled:
		if _, err := a.ports.Viewer.ToggleCategory(msg.Category); err != nil {
			return a, a.fail(err)
		}
		// Items that became visible must show the current highlight.
		if ids := a.ports.Viewer.ActiveIDs(); len(ids) > 0 {
			a.ports.Viewer.Activate(ids[0])
		}
		return a, nil

	case messages.ReloadRequested:
		return a, a.reload()

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.status.SetError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.status.ToggleHelp()
		a.layout()
		return a, nil
	case key.Matches(msg, a.keymap.SwitchPane):
		return a, a.setFocus(a.focus.Other())
	case key.Matches(msg, a.keymap.Reload):
		return a, a.reload()
	}

	if a.focus == messages.PaneOutline {
		a.outline, cmd = a.outline.Update(msg)
	} else {
		a.document, cmd = a.document.Update(msg)
	}
	return a, cmd
}

// handleMouseMsg translates screen coordinates to the content area of
// the pane under the pointer.
func (a *App) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.opts.Mouse || !a.ready {
		return a, nil
	}

	pane, x0 := messages.PaneDocument, 0
	if msg.X >= a.docWidth {
		pane, x0 = messages.PaneOutline, a.docWidth
	}
	local := msg
	local.X = msg.X - x0 - paneOffsetX
	local.Y = msg.Y - paneOffsetY

	var cmds []tea.Cmd
	var cmd tea.Cmd
	if pane == messages.PaneOutline {
		cmds = append(cmds, a.document.Leave())
	} else {
		cmds = append(cmds, a.outline.Leave())
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && pane != a.focus {
		cmds = append(cmds, a.setFocus(pane))
	}

	if pane == messages.PaneOutline {
		a.outline, cmd = a.outline.Update(local)
	} else {
		a.document, cmd = a.document.Update(local)
	}
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

func (a *App) setFocus(pane messages.Pane) tea.Cmd {
	var blur, focus tea.Cmd
	if pane == messages.PaneOutline {
		blur, focus = a.document.Blur(), a.outline.Focus()
	} else {
		blur, focus = a.outline.Blur(), a.document.Focus()
	}
	a.focus = pane
	a.status.SetPane(pane)
	return tea.Batch(blur, focus)
}

// reload reads the extraction again. The previous content stays on
// screen when loading fails.
func (a *App) reload() tea.Cmd {
	if err := a.ports.Viewer.Load(a.ctx); err != nil {
		return a.fail(err)
	}
	if err := a.ports.Viewer.RenderAll(); err != nil {
		return a.fail(err)
	}
	a.err = nil
	a.status.Clear()
	a.status.SetRejected(len(a.ports.Viewer.Rejected()))
	a.status.SetMessage("reloaded")
	return nil
}

func (a *App) fail(err error) tea.Cmd {
	return func() tea.Msg {
		return messages.ErrorOccurred{Err: err}
	}
}

// layout splits the screen: document on the left, outline on the right,
// status bar below.
func (a *App) layout() {
	if !a.ready {
		return
	}
	a.status.SetWidth(a.width)
	body := max(a.height-a.status.Height(), paneFrameH+1)

	a.docWidth = a.width * 3 / 5
	outlineWidth := a.width - a.docWidth
	a.document.SetDimensions(max(a.docWidth-paneFrameW, 1), body-paneFrameH)
	a.outline.SetDimensions(max(outlineWidth-paneFrameW, 1), body-paneFrameH)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	body := max(a.height-a.status.Height(), paneFrameH+1)
	left := a.renderPane(a.document.Title(), a.document.View(), a.docWidth, body,
		a.focus == messages.PaneDocument)
	right := a.renderPane("Extracted", a.outline.View(), a.width-a.docWidth, body,
		a.focus == messages.PaneOutline)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right) + "\n" + a.status.View()
}

func (a *App) renderPane(title, content string, width, height int, focused bool) string {
	inner := max(width-paneFrameW, 1)
	title = runewidth.Truncate(title, inner, "…")
	return a.styles.PaneStyle(focused).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		MaxHeight(height).
		Render(a.styles.Title.Render(title) + "\n" + content)
}

// Run starts the TUI. Each value received on changes reloads the
// extraction; changes may be nil.
func (a *App) Run(changes <-chan struct{}) error {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}
	if a.opts.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(a, opts...)

	if changes != nil {
		go func() {
			for range changes {
				p.Send(messages.ReloadRequested{})
			}
		}()
	}

	_, err := p.Run()
	return err
}

// Focus returns the pane receiving keys.
func (a *App) Focus() messages.Pane {
	return a.focus
}

// Document returns the document pane.
func (a *App) Document() *document.View {
	return a.document
}

// Outline returns the outline pane.
func (a *App) Outline() *outline.View {
	return a.outline
}

// Status returns the status bar.
func (a *App) Status() *status.Bar {
	return a.status
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.layout()
}
