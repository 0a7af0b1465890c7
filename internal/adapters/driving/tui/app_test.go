package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/extractview/internal/adapters/driven/source/memory"
	"github.com/custodia-labs/extractview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/services"
)

// switchableSource serves the sample until err is set.
type switchableSource struct {
	extraction domain.Extraction
	err        error
	loads      int
}

func (s *switchableSource) Load(context.Context) (*domain.Extraction, error) {
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	e := s.extraction
	return &e, nil
}

func (s *switchableSource) Name() string { return "switchable" }

func newTestApp(t *testing.T, opts Options) (*App, *services.Viewer, *switchableSource) {
	t.Helper()
	source := &switchableSource{extraction: memory.Sample()}
	viewer := services.NewViewer(source, domain.DefaultSettings())
	require.NoError(t, viewer.Load(context.Background()))

	app, err := NewApp(NewPorts(viewer), opts)
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, viewer, source
}

// dispatch feeds msg to the app and then every message produced by the
// returned commands, until none are left.
func dispatch(app *App, msg tea.Msg) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]
		seen = append(seen, m)
		_, cmd := app.Update(m)
		queue = append(queue, collect(cmd)...)
	}
	return seen
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func allActive(t *testing.T, viewer *services.Viewer, id string) {
	t.Helper()
	elements := viewer.Coordinator().Elements(id)
	require.Len(t, elements, 2, "one element per view")
	for _, el := range elements {
		assert.True(t, el.Active, "%s element %s", el.Region, id)
	}
}

// documentPosition returns the screen cell of the first occurrence of
// text in the document pane.
func documentPosition(t *testing.T, app *App, text string) (int, int) {
	t.Helper()
	for i, line := range app.Document().Lines() {
		if col := strings.Index(line, text); col >= 0 {
			return col + paneOffsetX, i + paneOffsetY
		}
	}
	t.Fatalf("%q not found in document pane", text)
	return 0, 0
}

func TestNewApp_Success(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{})

	assert.Equal(t, messages.PaneDocument, app.Focus())
	assert.Contains(t, strings.Join(app.Document().Lines(), "\n"), "This is for our client: Acme Corp.")
	assert.Equal(t, 8, app.Outline().Rows(), "3 headers and 5 items")
	assert.Empty(t, viewer.ActiveIDs())
	assert.Equal(t, 0, app.Status().Rejected())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{}, Options{})

	assert.ErrorIs(t, err, ErrMissingViewer)
	assert.Nil(t, app)
}

func TestNewApp_NothingLoaded(t *testing.T) {
	viewer := services.NewViewer(nil, domain.DefaultSettings())

	app, err := NewApp(NewPorts(viewer), Options{})

	require.NoError(t, err)
	app.SetDimensions(80, 24)
	assert.Contains(t, app.View(), "(no document)")
}

func TestApp_WithContext(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _, _ := newTestApp(t, Options{Title: "Review"})

	assert.NotNil(t, app.Init())
}

func TestApp_View(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})

	view := app.View()

	assert.Contains(t, view, "Underwriting request")
	assert.Contains(t, view, "Extracted")
	assert.Contains(t, view, "Identifiers (3)")
	assert.Contains(t, view, "97%")
}

func TestApp_View_NotReady(t *testing.T) {
	viewer := services.NewViewer(memory.NewSampleSource(), domain.DefaultSettings())
	app, err := NewApp(NewPorts(viewer), Options{})
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})

	dispatch(app, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.Status().Width())
}

func TestApp_DocumentKeysHighlightBothViews(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{})

	dispatch(app, keyRunes("l"))

	assert.Equal(t, "qnum", app.Document().CursorID())
	allActive(t, viewer, "qnum")
	assert.Equal(t, []string{"qnum"}, app.Status().Active())

	dispatch(app, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, []string{"covg"}, viewer.ActiveIDs())

	dispatch(app, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, []string{"qnum"}, viewer.ActiveIDs())

	dispatch(app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, viewer.ActiveIDs())
	assert.Empty(t, app.Status().Active())
}

func TestApp_TabSwitchesPaneAndClears(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{})
	dispatch(app, keyRunes("l"))
	require.Equal(t, []string{"qnum"}, viewer.ActiveIDs())

	dispatch(app, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, messages.PaneOutline, app.Focus())
	assert.Equal(t, messages.PaneOutline, app.Status().Pane())
	assert.True(t, app.Outline().Focused())
	assert.False(t, app.Document().Focused())
	assert.Empty(t, viewer.ActiveIDs())

	// Returning restores the focused span.
	dispatch(app, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, []string{"qnum"}, viewer.ActiveIDs())
}

func TestApp_OutlineKeys(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{})
	dispatch(app, tea.KeyMsg{Type: tea.KeyTab})

	dispatch(app, keyRunes("j"))
	assert.Equal(t, "identifiers", app.Outline().CursorCategory())
	assert.Empty(t, viewer.ActiveIDs())

	dispatch(app, keyRunes("j"))
	assert.Equal(t, "qnum", app.Outline().CursorID())
	allActive(t, viewer, "qnum")

	dispatch(app, tea.KeyMsg{Type: tea.KeyDown})
	allActive(t, viewer, "client")

	dispatch(app, tea.KeyMsg{Type: tea.KeyUp})
	dispatch(app, tea.KeyMsg{Type: tea.KeyUp})
	assert.Empty(t, viewer.ActiveIDs(), "header rows clear the highlight")
}

func TestApp_OutlineToggle(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{})
	dispatch(app, tea.KeyMsg{Type: tea.KeyTab})
	dispatch(app, keyRunes("j"))

	dispatch(app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, viewer.Accordion().Expanded("identifiers"))
	assert.Equal(t, 5, app.Outline().Rows())
	assert.Equal(t, "identifiers", app.Outline().CursorCategory())
	assert.Contains(t, app.View(), "► Identifiers")

	dispatch(app, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.True(t, viewer.Accordion().Expanded("identifiers"))
	assert.Equal(t, 8, app.Outline().Rows())
}

func TestApp_ToggleKeepsHighlight(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{})
	dispatch(app, keyRunes("l"))

	dispatch(app, messages.CategoryToggled{Category: "identifiers"})
	dispatch(app, messages.CategoryToggled{Category: "identifiers"})

	allActive(t, viewer, "qnum")
}

func TestApp_ToggleUnknownCategory(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})

	dispatch(app, messages.CategoryToggled{Category: "nope"})

	assert.ErrorIs(t, app.Err(), domain.ErrUnknownCategory)
}

func TestApp_ClearFromOtherPaneIgnored(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{})

	dispatch(app, messages.HighlightRequested{ID: "client", Source: messages.PaneOutline})
	dispatch(app, messages.HighlightCleared{Source: messages.PaneDocument})

	assert.Equal(t, []string{"client"}, viewer.ActiveIDs())

	dispatch(app, messages.HighlightCleared{Source: messages.PaneOutline})

	assert.Empty(t, viewer.ActiveIDs())
}

func TestApp_MouseHoverDocument(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{Mouse: true})
	x, y := documentPosition(t, app, "Acme Corp.")

	dispatch(app, tea.MouseMsg{X: x + 1, Y: y, Action: tea.MouseActionMotion})

	allActive(t, viewer, "client")
	assert.Equal(t, "client", app.Document().Hovered())

	// Leading blank line of the document holds no span.
	dispatch(app, tea.MouseMsg{X: paneOffsetX, Y: paneOffsetY, Action: tea.MouseActionMotion})

	assert.Empty(t, viewer.ActiveIDs())
}

func TestApp_MouseHoverOutlineThenLeave(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{Mouse: true})
	outlineX := 60 + paneOffsetX + 3

	dispatch(app, tea.MouseMsg{X: outlineX, Y: paneOffsetY + 1, Action: tea.MouseActionMotion})
	allActive(t, viewer, "qnum")

	dispatch(app, tea.MouseMsg{X: paneOffsetX, Y: paneOffsetY, Action: tea.MouseActionMotion})
	assert.Empty(t, viewer.ActiveIDs())
	assert.Empty(t, app.Outline().Hovered())
}

func TestApp_MouseClickHeader(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{Mouse: true})
	outlineX := 60 + paneOffsetX + 1

	dispatch(app, tea.MouseMsg{
		X: outlineX, Y: paneOffsetY,
		Action: tea.MouseActionPress, Button: tea.MouseButtonLeft,
	})

	assert.Equal(t, messages.PaneOutline, app.Focus())
	assert.False(t, viewer.Accordion().Expanded("identifiers"))
}

func TestApp_MouseDisabled(t *testing.T) {
	app, viewer, _ := newTestApp(t, Options{Mouse: false})
	x, y := documentPosition(t, app, "Acme Corp.")

	dispatch(app, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})

	assert.Empty(t, viewer.ActiveIDs())
}

func TestApp_Reload(t *testing.T) {
	app, viewer, source := newTestApp(t, Options{})
	source.extraction.Annotations = source.extraction.Annotations[:2]

	dispatch(app, messages.ReloadRequested{})

	assert.Equal(t, 2, source.loads)
	assert.NoError(t, app.Err())
	assert.Equal(t, 4, app.Outline().Rows())
	assert.Equal(t, "reloaded", app.Status().Message())
	assert.Len(t, viewer.Extraction().Annotations, 2)
}

func TestApp_ReloadKey(t *testing.T) {
	app, _, source := newTestApp(t, Options{})

	dispatch(app, keyRunes("r"))

	assert.Equal(t, 2, source.loads)
}

func TestApp_ReloadFailureKeepsContent(t *testing.T) {
	app, _, source := newTestApp(t, Options{})
	source.err = errors.New("file vanished")

	dispatch(app, messages.ReloadRequested{})

	assert.ErrorContains(t, app.Err(), "file vanished")
	assert.Equal(t, 8, app.Outline().Rows())
	assert.Contains(t, app.View(), "Error: ")
}

func TestApp_HelpToggle(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})

	dispatch(app, keyRunes("?"))

	assert.True(t, app.Status().ShowingHelp())
	assert.Contains(t, app.View(), "expand/collapse")
}

func TestApp_Quit(t *testing.T) {
	app, _, _ := newTestApp(t, Options{})

	_, cmd := app.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = app.Update(messages.Quit{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
