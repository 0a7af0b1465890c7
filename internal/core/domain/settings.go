package domain

// Configuration keys understood by the config store.
const (
	// SettingInputPath is the extraction file loaded when none is given.
	SettingInputPath = "input.path"

	// SettingOutlineExpanded is the initial state of new outline categories.
	SettingOutlineExpanded = "outline.expanded"

	// SettingTUIMouse enables pointer hover in the terminal viewer.
	SettingTUIMouse = "tui.mouse"

	// SettingTUIWatch reloads the input file when it changes.
	SettingTUIWatch = "tui.watch"

	// SettingRenderTitle is the page title used by the HTML renderer.
	SettingRenderTitle = "render.title"

	// SettingOutlineCollapsed lists categories that start collapsed.
	SettingOutlineCollapsed = "outline.collapsed"
)

// DefaultRenderTitle is used when neither the input nor the config names a title.
const DefaultRenderTitle = "Extraction Viewer"

// Settings are the user-facing options of the viewer.
type Settings struct {
	// InputPath is the extraction file; empty selects the built-in sample.
	InputPath string

	// OutlineExpanded is the initial state of categories.
	OutlineExpanded bool

	// Collapsed lists categories that start collapsed regardless of OutlineExpanded.
	Collapsed []string

	// Mouse enables pointer hover and click in the terminal viewer.
	Mouse bool

	// Watch reloads the input when the file changes.
	Watch bool

	// RenderTitle is the HTML page title.
	RenderTitle string
}

// DefaultSettings returns the settings used without a config file.
func DefaultSettings() Settings {
	return Settings{
		OutlineExpanded: true,
		Mouse:           true,
		RenderTitle:     DefaultRenderTitle,
	}
}
