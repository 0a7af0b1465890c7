package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/extractview/internal/core/domain"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
	assert.Equal(t, "set <key> <value>", settingsSetCmd.Use)
}

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	out, _, err := execute(t, "settings", "--config", t.TempDir())

	require.NoError(t, err)
	assert.Contains(t, out, "(built-in sample)")
	assert.Contains(t, out, domain.DefaultRenderTitle)
}

func TestSettingsCmd_SetThenShow(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "settings", "set", "tui.mouse", "false", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Set tui.mouse to false")
	assert.FileExists(t, filepath.Join(dir, "config.toml"))

	_, _, err = execute(t, "settings", "set", "outline.collapsed", "misc, identifiers", "--config", dir)
	require.NoError(t, err)

	out, _, err = execute(t, "settings", "show", "--config", dir)
	require.NoError(t, err)
	assert.Regexp(t, `tui\.mouse\s+false`, out)
	assert.Contains(t, out, "misc, identifiers")
}

func TestSettingsCmd_SetErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"nope", "x"}},
		{"bad bool", []string{"tui.watch", "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"settings", "set"}, tt.args...)
			_, _, err := execute(t, append(args, "--config", t.TempDir())...)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsCmd_InputPathUsedByRender(t *testing.T) {
	dir := t.TempDir()
	fixture := writeFixture(t)

	_, _, err := execute(t, "settings", "set", "input.path", fixture, "--config", dir)
	require.NoError(t, err)

	out, _, err := execute(t, "render", "--config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `data-id="q"`)
}

func TestSettingsCmd_CollapsedUsedByRender(t *testing.T) {
	dir := t.TempDir()
	fixture := writeFixture(t)

	_, _, err := execute(t, "settings", "set", "outline.expanded", "false", "--config", dir)
	require.NoError(t, err)

	out, _, err := execute(t, "render", "--config", dir, fixture)
	require.NoError(t, err)
	assert.Contains(t, out, `aria-expanded="false"`)
	assert.NotContains(t, out, `aria-expanded="true"`)
}

func TestApplySetting(t *testing.T) {
	s := domain.DefaultSettings()

	require.NoError(t, applySetting(&s, domain.SettingInputPath, "in.json"))
	require.NoError(t, applySetting(&s, domain.SettingOutlineExpanded, "false"))
	require.NoError(t, applySetting(&s, domain.SettingOutlineCollapsed, " a,,b "))
	require.NoError(t, applySetting(&s, domain.SettingTUIMouse, "0"))
	require.NoError(t, applySetting(&s, domain.SettingTUIWatch, "true"))
	require.NoError(t, applySetting(&s, domain.SettingRenderTitle, "Review"))

	assert.Equal(t, domain.Settings{
		InputPath:       "in.json",
		OutlineExpanded: false,
		Collapsed:       []string{"a", "b"},
		Mouse:           false,
		Watch:           true,
		RenderTitle:     "Review",
	}, s)
}

func TestSettingsCmd_UnreadableConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = = toml"), 0600))

	_, _, err := execute(t, "settings", "--config", dir)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "opening config")
}

func TestSettingsCmd_NoConfig(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "settings", "set", "tui.mouse", "false", "--config", dir, "--no-config")
	require.NoError(t, err)
	assert.Contains(t, out, "Set tui.mouse to false")
	assert.NoFileExists(t, filepath.Join(dir, "config.toml"))
}

func TestRender_NoConfigIgnoresFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = = toml"), 0600))

	_, _, err := execute(t, "render", "--config", dir, "--no-config")

	assert.NoError(t, err)
}
