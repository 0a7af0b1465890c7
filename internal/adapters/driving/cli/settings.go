package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/extractview/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage viewer settings",
	Long: `View and change the settings stored in the config file.

Keys:
  input.path         - extraction file used when none is given
  outline.expanded   - whether categories start expanded
  outline.collapsed  - comma-separated categories that start collapsed
  tui.mouse          - pointer hover and click in the terminal viewer
  tui.watch          - reload the input file when it changes
  render.title       - HTML page title when the input has none`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settingsService, err := openSettings()
	if err != nil {
		return err
	}
	settings := settingsService.Get()

	input := settings.InputPath
	if input == "" {
		input = "(built-in sample)"
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("  %-18s %s\n", domain.SettingInputPath, input)
	cmd.Printf("  %-18s %t\n", domain.SettingOutlineExpanded, settings.OutlineExpanded)
	cmd.Printf("  %-18s %s\n", domain.SettingOutlineCollapsed, strings.Join(settings.Collapsed, ", "))
	cmd.Printf("  %-18s %t\n", domain.SettingTUIMouse, settings.Mouse)
	cmd.Printf("  %-18s %t\n", domain.SettingTUIWatch, settings.Watch)
	cmd.Printf("  %-18s %s\n", domain.SettingRenderTitle, settings.RenderTitle)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	settingsService, err := openSettings()
	if err != nil {
		return err
	}

	settings := settingsService.Get()
	if err := applySetting(&settings, args[0], args[1]); err != nil {
		return err
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

// applySetting parses value for key into settings.
func applySetting(settings *domain.Settings, key, value string) error {
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
		}
		return b, nil
	}

	var err error
	switch key {
	case domain.SettingInputPath:
		settings.InputPath = value
	case domain.SettingOutlineExpanded:
		settings.OutlineExpanded, err = parseBool()
	case domain.SettingOutlineCollapsed:
		settings.Collapsed = splitList(value)
	case domain.SettingTUIMouse:
		settings.Mouse, err = parseBool()
	case domain.SettingTUIWatch:
		settings.Watch, err = parseBool()
	case domain.SettingRenderTitle:
		settings.RenderTitle = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return err
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
