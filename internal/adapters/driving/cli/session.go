package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/extractview/internal/adapters/driven/config/file"
	configmemory "github.com/custodia-labs/extractview/internal/adapters/driven/config/memory"
	sourcefile "github.com/custodia-labs/extractview/internal/adapters/driven/source/file"
	"github.com/custodia-labs/extractview/internal/adapters/driven/source/memory"
	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/core/ports/driven"
	"github.com/custodia-labs/extractview/internal/core/services"
	"github.com/custodia-labs/extractview/internal/logger"
)

// openSettings opens the config store selected by --config. With
// --no-config nothing is read or written.
func openSettings() (*services.SettingsService, error) {
	if noConfig {
		logger.Debug("config: disabled")
		return services.NewSettingsService(configmemory.NewConfigStore(nil)), nil
	}

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", store.Path())
	return services.NewSettingsService(store), nil
}

// sourceFor picks the input: the file argument, then input.path, then
// the built-in sample.
func sourceFor(args []string, settings domain.Settings) driven.ExtractionSource {
	path := settings.InputPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return memory.NewSampleSource()
	}
	return sourcefile.NewSource(path)
}

// loadViewer creates a viewer for the selected input and loads it.
func loadViewer(cmd *cobra.Command, args []string, settings domain.Settings) (*services.Viewer, driven.ExtractionSource, error) {
	source := sourceFor(args, settings)
	viewer := services.NewViewer(source, settings)
	if err := viewer.Load(commandContext(cmd)); err != nil {
		return nil, nil, err
	}
	return viewer, source, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// reportRejected prints one warning per skipped annotation.
func reportRejected(cmd *cobra.Command, rejected []domain.Rejection) {
	for _, r := range rejected {
		cmd.PrintErrf("warning: skipped %v\n", r)
	}
}
