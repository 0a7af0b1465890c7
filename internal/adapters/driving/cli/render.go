package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/extractview/internal/adapters/driven/surface/html"
	"github.com/custodia-labs/extractview/internal/core/domain"
	"github.com/custodia-labs/extractview/internal/logger"
)

var (
	renderOutput   string
	renderActive   string
	renderTitle    string
	renderCollapse []string
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Write the linked views as an HTML page",
	Long: `Render the document and outline views into a single HTML page.

The page highlights an annotation in both views while the pointer or keyboard
focus is on it, and categories can be expanded and collapsed. The page is
written to stdout unless --output is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write the page to a file")
	renderCmd.Flags().StringVar(&renderActive, "active", "", "annotation id to highlight initially")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "page title")
	renderCmd.Flags().StringSliceVar(&renderCollapse, "collapse", nil, "categories to start collapsed")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) (err error) {
	settingsService, err := openSettings()
	if err != nil {
		return err
	}
	settings := settingsService.Get()
	settings.Collapsed = append(settings.Collapsed, renderCollapse...)

	viewer, _, err := loadViewer(cmd, args, settings)
	if err != nil {
		return err
	}
	if renderTitle != "" {
		viewer.Extraction().Title = renderTitle
	}

	page := html.NewPage(settings.RenderTitle)
	viewer.Attach(page, page)
	if err := viewer.RenderAll(); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	if renderActive != "" && viewer.Activate(renderActive) == 0 {
		return fmt.Errorf("highlighting %q: %w", renderActive, domain.ErrNotFound)
	}
	reportRejected(cmd, viewer.Rejected())

	var out io.Writer = cmd.OutOrStdout()
	if renderOutput != "" && renderOutput != "-" {
		f, err := os.Create(renderOutput)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output: %w", cerr)
			}
		}()
		out = f
	}

	n, err := page.WriteTo(out)
	if err != nil {
		return fmt.Errorf("writing page: %w", err)
	}
	logger.Info("wrote %d bytes", n)
	return nil
}
