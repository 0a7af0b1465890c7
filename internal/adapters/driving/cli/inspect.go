package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/extractview/internal/core/domain"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Print the outline of an extraction",
	Long: `Print the annotations grouped by category, with their spans, and list
any annotations that were skipped because their span does not fit the
document or their id is missing or repeated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(inspectCmd)
}

// inspectReport is the machine-readable form of inspect.
type inspectReport struct {
	Title      string            `json:"title,omitempty"`
	Length     int               `json:"length"`
	Categories []inspectCategory `json:"categories"`
	Rejected   []inspectRejected `json:"rejected,omitempty"`
}

type inspectCategory struct {
	Category string        `json:"category"`
	Label    string        `json:"label"`
	Expanded bool          `json:"expanded"`
	Items    []inspectItem `json:"items"`
}

type inspectItem struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	Text       string `json:"text"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Method     string `json:"method"`
	Confidence string `json:"confidence"`
}

type inspectRejected struct {
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// capture keeps the views a render produced.
type capture struct {
	document *domain.DocumentView
	outline  *domain.OutlineView
}

func (c *capture) ReplaceDocument(view *domain.DocumentView) error {
	c.document = view
	return nil
}

func (c *capture) ReplaceOutline(view *domain.OutlineView) error {
	c.outline = view
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	settingsService, err := openSettings()
	if err != nil {
		return err
	}

	viewer, _, err := loadViewer(cmd, args, settingsService.Get())
	if err != nil {
		return err
	}
	views := &capture{}
	viewer.Attach(views, views)
	if err := viewer.RenderAll(); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	report := buildReport(viewer.Extraction(), viewer.Accepted(), views.outline, views.document)
	if inspectJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputReportText(cmd, report)
	return nil
}

func buildReport(e *domain.Extraction, accepted []domain.Annotation, outline *domain.OutlineView, document *domain.DocumentView) inspectReport {
	// Accepted ids are unique.
	byID := make(map[string]domain.Annotation, len(accepted))
	for _, a := range accepted {
		byID[a.ID] = a
	}

	report := inspectReport{
		Title:      e.Title,
		Length:     domain.RuneLen(e.Document),
		Categories: make([]inspectCategory, 0, len(outline.Sections)),
	}
	for _, s := range outline.Sections {
		c := inspectCategory{Category: s.Category, Label: s.Label, Expanded: s.Expanded}
		for _, item := range s.Items {
			a := byID[item.Element.ID]
			c.Items = append(c.Items, inspectItem{
				ID:         a.ID,
				Label:      item.Label,
				Value:      item.Value,
				Text:       a.Text,
				Start:      a.Start,
				End:        a.End,
				Method:     a.Method,
				Confidence: item.Confidence,
			})
		}
		report.Categories = append(report.Categories, c)
	}
	for _, r := range document.Rejected {
		report.Rejected = append(report.Rejected, inspectRejected{ID: r.ID, Reason: r.Err.Error()})
	}
	return report
}

func outputReportText(cmd *cobra.Command, report inspectReport) {
	if report.Title != "" {
		cmd.Println(report.Title)
		cmd.Println(strings.Repeat("=", len([]rune(report.Title))))
	}
	total := 0
	for _, c := range report.Categories {
		total += len(c.Items)
	}
	cmd.Printf("%d annotations in %d categories, document length %d\n",
		total, len(report.Categories), report.Length)

	for _, c := range report.Categories {
		cmd.Println()
		cmd.Printf("%s (%d)\n", c.Label, len(c.Items))
		for _, item := range c.Items {
			cmd.Printf("  [%s] %s: %s (%s)\n", item.ID, item.Label, item.Value, item.Confidence)
			cmd.Printf("      %d-%d %s %q\n", item.Start, item.End, item.Method, item.Text)
		}
	}

	if len(report.Rejected) > 0 {
		cmd.Println()
		cmd.Printf("Skipped (%d):\n", len(report.Rejected))
		for _, r := range report.Rejected {
			if r.ID == "" {
				cmd.Printf("  %s\n", r.Reason)
				continue
			}
			cmd.Printf("  [%s] %s\n", r.ID, r.Reason)
		}
	}
}
