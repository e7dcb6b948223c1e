package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/dialcal/internal/mount"
	"github.com/chris-regnier/dialcal/internal/ui"
	"github.com/spf13/cobra"
)

var renderDate string

var renderCmd = &cobra.Command{
	Use:   "render [placeholder...]",
	Short: "Print a snapshot of the widget without starting the TUI",
	Long: `Print a snapshot of the widget without starting the TUI.

With placeholder files, one widget is rendered per file. With --json the
widget state and the dial layout of every day are printed instead.`,
	Example: `  dialcal render
  dialcal render --view monthly
  dialcal render --date 2024-05-15 --json
  dialcal render team.md personal.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var ref time.Time
		if renderDate != "" {
			d, err := time.ParseInLocation("2006-01-02", renderDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date format %q, expected YYYY-MM-DD", renderDate)
			}
			ref = d
		}

		placeholders, err := loadPlaceholders(args)
		if err != nil {
			return err
		}
		return renderRun(os.Stdout, placeholders, ref, jsonOutput)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderDate, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(renderCmd)
}

func renderRun(w io.Writer, placeholders []mount.Placeholder, ref time.Time, asJSON bool) error {
	widgets, err := buildWidgets(placeholders, ref)
	if err != nil {
		return err
	}
	defer closeWidgets(widgets)

	if asJSON {
		return ui.FormatSnapshots(w, widgets)
	}
	ui.FormatWidgets(w, widgets)
	return nil
}
