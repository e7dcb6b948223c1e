package cmd

import (
	"github.com/chris-regnier/dialcal/internal/mount"
	"github.com/spf13/cobra"
)

var mountCmd = &cobra.Command{
	Use:   "mount <placeholder>...",
	Short: "Mount one widget per placeholder file",
	Long: `Mount one widget per placeholder file.

A placeholder is a markdown file. Its front matter may set the initial view
("view: weekly" or "view: monthly"); its body is shown as the widget caption.
Every widget is independent: selection, notes and background are not shared.`,
	Example: `  dialcal mount team.md
  dialcal mount team.md personal.md`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		placeholders, err := loadPlaceholders(args)
		if err != nil {
			return err
		}
		return runWidgets(placeholders)
	},
}

func init() {
	rootCmd.AddCommand(mountCmd)
}

// loadPlaceholders parses placeholder files, or returns a single default
// placeholder when none are given.
func loadPlaceholders(paths []string) ([]mount.Placeholder, error) {
	if len(paths) == 0 {
		p, err := mount.New(defaultView())
		if err != nil {
			return nil, err
		}
		return []mount.Placeholder{p}, nil
	}

	placeholders := make([]mount.Placeholder, 0, len(paths))
	for _, path := range paths {
		p, err := mount.ParseFile(path, defaultView())
		if err != nil {
			return nil, err
		}
		placeholders = append(placeholders, p)
	}
	return placeholders, nil
}
