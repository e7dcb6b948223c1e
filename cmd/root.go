package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chris-regnier/dialcal/internal/config"
	"github.com/chris-regnier/dialcal/internal/logs"
	"github.com/chris-regnier/dialcal/internal/mount"
	"github.com/chris-regnier/dialcal/internal/notes"
	"github.com/chris-regnier/dialcal/internal/notes/sqlite"
	"github.com/chris-regnier/dialcal/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	cfgFile    string
	jsonOutput bool
	viewFlag   string
	localeFlag string
	notesFlag  string
	appConfig  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "dialcal",
	Short: "A calendar dial widget for the terminal",
	Long: `dialcal shows the current month as a curved day dial or a month grid,
with per-day notes and a configurable background. Nothing is persisted:
notes and settings live for as long as the widget is open.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		if viewFlag != "" {
			appConfig.View = viewFlag
		}
		if localeFlag != "" {
			appConfig.Locale = localeFlag
		}
		if notesFlag != "" {
			appConfig.Notes = notesFlag
		}

		if err := logs.Initialize(appConfig.LogFile); err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logs.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		placeholders, err := loadPlaceholders(nil)
		if err != nil {
			return err
		}
		return runWidgets(placeholders)
	},
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (non-interactive)")
	rootCmd.PersistentFlags().StringVar(&viewFlag, "view", "", "initial view (weekly|monthly)")
	rootCmd.PersistentFlags().StringVar(&localeFlag, "locale", "", "locale for day and month names, e.g. en_US")
	rootCmd.PersistentFlags().StringVar(&notesFlag, "notes", "", "note backend (memory|sqlite)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func defaultView() mount.View {
	return mount.ParseView(appConfig.View, mount.Weekly)
}

func openNotes() (notes.Store, error) {
	switch appConfig.Notes {
	case "", "memory":
		return notes.NewMemory(), nil
	case "sqlite":
		s, err := sqlite.New()
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite notes: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown notes backend: %s", appConfig.Notes)
	}
}

// buildWidgets creates one isolated widget per placeholder, each with its
// own note store. A zero ref shows the current month.
func buildWidgets(placeholders []mount.Placeholder, ref time.Time) ([]ui.Widget, error) {
	theme := ui.ResolveTheme(appConfig.Theme)
	widgets := make([]ui.Widget, 0, len(placeholders))
	for _, p := range placeholders {
		store, err := openNotes()
		if err != nil {
			closeWidgets(widgets)
			return nil, err
		}
		widgets = append(widgets, ui.NewWidget(ui.WidgetConfig{
			ID:         p.ID,
			View:       p.View,
			Caption:    p.Caption,
			Locale:     appConfig.Locale,
			Ref:        ref,
			Theme:      theme,
			Notes:      store,
			Background: appConfig.Background.Color,
		}))
	}
	return widgets, nil
}

func closeWidgets(widgets []ui.Widget) {
	for i := range widgets {
		widgets[i].Close()
	}
}

// runWidgets runs the interactive host, or prints a snapshot when stdout
// is not a terminal.
func runWidgets(placeholders []mount.Placeholder) error {
	if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
		return renderRun(os.Stdout, placeholders, time.Time{}, jsonOutput)
	}
	widgets, err := buildWidgets(placeholders, time.Time{})
	if err != nil {
		return err
	}
	return ui.RunTUI(widgets)
}
