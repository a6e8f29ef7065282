package cmd

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/toqueteos/webbrowser"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/ui"
)

// tuiCmd represents the interactive browser
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse genres interactively",
	Long: `Start the interactive browser. Pick a genre to see its top rated movies as a
poster grid, load more pages when you have seen them all and open any movie
on themoviedb.org.`,
	RunE: runTUI,
}

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open <movie-id>",
	Short: "Open a movie page in the browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	tuiCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "only show movies matching this expression")
	tuiCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	rootCmd.Flags().AddFlagSet(tuiCmd.Flags())
}

func runTUI(cmd *cobra.Command, args []string) error {
	displayFilter, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	ctx := cmd.Context()

	genres, err := fetchGenres(ctx)
	if err != nil {
		return err
	}

	// log lines would tear through the alternate screen
	uiLogger := zerolog.Nop()
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		uiLogger = logger
	}

	session, err := browse.NewSession(tmdbClient, cfg.Browse.PageSize, uiLogger, browse.WithMetrics(recorder))
	if err != nil {
		return err
	}

	opts := []ui.Option{
		ui.WithOpener(webbrowser.Open),
		ui.WithColumns(cfg.Browse.Columns),
		ui.WithLogger(uiLogger),
	}
	if displayFilter != nil {
		opts = append(opts, ui.WithFilter(displayFilter))
	}

	model, err := ui.NewModel(ctx, genres, session, tmdbClient, opts...)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running interactive browser: %w", err)
	}
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid movie id: %s", args[0])
	}

	movieURL := tmdbClient.MovieURL(id)
	fmt.Printf("Opening %s\n", movieURL)

	if err := webbrowser.Open(movieURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
