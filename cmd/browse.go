package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

var (
	pages        int
	checkPosters bool
)

// genresCmd represents the genres command
var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List movie genres",
	Long:  `List the movie genres known to TMDb in the order the service returns them.`,
	RunE:  runGenres,
}

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse <genre>",
	Short: "Print top rated movies of a genre",
	Long: `Print the best rated movies of a genre, one page at a time.

The genre can be given by name (case-insensitive) or by id. Only movies with
at least 200 votes are listed. Use --pages to keep loading further pages.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVarP(&pages, "pages", "n", 1, "number of pages to load")
	browseCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "only show movies matching this expression")
	browseCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	browseCmd.Flags().BoolVar(&checkPosters, "check-posters", false, "verify that poster images can be downloaded")
}

func runGenres(cmd *cobra.Command, args []string) error {
	genres, err := fetchGenres(cmd.Context())
	if err != nil {
		return err
	}

	formatter := browse.NewConsoleFormatter(cfg.Browse.Columns, tmdbClient)
	fmt.Print(formatter.FormatGenres(genres))
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if pages < 1 {
		return fmt.Errorf("--pages must be at least 1")
	}

	displayFilter, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return fmt.Errorf("invalid filter expression: %w", err)
	}

	ctx := cmd.Context()

	genres, err := fetchGenres(ctx)
	if err != nil {
		return err
	}

	genre, err := resolveGenre(genres, args[0])
	if err != nil {
		return err
	}

	session, err := browse.NewSession(tmdbClient, cfg.Browse.PageSize, logger, browse.WithMetrics(recorder))
	if err != nil {
		return err
	}

	logger.Info().Str("genre", genre.Name).Int("genre_id", genre.ID).Msg("Loading top rated movies")
	if displayFilter != nil {
		logger.Info().Str("filter", displayFilter.Expression()).Msg("Filtering movies")
	}

	formatter := browse.NewConsoleFormatter(cfg.Browse.Columns, tmdbClient)

	for i := 0; i < pages; i++ {
		var batch []tmdb.MovieSummary
		if i == 0 {
			batch, err = session.Start(ctx, genre.ID)
		} else {
			batch, err = session.Extend(ctx)
		}

		switch {
		case errors.Is(err, browse.ErrNoMoreResults):
			fmt.Println("\nNo more movies found.")
			return nil
		case err != nil:
			return fmt.Errorf("failed to load page %d: %w", session.Page(), err)
		}

		if session.State() == browse.StateEmpty {
			fmt.Println(formatter.FormatBatch(nil, 0, 1))
			return nil
		}

		// grid cells follow the accumulated sequence, filtered or not
		offset := session.Len() - len(batch)

		if displayFilter != nil {
			fetched := len(batch)
			var indices []int
			batch, indices, err = matchBatch(displayFilter, batch, offset)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatMatches(batch, indices, fetched, session.Page()))
			if len(batch) == 0 {
				continue
			}
		} else {
			fmt.Print(formatter.FormatBatch(batch, offset, session.Page()))
		}

		if checkPosters {
			if err := reportPosters(ctx, batch); err != nil {
				return err
			}
		}
	}

	return nil
}

// matchBatch keeps the movies that pass f along with their accumulated indices
func matchBatch(f *filter.ExprFilter, batch []tmdb.MovieSummary, offset int) ([]tmdb.MovieSummary, []int, error) {
	var (
		matches []tmdb.MovieSummary
		indices []int
	)
	for i, movie := range batch {
		ok, err := f.Evaluate(movie)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			matches = append(matches, movie)
			indices = append(indices, offset+i)
		}
	}
	return matches, indices, nil
}

func reportPosters(ctx context.Context, batch []tmdb.MovieSummary) error {
	status, err := tmdbClient.CheckPosters(ctx, batch)
	if err != nil {
		return fmt.Errorf("poster check interrupted: %w", err)
	}

	var missing []string
	for _, movie := range batch {
		if !status[movie.ID] {
			missing = append(missing, browse.CardTitle(movie))
		}
	}

	if len(missing) == 0 {
		fmt.Printf("✓ All %d posters available\n", len(batch))
		return nil
	}

	fmt.Printf("%s %d of %d posters unavailable:\n", browse.PosterPlaceholder, len(missing), len(batch))
	for _, title := range missing {
		fmt.Printf("  • %s\n", title)
	}
	return nil
}
