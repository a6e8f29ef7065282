package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/metrics"
	"github.com/s0up4200/marquee/tmdb"
)

var (
	cfgFile       string
	cfg           *config.Config
	logger        zerolog.Logger
	tmdbClient    *tmdb.Client
	recorder      *metrics.Recorder
	filters       *filter.Registry
	metricsServer *http.Server

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse top rated movies by genre from TMDb",
	Long: `marquee lists the movie genres known to The Movie Database and shows the
best rated movies of a genre, page by page, in a poster grid. Movies open
on themoviedb.org in your browser.

Run without a subcommand to start the interactive browser.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
	RunE:               runTUI,
	SilenceUsage:       true,
}

// SetVersion sets the build information shown by --version
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	if cfg.Metrics.Enabled {
		recorder = metrics.New()
		metricsServer = startMetricsServer(cfg.Metrics.Listen, recorder)
	}

	// Create TMDb client
	tmdbClient, err = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.APIKey, logger,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
		tmdb.WithWebBaseURL(cfg.TMDB.WebBaseURL),
		tmdb.WithMetrics(recorder),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDb client: %w", err)
	}

	filters = filter.NewRegistry(filter.NewCompiler(filter.DefaultCacheSize))
	if err := filters.RegisterFilters(cfg.Filters); err != nil {
		return fmt.Errorf("invalid filter preset: %w", err)
	}

	return nil
}

// shutdownApp stops the metrics endpoint if one was started
func shutdownApp(cmd *cobra.Command, args []string) error {
	if metricsServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to stop metrics server")
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

func startMetricsServer(listen string, recorder *metrics.Recorder) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())

	server := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("listen", listen).Msg("Metrics server failed")
		}
	}()
	logger.Info().Str("listen", listen).Msg("Serving metrics")

	return server
}

// fetchGenres loads the genre list; every command that needs it treats failure as fatal
func fetchGenres(ctx context.Context) (tmdb.Genres, error) {
	genres, err := tmdbClient.ListGenres(ctx)
	if err != nil {
		var apiErr *tmdb.APIError
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			return tmdb.Genres{}, fmt.Errorf("failed to load genres, check tmdb.api_key: %w", err)
		}
		return tmdb.Genres{}, fmt.Errorf("failed to load genres: %w", err)
	}
	return genres, nil
}

// resolveGenre accepts a genre id or a genre name
func resolveGenre(genres tmdb.Genres, arg string) (tmdb.Genre, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if genre, ok := genres.ByID(id); ok {
			return genre, nil
		}
		return tmdb.Genre{}, fmt.Errorf("genre id %d not found", id)
	}

	if genre, ok := genres.Lookup(arg); ok {
		return genre, nil
	}
	return tmdb.Genre{}, fmt.Errorf("genre '%s' not found, run 'marquee genres' to list them", arg)
}
