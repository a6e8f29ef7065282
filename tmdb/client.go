package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/metrics"
)

const (
	// DefaultBaseURL is the TMDb v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"
	// DefaultImageBaseURL serves w200 posters
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w200"
	// DefaultWebBaseURL hosts the public movie pages
	DefaultWebBaseURL = "https://www.themoviedb.org"
	// DefaultLanguage is sent with every query unless overridden
	DefaultLanguage = "en-US"

	// MinVoteCount excludes titles whose rating rests on too few votes
	MinVoteCount = 200
	// SortByRating orders discover results by descending vote average
	SortByRating = "vote_average.desc"

	endpointGenres   = "/genre/movie/list"
	endpointDiscover = "/discover/movie"
)

// Client represents a TMDb API client
type Client struct {
	baseURL      string
	apiKey       string
	language     string
	imageBaseURL string
	webBaseURL   string
	httpClient   *http.Client
	logger       zerolog.Logger
	metrics      *metrics.Recorder
}

// NewClient creates a new TMDb client. An empty API key is accepted; the service
// rejects it on the first call with ErrServiceUnavailable.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("tmdb base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid tmdb base URL: %w", err)
	}

	client := &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		language:     DefaultLanguage,
		imageBaseURL: DefaultImageBaseURL,
		webBaseURL:   DefaultWebBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if apiKey == "" {
		logger.Warn().Msg("No TMDb API key configured, requests will be rejected")
	}

	return client, nil
}

// doRequest performs an authenticated GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %w", ErrServiceUnavailable, redactURLError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrServiceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
		var payload errorResponse
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Message = payload.StatusMessage
		}
		return nil, apiErr
	}

	return body, nil
}

// ListGenres retrieves the movie genre list in service order
func (c *Client) ListGenres(ctx context.Context) (Genres, error) {
	start := time.Now()

	body, err := c.doRequest(ctx, endpointGenres, nil)
	if err != nil {
		c.observe("genres", start, err)
		return Genres{}, fmt.Errorf("failed to list genres: %w", err)
	}

	var response genreListResponse
	if err := json.Unmarshal(body, &response); err != nil {
		err = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		c.observe("genres", start, err)
		return Genres{}, fmt.Errorf("failed to parse genres: %w", err)
	}
	if response.Genres == nil {
		err := fmt.Errorf("%w: missing genres list", ErrMalformedResponse)
		c.observe("genres", start, err)
		return Genres{}, err
	}

	list := make([]Genre, 0, len(*response.Genres))
	for _, g := range *response.Genres {
		list = append(list, Genre{Name: g.Name, ID: g.ID})
	}
	genres := NewGenres(list)

	c.observe("genres", start, nil)
	c.logger.Debug().Int("count", genres.Len()).Msg("Retrieved genres from TMDb")

	return genres, nil
}

// ListMoviesByGenre retrieves one page of movies for a genre sorted by descending rating,
// truncated to at most limit entries. An empty result means there are no more movies.
func (c *Client) ListMoviesByGenre(ctx context.Context, genreID, page, limit int) ([]MovieSummary, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidArgument, page)
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidArgument, limit)
	}

	start := time.Now()

	params := url.Values{}
	params.Set("sort_by", SortByRating)
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("vote_count.gte", strconv.Itoa(MinVoteCount))
	params.Set("page", strconv.Itoa(page))

	body, err := c.doRequest(ctx, endpointDiscover, params)
	if err != nil {
		c.observe("discover", start, err)
		return nil, fmt.Errorf("failed to list movies for genre %d page %d: %w", genreID, page, err)
	}

	var response discoverResponse
	if err := json.Unmarshal(body, &response); err != nil {
		err = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		c.observe("discover", start, err)
		return nil, fmt.Errorf("failed to parse movies: %w", err)
	}
	if response.Results == nil {
		err := fmt.Errorf("%w: missing results list", ErrMalformedResponse)
		c.observe("discover", start, err)
		return nil, err
	}

	results := *response.Results
	if len(results) > limit {
		results = results[:limit]
	}

	movies := make([]MovieSummary, 0, len(results))
	for i, m := range results {
		if m.ID <= 0 || m.Title == nil {
			err := fmt.Errorf("%w: result %d has no id or title", ErrMalformedResponse, i)
			c.observe("discover", start, err)
			return nil, err
		}
		movies = append(movies, m.toSummary())
	}

	c.observe("discover", start, nil)
	c.logger.Debug().
		Int("genre_id", genreID).
		Int("page", page).
		Int("count", len(movies)).
		Int("total_pages", response.TotalPages).
		Msg("Retrieved movies from TMDb")

	return movies, nil
}

// TestConnection verifies the API key by listing genres
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.ListGenres(ctx)
	return err
}

// PosterURL returns the downloadable poster URL of a movie
func (c *Client) PosterURL(movie MovieSummary) (string, bool) {
	if !movie.HasPoster() {
		return "", false
	}
	path := movie.PosterPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + path, true
}

// MovieURL returns the public TMDb page of a movie
func (c *Client) MovieURL(movieID int) string {
	return fmt.Sprintf("%s/movie/%d", c.webBaseURL, movieID)
}

func (c *Client) observe(endpoint string, start time.Time, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrMalformedResponse):
		outcome = metrics.OutcomeMalformed
	case errors.Is(err, ErrServiceUnavailable):
		outcome = metrics.OutcomeUnavailable
	default:
		outcome = metrics.OutcomeError
	}
	c.metrics.ObserveRequest(endpoint, outcome, time.Since(start))
}

// redactURLError strips the query string (and the api_key in it) from transport errors
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	redacted := *urlErr
	if i := strings.IndexByte(redacted.URL, '?'); i >= 0 {
		redacted.URL = redacted.URL[:i]
	}
	return &redacted
}
