package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/s0up4200/marquee/metrics"
	"github.com/s0up4200/marquee/tmdb"
)

// State is the lifecycle state of a Session
type State int

const (
	// StateIdle means no genre has been loaded successfully
	StateIdle State = iota
	// StateLoaded means a genre is selected and at least one page has movies
	StateLoaded
	// StateEmpty means the first page of the selected genre had no movies
	StateEmpty
)

// String returns the string representation of a State
func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateEmpty:
		return "empty"
	default:
		return "idle"
	}
}

// Catalog is the page source a Session reads from
type Catalog interface {
	ListMoviesByGenre(ctx context.Context, genreID, page, limit int) ([]tmdb.MovieSummary, error)
}

// Option configures a Session
type Option func(*Session)

// WithMetrics records session operations on the given recorder
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(s *Session) {
		s.metrics = recorder
	}
}

// Session holds the selected genre, the page cursor and the movies accumulated
// during one browse cycle. It is created once and reset by every Start.
//
// A Session is safe for concurrent use. At most one operation runs at a time:
// Extend fails with ErrBusy while another call is outstanding, and Start cancels
// whatever is in flight and takes over.
type Session struct {
	catalog  Catalog
	pageSize int
	logger   zerolog.Logger
	metrics  *metrics.Recorder
	guard    *semaphore.Weighted

	mu         sync.Mutex
	state      State
	genreID    int
	hasGenre   bool
	page       int
	movies     []tmdb.MovieSummary
	cancel     context.CancelCauseFunc
	generation uint64
}

// NewSession creates an idle session with a fixed page size
func NewSession(catalog Catalog, pageSize int, logger zerolog.Logger, opts ...Option) (*Session, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	s := &Session{
		catalog:  catalog,
		pageSize: pageSize,
		logger:   logger,
		guard:    semaphore.NewWeighted(1),
		state:    StateIdle,
		page:     1,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Start begins a new browse cycle for a genre and returns its first page.
// The cursor is reset to 1 and previous movies are released before the fetch, so a
// failed Start leaves the session idle with the new genre selected and nothing accumulated.
// An empty first page puts the session in StateEmpty and returns an empty batch.
func (s *Session) Start(ctx context.Context, genreID int) ([]tmdb.MovieSummary, error) {
	ctx, gen, cancel := s.supersede(ctx)
	defer s.finish(gen, cancel)

	if err := s.guard.Acquire(ctx, 1); err != nil {
		return nil, s.interrupted(ctx, "start", err)
	}
	defer s.guard.Release(1)

	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		return nil, s.interrupted(ctx, "start", ctx.Err())
	}
	s.state = StateIdle
	s.genreID = genreID
	s.hasGenre = true
	s.page = 1
	s.movies = nil
	s.mu.Unlock()

	s.logger.Debug().Int("genre_id", genreID).Msg("Starting browse")

	batch, err := s.catalog.ListMoviesByGenre(ctx, genreID, 1, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if superseded(ctx) {
		s.metrics.ObserveSession("start", metrics.OutcomeSuperseded, len(s.movies))
		return nil, ErrSuperseded
	}

	if err != nil {
		s.metrics.ObserveSession("start", metrics.OutcomeError, 0)
		return nil, err
	}

	if len(batch) == 0 {
		s.state = StateEmpty
		s.metrics.ObserveSession("start", metrics.OutcomeEmpty, 0)
		s.logger.Debug().Int("genre_id", genreID).Msg("Genre has no movies")
		return []tmdb.MovieSummary{}, nil
	}

	s.movies = append(s.movies, batch...)
	s.state = StateLoaded
	s.metrics.ObserveSession("start", metrics.OutcomeOK, len(s.movies))

	return cloneMovies(batch), nil
}

// Extend fetches the next page of the current genre and returns only the new batch.
// The cursor advances before the fetch and is never rolled back: an empty page returns
// ErrNoMoreResults and a failed fetch returns the catalog error, and in both cases the
// next Extend asks for the page after.
func (s *Session) Extend(ctx context.Context) ([]tmdb.MovieSummary, error) {
	if !s.guard.TryAcquire(1) {
		s.metrics.ObserveSession("extend", metrics.OutcomeBusy, s.Len())
		return nil, ErrBusy
	}
	defer s.guard.Release(1)

	s.mu.Lock()
	if s.cancel != nil {
		// a Start is registered and waiting for the guard
		s.mu.Unlock()
		return nil, ErrBusy
	}
	switch s.state {
	case StateIdle:
		s.mu.Unlock()
		return nil, ErrInvalidState
	case StateEmpty:
		s.mu.Unlock()
		return nil, ErrNoMoreResults
	}
	s.page++
	page := s.page
	genreID := s.genreID
	ctx, gen, cancel := s.registerLocked(ctx)
	s.mu.Unlock()
	defer s.finish(gen, cancel)

	s.logger.Debug().Int("genre_id", genreID).Int("page", page).Msg("Extending browse")

	batch, err := s.catalog.ListMoviesByGenre(ctx, genreID, page, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if superseded(ctx) {
		s.metrics.ObserveSession("extend", metrics.OutcomeSuperseded, len(s.movies))
		return nil, ErrSuperseded
	}

	if err != nil {
		s.metrics.ObserveSession("extend", metrics.OutcomeError, len(s.movies))
		return nil, err
	}

	if len(batch) == 0 {
		s.metrics.ObserveSession("extend", metrics.OutcomeEmpty, len(s.movies))
		return nil, ErrNoMoreResults
	}

	s.movies = append(s.movies, batch...)
	s.metrics.ObserveSession("extend", metrics.OutcomeOK, len(s.movies))

	return cloneMovies(batch), nil
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Page returns the page cursor
func (s *Session) Page() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageSize returns the fixed page size
func (s *Session) PageSize() int {
	return s.pageSize
}

// GenreID returns the selected genre, if any
func (s *Session) GenreID() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.genreID, s.hasGenre
}

// Movies returns a copy of the movies accumulated in the current browse cycle
func (s *Session) Movies() []tmdb.MovieSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMovies(s.movies)
}

// Len returns the number of accumulated movies
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movies)
}

// supersede cancels the operation in flight and registers a new one
func (s *Session) supersede(ctx context.Context) (context.Context, uint64, context.CancelCauseFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel(ErrSuperseded)
	}
	return s.registerLocked(ctx)
}

func (s *Session) registerLocked(ctx context.Context) (context.Context, uint64, context.CancelCauseFunc) {
	ctx, cancel := context.WithCancelCause(ctx)
	s.generation++
	s.cancel = cancel
	return ctx, s.generation, cancel
}

func (s *Session) finish(gen uint64, cancel context.CancelCauseFunc) {
	s.mu.Lock()
	if s.generation == gen {
		s.cancel = nil
	}
	s.mu.Unlock()
	cancel(nil)
}

func (s *Session) interrupted(ctx context.Context, operation string, err error) error {
	if superseded(ctx) {
		s.metrics.ObserveSession(operation, metrics.OutcomeSuperseded, s.Len())
		return ErrSuperseded
	}
	return err
}

func superseded(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), ErrSuperseded)
}

func cloneMovies(movies []tmdb.MovieSummary) []tmdb.MovieSummary {
	out := make([]tmdb.MovieSummary, len(movies))
	copy(out, movies)
	return out
}
