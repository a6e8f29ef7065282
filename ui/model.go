package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/filter"
	"github.com/s0up4200/marquee/tmdb"
)

// Browser is the browse session the model drives
type Browser interface {
	Start(ctx context.Context, genreID int) ([]tmdb.MovieSummary, error)
	Extend(ctx context.Context) ([]tmdb.MovieSummary, error)
	State() browse.State
	Page() int
}

const (
	viewGenres = iota
	viewMovies
)

const (
	loadMoreLabel = "I've already seen these movies"
	noMoviesText  = "No movies found."
	noMoreText    = "No more movies found."
)

type genreItem struct {
	genre tmdb.Genre
}

func (i genreItem) Title() string       { return i.genre.Name }
func (i genreItem) Description() string { return fmt.Sprintf("ID %d", i.genre.ID) }
func (i genreItem) FilterValue() string { return i.genre.Name }

// Model is the bubbletea model of the genre browser
type Model struct {
	ctx     context.Context
	session Browser
	links   tmdb.Linker
	open    Opener
	filter  *filter.ExprFilter
	logger  zerolog.Logger

	keys      keyMap
	genreList list.Model
	spinner   spinner.Model
	help      help.Model

	view      int
	genre     tmdb.Genre
	movies    []tmdb.MovieSummary
	fetched   int
	cursor    int
	columns   int
	loading   bool
	requestID int
	status    string
	statusErr bool
	width     int
	height    int
}

// NewModel creates the model. genres must be the already fetched genre list.
func NewModel(ctx context.Context, genres tmdb.Genres, session Browser, links tmdb.Linker, opts ...Option) (Model, error) {
	if genres.Len() == 0 {
		return Model{}, fmt.Errorf("no genres available")
	}
	if session == nil {
		return Model{}, fmt.Errorf("browse session is required")
	}
	if links == nil {
		return Model{}, fmt.Errorf("link builder is required")
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	m := Model{
		ctx:       ctx,
		session:   session,
		links:     links,
		open:      func(string) error { return nil },
		logger:    zerolog.Nop(),
		keys:      defaultKeyMap(),
		genreList: newGenreList(genres),
		spinner:   sp,
		help:      help.New(),
		view:      viewGenres,
		columns:   browse.DefaultColumns,
		width:     80,
		height:    24,
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m, nil
}

func newGenreList(genres tmdb.Genres) list.Model {
	items := make([]list.Item, 0, genres.Len())
	for _, genre := range genres.All() {
		items = append(items, genreItem{genre: genre})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Pick a genre"
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(true)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	return l
}

// Init starts the spinner
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and user input
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.genreList.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case browseStartedMsg:
		return m.handleStarted(msg), nil

	case browseExtendedMsg:
		return m.handleExtended(msg), nil

	case openFailedMsg:
		m.logger.Debug().Err(msg.err).Str("url", msg.url).Msg("Failed to open browser")
		m.setError(fmt.Sprintf("Could not open %s: %v", msg.url, msg.err))
		return m, nil

	case tea.KeyMsg:
		if m.view == viewGenres {
			return m.updateGenres(msg)
		}
		return m.updateMovies(msg)
	}

	if m.view == viewGenres {
		var cmd tea.Cmd
		m.genreList, cmd = m.genreList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateGenres(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// the list owns every key while its filter prompt is open
	if m.genreList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.genreList, cmd = m.genreList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Select):
		item, ok := m.genreList.SelectedItem().(genreItem)
		if !ok {
			return m, nil
		}
		return m.startGenre(item.genre)
	}

	var cmd tea.Cmd
	m.genreList, cmd = m.genreList.Update(msg)
	return m, cmd
}

func (m Model) updateMovies(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Back):
		// results still in flight belong to the genre being left
		m.requestID++
		m.loading = false
		m.view = viewGenres
		m.clearStatus()
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.columns)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.columns)
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Open):
		return m.openSelected()
	case key.Matches(msg, m.keys.More):
		return m.loadMore()
	}
	return m, nil
}

func (m Model) startGenre(genre tmdb.Genre) (tea.Model, tea.Cmd) {
	m.requestID++
	m.view = viewMovies
	m.genre = genre
	m.movies = nil
	m.fetched = 0
	m.cursor = 0
	m.loading = true
	m.clearStatus()

	m.logger.Debug().Str("genre", genre.Name).Int("genre_id", genre.ID).Msg("Browsing genre")

	return m, tea.Batch(m.spinner.Tick, startBrowseCmd(m.ctx, m.session, genre, m.requestID))
}

func (m Model) loadMore() (tea.Model, tea.Cmd) {
	if m.loading {
		m.setInfo("Still loading...")
		return m, nil
	}
	if m.session.State() == browse.StateEmpty {
		m.setInfo(noMoviesText)
		return m, nil
	}

	m.requestID++
	m.loading = true
	m.clearStatus()
	return m, tea.Batch(m.spinner.Tick, extendBrowseCmd(m.ctx, m.session, m.requestID))
}

func (m Model) openSelected() (tea.Model, tea.Cmd) {
	if len(m.movies) == 0 {
		return m, nil
	}
	movie := m.movies[m.cursor]
	url := m.links.MovieURL(movie.ID)
	m.setInfo("Opening " + url)
	return m, openMovieCmd(m.open, url)
}

func (m Model) handleStarted(msg browseStartedMsg) Model {
	if msg.requestID != m.requestID {
		return m
	}
	m.loading = false

	if msg.err != nil {
		if errors.Is(msg.err, browse.ErrSuperseded) {
			return m
		}
		m.logger.Debug().Err(msg.err).Str("genre", msg.genre.Name).Msg("Failed to start browse")
		m.setError(fmt.Sprintf("Could not load %s movies: %v", msg.genre.Name, msg.err))
		return m
	}

	if len(msg.batch) == 0 {
		m.setInfo(noMoviesText)
		return m
	}

	m.appendBatch(msg.batch)
	return m
}

func (m Model) handleExtended(msg browseExtendedMsg) Model {
	if msg.requestID != m.requestID {
		return m
	}
	m.loading = false

	switch {
	case msg.err == nil:
		m.appendBatch(msg.batch)
		if m.status == "" {
			m.setInfo(fmt.Sprintf("Page %d loaded", m.session.Page()))
		}
	case errors.Is(msg.err, browse.ErrNoMoreResults):
		m.setInfo(noMoreText)
	case errors.Is(msg.err, browse.ErrBusy):
		m.setInfo("Still loading...")
	case errors.Is(msg.err, browse.ErrSuperseded):
	default:
		m.logger.Debug().Err(msg.err).Msg("Failed to load more movies")
		m.setError(fmt.Sprintf("Could not load more movies: %v", msg.err))
	}
	return m
}

// appendBatch adds a fetched batch to the grid. The filter runs per batch so
// movies already shown keep their cells.
func (m *Model) appendBatch(batch []tmdb.MovieSummary) {
	m.fetched += len(batch)

	visible := batch
	if m.filter != nil {
		matched, err := m.filter.Apply(batch)
		if err != nil {
			m.setError(fmt.Sprintf("Filter failed, showing all movies: %v", err))
		} else {
			visible = matched
			if len(matched) == 0 {
				m.setInfo(fmt.Sprintf("None of %d new movies match %q", len(batch), m.filter.Expression()))
			}
		}
	}

	m.movies = append(m.movies, visible...)
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.movies) {
		return
	}
	m.cursor = next
}

func (m *Model) setInfo(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}
