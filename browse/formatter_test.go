package browse

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/marquee/tmdb"
)

func TestCardText(t *testing.T) {
	year := 1972
	rating := 8.7

	full := tmdb.MovieSummary{ID: 238, Title: "The Godfather", ReleaseYear: &year, Rating: &rating}
	assert.Equal(t, "The Godfather (1972)", CardTitle(full))
	assert.Equal(t, "⭐ 8.7", CardRating(full))

	bare := tmdb.MovieSummary{ID: 1, Title: "Unknown"}
	assert.Equal(t, "Unknown", CardTitle(bare))
	assert.Equal(t, "⭐ N/A", CardRating(bare))
}

func TestFormatBatch(t *testing.T) {
	links, err := tmdb.NewClient(tmdb.DefaultBaseURL, "k", zerolog.Nop())
	require.NoError(t, err)

	f := NewConsoleFormatter(DefaultColumns, links)
	movies := makeMovies(28, 2, 3)
	movies[1].PosterPath = ""

	var out string
	require.NotPanics(t, func() {
		out = f.FormatBatch(movies, 20, 2)
	})

	assert.Contains(t, out, "Page 2: movies 21-23")
	assert.Contains(t, out, "Grid: row 4, column 0")
	assert.Contains(t, out, "Grid: row 4, column 2")
	assert.Contains(t, out, "https://image.tmdb.org/t/p/w200/28-2-0.jpg")
	assert.Contains(t, out, PosterPlaceholder+" no poster")
	assert.Contains(t, out, "https://www.themoviedb.org/movie/")
	assert.Equal(t, 3, strings.Count(out, "Poster:"))
}

func TestFormatBatchEmpty(t *testing.T) {
	f := NewConsoleFormatter(0, nil)
	assert.Equal(t, "No movies found.", f.FormatBatch(nil, 0, 1))
}

func TestFormatMatches(t *testing.T) {
	f := NewConsoleFormatter(DefaultColumns, nil)
	movies := makeMovies(28, 2, 2)

	out := f.FormatMatches(movies, []int{21, 24}, 5, 2)
	assert.Contains(t, out, "Page 2: 2 of 5 movies match")
	assert.Contains(t, out, "Grid: row 4, column 1")
	assert.Contains(t, out, "Grid: row 4, column 4")
	assert.Equal(t, 2, strings.Count(out, "Poster:"))

	none := f.FormatMatches(nil, nil, 5, 3)
	assert.Contains(t, none, "Page 3: 0 of 5 movies match")
	assert.NotContains(t, none, "Grid:")
}

func TestFormatGenres(t *testing.T) {
	f := NewConsoleFormatter(DefaultColumns, nil)
	out := f.FormatGenres(tmdb.NewGenres([]tmdb.Genre{{Name: "Action", ID: 28}, {Name: "Comedy", ID: 35}}))

	assert.Contains(t, out, "Genres (2)")
	assert.Less(t, strings.Index(out, "Action (ID: 28)"), strings.Index(out, "Comedy (ID: 35)"))
}
