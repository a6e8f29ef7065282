package browse

import (
	"fmt"
	"strings"

	"github.com/s0up4200/marquee/tmdb"
)

// PosterPlaceholder stands in for a movie without poster art
const PosterPlaceholder = "🎞"

// CardTitle renders "Title (Year)" or just the title when the year is unknown
func CardTitle(movie tmdb.MovieSummary) string {
	if year := movie.YearString(); year != "" {
		return fmt.Sprintf("%s (%s)", movie.Title, year)
	}
	return movie.Title
}

// CardRating renders the rating line of a card
func CardRating(movie tmdb.MovieSummary) string {
	return "⭐ " + movie.RatingString()
}

// ConsoleFormatter provides console output formatting for browse batches
type ConsoleFormatter struct {
	columns int
	links   tmdb.Linker
}

// NewConsoleFormatter creates a new console formatter. links may be nil.
func NewConsoleFormatter(columns int, links tmdb.Linker) *ConsoleFormatter {
	if columns < 1 {
		columns = DefaultColumns
	}
	return &ConsoleFormatter{
		columns: columns,
		links:   links,
	}
}

// FormatBatch formats a freshly fetched batch. offset is the index of the batch's first
// movie in the accumulated sequence, so grid cells continue where the last batch ended.
func (f *ConsoleFormatter) FormatBatch(movies []tmdb.MovieSummary, offset, page int) string {
	if len(movies) == 0 {
		return "No movies found."
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "\nPage %d: movie", page)
	if len(movies) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " %d-%d:\n\n", offset+1, offset+len(movies))

	indices := make([]int, len(movies))
	for i := range indices {
		indices[i] = offset + i
	}
	f.writeMovies(&sb, movies, indices)

	return sb.String()
}

// FormatMatches formats the movies of a batch that passed a display filter. indices
// holds each movie's position in the accumulated sequence, so cells match the unfiltered grid.
func (f *ConsoleFormatter) FormatMatches(movies []tmdb.MovieSummary, indices []int, fetched, page int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nPage %d: %d of %d movies match:\n", page, len(movies), fetched)
	if len(movies) == 0 {
		return sb.String()
	}
	sb.WriteString("\n")
	f.writeMovies(&sb, movies, indices)

	return sb.String()
}

func (f *ConsoleFormatter) writeMovies(sb *strings.Builder, movies []tmdb.MovieSummary, indices []int) {
	for i, movie := range movies {
		isLast := i == len(movies)-1
		prefix := "\u251c"
		indent := "\u2502   "
		if isLast {
			prefix = "\u2570"
			indent = "    "
		}

		fmt.Fprintf(sb, "%s\u2500\u2500 %s  %s\n", prefix, CardTitle(movie), CardRating(movie))

		cell := Position(indices[i], f.columns)
		fmt.Fprintf(sb, "%sGrid: row %d, column %d\n", indent, cell.Row, cell.Column)
		fmt.Fprintf(sb, "%sPoster: %s\n", indent, f.poster(movie))
		if f.links != nil {
			fmt.Fprintf(sb, "%s%s\n", indent, f.links.MovieURL(movie.ID))
		}
	}
}

// FormatGenres formats the genre list in display order
func (f *ConsoleFormatter) FormatGenres(genres tmdb.Genres) string {
	if genres.Len() == 0 {
		return "No genres found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nGenres (%d):\n\n", genres.Len())
	for _, genre := range genres.All() {
		fmt.Fprintf(&sb, "  \u2022 %s (ID: %d)\n", genre.Name, genre.ID)
	}
	return sb.String()
}

func (f *ConsoleFormatter) poster(movie tmdb.MovieSummary) string {
	if !movie.HasPoster() {
		return PosterPlaceholder + " no poster"
	}
	if f.links == nil {
		return movie.PosterPath
	}
	if u, ok := f.links.PosterURL(movie); ok {
		return u
	}
	return PosterPlaceholder + " no poster"
}
