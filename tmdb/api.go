package tmdb

import (
	"context"
)

// Catalog defines the read-only queries against the movie catalog
type Catalog interface {
	// ListGenres retrieves the full movie genre list
	ListGenres(ctx context.Context) (Genres, error)

	// ListMoviesByGenre retrieves one page of top-rated movies for a genre, truncated to limit
	ListMoviesByGenre(ctx context.Context, genreID, page, limit int) ([]MovieSummary, error)
}

// Linker builds outbound URLs for movies
type Linker interface {
	// PosterURL returns the downloadable poster URL, or false when the movie has none
	PosterURL(movie MovieSummary) (string, bool)

	// MovieURL returns the public detail page of a movie
	MovieURL(movieID int) string
}

var (
	_ Catalog = (*Client)(nil)
	_ Linker  = (*Client)(nil)
)
