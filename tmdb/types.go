package tmdb

import (
	"strconv"
	"strings"
)

// Genre is a named movie category with its service-assigned id
type Genre struct {
	Name string
	ID   int
}

// Genres is the genre list in service order with a name index.
// Names are unique: a repeated name keeps its first position and takes the last id.
type Genres struct {
	list  []Genre
	index map[string]int
}

// NewGenres builds a Genres value from the service list
func NewGenres(list []Genre) Genres {
	g := Genres{
		list:  make([]Genre, 0, len(list)),
		index: make(map[string]int, len(list)),
	}
	for _, genre := range list {
		if pos, ok := g.index[genre.Name]; ok {
			g.list[pos].ID = genre.ID
			continue
		}
		g.index[genre.Name] = len(g.list)
		g.list = append(g.list, genre)
	}
	return g
}

// Len returns the number of distinct genres
func (g Genres) Len() int {
	return len(g.list)
}

// All returns the genres in display order
func (g Genres) All() []Genre {
	out := make([]Genre, len(g.list))
	copy(out, g.list)
	return out
}

// Names returns the genre display names in display order
func (g Genres) Names() []string {
	names := make([]string, len(g.list))
	for i, genre := range g.list {
		names[i] = genre.Name
	}
	return names
}

// Map returns the name to id mapping
func (g Genres) Map() map[string]int {
	m := make(map[string]int, len(g.list))
	for _, genre := range g.list {
		m[genre.Name] = genre.ID
	}
	return m
}

// Lookup finds a genre by display name, case-insensitively if there is no exact match
func (g Genres) Lookup(name string) (Genre, bool) {
	if pos, ok := g.index[name]; ok {
		return g.list[pos], true
	}
	for _, genre := range g.list {
		if strings.EqualFold(genre.Name, name) {
			return genre, true
		}
	}
	return Genre{}, false
}

// ByID finds a genre by id
func (g Genres) ByID(id int) (Genre, bool) {
	for _, genre := range g.list {
		if genre.ID == id {
			return genre, true
		}
	}
	return Genre{}, false
}

// MovieSummary is one discover result. Optional fields are nil/empty when absent.
type MovieSummary struct {
	ID          int
	Title       string
	ReleaseYear *int
	Rating      *float64
	PosterPath  string
}

// HasPoster reports whether the movie has a poster reference
func (m MovieSummary) HasPoster() bool {
	return m.PosterPath != ""
}

// YearString returns the release year or an empty string
func (m MovieSummary) YearString() string {
	if m.ReleaseYear == nil {
		return ""
	}
	return strconv.Itoa(*m.ReleaseYear)
}

// RatingString returns the rating with one decimal or "N/A"
func (m MovieSummary) RatingString() string {
	if m.Rating == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*m.Rating, 'f', 1, 64)
}

// genreListResponse is the payload of /genre/movie/list
type genreListResponse struct {
	Genres *[]genreJSON `json:"genres"`
}

type genreJSON struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// discoverResponse is the payload of /discover/movie
type discoverResponse struct {
	Page         int          `json:"page"`
	Results      *[]movieJSON `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`
}

type movieJSON struct {
	ID          int      `json:"id"`
	Title       *string  `json:"title"`
	ReleaseDate string   `json:"release_date"`
	VoteAverage *float64 `json:"vote_average"`
	PosterPath  *string  `json:"poster_path"`
}

// errorResponse is the body TMDb sends with non-success statuses
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func (m movieJSON) toSummary() MovieSummary {
	summary := MovieSummary{
		ID:          m.ID,
		ReleaseYear: parseReleaseYear(m.ReleaseDate),
		Rating:      m.VoteAverage,
	}
	if m.Title != nil {
		summary.Title = *m.Title
	}
	if m.PosterPath != nil {
		summary.PosterPath = *m.PosterPath
	}
	return summary
}

// parseReleaseYear reads the leading four-digit year of a date string
func parseReleaseYear(date string) *int {
	if len(date) < 4 {
		return nil
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return nil
	}
	return &year
}
