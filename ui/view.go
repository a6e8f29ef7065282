package ui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/s0up4200/marquee/browse"
	"github.com/s0up4200/marquee/tmdb"
)

// card height including border and bottom margin
const cardHeight = 6

// View renders the current screen
func (m Model) View() string {
	if m.view == viewGenres {
		return m.genreList.View() + "\n" + m.help.View(m.keys)
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🎬 " + m.genre.Name))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render(m.summary()))
	sb.WriteString("\n\n")

	if len(m.movies) > 0 {
		sb.WriteString(m.renderGrid())
		sb.WriteString("\n")
	}

	switch {
	case m.loading:
		sb.WriteString(m.spinner.View() + " Loading movies...")
	case len(m.movies) > 0 || m.fetched > 0:
		sb.WriteString(moreStyle.Render(loadMoreLabel))
	}
	sb.WriteString("\n")

	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		sb.WriteString(style.Render(m.status))
	} else if len(m.movies) > 0 {
		sb.WriteString(statusStyle.Render(m.links.MovieURL(m.movies[m.cursor].ID)))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.help.View(m.keys))

	return sb.String()
}

func (m Model) summary() string {
	if m.fetched == 0 {
		return "Top rated movies"
	}
	if len(m.movies) == m.fetched {
		return fmt.Sprintf("Top rated movies: %d shown", len(m.movies))
	}
	return fmt.Sprintf("Top rated movies: %d of %d shown", len(m.movies), m.fetched)
}

// renderGrid lays out the visible rows so the selected card stays on screen
func (m Model) renderGrid() string {
	rows := make([][]string, browse.Rows(len(m.movies), m.columns))
	for i, movie := range m.movies {
		cell := browse.Position(i, m.columns)
		rows[cell.Row] = append(rows[cell.Row], m.renderCard(movie, i == m.cursor))
	}

	fit := max((m.height-10)/cardHeight, 1)
	first := 0
	if selected := browse.Position(m.cursor, m.columns).Row; selected >= fit {
		first = selected - fit + 1
	}
	last := min(first+fit, len(rows))

	rendered := make([]string, 0, last-first)
	for _, row := range rows[first:last] {
		rendered = append(rendered, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func (m Model) renderCard(movie tmdb.MovieSummary, selected bool) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}

	lines := []string{
		posterStyle.Render(posterLabel(movie)),
		truncate(browse.CardTitle(movie), cardWidth-2),
		ratingStyle.Render(browse.CardRating(movie)),
	}
	return style.Render(strings.Join(lines, "\n"))
}

func posterLabel(movie tmdb.MovieSummary) string {
	if !movie.HasPoster() {
		return browse.PosterPlaceholder
	}
	return "🖼 " + truncate(path.Base(movie.PosterPath), cardWidth-6)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
