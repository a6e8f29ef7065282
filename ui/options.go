package ui

import (
	"github.com/rs/zerolog"

	"github.com/s0up4200/marquee/filter"
)

// Opener launches a URL outside the terminal
type Opener func(url string) error

// Option configures a Model
type Option func(*Model)

// WithOpener sets the function used to open movie pages
func WithOpener(open Opener) Option {
	return func(m *Model) {
		m.open = open
	}
}

// WithFilter hides fetched movies that do not match the filter
func WithFilter(f *filter.ExprFilter) Option {
	return func(m *Model) {
		m.filter = f
	}
}

// WithColumns sets the grid width in cards
func WithColumns(columns int) Option {
	return func(m *Model) {
		if columns > 0 {
			m.columns = columns
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}
