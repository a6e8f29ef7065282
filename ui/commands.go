package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/s0up4200/marquee/tmdb"
)

// browseStartedMsg carries the first page of a genre
type browseStartedMsg struct {
	requestID int
	genre     tmdb.Genre
	batch     []tmdb.MovieSummary
	err       error
}

// browseExtendedMsg carries a follow-up page
type browseExtendedMsg struct {
	requestID int
	batch     []tmdb.MovieSummary
	err       error
}

// openFailedMsg reports a browser launch that could not start
type openFailedMsg struct {
	url string
	err error
}

func startBrowseCmd(ctx context.Context, session Browser, genre tmdb.Genre, requestID int) tea.Cmd {
	return func() tea.Msg {
		batch, err := session.Start(ctx, genre.ID)
		return browseStartedMsg{
			requestID: requestID,
			genre:     genre,
			batch:     batch,
			err:       err,
		}
	}
}

func extendBrowseCmd(ctx context.Context, session Browser, requestID int) tea.Cmd {
	return func() tea.Msg {
		batch, err := session.Extend(ctx)
		return browseExtendedMsg{
			requestID: requestID,
			batch:     batch,
			err:       err,
		}
	}
}

// openMovieCmd captures the page URL by value when the key is pressed
func openMovieCmd(open Opener, url string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openFailedMsg{url: url, err: err}
		}
		return nil
	}
}
