// Package browse implements the browse session: the state machine that pages
// through a genre's top-rated movies and accumulates them for display.
//
// A browse cycle runs from one Start to the next. Within a cycle the accumulated
// movies only grow and the page cursor only moves forward:
//
//	session, _ := browse.NewSession(client, 20, logger)
//	first, err := session.Start(ctx, genreID)    // page 1
//	more, err := session.Extend(ctx)             // page 2
//	if errors.Is(err, browse.ErrNoMoreResults) { // expected end of results
//	}
//
// Grid placement is a pure function of the accumulated index, see Position.
package browse
