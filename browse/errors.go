package browse

import "errors"

// Common errors returned by a Session.
var (
	// ErrInvalidState is returned when Extend is called before a successful Start.
	ErrInvalidState = errors.New("browse session has no loaded genre")

	// ErrNoMoreResults signals an empty page. It is an expected terminal condition, not a fault.
	ErrNoMoreResults = errors.New("no more movies found")

	// ErrBusy is returned when Extend is called while another operation is in flight.
	ErrBusy = errors.New("browse session is busy")

	// ErrSuperseded is returned by an operation that a newer Start replaced.
	ErrSuperseded = errors.New("browse operation superseded by a new genre selection")
)
