package script

import "errors"

var (
	// ErrScriptClosed is returned when operating on a closed script.
	ErrScriptClosed = errors.New("script closed")

	// ErrInvalidItems indicates items is not a table of strings and tables.
	ErrInvalidItems = errors.New("invalid items")
)
