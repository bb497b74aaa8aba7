package foundation

import "errors"

// ErrUnknownAction is returned for a key binding naming no list action.
var ErrUnknownAction = errors.New("unknown list action")
