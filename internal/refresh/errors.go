package refresh

import "errors"

// ErrNoPosition is returned when a refresh is requested before any
// position update has been seen.
var ErrNoPosition = errors.New("no current position to refresh from")
