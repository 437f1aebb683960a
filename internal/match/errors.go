package match

import "errors"

// ErrInvalidInput marks a query name that is empty or normalizes to zero
// tokens. The request is rejected outright; it is never coerced into a
// no-match decision, which would be a silent false negative.
var ErrInvalidInput = errors.New("query name is empty after normalization")

// ErrSnapshotUnavailable marks screening attempted before the watchlist
// store has published a snapshot, or against an empty snapshot. Transient:
// callers should retry once loading completes.
var ErrSnapshotUnavailable = errors.New("watchlist snapshot unavailable")
