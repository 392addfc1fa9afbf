package schema

import "errors"

// Sentinel errors surfaced by the store and the analyzer. Callers check them
// with errors.Is; both are usually wrapped with context about the lookup.
var (
	// ErrNotFound is returned when an assessment id was never written.
	ErrNotFound = errors.New("assessment not found")

	// ErrInsufficientData is returned when a statistic is requested over an
	// empty set. It is never silently mapped to zero, so missing data cannot
	// masquerade as a real score.
	ErrInsufficientData = errors.New("insufficient data")
)
