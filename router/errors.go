package router

import "errors"

var (
	// ErrNoRoute is returned when no destination clears the confidence
	// threshold and no default destination is configured. It is an expected
	// outcome, not a defect; callers branch on it with errors.Is.
	ErrNoRoute = errors.New("no route found")

	// ErrDuplicateDestination is returned when registering a name that is
	// already present in the registry.
	ErrDuplicateDestination = errors.New("destination already registered")

	// ErrEmptyDescriptions is returned when registering a destination with
	// no description texts. Such a destination could never be matched.
	ErrEmptyDescriptions = errors.New("destination has no descriptions")

	// ErrDimensionMismatch is returned when a vector's length differs from
	// the dimension established by the first entry added to an index.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrInvalidTopK is returned when an index search is asked for fewer
	// than one result.
	ErrInvalidTopK = errors.New("top_k must be at least 1")
)
