package filter

import "errors"

// Error values returned by filter operations.
var (
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownFacet       = errors.New("unknown facet")
	ErrUnknownSortKey     = errors.New("unknown sort key")
	ErrInvalidConjunction = errors.New("invalid conjunction")
	ErrInvalidRange       = errors.New("invalid range")
	ErrNoSearcher         = errors.New("search text given without a searcher")
)
