package browser

import (
	"errors"

	"github.com/jonwraymond/compendium/category"
	"github.com/jonwraymond/compendium/filter"
)

// Error values returned by the browser.
var (
	// ErrUnknownCategory is returned when a category name is not one the
	// browser serves.
	ErrUnknownCategory = filter.ErrUnknownCategory

	// ErrGMOnly is returned when a player opens a GM-only category.
	ErrGMOnly = errors.New("category is only available to the GM")

	// ErrNotInitialized is returned when a filter is supplied for a
	// category that has never loaded.
	ErrNotInitialized = category.ErrNotInitialized

	// ErrNoActiveCategory is returned by operations on the active category
	// before one was opened.
	ErrNoActiveCategory = errors.New("no active category")

	// ErrTooManyResults is returned by TableResults above category.MaxTableSize.
	ErrTooManyResults = category.ErrTooManyResults
)
