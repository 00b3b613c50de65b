// Package filter holds the per-category filter schemas and turns the user's
// selections into a predicate over entry domains.
//
// A Filter is one of a closed set of variants (ActionFilter, SpellFilter and
// so on). Each variant exposes its facets by key; BuildPredicate walks them in
// a fixed order and joins every active facet with a top-level conjunction.
//
// ComputeResults is the pure result pipeline:
//
//  1. a nil filter yields no results
//  2. the search text is cleaned
//  3. candidates come from full-text search, or the whole index when the
//     cleaned text is empty
//  4. candidates are stably sorted by the filter's order
//  5. the compiled predicate keeps matching entries
//
// Window truncates the result for display.
package filter
