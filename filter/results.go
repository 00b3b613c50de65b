package filter

import (
	"context"
	"slices"

	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/predicate"
	"github.com/jonwraymond/compendium/search"
)

// DefaultResultLimit is the initial display window.
const DefaultResultLimit = 100

// Searcher runs a full-text query over a category's entries.
type Searcher interface {
	Search(ctx context.Context, text string) ([]entry.Entry, error)
}

// Input is everything ComputeResults reads.
type Input struct {
	// Entries is the full index, in any order. It is not modified.
	Entries  []entry.Entry
	Searcher Searcher
	Filter   Filter
	// Memo caches the compiled predicate between calls. Optional.
	Memo   *predicate.Memo
	Locale string
}

// ComputeResults returns the sorted entries matching the filter's search
// text and selections.
func ComputeResults(ctx context.Context, in Input) ([]entry.Entry, error) {
	if in.Filter == nil {
		return []entry.Entry{}, nil
	}
	base := in.Filter.Base()

	var candidates []entry.Entry
	if text := search.CleanQuery(base.Search.Text); text != "" {
		if in.Searcher == nil {
			return nil, ErrNoSearcher
		}
		hits, err := in.Searcher.Search(ctx, text)
		if err != nil {
			return nil, err
		}
		candidates = hits
	} else {
		candidates = slices.Clone(in.Entries)
	}

	if err := SortEntries(candidates, base.Order, in.Locale); err != nil {
		return nil, err
	}

	stmt := BuildPredicate(in.Filter)
	var compiled predicate.Compiled
	if in.Memo != nil {
		compiled = in.Memo.Get(stmt)
	} else {
		compiled = predicate.Compile(stmt)
	}

	out := candidates[:0]
	for _, e := range candidates {
		if compiled.Test(e.Domains) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Window returns at most limit results. A non-positive limit means
// DefaultResultLimit.
func Window(results []entry.Entry, limit int) []entry.Entry {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if len(results) <= limit {
		return results
	}
	return results[:limit:limit]
}
