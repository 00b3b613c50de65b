// Package search provides the full-text index used by compendium categories.
//
// It exists to:
//   - Keep text matching separate from facet filtering
//   - Tokenize indexed text and queries with one analyzer so both sides
//     normalize identically
//
// # Usage
//
// The primary type is [Index], an in-memory Bleve index over entry fields:
//
//	idx, err := search.New(search.Config{
//	    Fields:      []string{"name", "originalName"},
//	    StoreFields: []string{"name", "originalName", "img", "uuid", "domains"},
//	    Locale:      "en",
//	})
//	err = idx.Build(ctx, entries)
//	hits, err := idx.Search(ctx, "fire ball")
//
// # Analysis
//
// Text is segmented on Unicode word boundaries, then each token is lowercased
// for the configured locale, stripped of accents and quote characters, checked
// against the stop-word list and dropped when shorter than two runes.
//
// # Queries
//
// Every query token must match (AND). A token matches any indexed token it is
// a prefix of, in any searchable field. Hits carry only the configured store
// fields; relevance order is not preserved by callers, which sort explicitly.
//
// # Thread Safety
//
// Index is safe for concurrent use. Rebuilding with an unchanged entry set is
// a no-op, detected by fingerprint.
package search
