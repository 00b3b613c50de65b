package filter

import "github.com/sahilm/fuzzy"

type optionLabels []Option

func (o optionLabels) String(i int) string { return o[i].Label }
func (o optionLabels) Len() int            { return len(o) }

// Suggest returns up to limit trait options whose label fuzzy-matches query,
// best match first. An empty query returns the leading options unchanged.
func (t TraitData) Suggest(query string, limit int) []Option {
	if query == "" {
		n := len(t.Options)
		if limit > 0 {
			n = min(n, limit)
		}
		return append([]Option(nil), t.Options[:n]...)
	}

	matches := fuzzy.FindFrom(query, optionLabels(t.Options))
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, t.Options[m.Index])
	}
	return out
}
