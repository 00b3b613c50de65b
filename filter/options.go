package filter

import (
	"slices"
	"strings"

	"github.com/jonwraymond/compendium/domain"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/vocab"
)

// GenerateOptions localizes a vocabulary table into options. When sorted is
// set the options are ordered by label using the locale's collation;
// otherwise table order is kept.
func GenerateOptions(t vocab.Table, l i18n.Localizer, sorted bool) []Option {
	out := make([]Option, 0, len(t))
	for _, lbl := range t {
		out = append(out, Option{Label: l.Localize(lbl.Label), Value: lbl.Key})
	}
	if sorted {
		SortOptions(out, l.Lang())
	}
	return out
}

// SortOptions orders options by label using the locale's collation.
func SortOptions(opts []Option, locale string) {
	col := NewCollator(locale)
	slices.SortStableFunc(opts, func(a, b Option) int {
		return col.CompareString(a.Label, b.Label)
	})
}

// SourceOptions turns publication names into source options valued
// "source:<slug>". Blank and duplicate names are dropped.
func SourceOptions(publications []string, locale string) []Option {
	seen := make(map[string]bool, len(publications))
	out := make([]Option, 0, len(publications))
	for _, p := range publications {
		p = strings.TrimSpace(p)
		slug := domain.Slug(p)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, Option{Label: p, Value: domain.Tag("source", slug)})
	}
	SortOptions(out, locale)
	return out
}
