package filter

import (
	"cmp"
	"fmt"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jonwraymond/compendium/entry"
)

// NewCollator returns a collator for locale, falling back to English for
// unparsable tags. Collators are not safe for concurrent use.
func NewCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag)
}

// SortEntries stably sorts entries in place by order. Numeric keys break ties
// by name. Descending order is the ascending sequence reversed.
func SortEntries(entries []entry.Entry, order OrderData, locale string) error {
	col := NewCollator(locale)
	byName := func(a, b entry.Entry) int {
		return col.CompareString(a.Name, b.Name)
	}

	var less func(a, b entry.Entry) int
	switch order.By {
	case "", "name":
		less = byName
	case "level":
		less = func(a, b entry.Entry) int {
			return cmp.Or(cmp.Compare(a.LevelValue(), b.LevelValue()), byName(a, b))
		}
	case "rank":
		less = func(a, b entry.Entry) int {
			return cmp.Or(cmp.Compare(a.RankValue(), b.RankValue()), byName(a, b))
		}
	case "price":
		less = func(a, b entry.Entry) int {
			return cmp.Or(cmp.Compare(a.PriceInCopper(), b.PriceInCopper()), byName(a, b))
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSortKey, order.By)
	}

	slices.SortStableFunc(entries, less)
	if order.Direction == Desc {
		slices.Reverse(entries)
	}
	return nil
}
