// Package vocab holds the read-only vocabulary tables used to build filter
// options: content categories, trait keys and their display labels.
//
// Labels are English source strings; they double as localization keys.
package vocab

import (
	"fmt"
	"slices"
)

// Category names one independently indexed content type.
type Category string

// Content categories.
const (
	Action          Category = "action"
	Bestiary        Category = "bestiary"
	CampaignFeature Category = "campaignFeature"
	Equipment       Category = "equipment"
	Feat            Category = "feat"
	Hazard          Category = "hazard"
	Spell           Category = "spell"
)

// Categories lists every category in navigation order.
var Categories = []Category{Action, Bestiary, CampaignFeature, Equipment, Feat, Hazard, Spell}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !slices.Contains(Categories, c) {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Label pairs a vocabulary key with its display label.
type Label struct {
	Key   string
	Label string
}

// Table is an ordered key → label mapping.
type Table []Label

// Has reports whether key is in the table.
func (t Table) Has(key string) bool {
	return slices.IndexFunc(t, func(l Label) bool { return l.Key == key }) >= 0
}

// Get returns the label for key.
func (t Table) Get(key string) (string, bool) {
	for _, l := range t {
		if l.Key == key {
			return l.Label, true
		}
	}
	return "", false
}

// Keys returns the keys in table order.
func (t Table) Keys() []string {
	out := make([]string, len(t))
	for i, l := range t {
		out[i] = l.Key
	}
	return out
}

// Pick keeps only the given keys, in table order.
func (t Table) Pick(keys ...string) Table {
	var out Table
	for _, l := range t {
		if slices.Contains(keys, l.Key) {
			out = append(out, l)
		}
	}
	return out
}

// Omit drops the given keys.
func (t Table) Omit(keys ...string) Table {
	var out Table
	for _, l := range t {
		if !slices.Contains(keys, l.Key) {
			out = append(out, l)
		}
	}
	return out
}

// Merge concatenates tables. A repeated key keeps its first position and
// takes the later label.
func Merge(tables ...Table) Table {
	var out Table
	pos := map[string]int{}
	for _, t := range tables {
		for _, l := range t {
			if i, ok := pos[l.Key]; ok {
				out[i].Label = l.Label
				continue
			}
			pos[l.Key] = len(out)
			out = append(out, l)
		}
	}
	return out
}

func table(pairs ...string) Table {
	if len(pairs)%2 != 0 {
		panic("vocab: odd number of table arguments")
	}
	t := make(Table, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		t = append(t, Label{Key: pairs[i], Label: pairs[i+1]})
	}
	return t
}
