// Package entry defines the index entry surfaced by the compendium browser.
package entry

import (
	"github.com/jonwraymond/compendium/domain"
)

// Entry is one browsable record. Entries are built once per load and never
// patched afterwards.
type Entry struct {
	Name         string      `json:"name"`
	OriginalName string      `json:"originalName,omitempty"`
	Image        string      `json:"img,omitempty"`
	UUID         string      `json:"uuid"`
	Domains      *domain.Set `json:"-"`

	Level       *int   `json:"level,omitempty"`
	Rank        *int   `json:"rank,omitempty"`
	Price       *Coins `json:"price,omitempty"`
	Rarity      string `json:"rarity,omitempty"`
	ActionGlyph string `json:"actionGlyph,omitempty"`
}

// Tags returns the entry's domains in insertion order.
func (e Entry) Tags() []string {
	return e.Domains.Slice()
}

// LevelValue returns the level or zero when the category has none.
func (e Entry) LevelValue() int {
	if e.Level == nil {
		return 0
	}
	return *e.Level
}

// RankValue returns the spell rank or zero.
func (e Entry) RankValue() int {
	if e.Rank == nil {
		return 0
	}
	return *e.Rank
}

// PriceInCopper returns the normalized price or zero.
func (e Entry) PriceInCopper() int64 {
	if e.Price == nil {
		return 0
	}
	return e.Price.CopperValue()
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
