package browser

import (
	"context"
	"slices"
	"strconv"

	"github.com/jonwraymond/compendium/category"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/vocab"
)

// ActionPreset preselects action facets. Values without a matching option
// are ignored.
type ActionPreset struct {
	Types      []string `json:"types,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Traits     []string `json:"traits,omitempty"`
}

// OpenActionCategory opens the action category with p selected.
func (b *Browser) OpenActionCategory(ctx context.Context, p ActionPreset) error {
	f, err := b.GetFilterData(ctx, vocab.Action)
	if err != nil {
		return err
	}
	af := f.(*filter.ActionFilter)

	for _, o := range af.Chips.Types.Options {
		if slices.Contains(p.Types, o.Value) {
			selectChip(&af.Chips.Types, o.Value)
		}
	}

	for _, o := range af.Traits.Options {
		if slices.Contains(p.Traits, o.Value) {
			af.Traits.Selected = append(af.Traits.Selected, filter.TraitSelection{Label: o.Label, Value: o.Value})
		}
	}

	for _, o := range af.Chips.Category.Options {
		if slices.Contains(p.Categories, o.Value) {
			selectChip(&af.Chips.Category, o.Value)
		}
	}

	return b.OpenCategory(ctx, vocab.Action, category.OpenOptions{Filter: af})
}

// SpellcastingEntry describes who casts from a spell list.
type SpellcastingEntry struct {
	// Category is prepared, spontaneous, innate, focus or ritual.
	Category  string `json:"category" validate:"omitempty,oneof=prepared spontaneous innate focus ritual"`
	Tradition string `json:"tradition,omitempty"`
}

// IsRitual reports whether the entry casts rituals.
func (e SpellcastingEntry) IsRitual() bool { return e.Category == "ritual" }

// IsFocusPool reports whether the entry casts focus spells.
func (e SpellcastingEntry) IsFocusPool() bool { return e.Category == "focus" }

func (e SpellcastingEntry) isSlotted() bool {
	switch e.Category {
	case "prepared", "spontaneous", "innate":
		return true
	}
	return false
}

// OpenSpellCategory opens the spell category with the spells entry can
// cast up to maxRank preselected. A non-empty spellCategory is selected
// too. maxRank 0 selects no rank.
func (b *Browser) OpenSpellCategory(ctx context.Context, e SpellcastingEntry, maxRank int, spellCategory string) error {
	f, err := b.GetFilterData(ctx, vocab.Spell)
	if err != nil {
		return err
	}
	sf := f.(*filter.SpellFilter)

	if spellCategory != "" && hasOption(sf.Chips.Category.Options, spellCategory) {
		selectChip(&sf.Chips.Category, spellCategory)
	}
	if e.IsRitual() || e.IsFocusPool() {
		selectChip(&sf.Chips.Category, e.Category)
	}

	if maxRank > 0 {
		maxRank = min(maxRank, category.MaxSpellRank)
		for rank := 1; rank <= maxRank; rank++ {
			selectChip(&sf.Chips.Rank, strconv.Itoa(rank))
		}
		if e.isSlotted() && spellCategory == "" {
			selectChip(&sf.Chips.Category, "spell")
		}
	}

	if e.Tradition != "" && !e.IsFocusPool() && !e.IsRitual() &&
		hasOption(sf.Checkboxes.Traditions.Options, e.Tradition) &&
		!slices.Contains(sf.Checkboxes.Traditions.Selected, e.Tradition) {
		sf.Checkboxes.Traditions.Selected = append(sf.Checkboxes.Traditions.Selected, e.Tradition)
	}

	return b.OpenCategory(ctx, vocab.Spell, category.OpenOptions{Filter: sf})
}

func hasOption(opts []filter.Option, value string) bool {
	return slices.ContainsFunc(opts, func(o filter.Option) bool { return o.Value == value })
}

func selectChip(c *filter.ChipsData, value string) {
	if slices.ContainsFunc(c.Selected, func(s filter.ChipSelection) bool { return s.Value == value }) {
		return
	}
	c.Selected = append(c.Selected, filter.ChipSelection{Value: value})
}
