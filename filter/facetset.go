package filter

import "fmt"

type named[T any] struct {
	key  string
	data T
}

// facetSet is a variant's facets keyed the way selections address them.
// Slices keep a fixed order so the built predicate is stable.
type facetSet struct {
	checkboxes []named[*CheckboxData]
	chips      []named[*ChipsData]
	level      *LevelData
	ranges     []named[*RangeData]
	selects    []named[*SelectData]
	source     *CheckboxData
}

func facetsOf(f Filter) facetSet {
	switch f := f.(type) {
	case *ActionFilter:
		return facetSet{
			chips: []named[*ChipsData]{
				{"types", &f.Chips.Types},
				{"category", &f.Chips.Category},
			},
			source: &f.Source,
		}
	case *BestiaryFilter:
		return facetSet{
			chips: []named[*ChipsData]{
				{"sizes", &f.Chips.Sizes},
				{"rarity", &f.Chips.Rarity},
			},
			level:  &f.Level,
			source: &f.Source,
		}
	case *CampaignFeatureFilter:
		return facetSet{
			chips: []named[*ChipsData]{
				{"category", &f.Chips.Category},
				{"rarity", &f.Chips.Rarity},
			},
			level:  &f.Level,
			source: &f.Source,
		}
	case *EquipmentFilter:
		return facetSet{
			chips: []named[*ChipsData]{
				{"itemTypes", &f.Chips.ItemTypes},
				{"rarity", &f.Chips.Rarity},
				{"armorTypes", &f.Chips.ArmorTypes},
				{"weaponTypes", &f.Chips.WeaponTypes},
			},
			level:  &f.Level,
			ranges: []named[*RangeData]{{"price", &f.Ranges.Price}},
			source: &f.Source,
		}
	case *FeatFilter:
		return facetSet{
			chips: []named[*ChipsData]{
				{"category", &f.Chips.Category},
				{"skills", &f.Chips.Skills},
				{"rarity", &f.Chips.Rarity},
			},
			level:  &f.Level,
			source: &f.Source,
		}
	case *HazardFilter:
		return facetSet{
			chips: []named[*ChipsData]{
				{"complexity", &f.Chips.Complexity},
				{"rarity", &f.Chips.Rarity},
			},
			level:  &f.Level,
			source: &f.Source,
		}
	case *SpellFilter:
		return facetSet{
			checkboxes: []named[*CheckboxData]{{"traditions", &f.Checkboxes.Traditions}},
			chips: []named[*ChipsData]{
				{"category", &f.Chips.Category},
				{"rank", &f.Chips.Rank},
				{"defense", &f.Chips.Defense},
				{"rarity", &f.Chips.Rarity},
			},
			selects: []named[*SelectData]{{"timefilter", &f.Selects.TimeFilter}},
			source:  &f.Source,
		}
	default:
		panic(fmt.Sprintf("filter: unhandled variant %T", f))
	}
}

func lookup[T any](list []named[T], key string) (T, bool) {
	for _, n := range list {
		if n.key == key {
			return n.data, true
		}
	}
	var zero T
	return zero, false
}

// Chips returns the chip group stored under key.
func Chips(f Filter, key string) (*ChipsData, bool) {
	return lookup(facetsOf(f).chips, key)
}

// Checkboxes returns the checkbox group stored under key.
func Checkboxes(f Filter, key string) (*CheckboxData, bool) {
	return lookup(facetsOf(f).checkboxes, key)
}

// Range returns the numeric range stored under key.
func Range(f Filter, key string) (*RangeData, bool) {
	return lookup(facetsOf(f).ranges, key)
}

// Select returns the single-choice facet stored under key.
func Select(f Filter, key string) (*SelectData, bool) {
	return lookup(facetsOf(f).selects, key)
}

// Level returns the level slider, if the variant has one.
func Level(f Filter) (*LevelData, bool) {
	l := facetsOf(f).level
	return l, l != nil
}

// Source returns the source checkbox list.
func Source(f Filter) *CheckboxData {
	return facetsOf(f).source
}
