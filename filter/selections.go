package filter

import (
	"fmt"
	"maps"
	"slices"
)

// LevelSelection moves the level slider.
type LevelSelection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// RangeSelection is raw range input, parsed by the category's RangeParser.
type RangeSelection struct {
	Min string `json:"min"`
	Max string `json:"max"`
}

// OrderSelection changes the sort.
type OrderSelection struct {
	By        string        `json:"by" validate:"required"`
	Direction SortDirection `json:"direction,omitempty" validate:"omitempty,oneof=asc desc"`
}

// Selections address facets by key, independent of the variant's Go shape.
// They are how callers outside the package preset a filter.
type Selections struct {
	Search           *string                    `json:"search,omitempty"`
	Order            *OrderSelection            `json:"order,omitempty"`
	Checkboxes       map[string][]string        `json:"checkboxes,omitempty"`
	Chips            map[string][]ChipSelection `json:"chips,omitempty"`
	ChipConjunctions map[string]Conjunction     `json:"chipConjunctions,omitempty"`
	Level            *LevelSelection            `json:"level,omitempty"`
	Ranges           map[string]RangeSelection  `json:"ranges,omitempty"`
	Selects          map[string]string          `json:"selects,omitempty"`
	Source           []string                   `json:"source,omitempty"`
	Traits           []TraitSelection           `json:"traits,omitempty"`
	TraitConjunction Conjunction                `json:"traitConjunction,omitempty" validate:"omitempty,oneof=and or"`
}

// Apply returns a clone of f with s applied. f itself is not modified.
// Facet keys the variant does not have are reported as ErrUnknownFacet.
func Apply(f Filter, s Selections, parse RangeParser) (Filter, error) {
	out := f.Clone()
	fs := facetsOf(out)
	base := out.Base()

	if s.Search != nil {
		base.Search.Text = *s.Search
	}

	if o := s.Order; o != nil {
		opt, ok := base.Order.Options[o.By]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSortKey, o.By)
		}
		base.Order.By = o.By
		base.Order.Type = opt.Type
		base.Order.Direction = Asc
		if o.Direction != "" {
			if o.Direction != Asc && o.Direction != Desc {
				return nil, fmt.Errorf("%w: direction %q", ErrUnknownSortKey, o.Direction)
			}
			base.Order.Direction = o.Direction
		}
	}

	for _, key := range slices.Sorted(maps.Keys(s.Checkboxes)) {
		c, ok := lookup(fs.checkboxes, key)
		if !ok {
			return nil, fmt.Errorf("%w: checkboxes %q", ErrUnknownFacet, key)
		}
		c.Selected = slices.Clone(s.Checkboxes[key])
	}

	for _, key := range slices.Sorted(maps.Keys(s.Chips)) {
		c, ok := lookup(fs.chips, key)
		if !ok {
			return nil, fmt.Errorf("%w: chips %q", ErrUnknownFacet, key)
		}
		c.Selected = slices.Clone(s.Chips[key])
	}

	for _, key := range slices.Sorted(maps.Keys(s.ChipConjunctions)) {
		c, ok := lookup(fs.chips, key)
		if !ok {
			return nil, fmt.Errorf("%w: chips %q", ErrUnknownFacet, key)
		}
		conj := s.ChipConjunctions[key]
		if !conj.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidConjunction, conj)
		}
		c.Conjunction = conj
	}

	if l := s.Level; l != nil {
		if fs.level == nil {
			return nil, fmt.Errorf("%w: level", ErrUnknownFacet)
		}
		if err := fs.level.SetBounds(l.From, l.To); err != nil {
			return nil, err
		}
	}

	for _, key := range slices.Sorted(maps.Keys(s.Ranges)) {
		r, ok := lookup(fs.ranges, key)
		if !ok {
			return nil, fmt.Errorf("%w: ranges %q", ErrUnknownFacet, key)
		}
		in := s.Ranges[key]
		r.SetInput(in.Min, in.Max, parse)
	}

	for _, key := range slices.Sorted(maps.Keys(s.Selects)) {
		sel, ok := lookup(fs.selects, key)
		if !ok {
			return nil, fmt.Errorf("%w: selects %q", ErrUnknownFacet, key)
		}
		sel.Selected = s.Selects[key]
	}

	if s.Source != nil {
		fs.source.Selected = slices.Clone(s.Source)
	}

	if s.Traits != nil {
		selected := slices.Clone(s.Traits)
		for i, t := range selected {
			if t.Label != "" {
				continue
			}
			if j := slices.IndexFunc(base.Traits.Options, func(o Option) bool { return o.Value == t.Value }); j >= 0 {
				selected[i].Label = base.Traits.Options[j].Label
			}
		}
		base.Traits.Selected = selected
	}
	if s.TraitConjunction != "" {
		if !s.TraitConjunction.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidConjunction, s.TraitConjunction)
		}
		base.Traits.Conjunction = s.TraitConjunction
	}

	return out, nil
}
