package filter

import "slices"

// Conjunction joins included selections of a chip group or trait list.
type Conjunction string

const (
	And Conjunction = "and"
	Or  Conjunction = "or"
)

// Valid reports whether c is a known conjunction.
func (c Conjunction) Valid() bool {
	return c == And || c == Or
}

// SortType tells the UI how a sort key compares.
type SortType string

const (
	Alpha   SortType = "alpha"
	Numeric SortType = "numeric"
)

// SortDirection is ascending or descending.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Option is a selectable facet value.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CheckboxData is a group of options that must all be satisfied.
type CheckboxData struct {
	IsExpanded bool     `json:"isExpanded"`
	Label      string   `json:"label"`
	Options    []Option `json:"options"`
	// OptionPrefix defaults to the facet key.
	OptionPrefix string   `json:"optionPrefix,omitempty"`
	Selected     []string `json:"selected"`
}

// Clone returns a deep copy.
func (c CheckboxData) Clone() CheckboxData {
	c.Options = slices.Clone(c.Options)
	c.Selected = slices.Clone(c.Selected)
	return c
}

// ChipSelection is one chosen chip; excluded chips reject matching entries.
type ChipSelection struct {
	Value   string `json:"value"`
	Exclude bool   `json:"exclude,omitempty"`
}

// ChipsData is a chip group with its own conjunction for included chips.
type ChipsData struct {
	Conjunction Conjunction `json:"conjunction"`
	IsExpanded  bool        `json:"isExpanded"`
	Label       string      `json:"label"`
	Options     []Option    `json:"options"`
	// OptionPrefix defaults to the facet key.
	OptionPrefix    string          `json:"optionPrefix,omitempty"`
	Selected        []ChipSelection `json:"selected"`
	ShowConjunction bool            `json:"showConjunction,omitempty"`
}

// Clone returns a deep copy.
func (c ChipsData) Clone() ChipsData {
	c.Options = slices.Clone(c.Options)
	c.Selected = slices.Clone(c.Selected)
	return c
}

// TraitSelection is one chosen trait; Not turns it into an exclusion.
type TraitSelection struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Not   bool   `json:"not,omitempty"`
}

// TraitData is the trait multiselect.
type TraitData struct {
	Conjunction Conjunction      `json:"conjunction"`
	Options     []Option         `json:"options"`
	Selected    []TraitSelection `json:"selected"`
}

// Clone returns a deep copy.
func (t TraitData) Clone() TraitData {
	t.Options = slices.Clone(t.Options)
	t.Selected = slices.Clone(t.Selected)
	return t
}

// SelectData is a single-choice facet. An empty selection applies nothing.
type SelectData struct {
	Label   string   `json:"label"`
	Options []Option `json:"options"`
	// OptionPrefix defaults to the facet key.
	OptionPrefix string `json:"optionPrefix,omitempty"`
	Selected     string `json:"selected"`
}

// Clone returns a deep copy.
func (s SelectData) Clone() SelectData {
	s.Options = slices.Clone(s.Options)
	return s
}

// OrderOption describes one sort key.
type OrderOption struct {
	Label string   `json:"label"`
	Type  SortType `json:"type"`
}

// OrderData is the sort descriptor. Every key in Options must be a field
// the category stores on its entries.
type OrderData struct {
	By        string                 `json:"by"`
	Direction SortDirection          `json:"direction"`
	Options   map[string]OrderOption `json:"options"`
	Type      SortType               `json:"type"`
}

// Clone returns a deep copy.
func (o OrderData) Clone() OrderData {
	if o.Options != nil {
		opts := make(map[string]OrderOption, len(o.Options))
		for k, v := range o.Options {
			opts[k] = v
		}
		o.Options = opts
	}
	return o
}

// RangeValues are the parsed bounds of a numeric range and the raw input.
type RangeValues struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	InputMin string  `json:"inputMin"`
	InputMax string  `json:"inputMax"`
}

// RangeData is a numeric range facet driven by text input.
type RangeData struct {
	Changed    bool        `json:"changed"`
	DefaultMin string      `json:"defaultMin"`
	DefaultMax string      `json:"defaultMax"`
	IsExpanded bool        `json:"isExpanded"`
	Values     RangeValues `json:"values"`
	Label      string      `json:"label"`
	// OptionPrefix defaults to the facet key.
	OptionPrefix string `json:"optionPrefix,omitempty"`
}

// LevelData is the level slider. It filters only when moved off its bounds.
type LevelData struct {
	Changed    bool `json:"changed"`
	IsExpanded bool `json:"isExpanded"`
	Min        int  `json:"min"`
	Max        int  `json:"max"`
	From       int  `json:"from"`
	To         int  `json:"to"`
}

// Active reports whether the level bounds differ from the full range.
func (l LevelData) Active() bool {
	return l.From != l.Min || l.To != l.Max
}

// SearchData holds the free-text query.
type SearchData struct {
	Text string `json:"text"`
}

func newChips(label, prefix string, conj Conjunction, expanded bool) ChipsData {
	return ChipsData{
		Conjunction:  conj,
		IsExpanded:   expanded,
		Label:        label,
		Options:      []Option{},
		OptionPrefix: prefix,
		Selected:     []ChipSelection{},
	}
}

func newSource() CheckboxData {
	return CheckboxData{
		Label:    "Source",
		Options:  []Option{},
		Selected: []string{},
	}
}

func newTraits() TraitData {
	return TraitData{
		Conjunction: And,
		Options:     []Option{},
		Selected:    []TraitSelection{},
	}
}

func newLevel(lo, hi int) LevelData {
	return LevelData{Min: lo, Max: hi, From: lo, To: hi}
}

var (
	orderName  = OrderOption{Label: "Name", Type: Alpha}
	orderLevel = OrderOption{Label: "Level", Type: Numeric}
)
