package filter

import (
	"github.com/jonwraymond/compendium/vocab"
)

// Filter is the closed set of per-category filter schemas. Every variant
// embeds BaseFilter and is handled by pointer.
type Filter interface {
	// Category names the category the schema belongs to.
	Category() vocab.Category
	// Base exposes the fields shared by every variant.
	Base() *BaseFilter
	// Clone returns a deep copy that shares no mutable state.
	Clone() Filter

	sealed()
}

// BaseFilter holds the order, search and trait facets every category has.
type BaseFilter struct {
	Order  OrderData  `json:"order"`
	Search SearchData `json:"search"`
	Traits TraitData  `json:"traits"`
}

// Base implements Filter.
func (b *BaseFilter) Base() *BaseFilter { return b }

func (b *BaseFilter) sealed() {}

func (b BaseFilter) clone() BaseFilter {
	b.Order = b.Order.Clone()
	b.Traits = b.Traits.Clone()
	return b
}

func newBase(by string, options map[string]OrderOption) BaseFilter {
	return BaseFilter{
		Order: OrderData{
			By:        by,
			Direction: Asc,
			Options:   options,
			Type:      options[by].Type,
		},
		Traits: newTraits(),
	}
}

// ActionChips are the chip groups of the action category.
type ActionChips struct {
	Types    ChipsData `json:"types"`
	Category ChipsData `json:"category"`
}

// ActionFilter filters actions and abilities.
type ActionFilter struct {
	BaseFilter
	Chips  ActionChips  `json:"chips"`
	Source CheckboxData `json:"source"`
}

// NewActionFilter returns the pristine action schema.
func NewActionFilter() *ActionFilter {
	return &ActionFilter{
		BaseFilter: newBase("name", map[string]OrderOption{"name": orderName}),
		Chips: ActionChips{
			Types:    newChips("Action Type", "action-type", Or, true),
			Category: newChips("Categories", "", Or, true),
		},
		Source: newSource(),
	}
}

// Category implements Filter.
func (f *ActionFilter) Category() vocab.Category { return vocab.Action }

// Clone implements Filter.
func (f *ActionFilter) Clone() Filter {
	c := *f
	c.BaseFilter = f.BaseFilter.clone()
	c.Chips.Types = f.Chips.Types.Clone()
	c.Chips.Category = f.Chips.Category.Clone()
	c.Source = f.Source.Clone()
	return &c
}

// BestiaryChips are the chip groups of the bestiary category.
type BestiaryChips struct {
	Rarity ChipsData `json:"rarity"`
	Sizes  ChipsData `json:"sizes"`
}

// BestiaryFilter filters NPCs.
type BestiaryFilter struct {
	BaseFilter
	Chips  BestiaryChips `json:"chips"`
	Source CheckboxData  `json:"source"`
	Level  LevelData     `json:"level"`
}

// NewBestiaryFilter returns the pristine bestiary schema.
func NewBestiaryFilter() *BestiaryFilter {
	return &BestiaryFilter{
		BaseFilter: newBase("level", map[string]OrderOption{"name": orderName, "level": orderLevel}),
		Chips: BestiaryChips{
			Sizes:  newChips("Sizes", "size", Or, true),
			Rarity: newChips("Rarities", "", Or, false),
		},
		Source: newSource(),
		Level:  newLevel(-1, 25),
	}
}

// Category implements Filter.
func (f *BestiaryFilter) Category() vocab.Category { return vocab.Bestiary }

// Clone implements Filter.
func (f *BestiaryFilter) Clone() Filter {
	c := *f
	c.BaseFilter = f.BaseFilter.clone()
	c.Chips.Rarity = f.Chips.Rarity.Clone()
	c.Chips.Sizes = f.Chips.Sizes.Clone()
	c.Source = f.Source.Clone()
	return &c
}

// CampaignFeatureChips are the chip groups of the campaign feature category.
type CampaignFeatureChips struct {
	Category ChipsData `json:"category"`
	Rarity   ChipsData `json:"rarity"`
}

// CampaignFeatureFilter filters campaign features such as kingdom feats.
type CampaignFeatureFilter struct {
	BaseFilter
	Chips  CampaignFeatureChips `json:"chips"`
	Level  LevelData            `json:"level"`
	Source CheckboxData         `json:"source"`
}

// NewCampaignFeatureFilter returns the pristine campaign feature schema.
func NewCampaignFeatureFilter() *CampaignFeatureFilter {
	return &CampaignFeatureFilter{
		BaseFilter: newBase("level", map[string]OrderOption{"name": orderName, "level": orderLevel}),
		Chips: CampaignFeatureChips{
			Category: newChips("Categories", "", Or, false),
			Rarity:   newChips("Rarities", "", Or, false),
		},
		Level:  newLevel(0, 20),
		Source: newSource(),
	}
}

// Category implements Filter.
func (f *CampaignFeatureFilter) Category() vocab.Category { return vocab.CampaignFeature }

// Clone implements Filter.
func (f *CampaignFeatureFilter) Clone() Filter {
	c := *f
	c.BaseFilter = f.BaseFilter.clone()
	c.Chips.Category = f.Chips.Category.Clone()
	c.Chips.Rarity = f.Chips.Rarity.Clone()
	c.Source = f.Source.Clone()
	return &c
}

// EquipmentChips are the chip groups of the equipment category.
type EquipmentChips struct {
	ArmorTypes  ChipsData `json:"armorTypes"`
	ItemTypes   ChipsData `json:"itemTypes"`
	Rarity      ChipsData `json:"rarity"`
	WeaponTypes ChipsData `json:"weaponTypes"`
}

// EquipmentRanges are the numeric ranges of the equipment category.
type EquipmentRanges struct {
	Price RangeData `json:"price"`
}

// MaxPriceCopper is the upper bound of the default price range (200,000 gp).
const MaxPriceCopper = 20_000_000

// EquipmentFilter filters physical items.
type EquipmentFilter struct {
	BaseFilter
	Chips  EquipmentChips  `json:"chips"`
	Ranges EquipmentRanges `json:"ranges"`
	Level  LevelData       `json:"level"`
	Source CheckboxData    `json:"source"`
}

// NewEquipmentFilter returns the pristine equipment schema. cp and gp are
// the localized copper and gold abbreviations.
func NewEquipmentFilter(cp, gp string) *EquipmentFilter {
	minInput, maxInput := "0"+cp, "200,000"+gp
	return &EquipmentFilter{
		BaseFilter: newBase("level", map[string]OrderOption{
			"name":  orderName,
			"level": orderLevel,
			"price": {Label: "Price", Type: Numeric},
		}),
		Chips: EquipmentChips{
			ItemTypes:   newChips("Item Types", "type", Or, true),
			Rarity:      newChips("Rarities", "", Or, false),
			ArmorTypes:  newChips("Armor", "type", Or, false),
			WeaponTypes: newChips("Weapons", "type", Or, false),
		},
		Ranges: EquipmentRanges{
			Price: RangeData{
				DefaultMin: minInput,
				DefaultMax: maxInput,
				Label:      "Price",
				Values: RangeValues{
					Min:      0,
					Max:      MaxPriceCopper,
					InputMin: minInput,
					InputMax: maxInput,
				},
			},
		},
		Level:  newLevel(0, 30),
		Source: newSource(),
	}
}

// Category implements Filter.
func (f *EquipmentFilter) Category() vocab.Category { return vocab.Equipment }

// Clone implements Filter.
func (f *EquipmentFilter) Clone() Filter {
	c := *f
	c.BaseFilter = f.BaseFilter.clone()
	c.Chips.ArmorTypes = f.Chips.ArmorTypes.Clone()
	c.Chips.ItemTypes = f.Chips.ItemTypes.Clone()
	c.Chips.Rarity = f.Chips.Rarity.Clone()
	c.Chips.WeaponTypes = f.Chips.WeaponTypes.Clone()
	c.Source = f.Source.Clone()
	return &c
}

// FeatChips are the chip groups of the feat category.
type FeatChips struct {
	Category ChipsData `json:"category"`
	Skills   ChipsData `json:"skills"`
	Rarity   ChipsData `json:"rarity"`
}

// FeatFilter filters feats and features.
type FeatFilter struct {
	BaseFilter
	Chips  FeatChips    `json:"chips"`
	Level  LevelData    `json:"level"`
	Source CheckboxData `json:"source"`
}

// NewFeatFilter returns the pristine feat schema.
func NewFeatFilter() *FeatFilter {
	return &FeatFilter{
		BaseFilter: newBase("level", map[string]OrderOption{"name": orderName, "level": orderLevel}),
		Chips: FeatChips{
			Category: newChips("Categories", "", Or, false),
			Skills:   newChips("Skills", "skill", Or, false),
			Rarity:   newChips("Rarities", "", Or, false),
		},
		Level:  newLevel(0, 20),
		Source: newSource(),
	}
}

// Category implements Filter.
func (f *FeatFilter) Category() vocab.Category { return vocab.Feat }

// Clone implements Filter.
func (f *FeatFilter) Clone() Filter {
	c := *f
	c.BaseFilter = f.BaseFilter.clone()
	c.Chips.Category = f.Chips.Category.Clone()
	c.Chips.Skills = f.Chips.Skills.Clone()
	c.Chips.Rarity = f.Chips.Rarity.Clone()
	c.Source = f.Source.Clone()
	return &c
}

// HazardChips are the chip groups of the hazard category.
type HazardChips struct {
	Complexity ChipsData `json:"complexity"`
	Rarity     ChipsData `json:"rarity"`
}

// HazardFilter filters hazards.
type HazardFilter struct {
	BaseFilter
	Chips  HazardChips  `json:"chips"`
	Level  LevelData    `json:"level"`
	Source CheckboxData `json:"source"`
}

// NewHazardFilter returns the pristine hazard schema.
func NewHazardFilter() *HazardFilter {
	return &HazardFilter{
		BaseFilter: newBase("level", map[string]OrderOption{"name": orderName, "level": orderLevel}),
		Chips: HazardChips{
			Complexity: newChips("Complexity", "", Or, true),
			Rarity:     newChips("Rarities", "", Or, false),
		},
		Level:  newLevel(-1, 25),
		Source: newSource(),
	}
}

// Category implements Filter.
func (f *HazardFilter) Category() vocab.Category { return vocab.Hazard }

// Clone implements Filter.
func (f *HazardFilter) Clone() Filter {
	c := *f
	c.BaseFilter = f.BaseFilter.clone()
	c.Chips.Complexity = f.Chips.Complexity.Clone()
	c.Chips.Rarity = f.Chips.Rarity.Clone()
	c.Source = f.Source.Clone()
	return &c
}

// SpellCheckboxes are the checkbox groups of the spell category.
type SpellCheckboxes struct {
	Traditions CheckboxData `json:"traditions"`
}

// SpellChips are the chip groups of the spell category.
type SpellChips struct {
	Category ChipsData `json:"category"`
	Rank     ChipsData `json:"rank"`
	Rarity   ChipsData `json:"rarity"`
	Defense  ChipsData `json:"defense"`
}

// SpellSelects are the single-choice facets of the spell category.
type SpellSelects struct {
	TimeFilter SelectData `json:"timefilter"`
}

// SpellFilter filters spells.
type SpellFilter struct {
	BaseFilter
	Checkboxes SpellCheckboxes `json:"checkboxes"`
	Chips      SpellChips      `json:"chips"`
	Selects    SpellSelects    `json:"selects"`
	Source     CheckboxData    `json:"source"`
}

// NewSpellFilter returns the pristine spell schema.
func NewSpellFilter() *SpellFilter {
	category := newChips("Categories", "", And, true)
	category.ShowConjunction = true
	defense := newChips("Defense", "", Or, false)
	defense.ShowConjunction = true

	return &SpellFilter{
		BaseFilter: newBase("rank", map[string]OrderOption{
			"name": orderName,
			"rank": {Label: "Rank", Type: Numeric},
		}),
		Checkboxes: SpellCheckboxes{
			Traditions: CheckboxData{
				IsExpanded:   true,
				Label:        "Traditions",
				Options:      []Option{},
				OptionPrefix: "tradition",
				Selected:     []string{},
			},
		},
		Chips: SpellChips{
			Category: category,
			Rank:     newChips("Ranks", "", Or, true),
			Defense:  defense,
			Rarity:   newChips("Rarities", "", Or, false),
		},
		Selects: SpellSelects{
			TimeFilter: SelectData{
				Label:        "Casting Time",
				Options:      []Option{},
				OptionPrefix: "time",
			},
		},
		Source: newSource(),
	}
}

// Category implements Filter.
func (f *SpellFilter) Category() vocab.Category { return vocab.Spell }

// Clone implements Filter.
func (f *SpellFilter) Clone() Filter {
	c := *f
	c.BaseFilter = f.BaseFilter.clone()
	c.Checkboxes.Traditions = f.Checkboxes.Traditions.Clone()
	c.Chips.Category = f.Chips.Category.Clone()
	c.Chips.Rank = f.Chips.Rank.Clone()
	c.Chips.Rarity = f.Chips.Rarity.Clone()
	c.Chips.Defense = f.Chips.Defense.Clone()
	c.Selects.TimeFilter = f.Selects.TimeFilter.Clone()
	c.Source = f.Source.Clone()
	return &c
}

// New returns the pristine schema for a category. Equipment uses English
// coin abbreviations; category loaders build their own localized version.
func New(c vocab.Category) (Filter, error) {
	switch c {
	case vocab.Action:
		return NewActionFilter(), nil
	case vocab.Bestiary:
		return NewBestiaryFilter(), nil
	case vocab.CampaignFeature:
		return NewCampaignFeatureFilter(), nil
	case vocab.Equipment:
		return NewEquipmentFilter("cp", "gp"), nil
	case vocab.Feat:
		return NewFeatFilter(), nil
	case vocab.Hazard:
		return NewHazardFilter(), nil
	case vocab.Spell:
		return NewSpellFilter(), nil
	default:
		return nil, ErrUnknownCategory
	}
}
