package category

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jonwraymond/compendium/domain"
	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/search"
	"github.com/jonwraymond/compendium/vocab"
)

// EquipmentTypes are the item types browsed as equipment.
var EquipmentTypes = []string{"weapon", "shield", "armor", "equipment", "consumable", "treasure", "backpack", "book", "kit"}

var (
	equipmentBaseFields     = []string{"img", "system.price", "system.traits", "system.publication", "system.source"}
	equipmentPhysicalFields = append(slices.Clone(equipmentBaseFields), "system.level.value")
	equipmentRunedFields    = append(slices.Clone(equipmentPhysicalFields), "system.runes")
	equipmentArmoryFields   = append(slices.Clone(equipmentRunedFields), "system.category", "system.group")
)

type price struct {
	Value json.RawMessage `json:"value"`
}

// coins reads a price that is either a legacy string such as "5 gp" or a
// denomination object.
func (p price) coins() (entry.Coins, error) {
	raw := bytes.TrimSpace(p.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return entry.Coins{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return entry.Coins{}, err
		}
		return entry.ParseCoins(s), nil
	}
	var c entry.Coins
	if err := json.Unmarshal(raw, &c); err != nil {
		return entry.Coins{}, fmt.Errorf("%w: system.price.value: %v", pack.ErrInvalidField, err)
	}
	return c, nil
}

type equipmentRecord struct {
	header
	System struct {
		Price      pack.Field[price]          `json:"price"`
		Traits     pack.Field[traits]         `json:"traits"`
		Level      pack.Field[value[int]]     `json:"level"`
		Runes      pack.Field[map[string]any] `json:"runes"`
		Category   pack.Field[string]         `json:"category"`
		Group      pack.Field[string]         `json:"group"`
		StackGroup pack.Field[string]         `json:"stackGroup"`
		provenance
	} `json:"system"`
}

// present reports which of the paths exist on the record.
func (r equipmentRecord) present(path string) bool {
	sys := r.System
	switch path {
	case "img":
		return r.Img.Present()
	case "system.price":
		return sys.Price.Present()
	case "system.traits":
		return sys.Traits.Present()
	case "system.level.value":
		return hasValue(sys.Level)
	case "system.runes":
		return sys.Runes.Present()
	case "system.category":
		return sys.Category.Present()
	case "system.group":
		return sys.Group.Present()
	}
	// Provenance is optional.
	return true
}

// requiredFields lists the paths an item of the given type must carry.
func requiredFields(itemType string) []string {
	switch itemType {
	case "armor", "weapon":
		return equipmentArmoryFields
	case "kit":
		return equipmentBaseFields
	case "shield":
		return equipmentRunedFields
	default:
		return equipmentPhysicalFields
	}
}

// Equipment browses physical items.
type Equipment struct {
	base
}

// NewEquipment returns the equipment builder.
func NewEquipment(l i18n.Localizer) *Equipment {
	fields := append(slices.Clone(equipmentArmoryFields), "system.stackGroup")
	slices.Sort(fields)
	return &Equipment{base{
		category: vocab.Equipment,
		docType:  pack.Item,
		fields:   fields,
		store:    storeFields(search.FieldLevel, search.FieldPrice, search.FieldRarity),
		l:        l,
	}}
}

// NewFilter implements Builder. The price range defaults use the localized
// coin abbreviations.
func (b *Equipment) NewFilter() filter.Filter {
	return filter.NewEquipmentFilter(b.l.Localize("cp"), b.l.Localize("gp"))
}

// RangeParser implements Builder.
func (b *Equipment) RangeParser() filter.RangeParser {
	return PriceParser(b.l)
}

// Begin implements Builder.
func (b *Equipment) Begin() Batch { return &equipmentBatch{l: b.l} }

type equipmentBatch struct {
	collector
	l i18n.Localizer
}

// magical reports whether an unmarked armament carries a fundamental rune.
func magical(itemType string, traits []string, runes map[string]any) bool {
	if slices.ContainsFunc(traits, vocab.MagicTraditions.Has) {
		return false
	}
	if itemType != "armor" && itemType != "shield" && itemType != "weapon" {
		return false
	}
	for _, k := range []string{"potency", "reinforcing", "resilient", "striking"} {
		if truthy(runes[k]) {
			return true
		}
	}
	return false
}

func (b *equipmentBatch) Add(_ pack.Metadata, r pack.Record) (entry.Entry, bool, error) {
	if !slices.Contains(EquipmentTypes, r.Type) {
		return entry.Entry{}, false, nil
	}
	var rec equipmentRecord
	if err := r.Decode(&rec); err != nil {
		return entry.Entry{}, false, err
	}
	sys := rec.System
	if r.Type == "treasure" && sys.StackGroup.Or("") == "coins" {
		return entry.Entry{}, false, nil
	}

	checks := make([]check, 0, len(equipmentArmoryFields))
	for _, path := range requiredFields(r.Type) {
		checks = append(checks, has(path, rec.present(path)))
	}
	if err := required(checks...); err != nil {
		return entry.Entry{}, false, err
	}

	coins, err := sys.Price.Value.coins()
	if err != nil {
		return entry.Entry{}, false, err
	}

	tags := domain.NewSet()
	tags.Add(domain.Tag("price", strconv.FormatInt(coins.CopperValue(), 10)))
	b.source(tags, sys.provenance)

	tr := sys.Traits.Value
	traitList := slices.Clone(tr.Value)
	if magical(r.Type, traitList, sys.Runes.Value) {
		traitList = append(traitList, "magical")
	}
	addTraits(tags, traitList)

	level := valueOr(sys.Level, 0)
	category := sys.Category.Or("")
	if category == "" {
		category = "none"
	}
	group := sys.Group.Or("")
	if group == "" {
		group = "none"
	}
	tags.Add(domain.Tag("level", strconv.Itoa(level)))
	tags.Add(domain.Tag("category", category))
	if r.Type == "armor" || r.Type == "weapon" {
		tags.Add(domain.Tag("type", domain.Tag("category", category)))
	}
	tags.Add(domain.Tag("type", domain.Tag("group", group)))
	tags.Add(domain.Tag("rarity", tr.rarity()))
	tags.Add(domain.Tag("type", r.Type))

	e := newEntry(r, tags)
	e.Level = entry.Int(level)
	e.Price = &coins
	e.Rarity = tr.rarity()
	return e, true, nil
}

func (b *equipmentBatch) Finish(f filter.Filter) {
	ef := f.(*filter.EquipmentFilter)
	ef.Chips.ArmorTypes.Options = append(
		prefixed(filter.GenerateOptions(vocab.ArmorCategories, b.l, true), "category"),
		prefixed(filter.GenerateOptions(vocab.ArmorGroups, b.l, true), "group")...,
	)
	ef.Chips.WeaponTypes.Options = append(
		prefixed(filter.GenerateOptions(vocab.WeaponCategories, b.l, true), "category"),
		prefixed(filter.GenerateOptions(vocab.WeaponGroups, b.l, true), "group")...,
	)
	ef.Traits.Options = filter.GenerateOptions(vocab.EquipmentTraits, b.l, true)
	ef.Chips.ItemTypes.Options = filter.GenerateOptions(vocab.ItemTypes, b.l, true)
	ef.Chips.Rarity.Options = filter.GenerateOptions(vocab.Rarities, b.l, false)
	ef.Source.Options = b.sourceOptions(b.l.Lang())
}

// PriceParser returns a RangeParser that reads price input such as
// "1,200 gp" into copper. Localized coin abbreviations are accepted.
func PriceParser(l i18n.Localizer) filter.RangeParser {
	var pairs []string
	for _, coin := range []string{"cp", "sp", "gp", "pp"} {
		if local := l.Localize(coin); local != coin && local != "" {
			pairs = append(pairs, local, coin)
		}
	}
	english := strings.NewReplacer(pairs...)
	return func(lower, upper string) (float64, float64) {
		lo := entry.ParseCoins(english.Replace(lower)).CopperValue()
		hi := entry.ParseCoins(english.Replace(upper)).CopperValue()
		return float64(lo), float64(hi)
	}
}
