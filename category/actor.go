package category

import (
	"strconv"

	"github.com/jonwraymond/compendium/domain"
	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/search"
	"github.com/jonwraymond/compendium/vocab"
)

type actorDetails struct {
	Level     pack.Field[value[int]] `json:"level"`
	IsComplex pack.Field[bool]       `json:"isComplex"`
	provenance
}

type actorRecord struct {
	header
	System struct {
		Details pack.Field[actorDetails] `json:"details"`
		Traits  pack.Field[traits]       `json:"traits"`
	} `json:"system"`
}

func (r actorRecord) level() (int, bool) {
	d := r.System.Details
	if !d.Set || d.Null || !hasValue(d.Value.Level) {
		return 0, false
	}
	return valueOr(d.Value.Level, 0), true
}

// addActor applies the tags bestiary and hazard entries share and returns
// the entry.
func addActor(c *collector, r pack.Record, rec actorRecord, tags *domain.Set) entry.Entry {
	tr := rec.System.Traits.Value
	addTraits(tags, tr.Value)
	c.source(tags, rec.System.Details.Value.provenance)

	level, _ := rec.level()
	tags.Add(domain.Tag("level", strconv.Itoa(level)))
	tags.Add(domain.Tag("rarity", tr.rarity()))

	e := newEntry(r, tags)
	e.Level = entry.Int(level)
	e.Rarity = tr.rarity()
	return e
}

// Bestiary browses NPCs. It is hidden from players.
type Bestiary struct {
	base
}

// NewBestiary returns the bestiary builder.
func NewBestiary(l i18n.Localizer) *Bestiary {
	return &Bestiary{base{
		category: vocab.Bestiary,
		docType:  pack.Actor,
		fields: []string{
			"img",
			"system.details.level.value",
			"system.details.publication.title",
			"system.details.source.value",
			"system.traits",
		},
		store:  storeFields(search.FieldLevel, search.FieldRarity),
		gmOnly: true,
		l:      l,
	}}
}

// NewFilter implements Builder.
func (b *Bestiary) NewFilter() filter.Filter { return filter.NewBestiaryFilter() }

// Begin implements Builder.
func (b *Bestiary) Begin() Batch { return &bestiaryBatch{l: b.l} }

type bestiaryBatch struct {
	collector
	l i18n.Localizer
}

func (b *bestiaryBatch) Add(_ pack.Metadata, r pack.Record) (entry.Entry, bool, error) {
	if r.Type != "npc" {
		return entry.Entry{}, false, nil
	}
	var rec actorRecord
	if err := r.Decode(&rec); err != nil {
		return entry.Entry{}, false, err
	}
	_, hasLevel := rec.level()
	err := required(
		has("img", rec.Img.Present()),
		has("system.details.level.value", hasLevel),
		has("system.traits", rec.System.Traits.Set && !rec.System.Traits.Null),
	)
	if err != nil {
		return entry.Entry{}, false, err
	}

	tags := domain.NewSet()
	e := addActor(&b.collector, r, rec, tags)
	if size := rec.System.Traits.Value.Size; size != nil {
		if v := size.Value.Or(""); v != "" {
			tags.Add(domain.Tag("size", v))
		}
	}
	tags.Add(domain.Tag("type", r.Type))
	return e, true, nil
}

func (b *bestiaryBatch) Finish(f filter.Filter) {
	bf := f.(*filter.BestiaryFilter)
	bf.Chips.Sizes.Options = filter.GenerateOptions(vocab.ActorSizes, b.l, true)
	bf.Chips.Rarity.Options = filter.GenerateOptions(vocab.Rarities, b.l, false)
	bf.Traits.Options = filter.GenerateOptions(vocab.CreatureTraits, b.l, true)
	bf.Source.Options = b.sourceOptions(b.l.Lang())
}

// Hazard browses traps and environmental hazards. It is hidden from
// players.
type Hazard struct {
	base
}

// NewHazard returns the hazard builder.
func NewHazard(l i18n.Localizer) *Hazard {
	return &Hazard{base{
		category: vocab.Hazard,
		docType:  pack.Actor,
		fields: []string{
			"img",
			"system.details.level.value",
			"system.details.isComplex",
			"system.traits",
			"system.details.publication",
			"system.details.source",
		},
		store:  storeFields(search.FieldLevel, search.FieldRarity),
		gmOnly: true,
		l:      l,
	}}
}

// NewFilter implements Builder.
func (b *Hazard) NewFilter() filter.Filter { return filter.NewHazardFilter() }

// Begin implements Builder.
func (b *Hazard) Begin() Batch { return &hazardBatch{l: b.l} }

type hazardBatch struct {
	collector
	l i18n.Localizer
}

func (h *hazardBatch) Add(_ pack.Metadata, r pack.Record) (entry.Entry, bool, error) {
	if r.Type != "hazard" {
		return entry.Entry{}, false, nil
	}
	var rec actorRecord
	if err := r.Decode(&rec); err != nil {
		return entry.Entry{}, false, err
	}
	_, hasLevel := rec.level()
	d := rec.System.Details
	err := required(
		has("img", rec.Img.Present()),
		has("system.details.level.value", hasLevel),
		has("system.details.isComplex", d.Set && !d.Null && d.Value.IsComplex.Present()),
		has("system.traits", rec.System.Traits.Set && !rec.System.Traits.Null),
	)
	if err != nil {
		return entry.Entry{}, false, err
	}

	tags := domain.NewSet()
	complexity := "simple"
	if d.Value.IsComplex.Or(false) {
		complexity = "complex"
	}
	tags.Add(domain.Tag("complexity", complexity))
	e := addActor(&h.collector, r, rec, tags)
	tags.Add(domain.Tag("type", r.Type))
	return e, true, nil
}

func (h *hazardBatch) Finish(f filter.Filter) {
	hf := f.(*filter.HazardFilter)
	hf.Chips.Complexity.Options = filter.GenerateOptions(vocab.HazardComplexity, h.l, false)
	hf.Chips.Rarity.Options = filter.GenerateOptions(vocab.Rarities, h.l, false)
	hf.Traits.Options = filter.GenerateOptions(vocab.HazardTraits, h.l, true)
	hf.Source.Options = h.sourceOptions(h.l.Lang())
}
