package category

import (
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

// MaxSpellRank is the highest spell rank.
const MaxSpellRank = 10

type spellDefense struct {
	Save *struct {
		Basic     bool   `json:"basic"`
		Statistic string `json:"statistic"`
	} `json:"save"`
	Passive *struct {
		Statistic string `json:"statistic"`
	} `json:"passive"`
}

type spellRecord struct {
	header
	System struct {
		Defense pack.Field[spellDefense]  `json:"defense"`
		Level   pack.Field[value[int]]    `json:"level"`
		Time    pack.Field[value[string]] `json:"time"`
		Traits  pack.Field[traits]        `json:"traits"`
		Ritual  pack.Field[any]           `json:"ritual"`
		provenance
	} `json:"system"`
}

// Spell browses spells, cantrips, focus spells and rituals.
type Spell struct {
	base
}

// NewSpell returns the spell builder.
func NewSpell(l i18n.Localizer) *Spell {
	return &Spell{base{
		category: vocab.Spell,
		docType:  pack.Item,
		fields: []string{
			"img",
			"system.defense",
			"system.level.value",
			"system.time",
			"system.traits",
			"system.publication",
			"system.ritual",
			"system.source",
		},
		store: storeFields(search.FieldRank, search.FieldRarity, search.FieldActionGlyph),
		l:     l,
	}}
}

// NewFilter implements Builder.
func (b *Spell) NewFilter() filter.Filter { return filter.NewSpellFilter() }

// Begin implements Builder.
func (b *Spell) Begin() Batch { return &spellBatch{l: b.l, times: map[string]bool{}} }

type spellBatch struct {
	collector
	l     i18n.Localizer
	times map[string]bool
}

// spellCategory picks one category: ritual, then cantrip, then focus.
func spellCategory(ritual bool, t traits) string {
	cantrip := slices.Contains(t.Value, "cantrip")
	focus := slices.Contains(t.Value, "focus") || (cantrip && len(t.Traditions) == 0)
	switch {
	case ritual:
		return "ritual"
	case cantrip:
		return "cantrip"
	case focus:
		return "focus"
	default:
		return "spell"
	}
}

// normalizeTime folds every reaction trigger into "reaction".
func normalizeTime(t string) string {
	if strings.Contains(strings.ToLower(t), "reaction") {
		return "reaction"
	}
	return domain.Slug(t)
}

func (s *spellBatch) Add(_ pack.Metadata, r pack.Record) (entry.Entry, bool, error) {
	if r.Type != "spell" {
		return entry.Entry{}, false, nil
	}
	var rec spellRecord
	if err := r.Decode(&rec); err != nil {
		return entry.Entry{}, false, err
	}
	sys := rec.System
	// A missing ritual block means "not a ritual".
	err := required(
		has("img", rec.Img.Present()),
		has("system.defense", sys.Defense.Present()),
		has("system.level.value", hasValue(sys.Level)),
		has("system.time", sys.Time.Present()),
		has("system.traits", sys.Traits.Set && !sys.Traits.Null),
	)
	if err != nil {
		return entry.Entry{}, false, err
	}

	tr := sys.Traits.Value
	ritual := sys.Ritual.Set && !sys.Ritual.Null && truthy(sys.Ritual.Value)
	tags := domain.NewSet()
	category := spellCategory(ritual, tr)
	tags.Add(domain.Tag("category", category))

	rawTime := valueOr(sys.Time, "")
	glyph := vocab.ActionGlyph(rawTime)
	if rawTime != "" {
		t := normalizeTime(rawTime)
		s.times[t] = true
		tags.Add(domain.Tag("time", t))
	}

	for _, t := range tr.Traditions {
		tags.Add(domain.Tag("tradition", t))
	}
	addTraits(tags, tr.Value)

	if def := sys.Defense; def.Set && !def.Null {
		if save := def.Value.Save; save != nil {
			if save.Basic {
				tags.Add("defense:save:basic")
			}
			tags.Add(domain.Tag("defense", domain.Tag("save", save.Statistic)))
		}
		if passive := def.Value.Passive; passive != nil {
			stat, _, _ := strings.Cut(passive.Statistic, "-")
			tags.Add(domain.Tag("defense", domain.Tag("passive", stat)))
		}
	} else if tags.Has("trait:attack") && category != "ritual" {
		tags.Add("defense:passive:armor")
	}

	s.source(tags, sys.provenance)

	rank := valueOr(sys.Level, 0)
	tags.Add(domain.Tag("rank", strconv.Itoa(rank)))
	tags.Add(domain.Tag("rarity", tr.rarity()))
	tags.Add("type:spell")

	e := newEntry(r, tags)
	e.Rank = entry.Int(rank)
	e.Rarity = tr.rarity()
	e.ActionGlyph = glyph
	return e, true, nil
}

func (s *spellBatch) Finish(f filter.Filter) {
	sf := f.(*filter.SpellFilter)
	sf.Checkboxes.Traditions.Options = filter.GenerateOptions(vocab.MagicTraditions, s.l, true)

	ranks := make([]filter.Option, 0, MaxSpellRank)
	for rank := 1; rank <= MaxSpellRank; rank++ {
		ranks = append(ranks, filter.Option{Label: vocab.Ordinal(rank), Value: strconv.Itoa(rank)})
	}
	sf.Chips.Rank.Options = ranks
	sf.Chips.Rarity.Options = filter.GenerateOptions(vocab.Rarities, s.l, false)

	defense := []filter.Option{{Label: s.l.Localize("Basic Save"), Value: "save:basic"}}
	defense = append(defense, prefixed(filter.GenerateOptions(vocab.Saves, s.l, true), "save")...)
	passive := vocab.SpecificCheckDCs.Pick("armor", "fortitude", "reflex", "will")
	defense = append(defense, prefixed(filter.GenerateOptions(passive, s.l, true), "passive")...)
	sf.Chips.Defense.Options = defense

	sf.Traits.Options = filter.GenerateOptions(vocab.SpellTraits.Omit(vocab.MagicTraditions.Keys()...), s.l, true)
	sf.Source.Options = s.sourceOptions(s.l.Lang())
	sf.Chips.Category.Options = filter.GenerateOptions(vocab.SpellCategories, s.l, false)

	times := make([]string, 0, len(s.times))
	for t := range s.times {
		times = append(times, t)
	}
	slices.Sort(times)
	opts := make([]filter.Option, 0, len(times))
	for _, t := range times {
		opts = append(opts, filter.Option{Label: t, Value: domain.Slug(t)})
	}
	sf.Selects.TimeFilter.Options = opts
}

// truthy mirrors how loosely typed record fields are tested for presence.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}
