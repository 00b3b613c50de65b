package category

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/compendium/domain"
	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/search"
	"github.com/jonwraymond/compendium/vocab"
)

type featRecord struct {
	header
	System struct {
		ActionType    pack.Field[value[string]]           `json:"actionType"`
		Actions       pack.Field[value[any]]              `json:"actions"`
		Category      pack.Field[string]                  `json:"category"`
		FeatType      pack.Field[value[string]]           `json:"featType"`
		Level         pack.Field[value[int]]              `json:"level"`
		Prerequisites pack.Field[value[[]value[string]]] `json:"prerequisites"`
		Traits        pack.Field[traits]                  `json:"traits"`
		provenance
	} `json:"system"`
}

// Feat browses feats and class features.
type Feat struct {
	base
}

// NewFeat returns the feat builder.
func NewFeat(l i18n.Localizer) *Feat {
	return &Feat{base{
		category: vocab.Feat,
		docType:  pack.Item,
		fields: []string{
			"img",
			"system.actionType.value",
			"system.actions.value",
			"system.category",
			"system.featType.value",
			"system.level.value",
			"system.prerequisites.value",
			"system.traits",
			"system.publication",
			"system.source",
		},
		store: storeFields(search.FieldLevel, search.FieldRarity),
		l:     l,
	}}
}

// NewFilter implements Builder.
func (b *Feat) NewFilter() filter.Filter { return filter.NewFeatFilter() }

// Begin implements Builder.
func (b *Feat) Begin() Batch {
	lower := cases.Lower(language.Make(b.l.Lang()))
	skills := make(map[string]string, len(vocab.Skills))
	for _, s := range vocab.Skills {
		skills[s.Key] = lower.String(b.l.Localize(s.Label))
	}
	return &featBatch{l: b.l, skills: skills}
}

type featBatch struct {
	collector
	l i18n.Localizer
	// skills maps each skill key to its localized lowercase label.
	skills map[string]string
}

// prerequisiteSkills finds the skills named in prerequisite text, by key
// or by localized label.
func (f *featBatch) prerequisiteSkills(prereqs []value[string]) []string {
	var out []string
	for _, p := range prereqs {
		text := strings.ToLower(p.Value.Or(""))
		if text == "" {
			continue
		}
		for _, s := range vocab.Skills {
			if slices.Contains(out, s.Key) {
				continue
			}
			if strings.Contains(text, s.Key) || strings.Contains(text, f.skills[s.Key]) {
				out = append(out, s.Key)
			}
		}
	}
	return out
}

func (f *featBatch) Add(_ pack.Metadata, r pack.Record) (entry.Entry, bool, error) {
	if r.Type != "feat" {
		return entry.Entry{}, false, nil
	}
	var rec featRecord
	if err := r.Decode(&rec); err != nil {
		return entry.Entry{}, false, err
	}
	sys := rec.System
	err := required(
		has("img", rec.Img.Present()),
		has("system.actionType.value", hasValue(sys.ActionType)),
		has("system.actions.value", hasValue(sys.Actions)),
		has("system.level.value", hasValue(sys.Level)),
		has("system.prerequisites.value", hasValue(sys.Prerequisites)),
		has("system.traits", sys.Traits.Set && !sys.Traits.Null),
		has("system.category", sys.Category.Present() || hasValue(sys.FeatType)),
	)
	if err != nil {
		return entry.Entry{}, false, err
	}

	// Unmigrated feats carry their category as featType.value.
	category := sys.Category.Or("")
	if hasValue(sys.FeatType) {
		category = valueOr(sys.FeatType, category)
	}

	tags := domain.NewSet()
	for _, s := range f.prerequisiteSkills(valueOr(sys.Prerequisites, nil)) {
		tags.Add(domain.Tag("skill", s))
	}

	tr := sys.Traits.Value
	if category == "ancestry" && !slices.ContainsFunc(tr.Value, vocab.CreatureTraits.Has) {
		tags.Add(domain.Tag("trait", vocab.UniversalAncestry))
	}
	tags.Add(domain.Tag("category", category))
	tags.Add(domain.Tag("type", r.Type))
	addTraits(tags, tr.Value)
	f.source(tags, sys.provenance)

	level := valueOr(sys.Level, 0)
	tags.Add(domain.Tag("level", strconv.Itoa(level)))
	tags.Add(domain.Tag("rarity", tr.rarity()))

	e := newEntry(r, tags)
	e.Level = entry.Int(level)
	e.Rarity = tr.rarity()
	return e, true, nil
}

func (f *featBatch) Finish(fl filter.Filter) {
	ff := fl.(*filter.FeatFilter)
	ff.Chips.Category.Options = filter.GenerateOptions(vocab.FeatCategories, f.l, true)
	ff.Chips.Skills.Options = filter.GenerateOptions(vocab.Skills, f.l, true)
	ff.Chips.Rarity.Options = filter.GenerateOptions(vocab.Rarities, f.l, true)
	ff.Source.Options = f.sourceOptions(f.l.Lang())
	ff.Traits.Options = append(
		filter.GenerateOptions(vocab.FeatTraits, f.l, true),
		filter.Option{Label: f.l.Localize("Universal Ancestry"), Value: vocab.UniversalAncestry},
	)
}
