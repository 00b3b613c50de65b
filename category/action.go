package category

import (
	"github.com/jonwraymond/compendium/domain"
	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/vocab"
)

type actionRecord struct {
	header
	System struct {
		ActionType pack.Field[value[string]] `json:"actionType"`
		Category   pack.Field[string]        `json:"category"`
		Traits     pack.Field[traits]        `json:"traits"`
		provenance
	} `json:"system"`
}

// Action browses abilities and actions.
type Action struct {
	base
}

// NewAction returns the action builder.
func NewAction(l i18n.Localizer) *Action {
	return &Action{base{
		category: vocab.Action,
		docType:  pack.Item,
		fields: []string{
			"img",
			"system.actionType.value",
			"system.category",
			"system.traits.value",
			"system.publication",
			"system.source",
		},
		store: storeFields(),
		l:     l,
	}}
}

// NewFilter implements Builder.
func (b *Action) NewFilter() filter.Filter { return filter.NewActionFilter() }

// Begin implements Builder.
func (b *Action) Begin() Batch { return &actionBatch{l: b.l} }

type actionBatch struct {
	collector
	l i18n.Localizer
}

func (a *actionBatch) Add(_ pack.Metadata, r pack.Record) (entry.Entry, bool, error) {
	if r.Type != "action" {
		return entry.Entry{}, false, nil
	}
	var rec actionRecord
	if err := r.Decode(&rec); err != nil {
		return entry.Entry{}, false, err
	}
	sys := rec.System
	err := required(
		has("img", rec.Img.Present()),
		has("system.actionType.value", hasValue(sys.ActionType)),
		has("system.category", sys.Category.Present()),
		has("system.traits.value", sys.Traits.Set && !sys.Traits.Null && sys.Traits.Value.Value != nil),
	)
	if err != nil {
		return entry.Entry{}, false, err
	}

	tags := domain.NewSet()
	actionType := valueOr(sys.ActionType, "")
	tags.Add(domain.Tag("action-type", actionType))
	addTraits(tags, sys.Traits.Value.Value)
	a.source(tags, sys.provenance)
	tags.Add(domain.Tag("type", r.Type))
	if c := sys.Category.Or(""); c != "" {
		tags.Add(domain.Tag("category", c))
	}

	e := newEntry(r, tags)
	if actionType == "passive" {
		e.Image = vocab.PassiveActionIcon
	}
	return e, true, nil
}

func (a *actionBatch) Finish(f filter.Filter) {
	af := f.(*filter.ActionFilter)
	af.Traits.Options = filter.GenerateOptions(vocab.ActionTraits, a.l, true)
	af.Chips.Types.Options = filter.GenerateOptions(vocab.ActionTypes, a.l, true)
	af.Chips.Category.Options = filter.GenerateOptions(vocab.ActionCategories.Pick("familiar"), a.l, true)
	af.Source.Options = a.sourceOptions(a.l.Lang())
}
