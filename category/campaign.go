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

type campaignFeatureRecord struct {
	header
	System struct {
		Category pack.Field[string]     `json:"category"`
		Level    pack.Field[value[int]] `json:"level"`
		Traits   pack.Field[traits]     `json:"traits"`
		provenance
	} `json:"system"`
}

// CampaignFeature browses campaign features such as kingdom feats. Only
// the trait block is required; a missing level reads as 0.
type CampaignFeature struct {
	base
}

// NewCampaignFeature returns the campaign feature builder.
func NewCampaignFeature(l i18n.Localizer) *CampaignFeature {
	return &CampaignFeature{base{
		category: vocab.CampaignFeature,
		docType:  pack.Item,
		fields: []string{
			"img",
			"system.category",
			"system.level.value",
			"system.traits",
			"system.publication",
			"system.source",
		},
		store: storeFields(search.FieldLevel, search.FieldRarity),
		l:     l,
	}}
}

// NewFilter implements Builder.
func (b *CampaignFeature) NewFilter() filter.Filter { return filter.NewCampaignFeatureFilter() }

// Begin implements Builder.
func (b *CampaignFeature) Begin() Batch { return &campaignFeatureBatch{l: b.l} }

type campaignFeatureBatch struct {
	collector
	l i18n.Localizer
}

func (c *campaignFeatureBatch) Add(_ pack.Metadata, r pack.Record) (entry.Entry, bool, error) {
	if r.Type != "campaignFeature" {
		return entry.Entry{}, false, nil
	}
	var rec campaignFeatureRecord
	if err := r.Decode(&rec); err != nil {
		return entry.Entry{}, false, err
	}
	sys := rec.System
	if err := required(has("system.traits", sys.Traits.Set && !sys.Traits.Null)); err != nil {
		return entry.Entry{}, false, err
	}

	tr := sys.Traits.Value
	tags := domain.NewSet()
	addTraits(tags, tr.Value)
	c.source(tags, sys.provenance)
	if cat := sys.Category.Or(""); cat != "" {
		tags.Add(domain.Tag("category", cat))
	}
	level := valueOr(sys.Level, 0)
	tags.Add(domain.Tag("level", strconv.Itoa(level)))
	tags.Add(domain.Tag("rarity", tr.rarity()))

	e := newEntry(r, tags)
	e.Level = entry.Int(level)
	e.Rarity = tr.rarity()
	return e, true, nil
}

func (c *campaignFeatureBatch) Finish(f filter.Filter) {
	cf := f.(*filter.CampaignFeatureFilter)
	cf.Chips.Category.Options = filter.GenerateOptions(vocab.KingmakerCategories, c.l, true)
	cf.Chips.Rarity.Options = filter.GenerateOptions(vocab.Rarities, c.l, true)
	cf.Traits.Options = filter.GenerateOptions(vocab.KingmakerTraits, c.l, true)
	cf.Source.Options = c.sourceOptions(c.l.Lang())
}
