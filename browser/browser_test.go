package browser

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/compendium/category"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/i18n"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/settings"
	"github.com/jonwraymond/compendium/vocab"
)

func doc(t *testing.T, js string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(js), &m))
	return m
}

func feat(t *testing.T, id, name string, level int) map[string]any {
	t.Helper()
	d := doc(t, `{
		"type": "feat", "img": "feat.webp",
		"system": {
			"actionType": {"value": "passive"},
			"actions": {"value": null},
			"category": "general",
			"level": {"value": 1},
			"prerequisites": {"value": []},
			"traits": {"value": ["general"], "rarity": "common"},
			"publication": {"title": "Player Core"}
		}
	}`)
	d["_id"] = id
	d["name"] = name
	d["system"].(map[string]any)["level"] = map[string]any{"value": level}
	return d
}

func spell(t *testing.T, id, name string, rank int, traditions ...string) map[string]any {
	t.Helper()
	d := doc(t, `{
		"type": "spell", "img": "spell.webp",
		"system": {
			"defense": {"save": {"basic": true, "statistic": "reflex"}},
			"time": {"value": "2"},
			"traits": {"value": ["fire"], "rarity": "common"},
			"publication": {"title": "Player Core"}
		}
	}`)
	d["_id"] = id
	d["name"] = name
	sys := d["system"].(map[string]any)
	sys["level"] = map[string]any{"value": rank}
	tr := make([]any, len(traditions))
	for i, s := range traditions {
		tr[i] = s
	}
	sys["traits"].(map[string]any)["traditions"] = tr
	return d
}

func testSource(t *testing.T) *pack.MemorySource {
	t.Helper()
	return pack.NewMemorySource(
		pack.MemoryPack{
			Metadata: pack.Metadata{ID: "pf2e.feats-srd", Label: "Feats", Package: "pf2e", Type: pack.Item},
			Docs: []map[string]any{
				feat(t, "f1", "Toughness", 1),
				feat(t, "f2", "Fleet", 1),
				feat(t, "f3", "Incredible Initiative", 3),
			},
		},
		pack.MemoryPack{
			Metadata: pack.Metadata{ID: "pf2e.spells-srd", Label: "Spells", Package: "pf2e", Type: pack.Item},
			Docs: []map[string]any{
				spell(t, "s1", "Fireball", 3, "arcane", "primal"),
				spell(t, "s2", "Heal", 1, "divine", "primal"),
			},
		},
		pack.MemoryPack{
			Metadata: pack.Metadata{ID: "pf2e.actionspf2e", Label: "Actions", Package: "pf2e", Type: pack.Item},
			Docs: []map[string]any{
				doc(t, `{
					"_id": "a1", "type": "action", "name": "Aid", "img": "aid.webp",
					"system": {
						"actionType": {"value": "reaction"},
						"category": "interaction",
						"traits": {"value": ["manipulate"]},
						"publication": {"title": "Player Core"}
					}
				}`),
				doc(t, `{
					"_id": "a2", "type": "action", "name": "Familiar Lookout", "img": "lookout.webp",
					"system": {
						"actionType": {"value": "reaction"},
						"category": "familiar",
						"traits": {"value": ["manipulate"]},
						"publication": {"title": "Player Core"}
					}
				}`),
			},
		},
	)
}

func newBrowser(t *testing.T, opts Options) *Browser {
	t.Helper()
	if opts.Source == nil {
		opts.Source = testSource(t)
	}
	b, err := New(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Shutdown() })
	return b
}

func names(t *testing.T, b *Browser, visible bool) []string {
	t.Helper()
	get := b.Results
	if visible {
		get = b.VisibleResults
	}
	results, err := get(context.Background())
	require.NoError(t, err)
	out := make([]string, len(results))
	for i, e := range results {
		out[i] = e.Name
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	b := newBrowser(t, Options{})

	assert.Equal(t, vocab.Categories, b.Categories())
	assert.Equal(t, DefaultResultLimit, b.ResultLimit())
	assert.Empty(t, b.ActiveCategory())
	assert.Nil(t, b.ActiveFilter())
	assert.Equal(t, []string{"pf2e.actionspf2e", "pf2e.feats-srd", "pf2e.spells-srd"}, b.LoadedPacksAll())
	assert.Equal(t, []string{"pf2e.feats-srd"}, b.LoadedPacks(vocab.Feat))

	// Players do not see GM-only categories.
	assert.Equal(t, []vocab.Category{
		vocab.Action, vocab.CampaignFeature, vocab.Equipment, vocab.Feat, vocab.Spell,
	}, b.VisibleCategories())

	for _, c := range b.Categories() {
		l, ok := b.Loader(c)
		require.True(t, ok)
		assert.False(t, l.IsInitialized(), c)
	}
}

func TestNew_DuplicateBuilder(t *testing.T) {
	_, err := New(context.Background(), Options{
		Builders: []category.Builder{category.NewFeat(i18n.English()), category.NewFeat(i18n.English())},
	})
	assert.Error(t, err)
}

func TestOpenCategory_Errors(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{})

	err := b.OpenCategory(ctx, "settings", category.OpenOptions{})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	err = b.OpenCategory(ctx, vocab.Bestiary, category.OpenOptions{})
	assert.ErrorIs(t, err, ErrGMOnly)

	err = b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{Filter: filter.NewFeatFilter()})
	assert.ErrorIs(t, err, ErrNotInitialized)
	l, _ := b.Loader(vocab.Feat)
	assert.False(t, l.IsInitialized())

	require.NoError(t, b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{}))
	err = b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{Filter: filter.NewSpellFilter()})
	assert.ErrorIs(t, err, category.ErrFilterMismatch)

	_, err = b.Results(context.Background())
	require.NoError(t, err)
}

func TestOpenCategory_Visibility(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		opts     Options
		open     vocab.Category
		openOpts category.OpenOptions
		want     []vocab.Category
		wantErr  error
	}{
		{
			name: "gm sees everything",
			opts: Options{GM: true},
			open: vocab.Feat,
			want: vocab.Categories,
		},
		{
			name: "no campaign hides campaign features",
			opts: Options{GM: true, CampaignType: CampaignNone},
			open: vocab.Feat,
			want: []vocab.Category{vocab.Action, vocab.Bestiary, vocab.Equipment, vocab.Feat, vocab.Hazard, vocab.Spell},
		},
		{
			name:     "hidden navigation",
			opts:     Options{GM: true},
			open:     vocab.Feat,
			openOpts: category.OpenOptions{HideNavigation: true},
			want:     nil,
		},
		{
			name:     "listed categories plus the opened one",
			opts:     Options{},
			open:     vocab.Spell,
			openOpts: category.OpenOptions{ShowCategories: []vocab.Category{vocab.Feat, vocab.Hazard}},
			want:     []vocab.Category{vocab.Feat, vocab.Spell},
		},
		{
			name:     "unknown listed category",
			opts:     Options{},
			open:     vocab.Spell,
			openOpts: category.OpenOptions{ShowCategories: []vocab.Category{"settings"}},
			wantErr:  ErrUnknownCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBrowser(t, tt.opts)
			err := b.OpenCategory(ctx, tt.open, tt.openOpts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, b.ActiveCategory())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.open, b.ActiveCategory())
			assert.Equal(t, tt.want, b.VisibleCategories())
			for _, c := range tt.want {
				assert.True(t, b.Visible(c), c)
			}
		})
	}
}

func TestResultWindow(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{ResultLimit: 1})

	_, err := b.LoadMore()
	require.ErrorIs(t, err, ErrNoActiveCategory)
	_, err = b.Results(ctx)
	require.ErrorIs(t, err, ErrNoActiveCategory)

	require.NoError(t, b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{}))
	assert.Equal(t, []string{"Fleet", "Toughness", "Incredible Initiative"}, names(t, b, false))
	assert.Equal(t, []string{"Fleet"}, names(t, b, true))

	limit, err := b.LoadMore()
	require.NoError(t, err)
	assert.Equal(t, 2, limit)
	assert.Equal(t, []string{"Fleet", "Toughness"}, names(t, b, true))

	// Other categories keep their own window.
	require.NoError(t, b.OpenCategory(ctx, vocab.Spell, category.OpenOptions{}))
	assert.Equal(t, 1, b.ResultLimit())
	require.NoError(t, b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{}))
	assert.Equal(t, 2, b.ResultLimit())

	// Re-opening the active category resets it.
	require.NoError(t, b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{}))
	assert.Equal(t, 1, b.ResultLimit())
}

func TestFilterEditing(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{})
	require.NoError(t, b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{}))

	require.NoError(t, b.SetSearchText("incred"))
	assert.Equal(t, []string{"Incredible Initiative"}, names(t, b, false))

	search := ""
	require.NoError(t, b.ApplySelections(filter.Selections{
		Search: &search,
		Level:  &filter.LevelSelection{From: 0, To: 1},
	}))
	assert.Equal(t, []string{"Fleet", "Toughness"}, names(t, b, false))

	// The live filter follows the active one when no preset was given.
	l, _ := b.Loader(vocab.Feat)
	assert.Same(t, l.Filter(), b.ActiveFilter())

	err := b.ApplySelections(filter.Selections{Chips: map[string][]filter.ChipSelection{"nope": nil}})
	require.ErrorIs(t, err, filter.ErrUnknownFacet)
	assert.Equal(t, []string{"Fleet", "Toughness"}, names(t, b, false))

	require.NoError(t, b.UpdateFilter(func(f filter.Filter) error {
		f.Base().Order.Direction = filter.Desc
		return nil
	}))
	assert.Equal(t, []string{"Toughness", "Fleet"}, names(t, b, false))

	require.NoError(t, b.ResetFilters())
	assert.Equal(t, []string{"Fleet", "Toughness", "Incredible Initiative"}, names(t, b, false))
}

func TestClose_ClearsSearchText(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{})
	require.NoError(t, b.OpenCategory(ctx, vocab.Spell, category.OpenOptions{}))
	require.NoError(t, b.SetSearchText("fire"))
	require.NoError(t, b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{}))
	require.NoError(t, b.SetSearchText("fleet"))

	b.Close()
	for _, c := range []vocab.Category{vocab.Spell, vocab.Feat} {
		l, _ := b.Loader(c)
		assert.Empty(t, l.Filter().Base().Search.Text, c)
	}
	assert.Equal(t, vocab.Feat, b.ActiveCategory())
	assert.Len(t, names(t, b, false), 3)
}

func TestOpenActionCategory(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{})

	require.NoError(t, b.OpenActionCategory(ctx, ActionPreset{
		Types:      []string{"reaction", "bogus"},
		Categories: []string{"interaction", "familiar"},
		Traits:     []string{"manipulate"},
	}))
	assert.Equal(t, vocab.Action, b.ActiveCategory())

	af := b.ActiveFilter().(*filter.ActionFilter)
	assert.Equal(t, []filter.ChipSelection{{Value: "reaction"}}, af.Chips.Types.Selected)
	// Only familiar abilities are offered as an action category.
	assert.Equal(t, []filter.ChipSelection{{Value: "familiar"}}, af.Chips.Category.Selected)
	assert.Equal(t, []filter.TraitSelection{{Label: "Manipulate", Value: "manipulate"}}, af.Traits.Selected)
	assert.Equal(t, []string{"Familiar Lookout"}, names(t, b, false))

	// The preset does not replace the category's live filter.
	l, _ := b.Loader(vocab.Action)
	assert.Empty(t, l.Filter().(*filter.ActionFilter).Chips.Types.Selected)
}

func TestSuggestTraits(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{})

	got, err := b.SuggestTraits(ctx, vocab.Feat, "fortu", 3)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, filter.Option{Label: "Fortune", Value: "fortune"}, got[0])
	assert.LessOrEqual(t, len(got), 3)

	l, _ := b.Loader(vocab.Feat)
	assert.True(t, l.IsInitialized())
	assert.Empty(t, b.ActiveCategory())

	_, err = b.SuggestTraits(ctx, "settings", "x", 1)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestOpenSpellCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("prepared caster", func(t *testing.T) {
		b := newBrowser(t, Options{})
		require.NoError(t, b.OpenSpellCategory(ctx, SpellcastingEntry{Category: "prepared", Tradition: "divine"}, 2, ""))

		sf := b.ActiveFilter().(*filter.SpellFilter)
		assert.Equal(t, []filter.ChipSelection{{Value: "1"}, {Value: "2"}}, sf.Chips.Rank.Selected)
		assert.Equal(t, []filter.ChipSelection{{Value: "spell"}}, sf.Chips.Category.Selected)
		assert.Equal(t, []string{"divine"}, sf.Checkboxes.Traditions.Selected)
		assert.Equal(t, []string{"Heal"}, names(t, b, false))
	})

	t.Run("focus pool ignores tradition", func(t *testing.T) {
		b := newBrowser(t, Options{})
		require.NoError(t, b.OpenSpellCategory(ctx, SpellcastingEntry{Category: "focus", Tradition: "arcane"}, 0, ""))

		sf := b.ActiveFilter().(*filter.SpellFilter)
		assert.Equal(t, []filter.ChipSelection{{Value: "focus"}}, sf.Chips.Category.Selected)
		assert.Empty(t, sf.Chips.Rank.Selected)
		assert.Empty(t, sf.Checkboxes.Traditions.Selected)
	})

	t.Run("explicit category", func(t *testing.T) {
		b := newBrowser(t, Options{})
		require.NoError(t, b.OpenSpellCategory(ctx, SpellcastingEntry{Category: "spontaneous"}, 1, "cantrip"))

		sf := b.ActiveFilter().(*filter.SpellFilter)
		assert.Equal(t, []filter.ChipSelection{{Value: "cantrip"}}, sf.Chips.Category.Selected)
		assert.Equal(t, []filter.ChipSelection{{Value: "1"}}, sf.Chips.Rank.Selected)
	})
}

func TestPackSettings(t *testing.T) {
	ctx := context.Background()
	store := settings.NewMemoryStore()
	b := newBrowser(t, Options{Settings: store})

	require.NoError(t, b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{}))
	assert.Len(t, names(t, b, false), 3)

	err := b.UpdatePackSettings(ctx, vocab.Feat, "pf2e.unknown", true)
	require.ErrorIs(t, err, pack.ErrUnknownPack)
	err = b.UpdatePackSettings(ctx, "settings", "pf2e.feats-srd", true)
	require.ErrorIs(t, err, ErrUnknownCategory)

	require.NoError(t, b.UpdatePackSettings(ctx, vocab.Feat, "pf2e.feats-srd", false))
	assert.Empty(t, b.LoadedPacks(vocab.Feat))
	saved, err := store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, saved[vocab.Feat]["pf2e.feats-srd"].Load)
	assert.Equal(t, "Feats", saved[vocab.Feat]["pf2e.feats-srd"].Name)

	// Content changes only once the category reloads.
	l, _ := b.Loader(vocab.Feat)
	assert.Len(t, l.Entries(), 3)
	require.NoError(t, b.ResetInitializedCategories(ctx))
	assert.Empty(t, l.Entries())
	assert.Empty(t, b.ActiveCategory())
	spells, _ := b.Loader(vocab.Spell)
	assert.False(t, spells.IsInitialized())

	// A new browser over the same store picks the saved flag up.
	again := newBrowser(t, Options{Settings: store})
	assert.Empty(t, again.LoadedPacks(vocab.Feat))
	assert.Equal(t, []pack.Entry{{
		ID:   "pf2e.feats-srd",
		Info: pack.Info{Load: false, Name: "Feats", Package: "pf2e"},
	}}, again.PackSettings(vocab.Feat))
}

func TestTableResults(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{})

	_, err := b.TableResults(ctx, category.TableOptions{})
	require.ErrorIs(t, err, ErrNoActiveCategory)

	require.NoError(t, b.OpenSpellCategory(ctx, SpellcastingEntry{Category: "innate", Tradition: "primal"}, 3, ""))
	rows, err := b.TableResults(ctx, category.TableOptions{Initial: 4, Weight: 2})
	require.NoError(t, err)
	assert.Equal(t, []category.TableRow{
		{UUID: "Compendium.pf2e.spells-srd.Item.s2", Weight: 2, Range: [2]int{5, 5}},
		{UUID: "Compendium.pf2e.spells-srd.Item.s1", Weight: 2, Range: [2]int{6, 6}},
	}, rows)
}

func TestOnChange(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{})

	var events []Event
	stop := b.OnChange(func(ev Event) { events = append(events, ev) })

	require.NoError(t, b.OpenCategory(ctx, vocab.Feat, category.OpenOptions{}))
	require.NoError(t, b.SetSearchText("fleet"))
	_, err := b.LoadMore()
	require.NoError(t, err)
	b.Close()

	assert.Equal(t, []Event{
		{Kind: EventOpened, Category: vocab.Feat},
		{Kind: EventFilterChanged, Category: vocab.Feat},
		{Kind: EventLimitChanged, Category: vocab.Feat},
		{Kind: EventClosed, Category: vocab.Feat},
	}, events)

	stop()
	require.NoError(t, b.ResetFilters())
	assert.Len(t, events, 4)
}

func TestBrowserIsOpener(t *testing.T) {
	ctx := context.Background()
	b := newBrowser(t, Options{})
	l, _ := b.Loader(vocab.Spell)

	require.NoError(t, l.Open(ctx, category.OpenOptions{}))
	assert.Equal(t, vocab.Spell, b.ActiveCategory())
	assert.True(t, l.IsInitialized())
}
