package registry

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/compendium/browser"
	"github.com/jonwraymond/compendium/category"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/vocab"
)

func featDoc(id, name string, level int) map[string]any {
	return map[string]any{
		"_id":  id,
		"type": "feat",
		"name": name,
		"img":  "feat.webp",
		"system": map[string]any{
			"actionType":    map[string]any{"value": "passive"},
			"actions":       map[string]any{"value": nil},
			"category":      "general",
			"level":         map[string]any{"value": level},
			"prerequisites": map[string]any{"value": []any{}},
			"traits":        map[string]any{"value": []any{"general"}, "rarity": "common"},
			"publication":   map[string]any{"title": "Player Core"},
		},
	}
}

func newCompendium(t *testing.T) (*Registry, *browser.Browser) {
	t.Helper()
	src := pack.NewMemorySource(pack.MemoryPack{
		Metadata: pack.Metadata{ID: "pf2e.feats-srd", Label: "Feats", Package: "pf2e", Type: pack.Item},
		Docs: []map[string]any{
			featDoc("f1", "Toughness", 1),
			featDoc("f2", "Fleet", 1),
			featDoc("f3", "Incredible Initiative", 3),
		},
	})
	b, err := browser.New(context.Background(), browser.Options{Source: src, ResultLimit: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Shutdown() })

	reg := newTestRegistry()
	require.NoError(t, RegisterCompendium(reg, b, "test"))
	return reg, b
}

func call[T any](t *testing.T, reg *Registry, name string, args map[string]any) T {
	t.Helper()
	out, err := reg.Execute(context.Background(), name, args)
	require.NoError(t, err)
	v, ok := out.(T)
	require.True(t, ok, "got %T", out)
	return v
}

func viewNames(v View) []string {
	names := make([]string, len(v.Results))
	for i, e := range v.Results {
		names[i] = e.Name
	}
	return names
}

func TestRegisterCompendium_Tools(t *testing.T) {
	reg, _ := newCompendium(t)

	tools, err := reg.ListAll(context.Background())
	require.NoError(t, err)
	var names []string
	for _, tool := range tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Title, tool.Name)
		assert.Contains(t, tool.Tags, "compendium")
		assert.Equal(t, "test", tool.Version)
	}
	assert.Equal(t, []string{
		"compendium_open",
		"compendium_query",
		"compendium_filter_data",
		"compendium_traits",
		"compendium_reset_filters",
		"compendium_load_more",
		"compendium_packs",
		"compendium_table",
	}, names)

	// Registering twice collides.
	assert.ErrorIs(t, RegisterCompendium(reg, nil, "test"), ErrDuplicateTool)
}

func TestCompendium_OpenQueryLoadMore(t *testing.T) {
	reg, b := newCompendium(t)

	v := call[View](t, reg, "compendium_open", map[string]any{"category": "feat"})
	assert.Equal(t, vocab.Feat, v.Category)
	assert.Equal(t, 3, v.Total)
	assert.Equal(t, 2, v.Limit)
	assert.Equal(t, []string{"Fleet", "Toughness"}, viewNames(v))

	v = call[View](t, reg, "compendium_load_more", map[string]any{})
	assert.Equal(t, 4, v.Limit)
	assert.Len(t, v.Results, 3)

	v = call[View](t, reg, "compendium_query", map[string]any{
		"search": "incred",
	})
	assert.Equal(t, []string{"Incredible Initiative"}, viewNames(v))
	assert.Equal(t, 2, v.Limit)

	v = call[View](t, reg, "compendium_query", map[string]any{
		"search":     "",
		"selections": map[string]any{"level": map[string]any{"from": 2, "to": 20}},
	})
	assert.Equal(t, []string{"Incredible Initiative"}, viewNames(v))
	assert.True(t, b.ActiveFilter().(*filter.FeatFilter).Level.Active())

	v = call[View](t, reg, "compendium_reset_filters", nil)
	assert.Equal(t, 3, v.Total)
}

func TestCompendium_OpenWithSelections(t *testing.T) {
	reg, _ := newCompendium(t)

	v := call[View](t, reg, "compendium_open", map[string]any{
		"category":       "feat",
		"hideNavigation": true,
		"selections": map[string]any{
			"order": map[string]any{"by": "name", "direction": "desc"},
		},
	})
	assert.Equal(t, []string{"Toughness", "Incredible Initiative"}, viewNames(v))
	assert.Empty(t, v.VisibleCategories)
}

func TestCompendium_InvalidArguments(t *testing.T) {
	reg, _ := newCompendium(t)
	ctx := context.Background()

	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{"missing category", "compendium_open", map[string]any{}},
		{"unknown category", "compendium_open", map[string]any{"category": "settings"}},
		{"unknown argument", "compendium_open", map[string]any{"category": "feat", "bogus": 1}},
		{"preset for wrong category", "compendium_open", map[string]any{
			"category": "feat",
			"action":   map[string]any{"types": []any{"action"}},
		}},
		{"bad spellcasting entry", "compendium_open", map[string]any{
			"category":     "spell",
			"spellcasting": map[string]any{"entry": map[string]any{"category": "wand"}},
		}},
		{"rank above maximum", "compendium_open", map[string]any{
			"category":     "spell",
			"spellcasting": map[string]any{"maxRank": 11},
		}},
		{"bad sort direction", "compendium_query", map[string]any{
			"selections": map[string]any{"order": map[string]any{"by": "name", "direction": "up"}},
		}},
		{"load without pack", "compendium_packs", map[string]any{"load": true}},
		{"negative initial", "compendium_table", map[string]any{"initial": -1}},
		{"filter data without category", "compendium_filter_data", map[string]any{}},
		{"traits without category", "compendium_traits", map[string]any{"query": "fort"}},
		{"traits limit too large", "compendium_traits", map[string]any{"category": "feat", "limit": 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Execute(ctx, tt.tool, tt.args)
			assert.ErrorIs(t, err, ErrInvalidArguments)
		})
	}
}

func TestCompendium_NoActiveCategory(t *testing.T) {
	reg, _ := newCompendium(t)

	_, err := reg.Execute(context.Background(), "compendium_query", map[string]any{"search": "x"})
	assert.ErrorIs(t, err, browser.ErrNoActiveCategory)

	params, _ := json.Marshal(map[string]any{"name": "compendium_load_more"})
	resp := reg.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/call", Params: params})
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeToolExecFailed, resp.Error.Code)
}

func TestCompendium_FilterData(t *testing.T) {
	reg, b := newCompendium(t)

	f := call[filter.Filter](t, reg, "compendium_filter_data", map[string]any{"category": "feat"})
	ff, ok := f.(*filter.FeatFilter)
	require.True(t, ok)
	assert.Equal(t, []filter.Option{{Label: "Player Core", Value: "source:player-core"}}, ff.Source.Options)

	l, _ := b.Loader(vocab.Feat)
	assert.True(t, l.IsInitialized())
	assert.Empty(t, b.ActiveCategory())
}

func TestCompendium_Traits(t *testing.T) {
	reg, _ := newCompendium(t)

	got := call[[]filter.Option](t, reg, "compendium_traits", map[string]any{
		"category": "feat",
		"query":    "fortu",
		"limit":    2,
	})
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 2)
	assert.Equal(t, "fortune", got[0].Value)

	all := call[[]filter.Option](t, reg, "compendium_traits", map[string]any{"category": "feat"})
	assert.Len(t, all, defaultTraitLimit)
}

func TestCompendium_Packs(t *testing.T) {
	reg, b := newCompendium(t)
	call[View](t, reg, "compendium_open", map[string]any{"category": "feat"})

	all := call[map[vocab.Category][]PackInfo](t, reg, "compendium_packs", nil)
	assert.Len(t, all, len(vocab.Categories))
	assert.Equal(t, []PackInfo{{ID: "pf2e.feats-srd", Name: "Feats", Package: "pf2e", Load: true}}, all[vocab.Feat])

	got := call[map[vocab.Category][]PackInfo](t, reg, "compendium_packs", map[string]any{
		"category": "feat",
		"pack":     "pf2e.feats-srd",
		"load":     false,
	})
	assert.Equal(t, map[vocab.Category][]PackInfo{
		vocab.Feat: {{ID: "pf2e.feats-srd", Name: "Feats", Package: "pf2e", Load: false}},
	}, got)

	l, _ := b.Loader(vocab.Feat)
	assert.Empty(t, l.Entries())
	assert.Empty(t, b.ActiveCategory())

	_, err := reg.Execute(context.Background(), "compendium_packs", map[string]any{
		"category": "feat",
		"pack":     "pf2e.missing",
		"load":     true,
	})
	assert.ErrorIs(t, err, pack.ErrUnknownPack)
}

func TestCompendium_Table(t *testing.T) {
	reg, _ := newCompendium(t)
	call[View](t, reg, "compendium_open", map[string]any{"category": "feat"})

	rows := call[[]category.TableRow](t, reg, "compendium_table", map[string]any{"initial": 10})
	require.Len(t, rows, 3)
	assert.Equal(t, category.TableRow{UUID: "Compendium.pf2e.feats-srd.Item.f2", Weight: 1, Range: [2]int{11, 11}}, rows[0])
}

func TestCompendium_OverHTTP(t *testing.T) {
	reg, _ := newCompendium(t)

	params, _ := json.Marshal(map[string]any{
		"name":      "compendium_open",
		"arguments": map[string]any{"category": "feat"},
	})
	resp := reg.HandleRequest(context.Background(), MCPRequest{JSONRPC: "2.0", ID: 7, Method: "tools/call", Params: params})
	require.Nil(t, resp.Error)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var decoded struct {
		Result struct {
			Category string `json:"category"`
			Total    int    `json:"total"`
			Results  []struct {
				UUID string `json:"uuid"`
			} `json:"results"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "feat", decoded.Result.Category)
	assert.Equal(t, 3, decoded.Result.Total)
	assert.Equal(t, "Compendium.pf2e.feats-srd.Item.f2", decoded.Result.Results[0].UUID)
}
