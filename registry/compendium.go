package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonwraymond/compendium/browser"
	"github.com/jonwraymond/compendium/category"
	"github.com/jonwraymond/compendium/entry"
	"github.com/jonwraymond/compendium/filter"
	"github.com/jonwraymond/compendium/pack"
	"github.com/jonwraymond/compendium/vocab"
)

// Browser is the part of browser.Browser the compendium tools drive.
type Browser interface {
	OpenCategory(ctx context.Context, c vocab.Category, opts category.OpenOptions) error
	OpenActionCategory(ctx context.Context, p browser.ActionPreset) error
	OpenSpellCategory(ctx context.Context, e browser.SpellcastingEntry, maxRank int, spellCategory string) error
	ApplySelections(s filter.Selections) error
	ActiveCategory() vocab.Category
	VisibleCategories() []vocab.Category
	Results(ctx context.Context) ([]entry.Entry, error)
	ResultLimit() int
	LoadMore() (int, error)
	ResetFilters() error
	GetFilterData(ctx context.Context, c vocab.Category) (filter.Filter, error)
	SuggestTraits(ctx context.Context, c vocab.Category, query string, limit int) ([]filter.Option, error)
	PackSettings(c vocab.Category) []pack.Entry
	UpdatePackSettings(ctx context.Context, c vocab.Category, id string, load bool) error
	ResetInitializedCategories(ctx context.Context) error
	TableResults(ctx context.Context, opts category.TableOptions) ([]category.TableRow, error)
}

var _ Browser = (*browser.Browser)(nil)

const defaultTraitLimit = 10

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeArgs converts tool arguments into v and validates it. Unknown
// argument names are rejected.
func decodeArgs(args map[string]any, v any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

func parseCategory(s string) (vocab.Category, error) {
	c, err := vocab.ParseCategory(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return c, nil
}

// View is the active category's state as the tools report it.
type View struct {
	Category          vocab.Category   `json:"category"`
	VisibleCategories []vocab.Category `json:"visibleCategories"`
	Total             int              `json:"total"`
	Limit             int              `json:"limit"`
	Results           []entry.Entry    `json:"results"`
}

// PackInfo is one pack's load preference.
type PackInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Package string `json:"package"`
	Load    bool   `json:"load"`
}

type openArgs struct {
	Category       string                `json:"category" validate:"required"`
	HideNavigation bool                  `json:"hideNavigation"`
	ShowCategories []vocab.Category      `json:"showCategories"`
	Selections     *filter.Selections    `json:"selections"`
	Action         *browser.ActionPreset `json:"action"`
	Spellcasting   *spellcastingArgs     `json:"spellcasting"`
}

type spellcastingArgs struct {
	Entry    browser.SpellcastingEntry `json:"entry"`
	MaxRank  int                       `json:"maxRank" validate:"gte=0,lte=10"`
	Category string                    `json:"category"`
}

type queryArgs struct {
	Search     *string            `json:"search"`
	Selections *filter.Selections `json:"selections"`
}

type categoryArgs struct {
	Category string `json:"category" validate:"required"`
}

type traitsArgs struct {
	Category string `json:"category" validate:"required"`
	Query    string `json:"query"`
	Limit    int    `json:"limit" validate:"gte=0,lte=100"`
}

type packsArgs struct {
	Category string `json:"category" validate:"required_with=Load"`
	Pack     string `json:"pack" validate:"required_with=Load"`
	Load     *bool  `json:"load"`
}

type tableArgs struct {
	Initial int `json:"initial" validate:"gte=0"`
	Weight  int `json:"weight" validate:"gte=0"`
}

type compendiumTools struct {
	b Browser
}

// RegisterCompendium registers the compendium tools backed by b, each
// tagged "compendium" and stamped with version.
func RegisterCompendium(r *Registry, b Browser, version string) error {
	t := compendiumTools{b: b}
	tools := []struct {
		name, title, description string
		schema                   map[string]any
		handler                  ToolHandler
	}{
		{
			"compendium_open", "Open category",
			"Opens a compendium category, optionally with preselected facets or a spellcasting or action preset.",
			objectSchema(map[string]any{
				"category":       enumSchema(vocab.Categories),
				"hideNavigation": map[string]any{"type": "boolean"},
				"showCategories": map[string]any{"type": "array", "items": enumSchema(vocab.Categories)},
				"selections":     selectionsSchema,
				"action": objectSchema(map[string]any{
					"types":      stringArray,
					"categories": stringArray,
					"traits":     stringArray,
				}),
				"spellcasting": objectSchema(map[string]any{
					"entry": objectSchema(map[string]any{
						"category": map[string]any{
							"type": "string",
							"enum": []string{"prepared", "spontaneous", "innate", "focus", "ritual"},
						},
						"tradition": map[string]any{"type": "string"},
					}),
					"maxRank":  map[string]any{"type": "integer", "minimum": 0, "maximum": category.MaxSpellRank},
					"category": map[string]any{"type": "string"},
				}),
			}, "category"),
			t.open,
		},
		{
			"compendium_query", "Query results",
			"Edits the active filter and returns the visible results of the active category.",
			objectSchema(map[string]any{
				"search":     map[string]any{"type": "string"},
				"selections": selectionsSchema,
			}),
			t.query,
		},
		{
			"compendium_filter_data", "Filter data",
			"Returns the default filter of a category with every facet option, loading the category if needed.",
			objectSchema(map[string]any{"category": enumSchema(vocab.Categories)}, "category"),
			t.filterData,
		},
		{
			"compendium_traits", "Suggest traits",
			"Returns the trait options of a category whose label best matches a partial query.",
			objectSchema(map[string]any{
				"category": enumSchema(vocab.Categories),
				"query":    map[string]any{"type": "string"},
				"limit":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
			}, "category"),
			t.traits,
		},
		{
			"compendium_reset_filters", "Reset filters",
			"Restores the active category's default filter.",
			objectSchema(map[string]any{}),
			t.resetFilters,
		},
		{
			"compendium_load_more", "Load more",
			"Widens the visible result window of the active category.",
			objectSchema(map[string]any{}),
			t.loadMore,
		},
		{
			"compendium_packs", "Pack settings",
			"Lists the packs each category reads. With load set, enables or disables one pack and reloads loaded categories.",
			objectSchema(map[string]any{
				"category": enumSchema(vocab.Categories),
				"pack":     map[string]any{"type": "string"},
				"load":     map[string]any{"type": "boolean"},
			}),
			t.packs,
		},
		{
			"compendium_table", "Export table",
			"Exports the active results as weighted roll table rows.",
			objectSchema(map[string]any{
				"initial": map[string]any{"type": "integer", "minimum": 0},
				"weight":  map[string]any{"type": "integer", "minimum": 0},
			}),
			t.table,
		},
	}

	for _, tool := range tools {
		err := r.Register(Tool{
			Name:        tool.name,
			Title:       tool.title,
			Description: tool.description,
			InputSchema: tool.schema,
			Tags:        []string{"compendium"},
			Version:     version,
			Handler:     tool.handler,
		})
		if err != nil {
			return fmt.Errorf("register %s: %w", tool.name, err)
		}
	}
	return nil
}

func (t compendiumTools) view(ctx context.Context) (View, error) {
	results, err := t.b.Results(ctx)
	if err != nil {
		return View{}, err
	}
	limit := t.b.ResultLimit()
	return View{
		Category:          t.b.ActiveCategory(),
		VisibleCategories: t.b.VisibleCategories(),
		Total:             len(results),
		Limit:             limit,
		Results:           filter.Window(results, limit),
	}, nil
}

func (t compendiumTools) open(ctx context.Context, raw map[string]any) (any, error) {
	var args openArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	c, err := parseCategory(args.Category)
	if err != nil {
		return nil, err
	}

	switch {
	case args.Action != nil && args.Spellcasting != nil:
		return nil, fmt.Errorf("%w: action and spellcasting are exclusive", ErrInvalidArguments)
	case args.Action != nil:
		if c != vocab.Action {
			return nil, fmt.Errorf("%w: action preset for %s", ErrInvalidArguments, c)
		}
		err = t.b.OpenActionCategory(ctx, *args.Action)
	case args.Spellcasting != nil:
		if c != vocab.Spell {
			return nil, fmt.Errorf("%w: spellcasting preset for %s", ErrInvalidArguments, c)
		}
		s := args.Spellcasting
		err = t.b.OpenSpellCategory(ctx, s.Entry, s.MaxRank, s.Category)
	default:
		err = t.b.OpenCategory(ctx, c, category.OpenOptions{
			HideNavigation: args.HideNavigation,
			ShowCategories: args.ShowCategories,
		})
	}
	if err != nil {
		return nil, err
	}

	if args.Selections != nil {
		if err := t.b.ApplySelections(*args.Selections); err != nil {
			return nil, err
		}
	}
	return t.view(ctx)
}

func (t compendiumTools) query(ctx context.Context, raw map[string]any) (any, error) {
	var args queryArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	var s filter.Selections
	if args.Selections != nil {
		s = *args.Selections
	}
	if args.Search != nil {
		s.Search = args.Search
	}
	if args.Search != nil || args.Selections != nil {
		if err := t.b.ApplySelections(s); err != nil {
			return nil, err
		}
	}
	return t.view(ctx)
}

func (t compendiumTools) filterData(ctx context.Context, raw map[string]any) (any, error) {
	var args categoryArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	c, err := parseCategory(args.Category)
	if err != nil {
		return nil, err
	}
	return t.b.GetFilterData(ctx, c)
}

func (t compendiumTools) traits(ctx context.Context, raw map[string]any) (any, error) {
	var args traitsArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	c, err := parseCategory(args.Category)
	if err != nil {
		return nil, err
	}
	limit := args.Limit
	if limit == 0 {
		limit = defaultTraitLimit
	}
	return t.b.SuggestTraits(ctx, c, args.Query, limit)
}

func (t compendiumTools) resetFilters(ctx context.Context, raw map[string]any) (any, error) {
	if err := decodeArgs(raw, &struct{}{}); err != nil {
		return nil, err
	}
	if err := t.b.ResetFilters(); err != nil {
		return nil, err
	}
	return t.view(ctx)
}

func (t compendiumTools) loadMore(ctx context.Context, raw map[string]any) (any, error) {
	if err := decodeArgs(raw, &struct{}{}); err != nil {
		return nil, err
	}
	if _, err := t.b.LoadMore(); err != nil {
		return nil, err
	}
	return t.view(ctx)
}

func (t compendiumTools) packs(ctx context.Context, raw map[string]any) (any, error) {
	var args packsArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}

	categories := vocab.Categories
	if args.Category != "" {
		c, err := parseCategory(args.Category)
		if err != nil {
			return nil, err
		}
		categories = []vocab.Category{c}
	}

	if args.Load != nil {
		if err := t.b.UpdatePackSettings(ctx, categories[0], args.Pack, *args.Load); err != nil {
			return nil, err
		}
		if err := t.b.ResetInitializedCategories(ctx); err != nil {
			return nil, err
		}
	}

	out := make(map[vocab.Category][]PackInfo, len(categories))
	for _, c := range categories {
		entries := t.b.PackSettings(c)
		infos := make([]PackInfo, len(entries))
		for i, e := range entries {
			infos[i] = PackInfo{ID: e.ID, Name: e.Name, Package: e.Package, Load: e.Load}
		}
		out[c] = infos
	}
	return out, nil
}

func (t compendiumTools) table(ctx context.Context, raw map[string]any) (any, error) {
	var args tableArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	return t.b.TableResults(ctx, category.TableOptions{Initial: args.Initial, Weight: args.Weight})
}

var stringArray = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}

var chipSelection = objectSchema(map[string]any{
	"value":   map[string]any{"type": "string"},
	"exclude": map[string]any{"type": "boolean"},
}, "value")

var conjunction = map[string]any{"type": "string", "enum": []string{"and", "or"}}

var selectionsSchema = objectSchema(map[string]any{
	"search": map[string]any{"type": "string"},
	"order": objectSchema(map[string]any{
		"by":        map[string]any{"type": "string"},
		"direction": map[string]any{"type": "string", "enum": []string{"asc", "desc"}},
	}, "by"),
	"checkboxes": map[string]any{"type": "object", "additionalProperties": stringArray},
	"chips": map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "array", "items": chipSelection},
	},
	"chipConjunctions": map[string]any{"type": "object", "additionalProperties": conjunction},
	"level": objectSchema(map[string]any{
		"from": map[string]any{"type": "integer"},
		"to":   map[string]any{"type": "integer"},
	}, "from", "to"),
	"ranges": map[string]any{
		"type": "object",
		"additionalProperties": objectSchema(map[string]any{
			"min": map[string]any{"type": "string"},
			"max": map[string]any{"type": "string"},
		}),
	},
	"selects": map[string]any{"type": "object", "additionalProperties": map[string]any{"type": "string"}},
	"source":  stringArray,
	"traits": map[string]any{
		"type": "array",
		"items": objectSchema(map[string]any{
			"label": map[string]any{"type": "string"},
			"value": map[string]any{"type": "string"},
			"not":   map[string]any{"type": "boolean"},
		}, "value"),
	},
	"traitConjunction": conjunction,
})

func objectSchema(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func enumSchema(categories []vocab.Category) map[string]any {
	values := make([]string, len(categories))
	for i, c := range categories {
		values[i] = string(c)
	}
	return map[string]any{"type": "string", "enum": values}
}
