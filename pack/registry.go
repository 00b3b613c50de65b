package pack

import (
	"cmp"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jonwraymond/compendium/vocab"
)

// Info is the load preference of one pack for one category.
type Info struct {
	Load    bool   `json:"load"`
	Name    string `json:"name"`
	Package string `json:"package"`
}

// Settings is the persisted blob: category → pack id → preference.
type Settings map[vocab.Category]map[string]Info

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	out := make(Settings, len(s))
	for c, packs := range s {
		m := make(map[string]Info, len(packs))
		for id, info := range packs {
			m[id] = info
		}
		out[c] = m
	}
	return out
}

// Defaults decide whether a pack loads when no preference is saved. A
// category default wins over a pack default.
type Defaults struct {
	Categories map[string]bool `toml:"categories"`
	Packs      map[string]bool `toml:"packs"`
}

// DefaultLoadDefaults loads every NPC and hazard pack plus the core packs of
// the other categories.
func DefaultLoadDefaults() Defaults {
	return Defaults{
		Categories: map[string]bool{
			string(vocab.Bestiary): true,
			string(vocab.Hazard):   true,
		},
		Packs: map[string]bool{
			"pf2e.actionspf2e":        true,
			"pf2e.familiar-abilities": true,
			"pf2e.equipment-srd":      true,
			"pf2e.ancestryfeatures":   true,
			"pf2e.classfeatures":      true,
			"pf2e.feats-srd":          true,
			"pf2e.spells-srd":         true,
			"pf2e.kingmaker-features": true,
		},
	}
}

// LoadDefaults decodes TOML load defaults:
//
//	[categories]
//	bestiary = true
//
//	[packs]
//	"pf2e.spells-srd" = true
func LoadDefaults(r io.Reader) (Defaults, error) {
	var d Defaults
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return Defaults{}, fmt.Errorf("decode load defaults: %w", err)
	}
	for c := range d.Categories {
		if _, err := vocab.ParseCategory(c); err != nil {
			return Defaults{}, err
		}
	}
	return d, nil
}

// LoadDefaultsFile reads TOML load defaults from disk.
func LoadDefaultsFile(path string) (Defaults, error) {
	f, err := os.Open(path)
	if err != nil {
		return Defaults{}, err
	}
	defer f.Close()
	return LoadDefaults(f)
}

func (d Defaults) load(saved Settings, c vocab.Category, id string) bool {
	if info, ok := saved[c][id]; ok {
		return info.Load
	}
	if v, ok := d.Categories[string(c)]; ok {
		return v
	}
	return d.Packs[id]
}

// TypeCategory maps a record type to the category that browses it.
func TypeCategory(recordType string) (vocab.Category, bool) {
	switch recordType {
	case "action":
		return vocab.Action, true
	case "campaignFeature":
		return vocab.CampaignFeature, true
	case "feat":
		return vocab.Feat, true
	case "kit":
		return vocab.Equipment, true
	case "hazard":
		return vocab.Hazard, true
	case "npc":
		return vocab.Bestiary, true
	case "spell":
		return vocab.Spell, true
	}
	if slices.Contains(vocab.PhysicalItemTypes, recordType) {
		return vocab.Equipment, true
	}
	return "", false
}

// Entry is a pack's preference within one category.
type Entry struct {
	ID string
	Info
}

// Registry is the per-category pack list, each sorted by display name.
type Registry struct {
	categories map[vocab.Category][]Entry
}

// Rebuild derives the registry from the available packs. A pack appears in
// every category one of its record types maps to. Its load flag is the
// saved preference, else the category default, else the pack default.
// Pack names are collated for locale.
func Rebuild(packs []Metadata, saved Settings, d Defaults, locale string) *Registry {
	r := &Registry{categories: make(map[vocab.Category][]Entry, len(vocab.Categories))}
	for _, c := range vocab.Categories {
		r.categories[c] = []Entry{}
	}

	for _, p := range packs {
		var cats []vocab.Category
		for _, t := range p.Types {
			if c, ok := TypeCategory(t); ok && !slices.Contains(cats, c) {
				cats = append(cats, c)
			}
		}
		for _, c := range cats {
			r.categories[c] = append(r.categories[c], Entry{
				ID:   p.ID,
				Info: Info{Load: d.load(saved, c, p.ID), Name: p.Label, Package: p.Package},
			})
		}
	}

	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	col := collate.New(tag)
	for c, entries := range r.categories {
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return cmp.Or(col.CompareString(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
		})
		r.categories[c] = entries
	}
	return r
}

// Packs returns the category's packs in name order.
func (r *Registry) Packs(c vocab.Category) []Entry {
	return slices.Clone(r.categories[c])
}

// LoadedPacks returns the ids of the category's enabled packs in name order.
func (r *Registry) LoadedPacks(c vocab.Category) []string {
	var ids []string
	for _, e := range r.categories[c] {
		if e.Load {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// LoadedPacksAll returns every enabled pack id across categories, sorted
// and without duplicates.
func (r *Registry) LoadedPacksAll() []string {
	var ids []string
	for _, c := range vocab.Categories {
		ids = append(ids, r.LoadedPacks(c)...)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// Settings returns the registry as a persistable blob.
func (r *Registry) Settings() Settings {
	out := make(Settings, len(r.categories))
	for c, entries := range r.categories {
		m := make(map[string]Info, len(entries))
		for _, e := range entries {
			m[e.ID] = e.Info
		}
		out[c] = m
	}
	return out
}

// SetLoad changes one pack's load flag. It reports whether the pack is
// registered for the category.
func (r *Registry) SetLoad(c vocab.Category, id string, load bool) bool {
	for i, e := range r.categories[c] {
		if e.ID == id {
			r.categories[c][i].Load = load
			return true
		}
	}
	return false
}
