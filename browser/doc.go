// Package browser is the controller over every content category.
//
// A Browser owns one category.Loader per category, the pack registry that
// decides which packs each loader reads, and the navigation state a UI or
// tool surface drives: the active category, its active filter and the
// visible result window.
//
// # Basic Usage
//
//	b, err := browser.New(ctx, browser.Options{
//	    Source:   pack.NewDirSource("packs", 4),
//	    Settings: settings.NewMemoryStore(),
//	    GM:       true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := b.OpenCategory(ctx, vocab.Spell, category.OpenOptions{}); err != nil {
//	    log.Fatal(err)
//	}
//	_ = b.SetSearchText("fireball")
//	results, err := b.VisibleResults(ctx)
//
// # Presets
//
// OpenActionCategory and OpenSpellCategory open a category with a filter
// preselected from a small description, such as a spellcasting entry.
//
// # Pack Settings
//
// RebuildPackRegistry merges the available packs with the saved load flags.
// UpdatePackSettings persists one flag; ResetInitializedCategories then
// reloads every category that already loaded.
//
// # Thread Safety
//
// All Browser methods are safe for concurrent use. Filters returned by
// ActiveFilter are shared; mutate them through UpdateFilter.
package browser
