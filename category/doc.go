// Package category turns pack records into browsable entries, one Builder
// per content category, and owns the per-category load lifecycle.
//
// A Loader reads the packs enabled for its category from a pack.Source,
// converts each record with its Builder, fills the filter's options from
// what it saw and indexes the entries for full-text search. Records missing
// a field the category relies on are logged and skipped. A failed load
// leaves the previous state untouched.
//
// # Usage
//
//	l := category.NewLoader(category.NewSpell(i18n.English()), category.LoaderOptions{
//		Source: src,
//		Packs:  registry,
//	})
//	if err := l.Init(ctx, false); err != nil {
//		return err
//	}
//	results, err := l.Results(ctx)
package category
