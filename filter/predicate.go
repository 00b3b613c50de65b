package filter

import (
	"github.com/jonwraymond/compendium/domain"
	"github.com/jonwraymond/compendium/predicate"
)

// BuildPredicate compiles the filter's selections into one conjunction.
// Facets without a selection contribute nothing, so a pristine filter yields
// an empty conjunction that every entry satisfies.
func BuildPredicate(f Filter) predicate.Statement {
	if f == nil {
		return nil
	}
	fs := facetsOf(f)
	stmt := predicate.And{}

	for _, c := range fs.checkboxes {
		if len(c.data.Selected) == 0 {
			continue
		}
		prefix := prefixOr(c.data.OptionPrefix, c.key)
		all := make(predicate.And, 0, len(c.data.Selected))
		for _, v := range c.data.Selected {
			all = append(all, predicate.Atom(domain.Tag(prefix, v)))
		}
		stmt = append(stmt, all)
	}

	for _, c := range fs.chips {
		if len(c.data.Selected) == 0 {
			continue
		}
		prefix := prefixOr(c.data.OptionPrefix, c.key)
		var included, excluded []predicate.Statement
		for _, s := range c.data.Selected {
			atom := predicate.Atom(domain.Tag(prefix, s.Value))
			if s.Exclude {
				excluded = append(excluded, atom)
			} else {
				included = append(included, atom)
			}
		}
		stmt = appendGroup(stmt, c.data.Conjunction, included, excluded)
	}

	if l := fs.level; l != nil && l.Active() {
		stmt = append(stmt, predicate.And{
			predicate.Gte("level", float64(l.From)),
			predicate.Lte("level", float64(l.To)),
		})
	}

	for _, r := range fs.ranges {
		if !r.data.Changed {
			continue
		}
		key := prefixOr(r.data.OptionPrefix, r.key)
		stmt = append(stmt, predicate.And{
			predicate.Gte(key, r.data.Values.Min),
			predicate.Lte(key, r.data.Values.Max),
		})
	}

	for _, s := range fs.selects {
		if s.data.Selected == "" {
			continue
		}
		stmt = append(stmt, predicate.Atom(domain.Tag(prefixOr(s.data.OptionPrefix, s.key), s.data.Selected)))
	}

	if src := fs.source; src != nil && len(src.Selected) > 0 {
		anyOf := make(predicate.Or, 0, len(src.Selected))
		for _, v := range src.Selected {
			anyOf = append(anyOf, predicate.Atom(v))
		}
		stmt = append(stmt, anyOf)
	}

	traits := f.Base().Traits
	if len(traits.Selected) > 0 {
		var included, excluded []predicate.Statement
		for _, t := range traits.Selected {
			atom := predicate.Atom(domain.Tag("trait", t.Value))
			if t.Not {
				excluded = append(excluded, atom)
			} else {
				included = append(included, atom)
			}
		}
		stmt = appendGroup(stmt, traits.Conjunction, included, excluded)
	}

	return stmt
}

func appendGroup(stmt predicate.And, conj Conjunction, included, excluded []predicate.Statement) predicate.And {
	if len(included) > 0 {
		if conj == Or {
			stmt = append(stmt, predicate.Or(included))
		} else {
			stmt = append(stmt, predicate.And(included))
		}
	}
	if len(excluded) > 0 {
		stmt = append(stmt, predicate.Not{Statement: predicate.Or(excluded)})
	}
	return stmt
}

func prefixOr(prefix, key string) string {
	if prefix != "" {
		return prefix
	}
	return key
}
