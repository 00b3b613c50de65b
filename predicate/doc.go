// Package predicate evaluates boolean statements over a set of facet tags.
//
// A [Statement] is one of:
//   - [Atom]: satisfied when the tag is present
//   - [And]: satisfied when every child is satisfied (empty is true)
//   - [Or]: satisfied when any child is satisfied (empty is false)
//   - [Not]: satisfied when its child is not
//   - [Compare]: reads the numeric value recorded for a key and compares it
//     against a literal
//
// # Compilation
//
// Statements are compiled once into a closure tree with [Compile] and then
// tested against many tag sets:
//
//	p := predicate.Compile(predicate.And{
//	    predicate.Atom("trait:fire"),
//	    predicate.Gte("level", 2),
//	})
//	ok := p.Test(tags)
//
// [Memo] keeps the last compiled statement and only recompiles when the
// statement's canonical form changes.
//
// # Thread Safety
//
// A [Compiled] value is immutable and safe for concurrent use. [Memo] guards
// its cache with a mutex.
package predicate
