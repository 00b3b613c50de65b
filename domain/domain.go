// Package domain holds facet tags ("domains") in the "prefix:value" form and
// the helpers that produce them from raw record text.
package domain

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Tag joins a facet prefix and value.
func Tag(prefix, value string) string {
	return prefix + ":" + value
}

// Split returns the prefix and value of a tag, splitting at the first colon.
func Split(tag string) (prefix, value string, ok bool) {
	return strings.Cut(tag, ":")
}

// StripHomebrew removes the homebrew marker from a trait key.
func StripHomebrew(trait string) string {
	return strings.TrimPrefix(trait, "hb_")
}

// Slug converts free text into a lowercase, dash-separated identifier.
// Apostrophes are dropped so "Dragon's Hoard" becomes "dragons-hoard".
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r == '\'' || r == '’':
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}

// Set is an immutable-after-build set of tags with a numeric view.
// The zero value is an empty set ready for Add.
type Set struct {
	tags    map[string]struct{}
	numbers map[string]float64
	order   []string
}

// NewSet builds a set from tags.
func NewSet(tags ...string) *Set {
	s := &Set{}
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add inserts a tag. Numeric values are recorded under the tag prefix;
// the first numeric tag for a prefix wins.
func (s *Set) Add(tag string) {
	if s.tags == nil {
		s.tags = make(map[string]struct{})
		s.numbers = make(map[string]float64)
	}
	if _, ok := s.tags[tag]; ok {
		return
	}
	s.tags[tag] = struct{}{}
	s.order = append(s.order, tag)

	prefix, value, ok := Split(tag)
	if !ok {
		return
	}
	if _, seen := s.numbers[prefix]; seen {
		return
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		s.numbers[prefix] = n
	}
}

// Has reports whether the tag is in the set.
func (s *Set) Has(tag string) bool {
	if s == nil {
		return false
	}
	_, ok := s.tags[tag]
	return ok
}

// Number returns the numeric value recorded for key.
func (s *Set) Number(key string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	n, ok := s.numbers[key]
	return n, ok
}

// Len returns the number of tags.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tags)
}

// Slice returns the tags in insertion order.
func (s *Set) Slice() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.order)
}

// Sorted returns the tags in lexical order.
func (s *Set) Sorted() []string {
	out := s.Slice()
	slices.Sort(out)
	return out
}

// WithPrefix returns the values of every tag with the given prefix.
func (s *Set) WithPrefix(prefix string) []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, t := range s.order {
		if p, v, ok := Split(t); ok && p == prefix {
			out = append(out, v)
		}
	}
	return out
}
