package category

import (
	"strings"

	"github.com/jonwraymond/compendium/pack"
)

// value is the {"value": ...} wrapper most record fields use.
type value[T any] struct {
	Value pack.Field[T] `json:"value"`
}

// hasValue reports whether both the wrapper and its value member exist.
func hasValue[T any](f pack.Field[value[T]]) bool {
	return f.Set && !f.Null && f.Value.Value.Set
}

// valueOr returns the wrapped value, or fallback.
func valueOr[T any](f pack.Field[value[T]], fallback T) T {
	if !f.Set || f.Null {
		return fallback
	}
	return f.Value.Value.Or(fallback)
}

type publication struct {
	Title pack.Field[string] `json:"title"`
}

// provenance is where a record says it was published. Items carry it on
// system, actors on system.details.
type provenance struct {
	Publication pack.Field[publication]   `json:"publication"`
	Source      pack.Field[value[string]] `json:"source"`
}

// name prefers the publication title over the legacy source value. A
// present but empty title still wins.
func (p provenance) name() string {
	if p.Publication.Set && !p.Publication.Null {
		if t := p.Publication.Value.Title; t.Set && !t.Null {
			return strings.TrimSpace(t.Value)
		}
	}
	return strings.TrimSpace(valueOr(p.Source, ""))
}

// traits is the system.traits block.
type traits struct {
	Value      []string       `json:"value"`
	Rarity     string         `json:"rarity"`
	Size       *value[string] `json:"size"`
	Traditions []string       `json:"traditions"`
}

func (t traits) rarity() string {
	if t.Rarity == "" {
		return "common"
	}
	return t.Rarity
}

// header is what every record decodes alongside system.
type header struct {
	Img  pack.Field[string] `json:"img"`
	Type string             `json:"type"`
}
