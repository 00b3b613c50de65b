package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Pathfinder Core Rulebook", "pathfinder-core-rulebook"},
		{"Dragon's Hoard", "dragons-hoard"},
		{"  Bestiary 2  ", "bestiary-2"},
		{"Lost Omens: Gods & Magic", "lost-omens-gods-magic"},
		{"1 minute", "1-minute"},
		{"", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}

func TestStripHomebrew(t *testing.T) {
	assert.Equal(t, "fire", StripHomebrew("hb_fire"))
	assert.Equal(t, "fire", StripHomebrew("fire"))
	assert.Equal(t, "fire_hb_", StripHomebrew("fire_hb_"))
}

func TestSet(t *testing.T) {
	s := NewSet("level:5", "trait:fire", "trait:fire", "source:core", "level:7", "price:1e3")

	assert.Equal(t, 5, s.Len())
	assert.True(t, s.Has("trait:fire"))
	assert.False(t, s.Has("trait:Fire"), "tags are case-sensitive")

	lvl, ok := s.Number("level")
	assert.True(t, ok)
	assert.Equal(t, 5.0, lvl, "first numeric value wins")

	price, ok := s.Number("price")
	assert.True(t, ok)
	assert.Equal(t, 1000.0, price)

	_, ok = s.Number("trait")
	assert.False(t, ok)

	assert.Equal(t, []string{"level:5", "trait:fire", "source:core", "level:7", "price:1e3"}, s.Slice())
	assert.Equal(t, []string{"5", "7"}, s.WithPrefix("level"))
}

func TestSet_Nil(t *testing.T) {
	var s *Set
	assert.False(t, s.Has("x"))
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Slice())
	_, ok := s.Number("level")
	assert.False(t, ok)
}

func TestSet_NestedTag(t *testing.T) {
	s := NewSet("trait:ancestry:universal", "defense:save:basic")
	assert.True(t, s.Has("trait:ancestry:universal"))
	assert.Equal(t, []string{"ancestry:universal"}, s.WithPrefix("trait"))
}
