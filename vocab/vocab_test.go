package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("spell")
	require.NoError(t, err)
	assert.Equal(t, Spell, c)

	_, err = ParseCategory("settings")
	assert.Error(t, err)
}

func TestTableHelpers(t *testing.T) {
	tbl := table("a", "Alpha", "b", "Bravo", "c", "Charlie")

	assert.True(t, tbl.Has("b"))
	assert.False(t, tbl.Has("z"))
	assert.Equal(t, []string{"a", "c"}, tbl.Pick("c", "a").Keys())
	assert.Equal(t, []string{"b"}, tbl.Omit("a", "c").Keys())

	label, ok := tbl.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "Charlie", label)
}

func TestMerge(t *testing.T) {
	merged := Merge(table("a", "A1", "b", "B"), table("c", "C", "a", "A2"))
	assert.Equal(t, []string{"a", "b", "c"}, merged.Keys())
	label, _ := merged.Get("a")
	assert.Equal(t, "A2", label)
}

func TestTablesHaveUniqueKeys(t *testing.T) {
	tables := map[string]Table{
		"rarities":        Rarities,
		"feat traits":     FeatTraits,
		"equipment":       EquipmentTraits,
		"spell traits":    SpellTraits,
		"weapon groups":   WeaponGroups,
		"creature traits": CreatureTraits,
	}
	for name, tbl := range tables {
		seen := map[string]bool{}
		for _, l := range tbl {
			assert.False(t, seen[l.Key], "%s: duplicate key %s", name, l.Key)
			seen[l.Key] = true
		}
	}
}

func TestActionGlyph(t *testing.T) {
	assert.Equal(t, "2", ActionGlyph("2"))
	assert.Equal(t, "R", ActionGlyph("Reaction"))
	assert.Equal(t, "1 - 3", ActionGlyph("1 to 3"))
	assert.Equal(t, "", ActionGlyph("10 minutes"))
}

func TestOrdinal(t *testing.T) {
	want := []string{"1st", "2nd", "3rd", "4th", "5th", "6th", "7th", "8th", "9th", "10th"}
	for i, w := range want {
		assert.Equal(t, w, Ordinal(i+1))
	}
	assert.Equal(t, "11th", Ordinal(11))
	assert.Equal(t, "22nd", Ordinal(22))
}
