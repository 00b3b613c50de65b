package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTags struct {
	tags    map[string]bool
	numbers map[string]float64
}

func newFakeTags(tags ...string) fakeTags {
	f := fakeTags{tags: map[string]bool{}, numbers: map[string]float64{}}
	for _, t := range tags {
		f.tags[t] = true
	}
	return f
}

func (f fakeTags) withNumber(key string, v float64) fakeTags {
	f.numbers[key] = v
	return f
}

func (f fakeTags) Has(tag string) bool { return f.tags[tag] }

func (f fakeTags) Number(key string) (float64, bool) {
	v, ok := f.numbers[key]
	return v, ok
}

func TestCompile(t *testing.T) {
	fire := newFakeTags("trait:fire", "level:3").withNumber("level", 3)

	tests := []struct {
		name string
		stmt Statement
		want bool
	}{
		{"nil statement", nil, true},
		{"atom present", Atom("trait:fire"), true},
		{"atom missing", Atom("trait:cold"), false},
		{"unknown tag", Atom("never:produced"), false},
		{"empty and", And{}, true},
		{"empty or", Or{}, false},
		{"and all", And{Atom("trait:fire"), Atom("level:3")}, true},
		{"and one missing", And{Atom("trait:fire"), Atom("trait:cold")}, false},
		{"or one", Or{Atom("trait:cold"), Atom("trait:fire")}, true},
		{"or none", Or{Atom("trait:cold"), Atom("trait:acid")}, false},
		{"not present", Not{Atom("trait:fire")}, false},
		{"not missing", Not{Atom("trait:cold")}, true},
		{"not or exclude", Not{Or{Atom("trait:cold"), Atom("trait:fire")}}, false},
		{"gte equal", Gte("level", 3), true},
		{"gte above", Gte("level", 4), false},
		{"lte equal", Lte("level", 3), true},
		{"lte below", Lte("level", 2), false},
		{"missing key", Gte("price", 0), false},
		{"range inclusive", And{Gte("level", 3), Lte("level", 3)}, true},
		{"gt", Compare{Op: OpGt, Key: "level", Value: 2}, true},
		{"lt", Compare{Op: OpLt, Key: "level", Value: 3}, false},
		{"eq", Compare{Op: OpEq, Key: "level", Value: 3}, true},
		{"unknown operator", Compare{Op: "between", Key: "level", Value: 3}, false},
		{"nested", And{Or{Atom("trait:cold"), Atom("trait:fire")}, Not{Atom("trait:evil")}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compile(tt.stmt).Test(fire))
		})
	}
}

func TestCompile_Idempotent(t *testing.T) {
	p := Compile(Or{Atom("a"), And{Atom("b"), Atom("c")}})
	sets := []fakeTags{
		newFakeTags("a"),
		newFakeTags("b"),
		newFakeTags("b", "c"),
		newFakeTags(),
	}
	want := []bool{true, false, true, false}

	for round := 0; round < 3; round++ {
		for i := len(sets) - 1; i >= 0; i-- {
			assert.Equal(t, want[i], p.Test(sets[i]), "set %d round %d", i, round)
		}
	}
}

func TestStatementString(t *testing.T) {
	stmt := And{Atom("trait:fire"), Not{Or{Atom("x")}}, Gte("level", 2)}
	assert.Equal(t, `and["trait:fire",not(or["x"]),gte("level",2)]`, stmt.String())

	// Structurally equal statements share a key.
	other := And{Atom("trait:fire"), Not{Or{Atom("x")}}, Gte("level", 2)}
	assert.Equal(t, stmt.String(), other.String())
}

func TestMemo(t *testing.T) {
	var m Memo
	tags := newFakeTags("trait:fire")

	first := m.Get(And{Atom("trait:fire")})
	require.True(t, first.Test(tags))
	assert.Equal(t, 1, m.Compiles())

	// Same selection, new statement value: cached.
	m.Get(And{Atom("trait:fire")})
	assert.Equal(t, 1, m.Compiles())

	changed := m.Get(And{Atom("trait:cold")})
	assert.False(t, changed.Test(tags))
	assert.Equal(t, 2, m.Compiles())

	m.Reset()
	m.Get(And{Atom("trait:cold")})
	assert.Equal(t, 3, m.Compiles())
}

func TestCompiledZeroValue(t *testing.T) {
	var c Compiled
	assert.True(t, c.Test(newFakeTags()))
	assert.Equal(t, "", c.Key())
}
