package predicate

import (
	"strconv"
	"strings"
)

// Tags is the read side of a tag set as seen by compiled statements.
type Tags interface {
	// Has reports whether the exact tag is present.
	Has(tag string) bool
	// Number returns the numeric value recorded under key, if any.
	Number(key string) (float64, bool)
}

// Statement is a node of a predicate expression.
type Statement interface {
	// String returns the canonical form used as a cache key.
	String() string
	compile() func(Tags) bool
}

// Atom is satisfied when the tag is a member of the set.
type Atom string

// And is satisfied when every child is satisfied.
type And []Statement

// Or is satisfied when at least one child is satisfied.
type Or []Statement

// Not negates its child.
type Not struct {
	Statement Statement
}

// Operator is a numeric comparison operator.
type Operator string

// Supported comparison operators.
const (
	OpGte Operator = "gte"
	OpLte Operator = "lte"
	OpGt  Operator = "gt"
	OpLt  Operator = "lt"
	OpEq  Operator = "eq"
)

// Compare tests the number recorded for Key against Value.
// A missing key never satisfies the comparison.
type Compare struct {
	Op    Operator
	Key   string
	Value float64
}

// Gte builds a key >= value comparison.
func Gte(key string, value float64) Compare {
	return Compare{Op: OpGte, Key: key, Value: value}
}

// Lte builds a key <= value comparison.
func Lte(key string, value float64) Compare {
	return Compare{Op: OpLte, Key: key, Value: value}
}

func (a Atom) String() string { return strconv.Quote(string(a)) }

func (a And) String() string { return "and" + joinStatements(a) }

func (o Or) String() string { return "or" + joinStatements(o) }

func (n Not) String() string {
	if n.Statement == nil {
		return "not(nil)"
	}
	return "not(" + n.Statement.String() + ")"
}

func (c Compare) String() string {
	return string(c.Op) + "(" + strconv.Quote(c.Key) + "," + strconv.FormatFloat(c.Value, 'g', -1, 64) + ")"
}

func joinStatements(stmts []Statement) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range stmts {
		if i > 0 {
			b.WriteByte(',')
		}
		if s == nil {
			b.WriteString("nil")
			continue
		}
		b.WriteString(s.String())
	}
	b.WriteByte(']')
	return b.String()
}
