package predicate

import "sync"

// Compiled is a statement ready for repeated evaluation.
type Compiled struct {
	key  string
	test func(Tags) bool
}

// Compile turns a statement into an evaluable closure tree.
// A nil statement is satisfied by every tag set.
func Compile(s Statement) Compiled {
	if s == nil {
		return Compiled{key: "", test: always}
	}
	return Compiled{key: s.String(), test: s.compile()}
}

// Test reports whether tags satisfy the compiled statement.
func (c Compiled) Test(tags Tags) bool {
	if c.test == nil {
		return true
	}
	return c.test(tags)
}

// Key returns the canonical form of the compiled statement.
func (c Compiled) Key() string {
	return c.key
}

func always(Tags) bool { return true }
func never(Tags) bool  { return false }

func (a Atom) compile() func(Tags) bool {
	tag := string(a)
	return func(t Tags) bool { return t.Has(tag) }
}

func (a And) compile() func(Tags) bool {
	if len(a) == 0 {
		return always
	}
	children := compileAll(a)
	return func(t Tags) bool {
		for _, c := range children {
			if !c(t) {
				return false
			}
		}
		return true
	}
}

func (o Or) compile() func(Tags) bool {
	if len(o) == 0 {
		return never
	}
	children := compileAll(o)
	return func(t Tags) bool {
		for _, c := range children {
			if c(t) {
				return true
			}
		}
		return false
	}
}

func (n Not) compile() func(Tags) bool {
	if n.Statement == nil {
		return never
	}
	inner := n.Statement.compile()
	return func(t Tags) bool { return !inner(t) }
}

func (c Compare) compile() func(Tags) bool {
	key, value := c.Key, c.Value
	var cmp func(float64) bool
	switch c.Op {
	case OpGte:
		cmp = func(v float64) bool { return v >= value }
	case OpLte:
		cmp = func(v float64) bool { return v <= value }
	case OpGt:
		cmp = func(v float64) bool { return v > value }
	case OpLt:
		cmp = func(v float64) bool { return v < value }
	case OpEq:
		cmp = func(v float64) bool { return v == value }
	default:
		return never
	}
	return func(t Tags) bool {
		v, ok := t.Number(key)
		return ok && cmp(v)
	}
}

func compileAll(stmts []Statement) []func(Tags) bool {
	out := make([]func(Tags) bool, 0, len(stmts))
	for _, s := range stmts {
		if s == nil {
			// A nil child behaves like an empty conjunction.
			out = append(out, always)
			continue
		}
		out = append(out, s.compile())
	}
	return out
}

// Memo caches the most recently compiled statement.
type Memo struct {
	mu       sync.Mutex
	compiled Compiled
	valid    bool
	compiles int
}

// Get returns the compiled form of s, recompiling only when its canonical
// form differs from the cached one.
func (m *Memo) Get(s Statement) Compiled {
	key := ""
	if s != nil {
		key = s.String()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.compiled.key == key {
		return m.compiled
	}
	m.compiled = Compile(s)
	m.valid = true
	m.compiles++
	return m.compiled
}

// Compiles returns how many times the memo has compiled a statement.
func (m *Memo) Compiles() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compiles
}

// Reset drops the cached statement.
func (m *Memo) Reset() {
	m.mu.Lock()
	m.valid = false
	m.compiled = Compiled{}
	m.mu.Unlock()
}
