package analysis

import (
	"testing"

	"github.com/dekarrin/gocfg/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_UnitDerivationMatrix_NoSelfLoopForTrivialRule(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(1)
	a := syms[0]
	g.RuleBuilder(a).Rhs(a) // A ::= A, not a cycle per spec

	m := UnitDerivationMatrix(g)
	assert.False(t, m.Has(a, a))
}

func Test_UnitDerivationMatrix_DetectsRealCycle(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(4)
	start, a, b, c := syms[0], syms[1], syms[2], syms[3]

	g.RuleBuilder(start).Rhs(a)
	g.RuleBuilder(a).Rhs(b)
	g.RuleBuilder(b).Rhs(c)
	g.RuleBuilder(c).Rhs(a)

	m := UnitDerivationMatrix(g)
	assert.True(t, m.Has(a, a))
	assert.True(t, m.Has(b, b))
	assert.True(t, m.Has(c, c))
	assert.False(t, m.Has(start, start))
	assert.True(t, m.Has(start, a))
}

func Test_ReachabilityMatrix_ReflexiveAndTransitive(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(3)
	s, a, b := syms[0], syms[1], syms[2]
	g.RuleBuilder(s).Rhs(a)
	g.RuleBuilder(a).Rhs(b)

	m := ReachabilityMatrix(g)
	assert.True(t, m.Has(s, s))
	assert.True(t, m.Has(s, a))
	assert.True(t, m.Has(s, b))
	assert.True(t, m.Has(a, b))
	assert.False(t, m.Has(b, s))
}
