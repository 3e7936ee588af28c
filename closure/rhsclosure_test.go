package closure

import (
	"testing"

	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
	"github.com/stretchr/testify/assert"
)

// buildProductivityGrammar builds:
//
//	S -> A B
//	A -> 'a'
//	B -> A
//	C -> D   (D is never defined: unproductive)
func buildProductivityGrammar(g *grammar.Cfg) (s, a, b, c, d, term symbol.Symbol) {
	syms := g.SymN(6)
	s, a, b, c, d, term = syms[0], syms[1], syms[2], syms[3], syms[4], syms[5]

	g.RuleBuilder(s).Rhs(a, b)
	g.RuleBuilder(a).Rhs(term)
	g.RuleBuilder(b).Rhs(a)
	g.RuleBuilder(c).Rhs(d)

	return
}

func Test_RhsClosure_All_Productivity(t *testing.T) {
	g := grammar.New()
	s, a, b, c, _, term := buildProductivityGrammar(g)

	seed := symbol.NewBitSet(g.NumSyms())
	seed.Set(term)

	rc := New(g)
	productive := rc.All(seed)

	assert.True(t, productive.Has(term))
	assert.True(t, productive.Has(a))
	assert.True(t, productive.Has(b))
	assert.True(t, productive.Has(s))
	assert.False(t, productive.Has(c))
}

func Test_RhsClosure_All_NullingRuleVacuouslySatisfied(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(2)
	a, b := syms[0], syms[1]

	g.RuleBuilder(a).Rhs() // A -> epsilon
	g.RuleBuilder(b).Rhs(a)

	seed := symbol.NewBitSet(g.NumSyms())
	rc := New(g)
	closed := rc.All(seed)

	assert.True(t, closed.Has(a))
	assert.True(t, closed.Has(b))
}

// Test_RhsClosure_Any_PropagatesTransitively builds:
//
//	S -> A
//	A -> B
//	U -> A   (U is never reached from S, but it derives A; Any propagates
//	          from B up to every symbol deriving it, U included, which is
//	          not reachability from S)
func Test_RhsClosure_Any_PropagatesTransitively(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(4)
	s, a, b, u := syms[0], syms[1], syms[2], syms[3]

	g.RuleBuilder(s).Rhs(a)
	g.RuleBuilder(a).Rhs(b)
	g.RuleBuilder(u).Rhs(a)

	seed := symbol.NewBitSet(g.NumSyms())
	seed.Set(b)

	rc := New(g)
	marked := rc.Any(seed)

	assert.True(t, marked.Has(b))
	assert.True(t, marked.Has(a))
	assert.True(t, marked.Has(s))
	assert.True(t, marked.Has(u))
}

func Test_RhsClosure_Any_NoPropagationWithoutSeed(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(2)
	s, a := syms[0], syms[1]
	g.RuleBuilder(s).Rhs(a)

	seed := symbol.NewBitSet(g.NumSyms())
	rc := New(g)
	marked := rc.Any(seed)

	assert.False(t, marked.Has(s))
	assert.False(t, marked.Has(a))
}

// Test_RhsClosure_MinSum_ShortestDerivation builds:
//
//	S -> A B
//	A -> 'a'
//	B -> A A
//	B -> 'b'
func Test_RhsClosure_MinSum_ShortestDerivation(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(5)
	s, a, b, termA, termB := syms[0], syms[1], syms[2], syms[3], syms[4]

	g.RuleBuilder(s).Rhs(a, b)
	g.RuleBuilder(a).Rhs(termA)
	g.RuleBuilder(b).Rhs(a, a)
	g.RuleBuilder(b).Rhs(termB)

	seed := make([]int, g.NumSyms())
	for i := range seed {
		seed[i] = Infinity
	}
	seed[termA] = 1
	seed[termB] = 1

	rc := New(g)
	dist := rc.MinSum(seed)

	assert.Equal(t, 1, dist[a])
	assert.Equal(t, 1, dist[b]) // shorter alt (termB) wins over a a (2)
	assert.Equal(t, 2, dist[s]) // a (1) + b (1)
}

func Test_RhsClosure_MinSum_NullingSymbolIsZero(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(2)
	a, s := syms[0], syms[1]

	g.RuleBuilder(a).Rhs() // A -> epsilon
	g.RuleBuilder(s).Rhs(a)

	seed := make([]int, g.NumSyms())
	for i := range seed {
		seed[i] = Infinity
	}

	rc := New(g)
	dist := rc.MinSum(seed)

	assert.Equal(t, 0, dist[a])
	assert.Equal(t, 0, dist[s])
}

func Test_RhsClosure_MinSum_UnreachableStaysInfinity(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(3)
	s, a, term := syms[0], syms[1], syms[2]
	_ = a

	g.RuleBuilder(s).Rhs(term)

	seed := make([]int, g.NumSyms())
	for i := range seed {
		seed[i] = Infinity
	}
	seed[term] = 1

	rc := New(g)
	dist := rc.MinSum(seed)

	assert.Equal(t, Infinity, dist[a])
}
