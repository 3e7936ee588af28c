package grammar

import (
	"testing"

	"github.com/dekarrin/gocfg/symbol"
	"github.com/stretchr/testify/assert"
)

func Test_Cfg_BasicRuleAddition(t *testing.T) {
	g := New()
	syms := g.SymN(3)
	a, b, c := syms[0], syms[1], syms[2]

	g.RuleBuilder(a).Rhs(b, c)

	assert.Equal(t, 1, g.NumRules())
	r := g.RuleAt(0)
	assert.Equal(t, a, r.Lhs)
	assert.Equal(t, []symbol.Symbol{b, c}, r.Rhs)
}

func Test_Cfg_SymbolFromOtherSource_panics(t *testing.T) {
	g1 := New()
	g2 := New()

	s1 := g1.Sym()
	s2 := g2.SymN(2)

	assert.Panics(t, func() {
		g2.RuleBuilder(s2[0]).Rhs(s1)
	})
}

func Test_Cfg_Retain(t *testing.T) {
	g := New()
	syms := g.SymN(3)
	a, b, c := syms[0], syms[1], syms[2]

	g.RuleBuilder(a).Rhs(b)
	g.RuleBuilder(a).Rhs(c)
	g.RuleBuilder(b).Rhs(c)

	g.Retain(func(r Rule) bool { return r.Lhs == a })

	assert.Equal(t, 2, g.NumRules())
	for _, r := range g.Rules() {
		assert.Equal(t, a, r.Lhs)
	}
}

func Test_Cfg_NullingRuleRejectedWhenEliminateNullingSet(t *testing.T) {
	g := New()
	a := g.Sym()
	g.SetEliminateNulling(true)

	assert.Panics(t, func() {
		g.RuleBuilder(a).Rhs()
	})
}

func Test_Cfg_SetEliminateNulling_panicsWithExistingNullingRule(t *testing.T) {
	g := New()
	a := g.Sym()
	g.RuleBuilder(a).Rhs()

	assert.Panics(t, func() { g.SetEliminateNulling(true) })
}
