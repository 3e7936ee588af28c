package grammar

import (
	"testing"

	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
	"github.com/stretchr/testify/assert"
)

func Test_RuleBuilder_ChainsMultipleAlternatives(t *testing.T) {
	g := New()
	syms := g.SymN(3)
	a, b, c := syms[0], syms[1], syms[2]

	g.RuleBuilder(a).Rhs(b).Rhs(c).Rhs()

	assert.Equal(t, 3, g.NumRules())
	assert.True(t, g.RuleAt(2).IsNulling())
}

func Test_RuleBuilder_RhsWithHistory(t *testing.T) {
	g := New()
	syms := g.SymN(2)
	a, b := syms[0], syms[1]

	origin := g.History.NewOriginRoot(7)
	g.RuleBuilder(a).RhsWithHistory([]symbol.Symbol{b}, origin)

	assert.Equal(t, origin, g.RuleAt(0).History)
}

func Test_RuleBuilder_RhsWithLinkedHistory(t *testing.T) {
	g := New()
	syms := g.SymN(3)
	a, b, c := syms[0], syms[1], syms[2]

	prev := g.History.NewRuleRoot(a)
	node := LinkedHistoryNode{
		Prev:  prev,
		Kind:  history.EliminateNulling,
		Rhs0:  b,
		Rhs1:  c,
		Which: history.WhichLeft,
	}

	g.RuleBuilder(a).RhsWithLinkedHistory([]symbol.Symbol{c}, node)

	hNode := g.History.Get(g.RuleAt(0).History)
	assert.Equal(t, history.EliminateNulling, hNode.Kind)
	assert.Equal(t, history.WhichLeft, hNode.Which)
	assert.Equal(t, prev, hNode.Prev)
}
