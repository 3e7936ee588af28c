package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_PrecedencedRuleBuilder_ArithmeticChain builds the classic
// expr/term/factor precedence chain for left-associative + and *, and
// checks the emitted rules have the expected shape.
func Test_PrecedencedRuleBuilder_ArithmeticChain(t *testing.T) {
	g := New()
	syms := g.SymN(3)
	expr, plus, star := syms[0], syms[1], syms[2]
	num := g.Sym()

	b := g.PrecedencedRuleBuilder(expr)
	b.Associativity(AssocLeft).Rhs(num)
	b.LowerPrecedence()
	b.Associativity(AssocLeft).Rhs(expr, star, num)
	b.LowerPrecedence()
	b.Associativity(AssocLeft).Rhs(expr, plus, num)
	b.Finalize()

	// lhs ::= g2 (loosest)
	last := g.RuleAt(g.NumRules() - 1)
	assert.Equal(t, expr, last.Lhs)
	assert.Len(t, last.Rhs, 1)

	// every rule references only in-range symbols
	for _, r := range g.Rules() {
		assert.Less(t, int(r.Lhs), g.NumSyms())
		for _, s := range r.Rhs {
			assert.Less(t, int(s), g.NumSyms())
		}
	}

	// no rule should still contain the bare user-visible lhs symbol in its
	// rhs: every self-reference must have been rewritten to some level
	// symbol.
	for _, r := range g.Rules() {
		for _, s := range r.Rhs {
			assert.NotEqual(t, expr, s)
		}
	}
}

func Test_PrecedencedRuleBuilder_RightAssociativity(t *testing.T) {
	g := New()
	syms := g.SymN(3)
	expr, arrow, num := syms[0], syms[1], syms[2]

	b := g.PrecedencedRuleBuilder(expr)
	b.Associativity(AssocLeft).Rhs(num)
	b.LowerPrecedence()
	b.Associativity(AssocRight).Rhs(num, arrow, expr)
	b.Finalize()

	// find the right-assoc alternative rule: should have self-ref (expr)
	// rewritten to the same (loosest, level 1) symbol at the rightmost
	// position, and the leftmost num left untouched (it was never a
	// self-reference).
	var found bool
	for _, r := range g.Rules() {
		if len(r.Rhs) == 3 && r.Rhs[0] == num {
			found = true
			assert.Equal(t, arrow, r.Rhs[1])
			assert.NotEqual(t, expr, r.Rhs[2])
		}
	}
	assert.True(t, found)
}

func Test_PrecedencedRuleBuilder_GroupAssociativity(t *testing.T) {
	g := New()
	syms := g.SymN(4)
	expr, lparen, rparen, num := syms[0], syms[1], syms[2], syms[3]

	b := g.PrecedencedRuleBuilder(expr)
	b.Associativity(AssocLeft).Rhs(num)
	b.LowerPrecedence()
	b.Associativity(AssocGroup).Rhs(lparen, expr, rparen)
	b.Finalize()

	// the group alternative must be emitted at the loosest level (level 1,
	// the same symbol as g1, which is also what expr finally derives).
	loosestLhs := g.RuleAt(g.NumRules() - 1).Rhs[0]

	var found bool
	for _, r := range g.Rules() {
		if len(r.Rhs) == 3 && r.Rhs[0] == lparen {
			found = true
			assert.Equal(t, loosestLhs, r.Lhs)
			assert.Equal(t, loosestLhs, r.Rhs[1])
		}
	}
	assert.True(t, found)
}

func Test_PrecedencedRuleBuilder_SelfRefAtTightestLevel_panics(t *testing.T) {
	g := New()
	syms := g.SymN(2)
	expr, num := syms[0], syms[1]

	b := g.PrecedencedRuleBuilder(expr)
	b.Associativity(AssocLeft).Rhs(expr, num, expr)

	assert.Panics(t, func() { b.Finalize() })
}
