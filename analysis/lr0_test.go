package analysis

import (
	"testing"

	"github.com/dekarrin/gocfg/grammar"
	"github.com/stretchr/testify/assert"
)

// Test_Lr0Fsm_SimpleExpressionGrammar builds start->x y | x z (x, y, z all
// terminals) and checks the automaton distinguishes the two alternatives
// after shifting past the shared terminal x. Per spec.md section 4.10 this
// automaton only ever records outgoing *terminal* transitions, so this
// fixture keeps every post-dot symbol a terminal rather than relying on
// closure over a non-terminal, which never gets a transition edge.
func Test_Lr0Fsm_SimpleExpressionGrammar(t *testing.T) {
	g := grammar.New()
	s := g.SymN(4)
	start, x, y, z := s[0], s[1], s[2], s[3]

	g.RuleBuilder(start).Rhs(x, y)
	g.RuleBuilder(start).Rhs(x, z)

	builder := Lr0FsmBuilderNew(g)
	nodes := builder.MakeLr0Fsm(start)

	assert.NotEmpty(t, nodes)

	// Node 0's item set must include both start alternatives at dot 0.
	foundBoth := 0
	for _, it := range nodes[0].Items {
		r := builder.rules[it.RuleIndex]
		if r.Lhs == start && it.Dot == 0 {
			foundBoth++
		}
	}
	assert.Equal(t, 2, foundBoth)

	// Node 0 has no outgoing transition for y or z: they do not immediately
	// follow the dot in any of node 0's items.
	_, yFromStart := nodes[0].Transitions[y]
	_, zFromStart := nodes[0].Transitions[z]
	assert.False(t, yFromStart)
	assert.False(t, zFromStart)

	// Shifting past the terminal x from node 0 must reach a single node
	// (since both start alternatives share the prefix x), from which y and
	// z are both viable terminal transitions.
	xTarget, ok := nodes[0].Transitions[x]
	assert.True(t, ok)
	_, canShiftY := nodes[xTarget].Transitions[y]
	_, canShiftZ := nodes[xTarget].Transitions[z]
	assert.True(t, canShiftY)
	assert.True(t, canShiftZ)
}

func Test_Lr0Fsm_ReusesStructurallyEqualItemSets(t *testing.T) {
	g := grammar.New()
	s := g.SymN(3)
	start, a, term := s[0], s[1], s[2]

	// MakeLr0Fsm looks up every new item set by its structural key before
	// adding a node, so no two nodes may carry the same item set.
	g.RuleBuilder(start).Rhs(a, term)
	g.RuleBuilder(a).Rhs(term)

	builder := Lr0FsmBuilderNew(g)
	nodes := builder.MakeLr0Fsm(start)

	seen := make(map[string]bool)
	for _, n := range nodes {
		k := itemSetKey(n.Items)
		assert.False(t, seen[k], "duplicate item set should not produce two nodes")
		seen[k] = true
	}
}
