package rewrite

import (
	"testing"

	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
	"github.com/stretchr/testify/assert"
)

func Test_Remap_RemoveUnusedSymbols_CompactsAndTruncates(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(4)
	s, a, unused1, unused2 := syms[0], syms[1], syms[2], syms[3]
	_ = unused1
	_ = unused2
	g.RuleBuilder(s).Rhs(a)
	g.SetRoots([]symbol.Symbol{s})

	rm := New(g)
	rm.RemoveUnusedSymbols()

	assert.Equal(t, 2, g.NumSyms())
	for _, r := range g.Rules() {
		assert.Less(t, int(r.Lhs), g.NumSyms())
		for _, rs := range r.Rhs {
			assert.Less(t, int(rs), g.NumSyms())
		}
	}

	mapping := rm.GetMapping()
	for ext := 0; ext < 4; ext++ {
		if internal, ok := mapping.Internal(symbol.Symbol(ext)); ok {
			assert.Equal(t, symbol.Symbol(ext), mapping.External(internal))
		}
	}
}

func Test_Remap_ReorderSymbols_RoundTrips(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(3)
	s, a, b := syms[0], syms[1], syms[2]
	g.RuleBuilder(s).Rhs(a, b)
	g.SetRoots([]symbol.Symbol{s})

	rm := New(g)
	// reverse the symbol order
	rm.ReorderSymbols(func(x, y symbol.Symbol) bool { return x > y })

	assert.Equal(t, b, g.RuleAt(0).Lhs) // old `s` (#0) is now the highest id
	mapping := rm.GetMapping()
	for ext := symbol.Symbol(0); ext < 3; ext++ {
		internal, ok := mapping.Internal(ext)
		assert.True(t, ok)
		assert.Equal(t, ext, mapping.External(internal))
	}
}

func Test_Remap_RemoveUnusedSymbols_SynthesizesSymbolForOrphanedRoot(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(2)
	s, a := syms[0], syms[1]
	g.RuleBuilder(s).Rhs(a)
	g.SetRoots([]symbol.Symbol{s})

	// simulate a prior rewrite (e.g. RemoveUselessRules) that dropped every
	// rule defining the root, leaving it orphaned.
	g.Retain(func(r grammar.Rule) bool { return false })

	rm := New(g)
	rm.RemoveUnusedSymbols()

	roots := g.Roots()
	assert.Len(t, roots, 1)
	assert.Equal(t, 0, g.NumRules())
	assert.Equal(t, g.NumSyms()-1, int(roots[0])) // synthesized as the newest symbol
}

func Test_Remap_ComposesAcrossMultipleSteps(t *testing.T) {
	g := grammar.New()
	syms := g.SymN(4)
	s, a, unused, b := syms[0], syms[1], syms[2], syms[3]
	_ = unused
	g.RuleBuilder(s).Rhs(a, b)
	g.SetRoots([]symbol.Symbol{s})

	rm := New(g)
	rm.RemoveUnusedSymbols().ReorderSymbols(func(x, y symbol.Symbol) bool { return x > y })

	mapping := rm.GetMapping()
	for ext := symbol.Symbol(0); ext < 4; ext++ {
		if internal, ok := mapping.Internal(ext); ok {
			assert.Equal(t, ext, mapping.External(internal))
		}
	}
}
