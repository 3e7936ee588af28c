package rewrite

import (
	"sort"

	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

// Remap accumulates a sequence of symbol-space transforms over a grammar,
// composing their mappings as it goes (spec.md section 4.1: "reorder the
// symbol space... then truncate" / "compose mapping with any pre-existing
// mapping"). Its zero value is not usable; construct with New.
type Remap struct {
	g       *grammar.Cfg
	mapping symbol.Mapping
}

// New returns a Remap over g, starting from the identity mapping.
func New(g *grammar.Cfg) *Remap {
	return &Remap{g: g, mapping: symbol.NewIdentityMapping(g.NumSyms())}
}

// GetMapping returns the cumulative mapping from the grammar's original
// symbol space (as of New) to its current one.
func (rm *Remap) GetMapping() symbol.Mapping {
	return rm.mapping
}

// apply rewrites every rule and root through step, truncates the source to
// step's new symbol count, and composes step onto rm's running mapping.
func (rm *Remap) apply(step symbol.Mapping) {
	g := rm.g

	rules := g.Rules()
	rewritten := make([]grammar.Rule, len(rules))
	for i, r := range rules {
		lhs, ok := step.Internal(r.Lhs)
		if !ok {
			panic("rewrite: remap dropped a symbol still referenced by a rule")
		}
		rhs := make([]symbol.Symbol, len(r.Rhs))
		for j, s := range r.Rhs {
			rs, ok := step.Internal(s)
			if !ok {
				panic("rewrite: remap dropped a symbol still referenced by a rule")
			}
			rhs[j] = rs
		}
		rewritten[i] = grammar.Rule{Lhs: lhs, Rhs: rhs, History: r.History}
	}

	roots := g.Roots()
	newRoots := make([]symbol.Symbol, len(roots))
	for i, r := range roots {
		nr, ok := step.Internal(r)
		if !ok {
			// spec.md section 7's empty-language edge case: a root was
			// removed by the rewrite. Synthesize a fresh symbol for it
			// rather than failing, and extend the mapping to cover it.
			nr = symbol.Symbol(step.NumInternal())
			step.ToInternal[r] = nr
			step.ToExternal = append(step.ToExternal, r)
		}
		newRoots[i] = nr
	}

	g.Source.Truncate(step.NumInternal())
	g.ReplaceRules(rewritten)
	g.SetRoots(newRoots)

	rm.mapping = rm.mapping.Compose(step)
}

// RemoveUnusedSymbols computes the set of symbols that appear in no rule,
// reorders the symbol space so they trail, and truncates them away
// (spec.md section 4.1's remove_unused_symbols). Used symbols keep their
// relative order.
func (rm *Remap) RemoveUnusedSymbols() *Remap {
	g := rm.g
	n := g.NumSyms()

	// "unused" means appearing in no rule (spec.md section 4.1): a root
	// whose defining rules were all pruned by a prior rewrite is unused
	// by this definition too, and apply() below synthesizes a fresh
	// symbol for it rather than failing (spec.md section 7's empty-
	// language edge case).
	used := symbol.NewBitSet(n)
	for _, r := range g.Rules() {
		used.Set(r.Lhs)
		for _, s := range r.Rhs {
			used.Set(s)
		}
	}

	toInternal := make([]symbol.Symbol, n)
	var toExternal []symbol.Symbol
	var next symbol.Symbol
	for s := 0; s < n; s++ {
		sym := symbol.Symbol(s)
		if used.Has(sym) {
			toInternal[s] = next
			toExternal = append(toExternal, sym)
			next++
		} else {
			toInternal[s] = symbol.None
		}
	}

	rm.apply(symbol.Mapping{ToInternal: toInternal, ToExternal: toExternal})
	return rm
}

// ReorderSymbols produces the permutation that sorts the current symbol
// space by cmp (a less-than comparator over the grammar's own Symbol
// type), rewrites every rule's LHS and RHS through it, and composes the
// result onto the running mapping (spec.md section 4.1's
// reorder_symbols(cmp)).
func (rm *Remap) ReorderSymbols(cmp func(a, b symbol.Symbol) bool) *Remap {
	g := rm.g
	n := g.NumSyms()

	order := make([]symbol.Symbol, n)
	for i := range order {
		order[i] = symbol.Symbol(i)
	}
	sort.SliceStable(order, func(i, j int) bool { return cmp(order[i], order[j]) })

	toInternal := make([]symbol.Symbol, n)
	toExternal := make([]symbol.Symbol, n)
	for newPos, oldSym := range order {
		toInternal[oldSym] = symbol.Symbol(newPos)
		toExternal[newPos] = oldSym
	}

	rm.apply(symbol.Mapping{ToInternal: toInternal, ToExternal: toExternal})
	return rm
}
