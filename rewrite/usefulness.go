// Package rewrite implements the grammar-transforming passes spec.md
// section 4 describes: usefulness pruning, cycle handling, nullable-rule
// elimination, sequence-rule expansion, and symbol remapping. Every pass
// takes a *grammar.Cfg and mutates it in place, the way
// internal/tunascript/grammar.go's RemoveEpsilons / RemoveLeftRecursion /
// RemoveUreachableNonTerminals family of methods does.
package rewrite

import (
	"github.com/dekarrin/gocfg/closure"
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

// IsTerminal reports whether s never appears as a rule's Lhs in g: exactly
// the definition spec.md section 3 uses to distinguish terminals from
// non-terminals without a separate symbol-kind table.
func IsTerminal(g *grammar.Cfg, s symbol.Symbol) bool {
	for _, r := range g.Rules() {
		if r.Lhs == s {
			return false
		}
	}
	return true
}

func terminalSet(g *grammar.Cfg) *symbol.BitSet {
	n := g.NumSyms()
	isLhs := symbol.NewBitSet(n)
	for _, r := range g.Rules() {
		isLhs.Set(r.Lhs)
	}
	terms := symbol.NewBitSet(n)
	for s := 0; s < n; s++ {
		if !isLhs.Has(symbol.Symbol(s)) {
			terms.Set(symbol.Symbol(s))
		}
	}
	return terms
}

// Productive returns the set of symbols that can derive some string of
// terminals (spec.md section 4.4): every terminal is trivially productive,
// and a non-terminal is productive if it has some rule all of whose RHS
// symbols are productive. Computed with closure.RhsClosure's All
// quantifier.
func Productive(g *grammar.Cfg) *symbol.BitSet {
	seed := terminalSet(g)
	return closure.New(g).All(seed)
}

// Reachable returns the set of symbols reachable from roots by following
// rules forward (spec.md section 4.4): a root is reachable, and so is
// every RHS symbol of a rule whose LHS is reachable. This is a forward
// reachability walk rather than an RhsClosure (which only propagates
// RHS -> LHS), since reachability flows the other way.
func Reachable(g *grammar.Cfg, roots []symbol.Symbol) *symbol.BitSet {
	n := g.NumSyms()
	reached := symbol.NewBitSet(n)

	byLhs := make(map[symbol.Symbol][]grammar.Rule)
	for _, r := range g.Rules() {
		byLhs[r.Lhs] = append(byLhs[r.Lhs], r)
	}

	var worklist []symbol.Symbol
	for _, r := range roots {
		if !reached.Has(r) {
			reached.Set(r)
			worklist = append(worklist, r)
		}
	}

	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, r := range byLhs[s] {
			for _, rs := range r.Rhs {
				if !reached.Has(rs) {
					reached.Set(rs)
					worklist = append(worklist, rs)
				}
			}
		}
	}

	return reached
}

// Useful returns the set of symbols that are both productive and reachable
// from roots: the two conditions spec.md section 4.4 requires for a
// symbol to survive RemoveUselessRules.
func Useful(g *grammar.Cfg, roots []symbol.Symbol) *symbol.BitSet {
	productive := Productive(g)
	reachable := Reachable(g, roots)
	useful := productive.Copy()
	useful.Intersect(reachable)
	return useful
}

// RemoveUselessRules deletes every rule that mentions a non-useful symbol
// (in its LHS or anywhere in its RHS), the way
// internal/tunascript/grammar.go's RemoveUreachableNonTerminals trims the
// rule vector after computing a reachability set, generalized here to also
// require productivity. Root symbols that turn out to be unproductive are
// left in g.Roots() as-is; spec.md leaves the consequence of an
// unproductive root (an empty language) to the caller to detect via
// Useful before relying on the grammar.
func RemoveUselessRules(g *grammar.Cfg) {
	useful := Useful(g, g.Roots())

	g.Retain(func(r grammar.Rule) bool {
		if !useful.Has(r.Lhs) {
			return false
		}
		for _, s := range r.Rhs {
			if !useful.Has(s) {
				return false
			}
		}
		return true
	})
}
