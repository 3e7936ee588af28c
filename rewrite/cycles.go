package rewrite

import (
	"github.com/dekarrin/gocfg/analysis"
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

// CycleFree reports whether g's unit-derivation matrix has an all-zero
// diagonal (spec.md section 4.4: "the grammar is cycle-free iff the
// diagonal is all zero").
func CycleFree(g *grammar.Cfg) bool {
	m := analysis.UnitDerivationMatrix(g)
	n := g.NumSyms()
	for i := 0; i < n; i++ {
		if m.Has(symbol.Symbol(i), symbol.Symbol(i)) {
			return false
		}
	}
	return true
}

// RemoveCycles drops every unit rule A ::= B where B derives A through a
// chain of unit rules (spec.md section 4.4's remove_cycles: "drop every
// unit rule A ::= B where B =>+ A"). This changes the grammar's language
// in general and is meant for callers that explicitly accept that.
func RemoveCycles(g *grammar.Cfg) {
	m := analysis.UnitDerivationMatrix(g)

	g.Retain(func(r grammar.Rule) bool {
		if !r.IsUnit() {
			return true
		}
		b := r.Rhs[0]
		return !m.Has(b, r.Lhs)
	})
}

// RewriteCycles collapses every unit-derivation cycle into a single
// representative symbol and rewrites all rules through the resulting
// translation, preserving the language (spec.md section 4.4's
// rewrite_cycles). For each cycle, the representative is the lowest-
// numbered symbol on its diagonal; every other member of the cycle
// (row(A) ∩ column(A), the symbols mutually reachable with A via unit
// derivations) is translated to that representative. Unit rules that
// collapse into a self-reference under the translation are dropped; every
// other rule survives with its LHS and RHS translated.
func RewriteCycles(g *grammar.Cfg) {
	n := g.NumSyms()
	m := analysis.UnitDerivationMatrix(g)

	translate := make([]symbol.Symbol, n)
	for i := range translate {
		translate[i] = symbol.Symbol(i)
	}

	assigned := symbol.NewBitSet(n)
	for a := 0; a < n; a++ {
		sa := symbol.Symbol(a)
		if assigned.Has(sa) || !m.Has(sa, sa) {
			continue
		}

		cycleSet := m.Row(sa).Copy()
		cycleSet.Intersect(m.Column(sa))
		cycleSet.Each(func(x symbol.Symbol) {
			translate[x] = sa
			assigned.Set(x)
		})
	}

	var rewritten []grammar.Rule
	for _, r := range g.Rules() {
		if r.IsUnit() && translate[r.Lhs] == translate[r.Rhs[0]] {
			continue
		}

		nr := grammar.Rule{Lhs: translate[r.Lhs], History: r.History}
		nr.Rhs = make([]symbol.Symbol, len(r.Rhs))
		for i, s := range r.Rhs {
			nr.Rhs[i] = translate[s]
		}
		rewritten = append(rewritten, nr)
	}
	g.ReplaceRules(rewritten)

	roots := g.Roots()
	for i, r := range roots {
		roots[i] = translate[r]
	}
	g.SetRoots(roots)
}
