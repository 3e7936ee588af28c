// Package analysis implements the read-only closure computations spec.md
// section 4.9-4.11 describes: FIRST/FOLLOW/LAST sets, the derivation
// matrices cycle detection and reachability are built from, minimal
// distance, LR(0) item-set construction, and LL(1) classification. Every
// analysis here borrows a *grammar.Cfg and never mutates it, mirroring
// internal/tunascript/grammar.go's FIRST/FOLLOW/LLParseTable methods,
// which likewise only read g.rules.
package analysis

import (
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

// DirectDerivationMatrix returns the n x n matrix M where M[A][B] holds
// iff some rule has LHS A and B appears anywhere in its RHS (spec.md
// section 4.4's direct_derivation_matrix).
func DirectDerivationMatrix(g *grammar.Cfg) *symbol.BitMatrix {
	n := g.NumSyms()
	m := symbol.NewBitMatrix(n)
	for _, r := range g.Rules() {
		for _, s := range r.Rhs {
			m.Set(r.Lhs, s)
		}
	}
	return m
}

// ReachabilityMatrix returns the transitive-reflexive closure of the
// direct-derivation matrix: M[A][B] holds iff B appears in some sentential
// form derivable from A, including A itself (spec.md section 8: "reflexive
// and transitive").
func ReachabilityMatrix(g *grammar.Cfg) *symbol.BitMatrix {
	m := DirectDerivationMatrix(g)
	m.TransitiveReflexiveClosure()
	return m
}

// UnitDerivationMatrix returns the n x n matrix M where M[A][B] holds iff
// A derives B through a chain of one or more unit rules X ::= Y (spec.md
// section 4.4: "a unit-derivation matrix records A =>+ B via chains of
// unit rules"). A ::= A is explicitly not a cycle, so such rules are
// skipped when the direct unit relation is built, and the matrix is only
// transitively (not reflexively) closed: a diagonal cell is set only by a
// chain through some other symbol.
func UnitDerivationMatrix(g *grammar.Cfg) *symbol.BitMatrix {
	n := g.NumSyms()
	m := symbol.NewBitMatrix(n)
	for _, r := range g.Rules() {
		if r.IsUnit() && r.Rhs[0] != r.Lhs {
			m.Set(r.Lhs, r.Rhs[0])
		}
	}
	m.TransitiveClosure()
	return m
}
