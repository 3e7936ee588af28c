package analysis

import (
	"github.com/dekarrin/gocfg/closure"
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

// LlParseTable builds an LL(1) parse table over a grammar and classifies
// each non-terminal as LL1 or ContextFree (spec.md section 4.11).
type LlParseTable struct {
	g *grammar.Cfg
}

// LlParseTableNew returns a builder over g.
func LlParseTableNew(g *grammar.Cfg) *LlParseTable {
	return &LlParseTable{g: g}
}

// LlClassification is the result of LlParseTable.Classify: a predictive
// parse table keyed by (LHS, lookahead terminal) to a rule index into
// g.Rules(), a parallel table for the end-of-input lookahead, and the set
// of non-terminals that could not be classified LL(1).
type LlClassification struct {
	Table           map[symbol.Symbol]map[symbol.Symbol]int
	EndOfInputTable map[symbol.Symbol]int
	ContextFree     *symbol.BitSet
}

// IsLL1 reports whether lhs was classified LL(1) (as opposed to
// ContextFree).
func (c LlClassification) IsLL1(lhs symbol.Symbol) bool {
	return !c.ContextFree.Has(lhs)
}

// Classify computes FIRST then FOLLOW, and for each rule A -> alpha
// inserts (A, t) -> rule for every t in FIRST(alpha); if FIRST(alpha) is
// nullable, it also inserts for every t in FOLLOW(A) (and for
// end-of-input, if that is in FOLLOW(A)). Any cell written more than once
// marks its LHS ambiguous. ContextFree is then propagated transitively by
// RHS closure with the Any quantifier: any LHS that can derive an
// ambiguous non-terminal, however deep, is itself ContextFree, since a
// single unresolved choice anywhere in its expansion means the whole
// symbol cannot be predicted with one token of lookahead either.
func (t *LlParseTable) Classify() LlClassification {
	g := t.g
	first := FirstSets(g)
	follow := FollowSetsWithFirst(g, first)

	table := make(map[symbol.Symbol]map[symbol.Symbol]int)
	eoiTable := make(map[symbol.Symbol]int)
	ambiguous := symbol.NewBitSet(g.NumSyms())

	insert := func(lhs, la symbol.Symbol, ri int) {
		if table[lhs] == nil {
			table[lhs] = make(map[symbol.Symbol]int)
		}
		if _, exists := table[lhs][la]; exists {
			ambiguous.Set(lhs)
		}
		table[lhs][la] = ri
	}

	for ri, r := range g.Rules() {
		fs := FirstSetForString(first, r.Rhs)
		fs.Terminals.Each(func(la symbol.Symbol) { insert(r.Lhs, la, ri) })

		if fs.Nullable {
			follow[r.Lhs].Terminals.Each(func(la symbol.Symbol) { insert(r.Lhs, la, ri) })
			if follow[r.Lhs].EndOfInput {
				if _, exists := eoiTable[r.Lhs]; exists {
					ambiguous.Set(r.Lhs)
				}
				eoiTable[r.Lhs] = ri
			}
		}
	}

	contextFree := closure.New(g).Any(ambiguous)

	return LlClassification{Table: table, EndOfInputTable: eoiTable, ContextFree: contextFree}
}
