package analysis

import (
	"github.com/dekarrin/gocfg/closure"
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
)

// MarkedPosition identifies a dotted position within a rule: Dot symbols of
// Rule.Rhs have already been consumed (spec.md section 4.8).
type MarkedPosition struct {
	Rule grammar.Rule
	Dot  int
}

// DistanceKey names one marked position in a MinimalDistances result. A
// rule's history ID alone cannot serve as the key since the same rule can
// be marked at more than one dot position.
type DistanceKey struct {
	Rule history.ID
	Dot  int
}

// MinimalDistances computes, for each marked position, the minimal number
// of terminal symbols between the dot and the end of the rule's RHS
// (spec.md section 4.8): every symbol is first given its minimal
// derivation length by RHS closure with MinSum, seeded with terminals at 1
// and nulling symbols at 0, then each marked position's remaining RHS
// suffix is summed against that table.
func MinimalDistances(g *grammar.Cfg, marks []MarkedPosition) map[DistanceKey]int {
	minOf := MinimalSymbolLengths(g)

	out := make(map[DistanceKey]int, len(marks))
	for _, m := range marks {
		key := DistanceKey{Rule: m.Rule.History, Dot: m.Dot}
		out[key] = completionDistance(minOf, m.Rule.Rhs, m.Dot)
	}
	return out
}

// MinimalSymbolLengths returns, for every symbol in g, the minimal number
// of terminals in any sentence it derives: terminals seed at 1,
// epsilon-deriving symbols seed at 0, and the rest follow by RHS closure
// with the MinSum quantifier.
func MinimalSymbolLengths(g *grammar.Cfg) []int {
	n := g.NumSyms()
	terminal := terminalSetSlice(g)

	seed := make([]int, n)
	for s := 0; s < n; s++ {
		if terminal[s] {
			seed[s] = 1
		} else {
			seed[s] = closure.Infinity
		}
	}
	for _, r := range g.Rules() {
		if r.IsNulling() {
			seed[r.Lhs] = 0
		}
	}

	return closure.New(g).MinSum(seed)
}

// completionDistance sums minOf over the RHS suffix starting at dot. It is
// a small helper kept separate from MinimalDistances so other analyses
// (e.g. a future recognizer) can query a single position without building
// a MarkedPosition slice.
func completionDistance(minOf []int, rhs []symbol.Symbol, dot int) int {
	sum := 0
	for _, s := range rhs[dot:] {
		sum += minOf[s]
	}
	return sum
}
