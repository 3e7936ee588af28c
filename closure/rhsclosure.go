// Package closure implements the generic RHS-to-LHS worklist fixed-point
// algorithm spec.md section 4.3 describes: given a property over symbols
// and a quantifier (All, Any, MinSum), repeatedly propagate it from a
// rule's RHS to its LHS until nothing changes. It is grounded on the
// fixed-point loop internal/tunascript/grammar.go's FOLLOW computation
// uses (recursiveFindFollowSet / the FOLLOW fixpoint in grammar.go),
// generalized from one specific propagation into three reusable
// quantifiers shared by productivity, LL(1)-classification propagation,
// and minimal-distance computation.
package closure

import (
	"math"

	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

// Infinity represents "no finite value yet" in a MinSum property vector.
const Infinity = math.MaxInt32

// RhsClosure precomputes, once per grammar snapshot, the inverse-derivation
// index (symbol -> rules whose RHS mentions it) that every quantifier's
// worklist walks.
type RhsClosure struct {
	numSyms int
	rules   []grammar.Rule
	inverse [][]int // symbol -> distinct rule indices mentioning it in rhs
}

// New builds the inverse index for g. It borrows nothing from g after
// returning (it snapshots g.Rules()), so it is safe to keep around across
// further grammar mutation as long as the caller re-creates it when they
// want to see those mutations reflected.
func New(g *grammar.Cfg) *RhsClosure {
	rules := g.Rules()
	n := g.NumSyms()
	inverse := make([][]int, n)

	for i, r := range rules {
		seen := make(map[symbol.Symbol]bool, len(r.Rhs))
		for _, s := range r.Rhs {
			if seen[s] {
				continue
			}
			seen[s] = true
			inverse[s] = append(inverse[s], i)
		}
	}

	return &RhsClosure{numSyms: n, rules: rules, inverse: inverse}
}

func (c *RhsClosure) distinctRhs(r grammar.Rule) []symbol.Symbol {
	seen := make(map[symbol.Symbol]bool, len(r.Rhs))
	var out []symbol.Symbol
	for _, s := range r.Rhs {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// All computes the closure under the quantifier "every RHS symbol has the
// property": starting from seed, sets P(A) for every A with a rule
// A -> alpha all of whose (distinct) symbols already have P, iterating to
// a fixed point. This is how productivity is computed (spec.md section
// 4.4): seed with {terminal, nulling symbols}, and every symbol that can
// ultimately derive only terminals ends up set.
func (c *RhsClosure) All(seed *symbol.BitSet) *symbol.BitSet {
	known := seed.Copy()

	// every known symbol, seeded or not, passes through the worklist once
	// and decrements each rule mentioning it then, so the count starts at
	// the full number of distinct RHS symbols.
	remaining := make([]int, len(c.rules))
	for i, r := range c.rules {
		remaining[i] = len(c.distinctRhs(r))
	}

	var worklist []symbol.Symbol
	known.Each(func(s symbol.Symbol) { worklist = append(worklist, s) })

	// a nulling rule (empty rhs) is vacuously "all satisfied" from the
	// start; account for it before the main loop so its LHS enters the
	// worklist too.
	for i, r := range c.rules {
		if remaining[i] == 0 && !known.Has(r.Lhs) {
			known.Set(r.Lhs)
			worklist = append(worklist, r.Lhs)
		}
	}

	processed := symbol.NewBitSet(c.numSyms)
	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if processed.Has(s) {
			continue
		}
		processed.Set(s)

		for _, ri := range c.inverse[s] {
			remaining[ri]--
			if remaining[ri] == 0 {
				lhs := c.rules[ri].Lhs
				if !known.Has(lhs) {
					known.Set(lhs)
					worklist = append(worklist, lhs)
				}
			}
		}
	}

	return known
}

// Any computes the closure under the quantifier "some RHS symbol has the
// property": starting from seed, sets P(A) for every A reachable by
// following any rule A -> ... X ... where X already has P, iterating to a
// fixed point. Used to propagate the LL(1)/context-free classification
// (spec.md section 4.11): any non-terminal that can derive a context-free
// non-terminal, however deep, is itself context-free.
func (c *RhsClosure) Any(seed *symbol.BitSet) *symbol.BitSet {
	known := seed.Copy()

	var worklist []symbol.Symbol
	known.Each(func(s symbol.Symbol) { worklist = append(worklist, s) })

	processed := symbol.NewBitSet(c.numSyms)
	for len(worklist) > 0 {
		s := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if processed.Has(s) {
			continue
		}
		processed.Set(s)

		for _, ri := range c.inverse[s] {
			lhs := c.rules[ri].Lhs
			if !known.Has(lhs) {
				known.Set(lhs)
				worklist = append(worklist, lhs)
			}
		}
	}

	return known
}

// MinSum computes, for every symbol, the minimal sentence length it can
// derive: P(A) = min over rules A -> alpha of sum(P(beta) for beta in
// alpha). seed must have length NumSyms, with Infinity marking symbols
// with no known initial value (spec.md section 4.8 seeds terminals at 1
// and epsilon-deriving symbols at 0). The returned slice is monotonically
// non-increasing from seed: adding more seed information never raises a
// symbol's minimal distance (spec.md section 8's monotonicity property).
func (c *RhsClosure) MinSum(seed []int) []int {
	dist := make([]int, len(seed))
	copy(dist, seed)

	var worklist []symbol.Symbol
	for s := 0; s < len(dist); s++ {
		if dist[s] < Infinity {
			worklist = append(worklist, symbol.Symbol(s))
		}
	}

	// rules with no rhs at all (nulling) sum to 0 immediately; seed their
	// LHS up front so they participate in the first relaxation round.
	for _, r := range c.rules {
		if r.IsNulling() && dist[r.Lhs] > 0 {
			dist[r.Lhs] = 0
			worklist = append(worklist, r.Lhs)
		}
	}

	for len(worklist) > 0 {
		s := worklist[0]
		worklist = worklist[1:]

		for _, ri := range c.inverse[s] {
			r := c.rules[ri]
			sum := 0
			finite := true
			for _, rs := range r.Rhs {
				if dist[rs] >= Infinity {
					finite = false
					break
				}
				sum += dist[rs]
			}
			if finite && sum < dist[r.Lhs] {
				dist[r.Lhs] = sum
				worklist = append(worklist, r.Lhs)
			}
		}
	}

	return dist
}
