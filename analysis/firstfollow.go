package analysis

import (
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

// FirstSet is FIRST(A): the terminals that can begin some derivation of A,
// plus whether A itself can derive the empty string (spec.md section 4.9).
type FirstSet struct {
	Terminals *symbol.BitSet
	Nullable  bool
}

// FollowSet is FOLLOW(A): the terminals that can immediately follow A in
// some sentential form reachable from a root, plus whether end-of-input can
// follow it there.
type FollowSet struct {
	Terminals  *symbol.BitSet
	EndOfInput bool
}

// isTerminal reports whether s never appears as a rule's LHS. Kept local
// (rather than calling rewrite.IsTerminal) since the rewrite package already
// imports analysis for its cycle rewrites.
func isTerminal(g *grammar.Cfg, s symbol.Symbol) bool {
	for _, r := range g.Rules() {
		if r.Lhs == s {
			return false
		}
	}
	return true
}

// FirstSets computes FIRST(A) for every symbol A in g by fixed-point
// iteration over the rule set.
func FirstSets(g *grammar.Cfg) []FirstSet {
	return firstSetsOverRules(g.NumSyms(), g.Rules(), terminalSetSlice(g), false)
}

// LastSets computes LAST(A) for every symbol A in g: FIRST taken over the
// grammar with every rule's RHS reversed (spec.md section 4.9).
func LastSets(g *grammar.Cfg) []FirstSet {
	return firstSetsOverRules(g.NumSyms(), g.Rules(), terminalSetSlice(g), true)
}

func terminalSetSlice(g *grammar.Cfg) []bool {
	n := g.NumSyms()
	term := make([]bool, n)
	for s := 0; s < n; s++ {
		term[s] = isTerminal(g, symbol.Symbol(s))
	}
	return term
}

func firstSetsOverRules(n int, rules []grammar.Rule, terminal []bool, reverse bool) []FirstSet {
	sets := make([]FirstSet, n)
	for i := range sets {
		sets[i] = FirstSet{Terminals: symbol.NewBitSet(n)}
		if terminal[i] {
			sets[i].Terminals.Set(symbol.Symbol(i))
		}
	}

	changed := true
	for changed {
		changed = false
		for _, r := range rules {
			rhs := r.Rhs
			if reverse {
				rhs = reversedSymbols(rhs)
			}

			if len(rhs) == 0 {
				if !sets[r.Lhs].Nullable {
					sets[r.Lhs].Nullable = true
					changed = true
				}
				continue
			}

			allNullable := true
			for _, x := range rhs {
				if terminal[x] {
					if !sets[r.Lhs].Terminals.Has(x) {
						sets[r.Lhs].Terminals.Set(x)
						changed = true
					}
					allNullable = false
					break
				}

				before := sets[r.Lhs].Terminals.Count()
				sets[r.Lhs].Terminals.Union(sets[x].Terminals)
				if sets[r.Lhs].Terminals.Count() != before {
					changed = true
				}
				if !sets[x].Nullable {
					allNullable = false
					break
				}
			}
			if allNullable && !sets[r.Lhs].Nullable {
				sets[r.Lhs].Nullable = true
				changed = true
			}
		}
	}

	return sets
}

func reversedSymbols(syms []symbol.Symbol) []symbol.Symbol {
	out := make([]symbol.Symbol, len(syms))
	for i, s := range syms {
		out[len(syms)-1-i] = s
	}
	return out
}

// FirstSetForString walks syms left to right, unioning FIRST sets until a
// non-nullable symbol is found; if every symbol in syms is nullable (or
// syms is empty), the result is nullable too.
func FirstSetForString(first []FirstSet, syms []symbol.Symbol) FirstSet {
	n := 0
	if len(first) > 0 {
		n = first[0].Terminals.Len()
	}
	out := FirstSet{Terminals: symbol.NewBitSet(n), Nullable: true}
	for _, x := range syms {
		out.Terminals.Union(first[x].Terminals)
		if !first[x].Nullable {
			out.Nullable = false
			return out
		}
	}
	return out
}

// FollowSetsWithFirst computes FOLLOW(A) for every symbol A in g, given an
// already-computed FIRST table (spec.md section 4.9). Every root symbol is
// seeded with end-of-input in its FOLLOW set.
func FollowSetsWithFirst(g *grammar.Cfg, first []FirstSet) []FollowSet {
	n := g.NumSyms()
	sets := make([]FollowSet, n)
	for i := range sets {
		sets[i] = FollowSet{Terminals: symbol.NewBitSet(n)}
	}
	for _, r := range g.Roots() {
		sets[r].EndOfInput = true
	}

	changed := true
	for changed {
		changed = false
		for _, r := range g.Rules() {
			for i, x := range r.Rhs {
				beta := r.Rhs[i+1:]
				bf := FirstSetForString(first, beta)

				beforeCount := sets[x].Terminals.Count()
				beforeEOI := sets[x].EndOfInput

				sets[x].Terminals.Union(bf.Terminals)
				if bf.Nullable {
					sets[x].Terminals.Union(sets[r.Lhs].Terminals)
					if sets[r.Lhs].EndOfInput {
						sets[x].EndOfInput = true
					}
				}

				if sets[x].Terminals.Count() != beforeCount || sets[x].EndOfInput != beforeEOI {
					changed = true
				}
			}
		}
	}

	return sets
}
