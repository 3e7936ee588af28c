package grammar

import (
	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
)

// Cfg owns everything a grammar needs: a symbol source, an ordered rule
// vector, a set of root symbols, a history graph, an optional max-RHS-length
// invariant, and a flag for whether nulling rules are currently
// disallowed. Mutation and iteration never overlap: Rules() returns a
// snapshot slice rather than a live iterator, which sidesteps Go's lack of
// a borrow checker while keeping the same "no iterator invalidation"
// guarantee spec.md section 4.2 asks for.
type Cfg struct {
	Source  *symbol.Source
	History *history.Graph

	rules []Rule
	roots []symbol.Symbol

	sequences []SequenceRule

	maxRhsLen        *int
	eliminateNulling bool
}

// New returns an empty grammar with a fresh symbol source and history
// graph.
func New() *Cfg {
	return &Cfg{
		Source:  symbol.NewSource(),
		History: history.NewGraph(),
	}
}

// NewSharing returns an empty grammar that shares another grammar's symbol
// source and history graph rather than minting its own. This is how
// rewrite.BinarizeAndEliminateNullingRules produces its nulling
// subgrammar (spec.md section 4.5): its rules reference the same symbol
// space and link into the same history graph as the main grammar's rules,
// so a recognizer can walk either one's history chain interchangeably.
func NewSharing(other *Cfg) *Cfg {
	return &Cfg{
		Source:  other.Source,
		History: other.History,
	}
}

// Sym allocates and returns a single fresh symbol.
func (g *Cfg) Sym() symbol.Symbol {
	return g.Source.Next()
}

// SymN allocates and returns n fresh, contiguous symbols.
func (g *Cfg) SymN(n int) []symbol.Symbol {
	return g.Source.NextN(n)
}

// NumSyms returns the number of symbols allocated so far.
func (g *Cfg) NumSyms() int {
	return g.Source.Num()
}

// SetRoots replaces the grammar's root (start) symbols.
func (g *Cfg) SetRoots(roots []symbol.Symbol) {
	g.roots = append([]symbol.Symbol(nil), roots...)
}

// Roots returns the grammar's current root symbols.
func (g *Cfg) Roots() []symbol.Symbol {
	return append([]symbol.Symbol(nil), g.roots...)
}

// MaxRhsLen returns the current RHS-length invariant, or nil if none is
// set.
func (g *Cfg) MaxRhsLen() *int {
	return g.maxRhsLen
}

// EliminateNulling reports whether the grammar currently disallows empty
// RHSes.
func (g *Cfg) EliminateNulling() bool {
	return g.eliminateNulling
}

// SetEliminateNulling sets the eliminate_nulling flag directly; it is used
// by rewrite.BinarizeAndEliminateNullingRules once nulling rules have been
// split off, and must not be set true while the grammar still has a
// nulling rule.
func (g *Cfg) SetEliminateNulling(b bool) {
	if b {
		for _, r := range g.rules {
			if r.IsNulling() {
				panic("grammar: cannot set eliminate_nulling with a nulling rule still present")
			}
		}
	}
	g.eliminateNulling = b
}

// NumRules returns the number of rules in the grammar.
func (g *Cfg) NumRules() int {
	return len(g.rules)
}

// Rules returns a read-only snapshot of the grammar's rules, in rule-vector
// order.
func (g *Cfg) Rules() []Rule {
	out := make([]Rule, len(g.rules))
	copy(out, g.rules)
	return out
}

// RuleAt returns the rule at index i.
func (g *Cfg) RuleAt(i int) Rule {
	return g.rules[i]
}

// checkSymbols panics if lhs or any symbol in rhs was not minted by this
// grammar's own symbol source: mixing symbols from two sources is the
// precondition violation spec.md section 7 calls out by name.
func (g *Cfg) checkSymbols(lhs symbol.Symbol, rhs []symbol.Symbol) {
	n := symbol.Symbol(g.NumSyms())
	if lhs >= n {
		panic("grammar: lhs symbol does not belong to this grammar's symbol source")
	}
	for _, s := range rhs {
		if s >= n {
			panic("grammar: rhs symbol does not belong to this grammar's symbol source")
		}
	}
}

// addRuleRaw appends lhs ::= rhs with the given history, binarizing it
// first if it exceeds the current max-RHS-length invariant. It is the sole
// path by which rules enter g.rules, so every invariant check lives here.
func (g *Cfg) addRuleRaw(lhs symbol.Symbol, rhs []symbol.Symbol, hist history.ID) {
	g.checkSymbols(lhs, rhs)
	if len(rhs) == 0 && g.eliminateNulling {
		panic("grammar: cannot add a nulling rule while eliminate_nulling is set")
	}

	r := Rule{Lhs: lhs, Rhs: rhs, History: hist}

	if g.maxRhsLen != nil && len(rhs) > *g.maxRhsLen {
		if *g.maxRhsLen != 2 {
			panic("grammar: rhs exceeds max_rhs_len and automatic binarization only targets length 2")
		}
		for _, br := range binarizeRule(g.Source, g.History, r) {
			g.rules = append(g.rules, br)
		}
		return
	}

	g.rules = append(g.rules, r)
}

// Retain keeps only the rules for which pred returns true, preserving
// relative order, the way internal/tunascript/grammar.go's RemoveRule
// family filters the rule vector in place.
func (g *Cfg) Retain(pred func(Rule) bool) {
	kept := g.rules[:0]
	for _, r := range g.rules {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	g.rules = kept
}

// ReplaceRules discards the current rule vector wholesale and installs a
// new one verbatim (no re-binarization, no invariant re-check beyond
// symbol membership). Rewrites that need to rebuild the entire rule set
// from scratch (remap, cycle rewriting) use this instead of calling
// addRuleRaw per rule, since their rewritten rules are already known to
// respect the invariants.
func (g *Cfg) ReplaceRules(rules []Rule) {
	for _, r := range rules {
		g.checkSymbols(r.Lhs, r.Rhs)
	}
	g.rules = rules
}

// LimitRhsLen sets (or clears, with nil) the max-RHS-length invariant. If
// n is non-nil and some existing rule's RHS is longer than *n, those rules
// are retroactively binarized (spec.md section 2's "the grammar is
// binarized" pipeline step); this only works for *n == 2.
func (g *Cfg) LimitRhsLen(n *int) {
	if n != nil && *n == 2 {
		var rebuilt []Rule
		for _, r := range g.rules {
			if len(r.Rhs) > 2 {
				rebuilt = append(rebuilt, binarizeRule(g.Source, g.History, r)...)
			} else {
				rebuilt = append(rebuilt, r)
			}
		}
		g.rules = rebuilt
	}
	g.maxRhsLen = n
}
