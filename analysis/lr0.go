package analysis

import (
	"sort"

	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

// Lr0Item is a dotted position (rule_id, dot) sharing a materialized RHS
// (spec.md section 4.10). RuleIndex indexes into the rule slice the
// builder was constructed with (the augmented grammar's rule vector, not
// the caller's original one).
type Lr0Item struct {
	RuleIndex int
	Dot       int
}

// Lr0Node is one state of the constructed automaton: its item set (closed)
// and the outgoing transitions, labeled by symbol, to other node indices.
type Lr0Node struct {
	Items       []Lr0Item
	Transitions map[symbol.Symbol]int
}

// Lr0FsmBuilder constructs an LR(0) automaton over a grammar augmented
// with a fresh start rule S' -> S (spec.md section 4.10), so the initial
// item set is never confused with a user rule's own closure.
type Lr0FsmBuilder struct {
	rules []grammar.Rule
	// byLhs maps each non-terminal to the indices, in rules, of the rules
	// defining it -- the table closure() repeatedly consults.
	byLhs map[symbol.Symbol][]int
}

// Lr0FsmBuilderNew returns a builder over g's current rules. It does not
// mutate g; the augmented start rule exists only inside the builder's own
// rule slice.
func Lr0FsmBuilderNew(g *grammar.Cfg) *Lr0FsmBuilder {
	rules := g.Rules()
	byLhs := make(map[symbol.Symbol][]int, g.NumSyms())
	for i, r := range rules {
		byLhs[r.Lhs] = append(byLhs[r.Lhs], i)
	}
	return &Lr0FsmBuilder{rules: rules, byLhs: byLhs}
}

// closure computes the closure of a set of items: while any item
// A -> alpha . B beta exists with B a non-terminal, every B -> . gamma is
// added, idempotently (spec.md section 4.10).
func (b *Lr0FsmBuilder) closure(items []Lr0Item) []Lr0Item {
	seen := make(map[Lr0Item]bool, len(items))
	var worklist []Lr0Item
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			worklist = append(worklist, it)
		}
	}

	out := append([]Lr0Item(nil), worklist...)
	for len(worklist) > 0 {
		it := worklist[0]
		worklist = worklist[1:]

		rhs := b.rules[it.RuleIndex].Rhs
		if it.Dot >= len(rhs) {
			continue
		}
		nextSym := rhs[it.Dot]
		for _, ri := range b.byLhs[nextSym] {
			cand := Lr0Item{RuleIndex: ri, Dot: 0}
			if !seen[cand] {
				seen[cand] = true
				out = append(out, cand)
				worklist = append(worklist, cand)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].RuleIndex != out[j].RuleIndex {
			return out[i].RuleIndex < out[j].RuleIndex
		}
		return out[i].Dot < out[j].Dot
	})
	return out
}

// advance produces the item set reached from items by shifting the dot
// past sym, then closes it. A nil slice means there is no such transition.
func (b *Lr0FsmBuilder) advance(items []Lr0Item, sym symbol.Symbol) []Lr0Item {
	var shifted []Lr0Item
	for _, it := range items {
		rhs := b.rules[it.RuleIndex].Rhs
		if it.Dot < len(rhs) && rhs[it.Dot] == sym {
			shifted = append(shifted, Lr0Item{RuleIndex: it.RuleIndex, Dot: it.Dot + 1})
		}
	}
	if shifted == nil {
		return nil
	}
	return b.closure(shifted)
}

// itemSetKey renders an item set as a comparable map key, so structurally
// equal item sets (already sorted by closure) collapse to the same node
// instead of being re-explored.
func itemSetKey(items []Lr0Item) string {
	// items is always sorted (closure sorts before returning), so this is
	// a stable, order-independent key.
	buf := make([]byte, 0, len(items)*8)
	for _, it := range items {
		buf = appendVarint(buf, it.RuleIndex)
		buf = appendVarint(buf, it.Dot)
		buf = append(buf, ';')
	}
	return string(buf)
}

func appendVarint(buf []byte, n int) []byte {
	for n >= 128 {
		buf = append(buf, byte(n&0x7f)|0x80)
		n >>= 7
	}
	return append(buf, byte(n))
}

// MakeLr0Fsm builds the full LR(0) automaton starting from an augmented
// item set S' -> . start, exploring every reachable item set and wiring a
// transition edge for every terminal symbol that advances it: spec.md
// section 4.10 is explicit that nodes record only their "outgoing terminal
// transitions" (this automaton drives Earley-style set construction, not
// standalone shift/reduce parsing, so it has no GOTO over non-terminals).
// Node 0 is always the start state.
func (b *Lr0FsmBuilder) MakeLr0Fsm(start symbol.Symbol) []Lr0Node {
	augRuleIndex := len(b.rules)
	b.rules = append(b.rules, grammar.Rule{Lhs: symbol.None, Rhs: []symbol.Symbol{start}})

	startItems := b.closure([]Lr0Item{{RuleIndex: augRuleIndex, Dot: 0}})

	var nodes []Lr0Node
	index := make(map[string]int)

	startKey := itemSetKey(startItems)
	index[startKey] = 0
	nodes = append(nodes, Lr0Node{Items: startItems, Transitions: make(map[symbol.Symbol]int)})

	queue := []int{0}
	for len(queue) > 0 {
		ni := queue[0]
		queue = queue[1:]

		symbols := b.outgoingTerminals(nodes[ni].Items)
		for _, sym := range symbols {
			next := b.advance(nodes[ni].Items, sym)
			if next == nil {
				continue
			}
			key := itemSetKey(next)
			ti, ok := index[key]
			if !ok {
				ti = len(nodes)
				index[key] = ti
				nodes = append(nodes, Lr0Node{Items: next, Transitions: make(map[symbol.Symbol]int)})
				queue = append(queue, ti)
			}
			nodes[ni].Transitions[sym] = ti
		}
	}

	return nodes
}

// outgoingTerminals collects, in ascending order, every terminal symbol
// immediately after some item's dot. A symbol is terminal iff it never
// appears as a rule's LHS, which b.byLhs already indexes.
func (b *Lr0FsmBuilder) outgoingTerminals(items []Lr0Item) []symbol.Symbol {
	seen := make(map[symbol.Symbol]bool)
	var out []symbol.Symbol
	for _, it := range items {
		rhs := b.rules[it.RuleIndex].Rhs
		if it.Dot >= len(rhs) {
			continue
		}
		sym := rhs[it.Dot]
		if _, isNonTerminal := b.byLhs[sym]; isNonTerminal {
			continue
		}
		if !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
