package grammar

import (
	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
)

// RuleBuilder accumulates alternatives for a single left-hand side. Each
// call to one of its Rhs* methods appends one rule to the owning grammar
// and returns the builder so calls can be chained. Rules are committed as
// they are added: there is no finalize step and nothing happens when the
// builder is dropped.
type RuleBuilder struct {
	g   *Cfg
	lhs symbol.Symbol
}

// RuleBuilder returns a builder for alternatives of lhs.
func (g *Cfg) RuleBuilder(lhs symbol.Symbol) *RuleBuilder {
	return &RuleBuilder{g: g, lhs: lhs}
}

// Rhs appends lhs ::= syms as a directly-authored rule, recording a fresh
// RuleRoot history node.
func (b *RuleBuilder) Rhs(syms ...symbol.Symbol) *RuleBuilder {
	h := b.g.History.NewRuleRoot(b.lhs)
	b.g.addRuleRaw(b.lhs, syms, h)
	return b
}

// RhsWithHistory appends lhs ::= syms using an already-constructed history
// handle, e.g. one obtained from an external loader via NewOriginRoot.
func (b *RuleBuilder) RhsWithHistory(syms []symbol.Symbol, h history.ID) *RuleBuilder {
	b.g.addRuleRaw(b.lhs, syms, h)
	return b
}

// LinkedHistoryNode describes a single Linked history node to attach to a
// new rule. Prev is supplied explicitly by the caller so a rewrite can
// chain a new rule's provenance off any existing handle; only the fields
// relevant to Kind need be populated; see history.Node for their meaning.
type LinkedHistoryNode struct {
	Prev history.ID
	Kind history.LinkKind

	Depth, FullLen int
	IsTop          bool

	Rhs0, Rhs1 symbol.Symbol
	Which      history.Which

	Looseness int

	Top    bool
	Rhs    symbol.Symbol
	Sep    symbol.Symbol
	HasSep bool

	SeqRhs [3]symbol.Symbol

	Weight float64
}

func (n LinkedHistoryNode) link(g *history.Graph) history.ID {
	switch n.Kind {
	case history.Binarize:
		return g.LinkBinarize(n.Prev, n.Depth, n.FullLen, n.IsTop)
	case history.EliminateNulling:
		return g.LinkEliminateNulling(n.Prev, n.Rhs0, n.Rhs1, n.Which)
	case history.AssignPrecedence:
		return g.LinkAssignPrecedence(n.Prev, n.Looseness)
	case history.RewriteSequence:
		return g.LinkRewriteSequence(n.Prev, n.Top, n.Rhs, n.Sep, n.HasSep)
	case history.SequenceRhs:
		return g.LinkSequenceRhs(n.Prev, n.SeqRhs)
	case history.Weight:
		return g.LinkWeight(n.Prev, n.Weight)
	default:
		panic("grammar: unknown LinkedHistoryNode kind")
	}
}

// RhsWithLinkedHistory appends lhs ::= syms, first materializing node as a
// new Linked history entry.
func (b *RuleBuilder) RhsWithLinkedHistory(syms []symbol.Symbol, node LinkedHistoryNode) *RuleBuilder {
	h := node.link(b.g.History)
	b.g.addRuleRaw(b.lhs, syms, h)
	return b
}
