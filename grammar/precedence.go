package grammar

import "github.com/dekarrin/gocfg/symbol"

// Associativity controls how a precedenced-rule alternative's
// self-references are lowered (spec.md section 4.7).
type Associativity int

const (
	// AssocLeft keeps the leftmost self-reference at the current
	// looseness level and tightens every other one.
	AssocLeft Associativity = iota
	// AssocRight keeps the rightmost self-reference at the current
	// looseness level and tightens every other one.
	AssocRight
	// AssocGroup defers the alternative to the loosest level, with every
	// self-reference replaced by the loosest non-terminal; used for
	// delimiter groups like parenthesization.
	AssocGroup
)

type precedencedAlt struct {
	looseness int
	assoc     Associativity
	rhs       []symbol.Symbol
}

// PrecedencedRuleBuilder stages the alternatives of a precedenced rule: a
// chain of tighter-to-looser internal non-terminals g0 <= g1 <= ... <= gN,
// built up one LowerPrecedence call per level, finalized in one shot so
// the chain length (and hence the loosest level, needed by Group
// alternatives) is known up front.
type PrecedencedRuleBuilder struct {
	g         *Cfg
	lhs       symbol.Symbol
	looseness int
	assoc     Associativity
	alts      []precedencedAlt
}

// PrecedencedRuleBuilder returns a builder for a precedenced rule with the
// given user-visible left-hand side.
func (g *Cfg) PrecedencedRuleBuilder(lhs symbol.Symbol) *PrecedencedRuleBuilder {
	return &PrecedencedRuleBuilder{g: g, lhs: lhs, assoc: AssocLeft}
}

// Associativity sets the associativity alternatives added from this point
// forward will use.
func (b *PrecedencedRuleBuilder) Associativity(a Associativity) *PrecedencedRuleBuilder {
	b.assoc = a
	return b
}

// Rhs stages one alternative at the builder's current looseness level and
// associativity. Occurrences of the precedenced rule's own left-hand side
// within syms are self-references and are rewritten by Finalize.
func (b *PrecedencedRuleBuilder) Rhs(syms ...symbol.Symbol) *PrecedencedRuleBuilder {
	rhs := make([]symbol.Symbol, len(syms))
	copy(rhs, syms)
	b.alts = append(b.alts, precedencedAlt{looseness: b.looseness, assoc: b.assoc, rhs: rhs})
	return b
}

// LowerPrecedence moves to the next (looser) precedence level; subsequent
// Rhs calls stage alternatives one level looser than before.
func (b *PrecedencedRuleBuilder) LowerPrecedence() *PrecedencedRuleBuilder {
	b.looseness++
	return b
}

// Finalize allocates the internal g0..gN chain, lowers every staged
// alternative into an ordinary rule at its level (rewriting self-references
// per its associativity), links the gi ::= g{i-1} fallthrough rules, and
// emits lhs ::= gN so the user-visible symbol derives the loosest level.
func (b *PrecedencedRuleBuilder) Finalize() {
	maxLooseness := 0
	for _, a := range b.alts {
		if a.looseness > maxLooseness {
			maxLooseness = a.looseness
		}
	}

	levels := b.g.SymN(maxLooseness + 1)

	for i := 1; i <= maxLooseness; i++ {
		h := b.g.History.NewNoOp()
		b.g.RuleBuilder(levels[i]).RhsWithHistory([]symbol.Symbol{levels[i-1]}, h)
	}

	loosest := levels[maxLooseness]

	for _, a := range b.alts {
		var rewritten []symbol.Symbol
		level := levels[a.looseness]

		if a.assoc == AssocGroup {
			rewritten = rewriteGroupSelfRefs(a.rhs, b.lhs, loosest)
			level = loosest
		} else {
			rewritten = rewriteSelfRefs(a.rhs, b.lhs, levels, a.looseness, a.assoc)
		}

		root := b.g.History.NewRuleRoot(b.lhs)
		h := b.g.History.LinkAssignPrecedence(root, a.looseness)
		b.g.RuleBuilder(level).RhsWithHistory(rewritten, h)
	}

	finalHist := b.g.History.NewNoOp()
	b.g.RuleBuilder(b.lhs).RhsWithHistory([]symbol.Symbol{loosest}, finalHist)
}

func rewriteSelfRefs(rhs []symbol.Symbol, lhs symbol.Symbol, levels []symbol.Symbol, looseness int, assoc Associativity) []symbol.Symbol {
	out := make([]symbol.Symbol, len(rhs))
	copy(out, rhs)

	var selfIdx []int
	for i, s := range rhs {
		if s == lhs {
			selfIdx = append(selfIdx, i)
		}
	}
	if len(selfIdx) == 0 {
		return out
	}

	var keepIdx int
	switch assoc {
	case AssocLeft:
		keepIdx = selfIdx[0]
	case AssocRight:
		keepIdx = selfIdx[len(selfIdx)-1]
	default:
		panic("grammar: rewriteSelfRefs called with non-Left/Right associativity")
	}

	for _, idx := range selfIdx {
		if idx == keepIdx {
			out[idx] = levels[looseness]
			continue
		}
		if looseness == 0 {
			panic("grammar: self-reference at the tightest precedence level has no tighter level to bind to")
		}
		out[idx] = levels[looseness-1]
	}
	return out
}

func rewriteGroupSelfRefs(rhs []symbol.Symbol, lhs symbol.Symbol, loosest symbol.Symbol) []symbol.Symbol {
	out := make([]symbol.Symbol, len(rhs))
	for i, s := range rhs {
		if s == lhs {
			out[i] = loosest
		} else {
			out[i] = s
		}
	}
	return out
}
