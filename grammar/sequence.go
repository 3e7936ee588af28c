package grammar

import (
	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
)

// SeparatorMode is how a sequence rule's separator symbol relates to its
// elements (spec.md Glossary: "Separator mode").
type SeparatorMode int

const (
	// SepNull means there is no separator.
	SepNull SeparatorMode = iota
	// SepTrailing means the separator appears after every element.
	SepTrailing
	// SepProper means the separator appears between elements only.
	SepProper
	// SepLiberal means the separator may appear either way.
	SepLiberal
)

// SequenceRule is a staged repetition rule A ::= elem{start..=end} with a
// separator mode, held by the owning Cfg until rewrite.ExpandSequences
// lowers it to ordinary rules (spec.md section 4.6).
type SequenceRule struct {
	Lhs symbol.Symbol
	Rhs symbol.Symbol

	Start uint32
	// End is nil for an unbounded ("None") upper bound.
	End *uint32

	Sep    SeparatorMode
	SepSym symbol.Symbol // meaningful only if Sep != SepNull

	History history.ID
}

// PendingSequences returns a read-only snapshot of the sequence rules
// staged so far.
func (g *Cfg) PendingSequences() []SequenceRule {
	out := make([]SequenceRule, len(g.sequences))
	copy(out, g.sequences)
	return out
}

// ClearPendingSequences discards every staged sequence rule; it is called
// by rewrite.ExpandSequences once it has lowered them all.
func (g *Cfg) ClearPendingSequences() {
	g.sequences = nil
}

// SequenceRuleBuilder stages a single repetition rule.
type SequenceRuleBuilder struct {
	g   *Cfg
	lhs symbol.Symbol
	rhs symbol.Symbol
	start uint32
	end   *uint32
	sep    SeparatorMode
	sepSym symbol.Symbol
	haveRhs bool
}

// SequenceBuilder returns a builder for a repetition rule with the given
// left-hand side.
func (g *Cfg) SequenceBuilder(lhs symbol.Symbol) *SequenceRuleBuilder {
	return &SequenceRuleBuilder{g: g, lhs: lhs}
}

// Rhs sets the element symbol being repeated.
func (b *SequenceRuleBuilder) Rhs(sym symbol.Symbol) *SequenceRuleBuilder {
	b.rhs = sym
	b.haveRhs = true
	return b
}

// Separator sets the separator mode. For every mode but SepNull, exactly
// one separator symbol must be given.
func (b *SequenceRuleBuilder) Separator(mode SeparatorMode, sepSym ...symbol.Symbol) *SequenceRuleBuilder {
	b.sep = mode
	if mode == SepNull {
		return b
	}
	if len(sepSym) != 1 {
		panic("grammar: separator mode other than SepNull requires exactly one separator symbol")
	}
	b.sepSym = sepSym[0]
	return b
}

// Inclusive sets an inclusive, bounded repetition range [start, end].
func (b *SequenceRuleBuilder) Inclusive(start, end uint32) *SequenceRuleBuilder {
	b.start = start
	e := end
	b.end = &e
	return b
}

// Range sets the repetition range directly; end nil means unbounded.
func (b *SequenceRuleBuilder) Range(start uint32, end *uint32) *SequenceRuleBuilder {
	b.start = start
	b.end = end
	return b
}

// Build stages the sequence rule on the owning grammar, to be lowered by a
// later call to rewrite.ExpandSequences.
func (b *SequenceRuleBuilder) Build() {
	if !b.haveRhs {
		panic("grammar: sequence rule built with no element symbol")
	}
	h := b.g.History.NewRuleRoot(b.lhs)
	b.g.sequences = append(b.g.sequences, SequenceRule{
		Lhs:     b.lhs,
		Rhs:     b.rhs,
		Start:   b.start,
		End:     b.end,
		Sep:     b.sep,
		SepSym:  b.sepSym,
		History: h,
	})
}
