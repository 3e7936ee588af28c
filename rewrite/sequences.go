package rewrite

import (
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
)

// ExpandSequences lowers every sequence rule staged on g (spec.md section
// 4.6) into ordinary rules, added directly to g, and clears the pending
// list. Expansion proceeds by recursive case analysis on (separator,
// start, end): Null and Proper ranges split at the previous power of two
// of their upper bound, producing a divide-and-conquer tree of helper
// non-terminals; Trailing and Liberal ranges are expressed in terms of the
// Proper form over the same bounds. Intermediate symbols are de-duplicated
// by (rhs, start, end, separator) so repeated sub-ranges across every
// staged sequence share the same non-terminal.
func ExpandSequences(g *grammar.Cfg) {
	pending := g.PendingSequences()
	if len(pending) == 0 {
		return
	}

	ex := &expander{
		g:         g,
		rangeMemo: make(map[rangeKey]symbol.Symbol),
		blockMemo: make(map[blockKey]symbol.Symbol),
	}
	for _, sr := range pending {
		ex.expandTop(sr)
	}
	g.ClearPendingSequences()
}

type rangeKey struct {
	rhs    symbol.Symbol
	start  uint32
	end    int64 // -1 means unbounded
	sep    grammar.SeparatorMode
	sepSym symbol.Symbol
}

type blockKey struct {
	rhs    symbol.Symbol
	n      uint32
	sep    grammar.SeparatorMode
	sepSym symbol.Symbol
}

type expander struct {
	g         *grammar.Cfg
	rangeMemo map[rangeKey]symbol.Symbol
	blockMemo map[blockKey]symbol.Symbol
}

func endKey(end *uint32) int64 {
	if end == nil {
		return -1
	}
	return int64(*end)
}

// prevPow2 returns the largest power of two strictly less than e. Callers
// only invoke it for e >= 3.
func prevPow2(e uint32) uint32 {
	p := uint32(1)
	for p*2 < e {
		p *= 2
	}
	return p
}

// link records a RewriteSequence node (and, for a leaf rule composed
// directly of raw element/separator symbols, a chained SequenceRhs node)
// and appends the rule to lhs.
func (ex *expander) link(lhs symbol.Symbol, top bool, rhsSym, sepSym symbol.Symbol, hasSep bool, rhsList []symbol.Symbol, leafSlots *[3]symbol.Symbol, hist history.ID) {
	h := ex.g.History.LinkRewriteSequence(hist, top, rhsSym, sepSym, hasSep)
	if leafSlots != nil {
		h = ex.g.History.LinkSequenceRhs(h, *leafSlots)
	}
	ex.g.RuleBuilder(lhs).RhsWithHistory(rhsList, h)
}

// rangeSymbol returns the (memoized) helper symbol for the range
// [start, end] of rhs under sep, building its rules the first time it is
// requested.
func (ex *expander) rangeSymbol(rhs symbol.Symbol, sep grammar.SeparatorMode, sepSym symbol.Symbol, start uint32, end *uint32, hist history.ID) symbol.Symbol {
	key := rangeKey{rhs: rhs, start: start, end: endKey(end), sep: sep, sepSym: sepSym}
	if s, ok := ex.rangeMemo[key]; ok {
		return s
	}
	s := ex.g.Sym()
	ex.rangeMemo[key] = s
	ex.buildRangeRules(s, false, rhs, sep, sepSym, start, end, hist)
	return s
}

// exactBlock returns the (memoized) helper symbol representing exactly n
// occurrences of rhs under sep (Null: bare concatenation; Proper: every
// adjacent pair separated). n must be >= 1.
func (ex *expander) exactBlock(rhs symbol.Symbol, sep grammar.SeparatorMode, sepSym symbol.Symbol, n uint32, hist history.ID) symbol.Symbol {
	if n == 1 {
		return rhs
	}
	key := blockKey{rhs: rhs, n: n, sep: sep, sepSym: sepSym}
	if s, ok := ex.blockMemo[key]; ok {
		return s
	}
	s := ex.g.Sym()
	ex.blockMemo[key] = s
	ex.buildExactBlockRules(s, false, rhs, sep, sepSym, n, hist)
	return s
}

// buildExactBlockRules emits the rule(s) for exactly n occurrences of rhs
// directly onto target, splitting n in half and reusing (or creating)
// memoized helpers for each half. n must be >= 2.
func (ex *expander) buildExactBlockRules(target symbol.Symbol, top bool, rhs symbol.Symbol, sep grammar.SeparatorMode, sepSym symbol.Symbol, n uint32, hist history.ID) {
	half1 := n / 2
	half2 := n - half1
	left := ex.exactBlock(rhs, sep, sepSym, half1, hist)
	right := ex.exactBlock(rhs, sep, sepSym, half2, hist)

	leaf := half1 == 1 && half2 == 1
	switch sep {
	case grammar.SepProper:
		var slots *[3]symbol.Symbol
		if leaf {
			slots = &[3]symbol.Symbol{left, sepSym, right}
		}
		ex.link(target, top, rhs, sepSym, true, []symbol.Symbol{left, sepSym, right}, slots, hist)
	default: // SepNull: bare concatenation, no separator between blocks
		var slots *[3]symbol.Symbol
		if leaf {
			slots = &[3]symbol.Symbol{left, right, right}
		}
		ex.link(target, top, rhs, sepSym, false, []symbol.Symbol{left, right}, slots, hist)
	}
}

func (ex *expander) expandTop(sr grammar.SequenceRule) {
	ex.buildRangeRules(sr.Lhs, true, sr.Rhs, sr.Sep, sr.SepSym, sr.Start, sr.End, sr.History)
}

func (ex *expander) buildRangeRules(lhs symbol.Symbol, top bool, rhs symbol.Symbol, sep grammar.SeparatorMode, sepSym symbol.Symbol, start uint32, end *uint32, hist history.ID) {
	switch sep {
	case grammar.SepNull:
		ex.buildNullRange(lhs, top, rhs, start, end, hist)
	case grammar.SepProper:
		ex.buildProperRange(lhs, top, rhs, sepSym, start, end, hist)
	case grammar.SepTrailing:
		inner := ex.rangeSymbol(rhs, grammar.SepProper, sepSym, start, end, hist)
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{inner, sepSym}, nil, hist)
	case grammar.SepLiberal:
		properSym := ex.rangeSymbol(rhs, grammar.SepProper, sepSym, start, end, hist)
		trailingKey := rangeKey{rhs: rhs, start: start, end: endKey(end), sep: grammar.SepTrailing, sepSym: sepSym}
		trailingSym, ok := ex.rangeMemo[trailingKey]
		if !ok {
			trailingSym = ex.g.Sym()
			ex.rangeMemo[trailingKey] = trailingSym
			ex.buildRangeRules(trailingSym, false, rhs, grammar.SepTrailing, sepSym, start, end, hist)
		}
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{properSym}, nil, hist)
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{trailingSym}, nil, hist)
	}
}

// buildNullRange implements spec.md section 4.6's Null-separator rows.
func (ex *expander) buildNullRange(lhs symbol.Symbol, top bool, rhs symbol.Symbol, start uint32, end *uint32, hist history.ID) {
	if start == 0 {
		if end != nil && *end == 0 {
			ex.link(lhs, top, rhs, 0, false, nil, nil, hist)
			return
		}
		ex.link(lhs, top, rhs, 0, false, nil, nil, hist)
		var rest *uint32
		if end != nil {
			e := *end
			rest = &e
		}
		a1 := ex.rangeSymbol(rhs, grammar.SepNull, 0, 1, rest, hist)
		ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{a1}, nil, hist)
		return
	}

	if start == 1 {
		ex.buildNullFrom1(lhs, top, rhs, end, hist)
		return
	}

	if end != nil && *end == start {
		// Exactly start occurrences: no choice to make, build the block's
		// rule directly onto lhs instead of indirecting through a helper.
		ex.buildExactBlockRules(lhs, top, rhs, grammar.SepNull, 0, start, hist)
		return
	}

	// start >= 2, with room to vary: a fixed prefix of (start-1) elements
	// glued to a [1..=end-(start-1)] (or unbounded) range.
	prefixN := start - 1
	block := ex.exactBlock(rhs, grammar.SepNull, 0, prefixN, hist)

	var tailEnd *uint32
	if end != nil {
		e := *end - prefixN
		tailEnd = &e
	}
	tail := ex.rangeSymbol(rhs, grammar.SepNull, 0, 1, tailEnd, hist)
	ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{block, tail}, nil, hist)
}

func (ex *expander) buildNullFrom1(lhs symbol.Symbol, top bool, rhs symbol.Symbol, end *uint32, hist history.ID) {
	switch {
	case end == nil:
		ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{rhs}, &[3]symbol.Symbol{rhs, rhs, rhs}, hist)
		ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{lhs, rhs}, nil, hist)
	case *end == 1:
		ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{rhs}, &[3]symbol.Symbol{rhs, rhs, rhs}, hist)
	case *end == 2:
		block2 := ex.exactBlock(rhs, grammar.SepNull, 0, 2, hist)
		ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{rhs}, &[3]symbol.Symbol{rhs, rhs, rhs}, hist)
		ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{block2}, nil, hist)
	default:
		e := *end
		p := prevPow2(e)
		a1 := ex.rangeSymbol(rhs, grammar.SepNull, 0, 1, &p, hist)
		block := ex.exactBlock(rhs, grammar.SepNull, 0, p, hist)
		tailLen := e - p
		tail := ex.rangeSymbol(rhs, grammar.SepNull, 0, 1, &tailLen, hist)
		ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{a1}, nil, hist)
		ex.link(lhs, top, rhs, 0, false, []symbol.Symbol{block, tail}, nil, hist)
	}
}

// buildProperRange implements spec.md section 4.6's Proper-separator rows,
// mirroring buildNullRange's shape with a separator symbol inserted
// between every pair of elements.
func (ex *expander) buildProperRange(lhs symbol.Symbol, top bool, rhs symbol.Symbol, sepSym symbol.Symbol, start uint32, end *uint32, hist history.ID) {
	if start == 0 {
		if end != nil && *end == 0 {
			ex.link(lhs, top, rhs, sepSym, true, nil, nil, hist)
			return
		}
		ex.link(lhs, top, rhs, sepSym, true, nil, nil, hist)
		var rest *uint32
		if end != nil {
			e := *end
			rest = &e
		}
		a1 := ex.rangeSymbol(rhs, grammar.SepProper, sepSym, 1, rest, hist)
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{a1}, nil, hist)
		return
	}

	if start == 1 {
		ex.buildProperFrom1(lhs, top, rhs, sepSym, end, hist)
		return
	}

	if end != nil && *end == start {
		ex.buildExactBlockRules(lhs, top, rhs, grammar.SepProper, sepSym, start, hist)
		return
	}

	prefixN := start - 1
	block := ex.exactBlock(rhs, grammar.SepProper, sepSym, prefixN, hist)

	var tailEnd *uint32
	if end != nil {
		e := *end - prefixN
		tailEnd = &e
	}
	tail := ex.rangeSymbol(rhs, grammar.SepProper, sepSym, 1, tailEnd, hist)
	ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{block, sepSym, tail}, nil, hist)
}

func (ex *expander) buildProperFrom1(lhs symbol.Symbol, top bool, rhs symbol.Symbol, sepSym symbol.Symbol, end *uint32, hist history.ID) {
	switch {
	case end == nil:
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{rhs}, &[3]symbol.Symbol{rhs, sepSym, rhs}, hist)
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{lhs, sepSym, rhs}, nil, hist)
	case *end == 1:
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{rhs}, &[3]symbol.Symbol{rhs, sepSym, rhs}, hist)
	case *end == 2:
		block2 := ex.exactBlock(rhs, grammar.SepProper, sepSym, 2, hist)
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{rhs}, &[3]symbol.Symbol{rhs, sepSym, rhs}, hist)
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{block2}, nil, hist)
	default:
		e := *end
		p := prevPow2(e)
		a1 := ex.rangeSymbol(rhs, grammar.SepProper, sepSym, 1, &p, hist)
		block := ex.exactBlock(rhs, grammar.SepProper, sepSym, p, hist)
		tailLen := e - p
		tail := ex.rangeSymbol(rhs, grammar.SepProper, sepSym, 1, &tailLen, hist)
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{a1}, nil, hist)
		ex.link(lhs, top, rhs, sepSym, true, []symbol.Symbol{block, sepSym, tail}, nil, hist)
	}
}
