package rewrite

import (
	"github.com/dekarrin/gocfg/closure"
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
)

// BinarizeAndEliminateNullingRules splits every nullable-deriving rule out
// of g into a separate nulling subgrammar, leaving g free of empty RHSes
// (spec.md section 4.5). g must already be binarized (every rule's RHS has
// length <= 2); this is checked and panics otherwise.
//
// For each rule A -> X Y (or the degenerate A -> X), the factors are
// classified by nullability: if both (or the sole) factor is nullable, the
// rule moves wholly into the returned nulling subgrammar; if only the left
// factor is nullable, A -> Y is emitted into g; if only the right factor
// is nullable, A -> X is emitted into g; if neither, the rule is
// unaffected. Productivity is then recomputed over the rewritten main
// grammar and any rule whose LHS became unproductive is dropped, since
// splitting off the nulling factors can strand some symbols.
func BinarizeAndEliminateNullingRules(g *grammar.Cfg) *grammar.Cfg {
	for _, r := range g.Rules() {
		if len(r.Rhs) > 2 {
			panic("rewrite: BinarizeAndEliminateNullingRules requires a binarized grammar (rhs length <= 2)")
		}
	}

	seed := symbol.NewBitSet(g.NumSyms())
	for _, r := range g.Rules() {
		if r.IsNulling() {
			seed.Set(r.Lhs)
		}
	}
	nullable := closure.New(g).All(seed)

	nulling := grammar.NewSharing(g)

	var mainRules []grammar.Rule
	for _, r := range g.Rules() {
		switch len(r.Rhs) {
		case 0:
			nulling.RuleBuilder(r.Lhs).RhsWithHistory(nil, r.History)

		case 1:
			x := r.Rhs[0]
			if nullable.Has(x) {
				h := nulling.History.LinkEliminateNulling(r.History, x, x, history.WhichAll)
				nulling.RuleBuilder(r.Lhs).RhsWithHistory([]symbol.Symbol{x}, h)
			} else {
				mainRules = append(mainRules, r)
			}

		case 2:
			x, y := r.Rhs[0], r.Rhs[1]
			nx, ny := nullable.Has(x), nullable.Has(y)
			switch {
			case nx && ny:
				h := nulling.History.LinkEliminateNulling(r.History, x, y, history.WhichAll)
				nulling.RuleBuilder(r.Lhs).RhsWithHistory([]symbol.Symbol{x, y}, h)
			case nx:
				h := g.History.LinkEliminateNulling(r.History, x, y, history.WhichLeft)
				mainRules = append(mainRules, grammar.Rule{Lhs: r.Lhs, Rhs: []symbol.Symbol{y}, History: h})
			case ny:
				h := g.History.LinkEliminateNulling(r.History, x, y, history.WhichRight)
				mainRules = append(mainRules, grammar.Rule{Lhs: r.Lhs, Rhs: []symbol.Symbol{x}, History: h})
			default:
				mainRules = append(mainRules, r)
			}

		default:
			mainRules = append(mainRules, r)
		}
	}

	g.ReplaceRules(mainRules)

	productive := Productive(g)
	g.Retain(func(r grammar.Rule) bool { return productive.Has(r.Lhs) })

	g.SetEliminateNulling(true)

	return nulling
}
