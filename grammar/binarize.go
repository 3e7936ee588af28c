package grammar

import (
	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
)

// binarizeRule right-factors a rule whose RHS is longer than 2 symbols
// into a chain of two-symbol rules (spec.md section 4.2):
//
//	LHS ::= A B C … Y Z   becomes   LHS ::= S0  Z
//	                                S0  ::= S1  Y
//	                                …
//	                                Sn  ::= A   B
//
// Every generated rule links a Binarize history node to r's own history;
// the topmost rule (the one returned last) keeps r.Lhs and is marked
// is_top. It is shared by Cfg.addRuleRaw (a single over-long rule added at
// once) and Cfg.LimitRhsLen (retroactively binarizing pre-existing rules),
// matching how the teacher's Grammar.AddRule and Grammar.RemoveEpsilons in
// internal/tunascript/grammar.go both funnel through one insertRule-style
// helper instead of duplicating the rewrite.
func binarizeRule(source *symbol.Source, hist *history.Graph, r Rule) []Rule {
	rhs := r.Rhs
	l := len(rhs)
	if l <= 2 {
		return []Rule{r}
	}

	numInter := l - 2
	inter := source.NextN(numInter)

	rules := make([]Rule, 0, numInter+1)
	current := rhs[0]

	for i := 1; i < l; i++ {
		isTop := i == l-1

		var lhs symbol.Symbol
		if isTop {
			lhs = r.Lhs
		} else {
			lhs = inter[numInter-i]
		}

		h := hist.LinkBinarize(r.History, i-1, l, isTop)
		rules = append(rules, Rule{
			Lhs:     lhs,
			Rhs:     []symbol.Symbol{current, rhs[i]},
			History: h,
		})

		current = lhs
	}

	return rules
}
