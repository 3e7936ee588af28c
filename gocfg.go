// Package gocfg is an in-memory context-free grammar manipulation core for
// Earley-family parser generators: a grammar container and symbol source, a
// history/provenance graph recording every rewrite, the standard rewrite
// pipeline (binarization, nullable-rule elimination, useless-rule pruning,
// cycle removal, sequence-rule expansion, precedence lowering), and the
// closure analyses (FIRST/FOLLOW/LAST, reachability, minimal distance,
// LR(0) item sets, LL(1) classification) that drive them.
//
// It does not load grammars from text, translate regular expressions,
// generate strings, or run a recognizer; see the package docs for
// grammar, rewrite, and analysis for those boundaries.
package gocfg

import (
	"github.com/dekarrin/gocfg/analysis"
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/rewrite"
	"github.com/dekarrin/gocfg/symbol"
)

// Pipeline runs the standard sequence of rewrites a grammar needs before its
// closure analyses are meaningful: sequence-rule expansion, binarization
// with nullable-rule elimination, cycle rewriting, useless-rule removal, and
// finally a symbol remap that drops anything the prior steps orphaned. The
// nulling subgrammar split off by the nullable-rule elimination step is not
// kept.
//
// Each step is also usable on its own through the rewrite package; Pipeline
// exists for callers who want the common case in one call.
type Pipeline struct {
	g *grammar.Cfg
}

// NewPipeline wraps g. g is mutated in place by Run.
func NewPipeline(g *grammar.Cfg) *Pipeline {
	return &Pipeline{g: g}
}

// Run executes the standard rewrite pipeline and returns the resulting
// grammar's final-to-original symbol mapping, as produced by the closing
// remap step.
func (p *Pipeline) Run() symbol.Mapping {
	rewrite.ExpandSequences(p.g)

	limit := 2
	p.g.LimitRhsLen(&limit)
	rewrite.BinarizeAndEliminateNullingRules(p.g)

	rewrite.RewriteCycles(p.g)
	rewrite.RemoveUselessRules(p.g)

	rm := rewrite.New(p.g).RemoveUnusedSymbols()
	return rm.GetMapping()
}

// Summary holds the results of the closure analyses run over a grammar that
// has already been through Pipeline.Run, for callers (such as cmd/cfgstat)
// that want a snapshot without re-deriving each analysis by hand.
type Summary struct {
	NumSymbols int
	NumRules   int
	First      []analysis.FirstSet
	Follow     []analysis.FollowSet
	Lr0States  int
	LL1        analysis.LlClassification
}

// Analyze runs FIRST/FOLLOW, the LR(0) automaton rooted at start, and LL(1)
// classification over g, and collects the results into a Summary.
func Analyze(g *grammar.Cfg, start symbol.Symbol) Summary {
	first := analysis.FirstSets(g)
	follow := analysis.FollowSetsWithFirst(g, first)
	fsm := analysis.Lr0FsmBuilderNew(g).MakeLr0Fsm(start)
	ll1 := analysis.LlParseTableNew(g).Classify()

	return Summary{
		NumSymbols: g.NumSyms(),
		NumRules:   g.NumRules(),
		First:      first,
		Follow:     follow,
		Lr0States:  len(fsm),
		LL1:        ll1,
	}
}
