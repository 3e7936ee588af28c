/*
Cfgstat builds a small demonstration grammar, runs it through the standard
gocfg rewrite pipeline, and prints a summary of the result.

Usage:

	cfgstat [flags]

The flags are:

	-p, --preset NAME
		Load a named operator-precedence preset ("arithmetic" or "boolean")
		for the demo grammar's expression rule instead of the built-in
		default.

	-v, --version
		Print the gocfg version and exit.

Cfgstat never reads grammar text from a file or from stdin: the demo
grammar is always built in-process. It exists to give the external
façade a runnable consumer, not to load arbitrary grammars.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/gocfg"
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/presets"
	"github.com/dekarrin/gocfg/symbol"
	"github.com/dekarrin/rosed"
	"github.com/spf13/pflag"
)

const version = "0.1.0"

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitBuildError indicates the demo grammar could not be built (e.g. an
	// unknown preset name).
	ExitBuildError
)

var (
	returnCode  int
	flagVersion = pflag.BoolP("version", "v", false, "Print the gocfg version")
	flagPreset  = pflag.StringP("preset", "p", "", "Load a named operator-precedence preset for the demo grammar's expression rule")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("cfgstat %s\n", version)
		return
	}

	g, start, buildErr := buildDemoGrammar(*flagPreset)
	if buildErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", buildErr.Error())
		returnCode = ExitBuildError
		return
	}

	gocfg.NewPipeline(g).Run()
	summary := gocfg.Analyze(g, start)

	fmt.Print(render(summary))
}

// buildDemoGrammar constructs a small expression grammar: start derives a
// sequence of one or more statements separated by a semicolon terminal, and
// each statement is an expression built from a number terminal and the
// operators named by presetName (empty means the built-in default of a
// single addition rule).
func buildDemoGrammar(presetName string) (*grammar.Cfg, symbol.Symbol, error) {
	g := grammar.New()
	s := g.SymN(4)
	start, stmt, expr, num := s[0], s[1], s[2], s[3]

	semi := g.Sym()

	g.SequenceBuilder(start).Rhs(stmt).Separator(grammar.SepProper, semi).Range(1, nil).Build()
	g.RuleBuilder(stmt).Rhs(expr)

	if presetName == "" {
		add := g.Sym()
		g.RuleBuilder(expr).Rhs(expr, add, num)
		g.RuleBuilder(expr).Rhs(num)
	} else {
		tbl, err := presets.Load(presetName)
		if err != nil {
			return nil, 0, err
		}
		opSyms := make(map[string]symbol.Symbol)
		for _, lvl := range tbl.Levels {
			for _, op := range lvl.Operators {
				opSyms[op] = g.Sym()
			}
		}
		if err := presets.Apply(g, expr, num, tbl, opSyms); err != nil {
			return nil, 0, err
		}
	}

	g.SetRoots([]symbol.Symbol{start})
	return g, start, nil
}

func render(s gocfg.Summary) string {
	data := [][]string{
		{"symbols", fmt.Sprintf("%d", s.NumSymbols)},
		{"rules", fmt.Sprintf("%d", s.NumRules)},
		{"LR(0) states", fmt.Sprintf("%d", s.Lr0States)},
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 60, rosed.Options{
			TableBorders: true,
		}).
		String() + "\n"
}
