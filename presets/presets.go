// Package presets loads named operator precedence/associativity tables from
// TOML, for feeding grammar.Cfg.PrecedencedRuleBuilder without hand-writing
// the level/associativity calls for common operator sets (spec.md section
// 4.7, SPEC_FULL.md section 2).
//
// This is not the BNF loader the spec places out of scope: a preset file
// never contains grammar text, only a named precedence table keyed by
// operator symbol name.
package presets

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/gocfg/grammar"
	"github.com/dekarrin/gocfg/symbol"
)

//go:embed data/*.toml
var builtin embed.FS

// Level is one precedence level of a preset: the operators that belong to
// it, in the order their alternatives should be staged, and the
// associativity they share.
type Level struct {
	Associativity string   `toml:"associativity"`
	Operators     []string `toml:"operators"`
}

// Table is a named precedence preset: tightest level first, loosest last,
// matching the order grammar.PrecedencedRuleBuilder.LowerPrecedence expects.
type Table struct {
	Name   string  `toml:"name"`
	Levels []Level `toml:"level"`
}

// Load reads a named builtin preset (e.g. "arithmetic") from the embedded
// data directory. It does not parse or check grammar text.
func Load(name string) (Table, error) {
	fileData, err := builtin.ReadFile("data/" + name + ".toml")
	if err != nil {
		return Table{}, fmt.Errorf("preset %q: %w", name, err)
	}
	return unmarshalTable(fileData)
}

// LoadFile reads a precedence preset from an external TOML file on disk,
// for callers who want to supply their own operator tables rather than use
// a builtin one.
func LoadFile(path string) (Table, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("%q: reading from disk: %w", path, err)
	}
	t, err := unmarshalTable(fileData)
	if err != nil {
		return Table{}, fmt.Errorf("%q: %w", path, err)
	}
	return t, nil
}

func unmarshalTable(tomlData []byte) (Table, error) {
	var t Table
	if tomlErr := toml.Unmarshal(tomlData, &t); tomlErr != nil {
		return t, tomlErr
	}
	if t.Name == "" {
		return t, fmt.Errorf("table is missing required 'name' key")
	}
	if len(t.Levels) == 0 {
		return t, fmt.Errorf("table %q has no precedence levels", t.Name)
	}
	return t, nil
}

func associativityFromString(s string) (grammar.Associativity, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return grammar.AssocLeft, nil
	case "right":
		return grammar.AssocRight, nil
	case "group":
		return grammar.AssocGroup, nil
	default:
		return 0, fmt.Errorf("unknown associativity %q", s)
	}
}

// Apply finalizes a precedenced rule for lhs using t's levels, where each
// operator in a level becomes one alternative `lhs ::= lhs opSyms[op] operand`
// (a standard binary-operator shape), tightest level first. operand is the
// symbol used as the immediate operand in every alternative (typically the
// tightest user-facing non-terminal below the operator hierarchy, e.g. a
// "primary expression" symbol), and opSyms maps each level's operator names
// to the terminal symbol representing that operator's token in the grammar.
func Apply(g *grammar.Cfg, lhs, operand symbol.Symbol, t Table, opSyms map[string]symbol.Symbol) error {
	b := g.PrecedencedRuleBuilder(lhs)

	// The tightest level needs a non-recursive alternative to bottom out
	// on, the same way the arithmetic chain's g0 level stages a bare
	// Rhs(num) before any operator alternative.
	b.Associativity(grammar.AssocLeft).Rhs(operand)
	b.LowerPrecedence()

	for i, lvl := range t.Levels {
		assoc, err := associativityFromString(lvl.Associativity)
		if err != nil {
			return fmt.Errorf("preset %q level %d: %w", t.Name, i, err)
		}
		b.Associativity(assoc)
		for _, opName := range lvl.Operators {
			opSym, ok := opSyms[opName]
			if !ok {
				return fmt.Errorf("preset %q: no symbol supplied for operator %q", t.Name, opName)
			}
			b.Rhs(lhs, opSym, operand)
		}
		if i < len(t.Levels)-1 {
			b.LowerPrecedence()
		}
	}
	b.Finalize()
	return nil
}
