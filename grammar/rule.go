// Package grammar implements the Cfg container: a symbol source, a history
// graph, a rule vector, a set of root symbols, and the builders used to
// populate them. It is grounded on internal/tunascript/grammar.go's
// Rule/Grammar/AddRule/ReplaceProduction shape from the teacher repo,
// generalized from named string symbols to the dense symbol.Symbol space
// and with every rule carrying a history.ID instead of no provenance at
// all.
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gocfg/history"
	"github.com/dekarrin/gocfg/symbol"
)

// Rule is a single production (lhs, rhs, history). Rhs may be empty (a
// nulling rule) or of any length subject to the owning Cfg's current
// max-RHS-length invariant.
type Rule struct {
	Lhs     symbol.Symbol
	Rhs     []symbol.Symbol
	History history.ID
}

// IsNulling reports whether the rule has an empty RHS.
func (r Rule) IsNulling() bool {
	return len(r.Rhs) == 0
}

// IsUnit reports whether the rule is a single-symbol unit production
// A ::= B (B a non-terminal is not checked here; that requires the owning
// Cfg's symbol classification).
func (r Rule) IsUnit() bool {
	return len(r.Rhs) == 1
}

// Copy returns an independent duplicate of r (Rhs is deep-copied).
func (r Rule) Copy() Rule {
	rhs := make([]symbol.Symbol, len(r.Rhs))
	copy(rhs, r.Rhs)
	return Rule{Lhs: r.Lhs, Rhs: rhs, History: r.History}
}

// String renders the rule using bare symbol identifiers, e.g. "#0 ::= #1 #2".
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteString(r.Lhs.String())
	sb.WriteString(" ::=")
	if len(r.Rhs) == 0 {
		sb.WriteString(" ε")
	}
	for _, s := range r.Rhs {
		sb.WriteByte(' ')
		sb.WriteString(s.String())
	}
	return sb.String()
}

func (r Rule) equalProduction(rhs []symbol.Symbol) bool {
	if len(r.Rhs) != len(rhs) {
		return false
	}
	for i := range rhs {
		if r.Rhs[i] != rhs[i] {
			return false
		}
	}
	return true
}

func rhsString(rhs []symbol.Symbol) string {
	parts := make([]string, len(rhs))
	for i, s := range rhs {
		parts[i] = s.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, " "))
}
