// Package history implements the append-only provenance graph every rule in
// a grammar carries a handle into. It is the arena-and-indices answer to
// the cyclic-object-graph problem described in spec.md section 9: a
// rewrite that needs to point a new rule's history back at the rule it was
// derived from, and vice versa, does so with a stable integer ID into this
// graph rather than an owning reference.
package history

import "github.com/dekarrin/gocfg/symbol"

// ID is a 1-based handle into a Graph. The zero value, None, means "no
// history" and is always safe to hold even before any node exists, the way
// a native null-pointer-optimized Option would be in the source language.
type ID uint32

// None is the "no handle" sentinel.
const None ID = 0

// RootKind distinguishes the three flavors of root history node.
type RootKind int

const (
	// NoOp marks a rule with no recorded provenance at all.
	NoOp RootKind = iota
	// RuleRoot marks a rule that was added directly by a client, recording
	// only its left-hand side.
	RuleRoot
	// OriginRoot marks a rule that came from an external collaborator (a
	// loader), recording the index that collaborator used for it.
	OriginRoot
)

// Which distinguishes which factor(s) of a binarized two-symbol rule were
// nullable when EliminateNulling split it off.
type Which int

const (
	WhichNone Which = iota
	WhichLeft
	WhichRight
	WhichAll
)

// LinkKind distinguishes the six payloads a Linked node may carry.
type LinkKind int

const (
	Binarize LinkKind = iota
	EliminateNulling
	AssignPrecedence
	RewriteSequence
	SequenceRhs
	Weight
)

// Node is a single entry in the graph: either a Root (IsRoot true) or a
// Linked node pointing at Prev. The payload fields are a union in spirit;
// only the ones relevant to RootKind/LinkKind are meaningful for any given
// node, matching the source's enum-of-structs shape collapsed into one Go
// struct since Go has no tagged unions.
type Node struct {
	IsRoot bool

	// Root payload.
	RootKind RootKind
	Lhs      symbol.Symbol // RuleRoot
	Origin   uint32        // OriginRoot

	// Linked payload.
	Prev ID
	Kind LinkKind

	Depth   int           // Binarize
	FullLen int           // Binarize
	IsTop   bool          // Binarize
	Rhs0    symbol.Symbol // EliminateNulling
	Rhs1    symbol.Symbol // EliminateNulling
	Which   Which         // EliminateNulling

	Looseness int // AssignPrecedence

	Top bool          // RewriteSequence
	Rhs symbol.Symbol // RewriteSequence
	Sep symbol.Symbol // RewriteSequence
	HasSep bool       // RewriteSequence: whether Sep is meaningful

	SeqRhs [3]symbol.Symbol // SequenceRhs

	Weight float64 // Weight
}

// Graph is an append-only arena of history Nodes.
type Graph struct {
	nodes []Node
}

// NewGraph returns an empty history graph.
func NewGraph() *Graph {
	return &Graph{}
}

// Len returns the number of nodes recorded so far.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Get returns the node at id. Panics if id is None or out of range, since
// dereferencing an invalid handle is a programmer error.
func (g *Graph) Get(id ID) Node {
	if id == None || int(id) > len(g.nodes) {
		panic("history: invalid handle")
	}
	return g.nodes[id-1]
}

// Valid reports whether id references an existing node (None is not
// valid).
func (g *Graph) Valid(id ID) bool {
	return id != None && int(id) <= len(g.nodes)
}

func (g *Graph) append(n Node) ID {
	g.nodes = append(g.nodes, n)
	return ID(len(g.nodes))
}

// NewNoOp records a rule with no provenance.
func (g *Graph) NewNoOp() ID {
	return g.append(Node{IsRoot: true, RootKind: NoOp})
}

// NewRuleRoot records a rule added directly for the given left-hand side.
func (g *Graph) NewRuleRoot(lhs symbol.Symbol) ID {
	return g.append(Node{IsRoot: true, RootKind: RuleRoot, Lhs: lhs})
}

// NewOriginRoot records a rule that originated at external index origin.
func (g *Graph) NewOriginRoot(origin uint32) ID {
	return g.append(Node{IsRoot: true, RootKind: OriginRoot, Origin: origin})
}

// LinkBinarize records that a rule was emitted by right-factoring a longer
// rule whose history is prev.
func (g *Graph) LinkBinarize(prev ID, depth, fullLen int, isTop bool) ID {
	return g.append(Node{Prev: prev, Kind: Binarize, Depth: depth, FullLen: fullLen, IsTop: isTop})
}

// LinkEliminateNulling records that a rule was emitted by dropping a
// nullable factor from a binarized rule whose history is prev.
func (g *Graph) LinkEliminateNulling(prev ID, rhs0, rhs1 symbol.Symbol, which Which) ID {
	return g.append(Node{Prev: prev, Kind: EliminateNulling, Rhs0: rhs0, Rhs1: rhs1, Which: which})
}

// LinkAssignPrecedence records that an alternative was emitted at the given
// looseness level by precedence lowering.
func (g *Graph) LinkAssignPrecedence(prev ID, looseness int) ID {
	return g.append(Node{Prev: prev, Kind: AssignPrecedence, Looseness: looseness})
}

// LinkRewriteSequence records the top-level history for a rule emitted by
// sequence expansion. hasSep is false for the Null separator mode.
func (g *Graph) LinkRewriteSequence(prev ID, top bool, rhs symbol.Symbol, sep symbol.Symbol, hasSep bool) ID {
	return g.append(Node{Prev: prev, Kind: RewriteSequence, Top: top, Rhs: rhs, Sep: sep, HasSep: hasSep})
}

// LinkSequenceRhs records which element/separator slots a generated
// sequence rule's RHS symbols came from.
func (g *Graph) LinkSequenceRhs(prev ID, slots [3]symbol.Symbol) ID {
	return g.append(Node{Prev: prev, Kind: SequenceRhs, SeqRhs: slots})
}

// LinkWeight records a weight annotation on a rule's history chain.
func (g *Graph) LinkWeight(prev ID, weight float64) ID {
	return g.append(Node{Prev: prev, Kind: Weight, Weight: weight})
}

// Chain returns the full history chain for id, from id itself back to its
// root, inclusive. It is how a recognizer built over a rewritten grammar
// reconstructs a rule's provenance.
func (g *Graph) Chain(id ID) []Node {
	var chain []Node
	cur := id
	for {
		n := g.Get(cur)
		chain = append(chain, n)
		if n.IsRoot {
			break
		}
		cur = n.Prev
	}
	return chain
}
