package symbol

// None is the sentinel used in Mapping.ToInternal to mean "this external
// symbol has no corresponding internal symbol" (it was dropped by a remap).
// It is the maximum representable Symbol, which can never legitimately be
// allocated before it triggers the Source overflow panic.
const None Symbol = ^Symbol(0)

// Mapping records how a remap renumbered a symbol space. ToInternal is
// indexed by the pre-remap ("external") symbol and gives the post-remap
// ("internal") symbol it now corresponds to, or None if that symbol was
// dropped. ToExternal is indexed by the post-remap symbol and gives back
// its pre-remap identity, so that ToExternal[ToInternal[s]] == s for every
// live symbol s (spec.md section 4.1).
type Mapping struct {
	ToInternal []Symbol
	ToExternal []Symbol
}

// NewIdentityMapping returns the mapping that renumbers nothing.
func NewIdentityMapping(n int) Mapping {
	m := Mapping{
		ToInternal: make([]Symbol, n),
		ToExternal: make([]Symbol, n),
	}
	for i := 0; i < n; i++ {
		m.ToInternal[i] = Symbol(i)
		m.ToExternal[i] = Symbol(i)
	}
	return m
}

// Internal translates an external (pre-remap) symbol to its current
// internal symbol. ok is false if the symbol was dropped.
func (m Mapping) Internal(external Symbol) (internal Symbol, ok bool) {
	if int(external) >= len(m.ToInternal) {
		return None, false
	}
	i := m.ToInternal[external]
	return i, i != None
}

// External translates an internal (post-remap) symbol back to the external
// symbol it was before any remap was ever applied.
func (m Mapping) External(internal Symbol) Symbol {
	return m.ToExternal[internal]
}

// NumInternal returns the size of the post-remap symbol space.
func (m Mapping) NumInternal() int {
	return len(m.ToExternal)
}

// Compose returns the mapping equivalent to applying m and then next:
// composed.Internal(e) == next.Internal(m.Internal(e)) for every symbol e
// that was external to m's own, original space. This is how Remap chains a
// remove_unused_symbols pass followed by a reorder_symbols pass into one
// mapping from the grammar's original symbol space to its final one.
func (m Mapping) Compose(next Mapping) Mapping {
	composed := Mapping{
		ToInternal: make([]Symbol, len(m.ToInternal)),
		ToExternal: make([]Symbol, next.NumInternal()),
	}

	for e, mid := range m.ToInternal {
		if mid == None {
			composed.ToInternal[e] = None
			continue
		}
		final, ok := next.Internal(mid)
		if !ok {
			composed.ToInternal[e] = None
			continue
		}
		composed.ToInternal[e] = final
		composed.ToExternal[final] = Symbol(e)
	}

	return composed
}
