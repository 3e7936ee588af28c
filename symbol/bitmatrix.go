package symbol

// BitMatrix is a square n x n bit matrix indexed by Symbol in both
// dimensions, used for the direct-derivation, reachability, and
// unit-derivation relations. Each row is a BitSet, so row access is O(1)
// and reflexive/transitive closure runs in place via the standard
// Warshall algorithm.
type BitMatrix struct {
	n    int
	rows []*BitSet
}

// NewBitMatrix returns an n x n matrix with every cell clear.
func NewBitMatrix(n int) *BitMatrix {
	m := &BitMatrix{n: n, rows: make([]*BitSet, n)}
	for i := range m.rows {
		m.rows[i] = NewBitSet(n)
	}
	return m
}

// Len returns n.
func (m *BitMatrix) Len() int {
	return m.n
}

// Set marks (i, j) as present, meaning i directly relates to j.
func (m *BitMatrix) Set(i, j Symbol) {
	m.rows[i].Set(j)
}

// Has reports whether (i, j) is present.
func (m *BitMatrix) Has(i, j Symbol) bool {
	return m.rows[i].Has(j)
}

// Row returns the live BitSet backing row i; mutating it mutates the
// matrix.
func (m *BitMatrix) Row(i Symbol) *BitSet {
	return m.rows[i]
}

// Column returns a fresh BitSet containing every i such that (i, j) is set.
func (m *BitMatrix) Column(j Symbol) *BitSet {
	col := NewBitSet(m.n)
	for i := 0; i < m.n; i++ {
		if m.rows[i].Has(Symbol(j)) {
			col.Set(Symbol(i))
		}
	}
	return col
}

// Copy returns an independent duplicate of m.
func (m *BitMatrix) Copy() *BitMatrix {
	nm := NewBitMatrix(m.n)
	for i := range m.rows {
		nm.rows[i] = m.rows[i].Copy()
	}
	return nm
}

// ReflexiveClosure sets the diagonal (i, i) for every i, in place.
func (m *BitMatrix) ReflexiveClosure() {
	for i := 0; i < m.n; i++ {
		m.rows[i].Set(Symbol(i))
	}
}

// TransitiveClosure computes the transitive closure in place via Warshall's
// algorithm: for each k, for each i with (i, k) set, row(i) |= row(k).
func (m *BitMatrix) TransitiveClosure() {
	for k := 0; k < m.n; k++ {
		kRow := m.rows[k]
		for i := 0; i < m.n; i++ {
			if m.rows[i].Has(Symbol(k)) {
				m.rows[i].Union(kRow)
			}
		}
	}
}

// TransitiveReflexiveClosure computes closure of both kinds; it is the
// operation the reachability matrix is built from (spec.md section 4.4).
func (m *BitMatrix) TransitiveReflexiveClosure() {
	m.TransitiveClosure()
	m.ReflexiveClosure()
}
