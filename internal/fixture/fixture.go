// Package fixture gives parallel tests a collision-free label for a
// generated grammar, the way the teacher's server/tunas package uses uuid
// for session identifiers.
package fixture

import "github.com/google/uuid"

// Label returns a fresh, human-readable tag suitable for naming a fixture
// grammar built inside a t.Parallel() test, so failure output from two
// concurrently running cases is never ambiguous about which fixture it
// came from.
func Label(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
