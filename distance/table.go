// SPDX-License-Identifier: MIT
//
// File: table.go
// Role: Immutable all-pairs hop-distance table and its read-only accessors.
// Layout:
//   - Dense row-major buffer d[i*n+j] over the sorted vertex order.
//   - Unreachable (-1) marks pairs with no finite distance.

package distance

// Unreachable marks a pair of vertices that are in different components.
const Unreachable = -1

// Table holds shortest-path hop counts between every pair of vertices.
// It is built once by AllPairs and never mutated afterwards, so it is safe
// for concurrent readers.
type Table struct {
	ids   []string
	index map[string]int
	d     []int
}

// Pair is an unordered pair of distinct vertices with a finite distance.
// I < J are indices into Table.Vertices().
type Pair struct {
	U, V     string
	I, J     int
	Distance int
}

// Len returns the number of vertices covered by the table.
func (t *Table) Len() int { return len(t.ids) }

// Vertices returns the vertex IDs in table order (lexicographic). The slice is a copy.
func (t *Table) Vertices() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)

	return out
}

// Index returns the table index of id.
func (t *Table) Index(id string) (int, bool) {
	i, ok := t.index[id]

	return i, ok
}

// At returns the hop distance between the i-th and j-th vertex, or Unreachable.
// Panics on out-of-range indices, like slice indexing.
func (t *Table) At(i, j int) int { return t.d[i*len(t.ids)+j] }

// Distance returns the hop distance between u and v.
// ok is false when either vertex is unknown or no path exists.
func (t *Table) Distance(u, v string) (int, bool) {
	i, okU := t.index[u]
	j, okV := t.index[v]
	if !okU || !okV {
		return 0, false
	}
	d := t.At(i, j)
	if d == Unreachable {
		return 0, false
	}

	return d, true
}

// Diameter returns the largest finite distance in the table
// (0 for empty, single-vertex and edgeless graphs).
func (t *Table) Diameter() int {
	var best int
	for _, d := range t.d {
		if d > best {
			best = d
		}
	}

	return best
}

// Pairs lists every unordered pair (I < J) whose finite distance is at most maxDist,
// ordered by (I, J). A negative maxDist lists all finite pairs.
//
// Complexity: O(n²).
func (t *Table) Pairs(maxDist int) []Pair {
	n := len(t.ids)
	var out []Pair
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := t.At(i, j)
			if d == Unreachable || (maxDist >= 0 && d > maxDist) {
				continue
			}
			out = append(out, Pair{U: t.ids[i], V: t.ids[j], I: i, J: j, Distance: d})
		}
	}

	return out
}
