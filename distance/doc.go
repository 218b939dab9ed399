// Package distance is the distance oracle of the packing solver: it computes
// all-pairs shortest-path hop counts over an undirected core.Graph.
// Edge weights are ignored; every edge is one hop.
//
// The resulting Table is symmetric, has zeros on the diagonal, marks pairs in
// different components as Unreachable and is immutable once returned.
// Table.Pairs(i) enumerates exactly the vertex pairs that may not share
// color i in a packing coloring.
package distance
