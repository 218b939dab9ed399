// SPDX-License-Identifier: MIT

package packing

import "github.com/katalvlaran/packcolor/distance"

// FirstFit colors vertices in table order, giving each the smallest color i
// not used by an already colored vertex within distance i.
// The result is a valid packing coloring with colors in [1, tab.Len()];
// it is an upper bound on the optimum, not the optimum itself.
//
// Complexity: O(n²·c) where c is the largest color assigned.
func FirstFit(tab *distance.Table) map[string]int {
	if tab == nil {
		return map[string]int{}
	}
	n := tab.Len()
	ids := tab.Vertices()
	color := make([]int, n)
	out := make(map[string]int, n)

	for v := 0; v < n; v++ {
		for c := 1; ; c++ {
			if fitsColor(tab, color, v, c) {
				color[v] = c
				out[ids[v]] = c
				break
			}
		}
	}

	return out
}

// fitsColor reports whether vertex v may take color c given colors of vertices [0, v).
func fitsColor(tab *distance.Table, color []int, v, c int) bool {
	for u := 0; u < v; u++ {
		if color[u] != c {
			continue
		}
		if d := tab.At(u, v); d != distance.Unreachable && d <= c {
			return false
		}
	}

	return true
}
