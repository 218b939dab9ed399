package packing_test

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/packcolor/builder"
	"github.com/katalvlaran/packcolor/distance"
	"github.com/katalvlaran/packcolor/packing"
)

// ExampleSolve colors the path A–B–C: the ends share color 1 (distance 2 > 1),
// the middle vertex needs color 2.
func ExampleSolve() {
	g, _ := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSymbolIDs()}, builder.Path(3))

	c, err := packing.Solve(g)
	if err != nil || c == nil {
		fmt.Println("no coloring")
		return
	}
	ids := make([]string, 0, len(c.Colors))
	for id := range c.Colors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s=%d", id, c.Colors[id])
	}
	fmt.Println(strings.Join(parts, " "))
	fmt.Println("max:", c.Max)
	// Output:
	// A=1 B=2 C=1
	// max: 2
}

// ExampleFirstFit shows the greedy start on the 5-cycle, which happens to be optimal there.
func ExampleFirstFit() {
	g, _ := builder.BuildGraph(nil, nil, builder.Cycle(5))
	tab, _ := distance.AllPairs(g)

	colors := packing.FirstFit(tab)
	seq := make([]int, 0, tab.Len())
	for _, id := range tab.Vertices() {
		seq = append(seq, colors[id])
	}
	fmt.Println(seq)
	fmt.Println("valid:", packing.Verify(g, colors) == nil)
	// Output:
	// [1 2 1 3 4]
	// valid: true
}
