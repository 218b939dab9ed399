package packing_test

import (
	"testing"

	"github.com/katalvlaran/packcolor/builder"
	"github.com/katalvlaran/packcolor/distance"
	"github.com/katalvlaran/packcolor/milp"
	"github.com/katalvlaran/packcolor/packing"
)

func BenchmarkSolve_Cycle7(b *testing.B) {
	g := mustGraph(b, builder.Cycle(7))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := packing.Solve(g); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolve_Grid2x3BranchAndBound(b *testing.B) {
	g := mustGraph(b, builder.Grid(2, 3))
	for i := 0; i < b.N; i++ {
		if _, err := packing.Solve(g, packing.WithSolver(milp.NewBranchAndBound())); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuild_Grid4x4(b *testing.B) {
	g := mustGraph(b, builder.Grid(4, 4))
	tab, err := distance.AllPairs(g)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := packing.Build(tab); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFirstFit_Grid8x8(b *testing.B) {
	g := mustGraph(b, builder.Grid(8, 8))
	tab, err := distance.AllPairs(g)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = packing.FirstFit(tab)
	}
}
