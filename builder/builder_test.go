package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/packcolor/builder"
	"github.com/katalvlaran/packcolor/core"
)

func TestBuildGraph_Topologies(t *testing.T) {
	tests := []struct {
		name     string
		cons     builder.Constructor
		vertices int
		edges    int
	}{
		{"Path1", builder.Path(1), 1, 0},
		{"Path4", builder.Path(4), 4, 3},
		{"Cycle5", builder.Cycle(5), 5, 5},
		{"Complete4", builder.Complete(4), 4, 6},
		{"Star4", builder.Star(4), 4, 3},
		{"Empty3", builder.Empty(3), 3, 0},
		{"Grid2x3", builder.Grid(2, 3), 6, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := builder.BuildGraph(nil, nil, tc.cons)
			require.NoError(t, err)
			assert.Equal(t, tc.vertices, g.VertexCount())
			assert.Equal(t, tc.edges, g.EdgeCount())
		})
	}
}

func TestBuildGraph_TooFewVertices(t *testing.T) {
	for _, cons := range []builder.Constructor{
		builder.Path(0), builder.Cycle(2), builder.Complete(0),
		builder.Star(1), builder.Empty(0), builder.Grid(0, 3),
	} {
		_, err := builder.BuildGraph(nil, nil, cons)
		assert.ErrorIs(t, err, builder.ErrTooFewVertices)
	}
}

func TestBuildGraph_NilConstructor(t *testing.T) {
	_, err := builder.BuildGraph(nil, nil, builder.Path(2), nil)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)
}

func TestBuildGraph_IDSchemes(t *testing.T) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSymbolIDs()}, builder.Path(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, g.Vertices())
	assert.True(t, g.HasEdge("A", "B"))
	assert.False(t, g.HasEdge("A", "C"))

	g, err = builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSymbNumb("v")}, builder.Star(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v2", "v3"}, g.Vertices())
	assert.True(t, g.HasEdge("v1", "v3"))

	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.SymbolIDFn(26) })
}

func TestBuildGraph_GridIDs(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Grid(2, 2))
	require.NoError(t, err)
	assert.True(t, g.HasEdge(builder.GridID(0, 0), builder.GridID(0, 1)))
	assert.True(t, g.HasEdge(builder.GridID(0, 0), builder.GridID(1, 0)))
	assert.False(t, g.HasEdge(builder.GridID(0, 0), builder.GridID(1, 1)))
}

func TestFromGonum(t *testing.T) {
	src := simple.NewUndirectedGraph()
	src.AddNode(simple.Node(3))
	src.SetEdge(src.NewEdge(simple.Node(0), simple.Node(1)))
	src.SetEdge(src.NewEdge(simple.Node(1), simple.Node(2)))

	g, err := builder.BuildGraph(nil, nil, builder.FromGonum(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "1", "2", "3"}, g.Vertices())
	assert.Equal(t, 2, g.EdgeCount())
	assert.True(t, g.HasEdge("2", "1"))

	_, err = builder.BuildGraph(nil, nil, builder.FromGonum(nil))
	assert.ErrorIs(t, err, builder.ErrConstructFailed)
}

func TestFromGonum_DirectedCollapses(t *testing.T) {
	src := simple.NewDirectedGraph()
	src.SetEdge(src.NewEdge(simple.Node(2), simple.Node(0)))
	src.SetEdge(src.NewEdge(simple.Node(0), simple.Node(2)))

	g, err := builder.BuildGraph([]core.GraphOption{}, nil, builder.FromGonum(src))
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())
	assert.True(t, g.HasEdge("0", "2"))
}
