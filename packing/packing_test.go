package packing_test

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/packcolor/builder"
	"github.com/katalvlaran/packcolor/core"
	"github.com/katalvlaran/packcolor/distance"
	"github.com/katalvlaran/packcolor/milp"
	"github.com/katalvlaran/packcolor/packing"
)

func mustGraph(t testing.TB, cons ...builder.Constructor) *core.Graph {
	t.Helper()
	g, err := builder.BuildGraph(nil, nil, cons...)
	require.NoError(t, err)

	return g
}

// known packing chromatic numbers
var scenarios = []struct {
	name string
	cons builder.Constructor
	want int
}{
	{"SingleVertex", builder.Path(1), 1},
	{"TwoIsolated", builder.Empty(2), 1},
	{"Edgeless4", builder.Empty(4), 1},
	{"Path3", builder.Path(3), 2},
	{"Path4", builder.Path(4), 3},
	{"Star4", builder.Star(4), 2},
	{"Cycle4", builder.Cycle(4), 3},
	{"Grid2x2", builder.Grid(2, 2), 3},
	{"Complete4", builder.Complete(4), 4},
	{"Cycle5", builder.Cycle(5), 4},
	{"Path7", builder.Path(7), 3},
	{"Cycle7", builder.Cycle(7), 4},
	{"Cycle8", builder.Cycle(8), 3},
	{"Star7", builder.Star(7), 2},
	{"Grid3x3", builder.Grid(3, 3), 4},
}

func TestSolve_KnownValues(t *testing.T) {
	for _, tc := range scenarios {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGraph(t, tc.cons)
			c, err := packing.Solve(g)
			require.NoError(t, err)
			require.NotNil(t, c)

			assert.Equal(t, tc.want, c.Max)
			assert.Len(t, c.Colors, g.VertexCount())
			assert.Equal(t, c.Max, packing.MaxColor(c.Colors))
			assert.NoError(t, packing.Verify(g, c.Colors))
			assert.Equal(t, milp.StatusOptimal, c.Stats.Status)
			assert.Equal(t, g.VertexCount(), c.Stats.K)
			assert.GreaterOrEqual(t, c.Stats.WarmStart, c.Max)
		})
	}
}

func TestSolve_WithoutWarmStart(t *testing.T) {
	for _, tc := range scenarios[:8] {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGraph(t, tc.cons)
			c, err := packing.Solve(g, packing.WithWarmStart(false))
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, tc.want, c.Max)
			assert.Equal(t, 0, c.Stats.WarmStart)
			assert.NoError(t, packing.Verify(g, c.Colors))
		})
	}
}

func TestSolve_Petersen(t *testing.T) {
	// diameter 2: color 1 takes an independent set of 4, the other six
	// vertices need distinct colors
	g := core.NewGraph()
	for i := 0; i < 5; i++ {
		for _, e := range [][2]int{{i, (i + 1) % 5}, {i, i + 5}, {5 + i, 5 + (i+2)%5}} {
			_, err := g.AddEdge(strconv.Itoa(e[0]), strconv.Itoa(e[1]), 0)
			require.NoError(t, err)
		}
	}
	require.Equal(t, 15, g.EdgeCount())

	c, err := packing.Solve(g)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 7, c.Max)
	assert.NoError(t, packing.Verify(g, c.Colors))
}

func TestSolve_MatchesExhaustiveSearch(t *testing.T) {
	rng := rand.New(rand.NewSource(20261015))
	for trial := 0; trial < 40; trial++ {
		n := 1 + rng.Intn(7)
		g := core.NewGraph()
		for v := 0; v < n; v++ {
			require.NoError(t, g.AddVertex(strconv.Itoa(v)))
		}
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if rng.Float64() < 0.35 {
					_, err := g.AddEdge(strconv.Itoa(u), strconv.Itoa(v), 0)
					require.NoError(t, err)
				}
			}
		}

		want := exhaustivePackingNumber(t, g)
		for _, warm := range []bool{true, false} {
			c, err := packing.Solve(g, packing.WithWarmStart(warm))
			require.NoError(t, err)
			require.NotNil(t, c, "trial %d", trial)
			assert.Equal(t, want, c.Max, "trial %d: n=%d edges=%v warm=%v", trial, n, g.Edges(), warm)
			assert.NoError(t, packing.Verify(g, c.Colors))
		}
	}
}

// exhaustivePackingNumber finds the smallest c admitting a packing coloring
// with colors 1..c by backtracking over vertices in table order.
func exhaustivePackingNumber(t *testing.T, g *core.Graph) int {
	t.Helper()
	tab := mustTable(t, g)
	n := tab.Len()
	colors := make([]int, n)

	var place func(v, c int) bool
	place = func(v, c int) bool {
		if v == n {
			return true
		}
		for col := 1; col <= c; col++ {
			ok := true
			for u := 0; u < v && ok; u++ {
				d := tab.At(u, v)
				ok = colors[u] != col || d == distance.Unreachable || d > col
			}
			if ok {
				colors[v] = col
				if place(v+1, c) {
					return true
				}
			}
		}
		colors[v] = 0

		return false
	}
	for c := 1; ; c++ {
		if place(0, c) {
			return c
		}
	}
}

func TestSolve_WeightedGraphUsesHops(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, err := g.AddEdge("A", "B", 3)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "C", 40)
	require.NoError(t, err)

	c, err := packing.Solve(g)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Max)
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 1}, c.Colors)
}

func TestSolve_BranchAndBoundTimeLimit(t *testing.T) {
	limit := 200 * time.Millisecond
	start := time.Now()
	c, err := packing.Solve(mustGraph(t, builder.Path(6)),
		packing.WithWarmStart(false),
		packing.WithSolver(milp.NewBranchAndBound(milp.WithTimeLimit(limit))))
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Less(t, elapsed, 10*limit)
}

func TestSolve_Path3Assignment(t *testing.T) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSymbolIDs()}, builder.Path(3))
	require.NoError(t, err)

	c, err := packing.Solve(g)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 1}, c.Colors)
}

func TestSolve_Idempotent(t *testing.T) {
	g := mustGraph(t, builder.Path(4))
	first, err := packing.Solve(g)
	require.NoError(t, err)
	second, err := packing.Solve(g)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Max, second.Max)
	assert.Equal(t, first.Colors, second.Colors)
}

func TestSolve_DisconnectedComponents(t *testing.T) {
	g := core.NewGraph()
	for _, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"x", "y"}} {
		_, err := g.AddEdge(e[0], e[1], 0)
		require.NoError(t, err)
	}
	c, err := packing.Solve(g)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 2, c.Max)
	assert.NoError(t, packing.Verify(g, c.Colors))
}

func TestSolve_Errors(t *testing.T) {
	_, err := packing.Solve(nil)
	assert.ErrorIs(t, err, packing.ErrGraphNil)

	_, err = packing.Solve(core.NewGraph(core.WithDirected(true)))
	assert.ErrorIs(t, err, distance.ErrDirectedGraph)

	_, err = packing.Solve(mustGraph(t, builder.Path(2)), packing.WithSolver(nil))
	assert.ErrorIs(t, err, packing.ErrOptionViolation)

	boom := errors.New("boom")
	_, err = packing.Solve(mustGraph(t, builder.Path(2)), packing.WithSolver(stubSolver{err: boom}))
	assert.ErrorIs(t, err, boom)
}

func TestSolve_Absence(t *testing.T) {
	c, err := packing.Solve(core.NewGraph())
	assert.NoError(t, err)
	assert.Nil(t, c, "empty graph")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, err = packing.Solve(mustGraph(t, builder.Path(3)), packing.WithContext(ctx))
	assert.NoError(t, err)
	assert.Nil(t, c, "cancelled")

	for _, st := range []milp.Status{
		milp.StatusInfeasible, milp.StatusUnbounded, milp.StatusNotSolved,
		milp.StatusUndefined, milp.StatusFeasible,
	} {
		c, err = packing.Solve(mustGraph(t, builder.Path(3)),
			packing.WithSolver(stubSolver{sol: &milp.Solution{Status: st, Values: []float64{1, 0, 0, 0, 1, 0, 1, 0, 0, 2}}}))
		assert.NoError(t, err)
		assert.Nil(t, c, st.String())
	}

	// optimal status without a decodable assignment
	c, err = packing.Solve(mustGraph(t, builder.Path(3)),
		packing.WithSolver(stubSolver{sol: &milp.Solution{Status: milp.StatusOptimal}}))
	assert.NoError(t, err)
	assert.Nil(t, c)

	c, err = packing.Solve(mustGraph(t, builder.Path(3)), packing.WithSolver(stubSolver{}))
	assert.NoError(t, err)
	assert.Nil(t, c, "nil solution")
}

func TestSolve_NodeLimitIsAbsence(t *testing.T) {
	g := mustGraph(t, builder.Complete(4))
	for _, warm := range []bool{false, true} {
		c, err := packing.Solve(g,
			packing.WithWarmStart(warm),
			packing.WithSolver(milp.NewBranchAndBound(milp.WithNodeLimit(1))))
		assert.NoError(t, err)
		assert.Nil(t, c)
	}
}

func TestSolve_DecodesFirstColorAboveHalf(t *testing.T) {
	// x_0_*, x_1_*, x_2_*, z; vertex 0 has two colors above 0.5, the lowest wins.
	vals := []float64{0.6, 0, 0.9, 0, 1, 0, 1, 0, 0, 2}
	c, err := packing.Solve(mustGraph(t, builder.Path(3)),
		packing.WithWarmStart(false),
		packing.WithSolver(stubSolver{sol: &milp.Solution{Status: milp.StatusOptimal, Values: vals}}))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, map[string]int{"0": 1, "1": 2, "2": 1}, c.Colors)
	assert.Equal(t, 2, c.Max)
}

func TestSolve_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	c, err := packing.Solve(mustGraph(t, builder.Path(3)), packing.WithLogger(logger))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Contains(t, buf.String(), "formulation built")
	assert.Contains(t, buf.String(), "packing coloring solved")
	assert.Contains(t, buf.String(), "sat solve finished")
}

type stubSolver struct {
	sol *milp.Solution
	err error
}

func (s stubSolver) Solve(context.Context, *milp.Model) (*milp.Solution, error) { return s.sol, s.err }
