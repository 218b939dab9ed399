package packing_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/packcolor/builder"
	"github.com/katalvlaran/packcolor/core"
	"github.com/katalvlaran/packcolor/distance"
	"github.com/katalvlaran/packcolor/milp"
	"github.com/katalvlaran/packcolor/packing"
)

func mustTable(t testing.TB, g *core.Graph) *distance.Table {
	t.Helper()
	tab, err := distance.AllPairs(g)
	require.NoError(t, err)

	return tab
}

func TestBuild_Path3(t *testing.T) {
	f, err := packing.Build(mustTable(t, mustGraph(t, builder.Path(3))))
	require.NoError(t, err)

	assert.Equal(t, 3, f.K)
	assert.Equal(t, []string{"0", "1", "2"}, f.Vertices)
	assert.Equal(t, 10, f.Model.NumVars())
	// 3 OneColor + (2 + 3 + 3) Pack + 9 MaxColor
	assert.Equal(t, 8, f.PackRows)
	assert.Equal(t, 20, f.Model.NumConstraints())
	assert.Equal(t, milp.Minimize, f.Model.Direction())
	assert.Equal(t, "PackingColoring", f.Model.Name())

	assert.Equal(t, "x_1_2", f.Model.VarName(f.X[1][1]))
	assert.Equal(t, "z", f.Model.VarName(f.Z))
	assert.Equal(t, milp.Integer, f.Model.VarKind(f.Z))
	lo, hi := f.Model.Bounds(f.Z)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 3.0, hi)
	assert.Equal(t, 1.0, f.Model.ObjectiveCoef(f.Z))
	assert.Equal(t, 0.0, f.Model.ObjectiveCoef(f.X[0][0]))

	rows := f.Model.Constraints()
	names := make([]string, 0, 7)
	for _, r := range rows[:7] {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"OneColor_0", "OneColor_1", "OneColor_2",
		"Pack_0_1_color_1", "Pack_1_2_color_1",
		"Pack_0_1_color_2", "Pack_0_2_color_2",
	}, names)
	assert.Equal(t, milp.EQ, rows[0].Sense)
	assert.Len(t, rows[0].Terms, 3)

	last := rows[len(rows)-1]
	assert.Equal(t, "MaxColor_2_3", last.Name)
	assert.Equal(t, milp.LE, last.Sense)
	assert.Equal(t, []milp.Term{milp.T(f.X[2][2], 3), milp.T(f.Z, -1)}, last.Terms)
}

func TestBuild_UnreachablePairsUnconstrained(t *testing.T) {
	f, err := packing.Build(mustTable(t, mustGraph(t, builder.Empty(3))))
	require.NoError(t, err)
	assert.Equal(t, 0, f.PackRows)
	assert.Equal(t, 3+9, f.Model.NumConstraints())
}

func TestBuild_CompleteWorstCase(t *testing.T) {
	// every pair at distance 1 is constrained for every color: k·n(n−1)/2
	f, err := packing.Build(mustTable(t, mustGraph(t, builder.Complete(4))))
	require.NoError(t, err)
	assert.Equal(t, 4*6, f.PackRows)
}

func TestBuild_Errors(t *testing.T) {
	_, err := packing.Build(nil)
	assert.ErrorIs(t, err, packing.ErrTableNil)

	_, err = packing.Build(mustTable(t, core.NewGraph()))
	assert.ErrorIs(t, err, packing.ErrEmptyGraph)

	b := packing.NewBuilder(mustTable(t, mustGraph(t, builder.Path(2))))
	_, err = b.Build()
	require.NoError(t, err)
	_, err = b.Build()
	assert.ErrorIs(t, err, packing.ErrFinalized)
}

func TestFormulation_SetStart(t *testing.T) {
	f, err := packing.Build(mustTable(t, mustGraph(t, builder.Path(3))))
	require.NoError(t, err)

	f.SetStart(map[string]int{"0": 1, "1": 2, "2": 1})
	vals, full := f.Model.Start()
	require.True(t, full)
	assert.Equal(t, []float64{1, 0, 0, 0, 1, 0, 1, 0, 0, 2}, vals)
	obj, ok := f.Model.Evaluate(vals, 1e-9)
	assert.True(t, ok)
	assert.Equal(t, 2.0, obj)

	f.SetStart(map[string]int{"0": 1, "1": 2})
	_, full = f.Model.Start()
	assert.False(t, full, "incomplete colors clear the start")

	f.SetStart(map[string]int{"0": 1, "1": 2, "2": 4})
	_, full = f.Model.Start()
	assert.False(t, full, "colors above K clear the start")
}

func TestFormulation_WriteLP(t *testing.T) {
	f, err := packing.Build(mustTable(t, mustGraph(t, builder.Grid(1, 2))))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Model.WriteLP(&buf))
	out := buf.String()
	assert.Contains(t, out, "Minimize\nOBJ: z\n")
	assert.Contains(t, out, "OneColor_0_0: x_0_0_1 + x_0_0_2 = 1\n")
	assert.Contains(t, out, "Pack_0_0_0_1_color_1: x_0_0_1 + x_0_1_1 <= 1\n")
	assert.Contains(t, out, "MaxColor_0_1_2: 2 x_0_1_2 - z <= 0\n")
	assert.Contains(t, out, "Generals\nz\n")
}

func TestFirstFit(t *testing.T) {
	g := mustGraph(t, builder.Path(4))
	colors := packing.FirstFit(mustTable(t, g))
	assert.Equal(t, map[string]int{"0": 1, "1": 2, "2": 1, "3": 3}, colors)
	assert.NoError(t, packing.Verify(g, colors))

	for _, tc := range scenarios {
		g := mustGraph(t, tc.cons)
		colors := packing.FirstFit(mustTable(t, g))
		assert.NoError(t, packing.Verify(g, colors), tc.name)
		assert.LessOrEqual(t, packing.MaxColor(colors), g.VertexCount(), tc.name)
		assert.GreaterOrEqual(t, packing.MaxColor(colors), tc.want, tc.name)
	}

	assert.Empty(t, packing.FirstFit(nil))
}

func TestVerify(t *testing.T) {
	g := mustGraph(t, builder.Path(3))
	assert.NoError(t, packing.Verify(g, map[string]int{"0": 1, "1": 2, "2": 1}))
	assert.NoError(t, packing.Verify(g, map[string]int{"0": 3, "1": 2, "2": 1}))

	for name, colors := range map[string]map[string]int{
		"conflict":  {"0": 1, "1": 1, "2": 2},
		"distance2": {"0": 2, "1": 1, "2": 2},
		"missing":   {"0": 1, "1": 2},
		"zero":      {"0": 1, "1": 0, "2": 1},
		"unknown":   {"0": 1, "1": 2, "2": 1, "9": 1},
	} {
		assert.ErrorIs(t, packing.Verify(g, colors), packing.ErrInvalidColoring, name)
	}
	assert.ErrorIs(t, packing.Verify(nil, nil), packing.ErrGraphNil)
	assert.Equal(t, 0, packing.MaxColor(nil))
}
