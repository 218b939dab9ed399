package milp_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/packcolor/milp"
)

func TestWriteLP(t *testing.T) {
	m := milp.NewModel("Demo", milp.Minimize)
	x := m.AddBinary("x_a,b")
	z := m.AddInteger("z", 1, 3)
	w := m.AddContinuous("w", 0, 2.5)
	m.AddConstraint("Max-1", []milp.Term{milp.T(x, 2), milp.T(z, -1)}, milp.LE, 0)
	m.AddConstraint("Sum", []milp.Term{milp.T(x, 1), milp.T(w, 1)}, milp.GE, 1)
	m.SetObjective(milp.T(z, 1))

	var buf bytes.Buffer
	require.NoError(t, m.WriteLP(&buf))
	want := "\\* Demo *\\\n" +
		"Minimize\n" +
		"OBJ: z\n" +
		"Subject To\n" +
		"Max_1: 2 x_a_b - z <= 0\n" +
		"Sum: x_a_b + w >= 1\n" +
		"Bounds\n" +
		" 1 <= z <= 3\n" +
		" 0 <= w <= 2.5\n" +
		"Generals\n" +
		"z\n" +
		"Binaries\n" +
		"x_a_b\n" +
		"End\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteLP_EmptyObjective(t *testing.T) {
	m := milp.NewModel("feas", milp.Maximize)
	m.AddBinary("x")

	var buf bytes.Buffer
	require.NoError(t, m.WriteLP(&buf))
	assert.Contains(t, buf.String(), "Maximize\nOBJ: 0 x\n")
}

func TestWriteLP_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, milp.NewModel("e", milp.Minimize).WriteLP(&buf), milp.ErrEmptyModel)

	m, _ := knapsack()
	assert.Error(t, m.WriteLP(failWriter{}))
}

func TestWriteLP_SanitizedNameCollision(t *testing.T) {
	m := milp.NewModel("clash", milp.Minimize)
	a := m.AddBinary("x_a-b")
	b := m.AddBinary("x_a_b")
	m.AddConstraint("c", []milp.Term{milp.T(a, 1), milp.T(b, 1)}, milp.LE, 1)
	require.NoError(t, m.Validate())

	var buf bytes.Buffer
	err := m.WriteLP(&buf)
	assert.ErrorIs(t, err, milp.ErrDuplicateName)
	assert.Empty(t, buf.String())

	m = milp.NewModel("rows", milp.Minimize)
	x := m.AddBinary("x")
	m.AddConstraint("Pack_a-b", []milp.Term{milp.T(x, 1)}, milp.LE, 1)
	m.AddConstraint("Pack_a_b", []milp.Term{milp.T(x, 1)}, milp.LE, 1)
	assert.ErrorIs(t, m.WriteLP(&buf), milp.ErrDuplicateName)

	m = milp.NewModel("obj", milp.Minimize)
	x = m.AddBinary("x")
	m.AddConstraint("OBJ", []milp.Term{milp.T(x, 1)}, milp.LE, 1)
	assert.ErrorIs(t, m.WriteLP(&buf), milp.ErrDuplicateName)
}

func TestLPName(t *testing.T) {
	assert.Equal(t, "_", milp.LPName(""))
	assert.Equal(t, "x_0_1__2", milp.LPName("x_0,1_[2"))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("boom") }
