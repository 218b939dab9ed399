package milp_test

import (
	"context"
	"fmt"
	"os"

	"github.com/katalvlaran/packcolor/milp"
)

// ExampleBranchAndBound solves a three-item knapsack: capacity 4, weights
// (3,2,2), values (5,4,3). Taking b and c beats taking a alone.
func ExampleBranchAndBound() {
	m := milp.NewModel("knapsack", milp.Maximize)
	a, b, c := m.AddBinary("a"), m.AddBinary("b"), m.AddBinary("c")
	m.AddConstraint("cap", []milp.Term{milp.T(a, 3), milp.T(b, 2), milp.T(c, 2)}, milp.LE, 4)
	m.SetObjective(milp.T(a, 5), milp.T(b, 4), milp.T(c, 3))

	sol, err := milp.NewBranchAndBound().Solve(context.Background(), m)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(sol.Status)
	fmt.Printf("value=%.0f a=%.0f b=%.0f c=%.0f\n", sol.Objective, sol.Value(a), sol.Value(b), sol.Value(c))
	// Output:
	// optimal
	// value=7 a=0 b=1 c=1
}

func ExampleModel_WriteLP() {
	m := milp.NewModel("tiny", milp.Minimize)
	x := m.AddBinary("x")
	z := m.AddInteger("z", 1, 2)
	m.AddConstraint("MaxColor_x_2", []milp.Term{milp.T(x, 2), milp.T(z, -1)}, milp.LE, 0)
	m.SetObjective(milp.T(z, 1))

	_ = m.WriteLP(os.Stdout)
	// Output:
	// \* tiny *\
	// Minimize
	// OBJ: z
	// Subject To
	// MaxColor_x_2: 2 x - z <= 0
	// Bounds
	//  1 <= z <= 2
	// Generals
	// z
	// Binaries
	// x
	// End
}
