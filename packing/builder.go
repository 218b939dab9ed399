// SPDX-License-Identifier: MIT
//
// File: builder.go
// Role: MILP formulation of packing coloring over a distance table.
//
// Variables (k = |V|):
//   - x_<v>_<i> binary, 1 iff vertex v gets color i, i ∈ [1,k];
//   - z integer in [1,k], the largest color used.
//
// Objective: minimize z.
//
// Constraints:
//   - OneColor_<v>:          Σ_i x(v,i) = 1
//   - Pack_<v>_<u>_color_<i>: x(v,i) + x(u,i) ≤ 1   for each i and each pair with finite d(v,u) ≤ i
//   - MaxColor_<v>_<i>:      i·x(v,i) − z ≤ 0
//
// Pairs are unordered and enumerated in vertex order, colors in the outer
// loop. There are at most k·n(n−1)/2 packing rows.

package packing

import (
	"fmt"
	"math"

	"github.com/katalvlaran/packcolor/distance"
	"github.com/katalvlaran/packcolor/milp"
)

const modelName = "PackingColoring"

// Formulation is a finalized packing coloring model.
type Formulation struct {
	Model    *milp.Model
	X        [][]milp.Var // X[v][i-1] for vertex index v (table order) and color i
	Z        milp.Var
	K        int
	Vertices []string

	// PackRows is the number of Pack_* constraints.
	PackRows int
}

// Builder owns the variable mapping and constraint list while a
// Formulation is assembled. It is finalized by Build exactly once.
type Builder struct {
	tab   *distance.Table
	ids   []string
	k     int
	model *milp.Model
	x     [][]milp.Var
	z     milp.Var
	pack  int
	done  bool
}

// NewBuilder prepares a Builder for tab.
func NewBuilder(tab *distance.Table) *Builder {
	return &Builder{tab: tab}
}

// Build is shorthand for NewBuilder(tab).Build().
func Build(tab *distance.Table) (*Formulation, error) {
	return NewBuilder(tab).Build()
}

// Build assembles variables, constraints and objective and returns the
// finalized Formulation.
func (b *Builder) Build() (*Formulation, error) {
	if b.done {
		return nil, ErrFinalized
	}
	if b.tab == nil {
		return nil, ErrTableNil
	}
	if b.tab.Len() == 0 {
		return nil, ErrEmptyGraph
	}
	b.done = true

	b.ids = b.tab.Vertices()
	b.k = len(b.ids)
	b.model = milp.NewModel(modelName, milp.Minimize)

	b.addVariables()
	b.addOneColor()
	b.addPacking()
	b.addMaxColor()
	b.model.SetObjective(milp.T(b.z, 1))

	if err := b.model.Validate(); err != nil {
		return nil, fmt.Errorf("packing: build %s: %w", modelName, err)
	}

	return &Formulation{
		Model:    b.model,
		X:        b.x,
		Z:        b.z,
		K:        b.k,
		Vertices: b.ids,
		PackRows: b.pack,
	}, nil
}

func (b *Builder) addVariables() {
	b.x = make([][]milp.Var, len(b.ids))
	for v, id := range b.ids {
		b.x[v] = make([]milp.Var, b.k)
		for i := 1; i <= b.k; i++ {
			b.x[v][i-1] = b.model.AddBinary(fmt.Sprintf("x_%s_%d", id, i))
		}
	}
	b.z = b.model.AddInteger("z", 1, float64(b.k))
}

func (b *Builder) addOneColor() {
	for v, id := range b.ids {
		terms := make([]milp.Term, b.k)
		for i := range terms {
			terms[i] = milp.T(b.x[v][i], 1)
		}
		b.model.AddConstraint("OneColor_"+id, terms, milp.EQ, 1)
	}
}

func (b *Builder) addPacking() {
	pairs := b.tab.Pairs(b.k)
	for i := 1; i <= b.k; i++ {
		for _, p := range pairs {
			if p.Distance > i {
				continue
			}
			b.model.AddConstraint(
				fmt.Sprintf("Pack_%s_%s_color_%d", p.U, p.V, i),
				[]milp.Term{milp.T(b.x[p.I][i-1], 1), milp.T(b.x[p.J][i-1], 1)},
				milp.LE, 1,
			)
			b.pack++
		}
	}
}

func (b *Builder) addMaxColor() {
	for v, id := range b.ids {
		for i := 1; i <= b.k; i++ {
			b.model.AddConstraint(
				fmt.Sprintf("MaxColor_%s_%d", id, i),
				[]milp.Term{milp.T(b.x[v][i-1], float64(i)), milp.T(b.z, -1)},
				milp.LE, 0,
			)
		}
	}
}

// SetStart installs colors (vertex ID → color in [1,K]) as the model's
// start values, with z set to the largest color. Vertices missing from
// colors leave the start incomplete, which solvers ignore.
func (f *Formulation) SetStart(colors map[string]int) {
	f.Model.ClearStart()
	maxColor := 0
	for v, id := range f.Vertices {
		c, ok := colors[id]
		if !ok || c < 1 || c > f.K {
			f.Model.ClearStart()
			return
		}
		for i := 1; i <= f.K; i++ {
			val := 0.0
			if i == c {
				val = 1
			}
			f.Model.SetStart(f.X[v][i-1], val)
		}
		if c > maxColor {
			maxColor = c
		}
	}
	f.Model.SetStart(f.Z, float64(maxColor))
}

// Decode extracts the coloring from an optimal solution. Each vertex takes
// the first color, in increasing order, whose variable exceeds 0.5.
// It reports false if some vertex has no such color.
func (f *Formulation) Decode(sol *milp.Solution) (map[string]int, int, bool) {
	colors := make(map[string]int, len(f.Vertices))
	for v, id := range f.Vertices {
		for i := 1; i <= f.K; i++ {
			if sol.Value(f.X[v][i-1]) > 0.5 {
				colors[id] = i
				break
			}
		}
		if _, ok := colors[id]; !ok {
			return nil, 0, false
		}
	}

	return colors, int(math.Round(sol.Value(f.Z))), true
}
