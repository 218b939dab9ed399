// SPDX-License-Identifier: MIT
// Package: packcolor/builder
//
// impl_gonum.go - FromGonum(src) constructor.
//
// Contract:
//   - Every node of src becomes a vertex named cfg.idFn(node.ID()); node IDs
//     must be non-negative.
//   - Every adjacent pair of src is added once, whichever direction gonum
//     reports it in; self-loops are skipped since they never change hop distances.
//   - Nodes are processed in ascending ID order for determinism.
//   - A directed gonum graph collapses to its underlying simple graph.

package builder

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph"

	"github.com/katalvlaran/packcolor/core"
)

const methodFromGonum = "FromGonum"

// FromGonum returns a Constructor copying the topology of a gonum graph.
func FromGonum(src graph.Graph) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if src == nil {
			return fmt.Errorf("%s: nil source graph: %w", methodFromGonum, ErrConstructFailed)
		}

		nodes := graph.NodesOf(src.Nodes())
		ids := make([]int64, 0, len(nodes))
		for _, n := range nodes {
			if n.ID() < 0 {
				return fmt.Errorf("%s: negative node ID %d: %w", methodFromGonum, n.ID(), ErrConstructFailed)
			}
			ids = append(ids, n.ID())
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			name := cfg.idFn(int(id))
			if err := g.AddVertex(name); err != nil {
				return fmt.Errorf("%s: AddVertex(%s): %w", methodFromGonum, name, err)
			}
		}
		for _, uid := range ids {
			to := graph.NodesOf(src.From(uid))
			sort.Slice(to, func(i, j int) bool { return to[i].ID() < to[j].ID() })
			for _, v := range to {
				vid := v.ID()
				if vid == uid {
					continue
				}
				u, w := cfg.idFn(int(uid)), cfg.idFn(int(vid))
				if g.HasEdge(u, w) || g.HasEdge(w, u) {
					continue
				}
				if err := addEdge(g, methodFromGonum, u, w); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
