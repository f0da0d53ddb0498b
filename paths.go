/*
Copyright © 2026 the smartmet-shapetools authors.
This file is part of smartmet-shapetools.

smartmet-shapetools is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

smartmet-shapetools is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with smartmet-shapetools.  If not, see <http://www.gnu.org/licenses/>.
*/

package shapetools

import (
	"fmt"
	"sort"

	"github.com/google/btree"
)

// Boundary accumulates undirected edges with cancellation: adding an
// edge that is already present removes it instead. Feeding it every
// edge of every triangle in a mesh therefore cancels the shared
// interior edges and leaves exactly the boundary of the meshed
// regions.
type Boundary struct {
	tree *btree.BTree
}

// NewBoundary returns an empty boundary accumulator.
func NewBoundary() *Boundary {
	return &Boundary{tree: btree.New(8)}
}

// Toggle inserts e, or removes it when already present.
func (b *Boundary) Toggle(e Edge) {
	if b.tree.Has(e) {
		b.tree.Delete(e)
		return
	}
	b.tree.ReplaceOrInsert(e)
}

// Len returns the number of surviving edges.
func (b *Boundary) Len() int {
	return b.tree.Len()
}

// Edges returns the surviving edges in ascending canonical order.
func (b *Boundary) Edges() []Edge {
	out := make([]Edge, 0, b.tree.Len())
	b.tree.Ascend(func(item btree.Item) bool {
		out = append(out, item.(Edge))
		return true
	})
	return out
}

// AssembleRings connects an undirected edge soup into closed rings,
// resolving ordinals through nodes. Every node in the soup must have
// even degree (which boundaries produced by edge cancellation always
// do); a node of odd degree means a dangling segment and is reported
// as an error. Ring order follows the first edge of each ring in the
// input; at shared vertices the walk prefers the lowest-numbered
// unused neighbor.
func AssembleRings(edges []Edge, nodes *Nodes) ([]ClosedRing, error) {
	adjacency := make(map[int][]int)
	for _, e := range edges {
		n1, n2 := e.Nodes()
		if n1 < 1 || n2 > nodes.Len() {
			return nil, fmt.Errorf("edge %d-%d references an unregistered node", n1, n2)
		}
		adjacency[n1] = append(adjacency[n1], n2)
		adjacency[n2] = append(adjacency[n2], n1)
	}
	for _, neighbors := range adjacency {
		sort.Ints(neighbors)
	}

	used := make(map[Edge]bool, len(edges))
	var rings []ClosedRing

	for _, start := range edges {
		if used[start] {
			continue
		}
		first, cur := start.Nodes()
		used[start] = true

		var ring Ring
		ring.Add(nodes.Point(first))
		ring.Add(nodes.Point(cur))

		for cur != first {
			next := -1
			for _, m := range adjacency[cur] {
				if !used[NewEdge(cur, m)] {
					next = m
					break
				}
			}
			if next < 0 {
				return nil, fmt.Errorf("dangling segment: no unused edge continues from node %d", cur)
			}
			used[NewEdge(cur, next)] = true
			cur = next
			ring.Add(nodes.Point(cur))
		}

		closed, err := ring.Close()
		if err != nil {
			return nil, err
		}
		rings = append(rings, closed)
	}
	return rings, nil
}
