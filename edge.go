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

import "github.com/google/btree"

// Edge is an undirected pair of node ordinals. The pair is stored with
// the smaller ordinal first so that traversal direction is immaterial:
// NewEdge(a, b) == NewEdge(b, a).
type Edge struct {
	n1, n2 int
}

// NewEdge returns the canonical edge connecting node ordinals i and j.
func NewEdge(i, j int) Edge {
	if i > j {
		i, j = j, i
	}
	return Edge{n1: i, n2: j}
}

// Nodes returns the endpoint ordinals, smaller first.
func (e Edge) Nodes() (int, int) {
	return e.n1, e.n2
}

// Less imposes a lexicographic order on the canonical pairs, making
// Edge usable as a btree item.
func (e Edge) Less(than btree.Item) bool {
	o := than.(Edge)
	if e.n1 != o.n1 {
		return e.n1 < o.n1
	}
	return e.n2 < o.n2
}

// EdgeSet is a set of unique undirected edges with O(log n) insertion
// and membership testing. The zero value is not usable; call NewEdgeSet.
type EdgeSet struct {
	tree *btree.BTree
}

// NewEdgeSet returns an empty edge set.
func NewEdgeSet() *EdgeSet {
	return &EdgeSet{tree: btree.New(8)}
}

// Add inserts e, reporting whether it was not already present.
func (s *EdgeSet) Add(e Edge) bool {
	return s.tree.ReplaceOrInsert(e) == nil
}

// Contains reports whether e is in the set.
func (s *EdgeSet) Contains(e Edge) bool {
	return s.tree.Has(e)
}

// Len returns the number of edges in the set.
func (s *EdgeSet) Len() int {
	return s.tree.Len()
}
