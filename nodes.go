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

type nodeInfo struct {
	ordinal int
	owner   int
}

// Nodes assigns a stable 1-based ordinal to each distinct Point on
// first insertion, along with a caller-supplied owner id (for example
// the ordinal of the polygon that first contributed the point).
// Ordinal 0 is reserved to mean "not registered".
//
// A Nodes instance is meant for single-goroutine use within one
// conversion run.
type Nodes struct {
	byPoint map[Point]nodeInfo
	ordered []Point
}

// NewNodes returns an empty registry.
func NewNodes() *Nodes {
	return &Nodes{byPoint: make(map[Point]nodeInfo)}
}

// Add registers pt, returning its ordinal. A new point gets the next
// unused ordinal (current count + 1). Re-adding a known point returns
// the ordinal assigned at first insertion; the new ownerID is then
// discarded, keeping first-seen-wins semantics.
func (n *Nodes) Add(pt Point, ownerID int) int {
	if info, ok := n.byPoint[pt]; ok {
		return info.ordinal
	}
	ord := len(n.ordered) + 1
	n.byPoint[pt] = nodeInfo{ordinal: ord, owner: ownerID}
	n.ordered = append(n.ordered, pt)
	return ord
}

// Number returns the ordinal of pt, or 0 if pt has not been registered.
func (n *Nodes) Number(pt Point) int {
	return n.byPoint[pt].ordinal
}

// ID returns the owner id recorded at pt's first insertion, or 0 if pt
// has not been registered.
func (n *Nodes) ID(pt Point) int {
	return n.byPoint[pt].owner
}

// Point returns the point with the given ordinal. Out-of-range
// ordinals return the zero Point rather than an error; callers that
// care must check the range themselves.
func (n *Nodes) Point(ordinal int) Point {
	if ordinal <= 0 || ordinal > len(n.ordered) {
		return Point{}
	}
	return n.ordered[ordinal-1]
}

// Len returns the number of registered points.
func (n *Nodes) Len() int {
	return len(n.ordered)
}
