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

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/ctessum/geom/proj"
)

type candidate struct {
	key  float64 // sort key, the possibly negated caller value
	id   int
	x, y float64 // projected plane coordinates
}

// PointSelector reduces a stream of prioritized geographic candidate
// points to a maximal-priority subset honoring a minimum inter-point
// distance in the projected plane.
//
// Candidates are added incrementally; the accepted subset is computed
// lazily on the first read and cached until the next Add. A selector
// is meant for single-goroutine use.
type PointSelector struct {
	toPlane     proj.Transformer
	negate      bool
	minDistance float64
	bounds      *geom.Bounds

	candidates []candidate
	reduced    bool
	results    []int
}

// NewPointSelector returns a selector projecting candidates with
// toPlane and clipping them against bounds. When negate is true the
// caller-supplied values are negated before sorting, so the lowest
// values win neighborhoods instead of the highest. The default minimum
// distance is 10 plane units.
func NewPointSelector(toPlane proj.Transformer, bounds *geom.Bounds, negate bool) *PointSelector {
	return &PointSelector{
		toPlane:     toPlane,
		negate:      negate,
		minDistance: 10,
		bounds:      bounds,
		reduced:     true, // an empty selector is already reduced
	}
}

// MinDistance sets the minimum separation between accepted points, in
// projected-plane units. Negative distances are rejected.
func (s *PointSelector) MinDistance(d float64) error {
	if d < 0 {
		return fmt.Errorf("minimum distance must be nonnegative, got %g", d)
	}
	s.minDistance = d
	return nil
}

// BoundingBox overrides the acceptance rectangle set at construction,
// for example to add a clipping margin along the borders.
func (s *PointSelector) BoundingBox(x1, y1, x2, y2 float64) {
	s.bounds = &geom.Bounds{
		Min: geom.Point{X: x1, Y: y1},
		Max: geom.Point{X: x2, Y: y2},
	}
}

// Add projects (lon, lat) into the working plane and records the
// candidate. It reports false, with no state change, when the
// projected point falls outside the bounding box. A successful Add
// invalidates any previously computed reduction.
func (s *PointSelector) Add(id int, value, lon, lat float64) (bool, error) {
	x, y, err := s.toPlane(lon, lat)
	if err != nil {
		return false, fmt.Errorf("projecting candidate %d: %v", id, err)
	}
	if x < s.bounds.Min.X || x > s.bounds.Max.X ||
		y < s.bounds.Min.Y || y > s.bounds.Max.Y {
		return false, nil
	}

	s.reduced = false
	s.results = nil

	key := value
	if s.negate {
		key = -value
	}
	s.candidates = append(s.candidates, candidate{key: key, id: id, x: x, y: y})
	return true, nil
}

// IDs returns the ids of the accepted candidates in acceptance order:
// descending priority with spatially conflicting candidates removed.
// The slice is shared with the selector; callers must not modify it.
func (s *PointSelector) IDs() []int {
	s.reduce()
	return s.results
}

// Len returns the number of accepted candidates.
func (s *PointSelector) Len() int {
	s.reduce()
	return len(s.results)
}

// Empty reports whether no candidates were accepted.
func (s *PointSelector) Empty() bool {
	s.reduce()
	return len(s.results) == 0
}

// reduce walks the candidates in descending priority order, keeping an
// rtree of already accepted plane points. A candidate within
// minDistance of an earlier acceptance is discarded and never
// revisited; ties in priority keep insertion order.
func (s *PointSelector) reduce() {
	if s.reduced {
		return
	}

	sort.SliceStable(s.candidates, func(i, j int) bool {
		return s.candidates[i].key > s.candidates[j].key
	})

	accepted := rtree.NewTree(25, 50)
	s.results = s.results[:0]

	for _, c := range s.candidates {
		pt := geom.Point{X: c.x, Y: c.y}
		if s.tooClose(accepted, pt) {
			continue
		}
		s.results = append(s.results, c.id)
		accepted.Insert(pt)
	}

	s.reduced = true
}

// tooClose reports whether the index holds an accepted point strictly
// closer to pt than the minimum distance.
func (s *PointSelector) tooClose(index *rtree.Rtree, pt geom.Point) bool {
	d := s.minDistance
	box := &geom.Bounds{
		Min: geom.Point{X: pt.X - d, Y: pt.Y - d},
		Max: geom.Point{X: pt.X + d, Y: pt.Y + d},
	}
	for _, hit := range index.SearchIntersect(box) {
		q := hit.(geom.Point)
		if (Point{X: pt.X, Y: pt.Y}).Distance(Point{X: q.X, Y: q.Y}) < d {
			return true
		}
	}
	return false
}
