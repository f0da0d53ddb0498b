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
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrNoInteriorPoint is returned by ClosedRing.InteriorPoint when no
// sample satisfying Contains was found within the iteration budget.
// It signals a ring for which the sampling heuristic's assumptions do
// not hold (self-intersecting or near-zero-area); callers normally
// treat it as fatal for the conversion run.
var ErrNoInteriorPoint = errors.New("could not find a point inside polygon")

// interiorPointBudget bounds the triangle examinations in
// InteriorPoint. No theoretical bound guarantees termination for
// pathological rings, so the search gives up after this many.
const interiorPointBudget = 10000

// Ring is an ordered, still-open sequence of polygon vertices. It is a
// mutable builder; all measurements live on ClosedRing, obtained by the
// explicit Close transition.
type Ring struct {
	pts []Point
}

// Add appends a vertex to the ring.
func (r *Ring) Add(pt Point) {
	r.pts = append(r.pts, pt)
}

// Clear removes all vertices so the ring can be reused.
func (r *Ring) Clear() {
	r.pts = r.pts[:0]
}

// Empty reports whether the ring has no vertices.
func (r *Ring) Empty() bool {
	return len(r.pts) == 0
}

// Len returns the number of vertices added so far.
func (r *Ring) Len() int {
	return len(r.pts)
}

// Points returns the vertex sequence. The slice is shared with the
// ring; callers must not modify it.
func (r *Ring) Points() []Point {
	return r.pts
}

// Close converts the ring to its measurable closed form, appending a
// copy of the first vertex when the stored sequence does not already
// end with it. Rings with fewer than 3 vertices cannot enclose area
// and are rejected.
func (r *Ring) Close() (ClosedRing, error) {
	if len(r.pts) < 3 {
		return ClosedRing{}, fmt.Errorf("cannot close a ring of %d points", len(r.pts))
	}
	pts := make([]Point, len(r.pts), len(r.pts)+1)
	copy(pts, r.pts)
	if !pts[0].Equal(pts[len(pts)-1]) {
		pts = append(pts, pts[0])
	}
	return ClosedRing{pts: pts}, nil
}

// ClosedRing is a closed polygon ring: the last stored vertex equals
// the first. It is immutable; all methods are safe to call in any
// order and mutate nothing.
type ClosedRing struct {
	pts []Point
}

// Points returns the closed vertex sequence, last equal to first. The
// slice is shared with the ring; callers must not modify it.
func (r ClosedRing) Points() []Point {
	return r.pts
}

// Area returns the planar area of the ring by the shoelace formula.
func (r ClosedRing) Area() float64 {
	sum := 0.0
	for i := 0; i < len(r.pts)-1; i++ {
		sum += r.pts[i].X*r.pts[i+1].Y - r.pts[i+1].X*r.pts[i].Y
	}
	return math.Abs(0.5 * sum)
}

// GeoArea returns the spherical area of the ring in square kilometers,
// interpreting vertices as lon/lat degrees.
//
// Each vertex is projected to (λ, sin φ), the Lambert cylindrical
// equal-area projection, and the shoelace formula is applied to the
// projected coordinates. Crossings of the ±180° meridian are handled
// by a cumulative longitude offset that jumps by ±360° whenever
// consecutive projected longitudes straddle ±90° from each other; the
// offset compounds around the whole ring. A non-zero net offset after
// the loop means the ring wound around a pole, which the projection
// cannot represent directly; three synthetic closing segments via the
// nearest pole compensate for it. The correction is best-effort: rings
// enclosing both poles are not handled.
func (r ClosedRing) GeoArea() float64 {
	const k90 = degToRad * 90
	const k360 = degToRad * 360

	var sum float64

	// Longitude offsets, multiples of 360 degrees in radians, for the
	// previous and current vertex.
	var dx1, dx2 float64

	var x1, y1 float64

	for i, pt := range r.pts {
		x2 := degToRad * pt.X
		y2 := math.Sin(degToRad * pt.Y)

		if i > 0 {
			if x1 < -k90 && x2 > k90 {
				dx2 -= k360
			} else if x1 > k90 && x2 < -k90 {
				dx2 += k360
			}
			sum += (x1+dx1)*y2 - (x2+dx2)*y1
		}

		dx1 = dx2
		x1 = x2
		y1 = y2
	}

	// The ring wound around a pole: close it with the path
	// (xn,yn) -> (xn,pole) -> (x1,pole) -> (x1,y1), pole being ±90
	// depending on which hemisphere the last vertex lies in.
	if dx2 != 0 {
		x2 := x1
		y2 := math.Sin(k90)
		if y1 < 0 {
			y2 = math.Sin(-k90)
		}
		sum += (x1+dx1)*y2 - (x2+dx2)*y1
		x1, y1, dx1 = x2, y2, dx2
		x2 = degToRad * r.pts[0].X
		sum += (x1+dx1)*y2 - x2*y1
		x1, y1 = x2, y2
		y2 = math.Sin(degToRad * r.pts[0].Y)
		sum += x1*y2 - x2*y1
	}

	return earthRadiusKm * earthRadiusKm * math.Abs(0.5*sum)
}

// Contains reports whether pt lies inside the ring, by the even-odd
// rule against the horizontal ray through pt. The y > min && y <= max
// bracketing convention avoids double-counting shared vertices.
func (r ClosedRing) Contains(pt Point) bool {
	x := pt.X
	y := pt.Y

	var x1, y1 float64
	inside := false

	for i, p := range r.pts {
		x2 := p.X
		y2 := p.Y
		if i > 0 {
			if y > math.Min(y1, y2) &&
				y <= math.Max(y1, y2) &&
				x <= math.Max(x1, x2) &&
				y1 != y2 &&
				(x1 == x2 || x < (y-y1)*(x2-x1)/(y2-y1)+x1) {
				inside = !inside
			}
		}
		x1 = x2
		y1 = y2
	}
	return inside
}

// InteriorPoint finds a point for which Contains is true, drawing
// randomness from rng so results are reproducible per caller.
//
// Consecutive vertex triples are examined as triangles. A triangle is
// skipped when its shape index (perimeter over the square root of its
// Heron area) exceeds a limit that starts at 10 and loosens by 1% per
// triangle examined, anywhere in the search; this rejects nearly
// colinear triangles where sampling would be numerically unstable.
// From an accepted triangle a point is drawn barycentrically with both
// scale factors restricted to [0.2, 0.8], and verified with Contains.
// In practice simple rings have well-behaved convex corners and the
// search ends quickly; after interiorPointBudget examinations without
// a hit the search returns ErrNoInteriorPoint.
func (r ClosedRing) InteriorPoint(rng *rand.Rand) (Point, error) {
	iterations := 0
	shapeLimit := 10.0

	for {
		for i := 0; i < len(r.pts)-2; i++ {
			iterations++
			if iterations > interiorPointBudget {
				return Point{}, ErrNoInteriorPoint
			}

			x1 := r.pts[i].X
			y1 := r.pts[i].Y
			x2 := r.pts[i+1].X
			y2 := r.pts[i+1].Y
			x3 := r.pts[i+2].X
			y3 := r.pts[i+2].Y

			a := math.Hypot(x1-x2, y1-y2)
			b := math.Hypot(x2-x3, y2-y3)
			c := math.Hypot(x1-x3, y1-y3)
			perimeter := a + b + c
			s := 0.5 * perimeter
			area := math.Sqrt(s * (s - a) * (s - b) * (s - c))
			shape := perimeter / math.Sqrt(area)

			shapeLimit *= 1.01
			if shape > shapeLimit {
				continue
			}

			// Scales near 0 or 1 are known to cause trouble with
			// nearly degenerate triangles, hence the [0.2, 0.8] range.
			a1 := 0.2 + 0.6*rng.Float64()
			a2 := 0.2 + 0.6*rng.Float64()

			pt := Point{
				X: x1 + a1*(x2-x1) + (1-a1)*a2*(x3-x1),
				Y: y1 + a1*(y2-y1) + (1-a1)*a2*(y3-y1),
			}

			if r.Contains(pt) {
				return pt, nil
			}
		}
	}
}
