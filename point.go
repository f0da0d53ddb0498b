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

// Package shapetools holds the computational-geometry core shared by the
// vector map conversion commands: a canonical point/edge registry, simple
// polygon measurements, PSLG text interchange, and a priority-based
// spatial thinning selector.
package shapetools

import (
	"math"

	"github.com/ctessum/geom"
)

// earthRadiusKm is the Earth radius used for all great-circle and
// spherical-area calculations.
const earthRadiusKm = 6371.220

const degToRad = math.Pi / 180

// Point is a 2D coordinate. Depending on the caller it holds either
// longitude/latitude degrees or projected plane coordinates; the type
// itself is unit-agnostic. Unlike geom.Point it carries a total order,
// which map and tree keys in this package rely on.
type Point struct {
	X, Y float64
}

// Equal reports whether p and q have exactly equal coordinates.
func (p Point) Equal(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Less imposes a strict lexicographic order on points, X first.
func (p Point) Less(q Point) bool {
	if p.X != q.X {
		return p.X < q.X
	}
	return p.Y < q.Y
}

// Distance returns the planar Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// GeoDistance returns the great-circle distance in kilometers from p to q,
// both interpreted as lon/lat degrees, using the haversine formula.
func (p Point) GeoDistance(q Point) float64 {
	x1 := degToRad * p.X
	y1 := degToRad * p.Y
	x2 := degToRad * q.X
	y2 := degToRad * q.Y

	sinDx := math.Sin((x2 - x1) / 2)
	sinDy := math.Sin((y2 - y1) / 2)
	a := sinDy*sinDy + math.Cos(y1)*math.Cos(y2)*sinDx*sinDx
	c := 2 * math.Asin(math.Min(1, math.Sqrt(a)))
	return earthRadiusKm * c
}

// Geom converts p to the equivalent geom.Point.
func (p Point) Geom() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}
