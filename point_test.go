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
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestPointOrder(t *testing.T) {
	tests := []struct {
		p, q Point
		less bool
	}{
		{Point{X: 1, Y: 2}, Point{X: 2, Y: 0}, true},
		{Point{X: 2, Y: 0}, Point{X: 1, Y: 2}, false},
		{Point{X: 1, Y: 1}, Point{X: 1, Y: 2}, true},
		{Point{X: 1, Y: 2}, Point{X: 1, Y: 1}, false},
		{Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, false},
	}
	for _, test := range tests {
		if have := test.p.Less(test.q); have != test.less {
			t.Errorf("%v < %v: want %v but have %v", test.p, test.q, test.less, have)
		}
	}
	if !(Point{X: 3, Y: 4}).Equal(Point{X: 3, Y: 4}) {
		t.Error("identical points should be equal")
	}
	if (Point{X: 3, Y: 4}).Equal(Point{X: 3, Y: 5}) {
		t.Error("distinct points should not be equal")
	}
}

func TestPointDistance(t *testing.T) {
	p := Point{X: 0, Y: 0}
	q := Point{X: 3, Y: 4}
	if have := p.Distance(q); have != 5 {
		t.Errorf("want 5 but have %v", have)
	}
	if have := q.Distance(p); have != 5 {
		t.Errorf("distance should be symmetric: want 5 but have %v", have)
	}
}

func TestPointGeoDistance(t *testing.T) {
	// One degree along the equator subtends R*π/180 kilometers.
	p := Point{X: 24, Y: 0}
	q := Point{X: 25, Y: 0}
	want := earthRadiusKm * math.Pi / 180
	if have := p.GeoDistance(q); !scalar.EqualWithinAbsOrRel(have, want, 1e-9, 1e-9) {
		t.Errorf("want %v but have %v", want, have)
	}

	// Pole to pole is half the circumference.
	n := Point{X: 0, Y: 90}
	s := Point{X: 0, Y: -90}
	want = earthRadiusKm * math.Pi
	if have := n.GeoDistance(s); !scalar.EqualWithinAbsOrRel(have, want, 1e-9, 1e-9) {
		t.Errorf("want %v but have %v", want, have)
	}

	if have := p.GeoDistance(p); have != 0 {
		t.Errorf("distance to self: want 0 but have %v", have)
	}
}
