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
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func closedRing(t *testing.T, pts ...Point) ClosedRing {
	t.Helper()
	var r Ring
	for _, p := range pts {
		r.Add(p)
	}
	c, err := r.Close()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestRingClose(t *testing.T) {
	var r Ring
	r.Add(Point{X: 0, Y: 0})
	r.Add(Point{X: 1, Y: 0})
	if _, err := r.Close(); err == nil {
		t.Error("closing a 2-point ring should fail")
	}

	r.Add(Point{X: 0, Y: 1})
	c, err := r.Close()
	if err != nil {
		t.Fatal(err)
	}
	pts := c.Points()
	if len(pts) != 4 {
		t.Fatalf("want 4 stored points after closing but have %d", len(pts))
	}
	if !pts[0].Equal(pts[len(pts)-1]) {
		t.Error("closed ring should end with its first point")
	}

	// Closing must not mutate the builder.
	if r.Len() != 3 {
		t.Errorf("builder length changed by Close: want 3 but have %d", r.Len())
	}

	// An already closed sequence is left alone.
	r.Add(Point{X: 0, Y: 0})
	c, err = r.Close()
	if err != nil {
		t.Fatal(err)
	}
	if have := len(c.Points()); have != 4 {
		t.Errorf("pre-closed ring: want 4 stored points but have %d", have)
	}
}

func TestRingArea(t *testing.T) {
	square := closedRing(t,
		Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 1, Y: 1}, Point{X: 0, Y: 1})
	if have := square.Area(); have != 1 {
		t.Errorf("unit square: want area 1 but have %v", have)
	}

	// Orientation must not matter.
	reversed := closedRing(t,
		Point{X: 0, Y: 1}, Point{X: 1, Y: 1}, Point{X: 1, Y: 0}, Point{X: 0, Y: 0})
	if have := reversed.Area(); have != 1 {
		t.Errorf("reversed unit square: want area 1 but have %v", have)
	}

	triangle := closedRing(t,
		Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 3})
	if have := triangle.Area(); have != 6 {
		t.Errorf("triangle: want area 6 but have %v", have)
	}
}

func TestRingGeoAreaHemisphere(t *testing.T) {
	// A ring along the equator winding once around the globe encloses
	// the northern hemisphere. The (λ, sin φ) projection is exactly
	// equal-area, so the result should match 2πR² almost exactly.
	var r Ring
	for i := 0; i < 360; i++ {
		lon := float64(i)
		if i >= 180 {
			lon -= 360
		}
		r.Add(Point{X: lon, Y: 0})
	}
	c, err := r.Close()
	if err != nil {
		t.Fatal(err)
	}
	want := 2 * math.Pi * earthRadiusKm * earthRadiusKm
	if have := c.GeoArea(); !scalar.EqualWithinAbsOrRel(have, want, 1e-3, 1e-9) {
		t.Errorf("hemisphere: want %v km² but have %v km²", want, have)
	}
}

func TestRingGeoAreaAntimeridian(t *testing.T) {
	// A small quad straddling the 180° meridian must have the same
	// area as the identical quad shifted to the prime meridian.
	straddling := closedRing(t,
		Point{X: 179, Y: 10}, Point{X: -179, Y: 10},
		Point{X: -179, Y: 11}, Point{X: 179, Y: 11})
	shifted := closedRing(t,
		Point{X: -1, Y: 10}, Point{X: 1, Y: 10},
		Point{X: 1, Y: 11}, Point{X: -1, Y: 11})

	want := shifted.GeoArea()
	if have := straddling.GeoArea(); !scalar.EqualWithinAbsOrRel(have, want, 1e-6, 1e-9) {
		t.Errorf("want %v km² but have %v km²", want, have)
	}
	if want <= 0 {
		t.Errorf("quad area should be positive, have %v", want)
	}
}

func TestRingGeoAreaDegenerate(t *testing.T) {
	// A ring of repeated points has no area.
	c := closedRing(t, Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, Point{X: 1, Y: 1})
	if have := c.GeoArea(); have != 0 {
		t.Errorf("want 0 but have %v", have)
	}
	if have := c.Area(); have != 0 {
		t.Errorf("want 0 but have %v", have)
	}
}

func TestRingContains(t *testing.T) {
	quad := closedRing(t,
		Point{X: 0, Y: 0}, Point{X: 2, Y: 0}, Point{X: 2, Y: 2}, Point{X: 0, Y: 2})

	tests := []struct {
		pt   Point
		want bool
	}{
		{Point{X: 1, Y: 1}, true},     // centroid
		{Point{X: 0.01, Y: 1}, true},  // near the left edge
		{Point{X: 5, Y: 5}, false},    // far outside the bounding box
		{Point{X: -1, Y: 1}, false},   // left of the ring
		{Point{X: 1, Y: -0.5}, false}, // below the ring
	}
	for _, test := range tests {
		if have := quad.Contains(test.pt); have != test.want {
			t.Errorf("contains(%v): want %v but have %v", test.pt, test.want, have)
		}
	}

	// Concave ring: a U shape whose notch is outside.
	u := closedRing(t,
		Point{X: 0, Y: 0}, Point{X: 5, Y: 0}, Point{X: 5, Y: 5},
		Point{X: 4, Y: 5}, Point{X: 4, Y: 1}, Point{X: 1, Y: 1},
		Point{X: 1, Y: 5}, Point{X: 0, Y: 5})
	if !u.Contains(Point{X: 0.5, Y: 3}) {
		t.Error("point in the left arm should be inside")
	}
	if u.Contains(Point{X: 2.5, Y: 3}) {
		t.Error("point in the notch should be outside")
	}
}

func TestInteriorPoint(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	rings := []ClosedRing{
		closedRing(t,
			Point{X: 0, Y: 0}, Point{X: 2, Y: 0}, Point{X: 2, Y: 2}, Point{X: 0, Y: 2}),
		closedRing(t,
			Point{X: 0, Y: 0}, Point{X: 4, Y: 0}, Point{X: 0, Y: 3}),
		// Concave U shape.
		closedRing(t,
			Point{X: 0, Y: 0}, Point{X: 5, Y: 0}, Point{X: 5, Y: 5},
			Point{X: 4, Y: 5}, Point{X: 4, Y: 1}, Point{X: 1, Y: 1},
			Point{X: 1, Y: 5}, Point{X: 0, Y: 5}),
	}
	for i, ring := range rings {
		for trial := 0; trial < 10; trial++ {
			pt, err := ring.InteriorPoint(rng)
			if err != nil {
				t.Fatalf("ring %d: %v", i, err)
			}
			if !ring.Contains(pt) {
				t.Errorf("ring %d: interior point %v is not inside", i, pt)
			}
		}
	}
}

func TestInteriorPointFailure(t *testing.T) {
	// All vertices colinear: every triangle is degenerate and no
	// sample can ever pass Contains.
	degenerate := closedRing(t,
		Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, Point{X: 2, Y: 0}, Point{X: 3, Y: 0})
	_, err := degenerate.InteriorPoint(rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoInteriorPoint) {
		t.Errorf("want ErrNoInteriorPoint but have %v", err)
	}
}
