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

package toolutil

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/sirupsen/logrus"

	shapetools "github.com/fmidev/smartmet-shapetools"
)

// Triangulate converts the polygons of the shapefile to a planar
// straight line graph written as name.node and name.poly. Polygons
// with a spherical area below areaLimit square kilometers are
// dropped; a zero limit keeps everything.
func Triangulate(shapefile, name string, areaLimit float64) error {
	rings, err := readShapeRings(shapefile, areaLimit)
	if err != nil {
		return err
	}
	if len(rings) == 0 {
		return fmt.Errorf("shapetools: %s contains no polygons to triangulate", shapefile)
	}

	nodes := shapetools.NewNodes()
	for i, ring := range rings {
		for _, pt := range ring.Points() {
			nodes.Add(pt, i+1)
		}
	}
	logrus.WithFields(logrus.Fields{
		"polygons": len(rings),
		"nodes":    nodes.Len(),
	}).Debug("collected triangulation input")

	rng := rand.New(rand.NewSource(1))
	if err := writeNodeFile(name+".node", nodes, true); err != nil {
		return err
	}
	return writePolyFile(name+".poly", nodes, rings, true, rng)
}

// readShapeRings reads the outlines of the polygons in the shapefile,
// dropping rings whose spherical area is below areaLimit square
// kilometers.
func readShapeRings(shapefile string, areaLimit float64) ([]shapetools.ClosedRing, error) {
	d, err := shp.NewDecoder(shapefile)
	if err != nil {
		return nil, err
	}
	defer d.Close()

	var rings []shapetools.ClosedRing
	var dropped int
	for {
		g, _, more := d.DecodeRowFields()
		if !more {
			break
		}
		paths, err := polygonPaths(g)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			ring, err := closeRing(path)
			if err != nil {
				return nil, err
			}
			if areaLimit > 0 && ring.GeoArea() < areaLimit {
				dropped++
				continue
			}
			rings = append(rings, ring)
		}
	}
	if err := d.Error(); err != nil {
		return nil, err
	}
	if dropped > 0 {
		logrus.WithField("polygons", dropped).Debug("dropped polygons below the area limit")
	}
	return rings, nil
}

// polygonPaths extracts the rings of a polygonal geometry.
func polygonPaths(g geom.Geom) ([]geom.Path, error) {
	switch p := g.(type) {
	case geom.Polygon:
		return p, nil
	case geom.MultiPolygon:
		var paths []geom.Path
		for _, poly := range p {
			paths = append(paths, poly...)
		}
		return paths, nil
	default:
		return nil, fmt.Errorf("shapetools: unsupported geometry type %T; expected polygons", g)
	}
}

// closeRing converts a shapefile ring to a closed ring of our own.
func closeRing(path geom.Path) (shapetools.ClosedRing, error) {
	var ring shapetools.Ring
	for _, pt := range path {
		ring.Add(shapetools.Point{X: pt.X, Y: pt.Y})
	}
	return ring.Close()
}

// writeNodeFile writes the nodes to a .node file.
func writeNodeFile(filename string, nodes *shapetools.Nodes, withOwner bool) error {
	var b strings.Builder
	if err := shapetools.WriteNodes(&b, nodes, withOwner); err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(b.String()), 0644)
}

// writePolyFile writes the rings to a .poly file.
func writePolyFile(filename string, nodes *shapetools.Nodes, rings []shapetools.ClosedRing, markers bool, rng *rand.Rand) error {
	var b strings.Builder
	if err := shapetools.WritePoly(&b, nodes, rings, markers, rng); err != nil {
		return err
	}
	return os.WriteFile(filename, []byte(b.String()), 0644)
}
