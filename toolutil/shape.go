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
	"os"
	"path/filepath"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	goshp "github.com/jonas-p/go-shp"
	"github.com/sirupsen/logrus"

	shapetools "github.com/fmidev/smartmet-shapetools"
)

// Shape connects the segments of name.node and name.poly into closed
// polygons and writes them to the shapefile. Polygons with a
// spherical area below areaLimit square kilometers are dropped; a
// zero limit keeps everything.
func Shape(name, shapefile string, areaLimit float64) error {
	nodes, _, err := readNodeFile(name + ".node")
	if err != nil {
		return err
	}
	edges, err := readPolyFile(name + ".poly")
	if err != nil {
		return err
	}

	rings, err := shapetools.AssembleRings(edges, nodes)
	if err != nil {
		return err
	}
	var kept []shapetools.ClosedRing
	for _, ring := range rings {
		if areaLimit > 0 && ring.GeoArea() < areaLimit {
			continue
		}
		kept = append(kept, ring)
	}
	logrus.WithFields(logrus.Fields{
		"assembled": len(rings),
		"kept":      len(kept),
	}).Debug("assembled polygons from segments")
	if len(kept) == 0 {
		return fmt.Errorf("shapetools: %s contains no polygons above the area limit", name)
	}
	return writeRingShapefile(shapefile, kept)
}

// writeRingShapefile writes the rings to a polygon shapefile with an
// AREA attribute holding the spherical area in square kilometers.
func writeRingShapefile(shapefile string, rings []shapetools.ClosedRing) error {
	for _, ext := range []string{".shp", ".dbf", ".shx"} {
		os.Remove(shapefile[:len(shapefile)-len(filepath.Ext(shapefile))] + ext)
	}
	e, err := shp.NewEncoderFromFields(shapefile, goshp.POLYGON,
		goshp.NumberField("ID", 10), goshp.FloatField("AREA", 20, 6))
	if err != nil {
		return err
	}
	defer e.Close()
	for i, ring := range rings {
		pts := ring.Points()
		path := make(geom.Path, len(pts))
		for j, pt := range pts {
			path[j] = pt.Geom()
		}
		if err := e.EncodeFields(geom.Polygon{path}, i+1, ring.GeoArea()); err != nil {
			return err
		}
	}
	return nil
}

// readNodeFile reads a .node file.
func readNodeFile(filename string) (*shapetools.Nodes, int, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return shapetools.ReadNodes(f)
}

// readPolyFile reads the segments of a .poly file.
func readPolyFile(filename string) ([]shapetools.Edge, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return shapetools.ReadSegments(f)
}
