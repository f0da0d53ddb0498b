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

	"github.com/sirupsen/logrus"

	shapetools "github.com/fmidev/smartmet-shapetools"
)

// Amalgamate merges the triangles of in.node, in.poly and in.ele into
// larger polygons and writes them as out.node and out.poly. A
// triangle outside the marked regions is dropped when any of its
// edges is longer than lengthLimit kilometers; a merged polygon is
// dropped when its spherical area is below areaLimit square
// kilometers. Zero limits keep everything.
func Amalgamate(in, out string, lengthLimit, areaLimit float64) error {
	nodes, nattr, err := readNodeFile(in + ".node")
	if err != nil {
		return err
	}
	if nattr < 1 {
		return fmt.Errorf("shapetools: %s.node carries no owner attribute; regenerate it with the triangulate command", in)
	}
	segments, err := readPolyFile(in + ".poly")
	if err != nil {
		return err
	}
	triangles, err := readEleFile(in + ".ele")
	if err != nil {
		return err
	}

	// The original segments constrain the triangulation, so they are
	// always part of some triangle. Deduplicate them so the counts
	// reported below are meaningful.
	constraints := shapetools.NewEdgeSet()
	for _, e := range segments {
		constraints.Add(e)
	}

	boundary := shapetools.NewBoundary()
	var dropped int
	for _, tri := range triangles {
		edges, err := triangleEdges(tri, nodes)
		if err != nil {
			return err
		}
		if tri.Region == 0 && lengthLimit > 0 && longestEdgeKm(edges, nodes) > lengthLimit {
			dropped++
			continue
		}
		// Shared edges cancel, leaving only the merged outlines.
		for _, e := range edges {
			boundary.Toggle(e)
		}
	}
	if dropped > 0 {
		logrus.WithField("triangles", dropped).Debug("dropped triangles above the length limit")
	}

	var onConstraint int
	for _, e := range boundary.Edges() {
		if constraints.Contains(e) {
			onConstraint++
		}
	}
	logrus.WithFields(logrus.Fields{
		"triangles":   len(triangles) - dropped,
		"outline":     boundary.Len(),
		"constraints": onConstraint,
	}).Debug("amalgamated triangles")

	rings, err := shapetools.AssembleRings(boundary.Edges(), nodes)
	if err != nil {
		return err
	}

	// Renumber the nodes so the output only carries the points the
	// surviving polygons use.
	outNodes := shapetools.NewNodes()
	var kept []shapetools.ClosedRing
	for _, ring := range rings {
		if areaLimit > 0 && ring.GeoArea() < areaLimit {
			continue
		}
		for _, pt := range ring.Points() {
			outNodes.Add(pt, len(kept)+1)
		}
		kept = append(kept, ring)
	}
	if len(kept) == 0 {
		return fmt.Errorf("shapetools: %s contains no polygons above the area limit", in)
	}

	if err := writeNodeFile(out+".node", outNodes, false); err != nil {
		return err
	}
	return writePolyFile(out+".poly", outNodes, kept, false, nil)
}

// triangleEdges returns the three edges of the triangle, checking
// that its corners are registered nodes.
func triangleEdges(tri shapetools.Triangle, nodes *shapetools.Nodes) ([3]shapetools.Edge, error) {
	var edges [3]shapetools.Edge
	for _, v := range []int{tri.V1, tri.V2, tri.V3} {
		if v < 1 || v > nodes.Len() {
			return edges, fmt.Errorf("shapetools: triangle corner %d is not a registered node", v)
		}
	}
	edges[0] = shapetools.NewEdge(tri.V1, tri.V2)
	edges[1] = shapetools.NewEdge(tri.V2, tri.V3)
	edges[2] = shapetools.NewEdge(tri.V3, tri.V1)
	return edges, nil
}

// longestEdgeKm returns the longest great-circle edge length in
// kilometers.
func longestEdgeKm(edges [3]shapetools.Edge, nodes *shapetools.Nodes) float64 {
	var longest float64
	for _, e := range edges {
		n1, n2 := e.Nodes()
		if d := nodes.Point(n1).GeoDistance(nodes.Point(n2)); d > longest {
			longest = d
		}
	}
	return longest
}

// readEleFile reads the triangles of a .ele file.
func readEleFile(filename string) ([]shapetools.Triangle, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return shapetools.ReadTriangles(f)
}
