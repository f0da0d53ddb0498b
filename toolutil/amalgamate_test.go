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
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	shapetools "github.com/fmidev/smartmet-shapetools"
)

// writeTriangulatedSquare writes name.node, name.poly and name.ele
// describing a unit square near the equator split into two triangles
// with regional attribute region.
func writeTriangulatedSquare(t *testing.T, name string, region int) {
	t.Helper()
	node := `4 2 1 0
1	0	0	1
2	1	0	1
3	1	1	1
4	0	1	1
`
	poly := `0 2 0 0
4 0
1	1	2
2	2	3
3	3	4
4	4	1
0
`
	ele := fmt.Sprintf(`2 3 1
1	1	2	3	%d
2	1	3	4	%d
`, region, region)
	for ext, data := range map[string]string{".node": node, ".poly": poly, ".ele": ele} {
		if err := os.WriteFile(name+ext, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestAmalgamate(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	writeTriangulatedSquare(t, in, 1)

	if err := Amalgamate(in, out, 0, 0); err != nil {
		t.Fatal(err)
	}

	nodes, nattr, err := readNodeFile(out + ".node")
	if err != nil {
		t.Fatal(err)
	}
	if nattr != 0 {
		t.Errorf("want 0 attribute columns but have %d", nattr)
	}
	if nodes.Len() != 4 {
		t.Errorf("want 4 nodes but have %d", nodes.Len())
	}

	edges, err := readPolyFile(out + ".poly")
	if err != nil {
		t.Fatal(err)
	}
	// The diagonal of the square is shared by both triangles and
	// must have cancelled.
	if len(edges) != 4 {
		t.Fatalf("want 4 outline segments but have %d", len(edges))
	}
	if diagonal := shapetools.NewEdge(1, 3); edgesContain(edges, diagonal) {
		t.Error("the shared diagonal should not be part of the outline")
	}

	rings, err := shapetools.AssembleRings(edges, nodes)
	if err != nil {
		t.Fatal(err)
	}
	if len(rings) != 1 {
		t.Fatalf("want 1 polygon but have %d", len(rings))
	}
	if !scalar.EqualWithinAbsOrRel(rings[0].Area(), 1, 1e-12, 1e-12) {
		t.Errorf("want planar area 1 but have %g", rings[0].Area())
	}
}

func edgesContain(edges []shapetools.Edge, e shapetools.Edge) bool {
	for _, have := range edges {
		if have == e {
			return true
		}
	}
	return false
}

func TestAmalgamateLengthLimit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	writeTriangulatedSquare(t, in, 0)

	// Both triangles lie outside any marked region and have roughly
	// hundred kilometer edges, so a one kilometer limit drops them.
	err := Amalgamate(in, filepath.Join(dir, "out"), 1, 0)
	if err == nil {
		t.Fatal("want an error when every triangle is dropped")
	}
}

func TestAmalgamateRegionOverridesLengthLimit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	writeTriangulatedSquare(t, in, 1)

	// The same limit keeps the triangles when they carry a regional
	// attribute.
	if err := Amalgamate(in, out, 1, 0); err != nil {
		t.Fatal(err)
	}
	edges, err := readPolyFile(out + ".poly")
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 4 {
		t.Errorf("want 4 outline segments but have %d", len(edges))
	}
}
