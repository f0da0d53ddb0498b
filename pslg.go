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

// Planar straight-line graph (PSLG) text interchange, as consumed and
// produced by Shewchuk's Triangle package. A .node file lists the
// vertices, a .poly file the constraint segments (plus holes and
// per-region interior markers), and an .ele file the triangles of a
// finished triangulation.

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
)

// Triangle is one row of an .ele file: three corner ordinals and the
// regional attribute (0 when the file carries none).
type Triangle struct {
	V1, V2, V3 int
	Region     int
}

// fieldScanner yields the whitespace-separated fields of successive
// non-blank lines, skipping '#' comments as Triangle does.
type fieldScanner struct {
	s    *bufio.Scanner
	line int
}

func newFieldScanner(r io.Reader) *fieldScanner {
	return &fieldScanner{s: bufio.NewScanner(r)}
}

func (f *fieldScanner) next() ([]string, error) {
	for f.s.Scan() {
		f.line++
		text := f.s.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) > 0 {
			return fields, nil
		}
	}
	if err := f.s.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("unexpected end of input after line %d", f.line)
}

func (f *fieldScanner) ints(want int) ([]int, error) {
	fields, err := f.next()
	if err != nil {
		return nil, err
	}
	if len(fields) < want {
		return nil, fmt.Errorf("line %d: expected %d fields, got %d", f.line, want, len(fields))
	}
	out := make([]int, want)
	for i := 0; i < want; i++ {
		out[i], err = strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", f.line, err)
		}
	}
	return out, nil
}

// ReadNodes parses a .node file. The returned registry holds the
// vertices in file order with ordinals equal to their file indices;
// when the file carries at least one attribute column, the first
// attribute becomes the owner id. The second return value is the
// attribute column count from the header. Node indices must run
// sequentially from 1, the order the external triangulator assumes.
func ReadNodes(r io.Reader) (*Nodes, int, error) {
	f := newFieldScanner(r)

	header, err := f.ints(4)
	if err != nil {
		return nil, 0, fmt.Errorf("reading node header: %v", err)
	}
	count, dim, nattr := header[0], header[1], header[2]
	if dim != 2 {
		return nil, 0, fmt.Errorf("node file must be 2-dimensional, got %d", dim)
	}
	if count < 0 || nattr < 0 {
		return nil, 0, fmt.Errorf("malformed node header %v", header)
	}

	nodes := NewNodes()
	for i := 1; i <= count; i++ {
		fields, err := f.next()
		if err != nil {
			return nil, 0, fmt.Errorf("reading node %d: %v", i, err)
		}
		if len(fields) < 3+nattr {
			return nil, 0, fmt.Errorf("line %d: expected %d fields, got %d", f.line, 3+nattr, len(fields))
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %v", f.line, err)
		}
		if idx != i {
			return nil, 0, fmt.Errorf("nodes must be numbered sequentially starting from 1, got %d at position %d", idx, i)
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %v", f.line, err)
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %v", f.line, err)
		}
		owner := 0
		if nattr > 0 {
			owner, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, 0, fmt.Errorf("line %d: %v", f.line, err)
			}
		}
		nodes.Add(Point{X: x, Y: y}, owner)
	}
	return nodes, nattr, nil
}

// WriteNodes writes the registry as a .node file in ordinal order,
// with the owner ids as a single attribute column when withOwner is
// set.
func WriteNodes(w io.Writer, nodes *Nodes, withOwner bool) error {
	nattr := 0
	if withOwner {
		nattr = 1
	}
	if _, err := fmt.Fprintf(w, "%d 2 %d 0\n", nodes.Len(), nattr); err != nil {
		return err
	}
	for ord := 1; ord <= nodes.Len(); ord++ {
		pt := nodes.Point(ord)
		var err error
		if withOwner {
			_, err = fmt.Fprintf(w, "%d\t%v\t%v\t%d\n", ord, pt.X, pt.Y, nodes.ID(pt))
		} else {
			_, err = fmt.Fprintf(w, "%d\t%v\t%v\n", ord, pt.X, pt.Y)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadSegments parses the edge section of a .poly file whose nodes are
// supplied separately (nodes header 0 2 0 0), returning the constraint
// segments in file order. Edge indices must run sequentially from 1.
// The holes and regions sections, when present, are left unread.
func ReadSegments(r io.Reader) ([]Edge, error) {
	f := newFieldScanner(r)

	header, err := f.ints(4)
	if err != nil {
		return nil, fmt.Errorf("reading poly header: %v", err)
	}
	if header[0] != 0 {
		return nil, fmt.Errorf("poly file carrying its own nodes is not supported (%d nodes declared)", header[0])
	}

	edgeHeader, err := f.ints(2)
	if err != nil {
		return nil, fmt.Errorf("reading edge header: %v", err)
	}
	count := edgeHeader[0]
	if count < 0 {
		return nil, fmt.Errorf("malformed edge count %d", count)
	}

	edges := make([]Edge, 0, count)
	for i := 1; i <= count; i++ {
		row, err := f.ints(3)
		if err != nil {
			return nil, fmt.Errorf("reading edge %d: %v", i, err)
		}
		if row[0] != i {
			return nil, fmt.Errorf("edges must be numbered sequentially starting from 1, got %d at position %d", row[0], i)
		}
		edges = append(edges, NewEdge(row[1], row[2]))
	}
	return edges, nil
}

// ReadTriangles parses an .ele file. Each triangle must have exactly 3
// corners; the first attribute column, when present, is taken as the
// regional attribute.
func ReadTriangles(r io.Reader) ([]Triangle, error) {
	f := newFieldScanner(r)

	header, err := f.ints(3)
	if err != nil {
		return nil, fmt.Errorf("reading ele header: %v", err)
	}
	count, corners, nattr := header[0], header[1], header[2]
	if corners != 3 {
		return nil, fmt.Errorf("ele file must have 3 corners per triangle, got %d", corners)
	}
	if count < 0 || nattr < 0 {
		return nil, fmt.Errorf("malformed ele header %v", header)
	}

	want := 4
	if nattr > 0 {
		want = 5
	}
	triangles := make([]Triangle, 0, count)
	for i := 1; i <= count; i++ {
		row, err := f.ints(want)
		if err != nil {
			return nil, fmt.Errorf("reading triangle %d: %v", i, err)
		}
		if row[0] != i {
			return nil, fmt.Errorf("triangles must be numbered sequentially starting from 1, got %d at position %d", row[0], i)
		}
		t := Triangle{V1: row[1], V2: row[2], V3: row[3]}
		if nattr > 0 {
			t.Region = row[4]
		}
		triangles = append(triangles, t)
	}
	return triangles, nil
}

// WritePoly writes a .poly file for rings whose vertices have been
// registered in nodes: the separate-nodes header, one segment per
// consecutive vertex pair, an empty holes section, and, when markers
// is set, one interior sample point per ring with the ring ordinal as
// its attribute. A region marker is enough for the triangulator to tag
// every triangle with the originating ring, provided no ring encloses
// another. rng feeds the interior point search and may be nil when
// markers is false.
func WritePoly(w io.Writer, nodes *Nodes, rings []ClosedRing, markers bool, rng *rand.Rand) error {
	edges := 0
	for _, ring := range rings {
		edges += len(ring.Points()) - 1
	}

	if _, err := fmt.Fprintf(w, "0 2 0 0\n%d 0\n", edges); err != nil {
		return err
	}
	edge := 0
	for _, ring := range rings {
		pts := ring.Points()
		for i := 1; i < len(pts); i++ {
			edge++
			n1 := nodes.Number(pts[i-1])
			n2 := nodes.Number(pts[i])
			if n1 == 0 || n2 == 0 {
				return fmt.Errorf("ring vertex not registered in node set")
			}
			if _, err := fmt.Fprintf(w, "%d\t%d\t%d\n", edge, n1, n2); err != nil {
				return err
			}
		}
	}

	// No holes.
	if _, err := fmt.Fprintln(w, "0"); err != nil {
		return err
	}

	if !markers {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%d\n", len(rings)); err != nil {
		return err
	}
	for i, ring := range rings {
		pt, err := ring.InteriorPoint(rng)
		if err != nil {
			return fmt.Errorf("region %d: %w", i+1, err)
		}
		if _, err := fmt.Fprintf(w, "%d\t%v\t%v\t%d\n", i+1, pt.X, pt.Y, i+1); err != nil {
			return err
		}
	}
	return nil
}
