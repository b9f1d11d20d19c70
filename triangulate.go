// SGI FREE SOFTWARE LICENSE B (Version 2.0, Sept. 18, 2008)
// Copyright (C) [dates of first publication] Silicon Graphics, Inc.
// All Rights Reserved.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice including the dates of first publication and either this
// permission notice or a reference to http://oss.sgi.com/projects/FreeB/ shall be
// included in all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED,
// INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A
// PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL SILICON GRAPHICS, INC.
// BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
// TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE
// OR OTHER DEALINGS IN THE SOFTWARE.
//
// Except as contained in this notice, the name of Silicon Graphics, Inc. shall not
// be used in advertising or otherwise to promote the sale, use or other dealings in
// this Software without prior written authorization from Silicon Graphics, Inc.

package polymesh

import (
	"github.com/jbeda/geom"
)

// Triangulator triangulates a simple polygon with optional holes.
//
// The boundary may be given in either orientation and hole orientation is
// ignored. Boundary and holes must be simple, holes must lie strictly
// inside the boundary and must not overlap each other; self-intersecting
// input is not detected and gives unspecified triangles.
type Triangulator struct {
	boundary []geom.Coord
	holes    [][]geom.Coord
}

func NewTriangulator() *Triangulator {
	return &Triangulator{}
}

// SetBoundary sets the outer ring. A repeated closing point is ignored.
func (t *Triangulator) SetBoundary(points []geom.Coord) {
	t.boundary = points
}

// AddHole adds an inner ring. Hole points are numbered after the boundary
// points and the points of earlier holes.
func (t *Triangulator) AddHole(points []geom.Coord) {
	t.holes = append(t.holes, points)
}

// Triangulate returns one index triple per triangle, each triangle
// counter-clockwise. Indices refer to the boundary points in the order
// they were given, followed by the points of every hole in the order the
// holes were added. It returns nil when the boundary has fewer than three
// points or no area.
func (t *Triangulator) Triangulate() []int {
	boundary, indices, n := openRing(t.boundary, 0)
	if len(boundary) < 3 {
		return nil
	}
	area := signedArea(boundary)
	if area == 0 {
		return nil
	}

	poly := &polygon{}
	poly.addRing(boundary, indices, area < 0)
	first := n
	for _, h := range t.holes {
		hole, indices, size := openRing(h, first)
		first += size
		if len(hole) < 3 {
			continue
		}
		area := signedArea(hole)
		if area == 0 {
			continue
		}
		poly.addRing(hole, indices, area > 0)
	}
	poly.check()

	order := sweepOrder(poly.points)
	diagonals := newDiagonalSet()
	sweepDiagonals(order, false, diagonals.add)
	sweepDiagonals(reversed(order), true, diagonals.add)
	for _, d := range diagonals.pairs {
		poly.connect(d[0], d[1])
	}

	elements := make([]int, 0, 3*(len(poly.points)+2*len(t.holes)))
	for _, face := range decompose(poly.points, len(diagonals.pairs)) {
		triangulateMonotone(face, func(a, b, c *polygonPoint) {
			elements = append(elements, a.index, b.index, c.index)
		})
	}
	return elements
}

// Triangulate is a shorthand for a Triangulator with the given boundary
// and holes.
func Triangulate(boundary []geom.Coord, holes ...[]geom.Coord) []int {
	t := NewTriangulator()
	t.SetBoundary(boundary)
	for _, h := range holes {
		t.AddHole(h)
	}
	return t.Triangulate()
}

// openRing drops a repeated closing point and consecutive duplicates. It
// returns the remaining points, their indices counted from first, and the
// size of the index range the ring occupies.
func openRing(points []geom.Coord, first int) ([]geom.Coord, []int, int) {
	n := len(points)
	if n > 1 && points[0] == points[n-1] {
		n--
	}
	ring := make([]geom.Coord, 0, n)
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if len(ring) > 0 && ring[len(ring)-1] == points[i] {
			continue
		}
		ring = append(ring, points[i])
		indices = append(indices, first+i)
	}
	for len(ring) > 1 && ring[len(ring)-1] == ring[0] {
		ring = ring[:len(ring)-1]
		indices = indices[:len(indices)-1]
	}
	return ring, indices, n
}
