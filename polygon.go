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

func assert(cond bool) {
	if !cond {
		panic("polymesh: assertion error")
	}
}

type pointKind int

const (
	regularPoint pointKind = iota
	startPoint
	stopPoint
	splitPoint
	mergePoint
)

func (k pointKind) String() string {
	switch k {
	case startPoint:
		return "start"
	case stopPoint:
		return "stop"
	case splitPoint:
		return "split"
	case mergePoint:
		return "merge"
	}
	return "regular"
}

// polygonPoint is a vertex of the boundary or of a hole. Rings are linked
// so that the polygon interior is always on the left of in and out.
type polygonPoint struct {
	pos   geom.Coord
	index int // index in the caller's point ordering
	id    int // position in the point pool; breaks ties between equal coordinates

	in  *halfEdge
	out *halfEdge

	// edges lists the walkable half-edges leaving this point: the ring edge
	// out plus both directions of every diagonal touching it.
	edges []*halfEdge
}

// at returns the position of p in the frame of one sweep. The upward sweep
// runs the downward one on the plane rotated by 180 degrees, which keeps
// ring orientation and reverses the sweep order.
func (p *polygonPoint) at(rotated bool) geom.Coord {
	if rotated {
		return geom.Coord{X: -p.pos.X, Y: -p.pos.Y}
	}
	return p.pos
}

func (p *polygonPoint) prev() *polygonPoint {
	return p.in.org
}

func (p *polygonPoint) next() *polygonPoint {
	return p.out.dst()
}

type halfEdge struct {
	org  *polygonPoint
	sym  *halfEdge
	used bool // consumed by a face walk
}

func (e *halfEdge) dst() *polygonPoint {
	return e.sym.org
}

type edgePair struct {
	e, eSym halfEdge
}

// makeEdge creates the two halves of the segment org-dst and returns the
// one leaving org.
func makeEdge(org, dst *polygonPoint) *halfEdge {
	pair := &edgePair{}

	e := &pair.e
	eSym := &pair.eSym

	e.sym = eSym
	e.org = org
	eSym.sym = e
	eSym.org = dst

	return e
}

// polygon is the point pool shared by the boundary ring and all hole rings.
type polygon struct {
	points []*polygonPoint
}

// addRing links coords into a closed ring. indices gives the caller index
// of every coordinate. With reverse set the ring is linked back to front.
func (poly *polygon) addRing(coords []geom.Coord, indices []int, reverse bool) {
	n := len(coords)
	ring := make([]*polygonPoint, n)
	for i, c := range coords {
		p := &polygonPoint{
			pos:   c,
			index: indices[i],
			id:    len(poly.points),
		}
		ring[i] = p
		poly.points = append(poly.points, p)
	}
	for i := range ring {
		a, b := ring[i], ring[(i+1)%n]
		if reverse {
			a, b = b, a
		}
		e := makeEdge(a, b)
		a.out = e
		b.in = e
		// Only the half with the interior on its left is walkable.
		a.edges = append(a.edges, e)
	}
}

// connect adds the diagonal a-b, walkable in both directions.
func (poly *polygon) connect(a, b *polygonPoint) {
	e := makeEdge(a, b)
	a.edges = append(a.edges, e)
	b.edges = append(b.edges, e.sym)
}

// adjacent reports whether a and b are joined by a ring edge.
func adjacent(a, b *polygonPoint) bool {
	return a.next() == b || b.next() == a
}

// check verifies that every point has exactly one incoming and one
// outgoing ring edge.
func (poly *polygon) check() {
	for _, p := range poly.points {
		assert(p.in != nil && p.out != nil)
		assert(p.in.dst() == p && p.out.org == p)
		assert(p.in.org.out == p.in)
	}
}

// classify returns the kind of p seen from the given sweep frame. Points
// whose two neighbours both come later in sweep order open a region (start,
// or split when reflex); points whose neighbours both came earlier close
// one (stop, or merge when reflex).
func classify(p *polygonPoint, rotated bool) pointKind {
	c := p.at(rotated)
	a := p.prev().at(rotated)
	b := p.next().at(rotated)

	prevBelow := above(c, a)
	nextBelow := above(c, b)
	convex := orient(a, c, b) > 0

	switch {
	case prevBelow && nextBelow:
		if convex {
			return startPoint
		}
		return splitPoint
	case !prevBelow && !nextBelow:
		if convex {
			return stopPoint
		}
		return mergePoint
	}
	return regularPoint
}
