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
	"math"

	"github.com/jbeda/geom"
)

// sweepEpsilon is the slack allowed when deciding whether an active edge lies
// to the left of an event point.
const sweepEpsilon = 1e-7

// above reports whether a comes before b in sweep order: higher Y first, and
// for equal Y the smaller X first. The tie-break behaves like an
// infinitesimal rotation of the plane, so no two distinct points share a
// sweep position and horizontal edges need no special casing.
func above(a, b geom.Coord) bool {
	return a.Y > b.Y || (a.Y == b.Y && a.X < b.X)
}

// cross returns the z component of the cross product of u and v.
func cross(u, v geom.Coord) float64 {
	return u.X*v.Y - u.Y*v.X
}

// orient returns twice the signed area of the triangle (a, b, c). It is
// positive when the triangle is counter-clockwise.
func orient(a, b, c geom.Coord) float64 {
	return cross(b.Minus(a), c.Minus(a))
}

// signedArea returns the signed area of a closed ring, positive for a
// counter-clockwise ring.
func signedArea(ring []geom.Coord) float64 {
	var sum float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// interpolate:
// Given parameters a,x,b,y returns the value (b*x+a*y)/(a+b),
// or (x+y)/2 if a==b==0. It requires that a,b >= 0, and enforces
// this in the rare case that one argument is slightly negative.
// The result r always satisfies MIN(x,y) <= r <= MAX(x,y).
func interpolate(a, x, b, y float64) float64 {
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	if a <= b {
		if b == 0 {
			return (x + y) / 2
		}
		return x + (y-x)*(a/(a+b))
	}
	return y + (x-y)*(b/(a+b))
}

// edgeEvalX returns the X coordinate of the segment uw at height y.
func edgeEvalX(u, w geom.Coord, y float64) float64 {
	if u.Y > w.Y {
		u, w = w, u
	}
	return interpolate(y-u.Y, u.X, w.Y-y, w.X)
}

// angleCCW returns the counter-clockwise angle needed to rotate direction
// from onto direction to, in (0, 2π]. Equal directions give 2π.
func angleCCW(from, to geom.Coord) float64 {
	a := math.Atan2(cross(from, to), from.X*to.X+from.Y*to.Y)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a
}
