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

// sweepDiagonals sweeps the points in the given order and reports, through
// emit, a diagonal from every split point up to the helper of the edge on
// its left. Run on the downward order it resolves split points; run on the
// reversed order in the rotated frame it resolves merge points, which the
// rotation turns into split points.
func sweepDiagonals(order []*polygonPoint, rotated bool, emit func(a, b *polygonPoint)) {
	d := dictNewDict(rotated)
	for _, p := range order {
		sweepEvent(d, p, emit)
	}
	// Every downward edge ends at a point that removes or replaces it.
	assert(dictIsEmpty(d))
}

func sweepEvent(d *dict, p *polygonPoint, emit func(a, b *polygonPoint)) {
	switch classify(p, d.rotated) {
	case startPoint:
		dictInsert(d, p.out, p)

	case stopPoint:
		dictDelete(dictSearch(d, p.in))

	case splitPoint:
		left := dictSearchLeft(d, p)
		assert(left.key != nil)
		emit(left.helper, p)
		left.helper = p
		dictInsert(d, p.out, p)

	case mergePoint:
		dictDelete(dictSearch(d, p.in))
		left := dictSearchLeft(d, p)
		assert(left.key != nil)
		left.helper = p

	default:
		if above(p.prev().at(d.rotated), p.at(d.rotated)) {
			// The ring runs downward here, so the interior is on the
			// right: the incoming edge hands over to the outgoing one.
			n := dictSearch(d, p.in)
			assert(n.key != nil)
			n.key = p.out
			n.helper = p
		} else {
			left := dictSearchLeft(d, p)
			assert(left.key != nil)
			left.helper = p
		}
	}
}

// diagonalSet collects diagonals from both sweeps in insertion order,
// dropping repeats and segments that coincide with ring edges.
type diagonalSet struct {
	seen  map[[2]int]bool
	pairs [][2]*polygonPoint
}

func newDiagonalSet() *diagonalSet {
	return &diagonalSet{
		seen: map[[2]int]bool{},
	}
}

func (s *diagonalSet) add(a, b *polygonPoint) {
	if a == b || adjacent(a, b) {
		return
	}
	key := [2]int{a.id, b.id}
	if a.id > b.id {
		key = [2]int{b.id, a.id}
	}
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.pairs = append(s.pairs, [2]*polygonPoint{a, b})
}
