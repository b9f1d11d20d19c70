package polymesh

import (
	"math"
)

// decompose walks the ring edges and diagonals into faces. Every walkable
// half-edge is consumed by exactly one face, and each face is returned as
// its counter-clockwise point loop.
func decompose(points []*polygonPoint, diagonals int) [][]*polygonPoint {
	// Each diagonal adds one face; a face can not have more points than
	// there are walkable half-edges.
	limit := len(points) + 2*diagonals
	faces := make([][]*polygonPoint, 0, diagonals+1)
	for _, p := range points {
		for _, e := range p.edges {
			if !e.used {
				faces = append(faces, traceFace(e, limit))
			}
		}
	}
	return faces
}

func traceFace(start *halfEdge, limit int) []*polygonPoint {
	var face []*polygonPoint
	e := start
	for {
		e.used = true
		face = append(face, e.org)
		assert(len(face) <= limit)

		e = nextEdge(e, start)
		if e == start {
			break
		}
	}
	return face
}

// nextEdge returns the half-edge that follows e around the face on its
// left: of the half-edges leaving e's destination, the one reached first
// when turning clockwise from the reverse of e. This is the one with the
// smallest counter-clockwise angle onto the reverse of e.
func nextEdge(e, start *halfEdge) *halfEdge {
	v := e.dst()
	back := e.org.pos.Minus(v.pos)

	var best *halfEdge
	bestAngle := math.Inf(1)
	for _, c := range v.edges {
		if c.used && c != start {
			continue
		}
		a := angleCCW(c.dst().pos.Minus(v.pos), back)
		if a < bestAngle {
			best = c
			bestAngle = a
		}
	}
	assert(best != nil)
	return best
}

// triangulateMonotone triangulates a counter-clockwise face that is
// monotone with respect to the sweep order and reports every triangle,
// counter-clockwise, through emit.
func triangulateMonotone(face []*polygonPoint, emit func(a, b, c *polygonPoint)) {
	n := len(face)
	assert(n >= 3)
	if n == 3 {
		emit(face[0], face[1], face[2])
		return
	}

	top := 0
	for i, p := range face {
		if pointLeq(p, face[top]) {
			top = i
		}
	}

	// Merge the two chains into sweep order. Walking forward from the top
	// follows the left chain, walking backward the right one. The bottom
	// point is kept apart.
	sorted := make([]*polygonPoint, 0, n)
	sorted = append(sorted, face[top])
	left := map[*polygonPoint]bool{}
	var bottom *polygonPoint
	l, r := 1, 1
	for {
		lp := face[(top+l)%n]
		rp := face[(top-r+n)%n]
		if lp == rp {
			bottom = lp
			break
		}
		if pointLeq(lp, rp) {
			left[lp] = true
			sorted = append(sorted, lp)
			l++
		} else {
			sorted = append(sorted, rp)
			r++
		}
	}

	stack := []*polygonPoint{sorted[0], sorted[1]}
	pop := func() *polygonPoint {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return p
	}

	for i := 2; i < len(sorted); i++ {
		p := sorted[i]
		isLeft := left[p]
		if isLeft != left[stack[len(stack)-1]] {
			// p sees the whole stack across the face.
			for len(stack) > 0 {
				a := pop()
				if len(stack) == 0 {
					break
				}
				b := stack[len(stack)-1]
				if isLeft {
					emit(p, a, b)
				} else {
					emit(a, p, b)
				}
			}
			stack = append(stack, sorted[i-1], p)
			continue
		}

		v := pop()
		for len(stack) > 0 {
			q := stack[len(stack)-1]
			var a, b, c *polygonPoint
			if isLeft {
				a, b, c = p, q, v
			} else {
				a, b, c = p, v, q
			}
			if orient(a.pos, b.pos, c.pos) <= 0 {
				break
			}
			emit(a, b, c)
			v = pop()
		}
		stack = append(stack, v, p)
	}

	last := pop()
	for len(stack) > 0 {
		p := pop()
		if left[last] {
			emit(bottom, p, last)
		} else {
			emit(bottom, last, p)
		}
		last = p
	}
}
