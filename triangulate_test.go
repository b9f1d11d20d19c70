package polymesh_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/jbeda/geom"

	"github.com/drawing3d/polymesh"
)

func ExampleTriangulate() {
	points := []geom.Coord{
		{X: 0, Y: 0},
		{X: 4, Y: 0},
		{X: 4, Y: 2},
		{X: 2, Y: 2},
		{X: 2, Y: 4},
		{X: 0, Y: 4},
	}
	e := polymesh.Triangulate(points)
	for i := 0; i < len(e)/3; i++ {
		fmt.Printf("(%.1f, %.1f), (%.1f, %.1f), (%.1f, %.1f)\n",
			points[e[3*i]].X, points[e[3*i]].Y,
			points[e[3*i+1]].X, points[e[3*i+1]].Y,
			points[e[3*i+2]].X, points[e[3*i+2]].Y)
	}
	// Output:
	// (2.0, 2.0), (2.0, 4.0), (0.0, 4.0)
	// (0.0, 0.0), (4.0, 2.0), (2.0, 2.0)
	// (0.0, 0.0), (2.0, 2.0), (0.0, 4.0)
	// (4.0, 0.0), (4.0, 2.0), (0.0, 0.0)
}

func ExampleTriangulator() {
	t := polymesh.NewTriangulator()
	t.SetBoundary([]geom.Coord{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}})
	fmt.Println(t.Triangulate())
	// Output:
	// [0 2 3 1 2 0]
}

func signedArea(ring []geom.Coord) float64 {
	var sum float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func orient(a, b, c geom.Coord) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// inRing reports whether p lies inside ring by the even-odd rule.
func inRing(p geom.Coord, ring []geom.Coord) bool {
	in := false
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				in = !in
			}
		}
	}
	return in
}

func reverseRing(ring []geom.Coord) []geom.Coord {
	r := make([]geom.Coord, len(ring))
	for i, p := range ring {
		r[len(ring)-1-i] = p
	}
	return r
}

// checkTiling verifies that the triangles of elements are
// counter-clockwise, sum to the polygon area, and that every non-degenerate
// triangle lies inside the boundary and outside every hole.
func checkTiling(t *testing.T, elements []int, boundary []geom.Coord, holes ...[]geom.Coord) {
	t.Helper()

	points := append([]geom.Coord(nil), boundary...)
	want := math.Abs(signedArea(boundary))
	for _, h := range holes {
		points = append(points, h...)
		want -= math.Abs(signedArea(h))
	}

	if len(elements)%3 != 0 {
		t.Fatalf("got %d indices, not a multiple of 3", len(elements))
	}
	for _, idx := range elements {
		if idx < 0 || idx >= len(points) {
			t.Fatalf("index %d out of range [0, %d)", idx, len(points))
		}
	}

	var got float64
	for i := 0; i < len(elements)/3; i++ {
		a := points[elements[3*i]]
		b := points[elements[3*i+1]]
		c := points[elements[3*i+2]]
		o := orient(a, b, c)
		if o < -1e-9 {
			t.Errorf("triangle %d %v %v %v is clockwise", i, a, b, c)
		}
		got += o / 2
		if math.Abs(o) < 1e-9 {
			continue
		}
		centroid := geom.Coord{X: (a.X + b.X + c.X) / 3, Y: (a.Y + b.Y + c.Y) / 3}
		if !inRing(centroid, boundary) {
			t.Errorf("triangle %d %v %v %v lies outside the boundary", i, a, b, c)
		}
		for j, h := range holes {
			if inRing(centroid, h) {
				t.Errorf("triangle %d %v %v %v lies inside hole %d", i, a, b, c, j)
			}
		}
	}
	if math.Abs(got-want) > 1e-9*math.Max(1, want) {
		t.Errorf("area: got %v, want %v", got, want)
	}
}

func checkCount(t *testing.T, elements []int, want int) {
	t.Helper()
	if got := len(elements) / 3; got != want {
		t.Errorf("triangle count: got %d, want %d", got, want)
	}
}

var (
	square = []geom.Coord{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}

	hexagonL = []geom.Coord{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
	}

	// comb has notches from above and from below, so it has split and
	// merge points, several of them on a common sweep line.
	comb = []geom.Coord{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 0}, {X: 9, Y: 0},
		{X: 9, Y: 4}, {X: 7, Y: 4}, {X: 7, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 4}, {X: 3, Y: 4},
		{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
	}
)

func TestTriangulateSquare(t *testing.T) {
	e := polymesh.Triangulate(square)
	checkCount(t, e, 2)
	checkTiling(t, e, square)
}

func TestTriangulateConcaveHexagon(t *testing.T) {
	e := polymesh.Triangulate(hexagonL)
	checkCount(t, e, 4)
	checkTiling(t, e, hexagonL)
}

func TestTriangulateComb(t *testing.T) {
	e := polymesh.Triangulate(comb)
	checkCount(t, e, len(comb)-2)
	checkTiling(t, e, comb)
}

func TestTriangulateConvex(t *testing.T) {
	cache := polymesh.NewCircleCache()
	for n := 3; n <= 40; n++ {
		ring := cache.RegularPolygon(geom.Coord{X: 1, Y: -2}, 5, n)
		e := polymesh.Triangulate(ring)
		checkCount(t, e, n-2)
		checkTiling(t, e, ring)
	}
}

func TestTriangulateClockwise(t *testing.T) {
	for _, ring := range [][]geom.Coord{square, hexagonL, comb} {
		cw := reverseRing(ring)
		e := polymesh.Triangulate(cw)
		checkCount(t, e, len(ring)-2)
		checkTiling(t, e, cw)
	}
}

func TestTriangulateClosingPoint(t *testing.T) {
	closed := append(append([]geom.Coord(nil), hexagonL...), hexagonL[0])
	e := polymesh.Triangulate(closed)
	checkCount(t, e, 4)
	checkTiling(t, e, hexagonL)
	for _, idx := range e {
		if idx == len(hexagonL) {
			t.Errorf("closing point index %d emitted", idx)
		}
	}
}

func TestTriangulateDegenerate(t *testing.T) {
	cases := []struct {
		name   string
		points []geom.Coord
	}{
		{"empty", nil},
		{"point", []geom.Coord{{X: 1, Y: 1}}},
		{"segment", []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{"closed segment", []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0}}},
		{"collinear", []geom.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}},
		{"repeated", []geom.Coord{{X: 2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 2}}},
	}
	for _, c := range cases {
		if e := polymesh.Triangulate(c.points); e != nil {
			t.Errorf("%s: got %v, want nil", c.name, e)
		}
	}
}

func TestTriangulateHole(t *testing.T) {
	outer := []geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	hole := []geom.Coord{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 7, Y: 7}, {X: 3, Y: 7}}

	for _, h := range [][]geom.Coord{hole, reverseRing(hole)} {
		e := polymesh.Triangulate(outer, h)
		checkCount(t, e, 8)
		checkTiling(t, e, outer, h)
	}
}

func TestTriangulateHoles(t *testing.T) {
	outer := []geom.Coord{{X: 0, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}, {X: 0, Y: 10}}
	holes := [][]geom.Coord{
		// Three squares on the same sweep lines.
		{{X: 2, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 6}, {X: 2, Y: 6}},
		{{X: 9, Y: 4}, {X: 11, Y: 4}, {X: 11, Y: 6}, {X: 9, Y: 6}},
		{{X: 16, Y: 6}, {X: 18, Y: 6}, {X: 18, Y: 4}, {X: 16, Y: 4}},
		// A hole with a reflex point.
		{{X: 3, Y: 1}, {X: 8, Y: 1}, {X: 8, Y: 2}, {X: 5, Y: 2}, {X: 5, Y: 3}, {X: 3, Y: 3}},
		{{X: 12, Y: 8}, {X: 14, Y: 7.5}, {X: 13, Y: 9}},
	}
	e := polymesh.Triangulate(outer, holes...)
	n := len(outer)
	for _, h := range holes {
		n += len(h)
	}
	checkCount(t, e, n-2+2*len(holes))
	checkTiling(t, e, outer, holes...)
}

func TestTriangulateStarWithHoles(t *testing.T) {
	cache := polymesh.NewCircleCache()
	unit := cache.Circle(24)
	star := make([]geom.Coord, len(unit))
	for i, u := range unit {
		r := 10.0
		if i%2 == 1 {
			r = 4
		}
		star[i] = u.Times(r)
	}
	holes := [][]geom.Coord{
		cache.RegularPolygon(geom.Coord{X: 0, Y: 0}, 1.5, 7),
		cache.RegularPolygon(geom.Coord{X: 2.5, Y: 0.5}, 0.5, 5),
		reverseRing(cache.RegularPolygon(geom.Coord{X: -2.5, Y: -0.5}, 0.5, 6)),
	}
	e := polymesh.Triangulate(star, holes...)
	n := len(star)
	for _, h := range holes {
		n += len(h)
	}
	checkCount(t, e, n-2+2*len(holes))
	checkTiling(t, e, star, holes...)
}

func TestTriangulateCombWithHoles(t *testing.T) {
	holes := [][]geom.Coord{
		{{X: 0.5, Y: 1}, {X: 1.5, Y: 1}, {X: 1.5, Y: 3}, {X: 0.5, Y: 3}},
		{{X: 7.5, Y: 0.5}, {X: 8.5, Y: 0.5}, {X: 8.5, Y: 3.5}, {X: 7.5, Y: 3.5}},
		{{X: 4, Y: 2}, {X: 5, Y: 3}, {X: 4, Y: 3.5}, {X: 3.5, Y: 2.5}},
	}
	e := polymesh.Triangulate(reverseRing(comb), holes...)
	n := len(comb) + 12
	checkCount(t, e, n-2+2*len(holes))
	checkTiling(t, e, reverseRing(comb), holes...)
}

func TestTriangulateDegenerateHole(t *testing.T) {
	outer := []geom.Coord{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	skipped := []geom.Coord{{X: 1, Y: 1}, {X: 2, Y: 2}}
	hole := []geom.Coord{{X: 4, Y: 4}, {X: 6, Y: 4}, {X: 5, Y: 6}}

	e := polymesh.Triangulate(outer, skipped, hole)
	checkCount(t, e, 4+3-2+2)

	// Hole points are numbered after the boundary and the skipped hole.
	points := append(append(append([]geom.Coord(nil), outer...), skipped...), hole...)
	seen := map[int]bool{}
	var area float64
	for i := 0; i < len(e)/3; i++ {
		for _, idx := range e[3*i : 3*i+3] {
			seen[idx] = true
		}
		area += orient(points[e[3*i]], points[e[3*i+1]], points[e[3*i+2]]) / 2
	}
	for _, idx := range []int{4, 5} {
		if seen[idx] {
			t.Errorf("index %d of the skipped hole emitted", idx)
		}
	}
	for _, idx := range []int{6, 7, 8} {
		if !seen[idx] {
			t.Errorf("hole index %d missing", idx)
		}
	}
	if want := 100 - 2.0; math.Abs(area-want) > 1e-9 {
		t.Errorf("area: got %v, want %v", area, want)
	}
}
