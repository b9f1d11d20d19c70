package polymesh

import (
	"testing"

	"github.com/jbeda/geom"
)

var combRing = []geom.Coord{
	{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 1}, {X: 5, Y: 1}, {X: 5, Y: 0}, {X: 9, Y: 0},
	{X: 9, Y: 4}, {X: 7, Y: 4}, {X: 7, Y: 2}, {X: 6, Y: 2}, {X: 6, Y: 4}, {X: 3, Y: 4},
	{X: 3, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
}

func newTestPolygon(ring []geom.Coord, reverse bool) *polygon {
	indices := make([]int, len(ring))
	for i := range indices {
		indices[i] = i
	}
	poly := &polygon{}
	poly.addRing(ring, indices, reverse)
	poly.check()
	return poly
}

func TestClassify(t *testing.T) {
	poly := newTestPolygon(combRing, false)
	want := map[geom.Coord]pointKind{
		{X: 0, Y: 4}: startPoint,
		{X: 3, Y: 4}: startPoint,
		{X: 7, Y: 4}: startPoint,
		{X: 4, Y: 1}: splitPoint,
		{X: 3, Y: 2}: mergePoint,
		{X: 7, Y: 2}: mergePoint,
		{X: 4, Y: 0}: stopPoint,
		{X: 9, Y: 0}: stopPoint,
	}
	swapped := map[pointKind]pointKind{
		regularPoint: regularPoint,
		startPoint:   stopPoint,
		stopPoint:    startPoint,
		splitPoint:   mergePoint,
		mergePoint:   splitPoint,
	}
	for _, p := range poly.points {
		k := classify(p, false)
		if w := want[p.pos]; k != w {
			t.Errorf("classify(%v): got %v, want %v", p.pos, k, w)
		}
		if r := classify(p, true); r != swapped[k] {
			t.Errorf("classify(%v) rotated: got %v, want %v", p.pos, r, swapped[k])
		}
	}
}

func TestSweepOrder(t *testing.T) {
	poly := newTestPolygon(hexagon(), false)
	var got []int
	for _, p := range sweepOrder(poly.points) {
		got = append(got, p.index)
	}
	want := []int{5, 4, 3, 2, 0, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func hexagon() []geom.Coord {
	return []geom.Coord{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 4},
	}
}

func TestSweepDiagonals(t *testing.T) {
	poly := newTestPolygon(combRing, false)
	order := sweepOrder(poly.points)

	var down [][2]geom.Coord
	sweepDiagonals(order, false, func(a, b *polygonPoint) {
		down = append(down, [2]geom.Coord{a.pos, b.pos})
	})
	want := [2]geom.Coord{{X: 7, Y: 2}, {X: 4, Y: 1}}
	if len(down) != 1 || down[0] != want {
		t.Errorf("downward sweep: got %v, want [%v]", down, want)
	}

	// Both merge points get resolved by the upward sweep.
	resolved := map[geom.Coord]bool{}
	sweepDiagonals(reversed(order), true, func(a, b *polygonPoint) {
		resolved[a.pos] = true
		resolved[b.pos] = true
	})
	for _, c := range []geom.Coord{{X: 3, Y: 2}, {X: 7, Y: 2}} {
		if !resolved[c] {
			t.Errorf("merge point %v has no diagonal", c)
		}
	}
}

func TestDiagonalSet(t *testing.T) {
	poly := newTestPolygon(hexagon(), false)
	p := poly.points
	s := newDiagonalSet()
	s.add(p[0], p[3])
	s.add(p[3], p[0])
	s.add(p[0], p[1]) // ring edge
	s.add(p[2], p[2])
	s.add(p[5], p[3])
	if len(s.pairs) != 2 {
		t.Errorf("got %d diagonals, want 2", len(s.pairs))
	}
}

func TestDecomposeHexagon(t *testing.T) {
	poly := newTestPolygon(hexagon(), false)
	poly.connect(poly.points[0], poly.points[3])
	faces := decompose(poly.points, 1)
	if len(faces) != 2 {
		t.Fatalf("got %d faces, want 2", len(faces))
	}
	for _, f := range faces {
		ring := make([]geom.Coord, len(f))
		for i, p := range f {
			ring[i] = p.pos
		}
		if a := signedArea(ring); a <= 0 {
			t.Errorf("face %v has area %v", ring, a)
		}
	}
}

func TestCheckPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("check did not panic on an open ring")
		}
	}()
	poly := newTestPolygon(hexagon(), false)
	poly.points[2].in = nil
	poly.check()
}
