package polymesh

import (
	"math"
	"sync"

	"github.com/jbeda/geom"
)

// CircleCache memoizes unit-circle subdivisions. It is safe for
// concurrent use; mesh builders own one and pass it around instead of
// relying on shared global state.
type CircleCache struct {
	mu      sync.Mutex
	circles map[int][]geom.Coord
}

func NewCircleCache() *CircleCache {
	return &CircleCache{
		circles: map[int][]geom.Coord{},
	}
}

// Circle returns n points evenly spaced counter-clockwise on the unit
// circle, starting at (1, 0). The returned slice is shared between calls
// and must not be modified. n is clamped to at least 3.
func (c *CircleCache) Circle(n int) []geom.Coord {
	if n < 3 {
		n = 3
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if pts, ok := c.circles[n]; ok {
		return pts
	}
	pts := make([]geom.Coord, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Coord{X: math.Cos(a), Y: math.Sin(a)}
	}
	c.circles[n] = pts
	return pts
}

// RegularPolygon returns a new counter-clockwise n-gon inscribed in the
// circle of the given center and radius.
func (c *CircleCache) RegularPolygon(center geom.Coord, radius float64, n int) []geom.Coord {
	unit := c.Circle(n)
	pts := make([]geom.Coord, len(unit))
	for i, u := range unit {
		pts[i] = u.Times(radius).Plus(center)
	}
	return pts
}

// Len returns the number of cached subdivisions.
func (c *CircleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.circles)
}
