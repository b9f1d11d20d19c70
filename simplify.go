package polymesh

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Defaults used by NewOptions. DegenerateCosine and FlipTolerance are
// empirical tuning constants of the quadric edge-collapse scheme.
const (
	DefaultAggressiveness    = 7
	DefaultDegenerateCosine  = 0.999
	DefaultFlipTolerance     = 0.2
	DefaultLosslessThreshold = 1e-3

	defaultMaxIterations         = 100
	defaultMaxLosslessIterations = 9999

	// adjacencyInterval is the number of rounds between two rebuilds of
	// the vertex-to-triangle references in the non-lossless mode.
	adjacencyInterval = 5
)

// Options controls Simplify.
type Options struct {
	TargetTriangleCount int     // Stop once at most this many triangles are left (ignored if Lossless)
	Aggressiveness      float64 // Exponent of the per-round error threshold growth, typically 5..8
	Lossless            bool    // Collapse only near-zero error edges until nothing changes
	Verbose             bool    // Log one line per round

	MaxIterations int           // Round cap; 0 means 100, or 9999 when Lossless
	TimeLimit     time.Duration // Soft wall-clock cap; 0 means none

	DegenerateCosine  float64 // Reject collapses producing edges closer to parallel than this
	FlipTolerance     float64 // Reject collapses whose new face normal aligns less than this
	LosslessThreshold float64 // Error threshold of every round in lossless mode

	Logger *log.Logger // Receives verbose output; nil means log.Default()
}

// NewOptions returns Options with the default tuning.
func NewOptions() *Options {
	return &Options{
		Aggressiveness:    DefaultAggressiveness,
		DegenerateCosine:  DefaultDegenerateCosine,
		FlipTolerance:     DefaultFlipTolerance,
		LosslessThreshold: DefaultLosslessThreshold,
	}
}

// Simplify reduces the triangle count of m by quadric-error edge collapses
// and returns a new, compacted mesh. m is not modified. A nil opts uses
// NewOptions.
func Simplify(m *Mesh, opts *Options) (*Mesh, error) {
	return SimplifyContext(context.Background(), m, opts)
}

// SimplifyContext is like Simplify but checks ctx between rounds. A
// cancelled context aborts with an error; reaching MaxIterations or
// TimeLimit is not an error and yields the mesh simplified so far.
func SimplifyContext(ctx context.Context, m *Mesh, opts *Options) (*Mesh, error) {
	if opts == nil {
		opts = NewOptions()
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	s := newSimplifier(m, opts)
	if err := s.run(ctx); err != nil {
		return nil, err
	}
	return s.compactMesh(), nil
}

// simplifier holds the per-call arenas. Vertex i corresponds to
// m.Positions[i] until compaction.
type simplifier struct {
	opts *Options
	src  *Mesh

	vertices  []vertex
	triangles []triangle
	refs      []ref

	// Scratch space for the flip test, one flag per reference of the
	// collapsing vertex.
	deleted0 []bool
	deleted1 []bool

	// Scratch space for border detection.
	vcount []int
	vids   []int

	deletedTriangles int
}

type vertex struct {
	p      r3.Vector
	q      SymmetricMatrix
	tstart int
	tcount int
	border bool
}

type triangle struct {
	v       [3]int
	err     [4]float64
	deleted bool
	dirty   bool
	n       r3.Vector
}

// ref points from a vertex to one of its triangles.
type ref struct {
	tid     int
	tvertex int
}

func newSimplifier(m *Mesh, opts *Options) *simplifier {
	s := &simplifier{
		opts:      opts,
		src:       m,
		vertices:  make([]vertex, len(m.Positions)),
		triangles: make([]triangle, m.TriangleCount()),
	}
	for i, p := range m.Positions {
		s.vertices[i].p = p
	}
	for i := range s.triangles {
		a, b, c := m.Triangle(i)
		s.triangles[i].v = [3]int{a, b, c}
	}
	return s
}

func (s *simplifier) logf(format string, args ...interface{}) {
	if !s.opts.Verbose {
		return
	}
	logger := s.opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("polymesh: "+format, args...)
}

func (s *simplifier) maxIterations() int {
	switch {
	case s.opts.MaxIterations > 0:
		return s.opts.MaxIterations
	case s.opts.Lossless:
		return defaultMaxLosslessIterations
	}
	return defaultMaxIterations
}

// threshold returns the error below which edges may collapse in the given
// round.
func (s *simplifier) threshold(iteration int) float64 {
	if s.opts.Lossless {
		return s.opts.LosslessThreshold
	}
	return 1e-9 * math.Pow(float64(iteration+3), s.opts.Aggressiveness)
}

func (s *simplifier) targetReached(triangleCount int) bool {
	return !s.opts.Lossless && triangleCount-s.deletedTriangles <= s.opts.TargetTriangleCount
}

func (s *simplifier) run(ctx context.Context) error {
	var deadline time.Time
	if s.opts.TimeLimit > 0 {
		deadline = time.Now().Add(s.opts.TimeLimit)
	}
	triangleCount := len(s.triangles)
	limit := s.maxIterations()
	reseed := false
	for iteration := 0; iteration < limit; iteration++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "polymesh: simplification interrupted")
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			s.logf("time limit reached after %d rounds", iteration)
			return nil
		}
		if s.targetReached(triangleCount) {
			return nil
		}

		seeded := iteration == 0 || reseed
		if s.opts.Lossless || iteration%adjacencyInterval == 0 {
			s.updateMesh(iteration, seeded)
		}
		reseed = false
		for i := range s.triangles {
			s.triangles[i].dirty = false
		}

		threshold := s.threshold(iteration)
		s.logf("round %d: %d triangles, threshold %g", iteration, triangleCount-s.deletedTriangles, threshold)

		// Lossless mode stops only after a pass on freshly seeded quadrics
		// deletes nothing.
		if deleted := s.collapseEdges(threshold, triangleCount); s.opts.Lossless && deleted == 0 {
			if seeded {
				return nil
			}
			s.logf("round %d: no collapse, reseeding quadrics", iteration)
			reseed = true
		}
	}
	s.logf("round limit %d reached", limit)
	return nil
}

// collapseEdges runs one pass over all triangles, collapsing every edge
// whose error is below threshold and whose collapse keeps the surface
// intact. It returns the number of triangles deleted.
func (s *simplifier) collapseEdges(threshold float64, triangleCount int) int {
	before := s.deletedTriangles
	for i := range s.triangles {
		t := &s.triangles[i]
		if t.err[3] > threshold || t.deleted || t.dirty {
			continue
		}
		for j := 0; j < 3; j++ {
			if t.err[j] > threshold {
				continue
			}
			i0 := t.v[j]
			i1 := t.v[(j+1)%3]
			v0 := &s.vertices[i0]
			v1 := &s.vertices[i1]

			// Border vertices only collapse along the border.
			if v0.border != v1.border {
				continue
			}

			_, p := s.edgeError(i0, i1)
			s.deleted0 = resizeFlags(s.deleted0, v0.tcount)
			s.deleted1 = resizeFlags(s.deleted1, v1.tcount)
			if s.flipped(p, i1, v0, s.deleted0) || s.flipped(p, i0, v1, s.deleted1) {
				continue
			}

			v0.p = p
			v0.q = v1.q.Add(v0.q)

			tstart := len(s.refs)
			s.updateTriangles(i0, v0, s.deleted0)
			s.updateTriangles(i0, v1, s.deleted1)
			tcount := len(s.refs) - tstart
			if tcount <= v0.tcount {
				// Reuse the old range of v0.
				copy(s.refs[v0.tstart:], s.refs[tstart:tstart+tcount])
				s.refs = s.refs[:tstart]
			} else {
				v0.tstart = tstart
			}
			v0.tcount = tcount
			break
		}
		if s.targetReached(triangleCount) {
			break
		}
	}
	return s.deletedTriangles - before
}

// flipped reports whether moving vertex v to p would fold or degenerate
// one of its triangles. Triangles that also contain vertex other are
// flagged in deleted since the collapse removes them.
func (s *simplifier) flipped(p r3.Vector, other int, v *vertex, deleted []bool) bool {
	for k := 0; k < v.tcount; k++ {
		r := s.refs[v.tstart+k]
		t := &s.triangles[r.tid]
		if t.deleted {
			continue
		}
		id1 := t.v[(r.tvertex+1)%3]
		id2 := t.v[(r.tvertex+2)%3]
		if id1 == other || id2 == other {
			deleted[k] = true
			continue
		}
		d1 := s.vertices[id1].p.Sub(p)
		d2 := s.vertices[id2].p.Sub(p)
		if d1.Norm2() == 0 || d2.Norm2() == 0 {
			return true
		}
		d1 = d1.Normalize()
		d2 = d2.Normalize()
		if math.Abs(d1.Dot(d2)) > s.opts.DegenerateCosine {
			return true
		}
		n := d1.Cross(d2).Normalize()
		deleted[k] = false
		if n.Dot(t.n) < s.opts.FlipTolerance {
			return true
		}
	}
	return false
}

// updateTriangles re-points the triangles of v to vertex i0 after a
// collapse, deleting the ones flagged in deleted and appending fresh
// references for the survivors.
func (s *simplifier) updateTriangles(i0 int, v *vertex, deleted []bool) {
	for k := 0; k < v.tcount; k++ {
		r := s.refs[v.tstart+k]
		t := &s.triangles[r.tid]
		if t.deleted {
			continue
		}
		if deleted[k] {
			t.deleted = true
			s.deletedTriangles++
			continue
		}
		t.v[r.tvertex] = i0
		t.dirty = true
		s.updateErrors(t)
		s.refs = append(s.refs, r)
	}
}

func (s *simplifier) updateErrors(t *triangle) {
	t.err[0], _ = s.edgeError(t.v[0], t.v[1])
	t.err[1], _ = s.edgeError(t.v[1], t.v[2])
	t.err[2], _ = s.edgeError(t.v[2], t.v[0])
	t.err[3] = math.Min(t.err[0], math.Min(t.err[1], t.err[2]))
}

// edgeError returns the quadric error of collapsing edge (id0, id1) and
// the position the merged vertex would take.
func (s *simplifier) edgeError(id0, id1 int) (float64, r3.Vector) {
	v0 := &s.vertices[id0]
	v1 := &s.vertices[id1]
	q := v0.q.Add(v1.q)
	if !v0.border && !v1.border {
		if p, ok := q.Optimum(); ok {
			return q.VertexError(p), p
		}
	}

	// Singular system or border edge: pick the best of both endpoints and
	// their midpoint.
	p1 := v0.p
	p2 := v1.p
	p3 := p1.Add(p2).Mul(0.5)
	e1 := q.VertexError(p1)
	e2 := q.VertexError(p2)
	e3 := q.VertexError(p3)
	e := math.Min(e1, math.Min(e2, e3))
	var p r3.Vector
	if e1 == e {
		p = p1
	}
	if e2 == e {
		p = p2
	}
	if e3 == e {
		p = p3
	}
	return e, p
}

func resizeFlags(flags []bool, n int) []bool {
	if cap(flags) < n {
		return make([]bool, n)
	}
	return flags[:n]
}
