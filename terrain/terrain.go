// Package terrain generates noise heightfield meshes. They are irregular,
// open and mostly smooth, which makes them a convenient workload for mesh
// simplification.
package terrain

import (
	"math/rand"

	"github.com/fogleman/delaunay"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/drawing3d/polymesh"
)

// Config holds the terrain generation options.
type Config struct {
	Seed        int64   // Seed of the point scatter and of the noise
	Size        float64 // Side length of the square footprint
	NumPoints   int     // Number of scattered samples inside the footprint
	Octaves     int     // Noise octaves
	Persistence float64 // Amplitude falloff per octave
	Frequency   float64 // Base noise frequency per unit of length
	Height      float64 // Height of a noise value of 1
}

// NewConfig returns a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Seed:        12345,
		Size:        100,
		NumPoints:   2000,
		Octaves:     4,
		Persistence: 0.5,
		Frequency:   0.02,
		Height:      20,
	}
}

// Generate scatters points over the footprint, connects them with a
// Delaunay triangulation and lifts every point to the noise height. The
// footprint corners are always included so the mesh covers the whole
// square. Triangles are counter-clockwise seen from above and every vertex
// carries its footprint position as UV.
func Generate(cfg *Config) (*polymesh.Mesh, error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	if cfg.Size <= 0 {
		return nil, errors.Errorf("terrain: invalid size %v", cfg.Size)
	}
	if cfg.NumPoints < 0 {
		return nil, errors.Errorf("terrain: invalid point count %d", cfg.NumPoints)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	pts := []delaunay.Point{
		{X: 0, Y: 0},
		{X: cfg.Size, Y: 0},
		{X: cfg.Size, Y: cfg.Size},
		{X: 0, Y: cfg.Size},
	}
	for i := 0; i < cfg.NumPoints; i++ {
		pts = append(pts, delaunay.Point{X: rng.Float64() * cfg.Size, Y: rng.Float64() * cfg.Size})
	}

	tri, err := delaunay.Triangulate(pts)
	if err != nil {
		return nil, errors.Wrap(err, "terrain: triangulation failed")
	}

	noise := NewNoise(cfg.Octaves, cfg.Persistence, cfg.Seed)
	m := &polymesh.Mesh{
		Positions: make([]r3.Vector, len(pts)),
		UVs:       make([]r2.Point, len(pts)),
	}
	for i, p := range pts {
		z := noise.Eval2(p.X*cfg.Frequency, p.Y*cfg.Frequency) * cfg.Height
		m.Positions[i] = r3.Vector{X: p.X, Y: p.Y, Z: z}
		m.UVs[i] = r2.Point{X: p.X / cfg.Size, Y: p.Y / cfg.Size}
	}

	m.Indices = make([]int, 0, len(tri.Triangles))
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		a, b, c := tri.Triangles[i], tri.Triangles[i+1], tri.Triangles[i+2]
		pa, pb, pc := pts[a], pts[b], pts[c]
		o := (pb.X-pa.X)*(pc.Y-pa.Y) - (pb.Y-pa.Y)*(pc.X-pa.X)
		if o == 0 {
			continue
		}
		if o < 0 {
			b, c = c, b
		}
		m.Indices = append(m.Indices, a, b, c)
	}
	m.ComputeNormals()
	return m, nil
}
