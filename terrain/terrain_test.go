package terrain_test

import (
	"math"
	"testing"

	"github.com/drawing3d/polymesh"
	"github.com/drawing3d/polymesh/terrain"
)

func TestNoiseRange(t *testing.T) {
	n := terrain.NewNoise(4, 0.5, 7)
	for i := 0; i < 100; i++ {
		v := n.Eval2(float64(i)*0.37, float64(i)*-0.11)
		if v < 0 || v > 1 {
			t.Fatalf("Eval2 out of [0, 1]: %v", v)
		}
	}
	if a, b := n.Eval2(1.5, 2.5), terrain.NewNoise(4, 0.5, 7).Eval2(1.5, 2.5); a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestGenerate(t *testing.T) {
	cfg := terrain.NewConfig()
	cfg.NumPoints = 500
	m, err := terrain.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if got := len(m.Positions); got != cfg.NumPoints+4 {
		t.Errorf("vertex count: got %d, want %d", got, cfg.NumPoints+4)
	}
	var footprint float64
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		pa, pb, pc := m.Positions[a], m.Positions[b], m.Positions[c]
		o := (pb.X-pa.X)*(pc.Y-pa.Y) - (pb.Y-pa.Y)*(pc.X-pa.X)
		if o <= 0 {
			t.Fatalf("triangle %d is not counter-clockwise", i)
		}
		footprint += o / 2
		if n := m.FaceNormal(i); n.Z <= 0 {
			t.Fatalf("triangle %d faces down: %v", i, n)
		}
	}
	if want := cfg.Size * cfg.Size; math.Abs(footprint-want) > 1e-6*want {
		t.Errorf("footprint: got %v, want %v", footprint, want)
	}
}

func TestGenerateInvalid(t *testing.T) {
	cfg := terrain.NewConfig()
	cfg.Size = 0
	if _, err := terrain.Generate(cfg); err == nil {
		t.Error("Generate accepted a zero size")
	}
}

func TestSimplifyTerrain(t *testing.T) {
	cfg := terrain.NewConfig()
	cfg.NumPoints = 1500
	m, err := terrain.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	opts := polymesh.NewOptions()
	opts.TargetTriangleCount = m.TriangleCount() / 4
	s, err := polymesh.Simplify(m, opts)
	if err != nil {
		t.Fatal(err)
	}
	if got, max := s.TriangleCount(), m.TriangleCount()/2; got > max {
		t.Errorf("triangle count: got %d, want at most %d", got, max)
	}
	if len(s.UVs) != len(s.Positions) || len(s.Normals) != len(s.Positions) {
		t.Errorf("attributes dropped: %d positions, %d uvs, %d normals", len(s.Positions), len(s.UVs), len(s.Normals))
	}
	for i := 0; i < s.TriangleCount(); i++ {
		a, b, c := s.Triangle(i)
		if a == b || b == c || c == a {
			t.Fatalf("triangle %d repeats a vertex", i)
		}
		if area := s.TriangleArea(i); area <= 0 {
			t.Fatalf("triangle %d has area %v", i, area)
		}
	}
}
