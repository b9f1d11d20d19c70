package polymesh

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Mesh is an indexed triangle mesh. Indices holds one triple per triangle,
// each entry indexing Positions. Normals and UVs are optional; when present
// they run parallel to Positions.
type Mesh struct {
	Positions []r3.Vector
	Indices   []int
	Normals   []r3.Vector
	UVs       []r2.Point
}

// TriangleCount returns the number of triangles in m.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the vertex indices of the i-th triangle.
func (m *Mesh) Triangle(i int) (int, int, int) {
	return m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]
}

// Validate checks that the index list is made of in-range triples and that
// the optional attribute lists are parallel to Positions.
func (m *Mesh) Validate() error {
	if m == nil {
		return errors.New("polymesh: nil mesh")
	}
	if len(m.Indices)%3 != 0 {
		return errors.Errorf("polymesh: index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Positions) {
			return errors.Errorf("polymesh: index %d at %d out of range [0, %d)", idx, i, len(m.Positions))
		}
	}
	if m.Normals != nil && len(m.Normals) != len(m.Positions) {
		return errors.Errorf("polymesh: %d normals for %d positions", len(m.Normals), len(m.Positions))
	}
	if m.UVs != nil && len(m.UVs) != len(m.Positions) {
		return errors.Errorf("polymesh: %d UVs for %d positions", len(m.UVs), len(m.Positions))
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Positions: append([]r3.Vector(nil), m.Positions...),
		Indices:   append([]int(nil), m.Indices...),
	}
	if m.Normals != nil {
		c.Normals = append([]r3.Vector(nil), m.Normals...)
	}
	if m.UVs != nil {
		c.UVs = append([]r2.Point(nil), m.UVs...)
	}
	return c
}

// faceCross returns the unnormalized normal of the triangle (a, b, c); its
// length is twice the triangle area.
func faceCross(a, b, c r3.Vector) r3.Vector {
	return b.Sub(a).Cross(c.Sub(a))
}

// FaceNormal returns the unit normal of the i-th triangle, or the zero
// vector when the triangle is degenerate.
func (m *Mesh) FaceNormal(i int) r3.Vector {
	a, b, c := m.Triangle(i)
	return faceCross(m.Positions[a], m.Positions[b], m.Positions[c]).Normalize()
}

// TriangleArea returns the area of the i-th triangle.
func (m *Mesh) TriangleArea(i int) float64 {
	a, b, c := m.Triangle(i)
	return faceCross(m.Positions[a], m.Positions[b], m.Positions[c]).Norm() / 2
}

// Area returns the total surface area of m.
func (m *Mesh) Area() float64 {
	var sum float64
	for i := 0; i < m.TriangleCount(); i++ {
		sum += m.TriangleArea(i)
	}
	return sum
}

// ComputeNormals replaces m.Normals with area-weighted vertex normals.
// Vertices not used by any triangle get the zero vector.
func (m *Mesh) ComputeNormals() {
	normals := make([]r3.Vector, len(m.Positions))
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		n := faceCross(m.Positions[a], m.Positions[b], m.Positions[c])
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}
