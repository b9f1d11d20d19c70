package polymesh

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// updateMesh drops deleted triangles and rebuilds the vertex-to-triangle
// references. With seed set it also recomputes the quadrics, the face
// normals, the border flags and the edge errors from the current surface.
func (s *simplifier) updateMesh(iteration int, seed bool) {
	if iteration > 0 {
		dst := 0
		for _, t := range s.triangles {
			if !t.deleted {
				s.triangles[dst] = t
				dst++
			}
		}
		s.triangles = s.triangles[:dst]
	}

	if seed {
		s.initQuadrics()
	}

	s.buildRefs()

	if seed {
		s.markBorders()
		for i := range s.triangles {
			s.updateErrors(&s.triangles[i])
		}
	}
}

func (s *simplifier) initQuadrics() {
	for i := range s.vertices {
		s.vertices[i].q = SymmetricMatrix{}
	}
	for i := range s.triangles {
		t := &s.triangles[i]
		p0 := s.vertices[t.v[0]].p
		p1 := s.vertices[t.v[1]].p
		p2 := s.vertices[t.v[2]].p
		n := faceCross(p0, p1, p2).Normalize()
		t.n = n
		plane := NewPlaneQuadric(n.X, n.Y, n.Z, -n.Dot(p0))
		for _, v := range t.v {
			s.vertices[v].q = s.vertices[v].q.Add(plane)
		}
	}
}

// buildRefs lays out the references of every vertex contiguously, in
// triangle order.
func (s *simplifier) buildRefs() {
	for i := range s.vertices {
		s.vertices[i].tstart = 0
		s.vertices[i].tcount = 0
	}
	for _, t := range s.triangles {
		for _, v := range t.v {
			s.vertices[v].tcount++
		}
	}
	tstart := 0
	for i := range s.vertices {
		v := &s.vertices[i]
		v.tstart = tstart
		tstart += v.tcount
		v.tcount = 0
	}

	if cap(s.refs) < len(s.triangles)*3 {
		s.refs = make([]ref, len(s.triangles)*3)
	}
	s.refs = s.refs[:len(s.triangles)*3]
	for i, t := range s.triangles {
		for j, id := range t.v {
			v := &s.vertices[id]
			s.refs[v.tstart+v.tcount] = ref{tid: i, tvertex: j}
			v.tcount++
		}
	}
}

// markBorders flags vertices lying on an open edge: a neighbour that shows
// up in exactly one of the vertex's triangles closes a border edge.
func (s *simplifier) markBorders() {
	for i := range s.vertices {
		s.vertices[i].border = false
	}
	for i := range s.vertices {
		v := &s.vertices[i]
		s.vcount = s.vcount[:0]
		s.vids = s.vids[:0]
		for k := 0; k < v.tcount; k++ {
			t := &s.triangles[s.refs[v.tstart+k].tid]
			for _, id := range t.v {
				ofs := 0
				for ofs < len(s.vcount) && s.vids[ofs] != id {
					ofs++
				}
				if ofs == len(s.vcount) {
					s.vcount = append(s.vcount, 1)
					s.vids = append(s.vids, id)
				} else {
					s.vcount[ofs]++
				}
			}
		}
		for j, c := range s.vcount {
			if c == 1 {
				s.vertices[s.vids[j]].border = true
			}
		}
	}
}

// compactMesh drops deleted triangles and unreferenced vertices and
// renumbers what is left. Normals and UVs of surviving vertices are kept.
func (s *simplifier) compactMesh() *Mesh {
	for i := range s.vertices {
		s.vertices[i].tcount = 0
	}
	dst := 0
	for _, t := range s.triangles {
		if t.deleted {
			continue
		}
		s.triangles[dst] = t
		dst++
		for _, v := range t.v {
			s.vertices[v].tcount = 1
		}
	}
	s.triangles = s.triangles[:dst]

	withNormals := len(s.src.Normals) == len(s.src.Positions)
	withUVs := len(s.src.UVs) == len(s.src.Positions)
	out := &Mesh{}
	for i := range s.vertices {
		v := &s.vertices[i]
		if v.tcount == 0 {
			continue
		}
		v.tstart = len(out.Positions)
		out.Positions = append(out.Positions, v.p)
		if withNormals {
			out.Normals = append(out.Normals, s.src.Normals[i])
		}
		if withUVs {
			out.UVs = append(out.UVs, s.src.UVs[i])
		}
	}
	if out.Positions == nil {
		out.Positions = []r3.Vector{}
	}
	if withUVs && out.UVs == nil {
		out.UVs = []r2.Point{}
	}

	out.Indices = make([]int, 0, len(s.triangles)*3)
	for _, t := range s.triangles {
		for _, v := range t.v {
			out.Indices = append(out.Indices, s.vertices[v].tstart)
		}
	}
	return out
}
