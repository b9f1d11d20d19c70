package polymesh

import (
	"math"

	"github.com/golang/geo/r3"
)

// SymmetricMatrix is a symmetric 4x4 matrix holding a quadric error form.
// Only the upper triangle is stored, row by row:
//
//	m0 m1 m2 m3
//	   m4 m5 m6
//	      m7 m8
//	         m9
type SymmetricMatrix [10]float64

// NewPlaneQuadric returns the fundamental error quadric of the plane
// ax + by + cz + d = 0, the outer product of (a, b, c, d) with itself.
func NewPlaneQuadric(a, b, c, d float64) SymmetricMatrix {
	return SymmetricMatrix{
		a * a, a * b, a * c, a * d,
		b * b, b * c, b * d,
		c * c, c * d,
		d * d,
	}
}

// Add returns the entry-wise sum of q and o.
func (q SymmetricMatrix) Add(o SymmetricMatrix) SymmetricMatrix {
	for i := range q {
		q[i] += o[i]
	}
	return q
}

// Det returns the determinant of the 3x3 matrix whose entries are the
// given indices into q, row by row.
func (q SymmetricMatrix) Det(a11, a12, a13, a21, a22, a23, a31, a32, a33 int) float64 {
	return q[a11]*q[a22]*q[a33] + q[a13]*q[a21]*q[a32] + q[a12]*q[a23]*q[a31] -
		q[a13]*q[a22]*q[a31] - q[a11]*q[a23]*q[a32] - q[a12]*q[a21]*q[a33]
}

// VertexError evaluates the quadric form at v, i.e. [v 1] Q [v 1]ᵀ.
func (q SymmetricMatrix) VertexError(v r3.Vector) float64 {
	x, y, z := v.X, v.Y, v.Z
	return q[0]*x*x + 2*q[1]*x*y + 2*q[2]*x*z + 2*q[3]*x +
		q[4]*y*y + 2*q[5]*y*z + 2*q[6]*y +
		q[7]*z*z + 2*q[8]*z +
		q[9]
}

// Optimum returns the point minimizing the quadric error. The 3x3 system
// is solved through Cramer's rule; ok is false when its determinant is zero
// or the solution is not finite.
func (q SymmetricMatrix) Optimum() (p r3.Vector, ok bool) {
	det := q.Det(0, 1, 2, 1, 4, 5, 2, 5, 7)
	if det == 0 {
		return r3.Vector{}, false
	}
	p = r3.Vector{
		X: -1 / det * q.Det(1, 2, 3, 4, 5, 6, 5, 7, 8),
		Y: 1 / det * q.Det(0, 2, 3, 1, 5, 6, 2, 7, 8),
		Z: -1 / det * q.Det(0, 1, 3, 1, 4, 6, 2, 5, 8),
	}
	if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return r3.Vector{}, false
	}
	return p, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
