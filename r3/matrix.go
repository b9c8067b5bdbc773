// SPDX-License-Identifier: MIT
package r3

import (
	"fmt"
	"math"
)

// Matrix is a row-major 3×3 matrix.
type Matrix [3][3]float64

// Identity returns the 3×3 identity.
func Identity() Matrix {
	return Matrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Diagonal returns diag(a, b, c).
func Diagonal(a, b, c float64) Matrix {
	return Matrix{{a, 0, 0}, {0, b, 0}, {0, 0, c}}
}

// Rows builds a matrix whose rows are the given vectors.
func Rows(a, b, c Vector) Matrix {
	return Matrix{a, b, c}
}

// Row returns row i.
func (m Matrix) Row(i int) Vector { return Vector(m[i]) }

// Col returns column j.
func (m Matrix) Col(j int) Vector {
	return Vector{m[0][j], m[1][j], m[2][j]}
}

// Add returns m + n.
func (m Matrix) Add(n Matrix) Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] + n[i][j]
		}
	}
	return out
}

// Scale returns s·m.
func (m Matrix) Scale(s float64) Matrix {
	var out Matrix
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = s * m[i][j]
		}
	}
	return out
}

// Mul returns the product m·n.
func (m Matrix) Mul(n Matrix) Matrix {
	var (
		out  Matrix
		sum  float64
		i, j int
	)
	for i = 0; i < 3; i++ {
		for j = 0; j < 3; j++ {
			sum = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
			out[i][j] = sum
		}
	}
	return out
}

// MulVec returns m·v.
func (m Matrix) MulVec(v Vector) Vector {
	return Vector{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// Transpose returns mᵀ.
func (m Matrix) Transpose() Matrix {
	return Matrix{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Trace returns the sum of the diagonal.
func (m Matrix) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// Det returns the determinant.
func (m Matrix) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Inverse returns m⁻¹ through the adjugate. A determinant within Eps of
// zero yields ErrSingular.
func (m Matrix) Inverse() (Matrix, error) {
	det := m.Det()
	if math.Abs(det) <= Eps || math.IsNaN(det) {
		return Matrix{}, fmt.Errorf("Inverse: det=%g: %w", det, ErrSingular)
	}
	inv := 1.0 / det
	return Matrix{
		{
			(m[1][1]*m[2][2] - m[1][2]*m[2][1]) * inv,
			(m[0][2]*m[2][1] - m[0][1]*m[2][2]) * inv,
			(m[0][1]*m[1][2] - m[0][2]*m[1][1]) * inv,
		},
		{
			(m[1][2]*m[2][0] - m[1][0]*m[2][2]) * inv,
			(m[0][0]*m[2][2] - m[0][2]*m[2][0]) * inv,
			(m[0][2]*m[1][0] - m[0][0]*m[1][2]) * inv,
		},
		{
			(m[1][0]*m[2][1] - m[1][1]*m[2][0]) * inv,
			(m[0][1]*m[2][0] - m[0][0]*m[2][1]) * inv,
			(m[0][0]*m[1][1] - m[0][1]*m[1][0]) * inv,
		},
	}, nil
}

// Congruent returns a·m·aᵀ, the change of frame for a second-rank tensor.
func (m Matrix) Congruent(a Matrix) Matrix {
	return a.Mul(m).Mul(a.Transpose())
}
