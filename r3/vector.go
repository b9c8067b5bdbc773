// SPDX-License-Identifier: MIT
package r3

import "math"

// Vector is a Cartesian or fractional 3-vector.
type Vector [3]float64

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return Vector{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns s·v.
func (v Vector) Scale(s float64) Vector {
	return Vector{s * v[0], s * v[1], s * v[2]}
}

// Dot returns the scalar product.
func (v Vector) Dot(w Vector) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Cross returns the vector product v × w.
func (v Vector) Cross(w Vector) Vector {
	return Vector{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length.
func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Floor applies math.Floor per component.
func (v Vector) Floor() Vector {
	return Vector{math.Floor(v[0]), math.Floor(v[1]), math.Floor(v[2])}
}

// Round applies math.Round per component.
func (v Vector) Round() Vector {
	return Vector{math.Round(v[0]), math.Round(v[1]), math.Round(v[2])}
}

// Distance returns |a - b|.
func Distance(a, b Vector) float64 {
	return a.Sub(b).Norm()
}
