// SPDX-License-Identifier: MIT
package lattice

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pairsum/r3"
)

const (
	opNew      = "New"
	opFromBase = "FromBase"
)

// Lattice holds the cell vectors and the derived transforms.
type Lattice struct {
	a, b, c            float64
	alpha, beta, gamma float64
	base               r3.Matrix // rows are cell vectors
	baseInv            r3.Matrix
	volume             float64
	maxDiagonal        float64
	reciprocalLengths  r3.Vector // |a*|, |b*|, |c*|
}

// New builds a lattice from lengths and angles in degrees. The a vector
// lies along x and b in the xy plane.
func New(a, b, c, alpha, beta, gamma float64) (*Lattice, error) {
	for _, v := range []float64{a, b, c, alpha, beta, gamma} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, latticeErrorf(opNew, ErrBadLattice)
		}
	}
	if a <= 0 || b <= 0 || c <= 0 {
		return nil, latticeErrorf(opNew, fmt.Errorf("lengths (%g, %g, %g): %w", a, b, c, ErrBadLattice))
	}
	for _, ang := range []float64{alpha, beta, gamma} {
		if ang <= 0 || ang >= 180 {
			return nil, latticeErrorf(opNew, fmt.Errorf("angle %g: %w", ang, ErrBadLattice))
		}
	}

	ca, cb, cg := cosd(alpha), cosd(beta), cosd(gamma)
	sg := sind(gamma)
	cy := (ca - cb*cg) / sg
	cz2 := 1 - cb*cb - cy*cy
	if cz2 <= 0 {
		return nil, latticeErrorf(opNew, fmt.Errorf("angles (%g, %g, %g): %w", alpha, beta, gamma, ErrBadLattice))
	}
	base := r3.Rows(
		r3.Vector{a, 0, 0},
		r3.Vector{b * cg, b * sg, 0},
		r3.Vector{c * cb, c * cy, c * math.Sqrt(cz2)},
	)
	l, err := fromBase(base)
	if err != nil {
		return nil, latticeErrorf(opNew, err)
	}
	l.alpha, l.beta, l.gamma = alpha, beta, gamma
	return l, nil
}

// Cubic is a shortcut for New(a, a, a, 90, 90, 90).
func Cubic(a float64) (*Lattice, error) {
	return New(a, a, a, 90, 90, 90)
}

// FromBase builds a lattice whose cell vectors are the rows of base.
func FromBase(base r3.Matrix) (*Lattice, error) {
	l, err := fromBase(base)
	if err != nil {
		return nil, latticeErrorf(opFromBase, err)
	}
	return l, nil
}

func fromBase(base r3.Matrix) (*Lattice, error) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(base[i][j]) || math.IsInf(base[i][j], 0) {
				return nil, ErrBadLattice
			}
		}
	}
	inv, err := base.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrBadLattice)
	}
	l := &Lattice{
		base:    base,
		baseInv: inv,
		volume:  math.Abs(base.Det()),
	}
	va, vb, vc := base.Row(0), base.Row(1), base.Row(2)
	l.a, l.b, l.c = va.Norm(), vb.Norm(), vc.Norm()
	l.alpha = angle(vb, vc)
	l.beta = angle(va, vc)
	l.gamma = angle(va, vb)
	// columns of B⁻¹ are the reciprocal vectors
	for k := 0; k < 3; k++ {
		l.reciprocalLengths[k] = inv.Col(k).Norm()
	}
	for _, d := range []r3.Vector{
		va.Add(vb).Add(vc),
		va.Add(vb).Sub(vc),
		va.Sub(vb).Add(vc),
		vb.Add(vc).Sub(va),
	} {
		l.maxDiagonal = math.Max(l.maxDiagonal, d.Norm())
	}
	return l, nil
}

// Parameters returns (a, b, c, α, β, γ).
func (l *Lattice) Parameters() (a, b, c, alpha, beta, gamma float64) {
	return l.a, l.b, l.c, l.alpha, l.beta, l.gamma
}

// Base returns the cell vectors as matrix rows.
func (l *Lattice) Base() r3.Matrix { return l.base }

// Volume returns the unit cell volume.
func (l *Lattice) Volume() float64 { return l.volume }

// MaxDiagonalLength returns the longest body diagonal of the cell.
func (l *Lattice) MaxDiagonalLength() float64 { return l.maxDiagonal }

// Cartesian converts fractional coordinates to Cartesian.
func (l *Lattice) Cartesian(f r3.Vector) r3.Vector {
	return l.base.Transpose().MulVec(f)
}

// CartesianInt converts an integer translation triplet to Cartesian.
func (l *Lattice) CartesianInt(mno [3]int) r3.Vector {
	return l.Cartesian(r3.Vector{float64(mno[0]), float64(mno[1]), float64(mno[2])})
}

// Fractional converts Cartesian coordinates to fractional.
func (l *Lattice) Fractional(r r3.Vector) r3.Vector {
	return l.baseInv.Transpose().MulVec(r)
}

// UCVFractional wraps fractional coordinates into [0, 1).
func UCVFractional(f r3.Vector) r3.Vector {
	out := f.Sub(f.Floor())
	for k := 0; k < 3; k++ {
		// -1e-17 wraps to 1.0 after rounding
		if out[k] >= 1 {
			out[k] = 0
		}
	}
	return out
}

// UCVCartesian returns the equivalent of r inside the unit cell.
func (l *Lattice) UCVCartesian(r r3.Vector) r3.Vector {
	return l.Cartesian(UCVFractional(l.Fractional(r)))
}

// CartesianMatrix converts a tensor from the fractional frame to Cartesian.
func (l *Lattice) CartesianMatrix(uf r3.Matrix) r3.Matrix {
	return uf.Congruent(l.base.Transpose())
}

// FractionalMatrix converts a Cartesian tensor into the fractional frame.
func (l *Lattice) FractionalMatrix(uc r3.Matrix) r3.Matrix {
	return uc.Congruent(l.baseInv.Transpose())
}

// Equal reports whether both lattices have identical cell vectors.
func (l *Lattice) Equal(o *Lattice) bool {
	if l == nil || o == nil {
		return l == o
	}
	return l.base == o.base
}

// String implements fmt.Stringer.
func (l *Lattice) String() string {
	return fmt.Sprintf("Lattice(a=%g, b=%g, c=%g, alpha=%g, beta=%g, gamma=%g)",
		l.a, l.b, l.c, l.alpha, l.beta, l.gamma)
}

func angle(u, v r3.Vector) float64 {
	cos := u.Dot(v) / (u.Norm() * v.Norm())
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// cosd snaps results within 1e-14 of 0, ±0.5 or ±1 so that right and
// hexagonal angles give exact cells.
func cosd(deg float64) float64 {
	return snapHalf(math.Cos(deg * math.Pi / 180))
}

func sind(deg float64) float64 {
	return snapHalf(math.Sin(deg * math.Pi / 180))
}

func snapHalf(x float64) float64 {
	h := math.Round(2*x) / 2
	if math.Abs(x-h) < 1e-14 {
		return h
	}
	return x
}
