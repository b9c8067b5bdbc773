// SPDX-License-Identifier: MIT
package structure

import (
	"math"

	"github.com/katalvlaran/pairsum/r3"
	"github.com/katalvlaran/pairsum/ticker"
)

// Adapter is the read-only view of a structure consumed by pair
// quantities. Scalar accessors panic with an error wrapping ErrSiteIndex
// on an invalid index, the same way a slice would.
type Adapter interface {
	CountSites() int
	SiteType(i int) string
	SitePosition(i int) r3.Vector
	SiteOccupancy(i int) float64
	SiteAnisotropy(i int) bool
	SiteDisplacement(i int) r3.Matrix
	SiteMultiplicity(i int) int

	// NumberDensity is TotalOccupancy per unit volume, 0 without a lattice.
	NumberDensity() float64
	// TotalOccupancy is Σ occupancy·multiplicity.
	TotalOccupancy() float64

	Clone() Adapter
	NewBondGenerator() BondGenerator
	Diff(other Adapter) Difference

	// Ticker is clicked by every mutation of the adapter.
	Ticker() ticker.Ticker
}

func totalOccupancy(a Adapter) float64 {
	var sum float64
	for i, n := 0, a.CountSites(); i < n; i++ {
		sum += a.SiteOccupancy(i) * float64(a.SiteMultiplicity(i))
	}
	return sum
}

// MaxUii returns the largest diagonal element of all displacement tensors.
func MaxUii(a Adapter) float64 {
	var out float64
	for i, n := 0, a.CountSites(); i < n; i++ {
		u := a.SiteDisplacement(i)
		out = math.Max(out, math.Max(u[0][0], math.Max(u[1][1], u[2][2])))
	}
	return out
}

// MeanSquareDisplacement returns the mean-square displacement of a site
// along direction s. Isotropic sites use U[0][0]. A zero direction on an
// anisotropic site averages the diagonal.
func MeanSquareDisplacement(u r3.Matrix, s r3.Vector, anisotropic bool) float64 {
	if !anisotropic {
		return u[0][0]
	}
	n := s.Norm()
	if n == 0 {
		return u.Trace() / 3
	}
	sn := s.Scale(1 / n)
	return sn.Dot(u.MulVec(sn))
}
