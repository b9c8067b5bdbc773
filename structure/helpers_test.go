// SPDX-License-Identifier: MIT
package structure_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairsum/lattice"
	"github.com/katalvlaran/pairsum/r3"
	"github.com/katalvlaran/pairsum/structure"
)

const niA = 3.52

// chain returns n carbon atoms spaced 1 apart along x.
func chain(n int) *structure.Atomic {
	sites := make([]structure.Site, n)
	for i := range sites {
		sites[i] = structure.NewSite("C", float64(i), 0, 0)
	}
	return structure.NewAtomic(sites...)
}

// fccCubic returns the conventional 4-site fcc nickel cell.
func fccCubic(t testing.TB) *structure.Periodic {
	t.Helper()
	lat, err := lattice.Cubic(niA)
	require.NoError(t, err)
	h := niA / 2
	p, err := structure.NewPeriodic(lat,
		structure.NewSite("Ni", 0, 0, 0),
		structure.NewSite("Ni", 0, h, h),
		structure.NewSite("Ni", h, 0, h),
		structure.NewSite("Ni", h, h, 0),
	)
	require.NoError(t, err)
	return p
}

// fccCentering returns the face-centring translations of space group Fm-3m
// restricted to the identity rotation.
func fccCentering() []structure.SymOp {
	id := r3.Identity()
	return []structure.SymOp{
		{R: id},
		{R: id, T: r3.Vector{0, 0.5, 0.5}},
		{R: id, T: r3.Vector{0.5, 0, 0.5}},
		{R: id, T: r3.Vector{0.5, 0.5, 0}},
	}
}

// countBonds counts every pair produced from anchor i0.
func countBonds(gen structure.BondGenerator, i0 int) int {
	gen.SelectAnchor(i0)
	n := 0
	for gen.Rewind(); !gen.Finished(); gen.Next() {
		n++
	}
	return n
}
