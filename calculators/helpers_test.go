// SPDX-License-Identifier: MIT
package calculators_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairsum/lattice"
	"github.com/katalvlaran/pairsum/structure"
)

const niA = 3.52

// line returns n atoms spaced 1 apart along x.
func line(n int) *structure.Atomic {
	sites := make([]structure.Site, n)
	for i := range sites {
		sites[i] = structure.NewSite("C", float64(i), 0, 0)
	}
	return structure.NewAtomic(sites...)
}

// salt returns Na Cl Na Cl spaced 1 apart along x.
func salt() *structure.Atomic {
	return structure.NewAtomic(
		structure.NewSite("Na", 0, 0, 0),
		structure.NewSite("Cl", 1, 0, 0),
		structure.NewSite("Na", 2, 0, 0),
		structure.NewSite("Cl", 3, 0, 0),
	)
}

// nickel returns the conventional fcc nickel cell.
func nickel(t testing.TB) *structure.Periodic {
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
