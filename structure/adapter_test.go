// SPDX-License-Identifier: MIT
package structure_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairsum/lattice"
	"github.com/katalvlaran/pairsum/r3"
	"github.com/katalvlaran/pairsum/structure"
)

func TestAtomic_Accessors(t *testing.T) {
	s := structure.NewSite("O", 1, 2, 3).WithOccupancy(0.5).WithUiso(0.01)
	a := structure.NewAtomic(structure.NewSite("H", 0, 0, 0), s)

	assert.Equal(t, 2, a.CountSites())
	assert.Equal(t, "O", a.SiteType(1))
	assert.Equal(t, r3.Vector{1, 2, 3}, a.SitePosition(1))
	assert.Equal(t, 0.5, a.SiteOccupancy(1))
	assert.False(t, a.SiteAnisotropy(1))
	assert.Equal(t, r3.Diagonal(0.01, 0.01, 0.01), a.SiteDisplacement(1))
	assert.Equal(t, 1, a.SiteMultiplicity(0))
	assert.Equal(t, 1.5, a.TotalOccupancy())
	assert.Equal(t, 0.0, a.NumberDensity())
	assert.Equal(t, 0.01, structure.MaxUii(a))
}

func TestAtomic_OutOfRange(t *testing.T) {
	a := chain(3)

	_, err := a.Site(3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, structure.ErrSiteIndex))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		perr, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(perr, structure.ErrSiteIndex))
	}()
	a.SitePosition(-1)
}

func TestAtomic_MutatorsClickTicker(t *testing.T) {
	a := chain(3)
	t0 := a.Ticker()

	a.Append(structure.NewSite("N", 5, 0, 0))
	t1 := a.Ticker()
	assert.True(t, t1.After(t0))

	require.NoError(t, a.Insert(0, structure.NewSite("B", -1, 0, 0)))
	assert.Equal(t, "B", a.SiteType(0))
	require.NoError(t, a.SetSite(1, structure.NewSite("Si", 0, 0, 0)))
	require.NoError(t, a.Remove(4))
	assert.Equal(t, 4, a.CountSites())
	assert.True(t, a.Ticker().After(t1))

	assert.True(t, errors.Is(a.Insert(9, structure.Site{}), structure.ErrSiteIndex))
	assert.True(t, errors.Is(a.Remove(4), structure.ErrSiteIndex))
	assert.True(t, errors.Is(a.SetSite(-1, structure.Site{}), structure.ErrSiteIndex))
}

func TestAtomic_CloneIsIndependent(t *testing.T) {
	a := chain(3)
	c := a.Clone().(*structure.Atomic)
	assert.Equal(t, a.Ticker(), c.Ticker())

	require.NoError(t, c.Remove(0))
	assert.Equal(t, 3, a.CountSites())
	assert.Equal(t, 2, c.CountSites())
}

func TestPeriodic_Basics(t *testing.T) {
	_, err := structure.NewPeriodic(nil)
	assert.True(t, errors.Is(err, structure.ErrNilLattice))

	p := fccCubic(t)
	assert.InDelta(t, 4/(niA*niA*niA), p.NumberDensity(), 1e-12)
	assert.Equal(t, 4.0, p.TotalOccupancy())

	s := p.ToCartesian(structure.NewSite("Ni", 0.5, 0.5, 0))
	assert.True(t, r3.VecEpsEq(r3.Vector{niA / 2, niA / 2, 0}, s.Position, 1e-12))
}

func TestCrystal_Expansion(t *testing.T) {
	lat, err := lattice.Cubic(niA)
	require.NoError(t, err)

	c, err := structure.NewCrystal(lat, fccCentering(), []structure.Site{structure.NewSite("Ni", 0, 0, 0)})
	require.NoError(t, err)
	assert.Equal(t, 1, c.CountSites())
	assert.Equal(t, 4, c.SiteMultiplicity(0))
	assert.Equal(t, 4.0, c.TotalOccupancy())
	assert.InDelta(t, 4/(niA*niA*niA), c.NumberDensity(), 1e-12)
	assert.Len(t, c.SymmetryPositions(0), 4)
}

func TestCrystal_MergesCoincidentCopies(t *testing.T) {
	lat, err := lattice.Cubic(4)
	require.NoError(t, err)
	ops := []structure.SymOp{structure.IdentityOp(), {R: r3.Diagonal(-1, -1, -1)}}

	c, err := structure.NewCrystal(lat, ops, []structure.Site{
		structure.NewSite("A", 0, 0, 0),
		structure.NewSite("B", 2, 2, 2),
		structure.NewSite("C", 0.4, 0, 0),
		structure.NewSite("D", 1e-4, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.SiteMultiplicity(0), "origin is its own inverse")
	assert.Equal(t, 1, c.SiteMultiplicity(1), "cell centre maps onto itself modulo a lattice vector")
	assert.Equal(t, 2, c.SiteMultiplicity(2))
	assert.Equal(t, 1, c.SiteMultiplicity(3), "copies within precision are merged")
	pos := c.SymmetryPositions(3)
	wrapped := math.Min(pos[0][0], 4-pos[0][0])
	assert.InDelta(t, 0, wrapped, 1e-9, "merged position is the average")

	require.NoError(t, c.SetSymmetryPrecision(0))
	assert.Equal(t, 2, c.SiteMultiplicity(3), "cache follows precision changes")
	assert.True(t, errors.Is(c.SetSymmetryPrecision(-1), structure.ErrNegativePrecision))
}

func TestCrystal_TensorTransform(t *testing.T) {
	lat, err := lattice.Cubic(5)
	require.NoError(t, err)
	rot := r3.Matrix{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}}
	ops := []structure.SymOp{structure.IdentityOp(), {R: rot}}
	u := r3.Diagonal(0.01, 0.02, 0.03)

	c, err := structure.NewCrystal(lat, ops, []structure.Site{structure.NewSite("A", 1, 0, 0).WithU(u)})
	require.NoError(t, err)
	require.Equal(t, 2, c.SiteMultiplicity(0))

	gen := c.NewBondGenerator()
	require.NoError(t, gen.SetRmax(2))
	gen.SelectAnchor(0)
	found := false
	for gen.Rewind(); !gen.Finished(); gen.Next() {
		if r3.VecEpsEq(gen.R1(), r3.Vector{0, 1, 0}, 1e-9) {
			found = true
			assert.InDelta(t, 0.02, gen.U1()[0][0], 1e-12)
			assert.InDelta(t, 0.01, gen.U1()[1][1], 1e-12)
		}
	}
	assert.True(t, found, "rotated copy sits at (0, 1, 0)")
}

func TestWithSymmetryPrecision_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "structure: WithSymmetryPrecision(eps<0)", func() {
		structure.WithSymmetryPrecision(-1)
	})
	_, err := structure.NewCrystal(nil, nil, nil)
	assert.True(t, errors.Is(err, structure.ErrNilLattice))
}

func TestMeanSquareDisplacement(t *testing.T) {
	u := r3.Diagonal(0.01, 0.02, 0.03)
	assert.Equal(t, 0.01, structure.MeanSquareDisplacement(u, r3.Vector{0, 0, 5}, false))
	assert.InDelta(t, 0.03, structure.MeanSquareDisplacement(u, r3.Vector{0, 0, 5}, true), 1e-15)
	assert.InDelta(t, 0.015, structure.MeanSquareDisplacement(u, r3.Vector{1, 1, 0}, true), 1e-15)
	assert.InDelta(t, 0.02, structure.MeanSquareDisplacement(u, r3.Vector{}, true), 1e-15)
}
