// SPDX-License-Identifier: MIT
package calculators

import (
	"fmt"
	"math"
	"slices"

	"fortio.org/safecast"

	"github.com/katalvlaran/pairsum/pairq"
	"github.com/katalvlaran/pairsum/r3"
	"github.com/katalvlaran/pairsum/structure"
	"github.com/katalvlaran/pairsum/ticker"
)

// DefaultBondRmax is the upper distance bound of a new BondCalculator.
const DefaultBondRmax = 5.0

// Layout of one bond in the value buffer.
const (
	offDistance = iota
	offSite0
	offSite1
	offDir0
	offDir1
	offDir2
	chunkSize
)

const (
	direct  = 1.0
	reverse = -1.0
)

// BondCalculator lists the bonds within [rmin, rmax] in both orientations.
type BondCalculator struct {
	*pairq.Base

	coneAxes    []r3.Vector
	coneDegrees []float64
	filterTick  ticker.Ticker
}

// NewBondCalculator returns a calculator with rmax = DefaultBondRmax unless
// opts say otherwise.
func NewBondCalculator(opts ...pairq.Option) *BondCalculator {
	c := &BondCalculator{}
	c.Base = pairq.NewBase(c, append([]pairq.Option{pairq.WithRmax(DefaultBondRmax)}, opts...)...)
	return c
}

// Ticker merges the window and mask clock of Base with the cone filters.
func (c *BondCalculator) Ticker() ticker.Ticker {
	return ticker.Max(c.Base.Ticker(), c.filterTick)
}

// FilterCone keeps bonds whose direction lies within degrees of axis.
// Several cones combine as a union.
func (c *BondCalculator) FilterCone(axis r3.Vector, degrees float64) error {
	n := axis.Norm()
	if n <= r3.Eps || math.IsNaN(n) {
		return fmt.Errorf("calculators: FilterCone axis %v: %w", axis, pairq.ErrInvalidArgument)
	}
	c.coneAxes = append(c.coneAxes, axis.Scale(1/n))
	c.coneDegrees = append(c.coneDegrees, degrees)
	c.filterTick.Click()
	return nil
}

// FilterOff removes every cone filter.
func (c *BondCalculator) FilterOff() {
	if len(c.coneAxes) == 0 {
		return
	}
	c.coneAxes, c.coneDegrees = nil, nil
	c.filterTick.Click()
}

// ResetValue empties the bond list.
func (c *BondCalculator) ResetValue() {
	c.SetValue(c.Value()[:0])
	c.Base.ResetValue()
}

// AddPairContribution appends the bond once for a single visit and in both
// orientations for a doubled one. Coincident sites are skipped.
func (c *BondCalculator) AddPairContribution(gen structure.BondGenerator, scale int) {
	if r3.EpsEq(0, gen.Distance()) {
		return
	}
	if scale > 0 {
		c.appendBond(gen, direct)
	}
	if scale > 1 {
		c.appendBond(gen, reverse)
	}
}

// StashPartialValue is not supported: removing a site renumbers the bonds
// already listed.
func (c *BondCalculator) StashPartialValue() error {
	return fmt.Errorf("calculators: BondCalculator value holds site indices: %w", pairq.ErrNotSupported)
}

// ExecuteParallelMerge appends the bonds of one shard.
func (c *BondCalculator) ExecuteParallelMerge(value []float64) error {
	if len(value)%chunkSize != 0 {
		return fmt.Errorf("calculators: %d values is not a bond list: %w", len(value), pairq.ErrPayload)
	}
	c.AppendValue(value...)
	return nil
}

// FinishValue sorts bonds by distance, then site indices, then direction.
func (c *BondCalculator) FinishValue() {
	v := c.Value()
	chunks := make([][]float64, 0, len(v)/chunkSize)
	for i := 0; i+chunkSize <= len(v); i += chunkSize {
		chunks = append(chunks, slices.Clone(v[i:i+chunkSize]))
	}
	slices.SortFunc(chunks, func(a, b []float64) int { return slices.Compare(a, b) })
	for i, ch := range chunks {
		copy(v[i*chunkSize:], ch)
	}
}

// Count returns the number of listed bonds.
func (c *BondCalculator) Count() int { return len(c.Value()) / chunkSize }

// Distances returns the bond lengths.
func (c *BondCalculator) Distances() []float64 {
	return c.column(offDistance)
}

// Directions returns the vectors from site0 to site1.
func (c *BondCalculator) Directions() []r3.Vector {
	v := c.Value()
	out := make([]r3.Vector, 0, c.Count())
	for i := 0; i+chunkSize <= len(v); i += chunkSize {
		out = append(out, r3.Vector{v[i+offDir0], v[i+offDir1], v[i+offDir2]})
	}
	return out
}

// Sites0 returns the anchor site of every bond.
func (c *BondCalculator) Sites0() []int { return c.sites(offSite0) }

// Sites1 returns the neighbour site of every bond.
func (c *BondCalculator) Sites1() []int { return c.sites(offSite1) }

// Types0 returns the anchor site types.
func (c *BondCalculator) Types0() []string { return c.types(c.Sites0()) }

// Types1 returns the neighbour site types.
func (c *BondCalculator) Types1() []string { return c.types(c.Sites1()) }

func (c *BondCalculator) appendBond(gen structure.BondGenerator, orientation float64) {
	r01 := gen.Displacement().Scale(orientation)
	if !c.inCones(r01.Scale(1 / gen.Distance())) {
		return
	}
	s0, s1 := gen.Site0(), gen.Site1()
	if orientation == reverse {
		s0, s1 = s1, s0
	}
	c.AppendValue(gen.Distance(), float64(s0), float64(s1), r01[0], r01[1], r01[2])
}

func (c *BondCalculator) inCones(unit r3.Vector) bool {
	if len(c.coneAxes) == 0 {
		return true
	}
	for k, axis := range c.coneAxes {
		deg := c.coneDegrees[k]
		if deg >= 180 {
			return true
		}
		cos := math.Max(-1, math.Min(1, unit.Dot(axis)))
		if math.Acos(cos)*180/math.Pi <= deg {
			return true
		}
	}
	return false
}

func (c *BondCalculator) column(off int) []float64 {
	v := c.Value()
	out := make([]float64, 0, c.Count())
	for i := off; i < len(v); i += chunkSize {
		out = append(out, v[i])
	}
	return out
}

func (c *BondCalculator) sites(off int) []int {
	col := c.column(off)
	out := make([]int, len(col))
	for i, f := range col {
		n, err := safecast.Convert[int](f)
		if err != nil {
			panic(fmt.Sprintf("calculators: corrupt site index %g", f))
		}
		out[i] = n
	}
	return out
}

func (c *BondCalculator) types(sites []int) []string {
	stru := c.Structure()
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = stru.SiteType(s)
	}
	return out
}
