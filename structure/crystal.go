// SPDX-License-Identifier: MIT
package structure

import (
	"math"
	"slices"
	"sync"

	"github.com/katalvlaran/pairsum/lattice"
	"github.com/katalvlaran/pairsum/r3"
	"github.com/katalvlaran/pairsum/ticker"
)

// DefaultSymmetryPrecision is the Cartesian distance under which two
// symmetry copies of a site are merged.
const DefaultSymmetryPrecision = 5e-4

// SymOp is a space-group operation f' = R·f + T in fractional coordinates.
type SymOp struct {
	R r3.Matrix
	T r3.Vector
}

// IdentityOp returns the identity operation.
func IdentityOp() SymOp { return SymOp{R: r3.Identity()} }

// Apply maps fractional coordinates f.
func (op SymOp) Apply(f r3.Vector) r3.Vector {
	return op.R.MulVec(f).Add(op.T)
}

// CrystalOption configures NewCrystal.
type CrystalOption func(*crystalOptions)

type crystalOptions struct {
	precision float64
}

// WithSymmetryPrecision sets the merge distance of symmetry copies.
// Panics on a negative or NaN value.
func WithSymmetryPrecision(eps float64) CrystalOption {
	if eps < 0 || math.IsNaN(eps) {
		panic(panicNegativePrecision)
	}
	return func(o *crystalOptions) { o.precision = eps }
}

type orbitCopy struct {
	pos r3.Vector
	u   r3.Matrix
}

// Crystal is an asymmetric unit of sites expanded by symmetry operations.
// Site accessors describe the asymmetric unit; SiteMultiplicity returns the
// size of each expanded orbit.
type Crystal struct {
	Periodic
	ops       []SymOp
	precision float64

	mu     sync.Mutex
	stamp  ticker.Ticker
	orbits [][]orbitCopy
}

var _ Adapter = (*Crystal)(nil)

// NewCrystal builds a crystal from a lattice, the operations of its space
// group and the asymmetric unit. An empty ops list means P1.
func NewCrystal(lat *lattice.Lattice, ops []SymOp, sites []Site, opts ...CrystalOption) (*Crystal, error) {
	if lat == nil {
		return nil, structureErrorf(opNewCrystal, ErrNilLattice)
	}
	o := crystalOptions{precision: DefaultSymmetryPrecision}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Crystal{
		Periodic:  Periodic{Atomic: Atomic{sites: append([]Site(nil), sites...)}, lat: lat},
		ops:       append([]SymOp(nil), ops...),
		precision: o.precision,
	}
	c.tick.Click()
	return c, nil
}

// SymOps returns a copy of the symmetry operations.
func (c *Crystal) SymOps() []SymOp { return append([]SymOp(nil), c.ops...) }

// SetSymOps replaces the symmetry operations.
func (c *Crystal) SetSymOps(ops []SymOp) {
	c.ops = append([]SymOp(nil), ops...)
	c.tick.Click()
}

// SymmetryPrecision returns the merge distance of symmetry copies.
func (c *Crystal) SymmetryPrecision() float64 { return c.precision }

// SetSymmetryPrecision changes the merge distance.
func (c *Crystal) SetSymmetryPrecision(eps float64) error {
	if eps < 0 || math.IsNaN(eps) {
		return structureErrorf(opSetPrecision, ErrNegativePrecision)
	}
	if eps != c.precision {
		c.precision = eps
		c.tick.Click()
	}
	return nil
}

// SiteMultiplicity returns the number of distinct symmetry copies of site i
// within the unit cell.
func (c *Crystal) SiteMultiplicity(i int) int {
	c.at(i)
	return len(c.expanded()[i])
}

// TotalOccupancy returns Σ occupancy·multiplicity over the asymmetric unit.
func (c *Crystal) TotalOccupancy() float64 { return totalOccupancy(c) }

// NumberDensity returns TotalOccupancy per cell volume.
func (c *Crystal) NumberDensity() float64 {
	return c.TotalOccupancy() / c.lat.Volume()
}

// SymmetryPositions returns the Cartesian positions of all copies of site i.
func (c *Crystal) SymmetryPositions(i int) []r3.Vector {
	c.at(i)
	orbit := c.expanded()[i]
	out := make([]r3.Vector, len(orbit))
	for k := range orbit {
		out[k] = orbit[k].pos
	}
	return out
}

// Clone returns an independent copy. The expansion cache is shared since
// it is never modified in place.
func (c *Crystal) Clone() Adapter {
	c.mu.Lock()
	stamp, orbits := c.stamp, c.orbits
	c.mu.Unlock()
	return &Crystal{
		Periodic:  Periodic{Atomic: *c.Atomic.clone(), lat: c.lat},
		ops:       append([]SymOp(nil), c.ops...),
		precision: c.precision,
		stamp:     stamp,
		orbits:    orbits,
	}
}

// NewBondGenerator returns a generator over translations and symmetry
// copies.
func (c *Crystal) NewBondGenerator() BondGenerator {
	return newGenerator(c, &crystalImages{
		translations: translations{lat: c.lat},
		orbits:       c.expanded(),
	})
}

// Diff compares c with another crystal with the same lattice, operations
// and precision.
func (c *Crystal) Diff(other Adapter) Difference {
	if sameAdapter(c, other) {
		return identical(c)
	}
	o, ok := other.(*Crystal)
	if !ok || !c.lat.Equal(o.lat) || !slices.Equal(c.ops, o.ops) || c.precision != o.precision {
		return allDiffer(c, other)
	}
	return headTail(c, other, c.sites, o.sites)
}

// expanded returns the cached orbits, recomputing them after a mutation.
func (c *Crystal) expanded() [][]orbitCopy {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.orbits != nil && c.stamp == c.tick {
		return c.orbits
	}
	orbits := make([][]orbitCopy, len(c.sites))
	for i := range c.sites {
		orbits[i] = c.expand(c.sites[i])
	}
	c.orbits, c.stamp = orbits, c.tick
	return orbits
}

type orbitAcc struct {
	first r3.Vector
	sumF  r3.Vector
	sumU  r3.Matrix
	n     int
}

// expand applies every operation to s and merges copies closer than the
// symmetry precision, averaging positions and tensors.
//
// Algorithm Outline:
//  1. Convert the position and tensor of s to fractional form. No
//     operations means the identity alone.
//  2. For each operation, map the position into the unit cell and rotate
//     the tensor as R·U·Rᵀ.
//  3. Compare the copy with the first member of every orbit found so far,
//     using the shortest lattice-periodic difference in Cartesian length.
//     Within precision it joins that orbit: its position is unwrapped next
//     to the first member and summed, its tensor is summed.
//  4. Otherwise it starts a new orbit.
//  5. Each orbit becomes one copy at the mean position, wrapped back into
//     the cell, with the mean tensor in Cartesian form.
//
// Complexity:
//
//	Time = O(ops · orbits), at most O(ops²) per site.
func (c *Crystal) expand(s Site) []orbitCopy {
	ops := c.ops
	if len(ops) == 0 {
		ops = []SymOp{IdentityOp()}
	}
	f0 := c.lat.Fractional(s.Position)
	uf0 := c.lat.FractionalMatrix(s.U)

	accs := make([]orbitAcc, 0, len(ops))
	for _, op := range ops {
		f := lattice.UCVFractional(op.Apply(f0))
		uf := uf0.Congruent(op.R)
		merged := false
		for k := range accs {
			d := f.Sub(accs[k].first)
			d = d.Sub(d.Round())
			if c.lat.Cartesian(d).Norm() > c.precision {
				continue
			}
			accs[k].sumF = accs[k].sumF.Add(accs[k].first.Add(d))
			accs[k].sumU = accs[k].sumU.Add(uf)
			accs[k].n++
			merged = true
			break
		}
		if !merged {
			accs = append(accs, orbitAcc{first: f, sumF: f, sumU: uf, n: 1})
		}
	}

	out := make([]orbitCopy, len(accs))
	for k, a := range accs {
		w := 1 / float64(a.n)
		out[k] = orbitCopy{
			pos: c.lat.Cartesian(lattice.UCVFractional(a.sumF.Scale(w))),
			u:   c.lat.CartesianMatrix(a.sumU.Scale(w)),
		}
	}
	return out
}
