// SPDX-License-Identifier: MIT
package structure

import (
	"github.com/katalvlaran/pairsum/lattice"
	"github.com/katalvlaran/pairsum/r3"
)

// Periodic is a set of sites in a unit cell repeated by a lattice.
type Periodic struct {
	Atomic
	lat *lattice.Lattice
}

var _ Adapter = (*Periodic)(nil)

// NewPeriodic builds a periodic adapter. Site positions are Cartesian.
func NewPeriodic(lat *lattice.Lattice, sites ...Site) (*Periodic, error) {
	if lat == nil {
		return nil, structureErrorf(opNewPeriodic, ErrNilLattice)
	}
	p := &Periodic{Atomic: Atomic{sites: append([]Site(nil), sites...)}, lat: lat}
	p.tick.Click()
	return p, nil
}

// Lattice returns the cell.
func (p *Periodic) Lattice() *lattice.Lattice { return p.lat }

// ToCartesian converts a site given in fractional coordinates, with a
// tensor in the fractional frame, to the Cartesian site stored by
// adapters.
func (p *Periodic) ToCartesian(s Site) Site {
	s.Position = p.lat.Cartesian(s.Position)
	s.U = p.lat.CartesianMatrix(s.U)
	return s
}

// NumberDensity returns TotalOccupancy per cell volume.
func (p *Periodic) NumberDensity() float64 {
	return p.TotalOccupancy() / p.lat.Volume()
}

// Clone returns an independent copy sharing the immutable lattice.
func (p *Periodic) Clone() Adapter {
	return &Periodic{Atomic: *p.Atomic.clone(), lat: p.lat}
}

// NewBondGenerator returns a generator over periodic images.
func (p *Periodic) NewBondGenerator() BondGenerator {
	n := len(p.sites)
	img := &periodicImages{
		translations: translations{lat: p.lat},
		pos:          make([]r3.Vector, n),
		us:           make([]r3.Matrix, n),
	}
	for i := range p.sites {
		img.pos[i] = p.lat.UCVCartesian(p.sites[i].Position)
		img.us[i] = p.sites[i].U
	}
	return newGenerator(p, img)
}

// Diff compares p with another periodic adapter over the same lattice.
func (p *Periodic) Diff(other Adapter) Difference {
	if sameAdapter(p, other) {
		return identical(p)
	}
	o, ok := other.(*Periodic)
	if !ok || !p.lat.Equal(o.lat) {
		return allDiffer(p, other)
	}
	return headTail(p, other, p.sites, o.sites)
}
