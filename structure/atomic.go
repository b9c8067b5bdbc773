// SPDX-License-Identifier: MIT
package structure

import (
	"github.com/katalvlaran/pairsum/r3"
	"github.com/katalvlaran/pairsum/ticker"
)

// Atomic is a finite, non-periodic collection of sites.
type Atomic struct {
	sites []Site
	tick  ticker.Ticker
}

var _ Adapter = (*Atomic)(nil)

// NewAtomic copies sites into a new adapter.
func NewAtomic(sites ...Site) *Atomic {
	a := &Atomic{sites: append([]Site(nil), sites...)}
	a.tick.Click()
	return a
}

func (a *Atomic) at(i int) *Site {
	if i < 0 || i >= len(a.sites) {
		panic(indexError(opSite, i, len(a.sites)))
	}
	return &a.sites[i]
}

// CountSites returns the number of sites.
func (a *Atomic) CountSites() int { return len(a.sites) }

// SiteType returns the type symbol of site i.
func (a *Atomic) SiteType(i int) string { return a.at(i).Type }

// SitePosition returns the Cartesian position of site i.
func (a *Atomic) SitePosition(i int) r3.Vector { return a.at(i).Position }

// SiteOccupancy returns the occupancy of site i.
func (a *Atomic) SiteOccupancy(i int) float64 { return a.at(i).Occupancy }

// SiteAnisotropy reports whether site i has an anisotropic tensor.
func (a *Atomic) SiteAnisotropy(i int) bool { return a.at(i).Anisotropic }

// SiteDisplacement returns the Cartesian displacement tensor of site i.
func (a *Atomic) SiteDisplacement(i int) r3.Matrix { return a.at(i).U }

// SiteMultiplicity is always 1 for plain sites.
func (a *Atomic) SiteMultiplicity(i int) int {
	a.at(i)
	return 1
}

// NumberDensity is 0 for a non-periodic structure.
func (a *Atomic) NumberDensity() float64 { return 0 }

// TotalOccupancy returns Σ occupancy.
func (a *Atomic) TotalOccupancy() float64 { return totalOccupancy(a) }

// Ticker returns the time of the last mutation.
func (a *Atomic) Ticker() ticker.Ticker { return a.tick }

// Site returns a copy of site i.
func (a *Atomic) Site(i int) (Site, error) {
	if i < 0 || i >= len(a.sites) {
		return Site{}, indexError(opSite, i, len(a.sites))
	}
	return a.sites[i], nil
}

// Sites returns a copy of all sites.
func (a *Atomic) Sites() []Site {
	return append([]Site(nil), a.sites...)
}

// Append adds sites at the end.
func (a *Atomic) Append(sites ...Site) {
	a.sites = append(a.sites, sites...)
	a.tick.Click()
}

// Insert places s before index i. i == CountSites() appends.
func (a *Atomic) Insert(i int, s Site) error {
	if i < 0 || i > len(a.sites) {
		return indexError(opInsert, i, len(a.sites))
	}
	a.sites = append(a.sites, Site{})
	copy(a.sites[i+1:], a.sites[i:])
	a.sites[i] = s
	a.tick.Click()
	return nil
}

// Remove deletes site i.
func (a *Atomic) Remove(i int) error {
	if i < 0 || i >= len(a.sites) {
		return indexError(opRemove, i, len(a.sites))
	}
	a.sites = append(a.sites[:i], a.sites[i+1:]...)
	a.tick.Click()
	return nil
}

// SetSite replaces site i.
func (a *Atomic) SetSite(i int, s Site) error {
	if i < 0 || i >= len(a.sites) {
		return indexError(opSetSite, i, len(a.sites))
	}
	a.sites[i] = s
	a.tick.Click()
	return nil
}

// Clone returns an independent copy with the same ticker.
func (a *Atomic) Clone() Adapter {
	return a.clone()
}

func (a *Atomic) clone() *Atomic {
	return &Atomic{sites: append([]Site(nil), a.sites...), tick: a.tick}
}

// NewBondGenerator returns a generator over plain pairs.
func (a *Atomic) NewBondGenerator() BondGenerator {
	return newGenerator(a, &plainImages{stru: a})
}

// Diff compares a with another plain adapter.
func (a *Atomic) Diff(other Adapter) Difference {
	if sameAdapter(a, other) {
		return identical(a)
	}
	o, ok := other.(*Atomic)
	if !ok {
		return allDiffer(a, other)
	}
	return headTail(a, other, a.sites, o.sites)
}
