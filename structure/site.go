// SPDX-License-Identifier: MIT
package structure

import "github.com/katalvlaran/pairsum/r3"

// Site is one atom of an adapter. Position is Cartesian and U is the
// Cartesian displacement tensor. Isotropic sites carry Uiso in U[0][0]
// (WithUiso fills the whole diagonal).
type Site struct {
	Type        string
	Position    r3.Vector
	Occupancy   float64
	Anisotropic bool
	U           r3.Matrix
}

// NewSite returns a fully occupied, isotropic site with zero displacement.
func NewSite(typ string, x, y, z float64) Site {
	return Site{Type: typ, Position: r3.Vector{x, y, z}, Occupancy: 1}
}

// WithUiso returns a copy with an isotropic tensor uiso·I.
func (s Site) WithUiso(uiso float64) Site {
	s.U = r3.Diagonal(uiso, uiso, uiso)
	s.Anisotropic = false
	return s
}

// WithU returns a copy with an anisotropic tensor u.
func (s Site) WithU(u r3.Matrix) Site {
	s.U = u
	s.Anisotropic = true
	return s
}

// WithOccupancy returns a copy with the given occupancy.
func (s Site) WithOccupancy(occ float64) Site {
	s.Occupancy = occ
	return s
}
