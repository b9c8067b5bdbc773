// SPDX-License-Identifier: MIT
// Package lattice describes a periodic unit cell and enumerates the lattice
// translations that fall inside a spherical shell.
//
// A Lattice is immutable once built. It is created either from the six
// lattice parameters (a, b, c in length units, α, β, γ in degrees) or from
// three base vectors given as matrix rows. Conversions between Cartesian
// and fractional coordinates follow r = Bᵀ·f where the rows of B are the
// cell vectors.
//
// PointsInSphere is an external iterator over integer triplets (m, n, o)
// whose translation m·a + n·b + o·c has a length in [rmin, rmax]. Points
// come out in non-decreasing length, ties broken by the triplet, so the
// order is reproducible across runs.
//
// Errors:
//
//	ErrBadLattice - non-positive lengths, angles outside (0°, 180°),
//	                non-finite input or a degenerate (zero volume) cell.
package lattice
