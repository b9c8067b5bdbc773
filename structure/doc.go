// SPDX-License-Identifier: MIT
// Package structure adapts atomic structure models to the pair-summation
// engine.
//
// An Adapter is an ordered snapshot of sites. Three shapes are provided:
//
//	Atomic   - plain sites in Cartesian space
//	Periodic - sites in a unit cell repeated by a lattice
//	Crystal  - an asymmetric unit expanded by space-group operations
//
// Every adapter builds a BondGenerator, an external iterator over the pairs
// (anchor site, neighbour image) inside a distance window. Plain adapters
// yield one image per neighbour, periodic ones add the lattice translations
// that can reach the window and crystal ones additionally iterate the
// symmetry orbit of every neighbour.
//
// Diff compares two adapters and reports which sites of the old snapshot
// have to be removed and which sites of the new one have to be added to
// transform one into the other. Evaluators use it to update a pair sum
// incrementally.
//
// Adapters are snapshots: mutators exist for building and for
// clone-then-edit workflows, and each mutation clicks the adapter ticker so
// that cached results keyed on it are invalidated.
package structure
