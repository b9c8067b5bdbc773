// SPDX-License-Identifier: MIT
package structure

import (
	"errors"
	"fmt"
)

var (
	// ErrSiteIndex indicates a site index outside [0, CountSites()).
	ErrSiteIndex = errors.New("structure: site index out of range")

	// ErrNilLattice indicates that a periodic shape was built without a lattice.
	ErrNilLattice = errors.New("structure: lattice is nil")

	// ErrNegativePrecision indicates a negative or NaN symmetry precision.
	ErrNegativePrecision = errors.New("structure: symmetry precision must be non-negative")

	// ErrBadWindow indicates a negative or NaN distance bound.
	ErrBadWindow = errors.New("structure: invalid distance bound")
)

const (
	opSite         = "Site"
	opInsert       = "Insert"
	opRemove       = "Remove"
	opSetSite      = "SetSite"
	opNewPeriodic  = "NewPeriodic"
	opNewCrystal   = "NewCrystal"
	opSetPrecision = "SetSymmetryPrecision"
	opSetRmin      = "SetRmin"
	opSetRmax      = "SetRmax"
)

// panicNegativePrecision is the stable message of WithSymmetryPrecision.
const panicNegativePrecision = "structure: WithSymmetryPrecision(eps<0)"

func structureErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func indexError(tag string, i, n int) error {
	return fmt.Errorf("%s: index %d, count %d: %w", tag, i, n, ErrSiteIndex)
}
