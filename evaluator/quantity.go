// SPDX-License-Identifier: MIT
package evaluator

import (
	"github.com/katalvlaran/pairsum/structure"
	"github.com/katalvlaran/pairsum/ticker"
)

// Quantity is the accumulator an evaluator drives. It is implemented by
// pairq.Base and the calculators that embed it.
type Quantity interface {
	// Structure returns the attached structure, nil before the first one.
	Structure() structure.Adapter
	// SetStructure attaches stru and resets the value.
	SetStructure(stru structure.Adapter) error
	// ConfigureBondGenerator applies the distance window and any other
	// settings to a fresh generator.
	ConfigureBondGenerator(gen structure.BondGenerator) error
	// AddPairContribution adds scale times the contribution of the
	// current pair of gen. Scale is negative when removing pairs.
	AddPairContribution(gen structure.BondGenerator, scale int)
	// StashPartialValue saves the value aside so that SetStructure can
	// reset it; RestorePartialValue puts it back.
	StashPartialValue() error
	RestorePartialValue() error
	// PairMask reports whether the pair (i, j) contributes.
	PairMask(i, j int) bool
	// HasIndexMask reports masking by explicit site indices, which does
	// not survive a change of site numbering.
	HasIndexMask() bool
	// Ticker is the time of the last configuration change.
	Ticker() ticker.Ticker
	// Value returns the current accumulator buffer.
	Value() []float64
}
