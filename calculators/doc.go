// SPDX-License-Identifier: MIT
// Package calculators holds reference pair quantities built on pairq.Base.
//
// PairCounter counts the pairs inside the distance window. It keeps a
// single value and supports every evaluation strategy, so it is the
// simplest way to exercise incremental updates and parallel merges.
//
// BondCalculator lists every bond as a chunk of six values
// (distance, site0, site1, direction x, y, z), once per orientation, and
// sorts the list when the evaluation finishes. Cone filters restrict the
// bond directions. Its value depends on site indices, so it accepts the
// Basic strategy only.
package calculators
