// SPDX-License-Identifier: MIT
package lattice

import (
	"errors"
	"fmt"
)

// ErrBadLattice signals cell parameters that do not describe a valid
// three-dimensional cell.
var ErrBadLattice = errors.New("lattice: invalid cell")

func latticeErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
