// SPDX-License-Identifier: MIT
package calculators

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/katalvlaran/pairsum/pairq"
	"github.com/katalvlaran/pairsum/structure"
)

// PairCounter counts pairs within [rmin, rmax].
type PairCounter struct {
	*pairq.Base
}

// NewPairCounter returns a counter with a single-value buffer.
func NewPairCounter(opts ...pairq.Option) *PairCounter {
	c := &PairCounter{}
	c.Base = pairq.NewBase(c, opts...)
	c.ResizeValue(1)
	return c
}

// AddPairContribution adds one half per visit, so that both sum modes give
// one per pair.
func (c *PairCounter) AddPairContribution(_ structure.BondGenerator, scale int) {
	c.Value()[0] += float64(scale) / 2
}

// Count evaluates stru and returns the number of pairs.
func (c *PairCounter) Count(stru structure.Adapter) (int, error) {
	v, err := c.Eval(stru)
	if err != nil {
		return 0, err
	}
	n, err := safecast.Convert[int](v[0])
	if err != nil {
		return 0, fmt.Errorf("calculators: pair count %g: %w", v[0], err)
	}
	return n, nil
}
