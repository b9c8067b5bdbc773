// SPDX-License-Identifier: MIT
package pairq_test

import (
	"github.com/katalvlaran/pairsum/pairq"
	"github.com/katalvlaran/pairsum/structure"
)

// counter counts pairs with the half-sum weight scale/2.
type counter struct {
	*pairq.Base
}

func newCounter(opts ...pairq.Option) *counter {
	c := &counter{}
	c.Base = pairq.NewBase(c, opts...)
	c.ResizeValue(1)
	return c
}

func (c *counter) AddPairContribution(_ structure.BondGenerator, scale int) {
	c.Value()[0] += float64(scale) / 2
}

// frozen is a counter that cannot keep a partial value aside.
type frozen struct {
	*counter
}

func newFrozen() *frozen {
	f := &frozen{counter: &counter{}}
	f.Base = pairq.NewBase(f)
	f.ResizeValue(1)
	return f
}

func (f *frozen) StashPartialValue() error { return pairq.ErrNotSupported }

// chain returns n atoms spaced 1 apart along x.
func chain(n int) *structure.Atomic {
	sites := make([]structure.Site, n)
	for i := range sites {
		sites[i] = structure.NewSite("C", float64(i), 0, 0)
	}
	return structure.NewAtomic(sites...)
}

// salt returns Na Cl Na Cl spaced 1 apart along x.
func salt() *structure.Atomic {
	return structure.NewAtomic(
		structure.NewSite("Na", 0, 0, 0),
		structure.NewSite("Cl", 1, 0, 0),
		structure.NewSite("Na", 2, 0, 0),
		structure.NewSite("Cl", 3, 0, 0),
	)
}
