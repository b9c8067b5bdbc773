// SPDX-License-Identifier: MIT
package evaluator_test

import (
	"errors"

	"github.com/katalvlaran/pairsum/structure"
	"github.com/katalvlaran/pairsum/ticker"
)

// sumQuantity accumulates [pair count, Σ distance] with the half-sum
// convention scale/2 per visit. A weighted quantity multiplies each visit
// by the anchor multiplicity and accumulates Σ distance·MSD instead.
// maskTypes excludes pairs of the two named types without an index mask.
type sumQuantity struct {
	stru      structure.Adapter
	value     []float64
	stash     []float64
	tick      ticker.Ticker
	rmax      float64
	masked    map[[2]int]bool
	indexMask bool
	noStash   bool
	lossy     bool
	weighted  bool
	maskTypes [2]string
}

func newSumQuantity(rmax float64) *sumQuantity {
	q := &sumQuantity{rmax: rmax, value: make([]float64, 2)}
	q.tick.Click()
	return q
}

func (q *sumQuantity) Structure() structure.Adapter { return q.stru }

func (q *sumQuantity) SetStructure(stru structure.Adapter) error {
	q.stru = stru
	q.value = make([]float64, 2)
	return nil
}

func (q *sumQuantity) ConfigureBondGenerator(gen structure.BondGenerator) error {
	return gen.SetRmax(q.rmax)
}

func (q *sumQuantity) AddPairContribution(gen structure.BondGenerator, scale int) {
	w := float64(scale) / 2
	if q.weighted {
		w *= float64(gen.Multiplicity())
		q.value[0] += w
		q.value[1] += w * gen.Distance() * gen.MSD()
		return
	}
	q.value[0] += w
	q.value[1] += w * gen.Distance()
}

func (q *sumQuantity) StashPartialValue() error {
	if q.noStash {
		return errors.New("stash not supported")
	}
	q.stash = append([]float64(nil), q.value...)
	return nil
}

func (q *sumQuantity) RestorePartialValue() error {
	if q.lossy {
		q.stash = nil
		return nil
	}
	copy(q.value, q.stash)
	q.stash = nil
	return nil
}

func (q *sumQuantity) PairMask(i, j int) bool {
	if a, b := q.maskTypes[0], q.maskTypes[1]; a != "" {
		ti, tj := q.stru.SiteType(i), q.stru.SiteType(j)
		if (ti == a && tj == b) || (ti == b && tj == a) {
			return false
		}
	}
	if i > j {
		i, j = j, i
	}
	return !q.masked[[2]int{i, j}]
}

func (q *sumQuantity) HasIndexMask() bool    { return q.indexMask }
func (q *sumQuantity) Ticker() ticker.Ticker { return q.tick }
func (q *sumQuantity) Value() []float64      { return q.value }

func (q *sumQuantity) maskPair(i, j int) {
	if i > j {
		i, j = j, i
	}
	if q.masked == nil {
		q.masked = map[[2]int]bool{}
	}
	q.masked[[2]int{i, j}] = true
	q.indexMask = true
	q.tick.Click()
}

// chain returns n atoms spaced 1 apart along x.
func chain(n int) *structure.Atomic {
	sites := make([]structure.Site, n)
	for i := range sites {
		sites[i] = structure.NewSite("C", float64(i), 0, 0)
	}
	return structure.NewAtomic(sites...)
}
