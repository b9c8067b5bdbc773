// SPDX-License-Identifier: MIT
package evaluator

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/pairsum/structure"
)

const (
	opUpdate           = "Update"
	opSetupParallelRun = "SetupParallelRun"
	opNew              = "New"
)

// Evaluator runs a pair summation for a Quantity.
type Evaluator interface {
	// Kind is the configured strategy.
	Kind() Kind
	// UsedKind is the strategy the last Update actually applied.
	UsedKind() Kind
	// Update recomputes the value of q for stru.
	Update(q Quantity, stru structure.Adapter) error
	// Validate checks that q supports this strategy without changing
	// its value.
	Validate(q Quantity) error

	SetupParallelRun(index, count int) error
	ParallelRun() (index, count int)
	UseFullSum(flag bool)
	FullSum() bool

	// Contributions is the number of pair contributions applied by the
	// last Update.
	Contributions() int
}

// New creates an evaluator of the given kind.
func New(kind Kind, opts ...Option) (Evaluator, error) {
	switch kind {
	case KindBasic:
		return NewBasic(opts...), nil
	case KindOptimized:
		return NewOptimized(opts...), nil
	case KindCheck:
		return NewCheck(opts...), nil
	}
	return nil, evaluatorErrorf(opNew, fmt.Errorf("kind %d: %w", int(kind), ErrUnknownKind))
}

// common holds the state shared by all strategies.
type common struct {
	index, count  int
	fullSum       bool
	used          Kind
	contributions int
	logger        *slog.Logger
}

func newCommon(o options) common {
	return common{count: 1, logger: o.logger}
}

// UsedKind returns the strategy applied by the last Update.
func (c *common) UsedKind() Kind { return c.used }

// Contributions returns the number of contributions of the last Update.
func (c *common) Contributions() int { return c.contributions }

// SetupParallelRun restricts the evaluator to shard index of count.
func (c *common) SetupParallelRun(index, count int) error {
	if count < 1 || index < 0 || index >= count {
		return evaluatorErrorf(opSetupParallelRun,
			fmt.Errorf("index=%d count=%d: %w", index, count, ErrBadShard))
	}
	c.index, c.count = index, count
	return nil
}

// ParallelRun returns the shard settings.
func (c *common) ParallelRun() (index, count int) { return c.index, c.count }

// UseFullSum switches between half (false) and full (true) summation.
func (c *common) UseFullSum(flag bool) { c.fullSum = flag }

// FullSum reports the summation mode.
func (c *common) FullSum() bool { return c.fullSum }

func (c *common) add(q Quantity, gen structure.BondGenerator, scale int) {
	q.AddPairContribution(gen, scale)
	c.contributions++
}

// pairScale is the weight of the pair (i0, i1) under the current mode.
func (c *common) pairScale(i0, i1 int) int {
	if c.fullSum || i0 == i1 {
		return 1
	}
	return 2
}

// shardFilter hands out the pairs or anchors of one shard.
type shardFilter struct {
	counter, count int
}

func (s *shardFilter) take() bool {
	ok := s.counter%s.count == 0
	s.counter++
	return ok
}

// chopOuter reports whether shards split anchors rather than pairs.
func chopOuter(count, nsites int) bool {
	return float64(count) <= float64(nsites-1)*0.1+1
}

// updateFull attaches stru and enumerates all pairs of this shard.
func (c *common) updateFull(q Quantity, stru structure.Adapter) error {
	if stru == nil {
		return evaluatorErrorf(opUpdate, ErrNilStructure)
	}
	if err := q.SetStructure(stru); err != nil {
		return evaluatorErrorf(opUpdate, err)
	}
	gen := stru.NewBondGenerator()
	if err := q.ConfigureBondGenerator(gen); err != nil {
		return evaluatorErrorf(opUpdate, err)
	}

	n := stru.CountSites()
	outer := chopOuter(c.count, n)
	shard := shardFilter{counter: c.index, count: c.count}
	for i0 := 0; i0 < n; i0++ {
		if outer && !shard.take() {
			continue
		}
		gen.SelectAnchor(i0)
		if c.fullSum {
			gen.SelectSiteRange(0, n)
		} else {
			gen.SelectSiteRange(0, i0+1)
		}
		for gen.Rewind(); !gen.Finished(); gen.Next() {
			if !outer && !shard.take() {
				continue
			}
			i1 := gen.Site1()
			if !q.PairMask(i0, i1) {
				continue
			}
			c.add(q, gen, c.pairScale(i0, i1))
		}
	}
	return nil
}

// Basic recomputes every pair on each update.
type Basic struct {
	common
}

var _ Evaluator = (*Basic)(nil)

// NewBasic returns the full-recompute strategy.
func NewBasic(opts ...Option) *Basic {
	return &Basic{common: newCommon(gatherOptions(opts))}
}

// Kind returns KindBasic.
func (e *Basic) Kind() Kind { return KindBasic }

// Validate accepts every quantity.
func (e *Basic) Validate(Quantity) error { return nil }

// Update recomputes q from scratch.
func (e *Basic) Update(q Quantity, stru structure.Adapter) error {
	e.contributions = 0
	start := time.Now()
	if err := e.updateFull(q, stru); err != nil {
		return err
	}
	e.used = KindBasic
	e.observe(KindBasic, start)
	return nil
}

func (c *common) observe(kind Kind, start time.Time) {
	updatesTotal.WithLabelValues(kind.String(), c.used.String()).Inc()
	updateDuration.WithLabelValues(c.used.String()).Observe(time.Since(start).Seconds())
	contributionsTotal.Add(float64(c.contributions))
}
