// SPDX-License-Identifier: MIT
package evaluator

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/katalvlaran/pairsum/r3"
	"github.com/katalvlaran/pairsum/structure"
)

// Check runs Optimized and verifies the result against Basic.
type Check struct {
	Optimized
	rtol, atol float64
}

var _ Evaluator = (*Check)(nil)

// NewCheck returns the verifying strategy.
func NewCheck(opts ...Option) *Check {
	o := gatherOptions(opts)
	return &Check{Optimized: Optimized{common: newCommon(o)}, rtol: o.rtol, atol: o.atol}
}

// Kind returns KindCheck.
func (e *Check) Kind() Kind { return KindCheck }

// Update performs an optimized update, recomputes the value from scratch
// and returns ErrCheckFailed when both differ. The value left in q is the
// full recompute.
func (e *Check) Update(q Quantity, stru structure.Adapter) error {
	start := time.Now()
	if err := e.update(q, stru); err != nil {
		return err
	}
	used, fast := e.used, slices.Clone(q.Value())
	contributions := e.contributions

	if err := e.updateFull(q, stru); err != nil {
		return err
	}
	e.contributions += contributions
	e.used = used
	if used == KindOptimized {
		e.used = KindCheck
	}
	e.observe(KindCheck, start)

	if !r3.AllClose(fast, q.Value(), e.rtol, e.atol) {
		checkFailuresTotal.Inc()
		e.logger.Warn("optimized result differs from full recompute",
			slog.Int("sites", stru.CountSites()),
			slog.String("strategy", used.String()))
		return evaluatorErrorf(opUpdate, fmt.Errorf("%w (strategy %s)", ErrCheckFailed, used))
	}
	return nil
}
