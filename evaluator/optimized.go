// SPDX-License-Identifier: MIT
package evaluator

import (
	"log/slog"
	"sort"
	"time"

	"github.com/katalvlaran/pairsum/structure"
	"github.com/katalvlaran/pairsum/ticker"
)

// Fallback reasons, also used as metric labels.
const (
	reasonNoBaseline      = "no-baseline"
	reasonConfigChanged   = "config-changed"
	reasonForeignStruct   = "structure-replaced"
	reasonBaselineMutated = "baseline-mutated"
	reasonSharded         = "sharded"
	reasonIndexMask       = "index-mask"
	reasonDiff            = "diff"
)

// Optimized updates a value incrementally from the structure of the
// previous update.
//
// Description:
//
//	The previous structure is kept as baseline. A new structure that
//	shares a head and tail with it only needs the pairs touching the
//	sites in between: those are subtracted from the old value and added
//	back for the new sites.
//
// Algorithm Outline:
//  1. Fall back to a full recompute when no baseline exists, the quantity
//     changed configuration since the value was computed, the attached
//     structure is not the baseline, the baseline was mutated in place,
//     the run is sharded or the mask uses explicit site indices.
//  2. Diff the baseline against the new structure; fall back when the
//     difference does not allow a fast update.
//  3. Subtract every pair of the baseline that involves a site of Pop0.
//  4. Stash the partial value, attach the new structure, restore it.
//  5. Add every pair of the new structure that involves a site of Add1.
//  6. Keep the new structure and its ticker as baseline and stamp the
//     value with the current time.
//
// Pairs are enumerated with the same anchor/neighbour convention as Basic,
// so that the subtracted terms are exactly those Basic added before.
//
// Complexity:
//
//	Time = O(|Pop0|+|Add1|) anchors times the neighbours of one anchor,
//	plus O(N) to select the anchors of the other sites.
type Optimized struct {
	common
	baseline     structure.Adapter
	baselineTick ticker.Ticker
	valueTick    ticker.Ticker
}

var _ Evaluator = (*Optimized)(nil)

// NewOptimized returns the incremental strategy.
func NewOptimized(opts ...Option) *Optimized {
	return &Optimized{common: newCommon(gatherOptions(opts))}
}

// Kind returns KindOptimized.
func (e *Optimized) Kind() Kind { return KindOptimized }

// Validate runs the stash/restore pair once; quantities that cannot keep a
// partial value aside reject the strategy.
func (e *Optimized) Validate(q Quantity) error {
	if err := q.StashPartialValue(); err != nil {
		return err
	}
	return q.RestorePartialValue()
}

// Update brings q up to date for stru.
func (e *Optimized) Update(q Quantity, stru structure.Adapter) error {
	start := time.Now()
	if err := e.update(q, stru); err != nil {
		return err
	}
	e.observe(KindOptimized, start)
	return nil
}

func (e *Optimized) update(q Quantity, stru structure.Adapter) error {
	e.contributions = 0
	if stru == nil {
		return evaluatorErrorf(opUpdate, ErrNilStructure)
	}
	if reason := e.fallbackReason(q); reason != "" {
		return e.fallback(q, stru, reason)
	}
	diff := e.baseline.Diff(stru)
	if !diff.AllowsFastUpdate() {
		return e.fallback(q, stru, reasonDiff)
	}

	if err := e.sweep(q, e.baseline, diff.Pop0, -1); err != nil {
		return err
	}
	if err := q.StashPartialValue(); err != nil {
		return evaluatorErrorf(opUpdate, err)
	}
	if err := q.SetStructure(stru); err != nil {
		return evaluatorErrorf(opUpdate, err)
	}
	if err := q.RestorePartialValue(); err != nil {
		return evaluatorErrorf(opUpdate, err)
	}
	if err := e.sweep(q, stru, diff.Add1, +1); err != nil {
		return err
	}

	e.used = KindOptimized
	e.keep(stru)
	e.logger.Debug("optimized update",
		slog.Int("removed", len(diff.Pop0)),
		slog.Int("added", len(diff.Add1)),
		slog.Int("contributions", e.contributions))
	return nil
}

func (e *Optimized) fallbackReason(q Quantity) string {
	switch {
	case e.baseline == nil:
		return reasonNoBaseline
	case !q.Ticker().Before(e.valueTick):
		return reasonConfigChanged
	case q.Structure() != e.baseline:
		return reasonForeignStruct
	case e.baseline.Ticker() != e.baselineTick:
		return reasonBaselineMutated
	case e.count > 1:
		return reasonSharded
	case q.HasIndexMask():
		return reasonIndexMask
	}
	return ""
}

func (e *Optimized) fallback(q Quantity, stru structure.Adapter, reason string) error {
	fallbacksTotal.WithLabelValues(reason).Inc()
	e.logger.Debug("optimized evaluator falls back to full recompute", slog.String("reason", reason))
	if err := e.updateFull(q, stru); err != nil {
		return err
	}
	e.used = KindBasic
	e.keep(stru)
	return nil
}

// keep records stru as the baseline of the current value.
func (e *Optimized) keep(stru structure.Adapter) {
	e.baseline = stru
	e.baselineTick = stru.Ticker()
	e.valueTick.Click()
}

// sweep applies sign times every pair of stru in which a changed site
// takes part. changed is sorted.
//
// Anchor selection, per site i0:
//   - changed, full sum: every neighbour.
//   - changed, half sum: neighbours in [0, i0], as Basic visits them.
//   - unchanged, full sum: the changed neighbours only.
//   - unchanged, half sum: the changed neighbours up to i0; pairs with a
//     changed site above i0 were visited from that site's anchor.
//
// Each visit is scaled like Basic, so a pair seen from both anchors under
// the full sum is applied twice with scale 1.
func (e *Optimized) sweep(q Quantity, stru structure.Adapter, changed []int, sign int) error {
	if len(changed) == 0 {
		return nil
	}
	gen := stru.NewBondGenerator()
	if err := q.ConfigureBondGenerator(gen); err != nil {
		return evaluatorErrorf(opUpdate, err)
	}
	n := stru.CountSites()
	isChanged := make([]bool, n)
	for _, i := range changed {
		isChanged[i] = true
	}

	for i0 := 0; i0 < n; i0++ {
		switch {
		case isChanged[i0] && e.fullSum:
			gen.SelectAnchor(i0)
			gen.SelectSiteRange(0, n)
		case isChanged[i0]:
			gen.SelectAnchor(i0)
			gen.SelectSiteRange(0, i0+1)
		case e.fullSum:
			gen.SelectAnchor(i0)
			gen.SelectSites(changed)
		default:
			// changed neighbours up to i0
			k := sort.SearchInts(changed, i0+1)
			if k == 0 {
				continue
			}
			gen.SelectAnchor(i0)
			gen.SelectSites(changed[:k])
		}
		for gen.Rewind(); !gen.Finished(); gen.Next() {
			i1 := gen.Site1()
			if !q.PairMask(i0, i1) {
				continue
			}
			e.add(q, gen, sign*e.pairScale(i0, i1))
		}
	}
	return nil
}
