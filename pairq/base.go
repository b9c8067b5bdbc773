// SPDX-License-Identifier: MIT
package pairq

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/katalvlaran/pairsum/evaluator"
	"github.com/katalvlaran/pairsum/structure"
	"github.com/katalvlaran/pairsum/ticker"
)

// Hooks are the extension points a calculator may override.
type Hooks interface {
	ResetValue()
	ConfigureBondGenerator(gen structure.BondGenerator) error
	AddPairContribution(gen structure.BondGenerator, scale int)
	StashPartialValue() error
	RestorePartialValue() error
	ExecuteParallelMerge(value []float64) error
	FinishValue()
}

// Calculator is what NewBase expects as its outer value: a quantity the
// evaluators can drive plus the hooks. Any type embedding *Base
// satisfies it.
type Calculator interface {
	evaluator.Quantity
	Hooks
}

// Base implements the shared state and default hooks of pair quantities.
type Base struct {
	self Calculator

	value   []float64
	stash   []float64
	stashed bool
	merged  int
	shards  map[uint32]struct{}

	stru       structure.Adapter
	rmin, rmax float64
	ev         evaluator.Evaluator
	mask       pairMask
	tick       ticker.Ticker
	logger     *slog.Logger
}

var _ Calculator = (*Base)(nil)

// NewBase returns a Base whose hooks dispatch to self. A nil self makes
// the Base its own calculator. The window starts at [DefaultRmin,
// DefaultRmax]; periodic structures need WithRmax or SetRmax first, see
// structure.MaxTranslations.
func NewBase(self Calculator, opts ...Option) *Base {
	o := gatherOptions(opts)
	b := &Base{
		self:   self,
		rmin:   o.rmin,
		rmax:   o.rmax,
		mask:   newPairMask(),
		shards: make(map[uint32]struct{}),
		logger: o.logger,
	}
	if b.self == nil {
		b.self = b
	}
	b.ev = evaluator.NewBasic(evaluator.WithLogger(o.logger))
	b.ev.UseFullSum(o.fullSum)
	b.tick.Click()
	return b
}

// Eval computes the quantity for stru and returns the value buffer. The
// returned slice is owned by the quantity.
func (b *Base) Eval(stru structure.Adapter) ([]float64, error) {
	if stru == nil {
		return nil, pairqErrorf(opEval, ErrNoStructure)
	}
	if b.rmin > b.rmax {
		return nil, pairqErrorf(opEval, fmt.Errorf("rmin=%g > rmax=%g: %w", b.rmin, b.rmax, ErrBadWindow))
	}
	if err := b.ev.Update(b.self, stru); err != nil {
		return nil, pairqErrorf(opEval, err)
	}
	b.self.FinishValue()
	return b.self.Value(), nil
}

// Structure returns the attached structure.
func (b *Base) Structure() structure.Adapter { return b.stru }

// SetStructure attaches stru, resolves type masks for its sites and resets
// the value.
func (b *Base) SetStructure(stru structure.Adapter) error {
	if stru == nil {
		return pairqErrorf(opSetStructure, ErrNoStructure)
	}
	b.stru = stru
	b.mask.resolve(stru)
	b.self.ResetValue()
	return nil
}

// CountSites returns the number of sites of the attached structure.
func (b *Base) CountSites() int {
	if b.stru == nil {
		return 0
	}
	return b.stru.CountSites()
}

// Value returns the live value buffer.
func (b *Base) Value() []float64 { return b.value }

// ResizeValue reallocates the buffer with n zeros.
func (b *Base) ResizeValue(n int) { b.value = make([]float64, n) }

// SetValue replaces the buffer.
func (b *Base) SetValue(v []float64) { b.value = v }

// AppendValue appends to the buffer.
func (b *Base) AppendValue(v ...float64) { b.value = append(b.value, v...) }

// ResetValue zeroes the buffer and forgets merged shards.
func (b *Base) ResetValue() {
	b.merged = 0
	clear(b.shards)
	clear(b.value)
}

// ConfigureBondGenerator applies the distance window.
func (b *Base) ConfigureBondGenerator(gen structure.BondGenerator) error {
	if err := gen.SetRmin(b.rmin); err != nil {
		return err
	}
	return gen.SetRmax(b.rmax)
}

// AddPairContribution does nothing by default.
func (b *Base) AddPairContribution(structure.BondGenerator, int) {}

// StashPartialValue copies the buffer aside.
func (b *Base) StashPartialValue() error {
	b.stash = slices.Clone(b.value)
	b.stashed = true
	return nil
}

// RestorePartialValue puts the stashed buffer back.
func (b *Base) RestorePartialValue() error {
	if !b.stashed {
		return pairqErrorf(opRestore, fmt.Errorf("nothing stashed: %w", ErrInvalidArgument))
	}
	b.value, b.stash, b.stashed = b.stash, nil, false
	return nil
}

// ExecuteParallelMerge adds value element-wise.
func (b *Base) ExecuteParallelMerge(value []float64) error {
	if len(value) != len(b.value) {
		return pairqErrorf(opMerge, fmt.Errorf("length %d, want %d: %w", len(value), len(b.value), ErrPayload))
	}
	for i, v := range value {
		b.value[i] += v
	}
	return nil
}

// FinishValue does nothing by default.
func (b *Base) FinishValue() {}

// Ticker returns the time of the last configuration change.
func (b *Base) Ticker() ticker.Ticker { return b.tick }

// ClickTicker marks a configuration change. Calculators call it from their
// own setters.
func (b *Base) ClickTicker() { b.tick.Click() }

// Logger returns the logger shared with the evaluators.
func (b *Base) Logger() *slog.Logger { return b.logger }

// Rmin returns the lower distance bound.
func (b *Base) Rmin() float64 { return b.rmin }

// Rmax returns the upper distance bound.
func (b *Base) Rmax() float64 { return b.rmax }

// SetRmin sets the lower distance bound. Only negative or non-finite
// values are rejected here. The bounds may cross while they are set one
// at a time; Eval reports rmin > rmax with ErrBadWindow.
func (b *Base) SetRmin(r float64) error {
	if !validBound(r) {
		return pairqErrorf(opSetRmin, fmt.Errorf("rmin=%g: %w", r, ErrBadWindow))
	}
	if r != b.rmin {
		b.rmin = r
		b.tick.Click()
	}
	return nil
}

// SetRmax sets the upper distance bound. Only negative or non-finite
// values are rejected here. The bounds may cross while they are set one
// at a time; Eval reports rmin > rmax with ErrBadWindow.
func (b *Base) SetRmax(r float64) error {
	if !validBound(r) {
		return pairqErrorf(opSetRmax, fmt.Errorf("rmax=%g: %w", r, ErrBadWindow))
	}
	if r != b.rmax {
		b.rmax = r
		b.tick.Click()
	}
	return nil
}

// Evaluator returns the installed evaluator.
func (b *Base) Evaluator() evaluator.Evaluator { return b.ev }

// EvaluatorKind returns the configured strategy.
func (b *Base) EvaluatorKind() evaluator.Kind { return b.ev.Kind() }

// EvaluatorKindUsed returns the strategy the last evaluation applied.
func (b *Base) EvaluatorKindUsed() evaluator.Kind { return b.ev.UsedKind() }

// SetEvaluator installs a new strategy after a dry run against the
// calculator. On failure the current evaluator stays in place and the
// error wraps ErrInvalidArgument.
func (b *Base) SetEvaluator(kind evaluator.Kind) error {
	if b.ev.Kind() == kind {
		return nil
	}
	ev, err := evaluator.New(kind, evaluator.WithLogger(b.logger))
	if err != nil {
		return pairqErrorf(opSetEvaluator, fmt.Errorf("%w: %w", ErrInvalidArgument, err))
	}
	if err := ev.Validate(b.self); err != nil {
		b.logger.Debug("evaluator rejected by dry run",
			slog.String("kind", kind.String()),
			slog.String("error", err.Error()))
		return pairqErrorf(opSetEvaluator, fmt.Errorf("%w: %s: %w", ErrInvalidArgument, kind, err))
	}
	index, count := b.ev.ParallelRun()
	if err := ev.SetupParallelRun(index, count); err != nil {
		return pairqErrorf(opSetEvaluator, err)
	}
	ev.UseFullSum(b.ev.FullSum())
	b.ev = ev
	b.self.ResetValue()
	b.tick.Click()
	return nil
}

// SetupParallelRun restricts evaluation to shard index of count.
func (b *Base) SetupParallelRun(index, count int) error {
	if err := b.ev.SetupParallelRun(index, count); err != nil {
		return pairqErrorf(opSetupParallel, err)
	}
	b.tick.Click()
	return nil
}

// ParallelRun returns the shard settings.
func (b *Base) ParallelRun() (index, count int) { return b.ev.ParallelRun() }

// UseFullSum switches between half and full summation.
func (b *Base) UseFullSum(flag bool) {
	if flag != b.ev.FullSum() {
		b.ev.UseFullSum(flag)
		b.tick.Click()
	}
}

// FullSum reports the summation mode.
func (b *Base) FullSum() bool { return b.ev.FullSum() }
