// SPDX-License-Identifier: MIT
package pairq_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairsum/evaluator"
	"github.com/katalvlaran/pairsum/pairq"
	"github.com/katalvlaran/pairsum/structure"
)

func TestEval_CountsPairs(t *testing.T) {
	c := newCounter()
	v, err := c.Eval(chain(10))
	require.NoError(t, err)
	assert.Equal(t, []float64{45}, v)
	assert.Equal(t, 10, c.CountSites())
	assert.Equal(t, evaluator.KindBasic, c.EvaluatorKindUsed())

	require.NoError(t, c.SetRmax(1.5))
	v, err = c.Eval(chain(10))
	require.NoError(t, err)
	assert.Equal(t, []float64{9}, v)

	require.NoError(t, c.SetRmin(1.5))
	require.NoError(t, c.SetRmax(2.5))
	v, err = c.Eval(chain(10))
	require.NoError(t, err)
	assert.Equal(t, []float64{8}, v)
}

func TestEval_Errors(t *testing.T) {
	c := newCounter()
	_, err := c.Eval(nil)
	assert.True(t, errors.Is(err, pairq.ErrNoStructure))
	assert.Equal(t, 0, c.CountSites())

	require.NoError(t, c.SetRmax(1))
	require.NoError(t, c.SetRmin(2))
	_, err = c.Eval(chain(3))
	assert.True(t, errors.Is(err, pairq.ErrBadWindow))
}

func TestWindow_CrossingReportedAtEval(t *testing.T) {
	c := newCounter(pairq.WithRmax(1))
	require.NoError(t, c.SetRmin(2), "crossed bounds are accepted one at a time")
	_, err := c.Eval(chain(4))
	assert.True(t, errors.Is(err, pairq.ErrBadWindow), "%v", err)

	require.NoError(t, c.SetRmax(3))
	v, err := c.Eval(chain(4))
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, v, "distances 2 and 3")
}

func TestWindow(t *testing.T) {
	c := newCounter()
	assert.Equal(t, pairq.DefaultRmin, c.Rmin())
	assert.Equal(t, pairq.DefaultRmax, c.Rmax())

	tests := []struct {
		name string
		set  func(float64) error
		r    float64
	}{
		{"negative rmin", c.SetRmin, -1},
		{"NaN rmin", c.SetRmin, math.NaN()},
		{"infinite rmax", c.SetRmax, math.Inf(1)},
		{"negative rmax", c.SetRmax, -0.5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.set(tc.r)
			assert.True(t, errors.Is(err, pairq.ErrBadWindow))
		})
	}
	assert.Equal(t, pairq.DefaultRmin, c.Rmin())
	assert.Equal(t, pairq.DefaultRmax, c.Rmax())

	t0 := c.Ticker()
	require.NoError(t, c.SetRmax(3))
	t1 := c.Ticker()
	assert.True(t, t1.After(t0))
	require.NoError(t, c.SetRmax(3))
	assert.Equal(t, t1, c.Ticker(), "unchanged value keeps the ticker")
}

func TestOptionsPanic(t *testing.T) {
	assert.Panics(t, func() { pairq.WithRmin(-1) })
	assert.Panics(t, func() { pairq.WithRmax(math.Inf(1)) })
	assert.NotPanics(t, func() { pairq.WithRmax(0) })

	c := newCounter(pairq.WithRmin(1), pairq.WithRmax(2), pairq.WithFullSum(), pairq.WithLogger(nil))
	assert.Equal(t, 1.0, c.Rmin())
	assert.Equal(t, 2.0, c.Rmax())
	assert.True(t, c.FullSum())
	assert.NotNil(t, c.Logger())
}

func TestFullSum(t *testing.T) {
	half, full := newCounter(pairq.WithRmax(3.5)), newCounter(pairq.WithRmax(3.5))
	t0 := full.Ticker()
	full.UseFullSum(true)
	assert.True(t, full.Ticker().After(t0))

	vh, err := half.Eval(chain(7))
	require.NoError(t, err)
	vf, err := full.Eval(chain(7))
	require.NoError(t, err)
	assert.Equal(t, vh, vf)
}

func TestStashRestore(t *testing.T) {
	b := pairq.NewBase(nil)
	b.ResizeValue(2)
	b.Value()[0] = 1

	err := b.RestorePartialValue()
	assert.True(t, errors.Is(err, pairq.ErrInvalidArgument), "nothing stashed")

	require.NoError(t, b.StashPartialValue())
	b.Value()[0] = 5
	require.NoError(t, b.RestorePartialValue())
	assert.Equal(t, []float64{1, 0}, b.Value())

	b.AppendValue(7)
	assert.Equal(t, []float64{1, 0, 7}, b.Value())
	b.ResetValue()
	assert.Equal(t, []float64{0, 0, 0}, b.Value())
	b.SetValue([]float64{3})
	assert.Equal(t, []float64{3}, b.Value())

	err = b.ExecuteParallelMerge([]float64{1, 2})
	assert.True(t, errors.Is(err, pairq.ErrPayload))
	require.NoError(t, b.ExecuteParallelMerge([]float64{2}))
	assert.Equal(t, []float64{5}, b.Value())
}

func TestSetEvaluator(t *testing.T) {
	c := newCounter()
	t0 := c.Ticker()
	require.NoError(t, c.SetupParallelRun(1, 3))
	c.UseFullSum(true)

	require.NoError(t, c.SetEvaluator(evaluator.KindOptimized))
	assert.Equal(t, evaluator.KindOptimized, c.EvaluatorKind())
	assert.Equal(t, evaluator.KindNone, c.EvaluatorKindUsed())
	assert.True(t, c.Ticker().After(t0))

	index, count := c.ParallelRun()
	assert.Equal(t, [2]int{1, 3}, [2]int{index, count}, "shard settings carried over")
	assert.True(t, c.FullSum(), "summation mode carried over")

	t1 := c.Ticker()
	require.NoError(t, c.SetEvaluator(evaluator.KindOptimized))
	assert.Equal(t, t1, c.Ticker(), "same kind is a no-op")

	err := c.SetEvaluator(evaluator.KindNone)
	assert.True(t, errors.Is(err, pairq.ErrInvalidArgument))
	assert.True(t, errors.Is(err, evaluator.ErrUnknownKind))
}

func TestSetEvaluator_RejectedByDryRun(t *testing.T) {
	f := newFrozen()
	for _, k := range []evaluator.Kind{evaluator.KindOptimized, evaluator.KindCheck} {
		err := f.SetEvaluator(k)
		require.Error(t, err)
		assert.True(t, errors.Is(err, pairq.ErrInvalidArgument))
		assert.True(t, errors.Is(err, pairq.ErrNotSupported))
		assert.Equal(t, evaluator.KindBasic, f.EvaluatorKind(), "old evaluator stays")
	}

	v, err := f.Eval(chain(5))
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, v)
}

func TestOptimized_ThroughBase(t *testing.T) {
	c := newCounter()
	require.NoError(t, c.SetEvaluator(evaluator.KindOptimized))

	stru := chain(10)
	v, err := c.Eval(stru)
	require.NoError(t, err)
	assert.Equal(t, []float64{45}, v)
	assert.Equal(t, evaluator.KindBasic, c.EvaluatorKindUsed(), "no baseline yet")

	next := stru.Clone().(*structure.Atomic)
	require.NoError(t, next.Remove(9))
	v, err = c.Eval(next)
	require.NoError(t, err)
	assert.Equal(t, []float64{36}, v)
	assert.Equal(t, evaluator.KindOptimized, c.EvaluatorKindUsed())
	assert.Equal(t, 9, c.Evaluator().Contributions())

	require.NoError(t, c.SetRmax(2.5))
	v, err = c.Eval(next.Clone())
	require.NoError(t, err)
	assert.Equal(t, []float64{15}, v)
	assert.Equal(t, evaluator.KindBasic, c.EvaluatorKindUsed(), "window change forces a recompute")
}

func TestCheck_ThroughBase(t *testing.T) {
	c := newCounter(pairq.WithRmax(4.5))
	require.NoError(t, c.SetEvaluator(evaluator.KindCheck))

	stru := chain(12)
	_, err := c.Eval(stru)
	require.NoError(t, err)

	next := stru.Clone().(*structure.Atomic)
	next.Append(structure.NewSite("C", 12, 0, 0), structure.NewSite("C", 13, 0, 0))
	v, err := c.Eval(next)
	require.NoError(t, err)
	assert.Equal(t, evaluator.KindCheck, c.EvaluatorKindUsed())

	ref, err := newCounter(pairq.WithRmax(4.5)).Eval(next)
	require.NoError(t, err)
	assert.Equal(t, ref, v)
}
