// SPDX-License-Identifier: MIT
package calculators_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pairsum/calculators"
	"github.com/katalvlaran/pairsum/evaluator"
	"github.com/katalvlaran/pairsum/pairq"
	"github.com/katalvlaran/pairsum/r3"
)

func TestBondCalculator_Line(t *testing.T) {
	c := calculators.NewBondCalculator()
	assert.Equal(t, calculators.DefaultBondRmax, c.Rmax())

	_, err := c.Eval(line(3))
	require.NoError(t, err)
	assert.Equal(t, 6, c.Count())
	assert.Equal(t, []float64{1, 1, 1, 1, 2, 2}, c.Distances())
	assert.Equal(t, []int{0, 1, 1, 2, 0, 2}, c.Sites0())
	assert.Equal(t, []int{1, 0, 2, 1, 2, 0}, c.Sites1())
	assert.Equal(t, []r3.Vector{
		{1, 0, 0}, {-1, 0, 0}, {1, 0, 0}, {-1, 0, 0}, {2, 0, 0}, {-2, 0, 0},
	}, c.Directions())

	_, err = c.Eval(line(2))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Count(), "value is rebuilt, not appended")
}

func TestBondCalculator_Types(t *testing.T) {
	c := calculators.NewBondCalculator(pairq.WithRmax(1.5))
	_, err := c.Eval(salt())
	require.NoError(t, err)
	assert.Equal(t, []string{"Na", "Cl", "Cl", "Na", "Na", "Cl"}, c.Types0())
	assert.Equal(t, []string{"Cl", "Na", "Na", "Cl", "Cl", "Na"}, c.Types1())
}

func TestBondCalculator_FullSumSameList(t *testing.T) {
	half := calculators.NewBondCalculator(pairq.WithRmax(2.5))
	full := calculators.NewBondCalculator(pairq.WithRmax(2.5), pairq.WithFullSum())
	vh, err := half.Eval(line(6))
	require.NoError(t, err)
	vf, err := full.Eval(line(6))
	require.NoError(t, err)
	assert.Equal(t, vh, vf)
}

func TestBondCalculator_Cones(t *testing.T) {
	tests := []struct {
		name  string
		cones [][2]any
		want  int
	}{
		{"no filter", nil, 6},
		{"along +x", [][2]any{{r3.Vector{1, 0, 0}, 1.0}}, 3},
		{"along -x scaled axis", [][2]any{{r3.Vector{-5, 0, 0}, 1.0}}, 3},
		{"perpendicular", [][2]any{{r3.Vector{0, 1, 0}, 45.0}}, 0},
		{"union", [][2]any{{r3.Vector{0, 1, 0}, 45.0}, {r3.Vector{1, 0, 0}, 0.5}}, 3},
		{"everything", [][2]any{{r3.Vector{0, 0, 1}, 180.0}}, 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := calculators.NewBondCalculator()
			for _, cone := range tc.cones {
				require.NoError(t, c.FilterCone(cone[0].(r3.Vector), cone[1].(float64)))
			}
			_, err := c.Eval(line(3))
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Count())
		})
	}
}

func TestBondCalculator_FilterTicker(t *testing.T) {
	c := calculators.NewBondCalculator()
	err := c.FilterCone(r3.Vector{}, 10)
	assert.True(t, errors.Is(err, pairq.ErrInvalidArgument))

	t0 := c.Ticker()
	require.NoError(t, c.FilterCone(r3.Vector{1, 0, 0}, 10))
	t1 := c.Ticker()
	assert.True(t, t1.After(t0))

	c.FilterOff()
	assert.True(t, c.Ticker().After(t1))
	t2 := c.Ticker()
	c.FilterOff()
	assert.Equal(t, t2, c.Ticker(), "nothing to remove")
}

func TestBondCalculator_RejectsIncrementalEvaluators(t *testing.T) {
	c := calculators.NewBondCalculator()
	for _, k := range []evaluator.Kind{evaluator.KindOptimized, evaluator.KindCheck} {
		err := c.SetEvaluator(k)
		assert.True(t, errors.Is(err, pairq.ErrInvalidArgument))
		assert.True(t, errors.Is(err, pairq.ErrNotSupported))
	}
	assert.Equal(t, evaluator.KindBasic, c.EvaluatorKind())
}

func TestBondCalculator_Nickel(t *testing.T) {
	c := calculators.NewBondCalculator(pairq.WithRmax(3.0))
	_, err := c.Eval(nickel(t))
	require.NoError(t, err)
	assert.Equal(t, 4*12, c.Count())

	nn := niA / math.Sqrt2
	for _, d := range c.Distances() {
		assert.InDelta(t, nn, d, 1e-12)
	}
	fromFirst := 0
	for _, s := range c.Sites0() {
		if s == 0 {
			fromFirst++
		}
	}
	assert.Equal(t, 12, fromFirst)

	require.NoError(t, c.FilterCone(r3.Vector{1, 1, 0}, 1))
	_, err = c.Eval(nickel(t))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Count(), "one (110) neighbour per site")
	for _, dir := range c.Directions() {
		assert.True(t, r3.VecEpsEq(r3.Vector{niA / 2, niA / 2, 0}, dir, 1e-9), "%v", dir)
	}
}

func TestBondCalculator_ParallelMerge(t *testing.T) {
	const count = 3
	stru := line(10)
	serial := calculators.NewBondCalculator(pairq.WithRmax(2.5))
	want, err := serial.Eval(stru)
	require.NoError(t, err)

	master := calculators.NewBondCalculator(pairq.WithRmax(2.5))
	require.NoError(t, master.PrepareParallelMerge(stru))
	for i := 0; i < count; i++ {
		w := calculators.NewBondCalculator(pairq.WithRmax(2.5))
		require.NoError(t, w.SetupParallelRun(i, count))
		_, err := w.Eval(stru)
		require.NoError(t, err)
		p, err := w.ParallelData()
		require.NoError(t, err)
		require.NoError(t, master.MergeParallelData(p, count))
	}
	assert.Equal(t, want, master.Value())

	bad := calculators.NewBondCalculator()
	assert.True(t, errors.Is(bad.ExecuteParallelMerge([]float64{1, 2}), pairq.ErrPayload))
}

func TestBondCalculator_SiteColumns(t *testing.T) {
	c := calculators.NewBondCalculator()
	_, err := c.Eval(line(2))
	require.NoError(t, err)

	c.SetValue([]float64{1, 1, 0, 1, 0, 0})
	assert.Equal(t, []int{1}, c.Sites0())
	assert.Equal(t, []int{0}, c.Sites1())

	c.SetValue([]float64{1, 0.5, 1, 1, 0, 0})
	assert.PanicsWithValue(t, "calculators: corrupt site index 0.5", func() { c.Sites0() })
	c.SetValue([]float64{1, 0, math.NaN(), 1, 0, 0})
	assert.Panics(t, func() { c.Sites1() })
}
