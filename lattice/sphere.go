// SPDX-License-Identifier: MIT
package lattice

import (
	"math"
	"sort"
)

// sphereEps widens the shell so that points sitting exactly on a bound
// survive rounding.
const sphereEps = 1e-10

type spherePoint struct {
	mno [3]int
	r   float64
}

// PointsInSphere iterates lattice translations with rmin ≤ |t| ≤ rmax.
type PointsInSphere struct {
	rmin, rmax float64
	points     []spherePoint
	idx        int
}

// NewPointsInSphere enumerates the shell [rmin, rmax] of lat and positions
// the iterator on the first point. A negative rmin counts as zero.
func NewPointsInSphere(rmin, rmax float64, lat *Lattice) *PointsInSphere {
	s := &PointsInSphere{rmin: math.Max(rmin, 0), rmax: rmax}
	if rmax < 0 || math.IsNaN(rmax) {
		return s
	}

	var bound [3]int
	for k := 0; k < 3; k++ {
		bound[k] = int(math.Ceil(rmax*lat.reciprocalLengths[k] + sphereEps))
	}
	lo2 := s.rmin - sphereEps
	if lo2 < 0 {
		lo2 = 0
	}
	lo2 *= lo2
	hi2 := (rmax + sphereEps) * (rmax + sphereEps)

	for m := -bound[0]; m <= bound[0]; m++ {
		for n := -bound[1]; n <= bound[1]; n++ {
			for o := -bound[2]; o <= bound[2]; o++ {
				mno := [3]int{m, n, o}
				v := lat.CartesianInt(mno)
				r2 := v.Dot(v)
				if r2 < lo2 || r2 > hi2 {
					continue
				}
				s.points = append(s.points, spherePoint{mno: mno, r: math.Sqrt(r2)})
			}
		}
	}
	sort.Slice(s.points, func(i, j int) bool {
		pi, pj := s.points[i], s.points[j]
		if pi.r != pj.r {
			return pi.r < pj.r
		}
		for k := 0; k < 3; k++ {
			if pi.mno[k] != pj.mno[k] {
				return pi.mno[k] < pj.mno[k]
			}
		}
		return false
	})
	return s
}

// Rmin returns the lower shell bound.
func (s *PointsInSphere) Rmin() float64 { return s.rmin }

// Rmax returns the upper shell bound.
func (s *PointsInSphere) Rmax() float64 { return s.rmax }

// Count returns the number of points in the shell.
func (s *PointsInSphere) Count() int { return len(s.points) }

// Rewind restarts the iteration.
func (s *PointsInSphere) Rewind() { s.idx = 0 }

// Next advances to the following point.
func (s *PointsInSphere) Next() { s.idx++ }

// Finished reports whether the iteration is exhausted.
func (s *PointsInSphere) Finished() bool { return s.idx >= len(s.points) }

// MNO returns the current integer triplet.
func (s *PointsInSphere) MNO() [3]int { return s.points[s.idx].mno }

// R returns the Cartesian length of the current translation.
func (s *PointsInSphere) R() float64 { return s.points[s.idx].r }
