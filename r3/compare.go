// SPDX-License-Identifier: MIT
package r3

import "math"

// Eps is the default absolute tolerance, √(machine epsilon).
var Eps = math.Sqrt(2.220446049250313e-16)

// EpsEq reports |x - y| ≤ Eps.
func EpsEq(x, y float64) bool {
	return math.Abs(x-y) <= Eps
}

// EpsEqTol reports |x - y| ≤ tol.
func EpsEqTol(x, y, tol float64) bool {
	return math.Abs(x-y) <= tol
}

// VecEpsEq compares two vectors component-wise with EpsEqTol.
func VecEpsEq(a, b Vector, tol float64) bool {
	return EpsEqTol(a[0], b[0], tol) && EpsEqTol(a[1], b[1], tol) && EpsEqTol(a[2], b[2], tol)
}

// AllClose reports whether a and b have equal length and every pair
// satisfies |a-b| ≤ atol + rtol·|b|. Negative tolerances are taken by
// absolute value. NaN never compares close.
func AllClose(a, b []float64, rtol, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i := range a {
		diff := math.Abs(a[i] - b[i])
		if !(diff <= atol+rtol*math.Abs(b[i])) {
			return false
		}
	}
	return true
}
