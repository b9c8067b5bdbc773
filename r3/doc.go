// SPDX-License-Identifier: MIT
// Package r3 implements the small fixed-size linear algebra used by
// lattice geometry and bond enumeration: 3-vectors, 3×3 matrices and
// epsilon-aware comparisons.
//
// Values are plain arrays, so they are copied on assignment, compare with
// == and never allocate. Only Inverse can fail; everything else is total.
//
// Conventions:
//   - Matrix is row-major: m[i][j] is row i, column j.
//   - MulVec computes m·v with v as a column vector.
//   - EpsEq uses an absolute tolerance, AllClose the |a-b| ≤ atol + rtol·|b|
//     relation.
package r3
