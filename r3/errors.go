// SPDX-License-Identifier: MIT
package r3

import "errors"

// ErrSingular is returned by Inverse for a matrix whose determinant is
// zero within the package epsilon.
var ErrSingular = errors.New("r3: singular matrix")
