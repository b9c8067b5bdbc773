// SPDX-License-Identifier: MIT
package evaluator

import (
	"errors"
	"fmt"
)

var (
	// ErrCheckFailed indicates that Optimized and Basic results differ.
	ErrCheckFailed = errors.New("evaluator: optimized and basic results differ")

	// ErrBadShard indicates an invalid (index, count) pair.
	ErrBadShard = errors.New("evaluator: invalid parallel shard")

	// ErrUnknownKind indicates an unrecognised strategy name or value.
	ErrUnknownKind = errors.New("evaluator: unknown evaluator kind")

	// ErrNilStructure indicates an Update without a structure.
	ErrNilStructure = errors.New("evaluator: structure is nil")
)

func evaluatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
