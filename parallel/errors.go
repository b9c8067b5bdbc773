// SPDX-License-Identifier: MIT
package parallel

import (
	"errors"
	"fmt"
)

var (
	// ErrBadCount indicates a shard count below one.
	ErrBadCount = errors.New("parallel: shard count must be positive")

	// ErrNilArgument indicates a missing master, structure or worker factory.
	ErrNilArgument = errors.New("parallel: nil argument")
)

func parallelErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
