// SPDX-License-Identifier: MIT
package pairq

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates a rejected setting, e.g. an evaluator
	// the calculator cannot support or an invalid configuration.
	ErrInvalidArgument = errors.New("pairq: invalid argument")

	// ErrBadWindow indicates a negative or non-finite bound, or rmin > rmax
	// at evaluation time.
	ErrBadWindow = errors.New("pairq: invalid distance window")

	// ErrNoStructure indicates an evaluation without a structure.
	ErrNoStructure = errors.New("pairq: no structure")

	// ErrMergeOverflow indicates more merged shards than announced.
	ErrMergeOverflow = errors.New("pairq: number of merged values exceeds shard count")

	// ErrPayload indicates a corrupt or incompatible parallel payload.
	ErrPayload = errors.New("pairq: invalid parallel payload")

	// ErrNotSupported indicates a hook the calculator does not implement.
	ErrNotSupported = errors.New("pairq: operation not supported")
)

const (
	opEval           = "Eval"
	opSetStructure   = "SetStructure"
	opSetRmin        = "SetRmin"
	opSetRmax        = "SetRmax"
	opSetEvaluator   = "SetEvaluator"
	opSetupParallel  = "SetupParallelRun"
	opRestore        = "RestorePartialValue"
	opMerge          = "MergeParallelData"
	opParallelData   = "ParallelData"
	opConfigValidate = "Config.Validate"
	opConfigApply    = "Config.Apply"
	opParseConfig    = "ParseConfig"
)

func pairqErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
