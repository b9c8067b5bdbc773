// SPDX-License-Identifier: MIT
package evaluator

import (
	"fmt"
	"strings"
)

// Kind names an evaluation strategy.
type Kind int

const (
	// KindNone marks an evaluator that has not run yet.
	KindNone Kind = iota
	KindBasic
	KindOptimized
	KindCheck
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindOptimized:
		return "optimized"
	case KindCheck:
		return "check"
	default:
		return "none"
	}
}

// ParseKind accepts "basic", "optimized" or "check" in any case.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return KindBasic, nil
	case "optimized":
		return KindOptimized, nil
	case "check":
		return KindCheck, nil
	}
	return KindNone, evaluatorErrorf("ParseKind", fmt.Errorf("%q: %w", s, ErrUnknownKind))
}
