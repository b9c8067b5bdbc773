// SPDX-License-Identifier: MIT
package pairq

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/pairsum/structure"
)

const (
	// DefaultRmin is the lower distance bound of a new quantity.
	DefaultRmin = 0.0
	// DefaultRmax is the upper distance bound of a new quantity. It suits
	// molecules only: Eval of a Periodic or Crystal fails with
	// structure.ErrBadWindow until a finite bound is set.
	DefaultRmax = structure.DefaultRmax
)

// Panic messages of option constructors.
const (
	panicBadRmin = "pairq: WithRmin(r<0 or not finite)"
	panicBadRmax = "pairq: WithRmax(r<0 or not finite)"
)

// Option configures NewBase.
type Option func(*options)

type options struct {
	rmin, rmax float64
	fullSum    bool
	logger     *slog.Logger
}

// WithRmin sets the initial lower bound. Panics on an invalid value.
func WithRmin(r float64) Option {
	if !validBound(r) {
		panic(panicBadRmin)
	}
	return func(o *options) { o.rmin = r }
}

// WithRmax sets the initial upper bound. Panics on an invalid value.
func WithRmax(r float64) Option {
	if !validBound(r) {
		panic(panicBadRmax)
	}
	return func(o *options) { o.rmax = r }
}

// WithFullSum starts the quantity in full-sum mode.
func WithFullSum() Option {
	return func(o *options) { o.fullSum = true }
}

// WithLogger sets the logger shared with the evaluators. nil keeps
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(opts []Option) options {
	o := options{rmin: DefaultRmin, rmax: DefaultRmax, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func validBound(r float64) bool {
	return r >= 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}
