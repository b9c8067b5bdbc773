// SPDX-License-Identifier: MIT
package evaluator

import "log/slog"

const (
	// DefaultCheckRtol is the relative tolerance of the check strategy.
	DefaultCheckRtol = 1e-6
	// DefaultCheckAtol is the absolute tolerance of the check strategy.
	DefaultCheckAtol = 1e-9
)

// Option configures an evaluator.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	rtol, atol float64
}

func defaultOptions() options {
	return options{logger: slog.Default(), rtol: DefaultCheckRtol, atol: DefaultCheckAtol}
}

// WithLogger sets the logger. A nil logger keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCheckTolerance sets the comparison tolerances of the check strategy.
func WithCheckTolerance(rtol, atol float64) Option {
	return func(o *options) {
		o.rtol, o.atol = rtol, atol
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
