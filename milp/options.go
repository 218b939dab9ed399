// SPDX-License-Identifier: MIT
//
// File: options.go
// Role: Functional options shared by BranchAndBound and SAT.

package milp

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultTolerance is the simplex optimality tolerance.
	DefaultTolerance = 1e-10
	// DefaultIntegralityTolerance is how far from an integer a value may be
	// and still count as integral.
	DefaultIntegralityTolerance = 1e-6
)

// Options configures a BranchAndBound or SAT solver.
type Options struct {
	// Tolerance is passed to the simplex method. SAT ignores it.
	Tolerance float64

	// IntegralityTolerance bounds |x - round(x)| for integer variables.
	IntegralityTolerance float64

	// NodeLimit caps the number of explored nodes (SAT calls for SAT);
	// 0 means no limit.
	NodeLimit int

	// TimeLimit caps wall-clock time; 0 means no limit.
	TimeLimit time.Duration

	// Logger receives progress records. Defaults to a discarding logger.
	Logger *log.Logger

	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the default solver options.
func DefaultOptions() Options {
	return Options{
		Tolerance:            DefaultTolerance,
		IntegralityTolerance: DefaultIntegralityTolerance,
		Logger:               log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// WithTolerance sets the simplex tolerance (> 0).
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) {
			o.setErr(fmt.Errorf("tolerance %v must be > 0: %w", tol, ErrOptionViolation))
			return
		}
		o.Tolerance = tol
	}
}

// WithIntegralityTolerance sets the integrality tolerance, in (0, 0.5).
func WithIntegralityTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0 && tol < 0.5) {
			o.setErr(fmt.Errorf("integrality tolerance %v not in (0, 0.5): %w", tol, ErrOptionViolation))
			return
		}
		o.IntegralityTolerance = tol
	}
}

// WithNodeLimit caps the number of explored nodes (0 disables the cap).
func WithNodeLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.setErr(fmt.Errorf("node limit %d must be ≥ 0: %w", n, ErrOptionViolation))
			return
		}
		o.NodeLimit = n
	}
}

// WithTimeLimit caps wall-clock time (0 disables the cap).
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.setErr(fmt.Errorf("time limit %v must be ≥ 0: %w", d, ErrOptionViolation))
			return
		}
		o.TimeLimit = d
	}
}

// WithLogger routes progress records to l. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func (o *Options) setErr(err error) {
	if o.err == nil {
		o.err = err
	}
}
