// SPDX-License-Identifier: MIT

package packing

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/packcolor/milp"
)

// Sentinel errors for formulation, solving and verification.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("packing: graph is nil")

	// ErrTableNil is returned by Build for a nil distance table.
	ErrTableNil = errors.New("packing: distance table is nil")

	// ErrEmptyGraph is returned by Build for a table without vertices;
	// no color bound k ≥ 1 exists for it.
	ErrEmptyGraph = errors.New("packing: graph has no vertices")

	// ErrFinalized is returned when a Builder is built twice.
	ErrFinalized = errors.New("packing: builder already finalized")

	// ErrInvalidColoring is returned by Verify.
	ErrInvalidColoring = errors.New("packing: invalid packing coloring")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("packing: invalid option supplied")
)

// Coloring is an optimal packing coloring.
type Coloring struct {
	// Colors maps every vertex ID to its color in [1, Max].
	Colors map[string]int

	// Max is the optimal maximum color z*, the packing chromatic number.
	Max int

	// Stats describes the solved formulation.
	Stats Stats
}

// Stats is diagnostic data of one Solve call.
type Stats struct {
	Vertices        int
	K               int // color upper bound, |V|
	Variables       int
	Constraints     int
	PackConstraints int
	WarmStart       int // max color of the first-fit start, 0 when disabled
	Nodes           int
	Status          milp.Status
	Elapsed         time.Duration
}

// Option configures Solve.
type Option func(*Options)

// Options holds Solve parameters.
type Options struct {
	// Ctx is forwarded to the distance oracle and the solver.
	Ctx context.Context

	// Solver is the MILP backend. nil selects milp.NewSAT.
	Solver milp.Solver

	// WarmStart seeds the solver with a first-fit packing coloring.
	WarmStart bool

	// Logger receives progress records.
	Logger *log.Logger

	err error
}

// DefaultOptions returns a background context, the SAT backend, warm start
// enabled and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Ctx:       context.Background(),
		WarmStart: true,
		Logger:    log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// WithContext sets a custom context for cancellation. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithSolver selects the MILP backend. A nil solver is an option violation.
func WithSolver(s milp.Solver) Option {
	return func(o *Options) {
		if s == nil {
			if o.err == nil {
				o.err = ErrOptionViolation
			}
			return
		}
		o.Solver = s
	}
}

// WithWarmStart toggles the first-fit start values.
func WithWarmStart(on bool) Option {
	return func(o *Options) { o.WarmStart = on }
}

// WithLogger routes progress records to l. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
