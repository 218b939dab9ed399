// SPDX-License-Identifier: MIT
// Package: packcolor/builder
//
// errors.go - sentinel errors for the builder package.
// Callers branch with errors.Is; implementations add context with %w.

package builder

import "errors"

// ErrTooFewVertices indicates that a size parameter (n, rows, cols) is below
// the minimum of the requested constructor.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrConstructFailed indicates that a topology could not be constructed
// (nil constructor, unusable source graph).
var ErrConstructFailed = errors.New("builder: construction failed")
