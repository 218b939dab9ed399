// SPDX-License-Identifier: MIT
// Package: packcolor/builder
//
// config.go - builderConfig and its functional options.
//
// Defaults:
//   - idFn = DefaultIDFn ("0","1","2",...)
//
// Option constructors validate and panic on meaningless inputs;
// constructors themselves never panic.

package builder

// builderConfig is the single source of truth for all builder knobs.
type builderConfig struct {
	idFn IDFn
}

// BuilderOption customizes builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the deterministic vertex ID generator idx -> string.
// Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}

	return func(c *builderConfig) { c.idFn = fn }
}

// newBuilderConfig applies options in order; later options override earlier ones.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{idFn: DefaultIDFn}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
