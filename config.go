// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

// Config holds the construction-time, non-secret parameters for a
// DrbgEngine, following the Config/Option pattern ctrdrbg.Config uses
// for its own construction-time parameters.
type Config struct {
	// RequireFIPS rejects construction of an engine backed by a
	// non-FIPS-approved profile (currently: SHA-1, Profile.IsFIPS ==
	// false). Defaults to false, matching the standard's own treatment
	// of SHA-1 as permitted-but-deprecated.
	RequireFIPS bool

	// HealthCheckInterval overrides the profile's default
	// HealthCheckInterval (instantiations between full KAT re-runs). A
	// value of zero uses the profile's own default.
	HealthCheckInterval uint32
}

// DefaultConfig returns a Config with production-safe defaults: FIPS
// mode not required, profile-default health-check cadence.
func DefaultConfig() Config {
	return Config{
		RequireFIPS:         false,
		HealthCheckInterval: 0,
	}
}

// Option is a functional option for customizing a Config, matching
// ctrdrbg.Option.
type Option func(*Config)

// WithRequireFIPS returns an Option that rejects non-FIPS-approved
// profiles at NewEngine time.
func WithRequireFIPS(require bool) Option {
	return func(cfg *Config) { cfg.RequireFIPS = require }
}

// WithHealthCheckInterval returns an Option overriding the number of
// instantiations between full self-test re-runs.
func WithHealthCheckInterval(n uint32) Option {
	return func(cfg *Config) { cfg.HealthCheckInterval = n }
}
