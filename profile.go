// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import "github.com/ibmruntimes/OpenCryptographyKitC/internal/digest"

// Strengths are the four security strengths (bits) a Hash_DRBG profile
// may support, in the fixed slot order used throughout this package and
// by the original profile tables (spec.md §4.6).
var Strengths = [4]int{112, 128, 192, 256}

const (
	// maxBytesPerRequest is 2^11 bytes, fixed across every profile
	// (spec.md §3).
	maxBytesPerRequest = 1 << 11
	// reseedInterval is 2^24-1 Generate calls, fixed across every
	// profile (spec.md §3).
	reseedInterval uint32 = (1 << 24) - 1
	// maxAuxLen bounds entropy, nonce, personalization and additional
	// input length alike, at 2^27 bytes (spec.md §3).
	maxAuxLen = 1 << 27
	// defaultHealthCheckInterval is how many instantiations trigger a
	// re-run of the KAT suite before a new instance is handed out
	// (spec.md §4.7; value is this implementation's choice, the
	// original source does not fix a specific number in the excerpt
	// recovered under original_source/).
	defaultHealthCheckInterval uint32 = 10000
)

// KATVector is one known-answer-test slot: the instantiate inputs, an
// optional reseed step, an optional entropy input (GenerateEin) mixed in
// by a reseed immediately before Generate, and the expected output bytes. Any field may be empty for a strength slot
// a profile does not support (spec.md §6, "KAT vector layout"); fields
// are positional and independently optional per spec.md §9.
type KATVector struct {
	Ein             []byte
	Nonce           []byte
	Personalization []byte
	ReseedEin       []byte
	GenerateEin     []byte
	Expected        []byte
}

// Supported reports whether this slot carries an executable KAT (a
// non-empty expected result). Unpopulated slots (e.g. SHA-1 at 192/256
// bit strength) report false.
func (v KATVector) Supported() bool {
	return len(v.Expected) > 0
}

// Profile is the static, per-hash parameter table tying a hash identity
// to a compliant Hash_DRBG configuration (spec.md §3, §4.6). Profile
// values are read-only and shared across all engine instances backed by
// the same hash.
type Profile struct {
	HashID ID

	// SeedLen is the internal state width in bytes: 440/8 = 55 for
	// SHA-1/224/256, 888/8 = 111 for SHA-384/512.
	SeedLen int

	// BlockLen is the native digest output length in bytes.
	BlockLen int

	// OBL (output block length) is used for tail-alignment of
	// digest-sized addends in the modular additions of Generate. It is
	// always equal to BlockLen for Hash_DRBG.
	OBL int

	MaxBytesPerRequest int
	ReseedInterval     uint32

	MaxEntropyLen           int
	MaxNonceLen             int
	MaxPersonalizationLen   int
	MaxAdditionalInputLen   int

	// SupportedStrengths lists the security strengths (bits) this
	// profile may be instantiated at. SHA-1 supports only {112, 128};
	// every other profile supports all four.
	SupportedStrengths []int

	// IsFIPS reports whether this profile is FIPS-approved. False only
	// for SHA-1.
	IsFIPS bool

	// HealthCheckInterval is how many instantiations trigger a re-run
	// of the full KAT suite (spec.md §4.7).
	HealthCheckInterval uint32

	// KATVectors holds one entry per strength slot (Strengths[i]),
	// empty where unsupported.
	KATVectors [4]KATVector
}

// ID is an alias for digest.ID, re-exported so callers of this package
// do not need to import internal/digest directly.
type ID = digest.ID

// Re-exported hash identifiers, matching digest.ID's constants.
const (
	SHA1   = digest.SHA1
	SHA224 = digest.SHA224
	SHA256 = digest.SHA256
	SHA384 = digest.SHA384
	SHA512 = digest.SHA512
)

// profiles is the static table of all five concrete profiles, keyed by
// hash identifier (spec.md §4.6). Populated in kat_data.go alongside the
// known-answer vectors each profile carries, to keep the (large) literal
// byte tables out of this file.
var profiles map[ID]*Profile

// AllHashes returns every hash identifier with a registered profile, in
// the fixed order SHA1, SHA224, SHA256, SHA384, SHA512. Used by the CLI's
// "profiles" subcommand and by tests that exercise every profile.
func AllHashes() []ID {
	return []ID{SHA1, SHA224, SHA256, SHA384, SHA512}
}

// ProfileFor returns the static Profile for id, or ErrProfileNotFound if
// id names a hash this package does not implement.
func ProfileFor(id ID) (*Profile, error) {
	p, ok := profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// SupportsStrength reports whether p supports the given security
// strength in bits.
func (p *Profile) SupportsStrength(bits int) bool {
	for _, s := range p.SupportedStrengths {
		if s == bits {
			return true
		}
	}
	return false
}

// katFor returns the KATVector for the given strength in bits, and
// whether that slot is populated.
func (p *Profile) katFor(bits int) (KATVector, bool) {
	for i, s := range Strengths {
		if s == bits {
			v := p.KATVectors[i]
			return v, v.Supported()
		}
	}
	return KATVector{}, false
}
