// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"github.com/ibmruntimes/OpenCryptographyKitC/internal/bigendian"
	"github.com/ibmruntimes/OpenCryptographyKitC/internal/bytestack"
	"github.com/ibmruntimes/OpenCryptographyKitC/internal/digest"
)

// Domain separators mixed into the hash inputs of Instantiate, Reseed
// and Generate (spec.md §6, "On-the-wire constants").
const (
	sepConstant       = 0x00
	sepReseed         = 0x01
	sepAdditionalData = 0x02
	sepGenerateUpdate = 0x03
)

// DrbgEngine is a single Hash_DRBG instance bound to one Profile. It is
// not safe for concurrent use: per spec.md §5, callers must serialise
// access to a shared instance themselves.
type DrbgEngine struct {
	profile *Profile
	cfg     Config
	digest  *digest.Adapter
	state   *drbgState
}

// NewEngine constructs a DrbgEngine for the given hash identity. It
// fails with ErrBadHashID if hash names a primitive this package does
// not implement, or with ErrFIPSModeRejected if cfg.RequireFIPS is set
// and the profile is not FIPS-approved (currently: SHA-1).
func NewEngine(hash ID, opts ...Option) (*DrbgEngine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	profile, err := ProfileFor(hash)
	if err != nil {
		return nil, newStateError(KindBadHashID, err.Error())
	}
	if cfg.RequireFIPS && !profile.IsFIPS {
		return nil, ErrFIPSModeRejected
	}

	adapter, err := digest.NewAdapter(hash)
	if err != nil {
		return nil, newStateError(KindBadHashID, err.Error())
	}

	healthInterval := profile.HealthCheckInterval
	if cfg.HealthCheckInterval != 0 {
		healthInterval = cfg.HealthCheckInterval
	}
	trackHealthCheck(profile, healthInterval)
	if profilePoisoned(hash) {
		return nil, ErrKATMismatch
	}

	return &DrbgEngine{
		profile: profile,
		cfg:     cfg,
		digest:  adapter,
		state:   newDrbgState(profile.SeedLen, profile.OBL),
	}, nil
}

// Mode reports the engine's current lifecycle state.
func (e *DrbgEngine) Mode() Mode { return e.state.mode }

// Profile returns the static parameter table this engine was
// constructed with.
func (e *DrbgEngine) Profile() *Profile { return e.profile }

func (e *DrbgEngine) checkLen(n, max int, reason string) error {
	if n > max {
		return newStateError(KindInputTooLarge, reason)
	}
	return nil
}

// Instantiate seeds the engine from caller-supplied entropy, nonce and
// personalization string (spec.md §4.5). It may be called only from
// ModeUninitialised, ModeReady or ModeReseedRequired; it is not valid
// from ModeError.
func (e *DrbgEngine) Instantiate(ein, nonce, personalization []byte) error {
	if e.state.mode == ModeError {
		return ErrStateInvalid
	}
	if err := e.checkLen(len(ein), e.profile.MaxEntropyLen, "entropy input exceeds profile maximum"); err != nil {
		return err
	}
	if err := e.checkLen(len(nonce), e.profile.MaxNonceLen, "nonce exceeds profile maximum"); err != nil {
		return err
	}
	if err := e.checkLen(len(personalization), e.profile.MaxPersonalizationLen, "personalization string exceeds profile maximum"); err != nil {
		return err
	}

	var s bytestack.ByteStack
	s.Init()
	s.Append(ein)
	s.Append(nonce)
	s.Append(personalization)

	v, err := hashDf(e.digest, &s, e.profile.SeedLen)
	if err != nil {
		return e.state.poison(KindDigestFailed, err.Error())
	}
	copy(e.state.v, v)

	if err := e.deriveC(); err != nil {
		return e.state.poison(KindDigestFailed, err.Error())
	}

	e.state.reseedCounter = 1
	e.state.mode = ModeReady
	return nil
}

// Reseed mixes fresh entropy and additional input into the current
// working state, restoring the engine to ModeReady (spec.md §4.5).
func (e *DrbgEngine) Reseed(ein, additionalInput []byte) error {
	if e.state.mode == ModeUninitialised || e.state.mode == ModeError {
		return ErrStateInvalid
	}
	if err := e.checkLen(len(ein), e.profile.MaxEntropyLen, "entropy input exceeds profile maximum"); err != nil {
		return err
	}
	if err := e.checkLen(len(additionalInput), e.profile.MaxAdditionalInputLen, "additional input exceeds profile maximum"); err != nil {
		return err
	}

	var s bytestack.ByteStack
	s.Init()
	s.Append([]byte{sepReseed})
	s.Append(e.state.v)
	s.Append(ein)
	s.Append(additionalInput)

	vNew, err := hashDf(e.digest, &s, e.profile.SeedLen)
	if err != nil {
		return e.state.poison(KindDigestFailed, err.Error())
	}
	copy(e.state.v, vNew)

	if err := e.deriveC(); err != nil {
		return e.state.poison(KindDigestFailed, err.Error())
	}

	e.state.reseedCounter = 1
	e.state.mode = ModeReady
	return nil
}

// deriveC sets C = Hash_df(0x00 || V, seedlen), the shared tail of
// Instantiate and Reseed.
func (e *DrbgEngine) deriveC() error {
	var s bytestack.ByteStack
	s.Init()
	s.Append([]byte{sepConstant})
	s.Append(e.state.v)

	c, err := hashDf(e.digest, &s, e.profile.SeedLen)
	if err != nil {
		return err
	}
	copy(e.state.c, c)
	return nil
}

// Generate produces n pseudo-random bytes, optionally mixing in
// additional input first (spec.md §4.5).
func (e *DrbgEngine) Generate(n int, additionalInput []byte) ([]byte, error) {
	switch e.state.mode {
	case ModeReseedRequired:
		return nil, ErrReseedNeeded
	case ModeReady:
		// fall through
	default:
		return nil, ErrStateInvalid
	}
	if n > e.profile.MaxBytesPerRequest {
		return nil, newStateError(KindRequestTooLarge, "requested length exceeds profile maximum")
	}
	if err := e.checkLen(len(additionalInput), e.profile.MaxAdditionalInputLen, "additional input exceeds profile maximum"); err != nil {
		return nil, err
	}

	if len(additionalInput) > 0 {
		e.digest.Reset()
		e.digest.Update([]byte{sepAdditionalData})
		e.digest.Update(e.state.v)
		e.digest.Update(additionalInput)
		w := e.digest.Finalize(e.state.eBuf[:0])
		if len(w) != e.profile.OBL {
			return nil, e.state.poison(KindDigestFailed, "digest returned unexpected length mixing additional input")
		}
		bigendian.Add(e.state.t, e.state.v, w)
		copy(e.state.v, e.state.t)
	}

	out, err := e.hashgen(n)
	if err != nil {
		return nil, e.state.poison(KindDigestFailed, err.Error())
	}

	e.digest.Reset()
	e.digest.Update([]byte{sepGenerateUpdate})
	e.digest.Update(e.state.v)
	h := e.digest.Finalize(e.state.eBuf[:0])
	if len(h) != e.profile.OBL {
		return nil, e.state.poison(KindDigestFailed, "digest returned unexpected length in post-generate update")
	}
	bigendian.Add(e.state.t, e.state.v, h)
	copy(e.state.v, e.state.t)

	bigendian.Add(e.state.t, e.state.v, e.state.c)
	copy(e.state.v, e.state.t)

	bigendian.AddUint32(e.state.t, e.state.v, e.state.reseedCounter)
	copy(e.state.v, e.state.t)

	e.state.reseedCounter++
	if e.state.reseedCounter > e.profile.ReseedInterval {
		e.state.mode = ModeReseedRequired
	}

	return out, nil
}

// hashgen is the inner output generator of Generate (spec.md §4.5 step
// 3): repeatedly hash the working value and increment it, until n bytes
// have been produced. It does not mutate e.state.v; the caller derives
// the post-generate update of V separately.
func (e *DrbgEngine) hashgen(n int) ([]byte, error) {
	data := make([]byte, len(e.state.v))
	copy(data, e.state.v)

	out := make([]byte, 0, n)
	scratch := make([]byte, e.digest.Size())

	for len(out) < n {
		e.digest.Reset()
		e.digest.Update(data)
		scratch = e.digest.Finalize(scratch[:0])
		if len(scratch) != e.digest.Size() {
			zero(scratch)
			zero(data)
			return nil, newStateError(KindDigestFailed, "digest returned unexpected length in hashgen")
		}

		remaining := n - len(out)
		take := remaining
		if take > len(scratch) {
			take = len(scratch)
		}
		out = append(out, scratch[:take]...)

		if len(out) < n {
			bigendian.Increment(data, data)
		}
	}

	zero(scratch)
	zero(data)
	return out, nil
}

// Uninstantiate zeroes all state buffers and returns the engine to
// ModeUninitialised (spec.md §4.5). It always succeeds, including from
// ModeError.
func (e *DrbgEngine) Uninstantiate() error {
	e.state.zeroize()
	e.state.mode = ModeUninitialised
	e.state.errorReason = ""
	return nil
}
