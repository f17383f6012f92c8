// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

// Mode is the lifecycle state of a DrbgEngine instance (spec.md §3).
type Mode int

const (
	// ModeUninitialised is the zero value: no Instantiate has succeeded
	// yet, or Uninstantiate has run.
	ModeUninitialised Mode = iota
	// ModeReady accepts Generate and Reseed calls.
	ModeReady
	// ModeReseedRequired accepts only Reseed; the reseed interval has
	// been exhausted.
	ModeReseedRequired
	// ModeError is sticky: only Uninstantiate is accepted.
	ModeError
)

func (m Mode) String() string {
	switch m {
	case ModeUninitialised:
		return "UNINITIALISED"
	case ModeReady:
		return "READY"
	case ModeReseedRequired:
		return "RESEED_REQUIRED"
	case ModeError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// drbgState holds the working state owned by a single DrbgEngine
// instance: V and C (spec.md §3), the reseed counter, and the scratch
// buffers T and eBuf reused across Generate calls to avoid per-call
// allocation of secret-bearing memory.
type drbgState struct {
	v []byte
	c []byte

	reseedCounter uint32
	mode          Mode
	errorReason   string

	// t is a seedlen-wide scratch buffer for modular-addition results.
	t []byte
	// eBuf is a block-wide (OBL) scratch buffer for tail-aligned digest
	// results (w, H) before they are added into v.
	eBuf []byte
}

func newDrbgState(seedLen, oblLen int) *drbgState {
	return &drbgState{
		v:    make([]byte, seedLen),
		c:    make([]byte, seedLen),
		t:    make([]byte, seedLen),
		eBuf: make([]byte, oblLen),
		mode: ModeUninitialised,
	}
}

// zeroize clears every secret-bearing buffer, per spec.md §3 invariant 4
// and §5's teardown resource policy.
func (s *drbgState) zeroize() {
	zero(s.v)
	zero(s.c)
	zero(s.t)
	zero(s.eBuf)
	s.reseedCounter = 0
}

// poison transitions s into the sticky ModeError, per spec.md §7. The
// engine calls it only for DIGEST_FAILED; every other error kind leaves
// mode unchanged.
func (s *drbgState) poison(kind Kind, reason string) *StateError {
	s.mode = ModeError
	s.errorReason = reason
	return newStateError(kind, reason)
}
