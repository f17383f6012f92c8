// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_SelfTest_AllProfilesPass verifies every compiled-in profile's
// known-answer suite succeeds against its own vectors.
func Test_SelfTest_AllProfilesPass(t *testing.T) {
	is := assert.New(t)

	for _, id := range AllHashes() {
		is.NoError(SelfTest(id), "profile %s failed self-test", id)
	}
}

// Test_SelfTest_Poisoning exercises spec scenario 6: corrupting a
// single byte of a KAT's expected output must fail SelfTest and poison
// the profile so NewEngine subsequently refuses it. Not run in
// parallel: it mutates package-level KAT state for the duration of the
// test and restores it via Cleanup.
func Test_SelfTest_Poisoning(t *testing.T) {
	is := assert.New(t)

	p, err := ProfileFor(SHA256)
	is.NoError(err)

	original := p.KATVectors[0].Expected[0]
	t.Cleanup(func() {
		p.KATVectors[0].Expected[0] = original
		healthCounters[SHA256].poisoned.Store(false)
	})

	p.KATVectors[0].Expected[0] ^= 0xFF

	err = SelfTest(SHA256)
	is.Error(err)
	var stateErr *StateError
	is.ErrorAs(err, &stateErr)
	is.Equal(KindKATMismatch, stateErr.Kind)
	is.True(profilePoisoned(SHA256))

	_, err = NewEngine(SHA256)
	is.ErrorIs(err, ErrKATMismatch)
}

// Test_SelfTest_UnrecognizedProfile verifies ProfileFor's error path
// surfaces through SelfTest unchanged.
func Test_SelfTest_UnrecognizedProfile(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	err := SelfTest(ID(99))
	is.ErrorIs(err, ErrProfileNotFound)
}
