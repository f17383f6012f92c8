// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibmruntimes/OpenCryptographyKitC/internal/digest"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex literal %q: %v", s, err)
	}
	return b
}

// Test_Scenario_SHA256_112 exercises spec scenario 1 against the
// SHA-256/112-bit KAT: Instantiate, a reseed with the vector's generate
// entropy input, then a single Generate call.
func Test_Scenario_SHA256_112(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA256)
	is.NoError(err)

	ein := hexBytes(t, "d956caa24039e76f58616e0969afa2d7b7087401ee2d8777")
	nonce := hexBytes(t, "32a2ef15983e3c1f66e6032a")
	is.NoError(e.Instantiate(ein, nonce, nil))

	genEin := hexBytes(t, "7ba5a522580b41e1a4f540f9fe3daaf95df772740a199651")
	is.NoError(e.Reseed(genEin, nil))
	out, err := e.Generate(32, nil)
	is.NoError(err)

	want := hexBytes(t, "8772e9ef034ca519e92379801408b1b8d222ea9f27871c9d9897c0e355df9200")
	is.Equal(want, out)
}

// Test_Scenario_SHA512_256_WithPersonalization exercises spec scenario
// 2: instantiate with a personalization string, then two Generate
// calls whose concatenation matches the truncated NIST vector.
func Test_Scenario_SHA512_256_WithPersonalization(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA512)
	is.NoError(err)

	ein := hexBytes(t, "ee41942a7ffffec73cf65a2fadb572ad88b8178d2e9bbbe36a7f4f9967bb59bd")
	nonce := hexBytes(t, "93d0caac1f57e79f3a95b3d089e28d84")
	pers := hexBytes(t, "461a6307a195715a45890a449152ca8a29888e887f819fcc9e081ef0385db0b6")
	is.NoError(e.Instantiate(ein, nonce, pers))

	first, err := e.Generate(64, nil)
	is.NoError(err)
	second, err := e.Generate(64, nil)
	is.NoError(err)

	concat := append(append([]byte{}, first...), second...)
	want := hexBytes(t, "e7ffc20b3384eebd83ba0390e83862f77bccb455a678ad9ca27cd3ebe57527890315aa2f4a1c52d5ebfb7fe2634edce3fcd733d288e476045b9ac84b6415f08d")
	is.True(bytes.HasPrefix(concat, want[:64]))
}

// Test_Scenario_SHA1_112_PersonalizedPath exercises spec scenario 3:
// SHA-1 at 112-bit strength, instantiated with a personalization string
// in slot 2 (spec.md §9, SHA-1 positional slot layout), followed by two
// Generate calls.
func Test_Scenario_SHA1_112_PersonalizedPath(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA1)
	is.NoError(err)

	ein := hexBytes(t, "dc106ace9ff57c68131ea2ee75c6585a")
	nonce := hexBytes(t, "6a360c6f7bd4601e")
	pers := hexBytes(t, "6bd1589156952524ba1f9b140659baf2")

	is.NoError(e.Instantiate(ein, nonce, pers))

	first, err := e.Generate(64, nil)
	is.NoError(err)
	second, err := e.Generate(64, nil)
	is.NoError(err)

	concat := append(append([]byte{}, first...), second...)
	want := hexBytes(t, "3654d194a757d6293ccd301439a2f63e81cbbb031f6b47870ff0c41cf12af63f")
	is.True(bytes.HasPrefix(concat, want[:len(want)]))
}

// Test_Generate_ReseedExhaustion exercises spec scenario 4. It drives
// the reseed counter to the interval boundary directly rather than
// looping reseed_interval times, since the interval is 2^24-1.
func Test_Generate_ReseedExhaustion(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(e.Instantiate([]byte("entropy-for-reseed-exhaustion-test"), nil, nil))

	e.state.reseedCounter = e.profile.ReseedInterval

	_, err = e.Generate(1, nil)
	is.NoError(err)
	is.Equal(ModeReseedRequired, e.Mode())

	_, err = e.Generate(1, nil)
	is.ErrorIs(err, ErrReseedNeeded)

	is.NoError(e.Reseed([]byte("fresh-entropy"), nil))
	is.Equal(ModeReady, e.Mode())
	is.EqualValues(1, e.state.reseedCounter)

	_, err = e.Generate(1, nil)
	is.NoError(err)
	is.EqualValues(2, e.state.reseedCounter)
}

// Test_Generate_OversizeRejectionDoesNotMutateStream exercises spec
// scenario 5: an oversize request is rejected without perturbing the
// stream a subsequent, valid request observes.
func Test_Generate_OversizeRejectionDoesNotMutateStream(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	seed := []byte("entropy-for-oversize-rejection-test")

	control, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(control.Instantiate(seed, nil, nil))
	want, err := control.Generate(1, nil)
	is.NoError(err)

	e, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(e.Instantiate(seed, nil, nil))

	_, err = e.Generate(e.profile.MaxBytesPerRequest+1, nil)
	var stateErr *StateError
	is.ErrorAs(err, &stateErr)
	is.Equal(KindRequestTooLarge, stateErr.Kind)

	got, err := e.Generate(1, nil)
	is.NoError(err)
	is.Equal(want, got)
}

// Test_Generate_ExactlyN verifies spec.md §8 universal invariant 1.
func Test_Generate_ExactlyN(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(e.Instantiate([]byte("some entropy"), []byte("some nonce"), nil))

	for _, n := range []int{0, 1, 17, 2048} {
		out, err := e.Generate(n, nil)
		is.NoError(err)
		is.Len(out, n)
	}
}

// Test_Generate_Deterministic verifies spec.md §8 universal invariant 2:
// two independently instantiated engines with identical inputs produce
// identical output.
func Test_Generate_Deterministic(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	ein := []byte("shared entropy input")
	nonce := []byte("shared nonce")

	a, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(a.Instantiate(ein, nonce, nil))

	b, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(b.Instantiate(ein, nonce, nil))

	outA, err := a.Generate(48, []byte("ai"))
	is.NoError(err)
	outB, err := b.Generate(48, []byte("ai"))
	is.NoError(err)
	is.Equal(outA, outB)
}

// Test_Generate_RejectsFromUninitialised verifies spec.md §8 universal
// invariant 5's other direction: an engine that has never instantiated
// also rejects Generate.
func Test_Generate_RejectsFromUninitialised(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA256)
	is.NoError(err)

	_, err = e.Generate(1, nil)
	is.ErrorIs(err, ErrStateInvalid)
}

// Test_Uninstantiate_ThenOperationFails verifies spec.md §8 universal
// invariant 5.
func Test_Uninstantiate_ThenOperationFails(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(e.Instantiate([]byte("entropy"), nil, nil))
	is.NoError(e.Uninstantiate())

	_, err = e.Generate(1, nil)
	is.ErrorIs(err, ErrStateInvalid)
	is.ErrorIs(e.Reseed([]byte("x"), nil), ErrStateInvalid)
}

// Test_Uninstantiate_ZeroesState verifies spec.md §3 invariant 4.
func Test_Uninstantiate_ZeroesState(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(e.Instantiate([]byte("entropy"), []byte("nonce"), nil))
	is.NoError(e.Uninstantiate())

	for _, b := range e.state.v {
		is.Zero(b)
	}
	for _, b := range e.state.c {
		is.Zero(b)
	}
}

// Test_NewEngine_RequireFIPSRejectsSHA1 verifies the RequireFIPS option.
func Test_NewEngine_RequireFIPSRejectsSHA1(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	_, err := NewEngine(SHA1, WithRequireFIPS(true))
	is.ErrorIs(err, ErrFIPSModeRejected)

	_, err = NewEngine(SHA256, WithRequireFIPS(true))
	is.NoError(err)
}

// Test_Generate_DigestFailurePoisonsState verifies spec.md §3 invariant
// 3 and §7's DIGEST_FAILED row: a digest that violates its own length
// contract mid-stream poisons the engine into ModeError, every
// subsequent Instantiate/Reseed/Generate call fails with
// ErrStateInvalid regardless of whether the digest is later repaired,
// and only Uninstantiate can recover the engine.
func Test_Generate_DigestFailurePoisonsState(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	e, err := NewEngine(SHA256)
	is.NoError(err)
	is.NoError(e.Instantiate([]byte("entropy for digest failure test"), []byte("nonce"), nil))

	e.digest = digest.NewAdapterFromHash(digest.SHA256, &truncatingHash{h: sha256.New()})

	_, err = e.Generate(1, nil)
	var stateErr *StateError
	is.ErrorAs(err, &stateErr)
	is.Equal(KindDigestFailed, stateErr.Kind)
	is.Equal(ModeError, e.Mode())

	// Repairing the digest does not un-poison the engine: ERROR is sticky.
	e.digest = digest.NewAdapterFromHash(digest.SHA256, sha256.New())

	_, err = e.Generate(1, nil)
	is.ErrorIs(err, ErrStateInvalid)
	is.ErrorIs(e.Reseed([]byte("fresh"), nil), ErrStateInvalid)
	is.ErrorIs(e.Instantiate([]byte("entropy"), nil, nil), ErrStateInvalid)

	is.NoError(e.Uninstantiate())
	is.Equal(ModeUninitialised, e.Mode())
}

// Test_Instantiate_RejectsOversizeInputs verifies the INPUT_TOO_LARGE
// error kind fires without mutating engine mode.
func Test_Instantiate_RejectsOversizeInputs(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	p, err := ProfileFor(SHA256)
	is.NoError(err)

	e, err := NewEngine(SHA256)
	is.NoError(err)

	oversized := make([]byte, p.MaxEntropyLen+1)
	err = e.Instantiate(oversized, nil, nil)
	var stateErr *StateError
	is.ErrorAs(err, &stateErr)
	is.Equal(KindInputTooLarge, stateErr.Kind)
	is.Equal(ModeUninitialised, e.Mode())
}
