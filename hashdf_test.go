// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibmruntimes/OpenCryptographyKitC/internal/bytestack"
	"github.com/ibmruntimes/OpenCryptographyKitC/internal/digest"
)

// truncatingHash wraps a hash.Hash and returns half as many bytes from
// Sum as Size reports, simulating a digest primitive that violates its
// own length contract. Shared across this package's tests that exercise
// the DIGEST_FAILED poisoning path (spec.md §3 invariant 3, §7).
type truncatingHash struct {
	h hash.Hash
}

func (t *truncatingHash) Write(p []byte) (int, error) { return t.h.Write(p) }
func (t *truncatingHash) Reset()                      { t.h.Reset() }
func (t *truncatingHash) Size() int                   { return t.h.Size() }
func (t *truncatingHash) BlockSize() int              { return t.h.BlockSize() }
func (t *truncatingHash) Sum(b []byte) []byte {
	full := t.h.Sum(nil)
	return append(b, full[:len(full)/2]...)
}

// Test_HashDf_LengthAndDeterminism verifies hashDf produces exactly the
// requested length and is a pure function of its inputs.
func Test_HashDf_LengthAndDeterminism(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a, err := digest.NewAdapter(digest.SHA256)
	is.NoError(err)

	run := func() []byte {
		var s bytestack.ByteStack
		s.Init()
		s.Append([]byte("seed material"))
		out, err := hashDf(a, &s, 55)
		is.NoError(err)
		return out
	}

	first := run()
	second := run()
	is.Len(first, 55)
	is.Equal(first, second)
}

// Test_HashDf_MatchesManualConcatenation verifies hashDf(S, L) equals
// concatenating HASH(i || bits || S) for i = 1.. truncated to L
// (spec.md §8 invariant 6), for an L spanning two digest blocks.
func Test_HashDf_MatchesManualConcatenation(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	seedMaterial := []byte("entropy-nonce-personalization")
	outl := 40 // > sha256.Size (32), forces a second iteration

	a, err := digest.NewAdapter(digest.SHA256)
	is.NoError(err)
	var s bytestack.ByteStack
	s.Init()
	s.Append(seedMaterial)
	got, err := hashDf(a, &s, outl)
	is.NoError(err)

	var want []byte
	var bits [4]byte
	binary.BigEndian.PutUint32(bits[:], uint32(outl)*8)
	for counter := byte(1); len(want) < outl; counter++ {
		h := sha256.New()
		h.Write([]byte{counter})
		h.Write(bits[:])
		h.Write(seedMaterial)
		want = append(want, h.Sum(nil)...)
	}
	want = want[:outl]

	is.Equal(want, got)
}

// Test_HashDf_SurfacesDigestFailure verifies that hashDf reports a
// KindDigestFailed StateError rather than silently truncating output
// when the bound digest violates its own length contract.
func Test_HashDf_SurfacesDigestFailure(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a := digest.NewAdapterFromHash(digest.SHA256, &truncatingHash{h: sha256.New()})
	var s bytestack.ByteStack
	s.Init()
	s.Append([]byte("seed material"))

	_, err := hashDf(a, &s, 55)
	var stateErr *StateError
	is.ErrorAs(err, &stateErr)
	is.Equal(KindDigestFailed, stateErr.Kind)
}

// Test_HashDf_ExactlyOneBlock verifies the common case of outl equal to
// the digest size, requiring no second iteration.
func Test_HashDf_ExactlyOneBlock(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	a, err := digest.NewAdapter(digest.SHA1)
	is.NoError(err)
	var s bytestack.ByteStack
	s.Init()
	s.Append([]byte("x"))
	out, err := hashDf(a, &s, a.Size())
	is.NoError(err)
	is.Len(out, a.Size())
}
