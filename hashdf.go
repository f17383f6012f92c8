// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"encoding/binary"

	"github.com/ibmruntimes/OpenCryptographyKitC/internal/bytestack"
	"github.com/ibmruntimes/OpenCryptographyKitC/internal/digest"
)

// hashDf is the SP 800-90A hash derivation function (§10.3.1 of the
// standard). It produces outl bytes from the fragments already held in
// s by prepending a one-octet counter and a 32-bit big-endian bit count,
// then repeatedly hashing and incrementing the counter until outl bytes
// have been emitted.
//
// s is left in an undefined fragment order on return; callers must not
// reuse it without calling Init again. outl must satisfy
// outl <= 255*a.Size(), the single-octet counter's range.
func hashDf(a *digest.Adapter, s *bytestack.ByteStack, outl int) ([]byte, error) {
	var header [5]byte
	binary.BigEndian.PutUint32(header[1:], uint32(outl)*8)
	s.Insert(header[:])

	out := make([]byte, 0, outl)
	scratch := make([]byte, a.Size())
	counter := byte(1)

	for len(out) < outl {
		header[0] = counter
		a.Reset()
		s.WriteTo(a.Update)

		scratch = a.Finalize(scratch[:0])
		if len(scratch) != a.Size() {
			zero(scratch)
			return nil, newStateError(KindDigestFailed, "hash_df: digest returned unexpected length")
		}

		remaining := outl - len(out)
		n := remaining
		if n > len(scratch) {
			n = len(scratch)
		}
		out = append(out, scratch[:n]...)
		counter++
	}

	zero(scratch)
	return out, nil
}

// zero overwrites p with zero bytes, used on every scratch-buffer return
// path to keep transient digest material from lingering in memory.
func zero(p []byte) {
	for i := range p {
		p[i] = 0
	}
}
