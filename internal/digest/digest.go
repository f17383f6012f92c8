// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package digest is a thin façade over the Go standard library's
// cryptographic hash primitives (crypto/sha1, crypto/sha256,
// crypto/sha512), the approved hash functions named in NIST SP 800-90A
// for the Hash_DRBG family. The hash primitives themselves are treated
// as opaque collaborators: this package only sequences
// Init/Update/Finalize/Reset around hash.Hash, the same role ctrdrbg
// gives crypto/aes as its opaque block-cipher collaborator.
package digest

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// ID identifies one of the hash primitives approved for Hash_DRBG.
type ID int

const (
	SHA1 ID = iota
	SHA224
	SHA256
	SHA384
	SHA512
)

// String renders the canonical algorithm name, matching the "specific"
// field names used by the original PRNG profile table (SHA1, SHA224, ...).
func (id ID) String() string {
	switch id {
	case SHA1:
		return "SHA1"
	case SHA224:
		return "SHA224"
	case SHA256:
		return "SHA256"
	case SHA384:
		return "SHA384"
	case SHA512:
		return "SHA512"
	default:
		return fmt.Sprintf("ID(%d)", int(id))
	}
}

// Len returns the native digest output length in bytes for id, or 0 if
// id is not a recognized primitive.
func Len(id ID) int {
	switch id {
	case SHA1:
		return sha1.Size
	case SHA224:
		return sha256.Size224
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	default:
		return 0
	}
}

// New constructs a fresh hash.Hash for id. It returns an error for an
// unrecognized id (the engine surfaces this as BadHashID).
func New(id ID) (hash.Hash, error) {
	switch id {
	case SHA1:
		return sha1.New(), nil
	case SHA224:
		return sha256.New224(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("digest: unrecognized hash id %d", int(id))
	}
}

// Adapter sequences a single hash.Hash through repeated
// init/update/finalize/reset cycles on behalf of the engine.
//
// A single Adapter instance is scoped to one DrbgEngine for its entire
// lifetime (§5: the digest context is owned exclusively by the instance).
// It is not safe for concurrent use.
type Adapter struct {
	id ID
	h  hash.Hash
}

// NewAdapter constructs an Adapter bound to id. It fails if id is not a
// recognized hash primitive.
func NewAdapter(id ID) (*Adapter, error) {
	h, err := New(id)
	if err != nil {
		return nil, err
	}
	return NewAdapterFromHash(id, h), nil
}

// NewAdapterFromHash wraps an already-constructed hash.Hash as an
// Adapter bound to id, bypassing the id -> primitive lookup in New.
// Exported for tests that substitute a hash.Hash whose Sum/Size diverge
// from the bound id, exercising the digest-failure detection engine.go
// relies on to poison a DrbgEngine (§4.1, §7 DIGEST_FAILED).
func NewAdapterFromHash(id ID, h hash.Hash) *Adapter {
	return &Adapter{id: id, h: h}
}

// ID reports the hash primitive this adapter was constructed with.
func (a *Adapter) ID() ID { return a.id }

// Size returns the digest length in bytes produced by Finalize.
func (a *Adapter) Size() int { return a.h.Size() }

// Update feeds p into the in-progress digest.
func (a *Adapter) Update(p []byte) {
	// hash.Hash.Write never returns an error per its documented contract.
	a.h.Write(p)
}

// Finalize appends the digest of everything written since the last
// Reset into dst, returning the extended slice. It does not reset the
// underlying hash; callers must call Reset before starting a new digest.
func (a *Adapter) Finalize(dst []byte) []byte {
	return a.h.Sum(dst)
}

// Reset returns the adapter to a freshly initialized state without
// discarding the bound hash identity, ready for a new
// Update*/Finalize cycle.
func (a *Adapter) Reset() {
	a.h.Reset()
}
