// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_StateError_ErrorFormatsReason verifies Error()'s two renderings:
// with and without a diagnostic reason.
func Test_StateError_ErrorFormatsReason(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	bare := &StateError{Kind: KindReseedNeeded}
	is.Equal("RESEED_NEEDED", bare.Error())

	detailed := &StateError{Kind: KindReseedNeeded, Reason: "counter exhausted"}
	is.Equal("RESEED_NEEDED: counter exhausted", detailed.Error())
}

// Test_StateError_IsComparesByKind verifies errors.Is matches sentinels
// by Kind, independent of Reason text.
func Test_StateError_IsComparesByKind(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	err := newStateError(KindReseedNeeded, "some specific call site detail")
	is.True(errors.Is(err, ErrReseedNeeded))
	is.False(errors.Is(err, ErrStateInvalid))
}

// Test_Kind_String verifies every Kind renders a distinct label and
// that an out-of-range Kind does not panic.
func Test_Kind_String(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	kinds := []Kind{
		KindDigestFailed, KindStateInvalid, KindReseedNeeded,
		KindRequestTooLarge, KindInputTooLarge, KindKATMismatch, KindBadHashID,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		is.False(seen[s], "duplicate Kind label %q", s)
		seen[s] = true
	}
	is.Contains(Kind(99).String(), "99")
}
