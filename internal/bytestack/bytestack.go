// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package bytestack implements a zero-copy, ordered sequence of borrowed
// byte-slice fragments, supporting append-at-tail, insert-at-head, and
// cursor-based traversal.
//
// It exists to let Hash_df assemble counter || no_of_bits || seed_material
// without reallocating or copying the already-built seed material: the
// derivation function appends the caller's input fragments first, then
// prepends the framing fields once the desired output length is known.
package bytestack

// fragment is a single borrowed (ptr, len) view into caller-owned memory.
// ByteStack never copies the bytes it is given; callers must keep the
// underlying slices alive for the duration of any traversal.
type fragment struct {
	data []byte
}

// ByteStack is an ordered sequence of fragments with a cursor for
// sequential extraction. The zero value is an empty sequence; Init
// empties a stack that has been used before.
type ByteStack struct {
	fragments []fragment
	total     int
	cursor    int
}

// Init resets s to an empty sequence.
func (s *ByteStack) Init() {
	s.fragments = s.fragments[:0]
	s.total = 0
	s.cursor = 0
}

// Append adds data as a new fragment at the tail of the sequence. data
// may be nil only if it is also empty; a nil, non-empty slice is a
// caller error.
func (s *ByteStack) Append(data []byte) {
	if len(data) == 0 {
		return
	}
	s.fragments = append(s.fragments, fragment{data: data})
	s.total += len(data)
}

// Insert prepends data as a new fragment at the head of the sequence.
func (s *ByteStack) Insert(data []byte) {
	if len(data) == 0 {
		return
	}
	s.fragments = append(s.fragments, fragment{})
	copy(s.fragments[1:], s.fragments[:len(s.fragments)-1])
	s.fragments[0] = fragment{data: data}
	s.total += len(data)
}

// Reset repositions the traversal cursor to the head of the sequence
// without mutating its content.
func (s *ByteStack) Reset() {
	s.cursor = 0
}

// Extract advances the cursor by one fragment and returns it. The second
// return value is false once the sequence is exhausted.
func (s *ByteStack) Extract() ([]byte, bool) {
	if s.cursor >= len(s.fragments) {
		return nil, false
	}
	f := s.fragments[s.cursor]
	s.cursor++
	return f.data, true
}

// Len returns the total number of bytes across all fragments.
func (s *ByteStack) Len() int {
	return s.total
}

// WriteTo resets the cursor to the head and feeds every fragment, in
// order, to sink. It may be called repeatedly: Hash_df invokes it once
// per digest iteration, re-traversing the same borrowed fragments.
func (s *ByteStack) WriteTo(sink func(p []byte)) {
	s.Reset()
	for {
		p, ok := s.Extract()
		if !ok {
			break
		}
		sink(p)
	}
}
