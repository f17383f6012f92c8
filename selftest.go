// Copyright (c) 2024 Six After, Inc
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package hashdrbg

import (
	"crypto/subtle"
	"strconv"
	"sync/atomic"

	"github.com/ibmruntimes/OpenCryptographyKitC/internal/digest"
)

// healthCounters tracks, per profile, how many instantiations have run
// since the last full self-test and whether that profile has been
// poisoned by a known-answer mismatch (spec.md §4.7). Keyed by the same
// ID the profile table uses.
var healthCounters = map[ID]*healthCounter{}

type healthCounter struct {
	interval uint32
	count    atomic.Uint32
	tested   atomic.Bool
	poisoned atomic.Bool
}

func init() {
	for id := range profiles {
		healthCounters[id] = &healthCounter{}
	}
}

// trackHealthCheck registers the effective health-check interval for a
// profile and runs the full known-answer suite the first time the
// profile is used. Subsequent calls increment the instantiation count
// and re-run the suite once it reaches interval.
func trackHealthCheck(p *Profile, interval uint32) {
	hc, ok := healthCounters[p.HashID]
	if !ok {
		hc = &healthCounter{}
		healthCounters[p.HashID] = hc
	}
	hc.interval = interval

	n := hc.count.Add(1)
	first := hc.tested.CompareAndSwap(false, true)
	if first || (interval > 0 && n >= interval) {
		hc.count.Store(0)
		if err := SelfTest(p.HashID); err != nil {
			hc.poisoned.Store(true)
		}
	}
}

// profilePoisoned reports whether id's profile has failed a prior
// self-test run and must refuse further instantiation.
func profilePoisoned(id ID) bool {
	hc, ok := healthCounters[id]
	return ok && hc.poisoned.Load()
}

// SelfTest runs every populated known-answer vector for the profile
// named by id, verifying the generated bytes against the expected
// output by constant-time comparison (spec.md §4.7). A single mismatch
// marks the profile poisoned: subsequent calls to NewEngine for id fail
// with ErrKATMismatch until the process is restarted.
func SelfTest(id ID) error {
	p, err := ProfileFor(id)
	if err != nil {
		return err
	}

	for i, strength := range Strengths {
		vec := p.KATVectors[i]
		if !vec.Supported() {
			continue
		}
		if err := runKAT(p, vec); err != nil {
			markPoisoned(id)
			return newStateError(KindKATMismatch, "strength "+strconv.Itoa(strength)+": "+err.Error())
		}
	}
	return nil
}

func markPoisoned(id ID) {
	hc, ok := healthCounters[id]
	if !ok {
		hc = &healthCounter{}
		healthCounters[id] = hc
	}
	hc.poisoned.Store(true)
}

// runKAT instantiates a bare engine for p's hash (bypassing the health
// check and poisoning hooks NewEngine applies, since SelfTest is what
// those hooks call into), drives it through the vector's reseed and
// generate steps, and compares the concatenated output against the
// vector's expected bytes.
func runKAT(p *Profile, vec KATVector) error {
	adapter, err := digest.NewAdapter(p.HashID)
	if err != nil {
		return err
	}
	e := &DrbgEngine{
		profile: p,
		digest:  adapter,
		state:   newDrbgState(p.SeedLen, p.OBL),
	}

	if err := e.Instantiate(vec.Ein, vec.Nonce, vec.Personalization); err != nil {
		return err
	}
	if len(vec.ReseedEin) > 0 {
		if err := e.Reseed(vec.ReseedEin, nil); err != nil {
			return err
		}
	}
	// GenerateEin is fresh entropy for the generate step: it is mixed in
	// by a reseed immediately before Generate, which then runs without
	// additional input.
	if len(vec.GenerateEin) > 0 {
		if err := e.Reseed(vec.GenerateEin, nil); err != nil {
			return err
		}
	}

	n := len(vec.Expected)
	first := n
	if first > p.MaxBytesPerRequest {
		first = p.MaxBytesPerRequest
	}

	got, err := e.Generate(first, nil)
	if err != nil {
		return err
	}
	for len(got) < n {
		remaining := n - len(got)
		chunk := remaining
		if chunk > p.MaxBytesPerRequest {
			chunk = p.MaxBytesPerRequest
		}
		more, err := e.Generate(chunk, nil)
		if err != nil {
			return err
		}
		got = append(got, more...)
	}

	if subtle.ConstantTimeCompare(got, vec.Expected) != 1 {
		return ErrKATMismatch
	}
	return nil
}
