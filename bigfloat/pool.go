// Copyright (c) 2025 Mohammad Shafiee
// SPDX-License-Identifier: BSD-3-Clause

package bigfloat

import (
	"math/big"
	"sort"
	"sync"
)

// Component A: handle pool & GC.
//
// math/big.Float is already garbage-collected by the Go runtime, so there
// is no native allocator to reclaim from underneath it the way the
// original design's tracing-GC dependency required. Per the Design Notes
// numkit instead uses
// an arena+index: native *big.Float storage lives in a slab indexed by a
// stable uint32, a handle is that index, and eviction still caps resident
// limb-buffer memory by serializing a BigFloat's value into an owned byte
// buffer and returning its slab slot to a bounded free list.

// handle is a native storage reference: an index into the pool's slab.
type handle struct {
	index uint32
	valid bool
}

// gcEleLimit is the soft cap on the number of live managed BigFloats
// before gc() runs, and on the size of the recycled free list.
const gcEleLimit = 4096

type pool struct {
	mu sync.Mutex

	slab      []*big.Float
	recycled  []uint32
	live      []*BigFloat
	nextStamp uint32
	gcRunning bool
}

var defaultPool = &pool{}

// acquire returns a handle backed by a fresh or recycled native *big.Float.
func (p *pool) acquire() handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := len(p.recycled); n > 0 {
		idx := p.recycled[n-1]
		p.recycled = p.recycled[:n-1]
		p.slab[idx].SetPrec(0).SetInt64(0)
		return handle{index: idx, valid: true}
	}
	p.slab = append(p.slab, new(big.Float))
	return handle{index: uint32(len(p.slab) - 1), valid: true}
}

// native returns the *big.Float backing h.
func (p *pool) native(h handle) *big.Float {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slab[h.index]
}

// release returns h's slab slot to the recycled free list. recoverable
// must be true: the caller has already copied out anything it needs.
// Excess beyond gcEleLimit is dropped so the slab doesn't grow without
// bound; Go's GC reclaims the big.Float itself once unreferenced.
func (p *pool) release(h handle, recoverable bool) {
	if !recoverable || !h.valid {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.recycled) >= gcEleLimit {
		return
	}
	p.recycled = append(p.recycled, h.index)
}

// visit stamps bf with the next monotonic counter value and, if
// addToLive is set, inserts it into the live set; crossing the soft cap
// triggers gc().
func (p *pool) visit(bf *BigFloat, addToLive bool) {
	p.mu.Lock()
	p.nextStamp++
	bf.visitStamp = p.nextStamp
	needGC := false
	if addToLive && !bf.inLive {
		bf.inLive = true
		p.live = append(p.live, bf)
		needGC = len(p.live) >= gcEleLimit
	}
	p.mu.Unlock()

	if needGC {
		p.gc()
	}
}

// recencyLess reports whether stamp a is strictly older than stamp b
// under wrap-safe 32-bit modular ordering): the signed
// difference a-b, reinterpreted in the 2^31 half-plane, gives the sign.
func recencyLess(a, b uint32) bool {
	return int32(a-b) < 0
}

// gc reclaims the least-recently-visited half of the live set, evicting
// each one's limbs into its own owned byte buffer so the logical value
// survives). Non-reentrant: a reentrant call (possible if
// a disposal callback somehow re-triggers gc) is a no-op.
func (p *pool) gc() {
	p.mu.Lock()
	if p.gcRunning {
		p.mu.Unlock()
		return
	}
	p.gcRunning = true
	live := p.live
	p.mu.Unlock()

	sorted := make([]*BigFloat, len(live))
	copy(sorted, live)
	sort.Slice(sorted, func(i, j int) bool {
		// Descending recency: most-recently-visited first.
		return !recencyLess(sorted[i].visitStamp, sorted[j].visitStamp)
	})

	keep := len(sorted) / 2
	evict := sorted[keep:]

	for _, bf := range evict {
		bf.evict()
	}

	p.mu.Lock()
	newLive := make([]*BigFloat, 0, keep)
	for _, bf := range p.live {
		if bf.inLive {
			newLive = append(newLive, bf)
		}
	}
	p.live = newLive
	p.gcRunning = false
	p.mu.Unlock()
}

// forget removes bf from the live set without evicting it (used when a
// BigFloat is explicitly disposed by its owner).
func (p *pool) forget(bf *BigFloat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !bf.inLive {
		return
	}
	bf.inLive = false
	for i, v := range p.live {
		if v == bf {
			p.live[i] = p.live[len(p.live)-1]
			p.live = p.live[:len(p.live)-1]
			break
		}
	}
}
