// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import "github.com/cpmech/godae/la"

// kmax is the maximum supported BDF order, per spec §3/§6.
const kmax = 6

// history is the fixed-capacity ring of up to kmax prior accepted states
// with their timestamps (spec §3 "BDF history ring"). Index 0 is the most
// recently accepted state x_n, index 1 is x_{n-1}, and so on.
type history struct {
	n      int         // state dimension
	times  [kmax]float64
	states [kmax]la.Vector
	count  int // number of valid entries, 0..kmax
}

// newHistory allocates a history ring for an n-dimensional state
func newHistory(n int) *history {
	h := &history{n: n}
	for i := range h.states {
		h.states[i] = la.NewVector(n)
	}
	return h
}

// reset clears the ring; called at solve start
func (h *history) reset() {
	h.count = 0
}

// push shifts the ring and inserts (t, x) as the new most-recent entry,
// discarding the oldest entry once the ring is full (spec §3: "oldest
// discarded when the ring exceeds the current order" — the integrator
// enforces the "current order" bound by only ever reading up to k entries
// via at()).
func (h *history) push(t float64, x la.Vector) {
	last := kmax - 1
	tmp := h.states[last]
	for i := last; i > 0; i-- {
		h.times[i] = h.times[i-1]
		h.states[i] = h.states[i-1]
	}
	h.states[0] = tmp
	copy(h.states[0], x)
	h.times[0] = t
	if h.count < kmax {
		h.count++
	}
}

// at returns the (t, x) pair i steps back from the most recent (i=0 is the
// most recent accepted state).
func (h *history) at(i int) (float64, la.Vector) {
	return h.times[i], h.states[i]
}

// len returns the number of valid history entries
func (h *history) len() int { return h.count }
