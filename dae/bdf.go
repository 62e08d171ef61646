// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import "github.com/cpmech/godae/la"

// bdfCoeffs computes the k+1 BDF coefficients {c_0,...,c_k} such that, for
// a state value y_j known at time node[j] (node[0] being the new,
// as-yet-unknown time t_{n+1}), the derivative at node[0] is approximated
// by x'(node[0]) ≈ Σ_j c_j·y_j.
//
// This is spec §9's "compute coefficients via the Lagrange interpolation
// derivative through the last k+1 history time-stamps": c_j is the
// derivative, evaluated at node[0], of the Lagrange basis polynomial that
// is 1 at node[j] and 0 at every other node. When every step has used the
// same dt this reduces to the classical fixed-step BDF coefficients; when
// dt has changed it is the variable-step generalization that matches the
// interpolating polynomial through the last k history points (spec §4.6).
func bdfCoeffs(nodes []float64) []float64 {
	k := len(nodes) - 1
	c := make([]float64, k+1)

	// c_0 = sum over m=1..k of 1/(t0-tm)  (derivative of L_0 at its own node)
	t0 := nodes[0]
	sum := 0.0
	for m := 1; m <= k; m++ {
		sum += 1.0 / (t0 - nodes[m])
	}
	c[0] = sum

	// c_j (j>=1) = [1/(tj-t0)] * Π_{m≠j,m≠0} (t0-tm)/(tj-tm)
	for j := 1; j <= k; j++ {
		tj := nodes[j]
		prod := 1.0 / (tj - t0)
		for m := 0; m <= k; m++ {
			if m == j || m == 0 {
				continue
			}
			prod *= (t0 - nodes[m]) / (tj - nodes[m])
		}
		c[j] = prod
	}
	return c
}

// lagrangeEval evaluates, at point x, the degree-(len(nodes)-1) polynomial
// interpolating values[j] at nodes[j]. Used by the BDF predictor to
// extrapolate the history polynomial to the new time t_{n+1} (spec §4.6
// step 3).
func lagrangeEval(nodes, values []float64, x float64) float64 {
	n := len(nodes)
	sum := 0.0
	for j := 0; j < n; j++ {
		term := values[j]
		for m := 0; m < n; m++ {
			if m == j {
				continue
			}
			term *= (x - nodes[m]) / (nodes[j] - nodes[m])
		}
		sum += term
	}
	return sum
}

// predictor extrapolates the history polynomial (degree k-1, through the
// last k accepted states) to tNew, component by component, writing the
// result into x0 (spec §4.6 step 3: "form a predictor ... by extrapolating
// the history polynomial").
func predictor(x0 la.Vector, h *history, k int, tNew float64) {
	n := len(x0)
	if h.len() == 0 {
		// no history yet: predictor is undefined, caller should already
		// have x0 set to the current state (used verbatim as the guess)
		return
	}
	k = min(k, h.len())
	nodes := make([]float64, k)
	vals := make([]float64, k)
	for j := 0; j < k; j++ {
		t, _ := h.at(j)
		nodes[j] = t
	}
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			_, xj := h.at(j)
			vals[j] = xj[i]
		}
		x0[i] = lagrangeEval(nodes, vals, tNew)
	}
}

// bdfNodes builds the k+1 time nodes {tNew, t_n, t_{n-1}, ..., t_{n-k+1}}
// used by bdfCoeffs, reading the last k entries from the history ring.
func bdfNodes(h *history, k int, tNew float64) []float64 {
	k = min(k, h.len())
	nodes := make([]float64, k+1)
	nodes[0] = tNew
	for j := 0; j < k; j++ {
		t, _ := h.at(j)
		nodes[j+1] = t
	}
	return nodes
}
