// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package la implements the sparse linear-algebra core: the 3-array CSR
// holder, the triplet (COO) builder, and the linear-solver facade that the
// dae package's Newton iterator drives at every step.
package la

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vector is a dense ordered sequence of real numbers
type Vector = []float64

// NewVector allocates a new vector with n zeroed entries
func NewVector(n int) Vector {
	return make(Vector, n)
}

// VecFill sets all components of v to s
func VecFill(v Vector, s float64) {
	for i := range v {
		v[i] = s
	}
}

// VecCopy copies a into b (b := a); b must have len(a) capacity
func VecCopy(b, a Vector) {
	copy(b, a)
}

// VecAdd computes c := a + s*b
func VecAdd(c, a Vector, s float64, b Vector) {
	for i := range c {
		c[i] = a[i] + s*b[i]
	}
}

// Dot returns the dot product of a and b
func Dot(a, b Vector) float64 {
	return floats.Dot(a, b)
}

// VecLargest returns the largest absolute value among the components of v,
// divided by den (den=1 for a plain max-norm)
func VecLargest(v Vector, den float64) float64 {
	largest := 0.0
	for _, x := range v {
		abs := math.Abs(x) / den
		if abs > largest {
			largest = abs
		}
	}
	return largest
}

// VecRmsNorm computes the weighted root-mean-square norm of the increment
// delta against the reference state x, using the tolerance configuration
// (atol, rtol): ‖δ‖ = sqrt( (1/n) Σ (δᵢ / (atol + rtol·|xᵢ|))² )
//
// This is the per-component scaling the Newton iterator's convergence test
// uses (spec §4.5): "converged when ‖Δ‖ ≤ atol + rtol·‖x‖ under a weighted
// norm".
func VecRmsNorm(delta Vector, atol, rtol float64, x Vector) float64 {
	n := len(delta)
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		scale := atol + rtol*math.Abs(x[i])
		if scale == 0 {
			scale = atol
		}
		if scale == 0 {
			scale = 1
		}
		r := delta[i] / scale
		sum += r * r
	}
	return math.Sqrt(sum / float64(n))
}

// VecAllFinite returns false if any component of v is NaN or +-Inf
func VecAllFinite(v Vector) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// VecMax returns the larger of the two scalars a and b
func VecMax(a float64, b float64) float64 {
	return math.Max(a, b)
}
