// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"math"
	"testing"

	"github.com/cpmech/godae/chk"
)

func TestVecRmsNorm01(tst *testing.T) {
	chk.PrintTitle("VecRmsNorm01. zero increment has zero norm")

	x := Vector{1.0, 2.0, 3.0}
	delta := Vector{0.0, 0.0, 0.0}
	n := VecRmsNorm(delta, 1e-6, 1e-6, x)
	chk.Float64(tst, "rms(0)", 1e-15, n, 0.0)
}

func TestVecRmsNorm02(tst *testing.T) {
	chk.PrintTitle("VecRmsNorm02. uniform scaled increment gives norm 1")

	x := Vector{1.0, 1.0, 1.0}
	atol, rtol := 1e-6, 1e-3
	scale := atol + rtol*1.0
	delta := Vector{scale, scale, scale}
	n := VecRmsNorm(delta, atol, rtol, x)
	chk.Float64(tst, "rms == 1", 1e-12, n, 1.0)
}

func TestVecAllFinite01(tst *testing.T) {
	chk.PrintTitle("VecAllFinite01. detects NaN/Inf")

	chk.True(tst, "all finite", VecAllFinite(Vector{1.0, 2.0, -3.5}))
	chk.True(tst, "has NaN", !VecAllFinite(Vector{1.0, math.NaN()}))
	chk.True(tst, "has Inf", !VecAllFinite(Vector{math.Inf(1), 0.0}))
}

func TestVecLargest01(tst *testing.T) {
	chk.PrintTitle("VecLargest01. largest absolute component")

	v := Vector{-3.0, 1.0, 2.5}
	chk.Float64(tst, "largest", 1e-15, VecLargest(v, 1.0), 3.0)
	chk.Float64(tst, "largest/den", 1e-15, VecLargest(v, 2.0), 1.5)
}

func TestDot01(tst *testing.T) {
	chk.PrintTitle("Dot01. dot product via gonum/floats")

	a := Vector{1.0, 2.0, 3.0}
	b := Vector{4.0, 5.0, 6.0}
	chk.Float64(tst, "a.b", 1e-15, Dot(a, b), 32.0)
}
