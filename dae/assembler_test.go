// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import (
	"testing"

	"github.com/cpmech/godae/chk"
	"github.com/cpmech/godae/la"
	"github.com/cpmech/godae/num"
)

func identityMassCSR(n int) *la.CSR {
	tri := new(la.Triplet)
	tri.Init(n, n, n)
	for i := 0; i < n; i++ {
		tri.Put(i, i, 1.0)
	}
	return tri.ToCSR()
}

func TestAssemblerNeedsRebuildPolicy(tst *testing.T) {
	chk.PrintTitle("AssemblerNeedsRebuildPolicy. rebuild policy (i)-(iv) of the residual assembler")

	mas := identityMassCSR(1)
	jac := num.NewAnalyticJacobian(1, 1, func(j *la.Triplet, x la.Vector, t float64) {
		j.Put(0, 0, -1)
	})
	a := newAssembler(1, mas, jac, 0.2)

	chk.True(tst, "(iv) first call always rebuilds", a.needsRebuild(1, 0.1, false) == rebuildFirstIter)

	a.setCoeffs([]float64{10, -10}, 1, 0.1, 0.1)
	x := la.Vector{1.0}
	if _, err := a.jacobianAndBuildG(x); err != nil {
		tst.Fatalf("jacobianAndBuildG failed: %v", err)
	}

	chk.True(tst, "same (k,dt) right after a build needs no rebuild", a.needsRebuild(1, 0.1, false) == rebuildNone)
	chk.True(tst, "(i) order change forces a rebuild", a.needsRebuild(2, 0.1, false) == rebuildOrderChange)
	chk.True(tst, "(ii) a large dt change forces a rebuild", a.needsRebuild(1, 0.2, false) == rebuildDtChange)
	chk.True(tst, "a small dt change within threshold does not", a.needsRebuild(1, 0.105, false) == rebuildNone)
	chk.True(tst, "(iii) slow convergence forces a rebuild", a.needsRebuild(1, 0.1, true) == rebuildSlowConvergence)
}

func TestAssemblerResidualMatchesBDF1(tst *testing.T) {
	chk.PrintTitle("AssemblerResidualMatchesBDF1. r(x) = M(a0 x + a1 x_prev) - f(x,t)")

	n := 1
	mas := identityMassCSR(n)
	jac := num.NewAnalyticJacobian(n, n, func(j *la.Triplet, x la.Vector, t float64) {
		j.Put(0, 0, -1)
	})
	a := newAssembler(n, mas, jac, 0.2)

	h := newHistory(n)
	h.push(0.0, la.Vector{1.0})

	dt := 0.1
	alpha := []float64{1.0 / dt, -1.0 / dt} // backward Euler coefficients
	a.setCoeffs(alpha, 1, dt, dt)

	f := func(fx, x la.Vector, t float64) {
		fx[0] = -x[0]
	}
	x := la.Vector{0.9}
	r := a.residual(f, x, h, 1)

	// r = 1*(a0*x + a1*x_prev) - f(x) = (x-x_prev)/dt - (-x)
	want := (x[0]-1.0)/dt - (-x[0])
	chk.Float64(tst, "residual value", 1e-12, r[0], want)
}
