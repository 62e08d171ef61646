// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scenarios

import (
	"math"
	"testing"

	"github.com/cpmech/godae/chk"
	"github.com/cpmech/godae/dae"
)

func TestRobertsonConservesAndConverges(tst *testing.T) {
	chk.PrintTitle("RobertsonConservesAndConverges. S1: stiff chemical-kinetics DAE")

	p := Robertson()
	conf := dae.NewConfig("bdf")
	conf.SetTols(1e-8, 1e-6)
	sol, err := dae.NewSolver(p.Ndim, conf, p.Fcn, p.Jac, p.Mas)
	if err != nil {
		tst.Fatalf("NewSolver failed: %v", err)
	}
	x := make([]float64, p.Ndim)
	copy(x, p.Y0)
	if err := sol.Solve(x, conf.T0, p.Xf); err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	chk.Float64(tst, "x1(Xf)", 5e-4, x[0], 5.168e-4)
	chk.Float64(tst, "x2(Xf)", 5e-8, x[1], 2.068e-9)
	chk.Float64(tst, "x3(Xf)", 5e-4, x[2], 9.9948e-1)

	conservation := math.Abs(x[0] + x[1] + x[2] - 1.0)
	if conservation > 1e-8 {
		tst.Errorf("conservation residual too large: %g", conservation)
	}
}

func TestScalarStiffMatchesAnalytic(tst *testing.T) {
	chk.PrintTitle("ScalarStiffMatchesAnalytic. S2: relaxation to a known cosine solution")

	p := ScalarStiff()
	conf := dae.NewConfig("bdf")
	conf.SetTols(1e-9, 1e-7)
	sol, err := dae.NewSolver(p.Ndim, conf, p.Fcn, p.Jac, p.Mas)
	if err != nil {
		tst.Fatalf("NewSolver failed: %v", err)
	}
	x := make([]float64, p.Ndim)
	copy(x, p.Y0)
	if err := sol.Solve(x, conf.T0, p.Xf); err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	chk.Float64(tst, "x(1) == cos(1)", 1e-3, x[0], math.Cos(1.0))
}

func TestDiagonalSystemMatchesExactAndRampsOrder(tst *testing.T) {
	chk.PrintTitle("DiagonalSystemMatchesExactAndRampsOrder. S3: multi-scale exponential decay")

	p := DiagonalSystem()
	conf := dae.NewConfig("bdf")
	conf.SetTols(1e-9, 1e-7)
	sol, err := dae.NewSolver(p.Ndim, conf, p.Fcn, p.Jac, p.Mas)
	if err != nil {
		tst.Fatalf("NewSolver failed: %v", err)
	}
	x := make([]float64, p.Ndim)
	copy(x, p.Y0)
	if err := sol.Solve(x, conf.T0, p.Xf); err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	exact := p.Exact(p.Xf)
	for i := range x {
		tol := 1e-4 + 1e-3*math.Abs(exact[i])
		if math.Abs(x[i]-exact[i]) > tol {
			tst.Errorf("component %d: got %g, want %g (tol %g)", i, x[i], exact[i], tol)
		}
	}

	if sol.Order() < 3 {
		tst.Errorf("expected the adaptive controller to ramp the BDF order to at least 3, got %d", sol.Order())
	}
}

func TestSingularChainHoldsConstraint(tst *testing.T) {
	chk.PrintTitle("SingularChainHoldsConstraint. S4: algebraic constraint tracked at every accepted step")

	p := SingularChain()
	conf := dae.NewConfig("bdf")
	conf.SetTols(1e-9, 1e-7)
	conf.SetStepOut(true)
	sol, err := dae.NewSolver(p.Ndim, conf, p.Fcn, p.Jac, p.Mas)
	if err != nil {
		tst.Fatalf("NewSolver failed: %v", err)
	}
	x := make([]float64, p.Ndim)
	copy(x, p.Y0)
	if err := sol.Solve(x, conf.T0, p.Xf); err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	x1s := sol.Out.GetStepX(0)
	x2s := sol.Out.GetStepX(1)
	for i := range x1s {
		resid := math.Abs(x2s[i] - x1s[i]*x1s[i])
		if resid > 10*conf.Atol {
			tst.Errorf("step %d: constraint residual %g exceeds 10*atol", i, resid)
		}
	}
}
