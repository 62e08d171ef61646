// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import (
	"testing"

	"github.com/cpmech/godae/chk"
	"github.com/cpmech/godae/la"
)

func TestSolverConfigValidation(tst *testing.T) {
	chk.PrintTitle("SolverConfigValidation. programmer errors are rejected at NewSolver")

	conf := NewConfig("bdf")
	conf.BdfOrder = 99
	_, err := NewSolver(2, conf, func(fx, x la.Vector, t float64) {}, nil, nil)
	if err == nil {
		tst.Fatalf("expected an error for BdfOrder out of range")
	}
	se, ok := err.(*SolveError)
	if !ok {
		tst.Fatalf("expected *SolveError, got %T", err)
	}
	chk.True(tst, "programmer-error exit code", se.Code == ExitProgrammerError)
}

func TestSolverIdentityMassDefault(tst *testing.T) {
	chk.PrintTitle("SolverIdentityMassDefault. nil mass callback defaults to identity")

	conf := NewConfig("bdf")
	conf.SetTols(1e-8, 1e-6)
	sol, err := NewSolver(1, conf, func(fx, x la.Vector, t float64) {
		fx[0] = -x[0]
	}, func(j *la.Triplet, x la.Vector, t float64) {
		j.Put(0, 0, -1)
	}, nil)
	if err != nil {
		tst.Fatalf("NewSolver failed: %v", err)
	}
	x := la.Vector{1.0}
	if err := sol.Solve(x, 0.0, 1.0); err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	chk.Float64(tst, "exp(-1)", 2e-4, x[0], 0.36787944117144233)
	chk.True(tst, "at least one accepted step", sol.Stat.Naccepted > 0)
}

func TestSolverObserverOrdering(tst *testing.T) {
	chk.PrintTitle("SolverObserverOrdering. observer sees strictly increasing times")

	conf := NewConfig("fixed")
	conf.SetFixedH(0.05)
	conf.SetTols(1e-8, 1e-6)
	sol, err := NewSolver(1, conf, func(fx, x la.Vector, t float64) {
		fx[0] = -x[0]
	}, func(j *la.Triplet, x la.Vector, t float64) {
		j.Put(0, 0, -1)
	}, nil)
	if err != nil {
		tst.Fatalf("NewSolver failed: %v", err)
	}

	last := -1.0
	sol.Observer = func(x la.Vector, t float64) {
		if t <= last {
			tst.Errorf("observer called out of order: t=%g after %g", t, last)
		}
		last = t
	}
	x := la.Vector{1.0}
	if err := sol.Solve(x, 0.0, 0.5); err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	chk.Float64(tst, "lands exactly on t1", 1e-12, last, 0.5)
}

func TestSolverPatternChangeIsFatal(tst *testing.T) {
	chk.PrintTitle("SolverPatternChangeIsFatal. S5: a shifting Jacobian pattern aborts the solve")

	calls := 0
	jac := func(j *la.Triplet, x la.Vector, t float64) {
		j.Put(0, 0, -1)
		j.Put(1, 1, -1)
		if calls > 0 {
			j.Put(0, 1, 1.0) // structurally new entry injected after the first call
		}
		calls++
	}
	conf := NewConfig("bdf")
	conf.SetTols(1e-6, 1e-6)
	sol, err := NewSolver(2, conf, func(fx, x la.Vector, t float64) {
		fx[0] = -x[0]
		fx[1] = -x[1]
	}, jac, nil)
	if err != nil {
		tst.Fatalf("NewSolver failed: %v", err)
	}
	x := la.Vector{1.0, 1.0}
	err = sol.Solve(x, 0.0, 1.0)
	if err == nil {
		tst.Fatalf("expected the solve to abort once the Jacobian pattern shifts")
	}
	se, ok := err.(*SolveError)
	if !ok {
		tst.Fatalf("expected *SolveError, got %T", err)
	}
	chk.True(tst, "structural-inconsistency exit code", se.Code == ExitStructuralInconsistency)
}
