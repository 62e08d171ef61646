// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"testing"

	"github.com/cpmech/godae/chk"
)

func TestLinSolver01(tst *testing.T) {
	chk.PrintTitle("LinSolver01. solves a well-conditioned system")

	var t Triplet
	t.Init(3, 3, 5)
	t.Put(0, 0, 2.0)
	t.Put(0, 1, 1.0)
	t.Put(1, 1, 3.0)
	t.Put(1, 2, 1.0)
	t.Put(2, 2, 4.0)
	g := t.ToCSR()

	s := NewLinSolver()
	s.Init(g)
	if err := s.Factorize(g); err != nil {
		tst.Fatalf("Factorize failed: %v", err)
	}

	b := Vector{5.0, 10.0, 8.0}
	x := NewVector(3)
	if err := s.Solve(x, b); err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	// verify G*x == b
	y := NewVector(3)
	g.MulVec(y, x)
	for i := range b {
		chk.Float64(tst, "residual", 1e-9, y[i], b[i])
	}
}

func TestLinSolver02(tst *testing.T) {
	chk.PrintTitle("LinSolver02. singular matrix is reported, not panicked")

	var t Triplet
	t.Init(2, 2, 2)
	t.Put(0, 0, 1.0)
	t.Put(1, 0, 1.0) // row 1 all-zero column 1 => singular (rank-deficient)
	g := t.ToCSR()

	s := NewLinSolver()
	s.Init(g)
	err := s.Factorize(g)
	if err == nil {
		tst.Errorf("expected a singular-matrix error")
	}
}

func TestLinSolver03(tst *testing.T) {
	chk.PrintTitle("LinSolver03. symbolic cache reused across same-pattern refactorizations")

	g1 := buildDiag(3, 2.0)
	s := NewLinSolver()
	s.Init(g1)
	if err := s.Factorize(g1); err != nil {
		tst.Fatalf("first factorize failed: %v", err)
	}

	g2 := buildDiag(3, 5.0) // same pattern, different values
	if err := s.Factorize(g2); err != nil {
		tst.Fatalf("second factorize failed: %v", err)
	}
	b := Vector{5.0, 10.0, 15.0}
	x := NewVector(3)
	if err := s.Solve(x, b); err != nil {
		tst.Fatalf("solve failed: %v", err)
	}
	for i := range x {
		chk.Float64(tst, "x[i] == b[i]/5", 1e-9, x[i], b[i]/5.0)
	}
}
