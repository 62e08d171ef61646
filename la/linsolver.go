// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned by Factorize when the matrix is structurally or
// numerically singular (a recoverable, step-local condition per spec §7 —
// the caller rejects the step and retries with a smaller dt).
var ErrSingular = fmt.Errorf("la: singular matrix")

// IllConditionedThreshold is the condition-number estimate above which
// Factorize bumps the Warnings.IllConditioned counter instead of failing
// outright (spec §4.2: "ill-conditioned ... surface as a warning counter").
var IllConditionedThreshold = 1e12

// Warnings accumulates non-fatal diagnostics raised by the linear solver
type Warnings struct {
	IllConditioned int // number of factorizations flagged as ill-conditioned
}

// InternalError marks an unrecoverable backend failure (out-of-memory or
// similar) per spec §4.2/§7: the solve must abort, not retry.
type InternalError struct{ Msg string }

func (e *InternalError) Error() string { return "la: internal solver failure: " + e.Msg }

// LinSolver is the facade of spec §4.2: given a CSR matrix G and a dense
// right-hand side b, produce y such that G·y = b. One instance is owned
// exclusively by one dae.Solver (spec §5); it performs symbolic analysis
// once per sparsity pattern (cached by Pattern() fingerprint), numeric
// factorization whenever the values change, and a synchronous
// forward/backward solve per right-hand side. The factorization backend is
// a dense LU via gonum/mat (see DESIGN.md for why: no pure-Go sparse direct
// solver is reachable from this module's dependency pack without cgo).
type LinSolver struct {
	Warnings Warnings

	pattern    uint64
	haveSymbol bool
	n          int
	dense      *mat.Dense
	lu         mat.LU
	factorized bool
}

// NewLinSolver allocates an unconfigured linear-solver facade
func NewLinSolver() *LinSolver {
	return &LinSolver{}
}

// Init performs symbolic analysis for the sparsity pattern of g, if it has
// changed since the last Init/Factorize call. This is intentionally cheap
// for the dense backend (it just records the fingerprint and allocates
// scratch storage sized to the pattern) — the "symbolic analysis" that a
// true sparse solver would spend time on is absorbed by dense LU's
// pivoting at Factorize time instead.
func (s *LinSolver) Init(g *CSR) {
	p := g.Pattern()
	if s.haveSymbol && p == s.pattern && s.n == g.M {
		return
	}
	s.pattern = p
	s.n = g.M
	s.dense = mat.NewDense(g.M, g.N, nil)
	s.haveSymbol = true
	s.factorized = false
}

// Factorize performs the numeric factorization of g. Init is called
// implicitly if the pattern has changed since construction.
func (s *LinSolver) Factorize(g *CSR) (err error) {
	if !s.haveSymbol || g.Pattern() != s.pattern || g.M != s.n {
		s.Init(g)
	}
	expandCSRInto(s.dense, g)

	defer func() {
		if r := recover(); r != nil {
			err = &InternalError{Msg: fmt.Sprintf("%v", r)}
		}
	}()

	s.lu.Factorize(s.dense)
	cond := s.lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) {
		s.factorized = false
		return ErrSingular
	}
	if cond > IllConditionedThreshold {
		s.Warnings.IllConditioned++
	}
	s.factorized = true
	return nil
}

// Solve computes y such that G·y = b, using the last factorization. b is
// not modified; y must have length n (it is overwritten).
func (s *LinSolver) Solve(y, b Vector) (err error) {
	if !s.factorized {
		return fmt.Errorf("la.LinSolver.Solve: Factorize must be called first")
	}
	defer func() {
		if r := recover(); r != nil {
			err = &InternalError{Msg: fmt.Sprintf("%v", r)}
		}
	}()
	bDense := mat.NewDense(s.n, 1, append(Vector(nil), b...))
	var xDense mat.Dense
	if serr := s.lu.SolveTo(&xDense, false, bDense); serr != nil {
		return ErrSingular
	}
	copy(y, xDense.RawMatrix().Data)
	return nil
}

// expandCSRInto fills the dense matrix d (already sized g.M x g.N) from
// the CSR structure g, zeroing entries first.
func expandCSRInto(d *mat.Dense, g *CSR) {
	d.Zero()
	for i := 0; i < g.M; i++ {
		for k := g.Ia[i]; k < g.Ia[i+1]; k++ {
			d.Set(i, g.Ja[k], g.A[k])
		}
	}
}
