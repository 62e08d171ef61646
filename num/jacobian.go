// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package num provides the Jacobian engine: the analytic/finite-difference
// dual behind spec §4.3, grounded on the teacher's num.NlSolver Jacobian
// wiring (Jtri/JfcnSp/JfcnDn/numJ fields and the Jacobian(...) call in
// nlsolver.go) but rewritten: the damped-Newton loop itself moved to
// package dae (dae/newton.go), so this package now holds only the
// J = ∂f/∂x evaluation strategies the teacher coupled to that loop.
package num

import (
	"fmt"
	"math"

	"github.com/cpmech/godae/la"
)

// ResidualFunc evaluates f(x,t) into fx (length N); matches spec §6's
// residual callback contract.
type ResidualFunc func(fx la.Vector, x la.Vector, t float64)

// JacFunc fills the CSR holder j with the analytic Jacobian ∂f/∂x at
// (x,t); matches spec §6's Jacobian callback contract.
type JacFunc func(j *la.Triplet, x la.Vector, t float64)

// Jacobian is the capability spec §4.3 exposes to the residual assembler:
// "the engine does not itself form G; it only delivers J."
type Jacobian interface {
	// Eval returns the current J(x,t), reusing cached sparsity pattern
	// after the first call.
	Eval(x la.Vector, t float64) (*la.CSR, error)
	// Nevals returns the cumulative number of user-residual evaluations
	// (f-calls) and Jacobian evaluations performed so far.
	Nevals() (nFeval, nJeval int)
}

// ErrPatternChanged is returned by AnalyticJacobian.Eval when the
// collaborator's Jacobian callback produces a structurally different CSR
// pattern after the first call — spec §9(b): "a mismatch is fatal to
// prevent silent wrong answers." This is an unrecoverable, categorized
// failure per spec §7, not a step-local retry condition.
var ErrPatternChanged = fmt.Errorf("num: Jacobian callback returned a structurally inconsistent pattern")

// AnalyticJacobian wraps a user-supplied JacFunc. The pattern is validated
// once (first call) and thereafter assumed stable; any later call whose
// resulting CSR has a different (Ia,Ja) structure is fatal (S5).
type AnalyticJacobian struct {
	n       int
	fn      JacFunc
	nnzMax  int
	tri     la.Triplet
	pattern uint64
	haveRef bool
	nJeval  int
}

// NewAnalyticJacobian constructs an engine around the given callback for an
// n-dimensional problem, reserving nnzMax triplet entries per evaluation.
func NewAnalyticJacobian(n, nnzMax int, fn JacFunc) *AnalyticJacobian {
	a := &AnalyticJacobian{n: n, fn: fn, nnzMax: nnzMax}
	a.tri.Init(n, n, nnzMax)
	return a
}

// Eval implements Jacobian
func (a *AnalyticJacobian) Eval(x la.Vector, t float64) (*la.CSR, error) {
	a.tri.Start()
	a.fn(&a.tri, x, t)
	a.nJeval++
	j := a.tri.ToCSR()
	p := j.Pattern()
	if !a.haveRef {
		a.pattern = p
		a.haveRef = true
		return j, nil
	}
	if p != a.pattern {
		return nil, ErrPatternChanged
	}
	return j, nil
}

// Nevals implements Jacobian (analytic Jacobians never call the residual)
func (a *AnalyticJacobian) Nevals() (nFeval, nJeval int) { return 0, a.nJeval }

// FDJacobian estimates J = ∂f/∂x by forward differences, perturbing one
// state component at a time by ε = fdTol·max(|xᵢ|,1) and assembling a
// column via (f(x+εeᵢ,t) − f(x,t))/ε, exactly as spec §4.3 prescribes.
// Pattern discovery happens on the first call (every nonzero difference
// kept, exact-zero differences dropped); later
// calls reuse that pattern and drop structurally zero entries, matching
// the spec's "subsequent calls reuse the pattern and drop structurally
// zero entries."
type FDJacobian struct {
	n      int
	fdTol  float64
	f      ResidualFunc
	fx     la.Vector // f(x,t), scratch
	fxp    la.Vector // f(x+εeᵢ,t), scratch
	xpert  la.Vector // perturbed x, scratch

	pattern   [][]int // pattern[col] = sorted rows with nonzero entries
	havePattn bool
	nFeval    int
	nJeval    int
}

// NewFDJacobian constructs a finite-difference Jacobian engine for an
// n-dimensional residual, with perturbation tolerance fdTol.
func NewFDJacobian(n int, fdTol float64, f ResidualFunc) *FDJacobian {
	return &FDJacobian{
		n:     n,
		fdTol: fdTol,
		f:     f,
		fx:    la.NewVector(n),
		fxp:   la.NewVector(n),
		xpert: la.NewVector(n),
	}
}

// Eval implements Jacobian
func (fd *FDJacobian) Eval(x la.Vector, t float64) (*la.CSR, error) {
	fd.f(fd.fx, x, t)
	fd.nFeval++

	cols := make([][]int, fd.n)
	vals := make([][]float64, fd.n)
	nnz := 0
	for j := 0; j < fd.n; j++ {
		copy(fd.xpert, x)
		eps := fd.fdTol * math.Max(math.Abs(x[j]), 1.0)
		fd.xpert[j] += eps
		fd.f(fd.fxp, fd.xpert, t)
		fd.nFeval++

		if fd.havePattn {
			rows := fd.pattern[j]
			cj := make([]int, 0, len(rows))
			vj := make([]float64, 0, len(rows))
			for _, i := range rows {
				d := (fd.fxp[i] - fd.fx[i]) / eps
				if d != 0 {
					cj = append(cj, i)
					vj = append(vj, d)
				}
			}
			cols[j], vals[j] = cj, vj
		} else {
			cj := make([]int, 0, fd.n)
			vj := make([]float64, 0, fd.n)
			for i := 0; i < fd.n; i++ {
				d := (fd.fxp[i] - fd.fx[i]) / eps
				if d != 0 {
					cj = append(cj, i)
					vj = append(vj, d)
				}
			}
			cols[j], vals[j] = cj, vj
		}
		nnz += len(cols[j])
	}
	if !fd.havePattn {
		fd.pattern = cols
		fd.havePattn = true
	}
	fd.nJeval++

	return columnsToCSR(fd.n, fd.n, cols, vals, nnz), nil
}

// Nevals implements Jacobian
func (fd *FDJacobian) Nevals() (nFeval, nJeval int) { return fd.nFeval, fd.nJeval }

// columnsToCSR builds a CSR matrix from a column-major (row-list,
// value-list) representation, as produced by FDJacobian.Eval.
func columnsToCSR(m, n int, cols [][]int, vals [][]float64, nnzHint int) *la.CSR {
	tri := new(la.Triplet)
	tri.Init(m, n, nnzHint)
	for j, rows := range cols {
		for k, i := range rows {
			tri.Put(i, j, vals[j][k])
		}
	}
	return tri.ToCSR()
}
