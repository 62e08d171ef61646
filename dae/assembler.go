// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import (
	"github.com/cpmech/godae/la"
	"github.com/cpmech/godae/num"
)

// rebuildReason records why the residual assembler is about to rebuild
// (and refactorize) the step Jacobian G, for verbosity tracing.
type rebuildReason int

const (
	rebuildNone rebuildReason = iota
	rebuildFirstIter
	rebuildOrderChange
	rebuildDtChange
	rebuildSlowConvergence
)

func (r rebuildReason) String() string {
	switch r {
	case rebuildFirstIter:
		return "first iteration"
	case rebuildOrderChange:
		return "order change"
	case rebuildDtChange:
		return "dt change"
	case rebuildSlowConvergence:
		return "slow convergence"
	default:
		return "none"
	}
}

// assembler builds the per-step residual r(x) and step Jacobian
// G(x) = α0·M − J(x,t) of spec §4.4, reusing the last assembled G (and the
// Jacobian evaluation behind it, modified-Newton / Shamanskii-style) unless
// the rebuild policy fires. The factorization is not reused: newtonSolve
// refactorizes G on every Newton iteration, rebuilt or not.
// The α's delivered by bdfCoeffs are the Lagrange-derivative coefficients
// (e.g. α0 = 1/dt for BDF1), already dt-scaled, so the discretized DAE
// M·(Σ αⱼ xⱼ) = f(x,t) carries no separate dt factor on f or J.
type assembler struct {
	n   int
	mas *la.CSR      // cached mass matrix (time/state-independent, spec §3)
	jac num.Jacobian // analytic or finite-difference Jacobian engine

	alpha    []float64 // current BDF coefficients {α0,...,αk}, scaled to dt
	dt       float64
	tNew     float64
	currentK int // order of the step attempt currently in progress

	fx la.Vector // scratch: f(x, tNew)
	r  la.Vector // scratch: residual
	g  *la.CSR   // last assembled step Jacobian

	// rebuild-policy bookkeeping (spec §4.4 i-iv): builtK/builtDt record the
	// (order, dt) that the currently cached G was actually assembled for,
	// updated only inside jacobianAndBuildG — never by setCoeffs, which
	// records the step attempt's own (dt, k) for residual evaluation and
	// must not disturb the comparison needsRebuild makes against the last
	// build.
	builtK       int
	builtDt      float64
	firstSolve   bool
	dtGrowThresh float64 // rebuild if |dt/builtDt - 1| exceeds this
}

func newAssembler(n int, mas *la.CSR, jac num.Jacobian, dtGrowThresh float64) *assembler {
	return &assembler{
		n:            n,
		mas:          mas,
		jac:          jac,
		fx:           la.NewVector(n),
		r:            la.NewVector(n),
		firstSolve:   true,
		dtGrowThresh: dtGrowThresh,
	}
}

// needsRebuild implements the rebuild policy of spec §4.4: rebuild G on
// any of (i) change of order, (ii) a relative change of dt (against the dt
// G was built for) exceeding dtGrowThresh, (iii) Newton convergence too
// slow, (iv) first iteration of the solve.
func (a *assembler) needsRebuild(k int, dt float64, slowConvergence bool) rebuildReason {
	if a.firstSolve {
		return rebuildFirstIter
	}
	if k != a.builtK {
		return rebuildOrderChange
	}
	if a.builtDt != 0 {
		ratio := dt/a.builtDt - 1.0
		if ratio < 0 {
			ratio = -ratio
		}
		if ratio > a.dtGrowThresh {
			return rebuildDtChange
		}
	}
	if slowConvergence {
		return rebuildSlowConvergence
	}
	return rebuildNone
}

// setCoeffs installs the BDF coefficients to use for the current step
// attempt (recomputed by the integrator for every step attempt; the
// coefficients are not cached across attempts).
func (a *assembler) setCoeffs(alpha []float64, k int, dt, tNew float64) {
	a.alpha = alpha
	a.currentK = k
	a.dt = dt
	a.tNew = tNew
}

// residual computes r(x) = M·(α0·x + Σ αi·x_{n-i+1}) − f(x,t_{n+1}) and
// stores it in a.r, returning the slice for convenience. The α's are
// already dt-scaled (bdfCoeffs returns Lagrange-derivative coefficients),
// so f carries no additional dt factor here.
func (a *assembler) residual(f num.ResidualFunc, x la.Vector, h *history, k int) la.Vector {
	f(a.fx, x, a.tNew)

	lin := la.NewVector(a.n)
	for i := 0; i < a.n; i++ {
		lin[i] = a.alpha[0] * x[i]
	}
	for j := 1; j <= k; j++ {
		_, xj := h.at(j - 1)
		for i := 0; i < a.n; i++ {
			lin[i] += a.alpha[j] * xj[i]
		}
	}

	a.mas.MulVec(a.r, lin)
	for i := 0; i < a.n; i++ {
		a.r[i] -= a.fx[i]
	}
	return a.r
}

// jacobianAndBuildG evaluates J(x,t) via the Jacobian engine and forms
// G(x) = α0·M − J(x,t) using la.Combine, caching the result in a.g.
// Callers should only invoke this when needsRebuild indicated a rebuild is
// required; otherwise the cached a.g is reused (newtonSolve still
// refactorizes it on every iteration).
func (a *assembler) jacobianAndBuildG(x la.Vector) (*la.CSR, error) {
	j, err := a.jac.Eval(x, a.tNew)
	if err != nil {
		return nil, err
	}
	a.g = la.Combine(a.alpha[0], a.mas, -1.0, j)
	a.firstSolve = false
	a.builtK = a.currentK
	a.builtDt = a.dt
	return a.g, nil
}

// currentG returns the last assembled step Jacobian without rebuilding
func (a *assembler) currentG() *la.CSR { return a.g }
