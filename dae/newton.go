// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import (
	"github.com/cpmech/godae/la"
	"github.com/cpmech/godae/num"
)

// newtonOutcome classifies the result of a damped-Newton solve, per
// spec §4.5: "{converged, slow_converged, diverged, singular_jac}"
// (Stalled added for the "neither converged nor diverged after
// max_Newton_iter iterations" case spec §4.5 calls out separately).
type newtonOutcome int

const (
	newtonConverged newtonOutcome = iota
	newtonSlowConverged
	newtonDiverged
	newtonStalled
	newtonSingularJacobian
	// newtonFatal marks a condition the controller must never retry past
	// by shrinking dt — currently only num.ErrPatternChanged (spec §9(b),
	// scenario S5): a structurally inconsistent Jacobian callback is a
	// programmer/data error, not a transient numerical one.
	newtonFatal
)

func (o newtonOutcome) String() string {
	switch o {
	case newtonConverged:
		return "converged"
	case newtonSlowConverged:
		return "slow_converged"
	case newtonDiverged:
		return "diverged"
	case newtonStalled:
		return "stalled"
	case newtonSingularJacobian:
		return "singular_jac"
	case newtonFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// newtonResult carries the outcome plus the iteration count and final
// residual/increment norms, used by the controller to pick its next
// action and by Stat for diagnostics.
type newtonResult struct {
	outcome   newtonOutcome
	iters     int
	finalNorm float64 // final weighted increment norm
	err       error   // set only for singular/internal and fatal failures
}

// slowIterFraction: a step is classified slow_converged (rather than
// plain converged) when it still converges but needed more than this
// fraction of the iteration budget — this is the controller-visible
// "converged, but not easily" signal of spec §4.7 ("converged_easily" vs
// "converged" vs "slow").
const slowIterFraction = 0.6

// newtonSolve runs the damped Newton loop of spec §4.5: solve G·Δ = −r
// with update x ← x + λ·Δ, damping λ starting at 1 and halving on each
// line-search rejection (residual norm must decrease), bounded below by
// lambdaMin. Grounded on the teacher's num.NlSolver.Solve damping/
// convergence logic and gofem/fem/s_implicit.go's largFb/Lδu divergence
// tracking (run_iterations), generalized from f(x)=0 root-finding to the
// BDF step residual r(x)=0 with a cached step Jacobian G.
//
// x is updated in place; on a non-converged outcome x holds whatever the
// last accepted trial iterate was (bounded, per spec §7 "undefined-but-
// valid"), and the caller (the step controller) must restore the
// pre-step state itself.
func newtonSolve(x la.Vector, asm *assembler, lin *la.LinSolver, f num.ResidualFunc, h *history, k int, atol, rtol float64, maxIter int, lambdaMin float64, rebuild func() error) newtonResult {
	n := len(x)
	delta := la.NewVector(n)
	trial := la.NewVector(n)

	var prevDeltaNorm float64
	growing := 0

	for it := 0; it < maxIter; it++ {
		r := asm.residual(f, x, h, k)
		if !la.VecAllFinite(r) {
			return newtonResult{outcome: newtonDiverged, iters: it}
		}

		// rebuild is driven by the caller's policy via `rebuild`; the
		// assembler itself always rebuilds on the very first call.
		if err := rebuild(); err != nil {
			if err == num.ErrPatternChanged {
				return newtonResult{outcome: newtonFatal, iters: it, err: err}
			}
			return newtonResult{outcome: newtonSingularJacobian, iters: it, err: err}
		}

		g := asm.currentG()
		lin.Init(g)
		if err := lin.Factorize(g); err != nil {
			return newtonResult{outcome: newtonSingularJacobian, iters: it, err: err}
		}

		negR := la.NewVector(n)
		for i := range negR {
			negR[i] = -r[i]
		}
		if err := lin.Solve(delta, negR); err != nil {
			return newtonResult{outcome: newtonSingularJacobian, iters: it, err: err}
		}

		deltaNorm := la.VecRmsNorm(delta, atol, rtol, x)

		// damped line search: halve lambda until the residual norm
		// decreases, or lambdaMin is hit (spec §4.5)
		lambda := 1.0
		baseNorm := la.VecLargest(r, 1.0)
		for {
			for i := 0; i < n; i++ {
				trial[i] = x[i] + lambda*delta[i]
			}
			if !la.VecAllFinite(trial) {
				if lambda <= lambdaMin {
					return newtonResult{outcome: newtonDiverged, iters: it}
				}
				lambda /= 2
				continue
			}
			trialR := asm.residual(f, trial, h, k)
			trialNorm := la.VecLargest(trialR, 1.0)
			if trialNorm <= baseNorm || lambda <= lambdaMin {
				break
			}
			lambda /= 2
		}
		copy(x, trial)

		if it >= 1 && deltaNorm >= prevDeltaNorm {
			growing++
		} else {
			growing = 0
		}
		prevDeltaNorm = deltaNorm

		if deltaNorm <= 1.0 {
			if it+1 > int(float64(maxIter)*slowIterFraction) {
				return newtonResult{outcome: newtonSlowConverged, iters: it + 1, finalNorm: deltaNorm}
			}
			return newtonResult{outcome: newtonConverged, iters: it + 1, finalNorm: deltaNorm}
		}

		if growing >= 2 {
			return newtonResult{outcome: newtonDiverged, iters: it + 1, finalNorm: deltaNorm}
		}
	}
	return newtonResult{outcome: newtonStalled, iters: maxIter, finalNorm: prevDeltaNorm}
}
