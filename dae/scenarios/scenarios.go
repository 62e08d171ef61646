// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scenarios provides the reference problems of spec §8 (S1-S4; S5
// lives as a unit test in dae itself, since it exercises a fault path
// rather than a numerical trajectory). Each Problem follows the teacher's
// Prob*() constructor pattern (ProbHwEq11, ProbRobertson, ProbVanDerPol,
// ProbHwAmplifier in ode/t_ode_test.go / ode/t_radau5_test.go): a value
// type bundling Fcn/Jac/Mas/Y0/Xf so a caller can hand it straight to
// dae.NewSolver without further wiring.
package scenarios

import (
	"math"

	"github.com/cpmech/godae/dae"
	"github.com/cpmech/godae/la"
	"github.com/cpmech/godae/num"
)

// Problem bundles everything dae.NewSolver needs for one of the reference
// scenarios, plus its initial state Y0 and final time Xf.
type Problem struct {
	Name string
	Ndim int
	Y0   la.Vector
	Xf   float64
	Fcn  num.ResidualFunc
	Jac  num.JacFunc  // nil selects the finite-difference engine
	Mas  dae.MassFunc // nil selects the identity mass matrix
}

// Robertson returns S1: the classic stiff chemical-kinetics DAE with a
// singular mass matrix enforcing the conservation constraint
// x1+x2+x3=1. The initial state is deliberately inconsistent (x3=1e-3
// rather than 0) to exercise the solver's handling of an off-manifold
// start, per spec §8 S1.
func Robertson() Problem {
	const k1, k2, k3 = 0.04, 1.0e4, 3.0e7
	return Problem{
		Name: "S1-Robertson",
		Ndim: 3,
		Y0:   la.Vector{1.0, 0.0, 1.0e-3},
		Xf:   4.0e6,
		Fcn: func(fx, x la.Vector, t float64) {
			fx[0] = -k1*x[0] + k2*x[1]*x[2]
			fx[1] = k1*x[0] - k2*x[1]*x[2] - k3*x[1]*x[1]
			fx[2] = x[0] + x[1] + x[2] - 1.0
		},
		Jac: func(j *la.Triplet, x la.Vector, t float64) {
			j.Put(0, 0, -k1)
			j.Put(0, 1, k2*x[2])
			j.Put(0, 2, k2*x[1])
			j.Put(1, 0, k1)
			j.Put(1, 1, -k2*x[2]-2*k3*x[1])
			j.Put(1, 2, -k2*x[1])
			j.Put(2, 0, 1)
			j.Put(2, 1, 1)
			j.Put(2, 2, 1)
		},
		Mas: func(m *la.Triplet) {
			m.Put(0, 0, 1)
			m.Put(1, 1, 1)
			m.Put(2, 2, 0)
		},
	}
}

// ScalarStiff returns S2: a scalar stiff linear ODE with an exactly known
// analytic solution, used to check that the Newton/BDF core converges to
// the right trajectory on the simplest possible nontrivial problem.
func ScalarStiff() Problem {
	const lambda = 1000.0
	return Problem{
		Name: "S2-ScalarStiff",
		Ndim: 1,
		Y0:   la.Vector{0.0},
		Xf:   1.0,
		Fcn: func(fx, x la.Vector, t float64) {
			fx[0] = -lambda*(x[0]-math.Cos(t)) - math.Sin(t)
		},
		Jac: func(j *la.Triplet, x la.Vector, t float64) {
			j.Put(0, 0, -lambda)
		},
	}
}

// DiagonalSystem returns S3: a 10-dimensional identity-mass linear system
// x' = A*x with A diagonal and eigenvalues spanning several decades
// (-10^-i for i=0..9), whose solution is a pure exponential per
// component. Exercises order ramping: per spec §8 S3 the adaptive
// controller must raise the BDF order to at least 3 on this problem.
func DiagonalSystem() Problem {
	const n = 10
	lambda := make([]float64, n)
	for i := range lambda {
		lambda[i] = -math.Pow(10, -float64(i))
	}
	y0 := make(la.Vector, n)
	for i := range y0 {
		y0[i] = 1.0
	}
	return Problem{
		Name: "S3-DiagonalSystem",
		Ndim: n,
		Y0:   y0,
		Xf:   10.0,
		Fcn: func(fx, x la.Vector, t float64) {
			for i := 0; i < n; i++ {
				fx[i] = lambda[i] * x[i]
			}
		},
		Jac: func(j *la.Triplet, x la.Vector, t float64) {
			for i := 0; i < n; i++ {
				j.Put(i, i, lambda[i])
			}
		},
	}
}

// Exact returns the analytic solution of DiagonalSystem at time t, for
// test comparison.
func (p Problem) Exact(t float64) la.Vector {
	// only meaningful for DiagonalSystem; callers of other scenarios
	// should not call this.
	n := p.Ndim
	out := make(la.Vector, n)
	for i := 0; i < n; i++ {
		lam := -math.Pow(10, -float64(i))
		out[i] = p.Y0[i] * math.Exp(lam*t)
	}
	return out
}

// SingularChain returns S4: a two-variable system with M=diag(1,0)
// enforcing the algebraic constraint x2 = x1^2 at every accepted time,
// per spec §8 S4.
func SingularChain() Problem {
	return Problem{
		Name: "S4-SingularChain",
		Ndim: 2,
		Y0:   la.Vector{1.0, 1.0},
		Xf:   2.0,
		Fcn: func(fx, x la.Vector, t float64) {
			fx[0] = -x[0]
			fx[1] = x[1] - x[0]*x[0]
		},
		Jac: func(j *la.Triplet, x la.Vector, t float64) {
			j.Put(0, 0, -1)
			j.Put(1, 0, -2*x[0])
			j.Put(1, 1, 1)
		},
		Mas: func(m *la.Triplet) {
			m.Put(0, 0, 1)
			m.Put(1, 1, 0)
		},
	}
}
