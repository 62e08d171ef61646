// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

// Stat holds the diagnostic counters of spec §3 "Step state... Plus
// diagnostic counters", named to match the teacher's ode.Stat fields used
// throughout t_ode_test.go/t_radau5_test.go/t_fweuler_test.go
// (sol.Stat.Nfeval, Njeval, Nsteps, Naccepted, Nrejected, Ndecomp,
// Nlinsol, Nitmax).
type Stat struct {
	Nfeval    int // number of residual (f) evaluations made by the Jacobian engine (0 with an analytic Jacobian); Newton residual evaluations are not counted
	Njeval    int // number of Jacobian evaluations
	Nsteps    int // total number of step attempts (accepted + rejected)
	Naccepted int // number of accepted steps
	Nrejected int // number of rejected steps
	Ndecomp   int // number of step-Jacobian rebuilds (J evaluated, G = α0·M − J assembled)
	Nlinsol   int // number of linear solves
	Nitmax    int // maximum number of Newton iterations used in any step

	IllConditionedWarnings int // la.LinSolver.Warnings.IllConditioned, copied after every step attempt
}

func (s *Stat) recordNewton(res newtonResult) {
	s.Nsteps++
	if res.iters > s.Nitmax {
		s.Nitmax = res.iters
	}
}
