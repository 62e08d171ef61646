// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import (
	"fmt"
	"math"

	"github.com/cpmech/godae/io"
	"github.com/cpmech/godae/la"
	"github.com/cpmech/godae/num"
)

// MassFunc fills the triplet m with the (possibly singular) mass matrix of
// spec §6 "Mass-matrix callback". It is called exactly once per solve and
// the result is cached for the solve's lifetime (spec §3 "Mass matrix").
type MassFunc func(m *la.Triplet)

// Observer is the optional post-step callback of spec §6: invoked after a
// step is accepted and committed to history, in strictly increasing-time
// order, exactly once per accepted step (spec §5 "Ordering guarantees").
// Its return value is ignored.
type Observer func(x la.Vector, t float64)

// Solver is the time integrator of spec §4.6: it owns the BDF history,
// step state, diagnostic counters, scratch CSR buffers and the linear
// solver handle (spec §3 "Ownership"). The field names and the
// NewSolver(ndim, conf, fcn, jac, mas) / sol.Solve(x, t0, t1) / sol.Stat /
// sol.Out call shape mirror the teacher's ode.Solver usage across
// t_ode_test.go, t_radau5_test.go and t_fweuler_test.go.
type Solver struct {
	N    int
	Conf *Config
	Stat *Stat
	Out  *Output

	// Observer is consulted after every accepted step, if non-nil.
	Observer Observer

	fcn num.ResidualFunc
	mas *la.CSR

	jacEngine num.Jacobian
	asm       *assembler
	lin       *la.LinSolver
	hist      *history
	ctrl      *controller
}

// NewSolver builds a Solver for an N-dimensional problem. jac may be nil,
// in which case a finite-difference Jacobian engine is used with
// Config.FdTol (spec §6 "Jacobian callback ... Optional"). mas may be nil,
// in which case M defaults to the identity (spec §1: "When M is the
// identity the problem reduces to a stiff ODE").
func NewSolver(n int, conf *Config, fcn num.ResidualFunc, jac num.JacFunc, mas MassFunc) (*Solver, error) {
	if fcn == nil {
		return nil, &SolveError{Code: ExitProgrammerError, Err: errf("residual callback (fcn) must not be nil")}
	}
	if err := conf.validate(n); err != nil {
		return nil, &SolveError{Code: ExitProgrammerError, Err: err}
	}
	conf.applyPrecisionDefaults()

	masCSR, err := buildMass(n, mas)
	if err != nil {
		return nil, &SolveError{Code: ExitStructuralInconsistency, Err: err}
	}

	var jacEngine num.Jacobian
	if jac != nil {
		jacEngine = num.NewAnalyticJacobian(n, n*n, func(t *la.Triplet, x la.Vector, tm float64) { jac(t, x, tm) })
	} else {
		jacEngine = num.NewFDJacobian(n, conf.FdTol, fcn)
	}

	s := &Solver{
		N:         n,
		Conf:      conf,
		Stat:      &Stat{},
		Out:       newOutput(n, conf.saveStepOut),
		fcn:       fcn,
		mas:       masCSR,
		jacEngine: jacEngine,
		asm:       newAssembler(n, masCSR, jacEngine, dtGrowThresholdDefault),
		lin:       la.NewLinSolver(),
		hist:      newHistory(n),
		ctrl:      newController(conf),
	}
	return s, nil
}

// dtGrowThresholdDefault bounds the relative dt change (spec §4.4 (ii))
// before the assembler insists on rebuilding G, independent of the step
// controller's own enlarge/shrink factors.
const dtGrowThresholdDefault = 0.2

func buildMass(n int, mas MassFunc) (*la.CSR, error) {
	if mas == nil {
		tri := new(la.Triplet)
		tri.Init(n, n, n)
		for i := 0; i < n; i++ {
			tri.Put(i, i, 1.0)
		}
		return tri.ToCSR(), nil
	}
	tri := new(la.Triplet)
	tri.Init(n, n, n*n)
	mas(tri)
	m := tri.ToCSR()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Solve integrates from t0 (Config.T0, or the solve's implicit start) to
// t1, overwriting x in place with the solution at t1 (spec §3 "State
// vector"). It implements the per-step data flow of spec §2/§4.6:
// controller proposes (dt,k) -> BDF coefficients + predictor -> Newton
// iteration against the residual assembler and linear solver -> on
// success, commit/shift/observe/reassess; on failure, reject and retry
// with smaller dt.
func (s *Solver) Solve(x la.Vector, t0, t1 float64) error {
	if len(x) != s.N {
		return &SolveError{Code: ExitProgrammerError, Err: errf("len(x)=%d does not match N=%d", len(x), s.N)}
	}
	if t1 <= t0 {
		return &SolveError{Code: ExitProgrammerError, Err: errf("t1 must be greater than t0")}
	}

	s.hist.reset()
	t := t0

	for t < t1 {
		dt, k := s.ctrl.propose(t, t1)
		isLast := t+dt >= t1-1e-13*math.Max(1, math.Abs(t1))

		tNew := t + dt
		nodes := bdfNodes(s.hist, k, tNew)
		alpha := bdfCoeffs(nodes)
		keff := len(alpha) - 1
		s.asm.setCoeffs(alpha, keff, dt, tNew)

		trial := make(la.Vector, s.N)
		copy(trial, x)
		if s.hist.len() > 0 {
			predictor(trial, s.hist, keff, tNew)
		}

		rebuild := func() error {
			reason := s.asm.needsRebuild(keff, dt, false)
			if reason == rebuildNone {
				return nil
			}
			s.logRebuild(reason, t, dt, keff)
			_, err := s.asm.jacobianAndBuildG(trial)
			s.Stat.Ndecomp++
			return err
		}

		res := newtonSolve(trial, s.asm, s.lin, s.fcn, s.hist, keff, s.Conf.Atol, s.Conf.Rtol, s.Conf.MaxNewtonIter, s.Conf.LambdaMin, rebuild)
		s.Stat.recordNewton(res)
		s.Stat.Nlinsol += res.iters
		nf, nj := s.jacEngine.Nevals()
		s.Stat.Nfeval = nf
		s.Stat.Njeval = nj
		s.Stat.IllConditionedWarnings = s.lin.Warnings.IllConditioned

		action := s.ctrl.onOutcome(res, s.Conf.MaxNewtonIter)
		s.logStep(t, dt, keff, res, action)

		switch action {
		case actionAbort:
			code := ExitRejectionBudget
			if res.outcome == newtonSingularJacobian {
				code = ExitSingularSystem
			}
			if s.ctrl.dt < s.Conf.DtMin {
				code = ExitDtUnderflow
			}
			if res.err == num.ErrPatternChanged {
				code = ExitStructuralInconsistency
			}
			return &SolveError{Code: code, At: t, Err: res.err}
		case actionRejectShrink:
			s.Stat.Nrejected++
			continue // retry from the same t with the controller's new (dt,k)
		}

		if !la.VecAllFinite(trial) {
			return &SolveError{Code: ExitNonFinite, At: tNew}
		}

		// accept: commit, shift history, observe, reassess (spec §4.6 step 5)
		copy(x, trial)
		s.hist.push(tNew, x)
		t = tNew
		s.Stat.Naccepted++
		s.Out.append(t, dt, x)
		if s.Observer != nil {
			s.Observer(x, t)
		}
		if isLast {
			t = t1 // clip to exactly t1 within one ULP, spec §4.6 "Termination"
		}
	}
	return nil
}

// Order returns the BDF order the controller would attempt for the next
// step; once the solve has finished, that is the order ramped to after the
// last accepted step, not necessarily the order that step used.
func (s *Solver) Order() int {
	return s.ctrl.k
}

func (s *Solver) logStep(t, dt float64, k int, res newtonResult, action controllerAction) {
	if s.Conf.Verbosity < 2 {
		return
	}
	io.Pf("t=%13.6e dt=%10.3e k=%d outcome=%-14s its=%d action=%d\n", t, dt, k, res.outcome, res.iters, action)
}

func (s *Solver) logRebuild(reason rebuildReason, t, dt float64, k int) {
	if s.Conf.Verbosity < 3 {
		return
	}
	io.Pfgrey("  rebuild G @ t=%g dt=%g k=%d reason=%s\n", t, dt, k, reason)
}

func errf(msg string, args ...interface{}) error {
	return fmt.Errorf(msg, args...)
}
