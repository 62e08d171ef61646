// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import "github.com/cpmech/godae/la"

// controllerAction is the decision the step controller of spec §4.7
// returns after observing a Newton outcome.
type controllerAction int

const (
	actionIncrease controllerAction = iota
	actionHold
	actionDecrease
	actionRejectShrink
	actionAbort
)

// controller implements the accept/reject/order-ramp state machine of
// spec §4.7, modeled on gofem/fem/s_implicit.go's divergence-driven
// backup/restore/dt-halving loop (md *= 0.5, ndiverg counter) but
// generalized to the richer {converged_easily, converged, slow, failed,
// singular} signal set and to BDF order ramping.
type controller struct {
	conf *Config

	dt float64
	k  int // current BDF order

	easyStreak  int // consecutive converged_easily steps
	rejections  int // total rejections this solve
	fixedStreak int // consecutive successes under the Fixed scheme
}

func newController(conf *Config) *controller {
	return &controller{
		conf: conf,
		dt:   conf.DtInit,
		k:    1, // spec §4.7: "start at order 1 (BDF1 = implicit Euler)"
	}
}

// propose returns the (dt, k) to attempt for the next step, clipping dt so
// the final step lands exactly on t1 (spec §4.6 "Termination").
func (c *controller) propose(t, t1 float64) (dt float64, k int) {
	dt = c.dt
	if t+dt >= t1 {
		dt = t1 - t
	}
	return dt, c.k
}

// onOutcome advances the controller state given the Newton outcome of the
// just-attempted step and returns the action to take. res.iters, the
// 1-based iteration count the Newton loop used, is compared against
// maxIter/3 to classify a converged step as converged_easily.
func (c *controller) onOutcome(res newtonResult, maxIter int) controllerAction {
	switch res.outcome {
	case newtonConverged:
		easy := res.iters <= maxIter/3
		if easy {
			c.easyStreak++
		} else {
			c.easyStreak = 0
		}
		if c.conf.TimeStepping == AdaptiveOrder && c.k < c.conf.BdfOrder {
			// spec §4.7: "ramp one order per accepted step up to bdf_order"
			c.k++
		}
		if c.conf.TimeStepping != Fixed && c.easyStreak >= c.conf.DtIncreaseThreshold {
			c.dt *= c.conf.DtIncreaseFactor
			c.dt = la.Clamp(c.dt, c.conf.DtMin, c.conf.DtMax)
			c.easyStreak = 0
			return actionIncrease
		}
		if c.conf.TimeStepping == Fixed && c.conf.FixedIncreaseEvery > 0 {
			c.fixedStreak++
			if c.fixedStreak >= c.conf.FixedIncreaseEvery {
				c.dt *= c.conf.FixedIncreaseFactor
				c.dt = la.Clamp(c.dt, c.conf.DtMin, c.conf.DtMax)
				c.fixedStreak = 0
			}
		}
		return actionHold

	case newtonSlowConverged:
		c.easyStreak = 0
		// spec §9(a): slow-but-eventual convergence shrinks dt without
		// rejecting the step.
		if c.conf.TimeStepping != Fixed {
			c.dt *= c.conf.DtDecreaseFactor
			c.dt = la.Clamp(c.dt, c.conf.DtMin, c.conf.DtMax)
		}
		return actionDecrease

	case newtonDiverged, newtonStalled, newtonSingularJacobian:
		c.easyStreak = 0
		c.rejections++
		c.dt *= c.conf.DtShrinkFactor
		if c.k > 1 {
			c.k--
		}
		if c.dt < c.conf.DtMin || c.rejections > c.conf.MaxRejections {
			return actionAbort
		}
		return actionRejectShrink

	default:
		return actionAbort
	}
}
