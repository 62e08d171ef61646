// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dae implements the core of the DAE/BDF solver: a variable-order,
// variable-step Backward Differentiation Formula integrator (orders 1–6)
// driving a damped Newton solver backed by the la package's sparse CSR
// linear-solver facade, with an adaptive step-size and order controller.
//
// The public entry point is NewSolver/Solver.Solve, modelled directly on
// the teacher's ode.NewConfig/ode.NewSolver/Solver.Solve call shape (see
// t_ode_test.go, t_radau5_test.go, t_fweuler_test.go and
// other_examples/.../ode-highlevel.go in the retrieval pack).
package dae

import "fmt"

// TimeStepping selects the stepping scheme of spec §4.7/§6
type TimeStepping int

const (
	// Fixed uses a constant dt (increased only after FixedIncreaseEvery
	// consecutive successes, if configured); corresponds to config value 0.
	Fixed TimeStepping = iota
	// Adaptive enables step-size control without order variation;
	// corresponds to config value 1.
	Adaptive
	// AdaptiveOrder enables both step-size and order control (the default,
	// full controller of spec §4.7); corresponds to config value 2.
	AdaptiveOrder
)

// Precision selects the tolerance-default family of spec §6 "Precision
// mode". Arithmetic is always float64 (see DESIGN.md); only the default
// atol/rtol constants differ.
type Precision int

const (
	// Double selects double-precision-appropriate tolerance defaults
	// (atol 1e-10, rtol 1e-8), the default.
	Double Precision = iota
	// Single selects single-precision-appropriate tolerance defaults
	// (~1e-6), per spec §6.
	Single
)

// Default tolerance and step-control constants, by precision family
// (spec §6, §9(c)).
const (
	DoubleAtol = 1e-10
	DoubleRtol = 1e-8
	SingleAtol = 1e-6
	SingleRtol = 1e-5
)

// Config is the flat configuration record of spec §6, with the same
// fluent-setter idiom the teacher's ode.Config exposes (SetTols, SetFixedH,
// ...) so that call sites read the same way teacher tests do.
type Config struct {
	T0 float64 // start time (default 0)

	DtInit float64 // initial step size
	DtMin  float64 // hard lower bound; below this the solver fails
	DtMax  float64 // hard upper bound

	BdfOrder int // maximum BDF order, 1..6

	Atol, Rtol    float64 // Newton convergence tolerances
	MaxNewtonIter int     // Newton iteration cap per step

	TimeStepping TimeStepping

	DtIncreaseThreshold int     // consecutive easy steps before enlarging dt
	DtIncreaseFactor    float64 // multiplicative dt enlargement
	DtDecreaseFactor    float64 // multiplicative dt shrink (slow convergence)
	DtShrinkFactor      float64 // multiplicative dt shrink on rejection
	MaxRejections       int     // rejection budget before aborting the solve

	FdTol float64 // finite-difference perturbation tolerance

	Verbosity int // 0..3, diagnostic detail

	Precision Precision

	FixedIncreaseEvery  int     // Fixed scheme: steps between dt increases (0 = never)
	FixedIncreaseFactor float64 // Fixed scheme: multiplicative dt enlargement

	// LambdaMin bounds the damped-Newton line-search step length (spec §4.5)
	LambdaMin float64

	saveStepOut bool // whether Output records every accepted step
}

// NewConfig returns a Config with method-appropriate defaults. method is
// accepted for symmetry with the teacher's ode.NewConfig("radau5", ...)
// call shape; this solver only implements the BDF family, so method is
// presently cosmetic beyond selecting AdaptiveOrder stepping for anything
// other than "fixed".
func NewConfig(method string) *Config {
	c := &Config{
		T0:                  0,
		DtInit:              1e-4,
		DtMin:               1e-12,
		DtMax:               1e6,
		BdfOrder:            5,
		Atol:                DoubleAtol,
		Rtol:                DoubleRtol,
		MaxNewtonIter:       7,
		TimeStepping:        AdaptiveOrder,
		DtIncreaseThreshold: 4,
		DtIncreaseFactor:    2.0,
		DtDecreaseFactor:    0.5,
		DtShrinkFactor:      0.5,
		MaxRejections:       50,
		FdTol:               1e-7,
		Verbosity:           0,
		Precision:           Double,
		FixedIncreaseEvery:  0,
		FixedIncreaseFactor: 1.0,
		LambdaMin:           1e-4,
	}
	if method == "fixed" {
		c.TimeStepping = Fixed
	}
	return c
}

// SetTols sets the Newton absolute/relative tolerances
func (c *Config) SetTols(atol, rtol float64) *Config {
	c.Atol, c.Rtol = atol, rtol
	return c
}

// SetFixedH switches to the fixed-increment scheme with step size dt
func (c *Config) SetFixedH(dt float64) *Config {
	c.TimeStepping = Fixed
	c.DtInit = dt
	return c
}

// SetStepOut turns per-accepted-step recording on or off in the Output
// sampler built by NewSolver
func (c *Config) SetStepOut(save bool) *Config {
	c.saveStepOut = save
	return c
}

// applyPrecisionDefaults fills Atol/Rtol with the precision family's
// defaults if the caller left them at the zero value.
func (c *Config) applyPrecisionDefaults() {
	if c.Atol != 0 || c.Rtol != 0 {
		return
	}
	switch c.Precision {
	case Single:
		c.Atol, c.Rtol = SingleAtol, SingleRtol
	default:
		c.Atol, c.Rtol = DoubleAtol, DoubleRtol
	}
}

// validate checks the programmer-error conditions of spec §7, reported at
// call entry before any integration begins.
func (c *Config) validate(n int) error {
	if n <= 0 {
		return fmt.Errorf("dae: N must be positive, got %d", n)
	}
	if c.BdfOrder < 1 || c.BdfOrder > 6 {
		return fmt.Errorf("dae: BdfOrder must be in 1..6, got %d", c.BdfOrder)
	}
	if c.Atol < 0 || c.Rtol < 0 {
		return fmt.Errorf("dae: Atol/Rtol must be non-negative, got %g/%g", c.Atol, c.Rtol)
	}
	if c.DtInit <= 0 {
		return fmt.Errorf("dae: DtInit must be positive, got %g", c.DtInit)
	}
	if c.DtMin <= 0 || c.DtMax <= c.DtMin {
		return fmt.Errorf("dae: require 0 < DtMin < DtMax, got %g/%g", c.DtMin, c.DtMax)
	}
	if c.MaxNewtonIter < 1 {
		return fmt.Errorf("dae: MaxNewtonIter must be >= 1, got %d", c.MaxNewtonIter)
	}
	return nil
}
