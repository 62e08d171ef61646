// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import "fmt"

// ExitCode categorizes why Solve returned, per spec §6 "Exit codes" /
// §7 "Unrecoverable (solve-local)".
type ExitCode int

const (
	// ExitOK means the solve reached t1 successfully.
	ExitOK ExitCode = iota
	// ExitDtUnderflow means dt fell below Config.DtMin.
	ExitDtUnderflow
	// ExitRejectionBudget means the step-rejection budget was exceeded.
	ExitRejectionBudget
	// ExitSingularSystem means the linear solver reported a singular
	// system it could not recover from by shrinking dt (budget exhausted).
	ExitSingularSystem
	// ExitNonFinite means the state vector became non-finite.
	ExitNonFinite
	// ExitStructuralInconsistency means a user-supplied CSR matrix (mass
	// or Jacobian) violated its structural invariants, or the Jacobian
	// pattern changed after the first call (spec §9(b), scenario S5).
	ExitStructuralInconsistency
	// ExitProgrammerError means a call-entry validation failure (spec §7
	// "Programmer errors"): null callbacks, inconsistent N, BdfOrder out
	// of range, negative tolerances.
	ExitProgrammerError
)

func (e ExitCode) String() string {
	switch e {
	case ExitOK:
		return "ok"
	case ExitDtUnderflow:
		return "dt_underflow"
	case ExitRejectionBudget:
		return "rejection_budget_exceeded"
	case ExitSingularSystem:
		return "singular_system"
	case ExitNonFinite:
		return "non_finite_state"
	case ExitStructuralInconsistency:
		return "structural_inconsistency"
	case ExitProgrammerError:
		return "programmer_error"
	default:
		return "unknown"
	}
}

// SolveError is the categorized failure surfaced to the caller on an
// unrecoverable or programmer-error abort (spec §7). Recoverable
// (step-local) conditions never reach this type — they are absorbed by
// the step controller.
type SolveError struct {
	Code ExitCode
	At   float64 // time reached before the failure, if applicable
	Err  error   // underlying cause, if any
}

func (e *SolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dae: %s at t=%g: %v", e.Code, e.At, e.Err)
	}
	return fmt.Sprintf("dae: %s at t=%g", e.Code, e.At)
}

func (e *SolveError) Unwrap() error { return e.Err }
