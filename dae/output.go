// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import (
	"math"

	"github.com/james-bowman/sparse"

	"github.com/cpmech/godae/la"
)

// Output records one (t, x, dt) triple per accepted step, when enabled via
// Config.SetStepOut. The accessor names (GetStepT/GetStepX/GetStepDt)
// mirror the teacher's ode.Output usage in t_ode_test.go/t_radau5_test.go
// (sol.Out.GetStepX(), sol.Out.GetStepY(j), sol.Out.GetStepH()); the
// append-and-query shape of the struct itself is adapted from
// opt/History.HistX/HistF (there: optimizer-iterate trajectories; here:
// accepted DAE states), rewritten to the per-step observer contract of
// spec §5 ("invoked after a step is accepted... exactly once per accepted
// step").
type Output struct {
	enabled bool
	n       int
	ts      []float64
	dts     []float64
	xs      []la.Vector
}

func newOutput(n int, enabled bool) *Output {
	return &Output{enabled: enabled, n: n}
}

// append records one accepted step; it is a no-op if recording is disabled.
func (o *Output) append(t, dt float64, x la.Vector) {
	if !o.enabled {
		return
	}
	o.ts = append(o.ts, t)
	o.dts = append(o.dts, dt)
	xc := make(la.Vector, o.n)
	copy(xc, x)
	o.xs = append(o.xs, xc)
}

// Len returns the number of recorded accepted steps
func (o *Output) Len() int { return len(o.ts) }

// GetStepT returns the recorded time at every accepted step
func (o *Output) GetStepT() []float64 { return append([]float64(nil), o.ts...) }

// GetStepDt returns the recorded step size used for every accepted step
func (o *Output) GetStepDt() []float64 { return append([]float64(nil), o.dts...) }

// GetStepX returns the j-th state component at every accepted step
func (o *Output) GetStepX(j int) []float64 {
	out := make([]float64, len(o.xs))
	for i, x := range o.xs {
		out[i] = x[j]
	}
	return out
}

// GetStepVec returns a copy of the full state vector at accepted step i
func (o *Output) GetStepVec(i int) la.Vector {
	return append(la.Vector(nil), o.xs[i]...)
}

// ActivityPattern builds a (step x component) sparsity record of which
// state components are non-negligible (|x_ij| > tol) across the recorded
// trajectory, built as a DOK and compressed to CSR. Components that stay
// near zero for the whole solve (e.g. an algebraic variable pinned at its
// manifold value, or a slow mode that hasn't kicked in yet) show up as
// empty columns, which is a cheap way to spot dead state components in a
// large system without scanning the dense GetStepX output component by
// component.
func (o *Output) ActivityPattern(tol float64) *sparse.CSR {
	dok := sparse.NewDOK(len(o.xs), o.n)
	for i, x := range o.xs {
		for j, v := range x {
			if math.Abs(v) > tol {
				dok.Set(i, j, v)
			}
		}
	}
	return dok.ToCSR()
}
