// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"fmt"
	"hash/maphash"
)

// CSR holds a sparse matrix in three-array Compressed Sparse Row form, as
// required by spec §3: A[0..nnz) values, Ja[0..nnz) column indices, one per
// value, Ia[0..M] row pointers with Ia[M] == nnz. This mirrors the 3-array
// constructor shape used by the pack's edaniels/james-bowman sparse CSR
// types (NewCSR(r, c, ia, ja, data)), adapted to the row/col-count-first,
// field-named form the rest of this module uses.
type CSR struct {
	M, N int       // number of rows, number of columns
	Ia   []int     // row pointers, length M+1
	Ja   []int     // column indices, length nnz
	A    []float64 // values, length nnz
}

// NewCSR builds a CSR directly from three pre-built arrays (ia non-decreasing,
// ja column indices 0<=col<n per row); no validation beyond size checks is
// performed here — use Validate to check the stronger invariants.
func NewCSR(m, n int, ia, ja []int, a []float64) *CSR {
	if len(ia) != m+1 {
		panic("la.NewCSR: len(ia) must equal m+1")
	}
	if len(ja) != len(a) {
		panic("la.NewCSR: len(ja) must equal len(a)")
	}
	return &CSR{M: m, N: n, Ia: ia, Ja: ja, A: a}
}

// NNZ returns the number of stored entries (explicit zeros included)
func (c *CSR) NNZ() int { return len(c.A) }

// Validate checks the CSR invariants from spec §3: Ia is non-decreasing,
// Ia[0]==0, Ia[M]==nnz, and every Ja entry is a valid column with no
// duplicate (row,col) pair within a row.
func (c *CSR) Validate() error {
	if len(c.Ia) != c.M+1 {
		return errf("Ia has wrong length: got %d, want %d", len(c.Ia), c.M+1)
	}
	if c.Ia[0] != 0 {
		return errf("Ia[0] must be 0, got %d", c.Ia[0])
	}
	if c.Ia[c.M] != len(c.A) {
		return errf("Ia[M] must equal nnz=%d, got %d", len(c.A), c.Ia[c.M])
	}
	for i := 0; i < c.M; i++ {
		if c.Ia[i+1] < c.Ia[i] {
			return errf("Ia is not non-decreasing at row %d", i)
		}
		seen := make(map[int]bool, c.Ia[i+1]-c.Ia[i])
		for k := c.Ia[i]; k < c.Ia[i+1]; k++ {
			col := c.Ja[k]
			if col < 0 || col >= c.N {
				return errf("row %d has out-of-range column %d", i, col)
			}
			if seen[col] {
				return errf("row %d has duplicate column %d", i, col)
			}
			seen[col] = true
		}
	}
	return nil
}

// At returns the (i,j) entry, 0 if structurally absent; linear scan within
// the row, fine for the assembler/test usage in this package (rows here
// are short — Jacobian/mass rows, not dense linear-algebra kernels).
func (c *CSR) At(i, j int) float64 {
	for k := c.Ia[i]; k < c.Ia[i+1]; k++ {
		if c.Ja[k] == j {
			return c.A[k]
		}
	}
	return 0
}

// ToDense expands the CSR into a dense row-major matrix
func (c *CSR) ToDense() [][]float64 {
	d := make([][]float64, c.M)
	for i := range d {
		d[i] = make([]float64, c.N)
	}
	for i := 0; i < c.M; i++ {
		for k := c.Ia[i]; k < c.Ia[i+1]; k++ {
			d[i][c.Ja[k]] = c.A[k]
		}
	}
	return d
}

// Combine computes C = alpha*M + beta*J in CSR form, where M and J may
// have different sparsity patterns. This is the structured linear
// combination of spec §4.1: for each row, M's and J's column lists are
// walked simultaneously in ascending column order, emitting one entry per
// distinct column with the appropriately weighted sum. The output nonzero
// count equals |structural(M) ∪ structural(J)| per row; exact-zero fills
// from cancellation are retained (the solver's pattern-caching depends on
// the sparsity pattern being stable across calls with the same structural
// inputs, so dropping cancelled entries would silently change the pattern).
func Combine(alpha float64, m *CSR, beta float64, j *CSR) *CSR {
	if m.M != j.M || m.N != j.N {
		panic("la.Combine: M and J must have the same shape")
	}
	rows := m.M
	outIa := make([]int, rows+1)
	outJa := make([]int, 0, m.NNZ()+j.NNZ())
	outA := make([]float64, 0, m.NNZ()+j.NNZ())
	for i := 0; i < rows; i++ {
		outIa[i] = len(outJa)
		pm, pmEnd := m.Ia[i], m.Ia[i+1]
		pj, pjEnd := j.Ia[i], j.Ia[i+1]
		for pm < pmEnd || pj < pjEnd {
			switch {
			case pj >= pjEnd || (pm < pmEnd && m.Ja[pm] < j.Ja[pj]):
				outJa = append(outJa, m.Ja[pm])
				outA = append(outA, alpha*m.A[pm])
				pm++
			case pm >= pmEnd || (pj < pjEnd && j.Ja[pj] < m.Ja[pm]):
				outJa = append(outJa, j.Ja[pj])
				outA = append(outA, beta*j.A[pj])
				pj++
			default: // same column in both
				outJa = append(outJa, m.Ja[pm])
				outA = append(outA, alpha*m.A[pm]+beta*j.A[pj])
				pm++
				pj++
			}
		}
	}
	outIa[rows] = len(outJa)
	return &CSR{M: rows, N: m.N, Ia: outIa, Ja: outJa, A: outA}
}

// Pattern returns a cheap structural fingerprint of the CSR's (Ia,Ja),
// used by LinSolver to decide whether symbolic analysis can be reused.
// Hashing both the row pointers and the column indices means any change
// to the set of structurally stored positions — not just the count —
// invalidates the cache, which is what Init/Factorize rely on.
func (c *CSR) Pattern() uint64 {
	var h maphash.Hash
	h.SetSeed(patternSeed)
	for _, v := range c.Ia {
		writeInt(&h, v)
	}
	for _, v := range c.Ja {
		writeInt(&h, v)
	}
	writeInt(&h, c.M)
	writeInt(&h, c.N)
	return h.Sum64()
}

var patternSeed = maphash.MakeSeed()

func writeInt(h *maphash.Hash, v int) {
	var buf [8]byte
	u := uint64(v)
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
	h.Write(buf[:])
}

// MulVec computes y := C*x
func (c *CSR) MulVec(y, x Vector) {
	for i := 0; i < c.M; i++ {
		sum := 0.0
		for k := c.Ia[i]; k < c.Ia[i+1]; k++ {
			sum += c.A[k] * x[c.Ja[k]]
		}
		y[i] = sum
	}
}

func errf(msg string, args ...interface{}) error {
	return fmt.Errorf(msg, args...)
}
