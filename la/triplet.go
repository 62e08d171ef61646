// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

// Triplet is a COO (coordinate) sparse-matrix builder, the mutable
// construction front-end to CSR. It follows the teacher's
// Triplet.Init/Put/ToMatrix idiom (la_sparseReal01.go, la_HLsparseReal01.go)
// rather than the three-array form, because repeated Put calls at
// construction time — including the deliberately duplicated entries the
// teacher's own examples exercise — are far cheaper to accumulate as a flat
// (row,col,value) list than to merge in place.
type Triplet struct {
	m, n    int       // number of rows, number of columns
	pos     int       // current index in the Ai/Aj/Ax slices (number of items stored so far)
	Ai, Aj  []int     // indices for each x value (size max == nnzMax)
	Ax      []float64 // values for each x value (size max == nnzMax)
	nnzMax  int       // max allowed number of entries (non-zeros, but duplicates count)
}

// Init allocates the internal arrays for a new triplet with m rows, n
// columns and a maximum of nnzMax entries (duplicates included)
func (t *Triplet) Init(m, n, nnzMax int) {
	t.m, t.n, t.pos, t.nnzMax = m, n, 0, nnzMax
	t.Ai = make([]int, nnzMax)
	t.Aj = make([]int, nnzMax)
	t.Ax = make([]float64, nnzMax)
}

// Start resets the internal position counter to zero, so a new round of
// Put calls overwrites the previous entries in place (used when the
// structure is unchanged but the values are refreshed, e.g. re-evaluating
// the Jacobian at the same sparsity pattern)
func (t *Triplet) Start() {
	t.pos = 0
}

// Size returns the number of rows, columns and the current occupied
// length of the internal arrays
func (t *Triplet) Size() (m, n, nnz int) {
	return t.m, t.n, t.pos
}

// Put adds an entry to the triplet; duplicate (i,j) pairs are allowed and
// are summed when converted to CSR, matching the teacher's documented
// Triplet semantics ("(0,0) << repeated")
func (t *Triplet) Put(i, j int, x float64) {
	if t.pos >= t.nnzMax {
		panic("la.Triplet.Put: number of items exceeds nnzMax")
	}
	if i < 0 || i >= t.m || j < 0 || j >= t.n {
		panic("la.Triplet.Put: index out of range")
	}
	t.Ai[t.pos], t.Aj[t.pos], t.Ax[t.pos] = i, j, x
	t.pos++
}

// ToCSR converts the triplet (with duplicates summed) into a row-sorted,
// column-sorted CSR matrix with no duplicate (row,col) entries, satisfying
// the CSR invariants of spec §3.
func (t *Triplet) ToCSR() *CSR {
	m, n, nnz := t.m, t.n, t.pos

	// count entries per row to build Ia, then bucket-sort into (col,val)
	// pairs per row, then sort each row by column and sum duplicates.
	rowCount := make([]int, m+1)
	for k := 0; k < nnz; k++ {
		rowCount[t.Ai[k]+1]++
	}
	for i := 0; i < m; i++ {
		rowCount[i+1] += rowCount[i]
	}
	cols := make([]int, nnz)
	vals := make([]float64, nnz)
	fill := make([]int, m)
	copy(fill, rowCount[:m])
	for k := 0; k < nnz; k++ {
		i := t.Ai[k]
		p := fill[i]
		cols[p] = t.Aj[k]
		vals[p] = t.Ax[k]
		fill[i]++
	}

	// sort each row by column (insertion sort: rows are typically short)
	// and merge duplicates.
	outIa := make([]int, m+1)
	outJa := make([]int, 0, nnz)
	outA := make([]float64, 0, nnz)
	for i := 0; i < m; i++ {
		lo, hi := rowCount[i], rowCount[i+1]
		rowLen := hi - lo
		idx := make([]int, rowLen)
		for k := range idx {
			idx[k] = k
		}
		rc := cols[lo:hi]
		rv := vals[lo:hi]
		insertionSortByCol(idx, rc)
		outIa[i] = len(outJa)
		var lastCol = -1
		for _, k := range idx {
			c := rc[k]
			v := rv[k]
			if c == lastCol && len(outJa) > outIa[i] {
				outA[len(outA)-1] += v
			} else {
				outJa = append(outJa, c)
				outA = append(outA, v)
				lastCol = c
			}
		}
	}
	outIa[m] = len(outJa)
	return &CSR{M: m, N: n, Ia: outIa, Ja: outJa, A: outA}
}

// insertionSortByCol sorts idx (indices into cols) in ascending order of
// cols[idx[k]]; rows of a Jacobian/mass matrix are short enough that this
// is both simple and fast.
func insertionSortByCol(idx []int, cols []int) {
	for i := 1; i < len(idx); i++ {
		v := idx[i]
		cv := cols[v]
		j := i - 1
		for j >= 0 && cols[idx[j]] > cv {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = v
	}
}

// ToDense expands the triplet (duplicates summed) into a dense row-major
// matrix, mostly useful for small debugging/test matrices
func (t *Triplet) ToDense() [][]float64 {
	return t.ToCSR().ToDense()
}
