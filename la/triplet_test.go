// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"testing"

	"github.com/cpmech/godae/chk"
)

func TestTripletToCSR01(tst *testing.T) {
	chk.PrintTitle("TripletToCSR01. repeated entries summed")

	var A Triplet
	A.Init(5, 5, 13)
	A.Put(0, 0, 1.0)
	A.Put(0, 0, 1.0) // repeated: should sum to 2
	A.Put(1, 0, 3.0)
	A.Put(0, 1, 3.0)
	A.Put(2, 1, -1.0)
	A.Put(4, 1, 4.0)
	A.Put(1, 2, 4.0)
	A.Put(2, 2, -3.0)
	A.Put(3, 2, 1.0)
	A.Put(4, 2, 2.0)
	A.Put(2, 3, 2.0)
	A.Put(1, 4, 6.0)
	A.Put(4, 4, 1.0)

	c := A.ToCSR()
	if err := c.Validate(); err != nil {
		tst.Errorf("CSR invariants violated: %v", err)
	}
	chk.Float64(tst, "A[0][0]", 1e-15, c.At(0, 0), 2.0)
	chk.Float64(tst, "A[1][0]", 1e-15, c.At(1, 0), 3.0)
	chk.Float64(tst, "A[4][4]", 1e-15, c.At(4, 4), 1.0)
	chk.Float64(tst, "A[3][1] (absent)", 1e-15, c.At(3, 1), 0.0)
	chk.Int(tst, "nnz (13 puts, one pair merged)", c.NNZ(), 12)
}

func TestTripletStart01(tst *testing.T) {
	chk.PrintTitle("TripletStart01. Start resets position for value refresh")

	var A Triplet
	A.Init(2, 2, 4)
	A.Put(0, 0, 1.0)
	A.Put(1, 1, 2.0)
	c1 := A.ToCSR()
	chk.Float64(tst, "first fill A[1][1]", 1e-15, c1.At(1, 1), 2.0)

	A.Start()
	A.Put(0, 0, 10.0)
	A.Put(1, 1, 20.0)
	c2 := A.ToCSR()
	chk.Float64(tst, "refreshed A[1][1]", 1e-15, c2.At(1, 1), 20.0)
}

func TestTripletOutOfRange(tst *testing.T) {
	chk.PrintTitle("TripletOutOfRange. Put panics on bad index")

	var A Triplet
	A.Init(2, 2, 2)
	err := chk.EnsureNoPanic(func() { A.Put(5, 0, 1.0) })
	if err == nil {
		tst.Errorf("expected a panic for out-of-range Put, got none")
	}
}
