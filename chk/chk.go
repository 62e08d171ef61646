// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chk provides functions for checking and testing computations
package chk

import (
	"fmt"
	"math"
	"os"
	"testing"
)

// Verbose turns test printing and diagnostic tracing on
var Verbose = false

// PrintTitle prints a title with a fancy header; useful in tests
func PrintTitle(title string) {
	fmt.Printf("=== %s ", title)
	for i := len(title); i < 60; i++ {
		fmt.Print("=")
	}
	fmt.Println()
}

// Panic panics with a formatted message; used for programmer-error
// conditions that must never be silently tolerated
func Panic(msg string, args ...interface{}) {
	panic(fmt.Sprintf(msg, args...))
}

// Err returns a formatted error
func Err(msg string, args ...interface{}) error {
	return fmt.Errorf(msg, args...)
}

// EnsureNoPanic recovers from a panic and converts it into an error
func EnsureNoPanic(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	f()
	return
}

// Int checks that got == correct, for use in tests
func Int(tst *testing.T, msg string, got, correct int) {
	if got != correct {
		tst.Errorf("%s: got %d, expected %d\n", msg, got, correct)
	}
}

// IntAssert panics if got != correct
func IntAssert(got, correct int) {
	if got != correct {
		Panic("IntAssert failed: %d != %d", got, correct)
	}
}

// Float64 checks that got is within tol of correct, for use in tests
func Float64(tst *testing.T, msg string, tol, got, correct float64) {
	if math.IsNaN(got) || math.IsInf(got, 0) {
		tst.Errorf("%s: got a NaN or Inf value: %v\n", msg, got)
		return
	}
	diff := math.Abs(got - correct)
	if diff > tol {
		tst.Errorf("%s: got %v, expected %v (diff=%v, tol=%v)\n", msg, got, correct, diff, tol)
	}
}

// Bool checks that got == correct, for use in tests
func Bool(tst *testing.T, msg string, got, correct bool) {
	if got != correct {
		tst.Errorf("%s: got %v, expected %v\n", msg, got, correct)
	}
}

// True checks that a condition is true
func True(tst *testing.T, msg string, cond bool) {
	if !cond {
		tst.Errorf("%s: condition is false\n", msg)
	}
}

// PrintAnaNum prints analytical versus numerical comparison; returns error flag
func PrintAnaNum(msg string, tol, ana, num float64, verbose bool) (failed bool) {
	diff := math.Abs(ana - num)
	failed = diff > tol
	if verbose {
		mark := "ok"
		if failed {
			mark = "FAIL"
		}
		fmt.Printf("%-20s ana=%23.15e num=%23.15e diff=%9.2e [%s]\n", msg, ana, num, diff, mark)
	}
	return
}

// Exit exits the program with a message printed to stderr; used at CLI
// entry points, never inside library code
func Exit(msg string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+msg+"\n", args...)
	os.Exit(1)
}
