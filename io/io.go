// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package io provides functions for printing, formatting and writing
// simple diagnostic output used by the verbosity-gated traces of the dae
// package.
package io

import (
	"fmt"
	stdio "io"
	"os"
)

// ANSI colour codes used by the coloured print helpers
const (
	escReset = "\033[0m"
	escRed   = "\033[31m"
	escGreen = "\033[32m"
	escOran  = "\033[33m"
	escBlue  = "\033[34m"
	escMage  = "\033[35m"
	escCyan  = "\033[36m"
	escGrey  = "\033[90m"
	escWhite = "\033[97m"
)

// Sf is a shortcut to fmt.Sprintf
func Sf(msg string, args ...interface{}) string {
	return fmt.Sprintf(msg, args...)
}

// Ff is a shortcut to fmt.Fprintf, writing to any io.Writer (an *os.File or,
// as the plotting buffer does, a *bytes.Buffer)
func Ff(w stdio.Writer, msg string, args ...interface{}) {
	fmt.Fprintf(w, msg, args...)
}

// Pf prints formatted text to stdout, uncoloured
func Pf(msg string, args ...interface{}) {
	fmt.Printf(msg, args...)
}

// colour wraps msg/args with the given ANSI escape sequence
func colour(esc, msg string, args ...interface{}) {
	fmt.Printf(esc+msg+escReset, args...)
}

// Pfred prints in red
func Pfred(msg string, args ...interface{}) { colour(escRed, msg, args...) }

// PfMag prints in magenta (bold-ish alias kept distinct from Pfmag for teacher-style casing)
func PfMag(msg string, args ...interface{}) { colour(escMage, msg, args...) }

// Pfmag prints in magenta
func Pfmag(msg string, args ...interface{}) { colour(escMage, msg, args...) }

// Pforan prints in orange
func Pforan(msg string, args ...interface{}) { colour(escOran, msg, args...) }

// Pfblue2 prints in blue
func Pfblue2(msg string, args ...interface{}) { colour(escBlue, msg, args...) }

// Pfgreen prints in green
func Pfgreen(msg string, args ...interface{}) { colour(escGreen, msg, args...) }

// Pfcyan prints in cyan
func Pfcyan(msg string, args ...interface{}) { colour(escCyan, msg, args...) }

// Pfgrey prints in grey
func Pfgrey(msg string, args ...interface{}) { colour(escGrey, msg, args...) }

// PfWhite prints in white
func PfWhite(msg string, args ...interface{}) { colour(escWhite, msg, args...) }

// WriteFileD writes a file to a given directory, creating it if necessary
func WriteFileD(dir, fn string, data string) (err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		return
	}
	f, err := os.Create(dir + "/" + fn)
	if err != nil {
		return
	}
	defer f.Close()
	_, err = f.WriteString(data)
	return
}
