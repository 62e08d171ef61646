// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "golang.org/x/exp/constraints"

// Clamp bounds v to [lo, hi]. Used by the step controller to bound dt
// against DtMin/DtMax without a float64-only helper of its own.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
