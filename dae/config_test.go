// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import (
	"testing"

	"github.com/cpmech/godae/chk"
)

func TestConfigValidateProgrammerErrors(tst *testing.T) {
	chk.PrintTitle("ConfigValidateProgrammerErrors. each documented programmer error is rejected")

	base := func() *Config { return NewConfig("bdf") }

	cases := []struct {
		name string
		fix  func(c *Config)
	}{
		{"n<=0", func(c *Config) {}},
		{"BdfOrder out of range", func(c *Config) { c.BdfOrder = 0 }},
		{"negative Atol", func(c *Config) { c.Atol = -1 }},
		{"negative Rtol", func(c *Config) { c.Rtol = -1 }},
		{"non-positive DtInit", func(c *Config) { c.DtInit = 0 }},
		{"DtMax <= DtMin", func(c *Config) { c.DtMax = c.DtMin }},
		{"MaxNewtonIter < 1", func(c *Config) { c.MaxNewtonIter = 0 }},
	}

	for _, tc := range cases {
		c := base()
		tc.fix(c)
		n := 1
		if tc.name == "n<=0" {
			n = 0
		}
		if err := c.validate(n); err == nil {
			tst.Errorf("%s: expected validate to fail", tc.name)
		}
	}
}

func TestConfigDefaultsValidate(tst *testing.T) {
	chk.PrintTitle("ConfigDefaultsValidate. NewConfig output passes its own validation")

	c := NewConfig("bdf")
	if err := c.validate(3); err != nil {
		tst.Fatalf("default config should validate, got: %v", err)
	}
	chk.True(tst, "default stepping is AdaptiveOrder", c.TimeStepping == AdaptiveOrder)

	fixed := NewConfig("fixed")
	chk.True(tst, "fixed method selects Fixed stepping", fixed.TimeStepping == Fixed)
}

func TestConfigPrecisionDefaults(tst *testing.T) {
	chk.PrintTitle("ConfigPrecisionDefaults. Single precision fills the looser tolerance family")

	c := NewConfig("bdf")
	c.Precision = Single
	c.Atol, c.Rtol = 0, 0
	c.applyPrecisionDefaults()
	chk.Float64(tst, "SingleAtol", 1e-20, c.Atol, SingleAtol)
	chk.Float64(tst, "SingleRtol", 1e-20, c.Rtol, SingleRtol)

	d := NewConfig("bdf")
	d.Atol, d.Rtol = 0, 0
	d.applyPrecisionDefaults()
	chk.Float64(tst, "DoubleAtol", 1e-20, d.Atol, DoubleAtol)

	e := NewConfig("bdf")
	e.SetTols(1e-3, 1e-2)
	e.applyPrecisionDefaults()
	chk.Float64(tst, "explicit tolerances are left alone", 1e-20, e.Atol, 1e-3)
}
