// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dae

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/cpmech/godae/io"
)

// PlotOptions controls Output.Plot. Components selects which state
// indices get their own t-vs-x subplot; nil plots every component.
type PlotOptions struct {
	Dir        string
	FileKey    string
	Components []int
	PlotDt     bool // also emit a t-vs-dt step-size trace subplot
}

// Plot renders the recorded accepted-step trajectory with matplotlib, the
// way the teacher's plt package does it: buffer a Python script that builds
// NumPy arrays and calls pyplot, write it to disk, then shell out to run
// it. This is a purpose-trimmed rewrite of plt/mplotlib.go's general 2D/3D
// plotting buffer (Reset/Plot/Save/genArray/run) down to the one diagram
// this solver needs: state components and step size against time.
func (o *Output) Plot(opts PlotOptions) error {
	if !o.enabled || o.Len() == 0 {
		return fmt.Errorf("dae: Output.Plot: nothing recorded (enable Config.SetStepOut and run Solve first)")
	}
	comps := opts.Components
	if comps == nil {
		comps = make([]int, o.n)
		for i := range comps {
			comps[i] = i
		}
	}

	var buf bytes.Buffer
	io.Ff(&buf, "import numpy as np\nimport matplotlib.pyplot as plt\n")

	nrows := len(comps)
	if opts.PlotDt {
		nrows++
	}
	genArray(&buf, "t", o.GetStepT())

	for row, j := range comps {
		genArray(&buf, fmt.Sprintf("x%d", j), o.GetStepX(j))
		io.Ff(&buf, "plt.subplot(%d,1,%d)\n", nrows, row+1)
		io.Ff(&buf, "plt.plot(t,x%d,marker='.')\n", j)
		io.Ff(&buf, "plt.ylabel(r'$x_{%d}$')\n", j)
	}
	if opts.PlotDt {
		genArray(&buf, "dt", o.GetStepDt())
		io.Ff(&buf, "plt.subplot(%d,1,%d)\n", nrows, nrows)
		io.Ff(&buf, "plt.plot(t,dt,marker='.')\n")
		io.Ff(&buf, "plt.yscale('log')\n")
		io.Ff(&buf, "plt.ylabel('dt')\n")
	}
	io.Ff(&buf, "plt.xlabel('t')\n")

	dir := opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	key := opts.FileKey
	if key == "" {
		key = "dae_out"
	}
	io.Ff(&buf, "plt.savefig(r'%s/%s.png', bbox_inches='tight')\n", dir, key)

	if err := io.WriteFileD(dir, key+".py", buf.String()); err != nil {
		return err
	}
	script := dir + "/" + key + ".py"
	cmd := exec.Command("python3", script)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dae: Output.Plot: python3 failed: %v: %s", err, stderr.String())
	}
	return nil
}

// genArray writes the NumPy-array literal assignment name=[...] for u.
func genArray(buf *bytes.Buffer, name string, u []float64) {
	io.Ff(buf, "%s=np.array([", name)
	for _, v := range u {
		io.Ff(buf, "%.17g,", v)
	}
	io.Ff(buf, "],dtype=float)\n")
}
