// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"bytes"

	"github.com/alvarovm/denstoolkit/cpn"
	"github.com/cpmech/gosl/io"
)

// ApplyTo installs the tables on a network
func (o *Data) ApplyTo(nw *cpn.Network) {
	nw.LoadTables(o.ACPs, o.BCPs, o.RCPs, o.CCPs, o.AtBCP, o.BGPs)
}

// WriteATCrds writes the nuclear coordinates to basename-ATCrds.dat,
// one "x y z" per line
func WriteATCrds(basename string, R [][]float64) {
	var b bytes.Buffer
	for _, r := range R {
		io.Ff(&b, "%.14e %.14e %.14e\n", r[0], r[1], r[2])
	}
	io.WriteFileV(basename+"-ATCrds.dat", &b)
}

// WriteCPCrds writes the critical-point coordinates to basename-CPCrds.dat,
// one "x y z" per line, with a blank line between the ACP, BCP, RCP and CCP
// groups
func WriteCPCrds(basename string, o *Data) {
	var b bytes.Buffer
	for gi, cps := range [][]cpn.CritPt{o.ACPs, o.BCPs, o.RCPs, o.CCPs} {
		if gi > 0 {
			io.Ff(&b, "\n")
		}
		for _, cp := range cps {
			io.Ff(&b, "%.14e %.14e %.14e\n", cp.X[0], cp.X[1], cp.X[2])
		}
	}
	io.WriteFileV(basename+"-CPCrds.dat", &b)
}

// WriteBPCrds writes the bond-path polylines to basename-BPCrds.dat, one
// "x y z" per line, with a blank line between paths
func WriteBPCrds(basename string, o *Data) {
	var b bytes.Buffer
	first := true
	for _, path := range o.BGPs {
		if len(path) == 0 {
			continue
		}
		if !first {
			io.Ff(&b, "\n")
		}
		first = false
		for _, p := range path {
			io.Ff(&b, "%.14e %.14e %.14e\n", p[0], p[1], p[2])
		}
	}
	io.WriteFileV(basename+"-BPCrds.dat", &b)
}
