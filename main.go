// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/alvarovm/denstoolkit/inp"
	"github.com/alvarovm/denstoolkit/out"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\nDenstoolkit -- critical-point network tools\n\n")

	// input filename
	flag.Parse()
	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a critical-point filename. Ex.: benzene.cpx")
	}
	fnamepath := flag.Arg(0)
	if io.FnExt(fnamepath) == "" {
		fnamepath += ".cpx"
	}

	// options
	var opts *inp.Options
	if len(flag.Args()) > 1 {
		var err error
		opts, err = inp.ReadOptions(flag.Arg(1))
		if err != nil {
			chk.Panic("cannot read options: %v", err)
		}
	}

	// read network tables
	dat, err := out.ReadCPX(fnamepath)
	if err != nil {
		chk.Panic("cannot read critical points: %v", err)
	}
	io.Pf("> Critical-point (.cpx) file read\n")
	io.Pf("> nACP=%d nBCP=%d nRCP=%d nCCP=%d\n", len(dat.ACPs), len(dat.BCPs), len(dat.RCPs), len(dat.CCPs))
	chi := len(dat.ACPs) - len(dat.BCPs) + len(dat.RCPs) - len(dat.CCPs)
	if chi != 1 {
		io.Pfyel("> Poincare-Hopf census = %d (expected 1 for an isolated molecule)\n", chi)
	}

	// export coordinate files for the plotting collaborators
	base := fnamepath[:len(fnamepath)-len(io.FnExt(fnamepath))]
	out.WriteCPCrds(base, dat)
	io.Pf("> %s-CPCrds.dat written\n", base)
	if opts == nil || opts.DrawBGPs {
		out.WriteBPCrds(base, dat)
		io.Pf("> %s-BPCrds.dat written\n", base)
	}

	// re-export to verify the round trip
	out.WriteCPX(base+"-echo.cpx", dat)
	io.Pf("> %s-echo.cpx written\n", base)
	io.PfGreen("> Success\n")
}
