// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpn

import "github.com/cpmech/gosl/io"

// DisplayStatus prints a summary of the network to the terminal
func (o *Network) DisplayStatus() {
	io.Pf("field: %s\n", o.FT.String())
	io.Pf("nACP=%d nBCP=%d nRCP=%d nCCP=%d nBGP=%d\n",
		len(o.ACPs), len(o.BCPs), len(o.RCPs), len(o.CCPs), len(o.BGPs))
	io.Pf("Poincare-Hopf: %d\n", o.PoincareHopf())
	for _, w := range o.Warnings {
		io.Pfyel("warning: %s\n", w)
	}
	if o.NConvFail > 0 {
		io.Pfgrey("discarded seeds (no convergence): %d\n", o.NConvFail)
	}
}

// DisplayACPCoords prints the attractor table
func (o *Network) DisplayACPCoords() { o.displayCPs("ACP", o.ACPs) }

// DisplayBCPCoords prints the bond-point table
func (o *Network) DisplayBCPCoords() { o.displayCPs("BCP", o.BCPs) }

// DisplayRCPCoords prints the ring-point table
func (o *Network) DisplayRCPCoords() { o.displayCPs("RCP", o.RCPs) }

// DisplayCCPCoords prints the cage-point table
func (o *Network) DisplayCCPCoords() { o.displayCPs("CCP", o.CCPs) }

// DisplayAllCPCoords prints the four tables
func (o *Network) DisplayAllCPCoords() {
	o.DisplayACPCoords()
	o.DisplayBCPCoords()
	o.DisplayRCPCoords()
	o.DisplayCCPCoords()
}

func (o *Network) displayCPs(tag string, cps []CritPt) {
	io.Pfblue2("%s (%d)\n", tag, len(cps))
	for i, cp := range cps {
		io.Pf("%4d %-12s %20.12f %20.12f %20.12f  f=%.12e  sig=%+d\n",
			i, cp.Lbl, cp.X[0], cp.X[1], cp.X[2], cp.Val, cp.Sig)
	}
}
