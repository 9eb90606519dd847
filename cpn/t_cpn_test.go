// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpn

import (
	"math"
	"testing"

	"github.com/alvarovm/denstoolkit/field"
	"github.com/alvarovm/denstoolkit/wfn"
	"github.com/cpmech/gosl/chk"
)

func Test_h201(tst *testing.T) {

	//verbose()
	chk.PrintTitle("h201. dihydrogen network: 2 ACPs, 1 BCP, PH = 1")

	w := wfn.NewTestH2()
	nw := NewNetwork(w)
	err := nw.SetCriticalPoints(field.Density)
	if err != nil {
		tst.Errorf("search failed: %v\n", err)
		return
	}

	// census
	chk.IntAssert(len(nw.ACPs), 2)
	chk.IntAssert(len(nw.BCPs), 1)
	chk.IntAssert(len(nw.RCPs), 0)
	chk.IntAssert(len(nw.CCPs), 0)
	chk.IntAssert(nw.PoincareHopf(), 1)
	chk.IntAssert(len(nw.Warnings), 0)

	// attractors sit near the nuclei and inherit their labels
	for i := 0; i < 2; i++ {
		acp := nw.ACPs[i]
		if d := distV3(acp.X, w.R[i]); d > 0.1 {
			tst.Errorf("ACP %d is %g away from its nucleus\n", i, d)
			return
		}
		chk.IntAssert(acp.Sig, -3)
		chk.StrAssert(acp.Lbl, w.AtLbl[i])
	}

	// the bond point sits at the origin by symmetry
	bcp := nw.BCPs[0]
	chk.Vector(tst, "BCP position", 1e-13, bcp.X, []float64{0, 0, 0})
	chk.IntAssert(bcp.Sig, -1)
	chk.StrAssert(bcp.Lbl, "H1-H2")
	at := nw.AtBCP[0]
	chk.IntAssert(at[0]+at[1], 1) // the pair {0,1} in either order

	// gradient vanishes at every stored critical point
	ev := field.NewEvaluator(w)
	g := make([]float64, 3)
	for _, cp := range [][]CritPt{nw.ACPs, nw.BCPs} {
		for _, c := range cp {
			_, e := ev.RhoGrad(c.X, g)
			if e != nil {
				tst.Errorf("evaluation failed: %v\n", e)
				return
			}
			if magV3(g) >= EpsGradMag {
				tst.Errorf("stored CP has |∇ρ| = %g\n", magV3(g))
				return
			}
		}
	}
}

func Test_h202(tst *testing.T) {

	//verbose()
	chk.PrintTitle("h202. dihydrogen bond path runs along the z axis")

	w := wfn.NewTestH2()
	nw := NewNetwork(w)
	err := nw.SetCriticalPoints(field.Density)
	if err != nil {
		tst.Errorf("search failed: %v\n", err)
		return
	}
	err = nw.SetBondPaths()
	if err != nil {
		tst.Errorf("bond paths failed: %v\n", err)
		return
	}
	chk.IntAssert(len(nw.BGPs), 1)
	if !nw.NormalBCP[0] {
		tst.Errorf("BCP should be normal\n")
		return
	}
	path := nw.BondPath(0)
	if len(path) < 3 || len(path) > 2*ArraySizeGradPath+1 {
		tst.Errorf("unexpected path length %d\n", len(path))
		return
	}

	// endpoints coincide with the two attractors
	first, last := path[0], path[len(path)-1]
	d0a := distV3(first, nw.ACPs[0].X)
	d0b := distV3(first, nw.ACPs[1].X)
	if math.Min(d0a, d0b) > 1e-10 {
		tst.Errorf("path head does not end on an attractor\n")
		return
	}
	d1a := distV3(last, nw.ACPs[0].X)
	d1b := distV3(last, nw.ACPs[1].X)
	if math.Min(d1a, d1b) > 1e-10 {
		tst.Errorf("path tail does not end on an attractor\n")
		return
	}
	if (d0a < d0b) == (d1a < d1b) {
		tst.Errorf("both path ends reached the same attractor\n")
		return
	}

	// the whole polyline stays on the molecular axis
	for _, p := range path {
		if math.Abs(p[0]) > 1e-10 || math.Abs(p[1]) > 1e-10 {
			tst.Errorf("path left the z axis: (%g, %g, %g)\n", p[0], p[1], p[2])
			return
		}
	}
}

func Test_h203(tst *testing.T) {

	//verbose()
	chk.PrintTitle("h203. dedup: shell probes rediscover only known points")

	w := wfn.NewTestH2()
	nw := NewNetwork(w)
	err := nw.SetCriticalPoints(field.Density)
	if err != nil {
		tst.Errorf("search failed: %v\n", err)
		return
	}

	// probes around the origin rediscover the attractors and the bond point
	err = nw.SeekACPsAround([]float64{0, 0, 0}, 0.7, "the bond midpoint", -1)
	if err != nil {
		tst.Errorf("probe failed: %v\n", err)
		return
	}
	err = nw.SeekBCPsAround([]float64{0, 0, 0.3}, 0.3, "the molecular axis", -1)
	if err != nil {
		tst.Errorf("probe failed: %v\n", err)
		return
	}
	chk.IntAssert(len(nw.ACPs), 2)
	chk.IntAssert(len(nw.BCPs), 1)

	// a single-pair search converges onto the known bond point
	found, err := nw.SeekSingleBCP(0, 1)
	if err != nil {
		tst.Errorf("single-pair search failed: %v\n", err)
		return
	}
	if !found {
		tst.Errorf("single-pair search should converge\n")
		return
	}
	chk.IntAssert(len(nw.BCPs), 1)

	// no two critical points of the same kind within the dedup tolerance
	for _, table := range [][]CritPt{nw.ACPs, nw.BCPs, nw.RCPs, nw.CCPs} {
		for i := 0; i < len(table); i++ {
			for j := i + 1; j < len(table); j++ {
				if distV3(table[i].X, table[j].X) < EpsPosDiff {
					tst.Errorf("dedup violated\n")
					return
				}
			}
		}
	}
}

func Test_h204(tst *testing.T) {

	//verbose()
	chk.PrintTitle("h204. extended search adds no ACP, BCP or RCP on dihydrogen")

	w := wfn.NewTestH2()
	nw := NewNetwork(w)
	nw.ExtSearch = true
	err := nw.SetCriticalPoints(field.Density)
	if err != nil {
		tst.Errorf("search failed: %v\n", err)
		return
	}
	chk.IntAssert(len(nw.ACPs), 2)
	chk.IntAssert(len(nw.BCPs), 1)
	chk.IntAssert(len(nw.RCPs), 0)
}

func Test_cancel01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("cancel01. cancelled run yields no critical points")

	w := wfn.NewTestH2()
	nw := NewNetwork(w)
	nw.Cancel()
	err := nw.SetCriticalPoints(field.Density)
	if err != nil {
		tst.Errorf("search failed: %v\n", err)
		return
	}
	chk.IntAssert(len(nw.ACPs), 0)
	chk.IntAssert(len(nw.BCPs), 0)
}

func Test_center01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("center01. molecule centering vector")

	w := wfn.NewTestH2()
	nw := NewNetwork(w)
	chk.Vector(tst, "centMolec", 1e-15, nw.CentMolec, []float64{0, 0, 0})

	// internal tables are untouched by the centering translation
	err := nw.SetCriticalPoints(field.Density)
	if err != nil {
		tst.Errorf("search failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "nucleus 0 z", 1e-15, w.R[0][2], -0.7)
}
