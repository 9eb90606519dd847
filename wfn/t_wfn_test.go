// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wfn

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_angexp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("angexp01. primitive-type table")

	checks := []struct {
		ptype   int
		l, m, n int
	}{
		{1, 0, 0, 0},   // s
		{2, 1, 0, 0},   // px
		{4, 0, 0, 1},   // pz
		{5, 2, 0, 0},   // dxx
		{10, 0, 1, 1},  // dyz
		{11, 3, 0, 0},  // fxxx
		{16, 0, 2, 1},  // fyyz
		{20, 1, 1, 1},  // fxyz
		{21, 0, 0, 4},  // gzzzz
		{35, 4, 0, 0},  // gxxxx
		{36, 0, 0, 5},  // hzzzzz
		{56, 5, 0, 0},  // hxxxxx
	}
	for _, c := range checks {
		l, m, n := AngExp(c.ptype)
		chk.IntAssert(l, c.l)
		chk.IntAssert(m, c.m)
		chk.IntAssert(n, c.n)
	}

	// every entry sums to the shell's angular momentum
	shells := []struct {
		lo, hi, ltot int
	}{
		{1, 1, 0}, {2, 4, 1}, {5, 10, 2}, {11, 20, 3}, {21, 35, 4}, {36, 56, 5},
	}
	for _, s := range shells {
		for t := s.lo; t <= s.hi; t++ {
			l, m, n := AngExp(t)
			chk.IntAssert(l+m+n, s.ltot)
		}
	}
}

func Test_wfn01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wfn01. init, partition and Cab")

	w := NewTestPolyShells()

	// per-center partition
	chk.IntAssert(w.NPc[0], 8)
	chk.IntAssert(w.NPc[1], 1)
	chk.Ints(tst, "primOfCent0", w.PrimOfCent[0], utl.IntRange(8))
	chk.Ints(tst, "primOfCent1", w.PrimOfCent[1], []int{8})

	// Cab symmetry and one explicit entry
	for a := 0; a < w.NPri; a++ {
		for b := a; b < w.NPri; b++ {
			chk.Scalar(tst, "cab sym", 1e-17, w.Cab[a][b], w.Cab[b][a])
		}
	}
	c01 := w.OccN[0]*w.MOCoeff[0][0]*w.MOCoeff[0][1] + w.OccN[1]*w.MOCoeff[1][0]*w.MOCoeff[1][1]
	chk.Scalar(tst, "cab[0][1]", 1e-15, w.Cab[0][1], c01)

	// helpers
	chk.Scalar(tst, "total nuclear charge", 1e-15, w.TotalNuclearCharge(), 7.0)
	if w.SameOccupations() {
		tst.Errorf("occupations should differ\n")
		return
	}
	if !NewTestH2().SameOccupations() {
		tst.Errorf("H2 occupations should be uniform\n")
	}
}

func Test_wfn02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("wfn02. unsupported wavefunctions are rejected")

	w := NewTestH2()
	w.PrimType = []int{1, 99}
	if err := w.CheckSupport(); err == nil {
		tst.Errorf("primitive type 99 should be rejected\n")
		return
	}
	w = NewTestH2()
	w.PrimCent = []int{0, 5}
	if err := w.CheckSupport(); err == nil {
		tst.Errorf("out-of-range center should be rejected\n")
	}
}
