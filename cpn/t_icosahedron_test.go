// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpn

import (
	"math"
	"sort"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_ihv01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ihv01. probe table reproduces a regular icosahedron")

	// row 0 is the origin, every other row is a unit vector
	chk.Scalar(tst, "origin", 1e-17, magV3(IHV[0][:]), 0)
	for i := 1; i < NIHV; i++ {
		chk.Scalar(tst, "unit vertex", 1e-12, magV3(IHV[i][:]), 1)
	}

	// rows 1..12: every icosahedron vertex has five nearest neighbours, all
	// at the same edge length 2·v8
	edge := 2 * v8
	for i := 1; i <= 12; i++ {
		var dd []float64
		for j := 1; j <= 12; j++ {
			if j == i {
				continue
			}
			dd = append(dd, distV3(IHV[i][:], IHV[j][:]))
		}
		sort.Float64s(dd)
		for k := 0; k < 5; k++ {
			chk.Scalar(tst, "edge length", 1e-12, dd[k], edge)
		}
		if dd[5]-edge < 1e-3 {
			tst.Errorf("vertex %d has more than five nearest neighbours\n", i)
			return
		}
	}

	// v5 and v8 parametrise a golden rectangle
	phi := (1 + math.Sqrt(5)) / 2
	chk.Scalar(tst, "golden ratio", 1e-12, v5/v8, phi)
	chk.Scalar(tst, "unit circle", 1e-12, v5*v5+v8*v8, 1)
}
