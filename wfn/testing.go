// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wfn

import "github.com/cpmech/gosl/chk"

// NewTestH2 returns a minimal-basis dihydrogen-like wavefunction: one s
// primitive per nucleus, nuclei on the z axis at ±0.7, one doubly-occupied
// orbital. The exponents are chosen so the density is double-peaked: the
// attractors sit near the nuclei and a bond point sits at the origin
func NewTestH2() (o *Wavefunction) {
	o = &Wavefunction{
		Title:    []string{"H2 test"},
		OrbDesc:  "GAUSSIAN",
		NNuc:     2,
		NMOr:     1,
		NPri:     2,
		AtLbl:    []string{"H1", "H2"},
		R:        [][]float64{{0, 0, -0.7}, {0, 0, 0.7}},
		AtCharge: []float64{1, 1},
		PrimType: []int{1, 1},
		PrimCent: []int{0, 1},
		PrimExp:  []float64{2.0, 2.0},
		MOCoeff:  [][]float64{{0.6, 0.6}},
		OccN:     []float64{2.0},
		MOEner:   []float64{-0.5},
	}
	err := o.Init()
	if err != nil {
		chk.Panic("cannot initialise H2 test wavefunction: %v", err)
	}
	return
}

// NewTestPolyShells returns a two-center wavefunction exercising s, p, d, f
// and g primitives with two fractionally-occupied orbitals; used by the
// derivative checks
func NewTestPolyShells() (o *Wavefunction) {
	o = &Wavefunction{
		Title:    []string{"polyshell test"},
		OrbDesc:  "GAUSSIAN",
		NNuc:     2,
		NMOr:     2,
		NPri:     9,
		AtLbl:    []string{"C1", "H2"},
		R:        [][]float64{{0.1, -0.2, 0.3}, {-0.4, 0.5, -0.2}},
		AtCharge: []float64{6, 1},
		PrimType: []int{1, 2, 3, 4, 8, 10, 14, 27, 1},
		PrimCent: []int{0, 0, 0, 0, 0, 0, 0, 0, 1},
		PrimExp:  []float64{1.2, 0.8, 0.8, 0.8, 0.6, 0.6, 0.5, 0.4, 1.0},
		MOCoeff: [][]float64{
			{0.50, 0.30, -0.20, 0.10, 0.25, -0.15, 0.05, 0.08, 0.40},
			{-0.10, 0.20, 0.35, -0.25, 0.10, 0.30, -0.12, 0.06, 0.22},
		},
		OccN:   []float64{2.0, 1.0},
		MOEner: []float64{-1.0, -0.3},
	}
	err := o.Init()
	if err != nil {
		chk.Panic("cannot initialise polyshell test wavefunction: %v", err)
	}
	return
}
