// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wfn holds the immutable description of a Gaussian-type molecular
// wavefunction together with the derived primitive-density matrix Cab
package wfn

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Wavefunction holds all data of a Gauss-type wave function as loaded from a
// wfn/wfx file by an external reader. After Init it is read-only; the field
// evaluators and the critical-point network only borrow it.
type Wavefunction struct {

	// identification
	Title   []string // title line(s)
	OrbDesc string   // orbital description; e.g. "GAUSSIAN", "GTO"

	// sizes
	NNuc int // number of nuclei
	NMOr int // number of molecular orbitals
	NPri int // number of primitives

	// nuclei
	AtLbl    []string    // atom labels; e.g. "O1", "H2"
	R        [][]float64 // [NNuc][3] nuclear coordinates
	AtCharge []float64   // [NNuc] nuclear charges

	// primitives
	PrimType []int     // [NPri] primitive-type codes (1..MaxPrimType)
	PrimCent []int     // [NPri] center index of each primitive
	PrimExp  []float64 // [NPri] Gaussian exponents

	// orbitals
	MOCoeff [][]float64 // [NMOr][NPri] molecular-orbital coefficients
	OccN    []float64   // [NMOr] occupation numbers
	MOEner  []float64   // [NMOr] orbital energies

	// scalars
	TotEner float64 // total energy
	Virial  float64 // virial ratio (-V/T)

	// derived (set by Init)
	Cab        [][]float64 // [NPri][NPri] cab[a][b] = Σ_μ occN[μ]·c[μ,a]·c[μ,b]
	NPc        []int       // [NNuc] number of primitives per center
	PrimOfCent [][]int     // [NNuc][...] primitive indices of each center
}

// Init validates the wavefunction tables, partitions primitives per center
// and computes the Cab matrix. Must be called once before any evaluation.
func (o *Wavefunction) Init() (err error) {
	err = o.CheckSupport()
	if err != nil {
		return
	}
	o.countPrimsPerCenter()
	o.calcCab()
	return
}

// CheckSupport returns an error if the wavefunction cannot be handled;
// only Cartesian Gaussian primitives with type codes 1..MaxPrimType are
// supported
func (o *Wavefunction) CheckSupport() (err error) {
	if o.NNuc < 1 || o.NPri < 1 || o.NMOr < 1 {
		return chk.Err("unsupported wavefunction: nNuc=%d nPri=%d nMOr=%d", o.NNuc, o.NPri, o.NMOr)
	}
	if len(o.R) != o.NNuc || len(o.PrimType) != o.NPri || len(o.PrimCent) != o.NPri ||
		len(o.PrimExp) != o.NPri || len(o.MOCoeff) != o.NMOr || len(o.OccN) != o.NMOr {
		return chk.Err("unsupported wavefunction: inconsistent table sizes")
	}
	for a := 0; a < o.NPri; a++ {
		if o.PrimType[a] < 1 || o.PrimType[a] > MaxPrimType {
			return chk.Err("unsupported wavefunction: primitive %d has type %d (supported: 1..%d)", a, o.PrimType[a], MaxPrimType)
		}
		if o.PrimCent[a] < 0 || o.PrimCent[a] >= o.NNuc {
			return chk.Err("unsupported wavefunction: primitive %d centered on nucleus %d (nNuc=%d)", a, o.PrimCent[a], o.NNuc)
		}
	}
	return
}

// SameOccupations returns true if all molecular orbitals carry the same
// occupation number
func (o *Wavefunction) SameOccupations() bool {
	for i := 1; i < o.NMOr; i++ {
		if o.OccN[i] != o.OccN[0] {
			return false
		}
	}
	return true
}

// TotalNuclearCharge returns the sum of the nuclear charges
func (o *Wavefunction) TotalNuclearCharge() (z float64) {
	for i := 0; i < o.NNuc; i++ {
		z += o.AtCharge[i]
	}
	return
}

// AngExps returns the angular exponent triple of the a-th primitive
func (o *Wavefunction) AngExps(a int) (l, m, n int) {
	return AngExp(o.PrimType[a])
}

// countPrimsPerCenter builds the per-center partition of the primitive table
func (o *Wavefunction) countPrimsPerCenter() {
	o.NPc = make([]int, o.NNuc)
	o.PrimOfCent = make([][]int, o.NNuc)
	for a := 0; a < o.NPri; a++ {
		o.NPc[o.PrimCent[a]]++
	}
	for i := 0; i < o.NNuc; i++ {
		o.PrimOfCent[i] = make([]int, 0, o.NPc[i])
	}
	for a := 0; a < o.NPri; a++ {
		i := o.PrimCent[a]
		o.PrimOfCent[i] = append(o.PrimOfCent[i], a)
	}
}

// calcCab contracts occupations and MO coefficients into the symmetric
// primitive-density matrix
func (o *Wavefunction) calcCab() {
	o.Cab = la.MatAlloc(o.NPri, o.NPri)
	for a := 0; a < o.NPri; a++ {
		for b := a; b < o.NPri; b++ {
			s := 0.0
			for mu := 0; mu < o.NMOr; mu++ {
				s += o.OccN[mu] * o.MOCoeff[mu][a] * o.MOCoeff[mu][b]
			}
			o.Cab[a][b] = s
			o.Cab[b][a] = s
		}
	}
}
