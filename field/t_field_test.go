// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math"
	"testing"

	"github.com/alvarovm/denstoolkit/wfn"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
)

// testPoints are generic off-axis sample points with healthy density
var testPoints = [][]float64{
	{0.30, 0.10, -0.20},
	{-0.15, 0.25, 0.05},
	{0.05, -0.35, 0.40},
}

func Test_rho01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rho01. density of a single s primitive")

	// one doubly-occupied s orbital: ρ(r) = 2·c²·exp(-2αr²)
	w := &wfn.Wavefunction{
		NNuc: 1, NMOr: 1, NPri: 1,
		AtLbl:    []string{"He1"},
		R:        [][]float64{{0, 0, 0}},
		AtCharge: []float64{2},
		PrimType: []int{1},
		PrimCent: []int{0},
		PrimExp:  []float64{1.3},
		MOCoeff:  [][]float64{{0.9}},
		OccN:     []float64{2.0},
	}
	if err := w.Init(); err != nil {
		tst.Errorf("init failed: %v\n", err)
		return
	}
	ev := NewEvaluator(w)
	for _, p := range testPoints {
		rr := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		ana := 2.0 * 0.9 * 0.9 * math.Exp(-2*1.3*rr)
		rho, err := ev.Rho(p)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		chk.Scalar(tst, "rho s-prim", 1e-14, rho, ana)

		// kinetic G of one Gaussian: G = occ·c²·2α²·r²·exp(-2αr²)
		anaG := 2.0 * 0.9 * 0.9 * 2 * 1.3 * 1.3 * rr * math.Exp(-2*1.3*rr)
		gke, err := ev.KineticG(p)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		chk.Scalar(tst, "G s-prim", 1e-14, gke, anaG)
	}
}

func Test_rho02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rho02. analytic ∇ρ and H(ρ) vs central differences")

	w := wfn.NewTestPolyShells()
	ev := NewEvaluator(w)
	g := make([]float64, 3)
	h := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	gB := make([]float64, 3)
	verb := chk.Verbose
	for ip, p := range testPoints {
		rho, err := ev.RhoHess(p, g, h)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		rhoB, err := ev.Rho(p)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		chk.Scalar(tst, "rho pass consistency", 1e-14, rho, rhoB)

		// gradient vs finite differences of ρ
		q := []float64{p[0], p[1], p[2]}
		for k := 0; k < 3; k++ {
			dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) (res float64) {
				tmp := q[k]
				q[k] = x
				res, _ = ev.Rho(q)
				q[k] = tmp
				return
			}, p[k], 1e-4)
			chk.AnaNum(tst, io.Sf("p%d dρ/dx%d", ip, k), 1e-6, g[k], dnum, verb)
		}

		// Hessian vs finite differences of the analytic gradient
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) (res float64) {
					tmp := q[l]
					q[l] = x
					_, _ = ev.RhoGrad(q, gB)
					res = gB[k]
					q[l] = tmp
					return
				}, p[l], 1e-4)
				chk.AnaNum(tst, io.Sf("p%d d²ρ/dx%ddx%d", ip, k, l), 1e-6, h[k][l], dnum, verb)
			}
		}
	}
}

func Test_rho03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rho03. kinetic identity K = G - ∇²ρ/4")

	w := wfn.NewTestPolyShells()
	ev := NewEvaluator(w)
	for _, p := range testPoints {
		gke, err := ev.KineticG(p)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		kke, err := ev.KineticK(p)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		lap, err := ev.LapRho(p)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		chk.Scalar(tst, "K = G - lap/4", 1e-12, kke, gke-lap/4.0)
	}
}

func Test_lol01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lol01. LOL value, bounds and τ=0 branch")

	w := wfn.NewTestPolyShells()
	ev := NewEvaluator(w)
	for _, p := range testPoints {
		gamma, err := ev.LOL(p)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		if gamma <= 0 || gamma >= 1 {
			tst.Errorf("LOL out of (0,1): %v\n", gamma)
			return
		}
	}

	// far away the density underflows and the τ=0 branch must kick in
	far := []float64{80, 80, 80}
	gamma, err := ev.LOL(far)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "LOL far field", 1e-17, gamma, 0)
	g := make([]float64, 3)
	h := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	gamma, err = ev.LOLHess(far, g, h)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "LOL far field (hess pass)", 1e-17, gamma, 0)
	chk.Vector(tst, "∇LOL far field", 1e-17, g, []float64{0, 0, 0})
}

func Test_lol02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lol02. analytic ∇γ and H(γ) vs central differences")

	w := wfn.NewTestPolyShells()
	ev := NewEvaluator(w)
	g := make([]float64, 3)
	h := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	gB := make([]float64, 3)
	hB := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	verb := chk.Verbose
	for ip, p := range testPoints {
		gamma, err := ev.LOLHess(p, g, h)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		gammaB, err := ev.LOL(p)
		if err != nil {
			tst.Errorf("evaluation failed: %v\n", err)
			return
		}
		chk.Scalar(tst, "γ pass consistency", 1e-12, gamma, gammaB)

		q := []float64{p[0], p[1], p[2]}
		for k := 0; k < 3; k++ {
			dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) (res float64) {
				tmp := q[k]
				q[k] = x
				res, _ = ev.LOL(q)
				q[k] = tmp
				return
			}, p[k], 1e-4)
			chk.AnaNum(tst, io.Sf("p%d dγ/dx%d", ip, k), 1e-6, g[k], dnum, verb)
		}
		for k := 0; k < 3; k++ {
			for l := 0; l < 3; l++ {
				dnum, _ := num.DerivCentral(func(x float64, args ...interface{}) (res float64) {
					tmp := q[l]
					q[l] = x
					_, _ = ev.LOLHess(q, gB, hB)
					res = gB[k]
					q[l] = tmp
					return
				}, p[l], 1e-4)
				chk.AnaNum(tst, io.Sf("p%d d²γ/dx%ddx%d", ip, k, l), 1e-6, h[k][l], dnum, verb)
			}
		}
	}
}

func Test_disp01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("disp01. dispatch and auxiliary fields")

	w := wfn.NewTestH2()
	ev := NewEvaluator(w)
	g := make([]float64, 3)
	h := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	p := []float64{0.1, -0.1, 0.2}

	vr, err := ev.ValGradHess(Density, p, g, h)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	rho, _ := ev.Rho(p)
	chk.Scalar(tst, "dispatch rho", 1e-14, vr, rho)

	vl, err := ev.ValGradHess(LOLField, p, g, h)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	lol, _ := ev.LOL(p)
	chk.Scalar(tst, "dispatch lol", 1e-12, vl, lol)

	mg, err := ev.MagGradRho(p)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	_, _ = ev.RhoGrad(p, g)
	chk.Scalar(tst, "mag grad rho", 1e-14, mg, math.Sqrt(g[0]*g[0]+g[1]*g[1]+g[2]*g[2]))

	s, err := ev.ShannonEntropy(p)
	if err != nil {
		tst.Errorf("evaluation failed: %v\n", err)
		return
	}
	chk.Scalar(tst, "shannon", 1e-13, s, -rho*math.Log(rho))
}
