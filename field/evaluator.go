// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field evaluates scalar fields derived from a Gaussian wavefunction
// (electron density and the Localized Orbital Locator) together with their
// analytic gradients and Hessians at arbitrary points of R3
package field

import (
	"math"

	"github.com/alvarovm/denstoolkit/wfn"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Type selects the scalar field handled by the critical-point machinery
type Type int

const (
	// Density selects the electron density ρ
	Density Type = iota

	// LOLField selects the Localized Orbital Locator γ
	LOLField
)

// String returns the short name of the field type
func (ft Type) String() string {
	if ft == LOLField {
		return "LOL"
	}
	return "rho"
}

// EpsRho is the density threshold below which the LOL branch substitutes
// τ = 0 to avoid division by zero
const EpsRho = 1e-20

// Evaluator computes ρ, LOL and their derivatives for one wavefunction.
// It owns per-primitive scratch buffers and therefore must not be shared
// between goroutines; clone one evaluator per worker instead. The borrowed
// wavefunction is read-only and safe to share.
type Evaluator struct {
	W *wfn.Wavefunction // borrowed, read-only

	// per-primitive values and derivatives at the current point
	chi                          []float64 // primitive values
	gx, gy, gz                   []float64 // gradient components
	hxx, hyy, hzz, hxy, hxz, hyz []float64 // Hessian components
	t3c                          [10][]float64 // third derivatives (see t3idx)

	// contraction scratch
	sc []float64   // sc[a] = Σ_b cab[a][b]·χ_b
	tc [][]float64 // tc[a] = Σ_b cab[a][b]·∇χ_b

	// per-orbital scratch for the kinetic-energy chain
	dphi []float64 // 3
	hphi [][]float64
	tphi []float64 // 10
}

// NewEvaluator returns an evaluator with scratch sized for w.
// w must have been initialised (w.Init)
func NewEvaluator(w *wfn.Wavefunction) (o *Evaluator) {
	o = new(Evaluator)
	o.W = w
	n := w.NPri
	o.chi = make([]float64, n)
	o.gx, o.gy, o.gz = make([]float64, n), make([]float64, n), make([]float64, n)
	o.hxx, o.hyy, o.hzz = make([]float64, n), make([]float64, n), make([]float64, n)
	o.hxy, o.hxz, o.hyz = make([]float64, n), make([]float64, n), make([]float64, n)
	for c := 0; c < 10; c++ {
		o.t3c[c] = make([]float64, n)
	}
	o.sc = make([]float64, n)
	o.tc = la.MatAlloc(n, 3)
	o.dphi = make([]float64, 3)
	o.hphi = la.MatAlloc(3, 3)
	o.tphi = make([]float64, 10)
	return
}

// ValGradHess evaluates the selected field, its gradient and Hessian in one
// pass. g must have length 3 and h must be a 3×3 matrix
func (o *Evaluator) ValGradHess(ft Type, p, g []float64, h [][]float64) (val float64, err error) {
	if ft == LOLField {
		return o.LOLHess(p, g, h)
	}
	return o.RhoHess(p, g, h)
}

// ValGrad evaluates the selected field and its gradient. The LOL branch pays
// for the full Hessian pass since ∇γ already needs primitive Hessians
func (o *Evaluator) ValGrad(ft Type, p, g []float64) (val float64, err error) {
	if ft == LOLField {
		h := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
		return o.LOLHess(p, g, h)
	}
	return o.RhoGrad(p, g)
}

// chain1d computes dn[k] = (d^k/dx^k x^a·exp(-α x²)) / exp(-α x²) for
// k = 0..order (order ≤ 3). The polynomial recurrence D_{k+1} = D_k' - 2αx·D_k
// collapses to the closed forms below
func chain1d(a int, alp, x float64, order int, dn *[4]float64) {
	var xp [9]float64 // x^0 .. x^8; a ≤ 5 needs up to x^{a+3}
	xp[0] = 1
	for i := 1; i <= a+3; i++ {
		xp[i] = xp[i-1] * x
	}
	fa := float64(a)
	dn[0] = xp[a]
	if order < 1 {
		return
	}
	dn[1] = -2 * alp * xp[a+1]
	if a > 0 {
		dn[1] += fa * xp[a-1]
	}
	if order < 2 {
		return
	}
	dn[2] = -2*alp*(2*fa+1)*xp[a] + 4*alp*alp*xp[a+2]
	if a > 1 {
		dn[2] += fa * (fa - 1) * xp[a-2]
	}
	if order < 3 {
		return
	}
	dn[3] = 12*alp*alp*(fa+1)*xp[a+1] - 8*alp*alp*alp*xp[a+3]
	if a > 0 {
		dn[3] -= 6 * alp * fa * fa * xp[a-1]
	}
	if a > 2 {
		dn[3] += fa * (fa - 1) * (fa - 2) * xp[a-3]
	}
}

// t3idx maps a sorted derivative triple to the slot order used by t3c:
// xxx xxy xxz xyy xyz xzz yyy yyz yzz zzz
var t3idx = [3][3][3]int{
	{{0, 1, 2}, {1, 3, 4}, {2, 4, 5}},
	{{1, 3, 4}, {3, 6, 7}, {4, 7, 8}},
	{{2, 4, 5}, {4, 7, 8}, {5, 8, 9}},
}

// fillPrims evaluates every primitive and its derivatives up to the given
// order (0: values; 1: +gradients; 2: +Hessians; 3: +third derivatives) at
// point p. The outer loop runs over centers so that the relative coordinates
// and the shared exponential are computed once per center and per primitive
func (o *Evaluator) fillPrims(p []float64, order int) {
	w := o.W
	var dx, dy, dz [4]float64
	for i := 0; i < w.NNuc; i++ {
		x := p[0] - w.R[i][0]
		y := p[1] - w.R[i][1]
		z := p[2] - w.R[i][2]
		rr := x*x + y*y + z*z
		for _, a := range w.PrimOfCent[i] {
			alp := w.PrimExp[a]
			l, m, n := w.AngExps(a)
			expf := math.Exp(-alp * rr)
			chain1d(l, alp, x, order, &dx)
			chain1d(m, alp, y, order, &dy)
			chain1d(n, alp, z, order, &dz)
			o.chi[a] = dx[0] * dy[0] * dz[0] * expf
			if order < 1 {
				continue
			}
			o.gx[a] = dx[1] * dy[0] * dz[0] * expf
			o.gy[a] = dx[0] * dy[1] * dz[0] * expf
			o.gz[a] = dx[0] * dy[0] * dz[1] * expf
			if order < 2 {
				continue
			}
			o.hxx[a] = dx[2] * dy[0] * dz[0] * expf
			o.hyy[a] = dx[0] * dy[2] * dz[0] * expf
			o.hzz[a] = dx[0] * dy[0] * dz[2] * expf
			o.hxy[a] = dx[1] * dy[1] * dz[0] * expf
			o.hxz[a] = dx[1] * dy[0] * dz[1] * expf
			o.hyz[a] = dx[0] * dy[1] * dz[1] * expf
			if order < 3 {
				continue
			}
			o.t3c[0][a] = dx[3] * dy[0] * dz[0] * expf // xxx
			o.t3c[1][a] = dx[2] * dy[1] * dz[0] * expf // xxy
			o.t3c[2][a] = dx[2] * dy[0] * dz[1] * expf // xxz
			o.t3c[3][a] = dx[1] * dy[2] * dz[0] * expf // xyy
			o.t3c[4][a] = dx[1] * dy[1] * dz[1] * expf // xyz
			o.t3c[5][a] = dx[1] * dy[0] * dz[2] * expf // xzz
			o.t3c[6][a] = dx[0] * dy[3] * dz[0] * expf // yyy
			o.t3c[7][a] = dx[0] * dy[2] * dz[1] * expf // yyz
			o.t3c[8][a] = dx[0] * dy[1] * dz[2] * expf // yzz
			o.t3c[9][a] = dx[0] * dy[0] * dz[3] * expf // zzz
		}
	}
}

// contractChi computes sc[a] = Σ_b cab[a][b]·χ_b, walking only the upper
// triangle of the symmetric Cab matrix
func (o *Evaluator) contractChi() {
	w := o.W
	for a := 0; a < w.NPri; a++ {
		o.sc[a] = w.Cab[a][a] * o.chi[a]
	}
	for a := 0; a < w.NPri; a++ {
		for b := a + 1; b < w.NPri; b++ {
			c := w.Cab[a][b]
			o.sc[a] += c * o.chi[b]
			o.sc[b] += c * o.chi[a]
		}
	}
}

// contractGrad computes tc[a][k] = Σ_b cab[a][b]·∇χ_b[k], walking only the
// upper triangle of the symmetric Cab matrix
func (o *Evaluator) contractGrad() {
	w := o.W
	for a := 0; a < w.NPri; a++ {
		c := w.Cab[a][a]
		o.tc[a][0] = c * o.gx[a]
		o.tc[a][1] = c * o.gy[a]
		o.tc[a][2] = c * o.gz[a]
	}
	for a := 0; a < w.NPri; a++ {
		for b := a + 1; b < w.NPri; b++ {
			c := w.Cab[a][b]
			o.tc[a][0] += c * o.gx[b]
			o.tc[a][1] += c * o.gy[b]
			o.tc[a][2] += c * o.gz[b]
			o.tc[b][0] += c * o.gx[a]
			o.tc[b][1] += c * o.gy[a]
			o.tc[b][2] += c * o.gz[a]
		}
	}
}

// checkFinite returns a numerical error naming the offending point if any of
// the given values is NaN or Inf
func checkFinite(p []float64, vals ...float64) (err error) {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return chk.Err("field evaluator produced non-finite value at point (%g, %g, %g)", p[0], p[1], p[2])
		}
	}
	return
}
