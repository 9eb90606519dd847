// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpn

import (
	"math"

	"github.com/alvarovm/denstoolkit/field"
	"github.com/alvarovm/denstoolkit/wfn"
	"github.com/cpmech/gosl/la"
)

// upwardDirs maps each kind to the set of eigendirections (indices into the
// ascending eigenvalue ordering) that take the root (-λ+√(λ²+4F²))/(2F), with
// F the projection of -∇f: along them the step descends toward a minimum.
// The remaining directions take the other root and climb toward a maximum.
// The partition realises the target signature
var upwardDirs = [4][3]bool{
	ACP: {false, false, false},
	BCP: {false, false, true},
	RCP: {false, true, true},
	CCP: {true, true, true},
}

// finder runs kind-specific eigenvector-following Newton searches. Each
// finder owns an evaluator and eigen scratch; spawn one finder per goroutine
// when scattering seeds
type finder struct {
	ev      *field.Evaluator
	ft      field.Type
	maxIt   [4]int
	stepCap [4]float64

	// scratch
	x, g, lam, dx []float64
	h, a, q, vecs [][]float64
}

// newFinder returns a finder for the given wavefunction and field type
func newFinder(w *wfn.Wavefunction, ft field.Type, maxIt [4]int, stepCap [4]float64) (o *finder) {
	o = new(finder)
	o.ev = field.NewEvaluator(w)
	o.ft = ft
	o.maxIt = maxIt
	o.stepCap = stepCap
	o.x = make([]float64, 3)
	o.g = make([]float64, 3)
	o.lam = make([]float64, 3)
	o.dx = make([]float64, 3)
	o.h = la.MatAlloc(3, 3)
	o.a = la.MatAlloc(3, 3)
	o.q = la.MatAlloc(3, 3)
	o.vecs = la.MatAlloc(3, 3)
	return
}

// evfStep computes the eigenvector-following step for the target kind from
// the gradient decomposed in the eigenbasis. Directions with a vanishing
// gradient projection contribute nothing
func (o *finder) evfStep(kind Kind) {
	up := upwardDirs[kind]
	o.dx[0], o.dx[1], o.dx[2] = 0, 0, 0
	for k := 0; k < 3; k++ {
		v := o.vecs[k]
		F := -(v[0]*o.g[0] + v[1]*o.g[1] + v[2]*o.g[2]) // projection of -∇f
		if math.Abs(F) < 1e-300 {
			continue
		}
		lam := o.lam[k]
		root := math.Sqrt(lam*lam + 4*F*F)
		// each root is evaluated in the algebraically equivalent form that
		// avoids cancellation between λ and the square root
		var hk float64
		if up[k] {
			if lam > 0 {
				hk = 2 * F / (root + lam)
			} else {
				hk = (-lam + root) / (2 * F)
			}
		} else {
			if lam < 0 {
				hk = -2 * F / (root - lam)
			} else {
				hk = (-lam - root) / (2 * F)
			}
		}
		o.dx[0] += hk * v[0]
		o.dx[1] += hk * v[1]
		o.dx[2] += hk * v[2]
	}
	mag := magV3(o.dx)
	if cmax := o.stepCap[kind]; mag > cmax {
		s := cmax / mag
		o.dx[0] *= s
		o.dx[1] *= s
		o.dx[2] *= s
	}
}

// seek runs the Newton search for a critical point of the given kind
// starting from x0. It returns the converged position, field value and
// signature; ok is false when the search did not converge within the
// iteration cap or converged onto a stationary point of the wrong signature.
// A non-nil err means the evaluator produced a non-finite value (fatal)
func (o *finder) seek(kind Kind, x0 []float64) (x []float64, val float64, sig int, ok bool, err error) {
	copy(o.x, x0)
	converged := false
	for it := 0; it < o.maxIt[kind]; it++ {
		val, err = o.ev.ValGradHess(o.ft, o.x, o.g, o.h)
		if err != nil {
			return
		}
		if magV3(o.g) < EpsGradMag {
			converged = true
			break
		}
		eigenSym3(o.h, o.a, o.q, o.lam, o.vecs)
		o.evfStep(kind)
		o.x[0] += o.dx[0]
		o.x[1] += o.dx[1]
		o.x[2] += o.dx[2]
	}
	if !converged {
		// re-check: the last step may have landed on the critical point
		val, err = o.ev.ValGradHess(o.ft, o.x, o.g, o.h)
		if err != nil {
			return
		}
		if magV3(o.g) >= EpsGradMag {
			return nil, 0, 0, false, nil
		}
	}
	eigenSym3(o.h, o.a, o.q, o.lam, o.vecs)
	sig = signature(o.lam)
	if sig != kind.Signature() {
		return nil, val, sig, false, nil
	}
	x = []float64{o.x[0], o.x[1], o.x[2]}
	ok = true
	return
}

// hessEigen exposes the eigen-decomposition of the Hessian at point p; used
// by the bond-path integrator to pick the start direction at a BCP
func (o *finder) hessEigen(p []float64) (lam []float64, vecs [][]float64, err error) {
	_, err = o.ev.ValGradHess(o.ft, p, o.g, o.h)
	if err != nil {
		return
	}
	eigenSym3(o.h, o.a, o.q, o.lam, o.vecs)
	return o.lam, o.vecs, nil
}
