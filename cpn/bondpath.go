// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpn

import (
	"math"

	"github.com/alvarovm/denstoolkit/field"
	"github.com/cpmech/gosl/chk"
)

// bond-path integrator parameters
const (
	// DefBondPathStep is the initial RK5 step size
	DefBondPathStep = 0.02

	// MaxBondPathStep caps the adaptive step size
	MaxBondPathStep = 0.2

	// TolRK is the per-component position tolerance of the embedded
	// 4th-order error estimate
	TolRK = 1e-6

	// EpsStag: an accepted step moving less than this aborts the trace
	// (absolute, position units)
	EpsStag = 1e-8

	// ArraySizeGradPath caps the number of stored points per path side
	ArraySizeGradPath = 100

	// snapDist: once the head of the path is this close to an attractor the
	// trace snaps onto it
	snapDist = 0.04
)

// Cash-Karp tableau
var (
	ckA = [6][5]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{3.0 / 10.0, -9.0 / 10.0, 6.0 / 5.0},
		{-11.0 / 54.0, 5.0 / 2.0, -70.0 / 27.0, 35.0 / 27.0},
		{1631.0 / 55296.0, 175.0 / 512.0, 575.0 / 13824.0, 44275.0 / 110592.0, 253.0 / 4096.0},
	}
	ckB5 = [6]float64{37.0 / 378.0, 0, 250.0 / 621.0, 125.0 / 594.0, 0, 512.0 / 1771.0}
	ckB4 = [6]float64{2825.0 / 27648.0, 0, 18575.0 / 48384.0, 13525.0 / 55296.0, 277.0 / 14336.0, 1.0 / 4.0}
)

// trace status codes
const (
	traceReachedACP = iota
	traceTruncated
	traceStagnated
	traceLostGradient
)

// unitGrad evaluates the unit gradient of the field at x; flat is true when
// the gradient magnitude is below EpsGradMag (a critical point)
func unitGrad(ev *field.Evaluator, ft field.Type, x, d []float64) (flat bool, err error) {
	_, err = ev.ValGrad(ft, x, d)
	if err != nil {
		return
	}
	mag := magV3(d)
	if mag < EpsGradMag {
		return true, nil
	}
	d[0] /= mag
	d[1] /= mag
	d[2] /= mag
	return
}

// rk5Step advances x by one Cash-Karp step of size h along the unit
// gradient, returning the new position and the embedded per-component error
// estimate. flat is true when any stage lands on a vanishing gradient
func rk5Step(ev *field.Evaluator, ft field.Type, x []float64, h float64) (xn []float64, errEst float64, flat bool, err error) {
	var k [6][3]float64
	d := make([]float64, 3)
	xs := make([]float64, 3)
	flat, err = unitGrad(ev, ft, x, d)
	if flat || err != nil {
		return
	}
	copy(k[0][:], d)
	for s := 1; s < 6; s++ {
		for c := 0; c < 3; c++ {
			acc := 0.0
			for j := 0; j < s; j++ {
				acc += ckA[s][j] * k[j][c]
			}
			xs[c] = x[c] + h*acc
		}
		flat, err = unitGrad(ev, ft, xs, d)
		if flat || err != nil {
			return
		}
		copy(k[s][:], d)
	}
	xn = make([]float64, 3)
	for c := 0; c < 3; c++ {
		y5, y4 := x[c], x[c]
		for s := 0; s < 6; s++ {
			y5 += h * ckB5[s] * k[s][c]
			y4 += h * ckB4[s] * k[s][c]
		}
		xn[c] = y5
		if e := math.Abs(y5 - y4); e > errEst {
			errEst = e
		}
	}
	return
}

// nearestACP returns the attractor closest to x
func (o *Network) nearestACP(x []float64) (idx int, dist float64) {
	idx, dist = -1, math.MaxFloat64
	for i := range o.ACPs {
		if d := distV3(x, o.ACPs[i].X); d < dist {
			idx, dist = i, d
		}
	}
	return
}

// traceSide integrates the steepest-ascent curve from a bond point along one
// initial direction until an attractor is reached, the point budget runs
// out, or the trace stagnates. The returned points exclude the bond point
// itself; on success the last point is the attractor position
func (o *Network) traceSide(x0, dir []float64) (pts [][]float64, endACP int, status int, err error) {
	ev := o.fnd.ev
	endACP = -1
	h := o.BondPathStep
	if h <= 0 {
		h = DefBondPathStep
	}
	x := []float64{x0[0] + h*dir[0], x0[1] + h*dir[1], x0[2] + h*dir[2]}
	pts = append(pts, append([]float64(nil), x...))
	gsc := make([]float64, 3)
	for len(pts) < ArraySizeGradPath {
		inear, dnear := o.nearestACP(x)
		if dnear < snapDist {
			// snap onto the attractor; the emitted endpoint must satisfy the
			// success test: vanishing gradient within the position tolerance
			_, e := ev.ValGrad(o.FT, o.ACPs[inear].X, gsc)
			if e != nil {
				return pts, -1, traceLostGradient, e
			}
			if magV3(gsc) >= EpsGradMag {
				return pts, -1, traceLostGradient, nil
			}
			pts = append(pts, append([]float64(nil), o.ACPs[inear].X...))
			return pts, inear, traceReachedACP, nil
		}
		// keep the step from overshooting the nearest attractor
		if h > dnear/2 && dnear/2 >= 0.01 {
			h = dnear / 2
		}
		var xn []float64
		var errEst float64
		var flat bool
		accepted := false
		for try := 0; try < 40; try++ {
			xn, errEst, flat, err = rk5Step(ev, o.FT, x, h)
			if err != nil {
				return
			}
			if flat {
				// a stage hit a stationary point; snap if an attractor is at
				// hand, otherwise the path ends off-network
				if i, d := o.nearestACP(x); d < snapDist {
					pts = append(pts, append([]float64(nil), o.ACPs[i].X...))
					return pts, i, traceReachedACP, nil
				}
				return pts, -1, traceLostGradient, nil
			}
			if errEst <= TolRK || h <= 1e-7 {
				accepted = true
				break
			}
			h *= 0.5
		}
		if !accepted {
			return pts, -1, traceStagnated, nil
		}
		if distV3(x, xn) < EpsStag {
			return pts, -1, traceStagnated, nil
		}
		x = xn
		pts = append(pts, append([]float64(nil), x...))
		h *= 1.2
		if h > MaxBondPathStep {
			h = MaxBondPathStep
		}
	}
	return pts, -1, traceTruncated, nil
}

// SetBondPaths traces the two steepest-ascent curves leaving every bond
// critical point along the eigenvector of its single positive Hessian
// eigenvalue. The two sides are stored head-to-tail so that each stored
// polyline runs attractor → bond point → attractor. Bond points whose paths
// fail to reach two attractors are flagged non-normal
func (o *Network) SetBondPaths() (err error) {
	if !o.iknowacps || !o.iknowbcps {
		return chk.Err("cannot set bond paths: critical points not yet found")
	}
	if o.fnd == nil {
		o.fnd = newFinder(o.W, o.FT, o.MaxIt, o.StepCap)
	}
	o.BGPs = make([][][]float64, len(o.BCPs))
	for i := range o.BCPs {
		if o.Cancelled() {
			return
		}
		lam, vecs, e := o.fnd.hessEigen(o.BCPs[i].X)
		if e != nil {
			return e
		}
		if lam[2] <= 0 {
			o.NormalBCP[i] = false
			continue
		}
		dir := []float64{vecs[2][0], vecs[2][1], vecs[2][2]}
		ndir := []float64{-dir[0], -dir[1], -dir[2]}
		ptsA, acpA, stA, e := o.traceSide(o.BCPs[i].X, dir)
		if e != nil {
			return e
		}
		ptsB, acpB, stB, e := o.traceSide(o.BCPs[i].X, ndir)
		if e != nil {
			return e
		}
		if stA != traceReachedACP || stB != traceReachedACP {
			o.NormalBCP[i] = false
		} else {
			o.AtBCP[i] = [2]int{acpA, acpB}
		}
		// head-to-tail: reverse side A so the polyline runs ACP → BCP → ACP
		n := len(ptsA) + 1 + len(ptsB)
		path := make([][]float64, 0, n)
		for j := len(ptsA) - 1; j >= 0; j-- {
			path = append(path, ptsA[j])
		}
		path = append(path, append([]float64(nil), o.BCPs[i].X...))
		path = append(path, ptsB...)
		o.BGPs[i] = path
	}
	o.sortBCPs()
	o.iknowbgps = true
	return
}
