// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "math"

// Rho returns the electron density at point p
func (o *Evaluator) Rho(p []float64) (rho float64, err error) {
	o.fillPrims(p, 0)
	o.contractChi()
	for a := 0; a < o.W.NPri; a++ {
		rho += o.sc[a] * o.chi[a]
	}
	err = checkFinite(p, rho)
	return
}

// RhoGrad returns the density and its gradient in a single pass.
// g must have length 3
func (o *Evaluator) RhoGrad(p, g []float64) (rho float64, err error) {
	o.fillPrims(p, 1)
	o.contractChi()
	g[0], g[1], g[2] = 0, 0, 0
	for a := 0; a < o.W.NPri; a++ {
		s := o.sc[a]
		rho += s * o.chi[a]
		g[0] += 2 * s * o.gx[a]
		g[1] += 2 * s * o.gy[a]
		g[2] += 2 * s * o.gz[a]
	}
	err = checkFinite(p, rho, g[0], g[1], g[2])
	return
}

// RhoHess returns the density, its gradient and its Hessian in a single pass.
// g must have length 3 and h must be a 3×3 matrix
func (o *Evaluator) RhoHess(p, g []float64, h [][]float64) (rho float64, err error) {
	o.fillPrims(p, 2)
	o.contractChi()
	o.contractGrad()
	g[0], g[1], g[2] = 0, 0, 0
	var hxx, hyy, hzz, hxy, hxz, hyz float64
	for a := 0; a < o.W.NPri; a++ {
		s := o.sc[a]
		rho += s * o.chi[a]
		g[0] += 2 * s * o.gx[a]
		g[1] += 2 * s * o.gy[a]
		g[2] += 2 * s * o.gz[a]
		tx, ty, tz := o.tc[a][0], o.tc[a][1], o.tc[a][2]
		hxx += 2 * (s*o.hxx[a] + o.gx[a]*tx)
		hyy += 2 * (s*o.hyy[a] + o.gy[a]*ty)
		hzz += 2 * (s*o.hzz[a] + o.gz[a]*tz)
		hxy += 2 * (s*o.hxy[a] + o.gx[a]*ty)
		hxz += 2 * (s*o.hxz[a] + o.gx[a]*tz)
		hyz += 2 * (s*o.hyz[a] + o.gy[a]*tz)
	}
	h[0][0], h[1][1], h[2][2] = hxx, hyy, hzz
	h[0][1], h[1][0] = hxy, hxy
	h[0][2], h[2][0] = hxz, hxz
	h[1][2], h[2][1] = hyz, hyz
	err = checkFinite(p, rho, g[0], g[1], g[2], hxx, hyy, hzz, hxy, hxz, hyz)
	return
}

// LapRho returns the Laplacian of the density at point p
func (o *Evaluator) LapRho(p []float64) (lap float64, err error) {
	g := make([]float64, 3)
	h := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	_, err = o.RhoHess(p, g, h)
	lap = h[0][0] + h[1][1] + h[2][2]
	return
}

// MagGradRho returns the magnitude of the density gradient at point p
func (o *Evaluator) MagGradRho(p []float64) (mag float64, err error) {
	g := make([]float64, 3)
	_, err = o.RhoGrad(p, g)
	mag = math.Sqrt(g[0]*g[0] + g[1]*g[1] + g[2]*g[2])
	return
}

// ShannonEntropy returns the Shannon entropy density -ρ·ln(ρ) at point p
func (o *Evaluator) ShannonEntropy(p []float64) (s float64, err error) {
	rho, err := o.Rho(p)
	if err != nil || rho < EpsRho {
		return
	}
	s = -rho * math.Log(rho)
	return
}

// KineticK returns the kinetic energy density K, the Laplacian-based form
// K = -(1/4)·Σ_ab cab·(χ_a ∇²χ_b + χ_b ∇²χ_a)
func (o *Evaluator) KineticK(p []float64) (k float64, err error) {
	o.fillPrims(p, 2)
	o.contractChi()
	for a := 0; a < o.W.NPri; a++ {
		lap := o.hxx[a] + o.hyy[a] + o.hzz[a]
		k -= 0.5 * o.sc[a] * lap
	}
	err = checkFinite(p, k)
	return
}
