// Copyright 2016 The Denstoolkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "math"

// cLOL is the Thomas-Fermi prefactor of τ = cLOL·ρ^{5/3}/G
var cLOL = 0.6 * math.Pow(6.0*math.Pi*math.Pi, 2.0/3.0)

// KineticG returns the positive-definite kinetic energy density
// G = (1/2)·Σ_μ occN[μ]·‖∇φ_μ‖² at point p
func (o *Evaluator) KineticG(p []float64) (gke float64, err error) {
	o.fillPrims(p, 1)
	w := o.W
	for mu := 0; mu < w.NMOr; mu++ {
		c := w.MOCoeff[mu]
		var dx, dy, dz float64
		for a := 0; a < w.NPri; a++ {
			dx += c[a] * o.gx[a]
			dy += c[a] * o.gy[a]
			dz += c[a] * o.gz[a]
		}
		gke += 0.5 * w.OccN[mu] * (dx*dx + dy*dy + dz*dz)
	}
	err = checkFinite(p, gke)
	return
}

// LOL returns the Localized Orbital Locator γ = τ/(1+τ) with
// τ = cLOL·ρ^{5/3}/G. Vanishing density yields γ = 0
func (o *Evaluator) LOL(p []float64) (gamma float64, err error) {
	rho, err := o.Rho(p)
	if err != nil {
		return
	}
	gke, err := o.KineticG(p)
	if err != nil {
		return
	}
	if rho < EpsRho || gke < EpsRho {
		return 0, nil
	}
	tau := cLOL * math.Pow(rho, 5.0/3.0) / gke
	gamma = tau / (1.0 + tau)
	return
}

// MagGradLOL returns the magnitude of the LOL gradient at point p
func (o *Evaluator) MagGradLOL(p []float64) (mag float64, err error) {
	g := make([]float64, 3)
	h := [][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}}
	_, err = o.LOLHess(p, g, h)
	mag = math.Sqrt(g[0]*g[0] + g[1]*g[1] + g[2]*g[2])
	return
}

// LOLHess returns γ, ∇γ and H(γ) in a single pass by analytic
// differentiation through ρ and G. g must have length 3 and h a 3×3 matrix.
// The τ = 0 branch (ρ or G below EpsRho) yields zeros
func (o *Evaluator) LOLHess(p, g []float64, h [][]float64) (gamma float64, err error) {

	// primitive values up to third derivatives
	o.fillPrims(p, 3)
	o.contractChi()
	o.contractGrad()
	w := o.W

	// density, gradient, Hessian (same contraction as RhoHess)
	var rho float64
	var grho [3]float64
	var hrho [3][3]float64
	for a := 0; a < w.NPri; a++ {
		s := o.sc[a]
		rho += s * o.chi[a]
		grho[0] += 2 * s * o.gx[a]
		grho[1] += 2 * s * o.gy[a]
		grho[2] += 2 * s * o.gz[a]
		tx, ty, tz := o.tc[a][0], o.tc[a][1], o.tc[a][2]
		hrho[0][0] += 2 * (s*o.hxx[a] + o.gx[a]*tx)
		hrho[1][1] += 2 * (s*o.hyy[a] + o.gy[a]*ty)
		hrho[2][2] += 2 * (s*o.hzz[a] + o.gz[a]*tz)
		hrho[0][1] += 2 * (s*o.hxy[a] + o.gx[a]*ty)
		hrho[0][2] += 2 * (s*o.hxz[a] + o.gx[a]*tz)
		hrho[1][2] += 2 * (s*o.hyz[a] + o.gy[a]*tz)
	}
	hrho[1][0], hrho[2][0], hrho[2][1] = hrho[0][1], hrho[0][2], hrho[1][2]

	// kinetic energy density G, ∇G and H(G) via per-orbital contraction
	var gke float64
	var dG [3]float64
	var hG [3][3]float64
	for mu := 0; mu < w.NMOr; mu++ {
		c := w.MOCoeff[mu]
		occ := w.OccN[mu]
		for k := 0; k < 3; k++ {
			o.dphi[k] = 0
			for l := 0; l < 3; l++ {
				o.hphi[k][l] = 0
			}
		}
		for cdx := 0; cdx < 10; cdx++ {
			o.tphi[cdx] = 0
		}
		for a := 0; a < w.NPri; a++ {
			ca := c[a]
			o.dphi[0] += ca * o.gx[a]
			o.dphi[1] += ca * o.gy[a]
			o.dphi[2] += ca * o.gz[a]
			o.hphi[0][0] += ca * o.hxx[a]
			o.hphi[1][1] += ca * o.hyy[a]
			o.hphi[2][2] += ca * o.hzz[a]
			o.hphi[0][1] += ca * o.hxy[a]
			o.hphi[0][2] += ca * o.hxz[a]
			o.hphi[1][2] += ca * o.hyz[a]
			for cdx := 0; cdx < 10; cdx++ {
				o.tphi[cdx] += ca * o.t3c[cdx][a]
			}
		}
		o.hphi[1][0], o.hphi[2][0], o.hphi[2][1] = o.hphi[0][1], o.hphi[0][2], o.hphi[1][2]
		gke += 0.5 * occ * (o.dphi[0]*o.dphi[0] + o.dphi[1]*o.dphi[1] + o.dphi[2]*o.dphi[2])
		for k := 0; k < 3; k++ {
			for m := 0; m < 3; m++ {
				dG[k] += occ * o.hphi[k][m] * o.dphi[m]
			}
			for l := k; l < 3; l++ {
				s := 0.0
				for m := 0; m < 3; m++ {
					s += o.tphi[t3idx[k][l][m]]*o.dphi[m] + o.hphi[k][m]*o.hphi[m][l]
				}
				hG[k][l] += occ * s
			}
		}
	}
	hG[1][0], hG[2][0], hG[2][1] = hG[0][1], hG[0][2], hG[1][2]

	// τ = 0 branch
	g[0], g[1], g[2] = 0, 0, 0
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			h[k][l] = 0
		}
	}
	if rho < EpsRho || gke < EpsRho {
		return 0, nil
	}

	// τ = A/G with A = cLOL·ρ^{5/3}
	r23 := math.Pow(rho, 2.0/3.0)
	bigA := cLOL * r23 * rho
	var dA [3]float64
	var hA [3][3]float64
	for k := 0; k < 3; k++ {
		dA[k] = cLOL * (5.0 / 3.0) * r23 * grho[k]
	}
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			hA[k][l] = cLOL * (5.0 / 3.0) * ((2.0/3.0)*grho[k]*grho[l]/math.Pow(rho, 1.0/3.0) + r23*hrho[k][l])
		}
	}
	tau := bigA / gke
	var dtau [3]float64
	var htau [3][3]float64
	for k := 0; k < 3; k++ {
		dtau[k] = dA[k]/gke - bigA*dG[k]/(gke*gke)
	}
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			htau[k][l] = hA[k][l]/gke -
				(dA[k]*dG[l]+dG[k]*dA[l])/(gke*gke) -
				bigA*hG[k][l]/(gke*gke) +
				2.0*bigA*dG[k]*dG[l]/(gke*gke*gke)
		}
	}

	// γ = τ/(1+τ)
	q := 1.0 / (1.0 + tau)
	gamma = tau * q
	for k := 0; k < 3; k++ {
		g[k] = q * q * dtau[k]
	}
	for k := 0; k < 3; k++ {
		for l := 0; l < 3; l++ {
			h[k][l] = q*q*htau[k][l] - 2.0*q*q*q*dtau[k]*dtau[l]
		}
	}
	err = checkFinite(p, gamma, g[0], g[1], g[2], h[0][0], h[1][1], h[2][2], h[0][1], h[0][2], h[1][2])
	return
}
