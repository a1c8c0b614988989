package fluid

import "math"

// roeIntermediate holds the shared Roe-averaged quantities and wave
// amplitudes for a single face evaluation. Exposed (package-internal)
// so flux_test.go can verify the Galilean-consistency property against
// an independently assembled expected flux instead of only re-calling
// roeFlux on shifted states.
type roeIntermediate struct {
	rhoL, rhoR float64
	unL, utL   float64
	unR, utR   float64
	pL, pR     float64
	hL, hR     float64

	uBar, vBar, hBar float64
	cBar             float64

	lambda [4]float64
	alpha  [4]float64

	fxL, fxR [4]float64 // physical Euler flux in the face-normal frame, each side
}

// dissipation assembles the four-component Roe dissipation vector in
// the face-normal frame from ri's wave speeds and amplitudes.
func (ri roeIntermediate) dissipation() [4]float64 {
	l, a := ri.lambda, ri.alpha
	u, v, h, c := ri.uBar, ri.vBar, ri.hBar, ri.cBar
	q2 := u*u + v*v
	return [4]float64{
		l[0]*a[0] + l[1]*a[1] + l[3]*a[3],
		l[0]*a[0]*(u-c) + l[1]*a[1]*u + l[3]*a[3]*(u+c),
		l[0]*a[0]*v + l[1]*a[1]*v + l[2]*a[2] + l[3]*a[3]*v,
		l[0]*a[0]*(h-u*c) + l[1]*a[1]*0.5*q2 + l[2]*a[2]*v + l[3]*a[3]*(h+u*c),
	}
}

// computeRoeIntermediate derives the face-normal rotation, the
// Roe-averaged state, the entropy-fixed wave speeds, and the wave
// amplitudes for a face between qL and qR with outward normal
// (nx, ny). ok is false on a degenerate (non-finite pressure) face.
func computeRoeIntermediate(qL, qR [4]float64, nx, ny float64) (ri roeIntermediate, ok bool) {
	rhoL := math.Max(qL[0], 1e-6)
	rhoR := math.Max(qR[0], 1e-6)

	uRawL, vRawL := qL[1]/rhoL, qL[2]/rhoL
	uRawR, vRawR := qR[1]/rhoR, qR[2]/rhoR

	pL := pressureFromConservative(qL[0], qL[1], qL[2], qL[3])
	pR := pressureFromConservative(qR[0], qR[1], qR[2], qR[3])
	if !isFinite(pL) || !isFinite(pR) {
		return roeIntermediate{}, false
	}

	hL := (qL[3] + pL) / rhoL
	hR := (qR[3] + pR) / rhoR

	// Rotate velocities into the face-normal frame: un = normal
	// component, ut = tangential component.
	unL := uRawL*nx + vRawL*ny
	utL := -uRawL*ny + vRawL*nx
	unR := uRawR*nx + vRawR*ny
	utR := -uRawR*ny + vRawR*nx

	sL := math.Sqrt(rhoL)
	sR := math.Sqrt(rhoR)
	denom := sL + sR + 1e-9

	uBar := (sL*unL + sR*unR) / denom
	vBar := (sL*utL + sR*utR) / denom
	hBar := (sL*hL + sR*hR) / denom
	q2Bar := uBar*uBar + vBar*vBar

	c2Bar := (Gamma - 1) * (hBar - 0.5*q2Bar)
	if c2Bar < 50.0 {
		c2Bar = 50.0
	}
	cBar := math.Sqrt(c2Bar)

	lambda1 := math.Abs(uBar - cBar)
	lambda2 := math.Abs(uBar)
	lambda3 := lambda2
	lambda4 := math.Abs(uBar + cBar)

	delta := 0.25 * (math.Abs(uBar) + cBar)
	lambda1 = hartenFix(lambda1, delta)
	lambda2 = hartenFix(lambda2, delta)
	lambda3 = hartenFix(lambda3, delta)
	lambda4 = hartenFix(lambda4, delta)

	dRho := rhoR - rhoL
	dU := unR - unL
	dV := utR - utL
	dP := pR - pL
	rhoTilde := sL * sR

	alpha1 := (dP - rhoTilde*cBar*dU) / (2 * c2Bar)
	alpha2 := dRho - dP/c2Bar
	alpha3 := rhoTilde * dV
	alpha4 := (dP + rhoTilde*cBar*dU) / (2 * c2Bar)

	return roeIntermediate{
		rhoL: rhoL, rhoR: rhoR,
		unL: unL, utL: utL, unR: unR, utR: utR,
		pL: pL, pR: pR, hL: hL, hR: hR,
		uBar: uBar, vBar: vBar, hBar: hBar, cBar: cBar,
		lambda: [4]float64{lambda1, lambda2, lambda3, lambda4},
		alpha:  [4]float64{alpha1, alpha2, alpha3, alpha4},
		fxL:    eulerFluxRotated(rhoL, unL, utL, pL, hL),
		fxR:    eulerFluxRotated(rhoR, unR, utR, pR, hR),
	}, true
}

// roeFlux computes the Roe-averaged approximate Riemann flux across a
// single face between a "left" cell state qL and a "right" cell state
// qR, given the outward face normal (nx, ny), one of (1,0) or (0,1).
// It is pure, allocation-free, and independent of grid location --
// callers apply the returned 4-tuple to both adjacent cells with
// opposite sign. See model_problems/Euler2D/fluxes.go Euler.RoeFlux for
// the DG analogue this is generalized from.
func roeFlux(qL, qR [4]float64, nx, ny float64) [4]float64 {
	ri, ok := computeRoeIntermediate(qL, qR, nx, ny)
	if !ok {
		return [4]float64{}
	}
	d := ri.dissipation()

	f0 := 0.5*(ri.fxL[0]+ri.fxR[0]) - 0.5*d[0]
	f1 := 0.5*(ri.fxL[1]+ri.fxR[1]) - 0.5*d[1]
	f2 := 0.5*(ri.fxL[2]+ri.fxR[2]) - 0.5*d[2]
	f3 := 0.5*(ri.fxL[3]+ri.fxR[3]) - 0.5*d[3]

	return [4]float64{
		f0,
		f1*nx - f2*ny,
		f1*ny + f2*nx,
		f3,
	}
}

// eulerFluxRotated computes the physical Euler flux (mass, normal
// momentum, tangential momentum, energy) in the face-normal frame.
func eulerFluxRotated(rho, un, ut, p, h float64) [4]float64 {
	return [4]float64{
		rho * un,
		rho*un*un + p,
		rho * un * ut,
		rho * un * h,
	}
}

// hartenFix smooths an absolute wave speed near zero to avoid
// unphysical expansion shocks.
func hartenFix(lambda, delta float64) float64 {
	if lambda < delta {
		return (lambda*lambda + delta*delta) / (2 * delta)
	}
	return lambda
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
