package fluid

import (
	"fmt"
	"math"
)

const (
	dtCap = 5e-5 // hard cap on dt, seconds; bounds transient instability at startup
	sMin  = 10.0 // floor on the maximum CFL wave speed scan
)

// sweepIntegrator executes one time step: CFL-limited dt, X-sweep,
// Y-sweep, boundary imprint, positivity repair, and stability
// acceptance. Grounded on model_problems/Euler1D/euler.go
// EulerDFR.CalculateDT for the CFL scan and on the teacher's
// accumulate-then-commit RK-stage pattern in EulerDFR.Solve, adapted
// to two sequential dimensional-split sweeps instead of RK stages.
type sweepIntegrator struct {
	boundary *BoundaryModel
	verbose  bool
}

// step advances g by one CFL-limited time step. It never returns an
// error for divergence -- per spec.md section 7, divergence is
// recovered locally by resetting to ambient, not surfaced to the
// caller.
func (si *sweepIntegrator) step(g *GridState, cfl float64) {
	dt := si.computeDt(g, cfl)
	g.T += dt

	// Seed Qp <- Q, then accumulate the X-sweep flux divergence.
	copy(g.Qp, g.Q)
	si.xSweep(g, dt)
	// Y-sweep continues modifying Qp left by the X-sweep (dimensional
	// splitting via accumulation, not a re-seed).
	si.ySweep(g, dt)

	si.boundary.imprint(g)

	if stable := repairPositivity(g.Qp, g.Nx, g.Ny); stable {
		g.commit()
	} else {
		if si.verbose {
			fmt.Printf("fluid: divergence detected at t=%.6g, reverting to ambient\n", g.T)
		}
		// Divergence: discard Qp, revert Q to ambient, but preserve T
		// (spec.md section 4.4/7 -- the simulation clock keeps
		// advancing through a reset; this is frozen behavior, not a
		// bug).
		g.revertToAmbient(si.boundary.ambient)
	}
}

// computeDt scans all cells for the maximum local wave speed and
// returns dt = min(cfl*min(dx,dy)/S, dtCap).
func (si *sweepIntegrator) computeDt(g *GridState, cfl float64) float64 {
	s := sMin
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			q := g.at(g.Q, i, j)
			rho := q[0]
			u, v := q[1]/rho, q[2]/rho
			p := pressureFromConservative(q[0], q[1], q[2], q[3])
			c := math.Sqrt(Gamma * p / rho)
			wave := math.Sqrt(u*u+v*v) + c
			if wave > s {
				s = wave
			}
		}
	}
	h := math.Min(g.Dx, g.Dy)
	dt := cfl * h / s
	if dt > dtCap {
		dt = dtCap
	}
	return dt
}

// xSweep applies the interior x-direction fluxes for every face
// between (i,j) and (i+1,j), 0 <= i < nx-1.
func (si *sweepIntegrator) xSweep(g *GridState, dt float64) {
	coeff := dt / g.Dx
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx-1; i++ {
			left := g.at(g.Q, i, j)
			right := g.at(g.Q, i+1, j)
			flux := roeFlux(left, right, 1, 0)
			applyFlux(g, i, j, i+1, j, flux, coeff)
		}
	}
}

// ySweep applies the interior y-direction fluxes for every face
// between (i,j) and (i,j+1), 0 <= j < ny-1.
func (si *sweepIntegrator) ySweep(g *GridState, dt float64) {
	coeff := dt / g.Dy
	for j := 0; j < g.Ny-1; j++ {
		for i := 0; i < g.Nx; i++ {
			bottom := g.at(g.Q, i, j)
			top := g.at(g.Q, i, j+1)
			flux := roeFlux(bottom, top, 0, 1)
			applyFlux(g, i, j, i, j+1, flux, coeff)
		}
	}
}

// applyFlux subtracts coeff*flux from the left/bottom cell of Qp and
// adds it to the right/top cell. The sweeps compute each flux from Q,
// not Qp, so faces can be visited in any order within a sweep.
func applyFlux(g *GridState, iL, jL, iR, jR int, flux [4]float64, coeff float64) {
	left := g.at(g.Qp, iL, jL)
	right := g.at(g.Qp, iR, jR)
	var newLeft, newRight [4]float64
	for n := 0; n < 4; n++ {
		newLeft[n] = left[n] - coeff*flux[n]
		newRight[n] = right[n] + coeff*flux[n]
	}
	g.set(g.Qp, iL, jL, newLeft)
	g.set(g.Qp, iR, jR, newRight)
}

// repairPositivity clamps density and pressure floors on buf in
// place, returning false (unstable) if any cell carries a
// non-recoverable non-finite value.
func repairPositivity(buf []float32, nx, ny int) bool {
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			k := (j*nx + i) * 4
			rho := float64(buf[k])
			rhoU := float64(buf[k+1])
			rhoV := float64(buf[k+2])
			rhoE := float64(buf[k+3])

			if !isFinite(rho) || !isFinite(rhoE) {
				return false
			}
			if rho < rhoMin {
				rho = rhoMin
				rhoU = 0
				rhoV = 0
			}

			u, v := rhoU/rho, rhoV/rho
			if !isFinite(u) || !isFinite(v) {
				return false
			}

			p := pressureFromConservative(rho, rhoU, rhoV, rhoE)
			if !isFinite(p) || p < pMin {
				p = pMin
				rhoE = energyFromPrimitive(rho, u, v, p)
			}

			buf[k] = float32(rho)
			buf[k+1] = float32(rhoU)
			buf[k+2] = float32(rhoV)
			buf[k+3] = float32(rhoE)
		}
	}
	return true
}
