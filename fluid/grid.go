// Package fluid implements the compressible-flow solver core: a
// finite-volume Euler solver on a fixed rectangular grid, advanced with
// a Roe-averaged approximate Riemann flux and dimensional splitting.
package fluid

import "math"

// Gamma is the ratio of specific heats for air.
const Gamma = 1.4

// Rgas is the specific gas constant for air, J/(kg*K).
const Rgas = 287.05

// Nominal physical domain length, meters.
const domainLength = 0.9

// Post-commit invariant floors (spec.md Invariants), which the
// positivity repair clamps to. These are strictly larger than the
// intra-step floors used inside the kernel and pressureFromConservative
// -- permissive during arithmetic, strict at commit time.
const (
	rhoMin = 0.05
	pMin   = 100.0
)

// primitive is the (rho, u, v, p, E) tuple cached for the inlet and
// ambient boundary states.
type primitive struct {
	rho, u, v, p, e float64
}

// conservative returns the (rho, rhoU, rhoV, rhoE) tuple for this
// primitive state.
func (pr primitive) conservative() [4]float64 {
	return [4]float64{pr.rho, pr.rho * pr.u, pr.rho * pr.v, pr.e}
}

// GridState owns the conservative-variable field, its tentative
// double-buffer, the grid geometry, and the simulation clock. It is
// mutated only by SweepIntegrator and by Solver.Reset.
type GridState struct {
	Nx, Ny int
	Dx, Dy float64
	T      float64

	// Q and Qp are row-major [nx*ny*4] buffers: cell (i,j) component n
	// lives at ((j*nx+i)*4 + n). Qp ("Q-prime") is the tentative next
	// state; it is committed into Q only when a step is stable.
	Q  []float32
	Qp []float32
}

// newGridState allocates both buffers once; they are never reallocated
// for the lifetime of the grid.
func newGridState(nx, ny int) *GridState {
	n := nx * ny * 4
	return &GridState{
		Nx: nx, Ny: ny,
		Dx: domainLength / float64(nx),
		Dy: domainLength / float64(nx), // square cells: dy = dx
		Q:  make([]float32, n),
		Qp: make([]float32, n),
	}
}

// index returns the flat offset of cell (i,j) component 0 within a
// buffer returned by newGridState.
func (g *GridState) index(i, j int) int {
	return (j*g.Nx + i) * 4
}

// at reads the 4-tuple for cell (i,j) out of buf.
func (g *GridState) at(buf []float32, i, j int) [4]float64 {
	k := g.index(i, j)
	return [4]float64{
		float64(buf[k]), float64(buf[k+1]), float64(buf[k+2]), float64(buf[k+3]),
	}
}

// set writes the 4-tuple q into cell (i,j) of buf.
func (g *GridState) set(buf []float32, i, j int, q [4]float64) {
	k := g.index(i, j)
	buf[k] = float32(q[0])
	buf[k+1] = float32(q[1])
	buf[k+2] = float32(q[2])
	buf[k+3] = float32(q[3])
}

// initialize fills Q with the given ambient primitive state at every
// cell.
func (g *GridState) initialize(ambient primitive) {
	q := ambient.conservative()
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			g.set(g.Q, i, j, q)
		}
	}
}

// commit copies Qp into Q, accepting the tentative step.
func (g *GridState) commit() {
	copy(g.Q, g.Qp)
}

// revertToAmbient reinitializes Q to ambient without touching the
// clock. Used both by the external reset operation (which zeroes T
// itself beforehand) and by the integrator's divergence recovery
// (which must preserve T per spec.md section 4.4/7).
func (g *GridState) revertToAmbient(ambient primitive) {
	g.initialize(ambient)
}

// pressureFromConservative computes p = (gamma-1)*(rhoE -
// 0.5*(rhoU^2+rhoV^2)/rho), guarding against division blow-up on
// degenerate density and clamped below at the intra-step floor of 10,
// which is intentionally more lenient than the post-commit invariant
// floor pMin.
func pressureFromConservative(rho, rhoU, rhoV, rhoE float64) float64 {
	rhoSafe := math.Max(rho, 1e-4)
	p := (Gamma - 1) * (rhoE - 0.5*(rhoU*rhoU+rhoV*rhoV)/rhoSafe)
	if p < 10.0 {
		p = 10.0
	}
	return p
}

// energyFromPrimitive computes rhoE = p/(gamma-1) + 0.5*rho*(u^2+v^2).
func energyFromPrimitive(rho, u, v, p float64) float64 {
	return p/(Gamma-1) + 0.5*rho*(u*u+v*v)
}
