package fluid

import (
	"fmt"
	"math"
)

// ChamberParams are the user-facing inlet chamber conditions (spec.md
// section 4.2 / 6). All fields must be strictly positive; Mach may be
// zero.
type ChamberParams struct {
	PressureTotal   float64 // Pa
	TempTotal       float64 // K
	Mach            float64
	PressureAmbient float64 // Pa
}

// validate rejects out-of-range chamber parameters at the entry
// point, per spec.md section 7 "Invalid argument" -- rejected before
// any state mutation.
func (c ChamberParams) validate() error {
	if c.PressureTotal <= 0 {
		return fmt.Errorf("fluid: pressureTotal must be positive, got %g", c.PressureTotal)
	}
	if c.TempTotal <= 0 {
		return fmt.Errorf("fluid: tempTotal must be positive, got %g", c.TempTotal)
	}
	if c.Mach < 0 {
		return fmt.Errorf("fluid: mach must be non-negative, got %g", c.Mach)
	}
	if c.PressureAmbient <= 0 {
		return fmt.Errorf("fluid: pressureAmbient must be positive, got %g", c.PressureAmbient)
	}
	return nil
}

const ambientTemp = 300.0

// BoundaryModel translates chamber parameters into the two cached
// primitive boundary states and imprints boundary conditions onto a
// grid's tentative buffer each step. It is grounded on
// model_problems/Euler2D/fluids.go's NewFreeStream isentropic setup
// and model_problems/Euler2D/bcs.go's FarBC/RiemannBC supersonic
// branches (copy-from-inf on inflow, copy-from-interior on outflow).
type BoundaryModel struct {
	params ChamberParams

	inlet   primitive
	ambient primitive
}

// newBoundaryModel builds a BoundaryModel from chamber parameters,
// recomputing both cached states via the isentropic relations.
func newBoundaryModel(p ChamberParams) (*BoundaryModel, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	bm := &BoundaryModel{}
	bm.recompute(p)
	return bm, nil
}

// recompute derives inletState and ambientState from the isentropic
// flow relations (spec.md section 4.2). Called whenever any of
// pressureTotal, tempTotal, mach, pressureAmbient changes.
func (bm *BoundaryModel) recompute(p ChamberParams) {
	bm.params = p

	tStatic := p.TempTotal / (1 + 0.2*p.Mach*p.Mach)
	pStatic := p.PressureTotal / math.Pow(1+0.2*p.Mach*p.Mach, Gamma/(Gamma-1))
	rhoStatic := pStatic / (Rgas * tStatic)
	cStatic := math.Sqrt(Gamma * Rgas * tStatic)
	uStatic := p.Mach * cStatic

	bm.inlet = primitive{
		rho: rhoStatic, u: uStatic, v: 0, p: pStatic,
		e: energyFromPrimitive(rhoStatic, uStatic, 0, pStatic),
	}

	rhoAmbient := p.PressureAmbient / (Rgas * ambientTemp)
	bm.ambient = primitive{
		rho: rhoAmbient, u: 0, v: 0, p: p.PressureAmbient,
		e: energyFromPrimitive(rhoAmbient, 0, 0, p.PressureAmbient),
	}
}

// imprint writes the inlet/outlet/far-field boundary conditions onto
// g.Qp, per spec.md section 4.2. Applied after both sweeps and before
// positivity repair.
func (bm *BoundaryModel) imprint(g *GridState) {
	nx, ny := g.Nx, g.Ny
	jc := ny / 2
	r := ny / 8

	// Left column: inlet aperture, else slip wall.
	for j := 0; j < ny; j++ {
		if abs(j-jc) <= r {
			g.set(g.Qp, 0, j, bm.inlet.conservative())
			continue
		}
		neighbor := g.at(g.Qp, 1, j)
		rho := neighbor[0]
		rhoV := neighbor[2]
		p := pressureFromConservative(neighbor[0], neighbor[1], neighbor[2], neighbor[3])
		v := rhoV / rho
		e := energyFromPrimitive(rho, 0, v, p)
		g.set(g.Qp, 0, j, [4]float64{rho, 0, rhoV, e})
	}

	// Right column: zero-gradient outlet, copy from i = nx-2.
	for j := 0; j < ny; j++ {
		q := g.at(g.Qp, nx-2, j)
		g.set(g.Qp, nx-1, j, q)
	}

	// Top and bottom rows: hard-set ambient.
	ambientQ := bm.ambient.conservative()
	for i := 0; i < nx; i++ {
		g.set(g.Qp, i, 0, ambientQ)
		g.set(g.Qp, i, ny-1, ambientQ)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
