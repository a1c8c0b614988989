package fluid

import "fmt"

// defaultAmbient is the construction-time ambient fill (spec.md
// section 6 construct): rho=1.225, p=101325 Pa, zero velocity.
var defaultAmbient = primitive{
	rho: 1.225, u: 0, v: 0, p: 101325,
	e: energyFromPrimitive(1.225, 0, 0, 101325),
}

// Solver is the top-level handle exposed to a driver: construct,
// update_boundary, reset, step, scalar_field, plus read-only t/nx/ny.
// Grounded on model_problems/Euler2D/euler.go's NewEuler constructor
// shape, scaled down to spec.md section 6's external-interface table.
type Solver struct {
	grid       *GridState
	boundary   *BoundaryModel
	integrator *sweepIntegrator
}

// NewSolver constructs a solver over an nx-by-ny grid, nx,ny >= 4,
// filling Q with the default ambient state. t starts at 0.
func NewSolver(nx, ny int) (*Solver, error) {
	if nx < 4 || ny < 4 {
		return nil, fmt.Errorf("fluid: grid dimensions must be >= 4, got (%d, %d)", nx, ny)
	}
	bm, err := newBoundaryModel(defaultChamberParams())
	if err != nil {
		return nil, err
	}
	g := newGridState(nx, ny)
	g.initialize(defaultAmbient)
	return &Solver{
		grid:       g,
		boundary:   bm,
		integrator: &sweepIntegrator{boundary: bm},
	}, nil
}

// defaultChamberParams seeds the boundary model at construction; a
// driver typically calls UpdateBoundary immediately afterward with its
// own values (spec.md section 6 "Default parameter values").
func defaultChamberParams() ChamberParams {
	return ChamberParams{
		PressureTotal:   350000,
		TempTotal:       1000,
		Mach:            2.0,
		PressureAmbient: 101325,
	}
}

// UpdateBoundary recomputes inletState and ambientState from new
// chamber parameters. Rejected at the boundary (no partial mutation)
// if any parameter is out of range.
func (s *Solver) UpdateBoundary(p ChamberParams) error {
	if err := p.validate(); err != nil {
		return err
	}
	s.boundary.recompute(p)
	return nil
}

// Reset zeroes t, refills Q with ambientState, then imprints the
// boundary (spec.md section 6).
func (s *Solver) Reset() {
	s.grid.T = 0
	s.grid.revertToAmbient(s.boundary.ambient)
	copy(s.grid.Qp, s.grid.Q)
	s.boundary.imprint(s.grid)
	s.grid.commit()
}

// Step executes one CFL-limited time step (spec.md section 4.4). cfl
// must be in (0, 1].
func (s *Solver) Step(cfl float64) error {
	if cfl <= 0 || cfl > 1 {
		return fmt.Errorf("fluid: cfl must be in (0, 1], got %g", cfl)
	}
	s.integrator.step(s.grid, cfl)
	return nil
}

// ScalarField projects the currently committed field to the requested
// scalar (spec.md section 4.5 / 6).
func (s *Solver) ScalarField(mode FieldMode) (values []float32, min, max float32) {
	return scalarField(s.grid, mode)
}

// SetVerbose toggles fmt.Printf-style diagnostics for state
// transitions worth a message, currently just divergence resets
// (spec.md section 4.1 "Logging"). Off by default.
func (s *Solver) SetVerbose(v bool) {
	s.integrator.verbose = v
}

// T returns the accumulated simulation clock.
func (s *Solver) T() float64 { return s.grid.T }

// Nx returns the grid's cell count along x.
func (s *Solver) Nx() int { return s.grid.Nx }

// Ny returns the grid's cell count along y.
func (s *Solver) Ny() int { return s.grid.Ny }
