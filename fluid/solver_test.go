package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSolverRejectsSmallGrids(t *testing.T) {
	_, err := NewSolver(3, 10)
	assert.Error(t, err)
	_, err = NewSolver(10, 3)
	assert.Error(t, err)
}

func TestNewSolverDefaultAmbient(t *testing.T) {
	s, err := NewSolver(6, 6)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, s.T())
	assert.Equal(t, 6, s.Nx())
	assert.Equal(t, 6, s.Ny())

	q := s.grid.at(s.grid.Q, 2, 2)
	assert.InDelta(t, 1.225, q[0], 1e-6)
}

func TestUpdateBoundaryRejectsInvalidParams(t *testing.T) {
	s, err := NewSolver(6, 6)
	assert.NoError(t, err)
	err = s.UpdateBoundary(ChamberParams{PressureTotal: 0, TempTotal: 1000, Mach: 1, PressureAmbient: 1000})
	assert.Error(t, err)
}

func TestStepRejectsOutOfRangeCFL(t *testing.T) {
	s, err := NewSolver(6, 6)
	assert.NoError(t, err)
	assert.NoError(t, s.UpdateBoundary(ChamberParams{PressureTotal: 350000, TempTotal: 1000, Mach: 2, PressureAmbient: 101325}))
	s.Reset()

	assert.Error(t, s.Step(0))
	assert.Error(t, s.Step(1.5))
	assert.NoError(t, s.Step(0.5))
}
