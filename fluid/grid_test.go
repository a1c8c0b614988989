package fluid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressureEnergyRoundTrip(t *testing.T) {
	rho, u, v, p := 1.1, 120.0, -30.0, 95000.0
	e := energyFromPrimitive(rho, u, v, p)
	got := pressureFromConservative(rho, rho*u, rho*v, e)
	assert.InDelta(t, p, got, 1e-6)
}

func TestPressureFloor(t *testing.T) {
	// A degenerate near-vacuum cell must clamp to the intra-step floor
	// of 10.0, not go negative or to zero.
	p := pressureFromConservative(1e-8, 0, 0, -1e6)
	assert.Equal(t, 10.0, p)
}

func TestGridStateInitializeAndCommit(t *testing.T) {
	g := newGridState(4, 4)
	amb := primitive{rho: 1.225, u: 0, v: 0, p: 101325, e: energyFromPrimitive(1.225, 0, 0, 101325)}
	g.initialize(amb)

	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			q := g.at(g.Q, i, j)
			assert.InDelta(t, float64(float32(amb.rho)), q[0], 1e-9)
		}
	}

	// Mutate Qp only; Q must be untouched until commit.
	g.set(g.Qp, 0, 0, [4]float64{9, 9, 9, 9})
	q := g.at(g.Q, 0, 0)
	assert.InDelta(t, float64(float32(amb.rho)), q[0], 1e-9)

	g.commit()
	q = g.at(g.Q, 0, 0)
	assert.Equal(t, float64(9), q[0])
}
