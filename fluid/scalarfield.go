package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// FieldMode selects which derived scalar ScalarFieldView produces.
// Grounded on model_problems/Euler2D/fluids.go's FlowFunction enum,
// which implements the same "one enum value per derived scalar"
// shape over conservative state.
type FieldMode int

const (
	FieldDensity FieldMode = iota
	FieldPressure
	FieldVelocity
	FieldTemperature
	FieldMach
	FieldSchlieren
)

// scalarField projects the currently committed Q to a flat nx*ny
// array of the requested scalar, plus its observed min/max. It reads
// Q only; the returned array is freshly allocated, never a borrow of
// Q. All divisions by density use rho+1e-9 to avoid non-finite output.
func scalarField(g *GridState, mode FieldMode) (values []float32, min, max float32) {
	nx, ny := g.Nx, g.Ny
	out := make([]float64, nx*ny)

	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			q := g.at(g.Q, i, j)
			out[j*nx+i] = scalarAt(q, mode)
		}
	}

	if mode == FieldSchlieren {
		out = schlierenFromDensity(g, out)
	}

	values = make([]float32, nx*ny)
	for k, v := range out {
		values[k] = float32(v)
	}
	lo, hi := floats.Min(out), floats.Max(out)
	return values, float32(lo), float32(hi)
}

// scalarAt derives the requested scalar from one cell's conservative
// state. schlieren is handled separately, over the full density field,
// since it needs neighboring cells.
func scalarAt(q [4]float64, mode FieldMode) float64 {
	rho := q[0] + 1e-9
	u, v := q[1]/rho, q[2]/rho
	p := pressureFromConservative(q[0], q[1], q[2], q[3])

	switch mode {
	case FieldDensity:
		return q[0]
	case FieldPressure:
		return p
	case FieldVelocity:
		return math.Sqrt(u*u + v*v)
	case FieldTemperature:
		return p / (rho * Rgas)
	case FieldMach:
		c := math.Sqrt(Gamma * p / rho)
		return math.Sqrt(u*u+v*v) / c
	case FieldSchlieren:
		return q[0] // placeholder; replaced by schlierenFromDensity
	default:
		return 0
	}
}

// schlierenFromDensity computes log(1 + 10*||grad(rho)||) via central
// differences on interior cells; grid-border cells are zero.
func schlierenFromDensity(g *GridState, density []float64) []float64 {
	nx, ny := g.Nx, g.Ny
	out := make([]float64, nx*ny)
	for j := 1; j < ny-1; j++ {
		for i := 1; i < nx-1; i++ {
			drdx := (density[j*nx+i+1] - density[j*nx+i-1]) / (2 * g.Dx)
			drdy := (density[(j+1)*nx+i] - density[(j-1)*nx+i]) / (2 * g.Dy)
			grad := math.Sqrt(drdx*drdx + drdy*drdy)
			out[j*nx+i] = math.Log(1 + 10*grad)
		}
	}
	return out
}
