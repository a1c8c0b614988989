package fluid

import "math"

// near reports whether a and b agree within tol, following the
// teacher's own near() helper pattern used throughout
// model_problems/Euler2D/euler_test.go and DG2D/elements_test.go.
func near(a, b float64, tol float64) bool {
	return math.Abs(a-b) <= tol
}
