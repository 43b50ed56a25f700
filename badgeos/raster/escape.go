package raster

const (
	// EscapeBound is the magnitude a component must exceed to count as escaped.
	EscapeBound = 1e20
	// EscapeBudget is the iteration budget used by the fractal.
	EscapeBudget = 0xFE
)

// Escape iterates z' = z*z + c and returns the 0-based index of the first
// iteration whose real or imaginary part leaves [-bound, bound], or budget+1
// when every iteration stays bounded.
func Escape(z, c Point, bound float64, budget int) int {
	re, im := z.Re, z.Im
	for i := 0; i < budget; i++ {
		re, im = re*re+c.Re-im*im, 2*re*im+c.Im
		if re > bound || re < -bound || im > bound || im < -bound {
			return i
		}
	}
	return budget + 1
}
