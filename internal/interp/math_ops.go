package interp

import "math"

// floatMod is host-style floating-point remainder (§9 "Numeric edge
// cases": `%` matches math.Mod, not Euclidean modulo).
func floatMod(l, r float64) float64 {
	return math.Mod(l, r)
}

func floatPow(l, r float64) float64 {
	return math.Pow(l, r)
}
