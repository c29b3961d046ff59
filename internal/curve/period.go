package curve

import "math"

// FullTurn is the fallback period used whenever a frequency is zero.
const FullTurn = 2 * math.Pi

// GCD returns the greatest common divisor of |a| and |b|. GCD(0, 0) is 0.
func GCD(a, b int) int {
	a, b = absInt(a), absInt(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of |a| and |b|, or 0 if either is 0.
func LCM(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return absInt(a) / GCD(a, b) * absInt(b)
}

// periodOf returns 2π divided by the gcd of the given frequencies. Any zero
// frequency falls back to a full turn.
func periodOf(freqs ...int) float64 {
	g := 0
	for _, f := range freqs {
		if f == 0 {
			return FullTurn
		}
		g = GCD(g, f)
	}
	if g == 0 {
		return FullTurn
	}
	return FullTurn / float64(g)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
