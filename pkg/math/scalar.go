package math

import "math"

// Pi and TwoPi as float32.
const (
	Pi     = float32(math.Pi)
	TwoPi  = float32(2 * math.Pi)
	HalfPi = float32(math.Pi / 2)
)

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// WrapAngle maps any angle into [0, 2π).
func WrapAngle(a float32) float32 {
	w := math.Mod(float64(a), 2*math.Pi)
	if w < 0 {
		w += 2 * math.Pi
	}
	r := float32(w)
	// float32 rounding can land exactly on 2π.
	if r >= TwoPi {
		r = 0
	}
	return r
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * Pi / 180
}

// Sin and Cos are float32 shorthands.
func Sin(a float32) float32 { return float32(math.Sin(float64(a))) }
func Cos(a float32) float32 { return float32(math.Cos(float64(a))) }

// Sqrt returns the float32 square root.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Abs returns |x|.
func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
