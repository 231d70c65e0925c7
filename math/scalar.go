package math

import "math"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180.0
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180.0 / math.Pi
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mix linearly interpolates between a and b by t.
func Mix(a, b, t float32) float32 {
	return a + (b-a)*t
}

func Sin(v float32) float32  { return float32(math.Sin(float64(v))) }
func Cos(v float32) float32  { return float32(math.Cos(float64(v))) }
func Tan(v float32) float32  { return float32(math.Tan(float64(v))) }
func Sqrt(v float32) float32 { return float32(math.Sqrt(float64(v))) }
func Abs(v float32) float32  { return float32(math.Abs(float64(v))) }
