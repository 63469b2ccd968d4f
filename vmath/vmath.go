// Package vmath provides the shader-style float helpers the effect and
// composition code is written against: clamp, mix, smoothstep, fract and
// friends, plus a reproducible 2D value-noise source.
package vmath

import "math"

const (
	Pi     = math.Pi
	Tau    = math.Pi * 2.0
	HalfPi = math.Pi * 0.5
)

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to the unit interval.
func Clamp01(v float64) float64 {
	return Clamp(v, 0.0, 1.0)
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Mix linearly interpolates between a and b by t (GLSL mix).
func Mix(a, b, t float64) float64 {
	return a*(1.0-t) + b*t
}

// Smoothstep is the Hermite S-curve between edge0 and edge1.
// Zero derivative at both edges.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0.0
		}
		return 1.0
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3.0 - 2.0*t)
}

// Smootherstep is Perlin's improved smoothstep with zero first and second
// derivatives at the edges.
func Smootherstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0.0
		}
		return 1.0
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * t * (t*(t*6.0-15.0) + 10.0)
}

// MapRange remaps v from [inLo, inHi] to [outLo, outHi], clamping to the
// output range.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	t := Clamp01((v - inLo) / (inHi - inLo))
	return outLo + t*(outHi-outLo)
}

// Fract returns the fractional part of v, always in [0, 1).
func Fract(v float64) float64 {
	return v - math.Floor(v)
}

// Triangle is a unit triangle wave: rises 0 to 1 over phase [0,1), falls
// back to 0 over [1,2), period 2. Triangle(0) == 0.
func Triangle(phase float64) float64 {
	p := math.Mod(phase, 2.0)
	if p < 0 {
		p += 2.0
	}
	if p < 1.0 {
		return p
	}
	return 2.0 - p
}
