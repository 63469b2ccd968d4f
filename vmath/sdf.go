package vmath

import "math"

// Signed distance helpers. Negative inside, positive outside, zero on
// the boundary.

// SDCircle is the distance from (px, py) to a circle of radius r
// centered at (cx, cy).
func SDCircle(px, py, cx, cy, r float64) float64 {
	dx := px - cx
	dy := py - cy
	return math.Sqrt(dx*dx+dy*dy) - r
}

// SDBox is the distance from (px, py) to an axis-aligned box centered
// at (cx, cy) with half extents (hx, hy).
func SDBox(px, py, cx, cy, hx, hy float64) float64 {
	dx := math.Abs(px-cx) - hx
	dy := math.Abs(py-cy) - hy
	ox := math.Max(dx, 0.0)
	oy := math.Max(dy, 0.0)
	outside := math.Sqrt(ox*ox + oy*oy)
	inside := math.Min(math.Max(dx, dy), 0.0)
	return outside + inside
}

// SDRing is the distance from (px, py) to a ring of center radius r and
// half thickness th.
func SDRing(px, py, cx, cy, r, th float64) float64 {
	dx := px - cx
	dy := py - cy
	return math.Abs(math.Sqrt(dx*dx+dy*dy)-r) - th
}

// SmoothUnion blends two distances with smoothing factor k. k <= 0
// degenerates to min.
func SmoothUnion(d1, d2, k float64) float64 {
	if k <= 0.0 {
		return math.Min(d1, d2)
	}
	h := Clamp01(0.5 + 0.5*(d2-d1)/k)
	return Mix(d2, d1, h) - k*h*(1.0-h)
}
