package vmath

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-2, 0, 1, 0},
		{3, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestMix(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0, 10, 0.5, 5},
		{-1, 1, 0.25, -0.5},
	}
	for _, tt := range tests {
		if got := Mix(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Mix(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestSmoothstepEdges(t *testing.T) {
	if got := Smoothstep(0, 1, -0.5); got != 0 {
		t.Errorf("below edge0: got %v, want 0", got)
	}
	if got := Smoothstep(0, 1, 1.5); got != 1 {
		t.Errorf("above edge1: got %v, want 1", got)
	}
	if got := Smoothstep(0, 1, 0.5); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("midpoint: got %v, want 0.5", got)
	}
	// Degenerate edge pair behaves as a step.
	if got := Smoothstep(0.5, 0.5, 0.4); got != 0 {
		t.Errorf("degenerate below: got %v, want 0", got)
	}
	if got := Smoothstep(0.5, 0.5, 0.6); got != 1 {
		t.Errorf("degenerate above: got %v, want 1", got)
	}
}

func TestMapRange(t *testing.T) {
	tests := []struct {
		v, inLo, inHi, outLo, outHi, want float64
	}{
		{0, -1, 1, 0, 10, 5},
		{-1, -1, 1, 0, 10, 0},
		{1, -1, 1, 0, 10, 10},
		{2, -1, 1, 0, 10, 10}, // clamps past input range
		{0.5, 0, 1, 1, 8, 4.5},
	}
	for _, tt := range tests {
		if got := MapRange(tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("MapRange(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestFract(t *testing.T) {
	tests := []struct{ v, want float64 }{
		{1.25, 0.25},
		{-0.25, 0.75},
		{3.0, 0.0},
	}
	for _, tt := range tests {
		if got := Fract(tt.v); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Fract(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestTriangle(t *testing.T) {
	tests := []struct{ phase, want float64 }{
		{0, 0},
		{0.5, 0.5},
		{1.0, 1.0},
		{1.5, 0.5},
		{2.0, 0.0},
		{2.5, 0.5},
		{-0.5, 0.5},
	}
	for _, tt := range tests {
		if got := Triangle(tt.phase); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Triangle(%v) = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

func TestValueNoiseDeterministic(t *testing.T) {
	a := NewValueNoise(42)
	b := NewValueNoise(42)
	c := NewValueNoise(7)
	same := true
	differ := false
	for i := 0; i < 32; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.91
		if a.Sample(x, y) != b.Sample(x, y) {
			same = false
		}
		if a.Sample(x, y) != c.Sample(x, y) {
			differ = true
		}
	}
	if !same {
		t.Error("same seed produced different noise fields")
	}
	if !differ {
		t.Error("different seeds produced identical noise fields")
	}
}

func TestValueNoiseRange(t *testing.T) {
	n := NewValueNoise(1)
	for i := 0; i < 200; i++ {
		x := float64(i%20) * 0.613
		y := float64(i/20) * 1.77
		if v := n.Sample(x, y); v < 0 || v > 1 {
			t.Fatalf("Sample(%v, %v) = %v out of [0,1]", x, y, v)
		}
		if v := n.FBM(x, y, 4); v < 0 || v > 1 {
			t.Fatalf("FBM(%v, %v, 4) = %v out of [0,1]", x, y, v)
		}
		if v := n.Turbulence(x, y, 3); v < 0 || v > 1 {
			t.Fatalf("Turbulence(%v, %v, 3) = %v out of [0,1]", x, y, v)
		}
	}
}

func TestValueNoiseContinuity(t *testing.T) {
	n := NewValueNoise(9)
	// Adjacent samples across a lattice boundary should not jump.
	const eps = 1e-4
	for i := 0; i < 10; i++ {
		x := float64(i)
		lo := n.Sample(x-eps, 0.5)
		hi := n.Sample(x+eps, 0.5)
		if math.Abs(lo-hi) > 0.01 {
			t.Errorf("discontinuity at x=%v: %v vs %v", x, lo, hi)
		}
	}
}
