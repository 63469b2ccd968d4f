package vmath

import (
	"math"
	"math/rand"
)

const permSize = 256

// ValueNoise is seeded 2D value noise. The same seed always yields the
// same field, independent of sampling order.
type ValueNoise struct {
	perm   [permSize * 2]int
	values [permSize]float64
}

// NewValueNoise builds a noise source from seed.
func NewValueNoise(seed int64) *ValueNoise {
	rng := rand.New(rand.NewSource(seed))
	n := &ValueNoise{}
	for i := 0; i < permSize; i++ {
		n.perm[i] = i
	}
	rng.Shuffle(permSize, func(i, j int) {
		n.perm[i], n.perm[j] = n.perm[j], n.perm[i]
	})
	// Doubled table avoids index wrapping on lookup.
	for i := 0; i < permSize; i++ {
		n.perm[permSize+i] = n.perm[i]
	}
	for i := 0; i < permSize; i++ {
		n.values[i] = rng.Float64()
	}
	return n
}

func (n *ValueNoise) lattice(xi, yi int) float64 {
	h := n.perm[n.perm[xi&(permSize-1)]+(yi&(permSize-1))]
	return n.values[h&(permSize-1)]
}

// Sample returns smoothly interpolated noise in [0, 1] at (x, y).
func (n *ValueNoise) Sample(x, y float64) float64 {
	xi := int(math.Floor(x))
	yi := int(math.Floor(y))
	fx := x - math.Floor(x)
	fy := y - math.Floor(y)

	ux := fx * fx * (3.0 - 2.0*fx)
	uy := fy * fy * (3.0 - 2.0*fy)

	v00 := n.lattice(xi, yi)
	v10 := n.lattice(xi+1, yi)
	v01 := n.lattice(xi, yi+1)
	v11 := n.lattice(xi+1, yi+1)

	top := Mix(v00, v10, ux)
	bot := Mix(v01, v11, ux)
	return Mix(top, bot, uy)
}

// FBM sums octaves of Sample with per-octave lacunarity 2 and gain 0.5,
// normalized back into [0, 1].
func (n *ValueNoise) FBM(x, y float64, octaves int) float64 {
	return n.FBMEx(x, y, octaves, 2.0, 0.5)
}

// FBMEx is FBM with explicit frequency multiplier (lacunarity) and
// amplitude falloff (gain) per octave.
func (n *ValueNoise) FBMEx(x, y float64, octaves int, lacunarity, gain float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	total := 0.0
	amp := 1.0
	freq := 1.0
	maxAmp := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Sample(x*freq, y*freq) * amp
		maxAmp += amp
		amp *= gain
		freq *= lacunarity
	}
	if maxAmp <= 0 {
		return 0
	}
	return total / maxAmp
}

// Turbulence is FBM over |2*sample-1|, giving a billowy absolute-value
// fold. Result in [0, 1].
func (n *ValueNoise) Turbulence(x, y float64, octaves int) float64 {
	return n.TurbulenceEx(x, y, octaves, 2.0, 0.5)
}

// TurbulenceEx is Turbulence with explicit lacunarity and gain.
func (n *ValueNoise) TurbulenceEx(x, y float64, octaves int, lacunarity, gain float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	total := 0.0
	amp := 1.0
	freq := 1.0
	maxAmp := 0.0
	for i := 0; i < octaves; i++ {
		total += math.Abs(2.0*n.Sample(x*freq, y*freq)-1.0) * amp
		maxAmp += amp
		amp *= gain
		freq *= lacunarity
	}
	if maxAmp <= 0 {
		return 0
	}
	return total / maxAmp
}
