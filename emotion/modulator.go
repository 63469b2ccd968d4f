package emotion

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/moodgrid/vmath"
)

// Modulator drifts a single value over time with fractal noise:
// base + amplitude * (2*fbm(t*frequency) - 1). The seed fixes both the
// noise field and a phase offset, so two modulators with the same seed
// trace the same curve.
type Modulator struct {
	Base      float64
	Amplitude float64
	Frequency float64

	hasMin, hasMax bool
	min, max       float64

	noise  *vmath.ValueNoise
	offset float64
}

// NewModulator builds a modulator around base.
func NewModulator(base, amplitude, frequency float64, seed int64) *Modulator {
	return &Modulator{
		Base:      base,
		Amplitude: amplitude,
		Frequency: frequency,
		noise:     vmath.NewValueNoise(seed),
		offset:    rand.New(rand.NewSource(seed)).Float64() * 1000.0,
	}
}

// ClampTo bounds the modulator output.
func (m *Modulator) ClampTo(min, max float64) *Modulator {
	m.hasMin, m.min = true, min
	m.hasMax, m.max = true, max
	return m
}

// Sample returns the drifted value at time t.
func (m *Modulator) Sample(t float64) float64 {
	n := m.noise.FBM((t+m.offset)*m.Frequency, m.offset, 3)
	result := m.Base + (n*2.0-1.0)*m.Amplitude
	if m.hasMin && result < m.min {
		result = m.min
	}
	if m.hasMax && result > m.max {
		result = m.max
	}
	return result
}

// Sample2D drifts by position as well as time, with one warp layer so
// the spatial variation reads organic rather than gridded.
func (m *Modulator) Sample2D(x, y, t float64) float64 {
	warpX := m.noise.Sample(x*0.3+m.offset, t*0.05) * 2.0
	warpY := m.noise.Sample(y*0.3+m.offset+100, t*0.05) * 2.0

	n := m.noise.FBM((x+warpX)*m.Frequency, (y+warpY)*m.Frequency+t*0.1, 4)
	result := m.Base + (n*2.0-1.0)*m.Amplitude
	if m.hasMin && result < m.min {
		result = m.min
	}
	if m.hasMax && result > m.max {
		result = m.max
	}
	return result
}

// Drift applies noise modulation to a visual parameter map, returning a
// new map. Parameters drift proportionally to their own magnitude, so
// small values wobble gently and large ones swing wider. Values in the
// unit interval stay there; other non-negative values stay non-negative.
//
// Parameters are visited in ParamOrder, which fixes the noise offset
// each one sees. drift 0 returns the values unchanged apart from the
// integer rounding of integral parameters.
func Drift(params map[string]float64, t, drift float64, seed int64) map[string]float64 {
	noise := vmath.NewValueNoise(seed)
	out := make(map[string]float64, len(params))

	offset := 0
	for _, key := range ParamOrder {
		value, ok := params[key]
		if !ok {
			continue
		}
		offset++
		n := noise.FBM(t*0.1+float64(offset)*7.3, float64(offset)*13.7, 2)
		dev := (n*2.0 - 1.0) * drift

		if intParams[key] {
			mod := value + dev*math.Max(1, math.Abs(value)*0.3)
			r := math.Round(mod)
			if r < 1 {
				r = 1
			}
			out[key] = r
			continue
		}

		mod := value + dev*math.Abs(value)*0.5
		if value >= 0.0 && value <= 1.0 {
			mod = vmath.Clamp01(mod)
		} else if value >= 0 {
			mod = math.Max(0.0, mod)
		}
		out[key] = mod
	}

	// Parameters outside the canonical order pass through untouched.
	for key, value := range params {
		if _, done := out[key]; !done {
			out[key] = value
		}
	}
	return out
}
