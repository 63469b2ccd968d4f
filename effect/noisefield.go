package effect

import (
	"math"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("noise_field", func() render.Effect { return &NoiseField{} })
}

// NoiseField samples seeded value noise directly, with single-octave,
// fractal and turbulence modes. Turbulence renders through the fire
// ramp, everything else through plasma.
//
// Params:
//
//	scale      sampling scale, smaller is denser (default 0.05)
//	octaves    1 to 8 (default 4)
//	lacunarity per-octave frequency multiplier (default 2.0)
//	gain       per-octave amplitude falloff (default 0.5)
//	animate    time scrolling on or off (default true)
//	speed      scroll speed (default 0.5)
//	turbulence absolute-value fold mode (default false)
type NoiseField struct {
	render.NopPrePost
}

type noiseFieldState struct {
	noise      *vmath.ValueNoise
	scale      float64
	octaves    int
	lacunarity float64
	gain       float64
	animate    bool
	speed      float64
	turbulence bool
	aspect     float64
}

func (*NoiseField) Pre(ctx *render.Context, _ *render.Grid) render.State {
	return &noiseFieldState{
		noise:      vmath.NewValueNoise(ctx.Seed),
		scale:      ctx.Params.Float("scale", 0.05),
		octaves:    ctx.Params.Int("octaves", 4),
		lacunarity: ctx.Params.Float("lacunarity", 2.0),
		gain:       ctx.Params.Float("gain", 0.5),
		animate:    ctx.Params.Bool("animate", true),
		speed:      ctx.Params.Float("speed", 0.5),
		turbulence: ctx.Params.Bool("turbulence", false),
		aspect:     ctx.Aspect(),
	}
}

func (*NoiseField) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*noiseFieldState)

	u := float64(x) / float64(ctx.Width) * st.aspect
	v := float64(y) / float64(ctx.Height)

	t := 0.0
	if st.animate {
		t = ctx.Time * st.speed
	}

	nx := u/st.scale + t
	ny := v / st.scale

	var value float64
	switch {
	case st.octaves == 1:
		value = st.noise.Sample(nx, ny)
	case st.turbulence:
		value = st.noise.TurbulenceEx(nx, ny, st.octaves, st.lacunarity, st.gain)
	default:
		value = st.noise.FBMEx(nx, ny, st.octaves, st.lacunarity, st.gain)
	}
	value = vmath.Clamp01(value)

	scheme := "plasma"
	if st.turbulence {
		scheme = "fire"
	}
	colorValue := math.Mod(value+t*0.05, 1.0)

	cell := render.Cell{
		Index: int(vmath.Clamp(value*9, 0, 9)),
		Fg:    palette.SchemeColor(colorValue, scheme),
	}
	return cell, true
}
