package effect

import (
	"math"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("plasma", func() render.Effect { return &Plasma{} })
}

// Plasma sums four interference waves: a wave along a slowly rotating
// direction, a radial wave from center, a horizontal/vertical pair, and
// a diagonal-distance wave.
//
// Params:
//
//	frequency       wave density, 0.01 to 0.2 (default 0.05)
//	speed           animation speed (default 1.0)
//	color_phase     hue offset in [0, 1] (default 0)
//	self_warp       warp uv by noise before wave eval (default 0)
//	noise_injection blend fractal noise into the field (default 0)
type Plasma struct {
	render.NopPrePost
}

type plasmaState struct {
	freq       float64
	speed      float64
	colorPhase float64
	selfWarp   float64
	noiseInj   float64
	aspect     float64
	noise      *vmath.ValueNoise
}

func (*Plasma) Pre(ctx *render.Context, _ *render.Grid) render.State {
	st := &plasmaState{
		freq:       ctx.Params.Float("frequency", 0.05),
		speed:      ctx.Params.Float("speed", 1.0),
		colorPhase: ctx.Params.Float("color_phase", 0.0),
		selfWarp:   ctx.Params.Float("self_warp", 0.0),
		noiseInj:   ctx.Params.Float("noise_injection", 0.0),
		aspect:     ctx.Aspect(),
	}
	if st.selfWarp > 0 || st.noiseInj > 0 {
		st.noise = vmath.NewValueNoise(ctx.Seed + 31)
	}
	return st
}

func (*Plasma) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*plasmaState)
	t := ctx.Time * st.speed

	u := float64(x) / float64(ctx.Width) * st.aspect
	v := float64(y) / float64(ctx.Height)

	// Structural variants displace the sampling point before any wave
	// is evaluated.
	if st.selfWarp > 0 {
		u += (st.noise.Sample(u*3.0, v*3.0+t*0.2) - 0.5) * st.selfWarp
		v += (st.noise.Sample(u*3.0+50.0, v*3.0+t*0.2) - 0.5) * st.selfWarp
	}

	dirX := math.Sin(t * 0.3)
	dirY := math.Cos(t * 0.5)
	v1 := math.Sin((u*dirX+v*dirY)*10.0*st.freq + t)

	cx := 0.5 * st.aspect
	dx := u - cx
	dy := v - 0.5
	v2 := math.Cos(math.Sqrt(dx*dx+dy*dy)*40.0*st.freq + t*0.7)

	v3 := (math.Sin(u*10.0*st.freq+t) + math.Sin(v*13.0*st.freq+t*0.7)) / 2.0

	v4 := math.Sin(math.Sqrt(u*u+v*v)*15.0*st.freq + t*1.2)

	value := ((v1+v2+v3+v4)/4.0 + 1.0) / 2.0

	if st.noiseInj > 0 {
		n := st.noise.FBM(u*4.0+t*0.1, v*4.0, 3)
		value = vmath.Mix(value, n, st.noiseInj)
	}
	value = vmath.Clamp01(value)

	colorValue := math.Mod(value+t*0.05+st.colorPhase, 1.0)
	cell := render.Cell{
		Index: int(vmath.Clamp(value*9, 0, 9)),
		Fg:    palette.SchemeColor(colorValue, "plasma"),
	}
	return cell, true
}
