package effect

import (
	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("wobbly", func() render.Effect { return &Wobbly{} })
}

// Wobbly is iterative domain warping: each iteration displaces the
// sampling point by two independent noise fields, then a final fractal
// sample reads the warped position.
//
// Params:
//
//	warp_amount displacement per iteration (default 0.4)
//	warp_freq   coordinate scale (default 0.03)
//	iterations  1 to 3 (default 2)
//	speed       drift speed (default 0.5)
type Wobbly struct {
	render.NopPrePost
}

type wobblyState struct {
	warpAmount    float64
	warpFreq      float64
	iterations    int
	speed         float64
	noiseX        *vmath.ValueNoise
	noiseY        *vmath.ValueNoise
	noiseFinal    *vmath.ValueNoise
	warmth, satur float64
	useWarmth     bool
}

func (*Wobbly) Pre(ctx *render.Context, _ *render.Grid) render.State {
	st := &wobblyState{
		warpAmount: ctx.Params.Float("warp_amount", 0.4),
		warpFreq:   ctx.Params.Float("warp_freq", 0.03),
		iterations: vmath.ClampInt(ctx.Params.Int("iterations", 2), 1, 3),
		speed:      ctx.Params.Float("speed", 0.5),
		noiseX:     vmath.NewValueNoise(ctx.Seed),
		noiseY:     vmath.NewValueNoise(ctx.Seed + 137),
		noiseFinal: vmath.NewValueNoise(ctx.Seed + 293),
	}
	st.warmth, st.useWarmth = ctx.Params.FloatOk("warmth")
	st.satur = ctx.Params.Float("saturation", 1.0)
	return st
}

func (*Wobbly) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*wobblyState)
	t := ctx.Time * st.speed

	px := float64(x) * st.warpFreq
	py := float64(y) * st.warpFreq

	for i := 0; i < st.iterations; i++ {
		fi := float64(i)
		tOffX := t*0.7 + fi*1.7
		tOffY := t*0.5 + fi*2.3

		dx := st.noiseX.Sample(px+tOffX, py+10.0*fi)*2.0 - 1.0
		dy := st.noiseY.Sample(px+10.0*fi, py+tOffY)*2.0 - 1.0

		px += dx * st.warpAmount
		py += dy * st.warpAmount
	}

	value := vmath.Clamp01(st.noiseFinal.FBM(px+t*0.1, py+t*0.13, 3))

	colorValue := vmath.Fract(value + t*0.04)
	var fg render.RGB
	if st.useWarmth {
		fg = palette.ContinuousColor(colorValue, st.warmth, st.satur)
	} else {
		fg = palette.SchemeColor(colorValue, "ocean")
	}

	cell := render.Cell{
		Index: int(vmath.Clamp(value*9, 0, 9)),
		Fg:    fg,
	}
	return cell, true
}
