package effect

import (
	"math"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("wave", func() render.Effect { return &Wave{} })
}

// Wave layers horizontal sine bands. Frequencies fan out by 1.4x steps
// and speeds alternate so the bands slide against each other instead of
// locking into a period.
//
// Params:
//
//	wave_count      number of layered waves (default 5)
//	frequency       base spatial frequency (default 0.1)
//	amplitude       per-wave amplitude (default 1.0)
//	speed           base animation speed (default 1.0)
//	color_scheme    ramp name (default ocean)
//	self_warp       displace y by noise before evaluation (default 0)
//	noise_injection blend fractal noise into the field (default 0)
type Wave struct {
	render.NopPrePost
}

type waveState struct {
	count    int
	amp      float64
	freqs    []float64
	speeds   []float64
	scheme   string
	selfWarp float64
	noiseInj float64
	noise    *vmath.ValueNoise
}

func (*Wave) Pre(ctx *render.Context, _ *render.Grid) render.State {
	count := ctx.Params.Int("wave_count", 5)
	if count < 1 {
		count = 1
	}
	baseFreq := ctx.Params.Float("frequency", 0.1)
	baseSpeed := ctx.Params.Float("speed", 1.0)

	// the normalization in Main divides by amp
	amp := ctx.Params.Float("amplitude", 1.0)
	if amp <= 0 {
		amp = 0.01
	}

	st := &waveState{
		count:    count,
		amp:      amp,
		scheme:   ctx.Params.String("color_scheme", "ocean"),
		selfWarp: ctx.Params.Float("self_warp", 0.0),
		noiseInj: ctx.Params.Float("noise_injection", 0.0),
	}
	for i := 0; i < count; i++ {
		st.freqs = append(st.freqs, baseFreq*(1.0+float64(i)*0.4))
		st.speeds = append(st.speeds, baseSpeed*(1.0-float64(i%2)*0.3+float64(i%3)*0.2))
	}
	if st.selfWarp > 0 || st.noiseInj > 0 {
		st.noise = vmath.NewValueNoise(ctx.Seed + 53)
	}
	return st
}

func (*Wave) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*waveState)
	t := ctx.Time

	fy := float64(y)
	if st.selfWarp > 0 {
		u := float64(x) / float64(ctx.Width)
		v := float64(y) / float64(ctx.Height)
		fy += (st.noise.Sample(u*4.0+t*0.1, v*4.0) - 0.5) * st.selfWarp * float64(ctx.Height) * 0.3
	}

	sum := 0.0
	for i := 0; i < st.count; i++ {
		sum += math.Sin(fy*st.freqs[i]+t*st.speeds[i]) * st.amp
	}
	value := (sum/(float64(st.count)*st.amp) + 1.0) / 2.0

	if st.noiseInj > 0 {
		u := float64(x) / float64(ctx.Width)
		v := float64(y) / float64(ctx.Height)
		n := st.noise.FBM(u*5.0+t*0.15, v*5.0, 3)
		value = vmath.Mix(value, n, st.noiseInj)
	}
	value = vmath.Clamp01(value)

	cell := render.Cell{
		Index: int(vmath.Clamp(value*9, 0, 9)),
		Fg:    palette.SchemeColor(value, st.scheme),
	}
	return cell, true
}
