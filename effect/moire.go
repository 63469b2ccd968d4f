package effect

import (
	"math"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("moire", func() render.Effect { return &Moire{} })
}

// Moire multiplies two radial angle waves with different frequencies,
// producing classic interference fringes that rotate over time.
//
// Params:
//
//	freq_a, freq_b     radial frequencies (defaults 8, 13)
//	speed_a, speed_b   rotation speeds (defaults 0.5, -0.3)
//	offset_a, offset_b horizontal center offsets (defaults 0)
//	distortion         polar noise warp amount (default 0)
//	multi_center       number of wave centers, 1 to 4 (default 1)
//	warmth, saturation continuous color when warmth is present
//	color_scheme       ramp fallback (default rainbow)
type Moire struct {
	render.NopPrePost
}

type moireState struct {
	freqA, freqB       float64
	speedA, speedB     float64
	centerAX, centerBX float64
	scheme             string
	warmth, satur      float64
	useWarmth          bool
	distortion         float64
	noise              *vmath.ValueNoise
	centers            [][2]float64
}

func (*Moire) Pre(ctx *render.Context, _ *render.Grid) render.State {
	st := &moireState{
		freqA:    ctx.Params.Float("freq_a", 8.0),
		freqB:    ctx.Params.Float("freq_b", 13.0),
		speedA:   ctx.Params.Float("speed_a", 0.5),
		speedB:   ctx.Params.Float("speed_b", -0.3),
		centerAX: 0.5 + ctx.Params.Float("offset_a", 0.0),
		centerBX: 0.5 + ctx.Params.Float("offset_b", 0.0),
		scheme:   ctx.Params.String("color_scheme", "rainbow"),
	}
	st.warmth, st.useWarmth = ctx.Params.FloatOk("warmth")
	st.satur = ctx.Params.Float("saturation", 1.0)

	st.distortion = ctx.Params.Float("distortion", 0.0)
	if st.distortion > 0 {
		st.noise = vmath.NewValueNoise(ctx.Seed + 77)
	}

	multi := ctx.Params.Int("multi_center", 1)
	if multi > 1 {
		for ci := 0; ci < multi; ci++ {
			angle := float64(ci) * (vmath.Tau / float64(multi))
			st.centers = append(st.centers, [2]float64{
				0.5 + 0.2*math.Cos(angle),
				0.5 + 0.2*math.Sin(angle),
			})
		}
	}
	return st
}

func (*Moire) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*moireState)
	t := ctx.Time

	u := float64(x) / float64(ctx.Width)
	v := float64(y) / float64(ctx.Height)

	var interference float64
	if len(st.centers) > 0 {
		for ci, c := range st.centers {
			angle := math.Atan2(v-c[1], u-c[0])
			if st.noise != nil {
				angle += (st.noise.Sample(u*4.0+float64(ci)*10.0, v*4.0) - 0.5) * st.distortion * 2.0
			}
			interference += math.Cos(angle*st.freqA + t*st.speedA + float64(ci)*1.7)
		}
		interference /= float64(len(st.centers))

		angleB := math.Atan2(v-0.5, u-st.centerBX)
		if st.noise != nil {
			angleB += (st.noise.Sample(u*4.0+50.0, v*4.0+50.0) - 0.5) * st.distortion * 2.0
		}
		interference *= math.Cos(angleB*st.freqB + t*st.speedB)
	} else {
		angleA := math.Atan2(v-0.5, u-st.centerAX)
		angleB := math.Atan2(v-0.5, u-st.centerBX)
		if st.noise != nil {
			angleA += (st.noise.Sample(u*4.0, v*4.0) - 0.5) * st.distortion * 2.0
			angleB += (st.noise.Sample(u*4.0+50.0, v*4.0+50.0) - 0.5) * st.distortion * 2.0
		}
		waveA := math.Cos(angleA*st.freqA + t*st.speedA)
		waveB := math.Cos(angleB*st.freqB + t*st.speedB)
		interference = waveA * waveB
	}

	value := vmath.Clamp01((interference + 1.0) / 2.0)

	var fg render.RGB
	if st.useWarmth {
		fg = palette.ContinuousColor(value, st.warmth, st.satur)
	} else {
		fg = palette.SchemeColor(value, st.scheme)
	}
	cell := render.Cell{
		Index: int(vmath.Clamp(value*9, 0, 9)),
		Fg:    fg,
	}
	return cell, true
}
