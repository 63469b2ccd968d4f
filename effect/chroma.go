package effect

import (
	"math"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("chroma_spiral", func() render.Effect { return &ChromaSpiral{} })
}

// ChromaSpiral renders a polar spiral with per-channel chromatic
// offsets: red samples slightly outward, blue slightly inward, so the
// arm edges fringe into color.
//
// Params:
//
//	arms          spiral arm count (default 3)
//	tightness     winding density (default 0.5)
//	speed         rotation speed (default 1.0)
//	chroma_offset channel separation (default 0.1)
//	distortion    polar noise warp (default 0)
//	multi_center  spiral center count, 1 to 4 (default 1)
type ChromaSpiral struct {
	render.NopPrePost
}

type chromaState struct {
	arms          int
	tightness     float64
	speed         float64
	chromaOffset  float64
	warmth, satur float64
	useWarmth     bool
	distortion    float64
	noise         *vmath.ValueNoise
	centers       [][2]float64
}

func (*ChromaSpiral) Pre(ctx *render.Context, _ *render.Grid) render.State {
	st := &chromaState{
		arms:         ctx.Params.Int("arms", 3),
		tightness:    ctx.Params.Float("tightness", 0.5),
		speed:        ctx.Params.Float("speed", 1.0),
		chromaOffset: ctx.Params.Float("chroma_offset", 0.1),
	}
	if st.arms < 1 {
		st.arms = 1
	}
	st.warmth, st.useWarmth = ctx.Params.FloatOk("warmth")
	st.satur = ctx.Params.Float("saturation", 1.0)

	st.distortion = ctx.Params.Float("distortion", 0.0)
	if st.distortion > 0 {
		st.noise = vmath.NewValueNoise(ctx.Seed + 88)
	}

	cx := float64(ctx.Width) / 2.0
	cy := float64(ctx.Height) / 2.0
	multi := ctx.Params.Int("multi_center", 1)
	if multi > 1 {
		for ci := 0; ci < multi; ci++ {
			angle := float64(ci) * (vmath.Tau / float64(multi))
			st.centers = append(st.centers, [2]float64{
				cx + float64(ctx.Width)*0.15*math.Cos(angle),
				cy + float64(ctx.Height)*0.15*math.Sin(angle),
			})
		}
	} else {
		st.centers = [][2]float64{{cx, cy}}
	}
	return st
}

func (st *chromaState) spiral(normRadius, angle, t, rOff, aOff, phase float64) float64 {
	r := normRadius + rOff
	a := angle + aOff
	v := vmath.Fract(a/vmath.Tau*float64(st.arms) + r*st.tightness*10.0 + t + phase)
	// Hermite curve sharpens the arm edges.
	return v * v * (3.0 - 2.0*v)
}

func (*ChromaSpiral) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*chromaState)
	t := ctx.Time * st.speed

	maxRadius := math.Min(float64(ctx.Width), float64(ctx.Height)) / 2.0
	u := float64(x) / float64(ctx.Width)
	v := float64(y) / float64(ctx.Height)

	var rVal, gVal, bVal float64
	for ci, c := range st.centers {
		dx := float64(x) - c[0]
		dy := float64(y) - c[1]
		angle := math.Atan2(dy, dx)
		normRadius := 0.0
		if maxRadius > 0 {
			normRadius = math.Sqrt(dx*dx+dy*dy) / maxRadius
		}

		if st.noise != nil {
			angle += (st.noise.Sample(u*4.0+float64(ci)*10.0, v*4.0) - 0.5) * st.distortion * 2.0
			normRadius += (st.noise.Sample(u*4.0+float64(ci)*10.0+50.0, v*4.0+50.0) - 0.5) * st.distortion * 0.3
		}

		phase := float64(ci) * 0.7
		if len(st.centers) == 1 {
			phase = 0
		}
		rVal += st.spiral(normRadius, angle, t, st.chromaOffset, st.chromaOffset*0.5, phase)
		gVal += st.spiral(normRadius, angle, t, 0, 0, phase)
		bVal += st.spiral(normRadius, angle, t, -st.chromaOffset, -st.chromaOffset*0.5, phase)
	}
	n := float64(len(st.centers))
	rVal /= n
	gVal /= n
	bVal /= n

	avg := (rVal + gVal + bVal) / 3.0
	cell := render.Cell{Index: int(vmath.Clamp(avg*9, 0, 9))}

	if st.useWarmth {
		colorValue := vmath.Fract(avg + t*0.05)
		cell.Fg = palette.ContinuousColor(colorValue, st.warmth, st.satur)
	} else {
		cell.Fg = render.RGB{
			R: uint8(vmath.Clamp(rVal*255, 0, 255)),
			G: uint8(vmath.Clamp(gVal*255, 0, 255)),
			B: uint8(vmath.Clamp(bVal*255, 0, 255)),
		}
	}
	return cell, true
}
