package effect

import (
	"math"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("sdf_shapes", func() render.Effect { return &SDFShapes{} })
}

// SDFShapes scatters circles or boxes and merges their distance fields
// with a smooth union, so nearby shapes fuse organically. Shape
// placement draws from the context Rng in Pre, which keeps a frame
// reproducible per seed.
//
// Params:
//
//	shape_count number of shapes (default 5)
//	shape_type  "circle" or "box" (default circle)
//	radius_min  minimum shape radius (default 0.05)
//	radius_max  maximum shape radius (default 0.15)
//	smoothness  union blending factor (default 0.1)
//	animate     orbit shapes over time (default true)
//	speed       orbit speed (default 1.0)
type SDFShapes struct {
	render.NopPrePost
}

type sdfShape struct {
	cx, cy float64
	radius float64
	phase  float64
}

type sdfState struct {
	shapes     []sdfShape
	box        bool
	smoothness float64
	animate    bool
	speed      float64
	aspect     float64
}

func (*SDFShapes) Pre(ctx *render.Context, _ *render.Grid) render.State {
	count := ctx.Params.Int("shape_count", 5)
	if count < 1 {
		count = 1
	}
	radiusMin := ctx.Params.Float("radius_min", 0.05)
	radiusMax := ctx.Params.Float("radius_max", 0.15)

	st := &sdfState{
		box:        ctx.Params.String("shape_type", "circle") == "box",
		smoothness: ctx.Params.Float("smoothness", 0.1),
		animate:    ctx.Params.Bool("animate", true),
		speed:      ctx.Params.Float("speed", 1.0),
		aspect:     ctx.Aspect(),
	}
	for i := 0; i < count; i++ {
		st.shapes = append(st.shapes, sdfShape{
			cx:     0.2 + ctx.Rng.Float64()*0.6,
			cy:     0.2 + ctx.Rng.Float64()*0.6,
			radius: radiusMin + ctx.Rng.Float64()*(radiusMax-radiusMin),
			phase:  ctx.Rng.Float64() * vmath.Tau,
		})
	}
	return st
}

func (*SDFShapes) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*sdfState)

	u := float64(x) / float64(ctx.Width) * st.aspect
	v := float64(y) / float64(ctx.Height)

	t := 0.0
	if st.animate {
		t = ctx.Time * st.speed
	}

	// Seed the union with the first shape; SmoothUnion is not defined
	// for an infinite operand.
	d := 0.0
	for i, sh := range st.shapes {
		cx, cy := sh.cx, sh.cy
		if st.animate {
			cx += math.Sin(t+sh.phase) * 0.1
			cy += math.Cos(t*0.7+sh.phase) * 0.1
		}

		var ds float64
		if st.box {
			ds = vmath.SDBox(u, v, cx, cy, sh.radius, sh.radius)
		} else {
			ds = vmath.SDCircle(u, v, cx, cy, sh.radius)
		}
		if i == 0 {
			d = ds
		} else {
			d = vmath.SmoothUnion(d, ds, st.smoothness)
		}
	}

	// Inside maps to 1, outside falls off over a fixed transition band.
	value := vmath.Clamp01(1.0 - d*5.0)

	colorValue := math.Mod(value+t*0.05, 1.0)
	cell := render.Cell{
		Index: int(vmath.Clamp(value*9, 0, 9)),
		Fg:    palette.SchemeColor(colorValue, "plasma"),
	}
	return cell, true
}
