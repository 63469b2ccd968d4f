package effect

import (
	"math"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("ten_print", func() render.Effect { return &TenPrint{} })
}

// TenPrint draws the Commodore 64 one-liner maze: a grid of cells each
// holding a / or \ diagonal, chosen by seeded noise so the choice is
// stable per cell, with the columns sliding over time.
//
// Params:
//
//	cell_size   grid cell size in pixels (default 6)
//	probability backslash bias (default 0.5)
//	speed       column scroll speed (default 1.0)
type TenPrint struct {
	render.NopPrePost
}

type tenPrintState struct {
	cellSize      float64
	probability   float64
	speed         float64
	noise         *vmath.ValueNoise
	warmth, satur float64
	useWarmth     bool
}

func (*TenPrint) Pre(ctx *render.Context, _ *render.Grid) render.State {
	st := &tenPrintState{
		cellSize:    float64(ctx.Params.Int("cell_size", 6)),
		probability: ctx.Params.Float("probability", 0.5),
		speed:       ctx.Params.Float("speed", 1.0),
		noise:       vmath.NewValueNoise(ctx.Seed),
	}
	if st.cellSize < 1 {
		st.cellSize = 1
	}
	st.warmth, st.useWarmth = ctx.Params.FloatOk("warmth")
	st.satur = ctx.Params.Float("saturation", 1.0)
	return st
}

func (*TenPrint) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*tenPrintState)
	t := ctx.Time * st.speed

	shift := t * st.cellSize * 0.5
	cx := math.Floor((float64(x) + shift) / st.cellSize)
	cy := math.Floor(float64(y) / st.cellSize)

	lx := vmath.Fract((float64(x) + shift) / st.cellSize)
	ly := vmath.Fract(float64(y) / st.cellSize)

	// Noise-hashed diagonal choice: stable per cell, spatially smooth.
	isBackslash := st.noise.Sample(cx*0.73, cy*0.91) < st.probability

	var dist float64
	if isBackslash {
		dist = math.Abs(lx - ly)
	} else {
		dist = math.Abs(lx + ly - 1.0)
	}
	dist = vmath.Clamp01(dist * 1.414)

	value := 1.0 - dist
	value = value * value * value

	colorValue := vmath.Fract(value*0.8 + (cx+cy)*0.05 + t*0.02)
	var fg render.RGB
	if st.useWarmth {
		fg = palette.ContinuousColor(colorValue, st.warmth, st.satur)
	} else {
		fg = palette.SchemeColor(colorValue, "matrix")
	}

	cell := render.Cell{
		Index: int(vmath.Clamp(value*9, 0, 9)),
		Fg:    fg,
	}
	return cell, true
}
