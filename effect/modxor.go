package effect

import (
	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

func init() {
	Register("mod_xor", func() render.Effect { return &ModXor{} })
}

// ModXor folds integer coordinates through a bitwise operation and a
// modulus, which yields self-similar Sierpinski-style textures. Layers
// stack the pattern at shifted moduli.
//
// Params:
//
//	modulus    2 to 64 (default 16)
//	operation  "xor", "and" or "or" (default xor)
//	layers     1 to 3 (default 1)
//	speed      scroll speed (default 0.5)
//	zoom       zoom factor around center (default 1.0)
type ModXor struct {
	render.NopPrePost
}

type modXorState struct {
	modulus       int
	op            func(a, b int) int
	layers        int
	speed         float64
	zoom          float64
	warmth, satur float64
	useWarmth     bool
}

func (*ModXor) Pre(ctx *render.Context, _ *render.Grid) render.State {
	st := &modXorState{
		modulus: ctx.Params.Int("modulus", 16),
		layers:  ctx.Params.Int("layers", 1),
		speed:   ctx.Params.Float("speed", 0.5),
		zoom:    ctx.Params.Float("zoom", 1.0),
	}
	if st.modulus < 2 {
		st.modulus = 2
	}
	st.layers = vmath.ClampInt(st.layers, 1, 3)

	switch ctx.Params.String("operation", "xor") {
	case "and":
		st.op = func(a, b int) int { return a & b }
	case "or":
		st.op = func(a, b int) int { return a | b }
	default:
		st.op = func(a, b int) int { return a ^ b }
	}

	st.warmth, st.useWarmth = ctx.Params.FloatOk("warmth")
	st.satur = ctx.Params.Float("saturation", 1.0)
	return st
}

func (*ModXor) Main(x, y int, ctx *render.Context, s render.State) (render.Cell, bool) {
	st := s.(*modXorState)
	t := ctx.Time * st.speed

	cx := float64(ctx.Width) / 2.0
	cy := float64(ctx.Height) / 2.0
	sx := int((float64(x)-cx)/st.zoom + cx + t*5.0)
	sy := int((float64(y)-cy)/st.zoom + cy + t*3.0)

	total := 0.0
	for layer := 0; layer < st.layers; layer++ {
		layerMod := st.modulus + layer*7
		if layerMod < 2 {
			layerMod = 2
		}
		lx := abs(sx + layer*17)
		ly := abs(sy + layer*13)

		result := st.op(lx, ly) % layerMod
		total += float64(result) / float64(layerMod-1)
	}
	value := vmath.Clamp01(total / float64(st.layers))

	colorValue := vmath.Fract(value + t*0.03)
	var fg render.RGB
	if st.useWarmth {
		fg = palette.ContinuousColor(colorValue, st.warmth, st.satur)
	} else {
		fg = palette.SchemeColor(colorValue, "rainbow")
	}

	cell := render.Cell{
		Index: int(vmath.Clamp(value*9, 0, 9)),
		Fg:    fg,
	}
	return cell, true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
