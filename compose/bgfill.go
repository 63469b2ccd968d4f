package compose

import (
	"github.com/lixenwraith/moodgrid/effect"
	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

// Seed offsets keep the background pattern reproducible but
// uncorrelated with the foreground.
const (
	bgSeedOffset   = 0xBF11
	maskSeedOffset = 0xAA
)

// BackgroundSpec is the recipe for the background fill pass: a second
// effect rendered on a temporary grid, optionally transformed, post
// processed and mask-modulated, then colored, dimmed and written into
// cells whose background is still unset.
type BackgroundSpec struct {
	Effect       string
	EffectParams render.Params
	Transforms   []TransformSpec
	PostFX       []PostFXSpec
	Mask         *MaskSpec
	ColorMode    string
	ColorScheme  string
	Warmth       float64
	Saturation   float64
	Dim          float64
}

// FillBackground runs the background pass over g at time t. Only cells
// with an unset background receive one; foreground data is never
// touched. A nil spec is a no-op.
func FillBackground(g *render.Grid, seed int64, spec *BackgroundSpec, t float64) error {
	if spec == nil {
		return nil
	}

	name := spec.Effect
	if name == "" {
		name = "noise_field"
	}
	bgEffect, err := effect.New(name)
	if err != nil {
		return err
	}
	bgEffect, err = WrapTransforms(bgEffect, spec.Transforms)
	if err != nil {
		return err
	}

	w, h := g.Width(), g.Height()
	ctx := render.NewContext(w, h, seed^bgSeedOffset)
	ctx.Time = t
	if spec.EffectParams != nil {
		ctx.Params = spec.EffectParams
	}

	tmp := render.Run(bgEffect, ctx)
	if err := ApplyPostFX(tmp, spec.PostFX, t); err != nil {
		return err
	}

	var maskGrid *render.Grid
	if spec.Mask != nil {
		maskGrid, err = renderMaskGrid(spec.Mask, w, h, ctx)
		if err != nil {
			return err
		}
	}

	dim := spec.Dim
	if dim <= 0 {
		dim = 0.30
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g.At(x, y)
			if c.BgSet {
				continue
			}

			value := vmath.Clamp01(float64(tmp.At(x, y).Index) / 9)
			if maskGrid != nil {
				maskVal := float64(maskGrid.At(x, y).Index) / 9
				value *= 0.3 + 0.7*maskVal
			}

			var rgb render.RGB
			if spec.ColorMode == "continuous" {
				rgb = palette.ContinuousColor(value, spec.Warmth, spec.Saturation)
			} else {
				rgb = palette.SchemeColor(value, spec.ColorScheme)
			}

			r := int(float64(rgb.R) * dim)
			gc := int(float64(rgb.G) * dim)
			b := int(float64(rgb.B) * dim)

			// Tint toward a darkened copy of the foreground so the
			// background never fights the glyph on top of it.
			r = int(float64(r)*0.8 + float64(c.Fg.R>>3)*0.2)
			gc = int(float64(gc)*0.8 + float64(c.Fg.G>>3)*0.2)
			b = int(float64(b)*0.8 + float64(c.Fg.B>>3)*0.2)

			if r+gc+b < 15 {
				r = maxInt(r, 5)
				gc = maxInt(gc, 5)
				b = maxInt(b, 5)
			}

			c.Bg = render.RGB{R: uint8(r), G: uint8(gc), B: uint8(b)}
			c.BgSet = true
			g.Set(x, y, c)
		}
	}
	return nil
}

func renderMaskGrid(spec *MaskSpec, w, h int, parent *render.Context) (*render.Grid, error) {
	mask, err := NewMask(spec.Type)
	if err != nil {
		return nil, err
	}
	ctx := render.NewContext(w, h, parent.Seed^maskSeedOffset)
	ctx.Time = parent.Time
	ctx.Frame = parent.Frame
	ctx.Params = parent.Params.Clone()
	PrefixMaskParams(ctx.Params, spec)
	return render.Run(mask, ctx), nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
