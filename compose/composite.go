package compose

import (
	"fmt"

	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

// BlendMode selects how a composite combines the colors of its two
// operand effects before the mix ratio is applied.
type BlendMode int

const (
	BlendAdd BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendOverlay
)

// ParseBlendMode maps a mode name to its BlendMode. Unknown names are
// configuration errors.
func ParseBlendMode(name string) (BlendMode, error) {
	switch name {
	case "add":
		return BlendAdd, nil
	case "multiply":
		return BlendMultiply, nil
	case "screen":
		return BlendScreen, nil
	case "overlay":
		return BlendOverlay, nil
	}
	return 0, fmt.Errorf("compose: unknown blend mode %q", name)
}

func (m BlendMode) String() string {
	switch m {
	case BlendAdd:
		return "add"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendOverlay:
		return "overlay"
	}
	return "add"
}

func (m BlendMode) blend(a, b render.RGB) render.RGB {
	switch m {
	case BlendMultiply:
		return render.Multiply(a, b)
	case BlendScreen:
		return render.Screen(a, b)
	case BlendOverlay:
		return render.Overlay(a, b)
	}
	return render.Add(a, b)
}

func lerpIndex(a, b int, t float64) int {
	return int(float64(a)*(1-t) + float64(b)*t)
}

func lerpBg(a, b render.Cell, t float64) (render.RGB, bool) {
	switch {
	case a.BgSet && b.BgSet:
		return render.Lerp(a.Bg, b.Bg, t), true
	case a.BgSet:
		return a.Bg, true
	case b.BgSet:
		return b.Bg, true
	}
	return render.RGB{}, false
}

func isComposite(e render.Effect) bool {
	switch e.(type) {
	case *Composite, *MaskedComposite:
		return true
	}
	return false
}

// Composite blends two effects per pixel. The operand colors are
// combined with the blend mode, then the result is interpolated from
// the first operand by the mix ratio. Mix 0 yields the first effect
// unchanged.
type Composite struct {
	a, b render.Effect
	mode BlendMode
	mix  float64
}

type compositeState struct {
	a, b render.State
}

// NewComposite builds a blended composite of a and b. Mix is clamped
// to [0,1]. Composites do not nest.
func NewComposite(a, b render.Effect, mode BlendMode, mix float64) (*Composite, error) {
	if isComposite(a) || isComposite(b) {
		return nil, fmt.Errorf("compose: composites cannot nest")
	}
	return &Composite{a: a, b: b, mode: mode, mix: vmath.Clamp01(mix)}, nil
}

func (c *Composite) Pre(ctx *render.Context, g *render.Grid) render.State {
	return &compositeState{a: c.a.Pre(ctx, g), b: c.b.Pre(ctx, g)}
}

func (c *Composite) Main(x, y int, ctx *render.Context, st render.State) (render.Cell, bool) {
	cs := st.(*compositeState)
	ca, okA := c.a.Main(x, y, ctx, cs.a)
	cb, okB := c.b.Main(x, y, ctx, cs.b)
	if !okA {
		return cb, okB
	}
	if !okB {
		return ca, true
	}

	blended := c.mode.blend(ca.Fg, cb.Fg)
	out := render.Cell{
		Index: lerpIndex(ca.Index, cb.Index, c.mix),
		Fg:    render.Lerp(ca.Fg, blended, c.mix),
	}
	out.Bg, out.BgSet = lerpBg(ca, cb, c.mix)
	return out, true
}

func (c *Composite) Post(ctx *render.Context, g *render.Grid, st render.State) {
	cs := st.(*compositeState)
	c.a.Post(ctx, g, cs.a)
	c.b.Post(ctx, g, cs.b)
}

// MaskedComposite blends two effects through a third mask effect. The
// mask's intensity index, normalized to [0,1], is the per-pixel mix
// weight: 0 selects the first effect, 1 the second, interior values
// interpolate colors and indices linearly.
type MaskedComposite struct {
	a, b, mask render.Effect
}

type maskedState struct {
	a, b, mask render.State
}

// NewMaskedComposite builds a mask-weighted composite. Composites do
// not nest; the mask may be any effect producing intensity indices.
func NewMaskedComposite(a, b, mask render.Effect) (*MaskedComposite, error) {
	if isComposite(a) || isComposite(b) || isComposite(mask) {
		return nil, fmt.Errorf("compose: composites cannot nest")
	}
	return &MaskedComposite{a: a, b: b, mask: mask}, nil
}

func (m *MaskedComposite) Pre(ctx *render.Context, g *render.Grid) render.State {
	return &maskedState{
		a:    m.a.Pre(ctx, g),
		b:    m.b.Pre(ctx, g),
		mask: m.mask.Pre(ctx, g),
	}
}

func (m *MaskedComposite) Main(x, y int, ctx *render.Context, st render.State) (render.Cell, bool) {
	ms := st.(*maskedState)
	ca, okA := m.a.Main(x, y, ctx, ms.a)
	cb, okB := m.b.Main(x, y, ctx, ms.b)
	if !okA {
		return cb, okB
	}
	if !okB {
		return ca, true
	}

	w := 0.0
	if mc, ok := m.mask.Main(x, y, ctx, ms.mask); ok {
		w = vmath.Clamp01(float64(mc.Index) / float64(render.GradientLevels-1))
	}

	out := render.Cell{
		Index: lerpIndex(ca.Index, cb.Index, w),
		Fg:    render.Lerp(ca.Fg, cb.Fg, w),
	}
	out.Bg, out.BgSet = lerpBg(ca, cb, w)
	return out, true
}

func (m *MaskedComposite) Post(ctx *render.Context, g *render.Grid, st render.State) {
	ms := st.(*maskedState)
	m.a.Post(ctx, g, ms.a)
	m.b.Post(ctx, g, ms.b)
	m.mask.Post(ctx, g, ms.mask)
}
