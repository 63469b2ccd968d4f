package compose

import (
	"fmt"
	"math"
	"sort"

	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

// Transform remaps a normalized coordinate pair before the wrapped
// effect samples it. Parameters arrive already resolved for the current
// frame time.
type Transform func(u, v float64, p render.Params) (float64, float64)

var transformRegistry = map[string]Transform{
	"mirror_x":     mirrorX,
	"mirror_y":     mirrorY,
	"mirror_quad":  mirrorQuad,
	"kaleidoscope": kaleidoscope,
	"tile":         tileUV,
	"rotate":       rotateUV,
	"zoom":         zoomUV,
	"spiral_warp":  spiralWarp,
	"polar_remap":  polarRemap,
}

// TransformNames returns the registered transform names sorted.
func TransformNames() []string {
	names := make([]string, 0, len(transformRegistry))
	for n := range transformRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// KnownTransform reports whether name is registered.
func KnownTransform(name string) bool {
	_, ok := transformRegistry[name]
	return ok
}

func mirrorX(u, v float64, _ render.Params) (float64, float64) {
	if u > 0.5 {
		u = 1 - u
	}
	return u * 2, v
}

func mirrorY(u, v float64, _ render.Params) (float64, float64) {
	if v > 0.5 {
		v = 1 - v
	}
	return u, v * 2
}

func mirrorQuad(u, v float64, p render.Params) (float64, float64) {
	u, v = mirrorX(u, v, p)
	return mirrorY(u, v, p)
}

func pmod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r < 0 {
		r += m
	}
	return r
}

func kaleidoscope(u, v float64, p render.Params) (float64, float64) {
	segments := p.Float("segments", 6)
	cx := p.Float("cx", 0.5)
	cy := p.Float("cy", 0.5)
	if segments < 1 {
		segments = 1
	}
	dx := u - cx
	dy := v - cy
	r := math.Sqrt(dx*dx + dy*dy)
	theta := math.Atan2(dy, dx)

	segAngle := vmath.Tau / segments
	wrapped := pmod(theta, vmath.Tau)
	segIdx := int(math.Floor(wrapped / segAngle))
	theta = pmod(wrapped, segAngle)
	// Alternate segments mirror for seamless joins.
	if segIdx%2 == 1 {
		theta = segAngle - theta
	}
	return cx + r*math.Cos(theta), cy + r*math.Sin(theta)
}

func tileUV(u, v float64, p render.Params) (float64, float64) {
	cols := p.Float("cols", 2)
	rows := p.Float("rows", 2)
	return vmath.Fract(u * cols), vmath.Fract(v * rows)
}

func rotateUV(u, v float64, p render.Params) (float64, float64) {
	angle := p.Float("angle", 0)
	cx := p.Float("cx", 0.5)
	cy := p.Float("cy", 0.5)
	dx := u - cx
	dy := v - cy
	ca := math.Cos(angle)
	sa := math.Sin(angle)
	return cx + dx*ca - dy*sa, cy + dx*sa + dy*ca
}

func zoomUV(u, v float64, p render.Params) (float64, float64) {
	factor := p.Float("factor", 2)
	cx := p.Float("cx", 0.5)
	cy := p.Float("cy", 0.5)
	if factor == 0 {
		return cx, cy
	}
	return cx + (u-cx)/factor, cy + (v-cy)/factor
}

func spiralWarp(u, v float64, p render.Params) (float64, float64) {
	twist := p.Float("twist", 1)
	cx := p.Float("cx", 0.5)
	cy := p.Float("cy", 0.5)
	dx := u - cx
	dy := v - cy
	r := math.Sqrt(dx*dx + dy*dy)
	theta := math.Atan2(dy, dx) + r*twist*vmath.Tau
	return cx + r*math.Cos(theta), cy + r*math.Sin(theta)
}

func polarRemap(u, v float64, p render.Params) (float64, float64) {
	cx := p.Float("cx", 0.5)
	cy := p.Float("cy", 0.5)
	dx := u - cx
	dy := v - cy
	r := math.Sqrt(dx*dx+dy*dy) * 2
	theta := vmath.Fract(math.Atan2(dy, dx)/vmath.Tau + 0.5)
	return theta, r
}

// TransformSpec names a registered transform plus its parameters.
// Parameter values may be animated specs, resolved per frame.
type TransformSpec struct {
	Type   string
	Params render.Params
}

type transformStep struct {
	fn     Transform
	params render.Params
}

// Transformed wraps an effect with an ordered coordinate transform
// chain applied before every Main sample. Pre and Post delegate to the
// inner effect.
type Transformed struct {
	inner render.Effect
	steps []transformStep
}

// WrapTransforms builds a Transformed around e. An empty spec list
// returns e unchanged. Unknown transform names are configuration
// errors.
func WrapTransforms(e render.Effect, specs []TransformSpec) (render.Effect, error) {
	if len(specs) == 0 {
		return e, nil
	}
	steps := make([]transformStep, 0, len(specs))
	for _, s := range specs {
		fn, ok := transformRegistry[s.Type]
		if !ok {
			return nil, fmt.Errorf("compose: unknown transform %q", s.Type)
		}
		steps = append(steps, transformStep{fn: fn, params: s.Params})
	}
	return &Transformed{inner: e, steps: steps}, nil
}

// Inner returns the wrapped effect.
func (t *Transformed) Inner() render.Effect { return t.inner }

func (t *Transformed) Pre(ctx *render.Context, g *render.Grid) render.State {
	return t.inner.Pre(ctx, g)
}

func (t *Transformed) Main(x, y int, ctx *render.Context, st render.State) (render.Cell, bool) {
	var u, v float64
	if ctx.Width > 0 {
		u = float64(x) / float64(ctx.Width)
	}
	if ctx.Height > 0 {
		v = float64(y) / float64(ctx.Height)
	}
	for _, step := range t.steps {
		u, v = step.fn(u, v, ResolveAnimated(step.params, ctx.Time))
	}
	tx := int(vmath.Clamp(u*float64(ctx.Width), 0, float64(ctx.Width-1)))
	ty := int(vmath.Clamp(v*float64(ctx.Height), 0, float64(ctx.Height-1)))
	return t.inner.Main(tx, ty, ctx, st)
}

func (t *Transformed) Post(ctx *render.Context, g *render.Grid, st render.State) {
	t.inner.Post(ctx, g, st)
}
