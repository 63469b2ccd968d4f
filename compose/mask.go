package compose

import (
	"fmt"
	"math"
	"sort"

	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

// MaskSpec names a mask family plus its raw parameters. Keys are
// stored unprefixed; they reach the mask effect as "mask_"+key.
type MaskSpec struct {
	Type   string
	Params render.Params
}

// Mask effects emit grayscale weight cells. The intensity index covers
// the blend range: 0 keeps the first composite operand, 9 the second.
// All masks read their configuration from "mask_"-prefixed context
// parameters and animate their boundary when mask_anim_speed > 0.
var maskRegistry = map[string]func() render.Effect{
	"horizontal_split": func() render.Effect { return &splitMask{horizontal: true} },
	"vertical_split":   func() render.Effect { return &splitMask{} },
	"diagonal":         func() render.Effect { return &diagonalMask{} },
	"radial":           func() render.Effect { return &radialMask{} },
	"noise":            func() render.Effect { return &noiseMask{} },
	"sdf":              func() render.Effect { return &sdfMask{} },
}

// NewMask instantiates a registered mask family. Unknown names are
// configuration errors.
func NewMask(name string) (render.Effect, error) {
	factory, ok := maskRegistry[name]
	if !ok {
		return nil, fmt.Errorf("compose: unknown mask %q", name)
	}
	return factory(), nil
}

// MaskNames returns the registered mask families sorted.
func MaskNames() []string {
	names := make([]string, 0, len(maskRegistry))
	for n := range maskRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// KnownMask reports whether name is registered.
func KnownMask(name string) bool {
	_, ok := maskRegistry[name]
	return ok
}

// PrefixMaskParams copies spec params into dst under "mask_" keys.
func PrefixMaskParams(dst render.Params, spec *MaskSpec) {
	for k, v := range spec.Params {
		dst["mask_"+k] = v
	}
}

func maskU(x, w int) float64 {
	d := w - 1
	if d < 1 {
		d = 1
	}
	return float64(x) / float64(d)
}

func maskCell(t float64) render.Cell {
	idx := int(vmath.Clamp(t*9, 0, 9))
	gray := uint8(vmath.Clamp(t*255, 0, 255))
	return render.Cell{Index: idx, Fg: render.RGB{R: gray, G: gray, B: gray}}
}

// softStep applies the threshold+-softness band, hard stepping when the
// band collapses.
func softStep(threshold, softness, d float64) float64 {
	if softness > 0.001 {
		return vmath.Smoothstep(threshold-softness, threshold+softness, d)
	}
	if d < threshold {
		return 0
	}
	return 1
}

type splitMask struct {
	render.NopPrePost
	horizontal bool
}

type splitState struct {
	split, softness float64
}

func (m *splitMask) Pre(ctx *render.Context, _ *render.Grid) render.State {
	split := ctx.Params.Float("mask_split", 0.5)
	softness := ctx.Params.Float("mask_softness", 0.1)
	animSpeed := ctx.Params.Float("mask_anim_speed", 0)
	if animSpeed > 0 && ctx.Time > 0 {
		split += 0.15 * math.Sin(ctx.Time*animSpeed*vmath.Tau)
		split = vmath.Clamp(split, 0.1, 0.9)
	}
	return &splitState{split: split, softness: softness}
}

func (m *splitMask) Main(x, y int, ctx *render.Context, st render.State) (render.Cell, bool) {
	s := st.(*splitState)
	pos := maskU(x, ctx.Width)
	if m.horizontal {
		pos = maskU(y, ctx.Height)
	}
	return maskCell(softStep(s.split, s.softness, pos)), true
}

type diagonalMask struct {
	render.NopPrePost
}

type diagonalState struct {
	split, softness, angle float64
}

func (m *diagonalMask) Pre(ctx *render.Context, _ *render.Grid) render.State {
	split := ctx.Params.Float("mask_split", 0.5)
	softness := ctx.Params.Float("mask_softness", 0.15)
	angle := ctx.Params.Float("mask_angle", 0)
	animSpeed := ctx.Params.Float("mask_anim_speed", 0)
	if animSpeed > 0 && ctx.Time > 0 {
		angle += ctx.Time * animSpeed * 0.5
	}
	return &diagonalState{split: split, softness: softness, angle: angle}
}

func (m *diagonalMask) Main(x, y int, ctx *render.Context, st render.State) (render.Cell, bool) {
	s := st.(*diagonalState)
	u := maskU(x, ctx.Width)
	v := maskU(y, ctx.Height)
	var d float64
	if math.Abs(s.angle) > 0.001 {
		d = (u-0.5)*math.Cos(s.angle) + (v-0.5)*math.Sin(s.angle) + 0.5
	} else {
		d = (u + v) / 2
	}
	return maskCell(softStep(s.split, s.softness, d)), true
}

type radialMask struct {
	render.NopPrePost
}

type radialState struct {
	cx, cy, radius, softness float64
	invert                   bool
}

func (m *radialMask) Pre(ctx *render.Context, _ *render.Grid) render.State {
	radius := ctx.Params.Float("mask_radius", 0.5)
	animSpeed := ctx.Params.Float("mask_anim_speed", 0)
	if animSpeed > 0 && ctx.Time > 0 {
		radius += 0.1 * math.Sin(ctx.Time*animSpeed*vmath.Tau)
		radius = vmath.Clamp(radius, 0.05, 0.9)
	}
	return &radialState{
		cx:       ctx.Params.Float("mask_center_x", 0.5),
		cy:       ctx.Params.Float("mask_center_y", 0.5),
		radius:   radius,
		softness: ctx.Params.Float("mask_softness", 0.15),
		invert:   ctx.Params.Bool("mask_invert", false),
	}
}

func (m *radialMask) Main(x, y int, ctx *render.Context, st render.State) (render.Cell, bool) {
	s := st.(*radialState)
	dx := maskU(x, ctx.Width) - s.cx
	dy := maskU(y, ctx.Height) - s.cy
	t := softStep(s.radius, s.softness, math.Sqrt(dx*dx+dy*dy))
	if s.invert {
		t = 1 - t
	}
	return maskCell(t), true
}

type noiseMask struct {
	render.NopPrePost
}

type noiseMaskState struct {
	noise               *vmath.ValueNoise
	scale               float64
	octaves             int
	threshold, softness float64
	timeOffset          float64
}

func (m *noiseMask) Pre(ctx *render.Context, _ *render.Grid) render.State {
	animSpeed := ctx.Params.Float("mask_anim_speed", 0)
	timeOffset := 0.0
	if animSpeed > 0 {
		timeOffset = ctx.Time * animSpeed * 10
	}
	seedOffset := int64(ctx.Params.Int("mask_seed_offset", 777))
	return &noiseMaskState{
		noise:      vmath.NewValueNoise(ctx.Seed + seedOffset),
		scale:      ctx.Params.Float("mask_noise_scale", 0.05),
		octaves:    ctx.Params.Int("mask_noise_octaves", 3),
		threshold:  ctx.Params.Float("mask_threshold", 0.5),
		softness:   ctx.Params.Float("mask_softness", 0.15),
		timeOffset: timeOffset,
	}
}

func (m *noiseMask) Main(x, y int, _ *render.Context, st render.State) (render.Cell, bool) {
	s := st.(*noiseMaskState)
	val := s.noise.FBM(
		float64(x)*s.scale+s.timeOffset,
		float64(y)*s.scale+s.timeOffset*0.7,
		s.octaves,
	)
	return maskCell(softStep(s.threshold, s.softness, val)), true
}

type sdfMask struct {
	render.NopPrePost
}

type sdfMaskState struct {
	shape               string
	cx, cy, size        float64
	softness, thickness float64
	invert              bool
}

func (m *sdfMask) Pre(ctx *render.Context, _ *render.Grid) render.State {
	size := ctx.Params.Float("mask_sdf_size", 0.3)
	animSpeed := ctx.Params.Float("mask_anim_speed", 0)
	if animSpeed > 0 && ctx.Time > 0 {
		size += 0.08 * math.Sin(ctx.Time*animSpeed*vmath.Tau)
		size = vmath.Clamp(size, 0.05, 0.8)
	}
	return &sdfMaskState{
		shape:     ctx.Params.String("mask_sdf_shape", "circle"),
		cx:        ctx.Params.Float("mask_center_x", 0.5),
		cy:        ctx.Params.Float("mask_center_y", 0.5),
		size:      size,
		softness:  ctx.Params.Float("mask_softness", 0.05),
		thickness: ctx.Params.Float("mask_sdf_thickness", 0.05),
		invert:    ctx.Params.Bool("mask_invert", false),
	}
}

func (m *sdfMask) Main(x, y int, ctx *render.Context, st render.State) (render.Cell, bool) {
	s := st.(*sdfMaskState)
	u := maskU(x, ctx.Width)
	v := maskU(y, ctx.Height)

	var dist float64
	switch s.shape {
	case "box":
		dist = vmath.SDBox(u, v, s.cx, s.cy, s.size, s.size)
	case "ring":
		dist = vmath.SDRing(u, v, s.cx, s.cy, s.size, s.thickness)
	default:
		dist = vmath.SDCircle(u, v, s.cx, s.cy, s.size)
	}

	t := softStep(0, s.softness, dist)
	if s.invert {
		t = 1 - t
	}
	return maskCell(t), true
}
