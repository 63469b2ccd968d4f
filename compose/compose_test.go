package compose

import (
	"math"
	"testing"

	"github.com/lixenwraith/moodgrid/render"
)

// gradientEffect produces a deterministic diagonal ramp so coordinate
// remapping is visible in both index and color.
type gradientEffect struct{ render.NopPrePost }

func (gradientEffect) Main(x, y int, ctx *render.Context, _ render.State) (render.Cell, bool) {
	denom := ctx.Width + ctx.Height
	if denom < 1 {
		denom = 1
	}
	idx := (x + y) * 9 / denom
	if idx > 9 {
		idx = 9
	}
	return render.Cell{
		Index: idx,
		Fg:    render.RGB{R: uint8(x % 256), G: uint8(y % 256)},
	}, true
}

type constEffect struct {
	render.NopPrePost
	cell render.Cell
}

func (c constEffect) Main(int, int, *render.Context, render.State) (render.Cell, bool) {
	return c.cell, true
}

func testCtx(w, h int, t float64) *render.Context {
	ctx := render.NewContext(w, h, 42)
	ctx.Time = t
	return ctx
}

func TestResolveAnimated(t *testing.T) {
	tests := []struct {
		name string
		spec render.Params
		time float64
		want float64
	}{
		{"linear", render.Params{"base": 0.0, "speed": 1.0, "mode": "linear"}, 2.0, 2.0},
		{"linear with base", render.Params{"base": 0.5, "speed": 1.0, "mode": "linear"}, 3.0, 3.5},
		{"oscillate at zero", render.Params{"base": 2.0, "speed": 1.0, "amp": 0.5, "mode": "oscillate"}, 0, 2.0},
		{"oscillate quarter", render.Params{"base": 2.0, "speed": 1.0, "amp": 0.5, "mode": "oscillate"}, 0.25, 2.5},
		{"oscillate is default", render.Params{"base": 1.0, "speed": 1.0, "amp": 0.3}, 0.25, 1.3},
		{"ping pong rising", render.Params{"base": 0.0, "speed": 1.0, "amp": 1.0, "mode": "ping_pong"}, 0.5, 0.5},
		{"ping pong peak", render.Params{"base": 0.0, "speed": 1.0, "amp": 1.0, "mode": "ping_pong"}, 1.0, 1.0},
		{"ping pong falling", render.Params{"base": 0.0, "speed": 1.0, "amp": 1.0, "mode": "ping_pong"}, 1.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ResolveAnimated(render.Params{"val": map[string]any(tt.spec)}, tt.time)
			got := out.Float("val", math.NaN())
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("ResolveAnimated(%v, %v) = %v, want %v", tt.spec, tt.time, got, tt.want)
			}
		})
	}
}

func TestResolveAnimatedPassThrough(t *testing.T) {
	if ResolveAnimated(nil, 1) != nil {
		t.Error("nil params should stay nil")
	}

	params := render.Params{
		"angle":    1.5,
		"segments": 6,
		"config":   map[string]any{"some_key": "some_value"},
	}
	out := ResolveAnimated(params, 2)
	if got := out.Float("angle", 0); got != 1.5 {
		t.Errorf("static float changed: %v", got)
	}
	if got := out.Int("segments", 0); got != 6 {
		t.Errorf("static int changed: %v", got)
	}
	if _, ok := out["config"].(map[string]any); !ok {
		t.Error("map without base+speed should pass through unchanged")
	}
}

func TestResolveAnimatedMixed(t *testing.T) {
	params := render.Params{
		"segments": 6,
		"angle":    map[string]any{"base": 0.0, "speed": 1.0, "mode": "linear"},
	}
	out := ResolveAnimated(params, 1)
	if got := out.Int("segments", 0); got != 6 {
		t.Errorf("segments = %d, want 6", got)
	}
	if got := out.Float("angle", 0); math.Abs(got-1) > 1e-9 {
		t.Errorf("angle = %v, want 1", got)
	}
	// Input map must not be mutated.
	if _, ok := params["angle"].(map[string]any); !ok {
		t.Error("resolution mutated the input map")
	}
}

func TestTransformFunctions(t *testing.T) {
	tests := []struct {
		name         string
		fn           Transform
		p            render.Params
		u, v         float64
		wantU, wantV float64
	}{
		{"mirror_x low half", mirrorX, nil, 0.25, 0.3, 0.5, 0.3},
		{"mirror_x high half", mirrorX, nil, 0.75, 0.3, 0.5, 0.3},
		{"mirror_y", mirrorY, nil, 0.3, 0.75, 0.3, 0.5},
		{"tile wraps", tileUV, render.Params{"cols": 2.0, "rows": 2.0}, 0.75, 0.25, 0.5, 0.5},
		{"zoom halves offset", zoomUV, render.Params{"factor": 2.0}, 1.0, 0.5, 0.75, 0.5},
		{"zoom zero collapses", zoomUV, render.Params{"factor": 0.0}, 0.9, 0.1, 0.5, 0.5},
		{"rotate identity", rotateUV, render.Params{"angle": 0.0}, 0.7, 0.2, 0.7, 0.2},
		{"polar remap center", polarRemap, nil, 0.5, 0.5, 0.5, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := tt.fn(tt.u, tt.v, tt.p)
			if math.Abs(u-tt.wantU) > 1e-9 || math.Abs(v-tt.wantV) > 1e-9 {
				t.Errorf("got (%v, %v), want (%v, %v)", u, v, tt.wantU, tt.wantV)
			}
		})
	}
}

func TestKaleidoscopeFoldsSegments(t *testing.T) {
	p := render.Params{"segments": 4.0}
	// Points at the same radius in different segments land at the same
	// folded position.
	u1, v1 := kaleidoscope(0.5, 0.8, p)
	u2, v2 := kaleidoscope(0.5, 0.2, p)
	if math.Abs(u1-u2) > 1e-9 || math.Abs(v1-v2) > 1e-9 {
		t.Errorf("fold mismatch: (%v,%v) vs (%v,%v)", u1, v1, u2, v2)
	}
}

func TestRotatePreservesDistance(t *testing.T) {
	p := render.Params{"angle": 1.1}
	u, v := rotateUV(0.9, 0.5, p)
	before := math.Hypot(0.9-0.5, 0.5-0.5)
	after := math.Hypot(u-0.5, v-0.5)
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("rotation changed radius: %v -> %v", before, after)
	}
}

func TestWrapTransforms(t *testing.T) {
	base := gradientEffect{}
	if e, err := WrapTransforms(base, nil); err != nil || e != render.Effect(base) {
		t.Errorf("empty chain should return the effect unchanged, got %T err %v", e, err)
	}
	if _, err := WrapTransforms(base, []TransformSpec{{Type: "warp_drive"}}); err == nil {
		t.Error("unknown transform name should error")
	}
}

func TestTransformOrderMatters(t *testing.T) {
	mirror := TransformSpec{Type: "mirror_x"}
	zoom := TransformSpec{Type: "zoom", Params: render.Params{"factor": 2.0}}

	ab, err := WrapTransforms(gradientEffect{}, []TransformSpec{mirror, zoom})
	if err != nil {
		t.Fatalf("WrapTransforms: %v", err)
	}
	ba, err := WrapTransforms(gradientEffect{}, []TransformSpec{zoom, mirror})
	if err != nil {
		t.Fatalf("WrapTransforms: %v", err)
	}

	ctx := testCtx(32, 32, 0)
	g1 := render.Run(ab, ctx)
	g2 := render.Run(ba, ctx)

	diff := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if g1.At(x, y) != g2.At(x, y) {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Error("mirror+zoom and zoom+mirror produced identical grids")
	}
}

func TestTransformedAnimatedRotation(t *testing.T) {
	spec := TransformSpec{
		Type:   "rotate",
		Params: render.Params{"angle": map[string]any{"base": 0.0, "speed": 0.5, "mode": "linear"}},
	}
	wrapped, err := WrapTransforms(gradientEffect{}, []TransformSpec{spec})
	if err != nil {
		t.Fatalf("WrapTransforms: %v", err)
	}

	ctx0 := testCtx(32, 32, 0)
	ctx1 := testCtx(32, 32, 1)
	st := wrapped.Pre(ctx0, nil)

	c0, _ := wrapped.Main(10, 10, ctx0, st)
	c1, _ := wrapped.Main(10, 10, ctx1, st)
	if c0 == c1 {
		t.Error("animated rotation produced identical cells at different times")
	}
}

func TestTransformedClampsToGrid(t *testing.T) {
	// Zoom out far enough that raw coordinates leave [0,1).
	spec := TransformSpec{Type: "zoom", Params: render.Params{"factor": 0.1}}
	wrapped, err := WrapTransforms(gradientEffect{}, []TransformSpec{spec})
	if err != nil {
		t.Fatalf("WrapTransforms: %v", err)
	}
	ctx := testCtx(16, 16, 0)
	st := wrapped.Pre(ctx, nil)
	for _, pt := range [][2]int{{0, 0}, {15, 0}, {0, 15}, {15, 15}} {
		if _, ok := wrapped.Main(pt[0], pt[1], ctx, st); !ok {
			t.Errorf("Main(%d,%d) dropped a cell", pt[0], pt[1])
		}
	}
}

func TestParseBlendMode(t *testing.T) {
	for _, name := range []string{"add", "multiply", "screen", "overlay"} {
		mode, err := ParseBlendMode(name)
		if err != nil {
			t.Fatalf("ParseBlendMode(%q): %v", name, err)
		}
		if mode.String() != name {
			t.Errorf("round trip %q -> %q", name, mode.String())
		}
	}
	if _, err := ParseBlendMode("subtract"); err == nil {
		t.Error("unknown blend mode should error")
	}
}

func TestCompositeMixZeroIsFirstEffect(t *testing.T) {
	a := constEffect{cell: render.Cell{Index: 7, Fg: render.RGB{R: 10, G: 20, B: 30}}}
	b := constEffect{cell: render.Cell{Index: 2, Fg: render.RGB{R: 200, G: 100, B: 50}}}
	comp, err := NewComposite(a, b, BlendAdd, 0)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	ctx := testCtx(4, 4, 0)
	st := comp.Pre(ctx, nil)
	got, ok := comp.Main(1, 1, ctx, st)
	if !ok || got != a.cell {
		t.Errorf("mix=0 cell = %+v, want %+v", got, a.cell)
	}
}

func TestCompositeMixOneIsBlended(t *testing.T) {
	a := constEffect{cell: render.Cell{Index: 3, Fg: render.RGB{R: 100, G: 0, B: 0}}}
	b := constEffect{cell: render.Cell{Index: 9, Fg: render.RGB{R: 100, G: 50, B: 0}}}
	comp, err := NewComposite(a, b, BlendAdd, 1)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	ctx := testCtx(4, 4, 0)
	st := comp.Pre(ctx, nil)
	got, _ := comp.Main(0, 0, ctx, st)
	want := render.Add(a.cell.Fg, b.cell.Fg)
	if got.Fg != want {
		t.Errorf("mix=1 fg = %+v, want blended %+v", got.Fg, want)
	}
	if got.Index != 9 {
		t.Errorf("mix=1 index = %d, want 9", got.Index)
	}
}

func TestCompositeBackgroundRules(t *testing.T) {
	bg := render.RGB{R: 5, G: 5, B: 5}
	withBg := constEffect{cell: render.Cell{Index: 5, Fg: render.White, Bg: bg, BgSet: true}}
	without := constEffect{cell: render.Cell{Index: 5, Fg: render.White}}

	tests := []struct {
		name    string
		a, b    render.Effect
		wantSet bool
	}{
		{"neither", without, without, false},
		{"first only", withBg, without, true},
		{"second only", without, withBg, true},
		{"both", withBg, withBg, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := NewComposite(tt.a, tt.b, BlendAdd, 0.5)
			if err != nil {
				t.Fatalf("NewComposite: %v", err)
			}
			ctx := testCtx(2, 2, 0)
			got, _ := comp.Main(0, 0, ctx, comp.Pre(ctx, nil))
			if got.BgSet != tt.wantSet {
				t.Errorf("BgSet = %v, want %v", got.BgSet, tt.wantSet)
			}
			if tt.wantSet && got.Bg != bg {
				t.Errorf("Bg = %+v, want %+v", got.Bg, bg)
			}
		})
	}
}

func TestCompositeNestingRejected(t *testing.T) {
	a := constEffect{}
	inner, err := NewComposite(a, a, BlendAdd, 0.5)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	if _, err := NewComposite(inner, a, BlendAdd, 0.5); err == nil {
		t.Error("nested composite as first operand should error")
	}
	if _, err := NewComposite(a, inner, BlendAdd, 0.5); err == nil {
		t.Error("nested composite as second operand should error")
	}
	if _, err := NewMaskedComposite(inner, a, a); err == nil {
		t.Error("nested composite inside masked composite should error")
	}
}

func TestMaskedCompositeBoundaries(t *testing.T) {
	a := constEffect{cell: render.Cell{Index: 0, Fg: render.RGB{R: 255}}}
	b := constEffect{cell: render.Cell{Index: 9, Fg: render.RGB{B: 255}}}

	tests := []struct {
		name    string
		maskIdx int
		want    render.Cell
	}{
		{"weight zero", 0, a.cell},
		{"weight full", 9, b.cell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask := constEffect{cell: render.Cell{Index: tt.maskIdx}}
			mc, err := NewMaskedComposite(a, b, mask)
			if err != nil {
				t.Fatalf("NewMaskedComposite: %v", err)
			}
			ctx := testCtx(4, 4, 0)
			got, ok := mc.Main(2, 2, ctx, mc.Pre(ctx, nil))
			if !ok || got != tt.want {
				t.Errorf("cell = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMaskedCompositeInterpolates(t *testing.T) {
	a := constEffect{cell: render.Cell{Index: 0, Fg: render.RGB{}}}
	b := constEffect{cell: render.Cell{Index: 9, Fg: render.White}}
	mask := constEffect{cell: render.Cell{Index: 4}}
	mc, err := NewMaskedComposite(a, b, mask)
	if err != nil {
		t.Fatalf("NewMaskedComposite: %v", err)
	}
	ctx := testCtx(4, 4, 0)
	got, _ := mc.Main(0, 0, ctx, mc.Pre(ctx, nil))
	if got.Index <= 0 || got.Index >= 9 {
		t.Errorf("interior weight should interpolate index, got %d", got.Index)
	}
	if got.Fg.R == 0 || got.Fg.R == 255 {
		t.Errorf("interior weight should interpolate color, got %+v", got.Fg)
	}
}
