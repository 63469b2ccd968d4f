// Package pipeline joins the layers into one entry point: a mood input
// and a seed become a scene spec, the spec becomes a composed effect,
// and the effect becomes a finished grid. Specs are built once per
// picture; animated sequences vary only the frame time.
package pipeline

import (
	"fmt"

	"github.com/lixenwraith/moodgrid/compose"
	"github.com/lixenwraith/moodgrid/effect"
	"github.com/lixenwraith/moodgrid/emotion"
	"github.com/lixenwraith/moodgrid/grammar"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/scene"
)

const (
	DefaultWidth  = 120
	DefaultHeight = 60
)

// Request describes one picture. Exactly one mood input is used, in
// priority order Vector, Mood, Text; all empty means neutral. A
// non-nil Spec skips grammar generation entirely and renders the
// given recipe as is.
type Request struct {
	Mood   string
	Text   string
	Vector *emotion.Vector

	Seed   int64
	Width  int
	Height int
	Time   float64
	Frame  int

	// Drift is the param-modulation strength in [0,1]. Zero disables
	// per-frame drift.
	Drift float64

	// Title, when set, is placed on the spec as a text element for the
	// presentation layer.
	Title string

	Overrides *scene.Overrides
	Spec      *scene.Spec
}

// Result carries the finished grid with the spec and visual params
// that produced it, so callers can persist or inspect the recipe.
type Result struct {
	Grid   *render.Grid
	Spec   *scene.Spec
	Visual map[string]float64
}

func (r Request) size() (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (r Request) vector() emotion.Vector {
	switch {
	case r.Vector != nil:
		return *r.Vector
	case r.Mood != "":
		return emotion.FromName(r.Mood)
	case r.Text != "":
		return emotion.FromText(r.Text, emotion.Vector{})
	}
	return emotion.Vector{}
}

// BuildSpec resolves the mood input, derives visual params, and runs
// the grammar. Overrides apply last. The drifted params returned are
// the time-zero modulation, matching what a still render uses.
func BuildSpec(req Request) (*scene.Spec, map[string]float64, error) {
	vp := req.vector().VisualParams()
	if req.Drift > 0 {
		vp = emotion.Drift(vp, 0, req.Drift, req.Seed)
	}

	spec := req.Spec
	if spec == nil {
		g := grammar.New(req.Seed)
		spec = g.Generate(vp)
		g.PlaceText(spec, req.Title)
	}

	if req.Overrides != nil {
		if err := req.Overrides.Apply(spec); err != nil {
			return nil, nil, err
		}
	}
	return spec, vp, nil
}

// buildStack assembles the composed effect the spec describes: the
// base effect, an optional overlay joined by blend or mask weighting,
// and the transform chain wrapped around the result.
func buildStack(spec *scene.Spec) (render.Effect, error) {
	base, err := effect.New(spec.Effect)
	if err != nil {
		return nil, err
	}

	var stack render.Effect = base
	if spec.Overlay != "" {
		over, err := effect.New(spec.Overlay)
		if err != nil {
			return nil, err
		}
		switch spec.Composition {
		case "", "blend":
			mode := compose.BlendAdd
			if spec.OverlayBlend != "" {
				mode, err = compose.ParseBlendMode(spec.OverlayBlend)
				if err != nil {
					return nil, err
				}
			}
			stack, err = compose.NewComposite(base, over, mode, spec.OverlayMix)
		default:
			if !scene.ValidComposition(spec.Composition) {
				return nil, fmt.Errorf("pipeline: unknown composition %q", spec.Composition)
			}
			var mask render.Effect
			mask, err = compose.NewMask(spec.MaskType)
			if err == nil {
				stack, err = compose.NewMaskedComposite(base, over, mask)
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return compose.WrapTransforms(stack, scene.ComposeTransforms(spec.Transforms))
}

// contextParams builds the resolved parameter map for one frame: the
// visual-param knobs first, effect and overlay params over them, and
// the mask params prefixed in last.
func contextParams(spec *scene.Spec, vp map[string]float64) render.Params {
	params := emotion.RenderParams(vp)
	for k, v := range spec.EffectParams {
		params[k] = v
	}
	for k, v := range spec.OverlayParams {
		params[k] = v
	}
	if spec.MaskType != "" {
		compose.PrefixMaskParams(params, &compose.MaskSpec{
			Type:   spec.MaskType,
			Params: spec.MaskParams,
		})
	}
	return params
}

// RenderSpec runs one frame of an already-built spec: fresh grid, the
// three effect phases, then the postfx chain and background fill.
func RenderSpec(spec *scene.Spec, vp map[string]float64, width, height int, t float64, frame int) (*render.Grid, error) {
	stack, err := buildStack(spec)
	if err != nil {
		return nil, err
	}
	return runFrame(stack, spec, vp, width, height, t, frame)
}

func runFrame(stack render.Effect, spec *scene.Spec, vp map[string]float64, width, height int, t float64, frame int) (*render.Grid, error) {
	ctx := render.NewContext(width, height, spec.Seed)
	ctx.Time = t
	ctx.Frame = frame
	ctx.Params = contextParams(spec, vp)

	g := render.Run(stack, ctx)
	if err := compose.ApplyPostFX(g, scene.ComposePostFX(spec.PostFX), t); err != nil {
		return nil, err
	}
	if err := compose.FillBackground(g, spec.Seed, scene.ComposeBackground(spec.Background), t); err != nil {
		return nil, err
	}
	return g, nil
}

// Render produces one finished picture for the request.
func Render(req Request) (*Result, error) {
	spec, vp, err := BuildSpec(req)
	if err != nil {
		return nil, err
	}
	w, h := req.size()
	g, err := RenderSpec(spec, vp, w, h, req.Time, req.Frame)
	if err != nil {
		return nil, err
	}
	return &Result{Grid: g, Spec: spec, Visual: vp}, nil
}

// Frames renders an animated sequence. The spec and effect stack are
// built once; each frame re-renders at t = i/fps with the visual
// params drifted at half strength so motion stays smooth. Frame zero
// of an undrifted request equals the still render.
func Frames(req Request, duration float64, fps int) ([]*render.Grid, *scene.Spec, error) {
	if fps <= 0 || duration <= 0 {
		return nil, nil, fmt.Errorf("pipeline: need positive duration and fps, got %gs at %d", duration, fps)
	}

	spec, vp, err := BuildSpec(req)
	if err != nil {
		return nil, nil, err
	}
	stack, err := buildStack(spec)
	if err != nil {
		return nil, nil, err
	}

	w, h := req.size()
	total := int(duration * float64(fps))
	grids := make([]*render.Grid, 0, total)
	for i := 0; i < total; i++ {
		t := float64(i) / float64(fps)
		fvp := vp
		if req.Drift > 0 {
			fvp = emotion.Drift(vp, t, req.Drift*0.5, req.Seed)
		}
		g, err := runFrame(stack, spec, fvp, w, h, t, i)
		if err != nil {
			return nil, nil, err
		}
		grids = append(grids, g)
	}
	return grids, spec, nil
}
