// Package grammar samples complete rendering recipes from visual
// parameters and a seed. Every discrete choice is a weighted random
// draw whose weights follow the parameter values, with a uniform
// jitter band keeping adjacent seeds from collapsing onto the same
// dominant option.
//
// All draws consume one shared random source in a fixed order: base
// effect, variant, variant ranges, overlay coin, overlay effect,
// blend mode, mix, composition mode, mask, transforms, postfx chain,
// background fill, color scheme, gradient, text placement. Inserting a
// draw shifts every later sample for a given seed; callers needing
// stability across unrelated choices must re-seed per sub-choice.
package grammar

import (
	"math/rand"

	"github.com/lixenwraith/moodgrid/effect"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/scene"
	"github.com/lixenwraith/moodgrid/vmath"
)

// Grammar generates SceneSpecs from one seeded source.
type Grammar struct {
	rng  *rand.Rand
	seed int64
}

// New returns a grammar drawing from seed.
func New(seed int64) *Grammar {
	return &Grammar{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

type weighted struct {
	name   string
	weight float64
}

// choose draws one option after multiplying every weight by a uniform
// factor in [0.5, 1.5]. The jitter widens variety across seeds without
// changing the expected ranking of the base weights.
func (g *Grammar) choose(options []weighted) string {
	if len(options) == 0 {
		return ""
	}
	jittered := make([]float64, len(options))
	total := 0.0
	for i, o := range options {
		w := o.weight * (0.5 + g.rng.Float64())
		if w < 0 {
			w = 0
		}
		jittered[i] = w
		total += w
	}
	if total <= 0 {
		return options[0].name
	}
	r := g.rng.Float64() * total
	cumulative := 0.0
	for i, o := range options {
		cumulative += jittered[i]
		if r <= cumulative {
			return o.name
		}
	}
	return options[len(options)-1].name
}

func (g *Grammar) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func param(vp map[string]float64, key, alt string, def float64) float64 {
	if v, ok := vp[key]; ok {
		return v
	}
	if alt != "" {
		if v, ok := vp[alt]; ok {
			return v
		}
	}
	return def
}

// Generate samples one complete spec from the visual parameters. The
// same grammar seed and parameters always give the same spec.
func (g *Grammar) Generate(vp map[string]float64) *scene.Spec {
	energy := param(vp, "energy", "", 0.5)
	warmth := param(vp, "warmth", "", 0.5)
	structure := param(vp, "structure", "", 0.5)
	intensity := param(vp, "intensity", "", 0.5)
	valence := param(vp, "valence", "", 0)
	arousal := param(vp, "arousal", "", 0)

	spec := &scene.Spec{
		Seed:        g.seed,
		Composition: "blend",
		Warmth:      warmth,
		Saturation:  vmath.Clamp01(0.6 + intensity*0.4),
		Brightness:  vmath.Clamp(0.5+valence*0.3, 0.3, 1),
	}

	spec.Effect = g.chooseEffect(energy, structure)
	spec.Variant, spec.EffectParams = g.chooseVariant(spec.Effect)

	if g.rng.Float64() < 0.25+energy*0.5 {
		spec.Overlay = g.chooseOverlay(spec.Effect)
		spec.OverlayBlend = g.chooseBlend(energy)
		spec.OverlayMix = g.uniform(0.15, 0.5)
		spec.Composition = g.chooseComposition(structure)
		if spec.Composition != "blend" {
			spec.MaskType, spec.MaskParams = g.chooseMask(spec.Composition, arousal)
		}
	}

	spec.Transforms = g.chooseTransforms(energy, structure)
	spec.PostFX = g.choosePostFX(energy, structure, intensity, arousal)
	spec.Background = g.chooseBackground(warmth, intensity)
	spec.ColorScheme = g.chooseScheme(warmth, energy, structure)
	spec.Gradient = g.chooseGradient(energy, structure)
	return spec
}

// chooseEffect keeps the weight spread narrow so no effect dominates
// and every effect stays reachable at mid parameters.
func (g *Grammar) chooseEffect(energy, structure float64) string {
	return g.choose([]weighted{
		{"plasma", 0.35 + energy*0.15},
		{"wave", 0.35 + (1-energy)*0.15},
		{"moire", 0.30 + structure*0.20},
		{"chroma_spiral", 0.30 + energy*0.15},
		{"mod_xor", 0.25 + structure*0.15},
		{"noise_field", 0.35 + (1-energy)*0.15},
		{"ten_print", 0.30 + structure*0.15},
		{"wobbly", 0.30 + (1-structure)*0.15},
		{"sdf_shapes", 0.25 + structure*0.20},
	})
}

func (g *Grammar) chooseVariant(effectName string) (string, render.Params) {
	variants := effect.Variants(effectName)
	if len(variants) == 0 {
		return "", nil
	}
	options := make([]weighted, len(variants))
	for i, v := range variants {
		options[i] = weighted{v.Name, v.Weight}
	}
	name := g.choose(options)
	v, _ := effect.FindVariant(effectName, name)
	return name, v.Sample(g.rng)
}

func (g *Grammar) chooseOverlay(base string) string {
	options := []weighted{
		{"plasma", 0.3},
		{"wave", 0.3},
		{"noise_field", 0.4},
		{"moire", 0.2},
		{"chroma_spiral", 0.25},
	}
	filtered := make([]weighted, 0, len(options))
	for _, o := range options {
		if o.name != base {
			filtered = append(filtered, o)
		}
	}
	return g.choose(filtered)
}

func (g *Grammar) chooseBlend(energy float64) string {
	return g.choose([]weighted{
		{"add", 0.3 + energy*0.3},
		{"screen", 0.3},
		{"overlay", 0.2 + energy*0.2},
		{"multiply", 0.2 + (1-energy)*0.2},
	})
}

func (g *Grammar) chooseComposition(structure float64) string {
	return g.choose([]weighted{
		{"blend", 0.35},
		{"masked_split", 0.25 + structure*0.10},
		{"radial_masked", 0.25},
		{"noise_masked", 0.20 + (1-structure)*0.10},
	})
}

func (g *Grammar) chooseMask(mode string, arousal float64) (string, render.Params) {
	animSpeed := 0.0
	if arousal > 0.4 {
		animSpeed = g.uniform(0.2, 0.8)
	}
	params := render.Params{"softness": g.uniform(0.05, 0.2)}
	if animSpeed > 0 {
		params["anim_speed"] = animSpeed
	}

	var name string
	switch mode {
	case "masked_split":
		if g.rng.Float64() < 0.5 {
			name = "horizontal_split"
		} else {
			name = "vertical_split"
		}
		params["split"] = g.uniform(0.35, 0.65)
	case "radial_masked":
		name = "radial"
		params["radius"] = g.uniform(0.25, 0.55)
	case "noise_masked":
		name = "noise"
		params["scale"] = g.uniform(0.03, 0.08)
		params["threshold"] = g.uniform(0.4, 0.6)
	default:
		name = "radial"
		params["radius"] = g.uniform(0.25, 0.55)
	}
	return name, params
}
