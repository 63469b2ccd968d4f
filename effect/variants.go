package effect

import (
	"math/rand"

	"github.com/lixenwraith/moodgrid/render"
)

// Span is a sampled parameter range. Integer spans sample whole values
// inclusive of both ends.
type Span struct {
	Key      string
	Min, Max float64
	Integer  bool
}

// Variant is a named structural preset for an effect: an ordered list
// of ranges to sample plus fixed values injected verbatim. Range order
// is fixed so variant sampling consumes randomness deterministically.
type Variant struct {
	Name   string
	Weight float64
	Spans  []Span
	Fixed  render.Params
}

// Sample draws every declared range and merges in the fixed values.
func (v Variant) Sample(rng *rand.Rand) render.Params {
	out := make(render.Params, len(v.Spans)+len(v.Fixed))
	for _, sp := range v.Spans {
		if sp.Integer {
			lo, hi := int(sp.Min), int(sp.Max)
			out[sp.Key] = lo + rng.Intn(hi-lo+1)
		} else {
			out[sp.Key] = sp.Min + rng.Float64()*(sp.Max-sp.Min)
		}
	}
	for k, val := range v.Fixed {
		out[k] = val
	}
	return out
}

// Variants returns the structural presets for an effect, nil when the
// effect has none. The first entry is always the plain preset.
func Variants(effectName string) []Variant {
	return variantRegistry[effectName]
}

// FindVariant looks up a preset by name.
func FindVariant(effectName, variantName string) (Variant, bool) {
	for _, v := range variantRegistry[effectName] {
		if v.Name == variantName {
			return v, true
		}
	}
	return Variant{}, false
}

var variantRegistry = map[string][]Variant{
	"plasma": {
		{Name: "classic", Weight: 0.2},
		{Name: "warped", Weight: 0.2, Spans: []Span{
			{Key: "self_warp", Min: 0.2, Max: 0.8},
		}},
		{Name: "noisy", Weight: 0.2, Spans: []Span{
			{Key: "noise_injection", Min: 0.2, Max: 0.7},
		}},
		{Name: "turbulent", Weight: 0.2, Spans: []Span{
			{Key: "self_warp", Min: 0.1, Max: 0.4},
			{Key: "noise_injection", Min: 0.1, Max: 0.4},
			{Key: "frequency", Min: 0.08, Max: 0.2},
		}},
		{Name: "slow_morph", Weight: 0.2, Spans: []Span{
			{Key: "frequency", Min: 0.01, Max: 0.03},
			{Key: "speed", Min: 0.1, Max: 0.5},
			{Key: "noise_injection", Min: 0.3, Max: 0.6},
		}},
	},
	"wave": {
		{Name: "classic", Weight: 0.25},
		{Name: "warped", Weight: 0.25, Spans: []Span{
			{Key: "self_warp", Min: 0.2, Max: 0.7},
		}},
		{Name: "chaotic", Weight: 0.25, Spans: []Span{
			{Key: "noise_injection", Min: 0.3, Max: 0.8},
			{Key: "wave_count", Min: 5, Max: 10, Integer: true},
		}},
		{Name: "minimal", Weight: 0.25, Spans: []Span{
			{Key: "wave_count", Min: 1, Max: 2, Integer: true},
			{Key: "amplitude", Min: 1.5, Max: 3.0},
		}},
	},
	"moire": {
		{Name: "classic", Weight: 0.25},
		{Name: "distorted", Weight: 0.25, Spans: []Span{
			{Key: "distortion", Min: 0.2, Max: 0.7},
		}},
		{Name: "multi_center", Weight: 0.25, Spans: []Span{
			{Key: "multi_center", Min: 2, Max: 3, Integer: true},
		}},
		{Name: "dense", Weight: 0.25, Spans: []Span{
			{Key: "freq_a", Min: 12.0, Max: 20.0},
			{Key: "freq_b", Min: 12.0, Max: 20.0},
			{Key: "distortion", Min: 0.1, Max: 0.3},
		}},
	},
	"chroma_spiral": {
		{Name: "classic", Weight: 0.2},
		{Name: "warped", Weight: 0.2, Spans: []Span{
			{Key: "distortion", Min: 0.2, Max: 0.6},
		}},
		{Name: "multi", Weight: 0.2, Spans: []Span{
			{Key: "multi_center", Min: 2, Max: 4, Integer: true},
		}},
		{Name: "tight", Weight: 0.2, Spans: []Span{
			{Key: "arms", Min: 5, Max: 8, Integer: true},
			{Key: "tightness", Min: 1.0, Max: 2.0},
		}},
		{Name: "loose", Weight: 0.2, Spans: []Span{
			{Key: "arms", Min: 1, Max: 2, Integer: true},
			{Key: "tightness", Min: 0.1, Max: 0.3},
			{Key: "chroma_offset", Min: 0.15, Max: 0.3},
		}},
	},
	"mod_xor": {
		{Name: "classic", Weight: 0.25},
		{Name: "distorted", Weight: 0.25, Spans: []Span{
			{Key: "distortion", Min: 0.2, Max: 0.6},
		}},
		{Name: "fine", Weight: 0.25, Spans: []Span{
			{Key: "modulus", Min: 4, Max: 8, Integer: true},
			{Key: "zoom", Min: 0.5, Max: 0.8},
		}},
		{Name: "layered", Weight: 0.25, Spans: []Span{
			{Key: "modulus", Min: 16, Max: 64, Integer: true},
			{Key: "layers", Min: 2, Max: 3, Integer: true},
		}},
	},
	"noise_field": {
		{Name: "classic", Weight: 0.17},
		{Name: "dense", Weight: 0.17, Spans: []Span{
			{Key: "scale", Min: 0.02, Max: 0.04},
			{Key: "octaves", Min: 6, Max: 8, Integer: true},
		}},
		{Name: "coarse", Weight: 0.17, Spans: []Span{
			{Key: "scale", Min: 0.1, Max: 0.2},
			{Key: "octaves", Min: 1, Max: 2, Integer: true},
		}},
		{Name: "turbulent", Weight: 0.17, Spans: []Span{
			{Key: "octaves", Min: 4, Max: 6, Integer: true},
			{Key: "speed", Min: 0.3, Max: 0.7},
		}, Fixed: render.Params{"turbulence": true}},
		{Name: "smooth_flow", Weight: 0.16, Spans: []Span{
			{Key: "lacunarity", Min: 1.5, Max: 1.8},
			{Key: "gain", Min: 0.6, Max: 0.8},
			{Key: "speed", Min: 1.0, Max: 3.0},
		}},
		{Name: "sharp", Weight: 0.16, Spans: []Span{
			{Key: "lacunarity", Min: 2.5, Max: 3.0},
			{Key: "gain", Min: 0.3, Max: 0.4},
			{Key: "octaves", Min: 5, Max: 7, Integer: true},
		}},
	},
	"ten_print": {
		{Name: "classic", Weight: 0.2},
		{Name: "compact", Weight: 0.2, Spans: []Span{
			{Key: "cell_size", Min: 4, Max: 5, Integer: true},
		}},
		{Name: "spacious", Weight: 0.2, Spans: []Span{
			{Key: "cell_size", Min: 10, Max: 12, Integer: true},
		}},
		{Name: "biased", Weight: 0.2, Spans: []Span{
			{Key: "probability", Min: 0.65, Max: 0.80},
		}},
		{Name: "dynamic", Weight: 0.2, Spans: []Span{
			{Key: "speed", Min: 2.0, Max: 4.0},
			{Key: "cell_size", Min: 7, Max: 9, Integer: true},
		}},
	},
	"wobbly": {
		{Name: "classic", Weight: 0.2},
		{Name: "gentle", Weight: 0.2, Spans: []Span{
			{Key: "warp_amount", Min: 0.1, Max: 0.2},
		}, Fixed: render.Params{"iterations": 1}},
		{Name: "violent", Weight: 0.2, Spans: []Span{
			{Key: "warp_amount", Min: 0.7, Max: 1.0},
		}, Fixed: render.Params{"iterations": 3}},
		{Name: "fine_ripple", Weight: 0.2, Spans: []Span{
			{Key: "warp_freq", Min: 0.08, Max: 0.15},
			{Key: "warp_amount", Min: 0.3, Max: 0.5},
		}},
		{Name: "coarse_warp", Weight: 0.2, Spans: []Span{
			{Key: "warp_freq", Min: 0.01, Max: 0.02},
			{Key: "warp_amount", Min: 0.5, Max: 0.8},
		}},
	},
	"sdf_shapes": {
		{Name: "classic", Weight: 0.17},
		{Name: "single", Weight: 0.17, Spans: []Span{
			{Key: "radius_max", Min: 0.2, Max: 0.3},
		}, Fixed: render.Params{"shape_count": 1}},
		{Name: "swarm", Weight: 0.17, Spans: []Span{
			{Key: "shape_count", Min: 8, Max: 10, Integer: true},
			{Key: "radius_min", Min: 0.02, Max: 0.05},
		}},
		{Name: "boxes", Weight: 0.17, Spans: []Span{
			{Key: "shape_count", Min: 3, Max: 5, Integer: true},
			{Key: "smoothness", Min: 0.08, Max: 0.15},
		}, Fixed: render.Params{"shape_type": "box"}},
		{Name: "sharp", Weight: 0.16, Spans: []Span{
			{Key: "smoothness", Min: 0.02, Max: 0.06},
			{Key: "shape_count", Min: 4, Max: 7, Integer: true},
		}},
		{Name: "fuzzy", Weight: 0.16, Spans: []Span{
			{Key: "smoothness", Min: 0.2, Max: 0.3},
			{Key: "shape_count", Min: 5, Max: 8, Integer: true},
		}},
	},
}
