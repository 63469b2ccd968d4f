package emotion

import (
	"math"

	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

// ParamOrder is the canonical key order of VisualParams. Modulation
// walks parameters in this order so that drift stays reproducible for
// a given seed.
var ParamOrder = []string{
	"warmth", "saturation", "brightness",
	"frequency", "speed", "complexity", "octaves", "turbulence",
	"float_amp", "breath_amp", "animation_speed",
	"density", "contrast", "structure",
	"energy", "intensity",
	"valence", "arousal", "dominance",
}

// intParams are parameters that carry integral meaning and are rounded
// after modulation.
var intParams = map[string]bool{
	"octaves": true,
}

// VisualParams maps a mood vector onto the continuous parameter space
// the scene grammar and effects consume.
//
// Valence drives color temperature, arousal drives tempo and frequency,
// dominance drives structure and contrast. The cross terms (saturation,
// turbulence, intensity) mix axes so nearby moods still separate
// visually.
func (e Vector) VisualParams() map[string]float64 {
	v, a, d := e.Valence, e.Arousal, e.Dominance

	return map[string]float64{
		"warmth":     vmath.MapRange(v, -1, 1, 0.0, 1.0),
		"saturation": vmath.Clamp01(math.Abs(v)*0.7 + math.Abs(a)*0.3),
		"brightness": vmath.MapRange(v*0.5+a*0.3+d*0.2, -1, 1, 0.3, 1.0),

		"frequency":  vmath.MapRange(a, -1, 1, 0.01, 0.2),
		"speed":      vmath.MapRange(a, -1, 1, 0.2, 5.0),
		"complexity": vmath.MapRange(d, -1, 1, 0.2, 0.9),
		"octaves":    float64(vmath.ClampInt(int(vmath.MapRange(d, -1, 1, 1, 8)), 1, 8)),
		"turbulence": vmath.Clamp01(math.Abs(v-0.5)*0.6 + a*0.4),

		"float_amp":       vmath.MapRange(a, -1, 1, 1.0, 8.0),
		"breath_amp":      vmath.MapRange(math.Abs(a), 0, 1, 0.02, 0.15),
		"animation_speed": vmath.MapRange(a, -1, 1, 0.5, 3.0),

		"density":   vmath.MapRange(d, -1, 1, 0.2, 0.6),
		"contrast":  vmath.MapRange(math.Abs(d), 0, 1, 1.0, 1.5),
		"structure": vmath.MapRange(d, -1, 1, 0.0, 1.0),

		"energy":    vmath.MapRange(a, -1, 1, 0.0, 1.0),
		"intensity": vmath.Clamp01(e.Magnitude() / math.Sqrt(3)),

		"valence":   v,
		"arousal":   a,
		"dominance": d,
	}
}

// RenderParams converts visual params to the generic parameter bag
// effects read from.
func RenderParams(params map[string]float64) render.Params {
	out := make(render.Params, len(params))
	for k, v := range params {
		if intParams[k] {
			out[k] = int(v)
		} else {
			out[k] = v
		}
	}
	return out
}
