package grammar

import (
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/scene"
	"github.com/lixenwraith/moodgrid/vmath"
)

// chooseTransforms activates a transform chain on roughly half of all
// renders at mid parameters, more when structure or energy are high.
func (g *Grammar) chooseTransforms(energy, structure float64) []scene.TransformDesc {
	if g.rng.Float64() >= 0.35+structure*0.45 {
		return nil
	}

	count := 1
	if g.rng.Float64() < 0.25+energy*0.25 {
		count = 2
	}

	out := make([]scene.TransformDesc, 0, count)
	used := map[string]bool{}
	for len(out) < count {
		name := g.choose([]weighted{
			{"mirror_x", 0.20 + structure*0.30},
			{"mirror_y", 0.15 + structure*0.25},
			{"mirror_quad", 0.10 + structure*0.30},
			{"kaleidoscope", 0.15 + structure*0.25},
			{"tile", 0.15 + structure*0.20},
			{"rotate", 0.20},
			{"zoom", 0.20},
			{"spiral_warp", 0.10 + energy*0.30},
			{"polar_remap", 0.05 + energy*0.15},
		})
		if used[name] {
			// A repeated draw still consumed the source; stop rather
			// than stack the same transform twice.
			break
		}
		used[name] = true
		out = append(out, scene.TransformDesc{Type: name, Params: g.transformParams(name, energy)})
	}
	return out
}

func (g *Grammar) transformParams(name string, energy float64) render.Params {
	switch name {
	case "kaleidoscope":
		return render.Params{"segments": 4 + g.rng.Intn(5)}
	case "tile":
		return render.Params{"cols": 2 + g.rng.Intn(2), "rows": 2 + g.rng.Intn(2)}
	case "rotate":
		if g.rng.Float64() < 0.3 {
			return render.Params{"angle": map[string]any{
				"base":  g.uniform(0, vmath.Tau),
				"speed": 0.1 + energy*0.4,
				"mode":  "linear",
			}}
		}
		return render.Params{"angle": g.uniform(0, vmath.Tau)}
	case "zoom":
		if g.rng.Float64() < 0.25 {
			return render.Params{"factor": map[string]any{
				"base":  g.uniform(1.2, 2.5),
				"speed": 0.2 + energy*0.3,
				"amp":   0.3,
				"mode":  "oscillate",
			}}
		}
		return render.Params{"factor": g.uniform(1.2, 2.5)}
	case "spiral_warp":
		return render.Params{"twist": g.uniform(0.5, 2)}
	}
	return nil
}

// choosePostFX flips an independent weighted coin per step. The chain
// is never empty: when every coin misses, a mild vignette is forced.
func (g *Grammar) choosePostFX(energy, structure, intensity, arousal float64) []scene.PostFXDesc {
	var chain []scene.PostFXDesc

	if g.rng.Float64() < 0.35+intensity*0.25 {
		p := render.Params{"strength": g.uniform(0.3, 0.6)}
		if arousal > 0.5 && g.rng.Float64() < 0.5 {
			p["pulse_speed"] = g.uniform(0.3, 1)
			p["pulse_amp"] = g.uniform(0.1, 0.25)
		}
		chain = append(chain, scene.PostFXDesc{Type: "vignette", Params: p})
	}
	if g.rng.Float64() < 0.20+energy*0.20 {
		p := render.Params{"hue_shift": g.uniform(0.05, 0.3)}
		if energy > 0.6 && g.rng.Float64() < 0.4 {
			p["drift_speed"] = g.uniform(0.1, 0.4)
		}
		chain = append(chain, scene.PostFXDesc{Type: "color_shift", Params: p})
	}
	if g.rng.Float64() < 0.15+structure*0.15 {
		p := render.Params{"spacing": 3 + g.rng.Intn(3), "darkness": g.uniform(0.2, 0.4)}
		if energy > 0.6 {
			p["scroll_speed"] = g.uniform(0.5, 2)
		}
		chain = append(chain, scene.PostFXDesc{Type: "scanlines", Params: p})
	}
	if g.rng.Float64() < 0.10+(1-structure)*0.12 {
		p := render.Params{"block_size": 3 + g.rng.Intn(4)}
		if arousal > 0.5 && g.rng.Float64() < 0.4 {
			p["pulse_speed"] = g.uniform(0.3, 0.8)
			p["pulse_amp"] = float64(1 + g.rng.Intn(2))
		}
		chain = append(chain, scene.PostFXDesc{Type: "pixelate", Params: p})
	}
	if g.rng.Float64() < 0.08+structure*0.12 {
		chain = append(chain, scene.PostFXDesc{Type: "edge_detect"})
	}
	if g.rng.Float64() < 0.08+intensity*0.10 {
		chain = append(chain, scene.PostFXDesc{Type: "threshold",
			Params: render.Params{"threshold": g.uniform(0.4, 0.6)}})
	}
	if g.rng.Float64() < 0.05 {
		chain = append(chain, scene.PostFXDesc{Type: "invert"})
	}

	if len(chain) == 0 {
		chain = append(chain, scene.PostFXDesc{Type: "vignette",
			Params: render.Params{"strength": 0.3}})
	}
	return chain
}

// chooseBackground decides whether the render gets a second fill pass
// and with what recipe.
func (g *Grammar) chooseBackground(warmth, intensity float64) *scene.BackgroundDesc {
	if g.rng.Float64() >= 0.45+intensity*0.30 {
		return nil
	}
	bg := &scene.BackgroundDesc{
		Effect: g.choose([]weighted{
			{"noise_field", 0.40},
			{"plasma", 0.30},
			{"wave", 0.30},
			{"wobbly", 0.20},
		}),
		Dim: g.uniform(0.2, 0.4),
	}
	if g.rng.Float64() < 0.4 {
		bg.ColorMode = "continuous"
		bg.Warmth = warmth
		bg.Saturation = 0.9
	} else {
		bg.ColorScheme = g.chooseScheme(warmth, 0.5, 0.5)
	}
	if g.rng.Float64() < 0.3 {
		bg.Mask = &scene.MaskDesc{
			Type:   "radial",
			Params: render.Params{"radius": g.uniform(0.3, 0.6), "invert": g.rng.Float64() < 0.5},
		}
	}
	return bg
}

func (g *Grammar) chooseScheme(warmth, energy, structure float64) string {
	return g.choose([]weighted{
		{"heat", 0.20 + warmth*0.35},
		{"fire", 0.10 + warmth*0.25},
		{"ocean", 0.20 + (1-warmth)*0.35},
		{"cool", 0.10 + (1-warmth)*0.25},
		{"plasma", 0.25},
		{"rainbow", 0.15 + energy*0.20},
		{"matrix", 0.10 + structure*0.20},
	})
}

func (g *Grammar) chooseGradient(energy, structure float64) string {
	return g.choose([]weighted{
		{"classic", 0.30},
		{"smooth", 0.20},
		{"blocks", 0.15 + structure*0.20},
		{"matrix", 0.12 + energy*0.15},
		{"plasma", 0.12 + energy*0.20},
	})
}

// PlaceText merges free-text content into the spec at a randomly
// chosen placement. Empty text is a no-op that consumes no
// randomness.
func (g *Grammar) PlaceText(spec *scene.Spec, text string) {
	if text == "" {
		return
	}
	placement := g.choose([]weighted{
		{"center", 0.35},
		{"top", 0.25},
		{"bottom", 0.25},
		{"corner", 0.15},
	})
	var x, y float64
	switch placement {
	case "center":
		x, y = 0.5, 0.5
	case "top":
		x, y = 0.5, 0.12
	case "bottom":
		x, y = 0.5, 0.88
	case "corner":
		x, y = 0.08, 0.08
	}
	spec.Text = append(spec.Text, scene.TextElement{
		Text:      text,
		Placement: placement,
		X:         x,
		Y:         y,
	})
}
