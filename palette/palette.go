// Package palette maps scalar field values to glyphs and colors. A
// gradient is an ordered run of characters from empty to solid; a
// scheme is a fixed color ramp; the continuous mapping derives hue from
// a warmth parameter instead of a named ramp.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

// Gradients indexed by name. Each runs sparse to dense.
var gradients = map[string][]rune{
	"classic": []rune(" .:-=+*#%@"),
	"blocks":  []rune(" ░▒▓█"),
	"smooth":  []rune(" .':;!>+*%@#█"),
	"matrix":  []rune(" .:-=+*@#"),
	"plasma":  []rune("$?01▄abc+-><:."),
	"default": []rune(" .:-=+*#%@"),
}

// Gradient returns the named gradient, falling back to default.
func Gradient(name string) []rune {
	if g, ok := gradients[name]; ok {
		return g
	}
	return gradients["default"]
}

// CharAt maps v in [0, 1] to a character of the named gradient.
func CharAt(v float64, name string) rune {
	g := Gradient(name)
	v = vmath.Clamp01(v)
	idx := vmath.ClampInt(int(v*float64(len(g)-1)), 0, len(g)-1)
	return g[idx]
}

// CharForIndex maps a cell density index to a character of the named
// gradient. The index space is remapped onto the gradient length, so
// gradients shorter or longer than ten steps still span fully.
func CharForIndex(idx int, name string) rune {
	v := float64(vmath.ClampInt(idx, 0, render.GradientLevels-1)) / float64(render.GradientLevels-1)
	return CharAt(v, name)
}

// SchemeColor maps v in [0, 1] through a named color ramp. Unknown
// names fall back to heat.
func SchemeColor(v float64, scheme string) render.RGB {
	v = vmath.Clamp01(v)
	switch scheme {
	case "rainbow":
		return rainbow(v)
	case "cool":
		return cool(v)
	case "matrix":
		return matrixGreen(v)
	case "plasma":
		return plasma(v)
	case "ocean":
		return ocean(v)
	case "fire":
		return fire(v)
	default:
		return heat(v)
	}
}

// warmthHue is the piecewise warmth-to-hue table: 0 is cold blue
// (hue 0.60), 1 is hot red (hue 0.00).
var warmthHue = [][2]float64{
	{0.0, 0.60}, {0.15, 0.55}, {0.3, 0.50}, {0.45, 0.40},
	{0.55, 0.30}, {0.7, 0.15}, {0.8, 0.10}, {0.9, 0.03}, {1.0, 0.00},
}

// ContinuousColor maps v through a warmth-derived hue instead of a
// named ramp. Saturation collapses toward gray at both value extremes
// so full black and full white stay achromatic.
func ContinuousColor(v, warmth, saturation float64) render.RGB {
	v = vmath.Clamp01(v)
	w := vmath.Clamp01(warmth)

	baseHue := warmthHue[len(warmthHue)-1][1]
	for i := 0; i < len(warmthHue)-1; i++ {
		w0, h0 := warmthHue[i][0], warmthHue[i][1]
		w1, h1 := warmthHue[i+1][0], warmthHue[i+1][1]
		if w <= w1 {
			t := 0.0
			if w1 > w0 {
				t = (w - w0) / (w1 - w0)
			}
			baseHue = h0 + (h1-h0)*t
			break
		}
	}

	hue := math.Mod(baseHue+v*0.1, 1.0)
	satFactor := 1.0 - math.Pow(2.0*v-1.0, 4)
	effSat := vmath.Clamp01(saturation * satFactor)

	r, g, b := colorful.Hsv(hue*360.0, effSat, v).RGB255()
	return render.RGB{R: r, G: g, B: b}
}

func heat(t float64) render.RGB {
	switch {
	case t < 0.25:
		return render.RGB{R: uint8(t * 4 * 180)}
	case t < 0.5:
		return render.RGB{R: uint8(180 + (t-0.25)*4*75)}
	case t < 0.75:
		return render.RGB{R: 255, G: uint8((t - 0.5) * 4 * 165)}
	default:
		return render.RGB{R: 255, G: 255, B: uint8(vmath.Clamp((t-0.75)*4*255, 0, 255))}
	}
}

func rainbow(t float64) render.RGB {
	h := math.Mod(t, 1.0)
	i := int(h * 6)
	f := h*6 - float64(i)

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = 1, f, 0
	case 1:
		r, g, b = 1-f, 1, 0
	case 2:
		r, g, b = 0, 1, f
	case 3:
		r, g, b = 0, 1-f, 1
	case 4:
		r, g, b = f, 0, 1
	default:
		r, g, b = 1, 0, 1-f
	}
	return render.RGB{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}

func cool(t float64) render.RGB {
	if t < 0.5 {
		return render.RGB{G: uint8(t * 2 * 255), B: 255}
	}
	return render.RGB{R: uint8(vmath.Clamp((t-0.5)*2*255, 0, 255)), G: 255, B: 255}
}

func matrixGreen(t float64) render.RGB {
	if t < 0.5 {
		return render.RGB{G: uint8(t * 2 * 128)}
	}
	return render.RGB{G: uint8(128 + (t-0.5)*2*127)}
}

// plasma is an HSV hue walk with brightness pulsing over t.
func plasma(t float64) render.RGB {
	h := math.Mod(t, 1.0)
	s := 1.0
	v := 0.5 + 0.5*math.Sin(t*math.Pi)

	i := int(h * 6)
	f := h*6 - float64(i)

	p := v * (1 - s)
	q := v * (1 - f*s)
	u := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i {
	case 0:
		r, g, b = v, u, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, u
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = u, p, v
	default:
		r, g, b = v, p, q
	}
	return render.RGB{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255)}
}

func ocean(t float64) render.RGB {
	switch {
	case t < 0.3:
		f := t / 0.3
		return render.RGB{R: uint8(f * 30), G: uint8(20 + f*80), B: uint8(80 + f*100)}
	case t < 0.6:
		f := (t - 0.3) / 0.3
		return render.RGB{R: uint8(30 + f*50), G: uint8(100 + f*130), B: uint8(180 + f*55)}
	default:
		f := (t - 0.6) / 0.4
		return render.RGB{R: uint8(80 + f*175), G: uint8(230 + f*25), B: uint8(vmath.Clamp(235+f*20, 0, 255))}
	}
}

func fire(t float64) render.RGB {
	switch {
	case t < 0.2:
		f := t / 0.2
		return render.RGB{R: uint8(f * 150)}
	case t < 0.45:
		f := (t - 0.2) / 0.25
		return render.RGB{R: uint8(150 + f*105), G: uint8(f * 80)}
	case t < 0.7:
		f := (t - 0.45) / 0.25
		return render.RGB{R: 255, G: uint8(80 + f*175), B: uint8(f * 30)}
	default:
		f := (t - 0.7) / 0.3
		return render.RGB{R: 255, G: 255, B: uint8(vmath.Clamp(30+f*225, 0, 255))}
	}
}
