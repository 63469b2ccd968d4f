package compose

import (
	"fmt"
	"math"
	"sort"

	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

// PostFXSpec names a registered post-processing step plus its
// parameters. Steps run in chain order, each one pass over the grid.
// Unrecognized extra parameters are ignored so chains stay compatible
// across versions; unknown step names are configuration errors.
type PostFXSpec struct {
	Type   string
	Params render.Params
}

type postFXFn func(g *render.Grid, p render.Params, t float64)

var postFXRegistry = map[string]postFXFn{
	"threshold":   fxThreshold,
	"invert":      fxInvert,
	"edge_detect": fxEdgeDetect,
	"scanlines":   fxScanlines,
	"vignette":    fxVignette,
	"pixelate":    fxPixelate,
	"color_shift": fxColorShift,
}

// PostFXNames returns the registered step names sorted.
func PostFXNames() []string {
	names := make([]string, 0, len(postFXRegistry))
	for n := range postFXRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// KnownPostFX reports whether name is registered.
func KnownPostFX(name string) bool {
	_, ok := postFXRegistry[name]
	return ok
}

// ApplyPostFX runs the chain over g at time t.
func ApplyPostFX(g *render.Grid, chain []PostFXSpec, t float64) error {
	for _, step := range chain {
		fn, ok := postFXRegistry[step.Type]
		if !ok {
			return fmt.Errorf("compose: unknown postfx %q", step.Type)
		}
		fn(g, step.Params, t)
	}
	return nil
}

func fxThreshold(g *render.Grid, p render.Params, _ float64) {
	threshIdx := int(p.Float("threshold", 0.5) * 9)
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g.At(x, y)
			if c.Index >= threshIdx {
				c.Index = 9
			} else {
				c.Index = 0
			}
			g.Set(x, y, c)
		}
	}
}

func fxInvert(g *render.Grid, _ render.Params, _ float64) {
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g.At(x, y)
			c.Index = 9 - c.Index
			c.Fg = render.RGB{R: 255 - c.Fg.R, G: 255 - c.Fg.G, B: 255 - c.Fg.B}
			if c.BgSet {
				c.Bg = render.RGB{R: 255 - c.Bg.R, G: 255 - c.Bg.G, B: 255 - c.Bg.B}
			}
			g.Set(x, y, c)
		}
	}
}

func fxEdgeDetect(g *render.Grid, _ render.Params, _ float64) {
	w, h := g.Width(), g.Height()
	if w < 3 || h < 3 {
		return
	}
	// Sobel magnitudes come from a snapshot so writes never feed back.
	vals := make([]int, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vals[y*w+x] = g.At(x, y).Index
		}
	}
	at := func(x, y int) int { return vals[y*w+x] }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			gy := (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
			mag := absInt(gx) + absInt(gy)
			if mag > 9 {
				mag = 9
			}
			c := g.At(x, y)
			c.Index = mag
			g.Set(x, y, c)
		}
	}
}

func fxScanlines(g *render.Grid, p render.Params, t float64) {
	spacing := p.Int("spacing", 4)
	if spacing < 1 {
		spacing = 1
	}
	darkness := p.Float("darkness", 0.3)
	offset := 0
	if scroll := p.Float("scroll_speed", 0); scroll > 0 {
		offset = int(t * scroll * float64(spacing))
	}
	factor := 1 - darkness
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		if (y+offset)%spacing != 0 {
			continue
		}
		for x := 0; x < w; x++ {
			c := g.At(x, y)
			c.Fg = render.Scale(c.Fg, factor)
			c.Index = scaleIndex(c.Index, factor)
			g.Set(x, y, c)
		}
	}
}

func fxVignette(g *render.Grid, p render.Params, t float64) {
	strength := p.Float("strength", 0.5)
	if speed := p.Float("pulse_speed", 0); speed > 0 {
		strength += p.Float("pulse_amp", 0) * math.Sin(vmath.Tau*speed*t)
	}
	w, h := g.Width(), g.Height()
	if w == 0 || h == 0 {
		return
	}
	cx := float64(w) / 2
	cy := float64(h) / 2
	maxDist := math.Sqrt(cx*cx + cy*cy)
	if maxDist == 0 {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			nd := math.Sqrt(dx*dx+dy*dy) / maxDist
			factor := 1 - strength*nd*nd
			if factor < 0 {
				factor = 0
			}
			c := g.At(x, y)
			c.Fg = render.Scale(c.Fg, factor)
			c.Index = scaleIndex(c.Index, factor)
			g.Set(x, y, c)
		}
	}
}

func fxPixelate(g *render.Grid, p render.Params, t float64) {
	block := p.Int("block_size", 4)
	if speed := p.Float("pulse_speed", 0); speed > 0 {
		block += int(math.Round(p.Float("pulse_amp", 0) * math.Sin(vmath.Tau*speed*t)))
	}
	if block < 1 {
		block = 1
	}
	w, h := g.Width(), g.Height()
	for by := 0; by < h; by += block {
		for bx := 0; bx < w; bx += block {
			totalIdx, totalR, totalG, totalB, count := 0, 0, 0, 0, 0
			for dy := 0; dy < block && by+dy < h; dy++ {
				for dx := 0; dx < block && bx+dx < w; dx++ {
					c := g.At(bx+dx, by+dy)
					totalIdx += c.Index
					totalR += int(c.Fg.R)
					totalG += int(c.Fg.G)
					totalB += int(c.Fg.B)
					count++
				}
			}
			if count == 0 {
				continue
			}
			avg := render.Cell{
				Index: totalIdx / count,
				Fg: render.RGB{
					R: uint8(totalR / count),
					G: uint8(totalG / count),
					B: uint8(totalB / count),
				},
			}
			for dy := 0; dy < block && by+dy < h; dy++ {
				for dx := 0; dx < block && bx+dx < w; dx++ {
					g.Set(bx+dx, by+dy, avg)
				}
			}
		}
	}
}

func fxColorShift(g *render.Grid, p render.Params, t float64) {
	hueShift := p.Float("hue_shift", 0.1)
	if drift := p.Float("drift_speed", 0); drift > 0 {
		hueShift += t * drift
	}
	angle := hueShift * vmath.Tau
	cosA := math.Cos(angle)
	sinA := math.Sin(angle)
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g.At(x, y)
			c.Fg = hueRotate(c.Fg, cosA, sinA)
			g.Set(x, y, c)
		}
	}
}

// hueRotate applies a luminance-preserving hue rotation in RGB space.
func hueRotate(c render.RGB, cosA, sinA float64) render.RGB {
	r := float64(c.R)
	g := float64(c.G)
	b := float64(c.B)
	nr := r*(0.299+0.701*cosA+0.168*sinA) +
		g*(0.587-0.587*cosA+0.330*sinA) +
		b*(0.114-0.114*cosA-0.497*sinA)
	ng := r*(0.299-0.299*cosA-0.328*sinA) +
		g*(0.587+0.413*cosA+0.035*sinA) +
		b*(0.114-0.114*cosA+0.292*sinA)
	nb := r*(0.299-0.300*cosA+1.250*sinA) +
		g*(0.587-0.588*cosA-1.050*sinA) +
		b*(0.114+0.886*cosA-0.203*sinA)
	return render.RGB{
		R: uint8(vmath.Clamp(nr, 0, 255)),
		G: uint8(vmath.Clamp(ng, 0, 255)),
		B: uint8(vmath.Clamp(nb, 0, 255)),
	}
}

func scaleIndex(idx int, factor float64) int {
	scaled := int(float64(idx) * factor)
	if scaled < 0 {
		scaled = 0
	}
	return scaled
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
