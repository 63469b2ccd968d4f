// Package export turns finished grids into presentable artifacts:
// PNG images built from gradient glyphs, ANSI truecolor text for
// terminals, and parallel frame sequences for animation encoding.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/moodgrid/palette"
	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/scene"
)

// Face7x13 cell metrics.
const (
	cellW   = 7
	cellH   = 13
	ascentY = 11
)

// ImageOptions controls PNG rasterization. Zero values mean the
// default gradient at native glyph resolution with no labels.
type ImageOptions struct {
	Gradient string
	// Width and Height, when both positive, nearest-neighbor scale
	// the glyph raster to exactly that size.
	Width  int
	Height int
	// Text elements are drawn over the cells in white.
	Text []scene.TextElement
}

// Image rasterizes the grid. Each cell is a cellW x cellH block: the
// background color first, then the gradient glyph for the cell's
// density index in the foreground color.
func Image(g *render.Grid, opts ImageOptions) *image.RGBA {
	w, h := g.Width(), g.Height()
	img := image.NewRGBA(image.Rect(0, 0, w*cellW, h*cellH))

	d := font.Drawer{Dst: img, Face: basicfont.Face7x13}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g.At(x, y)
			bg := render.Black
			if c.BgSet {
				bg = c.Bg
			}
			fillRect(img, x*cellW, y*cellH, cellW, cellH, bg)

			r := palette.CharForIndex(c.Index, opts.Gradient)
			if r == ' ' {
				continue
			}
			d.Src = image.NewUniform(color.RGBA{c.Fg.R, c.Fg.G, c.Fg.B, 255})
			d.Dot = fixed.P(x*cellW, y*cellH+ascentY)
			d.DrawString(string(r))
		}
	}

	for _, el := range opts.Text {
		drawLabel(img, el)
	}

	if opts.Width > 0 && opts.Height > 0 {
		dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		return dst
	}
	return img
}

func fillRect(img *image.RGBA, x0, y0, w, h int, c render.RGB) {
	col := color.RGBA{c.R, c.G, c.B, 255}
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

// drawLabel places a text element by its fractional coordinates,
// centered on the x position.
func drawLabel(img *image.RGBA, el scene.TextElement) {
	if el.Text == "" {
		return
	}
	b := img.Bounds()
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: basicfont.Face7x13,
	}
	width := d.MeasureString(el.Text).Round()
	px := int(el.X*float64(b.Dx())) - width/2
	py := int(el.Y * float64(b.Dy()))
	if py < ascentY {
		py = ascentY
	}
	d.Dot = fixed.P(px, py)
	d.DrawString(el.Text)
}

// SavePNG encodes the image to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return f.Close()
}
