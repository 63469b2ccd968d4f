package export

import (
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/scene"
)

func testGrid(w, h int) *render.Grid {
	g := render.NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, render.Cell{
				Index: (x + y) % render.GradientLevels,
				Fg:    render.RGB{R: uint8(40 * x), G: 128, B: uint8(40 * y)},
			})
		}
	}
	return g
}

func TestImageDimensions(t *testing.T) {
	img := Image(testGrid(4, 3), ImageOptions{})
	b := img.Bounds()
	if b.Dx() != 4*cellW || b.Dy() != 3*cellH {
		t.Errorf("got %dx%d, want %dx%d", b.Dx(), b.Dy(), 4*cellW, 3*cellH)
	}
}

func TestImageScaled(t *testing.T) {
	img := Image(testGrid(4, 3), ImageOptions{Width: 200, Height: 100})
	b := img.Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("got %dx%d, want 200x100", b.Dx(), b.Dy())
	}
}

func TestImageBackgroundFillsCell(t *testing.T) {
	g := render.NewGrid(2, 2)
	g.Set(0, 0, render.Cell{
		Index: 0,
		Bg:    render.RGB{R: 10, G: 200, B: 30},
		BgSet: true,
	})
	img := Image(g, ImageOptions{})

	// Index 0 maps to a blank glyph, so every pixel of the cell is
	// the background color.
	for y := 0; y < cellH; y++ {
		for x := 0; x < cellW; x++ {
			r, gr, b, _ := img.At(x, y).RGBA()
			if uint8(r>>8) != 10 || uint8(gr>>8) != 200 || uint8(b>>8) != 30 {
				t.Fatalf("pixel (%d,%d) = (%d,%d,%d), want bg color", x, y, r>>8, gr>>8, b>>8)
			}
		}
	}
}

func TestImageUnsetBackgroundIsBlack(t *testing.T) {
	g := render.NewGrid(1, 1)
	img := Image(g, ImageOptions{})
	r, gr, b, _ := img.At(0, 0).RGBA()
	if r != 0 || gr != 0 || b != 0 {
		t.Errorf("unset bg pixel = (%d,%d,%d), want black", r>>8, gr>>8, b>>8)
	}
}

func TestImageDrawsLabels(t *testing.T) {
	g := render.NewGrid(10, 4)
	plain := Image(g, ImageOptions{})
	labeled := Image(g, ImageOptions{Text: []scene.TextElement{
		{Text: "HI", Placement: "center", X: 0.5, Y: 0.5},
	}})

	same := true
	for i := range plain.Pix {
		if plain.Pix[i] != labeled.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("label left no pixels behind")
	}
}

func TestANSIStructure(t *testing.T) {
	g := testGrid(5, 3)
	out := ANSI(g, "classic")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if strings.Count(out, "\x1b[38;2;") != 5*3 {
		t.Errorf("got %d fg sequences, want %d", strings.Count(out, "\x1b[38;2;"), 5*3)
	}
	if !strings.HasSuffix(lines[0], sgrReset) {
		t.Error("line does not end with reset")
	}
}

func TestANSIBackgroundSequence(t *testing.T) {
	g := render.NewGrid(1, 1)
	g.Set(0, 0, render.Cell{Bg: render.RGB{R: 1, G: 2, B: 3}, BgSet: true})
	out := ANSI(g, "")
	if !strings.Contains(out, ";48;2;1;2;3m") {
		t.Errorf("missing bg sequence in %q", out)
	}
	if strings.Contains(ANSI(render.NewGrid(1, 1), ""), ";48;2;") {
		t.Error("unset bg emitted a bg sequence")
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	path := t.TempDir() + "/out.png"
	img := Image(testGrid(3, 2), ImageOptions{})
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestSaveFrames(t *testing.T) {
	dir := t.TempDir()
	frames := []*render.Grid{testGrid(2, 2), testGrid(2, 2), testGrid(2, 2)}

	paths, err := SaveFrames(dir, frames, ImageOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 3 {
		t.Fatalf("got %d paths, want 3", len(paths))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing frame file: %v", err)
		}
	}
	if !strings.HasSuffix(paths[1], "frame_0001.png") {
		t.Errorf("unexpected frame name %s", paths[1])
	}
}
