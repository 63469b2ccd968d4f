package render

// RGB is a 24-bit color. Blend functions are free functions returning a
// new value; nothing here mutates in place.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// fastDiv255 approximates x/255 for x in [0, 65025] without a divide.
func fastDiv255(x int) int {
	return (x + (x >> 8) + 1) >> 8
}

func clampChan(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Lerp interpolates between a and b by t in [0, 1].
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clampChan(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: clampChan(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: clampChan(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// Scale multiplies each channel by f, clamping to [0, 255].
func Scale(c RGB, f float64) RGB {
	return RGB{
		R: clampChan(float64(c.R) * f),
		G: clampChan(float64(c.G) * f),
		B: clampChan(float64(c.B) * f),
	}
}

// Add is saturating per-channel addition.
func Add(a, b RGB) RGB {
	return RGB{
		R: clampChan(float64(a.R) + float64(b.R)),
		G: clampChan(float64(a.G) + float64(b.G)),
		B: clampChan(float64(a.B) + float64(b.B)),
	}
}

// Multiply darkens: out = a*b/255 per channel.
func Multiply(a, b RGB) RGB {
	return RGB{
		R: uint8(fastDiv255(int(a.R) * int(b.R))),
		G: uint8(fastDiv255(int(a.G) * int(b.G))),
		B: uint8(fastDiv255(int(a.B) * int(b.B))),
	}
}

// Screen lightens: out = 255 - (255-a)*(255-b)/255 per channel.
func Screen(a, b RGB) RGB {
	return RGB{
		R: uint8(255 - fastDiv255((255-int(a.R))*(255-int(b.R)))),
		G: uint8(255 - fastDiv255((255-int(a.G))*(255-int(b.G)))),
		B: uint8(255 - fastDiv255((255-int(a.B))*(255-int(b.B)))),
	}
}

func overlayChan(d, s int) uint8 {
	if d < 128 {
		return uint8(fastDiv255(2 * d * s))
	}
	return uint8(255 - fastDiv255(2*(255-d)*(255-s)))
}

// Overlay multiplies dark base channels and screens bright ones, with
// the split at 128.
func Overlay(a, b RGB) RGB {
	return RGB{
		R: overlayChan(int(a.R), int(b.R)),
		G: overlayChan(int(a.G), int(b.G)),
		B: overlayChan(int(a.B), int(b.B)),
	}
}

// Gray maps v in [0, 1] to a neutral gray.
func Gray(v float64) RGB {
	c := clampChan(v * 255.0)
	return RGB{c, c, c}
}

// Luminance is the Rec.601 weighted brightness in [0, 255].
func Luminance(c RGB) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}
