package render

import "math/rand"

// Params carries effect configuration. Values arrive from scene specs
// and config files, so numbers may be int or float64 depending on the
// decoder; the getters normalize.
type Params map[string]any

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Float returns the parameter as a float64, or def when absent or not
// numeric.
func (p Params) Float(key string, def float64) float64 {
	if v, ok := p[key]; ok {
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return def
}

// FloatOk reports the parameter and whether it was present and numeric.
func (p Params) FloatOk(key string) (float64, bool) {
	if v, ok := p[key]; ok {
		return toFloat(v)
	}
	return 0, false
}

// Int returns the parameter as an int, truncating floats, or def.
func (p Params) Int(key string, def int) int {
	if v, ok := p[key]; ok {
		if f, ok := toFloat(v); ok {
			return int(f)
		}
	}
	return def
}

// Bool returns the parameter as a bool, or def.
func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// String returns the parameter as a string, or def.
func (p Params) String(key string, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Clone returns a shallow copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Context is the per-frame render state handed to every effect phase.
// Rng is seeded from Seed before each frame; effects that need
// frame-stable randomness draw from it in Pre.
type Context struct {
	Width  int
	Height int
	Time   float64
	Frame  int
	Seed   int64
	Rng    *rand.Rand
	Params Params
}

// NewContext builds a context with a seeded Rng and empty params.
func NewContext(width, height int, seed int64) *Context {
	return &Context{
		Width:  width,
		Height: height,
		Seed:   seed,
		Rng:    rand.New(rand.NewSource(seed)),
		Params: Params{},
	}
}

// Aspect is width/height, 1 when height is zero.
func (ctx *Context) Aspect() float64 {
	if ctx.Height == 0 {
		return 1.0
	}
	return float64(ctx.Width) / float64(ctx.Height)
}
