package compose

import (
	"math"

	"github.com/lixenwraith/moodgrid/render"
	"github.com/lixenwraith/moodgrid/vmath"
)

// Animated parameters are maps carrying at least "base" and "speed".
// Modes: "linear" (base + t*speed), "oscillate" (base + amp*sin(t*speed*tau),
// the default), "ping_pong" (base + amp*triangle(t*speed)). At t=0 every
// mode evaluates to base. Maps lacking base or speed pass through untouched.

func animSpec(v any) (base, speed, amp float64, mode string, ok bool) {
	var m render.Params
	switch s := v.(type) {
	case render.Params:
		m = s
	case map[string]any:
		m = render.Params(s)
	default:
		return 0, 0, 0, "", false
	}
	base, hasBase := m.FloatOk("base")
	speed, hasSpeed := m.FloatOk("speed")
	if !hasBase || !hasSpeed {
		return 0, 0, 0, "", false
	}
	amp = m.Float("amp", 0)
	mode = m.String("mode", "oscillate")
	return base, speed, amp, mode, true
}

func animValue(base, speed, amp float64, mode string, t float64) float64 {
	switch mode {
	case "linear":
		return base + t*speed
	case "ping_pong":
		return base + amp*vmath.Triangle(t*speed)
	default:
		return base + amp*math.Sin(t*speed*vmath.Tau)
	}
}

// ResolveAnimated replaces animated parameter specs with their value at
// time t. Static entries are carried over as-is; a nil map stays nil.
func ResolveAnimated(params render.Params, t float64) render.Params {
	if params == nil {
		return nil
	}
	animated := false
	for _, v := range params {
		if _, _, _, _, ok := animSpec(v); ok {
			animated = true
			break
		}
	}
	if !animated {
		return params
	}
	out := make(render.Params, len(params))
	for k, v := range params {
		if base, speed, amp, mode, ok := animSpec(v); ok {
			out[k] = animValue(base, speed, amp, mode, t)
		} else {
			out[k] = v
		}
	}
	return out
}
