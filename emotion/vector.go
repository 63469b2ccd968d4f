// Package emotion models mood as a point in the three dimensional
// valence/arousal/dominance space and maps it onto continuous visual
// parameters. Valence runs unpleasant to pleasant, arousal calm to
// excited, dominance submissive to in-control; all three live in
// [-1, 1].
package emotion

import (
	"math"
	"sort"
	"strings"

	"github.com/lixenwraith/moodgrid/vmath"
)

// Vector is a VAD mood coordinate. Construct through New to get the
// component clamping.
type Vector struct {
	Valence   float64
	Arousal   float64
	Dominance float64
}

// New builds a vector with each component clamped to [-1, 1].
func New(valence, arousal, dominance float64) Vector {
	return Vector{
		Valence:   vmath.Clamp(valence, -1.0, 1.0),
		Arousal:   vmath.Clamp(arousal, -1.0, 1.0),
		Dominance: vmath.Clamp(dominance, -1.0, 1.0),
	}
}

// Magnitude is the vector length, read as mood intensity.
func (e Vector) Magnitude() float64 {
	return math.Sqrt(e.Valence*e.Valence + e.Arousal*e.Arousal + e.Dominance*e.Dominance)
}

// Normalized projects onto the unit sphere. The zero vector stays zero.
func (e Vector) Normalized() Vector {
	m := e.Magnitude()
	if m < 1e-10 {
		return Vector{}
	}
	return Vector{e.Valence / m, e.Arousal / m, e.Dominance / m}
}

// Lerp interpolates componentwise toward other by t.
func (e Vector) Lerp(other Vector, t float64) Vector {
	return New(
		vmath.Mix(e.Valence, other.Valence, t),
		vmath.Mix(e.Arousal, other.Arousal, t),
		vmath.Mix(e.Dominance, other.Dominance, t),
	)
}

// Slerp interpolates along the great arc between the two directions,
// which preserves intensity better than Lerp for moods of similar
// magnitude. Falls back to Lerp when the angle is degenerate.
func (e Vector) Slerp(other Vector, t float64) Vector {
	dot := e.Valence*other.Valence + e.Arousal*other.Arousal + e.Dominance*other.Dominance
	dot = vmath.Clamp(dot, -1.0, 1.0)

	omega := math.Acos(dot)
	if math.Abs(omega) < 1e-10 {
		return e.Lerp(other, t)
	}

	so := math.Sin(omega)
	s0 := math.Sin((1-t)*omega) / so
	s1 := math.Sin(t*omega) / so

	return New(
		s0*e.Valence+s1*other.Valence,
		s0*e.Arousal+s1*other.Arousal,
		s0*e.Dominance+s1*other.Dominance,
	)
}

// Distance is the euclidean distance to other.
func (e Vector) Distance(other Vector) float64 {
	dv := e.Valence - other.Valence
	da := e.Arousal - other.Arousal
	dd := e.Dominance - other.Dominance
	return math.Sqrt(dv*dv + da*da + dd*dd)
}

// Anchors are named mood coordinates drawn from the affect literature,
// plus the legacy market sentiment names.
var anchors = map[string]Vector{
	"joy":        {+0.76, +0.48, +0.35},
	"excitement": {+0.62, +0.75, +0.38},
	"euphoria":   {+0.90, +0.85, +0.60},
	"calm":       {+0.30, -0.60, +0.20},
	"serenity":   {+0.50, -0.40, +0.30},
	"surprise":   {+0.40, +0.67, -0.13},
	"awe":        {+0.50, +0.55, -0.30},
	"hope":       {+0.55, +0.20, +0.15},
	"nostalgia":  {+0.20, -0.20, -0.10},
	"melancholy": {-0.30, -0.30, -0.20},
	"anxiety":    {-0.51, +0.60, -0.33},
	"fear":       {-0.64, +0.60, -0.43},
	"panic":      {-0.80, +0.90, -0.60},
	"anger":      {-0.51, +0.59, +0.25},
	"sadness":    {-0.63, -0.27, -0.33},
	"despair":    {-0.80, -0.40, -0.70},
	"boredom":    {-0.20, -0.60, -0.20},
	"contempt":   {-0.40, +0.10, +0.50},
	"disgust":    {-0.60, +0.35, +0.20},
	"trust":      {+0.60, -0.10, +0.40},

	"bull":     {+0.70, +0.50, +0.40},
	"bear":     {-0.60, +0.40, -0.30},
	"neutral":  {+0.00, -0.10, +0.00},
	"volatile": {-0.10, +0.80, -0.20},
}

// FromName returns the anchor for a mood name, or the neutral anchor
// when the name is unknown. Matching is case insensitive.
func FromName(name string) Vector {
	if v, ok := anchors[strings.ToLower(name)]; ok {
		return v
	}
	return anchors["neutral"]
}

// KnownName reports whether name matches a mood anchor, case
// insensitively.
func KnownName(name string) bool {
	_, ok := anchors[strings.ToLower(name)]
	return ok
}

// AnchorNames lists the known mood names in sorted order.
func AnchorNames() []string {
	names := make([]string, 0, len(anchors))
	for n := range anchors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Blend mixes several moods by weight. Nil or zero-sum weights mean
// equal weighting; otherwise weights are normalized first.
func Blend(moods []Vector, weights []float64) Vector {
	if len(moods) == 0 {
		return Vector{}
	}

	norm := make([]float64, len(moods))
	if len(weights) != len(moods) {
		for i := range norm {
			norm[i] = 1.0 / float64(len(moods))
		}
	} else {
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if sum > 0 {
			for i, w := range weights {
				norm[i] = w / sum
			}
		} else {
			for i := range norm {
				norm[i] = 1.0 / float64(len(moods))
			}
		}
	}

	var v, a, d float64
	for i, m := range moods {
		v += m.Valence * norm[i]
		a += m.Arousal * norm[i]
		d += m.Dominance * norm[i]
	}
	return New(v, a, d)
}
