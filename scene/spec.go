// Package scene defines the SceneSpec rendering recipe, its YAML
// persistence, and the director override mechanism that lets callers
// pin any part of a grammar-generated spec.
package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/moodgrid/compose"
	"github.com/lixenwraith/moodgrid/render"
)

// CompositionModes are the supported ways of combining the base effect
// with an overlay.
var CompositionModes = []string{"blend", "masked_split", "radial_masked", "noise_masked"}

// ValidComposition reports whether mode is a known composition mode.
func ValidComposition(mode string) bool {
	for _, m := range CompositionModes {
		if m == mode {
			return true
		}
	}
	return false
}

// TextElement is a free-text label with a placement chosen by the
// grammar. The engine ignores it; the presentation layer draws it.
type TextElement struct {
	Text      string  `yaml:"text"`
	Placement string  `yaml:"placement"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
}

// Spec is the complete rendering recipe. Rendering the same Spec with
// the same seed and time is fully reproducible.
type Spec struct {
	Seed int64 `yaml:"seed"`

	Effect       string        `yaml:"effect"`
	EffectParams render.Params `yaml:"effect_params,omitempty"`
	Variant      string        `yaml:"variant,omitempty"`

	Overlay       string        `yaml:"overlay,omitempty"`
	OverlayParams render.Params `yaml:"overlay_params,omitempty"`
	OverlayBlend  string        `yaml:"overlay_blend,omitempty"`
	OverlayMix    float64       `yaml:"overlay_mix,omitempty"`

	Transforms []TransformDesc `yaml:"transforms,omitempty"`

	Composition string        `yaml:"composition"`
	MaskType    string        `yaml:"mask_type,omitempty"`
	MaskParams  render.Params `yaml:"mask_params,omitempty"`

	PostFX []PostFXDesc `yaml:"postfx"`

	Background *BackgroundDesc `yaml:"background,omitempty"`

	ColorMode   string  `yaml:"color_mode,omitempty"`
	ColorScheme string  `yaml:"color_scheme,omitempty"`
	Gradient    string  `yaml:"gradient,omitempty"`
	Warmth      float64 `yaml:"warmth"`
	Saturation  float64 `yaml:"saturation"`
	Brightness  float64 `yaml:"brightness"`

	Text []TextElement `yaml:"text,omitempty"`
}

// TransformDesc names a coordinate transform plus its parameters,
// which may include animated specs.
type TransformDesc struct {
	Type   string        `yaml:"type"`
	Params render.Params `yaml:"params,omitempty"`
}

// PostFXDesc names a post-processing step plus its parameters.
type PostFXDesc struct {
	Type   string        `yaml:"type"`
	Params render.Params `yaml:"params,omitempty"`
}

// MaskDesc names a mask family plus its unprefixed parameters.
type MaskDesc struct {
	Type   string        `yaml:"type"`
	Params render.Params `yaml:"params,omitempty"`
}

// BackgroundDesc is the background-fill recipe.
type BackgroundDesc struct {
	Effect       string          `yaml:"effect"`
	EffectParams render.Params   `yaml:"effect_params,omitempty"`
	Transforms   []TransformDesc `yaml:"transforms,omitempty"`
	PostFX       []PostFXDesc    `yaml:"postfx,omitempty"`
	Mask         *MaskDesc       `yaml:"mask,omitempty"`
	ColorMode    string          `yaml:"color_mode,omitempty"`
	ColorScheme  string          `yaml:"color_scheme,omitempty"`
	Warmth       float64         `yaml:"warmth,omitempty"`
	Saturation   float64         `yaml:"saturation,omitempty"`
	Dim          float64         `yaml:"dim,omitempty"`
}

// ComposeTransforms converts the descriptor list to the compose form.
func ComposeTransforms(descs []TransformDesc) []compose.TransformSpec {
	if len(descs) == 0 {
		return nil
	}
	out := make([]compose.TransformSpec, len(descs))
	for i, d := range descs {
		out[i] = compose.TransformSpec{Type: d.Type, Params: d.Params}
	}
	return out
}

// ComposePostFX converts the descriptor list to the compose form.
func ComposePostFX(descs []PostFXDesc) []compose.PostFXSpec {
	if len(descs) == 0 {
		return nil
	}
	out := make([]compose.PostFXSpec, len(descs))
	for i, d := range descs {
		out[i] = compose.PostFXSpec{Type: d.Type, Params: d.Params}
	}
	return out
}

// ComposeBackground converts the background descriptor to the compose
// form, nil for nil.
func ComposeBackground(d *BackgroundDesc) *compose.BackgroundSpec {
	if d == nil {
		return nil
	}
	spec := &compose.BackgroundSpec{
		Effect:       d.Effect,
		EffectParams: d.EffectParams,
		Transforms:   ComposeTransforms(d.Transforms),
		PostFX:       ComposePostFX(d.PostFX),
		ColorMode:    d.ColorMode,
		ColorScheme:  d.ColorScheme,
		Warmth:       d.Warmth,
		Saturation:   d.Saturation,
		Dim:          d.Dim,
	}
	if d.Mask != nil {
		spec.Mask = &compose.MaskSpec{Type: d.Mask.Type, Params: d.Mask.Params}
	}
	return spec
}

// Marshal encodes the spec as YAML.
func (s *Spec) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Unmarshal decodes a YAML spec.
func Unmarshal(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: decode spec: %w", err)
	}
	return &s, nil
}

// Load reads a YAML spec file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read spec: %w", err)
	}
	return Unmarshal(data)
}

// Save writes the spec as a YAML file.
func (s *Spec) Save(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("scene: encode spec: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
