package scene

import (
	"fmt"
	"math/rand"

	"github.com/lixenwraith/moodgrid/compose"
	"github.com/lixenwraith/moodgrid/effect"
	"github.com/lixenwraith/moodgrid/render"
)

// overrideSeedSalt keeps director sampling off the grammar's random
// stream, so an overridden spec differs from the generated one only in
// the overridden fields.
const overrideSeedSalt = 0x5EC5

// Overrides pins parts of a generated spec. Zero-valued fields are not
// applied; list fields replace the generated lists wholesale.
type Overrides struct {
	Effect      string          `yaml:"effect,omitempty"`
	Variant     string          `yaml:"variant,omitempty"`
	Overlay     string          `yaml:"overlay,omitempty"`
	Blend       string          `yaml:"blend,omitempty"`
	Mix         *float64        `yaml:"mix,omitempty"`
	Composition string          `yaml:"composition,omitempty"`
	MaskType    string          `yaml:"mask_type,omitempty"`
	MaskParams  render.Params   `yaml:"mask_params,omitempty"`
	Transforms  []TransformDesc `yaml:"transforms,omitempty"`
	PostFX      []PostFXDesc    `yaml:"postfx,omitempty"`
	Gradient    string          `yaml:"gradient,omitempty"`
}

// Validate collects every invalid name in the override set so a caller
// can report all of them at once.
func (o *Overrides) Validate() []error {
	var errs []error
	if o.Effect != "" && !effect.Known(o.Effect) {
		errs = append(errs, fmt.Errorf("unknown effect %q", o.Effect))
	}
	if o.Overlay != "" && !effect.Known(o.Overlay) {
		errs = append(errs, fmt.Errorf("unknown overlay effect %q", o.Overlay))
	}
	if o.Blend != "" {
		if _, err := compose.ParseBlendMode(o.Blend); err != nil {
			errs = append(errs, fmt.Errorf("unknown blend mode %q", o.Blend))
		}
	}
	if o.Composition != "" && !ValidComposition(o.Composition) {
		errs = append(errs, fmt.Errorf("unknown composition mode %q", o.Composition))
	}
	if o.MaskType != "" && !compose.KnownMask(o.MaskType) {
		errs = append(errs, fmt.Errorf("unknown mask %q", o.MaskType))
	}
	for _, tr := range o.Transforms {
		if !compose.KnownTransform(tr.Type) {
			errs = append(errs, fmt.Errorf("unknown transform %q", tr.Type))
		}
	}
	for _, fx := range o.PostFX {
		if !compose.KnownPostFX(fx.Type) {
			errs = append(errs, fmt.Errorf("unknown postfx %q", fx.Type))
		}
	}
	return errs
}

// Apply writes the overrides into spec verbatim. The variant override
// re-samples that variant's parameter ranges with a seed-derived
// source, never the grammar's. Masked composition without an overlay
// gets one picked automatically at the standard 0.3 mix.
func (o *Overrides) Apply(spec *Spec) error {
	if errs := o.Validate(); len(errs) > 0 {
		return fmt.Errorf("scene: invalid overrides: %v", errs)
	}

	if o.Effect != "" {
		spec.Effect = o.Effect
	}
	if o.Overlay != "" {
		spec.Overlay = o.Overlay
	}
	if o.Blend != "" {
		spec.OverlayBlend = o.Blend
	}
	if o.Mix != nil {
		spec.OverlayMix = *o.Mix
	}
	if o.Composition != "" {
		spec.Composition = o.Composition
	}
	if o.MaskType != "" {
		spec.MaskType = o.MaskType
	}
	if o.MaskParams != nil {
		if spec.MaskParams == nil {
			spec.MaskParams = render.Params{}
		}
		for k, v := range o.MaskParams {
			spec.MaskParams[k] = v
		}
	}
	if o.Transforms != nil {
		spec.Transforms = o.Transforms
	}
	if o.PostFX != nil {
		spec.PostFX = o.PostFX
	}
	if o.Gradient != "" {
		spec.Gradient = o.Gradient
	}

	rng := rand.New(rand.NewSource(spec.Seed ^ overrideSeedSalt))

	if o.Variant != "" {
		v, ok := effect.FindVariant(spec.Effect, o.Variant)
		if !ok {
			return fmt.Errorf("scene: effect %q has no variant %q", spec.Effect, o.Variant)
		}
		spec.Variant = o.Variant
		if spec.EffectParams == nil {
			spec.EffectParams = render.Params{}
		}
		for k, val := range v.Sample(rng) {
			spec.EffectParams[k] = val
		}
	}

	if spec.Composition != "" && spec.Composition != "blend" {
		ensureMaskedComposition(spec, rng)
	}
	return nil
}

// ensureMaskedComposition backfills the overlay and mask a masked
// composition mode needs when the grammar did not choose them.
func ensureMaskedComposition(spec *Spec, rng *rand.Rand) {
	if spec.Overlay == "" {
		names := effect.Names()
		i := rng.Intn(len(names))
		if names[i] == spec.Effect {
			i = (i + 1) % len(names)
		}
		spec.Overlay = names[i]
		spec.OverlayMix = 0.3
	}
	if spec.MaskType == "" {
		spec.MaskType = defaultMaskFor(spec.Composition, rng)
	}
}

func defaultMaskFor(mode string, rng *rand.Rand) string {
	switch mode {
	case "masked_split":
		if rng.Intn(2) == 0 {
			return "horizontal_split"
		}
		return "vertical_split"
	case "radial_masked":
		return "radial"
	case "noise_masked":
		return "noise"
	}
	return "radial"
}
