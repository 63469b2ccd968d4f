package scene

import (
	"path/filepath"
	"testing"

	"github.com/lixenwraith/moodgrid/render"
)

func TestParseCompound(t *testing.T) {
	tests := []struct {
		arg      string
		wantName string
		wantKeys map[string]any
	}{
		{"kaleidoscope", "kaleidoscope", nil},
		{"kaleidoscope:segments=6", "kaleidoscope", map[string]any{"segments": 6}},
		{"vignette:strength=0.5", "vignette", map[string]any{"strength": 0.5}},
		{"tile:cols=3,rows=2", "tile", map[string]any{"cols": 3, "rows": 2}},
		{"foo:mode=bar", "foo", map[string]any{"mode": "bar"}},
		{"effect:a=1,b=0.5,c=hello", "effect", map[string]any{"a": 1, "b": 0.5, "c": "hello"}},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			name, params, err := ParseCompound(tt.arg)
			if err != nil {
				t.Fatalf("ParseCompound(%q): %v", tt.arg, err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(params) != len(tt.wantKeys) {
				t.Fatalf("params = %v, want %v", params, tt.wantKeys)
			}
			for k, want := range tt.wantKeys {
				if got := params[k]; got != want {
					t.Errorf("params[%q] = %v (%T), want %v (%T)", k, got, got, want, want)
				}
			}
		})
	}
}

func TestParseCompoundErrors(t *testing.T) {
	for _, arg := range []string{"", "name:novalue", "name:=5", ":x=1"} {
		if _, _, err := ParseCompound(arg); err == nil {
			t.Errorf("ParseCompound(%q) should error", arg)
		}
	}
}

func TestSpecYAMLRoundTrip(t *testing.T) {
	orig := &Spec{
		Seed:         42,
		Effect:       "plasma",
		EffectParams: render.Params{"frequency": 0.05, "octaves": 3},
		Variant:      "warped",
		Overlay:      "wave",
		OverlayBlend: "screen",
		OverlayMix:   0.4,
		Transforms: []TransformDesc{
			{Type: "kaleidoscope", Params: render.Params{"segments": 6}},
			{Type: "tile", Params: render.Params{"cols": 2, "rows": 2}},
		},
		Composition: "radial_masked",
		MaskType:    "radial",
		MaskParams:  render.Params{"radius": 0.3},
		PostFX: []PostFXDesc{
			{Type: "vignette", Params: render.Params{"strength": 0.5}},
		},
		Background: &BackgroundDesc{
			Effect:      "noise_field",
			ColorScheme: "ocean",
			Dim:         0.3,
			Mask:        &MaskDesc{Type: "radial", Params: render.Params{"radius": 0.4}},
		},
		ColorScheme: "heat",
		Gradient:    "classic",
		Warmth:      0.7,
		Saturation:  0.9,
		Brightness:  0.8,
	}

	data, err := orig.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Effect != orig.Effect || got.Variant != orig.Variant {
		t.Errorf("effect fields lost: %+v", got)
	}
	if got.Overlay != "wave" || got.OverlayBlend != "screen" || got.OverlayMix != 0.4 {
		t.Errorf("overlay fields lost: %+v", got)
	}
	if len(got.Transforms) != 2 || got.Transforms[0].Type != "kaleidoscope" {
		t.Errorf("transforms lost: %+v", got.Transforms)
	}
	if got.Composition != "radial_masked" || got.MaskType != "radial" {
		t.Errorf("composition fields lost: %+v", got)
	}
	if got.Background == nil || got.Background.Mask == nil || got.Background.Mask.Type != "radial" {
		t.Errorf("background lost: %+v", got.Background)
	}
	if got.Seed != 42 {
		t.Errorf("seed = %d, want 42", got.Seed)
	}
}

func TestSpecSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.yaml")
	orig := &Spec{Seed: 7, Effect: "wave", Composition: "blend", PostFX: []PostFXDesc{{Type: "invert"}}}
	if err := orig.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Effect != "wave" || got.Seed != 7 || len(got.PostFX) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}
}

func TestOverridesValidate(t *testing.T) {
	tests := []struct {
		name     string
		o        Overrides
		wantErrs int
	}{
		{"empty", Overrides{}, 0},
		{"valid transform", Overrides{Transforms: []TransformDesc{{Type: "kaleidoscope"}}}, 0},
		{"invalid transform", Overrides{Transforms: []TransformDesc{{Type: "nonexistent"}}}, 1},
		{"valid postfx", Overrides{PostFX: []PostFXDesc{{Type: "vignette"}}}, 0},
		{"invalid postfx", Overrides{PostFX: []PostFXDesc{{Type: "nonexistent"}}}, 1},
		{"valid composition", Overrides{Composition: "radial_masked"}, 0},
		{"invalid composition", Overrides{Composition: "unknown"}, 1},
		{"valid mask", Overrides{MaskType: "radial"}, 0},
		{"invalid mask", Overrides{MaskType: "nonexistent"}, 1},
		{"invalid blend", Overrides{Blend: "subtract"}, 1},
		{"multiple", Overrides{
			Transforms:  []TransformDesc{{Type: "bad"}},
			PostFX:      []PostFXDesc{{Type: "bad"}},
			Composition: "bad",
		}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.o.Validate()
			if len(errs) != tt.wantErrs {
				t.Errorf("Validate() = %v, want %d errors", errs, tt.wantErrs)
			}
		})
	}
}

func TestOverridesApplyVerbatim(t *testing.T) {
	spec := &Spec{Seed: 42, Effect: "plasma", Composition: "blend"}
	mix := 0.4
	o := Overrides{
		Overlay:     "wave",
		Blend:       "screen",
		Mix:         &mix,
		Composition: "radial_masked",
		MaskType:    "radial",
		MaskParams:  render.Params{"radius": 0.3},
		Transforms:  []TransformDesc{{Type: "kaleidoscope", Params: render.Params{"segments": 6}}},
		PostFX:      []PostFXDesc{{Type: "vignette", Params: render.Params{"strength": 0.5}}},
	}
	if err := o.Apply(spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if spec.Overlay != "wave" || spec.OverlayBlend != "screen" || spec.OverlayMix != 0.4 {
		t.Errorf("overlay overrides not applied: %+v", spec)
	}
	if spec.Composition != "radial_masked" || spec.MaskType != "radial" {
		t.Errorf("composition overrides not applied: %+v", spec)
	}
	if len(spec.Transforms) != 1 || spec.Transforms[0].Type != "kaleidoscope" {
		t.Errorf("transform override not applied: %+v", spec.Transforms)
	}
	if v := spec.MaskParams.Float("radius", 0); v != 0.3 {
		t.Errorf("mask params not merged: %v", spec.MaskParams)
	}
}

func TestOverridesApplyInvalid(t *testing.T) {
	spec := &Spec{Seed: 1, Effect: "plasma"}
	o := Overrides{Transforms: []TransformDesc{{Type: "nonexistent"}}}
	if err := o.Apply(spec); err == nil {
		t.Fatal("invalid override should fail Apply")
	}
}

func TestOverridesVariantSamplesParams(t *testing.T) {
	spec := &Spec{Seed: 42, Effect: "plasma"}
	o := Overrides{Variant: "warped"}
	if err := o.Apply(spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if spec.Variant != "warped" {
		t.Errorf("variant = %q, want warped", spec.Variant)
	}
	if _, ok := spec.EffectParams["self_warp"]; !ok {
		t.Errorf("variant ranges not sampled into params: %v", spec.EffectParams)
	}
}

func TestOverridesVariantUnknown(t *testing.T) {
	spec := &Spec{Seed: 42, Effect: "plasma"}
	o := Overrides{Variant: "imaginary"}
	if err := o.Apply(spec); err == nil {
		t.Fatal("unknown variant should fail Apply")
	}
}

func TestOverridesAutoOverlay(t *testing.T) {
	spec := &Spec{Seed: 42, Effect: "plasma", Composition: "blend"}
	o := Overrides{Composition: "radial_masked"}
	if err := o.Apply(spec); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if spec.Overlay == "" {
		t.Fatal("masked composition should auto-pick an overlay")
	}
	if spec.Overlay == spec.Effect {
		t.Error("auto overlay should differ from the base effect")
	}
	if spec.OverlayMix != 0.3 {
		t.Errorf("auto overlay mix = %v, want 0.3", spec.OverlayMix)
	}
	if spec.MaskType != "radial" {
		t.Errorf("mask type = %q, want radial", spec.MaskType)
	}
}

func TestOverridesApplyDeterministic(t *testing.T) {
	run := func() *Spec {
		spec := &Spec{Seed: 42, Effect: "plasma"}
		o := Overrides{Variant: "warped", Composition: "noise_masked"}
		if err := o.Apply(spec); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		return spec
	}
	a, b := run(), run()
	if a.Overlay != b.Overlay {
		t.Errorf("overlay pick differs: %q vs %q", a.Overlay, b.Overlay)
	}
	for k, v := range a.EffectParams {
		if b.EffectParams[k] != v {
			t.Errorf("sampled param %q differs: %v vs %v", k, v, b.EffectParams[k])
		}
	}
	if a.MaskType != "noise" || b.MaskType != "noise" {
		t.Errorf("noise_masked should map to noise mask, got %q", a.MaskType)
	}
}

func TestDescribe(t *testing.T) {
	caps := Describe()
	if len(caps.Effects) != 9 {
		t.Errorf("effects = %v, want 9 entries", caps.Effects)
	}
	found := false
	for _, tr := range caps.Transforms {
		if tr == "kaleidoscope" {
			found = true
		}
	}
	if !found {
		t.Error("transforms should include kaleidoscope")
	}
	plasma, ok := caps.Variants["plasma"]
	if !ok {
		t.Fatal("variants should be grouped by effect")
	}
	hasWarped := false
	for _, v := range plasma {
		if v == "warped" {
			hasWarped = true
		}
	}
	if !hasWarped {
		t.Errorf("plasma variants = %v, want to include warped", plasma)
	}
	if len(caps.CompositionModes) != 4 {
		t.Errorf("composition modes = %v", caps.CompositionModes)
	}
	if len(caps.Emotions) == 0 {
		t.Error("emotions should not be empty")
	}
}
