package effect

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/moodgrid/render"
)

func frame(t *testing.T, name string, seed int64, time float64, params render.Params) *render.Grid {
	t.Helper()
	e, err := New(name)
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	ctx := render.NewContext(24, 16, seed)
	ctx.Time = time
	if params != nil {
		ctx.Params = params
	}
	return render.Run(e, ctx)
}

func gridsEqual(a, b *render.Grid) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.At(x, y) != b.At(x, y) {
				return false
			}
		}
	}
	return true
}

func TestRegistryContents(t *testing.T) {
	want := []string{
		"chroma_spiral", "mod_xor", "moire", "noise_field",
		"plasma", "sdf_shapes", "ten_print", "wave", "wobbly",
	}
	got := Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if _, err := New("nonexistent"); err == nil {
		t.Error("New of unknown effect should fail")
	}
}

func TestEffectsDeterministicPerSeed(t *testing.T) {
	for _, name := range Names() {
		a := frame(t, name, 42, 1.5, nil)
		b := frame(t, name, 42, 1.5, nil)
		if !gridsEqual(a, b) {
			t.Errorf("%s: same seed and time produced different frames", name)
		}
	}
}

func TestEffectsVaryAcrossSeeds(t *testing.T) {
	// Seed-dependent effects must change with the seed. The closed-form
	// ones (plasma, wave, moire, mod_xor, chroma_spiral) are seed-free
	// by design unless distortion is on.
	for _, name := range []string{"noise_field", "ten_print", "wobbly", "sdf_shapes"} {
		a := frame(t, name, 1, 1.0, nil)
		b := frame(t, name, 2, 1.0, nil)
		if gridsEqual(a, b) {
			t.Errorf("%s: different seeds produced identical frames", name)
		}
	}
}

func TestEffectsFillEveryCell(t *testing.T) {
	for _, name := range Names() {
		g := frame(t, name, 7, 0.3, nil)
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				c := g.At(x, y)
				if c.Index < 0 || c.Index > 9 {
					t.Fatalf("%s: index out of range at (%d,%d): %d", name, x, y, c.Index)
				}
				if c.BgSet {
					t.Fatalf("%s: effects render transparent backgrounds, got bg at (%d,%d)", name, x, y)
				}
			}
		}
	}
}

func TestPlasmaVariantParamsChangeOutput(t *testing.T) {
	plain := frame(t, "plasma", 42, 1.0, nil)
	warped := frame(t, "plasma", 42, 1.0, render.Params{"self_warp": 0.6})
	if gridsEqual(plain, warped) {
		t.Error("self_warp should alter the plasma field")
	}
	noisy := frame(t, "plasma", 42, 1.0, render.Params{"noise_injection": 0.5})
	if gridsEqual(plain, noisy) {
		t.Error("noise_injection should alter the plasma field")
	}
}

func TestMoireDistortionAndCenters(t *testing.T) {
	plain := frame(t, "moire", 42, 1.0, nil)
	distorted := frame(t, "moire", 42, 1.0, render.Params{"distortion": 0.5})
	if gridsEqual(plain, distorted) {
		t.Error("distortion should alter the moire field")
	}
	multi := frame(t, "moire", 42, 1.0, render.Params{"multi_center": 3})
	if gridsEqual(plain, multi) {
		t.Error("multi_center should alter the moire field")
	}
}

func TestWaveIsHorizontal(t *testing.T) {
	// Without warp the wave field depends only on y.
	g := frame(t, "wave", 42, 1.3, nil)
	for y := 0; y < g.Height(); y++ {
		first := g.At(0, y)
		for x := 1; x < g.Width(); x++ {
			if g.At(x, y) != first {
				t.Fatalf("wave row %d is not constant", y)
			}
		}
	}
}

func TestModXorOperations(t *testing.T) {
	params := func(op string) render.Params {
		return render.Params{"operation": op, "speed": 0.0}
	}
	xor := frame(t, "mod_xor", 42, 0, params("xor"))
	and := frame(t, "mod_xor", 42, 0, params("and"))
	or := frame(t, "mod_xor", 42, 0, params("or"))
	if gridsEqual(xor, and) || gridsEqual(xor, or) {
		t.Error("bitwise operations should produce distinct patterns")
	}
	// Unknown operation falls back to xor.
	fallback := frame(t, "mod_xor", 42, 0, params("nand"))
	if !gridsEqual(xor, fallback) {
		t.Error("unknown operation should render as xor")
	}
}

func TestSDFShapesStaticWhenNotAnimated(t *testing.T) {
	params := render.Params{"animate": false}
	a := frame(t, "sdf_shapes", 42, 0.0, params)
	b := frame(t, "sdf_shapes", 42, 9.0, params)
	if !gridsEqual(a, b) {
		t.Error("animate=false should freeze the field in time")
	}
}

func TestNoiseFieldModes(t *testing.T) {
	single := frame(t, "noise_field", 42, 0.5, render.Params{"octaves": 1})
	fbm := frame(t, "noise_field", 42, 0.5, render.Params{"octaves": 5})
	turb := frame(t, "noise_field", 42, 0.5, render.Params{"octaves": 5, "turbulence": true})
	if gridsEqual(single, fbm) {
		t.Error("octave count should change the field")
	}
	if gridsEqual(fbm, turb) {
		t.Error("turbulence mode should change the field")
	}
}

func TestVariantSampleWithinRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for effectName, variants := range variantRegistry {
		for _, v := range variants {
			for trial := 0; trial < 20; trial++ {
				params := v.Sample(rng)
				for _, sp := range v.Spans {
					got, ok := params.FloatOk(sp.Key)
					if !ok {
						t.Fatalf("%s/%s: %s missing after sample", effectName, v.Name, sp.Key)
					}
					if got < sp.Min || got > sp.Max {
						t.Fatalf("%s/%s: %s = %v outside [%v, %v]",
							effectName, v.Name, sp.Key, got, sp.Min, sp.Max)
					}
					if sp.Integer {
						if _, isInt := params[sp.Key].(int); !isInt {
							t.Fatalf("%s/%s: %s should sample as int", effectName, v.Name, sp.Key)
						}
					}
				}
				for k, want := range v.Fixed {
					if params[k] != want {
						t.Fatalf("%s/%s: fixed %s = %v, want %v", effectName, v.Name, k, params[k], want)
					}
				}
			}
		}
	}
}

func TestVariantRegistryShape(t *testing.T) {
	for _, name := range Names() {
		variants := Variants(name)
		if len(variants) == 0 {
			t.Errorf("%s has no variants", name)
			continue
		}
		if variants[0].Name != "classic" {
			t.Errorf("%s: first variant should be classic, got %s", name, variants[0].Name)
		}
		total := 0.0
		for _, v := range variants {
			total += v.Weight
		}
		if total < 0.95 || total > 1.05 {
			t.Errorf("%s: variant weights sum to %v", name, total)
		}
	}
	if _, ok := FindVariant("plasma", "warped"); !ok {
		t.Error("FindVariant should locate plasma/warped")
	}
	if _, ok := FindVariant("plasma", "nonexistent"); ok {
		t.Error("FindVariant should miss unknown names")
	}
}

func TestSDFShapesIndexesStayInRange(t *testing.T) {
	cases := []struct {
		name   string
		params render.Params
	}{
		{"defaults", nil},
		{"single circle", render.Params{"shape_count": 1}},
		{"boxes", render.Params{"shape_type": "box", "shape_count": 3}},
		{"static", render.Params{"animate": false}},
	}
	for _, tc := range cases {
		for _, seed := range []int64{1, 7, 42} {
			for _, tm := range []float64{0, 0.3, 2.5} {
				g := frame(t, "sdf_shapes", seed, tm, tc.params)
				for y := 0; y < g.Height(); y++ {
					for x := 0; x < g.Width(); x++ {
						if idx := g.At(x, y).Index; idx < 0 || idx > 9 {
							t.Fatalf("%s seed %d t=%g: index %d at (%d,%d)",
								tc.name, seed, tm, idx, x, y)
						}
					}
				}
			}
		}
	}
}

func TestWaveZeroAmplitudeStaysInRange(t *testing.T) {
	for _, amp := range []float64{0.0, -1.0} {
		g := frame(t, "wave", 42, 0.5, render.Params{"amplitude": amp})
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				if idx := g.At(x, y).Index; idx < 0 || idx > 9 {
					t.Fatalf("amplitude %g: index %d at (%d,%d)", amp, idx, x, y)
				}
			}
		}
	}
}
