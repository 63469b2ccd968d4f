// Command moodgrid renders mood-driven procedural art from the
// command line. "generate" builds one picture or an animation,
// "capabilities" dumps the option sets as JSON for front ends.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/moodgrid/export"
	"github.com/lixenwraith/moodgrid/pipeline"
	"github.com/lixenwraith/moodgrid/scene"
)

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string     { return strings.Join(*m, ",") }
func (m *multiFlag) Set(s string) error { *m = append(*m, s); return nil }

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "capabilities":
		err = runCapabilities(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: moodgrid <command> [flags]

commands:
  generate      render a picture or animation
  capabilities  list moods, effects, transforms, postfx, masks as JSON`)
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)

	mood := fs.String("mood", "", "mood name (see capabilities)")
	text := fs.String("text", "", "free text to infer the mood from")
	seed := fs.Int64("seed", 42, "random seed")
	width := fs.Int("width", pipeline.DefaultWidth, "grid width in cells")
	height := fs.Int("height", pipeline.DefaultHeight, "grid height in cells")
	title := fs.String("title", "", "text label placed on the picture")
	drift := fs.Float64("drift", 0, "param drift strength in [0,1]")

	out := fs.String("out", "", "PNG output path (empty = ANSI to stdout)")
	outW := fs.Int("out-width", 0, "PNG pixel width (0 = native)")
	outH := fs.Int("out-height", 0, "PNG pixel height (0 = native)")
	framesDir := fs.String("frames", "", "directory for animation frames")
	duration := fs.Float64("duration", 3.0, "animation length in seconds")
	fps := fs.Int("fps", 15, "animation frame rate")

	specIn := fs.String("spec", "", "render this spec file instead of generating")
	specOut := fs.String("spec-out", "", "save the generated spec as YAML")
	overridesFile := fs.String("overrides", "", "YAML file of director overrides")

	effectName := fs.String("effect", "", "override: base effect")
	variant := fs.String("variant", "", "override: effect variant")
	overlay := fs.String("overlay", "", "override: overlay effect")
	blend := fs.String("blend", "", "override: blend mode")
	mix := fs.Float64("mix", -1, "override: overlay mix (negative = unset)")
	composition := fs.String("composition", "", "override: composition mode")
	maskArg := fs.String("mask", "", "override: mask as name:key=val,...")
	gradient := fs.String("gradient", "", "override: character gradient")
	var transformArgs, postfxArgs multiFlag
	fs.Var(&transformArgs, "transform", "override: transform as name:key=val,... (repeatable)")
	fs.Var(&postfxArgs, "postfx", "override: postfx step as name:key=val,... (repeatable)")

	jsonStatus := fs.Bool("json", false, "print a JSON status object")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := pipeline.Request{
		Mood:   *mood,
		Text:   *text,
		Seed:   *seed,
		Width:  *width,
		Height: *height,
		Title:  *title,
		Drift:  *drift,
	}

	if *specIn != "" {
		spec, err := scene.Load(*specIn)
		if err != nil {
			return err
		}
		req.Spec = spec
	}

	ov, err := buildOverrides(*overridesFile, *effectName, *variant, *overlay,
		*blend, *mix, *composition, *maskArg, *gradient, transformArgs, postfxArgs)
	if err != nil {
		return err
	}
	req.Overrides = ov

	opts := export.ImageOptions{Width: *outW, Height: *outH}

	if *framesDir != "" {
		grids, spec, err := pipeline.Frames(req, *duration, *fps)
		if err != nil {
			return err
		}
		opts.Gradient = spec.Gradient
		opts.Text = spec.Text
		if err := os.MkdirAll(*framesDir, 0o755); err != nil {
			return err
		}
		paths, err := export.SaveFrames(*framesDir, grids, opts)
		if err != nil {
			return err
		}
		return finish(*jsonStatus, spec, *specOut, map[string]any{
			"frames": len(paths),
			"dir":    *framesDir,
		})
	}

	res, err := pipeline.Render(req)
	if err != nil {
		return err
	}
	opts.Gradient = res.Spec.Gradient
	opts.Text = res.Spec.Text

	if *out != "" {
		if err := export.SavePNG(*out, export.Image(res.Grid, opts)); err != nil {
			return err
		}
	} else {
		if err := export.WriteANSI(os.Stdout, res.Grid, res.Spec.Gradient); err != nil {
			return err
		}
	}
	return finish(*jsonStatus, res.Spec, *specOut, map[string]any{
		"out": *out,
	})
}

// buildOverrides merges the overrides file with individual flags;
// flags win.
func buildOverrides(path, effect, variant, overlay, blend string, mix float64,
	composition, maskArg, gradient string, transforms, postfx []string) (*scene.Overrides, error) {

	ov := &scene.Overrides{}
	touched := false

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read overrides: %w", err)
		}
		if err := yaml.Unmarshal(data, ov); err != nil {
			return nil, fmt.Errorf("parse overrides: %w", err)
		}
		touched = true
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
			touched = true
		}
	}
	set(&ov.Effect, effect)
	set(&ov.Variant, variant)
	set(&ov.Overlay, overlay)
	set(&ov.Blend, blend)
	set(&ov.Composition, composition)
	set(&ov.Gradient, gradient)
	if mix >= 0 {
		ov.Mix = &mix
		touched = true
	}
	if maskArg != "" {
		name, params, err := scene.ParseMaskArg(maskArg)
		if err != nil {
			return nil, err
		}
		ov.MaskType = name
		ov.MaskParams = params
		touched = true
	}
	if len(transforms) > 0 {
		descs, err := scene.ParseTransformArgs(transforms)
		if err != nil {
			return nil, err
		}
		ov.Transforms = descs
		touched = true
	}
	if len(postfx) > 0 {
		descs, err := scene.ParsePostFXArgs(postfx)
		if err != nil {
			return nil, err
		}
		ov.PostFX = descs
		touched = true
	}

	if !touched {
		return nil, nil
	}
	return ov, nil
}

func finish(jsonStatus bool, spec *scene.Spec, specOut string, extra map[string]any) error {
	if specOut != "" {
		if err := spec.Save(specOut); err != nil {
			return err
		}
	}
	if !jsonStatus {
		return nil
	}
	status := map[string]any{
		"seed":        spec.Seed,
		"effect":      spec.Effect,
		"variant":     spec.Variant,
		"overlay":     spec.Overlay,
		"composition": spec.Composition,
		"gradient":    spec.Gradient,
		"scheme":      spec.ColorScheme,
	}
	for k, v := range extra {
		status[k] = v
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(status)
}

func runCapabilities(args []string) error {
	fs := flag.NewFlagSet("capabilities", flag.ExitOnError)
	asYAML := fs.Bool("yaml", false, "emit YAML instead of JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	caps := scene.Describe()
	if *asYAML {
		data, err := yaml.Marshal(caps)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(caps)
}
