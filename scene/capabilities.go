package scene

import (
	"github.com/lixenwraith/moodgrid/compose"
	"github.com/lixenwraith/moodgrid/effect"
	"github.com/lixenwraith/moodgrid/emotion"
)

// Capabilities describes everything the renderer can be asked for, so
// driving tools can discover valid names instead of hardcoding them.
type Capabilities struct {
	Emotions         []string            `json:"emotions" yaml:"emotions"`
	Effects          []string            `json:"effects" yaml:"effects"`
	Transforms       []string            `json:"transforms" yaml:"transforms"`
	PostFX           []string            `json:"postfx" yaml:"postfx"`
	Masks            []string            `json:"masks" yaml:"masks"`
	CompositionModes []string            `json:"composition_modes" yaml:"composition_modes"`
	Variants         map[string][]string `json:"variants" yaml:"variants"`
}

// Describe assembles the current capability set from the registries.
func Describe() Capabilities {
	variants := make(map[string][]string)
	for _, name := range effect.Names() {
		vs := effect.Variants(name)
		list := make([]string, 0, len(vs))
		for _, v := range vs {
			list = append(list, v.Name)
		}
		variants[name] = list
	}
	return Capabilities{
		Emotions:         emotion.AnchorNames(),
		Effects:          effect.Names(),
		Transforms:       compose.TransformNames(),
		PostFX:           compose.PostFXNames(),
		Masks:            compose.MaskNames(),
		CompositionModes: CompositionModes,
		Variants:         variants,
	}
}
