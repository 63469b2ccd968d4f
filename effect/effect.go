// Package effect holds the per-pixel field generators. Each effect is
// a closed-form function of position, time and its parameter bag; all
// randomness is drawn from the context in Pre so a frame is a pure
// function of seed and time.
package effect

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/moodgrid/render"
)

// Factory builds a fresh effect instance.
type Factory func() render.Effect

var registry = map[string]Factory{}

// Register adds a named effect factory. Duplicate names panic at init
// time, which is the only time registration happens.
func Register(name string, f Factory) {
	if _, dup := registry[name]; dup {
		panic("effect: duplicate registration of " + name)
	}
	registry[name] = f
}

// New instantiates a registered effect by name.
func New(name string) (render.Effect, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("effect: unknown effect %q", name)
	}
	return f(), nil
}

// Known reports whether name is registered.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names lists registered effects in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
