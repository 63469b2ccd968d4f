package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/moodgrid/render"
)

// ParseCompound parses the "name:key=val,key=val" argument form used
// by the director CLI for transforms, postfx steps and masks. Values
// coerce to int first, then float, then fall back to string.
func ParseCompound(arg string) (string, render.Params, error) {
	name, rest, hasParams := strings.Cut(arg, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, fmt.Errorf("scene: empty compound argument")
	}
	if !hasParams {
		return name, nil, nil
	}

	params := render.Params{}
	for _, pair := range strings.Split(rest, ",") {
		key, val, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return "", nil, fmt.Errorf("scene: malformed parameter %q in %q", pair, arg)
		}
		params[key] = coerceValue(strings.TrimSpace(val))
	}
	return name, params, nil
}

func coerceValue(s string) any {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}

// ParseTransformArgs parses several compound arguments into transform
// descriptors.
func ParseTransformArgs(args []string) ([]TransformDesc, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]TransformDesc, 0, len(args))
	for _, a := range args {
		name, params, err := ParseCompound(a)
		if err != nil {
			return nil, err
		}
		out = append(out, TransformDesc{Type: name, Params: params})
	}
	return out, nil
}

// ParsePostFXArgs parses several compound arguments into postfx
// descriptors.
func ParsePostFXArgs(args []string) ([]PostFXDesc, error) {
	if len(args) == 0 {
		return nil, nil
	}
	out := make([]PostFXDesc, 0, len(args))
	for _, a := range args {
		name, params, err := ParseCompound(a)
		if err != nil {
			return nil, err
		}
		out = append(out, PostFXDesc{Type: name, Params: params})
	}
	return out, nil
}

// ParseMaskArg parses one compound argument into a mask type and its
// "mask_"-ready parameter map.
func ParseMaskArg(arg string) (string, render.Params, error) {
	return ParseCompound(arg)
}
