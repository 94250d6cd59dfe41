package wgsl

import (
	"strconv"
	"strings"
)

// Layout is the size and alignment of a host-shareable WGSL type.
type Layout struct {
	Size  uint64
	Align uint64
}

var primitiveLayouts = map[string]Layout{
	"f32": {4, 4}, "i32": {4, 4}, "u32": {4, 4}, "f16": {2, 2},
	"atomic<u32>": {4, 4}, "atomic<i32>": {4, 4},

	"vec2<f32>": {8, 8}, "vec2f": {8, 8},
	"vec3<f32>": {12, 16}, "vec3f": {12, 16},
	"vec4<f32>": {16, 16}, "vec4f": {16, 16},
	"vec2<i32>": {8, 8}, "vec2i": {8, 8},
	"vec3<i32>": {12, 16}, "vec3i": {12, 16},
	"vec4<i32>": {16, 16}, "vec4i": {16, 16},
	"vec2<u32>": {8, 8}, "vec2u": {8, 8},
	"vec3<u32>": {12, 16}, "vec3u": {12, 16},
	"vec4<u32>": {16, 16}, "vec4u": {16, 16},

	"mat2x2<f32>": {16, 8}, "mat3x3<f32>": {48, 16}, "mat4x4<f32>": {64, 16},
	"mat4x4f": {64, 16}, "mat3x3f": {48, 16},
}

// vertexFormatSizes lists the attribute types a vertex input may use and their packed size.
var vertexFormatSizes = map[string]uint64{
	"f32": 4, "vec2<f32>": 8, "vec2f": 8, "vec3<f32>": 12, "vec3f": 12, "vec4<f32>": 16, "vec4f": 16,
	"i32": 4, "vec2<i32>": 8, "vec3<i32>": 12, "vec4<i32>": 16,
	"u32": 4, "vec2<u32>": 8, "vec3<u32>": 12, "vec4<u32>": 16,
}

func roundUp(align, v uint64) uint64 {
	if align == 0 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// resolveType returns the layout of a primitive, known struct or array type.
// A runtime-sized array resolves to one element stride.
func resolveType(typeName string, known map[string]Layout) (Layout, bool) {
	if l, ok := primitiveLayouts[typeName]; ok {
		return l, true
	}
	if l, ok := known[typeName]; ok {
		return l, true
	}
	inner, ok := strings.CutPrefix(typeName, "array<")
	if !ok || !strings.HasSuffix(inner, ">") {
		return Layout{}, false
	}
	parts := splitAtTopLevelCommas(strings.TrimSuffix(inner, ">"))
	elem, ok := resolveType(strings.TrimSpace(parts[0]), known)
	if !ok {
		return Layout{}, false
	}
	stride := roundUp(elem.Align, elem.Size)
	if len(parts) == 1 {
		return Layout{stride, elem.Align}, true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return Layout{}, false
	}
	return Layout{n * stride, elem.Align}, true
}

// structLayout applies the WGSL host-shareable layout rules to one struct.
func structLayout(s structDecl, known map[string]Layout) (Layout, bool) {
	var offset uint64
	maxAlign := uint64(1)
	for _, f := range s.fields {
		if f.builtin {
			continue
		}
		l, ok := resolveType(f.typeName, known)
		if !ok {
			return Layout{}, false
		}
		offset = roundUp(l.Align, offset) + l.Size
		maxAlign = max(maxAlign, l.Align)
	}
	return Layout{roundUp(maxAlign, offset), maxAlign}, true
}

// resolveStructLayouts resolves struct layouts until no further struct resolves,
// so declaration order does not matter.
func resolveStructLayouts(structs []structDecl) map[string]Layout {
	resolved := make(map[string]Layout, len(structs))
	remaining := append([]structDecl(nil), structs...)
	for progress := true; progress && len(remaining) > 0; {
		progress = false
		next := remaining[:0]
		for _, s := range remaining {
			if l, ok := structLayout(s, resolved); ok {
				resolved[s.name] = l
				progress = true
			} else {
				next = append(next, s)
			}
		}
		remaining = next
	}
	return resolved
}
