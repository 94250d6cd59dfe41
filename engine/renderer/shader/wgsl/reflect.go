// Package wgsl reflects the resource interface of a WGSL module: entry points,
// vertex input layouts and @group/@binding declarations with their host-shareable sizes.
// It is a regex-level reader for the shaders this engine ships, not a WGSL compiler.
package wgsl

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidModule wraps every reflection failure.
var ErrInvalidModule = errors.New("invalid WGSL module")

// ResourceKind classifies a binding declaration.
type ResourceKind int

const (
	KindUniform ResourceKind = iota
	KindStorage
	KindReadOnlyStorage
	KindTexture
	KindDepthTexture
	KindStorageTexture
	KindSampler
	KindComparisonSampler
)

func (k ResourceKind) String() string {
	switch k {
	case KindUniform:
		return "uniform"
	case KindStorage:
		return "storage"
	case KindReadOnlyStorage:
		return "read-only storage"
	case KindTexture:
		return "texture"
	case KindDepthTexture:
		return "depth texture"
	case KindStorageTexture:
		return "storage texture"
	case KindSampler:
		return "sampler"
	case KindComparisonSampler:
		return "comparison sampler"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Binding is one `@group(g) @binding(b) var...` declaration.
type Binding struct {
	Group   int
	Binding int
	Name    string
	Type    string
	Kind    ResourceKind
	// MinSize is the host-shareable size of a buffer binding, 0 when unknown.
	MinSize uint64
	// Texture details: dimension base type ("texture_2d"), sample or texel type, access mode.
	TextureBase  string
	TextureParam string
}

// Attribute is one @location field of a vertex input struct.
type Attribute struct {
	Location int
	Name     string
	Type     string
	Offset   uint64
	Size     uint64
}

// VertexInput is a struct made only of @location fields, packed tightly in declaration order.
type VertexInput struct {
	Struct     string
	Stride     uint64
	Attributes []Attribute
}

// Module is the reflected interface of a WGSL source.
type Module struct {
	VertexEntry   string
	FragmentEntry string
	ComputeEntry  string
	// WorkgroupSize defaults to 1 in unspecified dimensions.
	WorkgroupSize [3]uint32
	VertexInputs  []VertexInput
	// Bindings are sorted by group, then binding.
	Bindings []Binding
	// Layouts holds the size and alignment of every struct whose layout resolved.
	Layouts map[string]Layout
}

// Groups returns the bindings of each group keyed by group index.
func (m *Module) Groups() map[int][]Binding {
	out := make(map[int][]Binding)
	for _, b := range m.Bindings {
		out[b.Group] = append(out[b.Group], b)
	}
	return out
}

// Binding finds a binding by variable name.
func (m *Module) Binding(name string) (Binding, bool) {
	for _, b := range m.Bindings {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

var (
	structBlockRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex      = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex       = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex         = regexp.MustCompile(`^(?:@\w+\([^)]*\)\s*)*(\w+)\s*:\s*(.+)$`)
	vertexEntryRegex   = regexp.MustCompile(`@vertex\s+fn\s+(\w+)`)
	vertexParamsRegex  = regexp.MustCompile(`@vertex\s+fn\s+\w+\s*\(([^)]*)\)`)
	fragmentEntryRegex = regexp.MustCompile(`@fragment\s+fn\s+(\w+)`)
	computeEntryRegex  = regexp.MustCompile(`@compute\s+(?:@workgroup_size\([^)]*\)\s*)?fn\s+(\w+)`)
	workgroupSizeRegex = regexp.MustCompile(`@workgroup_size\(\s*(\d+)\s*(?:,\s*(\d+)\s*(?:,\s*(\d+)\s*)?)?\)`)
	bindingDeclRegex   = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

type field struct {
	name     string
	typeName string
	location int
	builtin  bool
}

type structDecl struct {
	name   string
	fields []field
}

// Reflect parses source and returns its resource interface.
//
// Parameters:
//   - source: the WGSL module text
//
// Returns:
//   - *Module: the reflected module
//   - error: an ErrInvalidModule-wrapped error for duplicate bindings or unsupported vertex attribute types
func Reflect(source string) (*Module, error) {
	cleaned := stripComments(source)
	structs := parseStructs(cleaned)

	m := &Module{
		VertexEntry:   firstMatch(vertexEntryRegex, cleaned),
		FragmentEntry: firstMatch(fragmentEntryRegex, cleaned),
		ComputeEntry:  firstMatch(computeEntryRegex, cleaned),
		WorkgroupSize: parseWorkgroupSize(cleaned),
		Layouts:       resolveStructLayouts(structs),
	}

	params := vertexParamTypes(cleaned)
	for _, s := range structs {
		if !isVertexInput(s) {
			continue
		}
		if params != nil && !params[s.name] {
			continue
		}
		vi, err := buildVertexInput(s)
		if err != nil {
			return nil, err
		}
		m.VertexInputs = append(m.VertexInputs, vi)
	}

	seen := make(map[[2]int]string)
	for _, match := range bindingDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		b := classify(strings.TrimSpace(match[3]), strings.TrimSpace(match[5]))
		b.Group, b.Binding, b.Name = group, binding, match[4]
		if prev, dup := seen[[2]int{group, binding}]; dup {
			return nil, fmt.Errorf("%w: @group(%d) @binding(%d) declared by both %s and %s", ErrInvalidModule, group, binding, prev, b.Name)
		}
		seen[[2]int{group, binding}] = b.Name
		if b.Kind <= KindReadOnlyStorage {
			if l, ok := resolveType(b.Type, m.Layouts); ok {
				b.MinSize = l.Size
			}
		}
		m.Bindings = append(m.Bindings, b)
	}
	sort.Slice(m.Bindings, func(i, j int) bool {
		if m.Bindings[i].Group != m.Bindings[j].Group {
			return m.Bindings[i].Group < m.Bindings[j].Group
		}
		return m.Bindings[i].Binding < m.Bindings[j].Binding
	})
	return m, nil
}

func firstMatch(re *regexp.Regexp, s string) string {
	if match := re.FindStringSubmatch(s); match != nil {
		return match[1]
	}
	return ""
}

// vertexParamTypes returns the parameter type names of the vertex entry point,
// or nil when the module has none.
func vertexParamTypes(source string) map[string]bool {
	match := vertexParamsRegex.FindStringSubmatch(source)
	if match == nil {
		return nil
	}
	out := make(map[string]bool)
	for _, param := range splitAtTopLevelCommas(match[1]) {
		if _, typeName, ok := strings.Cut(param, ":"); ok {
			out[strings.TrimSpace(typeName)] = true
		}
	}
	return out
}

func parseWorkgroupSize(source string) [3]uint32 {
	out := [3]uint32{1, 1, 1}
	match := workgroupSizeRegex.FindStringSubmatch(source)
	if match == nil {
		return out
	}
	for i := 0; i < 3; i++ {
		if v, err := strconv.ParseUint(match[i+1], 10, 32); err == nil {
			out[i] = uint32(v)
		}
	}
	return out
}

// classify maps an address space and type to a resource kind.
func classify(addressSpace, typeName string) Binding {
	b := Binding{Type: typeName}
	switch {
	case addressSpace == "uniform":
		b.Kind = KindUniform
		return b
	case strings.HasPrefix(addressSpace, "storage"):
		b.Kind = KindReadOnlyStorage
		if strings.Contains(addressSpace, "read_write") {
			b.Kind = KindStorage
		}
		return b
	}

	b.TextureBase, b.TextureParam = splitTypeParams(typeName)
	switch {
	case typeName == "sampler":
		b.Kind = KindSampler
	case typeName == "sampler_comparison":
		b.Kind = KindComparisonSampler
	case strings.HasPrefix(typeName, "texture_storage_"):
		b.Kind = KindStorageTexture
	case strings.HasPrefix(typeName, "texture_depth_"):
		b.Kind = KindDepthTexture
	case strings.HasPrefix(typeName, "texture_"):
		b.Kind = KindTexture
	}
	return b
}

func parseStructs(source string) []structDecl {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	out := make([]structDecl, 0, len(matches))
	for _, match := range matches {
		out = append(out, structDecl{name: match[1], fields: parseFields(match[2])})
	}
	return out
}

func parseFields(body string) []field {
	var out []field
	for _, part := range splitAtTopLevelCommas(body) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fm := fieldRegex.FindStringSubmatch(part)
		if fm == nil {
			continue
		}
		f := field{name: fm[1], typeName: strings.TrimSpace(fm[2]), location: -1, builtin: builtinRegex.MatchString(part)}
		if loc := locationRegex.FindStringSubmatch(part); loc != nil {
			f.location, _ = strconv.Atoi(loc[1])
		}
		out = append(out, f)
	}
	return out
}

func isVertexInput(s structDecl) bool {
	if len(s.fields) == 0 {
		return false
	}
	for _, f := range s.fields {
		if f.builtin || f.location < 0 {
			return false
		}
	}
	return true
}

func buildVertexInput(s structDecl) (VertexInput, error) {
	vi := VertexInput{Struct: s.name}
	for _, f := range s.fields {
		size, ok := vertexFormatSizes[f.typeName]
		if !ok {
			return VertexInput{}, fmt.Errorf("%w: %s.%s has unsupported vertex type %s", ErrInvalidModule, s.name, f.name, f.typeName)
		}
		vi.Attributes = append(vi.Attributes, Attribute{
			Location: f.location,
			Name:     f.name,
			Type:     f.typeName,
			Offset:   vi.Stride,
			Size:     size,
		})
		vi.Stride += size
	}
	return vi, nil
}

func splitTypeParams(typeName string) (base, params string) {
	before, after, ok := strings.Cut(typeName, "<")
	if !ok {
		return typeName, ""
	}
	return before, strings.TrimSpace(strings.TrimSuffix(after, ">"))
}

func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// stripComments removes nested block comments, then line comments.
func stripComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			switch source[i : i+2] {
			case "/*":
				depth++
				i++
				continue
			case "*/":
				if depth > 0 {
					depth--
				}
				i++
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
	}

	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}
