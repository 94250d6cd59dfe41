// Package shader turns WGSL sources into the descriptors a render pipeline needs:
// the shader module, its vertex buffer layouts and one bind group layout per group.
package shader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-solar/engine/renderer/shader/wgsl"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrMissingEntryPoint is returned for a source without both a @vertex and a @fragment function.
var ErrMissingEntryPoint = errors.New("shader has no vertex or fragment entry point")

// shader is the implementation of the Shader interface.
type shader struct {
	key        string
	source     string
	reflection *wgsl.Module

	module                     *wgpu.ShaderModuleDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingNames               map[int]map[int]string
}

// Shader is a parsed WGSL render program holding both stages in one source.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	Key() string

	// Source retrieves the WGSL source code.
	Source() string

	// Module returns the shader module descriptor built from the source.
	Module() *wgpu.ShaderModuleDescriptor

	// VertexEntry returns the name of the @vertex function.
	VertexEntry() string

	// FragmentEntry returns the name of the @fragment function.
	FragmentEntry() string

	// VertexLayouts returns the vertex buffer layouts consumed by the vertex entry point,
	// one per buffer slot.
	VertexLayouts() []wgpu.VertexBufferLayout

	// BindGroupLayoutDescriptors retrieves the layout descriptor of every declared group.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindingName returns the variable declared at group and binding, or "" if there is none.
	BindingName(group, binding int) string

	// BindingIndex finds the binding index of a variable within group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - name: the WGSL variable name
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable was found
	BindingIndex(group int, name string) (int, bool)

	// Reflection returns the reflected interface the descriptors were built from.
	Reflection() *wgsl.Module
}

var _ Shader = &shader{}

// NewShader reflects a WGSL source and builds its pipeline descriptors. Every binding
// is visible to both the vertex and the fragment stage.
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - source: the WGSL source containing a @vertex and a @fragment function
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if the source fails reflection or lacks an entry point
func NewShader(key, source string) (Shader, error) {
	m, err := wgsl.Reflect(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	if m.VertexEntry == "" || m.FragmentEntry == "" {
		return nil, fmt.Errorf("shader %s: %w", key, ErrMissingEntryPoint)
	}

	s := &shader{
		key:        key,
		source:     source,
		reflection: m,
		module: &wgpu.ShaderModuleDescriptor{
			Label:          key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: source},
		},
		bindGroupLayoutDescriptors: make(map[int]wgpu.BindGroupLayoutDescriptor),
		bindingNames:               make(map[int]map[int]string),
	}
	for _, vi := range m.VertexInputs {
		s.vertexLayouts = append(s.vertexLayouts, vertexLayout(vi))
	}

	visibility := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	for group, bindings := range m.Groups() {
		entries := make([]wgpu.BindGroupLayoutEntry, 0, len(bindings))
		names := make(map[int]string, len(bindings))
		for _, b := range bindings {
			entries = append(entries, layoutEntry(b, visibility))
			names[b.Binding] = b.Name
		}
		s.bindGroupLayoutDescriptors[group] = wgpu.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s_group%d", key, group),
			Entries: entries,
		}
		s.bindingNames[group] = names
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) VertexEntry() string {
	return s.reflection.VertexEntry
}

func (s *shader) FragmentEntry() string {
	return s.reflection.FragmentEntry
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindingName(group, binding int) string {
	return s.bindingNames[group][binding]
}

func (s *shader) BindingIndex(group int, name string) (int, bool) {
	for binding, n := range s.bindingNames[group] {
		if n == name {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) Reflection() *wgsl.Module {
	return s.reflection
}
