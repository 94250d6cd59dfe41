package wgsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const texturedSource = `
// Frame is shared by all pipelines.
struct Frame {
    view_proj: mat4x4<f32>,
    camera_pos: vec4<f32>,
    light_pos: vec4<f32>,
    light_color: vec4<f32>,
    ambient: vec4<f32>,
};

struct Object {
    model: mat4x4<f32>,
    color: vec4<f32>,
};

/* group 1 carries the surface /* nested */ texture */
@group(1) @binding(2) var base_sampler: sampler;
@group(0) @binding(0) var<uniform> frame: Frame;
@group(1) @binding(0) var<uniform> object: Object;
@group(1) @binding(1) var base_color: texture_2d<f32>;

struct VertexIn {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};

struct VertexOut {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(in: VertexIn) -> VertexOut {
    var out: VertexOut;
    return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
    return textureSample(base_color, base_sampler, in.uv);
}
`

func TestReflectTexturedModule(t *testing.T) {
	m, err := Reflect(texturedSource)
	require.NoError(t, err)

	assert.Equal(t, "vs_main", m.VertexEntry)
	assert.Equal(t, "fs_main", m.FragmentEntry)
	assert.Empty(t, m.ComputeEntry)

	require.Len(t, m.VertexInputs, 1)
	vi := m.VertexInputs[0]
	assert.Equal(t, "VertexIn", vi.Struct)
	assert.EqualValues(t, 32, vi.Stride)
	require.Len(t, vi.Attributes, 3)
	assert.Equal(t, Attribute{Location: 2, Name: "uv", Type: "vec2<f32>", Offset: 24, Size: 8}, vi.Attributes[2])

	require.Len(t, m.Bindings, 4)
	names := make([]string, len(m.Bindings))
	for i, b := range m.Bindings {
		names[i] = b.Name
	}
	assert.Equal(t, []string{"frame", "object", "base_color", "base_sampler"}, names)

	frame, ok := m.Binding("frame")
	require.True(t, ok)
	assert.Equal(t, KindUniform, frame.Kind)
	assert.EqualValues(t, 128, frame.MinSize)

	object, _ := m.Binding("object")
	assert.EqualValues(t, 80, object.MinSize)

	tex, _ := m.Binding("base_color")
	assert.Equal(t, KindTexture, tex.Kind)
	assert.Equal(t, "texture_2d", tex.TextureBase)
	assert.Equal(t, "f32", tex.TextureParam)

	smp, _ := m.Binding("base_sampler")
	assert.Equal(t, KindSampler, smp.Kind)

	groups := m.Groups()
	assert.Len(t, groups[0], 1)
	assert.Len(t, groups[1], 3)
}

func TestReflectStructLayouts(t *testing.T) {
	src := `
struct Inner { a: vec3<f32>, b: f32, c: vec2<f32> };
struct Params {
    inner: f32,
    outer: f32,
    opacity: f32,
    _pad0: f32,
    shadow_color: vec3<f32>,
    light_dir: vec3<f32>,
    host_pos: vec3<f32>,
};
struct Outer { x: f32, nested: Inner, items: array<vec2<f32>, 3> };
struct Tail { count: u32, items: array<Inner> };
@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var<storage, read> tail: Tail;
@group(0) @binding(2) var<storage, read_write> outer: Outer;
`
	m, err := Reflect(src)
	require.NoError(t, err)

	assert.Equal(t, Layout{Size: 32, Align: 16}, m.Layouts["Inner"])
	assert.Equal(t, Layout{Size: 64, Align: 16}, m.Layouts["Params"])
	// x at 0, nested at 16..48, items at 48..72, rounded to 80.
	assert.Equal(t, Layout{Size: 80, Align: 16}, m.Layouts["Outer"])

	tail, _ := m.Binding("tail")
	assert.Equal(t, KindReadOnlyStorage, tail.Kind)
	assert.EqualValues(t, 48, tail.MinSize)

	outer, _ := m.Binding("outer")
	assert.Equal(t, KindStorage, outer.Kind)
	assert.EqualValues(t, 80, outer.MinSize)

	assert.Empty(t, m.VertexInputs)
}

func TestReflectCompute(t *testing.T) {
	m, err := Reflect(`
@group(0) @binding(0) var out_tex: texture_storage_2d<rgba8unorm, write>;
@group(0) @binding(1) var depth: texture_depth_2d;
@group(0) @binding(2) var shadow_sampler: sampler_comparison;
@compute @workgroup_size(8, 4)
fn cs_main() {}
`)
	require.NoError(t, err)
	assert.Equal(t, "cs_main", m.ComputeEntry)
	assert.Equal(t, [3]uint32{8, 4, 1}, m.WorkgroupSize)

	out, _ := m.Binding("out_tex")
	assert.Equal(t, KindStorageTexture, out.Kind)
	assert.Equal(t, "rgba8unorm, write", out.TextureParam)
	depth, _ := m.Binding("depth")
	assert.Equal(t, KindDepthTexture, depth.Kind)
	smp, _ := m.Binding("shadow_sampler")
	assert.Equal(t, KindComparisonSampler, smp.Kind)
	assert.Equal(t, "comparison sampler", smp.Kind.String())
}

func TestReflectErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "duplicate binding",
			src: `
@group(0) @binding(0) var<uniform> a: vec4<f32>;
@group(0) @binding(0) var<uniform> b: vec4<f32>;`,
		},
		{
			name: "matrix vertex attribute",
			src:  `struct VertexIn { @location(0) m: mat4x4<f32> };`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reflect(tt.src)
			assert.ErrorIs(t, err, ErrInvalidModule)
		})
	}
}

func TestStripComments(t *testing.T) {
	got := stripComments("a /* x /* y */ z */ b // tail\nc")
	assert.Equal(t, "a  b \nc", got)
}
