package shader

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-solar/engine/renderer/shader/wgsl"
	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFormats maps WGSL attribute types to wgpu vertex formats.
var vertexFormats = map[string]wgpu.VertexFormat{
	"f32":       wgpu.VertexFormatFloat32,
	"vec2f":     wgpu.VertexFormatFloat32x2,
	"vec2<f32>": wgpu.VertexFormatFloat32x2,
	"vec3f":     wgpu.VertexFormatFloat32x3,
	"vec3<f32>": wgpu.VertexFormatFloat32x3,
	"vec4f":     wgpu.VertexFormatFloat32x4,
	"vec4<f32>": wgpu.VertexFormatFloat32x4,
	"i32":       wgpu.VertexFormatSint32,
	"vec2<i32>": wgpu.VertexFormatSint32x2,
	"vec3<i32>": wgpu.VertexFormatSint32x3,
	"vec4<i32>": wgpu.VertexFormatSint32x4,
	"u32":       wgpu.VertexFormatUint32,
	"vec2<u32>": wgpu.VertexFormatUint32x2,
	"vec3<u32>": wgpu.VertexFormatUint32x3,
	"vec4<u32>": wgpu.VertexFormatUint32x4,
}

var textureDimensions = map[string]wgpu.TextureViewDimension{
	"texture_1d":               wgpu.TextureViewDimension1D,
	"texture_2d":               wgpu.TextureViewDimension2D,
	"texture_2d_array":         wgpu.TextureViewDimension2DArray,
	"texture_3d":               wgpu.TextureViewDimension3D,
	"texture_cube":             wgpu.TextureViewDimensionCube,
	"texture_cube_array":       wgpu.TextureViewDimensionCubeArray,
	"texture_multisampled_2d":  wgpu.TextureViewDimension2D,
	"texture_depth_2d":         wgpu.TextureViewDimension2D,
	"texture_depth_2d_array":   wgpu.TextureViewDimension2DArray,
	"texture_depth_cube":       wgpu.TextureViewDimensionCube,
	"texture_storage_1d":       wgpu.TextureViewDimension1D,
	"texture_storage_2d":       wgpu.TextureViewDimension2D,
	"texture_storage_2d_array": wgpu.TextureViewDimension2DArray,
	"texture_storage_3d":       wgpu.TextureViewDimension3D,
}

var sampleTypes = map[string]wgpu.TextureSampleType{
	"f32": wgpu.TextureSampleTypeFloat,
	"i32": wgpu.TextureSampleTypeSint,
	"u32": wgpu.TextureSampleTypeUint,
}

var storageAccess = map[string]wgpu.StorageTextureAccess{
	"write":      wgpu.StorageTextureAccessWriteOnly,
	"read":       wgpu.StorageTextureAccessReadOnly,
	"read_write": wgpu.StorageTextureAccessReadWrite,
}

var texelFormats = map[string]wgpu.TextureFormat{
	"rgba8unorm":  wgpu.TextureFormatRGBA8Unorm,
	"rgba8snorm":  wgpu.TextureFormatRGBA8Snorm,
	"rgba16float": wgpu.TextureFormatRGBA16Float,
	"r32float":    wgpu.TextureFormatR32Float,
	"rgba32float": wgpu.TextureFormatRGBA32Float,
	"bgra8unorm":  wgpu.TextureFormatBGRA8Unorm,
}

// layoutEntry converts a reflected binding into a bind group layout entry.
func layoutEntry(b wgsl.Binding, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    uint32(b.Binding),
		Visibility: visibility,
	}
	switch b.Kind {
	case wgsl.KindUniform:
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
		entry.Buffer.MinBindingSize = b.MinSize
	case wgsl.KindStorage:
		entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		entry.Buffer.MinBindingSize = b.MinSize
	case wgsl.KindReadOnlyStorage:
		entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		entry.Buffer.MinBindingSize = b.MinSize
	case wgsl.KindSampler:
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case wgsl.KindComparisonSampler:
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case wgsl.KindTexture:
		entry.Texture.ViewDimension = textureDimensions[b.TextureBase]
		entry.Texture.Multisampled = strings.Contains(b.TextureBase, "multisampled")
		entry.Texture.SampleType = sampleTypes[b.TextureParam]
	case wgsl.KindDepthTexture:
		entry.Texture.ViewDimension = textureDimensions[b.TextureBase]
		entry.Texture.Multisampled = strings.Contains(b.TextureBase, "multisampled")
		entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
	case wgsl.KindStorageTexture:
		entry.StorageTexture.ViewDimension = textureDimensions[b.TextureBase]
		format, access, _ := strings.Cut(b.TextureParam, ",")
		entry.StorageTexture.Format = texelFormats[strings.TrimSpace(format)]
		entry.StorageTexture.Access = storageAccess[strings.TrimSpace(access)]
	}
	return entry
}

// vertexLayout converts a reflected vertex input into a per-vertex buffer layout.
func vertexLayout(vi wgsl.VertexInput) wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 0, len(vi.Attributes))
	for _, a := range vi.Attributes {
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         vertexFormats[a.Type],
			Offset:         a.Offset,
			ShaderLocation: uint32(a.Location),
		})
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: vi.Stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}
}
