package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// PipelineBuilderOption is a functional option used to configure a Pipeline during construction.
type PipelineBuilderOption func(*pipeline)

// WithDepthWriteEnabled sets whether the pipeline writes depth. Depth testing stays on.
//
// Parameters:
//   - enabled: whether fragments update the depth buffer
//
// Returns:
//   - PipelineBuilderOption: option function to apply
func WithDepthWriteEnabled(enabled bool) PipelineBuilderOption {
	return func(p *pipeline) {
		p.depthWriteEnabled = enabled
	}
}

// WithCullMode sets the cull mode. Meshes wind counter-clockwise, so
// wgpu.CullModeBack hides the inside of closed shapes.
func WithCullMode(mode wgpu.CullMode) PipelineBuilderOption {
	return func(p *pipeline) {
		p.cullMode = mode
	}
}

// WithTopology sets the primitive topology for this pipeline.
//
// Parameters:
//   - topology: the primitive topology to use for this pipeline
//
// Returns:
//   - PipelineBuilderOption: a function that sets the primitive topology for this pipeline
func WithTopology(topology wgpu.PrimitiveTopology) PipelineBuilderOption {
	return func(p *pipeline) {
		p.topology = topology
	}
}

// WithTransparency configures straight alpha blending that tests but does not
// write depth, so blended geometry drawn last never occludes itself.
func WithTransparency() PipelineBuilderOption {
	return func(p *pipeline) {
		p.blendEnabled = true
		p.depthWriteEnabled = false
	}
}
