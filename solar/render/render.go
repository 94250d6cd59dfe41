// Package render draws a solar system through the engine renderer. It owns the
// GPU side of every drawable: mesh buffers, per-object bind groups and the four
// pipelines, and keeps them in step with the scene each frame.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/Carmen-Shannon/oxy-solar/engine/camera"
	"github.com/Carmen-Shannon/oxy-solar/engine/model"
	"github.com/Carmen-Shannon/oxy-solar/engine/renderer"
	"github.com/Carmen-Shannon/oxy-solar/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-solar/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-solar/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-solar/engine/renderer/shader/builtin"
	"github.com/Carmen-Shannon/oxy-solar/engine/scene"
	"github.com/Carmen-Shannon/oxy-solar/solar/shading"
	"github.com/Carmen-Shannon/oxy-solar/solar/system"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrMissingMesh is returned when a drawable references a mesh the system does not have.
var ErrMissingMesh = errors.New("drawable references an unknown mesh")

// Bind group indices shared by every program.
const (
	groupFrame  = 0
	groupObject = 1
)

var white = common.SolidTexture(255, 255, 255, 255)

// object is the GPU state of one drawable.
type object struct {
	provider bind_group_provider.BindGroupProvider
	// texture is the key of the bound texture, empty while the white placeholder is bound.
	texture string
	ready   bool
}

// Renderer implements driver.Renderer for a system.System.
type Renderer struct {
	gpu    renderer.Renderer
	sys    *system.System
	cam    camera.Camera
	logger *slog.Logger

	pipelines map[string]pipeline.Pipeline
	frame     bind_group_provider.BindGroupProvider
	meshes    map[string]bind_group_provider.BindGroupProvider
	objects   map[uint64]*object
}

// New builds the pipelines and the frame bind group.
//
// Parameters:
//   - gpu: the engine renderer
//   - sys: the system to draw
//   - cam: the viewing camera
//   - logger: the logger, slog.Default when nil
//
// Returns:
//   - *Renderer: the renderer
//   - error: a shader or pipeline error
func New(gpu renderer.Renderer, sys *system.System, cam camera.Camera, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{
		gpu:       gpu,
		sys:       sys,
		cam:       cam,
		logger:    logger,
		pipelines: make(map[string]pipeline.Pipeline),
		meshes:    make(map[string]bind_group_provider.BindGroupProvider),
		objects:   make(map[uint64]*object),
	}

	programs := []struct {
		key    string
		source string
		opts   []pipeline.PipelineBuilderOption
	}{
		{system.PipelineLit, builtin.Lit, nil},
		{system.PipelineLine, builtin.Line, []pipeline.PipelineBuilderOption{
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineStrip),
			pipeline.WithDepthWriteEnabled(false),
		}},
		{system.PipelineSun, shading.SunWGSL, []pipeline.PipelineBuilderOption{pipeline.WithCullMode(wgpu.CullModeBack)}},
		{system.PipelineRing, shading.RingWGSL, []pipeline.PipelineBuilderOption{pipeline.WithTransparency()}},
	}
	for _, prog := range programs {
		s, err := shader.NewShader(prog.key, prog.source)
		if err != nil {
			return nil, err
		}
		p := pipeline.NewPipeline(prog.key, s, prog.opts...)
		if err := gpu.RegisterPipelines(p); err != nil {
			return nil, err
		}
		r.pipelines[prog.key] = p
	}

	r.frame = bind_group_provider.NewBindGroupProvider("frame")
	if err := gpu.InitBindGroup(r.frame, r.descriptor(system.PipelineLit, groupFrame)); err != nil {
		return nil, fmt.Errorf("failed to init frame bind group: %w", err)
	}
	return r, nil
}

func (r *Renderer) descriptor(pipelineKey string, group int) wgpu.BindGroupLayoutDescriptor {
	return r.pipelines[pipelineKey].Shader().BindGroupLayoutDescriptors()[group]
}

// Render uploads whatever the scene gained since the last frame, writes this
// frame's uniforms and draws every visible drawable.
func (r *Renderer) Render(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sc := r.sys.Scene()
	list := sc.DrawList()

	writes := make([]bind_group_provider.BufferWrite, 0, len(list)+3)
	frame := r.cam.Uniform(sc.PointLight(), sc.Ambient())
	writes = append(writes, bind_group_provider.BufferWrite{Provider: r.frame, Binding: 0, Data: frame.Marshal()})

	draws := make([]*scene.Drawable, 0, len(list))
	for _, d := range list {
		obj, err := r.sync(d)
		if err != nil {
			r.logger.Warn("drawable skipped", "mesh", d.Mesh, "err", err)
			continue
		}
		u := d.Uniform()
		writes = append(writes, bind_group_provider.BufferWrite{Provider: obj.provider, Binding: 0, Data: u.Marshal()})
		switch d.Pipeline {
		case system.PipelineSun:
			writes = append(writes, bind_group_provider.BufferWrite{Provider: obj.provider, Binding: 1, Data: r.sys.SunUniforms().Bytes()})
		case system.PipelineRing:
			if ring, _ := r.sys.RingUniforms(); ring != nil {
				writes = append(writes, bind_group_provider.BufferWrite{Provider: obj.provider, Binding: 1, Data: ring.Bytes()})
			}
		}
		draws = append(draws, d)
	}
	r.gpu.WriteBuffers(writes)

	if err := r.gpu.BeginFrame(); err != nil {
		return err
	}
	var drawErr error
	for _, d := range draws {
		if err := r.gpu.DrawCall(d.Pipeline, r.meshes[d.Mesh], r.frame, r.objects[d.ID].provider); err != nil {
			drawErr = errors.Join(drawErr, err)
		}
	}
	r.gpu.EndFrame()
	r.gpu.Present()
	return drawErr
}

// sync makes sure d's mesh and bind group exist and that the bind group holds
// d's current texture.
func (r *Renderer) sync(d *scene.Drawable) (*object, error) {
	if _, ok := r.meshes[d.Mesh]; !ok {
		m, ok := r.sys.Mesh(d.Mesh)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingMesh, d.Mesh)
		}
		if err := r.uploadMesh(m); err != nil {
			return nil, err
		}
	}

	obj, ok := r.objects[d.ID]
	if !ok {
		obj = &object{provider: bind_group_provider.NewBindGroupProvider(fmt.Sprintf("%s#%d", d.Mesh, d.ID))}
		r.objects[d.ID] = obj
	}
	if obj.ready && obj.texture == d.Texture {
		return obj, nil
	}

	p, ok := r.pipelines[d.Pipeline]
	if !ok {
		return nil, fmt.Errorf("%w: %s", renderer.ErrUnknownPipeline, d.Pipeline)
	}
	if texBinding, ok := p.Shader().BindingIndex(groupObject, "base_color"); ok {
		tex := white
		if d.Texture != "" {
			if t, found := r.sys.Texture(d.Texture); found {
				tex = t
			}
		}
		if err := r.gpu.InitTextureView(obj.provider, texBinding, tex); err != nil {
			return nil, err
		}
		if !obj.ready {
			sampBinding, _ := p.Shader().BindingIndex(groupObject, "base_sampler")
			if err := r.gpu.InitSampler(obj.provider, sampBinding, renderer.SamplerStagingData{}); err != nil {
				return nil, err
			}
		}
	}
	if err := r.gpu.InitBindGroup(obj.provider, r.descriptor(d.Pipeline, groupObject)); err != nil {
		return nil, err
	}
	if obj.ready && obj.texture != d.Texture {
		r.logger.Debug("texture bound", "mesh", d.Mesh, "texture", d.Texture)
	}
	obj.texture, obj.ready = d.Texture, true
	return obj, nil
}

func (r *Renderer) uploadMesh(m model.Mesh) error {
	p := bind_group_provider.NewBindGroupProvider(m.Name)
	if err := r.gpu.InitMeshBuffers(p, model.MarshalVertices(m.Vertices), model.MarshalIndices(m.Indices), len(m.Indices)); err != nil {
		return fmt.Errorf("failed to upload mesh %s: %w", m.Name, err)
	}
	r.meshes[m.Name] = p
	return nil
}

// Release frees every GPU resource the renderer created.
func (r *Renderer) Release() {
	for _, obj := range r.objects {
		obj.provider.Release()
	}
	for _, m := range r.meshes {
		m.Release()
	}
	r.frame.Release()
}
