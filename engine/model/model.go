package model

import (
	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/chewxy/math32"
)

// Material is the surface description of one Part.
type Material struct {
	// Color multiplies the base color texture, or is the flat color without one.
	Color [4]float32
	// BaseColor is the decoded base color image, nil when untextured.
	BaseColor *common.TextureStagingData
}

// Part is one drawable piece of a model: geometry plus its material.
type Part struct {
	Mesh     Mesh
	Material Material
}

// model is the implementation of the Model interface.
type model struct {
	name           string
	parts          []Part
	boundingRadius float32
}

// Model defines the interface for a loaded 3D model.
// A Model is a CPU-side container of Parts, one per imported primitive, each
// already transformed into the model's root space. It is produced by the Loader
// and uploaded by the caller one Part at a time.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Parts retrieves the drawable pieces in import order.
	//
	// Returns:
	//   - []Part: the parts
	Parts() []Part

	// VertexCount returns the total number of vertices across all parts.
	VertexCount() int

	// BoundingRadius returns the distance from the model origin to its farthest vertex.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model.
//
// Parameters:
//   - options: functional options applied to the model
//
// Returns:
//   - Model: the new model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	for _, p := range m.parts {
		m.boundingRadius = math32.Max(m.boundingRadius, p.Mesh.BoundingRadius())
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Parts() []Part {
	return m.parts
}

func (m *model) VertexCount() int {
	n := 0
	for _, p := range m.parts {
		n += len(p.Mesh.Vertices)
	}
	return n
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
