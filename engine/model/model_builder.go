package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithParts is an option builder that appends parts to the Model.
//
// Parameters:
//   - parts: the parts to append
//
// Returns:
//   - ModelBuilderOption: a function that applies the parts option to a model
func WithParts(parts ...Part) ModelBuilderOption {
	return func(m *model) {
		m.parts = append(m.parts, parts...)
	}
}

// WithMesh is an option builder that appends a single mesh with a flat color.
//
// Parameters:
//   - mesh: the geometry
//   - color: the RGBA color
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh Mesh, color [4]float32) ModelBuilderOption {
	return func(m *model) {
		m.parts = append(m.parts, Part{Mesh: mesh, Material: Material{Color: color}})
	}
}
