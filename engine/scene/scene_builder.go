package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithAmbient sets the ambient light.
//
// Parameters:
//   - a: the ambient light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbient(a AmbientLight) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = a
	}
}

// WithPointLight sets the scene's point light.
//
// Parameters:
//   - l: the point light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPointLight(l PointLight) SceneBuilderOption {
	return func(s *scene) {
		s.point = l
	}
}
