package scene

import "github.com/go-gl/mathgl/mgl32"

// NodeBuilderOption is a functional option for configuring a Node.
type NodeBuilderOption func(n *node)

// WithPosition sets the initial local position.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.position = mgl32.Vec3{x, y, z}
	}
}

// WithRotation sets the initial XYZ Euler rotation in radians.
//
// Parameters:
//   - rx, ry, rz: the rotation angles
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(rx, ry, rz float32) NodeBuilderOption {
	return func(n *node) {
		n.rotation = mgl32.Vec3{rx, ry, rz}
	}
}

// WithScale sets the initial per-axis scale.
//
// Parameters:
//   - sx, sy, sz: the scale components
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithScale(sx, sy, sz float32) NodeBuilderOption {
	return func(n *node) {
		n.scale = mgl32.Vec3{sx, sy, sz}
	}
}

// WithUniformScale sets the same scale on all three axes.
func WithUniformScale(s float32) NodeBuilderOption {
	return WithScale(s, s, s)
}

// WithVisible sets the initial visibility.
func WithVisible(visible bool) NodeBuilderOption {
	return func(n *node) {
		n.visible = visible
	}
}

// WithParent attaches the new node to parent.
//
// Parameters:
//   - parent: the node to attach to
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithParent(parent Node) NodeBuilderOption {
	return func(n *node) {
		if parent != nil {
			parent.Add(n)
		}
	}
}
