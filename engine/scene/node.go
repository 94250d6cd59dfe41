package scene

import (
	"github.com/Carmen-Shannon/oxy-solar/common"
	"github.com/go-gl/mathgl/mgl32"
)

// node is the implementation of the Node interface.
type node struct {
	name    string
	visible bool

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3

	// orientation replaces the Euler rotation when useOrientation is set.
	orientation    mgl32.Quat
	useOrientation bool

	parent   *node
	children []*node
}

// Node is one transform in the retained scene hierarchy. A node's world matrix is
// its parent's world matrix times its own translation * rotation * scale. Rotation is
// either XYZ Euler angles or, once SetOrientation is called, a quaternion.
//
// Nodes are not safe for concurrent use; the scene is only touched from the frame loop.
type Node interface {
	// Name returns the debug name of the node.
	//
	// Returns:
	//   - string: the node name
	Name() string

	// Position returns the local translation relative to the parent.
	//
	// Returns:
	//   - mgl32.Vec3: the local position
	Position() mgl32.Vec3

	// SetPosition sets the local translation relative to the parent.
	//
	// Parameters:
	//   - p: the new local position
	SetPosition(p mgl32.Vec3)

	// Rotation returns the local XYZ Euler rotation in radians.
	//
	// Returns:
	//   - mgl32.Vec3: the Euler angles
	Rotation() mgl32.Vec3

	// SetRotation sets the local XYZ Euler rotation and clears any quaternion orientation.
	//
	// Parameters:
	//   - r: the Euler angles in radians
	SetRotation(r mgl32.Vec3)

	// Orientation returns the local rotation as a quaternion, derived from the
	// Euler angles when no explicit orientation has been set.
	//
	// Returns:
	//   - mgl32.Quat: the local orientation
	Orientation() mgl32.Quat

	// SetOrientation sets the local rotation from a quaternion.
	//
	// Parameters:
	//   - q: the new orientation, normalized on store
	SetOrientation(q mgl32.Quat)

	Scale() mgl32.Vec3
	SetScale(s mgl32.Vec3)

	// Visible reports whether this node and its subtree should be drawn.
	Visible() bool
	SetVisible(v bool)

	// Parent returns the parent node, or nil for a root.
	Parent() Node

	// Children returns the direct children in insertion order.
	Children() []Node

	// Add attaches child to this node, detaching it from any previous parent.
	// Adding a node to itself or to one of its descendants is a no-op.
	//
	// Parameters:
	//   - child: the node to attach
	Add(child Node)

	// Remove detaches child if it is a direct child of this node.
	//
	// Parameters:
	//   - child: the node to detach
	//
	// Returns:
	//   - bool: true if child was attached here and has been removed
	Remove(child Node) bool

	// LocalMatrix returns translation * rotation * scale.
	LocalMatrix() mgl32.Mat4

	// WorldMatrix composes every ancestor's local matrix with this node's.
	WorldMatrix() mgl32.Mat4

	// WorldPosition returns the translation part of WorldMatrix.
	WorldPosition() mgl32.Vec3

	// WorldVisible reports whether this node and every ancestor is visible.
	WorldVisible() bool

	// Walk visits this node and its descendants depth first, parents before children.
	// Returning false from fn skips the visited node's subtree.
	//
	// Parameters:
	//   - fn: the visitor
	Walk(fn func(Node) bool)
}

var _ Node = &node{}

// NewNode creates a node at the origin with unit scale and no rotation.
//
// Parameters:
//   - name: debug name of the node
//   - options: variadic list of NodeBuilderOption functions
//
// Returns:
//   - Node: the new node
func NewNode(name string, options ...NodeBuilderOption) Node {
	n := &node{
		name:        name,
		visible:     true,
		scale:       mgl32.Vec3{1, 1, 1},
		orientation: mgl32.QuatIdent(),
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Position() mgl32.Vec3 {
	return n.position
}

func (n *node) SetPosition(p mgl32.Vec3) {
	n.position = p
}

func (n *node) Rotation() mgl32.Vec3 {
	return n.rotation
}

func (n *node) SetRotation(r mgl32.Vec3) {
	n.rotation = r
	n.useOrientation = false
}

func (n *node) Orientation() mgl32.Quat {
	if n.useOrientation {
		return n.orientation
	}
	return mgl32.Mat4ToQuat(common.EulerXYZ(n.rotation))
}

func (n *node) SetOrientation(q mgl32.Quat) {
	n.orientation = q.Normalize()
	n.useOrientation = true
}

func (n *node) Scale() mgl32.Vec3 {
	return n.scale
}

func (n *node) SetScale(s mgl32.Vec3) {
	n.scale = s
}

func (n *node) Visible() bool {
	return n.visible
}

func (n *node) SetVisible(v bool) {
	n.visible = v
}

func (n *node) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *node) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *node) Add(child Node) {
	c, ok := child.(*node)
	if !ok || c == nil {
		return
	}
	for p := n; p != nil; p = p.parent {
		if p == c {
			return
		}
	}
	if c.parent != nil {
		c.parent.Remove(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *node) Remove(child Node) bool {
	c, ok := child.(*node)
	if !ok || c == nil || c.parent != n {
		return false
	}
	for i, existing := range n.children {
		if existing == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

func (n *node) LocalMatrix() mgl32.Mat4 {
	if !n.useOrientation {
		return common.ComposeTRS(n.position, n.rotation, n.scale)
	}
	t := mgl32.Translate3D(n.position[0], n.position[1], n.position[2])
	s := mgl32.Scale3D(n.scale[0], n.scale[1], n.scale[2])
	return t.Mul4(n.orientation.Mat4()).Mul4(s)
}

func (n *node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *node) WorldPosition() mgl32.Vec3 {
	return n.WorldMatrix().Col(3).Vec3()
}

func (n *node) WorldVisible() bool {
	for p := n; p != nil; p = p.parent {
		if !p.visible {
			return false
		}
	}
	return true
}

func (n *node) Walk(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}
