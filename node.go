package decal

// Transformer supplies a world transform. Hosts with their own scene graph
// implement it on their node type; *Node is the built-in implementation.
type Transformer interface {
	WorldMatrix() Matrix
}

// WorldUpdater is implemented by transformers whose world matrix is cached
// and must be recomputed before it is read. The registry calls UpdateWorld
// on every mesh and projector transform before an update pass.
type WorldUpdater interface {
	UpdateWorld()
}

// Node is a minimal transform node: position, rotation and scale relative
// to an optional parent.
//
// The world matrix is cached. It is recomputed only by UpdateWorld, which
// walks to the root and refreshes every ancestor top-down, so a stale parent
// can never leak into a child's world transform.
type Node struct {
	name     string
	parent   *Node
	position Vec3
	rotation Matrix
	scale    Vec3
	world    Matrix
}

// NewNode creates a node at the origin with identity rotation and unit scale.
func NewNode(name string) *Node {
	return &Node{
		name:     name,
		rotation: Identity(),
		scale:    V3(1, 1, 1),
		world:    Identity(),
	}
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// SetParent attaches n to parent. Passing nil makes n a root.
// A parent that would create a cycle is ignored.
func (n *Node) SetParent(parent *Node) {
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return
		}
	}
	n.parent = parent
}

// Position returns the position relative to the parent.
func (n *Node) Position() Vec3 { return n.position }

// SetPosition sets the position relative to the parent.
func (n *Node) SetPosition(x, y, z float64) {
	n.position = V3(x, y, z)
}

// Rotation returns the rotation matrix relative to the parent.
func (n *Node) Rotation() Matrix { return n.rotation }

// SetRotation sets the rotation relative to the parent.
// Only the upper 3x3 part of r is used.
func (n *Node) SetRotation(r Matrix) {
	r[12], r[13], r[14] = 0, 0, 0
	r[3], r[7], r[11], r[15] = 0, 0, 0, 1
	n.rotation = r
}

// SetScale sets the scale relative to the parent.
func (n *Node) SetScale(x, y, z float64) {
	n.scale = V3(x, y, z)
}

// LookAt orients the node so that its -Z axis points at target.
// The target is expressed in the parent's coordinate space.
func (n *Node) LookAt(target Vec3) {
	n.SetRotation(LookAt(n.position, target, V3(0, 1, 0)))
}

// LocalMatrix composes translation * rotation * scale.
func (n *Node) LocalMatrix() Matrix {
	p := n.position
	s := n.scale
	return Translate(p.X, p.Y, p.Z).
		Multiply(n.rotation).
		Multiply(Scale(s.X, s.Y, s.Z))
}

// WorldMatrix returns the cached world matrix computed by the last UpdateWorld.
// A nil node is the identity transform.
func (n *Node) WorldMatrix() Matrix {
	if n == nil {
		return Identity()
	}
	return n.world
}

// UpdateWorld recomputes the world matrices of n and all its ancestors,
// root first.
func (n *Node) UpdateWorld() {
	var chain []*Node
	for p := n; p != nil; p = p.parent {
		chain = append(chain, p)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		node := chain[i]
		local := node.LocalMatrix()
		if node.parent == nil {
			node.world = local
		} else {
			node.world = node.parent.world.Multiply(local)
		}
	}
}

// ensureWorld refreshes t if it caches its world matrix and returns it.
func ensureWorld(t Transformer) Matrix {
	if t == nil {
		return Identity()
	}
	if u, ok := t.(WorldUpdater); ok {
		u.UpdateWorld()
	}
	return t.WorldMatrix()
}
