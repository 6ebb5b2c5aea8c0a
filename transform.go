package thicket

// Transform holds a node's local placement plus its motion state.
// Rotation is in degrees. Velocity and Acceleration are world-space.
type Transform struct {
	Position     Vec2
	Scale        Vec2
	Rotation     float64
	Velocity     Vec2
	Acceleration Vec2
	Size         Vec2 // physical size, set by the shape constructors
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: Vec2{1, 1}}
}

// ToMatrix computes the local affine matrix.
//
// Composition order:
//
//	Scale -> Rotate -> Translate(Position)
func (t Transform) ToMatrix() Matrix2D {
	return Translation(t.Position.X, t.Position.Y).
		Multiply(Rotation(t.Rotation)).
		Multiply(Scaling(t.Scale.X, t.Scale.Y))
}

// updateWorldTransform recomputes a node's world matrix and recurses into its
// children. parentRecomputed forces recomputation of this node even if it is
// not dirty.
func (s *Scene) updateWorldTransform(n *Node, parent Matrix2D, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldMatrix = parent.Multiply(n.Transform.ToMatrix())
		n.transformDirty = false
		if !n.placed {
			n.prevMatrix = n.worldMatrix
			n.placed = true
		}
	}
	for _, cid := range n.children {
		if c := s.Node(cid); c != nil {
			s.updateWorldTransform(c, n.worldMatrix, recompute)
		}
	}
}

// refreshTransforms recomputes dirty world matrices top-down from the root.
func (s *Scene) refreshTransforms() {
	if root := s.Node(s.root); root != nil {
		s.updateWorldTransform(root, IdentityMatrix, false)
	}
}

// parentMatrix returns the world matrix of n's parent, or identity.
func (s *Scene) parentMatrix(n *Node) Matrix2D {
	if p := s.Node(n.parent); p != nil {
		return p.worldMatrix
	}
	return IdentityMatrix
}

// translateWorld moves n by a world-space delta. The delta is mapped into the
// parent's space through the inverse of the parent's linear part.
func (s *Scene) translateWorld(n *Node, delta Vec2) {
	local := s.parentMatrix(n).Inverse().ApplyLinear(delta)
	n.Transform.Position = n.Transform.Position.Add(local)
	s.markSubtreeDirty(n)
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (s *Scene) SetPosition(id NodeID, p Vec2) {
	n := s.mustNode(id, "SetPosition")
	n.Transform.Position = p
	s.markSubtreeDirty(n)
}

// SetScale sets the node's local scale and marks it dirty.
func (s *Scene) SetScale(id NodeID, scale Vec2) {
	n := s.mustNode(id, "SetScale")
	n.Transform.Scale = scale
	s.markSubtreeDirty(n)
}

// SetRotation sets the node's rotation (in degrees) and marks it dirty.
func (s *Scene) SetRotation(id NodeID, degrees float64) {
	n := s.mustNode(id, "SetRotation")
	n.Transform.Rotation = degrees
	s.markSubtreeDirty(n)
}

// SetVelocity sets the node's world-space velocity.
func (s *Scene) SetVelocity(id NodeID, v Vec2) {
	s.mustNode(id, "SetVelocity").Transform.Velocity = v
}

// MarkDirty marks the node's transform as dirty, forcing recomputation on the
// next refresh. Useful after bulk-setting Transform fields directly.
func (s *Scene) MarkDirty(id NodeID) {
	s.markSubtreeDirty(s.mustNode(id, "MarkDirty"))
}

// SetWorldPosition places the node so that its world translation becomes p.
// A singular parent matrix falls back to treating p as local.
func (s *Scene) SetWorldPosition(id NodeID, p Vec2) {
	n := s.mustNode(id, "SetWorldPosition")
	n.Transform.Position = s.parentMatrix(n).Inverse().Apply(p)
	s.markSubtreeDirty(n)
	s.refreshTransforms()
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to the node's local coordinate space.
func (s *Scene) WorldToLocal(id NodeID, p Vec2) Vec2 {
	return s.mustNode(id, "WorldToLocal").worldMatrix.Inverse().Apply(p)
}

// LocalToWorld converts a local-space point to world space.
func (s *Scene) LocalToWorld(id NodeID, p Vec2) Vec2 {
	return s.mustNode(id, "LocalToWorld").worldMatrix.Apply(p)
}
