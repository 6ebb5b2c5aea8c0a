package thicket

import "go.uber.org/zap"

// NodeID addresses a node in its Scene's arena. The low 32 bits are the slot
// index, the high 32 bits the slot generation, so IDs of destroyed nodes never
// alias a node that later reuses the slot.
type NodeID uint64

// NoNode is the zero NodeID. It never refers to a live node.
const NoNode NodeID = 0

func makeNodeID(index, gen uint32) NodeID {
	return NodeID(uint64(gen)<<32 | uint64(index))
}

func (id NodeID) index() uint32 { return uint32(id) }
func (id NodeID) gen() uint32   { return uint32(id >> 32) }

// CollisionContext carries contact data to a node's OnCollision callback.
// Normal points away from Self, towards Other.
type CollisionContext struct {
	Self    NodeID
	Other   NodeID
	Normal  Vec2
	Depth   float64
	Trigger bool // either participant is a trigger; no impulse was applied
}

// Node is the scene graph element. A single flat struct is used for every
// node; physics participation is controlled by Physics and Collider.Kind.
type Node struct {
	// Identity
	ID   NodeID
	Name string

	// Hierarchy (arena indices)
	parent   NodeID
	children []NodeID

	// Local transform plus velocity and acceleration
	Transform Transform

	// Physics
	Physics  bool
	Body     RigidBody
	Collider Collider
	Layer    Layer

	// Active gates update callbacks and physics for the node and its subtree.
	Active bool

	// Metadata
	UserData any

	// Per-node callbacks (nil by default)
	OnCollision func(CollisionContext)
	OnUpdate    func(dt float64)

	// Computed
	worldMatrix    Matrix2D
	prevMatrix     Matrix2D
	transformDirty bool
	placed         bool // prevMatrix holds a real snapshot

	// Internal
	gen     uint32
	alive   bool
	pending bool // queued for destruction
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.Transform = NewTransform()
	n.Body = NewRigidBody(DefaultBodyOptions())
	n.Layer = LayerDefault
	n.Active = true
	n.worldMatrix = IdentityMatrix
	n.prevMatrix = IdentityMatrix
	n.transformDirty = true
}

// Parent returns the node's parent, or NoNode if detached or the root.
func (n *Node) Parent() NodeID {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []NodeID {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// IsStatic reports whether the node takes part in physics as an immovable body.
func (n *Node) IsStatic() bool {
	return n.Body.IsStatic()
}

// IsDestroyed reports whether Destroy has been called on this node. The node
// stays in the tree until the scene flushes its destroy queue.
func (n *Node) IsDestroyed() bool {
	return n.pending || !n.alive
}

// WorldMatrix returns the node's world matrix as of the last refresh.
func (n *Node) WorldMatrix() Matrix2D {
	return n.worldMatrix
}

// WorldPosition returns the translation of the world matrix.
func (n *Node) WorldPosition() Vec2 {
	return n.worldMatrix.Position()
}

// WorldRotation returns the world rotation in degrees within [0, 360).
func (n *Node) WorldRotation() float64 {
	return n.worldMatrix.RotationDegrees()
}

// WorldScale returns the world scale magnitude on each axis.
func (n *Node) WorldScale() Vec2 {
	return n.worldMatrix.ScaleVec()
}

// WorldSize returns Transform.Size multiplied by the world scale.
func (n *Node) WorldSize() Vec2 {
	return n.Transform.Size.Mul(n.WorldScale())
}

// layer resolves the empty layer to LayerDefault.
func (n *Node) layer() Layer {
	if n.Layer == "" {
		return LayerDefault
	}
	return n.Layer
}

// --- Constructors ---

// NewContainer creates a detached node with no collider. Attach it with AddChild.
func (s *Scene) NewContainer(name string) NodeID {
	n := s.alloc()
	n.Name = name
	return n.ID
}

// NewBox creates a detached physics node with a box collider of the given
// size. Out-of-range body options are clamped.
func (s *Scene) NewBox(name string, width, height float64, body BodyOptions) NodeID {
	n := s.alloc()
	n.Name = name
	n.Physics = true
	n.Body = NewRigidBody(body)
	n.Collider = BoxCollider(width, height)
	n.Transform.Size = Vec2{width, height}
	return n.ID
}

// NewCircle creates a detached physics node with a circle collider.
func (s *Scene) NewCircle(name string, radius float64, body BodyOptions) NodeID {
	n := s.alloc()
	n.Name = name
	n.Physics = true
	n.Body = NewRigidBody(body)
	n.Collider = CircleCollider(radius)
	n.Transform.Size = Vec2{radius * 2, radius * 2}
	return n.ID
}

// --- Arena ---

// alloc takes a free slot (or grows the arena) and returns a fresh node in it.
func (s *Scene) alloc() *Node {
	var index uint32
	var gen uint32 = 1
	if k := len(s.free); k > 0 {
		index = s.free[k-1]
		s.free = s.free[:k-1]
		gen = s.nodes[index].gen
	} else {
		index = uint32(len(s.nodes))
		s.nodes = append(s.nodes, &Node{})
	}
	n := s.nodes[index]
	*n = Node{gen: gen, alive: true}
	nodeDefaults(n)
	n.ID = makeNodeID(index, gen)
	return n
}

// release frees the slot held by n. Its ID becomes stale.
func (s *Scene) release(n *Node) {
	index := n.ID.index()
	gen := n.gen + 1
	if gen == 0 {
		gen = 1
	}
	*n = Node{gen: gen}
	s.free = append(s.free, index)
}

// Node returns the node addressed by id, or nil if id is stale or invalid.
func (s *Scene) Node(id NodeID) *Node {
	index := id.index()
	if id == NoNode || int(index) >= len(s.nodes) {
		return nil
	}
	n := s.nodes[index]
	if !n.alive || n.gen != id.gen() {
		return nil
	}
	return n
}

// mustNode returns the node addressed by id or panics.
func (s *Scene) mustNode(id NodeID, op string) *Node {
	n := s.Node(id)
	if n == nil {
		panic("thicket: " + op + " on invalid or destroyed node")
	}
	if s.debug && n.pending {
		s.logger.Warn("tree operation on node queued for destruction",
			zap.String("op", op),
			zap.String("node", n.Name),
		)
	}
	return n
}

// NumNodes returns the number of live nodes in the arena, attached or not.
func (s *Scene) NumNodes() int {
	return len(s.nodes) - len(s.free)
}

// --- Tree manipulation ---

// AddChild appends child to parent's children.
// If child already has a parent, it is removed from that parent first.
// Panics if either ID is invalid or child is an ancestor of parent (cycle).
func (s *Scene) AddChild(parent, child NodeID) {
	p := s.mustNode(parent, "AddChild (parent)")
	c := s.mustNode(child, "AddChild (child)")
	if s.isAncestor(child, parent) {
		panic("thicket: adding child would create a cycle")
	}
	if c.parent != NoNode {
		if old := s.Node(c.parent); old != nil {
			old.removeChildByID(child)
		}
	}
	c.parent = parent
	p.children = append(p.children, child)
	s.markSubtreeDirty(c)
	if s.debug {
		s.debugCheckTreeDepth(c)
		s.debugCheckChildCount(p)
	}
}

// RemoveChild detaches child from parent. The child keeps its transform,
// body and collider and can be attached again later.
// Panics if child's parent is not parent.
func (s *Scene) RemoveChild(parent, child NodeID) {
	p := s.mustNode(parent, "RemoveChild (parent)")
	c := s.mustNode(child, "RemoveChild (child)")
	if c.parent != parent {
		panic("thicket: child's parent is not this node")
	}
	p.removeChildByID(child)
	c.parent = NoNode
	s.markSubtreeDirty(c)
}

// RemoveFromParent detaches id from its parent.
// No-op if the node has no parent.
func (s *Scene) RemoveFromParent(id NodeID) {
	n := s.mustNode(id, "RemoveFromParent")
	if n.parent == NoNode {
		return
	}
	s.RemoveChild(n.parent, id)
}

// Children returns the children of id, or nil for an invalid ID.
// The returned slice MUST NOT be mutated by the caller.
func (s *Scene) Children(id NodeID) []NodeID {
	if n := s.Node(id); n != nil {
		return n.children
	}
	return nil
}

// Parent returns the parent of id, or NoNode.
func (s *Scene) Parent(id NodeID) NodeID {
	if n := s.Node(id); n != nil {
		return n.parent
	}
	return NoNode
}

// SetActive enables or disables a node and, implicitly, its subtree.
func (s *Scene) SetActive(id NodeID, active bool) {
	s.mustNode(id, "SetActive").Active = active
}

// Find returns the first node named name in a depth-first walk from the root.
func (s *Scene) Find(name string) (NodeID, bool) {
	var found NodeID
	s.walk(s.root, func(n *Node) bool {
		if found != NoNode {
			return false
		}
		if n.Name == name {
			found = n.ID
			return false
		}
		return true
	})
	return found, found != NoNode
}

// walk visits the subtree rooted at id depth-first. Returning false from fn
// skips the node's children.
func (s *Scene) walk(id NodeID, fn func(n *Node) bool) {
	n := s.Node(id)
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < len(n.children); i++ {
		s.walk(n.children[i], fn)
	}
}

// --- Deferred destruction ---

// Destroy queues id and its subtree for removal. Nothing is unlinked until
// FlushDestroyed runs, so the node keeps taking part in any ticks that remain
// in the current frame. Destroying an already queued node is a no-op.
func (s *Scene) Destroy(id NodeID) {
	n := s.Node(id)
	if n == nil || n.pending {
		return
	}
	if id == s.root {
		panic("thicket: cannot destroy the scene root")
	}
	n.pending = true
	s.pending = append(s.pending, id)
}

// PendingDestroy returns the IDs queued by Destroy and not yet flushed.
// The returned slice MUST NOT be mutated by the caller.
func (s *Scene) PendingDestroy() []NodeID {
	return s.pending
}

// FlushDestroyed unlinks every queued node from its parent and frees it along
// with its subtree. Call it once the frame's ticks and rendering are done.
// Returns the number of nodes freed.
func (s *Scene) FlushDestroyed() int {
	freed := 0
	for _, id := range s.pending {
		n := s.Node(id)
		if n == nil {
			continue
		}
		if p := s.Node(n.parent); p != nil {
			p.removeChildByID(id)
		}
		freed += s.freeSubtree(n)
	}
	clear(s.pending)
	s.pending = s.pending[:0]
	s.world.clearBuffers()
	return freed
}

// freeSubtree releases n and every descendant.
func (s *Scene) freeSubtree(n *Node) int {
	freed := 1
	for _, cid := range n.children {
		if c := s.Node(cid); c != nil {
			freed += s.freeSubtree(c)
		}
	}
	s.release(n)
	return freed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func (s *Scene) isAncestor(candidate, node NodeID) bool {
	for p := node; p != NoNode; {
		if p == candidate {
			return true
		}
		n := s.Node(p)
		if n == nil {
			return false
		}
		p = n.parent
	}
	return false
}

// removeChildByID removes child from n.children without clearing its parent.
func (n *Node) removeChildByID(child NodeID) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = NoNode
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func (s *Scene) markSubtreeDirty(n *Node) {
	n.transformDirty = true
	for _, cid := range n.children {
		if c := s.Node(cid); c != nil {
			s.markSubtreeDirty(c)
		}
	}
}
