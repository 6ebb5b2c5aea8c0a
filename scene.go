package thicket

import (
	"go.uber.org/zap"
)

// Scene is the top-level object that owns the node arena, the physics World,
// the fixed-timestep clock and the pending-destroy list.
//
// A frame is Update (callbacks plus zero or more physics ticks), then
// rendering, then FlushDestroyed. Destroyed nodes stay in the tree until the
// flush, so nothing is unlinked while a tick or a render pass is walking it.
type Scene struct {
	nodes   []*Node
	free    []uint32
	root    NodeID
	pending []NodeID

	world *World
	clock *FixedStep

	logger *zap.Logger
	debug  bool
	ticks  uint64
}

// NewScene creates a scene with a root container, the default world
// configuration and a 60 Hz clock.
func NewScene() *Scene {
	return NewSceneWithConfig(DefaultWorldConfig(), DefaultStep)
}

// NewSceneWithConfig creates a scene with the given world configuration and
// fixed tick length in seconds.
func NewSceneWithConfig(cfg WorldConfig, step float64) *Scene {
	s := &Scene{
		world:  NewWorld(cfg),
		clock:  NewFixedStep(step),
		logger: zap.NewNop(),
	}
	s.root = s.NewContainer("root")
	return s
}

// Root returns the scene's root container.
func (s *Scene) Root() NodeID {
	return s.root
}

// World returns the scene's physics context.
func (s *Scene) World() *World {
	return s.world
}

// Clock returns the scene's fixed-timestep accumulator.
func (s *Scene) Clock() *FixedStep {
	return s.clock
}

// Ticks returns the number of physics ticks run since the scene was created.
func (s *Scene) Ticks() uint64 {
	return s.ticks
}

// SetPaused pauses or resumes the scene. A paused scene skips update
// callbacks and physics for whole frames.
func (s *Scene) SetPaused(paused bool) {
	s.clock.Paused = paused
}

// Paused reports whether the scene is paused.
func (s *Scene) Paused() bool {
	return s.clock.Paused
}

// SetLogger sets the logger used for debug output. Nil restores the no-op logger.
func (s *Scene) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
	s.world.logger = logger
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// SetDebugMode enables per-tick stats logging and tree sanity warnings.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	s.world.debug = enabled
}

// SetCollisionSink sets the receiver for collision events. Nil disables it.
func (s *Scene) SetCollisionSink(sink CollisionSink) {
	s.world.sink = sink
}

// Update advances the scene by elapsed seconds of wall time. It runs every
// active node's OnUpdate callback once, then as many fixed physics ticks as the
// clock allows. Returns the number of ticks run.
func (s *Scene) Update(elapsed float64) int {
	if s.clock.Paused {
		return 0
	}
	s.runUpdateCallbacks(elapsed)
	n := s.clock.Advance(elapsed, s.tick)
	s.refreshTransforms()
	return n
}

// Step runs exactly one physics tick of dt seconds, bypassing the clock.
func (s *Scene) Step(dt float64) {
	s.tick(dt)
}

// tick snapshots the world matrices for interpolation and runs the physics step.
func (s *Scene) tick(dt float64) {
	s.refreshTransforms()
	for _, n := range s.nodes {
		if n.alive {
			n.prevMatrix = n.worldMatrix
		}
	}
	s.world.Step(s, s.root, dt)
	s.ticks++
}

// runUpdateCallbacks calls OnUpdate on every active node, depth-first.
func (s *Scene) runUpdateCallbacks(dt float64) {
	s.walk(s.root, func(n *Node) bool {
		if !n.Active {
			return false
		}
		if n.OnUpdate != nil {
			n.OnUpdate(dt)
		}
		return true
	})
}

// InterpolatedMatrix blends the node's world matrix from before the last tick
// with its current one. alpha is usually Clock().Alpha().
func (s *Scene) InterpolatedMatrix(id NodeID, alpha float64) Matrix2D {
	n := s.Node(id)
	if n == nil {
		return IdentityMatrix
	}
	return n.prevMatrix.Lerp(n.worldMatrix, alpha)
}

// InterpolatedShape returns the node's collider resolved against
// InterpolatedMatrix. ok is false for invalid IDs and nodes without a shape.
func (s *Scene) InterpolatedShape(id NodeID, alpha float64) (sh Shape, ok bool) {
	n := s.Node(id)
	if n == nil || n.Collider.Kind == ShapeNone {
		return Shape{}, false
	}
	return shapeAt(n, s.InterpolatedMatrix(id, alpha)), true
}

// ActiveBodies appends the IDs of every active physics node to dst, in the
// order the physics step collects them, and returns the extended slice.
func (s *Scene) ActiveBodies(dst []NodeID) []NodeID {
	s.walk(s.root, func(n *Node) bool {
		if !n.Active {
			return false
		}
		if n.Physics {
			dst = append(dst, n.ID)
		}
		return true
	})
	return dst
}
