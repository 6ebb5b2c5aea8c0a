package thicket

import (
	"math"
	"time"

	"go.uber.org/zap"
)

// WorldConfig holds the simulation constants of a World.
type WorldConfig struct {
	// Gravity is the acceleration added each tick to bodies with gravity
	// enabled. Y grows downward.
	Gravity Vec2

	// CorrectionPercent is the fraction of the remaining penetration removed
	// by positional correction each tick (typically 0.2 to 0.8).
	CorrectionPercent float64

	// Slop is the penetration allowed before positional correction kicks in.
	Slop float64
}

// DefaultWorldConfig returns the stock simulation constants.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Gravity:           Vec2{0, 9.8},
		CorrectionPercent: 0.2,
		Slop:              0.1,
	}
}

// StepStats reports what the most recent tick did.
type StepStats struct {
	Bodies      int
	PairsTested int
	Manifolds   int
	Duration    time.Duration
}

// CollisionEvent describes one manifold for a CollisionSink.
type CollisionEvent struct {
	A, B         NodeID
	NameA, NameB string
	Normal       Vec2
	Depth        float64
	Trigger      bool
}

// CollisionSink receives every manifold of every tick, after the nodes'
// OnCollision callbacks ran. The ecs package provides a Donburi-backed sink.
type CollisionSink interface {
	EmitCollision(event CollisionEvent)
}

// World is the physics context of a Scene. It owns the layer adjacency table
// and the per-tick body and manifold buffers; the buffers are emptied at the
// end of every tick so no node reference outlives it.
type World struct {
	cfg    WorldConfig
	layers *LayerTable

	bodies    []*Node
	manifolds []Manifold

	sink   CollisionSink
	logger *zap.Logger
	debug  bool
	stats  StepStats
}

// NewWorld creates a physics world with the given configuration.
func NewWorld(cfg WorldConfig) *World {
	return &World{
		cfg:    cfg,
		layers: NewLayerTable(),
		logger: zap.NewNop(),
	}
}

// Config returns the world's configuration.
func (w *World) Config() WorldConfig {
	return w.cfg
}

// SetConfig replaces the world's configuration. Takes effect on the next tick.
func (w *World) SetConfig(cfg WorldConfig) {
	w.cfg = cfg
}

// Layers returns the world's layer table.
func (w *World) Layers() *LayerTable {
	return w.layers
}

// LastStats returns the statistics of the most recent tick.
func (w *World) LastStats() StepStats {
	return w.stats
}

// Step advances the subtree rooted at root by one fixed tick of dt seconds.
// The phases run in a fixed order: collect, pair, integrate forces, resolve
// impulses, integrate velocities, correct positions.
func (w *World) Step(s *Scene, root NodeID, dt float64) {
	var t0 time.Time
	if w.debug {
		t0 = time.Now()
	}
	w.stats = StepStats{}
	w.layers.ensureInitialized()

	s.refreshTransforms()
	w.collect(s, root)
	w.pair()
	w.integrateForces(dt)
	w.resolveImpulses()
	w.integrateVelocities(s, dt)
	s.refreshTransforms()
	w.correctPositions(s)
	s.refreshTransforms()

	w.stats.Bodies = len(w.bodies)
	w.stats.Manifolds = len(w.manifolds)
	w.clearBuffers()

	if w.debug {
		w.stats.Duration = time.Since(t0)
		w.debugLog(w.stats)
	}
}

// collect appends every active physics node under root, depth-first.
// Inactive nodes hide their whole subtree.
func (w *World) collect(s *Scene, root NodeID) {
	s.walk(root, func(n *Node) bool {
		if !n.Active {
			return false
		}
		if n.Physics {
			w.layers.Register(n.layer())
			w.bodies = append(w.bodies, n)
		}
		return true
	})
}

// pair runs the narrow phase on every unordered pair in collection order.
func (w *World) pair() {
	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		shapeA := worldShape(a)
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			if a.Body.IsStatic() && b.Body.IsStatic() {
				continue
			}
			if !w.layers.CanInteract(a.layer(), b.layer()) {
				continue
			}
			w.stats.PairsTested++
			c, ok := Collide(shapeA, worldShape(b))
			if !ok {
				continue
			}
			w.manifolds = append(w.manifolds, Manifold{A: a, B: b, Normal: c.Normal, Depth: c.Depth})
		}
	}
}

// integrateForces recomputes each dynamic body's acceleration from its own
// acceleration and the gravity flag, and adds it to the velocity.
func (w *World) integrateForces(dt float64) {
	for _, n := range w.bodies {
		if n.Body.IsStatic() {
			continue
		}
		acc := n.Transform.Acceleration
		if n.Body.HasGravity() {
			acc = acc.Add(w.cfg.Gravity)
		}
		n.Transform.Velocity = n.Transform.Velocity.Add(acc.Scale(dt))
	}
}

// resolveImpulses applies restitution and friction impulses for every
// non-trigger manifold, then notifies both participants of every manifold.
func (w *World) resolveImpulses() {
	for i := range w.manifolds {
		m := &w.manifolds[i]
		trigger := m.isTrigger()
		if !trigger {
			applyImpulse(m)
		}
		w.notify(m, trigger)
	}
}

// applyImpulse resolves the relative velocity of m's bodies along the normal.
func applyImpulse(m *Manifold) {
	a, b := m.A, m.B
	invSum := m.inverseMassSum()
	if invSum == 0 {
		return
	}
	rv := b.Transform.Velocity.Sub(a.Transform.Velocity)
	dot := rv.Dot(m.Normal)
	if dot > 0 {
		return
	}
	e := math.Min(a.Body.Restitution(), b.Body.Restitution())
	j := -(1 + e) * dot / invSum
	impulse := m.Normal.Scale(j)
	addVelocity(a, impulse.Scale(-a.Body.InverseMass()))
	addVelocity(b, impulse.Scale(b.Body.InverseMass()))

	applyFriction(m, j)
}

// applyFriction applies a Coulomb friction impulse along the contact tangent,
// using the post-impulse velocities.
func applyFriction(m *Manifold, j float64) {
	a, b := m.A, m.B
	invSum := m.inverseMassSum()
	rv := b.Transform.Velocity.Sub(a.Transform.Velocity)
	tangent := rv.Sub(m.Normal.Scale(rv.Dot(m.Normal))).Normalize()

	jt := -rv.Dot(tangent) / invSum
	mu := math.Hypot(a.Body.StaticFriction(), b.Body.StaticFriction())

	var frictionImpulse Vec2
	if math.Abs(jt) < j*mu {
		frictionImpulse = tangent.Scale(jt)
	} else {
		dynamic := math.Hypot(a.Body.DynamicFriction(), b.Body.DynamicFriction())
		frictionImpulse = tangent.Scale(-j * dynamic)
	}
	addVelocity(a, frictionImpulse.Scale(-a.Body.InverseMass()))
	addVelocity(b, frictionImpulse.Scale(b.Body.InverseMass()))
}

// addVelocity adds dv to a movable body's velocity.
func addVelocity(n *Node, dv Vec2) {
	if n.Body.InverseMass() == 0 {
		return
	}
	n.Transform.Velocity = n.Transform.Velocity.Add(dv)
}

// notify invokes both nodes' OnCollision callbacks and forwards the manifold
// to the sink.
func (w *World) notify(m *Manifold, trigger bool) {
	if m.A.OnCollision != nil {
		m.A.OnCollision(CollisionContext{
			Self: m.A.ID, Other: m.B.ID, Normal: m.Normal, Depth: m.Depth, Trigger: trigger,
		})
	}
	if m.B.OnCollision != nil {
		m.B.OnCollision(CollisionContext{
			Self: m.B.ID, Other: m.A.ID, Normal: m.Normal.Neg(), Depth: m.Depth, Trigger: trigger,
		})
	}
	if w.sink != nil {
		w.sink.EmitCollision(CollisionEvent{
			A: m.A.ID, B: m.B.ID,
			NameA: m.A.Name, NameB: m.B.Name,
			Normal: m.Normal, Depth: m.Depth,
			Trigger: trigger,
		})
	}
}

// integrateVelocities moves every dynamic body by velocity * dt.
func (w *World) integrateVelocities(s *Scene, dt float64) {
	for _, n := range w.bodies {
		if n.Body.IsStatic() {
			continue
		}
		v := n.Transform.Velocity
		if v.X == 0 && v.Y == 0 {
			continue
		}
		s.translateWorld(n, v.Scale(dt))
	}
}

// correctPositions pushes penetrating non-trigger pairs apart along the
// normal, split by inverse mass. Immovable bodies never move.
func (w *World) correctPositions(s *Scene) {
	for i := range w.manifolds {
		m := &w.manifolds[i]
		if m.isTrigger() {
			continue
		}
		invSum := m.inverseMassSum()
		if invSum == 0 {
			continue
		}
		amount := math.Max(m.Depth-w.cfg.Slop, 0) / invSum * w.cfg.CorrectionPercent
		if amount == 0 {
			continue
		}
		correction := m.Normal.Scale(amount)
		if inv := m.A.Body.InverseMass(); inv != 0 {
			s.translateWorld(m.A, correction.Scale(-inv))
		}
		if inv := m.B.Body.InverseMass(); inv != 0 {
			s.translateWorld(m.B, correction.Scale(inv))
		}
	}
}

// clearBuffers empties the body and manifold buffers, dropping node references.
func (w *World) clearBuffers() {
	clear(w.bodies)
	w.bodies = w.bodies[:0]
	clear(w.manifolds)
	w.manifolds = w.manifolds[:0]
}
