package thicket

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 1.0 / 60

func addBox(s *Scene, parent NodeID, name string, pos Vec2, w, h float64, opts BodyOptions) NodeID {
	id := s.NewBox(name, w, h, opts)
	s.SetPosition(id, pos)
	s.AddChild(parent, id)
	return id
}

func addCircle(s *Scene, parent NodeID, name string, pos Vec2, r float64, opts BodyOptions) NodeID {
	id := s.NewCircle(name, r, opts)
	s.SetPosition(id, pos)
	s.AddChild(parent, id)
	return id
}

func staticBody() BodyOptions {
	opts := DefaultBodyOptions()
	opts.Static = true
	return opts
}

func gravityBody() BodyOptions {
	opts := DefaultBodyOptions()
	opts.Gravity = true
	return opts
}

func stepN(s *Scene, n int) {
	for i := 0; i < n; i++ {
		s.Step(tick)
	}
}

func TestStepRestInvariant(t *testing.T) {
	s := NewScene()
	b := addBox(s, s.Root(), "b", Vec2{12.5, -3}, 10, 10, DefaultBodyOptions())
	addBox(s, s.Root(), "far", Vec2{500, 500}, 10, 10, staticBody())

	stepN(s, 1000)

	n := s.Node(b)
	assert.Equal(t, Vec2{12.5, -3}, n.Transform.Position)
	assert.Equal(t, Vec2{}, n.Transform.Velocity)
}

func TestStepStaticPairsAreSkipped(t *testing.T) {
	s := NewScene()
	calls := 0
	a := addBox(s, s.Root(), "a", Vec2{}, 20, 20, staticBody())
	addBox(s, s.Root(), "b", Vec2{5, 5}, 20, 20, staticBody())
	s.Node(a).OnCollision = func(CollisionContext) { calls++ }

	s.Step(tick)

	stats := s.World().LastStats()
	assert.Equal(t, 2, stats.Bodies)
	assert.Equal(t, 0, stats.PairsTested)
	assert.Equal(t, 0, stats.Manifolds)
	assert.Zero(t, calls)
}

func TestStepEdgeContactBoxesDoNotCollide(t *testing.T) {
	s := NewScene()
	calls := 0
	a := addBox(s, s.Root(), "a", Vec2{}, 20, 20, DefaultBodyOptions())
	addBox(s, s.Root(), "b", Vec2{20, 0}, 20, 20, DefaultBodyOptions())
	s.Node(a).OnCollision = func(CollisionContext) { calls++ }

	s.Step(tick)

	assert.Equal(t, 1, s.World().LastStats().PairsTested)
	assert.Equal(t, 0, s.World().LastStats().Manifolds)
	assert.Zero(t, calls)
}

func TestStepCoincidentCirclesSeparateWithoutNaN(t *testing.T) {
	s := NewScene()
	a := addCircle(s, s.Root(), "a", Vec2{50, 50}, 10, DefaultBodyOptions())
	b := addCircle(s, s.Root(), "b", Vec2{50, 50}, 10, DefaultBodyOptions())

	stepN(s, 10)

	pa := s.Node(a).WorldPosition()
	pb := s.Node(b).WorldPosition()
	for _, v := range []float64{pa.X, pa.Y, pb.X, pb.Y} {
		require.False(t, math.IsNaN(v))
	}
	assert.Less(t, pa.X, 50.0)
	assert.Greater(t, pb.X, 50.0)
	assert.InDelta(t, 50, pa.Y, epsilon)
}

func TestStepElasticHeadOnSwapsVelocities(t *testing.T) {
	s := NewScene()
	opts := DefaultBodyOptions()
	opts.Restitution = 1
	a := addCircle(s, s.Root(), "a", Vec2{0, 0}, 10, opts)
	b := addCircle(s, s.Root(), "b", Vec2{15, 0}, 10, opts)
	s.SetVelocity(b, Vec2{-100, 0})

	s.Step(tick)

	assertVec(t, "vA", s.Node(a).Transform.Velocity, Vec2{-100, 0})
	assertVec(t, "vB", s.Node(b).Transform.Velocity, Vec2{0, 0})
}

func TestStepImmovableBodiesNeverMove(t *testing.T) {
	s := NewScene()
	wall := addBox(s, s.Root(), "wall", Vec2{0, 0}, 20, 200, staticBody())
	s.SetVelocity(wall, Vec2{3, 0})
	ball := addCircle(s, s.Root(), "ball", Vec2{-14, 0}, 8, gravityBody())
	s.SetVelocity(ball, Vec2{200, 0})

	for i := 0; i < 120; i++ {
		s.Step(tick)
		require.Equal(t, Vec2{}, s.Node(wall).Transform.Position)
		require.Equal(t, Vec2{3, 0}, s.Node(wall).Transform.Velocity)
	}
	assert.Less(t, s.Node(ball).Transform.Position.X, 0.0)
}

func TestStepRestingContact(t *testing.T) {
	s := NewScene()
	addBox(s, s.Root(), "ground", Vec2{0, 0}, 100, 20, staticBody())
	b := addBox(s, s.Root(), "crate", Vec2{0, -40}, 20, 20, gravityBody())

	stepN(s, 1200)

	n := s.Node(b)
	bottom := n.WorldPosition().Y + 10
	top := -10.0
	slop := s.World().Config().Slop
	assert.InDelta(t, top, bottom, slop+0.01, "crate bottom %v, ground top %v", bottom, top)
	assert.Less(t, math.Abs(n.Transform.Velocity.Y), 1.0)
	assert.InDelta(t, 0, n.WorldPosition().X, epsilon)
}

func TestStepFrictionSlowsSlidingBody(t *testing.T) {
	s := NewScene()
	addBox(s, s.Root(), "ground", Vec2{0, 0}, 1000, 20, staticBody())
	b := addBox(s, s.Root(), "crate", Vec2{0, -19.9}, 20, 20, gravityBody())
	s.SetVelocity(b, Vec2{10, 0})

	stepN(s, 60)

	vx := s.Node(b).Transform.Velocity.X
	assert.Less(t, vx, 10.0)
	assert.GreaterOrEqual(t, vx, 0.0)
}

func TestStepPositionalCorrectionSplitsByInverseMass(t *testing.T) {
	s := NewScene()
	a := addBox(s, s.Root(), "a", Vec2{0, 0}, 20, 20, DefaultBodyOptions())
	b := addBox(s, s.Root(), "b", Vec2{10, 0}, 20, 20, DefaultBodyOptions())

	s.Step(tick)

	// depth 10, slop 0.1, percent 0.2, equal masses.
	assertVec(t, "a", s.Node(a).Transform.Position, Vec2{-0.99, 0})
	assertVec(t, "b", s.Node(b).Transform.Position, Vec2{10.99, 0})
	assertVec(t, "vA", s.Node(a).Transform.Velocity, Vec2{})
}

func TestStepCorrectionAgainstStaticMovesOnlyDynamic(t *testing.T) {
	s := NewScene()
	a := addBox(s, s.Root(), "ground", Vec2{0, 0}, 100, 20, staticBody())
	b := addBox(s, s.Root(), "crate", Vec2{0, -15}, 20, 20, DefaultBodyOptions())

	s.Step(tick)

	assert.Equal(t, Vec2{}, s.Node(a).Transform.Position)
	// depth 5 along (0,-1): (5 - 0.1) * 0.2 = 0.98.
	assertVec(t, "crate", s.Node(b).Transform.Position, Vec2{0, -15.98})
}

func TestStepLayerFiltering(t *testing.T) {
	s := NewScene()
	s.World().Layers().SetInteraction(LayerUnit, LayerUnit, false)

	calls := 0
	a := addBox(s, s.Root(), "a", Vec2{0, 0}, 20, 20, DefaultBodyOptions())
	b := addBox(s, s.Root(), "b", Vec2{5, 0}, 20, 20, DefaultBodyOptions())
	s.Node(a).Layer = LayerUnit
	s.Node(b).Layer = LayerUnit
	s.Node(a).OnCollision = func(CollisionContext) { calls++ }
	require.True(t, Overlaps(worldShape(s.Node(a)), worldShape(s.Node(b))))

	s.Step(tick)

	assert.Zero(t, calls)
	assert.Equal(t, 0, s.World().LastStats().PairsTested)
	assert.Equal(t, Vec2{}, s.Node(a).Transform.Position)

	// A default-layer body still collides with units.
	addBox(s, s.Root(), "c", Vec2{0, 5}, 20, 20, DefaultBodyOptions())
	s.Step(tick)
	assert.Equal(t, 2, s.World().LastStats().Manifolds)
}

func TestStepSelfRegistersNewLayers(t *testing.T) {
	s := NewScene()
	a := addCircle(s, s.Root(), "a", Vec2{}, 5, DefaultBodyOptions())
	b := addCircle(s, s.Root(), "b", Vec2{3, 0}, 5, DefaultBodyOptions())
	s.Node(a).Layer = "projectile"
	s.Node(b).Layer = LayerTerrain

	s.Step(tick)

	assert.Contains(t, s.World().Layers().Layers(), Layer("projectile"))
	assert.Equal(t, 1, s.World().LastStats().Manifolds)
}

func TestStepTriggerReportsWithoutResponse(t *testing.T) {
	s := NewScene()
	opts := staticBody()
	opts.Trigger = true
	zone := addBox(s, s.Root(), "zone", Vec2{}, 40, 40, opts)
	ball := addCircle(s, s.Root(), "ball", Vec2{5, 0}, 5, DefaultBodyOptions())
	s.SetVelocity(ball, Vec2{-60, 0})

	var got []CollisionContext
	s.Node(zone).OnCollision = func(ctx CollisionContext) { got = append(got, ctx) }

	s.Step(tick)

	require.Len(t, got, 1)
	assert.True(t, got[0].Trigger)
	assert.Equal(t, ball, got[0].Other)
	assertVec(t, "velocity untouched", s.Node(ball).Transform.Velocity, Vec2{-60, 0})
	assertVec(t, "moved by velocity only", s.Node(ball).Transform.Position, Vec2{4, 0})
}

func TestStepCallbacksSeeOppositeNormals(t *testing.T) {
	s := NewScene()
	a := addCircle(s, s.Root(), "a", Vec2{0, 0}, 10, DefaultBodyOptions())
	b := addCircle(s, s.Root(), "b", Vec2{0, 15}, 10, DefaultBodyOptions())

	var ctxA, ctxB []CollisionContext
	s.Node(a).OnCollision = func(ctx CollisionContext) { ctxA = append(ctxA, ctx) }
	s.Node(b).OnCollision = func(ctx CollisionContext) { ctxB = append(ctxB, ctx) }

	s.Step(tick)

	require.Len(t, ctxA, 1)
	require.Len(t, ctxB, 1)
	assert.Equal(t, a, ctxA[0].Self)
	assert.Equal(t, b, ctxA[0].Other)
	assertVec(t, "normal A", ctxA[0].Normal, Vec2{0, 1})
	assertVec(t, "normal B", ctxB[0].Normal, Vec2{0, -1})
	assertNear(t, "depth", ctxB[0].Depth, 5)
	assert.False(t, ctxA[0].Trigger)
}

func TestStepInactiveSubtreeIsExcluded(t *testing.T) {
	s := NewScene()
	group := s.NewContainer("group")
	s.AddChild(s.Root(), group)
	a := addBox(s, group, "a", Vec2{}, 20, 20, gravityBody())
	addBox(s, group, "b", Vec2{5, 0}, 20, 20, DefaultBodyOptions())
	s.SetActive(group, false)

	stepN(s, 10)

	assert.Equal(t, 0, s.World().LastStats().Bodies)
	assert.Equal(t, Vec2{}, s.Node(a).Transform.Position)
	assert.Equal(t, Vec2{}, s.Node(a).Transform.Velocity)
}

func TestStepGravityIsNotAccumulated(t *testing.T) {
	s := NewScene()
	b := addBox(s, s.Root(), "b", Vec2{}, 10, 10, gravityBody())
	s.Node(b).Transform.Acceleration = Vec2{1, 0}

	s.Step(tick)
	assertVec(t, "v1", s.Node(b).Transform.Velocity, Vec2{tick, 9.8 * tick})
	s.Step(tick)
	assertVec(t, "v2", s.Node(b).Transform.Velocity, Vec2{2 * tick, 2 * 9.8 * tick})
	assert.Equal(t, Vec2{1, 0}, s.Node(b).Transform.Acceleration)
}

func TestStepMovesChildrenInWorldSpace(t *testing.T) {
	s := NewScene()
	parent := s.NewContainer("parent")
	s.AddChild(s.Root(), parent)
	s.SetRotation(parent, 90)
	s.SetScale(parent, Vec2{2, 2})
	b := addBox(s, parent, "b", Vec2{}, 10, 10, DefaultBodyOptions())
	s.SetVelocity(b, Vec2{60, 0})

	s.Step(tick)

	assertVec(t, "world", s.Node(b).WorldPosition(), Vec2{1, 0})
}

func TestStepClearsBuffers(t *testing.T) {
	s := NewScene()
	addBox(s, s.Root(), "a", Vec2{}, 20, 20, DefaultBodyOptions())
	addBox(s, s.Root(), "b", Vec2{5, 0}, 20, 20, DefaultBodyOptions())

	s.Step(tick)

	w := s.World()
	assert.Empty(t, w.bodies)
	assert.Empty(t, w.manifolds)
	assert.Equal(t, 1, w.LastStats().Manifolds)
}

type recordingSink struct {
	events []CollisionEvent
}

func (r *recordingSink) EmitCollision(e CollisionEvent) { r.events = append(r.events, e) }

func TestStepCollisionSink(t *testing.T) {
	s := NewScene()
	sink := &recordingSink{}
	s.SetCollisionSink(sink)
	a := addBox(s, s.Root(), "a", Vec2{}, 20, 20, DefaultBodyOptions())
	b := addBox(s, s.Root(), "b", Vec2{15, 0}, 20, 20, DefaultBodyOptions())

	s.Step(tick)

	require.Len(t, sink.events, 1)
	e := sink.events[0]
	assert.Equal(t, a, e.A)
	assert.Equal(t, b, e.B)
	assert.Equal(t, "a", e.NameA)
	assert.Equal(t, Vec2{1, 0}, e.Normal)
	assertNear(t, "depth", e.Depth, 5)

	s.SetCollisionSink(nil)
	s.Step(tick)
	assert.Len(t, sink.events, 1)
}
