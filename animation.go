package thicket

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 transform fields of a node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation) and call Update(dt) each frame, typically from an OnUpdate
// callback. The group writes the values and marks the node dirty. If the
// target node is destroyed or its ID goes stale, the group stops immediately.
//
// A position tween on a static body also sets the body's velocity to the
// tween's displacement per second, so bodies resting on a moving platform are
// carried along by friction.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	field  func(n *Node) [2]*float64
	scene  *Scene
	target NodeID
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	n := g.scene.Node(g.target)
	if n == nil || n.IsDestroyed() {
		g.Done = true
		return
	}

	fields := g.field(n)
	before := n.Transform.Position
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if n.Body.IsStatic() && dt > 0 {
		moved := n.Transform.Position.Sub(before)
		if g.Done {
			n.Transform.Velocity = Vec2{}
		} else if !moved.Equal(Vec2{}) {
			n.Transform.Velocity = moved.Scale(1 / float64(dt))
		}
	}
	g.scene.markSubtreeDirty(n)
}

func newTweenGroup(s *Scene, id NodeID, from, to [2]float64, count int, duration float32, fn ease.TweenFunc, field func(n *Node) [2]*float64) *TweenGroup {
	g := &TweenGroup{count: count, field: field, scene: s, target: id}
	for i := 0; i < count; i++ {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), duration, fn)
	}
	return g
}

// TweenPosition creates a TweenGroup that animates the node's local position to
// the given target over the specified duration using the easing function.
func (s *Scene) TweenPosition(id NodeID, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := s.mustNode(id, "TweenPosition")
	from := n.Transform.Position
	return newTweenGroup(s, id, [2]float64{from.X, from.Y}, [2]float64{to.X, to.Y}, 2, duration, fn,
		func(n *Node) [2]*float64 {
			return [2]*float64{&n.Transform.Position.X, &n.Transform.Position.Y}
		})
}

// TweenScale creates a TweenGroup that animates the node's local scale.
func (s *Scene) TweenScale(id NodeID, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := s.mustNode(id, "TweenScale")
	from := n.Transform.Scale
	return newTweenGroup(s, id, [2]float64{from.X, from.Y}, [2]float64{to.X, to.Y}, 2, duration, fn,
		func(n *Node) [2]*float64 {
			return [2]*float64{&n.Transform.Scale.X, &n.Transform.Scale.Y}
		})
}

// TweenRotation creates a TweenGroup that animates the node's rotation in degrees.
func (s *Scene) TweenRotation(id NodeID, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	n := s.mustNode(id, "TweenRotation")
	return newTweenGroup(s, id, [2]float64{n.Transform.Rotation}, [2]float64{to}, 1, duration, fn,
		func(n *Node) [2]*float64 {
			return [2]*float64{&n.Transform.Rotation}
		})
}
