// Package thicket is a 2D scene graph with a rigid-body physics and collision
// engine.
//
// Thicket provides the node tree, the transform hierarchy, axis-aligned box and
// circle colliders, impulse-based collision response with restitution and
// Coulomb friction, positional correction, layer-based collision filtering and
// a fixed-timestep clock that keeps the simulation deterministic regardless of
// the render rate.
//
// # Quick start
//
//	scene := thicket.NewScene()
//
//	ground := scene.NewBox("ground", 1000, 50, thicket.BodyOptions{Static: true})
//	scene.SetPosition(ground, thicket.Vec2{X: 640, Y: 600})
//	scene.AddChild(scene.Root(), ground)
//
//	opts := thicket.DefaultBodyOptions()
//	opts.Gravity = true
//	crate := scene.NewBox("crate", 20, 20, opts)
//	scene.AddChild(scene.Root(), crate)
//
//	for {
//		scene.Update(elapsed) // callbacks + fixed physics ticks
//		// ... render ...
//		scene.FlushDestroyed()
//	}
//
// To open a window, use ebitenhost.Run, which drives the loop above from
// [Ebitengine] and draws colliders for debugging.
//
// # Scene graph
//
// Nodes live in an arena owned by the [Scene] and are addressed by [NodeID].
// IDs carry a generation, so an ID of a destroyed node never resolves to a
// node that later reuses its slot: [Scene.Node] returns nil instead.
// World matrices are composed as parent ∘ local and refreshed top-down.
//
// [Scene.Destroy] only queues a node. It keeps simulating until
// [Scene.FlushDestroyed] runs after the frame has been rendered.
//
// # Physics
//
// Each tick runs, in this order: collect active bodies, test every pair
// (skipping static pairs and layers that do not interact), integrate forces,
// resolve impulses and friction, integrate velocities, correct positions.
// Pairs are tested in tree order, so the resolution order of a pile of
// touching bodies depends on how the scene was built, but never varies between
// runs. [Scene.StateHash] fingerprints the result.
//
// Every contact is reported to both nodes' OnCollision callbacks and to the
// scene's [CollisionSink]; the ecs sub-package publishes them to a Donburi
// world. Trigger bodies are reported but never pushed.
//
// # Tweens
//
// [Scene.TweenPosition], [Scene.TweenScale] and [Scene.TweenRotation] animate
// node transforms using [gween]. A position tween on a static body doubles as
// a moving platform.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package thicket
