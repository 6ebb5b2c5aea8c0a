package ebitenhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thicket"
)

func assertVec(t *testing.T, name string, got, want thicket.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6, name+".X")
	assert.InDelta(t, want.Y, got.Y, 1e-6, name+".Y")
}

func TestNewCameraMatchesScreen(t *testing.T) {
	c := NewCamera(640, 480)
	assertVec(t, "position", c.Position, thicket.Vec2{X: 320, Y: 240})
	p := thicket.Vec2{X: 17, Y: 400}
	assertVec(t, "identity", c.WorldToScreen(p), p)
}

func TestCameraZoom(t *testing.T) {
	c := NewCamera(640, 480)
	c.Zoom = 2
	assertVec(t, "to screen", c.WorldToScreen(thicket.Vec2{X: 330, Y: 240}), thicket.Vec2{X: 340, Y: 240})
	assertVec(t, "to world", c.ScreenToWorld(thicket.Vec2{X: 340, Y: 240}), thicket.Vec2{X: 330, Y: 240})

	lo, hi := c.VisibleBounds()
	assertVec(t, "lo", lo, thicket.Vec2{X: 160, Y: 120})
	assertVec(t, "hi", hi, thicket.Vec2{X: 480, Y: 360})
}

func TestCameraInvalidZoomFallsBackToOne(t *testing.T) {
	c := NewCamera(100, 100)
	c.Zoom = 0
	p := thicket.Vec2{X: 3, Y: 4}
	assertVec(t, "identity", c.WorldToScreen(p), p)
}

func TestCameraCull(t *testing.T) {
	c := NewCamera(640, 480)
	assert.True(t, c.visible(thicket.Box(thicket.Vec2{X: -5, Y: 10}, 20, 20)), "overlaps the edge")
	assert.False(t, c.visible(thicket.Circle(thicket.Vec2{X: 1000, Y: 1000}, 10)))

	c.Cull = false
	assert.True(t, c.visible(thicket.Circle(thicket.Vec2{X: 1000, Y: 1000}, 10)))
}

func TestCameraFollow(t *testing.T) {
	s := thicket.NewScene()
	box := s.NewBox("box", 10, 10, thicket.DefaultBodyOptions())
	s.AddChild(s.Root(), box)
	s.SetPosition(box, thicket.Vec2{X: 100, Y: 50})
	s.Update(0)

	c := NewCamera(640, 480)
	c.Follow(box, thicket.Vec2{}, 0.5)
	c.update(s, 0)
	assertVec(t, "half way", c.Position, thicket.Vec2{X: 210, Y: 145})

	c.Follow(box, thicket.Vec2{X: 0, Y: -20}, 1)
	c.update(s, 0)
	assertVec(t, "snapped", c.Position, thicket.Vec2{X: 100, Y: 30})
}

func TestCameraFollowStopsOnDestroy(t *testing.T) {
	s := thicket.NewScene()
	box := s.NewContainer("target")
	s.AddChild(s.Root(), box)

	c := NewCamera(640, 480)
	c.Follow(box, thicket.Vec2{}, 1)
	s.Destroy(box)
	c.update(s, 0)
	assertVec(t, "unchanged", c.Position, thicket.Vec2{X: 320, Y: 240})
	assert.Equal(t, thicket.NoNode, c.follow)
}

func TestCameraScrollTo(t *testing.T) {
	s := thicket.NewScene()
	c := NewCamera(640, 480)
	c.ScrollTo(thicket.Vec2{X: 520, Y: 40}, 1, ease.Linear)
	assert.True(t, c.Scrolling())

	c.update(s, 0.5)
	assert.InDelta(t, 420, c.Position.X, 1e-3)
	assert.InDelta(t, 140, c.Position.Y, 1e-3)

	c.update(s, 0.5)
	assert.InDelta(t, 520, c.Position.X, 1e-3)
	assert.InDelta(t, 40, c.Position.Y, 1e-3)
	assert.False(t, c.Scrolling())
}
