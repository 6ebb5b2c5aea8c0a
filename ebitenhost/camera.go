package ebitenhost

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/thicket"
)

// scrollAnim holds the active scroll-to tweens for the camera axes.
type scrollAnim struct {
	x, y         *gween.Tween
	doneX, doneY bool
}

// Camera maps world space onto the screen. It pans and zooms but does not
// rotate, so axis-aligned colliders stay axis-aligned on screen.
type Camera struct {
	// Position is the world point shown at the viewport center.
	Position thicket.Vec2
	// Zoom is the scale factor (1 = no zoom, >1 = zoom in).
	Zoom float64
	// Viewport is the screen size the camera renders into.
	Viewport thicket.Vec2

	// Cull skips colliders whose bounds fall outside the visible area.
	Cull bool

	follow       thicket.NodeID
	followOffset thicket.Vec2
	followLerp   float64

	scroll *scrollAnim
}

// NewCamera returns a camera centered on the middle of a viewport of the
// given size, so world and screen coordinates coincide at zoom 1.
func NewCamera(width, height int) *Camera {
	vp := thicket.Vec2{X: float64(width), Y: float64(height)}
	return &Camera{
		Position: vp.Scale(0.5),
		Zoom:     1,
		Viewport: vp,
		Cull:     true,
	}
}

// Follow tracks the node's world position plus offset. A lerp of 1 snaps
// immediately; lower values smooth the motion.
func (c *Camera) Follow(id thicket.NodeID, offset thicket.Vec2, lerp float64) {
	c.follow = id
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() {
	c.follow = thicket.NoNode
}

// ScrollTo animates the camera to the world point over duration seconds.
func (c *Camera) ScrollTo(to thicket.Vec2, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &scrollAnim{
		x: gween.New(float32(c.Position.X), float32(to.X), duration, easeFn),
		y: gween.New(float32(c.Position.Y), float32(to.Y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scroll != nil
}

// update advances follow and scroll. A followed node that has been destroyed
// ends the follow.
func (c *Camera) update(scene *thicket.Scene, dt float64) {
	if c.follow != thicket.NoNode {
		n := scene.Node(c.follow)
		if n == nil || n.IsDestroyed() {
			c.follow = thicket.NoNode
		} else {
			target := n.WorldPosition().Add(c.followOffset)
			c.Position = c.Position.Add(target.Sub(c.Position).Scale(c.followLerp))
		}
	}

	if c.scroll != nil {
		if !c.scroll.doneX {
			v, done := c.scroll.x.Update(float32(dt))
			c.Position.X = float64(v)
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			v, done := c.scroll.y.Update(float32(dt))
			c.Position.Y = float64(v)
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}
}

// View returns the world-to-screen matrix:
// Translate(viewport/2) * Scale(zoom) * Translate(-Position).
func (c *Camera) View() thicket.Matrix2D {
	z := c.zoom()
	half := c.Viewport.Scale(0.5)
	return thicket.Translation(half.X, half.Y).
		Multiply(thicket.Scaling(z, z)).
		Multiply(thicket.Translation(-c.Position.X, -c.Position.Y))
}

// WorldToScreen converts a world point to screen coordinates.
func (c *Camera) WorldToScreen(p thicket.Vec2) thicket.Vec2 {
	return c.View().Apply(p)
}

// ScreenToWorld converts a screen point to world coordinates.
func (c *Camera) ScreenToWorld(p thicket.Vec2) thicket.Vec2 {
	return c.View().Inverse().Apply(p)
}

// VisibleBounds returns the world-space rectangle the camera sees.
func (c *Camera) VisibleBounds() (lo, hi thicket.Vec2) {
	half := c.Viewport.Scale(0.5 / c.zoom())
	return c.Position.Sub(half), c.Position.Add(half)
}

// visible reports whether sh intersects the visible area.
func (c *Camera) visible(sh thicket.Shape) bool {
	if !c.Cull {
		return true
	}
	lo, hi := c.VisibleBounds()
	slo, shi := sh.Bounds()
	return slo.X <= hi.X && shi.X >= lo.X && slo.Y <= hi.Y && shi.Y >= lo.Y
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 || math.IsNaN(c.Zoom) {
		return 1
	}
	return c.Zoom
}
