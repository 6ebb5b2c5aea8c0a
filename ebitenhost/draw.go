package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/thicket"
)

// Debug colors per body kind.
var (
	ColorDynamic = thicket.Color{R: 0.4, G: 0.9, B: 0.5, A: 1}
	ColorStatic  = thicket.Color{R: 0.6, G: 0.6, B: 0.7, A: 1}
	ColorTrigger = thicket.Color{R: 1, G: 0.8, B: 0.2, A: 1}
)

// colliderColor picks the outline color for n.
func colliderColor(n *thicket.Node) thicket.Color {
	switch {
	case n.Body.IsTrigger():
		return ColorTrigger
	case n.Body.IsStatic():
		return ColorStatic
	default:
		return ColorDynamic
	}
}

// DrawColliders outlines the colliders of ids at their interpolated positions,
// seen through cam. Boxes are drawn axis-aligned, as the narrow phase sees them.
func DrawColliders(dst *ebiten.Image, scene *thicket.Scene, cam *Camera, ids []thicket.NodeID, alpha float64) {
	view := cam.View()
	z := float32(cam.zoom())
	for _, id := range ids {
		sh, ok := scene.InterpolatedShape(id, alpha)
		if !ok || !cam.visible(sh) {
			continue
		}
		clr := colliderColor(scene.Node(id)).RGBA()
		switch sh.Kind {
		case thicket.ShapeBox:
			lo, hi := sh.Bounds()
			lo, hi = view.Apply(lo), view.Apply(hi)
			vector.StrokeRect(dst,
				float32(lo.X), float32(lo.Y), float32(hi.X-lo.X), float32(hi.Y-lo.Y),
				1, clr, true)
		case thicket.ShapeCircle:
			c := view.Apply(sh.Center)
			vector.StrokeCircle(dst,
				float32(c.X), float32(c.Y), float32(sh.Radius)*z,
				1, clr, true)
		}
	}
}
