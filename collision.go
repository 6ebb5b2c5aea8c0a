package thicket

import "math"

// Contact is the geometric part of a manifold: a unit normal pointing from the
// first shape towards the second, and the penetration depth along it.
type Contact struct {
	Normal Vec2
	Depth  float64
}

// Overlaps reports whether a and b intersect. Touching boxes do not overlap;
// touching circles do.
func Overlaps(a, b Shape) bool {
	switch {
	case a.Kind == ShapeBox && b.Kind == ShapeBox:
		d := b.Center.Sub(a.Center)
		return a.Half.X+b.Half.X > math.Abs(d.X) && a.Half.Y+b.Half.Y > math.Abs(d.Y)
	case a.Kind == ShapeBox && b.Kind == ShapeCircle:
		return boxCircleOverlap(a, b)
	case a.Kind == ShapeCircle && b.Kind == ShapeBox:
		return boxCircleOverlap(b, a)
	case a.Kind == ShapeCircle && b.Kind == ShapeCircle:
		sum := a.Radius + b.Radius
		return b.Center.Sub(a.Center).LenSq() <= sum*sum
	}
	return false
}

// boxCircleOverlap tests the circle's center against the box grown by the radius,
// then the corner regions against the radius.
func boxCircleOverlap(box, circle Shape) bool {
	d := circle.Center.Sub(box.Center)
	d = Vec2{math.Abs(d.X), math.Abs(d.Y)}
	if d.X > box.Half.X+circle.Radius || d.Y > box.Half.Y+circle.Radius {
		return false
	}
	if d.X <= box.Half.X || d.Y <= box.Half.Y {
		return true
	}
	return d.Sub(box.Half).LenSq() <= circle.Radius*circle.Radius
}

// Collide runs the narrow phase for a pair of world-space shapes. It reports
// false when the shapes do not collide; the absence of a contact is the only
// "no collision" signal. Shapes of kind ShapeNone never collide.
func Collide(a, b Shape) (Contact, bool) {
	switch {
	case a.Kind == ShapeBox && b.Kind == ShapeBox:
		return collideBoxBox(a, b)
	case a.Kind == ShapeBox && b.Kind == ShapeCircle:
		return collideBoxCircle(a, b)
	case a.Kind == ShapeCircle && b.Kind == ShapeBox:
		c, ok := collideBoxCircle(b, a)
		c.Normal = c.Normal.Neg()
		return c, ok
	case a.Kind == ShapeCircle && b.Kind == ShapeCircle:
		return collideCircleCircle(a, b)
	}
	return Contact{}, false
}

// collideBoxBox separates along the axis of least overlap. When both overlaps
// are equal the horizontal axis wins.
func collideBoxBox(a, b Shape) (Contact, bool) {
	d := b.Center.Sub(a.Center)
	xOverlap := a.Half.X + b.Half.X - math.Abs(d.X)
	if xOverlap <= 0 {
		return Contact{}, false
	}
	yOverlap := a.Half.Y + b.Half.Y - math.Abs(d.Y)
	if yOverlap <= 0 {
		return Contact{}, false
	}
	if xOverlap > yOverlap {
		return Contact{Normal: Vec2{0, axisSign(d.Y)}, Depth: yOverlap}, true
	}
	return Contact{Normal: Vec2{axisSign(d.X), 0}, Depth: xOverlap}, true
}

// collideBoxCircle resolves a circle against a box. The normal points from the
// box towards the circle.
//
// When the circle's center lies inside the box, it is snapped to the edge on
// the axis with the smaller absolute deviation from the box center (ties go
// to y). Depth is the radius plus the center's distance to that edge.
func collideBoxCircle(box, circle Shape) (Contact, bool) {
	h := box.Half
	d := circle.Center.Sub(box.Center)
	closest := Vec2{clamp(d.X, -h.X, h.X), clamp(d.Y, -h.Y, h.Y)}

	if closest.Equal(d) {
		if math.Abs(d.X) < math.Abs(d.Y) {
			return Contact{Normal: Vec2{axisSign(d.X), 0}, Depth: circle.Radius + h.X - math.Abs(d.X)}, true
		}
		return Contact{Normal: Vec2{0, axisSign(d.Y)}, Depth: circle.Radius + h.Y - math.Abs(d.Y)}, true
	}

	diff := d.Sub(closest)
	distSq := diff.LenSq()
	if distSq > circle.Radius*circle.Radius {
		return Contact{}, false
	}
	dist := math.Sqrt(distSq)
	return Contact{Normal: diff.Scale(1 / dist), Depth: circle.Radius - dist}, true
}

// collideCircleCircle resolves two circles. Coincident centers fall back to
// the normal (1, 0) and the larger radius as depth.
func collideCircleCircle(a, b Shape) (Contact, bool) {
	d := b.Center.Sub(a.Center)
	sum := a.Radius + b.Radius
	if d.LenSq() > sum*sum {
		return Contact{}, false
	}
	dist := d.Len()
	if dist == 0 {
		return Contact{Normal: Vec2{1, 0}, Depth: math.Max(a.Radius, b.Radius)}, true
	}
	return Contact{Normal: d.Scale(1 / dist), Depth: sum - dist}, true
}
