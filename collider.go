package thicket

import "math"

// ShapeKind tags the variant held by a Collider.
type ShapeKind uint8

const (
	ShapeNone   ShapeKind = iota // integrates motion but never collides
	ShapeBox                     // axis-aligned box, Width x Height
	ShapeCircle                  // circle of Radius
)

// String returns the lower-case shape name used in scene files.
func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "circle"
	default:
		return "none"
	}
}

// Collider describes a node's collision shape in local units. Only the fields
// of the active Kind are meaningful. Offset is applied in the node's local
// space before world-space collision math.
type Collider struct {
	Kind   ShapeKind
	Width  float64
	Height float64
	Radius float64
	Offset Vec2
}

// BoxCollider returns a box collider of the given full size.
func BoxCollider(width, height float64) Collider {
	return Collider{Kind: ShapeBox, Width: width, Height: height}
}

// CircleCollider returns a circle collider.
func CircleCollider(radius float64) Collider {
	return Collider{Kind: ShapeCircle, Radius: radius}
}

// Boundary returns the unscaled extent: full width and height for a box, the
// radius in both components for a circle. Callers apply the world scale.
func (c Collider) Boundary() Vec2 {
	switch c.Kind {
	case ShapeBox:
		return Vec2{c.Width, c.Height}
	case ShapeCircle:
		return Vec2{c.Radius, c.Radius}
	default:
		return Vec2{}
	}
}

// Shape is a collider resolved into world space, ready for the narrow phase.
type Shape struct {
	Kind   ShapeKind
	Center Vec2
	Half   Vec2    // box half-extents
	Radius float64 // circle radius
}

// Box returns a world-space box shape centered at center.
func Box(center Vec2, width, height float64) Shape {
	return Shape{Kind: ShapeBox, Center: center, Half: Vec2{width / 2, height / 2}}
}

// Circle returns a world-space circle shape.
func Circle(center Vec2, radius float64) Shape {
	return Shape{Kind: ShapeCircle, Center: center, Radius: radius}
}

// Bounds returns the shape's axis-aligned bounding rectangle as min and max corners.
func (sh Shape) Bounds() (lo, hi Vec2) {
	ext := sh.Half
	if sh.Kind == ShapeCircle {
		ext = Vec2{sh.Radius, sh.Radius}
	}
	return sh.Center.Sub(ext), sh.Center.Add(ext)
}

// worldShape resolves n's collider against its current world matrix.
func worldShape(n *Node) Shape {
	return shapeAt(n, n.worldMatrix)
}

// shapeAt resolves n's collider against the world matrix m.
func shapeAt(n *Node, m Matrix2D) Shape {
	scale := m.ScaleVec()
	b := n.Collider.Boundary().Mul(scale)
	sh := Shape{Kind: n.Collider.Kind, Center: m.Apply(n.Collider.Offset)}
	switch n.Collider.Kind {
	case ShapeBox:
		sh.Half = b.Scale(0.5)
	case ShapeCircle:
		sh.Radius = math.Max(b.X, b.Y)
	}
	return sh
}
