package thicket

import "math"

// Matrix2D is a 2D affine matrix.
//
//	| A  C  X |
//	| B  D  Y |
//	| 0  0  1 |
type Matrix2D struct {
	A, B, C, D, X, Y float64
}

// IdentityMatrix is the identity affine matrix.
var IdentityMatrix = Matrix2D{A: 1, D: 1}

// singularEpsilon is the determinant magnitude below which a matrix is treated
// as non-invertible (e.g. a zero scale somewhere in the hierarchy).
const singularEpsilon = 1e-12

// Translation returns a matrix translating by (x, y).
func Translation(x, y float64) Matrix2D {
	return Matrix2D{A: 1, D: 1, X: x, Y: y}
}

// Rotation returns a matrix rotating by the given angle in degrees.
func Rotation(degrees float64) Matrix2D {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return Matrix2D{A: cos, B: sin, C: -sin, D: cos}
}

// Scaling returns a matrix scaling by (sx, sy).
func Scaling(sx, sy float64) Matrix2D {
	return Matrix2D{A: sx, D: sy}
}

// Multiply returns m * o: o is applied first, then m. World matrices are
// built as parent.Multiply(local).
func (m Matrix2D) Multiply(o Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		X: m.A*o.X + m.C*o.Y + m.X,
		Y: m.B*o.X + m.D*o.Y + m.Y,
	}
}

// Determinant returns the determinant of the linear part of m.
func (m Matrix2D) Determinant() float64 {
	return m.A*m.D - m.C*m.B
}

// Inverse returns the inverse of m.
// Returns the identity matrix if m is singular (determinant ≈ 0).
func (m Matrix2D) Inverse() Matrix2D {
	det := m.Determinant()
	if det > -singularEpsilon && det < singularEpsilon {
		return IdentityMatrix
	}
	invDet := 1.0 / det
	a := m.D * invDet
	b := -m.B * invDet
	c := -m.C * invDet
	d := m.A * invDet
	return Matrix2D{
		A: a, B: b, C: c, D: d,
		X: -(a*m.X + c*m.Y),
		Y: -(b*m.X + d*m.Y),
	}
}

// Apply transforms the point p by m.
func (m Matrix2D) Apply(p Vec2) Vec2 {
	return Vec2{m.A*p.X + m.C*p.Y + m.X, m.B*p.X + m.D*p.Y + m.Y}
}

// ApplyLinear transforms the direction v by the linear part of m, ignoring
// translation.
func (m Matrix2D) ApplyLinear(v Vec2) Vec2 {
	return Vec2{m.A*v.X + m.C*v.Y, m.B*v.X + m.D*v.Y}
}

// Position returns the translation component of m.
func (m Matrix2D) Position() Vec2 {
	return Vec2{m.X, m.Y}
}

// RotationDegrees returns the rotation encoded in m, in degrees within [0, 360).
func (m Matrix2D) RotationDegrees() float64 {
	deg := math.Atan2(m.B, m.A) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// ScaleVec returns the magnitude of each basis column of m. Reflections are
// reported as positive scale.
func (m Matrix2D) ScaleVec() Vec2 {
	return Vec2{math.Hypot(m.A, m.B), math.Hypot(m.C, m.D)}
}

// Lerp linearly interpolates every component from m (t=0) to o (t=1).
func (m Matrix2D) Lerp(o Matrix2D, t float64) Matrix2D {
	return Matrix2D{
		A: m.A + (o.A-m.A)*t,
		B: m.B + (o.B-m.B)*t,
		C: m.C + (o.C-m.C)*t,
		D: m.D + (o.D-m.D)*t,
		X: m.X + (o.X-m.X)*t,
		Y: m.Y + (o.Y-m.Y)*t,
	}
}
