package thicket

// Manifold is the result of a positive narrow-phase test between two bodies.
// Normal is a unit vector pointing from A towards B. Manifolds live for a
// single tick and must not be retained.
type Manifold struct {
	A, B   *Node
	Normal Vec2
	Depth  float64
}

// isTrigger reports whether either participant is a trigger.
func (m *Manifold) isTrigger() bool {
	return m.A.Body.IsTrigger() || m.B.Body.IsTrigger()
}

// inverseMassSum returns invMass(A) + invMass(B).
func (m *Manifold) inverseMassSum() float64 {
	return m.A.Body.InverseMass() + m.B.Body.InverseMass()
}
