package thicket

// Valid ranges for body configuration. Values outside are clamped, never rejected.
const (
	MinMass = 0.1 // inclusive floor for the open lower bound of (0.1, 10]
	MaxMass = 10.0
)

// BodyOptions configures a RigidBody. Use DefaultBodyOptions as the starting point.
type BodyOptions struct {
	Mass            float64 // clamped to [MinMass, MaxMass]
	Restitution     float64 // clamped to [0, 1]
	StaticFriction  float64 // clamped to [0, 1]
	DynamicFriction float64 // clamped to [0, 1]

	Static  bool // immovable: inverse mass is forced to 0
	Gravity bool // receives the world's gravity every tick
	Trigger bool // detected and reported, but never pushed
}

// DefaultBodyOptions returns a dynamic, non-gravity body with mass 1.
func DefaultBodyOptions() BodyOptions {
	return BodyOptions{
		Mass:            1,
		Restitution:     0.5,
		StaticFriction:  0.5,
		DynamicFriction: 0.3,
	}
}

// RigidBody is the physical state attached to a node. Fields are only reachable
// through methods so every value stays within its documented range.
type RigidBody struct {
	mass            float64
	inverseMass     float64
	restitution     float64
	staticFriction  float64
	dynamicFriction float64
	static          bool
	gravity         bool
	trigger         bool
}

// NewRigidBody builds a body from opts, clamping out-of-range values.
func NewRigidBody(opts BodyOptions) RigidBody {
	b := RigidBody{
		restitution:     clamp(opts.Restitution, 0, 1),
		staticFriction:  clamp(opts.StaticFriction, 0, 1),
		dynamicFriction: clamp(opts.DynamicFriction, 0, 1),
		static:          opts.Static,
		gravity:         opts.Gravity,
		trigger:         opts.Trigger,
	}
	b.SetMass(opts.Mass)
	return b
}

// Options returns the body's current configuration.
func (b RigidBody) Options() BodyOptions {
	return BodyOptions{
		Mass:            b.mass,
		Restitution:     b.restitution,
		StaticFriction:  b.staticFriction,
		DynamicFriction: b.dynamicFriction,
		Static:          b.static,
		Gravity:         b.gravity,
		Trigger:         b.trigger,
	}
}

// SetMass sets the mass, clamped to [MinMass, MaxMass], and recomputes the
// inverse mass.
func (b *RigidBody) SetMass(mass float64) {
	b.mass = clamp(mass, MinMass, MaxMass)
	b.updateInverseMass()
}

func (b *RigidBody) updateInverseMass() {
	switch {
	case b.static, b.mass == 0:
		b.inverseMass = 0
	default:
		b.inverseMass = 1 / b.mass
	}
}

// SetStatic toggles the immovable flag.
func (b *RigidBody) SetStatic(static bool) {
	b.static = static
	b.updateInverseMass()
}

// SetGravity toggles whether the world's gravity applies.
func (b *RigidBody) SetGravity(gravity bool) { b.gravity = gravity }

// SetTrigger toggles trigger mode.
func (b *RigidBody) SetTrigger(trigger bool) { b.trigger = trigger }

// SetRestitution sets the elasticity, clamped to [0, 1].
func (b *RigidBody) SetRestitution(e float64) { b.restitution = clamp(e, 0, 1) }

// SetFriction sets both friction coefficients, each clamped to [0, 1].
func (b *RigidBody) SetFriction(static, dynamic float64) {
	b.staticFriction = clamp(static, 0, 1)
	b.dynamicFriction = clamp(dynamic, 0, 1)
}

// Mass returns the clamped mass.
func (b RigidBody) Mass() float64 { return b.mass }

// InverseMass returns 1/mass, or 0 for static bodies.
func (b RigidBody) InverseMass() float64 { return b.inverseMass }

// Restitution returns the elasticity in [0, 1].
func (b RigidBody) Restitution() float64 { return b.restitution }

// StaticFriction returns the static friction coefficient in [0, 1].
func (b RigidBody) StaticFriction() float64 { return b.staticFriction }

// DynamicFriction returns the dynamic friction coefficient in [0, 1].
func (b RigidBody) DynamicFriction() float64 { return b.dynamicFriction }

// IsStatic reports whether the body is immovable.
func (b RigidBody) IsStatic() bool { return b.static }

// HasGravity reports whether the world's gravity applies.
func (b RigidBody) HasGravity() bool { return b.gravity }

// IsTrigger reports whether the body is only detected, never pushed.
func (b RigidBody) IsTrigger() bool { return b.trigger }
