package thicket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRigidBodyDefaults(t *testing.T) {
	b := NewRigidBody(DefaultBodyOptions())
	assert.Equal(t, 1.0, b.Mass())
	assert.Equal(t, 1.0, b.InverseMass())
	assert.Equal(t, 0.5, b.Restitution())
	assert.Equal(t, 0.5, b.StaticFriction())
	assert.Equal(t, 0.3, b.DynamicFriction())
	assert.False(t, b.IsStatic())
	assert.False(t, b.HasGravity())
	assert.False(t, b.IsTrigger())
}

func TestNewRigidBodyClampsOutOfRange(t *testing.T) {
	b := NewRigidBody(BodyOptions{
		Mass:            50,
		Restitution:     1.5,
		StaticFriction:  -1,
		DynamicFriction: 2,
	})
	assert.Equal(t, MaxMass, b.Mass())
	assert.InDelta(t, 0.1, b.InverseMass(), epsilon)
	assert.Equal(t, 1.0, b.Restitution())
	assert.Equal(t, 0.0, b.StaticFriction())
	assert.Equal(t, 1.0, b.DynamicFriction())

	light := NewRigidBody(BodyOptions{Mass: 0})
	assert.Equal(t, MinMass, light.Mass())
	assert.InDelta(t, 10, light.InverseMass(), epsilon)
}

func TestStaticBodyHasZeroInverseMass(t *testing.T) {
	b := NewRigidBody(BodyOptions{Mass: 5, Static: true})
	assert.Equal(t, 0.0, b.InverseMass())
	assert.Equal(t, 5.0, b.Mass())

	b.SetStatic(false)
	assert.InDelta(t, 0.2, b.InverseMass(), epsilon)
	b.SetStatic(true)
	assert.Equal(t, 0.0, b.InverseMass())

	b.SetMass(2)
	assert.Equal(t, 0.0, b.InverseMass(), "static stays immovable after SetMass")
}

func TestRigidBodySettersClamp(t *testing.T) {
	b := NewRigidBody(DefaultBodyOptions())
	b.SetRestitution(-3)
	assert.Equal(t, 0.0, b.Restitution())
	b.SetFriction(0.7, 9)
	assert.Equal(t, 0.7, b.StaticFriction())
	assert.Equal(t, 1.0, b.DynamicFriction())
	b.SetGravity(true)
	b.SetTrigger(true)
	assert.True(t, b.HasGravity())
	assert.True(t, b.IsTrigger())
}

func TestRigidBodyOptionsRoundTrip(t *testing.T) {
	opts := BodyOptions{Mass: 3, Restitution: 0.2, StaticFriction: 0.4, DynamicFriction: 0.1, Gravity: true}
	assert.Equal(t, opts, NewRigidBody(opts).Options())
}

func TestRigidBodyAccessorsOnValue(t *testing.T) {
	opts := BodyOptions{Mass: 4, Restitution: 0.7, StaticFriction: 0.6, DynamicFriction: 0.2, Static: true}
	assert.Equal(t, 4.0, NewRigidBody(opts).Mass())
	assert.Zero(t, NewRigidBody(opts).InverseMass())
	assert.Equal(t, 0.7, NewRigidBody(opts).Restitution())
	assert.True(t, NewRigidBody(opts).IsStatic())
}

func TestRigidBodyMassFloorIsInclusive(t *testing.T) {
	b := NewRigidBody(BodyOptions{Mass: MinMass})
	assert.Equal(t, MinMass, b.Mass())
	assert.Equal(t, 10.0, b.InverseMass())
}
