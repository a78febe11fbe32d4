// Package rigid is a small 3D rigid-body world used by the notefall examples
// and integration tests: gravity, semi-implicit Euler integration, a floor
// plane, AABB overlap separation, and sleeping. It implements the
// notefall.Body contract; production hosts are expected to adapt a real
// physics engine instead.
package rigid

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/phanxgames/notefall"
)

// Body is one rigid body in a World. Create bodies with World.NewBody or
// World.NewStaticBody.
type Body struct {
	pos    mgl64.Vec3
	rot    mgl64.Vec3 // Euler XYZ, radians
	vel    mgl64.Vec3
	angVel mgl64.Vec3
	mass   float64
	half   mgl64.Vec3

	static   bool
	sleeping bool
	idleTime float64
}

// Snapshot returns a copy of the body's dynamic state.
func (b *Body) Snapshot() notefall.BodySnapshot {
	return notefall.BodySnapshot{
		Position:        b.pos,
		Rotation:        b.rot,
		Velocity:        b.vel,
		AngularVelocity: b.angVel,
	}
}

// SetPosition moves the body directly.
func (b *Body) SetPosition(p mgl64.Vec3) { b.pos = p }

// SetRotation sets the body's orientation directly.
func (b *Body) SetRotation(r mgl64.Vec3) { b.rot = r }

// SetVelocity sets the linear velocity.
func (b *Body) SetVelocity(v mgl64.Vec3) { b.vel = v }

// SetAngularVelocity sets the angular velocity.
func (b *Body) SetAngularVelocity(w mgl64.Vec3) { b.angVel = w }

// SetMass sets the body's mass. Zero makes the body kinematic: it ignores
// gravity and integration, moves only via SetPosition, and pushes other
// bodies as if it had infinite mass.
func (b *Body) SetMass(m float64) { b.mass = m }

// Mass returns the body's mass.
func (b *Body) Mass() float64 { return b.mass }

// ApplyImpulse applies an instantaneous impulse at a world-space point.
// The angular response uses a unit inertia tensor, which is plenty for flat
// notes that the manipulation layer keeps from tumbling anyway.
func (b *Body) ApplyImpulse(impulse, at mgl64.Vec3) {
	b.Wake()
	if b.static {
		return
	}
	if b.mass > 0 {
		b.vel = b.vel.Add(impulse.Mul(1 / b.mass))
	}
	r := at.Sub(b.pos)
	b.angVel = b.angVel.Add(r.Cross(impulse))
}

// Wake clears the sleeping state so the next Step integrates this body.
func (b *Body) Wake() {
	b.sleeping = false
	b.idleTime = 0
}

// Sleeping reports whether the body is currently asleep.
func (b *Body) Sleeping() bool { return b.sleeping }

func (b *Body) kinematic() bool { return b.mass == 0 && !b.static }
