package notefall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BodySnapshot is a pull-based copy of a solver body's state, read once per
// tick. Reading a snapshot instead of subscribing to solver callbacks keeps
// the per-frame update order deterministic: snapshots reflect the previous
// solver step, and any pointer-follow write made afterwards overrides it.
type BodySnapshot struct {
	Position        mgl64.Vec3
	Rotation        mgl64.Vec3 // Euler XYZ, radians
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
}

// Finite reports whether every component of the snapshot is a finite number.
func (s BodySnapshot) Finite() bool {
	return finiteVec(s.Position) && finiteVec(s.Rotation) &&
		finiteVec(s.Velocity) && finiteVec(s.AngularVelocity)
}

func finiteVec(v mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}

// Body is the contract the manipulation layer needs from one rigid-body
// solver body. The layer never reads solver internals beyond Snapshot and
// never owns position or rotation directly: it reads via Snapshot and writes
// via the explicit setters.
//
// Setting mass to zero makes the body kinematic: moved only by SetPosition,
// immune to gravity and collision forces, but still present for collision
// response against other bodies.
type Body interface {
	Snapshot() BodySnapshot
	SetPosition(p mgl64.Vec3)
	SetRotation(r mgl64.Vec3)
	SetVelocity(v mgl64.Vec3)
	SetAngularVelocity(w mgl64.Vec3)
	SetMass(m float64)
	Mass() float64
	ApplyImpulse(impulse, at mgl64.Vec3)
	Wake()
}

// BodyFactory creates a solver body for a newly committed note. pos is the
// body's center and half the AABB extents are given by half.
type BodyFactory func(pos, half mgl64.Vec3) Body
