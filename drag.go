package notefall

import "github.com/go-gl/mathgl/mgl64"

// DragSession is the per-gesture manipulation state for the one note being
// dragged. It exists only while that note is in StateDragging.
type DragSession struct {
	note *Note
	// plane is fixed at grab time for the whole gesture.
	plane Plane
	// offset is the world-space vector from the pointer's plane intersection
	// to the note's origin at grab time, preserving the click point under
	// the pointer as it moves.
	offset mgl64.Vec3
	// lastTarget is the last position written by the pointer follow.
	lastTarget mgl64.Vec3
}

// Note returns the dragged note.
func (s *DragSession) Note() *Note { return s.note }

// grab starts a drag session for n using the pointer ray r. It is rejected
// while another session is active (single-pointer manipulation) or when the
// note's transform cannot be read this tick. A grab on a mid-settlement note
// cancels the settlement instead of fighting it.
func (b *Board) grab(n *Note, r Ray) bool {
	if b.session != nil {
		return false
	}
	snap, ok := b.readBody(n)
	if !ok {
		return false
	}

	// Cancel any settlement in progress and stop the mass ramp; the grab
	// takes over the body outright.
	n.settledAt = zeroTime
	n.massRamp = nil

	// Kinematic while held: zero mass, dead velocities, canonical rotation.
	n.body.SetMass(0)
	n.body.SetVelocity(mgl64.Vec3{})
	n.body.SetAngularVelocity(mgl64.Vec3{})
	n.body.SetRotation(canonicalRotation)
	n.body.Wake()

	plane := DragPlane(b.Camera, snap.Position)
	// The grab offset preserves the click point. If the initial ray is
	// near-parallel to the plane the offset defaults to zero and the note's
	// origin snaps to the first valid intersection instead.
	var offset mgl64.Vec3
	if hit, ok := plane.Intersect(r); ok {
		offset = snap.Position.Sub(hit)
	}

	n.state = StateDragging
	b.session = &DragSession{
		note:       n,
		plane:      plane,
		offset:     offset,
		lastTarget: snap.Position,
	}
	b.mode = ModeDragging
	return true
}

// followPointer computes and writes the per-frame drag target: pointer ray
// intersected with the stored drag plane, plus the grab offset, with the
// vertical component clamped to the floor bound. A ray parallel to the plane
// skips the frame — no position write, not an error.
func (b *Board) followPointer(r Ray) {
	s := b.session
	if s == nil {
		return
	}
	hit, ok := s.plane.Intersect(r)
	if !ok {
		return
	}
	target := hit.Add(s.offset)
	if bound := b.floorBound(s.note); target.Y() < bound {
		target = mgl64.Vec3{target.X(), bound, target.Z()}
	}
	s.note.body.SetPosition(target)
	// Wake so neighboring bodies register collisions against the moving
	// kinematic note.
	s.note.body.Wake()
	s.lastTarget = target
}

// release ends the active drag session and re-arms physics: falling mass, a
// small randomized nudge so perfectly coincident drops still separate, and
// the Released state for the stabilizer to watch.
func (b *Board) release() {
	s := b.session
	if s == nil {
		return
	}
	n := s.note
	n.body.SetMass(massIdle)
	// The body's velocity is still zero from the grab, so the kick impulse
	// fully determines the initial fall velocity.
	kick := mgl64.Vec3{
		(b.rng.Float64() - 0.5) * releaseKick,
		-0.5 * releaseKick * b.rng.Float64(),
		(b.rng.Float64() - 0.5) * releaseKick,
	}
	n.body.ApplyImpulse(kick.Mul(massIdle), s.lastTarget)
	n.body.Wake()
	n.state = StateReleased
	b.session = nil
	b.mode = ModeIdle
}
