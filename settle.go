package notefall

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// stabilize is one enforcement tick over every note not under manual
// control. It runs at a fixed cadence from Board.Update, independent of the
// render and solver step rate.
//
// Per note, in order: validity guard, peak-height bookkeeping, floor
// penetration correction, rotation constraint, mass-ramp advance, settlement
// detection. A note settled for longer than the grace period is skipped
// outright, so the long-run cost of a large resting pile stays flat.
func (b *Board) stabilize(now time.Time) {
	for _, n := range b.notes {
		// The Dragging flag is the mutual exclusion between the motion
		// controller and the stabilizer: exactly one of them writes a given
		// body at any instant.
		if n.state == StateDragging {
			continue
		}
		if n.state == StateSettled && n.massRamp == nil &&
			now.Sub(n.settledAt) > time.Duration(settleGraceSeconds*float64(time.Second)) {
			continue
		}

		snap, ok := b.readBody(n)
		if !ok {
			continue
		}
		pos := snap.Position
		if y := pos.Y(); y > n.maxHeight {
			n.maxHeight = y
		}

		bound := b.floorBound(n)

		// Floor enforcement: solver sub-steps may overshoot between ticks;
		// correct within one tick.
		if pos.Y() < bound && n.state != StateSettled {
			b.diag.FloorCorrections++
			pos = mgl64.Vec3{pos.X(), bound, pos.Z()}
			n.body.SetPosition(pos)
			if snap.Velocity.Y() < 0 {
				n.body.SetVelocity(mgl64.Vec3{snap.Velocity.X(), 0, snap.Velocity.Z()})
			}
			n.body.Wake()
		}

		// Notes stay flat. Any tilt beyond tolerance is hard-reset rather
		// than letting the solver tumble them.
		if tilt(snap.Rotation) > tiltTolerance {
			n.body.SetRotation(canonicalRotation)
			n.body.SetAngularVelocity(mgl64.Vec3{})
		}

		if n.massRamp != nil {
			m, done := n.massRamp.Update(float32(stabilizerStep))
			n.body.SetMass(float64(m))
			if done {
				n.massRamp = nil
			}
		}

		if n.state != StateSettled && b.shouldSettle(n, snap, pos, bound) {
			b.settle(n, pos, bound, now)
		}
	}
}

// shouldSettle reports whether a note has come to rest near the floor after
// actually falling. The peak-height condition deliberately excludes notes
// that spawned already inside the floor band: they never fell, so they are
// left to the plain floor clamp. (Matches the original heuristic, quirks
// included.)
func (b *Board) shouldSettle(n *Note, snap BodySnapshot, pos mgl64.Vec3, bound float64) bool {
	v := snap.Velocity
	if math.Abs(v.X()) >= stillEpsilon ||
		math.Abs(v.Y()) >= stillEpsilon ||
		math.Abs(v.Z()) >= stillEpsilon {
		return false
	}
	if pos.Y()-bound >= stackDetectDistance {
		return false
	}
	return n.maxHeight-bound > stackDetectDistance
}

// settle freezes a note deterministically: position hard-set to the floor
// bound plus its stable depth offset, velocities zeroed, rotation snapped,
// and mass boosted then ramped back down over a short stabilization window.
func (b *Board) settle(n *Note, pos mgl64.Vec3, bound float64, now time.Time) {
	b.diag.Settles++
	n.body.SetPosition(mgl64.Vec3{pos.X(), bound + n.DepthOffset(), pos.Z()})
	n.body.SetVelocity(mgl64.Vec3{})
	n.body.SetAngularVelocity(mgl64.Vec3{})
	n.body.SetRotation(canonicalRotation)
	n.body.SetMass(massBoost)
	n.massRamp = gween.New(massBoost, massIdle, massRampDuration, ease.OutQuad)
	n.state = StateSettled
	n.settledAt = now
}
