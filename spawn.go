package notefall

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PendingNote is the transient object that tracks the pointer after a spawn
// gesture. It has no solver body and no physics: its position is written
// directly from pointer projection until it is committed into the world or
// discarded.
type PendingNote struct {
	// Position is the current tracked position.
	Position mgl64.Vec3
	// Color is copied from the source note.
	Color Color
	// Source is the world position it detached from.
	Source mgl64.Vec3

	// planeY is the fixed height of the horizontal follow plane.
	planeY float64
	// lift eases the vertical detach from Source up to planeY. Nil once done.
	lift *gween.Tween
}

// spawnPending creates the pending note from a source note's corner
// affordance: same color, elevated follow plane so it visually detaches.
// Only one pending note may exist; a second spawn gesture is ignored.
func (b *Board) spawnPending(src *Note) bool {
	if b.pending != nil {
		return false
	}
	snap, ok := b.readBody(src)
	if !ok {
		return false
	}
	pos := snap.Position
	p := &PendingNote{
		Position: pos,
		Color:    src.Color,
		Source:   pos,
		planeY:   pos.Y() + spawnLift,
		lift:     gween.New(float32(pos.Y()), float32(pos.Y()+spawnLift), spawnLiftDuration, ease.OutCubic),
	}
	b.pending = p
	b.mode = ModePendingCreate
	return true
}

// followPending re-projects the pointer ray onto the pending note's
// horizontal plane and writes the position directly. Unlike a drag, the
// follow plane is always horizontal, never camera-facing. A parallel ray
// skips the update.
func (b *Board) followPending(r Ray) {
	p := b.pending
	if p == nil {
		return
	}
	hit, ok := HorizontalPlane(p.planeY).Intersect(r)
	if !ok {
		return
	}
	// The lift tween owns Y until it finishes.
	p.Position = mgl64.Vec3{hit.X(), p.Position.Y(), hit.Z()}
}

// updatePending advances the lift-off ease.
func (b *Board) updatePending(dt float64) {
	p := b.pending
	if p == nil || p.lift == nil {
		return
	}
	y, done := p.lift.Update(float32(dt))
	p.Position = mgl64.Vec3{p.Position.X(), float64(y), p.Position.Z()}
	if done {
		p.lift = nil
	}
}

// commitPending converts the pending note into a real note at its last
// tracked position and hands it to the motion controller and stabilizer as a
// freshly Released object with a small randomized fall velocity. Calling it
// with no pending note is a no-op and returns nil.
func (b *Board) commitPending() *Note {
	p := b.pending
	if p == nil {
		return nil
	}
	b.pending = nil

	n := b.AddNote(p.Position, p.Color)
	n.state = StateReleased
	n.body.SetMass(massIdle)
	n.body.SetVelocity(mgl64.Vec3{
		(b.rng.Float64() - 0.5) * releaseKick,
		-0.5 * releaseKick * b.rng.Float64(),
		(b.rng.Float64() - 0.5) * releaseKick,
	})
	n.body.Wake()
	b.mode = ModeIdle
	return n
}
