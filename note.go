package notefall

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
)

// Note is one rigid planar object under the manipulation layer's control.
//
// A note never owns its position or rotation: those live in exactly one
// solver body, read back through snapshots and written through the body's
// setters. The note itself carries identity, geometry, manipulation state,
// and the settlement bookkeeping the stabilizer needs.
type Note struct {
	// ID is derived from creation order. It is the equality key and the
	// tie-break for stacking.
	ID uint64

	// Geometry. Width spans local X, Depth local Z, Thickness local Y.
	Width, Depth, Thickness float64

	// Color is opaque to the manipulation layer.
	Color Color

	// SpawnZone is the local UV rectangle on the note's top face that
	// triggers a spawn gesture instead of a grab.
	SpawnZone Rect

	body  Body
	state NoteState

	createdAt time.Time
	// maxHeight is the highest center Y observed since creation. Settlement
	// requires having risen above the floor band at least once.
	maxHeight float64
	// settledAt is when settlement began; zero while unsettled.
	settledAt time.Time
	// massRamp eases the post-settlement mass boost back down. Nil when idle.
	massRamp *gween.Tween

	// lastValid is the recovery snapshot, overwritten only when the live
	// values are finite and above the floor bound.
	lastValid BodySnapshot
	hasValid  bool
}

// Body returns the solver body that owns this note's dynamic state.
func (n *Note) Body() Body { return n.body }

// State returns the note's current manipulation state.
func (n *Note) State() NoteState { return n.state }

// Settled reports whether the note is currently frozen at the floor.
func (n *Note) Settled() bool { return n.state == StateSettled }

// CreatedAt returns the note's creation timestamp on the board clock.
func (n *Note) CreatedAt() time.Time { return n.createdAt }

// half returns the note's AABB half extents.
func (n *Note) half() mgl64.Vec3 {
	return mgl64.Vec3{n.Width / 2, n.Thickness / 2, n.Depth / 2}
}

// DepthOffset is the note's stable depth-disambiguation offset: a
// sub-millimeter Y bias derived once from the creation timestamp (with the
// creation-order ID breaking ties for notes created on the same tick).
// Settled notes resting at visually the same spot therefore get distinct
// depths, and the value never changes over the note's lifetime, so render
// ordering between settled notes cannot flicker.
func (n *Note) DepthOffset() float64 {
	slot := (uint64(n.createdAt.UnixNano())%depthSlots + n.ID) % depthSlots
	return float64(slot) / depthSlots * depthRange
}

// inSpawnZone reports whether local UV coordinates fall in the spawn
// hot-zone.
func (n *Note) inSpawnZone(u, v float64) bool {
	return n.SpawnZone.Contains(u, v)
}

// hitTest intersects a ray with the note's top face, treated as a flat
// horizontal rectangle. The stabilizer keeps free notes near the canonical
// flat orientation and dragging snaps rotation outright, so the flat
// approximation holds everywhere the pointer can reach.
//
// Returns the ray parameter t and the local UV coordinates of the hit, with
// (0, 0) at the -X/-Z corner.
func (n *Note) hitTest(r Ray, pos mgl64.Vec3) (t, u, v float64, ok bool) {
	top := pos.Y() + n.Thickness/2
	hit, ok := HorizontalPlane(top).Intersect(r)
	if !ok {
		return 0, 0, 0, false
	}
	dx := hit.X() - pos.X()
	dz := hit.Z() - pos.Z()
	if math.Abs(dx) > n.Width/2 || math.Abs(dz) > n.Depth/2 {
		return 0, 0, 0, false
	}
	t = hit.Sub(r.Origin).Len()
	u = dx/n.Width + 0.5
	v = dz/n.Depth + 0.5
	return t, u, v, true
}

// tilt returns the note's deviation from the canonical flat orientation.
// Spin about Y does not count as tilt.
func tilt(rotation mgl64.Vec3) float64 {
	return math.Hypot(rotation.X(), rotation.Z())
}

// canonicalRotation is the resting orientation all notes are held to.
var canonicalRotation = mgl64.Vec3{0, 0, 0}

var zeroTime time.Time
