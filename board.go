package notefall

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// BoardConfig configures a new Board. Zero-value fields fall back to
// defaults.
type BoardConfig struct {
	// Camera used for pointer rays. Required.
	Camera *Camera
	// NewBody creates a solver body for each committed note. Required.
	NewBody BodyFactory
	// FloorY is the world-space floor height. The zero value selects
	// DefaultFloorY.
	FloorY float64
	// Seed seeds the release-nudge randomness. Zero seeds from the clock.
	Seed uint64
	// Now sets the simulation clock start. Zero uses time.Now(). Tests pass
	// a fixed time so settlement timing is deterministic.
	Now time.Time
	// Debug enables stderr diagnostics for validity-guard recoveries.
	Debug bool
}

// Board owns the interactive manipulation layer for one scene: the note
// registry, the single drag session, the single pending note, and the
// board-wide interaction mode.
//
// Update ordering within a frame is the caller's contract: step the solver
// first, then call Update, then deliver pointer events. Body snapshots are
// pulled, never pushed, so a drag write always lands after — and overrides —
// the solver's last proposal for that note.
//
// Board is single-threaded by design; all methods must be called from the
// same goroutine that steps the solver.
type Board struct {
	// Camera is the camera pointer rays are cast from.
	Camera *Camera
	// FloorY is the world-space floor height.
	FloorY float64

	newBody BodyFactory
	notes   []*Note
	nextID  uint64

	session *DragSession
	pending *PendingNote
	mode    InteractionMode

	stabAcc float64
	now     time.Time
	rng     *rand.Rand
	diag    Diagnostics
	debug   bool

	input inputState
}

// NewBoard creates a board from the given config.
func NewBoard(cfg BoardConfig) *Board {
	floorY := cfg.FloorY
	if floorY == 0 {
		floorY = DefaultFloorY
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(now.UnixNano())
	}
	return &Board{
		Camera:  cfg.Camera,
		FloorY:  floorY,
		newBody: cfg.NewBody,
		now:     now,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		debug:   cfg.Debug,
	}
}

// Mode returns the current board-wide interaction mode.
func (b *Board) Mode() InteractionMode { return b.mode }

// Notes returns the live note list in creation order. Callers must treat it
// as read-only.
func (b *Board) Notes() []*Note { return b.notes }

// Pending returns the current pending note, or nil.
func (b *Board) Pending() *PendingNote { return b.pending }

// Dragging returns the note currently being dragged, or nil.
func (b *Board) Dragging() *Note {
	if b.session == nil {
		return nil
	}
	return b.session.note
}

// Now returns the board's simulation clock.
func (b *Board) Now() time.Time { return b.now }

// AddNote creates a note with a fresh solver body at pos and registers it as
// Free. The ID is assigned from creation order.
func (b *Board) AddNote(pos mgl64.Vec3, col Color) *Note {
	b.nextID++
	n := &Note{
		ID:        b.nextID,
		Width:     defaultNoteWidth,
		Depth:     defaultNoteDepth,
		Thickness: defaultNoteThickness,
		Color:     col,
		SpawnZone: defaultSpawnZone,
		createdAt: b.now,
		state:     StateFree,
		maxHeight: pos.Y(),
	}
	n.body = b.newBody(pos, n.half())
	n.body.SetMass(massIdle)
	b.notes = append(b.notes, n)
	return n
}

// Update advances the simulation clock, the pending-note lift, the camera
// animation, and runs the stabilizer on its fixed cadence. dt is in seconds.
func (b *Board) Update(dt float64) {
	if dt <= 0 {
		return
	}
	b.now = b.now.Add(time.Duration(dt * float64(time.Second)))
	if b.Camera != nil {
		b.Camera.Update(float32(dt))
	}
	b.updatePending(dt)

	b.stabAcc += dt
	for b.stabAcc >= stabilizerStep {
		b.stabAcc -= stabilizerStep
		b.stabilize(b.now)
	}
}

// --- Pointer routing ---

// PointerDown handles a press at screen coordinates. A press commits a
// pending note if one exists (the commit gesture is by definition a later
// gesture than the spawn, which is also press-triggered and consumed the
// press that created it). Otherwise it either spawns from a note's hot-zone
// or grabs the note.
func (b *Board) PointerDown(sx, sy float64) {
	if b.Camera == nil {
		return
	}
	if b.pending != nil {
		b.commitPending()
		return
	}
	r := b.Camera.ScreenRay(sx, sy)
	n, u, v, ok := b.pick(r)
	if !ok {
		return
	}
	if n.inSpawnZone(u, v) && n.state != StateDragging {
		// The corner affordance spawns; it never starts a drag.
		b.spawnPending(n)
		return
	}
	b.grab(n, r)
}

// PointerMove handles pointer motion. Drag and pending-create follow take
// priority; otherwise the hover mode is refreshed. Events are expected even
// when the pointer has left the grabbed note's bounds (global capture).
func (b *Board) PointerMove(sx, sy float64) {
	if b.Camera == nil {
		return
	}
	r := b.Camera.ScreenRay(sx, sy)
	if b.session != nil {
		b.followPointer(r)
		return
	}
	if b.pending != nil {
		b.followPending(r)
		return
	}
	if _, _, _, ok := b.pick(r); ok {
		b.mode = ModeHovering
	} else {
		b.mode = ModeIdle
	}
}

// PointerUp handles a release. Releasing mid-drag is the only cancellation
// signal; it is synchronous and always leaves the note Released. A release
// with no active drag is a no-op.
func (b *Board) PointerUp(sx, sy float64) {
	if b.session != nil {
		b.release()
	}
}

// pick returns the nearest note hit by the ray, with the local UV of the hit
// point on its top face.
func (b *Board) pick(r Ray) (best *Note, u, v float64, ok bool) {
	bestT := math.MaxFloat64
	for _, n := range b.notes {
		snap, valid := b.readBody(n)
		if !valid {
			continue
		}
		t, hu, hv, hit := n.hitTest(r, snap.Position)
		if hit && t < bestT {
			bestT, best, u, v, ok = t, n, hu, hv, true
		}
	}
	return best, u, v, ok
}

// --- Validity guard ---

// readBody pulls a snapshot through the validity guard. On a non-finite
// transform the last known-good snapshot is written back through the body's
// setters, velocities are zeroed, and the caller skips the note for this
// tick. This is the only recovery path for solver blow-ups; it is never
// surfaced beyond a diagnostic.
func (b *Board) readBody(n *Note) (BodySnapshot, bool) {
	snap := n.body.Snapshot()
	if !snap.Finite() {
		b.diag.Recoveries++
		b.debugRecovery(n)
		if n.hasValid {
			n.body.SetPosition(n.lastValid.Position)
			n.body.SetRotation(n.lastValid.Rotation)
			n.body.SetVelocity(mgl64.Vec3{})
			n.body.SetAngularVelocity(mgl64.Vec3{})
		}
		return snap, false
	}
	// Record recovery state only when finite and above the floor bound.
	if snap.Position.Y() >= b.floorBound(n) {
		n.lastValid = snap
		n.hasValid = true
	}
	return snap, true
}

// floorBound is the minimum allowed center Y for a note: floor surface plus
// half thickness plus the anti-z-fight margin.
func (b *Board) floorBound(n *Note) float64 {
	return b.FloorY + n.Thickness/2 + floorMargin
}
