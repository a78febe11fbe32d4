package notefall

// Color represents an RGBA color with components in [0, 1]. The manipulation
// layer treats it as an opaque tag: it is copied from a source note to a
// pending note and otherwise only handed back to the renderer.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default note color.
var ColorWhite = Color{1, 1, 1, 1}

// Rect is an axis-aligned rectangle. Used both for screen-space viewports
// (origin top-left, Y down) and for local UV hot-zones on a note's surface.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NoteState is the manipulation state of a single note.
type NoteState uint8

const (
	// StateFree: solver-driven, mass > 0, not recently dropped.
	StateFree NoteState = iota
	// StateDragging: kinematic (mass 0), position written every frame from
	// the pointer. At most one note is in this state at any time.
	StateDragging
	// StateReleased: solver-driven immediately after a drop; the stabilizer
	// watches it for settlement.
	StateReleased
	// StateSettled: frozen at the floor with a stable depth offset. After the
	// grace period the stabilizer stops touching it until it is re-grabbed.
	StateSettled
)

// String returns the state name for diagnostics.
func (s NoteState) String() string {
	switch s {
	case StateFree:
		return "free"
	case StateDragging:
		return "dragging"
	case StateReleased:
		return "released"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// InteractionMode is the board-wide gesture mode. Exactly one mode is active;
// components read it instead of mutating shared cursor/UI globals.
type InteractionMode uint8

const (
	ModeIdle          InteractionMode = iota // no gesture, pointer over empty space
	ModeHovering                             // pointer over a note, no button down
	ModeDragging                             // a drag session is active
	ModePendingCreate                        // a pending note is tracking the pointer
)

// String returns the mode name for diagnostics.
func (m InteractionMode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeHovering:
		return "hovering"
	case ModeDragging:
		return "dragging"
	case ModePendingCreate:
		return "pending-create"
	default:
		return "unknown"
	}
}

// --- Tunables ---

const (
	// DefaultFloorY is the world-space Y of the floor surface.
	DefaultFloorY = -2.0

	// floorMargin keeps resting notes strictly above the floor so the floor
	// plane itself never z-fights a note face.
	floorMargin = 0.001

	// stackDetectDistance is the height band above the floor bound inside
	// which a slow note counts as resting. A note must also have risen more
	// than this distance above the bound at some point, otherwise it never
	// fell and is left alone.
	stackDetectDistance = 0.15

	// stillEpsilon is the per-axis speed below which a note counts as still.
	stillEpsilon = 0.01

	// tiltTolerance is the maximum tilt (radians) from the flat resting
	// orientation before the rotation is hard-reset.
	tiltTolerance = 0.05

	// settleGraceSeconds is how long a settled note keeps being enforced
	// before the stabilizer stops touching it entirely.
	settleGraceSeconds = 1.0

	// Masses. Zero while dragging (kinematic), massIdle while free or
	// falling, briefly boosted right after settlement for contact stability.
	// Release restores massIdle, so a grab/release round trip leaves the
	// mass exactly where it started.
	massIdle  = 1.0
	massBoost = 5.0

	// massRampDuration is the settle-time mass boost ramp, in seconds.
	massRampDuration = 0.35

	// stabilizerStep is the fixed stabilizer tick interval in seconds.
	stabilizerStep = 1.0 / 60.0

	// spawnLift is how far above its source a pending note detaches, and
	// spawnLiftDuration how long the eased lift takes.
	spawnLift         = 0.35
	spawnLiftDuration = 0.25

	// releaseKick scales the randomized velocity nudge applied on release and
	// commit so perfectly coincident drops still separate.
	releaseKick = 0.4

	// Depth disambiguation: settled notes get a stable sub-millimeter Y
	// offset derived from their creation time, spread over depthSlots
	// distinct values inside depthRange world units.
	depthSlots = 997
	depthRange = 0.0005

	// Default note dimensions (world units).
	defaultNoteWidth     = 1.0
	defaultNoteDepth     = 0.7
	defaultNoteThickness = 0.02
)

// defaultSpawnZone is the corner hot-zone, in the note's local UV space, that
// triggers a spawn gesture instead of a grab.
var defaultSpawnZone = Rect{X: 0.8, Y: 0.0, Width: 0.2, Height: 0.2}
