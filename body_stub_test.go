package notefall

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// fakeBody is an obedient solver body for unit tests: setters take effect
// immediately, every call is counted, and it has no dynamics of its own.
type fakeBody struct {
	snap BodySnapshot
	mass float64

	// poisoned makes Snapshot return a NaN position until the next
	// SetPosition, mimicking a solver blow-up that a state write clears.
	poisoned bool

	reads     int
	posWrites int
	rotWrites int
	velWrites int
	impulses  int
	wakes     int
}

func newFakeBody(pos mgl64.Vec3) *fakeBody {
	return &fakeBody{snap: BodySnapshot{Position: pos}}
}

func (f *fakeBody) Snapshot() BodySnapshot {
	f.reads++
	if f.poisoned {
		s := f.snap
		s.Position = mgl64.Vec3{math.NaN(), s.Position.Y(), s.Position.Z()}
		return s
	}
	return f.snap
}

func (f *fakeBody) SetPosition(p mgl64.Vec3) {
	f.posWrites++
	f.snap.Position = p
	f.poisoned = false
}

func (f *fakeBody) SetRotation(r mgl64.Vec3) {
	f.rotWrites++
	f.snap.Rotation = r
}

func (f *fakeBody) SetVelocity(v mgl64.Vec3) {
	f.velWrites++
	f.snap.Velocity = v
}

func (f *fakeBody) SetAngularVelocity(w mgl64.Vec3) {
	f.snap.AngularVelocity = w
}

func (f *fakeBody) SetMass(m float64) { f.mass = m }

func (f *fakeBody) Mass() float64 { return f.mass }

func (f *fakeBody) ApplyImpulse(impulse, at mgl64.Vec3) {
	f.impulses++
	if f.mass > 0 {
		f.snap.Velocity = f.snap.Velocity.Add(impulse.Mul(1 / f.mass))
	}
}

func (f *fakeBody) Wake() { f.wakes++ }

// --- Shared test helpers ---

// testClock is a fixed simulation start so settlement timing and depth
// offsets are reproducible.
var testClock = time.Unix(1700000000, 0)

// newTestBoard builds a board over fake bodies with a camera above and in
// front of the origin, looking at it.
func newTestBoard() *Board {
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.Position = mgl64.Vec3{0, 3, 3}
	cam.LookAt(mgl64.Vec3{0, 0, 0})
	return NewBoard(BoardConfig{
		Camera: cam,
		NewBody: func(pos, half mgl64.Vec3) Body {
			return newFakeBody(pos)
		},
		FloorY: -2,
		Seed:   7,
		Now:    testClock,
	})
}

// screenOver projects a world point into screen coordinates, failing the
// test if the point is behind the camera.
func screenOver(t *testing.T, b *Board, p mgl64.Vec3) (float64, float64) {
	t.Helper()
	sx, sy, ok := b.Camera.WorldToScreen(p)
	if !ok {
		t.Fatalf("world point %v is behind the camera", p)
	}
	return sx, sy
}

// topCenter returns the center of a note's top face from its body snapshot.
func topCenter(n *Note) mgl64.Vec3 {
	p := n.Body().Snapshot().Position
	return mgl64.Vec3{p.X(), p.Y() + n.Thickness/2, p.Z()}
}

// vecNear reports whether two vectors agree within eps per component.
func vecNear(a, b mgl64.Vec3, eps float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
