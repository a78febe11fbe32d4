package rigid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const dt = 1.0 / 60.0

var noteHalf = mgl64.Vec3{0.5, 0.01, 0.35}

func TestFallRestsOnFloor(t *testing.T) {
	w := NewWorld()
	w.SetFloor(0)
	b := w.NewBody(mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0.5, 0.5, 0.5}, 1)

	for i := 0; i < 180; i++ { // 3 simulated seconds
		w.Step(dt)
	}
	rest := w.FloorY + b.half.Y()
	if got := b.pos.Y(); math.Abs(got-rest) > 1e-9 {
		t.Errorf("rest height = %v, want %v", got, rest)
	}
	if b.vel.Y() != 0 {
		t.Errorf("vertical velocity at rest = %v, want 0", b.vel.Y())
	}
	if !b.Sleeping() {
		t.Error("body at rest for seconds should be asleep")
	}
}

func TestNoFloorFallsForever(t *testing.T) {
	w := NewWorld()
	b := w.NewBody(mgl64.Vec3{0, 0, 0}, noteHalf, 1)

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	if b.pos.Y() > -10 {
		t.Errorf("y = %v after 2s without a floor, want a long fall", b.pos.Y())
	}
}

func TestSupportedBodyHoldsHeight(t *testing.T) {
	w := NewWorld()
	w.SetFloor(0)
	// Resting fractionally above the floor, inside the contact skin. The
	// supported branch must hold it there instead of dragging it down.
	y := w.FloorY + noteHalf.Y() + contactSkin/2
	b := w.NewBody(mgl64.Vec3{0, y, 0}, noteHalf, 1)

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	if b.pos.Y() != y {
		t.Errorf("supported body drifted from %v to %v", y, b.pos.Y())
	}
}

func TestSupportedBodyBleedsSlide(t *testing.T) {
	w := NewWorld()
	w.SetFloor(0)
	b := w.NewBody(mgl64.Vec3{0, noteHalf.Y(), 0}, noteHalf, 1)
	b.vel = mgl64.Vec3{2, 0, 0}

	for i := 0; i < 120; i++ {
		w.Step(dt)
	}
	if got := b.vel.X(); got > 0.01 {
		t.Errorf("sliding velocity = %v after 2s of friction, want near 0", got)
	}
}

func TestSleepAndWake(t *testing.T) {
	w := NewWorld()
	w.SetFloor(0)
	b := w.NewBody(mgl64.Vec3{0, noteHalf.Y(), 0}, noteHalf, 1)

	for i := 0; i < 45; i++ { // 0.75s idle, past the sleep delay
		w.Step(dt)
	}
	if !b.Sleeping() {
		t.Fatal("idle body should sleep")
	}

	b.ApplyImpulse(mgl64.Vec3{0, 2, 0}, b.pos)
	if b.Sleeping() {
		t.Fatal("impulse should wake the body")
	}
	y0 := b.pos.Y()
	w.Step(dt)
	if b.pos.Y() <= y0 {
		t.Error("woken body with upward velocity should rise")
	}
}

func TestImpulseVelocityChange(t *testing.T) {
	w := NewWorld()
	b := w.NewBody(mgl64.Vec3{0, 0, 0}, noteHalf, 2)

	b.ApplyImpulse(mgl64.Vec3{4, 0, 0}, b.pos)
	if got := b.vel.X(); got != 2 {
		t.Errorf("velocity after impulse = %v, want impulse/mass = 2", got)
	}
	// Off-center application adds spin.
	b.ApplyImpulse(mgl64.Vec3{0, 1, 0}, b.pos.Add(mgl64.Vec3{0.5, 0, 0}))
	if b.angVel == (mgl64.Vec3{}) {
		t.Error("off-center impulse should add angular velocity")
	}
}

func TestSeparationSymmetric(t *testing.T) {
	w := NewWorld()
	w.Gravity = mgl64.Vec3{}
	half := mgl64.Vec3{0.5, 0.5, 0.5}
	a := w.NewBody(mgl64.Vec3{0, 0, 0}, half, 1)
	b := w.NewBody(mgl64.Vec3{0.8, 0.1, 0.1}, half, 1)

	w.Step(dt)

	// Minimum overlap is on X; equal masses split the push evenly.
	if a.pos.X() >= 0 || b.pos.X() <= 0.8 {
		t.Errorf("overlap not resolved: a.x = %v, b.x = %v", a.pos.X(), b.pos.X())
	}
	if depth, _ := penetration(a, b); depth > 1e-9 {
		t.Errorf("residual penetration %v after separation", depth)
	}
	if math.Abs(math.Abs(a.pos.X())-math.Abs(b.pos.X()-0.8)) > 1e-9 {
		t.Error("equal masses should be pushed symmetrically")
	}
}

func TestSeparationMassWeighted(t *testing.T) {
	w := NewWorld()
	w.Gravity = mgl64.Vec3{}
	half := mgl64.Vec3{0.5, 0.5, 0.5}
	heavy := w.NewBody(mgl64.Vec3{0, 0, 0}, half, 9)
	light := w.NewBody(mgl64.Vec3{0.8, 0, 0}, half, 1)

	w.Step(dt)

	if math.Abs(heavy.pos.X()) >= math.Abs(light.pos.X()-0.8) {
		t.Errorf("heavy moved %v, light moved %v; want the light body to move more",
			math.Abs(heavy.pos.X()), math.Abs(light.pos.X()-0.8))
	}
}

func TestStaticBodyImmovable(t *testing.T) {
	w := NewWorld()
	w.Gravity = mgl64.Vec3{}
	half := mgl64.Vec3{0.5, 0.5, 0.5}
	wall := w.NewStaticBody(mgl64.Vec3{0, 0, 0}, half)
	mover := w.NewBody(mgl64.Vec3{0.8, 0, 0}, half, 1)

	w.Step(dt)

	if wall.pos != (mgl64.Vec3{}) {
		t.Errorf("static body moved to %v", wall.pos)
	}
	if mover.pos.X() < 1.0-1e-9 {
		t.Errorf("dynamic body pushed to %v, want the full depth out to 1.0", mover.pos.X())
	}
}

func TestKinematicBody(t *testing.T) {
	w := NewWorld()
	w.SetFloor(0)
	k := w.NewBody(mgl64.Vec3{0, 5, 0}, noteHalf, 1)
	k.SetMass(0)

	for i := 0; i < 60; i++ {
		w.Step(dt)
	}
	if k.pos.Y() != 5 {
		t.Errorf("kinematic body fell to %v, want to stay at 5", k.pos.Y())
	}

	// It still pushes dynamic bodies like an infinite mass.
	w.Gravity = mgl64.Vec3{}
	half := mgl64.Vec3{0.5, 0.5, 0.5}
	k2 := w.NewBody(mgl64.Vec3{0, 0, 0}, half, 1)
	k2.SetMass(0)
	d := w.NewBody(mgl64.Vec3{0.8, 0, 0}, half, 1)
	w.Step(dt)
	if k2.pos != (mgl64.Vec3{}) {
		t.Errorf("kinematic body displaced to %v by separation", k2.pos)
	}
	if d.pos.X() < 1.0-1e-9 {
		t.Errorf("dynamic body pushed to %v, want 1.0", d.pos.X())
	}
}

func TestSeparationWakesSleeper(t *testing.T) {
	w := NewWorld()
	w.SetFloor(0)
	sleeper := w.NewBody(mgl64.Vec3{0, noteHalf.Y(), 0}, noteHalf, 1)
	for i := 0; i < 45; i++ {
		w.Step(dt)
	}
	if !sleeper.Sleeping() {
		t.Fatal("setup: body did not sleep")
	}

	// Drop an overlapping intruder straight onto it.
	intruder := w.NewBody(sleeper.pos.Add(mgl64.Vec3{0.05, 0.01, 0}), noteHalf, 1)
	w.Step(dt)
	if sleeper.Sleeping() {
		t.Error("deep overlap should wake the sleeping body")
	}
	_ = intruder
}
