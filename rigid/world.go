package rigid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	restitution = 0.25
	friction    = 0.9

	// contactSkin is the distance above the floor within which a descending
	// body counts as supported: gravity is withheld and its downward
	// velocity zeroed, like a persistent contact. This lets bodies rest
	// fractionally above the floor plane without drifting back down.
	contactSkin = 0.005

	// Speed below which a body accrues idle time, and how long it must stay
	// idle before it sleeps.
	sleepSpeed = 0.005
	sleepDelay = 0.5

	// wakePenetration is the overlap depth that wakes a sleeping body.
	wakePenetration = 0.002
)

// World holds a set of bodies and advances them with a fixed-step
// simulation: gravity, integration, floor contact, and pairwise AABB
// separation.
type World struct {
	Gravity mgl64.Vec3

	// FloorY is the floor plane height, active when HasFloor is set.
	FloorY   float64
	HasFloor bool

	bodies []*Body
}

// NewWorld returns a world with standard downward gravity and no floor.
func NewWorld() *World {
	return &World{Gravity: mgl64.Vec3{0, -9.8, 0}}
}

// SetFloor enables the floor plane at height y.
func (w *World) SetFloor(y float64) {
	w.FloorY = y
	w.HasFloor = true
}

// NewBody creates a dynamic body with the given center, AABB half extents,
// and mass, and adds it to the world.
func (w *World) NewBody(pos, half mgl64.Vec3, mass float64) *Body {
	if mass < 0 {
		mass = 1
	}
	b := &Body{pos: pos, half: half, mass: mass}
	w.bodies = append(w.bodies, b)
	return b
}

// NewStaticBody creates an immovable body, e.g. a shelf or wall.
func (w *World) NewStaticBody(pos, half mgl64.Vec3) *Body {
	b := &Body{pos: pos, half: half, static: true}
	w.bodies = append(w.bodies, b)
	return b
}

// Bodies returns the world's body list in creation order.
func (w *World) Bodies() []*Body { return w.bodies }

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	for _, b := range w.bodies {
		if b.static || b.sleeping || b.kinematic() {
			continue
		}

		supported := w.HasFloor &&
			b.pos.Y()-b.half.Y() <= w.FloorY+contactSkin &&
			b.vel.Y() <= 0

		if supported {
			// Persistent floor contact: no gravity pull, kill the descent,
			// and bleed off sliding.
			b.vel = mgl64.Vec3{b.vel.X() * friction, 0, b.vel.Z() * friction}
		} else {
			b.vel = b.vel.Add(w.Gravity.Mul(dt))
		}

		b.pos = b.pos.Add(b.vel.Mul(dt))
		b.rot = b.rot.Add(b.angVel.Mul(dt))

		// Floor penetration: clamp and bounce.
		if w.HasFloor && b.pos.Y()-b.half.Y() < w.FloorY {
			b.pos = mgl64.Vec3{b.pos.X(), w.FloorY + b.half.Y(), b.pos.Z()}
			vy := -b.vel.Y() * restitution
			if vy < sleepSpeed {
				vy = 0
			}
			b.vel = mgl64.Vec3{b.vel.X() * friction, vy, b.vel.Z() * friction}
		}

		// Sleep bookkeeping.
		if b.vel.Len() < sleepSpeed && b.angVel.Len() < sleepSpeed {
			b.idleTime += dt
			if b.idleTime > sleepDelay {
				b.sleeping = true
				b.vel = mgl64.Vec3{}
				b.angVel = mgl64.Vec3{}
			}
		} else {
			b.idleTime = 0
		}
	}

	w.separate()
}

// separate resolves overlapping AABB pairs by pushing bodies apart along the
// axis of minimum penetration, weighted by mass. Static and kinematic bodies
// do not move; sleeping bodies are woken when pushed hard enough.
func (w *World) separate() {
	for i := 0; i < len(w.bodies); i++ {
		bi := w.bodies[i]
		for j := i + 1; j < len(w.bodies); j++ {
			bj := w.bodies[j]
			if (bi.static || bi.sleeping || bi.kinematic()) &&
				(bj.static || bj.sleeping || bj.kinematic()) {
				continue
			}

			depth, axis := penetration(bi, bj)
			if axis < 0 {
				continue
			}
			if depth > wakePenetration {
				if bi.sleeping {
					bi.Wake()
				}
				if bj.sleeping {
					bj.Wake()
				}
			}

			fixedI := bi.static || bi.kinematic()
			fixedJ := bj.static || bj.kinematic()

			var moveI, moveJ float64
			switch {
			case fixedI && fixedJ:
				continue
			case fixedI:
				moveJ = depth
			case fixedJ:
				moveI = -depth
			default:
				total := bi.mass + bj.mass
				if total <= 0 {
					total = 1
				}
				moveI = -depth * (bj.mass / total)
				moveJ = depth * (bi.mass / total)
			}

			dir := separationAxis(bi, bj, axis)
			bi.pos = bi.pos.Add(dir.Mul(moveI))
			bj.pos = bj.pos.Add(dir.Mul(moveJ))
		}
	}
}

// penetration returns the minimum overlap depth between two AABBs and the
// axis index (0=X, 1=Y, 2=Z) it occurs on, or (0, -1) when disjoint.
func penetration(a, b *Body) (depth float64, axis int) {
	depth = math.MaxFloat64
	axis = -1
	for k := 0; k < 3; k++ {
		overlap := math.Min(a.pos[k]+a.half[k], b.pos[k]+b.half[k]) -
			math.Max(a.pos[k]-a.half[k], b.pos[k]-b.half[k])
		if overlap <= 0 {
			return 0, -1
		}
		if overlap < depth {
			depth = overlap
			axis = k
		}
	}
	return depth, axis
}

// separationAxis returns the unit push direction from a toward b on the
// given axis. Coincident centers default to pushing b upward so stacked
// spawns resolve vertically.
func separationAxis(a, b *Body, axis int) mgl64.Vec3 {
	var dir mgl64.Vec3
	d := b.pos[axis] - a.pos[axis]
	switch {
	case d > 0:
		dir[axis] = 1
	case d < 0:
		dir[axis] = -1
	default:
		dir = mgl64.Vec3{0, 1, 0}
	}
	return dir
}
