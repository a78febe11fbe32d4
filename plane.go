package notefall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// planeParallelEps is the |normal . dir| threshold below which a ray counts
// as parallel to a plane.
const planeParallelEps = 1e-9

// Plane is an infinite plane defined by a unit normal and a point on it.
type Plane struct {
	Normal mgl64.Vec3
	Point  mgl64.Vec3
}

// Intersect returns the intersection of r with the plane. ok is false when
// the ray is (numerically) parallel to the plane or the intersection lies
// behind the ray origin. Callers treat a miss as "no update this tick", not
// as an error.
func (p Plane) Intersect(r Ray) (mgl64.Vec3, bool) {
	denom := p.Normal.Dot(r.Dir)
	if math.Abs(denom) < planeParallelEps {
		return mgl64.Vec3{}, false
	}
	t := p.Normal.Dot(p.Point.Sub(r.Origin)) / denom
	if t < 0 {
		return mgl64.Vec3{}, false
	}
	return r.At(t), true
}

// DragPlane builds the plane a grabbed note slides on for the duration of one
// drag gesture: the camera's facing normal at grab time, through the note's
// current position. The plane is computed once per gesture and never
// refreshed, even if the camera orbits mid-drag — recomputing it would
// re-anchor the grab offset and make the note swim under the pointer.
func DragPlane(cam *Camera, anchor mgl64.Vec3) Plane {
	return Plane{Normal: cam.Forward().Mul(-1), Point: anchor}
}

// HorizontalPlane returns the plane y = height with an upward normal.
// Pending-note creation always follows the pointer on a horizontal plane
// fixed at spawn height, regardless of camera orientation.
func HorizontalPlane(height float64) Plane {
	return Plane{Normal: mgl64.Vec3{0, 1, 0}, Point: mgl64.Vec3{0, height, 0}}
}
