package notefall

import "github.com/go-gl/mathgl/mgl64"

// NormalizePointer converts screen-space pointer coordinates into normalized
// device coordinates in [-1, 1] x [-1, 1]. Screen space has its origin at the
// top-left with Y down; the result is y-flipped to match the right-handed,
// y-up world convention, so the top of the viewport maps to +1.
//
// A zero-area viewport (hidden or degenerate canvas) maps everything to the
// center, (0, 0).
func NormalizePointer(sx, sy float64, viewport Rect) (nx, ny float64) {
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return 0, 0
	}
	nx = (sx-viewport.X)/viewport.Width*2 - 1
	ny = 1 - (sy-viewport.Y)/viewport.Height*2
	return nx, ny
}

// Ray is a world-space ray. Dir is normalized.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
