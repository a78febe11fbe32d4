package notefall

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

var worldUp = mgl64.Vec3{0, 1, 0}

// flyAnim holds active fly-to tweens for the camera position.
type flyAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	tweenZ *gween.Tween
}

// Camera is a perspective camera used to turn pointer coordinates into world
// rays and world points back into screen coordinates.
type Camera struct {
	// Position is the camera's world-space position (the ray origin).
	Position mgl64.Vec3
	// Yaw rotates the view about the world Y axis; Pitch tilts it up (+) or
	// down (-). Both in radians. Yaw 0, Pitch 0 looks down -Z.
	Yaw, Pitch float64
	// FOV is the vertical field of view in radians.
	FOV float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	flyTween *flyAnim
}

// NewCamera creates a camera with default framing for the given viewport:
// pulled back and slightly above the origin, looking at it.
func NewCamera(viewport Rect) *Camera {
	c := &Camera{
		Position: mgl64.Vec3{0, 1.5, 6},
		FOV:      60 * math.Pi / 180,
		Viewport: viewport,
	}
	c.LookAt(mgl64.Vec3{0, 0, 0})
	return c
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{
		math.Sin(c.Yaw) * cp,
		math.Sin(c.Pitch),
		-math.Cos(c.Yaw) * cp,
	}
}

// basis returns the camera's right and up vectors. Degenerates gracefully
// when looking straight up or down.
func (c *Camera) basis() (right, up mgl64.Vec3) {
	f := c.Forward()
	right = f.Cross(worldUp)
	if right.Len() < 1e-9 {
		right = mgl64.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up = right.Cross(f)
	return right, up
}

// LookAt orients the camera toward a world-space target.
func (c *Camera) LookAt(target mgl64.Vec3) {
	dir := target.Sub(c.Position)
	if dir.Len() < 1e-9 {
		return
	}
	dir = dir.Normalize()
	c.Pitch = math.Asin(clamp(dir.Y(), -1, 1))
	c.Yaw = math.Atan2(dir.X(), -dir.Z())
}

// Orbit adjusts yaw and pitch by the given deltas, clamping pitch short of
// the poles so the basis never degenerates mid-gesture.
func (c *Camera) Orbit(deltaYaw, deltaPitch float64) {
	const maxPitch = math.Pi/2 - 0.01
	c.Yaw += deltaYaw
	c.Pitch = clamp(c.Pitch+deltaPitch, -maxPitch, maxPitch)
}

// NDCRay builds the world-space ray through a normalized device coordinate.
func (c *Camera) NDCRay(nx, ny float64) Ray {
	right, up := c.basis()
	halfH := math.Tan(c.FOV / 2)
	halfW := halfH * c.aspect()
	dir := c.Forward().
		Add(right.Mul(nx * halfW)).
		Add(up.Mul(ny * halfH)).
		Normalize()
	return Ray{Origin: c.Position, Dir: dir}
}

// ScreenRay builds the world-space ray through a screen-space pointer
// position, using the camera's viewport for normalization.
func (c *Camera) ScreenRay(sx, sy float64) Ray {
	nx, ny := NormalizePointer(sx, sy, c.Viewport)
	return c.NDCRay(nx, ny)
}

// WorldToScreen projects a world-space point into screen coordinates.
// ok is false when the point is behind (or on) the camera plane.
func (c *Camera) WorldToScreen(p mgl64.Vec3) (sx, sy float64, ok bool) {
	const near = 1e-3
	rel := p.Sub(c.Position)
	depth := rel.Dot(c.Forward())
	if depth < near {
		return 0, 0, false
	}
	right, up := c.basis()
	halfH := math.Tan(c.FOV / 2)
	halfW := halfH * c.aspect()
	nx := rel.Dot(right) / (depth * halfW)
	ny := rel.Dot(up) / (depth * halfH)
	sx = c.Viewport.X + (nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ny)/2*c.Viewport.Height
	return sx, sy, true
}

// FlyTo animates the camera to the given world position over duration
// seconds. Orientation is not animated; combine with LookAt per frame for a
// tracking shot.
func (c *Camera) FlyTo(target mgl64.Vec3, duration float32, easeFn ease.TweenFunc) {
	c.flyTween = &flyAnim{
		tweenX: gween.New(float32(c.Position.X()), float32(target.X()), duration, easeFn),
		tweenY: gween.New(float32(c.Position.Y()), float32(target.Y()), duration, easeFn),
		tweenZ: gween.New(float32(c.Position.Z()), float32(target.Z()), duration, easeFn),
	}
}

// Update advances any active fly-to animation by dt seconds.
func (c *Camera) Update(dt float32) {
	ft := c.flyTween
	if ft == nil {
		return
	}
	x, doneX := ft.tweenX.Update(dt)
	y, doneY := ft.tweenY.Update(dt)
	z, doneZ := ft.tweenZ.Update(dt)
	c.Position = mgl64.Vec3{float64(x), float64(y), float64(z)}
	if doneX && doneY && doneZ {
		c.flyTween = nil
	}
}

func (c *Camera) aspect() float64 {
	if c.Viewport.Height <= 0 {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
