// Package camera provides the preview orbit camera.
package camera

import (
	gomath "math"

	"github.com/Faultbox/lipsync-avatar/pkg/math"
)

// Preview defaults: the camera starts at (0, 1, 5) looking at the origin.
const (
	DefaultFOV      = 50 // degrees
	DefaultDistance = 5.0990195
	DefaultPitch    = 0.19739556 // asin(1/DefaultDistance)
	MinDistance     = 3
	MaxDistance     = 8
	Near            = 0.1
	Far             = 100
)

// OrbitCamera orbits around a center point. Pan is not supported.
type OrbitCamera struct {
	CenterX, CenterY, CenterZ float32

	Distance  float32
	RotationX float32 // pitch above the horizon, radians
	RotationY float32 // yaw, radians

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	FOV float32 // vertical, degrees

	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates the preview camera. Pitch never goes below the
// horizon and stops just short of straight down.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        DefaultDistance,
		RotationX:       DefaultPitch,
		MinDistance:     MinDistance,
		MaxDistance:     MaxDistance,
		MinPitch:        0,
		MaxPitch:        gomath.Pi/2 - 0.01,
		FOV:             DefaultFOV,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.CenterX + x,
		Y: c.CenterY + y,
		Z: c.CenterZ + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	center := math.Vec3{X: c.CenterX, Y: c.CenterY, Z: c.CenterZ}
	return math.LookAt(c.Position(), center, math.Vec3{Y: 1})
}

// ProjectionMatrix returns the perspective projection for the aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math.Perspective(math.Radians(c.FOV), aspect, Near, Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity
	c.RotationX = clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// Reset returns to the starting view.
func (c *OrbitCamera) Reset() {
	c.Distance = DefaultDistance
	c.RotationX = DefaultPitch
	c.RotationY = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
