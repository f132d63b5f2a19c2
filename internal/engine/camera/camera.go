// Package camera provides the orbit camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

// OrbitCamera orbits the origin, where the normalized model sits inside the
// unit sphere.
type OrbitCamera struct {
	Target math.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // radians, positive looks down
	Yaw      float32 // radians

	// FieldOfView is the vertical angle in degrees.
	FieldOfView float32

	// Constraints
	MinDistance float32
	MaxDistance float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera returns a camera framing the unit sphere.
func NewOrbitCamera(fovDegrees float32) *OrbitCamera {
	c := &OrbitCamera{
		FieldOfView:     fovDegrees,
		MinDistance:     1.1,
		MaxDistance:     20,
		MaxPitch:        1.5,
		DragSensitivity: 0.008,
		ZoomSensitivity: 0.1,
	}
	c.Reset()
	return c
}

// Reset restores the initial view: slightly above, at a distance where the
// unit sphere fills the vertical field of view.
func (c *OrbitCamera) Reset() {
	c.Target = math.Vec3{}
	c.Pitch = 0.3
	c.Yaw = 0
	c.Distance = c.FitDistance()
}

// FitDistance returns the distance at which the unit sphere exactly fits
// the vertical field of view, with a small margin.
func (c *OrbitCamera) FitDistance() float32 {
	half := float64(c.FieldOfView) * gomath.Pi / 360
	d := float32(1.1 / gomath.Sin(half))
	return clamp(d, c.MinDistance, c.MaxDistance)
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	cp := gomath.Cos(float64(c.Pitch))
	offset := math.Vec3{
		X: c.Distance * float32(cp*gomath.Sin(float64(c.Yaw))),
		Y: c.Distance * float32(gomath.Sin(float64(c.Pitch))),
		Z: c.Distance * float32(cp*gomath.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Target, math.Vec3{Y: 1})
}

// ProjectionMatrix returns a perspective projection for the given aspect
// ratio. Near and far planes bracket the unit sphere at any allowed
// distance.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	fov := c.FieldOfView * gomath.Pi / 180
	return math.Perspective(fov, aspect, 0.01, c.MaxDistance+2)
}

// HandleDrag rotates by a mouse drag in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = clamp(c.Pitch+deltaY*c.DragSensitivity, -c.MaxPitch, c.MaxPitch)
}

// HandleZoom moves closer for positive wheel steps.
func (c *OrbitCamera) HandleZoom(steps float32) {
	c.Distance = clamp(c.Distance-steps*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// Spin advances the yaw, used for idle auto-rotation.
func (c *OrbitCamera) Spin(radians float32) {
	c.Yaw = float32(gomath.Mod(float64(c.Yaw+radians), 2*gomath.Pi))
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(hi, v))
}
