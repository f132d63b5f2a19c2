package renderer

import (
	stdmath "math"

	"github.com/UnkushB/toy-obj-viewer/pkg/math"
)

// LightDirection returns the direction light travels from a sun at the
// given azimuth (degrees around +Y, 0 facing +Z) and elevation (degrees
// above the horizon).
func LightDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(azimuth) * stdmath.Pi / 180
	el := float64(elevation) * stdmath.Pi / 180

	toSun := math.Vec3{
		X: float32(stdmath.Cos(el) * stdmath.Sin(az)),
		Y: float32(stdmath.Sin(el)),
		Z: float32(stdmath.Cos(el) * stdmath.Cos(az)),
	}
	return toSun.Scale(-1).Normalize()
}
