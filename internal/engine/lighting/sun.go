package lighting

import "math"

// SunDirection converts azimuth/elevation angles in degrees to a light direction vector.
// Azimuth is rotation around the Y axis (0-360), elevation is height above the horizon (0-90).
// Returns a normalized direction vector pointing towards the light.
func SunDirection(azimuth, elevation float32) [3]float32 {
	azRad := float64(azimuth) * math.Pi / 180.0
	elRad := float64(elevation) * math.Pi / 180.0

	x := float32(math.Cos(elRad) * math.Sin(azRad))
	y := float32(math.Sin(elRad))
	z := float32(math.Cos(elRad) * math.Cos(azRad))

	return [3]float32{x, y, z}
}
