package ee

import "math"

// MetersPerDegree of longitude at the equator, used to express the scale of
// geographic reference systems in meters.
const MetersPerDegree = 111319.49079327358

// Projection describes the native grid of an asset: its reference system and
// the affine transform of the first band, in the order
// [scaleX, shearX, translateX, shearY, scaleY, translateY].
type Projection struct {
	CRS       string
	Transform [6]float64
}

// IsGeographic returns whether the reference system uses degrees.
func (p Projection) IsGeographic() bool {
	switch p.CRS {
	case "EPSG:4326", "CRS:84", "OGC:CRS84":
		return true
	}
	return false
}

// NominalScale returns the linear scale in meters of one pixel of the grid.
func (p Projection) NominalScale() float64 {
	scale := math.Sqrt(math.Abs(p.Transform[0]*p.Transform[4] - p.Transform[1]*p.Transform[3]))
	if p.IsGeographic() {
		scale *= MetersPerDegree
	}
	return scale
}
