package domain

import "math"

// InitialBearing returns the initial great-circle bearing from one point to
// another, in degrees within [0, 360). The bearing from a point to itself is
// undefined (atan2 of two zeros); it is defined here as 0 rather than NaN,
// since a vessel sitting exactly on a region center is a legitimate input.
func InitialBearing(from, to Geo) float64 {
	if from == to {
		return 0
	}

	lat1 := radians(from.Lat)
	lat2 := radians(to.Lat)
	dLon := radians(to.Lon - from.Lon)

	x := math.Sin(dLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return normalizeDegrees(degrees(math.Atan2(x, y)))
}

// CircularDiff returns the shorter angular distance between two compass
// directions, accounting for wraparound at 360°. The result is in [0, 180].
func CircularDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// normalizeDegrees wraps an angle into [0, 360).
func normalizeDegrees(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func radians(d float64) float64 {
	return d * math.Pi / 180
}

func degrees(r float64) float64 {
	return r * 180 / math.Pi
}
