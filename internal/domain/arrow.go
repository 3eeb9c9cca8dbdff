package domain

// directionArrows lists the 8 display arrows in rotational order starting at
// north: N NE E SE S SW W NW.
var directionArrows = [8]string{"↑", "↗", "→", "↘", "↓", "↙", "←", "↖"}

// compassPoints lists the 16 compass point names in rotational order.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// DirectionArrow quantizes a course to one of 8 compass arrows. The course is
// shifted by half a sector (22.5°) so each arrow covers the 45° centered on
// its direction. Negative and >360° courses wrap — compass course is cyclic,
// so out-of-range values are normalized, not rejected.
func DirectionArrow(course float64) string {
	c := normalizeDegrees(course)
	return directionArrows[int((c+22.5)/45)%8]
}

// CompassPoint quantizes a course to one of 16 compass point names for report
// display strings. Wrapping follows the same rule as DirectionArrow.
func CompassPoint(course float64) string {
	c := normalizeDegrees(course)
	return compassPoints[int((c+11.25)/22.5)%16]
}
