package domain

// RegionOtherOperations is the classification sentinel for a vessel heading
// toward no configured strategic region.
const RegionOtherOperations = "Other Operations"

// DefaultHeadingTolerance is the angular tolerance, in degrees, within which
// a course counts as heading toward a region center.
const DefaultHeadingTolerance = 45.0

// Classify determines which strategic region the vessel is heading toward.
//
// Regions are evaluated in slice order and the first region whose
// bearing-to-center lies within toleranceDeg of the vessel's course is
// returned — first match wins, not closest match, so list order breaks ties.
// When no region matches, the result is RegionOtherOperations.
//
// A course of exactly 360 is treated as 0. Coordinates or course outside
// their valid domains return an error wrapping ErrInvalidInput; they are
// never clamped.
func Classify(vessel VesselState, regions []Region, toleranceDeg float64) (string, error) {
	if err := vessel.Validate(); err != nil {
		return "", err
	}

	course := vessel.Course
	if course == 360 {
		course = 0
	}

	for _, region := range regions {
		bearing := InitialBearing(vessel.Position, region.Center())
		if CircularDiff(course, bearing) <= toleranceDeg {
			return region.Name, nil
		}
	}

	return RegionOtherOperations, nil
}
