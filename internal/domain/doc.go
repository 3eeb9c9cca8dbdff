// Package domain models US Navy aircraft-carrier deployments and classifies
// where each vessel appears to be heading.
//
// # Data Source
//
// Carrier positions come from AIS reports keyed by Maritime Mobile Service
// Identity (MMSI). The adapter layer fetches these from the MarineTraffic
// exportvessel API or from a static table when no API token is configured;
// military vessels may not broadcast AIS data for security reasons, so the
// static table mirrors publicly reported deployment areas.
//
// # Bearing and Course Conventions
//
// Course and bearing are compass degrees clockwise from true north:
//
//	0 = north, 90 = east, 180 = south, 270 = west.
//
// InitialBearing uses the standard spherical great-circle formula:
//
//	Δλ = λ2 − λ1
//	x  = sin(Δλ)·cos(φ2)
//	y  = cos(φ1)·sin(φ2) − sin(φ1)·cos(φ2)·cos(Δλ)
//	θ  = atan2(x, y), normalized into [0, 360)
//
// The bearing from a point to itself is undefined in spherical trigonometry
// (x = y = 0); it is defined here as 0. A coincident vessel and region center
// is a legitimate input, not an error.
//
// # Strategic Region Classification
//
// A vessel "heads toward" a region when its course lies within a fixed angular
// tolerance (default 45°) of the great-circle bearing to the region's bounding
// box center. Angular comparison uses the circular difference (the shorter way
// around the compass), so a course of 350° is 20° from a bearing of 10°.
//
// Regions are an ordered list and the first match wins. This is deliberate:
// regions overlap (the Indian Ocean box abuts both the Middle East and East
// Asia boxes) and list order is the precedence contract. Vessels matching no
// region classify as "Other Operations".
//
// # Display Quantization
//
// Courses quantize to one of 8 arrows (↑ ↗ → ↘ ↓ ↙ ← ↖) by shifting half a
// sector (22.5°) and dividing by 45°, and to one of 16 compass point names
// (N, NNE, NE, ...) the same way with 22.5° sectors. Quantization wraps
// negative and >360° courses: a compass course is cyclic, so these are
// normalized, never rejected. Classification, by contrast, rejects courses
// outside [0, 360]: a silently clamped course would corrupt a deployment
// report with a plausible-looking but wrong classification.
package domain
