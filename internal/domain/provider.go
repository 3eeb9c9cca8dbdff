package domain

import (
	"context"
	"errors"
)

// ErrVesselNotFound indicates the position source has no report for the
// requested MMSI. Military vessels routinely stop broadcasting AIS, so this is
// an expected condition, not a provider failure.
var ErrVesselNotFound = errors.New("vessel not found")

// PositionProvider supplies per-vessel position reports. Implementations
// include the live MarineTraffic client and a static table for offline use;
// freshness and validity of the underlying data are the provider's concern.
type PositionProvider interface {
	// VesselPosition returns the latest known state for the vessel with the
	// given MMSI, or an error wrapping ErrVesselNotFound when none exists.
	VesselPosition(ctx context.Context, mmsi string) (VesselState, error)
}
