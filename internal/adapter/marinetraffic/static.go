package marinetraffic

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/carrier-tracker/internal/domain"
)

// StaticProvider serves positions from a fixed in-memory table. It stands in
// for the live API when no token is configured and in tests. The default
// table mirrors publicly reported carrier deployment areas.
type StaticProvider struct {
	positions map[string]domain.VesselState
	clock     clockwork.Clock
}

// NewStaticProvider creates a provider over the default position table.
// Pass nil to use the real clock for report timestamps.
func NewStaticProvider(clock clockwork.Clock) *StaticProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StaticProvider{
		positions: defaultPositions(),
		clock:     clock,
	}
}

// NewStaticProviderWithPositions creates a provider over a caller-supplied table.
func NewStaticProviderWithPositions(positions map[string]domain.VesselState, clock clockwork.Clock) *StaticProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StaticProvider{positions: positions, clock: clock}
}

func (p *StaticProvider) VesselPosition(_ context.Context, mmsi string) (domain.VesselState, error) {
	state, ok := p.positions[mmsi]
	if !ok {
		return domain.VesselState{}, fmt.Errorf("mmsi %s not in static table: %w", mmsi, domain.ErrVesselNotFound)
	}

	state.MMSI = mmsi
	state.Timestamp = p.clock.Now().UTC()
	return state, nil
}

// defaultPositions is the static deployment snapshot, keyed by MMSI.
func defaultPositions() map[string]domain.VesselState {
	return map[string]domain.VesselState{
		"368123000": {Position: domain.Geo{Lat: 35.2, Lon: 33.1}, Course: 90, Speed: 18.5},    // Ford - Mediterranean
		"368456000": {Position: domain.Geo{Lat: 26.8, Lon: 50.3}, Course: 270, Speed: 18.5},   // Nimitz - Persian Gulf
		"368789000": {Position: domain.Geo{Lat: 20.5, Lon: 40.2}, Course: 180, Speed: 18.5},   // Eisenhower - Red Sea
		"368234000": {Position: domain.Geo{Lat: 1.3, Lon: 103.8}, Course: 225, Speed: 18.5},   // Lincoln - Singapore
		"368567000": {Position: domain.Geo{Lat: 35.7, Lon: 139.7}, Course: 180, Speed: 18.5},  // Vinson - Japan
		"368890000": {Position: domain.Geo{Lat: 21.3, Lon: -157.8}, Course: 270, Speed: 18.5}, // Roosevelt - Hawaii
	}
}
