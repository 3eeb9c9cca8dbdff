package domain

import "time"

// Disclaimer is the standing caveat attached to every deployment report.
const Disclaimer = "Military vessels may not broadcast AIS data for security reasons"

// VesselReport is the per-vessel entry of a deployment report: the vessel's
// state plus its classification and display strings.
type VesselReport struct {
	Name         string    `json:"name"`
	MMSI         string    `json:"mmsi"`
	Position     Geo       `json:"position"`
	Course       float64   `json:"course"`
	Arrow        string    `json:"arrow"`
	CompassPoint string    `json:"compass_point"`
	SpeedKnots   float64   `json:"speed_knots"`
	TargetRegion string    `json:"target_region"`
	Timestamp    time.Time `json:"timestamp"`
}

// DeploymentReport aggregates one reporting cycle across the fleet.
// StrategicDeployments groups carriers by region key; every configured region
// has an entry even when empty, so consumers can distinguish "no carriers
// heading there" from "region not tracked".
type DeploymentReport struct {
	GeneratedAt          time.Time                 `json:"generated_at"`
	Carriers             []VesselReport            `json:"carriers"`
	StrategicDeployments map[string][]VesselReport `json:"strategic_deployments"`
	DataSource           string                    `json:"data_source"`
	Disclaimer           string                    `json:"disclaimer"`
}

// BuildVesselReport classifies a vessel state and derives its display strings.
// Returns an error wrapping ErrInvalidInput when the state fails validation.
func BuildVesselReport(state VesselState, regions []Region, toleranceDeg float64) (VesselReport, error) {
	target, err := Classify(state, regions, toleranceDeg)
	if err != nil {
		return VesselReport{}, err
	}

	return VesselReport{
		Name:         state.Name,
		MMSI:         state.MMSI,
		Position:     state.Position,
		Course:       state.Course,
		Arrow:        DirectionArrow(state.Course),
		CompassPoint: CompassPoint(state.Course),
		SpeedKnots:   state.Speed,
		TargetRegion: target,
		Timestamp:    state.Timestamp,
	}, nil
}

// NewDeploymentReport assembles a deployment report from already-classified
// vessel reports, grouping them into per-region strategic deployments.
// GeneratedAt comes from the package clock so tests and fixture generation
// can freeze it.
func NewDeploymentReport(carriers []VesselReport, regions []Region, dataSource string) DeploymentReport {
	keyByName := make(map[string]string, len(regions))
	deployments := make(map[string][]VesselReport, len(regions))
	for _, r := range regions {
		keyByName[r.Name] = r.Key
		deployments[r.Key] = []VesselReport{}
	}

	for _, c := range carriers {
		key, ok := keyByName[c.TargetRegion]
		if !ok {
			continue // Other Operations
		}
		deployments[key] = append(deployments[key], c)
	}

	return DeploymentReport{
		GeneratedAt:          clock.Now().UTC(),
		Carriers:             carriers,
		StrategicDeployments: deployments,
		DataSource:           dataSource,
		Disclaimer:           Disclaimer,
	}
}
