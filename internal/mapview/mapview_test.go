package mapview_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/carrier-tracker/internal/domain"
	"github.com/couchcryptid/carrier-tracker/internal/mapview"
)

func testRegions() []domain.Region {
	return []domain.Region{
		{
			Key:    "middle_east",
			Name:   "Middle East",
			Bounds: domain.Bounds{North: 40, South: 12, East: 65, West: 25},
			Color:  "red",
		},
	}
}

func testReport() *domain.DeploymentReport {
	return &domain.DeploymentReport{
		GeneratedAt: time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
		Carriers: []domain.VesselReport{
			{
				Name:         "USS Dwight D. Eisenhower",
				MMSI:         "368789000",
				Position:     domain.Geo{Lat: 20.5, Lon: 40.2},
				Course:       45,
				Arrow:        "↗",
				SpeedKnots:   18.5,
				TargetRegion: "Middle East",
				Timestamp:    time.Date(2024, 6, 1, 5, 58, 0, 0, time.UTC),
			},
			{
				Name:         "USS Theodore Roosevelt",
				MMSI:         "368890000",
				Position:     domain.Geo{Lat: 21.3, Lon: -157.8},
				Course:       270,
				Arrow:        "←",
				SpeedKnots:   18.5,
				TargetRegion: domain.RegionOtherOperations,
			},
		},
		Disclaimer: domain.Disclaimer,
	}
}

func TestRender(t *testing.T) {
	out, err := mapview.Render(testReport(), testRegions())
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "leaflet", "uses the Leaflet client library")
	assert.Contains(t, html, `"name":"Middle East"`)
	assert.Contains(t, html, `"color":"red"`)
	assert.Contains(t, html, `"north":40`)
	assert.Contains(t, html, "USS Dwight D. Eisenhower")
	assert.Contains(t, html, `"target_region":"Other Operations"`)
	assert.Contains(t, html, "Generated 2024-06-01 06:00:00 UTC")
	assert.Contains(t, html, domain.Disclaimer)
}

func TestRenderColorsByTargetRegion(t *testing.T) {
	out, err := mapview.Render(testReport(), testRegions())
	require.NoError(t, err)
	html := string(out)

	// Eisenhower inherits the Middle East region color; Roosevelt is gray.
	assert.Contains(t, html, `"color":"red"`)
	assert.Contains(t, html, `"color":"gray"`)
}

func TestRenderHeadingLineEndpoint(t *testing.T) {
	report := &domain.DeploymentReport{
		Carriers: []domain.VesselReport{
			{
				Name:         "USS Nimitz",
				Position:     domain.Geo{Lat: 10, Lon: 20},
				Course:       90, // due east: endpoint shifts +3 lon, same lat
				TargetRegion: domain.RegionOtherOperations,
			},
		},
	}

	out, err := mapview.Render(report, nil)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, `"end_lat":10`)
	assert.Contains(t, html, `"end_lon":23`)
}

func TestRenderEmptyReport(t *testing.T) {
	out, err := mapview.Render(&domain.DeploymentReport{}, testRegions())
	require.NoError(t, err)
	assert.Contains(t, string(out), "const vessels = [];")
}
