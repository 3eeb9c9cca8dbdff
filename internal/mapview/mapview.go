// Package mapview renders a deployment report as an interactive Leaflet map:
// translucent rectangles for the strategic regions, a colored marker per
// carrier, and a short heading line along each carrier's course.
package mapview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"math"

	"github.com/couchcryptid/carrier-tracker/internal/domain"
)

// headingLineDegrees is the length of the course indicator line drawn from
// each vessel, in degrees of arc.
const headingLineDegrees = 3.0

// otherOperationsColor marks vessels heading toward no strategic region.
const otherOperationsColor = "gray"

type regionView struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

type vesselView struct {
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Course       float64 `json:"course"`
	Arrow        string  `json:"arrow"`
	SpeedKnots   float64 `json:"speed_knots"`
	TargetRegion string  `json:"target_region"`
	Color        string  `json:"color"`
	Timestamp    string  `json:"timestamp"`
	EndLat       float64 `json:"end_lat"`
	EndLon       float64 `json:"end_lon"`
}

type templateData struct {
	Regions     template.JS
	Vessels     template.JS
	GeneratedAt string
	Disclaimer  string
}

// Render produces the self-contained map HTML for a deployment report.
func Render(report *domain.DeploymentReport, regions []domain.Region) ([]byte, error) {
	colorByName := make(map[string]string, len(regions))
	regionViews := make([]regionView, 0, len(regions))
	for _, r := range regions {
		colorByName[r.Name] = r.Color
		regionViews = append(regionViews, regionView{
			Name:  r.Name,
			Color: r.Color,
			North: r.Bounds.North,
			South: r.Bounds.South,
			East:  r.Bounds.East,
			West:  r.Bounds.West,
		})
	}

	vesselViews := make([]vesselView, 0, len(report.Carriers))
	for _, c := range report.Carriers {
		color, ok := colorByName[c.TargetRegion]
		if !ok || color == "" {
			color = otherOperationsColor
		}

		courseRad := c.Course * math.Pi / 180
		vesselViews = append(vesselViews, vesselView{
			Name:         c.Name,
			Lat:          c.Position.Lat,
			Lon:          c.Position.Lon,
			Course:       c.Course,
			Arrow:        c.Arrow,
			SpeedKnots:   c.SpeedKnots,
			TargetRegion: c.TargetRegion,
			Color:        color,
			Timestamp:    c.Timestamp.Format("2006-01-02 15:04:05 UTC"),
			EndLat:       c.Position.Lat + headingLineDegrees*math.Cos(courseRad),
			EndLon:       c.Position.Lon + headingLineDegrees*math.Sin(courseRad),
		})
	}

	regionJSON, err := json.Marshal(regionViews)
	if err != nil {
		return nil, fmt.Errorf("marshal regions: %w", err)
	}
	vesselJSON, err := json.Marshal(vesselViews)
	if err != nil {
		return nil, fmt.Errorf("marshal vessels: %w", err)
	}

	var buf bytes.Buffer
	err = mapTemplate.Execute(&buf, templateData{
		Regions:     template.JS(regionJSON),
		Vessels:     template.JS(vesselJSON),
		GeneratedAt: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"),
		Disclaimer:  report.Disclaimer,
	})
	if err != nil {
		return nil, fmt.Errorf("render map: %w", err)
	}
	return buf.Bytes(), nil
}

var mapTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>USS Carrier Deployment Map</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
#footer {
  position: absolute; bottom: 0; left: 0; right: 0; z-index: 1000;
  background: rgba(255, 255, 255, 0.85); font: 12px sans-serif; padding: 4px 8px;
}
</style>
</head>
<body>
<div id="map"></div>
<div id="footer">Generated {{.GeneratedAt}} &middot; {{.Disclaimer}}</div>
<script>
const regions = {{.Regions}};
const vessels = {{.Vessels}};

const map = L.map('map').setView([15.0, 80.0], 3);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

for (const r of regions) {
  L.rectangle([[r.south, r.west], [r.north, r.east]], {
    color: r.color, weight: 1, fill: true, fillOpacity: 0.1
  }).bindPopup(r.name + ' Region of Interest').addTo(map);
}

for (const v of vessels) {
  const popup = '<b>' + v.name + '</b><br>' +
    'Position: ' + v.lat.toFixed(3) + ', ' + v.lon.toFixed(3) + '<br>' +
    'Course: ' + v.course + '° ' + v.arrow + '<br>' +
    'Speed: ' + v.speed_knots + ' knots<br>' +
    'Target Region: ' + v.target_region + '<br>' +
    'Last Update: ' + v.timestamp;

  L.circleMarker([v.lat, v.lon], {
    radius: 8, color: v.color, fillColor: v.color, fillOpacity: 0.9
  }).bindPopup(popup).bindTooltip(v.name + ' ' + v.arrow).addTo(map);

  L.polyline([[v.lat, v.lon], [v.end_lat, v.end_lon]], {
    color: v.color, weight: 3, opacity: 0.8
  }).addTo(map);
}
</script>
</body>
</html>
`))
