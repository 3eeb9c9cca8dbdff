// Package marinetraffic provides position providers backed by the
// MarineTraffic AIS API, with a static fallback for offline operation.
package marinetraffic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/carrier-tracker/internal/domain"
)

// Client implements domain.PositionProvider using the MarineTraffic
// exportvessel API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a MarineTraffic API client.
func NewClient(token string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		token: token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://services.marinetraffic.com/api",
		logger:  logger,
	}
}

// VesselPosition fetches the latest AIS report for the given MMSI.
// An empty response array means the vessel is not broadcasting and maps to
// domain.ErrVesselNotFound.
func (c *Client) VesselPosition(ctx context.Context, mmsi string) (domain.VesselState, error) {
	u := fmt.Sprintf("%s/exportvessel/v:5/%s/mmsi:%s/protocol:jsono", c.baseURL, c.token, mmsi)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.VesselState{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.VesselState{}, fmt.Errorf("position request for mmsi %s: %w", mmsi, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.VesselState{}, fmt.Errorf("marinetraffic API error: status %d: %s", resp.StatusCode, body)
	}

	var records []vesselRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return domain.VesselState{}, fmt.Errorf("decode response: %w", err)
	}

	if len(records) == 0 {
		return domain.VesselState{}, fmt.Errorf("mmsi %s has no AIS report: %w", mmsi, domain.ErrVesselNotFound)
	}

	state, err := records[0].toVesselState(mmsi)
	if err != nil {
		return domain.VesselState{}, err
	}
	return state, nil
}

// vesselRecord is one element of the exportvessel jsono response. The API
// encodes all values as strings.
type vesselRecord struct {
	MMSI      string `json:"MMSI"`
	Lat       string `json:"LAT"`
	Lon       string `json:"LON"`
	Speed     string `json:"SPEED"`
	Course    string `json:"COURSE"`
	Timestamp string `json:"TIMESTAMP"`
	ShipName  string `json:"SHIPNAME"`
}

// toVesselState parses and validates a raw API record. Position and course
// must parse — a report with an unreadable position is useless for
// classification and silently defaulting it to zero would place the vessel in
// the Gulf of Guinea. Speed is tolerated at zero when absent.
func (r vesselRecord) toVesselState(mmsi string) (domain.VesselState, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(r.Lat), 64)
	if err != nil {
		return domain.VesselState{}, fmt.Errorf("mmsi %s: unparseable LAT %q: %w", mmsi, r.Lat, domain.ErrInvalidInput)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(r.Lon), 64)
	if err != nil {
		return domain.VesselState{}, fmt.Errorf("mmsi %s: unparseable LON %q: %w", mmsi, r.Lon, domain.ErrInvalidInput)
	}
	course, err := strconv.ParseFloat(strings.TrimSpace(r.Course), 64)
	if err != nil {
		return domain.VesselState{}, fmt.Errorf("mmsi %s: unparseable COURSE %q: %w", mmsi, r.Course, domain.ErrInvalidInput)
	}

	state := domain.VesselState{
		Name:      r.ShipName,
		MMSI:      mmsi,
		Position:  domain.Geo{Lat: lat, Lon: lon},
		Course:    course,
		Speed:     parseFloatOrZero(r.Speed),
		Timestamp: parseTimestamp(r.Timestamp),
	}
	if err := state.Validate(); err != nil {
		return domain.VesselState{}, fmt.Errorf("mmsi %s: %w", mmsi, err)
	}
	return state, nil
}

func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseTimestamp parses the API's UTC timestamp format. Unparseable values
// yield the zero time; report consumers treat that as "age unknown".
func parseTimestamp(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
