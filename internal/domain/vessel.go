package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidInput marks a vessel state whose coordinates or course fall
// outside their valid domain. Callers are responsible for validating or
// clamping before classification; it is never done silently here.
var ErrInvalidInput = errors.New("invalid input")

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is a rectangular geographic extent in degrees. North must exceed
// South; source data never wraps the antimeridian.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() Geo {
	return Geo{
		Lat: (b.North + b.South) / 2,
		Lon: (b.East + b.West) / 2,
	}
}

// Region is a named strategic area of interest. Name is unique within a
// region list. Color is a display tag for map markers and is not part of the
// classification contract.
type Region struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Bounds Bounds `json:"bounds"`
	Color  string `json:"color"`
}

// Center returns the region's bounding-box midpoint.
func (r Region) Center() Geo {
	return r.Bounds.Center()
}

// Vessel identifies a tracked carrier.
type Vessel struct {
	Name string `json:"name"`
	MMSI string `json:"mmsi"`
}

// VesselState is a point-in-time position report for a vessel. Course is in
// degrees clockwise from true north, 0..360. Speed is in knots and is carried
// through to reports but unused by classification.
type VesselState struct {
	Name      string    `json:"name,omitempty"`
	MMSI      string    `json:"mmsi"`
	Position  Geo       `json:"position"`
	Course    float64   `json:"course"`
	Speed     float64   `json:"speed"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks that the state's coordinates and course are within their
// valid domains. Errors wrap ErrInvalidInput. NaN is rejected explicitly:
// every comparison against NaN is false, so range checks alone would let a
// NaN coordinate or course through.
func (v VesselState) Validate() error {
	if math.IsNaN(v.Position.Lat) || v.Position.Lat < -90 || v.Position.Lat > 90 {
		return fmt.Errorf("%w: latitude %.4f outside [-90, 90]", ErrInvalidInput, v.Position.Lat)
	}
	if math.IsNaN(v.Position.Lon) || v.Position.Lon < -180 || v.Position.Lon > 180 {
		return fmt.Errorf("%w: longitude %.4f outside [-180, 180]", ErrInvalidInput, v.Position.Lon)
	}
	if math.IsNaN(v.Course) || v.Course < 0 || v.Course > 360 {
		return fmt.Errorf("%w: course %.1f outside [0, 360]", ErrInvalidInput, v.Course)
	}
	if math.IsNaN(v.Speed) || v.Speed < 0 {
		return fmt.Errorf("%w: speed %.1f is negative or NaN", ErrInvalidInput, v.Speed)
	}
	return nil
}
