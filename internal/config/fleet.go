package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/carrier-tracker/internal/domain"
)

// Fleet is the static tracking configuration: the ordered strategic region
// list and the carriers to track. Region declaration order is classification
// precedence and is preserved from the YAML file.
type Fleet struct {
	Regions []domain.Region
	Vessels []domain.Vessel
}

type fleetFile struct {
	Regions []regionEntry `yaml:"regions"`
	Vessels []vesselEntry `yaml:"vessels"`
}

type regionEntry struct {
	Key    string      `yaml:"key" validate:"required"`
	Name   string      `yaml:"name" validate:"required"`
	Bounds boundsEntry `yaml:"bounds" validate:"required"`
	Color  string      `yaml:"color"`
}

type boundsEntry struct {
	North float64 `yaml:"north" validate:"gte=-90,lte=90"`
	South float64 `yaml:"south" validate:"gte=-90,lte=90"`
	East  float64 `yaml:"east" validate:"gte=-180,lte=180"`
	West  float64 `yaml:"west" validate:"gte=-180,lte=180"`
}

type vesselEntry struct {
	Name string `yaml:"name" validate:"required"`
	MMSI string `yaml:"mmsi" validate:"required,numeric,len=9"`
}

// LoadFleet reads a fleet configuration file. An empty path returns the
// compiled-in default fleet.
func LoadFleet(path string) (*Fleet, error) {
	if path == "" {
		return DefaultFleet(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fleet config: %w", err)
	}

	var file fleetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fleet config: %w", err)
	}

	if len(file.Regions) == 0 {
		return nil, fmt.Errorf("fleet config %s: regions list must not be empty", path)
	}
	if len(file.Vessels) == 0 {
		return nil, fmt.Errorf("fleet config %s: vessels list must not be empty", path)
	}

	v := validator.New()
	fleet := &Fleet{
		Regions: make([]domain.Region, 0, len(file.Regions)),
		Vessels: make([]domain.Vessel, 0, len(file.Vessels)),
	}

	seenNames := make(map[string]bool, len(file.Regions))
	for i, r := range file.Regions {
		if err := v.Struct(r); err != nil {
			return nil, fmt.Errorf("fleet config: region %d: %w", i, err)
		}
		if r.Bounds.North <= r.Bounds.South {
			return nil, fmt.Errorf("fleet config: region %q: north (%g) must exceed south (%g)",
				r.Name, r.Bounds.North, r.Bounds.South)
		}
		if seenNames[r.Name] {
			return nil, fmt.Errorf("fleet config: duplicate region name %q", r.Name)
		}
		seenNames[r.Name] = true

		fleet.Regions = append(fleet.Regions, domain.Region{
			Key:  r.Key,
			Name: r.Name,
			Bounds: domain.Bounds{
				North: r.Bounds.North,
				South: r.Bounds.South,
				East:  r.Bounds.East,
				West:  r.Bounds.West,
			},
			Color: r.Color,
		})
	}

	for i, vs := range file.Vessels {
		if err := v.Struct(vs); err != nil {
			return nil, fmt.Errorf("fleet config: vessel %d: %w", i, err)
		}
		fleet.Vessels = append(fleet.Vessels, domain.Vessel{Name: vs.Name, MMSI: vs.MMSI})
	}

	return fleet, nil
}

// DefaultFleet returns the built-in strategic regions and carrier list.
// Region order matters: it is the classification precedence order.
func DefaultFleet() *Fleet {
	return &Fleet{
		Regions: []domain.Region{
			{
				Key:    "middle_east",
				Name:   "Middle East",
				Bounds: domain.Bounds{North: 40, South: 12, East: 65, West: 25},
				Color:  "red",
			},
			{
				Key:    "indian_ocean",
				Name:   "Indian Ocean",
				Bounds: domain.Bounds{North: 25, South: -40, East: 100, West: 40},
				Color:  "blue",
			},
			{
				Key:    "east_asia",
				Name:   "East Asia/Western Pacific",
				Bounds: domain.Bounds{North: 50, South: 0, East: 150, West: 100},
				Color:  "green",
			},
		},
		Vessels: []domain.Vessel{
			{Name: "USS Gerald R. Ford", MMSI: "368123000"},
			{Name: "USS Nimitz", MMSI: "368456000"},
			{Name: "USS Dwight D. Eisenhower", MMSI: "368789000"},
			{Name: "USS Abraham Lincoln", MMSI: "368234000"},
			{Name: "USS Carl Vinson", MMSI: "368567000"},
			{Name: "USS Theodore Roosevelt", MMSI: "368890000"},
		},
	}
}
