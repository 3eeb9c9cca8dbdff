// Command report generates a one-shot carrier deployment report. It fetches
// each carrier's position (static table by default, live MarineTraffic with
// -token), classifies deployments by course, and writes the JSON report and
// interactive map alongside a text summary on stdout.
//
// Usage:
//
//	go run ./cmd/report -out report.json -map map.html
//	go run ./cmd/report -token $MARINETRAFFIC_TOKEN -fleet fleet.yaml
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/carrier-tracker/internal/adapter/marinetraffic"
	"github.com/couchcryptid/carrier-tracker/internal/config"
	"github.com/couchcryptid/carrier-tracker/internal/domain"
	"github.com/couchcryptid/carrier-tracker/internal/mapview"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "deployment_report.json", "output path for the JSON report")
	mapOut := flag.String("map", "", "output path for the interactive map HTML (empty to skip)")
	fleetPath := flag.String("fleet", "", "fleet YAML path (empty for the built-in fleet)")
	tolerance := flag.Float64("tolerance", domain.DefaultHeadingTolerance, "heading tolerance in degrees")
	token := flag.String("token", "", "MarineTraffic API token (empty for static positions)")
	timeout := flag.Duration("timeout", 10*time.Second, "per-vessel fetch timeout")
	flag.Parse()

	if *tolerance <= 0 || *tolerance > 180 {
		return fmt.Errorf("tolerance must be in (0, 180], got %g", *tolerance)
	}

	fleet, err := config.LoadFleet(*fleetPath)
	if err != nil {
		return fmt.Errorf("loading fleet: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var provider domain.PositionProvider
	dataSource := "static"
	if *token != "" {
		provider = marinetraffic.NewClient(*token, *timeout, logger)
		dataSource = "marinetraffic"
	} else {
		provider = marinetraffic.NewStaticProvider(nil)
	}

	ctx := context.Background()

	carriers := make([]domain.VesselReport, 0, len(fleet.Vessels))
	for _, vessel := range fleet.Vessels {
		fetchCtx, cancel := context.WithTimeout(ctx, *timeout)
		state, err := provider.VesselPosition(fetchCtx, vessel.MMSI)
		cancel()
		if err != nil {
			if errors.Is(err, domain.ErrVesselNotFound) {
				log.Printf("%s (%s): no position available", vessel.Name, vessel.MMSI)
				continue
			}
			return fmt.Errorf("fetching %s: %w", vessel.Name, err)
		}
		state.Name = vessel.Name

		vr, err := domain.BuildVesselReport(state, fleet.Regions, *tolerance)
		if err != nil {
			return fmt.Errorf("classifying %s: %w", vessel.Name, err)
		}
		carriers = append(carriers, vr)
	}
	if len(carriers) == 0 {
		return fmt.Errorf("no carrier positions available")
	}

	report := domain.NewDeploymentReport(carriers, fleet.Regions, dataSource)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Printf("report written to %s", *out)

	if *mapOut != "" {
		html, err := mapview.Render(&report, fleet.Regions)
		if err != nil {
			return fmt.Errorf("rendering map: %w", err)
		}
		if err := os.WriteFile(*mapOut, html, 0o644); err != nil {
			return fmt.Errorf("writing map: %w", err)
		}
		log.Printf("map written to %s", *mapOut)
	}

	printSummary(report, fleet.Regions)
	return nil
}

// printSummary writes a human-readable deployment summary to stdout.
func printSummary(report domain.DeploymentReport, regions []domain.Region) {
	fmt.Printf("Carrier Deployment Report, %s\n", report.GeneratedAt.Format(time.RFC1123))
	fmt.Printf("Data source: %s\n\n", report.DataSource)

	for _, c := range report.Carriers {
		fmt.Printf("  %s %s (%s)\n", c.Arrow, c.Name, c.MMSI)
		fmt.Printf("      position %.4f, %.4f  course %.0f° (%s)  speed %.1f kn\n",
			c.Position.Lat, c.Position.Lon, c.Course, c.CompassPoint, c.SpeedKnots)
		fmt.Printf("      heading toward: %s\n", c.TargetRegion)
	}

	fmt.Println("\nStrategic deployments:")
	for _, region := range regions {
		deployed := report.StrategicDeployments[region.Key]
		if len(deployed) == 0 {
			fmt.Printf("  %s: none\n", region.Name)
			continue
		}
		for _, vr := range deployed {
			fmt.Printf("  %s: %s\n", region.Name, vr.Name)
		}
	}

	fmt.Printf("\n%s\n", report.Disclaimer)
}
