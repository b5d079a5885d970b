// Package optimizer implements the Route Fuel-Stop Optimizer: a pure
// function of a route polyline, a total distance, and a read-only
// Station Index, producing a greedy refuel schedule and its cost.
//
// The pipeline runs in four phases, each described in its own file:
// arc-length table (arclength.go), corridor filter (corridor.go),
// station projection (projector.go), and greedy stop selection
// (selector.go). Nothing here is persisted between calls; all
// intermediate structures live for the duration of one Optimize call.
package optimizer

import (
	"github.com/passbi/fuelroute/internal/models"
)

// Optimizer runs the fuel-stop optimization pipeline against an
// injected StationIndex. It holds no mutable state of its own, so a
// single Optimizer can be shared across concurrent requests.
type Optimizer struct {
	opts Options
}

// New returns an Optimizer configured with opts.
func New(opts Options) *Optimizer {
	return &Optimizer{opts: opts}
}

// Optimize runs the full pipeline described in spec §2 and §4.
func (o *Optimizer) Optimize(route models.Polyline, totalDistanceMeters float64, index StationIndex) (*models.Result, error) {
	if len(route) < 2 {
		return nil, &EmptyRouteError{Reason: "polyline has fewer than 2 vertices"}
	}
	if totalDistanceMeters <= 0 {
		return nil, &EmptyRouteError{Reason: "total_distance_meters must be positive"}
	}

	totalDistanceMiles := totalDistanceMeters * MetersPerMile

	cum := buildArcLengthTable(route)

	corridorStations, err := filterCorridor(route, index, o.opts.SearchCorridorMiles)
	if err != nil {
		return nil, err
	}

	if len(corridorStations) == 0 && totalDistanceMiles > o.opts.TankRangeMiles {
		return nil, &NoStationsOnRouteError{}
	}

	projected := projectStations(corridorStations, route, cum)

	stops, totalCost, err := selectStops(projected, totalDistanceMiles, o.opts)
	if err != nil {
		return nil, err
	}

	if stops == nil {
		stops = []models.Stop{}
	}

	return &models.Result{
		Stops:               stops,
		TotalCost:           round2(totalCost),
		FuelConsumedGallons: round2(totalDistanceMiles / o.opts.MPG),
	}, nil
}
