package api

import "github.com/passbi/fuelroute/internal/models"

// optimizeRequest is the body of POST /api/v1/route/optimize.
type optimizeRequest struct {
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`
}

// routeInfo mirrors RouteInfoSerializer: the route summary nested inside
// an optimize response, alongside the optimizer's stops and totals.
type routeInfo struct {
	Start         string          `json:"start"`
	End           string          `json:"end"`
	DistanceMiles float64         `json:"distance_miles"`
	DurationHours float64         `json:"duration_hours"`
	Geometry      models.Polyline `json:"geometry"`
}

// optimizeResponse mirrors RouteOptimizationResponseSerializer.
type optimizeResponse struct {
	Route               routeInfo     `json:"route"`
	Stops               []models.Stop `json:"stops"`
	TotalCost           float64       `json:"total_cost"`
	FuelConsumedGallons float64       `json:"fuel_consumed_gallons"`
}

// stationsNearResponse mirrors StationsNearResponseSerializer.
type stationsNearResponse struct {
	Stations []nearStation `json:"stations"`
}

type nearStation struct {
	ID      int64   `json:"id"`
	Station string  `json:"station"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Price   float64 `json:"price"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
}
