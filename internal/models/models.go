package models

import "time"

// Station is a retail fuel location as ingested from the OPIS corpus.
type Station struct {
	ID          int64
	OPISID      string
	Name        string
	City        string
	State       string
	Address     string
	RetailPrice float64 // USD per gallon, 3 decimal places
	Latitude    float64
	Longitude   float64
	Geocoded    bool
	CreatedAt   time.Time
}

// IsUsable reports whether the station satisfies the invariant required
// for the optimizer to consider it: geocoded with coordinates in range.
func (s Station) IsUsable() bool {
	return s.Geocoded &&
		s.Latitude >= -90 && s.Latitude <= 90 &&
		s.Longitude >= -180 && s.Longitude <= 180
}

// Vertex is a (lat, lon) point on a route polyline, normalized from the
// GeoJSON lon-first coordinate order on ingestion.
type Vertex struct {
	Lat float64
	Lon float64
}

// Polyline is the ordered path from trip start to trip end.
type Polyline []Vertex

// ArcLengthTable holds the cumulative great-circle distance in miles from
// vertex 0 to each vertex in a Polyline.
type ArcLengthTable []float64

// ProjectedStation pairs a Station with its scalar offset along a route.
type ProjectedStation struct {
	Station       Station
	DistFromStart float64 // miles from route start
	Price         float64 // USD/gal, denormalized from Station.RetailPrice
}

// Stop is a single selected refuel event in the optimizer's output.
type Stop struct {
	Station       string  `json:"station"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Price         string  `json:"price"` // formatted "$X.XXX/gal"
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	RefillGallons float64 `json:"refill_gallons"`
	Cost          float64 `json:"cost"`
}

// Result is the successful output of an Optimize call.
type Result struct {
	Stops               []Stop  `json:"stops"`
	TotalCost           float64 `json:"total_cost"`
	FuelConsumedGallons float64 `json:"fuel_consumed_gallons"`
}

// Route is the driving route returned by the routing collaborator,
// carrying both the raw polyline and the human-facing summary fields.
type Route struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        Polyline
}

// ImportLog records one CSV ingestion run of the station corpus.
type ImportLog struct {
	ID           string
	StartedAt    time.Time
	CompletedAt  *time.Time
	Status       string
	RowsRead     int
	RowsInserted int
	RowsSkipped  int
	ErrorMsg     string
}
