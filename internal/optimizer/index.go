package optimizer

import "github.com/passbi/fuelroute/internal/models"

// StationIndex is the read-only capability the Optimizer depends on,
// per spec §9's design note: the source's global ORM reach is replaced
// with an injected bounding-box query. Implementations live in
// internal/stations; tests use an in-memory one.
type StationIndex interface {
	QueryBBox(minLat, maxLat, minLon, maxLon float64) ([]models.Station, error)
}
