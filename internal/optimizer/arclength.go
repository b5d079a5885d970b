package optimizer

import (
	"math"

	"github.com/passbi/fuelroute/internal/models"
)

// haversineMiles returns the great-circle distance between two points in
// miles. Grounded on internal/routing/astar.go's haversineDistance, scaled
// to miles with EarthRadiusMiles instead of meters.
func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusMiles * c
}

// buildArcLengthTable precomputes per-vertex cumulative great-circle
// distance along the route (§4.1). Identical adjacent vertices are
// preserved, not deduplicated, since later phases reference vertex index.
func buildArcLengthTable(route models.Polyline) models.ArcLengthTable {
	cum := make(models.ArcLengthTable, len(route))
	for i := 1; i < len(route); i++ {
		d := haversineMiles(route[i-1].Lat, route[i-1].Lon, route[i].Lat, route[i].Lon)
		cum[i] = cum[i-1] + d
	}
	return cum
}
