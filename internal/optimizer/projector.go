package optimizer

import (
	"sort"

	"github.com/passbi/fuelroute/internal/models"
)

// projectorSubsampleTarget is the finer subsample size used for
// projection (§4.3), distinct from corridorSubsampleTarget — a finer
// step improves dist_from_start accuracy per spec §9's open question.
const projectorSubsampleTarget = 300

// projectStations maps each corridor-surviving station to a scalar
// dist_from_start by nearest-subsampled-vertex lookup, then sorts the
// result ascending by that offset (§4.3).
func projectStations(stations []models.Station, route models.Polyline, cum models.ArcLengthTable) []models.ProjectedStation {
	if len(stations) == 0 {
		return nil
	}

	step := max(1, len(route)/projectorSubsampleTarget)
	var subIdx []int
	for i := 0; i < len(route); i += step {
		subIdx = append(subIdx, i)
	}

	projected := make([]models.ProjectedStation, 0, len(stations))
	for _, st := range stations {
		bestIdx := subIdx[0]
		bestDist := haversineMiles(st.Latitude, st.Longitude, route[subIdx[0]].Lat, route[subIdx[0]].Lon)
		for _, idx := range subIdx[1:] {
			d := haversineMiles(st.Latitude, st.Longitude, route[idx].Lat, route[idx].Lon)
			if d < bestDist {
				bestDist = d
				bestIdx = idx
			}
		}

		projected = append(projected, models.ProjectedStation{
			Station:       st,
			DistFromStart: cum[bestIdx],
			Price:         st.RetailPrice,
		})
	}

	sort.Slice(projected, func(i, j int) bool {
		return projected[i].DistFromStart < projected[j].DistFromStart
	})

	return projected
}
