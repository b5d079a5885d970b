package optimizer

import (
	"math"

	"github.com/passbi/fuelroute/internal/models"
)

// corridorSubsampleTarget is the quick-reject subsample size (§4.2).
// NOTE: kept distinct from projectorSubsampleTarget in projector.go per
// spec §9's open question — the corridor phase tolerates a coarser
// sample than the projector, which needs finer dist_from_start accuracy.
const corridorSubsampleTarget = 150

// corridorLatLonTolerance is the phase-2 L∞ quick-reject tolerance in
// degrees (§4.2). 0.15° is roughly 10 miles of latitude everywhere but
// less than 10 miles of longitude away from the equator (about 8.4 miles
// at 36°N), so this phase is an approximation: a station inside the
// corridor that lies mostly east or west of its nearest sampled vertex
// can be rejected here, and stations outside the corridor can pass it,
// which phase 3 then resolves precisely.
const corridorLatLonTolerance = 0.15

// bboxExpansionDegrees is the phase-1 bounding-box pad in degrees (§4.2).
const bboxExpansionDegrees = 0.3

// filterCorridor implements the three-phase spatial filter from §4.2.
// A station hugging the route only between two subsampled vertices can
// be missed by phase 2 or phase 3 — a documented, accepted approximation
// (spec §9 open question), not a bug.
func filterCorridor(route models.Polyline, index StationIndex, corridorMiles float64) ([]models.Station, error) {
	if len(route) == 0 {
		return nil, nil
	}

	minLat, maxLat := route[0].Lat, route[0].Lat
	minLon, maxLon := route[0].Lon, route[0].Lon
	for _, v := range route {
		if v.Lat < minLat {
			minLat = v.Lat
		}
		if v.Lat > maxLat {
			maxLat = v.Lat
		}
		if v.Lon < minLon {
			minLon = v.Lon
		}
		if v.Lon > maxLon {
			maxLon = v.Lon
		}
	}

	// Phase 1: bounding-box pre-filter, pushed down to the station index.
	candidates, err := index.QueryBBox(
		minLat-bboxExpansionDegrees, maxLat+bboxExpansionDegrees,
		minLon-bboxExpansionDegrees, maxLon+bboxExpansionDegrees,
	)
	if err != nil {
		return nil, err
	}

	step := max(1, len(route)/corridorSubsampleTarget)
	var sub []models.Vertex
	for i := 0; i < len(route); i += step {
		sub = append(sub, route[i])
	}

	var survivors []models.Station
	for _, st := range candidates {
		if !st.IsUsable() {
			continue
		}

		// Phase 2: fast L∞ quick-reject in degree space, no trig calls.
		reject := true
		for _, v := range sub {
			if math.Abs(v.Lat-st.Latitude) <= corridorLatLonTolerance &&
				math.Abs(v.Lon-st.Longitude) <= corridorLatLonTolerance {
				reject = false
				break
			}
		}
		if reject {
			continue
		}

		// Phase 3: precise haversine acceptance against survivors only.
		minDist := math.Inf(1)
		for _, v := range sub {
			d := haversineMiles(st.Latitude, st.Longitude, v.Lat, v.Lon)
			if d < minDist {
				minDist = d
			}
		}
		if minDist < corridorMiles {
			survivors = append(survivors, st)
		}
	}

	return survivors, nil
}
