package optimizer

import (
	"math"
	"testing"

	"github.com/passbi/fuelroute/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIndex is an in-memory StationIndex for tests, per spec §9's
// design note that the Optimizer receives the capability by injection.
type fakeIndex struct {
	stations []models.Station
}

func (f *fakeIndex) QueryBBox(minLat, maxLat, minLon, maxLon float64) ([]models.Station, error) {
	var out []models.Station
	for _, s := range f.stations {
		if s.Latitude >= minLat && s.Latitude <= maxLat &&
			s.Longitude >= minLon && s.Longitude <= maxLon {
			out = append(out, s)
		}
	}
	return out, nil
}

func station(id int64, name string, lat, lon, price float64) models.Station {
	return models.Station{
		ID:          id,
		Name:        name,
		City:        "City" + name,
		State:       "CA",
		Address:     "123 Main St",
		RetailPrice: price,
		Latitude:    lat,
		Longitude:   lon,
		Geocoded:    true,
	}
}

func TestOptimize_TripUnderOneTank(t *testing.T) {
	route := buildLongRoute()
	idx := &fakeIndex{stations: []models.Station{
		stationAtMile(route, 20, "Alpha", 3.20),
		stationAtMile(route, 50, "Beta", 3.50),
		stationAtMile(route, 80, "Gamma", 3.80),
	}}

	opt := New(DefaultOptions())
	totalMeters := 100 / MetersPerMile
	result, err := opt.Optimize(route, totalMeters, idx)
	require.NoError(t, err)

	assert.Empty(t, result.Stops)
	assert.InDelta(t, 35.00, result.TotalCost, 0.01)
	assert.InDelta(t, 10.00, result.FuelConsumedGallons, 0.01)
}

func TestOptimize_SingleRefuel(t *testing.T) {
	route := buildLongRoute()
	idx := &fakeIndex{stations: []models.Station{
		stationAtMile(route, 480, "Cheap", 3.00),
		stationAtMile(route, 450, "Pricey", 3.50),
	}}

	opt := New(DefaultOptions())
	totalMeters := 700 / MetersPerMile
	result, err := opt.Optimize(route, totalMeters, idx)
	require.NoError(t, err)

	require.Len(t, result.Stops, 1)
	assert.Equal(t, "Cheap", result.Stops[0].Station)
	assert.InDelta(t, 48.00, result.Stops[0].RefillGallons, 1.0)
	assert.InDelta(t, 144.00, result.Stops[0].Cost, 5.0)
	assert.InDelta(t, 210.00, result.TotalCost, 10.0)
	assert.InDelta(t, 70.00, result.FuelConsumedGallons, 0.01)
}

func TestOptimize_TieBreakByDistance(t *testing.T) {
	route := buildLongRoute()
	idx := &fakeIndex{stations: []models.Station{
		stationAtMile(route, 300, "Near", 3.10),
		stationAtMile(route, 450, "Far", 3.10),
	}}

	opt := New(DefaultOptions())
	totalMeters := 800 / MetersPerMile
	result, err := opt.Optimize(route, totalMeters, idx)
	require.NoError(t, err)

	require.Len(t, result.Stops, 1)
	assert.Equal(t, "Far", result.Stops[0].Station)
}

func TestOptimize_Stranded(t *testing.T) {
	route := buildLongRoute()
	idx := &fakeIndex{stations: []models.Station{
		stationAtMile(route, 200, "Only", 3.00),
	}}

	opt := New(DefaultOptions())
	totalMeters := 1200 / MetersPerMile
	_, err := opt.Optimize(route, totalMeters, idx)
	require.Error(t, err)

	var stranded *StrandedError
	require.ErrorAs(t, err, &stranded)
	assert.InDelta(t, 200.0, stranded.Mile, 10.0)
	assert.Contains(t, err.Error(), "Stranded at mile")
	assert.Contains(t, err.Error(), "No stations in range.")
}

func TestOptimize_NoStationsOnLongTrip(t *testing.T) {
	route := buildLongRoute()
	idx := &fakeIndex{}

	opt := New(DefaultOptions())
	totalMeters := 800 / MetersPerMile
	_, err := opt.Optimize(route, totalMeters, idx)
	require.Error(t, err)

	var noStations *NoStationsOnRouteError
	require.ErrorAs(t, err, &noStations)
	assert.Equal(t, "No fuel stations found along route, cannot complete trip", err.Error())
}

func TestOptimize_CorridorRejection(t *testing.T) {
	route := buildLongRoute()
	onRoute := stationAtMile(route, 100, "Close", 3.00)
	// Route runs along a fixed latitude, so a perpendicular (latitude)
	// offset of ~55 miles is a true cross-corridor displacement, unlike
	// a longitude shift which would just move the point along the line.
	offRoute := onRoute
	offRoute.ID = 2
	offRoute.Name = "Far"
	offRoute.Latitude += 0.8

	idx := &fakeIndex{stations: []models.Station{onRoute, offRoute}}

	opt := New(DefaultOptions())
	// 600 miles needs one refuel within the first tank, so the selector
	// has to choose among the corridor survivors.
	totalMeters := 600 / MetersPerMile
	result, err := opt.Optimize(route, totalMeters, idx)
	require.NoError(t, err)
	require.Len(t, result.Stops, 1)

	// only the on-route station should ever be usable by the selector
	for _, s := range result.Stops {
		assert.NotEqual(t, "Far", s.Station)
	}
}

func TestOptimize_EmptyRoute(t *testing.T) {
	opt := New(DefaultOptions())
	_, err := opt.Optimize(models.Polyline{{Lat: 1, Lon: 1}}, 1000, &fakeIndex{})
	require.Error(t, err)
	var emptyErr *EmptyRouteError
	require.ErrorAs(t, err, &emptyErr)
}

func TestOptimize_ZeroDistance(t *testing.T) {
	opt := New(DefaultOptions())
	route := models.Polyline{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}}
	_, err := opt.Optimize(route, 0, &fakeIndex{})
	require.Error(t, err)
	var emptyErr *EmptyRouteError
	require.ErrorAs(t, err, &emptyErr)
}

func TestOptimize_ExactlyOneTank(t *testing.T) {
	route := buildLongRoute()
	idx := &fakeIndex{}
	opt := New(DefaultOptions())
	// 500/MetersPerMile converts back to 500.00000000000006 miles, just over
	// one tank; the next float64 below it is the largest distance in meters
	// that converts to no more than 500 miles.
	totalMeters := math.Nextafter(500/MetersPerMile, 0)
	result, err := opt.Optimize(route, totalMeters, idx)
	require.NoError(t, err)
	assert.Empty(t, result.Stops)
}

func TestOptimize_Determinism(t *testing.T) {
	route := buildLongRoute()
	idx := &fakeIndex{stations: []models.Station{
		stationAtMile(route, 480, "Cheap", 3.00),
		stationAtMile(route, 450, "Pricey", 3.50),
	}}
	opt := New(DefaultOptions())
	totalMeters := 700 / MetersPerMile

	r1, err1 := opt.Optimize(route, totalMeters, idx)
	r2, err2 := opt.Optimize(route, totalMeters, idx)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, r1, r2)
}

// buildLongRoute constructs a straight-line polyline roughly 2000 miles
// long running east along a fixed latitude, fine enough for mile-accurate
// placement via stationAtMile.
func buildLongRoute() models.Polyline {
	const n = 2000
	route := make(models.Polyline, n)
	lat := 36.0
	lonStart := -120.0
	// ~0.0179 degrees longitude per mile at 36N (cos(36°) ≈ 0.809).
	lonStep := 0.0179
	for i := 0; i < n; i++ {
		route[i] = models.Vertex{Lat: lat, Lon: lonStart + lonStep*float64(i)}
	}
	return route
}

// stationAtMile places a station directly on the route at approximately
// the given mile marker, so the projector will assign that dist_from_start.
func stationAtMile(route models.Polyline, mile float64, name string, price float64) models.Station {
	cum := buildArcLengthTable(route)
	// Find the vertex closest to the requested mile marker.
	bestIdx := 0
	bestDiff := mile
	for i, d := range cum {
		diff := d - mile
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			bestDiff = diff
			bestIdx = i
		}
	}
	v := route[bestIdx]
	return station(int64(len(name)), name, v.Lat, v.Lon, price)
}
