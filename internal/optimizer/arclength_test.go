package optimizer

import (
	"testing"

	"github.com/passbi/fuelroute/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHaversineMiles(t *testing.T) {
	tests := []struct {
		name   string
		lat1   float64
		lon1   float64
		lat2   float64
		lon2   float64
		wantMi float64
		delta  float64
	}{
		{"same point", 34.05, -118.25, 34.05, -118.25, 0, 0.001},
		// Los Angeles to San Francisco, roughly 347 miles great-circle.
		{"LA to SF", 34.0522, -118.2437, 37.7749, -122.4194, 347, 5},
		// One degree of latitude is ~69 miles everywhere.
		{"one degree latitude", 0, 0, 1, 0, 69, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineMiles(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.wantMi, got, tt.delta)
		})
	}
}

func TestBuildArcLengthTable(t *testing.T) {
	route := models.Polyline{
		{Lat: 0, Lon: 0},
		{Lat: 1, Lon: 0},
		{Lat: 2, Lon: 0},
	}
	cum := buildArcLengthTable(route)

	require := assert.New(t)
	require.Len(cum, 3)
	require.Equal(0.0, cum[0])
	require.True(cum[1] > 0)
	require.True(cum[2] > cum[1])
	require.InDelta(cum[1]*2, cum[2], 0.01)
}

func TestBuildArcLengthTable_SingleVertex(t *testing.T) {
	route := models.Polyline{{Lat: 5, Lon: 5}}
	cum := buildArcLengthTable(route)
	assert.Equal(t, models.ArcLengthTable{0}, cum)
}

func TestBuildArcLengthTable_DuplicateVertices(t *testing.T) {
	route := models.Polyline{
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 2},
	}
	cum := buildArcLengthTable(route)
	assert.Equal(t, 0.0, cum[1]-cum[0])
	assert.True(t, cum[2] > cum[1])
}
