package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateOptimizeRequest_TrimsAndAccepts(t *testing.T) {
	start, end, err := validateOptimizeRequest(optimizeRequest{
		StartLocation: "  Los Angeles, CA  ",
		EndLocation:   "New York, NY",
	})
	require.NoError(t, err)
	assert.Equal(t, "Los Angeles, CA", start)
	assert.Equal(t, "New York, NY", end)
}

func TestValidateOptimizeRequest_StartTooShort(t *testing.T) {
	_, _, err := validateOptimizeRequest(optimizeRequest{StartLocation: "LA", EndLocation: "New York, NY"})
	require.Error(t, err)
	assert.Equal(t, "Start location must be at least 3 characters long.", err.Error())
}

func TestValidateOptimizeRequest_EndTooShort(t *testing.T) {
	_, _, err := validateOptimizeRequest(optimizeRequest{StartLocation: "Los Angeles, CA", EndLocation: "NY"})
	require.Error(t, err)
	assert.Equal(t, "End location must be at least 3 characters long.", err.Error())
}

func TestValidateOptimizeRequest_SameLocationCaseInsensitive(t *testing.T) {
	_, _, err := validateOptimizeRequest(optimizeRequest{
		StartLocation: "Chicago, IL",
		EndLocation:   "chicago, il",
	})
	require.Error(t, err)
	assert.Equal(t, "Start and end locations must be different.", err.Error())
}

func TestValidateNearQuery_Valid(t *testing.T) {
	q, err := validateNearQuery("41.8781", "-87.6298", "20")
	require.NoError(t, err)
	assert.InDelta(t, 41.8781, q.Lat, 0.0001)
	assert.InDelta(t, -87.6298, q.Lon, 0.0001)
	assert.InDelta(t, 20, q.Radius, 0.0001)
}

func TestValidateNearQuery_DefaultRadius(t *testing.T) {
	q, err := validateNearQuery("41.8781", "-87.6298", "")
	require.NoError(t, err)
	assert.InDelta(t, defaultRadiusMiles, q.Radius, 0.0001)
}

func TestValidateNearQuery_MissingLatLon(t *testing.T) {
	_, err := validateNearQuery("", "-87.6298", "")
	require.Error(t, err)
}

func TestValidateNearQuery_LatOutOfRange(t *testing.T) {
	_, err := validateNearQuery("91", "0", "")
	require.Error(t, err)
}

func TestValidateNearQuery_RadiusOutOfRange(t *testing.T) {
	_, err := validateNearQuery("0", "0", "100")
	require.Error(t, err)
}

func TestValidateNearQuery_InvalidNumber(t *testing.T) {
	_, err := validateNearQuery("not-a-number", "0", "")
	require.Error(t, err)
	assert.Equal(t, "Invalid lat, lon, or radius parameters.", err.Error())
}
