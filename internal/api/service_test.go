package api

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passbi/fuelroute/internal/models"
)

func TestRound1(t *testing.T) {
	assert.InDelta(t, 123.5, round1(123.46), 0.0001)
	assert.InDelta(t, 123.4, round1(123.44), 0.0001)
}

func TestToOptimizeResponse_WithRoute(t *testing.T) {
	route := &models.Route{DistanceMeters: 160934, DurationSeconds: 7200}
	result := &models.Result{TotalCost: 42.5, FuelConsumedGallons: 10}

	resp := toOptimizeResponse("Chicago, IL", "St. Louis, MO", route, result)

	assert.Equal(t, "Chicago, IL", resp.Route.Start)
	assert.Equal(t, "St. Louis, MO", resp.Route.End)
	assert.InDelta(t, 100.0, resp.Route.DistanceMiles, 0.1)
	assert.InDelta(t, 2.0, resp.Route.DurationHours, 0.01)
	assert.Equal(t, 42.5, resp.TotalCost)
}

func TestToOptimizeResponse_CachedHasNoRouteMetadata(t *testing.T) {
	result := &models.Result{TotalCost: 10, FuelConsumedGallons: 5}

	resp := toOptimizeResponse("A, AA", "B, BB", nil, result)

	assert.Zero(t, resp.Route.DistanceMiles)
	assert.Zero(t, resp.Route.DurationHours)
	assert.Equal(t, float64(10), resp.TotalCost)
}
