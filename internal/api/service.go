package api

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passbi/fuelroute/internal/cache"
	"github.com/passbi/fuelroute/internal/geocode"
	"github.com/passbi/fuelroute/internal/models"
	"github.com/passbi/fuelroute/internal/optimizer"
	"github.com/passbi/fuelroute/internal/routing"
)

const (
	resultCacheTTL = 10 * time.Minute
	lockTTL        = 30 * time.Second
	lockWait       = 25 * time.Second
)

// geocoder and router are the narrow capabilities routeService depends on,
// satisfied by *geocode.Client and *routing.Client respectively — kept as
// interfaces so tests can substitute fakes without a network call.
type geocoder interface {
	Coordinates(query string) (lat, lon float64, err error)
}

type router interface {
	Route(startLat, startLon, endLat, endLon float64) (*models.Route, error)
}

// routeService orchestrates a full optimize request the way
// RoutingService.calculate_optimal_route does: geocode both endpoints,
// fetch a driving route, run the optimizer, and shape the nested
// response — with Redis result caching and a distributed lock standing
// in for the source's lack of any caching at all.
type routeService struct {
	geocoder  geocoder
	router    router
	optimizer *optimizer.Optimizer
	index     optimizer.StationIndex
}

func newRouteService(db *pgxpool.Pool, index optimizer.StationIndex) *routeService {
	return &routeService{
		geocoder:  geocode.NewClient(),
		router:    routing.NewClient(),
		optimizer: optimizer.New(optimizer.OptionsFromEnv()),
		index:     index,
	}
}

// Optimize resolves start and end to coordinates, fetches a route between
// them, and runs the fuel-stop optimizer over it. Identical concurrent
// requests for the same pair of locations share one upstream geocode and
// routing call via AcquireLock/WaitForLock.
func (s *routeService) Optimize(ctx context.Context, start, end string) (*optimizeResponse, error) {
	key := cache.ResultKey(start, end)

	if cached, err := cache.GetResult(ctx, key); err == nil && cached != nil {
		return toOptimizeResponse(start, end, nil, cached), nil
	}

	acquired, err := cache.AcquireLock(ctx, cache.LockKey(key), lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire result lock: %w", err)
	}

	if !acquired {
		result, err := cache.WaitForLock(ctx, key, lockWait)
		if err != nil {
			return nil, fmt.Errorf("timed out waiting for in-flight optimize request: %w", err)
		}
		if result != nil {
			return toOptimizeResponse(start, end, nil, result), nil
		}
		// Lock holder finished without leaving a result (it errored).
		// Compute it ourselves but don't release a lock we never held.
		return s.computeAndCache(ctx, key, start, end)
	}
	defer cache.ReleaseLock(ctx, cache.LockKey(key))

	return s.computeAndCache(ctx, key, start, end)
}

func (s *routeService) computeAndCache(ctx context.Context, key, start, end string) (*optimizeResponse, error) {
	startLat, startLon, err := s.geocoder.Coordinates(start)
	if err != nil {
		return nil, validationErrorf("Could not geocode start location.")
	}
	endLat, endLon, err := s.geocoder.Coordinates(end)
	if err != nil {
		return nil, validationErrorf("Could not geocode end location.")
	}

	route, err := s.router.Route(startLat, startLon, endLat, endLon)
	if err != nil {
		return nil, validationErrorf("Could not find route between locations.")
	}

	result, err := s.optimizer.Optimize(route.Geometry, route.DistanceMeters, s.index)
	if err != nil {
		return nil, err
	}

	_ = cache.SetResult(ctx, key, result, resultCacheTTL)

	return toOptimizeResponse(start, end, route, result), nil
}

func toOptimizeResponse(start, end string, route *models.Route, result *models.Result) *optimizeResponse {
	resp := &optimizeResponse{
		Stops:               result.Stops,
		TotalCost:           result.TotalCost,
		FuelConsumedGallons: result.FuelConsumedGallons,
		Route: routeInfo{
			Start: start,
			End:   end,
		},
	}
	if route != nil {
		resp.Route.DistanceMiles = round1(route.DistanceMeters * optimizer.MetersPerMile)
		resp.Route.DurationHours = round1(route.DurationSeconds / 3600)
		resp.Route.Geometry = route.Geometry
	}
	return resp
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
