// Package api exposes the fuel-route optimizer over HTTP with Fiber,
// the same framework and handler shape the teacher used for its transit
// endpoints: free functions taking *fiber.Ctx, errors surfaced as JSON
// with an explicit status code rather than panicking.
package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passbi/fuelroute/internal/cache"
	"github.com/passbi/fuelroute/internal/db"
	"github.com/passbi/fuelroute/internal/optimizer"
)

// Handlers holds the dependencies the route handlers close over. The
// teacher's handlers reached for package-level singletons (db.GetDB,
// graph.GetGraph); this keeps the same singleton style for db/cache but
// takes the station index explicitly so cmd/api can choose memory- or
// Postgres-backed lookups at startup.
type Handlers struct {
	service *routeService
	index   optimizer.StationIndex
}

// NewHandlers builds a Handlers bound to the given database pool and
// station index.
func NewHandlers(pool *pgxpool.Pool, index optimizer.StationIndex) *Handlers {
	return &Handlers{
		service: newRouteService(pool, index),
		index:   index,
	}
}

// OptimizeRoute handles POST /api/v1/route/optimize.
func (h *Handlers) OptimizeRoute(c *fiber.Ctx) error {
	var req optimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Request body must be valid JSON.",
		})
	}

	start, end, err := validateOptimizeRequest(req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	resp, err := h.service.Optimize(c.Context(), start, end)
	if err != nil {
		return optimizeErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// optimizeErrorResponse maps the optimizer's and the service's error
// kinds to the status codes RouteOptimizationView's single
// "error-in-body, 400" contract didn't distinguish — stranding and
// missing-stations are still client-visible trip-planning failures, not
// server faults, so both land on 400 rather than 500.
func optimizeErrorResponse(c *fiber.Ctx, err error) error {
	var valErr *validationError
	var emptyErr *optimizer.EmptyRouteError
	var noStationsErr *optimizer.NoStationsOnRouteError
	var strandedErr *optimizer.StrandedError

	switch {
	case errors.As(err, &valErr), errors.As(err, &emptyErr), errors.As(err, &noStationsErr), errors.As(err, &strandedErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

// StationsNear handles GET /api/v1/stations/near.
func (h *Handlers) StationsNear(c *fiber.Ctx) error {
	q, err := validateNearQuery(c.Query("lat"), c.Query("lon"), c.Query("radius"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// 1 degree of latitude/longitude is roughly 69 miles, the same
	// bounding-box approximation StationsNearView uses before any
	// precise-radius trim.
	degRadius := q.Radius / 69.0
	minLat, maxLat := q.Lat-degRadius, q.Lat+degRadius
	minLon, maxLon := q.Lon-degRadius, q.Lon+degRadius

	candidates, err := h.index.QueryBBox(minLat, maxLat, minLon, maxLon)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	stations := make([]nearStation, 0, len(candidates))
	for _, s := range candidates {
		stations = append(stations, nearStation{
			ID:      s.ID,
			Station: s.Name,
			City:    s.City,
			State:   s.State,
			Price:   s.RetailPrice,
			Lat:     s.Latitude,
			Lon:     s.Longitude,
			Address: s.Address,
		})
	}

	return c.Status(fiber.StatusOK).JSON(stationsNearResponse{Stations: stations})
}

// Health reports database and Redis connectivity, the same shape the
// teacher's Health handler used.
func Health(c *fiber.Ctx) error {
	ctx := c.Context()

	dbErr := db.HealthCheck(ctx)
	dbStatus := "ok"
	if dbErr != nil {
		dbStatus = dbErr.Error()
	}

	redisErr := cache.HealthCheck(ctx)
	redisStatus := "ok"
	if redisErr != nil {
		redisStatus = redisErr.Error()
	}

	status := "healthy"
	httpStatus := fiber.StatusOK
	if dbErr != nil || redisErr != nil {
		status = "unhealthy"
		httpStatus = fiber.StatusServiceUnavailable
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
