// Package geocodejob runs the out-of-band geocoding pass that turns a
// freshly-imported station's city/state into coordinates, grouping by
// city so that stations sharing a city only cost one geocoder lookup —
// ported from geocode_stations.py's cities_map optimization.
package geocodejob

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

// Coder resolves a free-text query to coordinates. Satisfied by
// *geocode.Client; an interface here keeps the worker testable without
// a live network call.
type Coder interface {
	Coordinates(query string) (lat, lon float64, err error)
}

type station struct {
	id    int64
	city  string
	state string
}

// Worker geocodes ungeocoded stations in the database, rate-limited to
// respect Nominatim's usage policy.
type Worker struct {
	db      *pgxpool.Pool
	coder   Coder
	limiter *rate.Limiter
}

// NewWorker builds a Worker. ratePerSecond matches
// GEOCODING_RATE_LIMIT_SECONDS from spec §6, expressed as a token rate
// rather than a sleep duration.
func NewWorker(db *pgxpool.Pool, coder Coder, ratePerSecond float64) *Worker {
	return &Worker{
		db:      db,
		coder:   coder,
		limiter: rate.NewLimiter(rate.Limit(ratePerSecond), 1),
	}
}

// Run geocodes up to limit stations (optionally filtered by state),
// grouped by city to minimize geocoder calls, and returns counts of
// stations successfully and unsuccessfully geocoded.
func (w *Worker) Run(ctx context.Context, limit int, stateFilter string) (successful, failed int, err error) {
	stations, err := w.fetchPending(ctx, limit, stateFilter)
	if err != nil {
		return 0, 0, err
	}
	if len(stations) == 0 {
		return 0, 0, nil
	}

	byCity, order := groupByCity(stations)

	log.Printf("geocodejob: %d stations across %d unique cities", len(stations), len(order))

	for _, key := range order {
		group := byCity[key]

		if err := w.limiter.Wait(ctx); err != nil {
			return successful, failed, err
		}

		lat, lon, err := w.coder.Coordinates(key + ", USA")
		if err != nil {
			log.Printf("geocodejob: failed to geocode %s: %v", key, err)
			failed += len(group)
			continue
		}

		ids := make([]int64, len(group))
		for i, s := range group {
			ids[i] = s.id
		}
		if err := w.applyCoordinates(ctx, ids, lat, lon); err != nil {
			log.Printf("geocodejob: failed to persist coordinates for %s: %v", key, err)
			failed += len(group)
			continue
		}

		successful += len(group)
	}

	return successful, failed, nil
}

// groupByCity groups stations by "City, ST" key, preserving first-seen
// order so progress output is deterministic — the optimization from
// geocode_stations.py's cities_map.
func groupByCity(stations []station) (map[string][]station, []string) {
	byCity := make(map[string][]station)
	var order []string
	for _, s := range stations {
		key := s.city + ", " + s.state
		if _, seen := byCity[key]; !seen {
			order = append(order, key)
		}
		byCity[key] = append(byCity[key], s)
	}
	return byCity, order
}

func (w *Worker) fetchPending(ctx context.Context, limit int, stateFilter string) ([]station, error) {
	query := `
		SELECT id, city, state FROM fuel_stations
		WHERE geocoded = false
	`
	args := []interface{}{}
	if stateFilter != "" {
		query += fmt.Sprintf(" AND state = $%d", len(args)+1)
		args = append(args, strings.ToUpper(stateFilter))
	}
	query += " ORDER BY retail_price ASC"
	query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
	args = append(args, limit)

	rows, err := w.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending stations: %w", err)
	}
	defer rows.Close()

	var out []station
	for rows.Next() {
		var s station
		if err := rows.Scan(&s.id, &s.city, &s.state); err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (w *Worker) applyCoordinates(ctx context.Context, ids []int64, lat, lon float64) error {
	_, err := w.db.Exec(ctx, `
		UPDATE fuel_stations
		SET latitude = $1, longitude = $2, geocoded = true
		WHERE id = ANY($3)
	`, lat, lon, ids)
	return err
}
