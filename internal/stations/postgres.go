package stations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/passbi/fuelroute/internal/models"
)

// PostgresIndex queries the fuel_stations table directly, pushing the
// bounding-box pre-filter (§4.2 phase 1) down to the database instead of
// scanning an in-memory snapshot. Grounded on graph.InMemoryGraph's
// LoadFromDB query style, but run per-call rather than loaded up front.
type PostgresIndex struct {
	db *pgxpool.Pool
}

// NewPostgresIndex wraps an existing connection pool.
func NewPostgresIndex(db *pgxpool.Pool) *PostgresIndex {
	return &PostgresIndex{db: db}
}

// QueryBBox implements optimizer.StationIndex.
func (p *PostgresIndex) QueryBBox(minLat, maxLat, minLon, maxLon float64) ([]models.Station, error) {
	rows, err := p.db.Query(context.Background(), `
		SELECT id, opis_id, name, city, state, address, retail_price,
		       latitude, longitude, geocoded, created_at
		FROM fuel_stations
		WHERE geocoded = true
		  AND latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
	`, minLat, maxLat, minLon, maxLon)
	if err != nil {
		return nil, fmt.Errorf("bbox query failed: %w", err)
	}
	defer rows.Close()

	var out []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.OPISID, &s.Name, &s.City, &s.State, &s.Address,
			&s.RetailPrice, &s.Latitude, &s.Longitude, &s.Geocoded, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading station rows: %w", err)
	}

	return out, nil
}
