// Package stations provides StationIndex implementations that back
// optimizer.StationIndex: an in-process snapshot for small deployments
// and tests, and a Postgres-backed index for the production service.
package stations

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/passbi/fuelroute/internal/models"
)

// MemoryIndex holds the entire station corpus in memory for fast bbox
// scans. Grounded on graph.InMemoryGraph's singleton, sync.Once-guarded
// load pattern, generalized from a routing graph to a flat station list.
type MemoryIndex struct {
	mu       sync.RWMutex
	stations []models.Station
	loaded   bool
}

var (
	globalIndex     *MemoryIndex
	globalIndexOnce sync.Once
)

// GetMemoryIndex returns the singleton in-memory station index.
func GetMemoryIndex() *MemoryIndex {
	globalIndexOnce.Do(func() {
		globalIndex = &MemoryIndex{}
	})
	return globalIndex
}

// LoadFromDB loads every usable station from Postgres into memory.
func (idx *MemoryIndex) LoadFromDB(ctx context.Context, db *pgxpool.Pool) error {
	start := time.Now()
	log.Println("Loading station index into memory...")

	rows, err := db.Query(ctx, `
		SELECT id, opis_id, name, city, state, address, retail_price,
		       latitude, longitude, geocoded, created_at
		FROM fuel_stations
		WHERE geocoded = true
	`)
	if err != nil {
		return fmt.Errorf("failed to load stations: %w", err)
	}
	defer rows.Close()

	var loaded []models.Station
	for rows.Next() {
		var s models.Station
		if err := rows.Scan(&s.ID, &s.OPISID, &s.Name, &s.City, &s.State, &s.Address,
			&s.RetailPrice, &s.Latitude, &s.Longitude, &s.Geocoded, &s.CreatedAt); err != nil {
			log.Printf("warning: failed to scan station row: %v", err)
			continue
		}
		loaded = append(loaded, s)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading station rows: %w", err)
	}

	idx.mu.Lock()
	idx.stations = loaded
	idx.loaded = true
	idx.mu.Unlock()

	log.Printf("Station index loaded in %v (%d stations)", time.Since(start), len(loaded))
	return nil
}

// IsLoaded reports whether LoadFromDB has completed at least once.
func (idx *MemoryIndex) IsLoaded() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.loaded
}

// QueryBBox implements optimizer.StationIndex with a linear in-memory scan.
func (idx *MemoryIndex) QueryBBox(minLat, maxLat, minLon, maxLon float64) ([]models.Station, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var out []models.Station
	for _, s := range idx.stations {
		if s.Latitude >= minLat && s.Latitude <= maxLat &&
			s.Longitude >= minLon && s.Longitude <= maxLon {
			out = append(out, s)
		}
	}
	return out, nil
}
