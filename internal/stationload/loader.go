package stationload

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passbi/fuelroute/internal/models"
)

// batchSize mirrors graph.Builder's batch insert size for node/edge rows.
const batchSize = 500

// Loader bulk-inserts parsed CSV rows into fuel_stations.
type Loader struct {
	db *pgxpool.Pool
}

// NewLoader wraps a connection pool.
func NewLoader(db *pgxpool.Pool) *Loader {
	return &Loader{db: db}
}

// Load upserts rows in batches and returns an ImportLog summarizing the
// run. A row whose OPIS ID is already present has its retail price
// updated, and RowsInserted counts inserted and updated rows alike.
// Newly-inserted stations are
// left un-geocoded (spec §6); internal/geocodejob fills in coordinates
// out of band.
func (l *Loader) Load(ctx context.Context, rows []Row) (*models.ImportLog, error) {
	started := time.Now()
	log := &models.ImportLog{
		ID:        uuid.NewString(),
		StartedAt: started,
		Status:    "running",
	}

	inserted := 0
	batch := &pgx.Batch{}

	flush := func() error {
		if batch.Len() == 0 {
			return nil
		}
		results := l.db.SendBatch(ctx, batch)
		defer results.Close()
		for i := 0; i < batch.Len(); i++ {
			tag, err := results.Exec()
			if err != nil {
				return fmt.Errorf("batch execution failed at query %d: %w", i, err)
			}
			inserted += int(tag.RowsAffected())
		}
		batch = &pgx.Batch{}
		return nil
	}

	for _, row := range rows {
		batch.Queue(`
			INSERT INTO fuel_stations (opis_id, name, address, city, state, retail_price, geocoded)
			VALUES ($1, $2, $3, $4, $5, $6, false)
			ON CONFLICT (opis_id) DO UPDATE SET retail_price = EXCLUDED.retail_price
		`, row.OPISID, row.Name, row.Address, row.City, row.State, row.RetailPrice)

		if batch.Len() >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	completed := time.Now()
	log.CompletedAt = &completed
	log.Status = "completed"
	log.RowsRead = len(rows)
	log.RowsInserted = inserted
	log.RowsSkipped = len(rows) - inserted

	return log, nil
}
