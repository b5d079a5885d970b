package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/passbi/fuelroute/internal/db"
	"github.com/passbi/fuelroute/internal/stationload"
)

// newImportStationsCommand bulk-loads an OPIS retail fuel-price CSV into
// fuel_stations, mirroring load_fuel_stations.py's role in the source
// system.
func newImportStationsCommand() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "import-stations",
		Short: "Bulk-load an OPIS retail fuel-price CSV into the database",
		Long: `import-stations reads an OPIS-format CSV of truck stop fuel prices
and upserts it into fuel_stations. Rows with a price
already on file are updated; newly-seen stations are inserted
un-geocoded for geocode-stations to resolve later.

Example:
  fuelroutectl import-stations --file=fuel_prices.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return fmt.Errorf("--file flag is required")
			}

			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", filePath, err)
			}
			defer f.Close()

			parsed, err := stationload.ParseCSV(f)
			if err != nil {
				return fmt.Errorf("failed to parse CSV: %w", err)
			}
			if len(parsed.Errors) > 0 {
				fmt.Printf("warning: %d rows skipped during parse\n", parsed.RowsSkipped)
			}

			pool, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			loader := stationload.NewLoader(pool)
			importLog, err := loader.Load(ctx, parsed.Rows)
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Println("Import complete")
			fmt.Printf("  Job ID:         %s\n", importLog.ID)
			fmt.Printf("  Rows read:      %d\n", importLog.RowsRead)
			fmt.Printf("  Rows inserted:  %d\n", importLog.RowsInserted)
			fmt.Printf("  Rows skipped:   %d\n", importLog.RowsSkipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "path to the OPIS CSV file (required)")
	return cmd
}
