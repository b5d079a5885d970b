package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/passbi/fuelroute/internal/db"
	"github.com/passbi/fuelroute/internal/geocode"
	"github.com/passbi/fuelroute/internal/geocodejob"
)

// defaultGeocodeRatePerSecond matches Nominatim's usage policy of at
// most one request per second, ported from geocode_stations.py's
// time.sleep(1) between requests.
const defaultGeocodeRatePerSecond = 1.0

// newGeocodeStationsCommand runs the out-of-band geocoding pass over
// stations imported without coordinates, grounded on
// geocode_stations.py's cities_map batching.
func newGeocodeStationsCommand() *cobra.Command {
	var (
		limit int
		state string
	)

	cmd := &cobra.Command{
		Use:   "geocode-stations",
		Short: "Resolve city/state to coordinates for ungeocoded stations",
		Long: `geocode-stations queries Nominatim for the coordinates of
stations still missing latitude/longitude, grouping by city so
stations sharing a city only cost one geocoder lookup.

Example:
  fuelroutectl geocode-stations --limit=500 --state=TX`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			worker := geocodejob.NewWorker(pool, geocode.NewClient(), defaultGeocodeRatePerSecond)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
			defer cancel()

			successful, failed, err := worker.Run(ctx, limit, state)
			if err != nil {
				return fmt.Errorf("geocoding run failed: %w", err)
			}

			fmt.Println("Geocoding complete")
			fmt.Printf("  Successful: %d\n", successful)
			fmt.Printf("  Failed:     %d\n", failed)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 1000, "maximum number of stations to geocode")
	cmd.Flags().StringVar(&state, "state", "", "restrict to a two-letter state code")
	return cmd
}
