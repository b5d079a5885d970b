package optimizer

import (
	"os"
	"strconv"
)

// EarthRadiusMiles is used for all haversine distance computations.
const EarthRadiusMiles = 3959.0

// MetersPerMile converts meters to miles.
const MetersPerMile = 0.000621371

// Options holds the tunable constants from spec §6 Configuration. All
// have the spec's defaults and can be overridden per Optimizer instance.
type Options struct {
	TankRangeMiles      float64
	MPG                 float64
	SearchCorridorMiles float64
	FallbackAvgPriceUSD float64
}

// DefaultOptions returns the spec's default constants.
func DefaultOptions() Options {
	return Options{
		TankRangeMiles:      500,
		MPG:                 10,
		SearchCorridorMiles: 10,
		FallbackAvgPriceUSD: 3.50,
	}
}

// OptionsFromEnv reads TANK_RANGE_MILES, MPG, SEARCH_CORRIDOR_MILES, and
// FALLBACK_AVG_PRICE_USD from the environment, falling back to spec
// defaults for anything unset or unparseable, matching the teacher's
// getEnv-per-package convention (internal/db, internal/cache).
func OptionsFromEnv() Options {
	opts := DefaultOptions()
	opts.TankRangeMiles = getEnvFloat("TANK_RANGE_MILES", opts.TankRangeMiles)
	opts.MPG = getEnvFloat("MPG", opts.MPG)
	opts.SearchCorridorMiles = getEnvFloat("SEARCH_CORRIDOR_MILES", opts.SearchCorridorMiles)
	opts.FallbackAvgPriceUSD = getEnvFloat("FALLBACK_AVG_PRICE_USD", opts.FallbackAvgPriceUSD)
	return opts
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}
