package optimizer

import (
	"fmt"
	"math"

	"github.com/passbi/fuelroute/internal/models"
)

// selectStops runs the greedy reachable-cheapest algorithm (§4.4). The
// projected slice must already be sorted ascending by DistFromStart.
func selectStops(projected []models.ProjectedStation, totalDistance float64, opts Options) ([]models.Stop, float64, error) {
	var stops []models.Stop

	currentPos := 0.0
	currentRange := opts.TankRangeMiles
	totalCost := 0.0
	haveRefilled := false
	lastRefillPrice := 0.0

	for currentPos+currentRange < totalDistance {
		maxReach := currentPos + currentRange

		bestIdx := -1
		for i, s := range projected {
			if s.DistFromStart <= currentPos || s.DistFromStart > maxReach {
				continue
			}
			if bestIdx == -1 {
				bestIdx = i
				continue
			}
			best := projected[bestIdx]
			// Lexicographic: cheapest first, ties broken by farthest.
			if s.Price < best.Price || (s.Price == best.Price && s.DistFromStart > best.DistFromStart) {
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			return nil, 0, &StrandedError{Mile: currentPos}
		}

		best := projected[bestIdx]
		milesTraveled := best.DistFromStart - currentPos
		gallons := milesTraveled / opts.MPG
		cost := gallons * best.Price

		stops = append(stops, models.Stop{
			Station:       best.Station.Name,
			City:          best.Station.City,
			State:         best.Station.State,
			Price:         formatPrice(best.Price),
			Lat:           best.Station.Latitude,
			Lon:           best.Station.Longitude,
			RefillGallons: round2(gallons),
			Cost:          round2(cost),
		})

		totalCost += cost
		currentPos = best.DistFromStart
		currentRange = opts.TankRangeMiles
		lastRefillPrice = best.Price
		haveRefilled = true
	}

	remaining := totalDistance - currentPos
	if remaining > 0 {
		gallonsFinal := remaining / opts.MPG

		var finalPrice float64
		if haveRefilled {
			finalPrice = lastRefillPrice
		} else if len(projected) > 0 {
			sum := 0.0
			for _, s := range projected {
				sum += s.Price
			}
			finalPrice = sum / float64(len(projected))
		} else {
			finalPrice = opts.FallbackAvgPriceUSD
		}

		totalCost += gallonsFinal * finalPrice
	}

	return stops, totalCost, nil
}

func formatPrice(price float64) string {
	return fmt.Sprintf("$%.3f/gal", price)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
